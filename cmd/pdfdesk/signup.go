package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSignupCmd(), newForgotPasswordCmd(), newResetPasswordCmd())
}

func newSignupCmd() *cobra.Command {
	var email, username string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a PDFDesk account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if email, err = ask("Email", email, validateEmail); err != nil {
				return err
			}
			if username, err = ask("Username", username, nil); err != nil {
				return err
			}
			password, confirm, err := askNewPassword(cmd.InOrStdin(), passwordStdin)
			if err != nil {
				return err
			}

			user, err := a.account.Signup(cmd.Context(), strings.TrimSpace(email), username, password, confirm)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), green.Render("Account created. You can now log in."))
			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")

	return cmd
}

func newForgotPasswordCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if email, err = ask("Email", email, validateEmail); err != nil {
				return err
			}

			msg, err := a.account.ForgotPassword(cmd.Context(), strings.TrimSpace(email))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), green.Render(msg))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func newResetPasswordCmd() *cobra.Command {
	var token string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password using the token from the reset email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			password, confirm, err := askNewPassword(cmd.InOrStdin(), passwordStdin)
			if err != nil {
				return err
			}

			msg, err := a.account.ResetPassword(cmd.Context(), token, password, confirm)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), green.Render(msg))
			return nil
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&token, "token", "t", "", "reset token from the email")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	cmd.MarkFlagRequired("token")

	return cmd
}
