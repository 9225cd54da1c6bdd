package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/openmined/pdfdesk/internal/account"
	"github.com/openmined/pdfdesk/internal/pdfsdk"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newLoginCmd(), newLogoutCmd(), newWhoamiCmd())
}

func newLoginCmd() *cobra.Command {
	var username string
	var passwordStdin bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the PDFDesk server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if user, err := a.requireLogin(cmd.Context()); err == nil {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), green.Render("**Already logged in**"))
					printUser(cmd.OutOrStdout(), user)
				}
				return nil
			} else if errors.Is(err, pdfsdk.ErrConnection) {
				return err
			}

			var user *pdfsdk.User
			login := func(u, p string) error {
				user, err = a.account.Login(cmd.Context(), u, p)
				return err
			}

			if passwordStdin || !isTerminal(os.Stdin) {
				password, err := readSecret(cmd.InOrStdin())
				if err != nil {
					return err
				}
				if err := login(username, password); err != nil {
					return err
				}
			} else {
				if err := RunLoginTUI(LoginTUIOpts{
					Username:     username,
					ServerURL:    a.cfg.ServerURL,
					StateDir:     a.cfg.StateDir,
					ConfigPath:   a.cfg.Path,
					LoginHandler: login,
				}); err != nil {
					return err
				}
			}

			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), green.Render("Logged in"))
				printUser(cmd.OutOrStdout(), user)
			}
			return nil
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "disable output")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.account.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), green.Render("Logged out"))
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			user, err := a.requireLogin(cmd.Context())
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), user)
			return nil
		},
	}
}

func printUser(w io.Writer, user *pdfsdk.User) {
	if user == nil {
		return
	}
	fmt.Fprintf(w, "%s%s\n", gray.Render("Username  "), cyan.Render(user.Username))
	fmt.Fprintf(w, "%s%s\n", gray.Render("Email     "), cyan.Render(user.Email))
	fmt.Fprintf(w, "%s%s\n", gray.Render("Member    "), lightGray.Render(user.CreatedAt.Format("2006-01-02")))
}

// readSecret reads one line, for scripted logins.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", account.ErrMissingLogin
	}
	return line, nil
}
