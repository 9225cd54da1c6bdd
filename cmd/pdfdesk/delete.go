package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDeleteCmd())
}

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a PDF",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.requireLogin(cmd.Context()); err != nil {
				return err
			}

			if err := a.library.Delete(cmd.Context(), id, confirmer(yes)); err != nil {
				return a.check(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s PDF #%d\n", green.Render("Deleted"), id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
