package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newConfigPathCmd())
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config-path",
		Short: "Print the pdfdesk config file in use",
		Long: `Print the pdfdesk config file in use.

The path comes from --config, then PDFDESK_CONFIG_PATH, then the first existing
file among ~/.pdfdesk/config.json and ~/.config/pdfdesk/config.json. The file
does not have to exist; server_url, state_dir and log_level fall back to defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), resolveConfigPath(cmd))
			return err
		},
	}
}
