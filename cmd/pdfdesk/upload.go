package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/openmined/pdfdesk/internal/account"
	"github.com/openmined/pdfdesk/internal/library"
	"github.com/openmined/pdfdesk/internal/upload"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newUploadCmd())
}

func newUploadCmd() *cobra.Command {
	var drop bool

	cmd := &cobra.Command{
		Use:   "upload <path>...",
		Short: "Upload PDFs",
		Long: `Upload one or more PDFs. Paths may be files, directories or globs (** is supported).

Files are uploaded one at a time. A failed file does not stop the rest of the batch.
With --drop, anything that is not a PDF is skipped before uploading.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.requireLogin(cmd.Context()); err != nil {
				return err
			}

			candidates, err := upload.CollectCandidates(args)
			if err != nil {
				return err
			}

			source := upload.SourcePicker
			if drop {
				source = upload.SourceDrop
			}

			out := cmd.OutOrStdout()
			reporter := upload.NewReporter(cmd.ErrOrStderr(), isTerminalWriter(cmd.ErrOrStderr()))
			orchestrator := upload.NewOrchestrator(a.sdk.Documents, a.library, upload.WithReporter(reporter))

			res := orchestrator.Run(cmd.Context(), source, candidates)

			if res.Notice != "" {
				fmt.Fprintln(out, yellow.Render(res.Notice))
			}
			for _, doc := range res.Uploaded {
				fmt.Fprintf(out, "%s %s %s\n", green.Render("Uploaded"), doc.Filename, gray.Render(fmt.Sprintf("(#%d)", doc.ID)))
			}
			if res.AuthErr != nil {
				// the stored credential is no longer accepted
				a.account.HandleUnauthorized(res.AuthErr)
				fmt.Fprintln(out, yellow.Render(account.MsgSessionExpired))
			}
			if res.RefreshErr != nil {
				fmt.Fprintln(out, yellow.Render("Could not refresh your library: "+library.UserMessage(res.RefreshErr)))
			} else if res.Refreshed {
				docs := a.library.Documents()
				fmt.Fprintln(out, gray.Render(fmt.Sprintf("%s PDF(s) in your library", humanize.Comma(int64(len(docs))))))
			}

			return res.Err()
		},
	}

	cmd.Flags().BoolVar(&drop, "drop", false, "skip files that are not PDFs")
	return cmd
}
