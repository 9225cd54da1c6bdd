package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/openmined/pdfdesk/internal/pdfsdk"
	"github.com/openmined/pdfdesk/internal/render"
	"github.com/openmined/pdfdesk/internal/tui"
	"github.com/openmined/pdfdesk/internal/viewer"
	"github.com/spf13/cobra"
)

const msgLoginToView = "Please log in to view this PDF"

var errLoginToView = errors.New("login required to view document")

func init() {
	rootCmd.AddCommand(newViewCmd())
}

func newViewCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "Open a PDF in the terminal viewer",
		Long: `Open a PDF in the terminal viewer.

Keys: arrows and page up/down turn pages, alt+= / alt+- zoom, alt+0 resets zoom,
ctrl+f or alt+f toggles fullscreen, g jumps to a page, t switches theme, q quits.

When stdout is not a terminal the document is loaded once and summarised.`,
		Args: cobra.ExactArgs(1),
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
				if errors.Is(err, pdfsdk.ErrConnection) {
					return err
				}
				return fmt.Errorf("%w: %w", errLoginToView, err)
			}

			doc, err := a.library.Lookup(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, pdfsdk.ErrUnauthorized) {
					return fmt.Errorf("%w: %w", errLoginToView, a.check(err))
				}
				return err
			}

			token, err := a.account.Token()
			if err != nil {
				return fmt.Errorf("%w: %w", errLoginToView, err)
			}

			url, err := a.locator.ViewURL(doc.ID, token)
			if err != nil {
				return fmt.Errorf("%w: %w", errLoginToView, err)
			}

			engine := render.NewEngine(render.WithMaskedKeys(a.locator.MaskedKeys()...))
			defer engine.Close()

			if !isTerminalWriter(cmd.OutOrStdout()) {
				return summarise(cmd, engine, url, doc, page)
			}

			return tui.Run(cmd.Context(), tui.Options{
				DocumentID:  doc.ID,
				Filename:    doc.Filename,
				URL:         url,
				InitialPage: page,
				Loader:      engine,
				Theme:       a.state.Theme,
				Interactive: true,
			})
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to open at")
	return cmd
}

// summarise loads the document once and prints the opening frame.
func summarise(cmd *cobra.Command, engine *render.Engine, url string, doc *pdfsdk.Document, page int) error {
	session := viewer.NewSession(page)

	rendered, err := engine.LoadInto(cmd.Context(), url, session)
	if err != nil {
		return errors.New(session.Snapshot().Err)
	}

	st := session.Snapshot()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cyan.Render(doc.Filename), gray.Render(fmt.Sprintf("(#%d)", doc.ID)))
	fmt.Fprintln(cmd.OutOrStdout(), rendered.Describe(st.Page, st.Scale))
	return nil
}
