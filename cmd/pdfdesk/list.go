package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/openmined/pdfdesk/internal/pdfsdk"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"

	txtNoDocuments = "No PDFs uploaded yet"
)

func init() {
	rootCmd.AddCommand(newListCmd())
}

func newListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your PDFs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case outputTable, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unknown output format %q", output)
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.requireLogin(cmd.Context()); err != nil {
				return err
			}
			if err := a.library.Refresh(cmd.Context()); err != nil {
				return a.check(err)
			}

			return printDocuments(cmd.OutOrStdout(), a.library.Documents(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format (table, json, yaml)")
	return cmd
}

func printDocuments(w io.Writer, docs []*pdfsdk.Document, output string) error {
	switch output {
	case outputJSON:
		if docs == nil {
			docs = []*pdfsdk.Document{}
		}
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(docs) == 0 {
		_, err := fmt.Fprintln(w, gray.Render(txtNoDocuments))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(gray).
		Headers("ID", "FILENAME", "UPLOADED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return heading.Padding(0, 1)
			}
			return cell
		})

	for _, d := range docs {
		t.Row(strconv.FormatInt(d.ID, 10), d.Filename, humanize.Time(d.UploadedAt.Time))
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
