package cli

import (
	"fmt"

	"github.com/rustyeddy/tradelog/internal/app"
	"github.com/rustyeddy/tradelog/report"
	"github.com/spf13/cobra"
)

func newReportCmd(rc *RootConfig) *cobra.Command {
	var (
		out    string
		asHTML bool
		show   bool
		width  int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the Markdown (or HTML) performance report",
		Long: `Generate a report with the cumulative and daily summary and every trade
sorted by time. The file is write-only; nothing reads it back.

Examples:
  tradelog report
  tradelog report --html --out report.html
  tradelog report --show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rc.withApp(func(a *app.App) error {
				if show {
					d, err := a.ReportData()
					if err != nil {
						return err
					}
					md, err := report.Markdown(d)
					if err != nil {
						return err
					}
					rendered, err := report.Terminal(md, width, !rc.NoColor)
					if err != nil {
						return err
					}
					fmt.Fprint(cmd.OutOrStdout(), rendered)
					return nil
				}

				path, err := a.ExportReport(out, asHTML)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Report written: %s\n", path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default from config)")
	cmd.Flags().BoolVar(&asHTML, "html", false, "write HTML instead of Markdown")
	cmd.Flags().BoolVar(&show, "show", false, "render in the terminal instead of writing a file")
	cmd.Flags().IntVar(&width, "width", 100, "wrap width for --show")
	return cmd
}

func newImportCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Replace the trade log with an external CSV file",
		Long: `Replace the whole trade log with the given CSV. The file is not checked
up front; rows with unreadable timestamps are skipped when the log is read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rc.withApp(func(a *app.App) error {
				n, err := a.Import(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %s: %d readable trade(s)\n", args[0], n)
				return nil
			})
		},
	}
}

func newOrgCmd(rc *RootConfig) *cobra.Command {
	var today bool

	cmd := &cobra.Command{
		Use:   "org",
		Short: "Print trades as Org-mode entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rc.withApp(func(a *app.App) error {
				s, err := a.Org(today)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&today, "today", false, "only today's trades")
	return cmd
}
