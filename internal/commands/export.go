package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/export"
	"github.com/ledgerbook-dev/ledgerbook/internal/report"
)

func newExportCommand() *cobra.Command {
	var out, year, month string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the trial balance and account ledgers to an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext("")
			if err != nil {
				return err
			}
			return runExport(ctx, out, ctx.period(year, month))
		},
	}

	cmd.Flags().StringVar(&out, "out", "ledgerbook.xlsx", "output file path")
	cmd.Flags().StringVar(&year, "year", "", "filter to entries in this year (YYYY)")
	cmd.Flags().StringVar(&month, "month", "", "filter to entries in this month (MM)")

	return cmd
}

func runExport(ctx *cmdContext, out string, p report.Period) error {
	dir, lines, err := ctx.loadBooks()
	if err != nil {
		return err
	}

	if !filepath.IsAbs(out) {
		out = filepath.Join(ctx.root, out)
	}
	if err := export.Workbook(dir, lines, p, out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	fmt.Printf("Exported %s\n", out)
	return nil
}
