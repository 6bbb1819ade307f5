package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/report"
)

func newLedgerCommand() *cobra.Command {
	var year, month string

	cmd := &cobra.Command{
		Use:   "ledger <account>",
		Short: "Show an account's ledger with running balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext("")
			if err != nil {
				return err
			}
			return runLedger(ctx, os.Stdout, args[0], ctx.period(year, month))
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "filter to entries in this year (YYYY)")
	cmd.Flags().StringVar(&month, "month", "", "filter to entries in this month (MM)")

	return cmd
}

func runLedger(ctx *cmdContext, out io.Writer, arg string, p report.Period) error {
	dir, lines, err := ctx.loadBooks()
	if err != nil {
		return err
	}

	a, err := resolveAccountArg(dir, arg)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Ledger for %s\n\n", a.DisplayName())

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "DATE\tREF\tDEBIT\tCREDIT\tBALANCE")
	count := 0
	for row := range report.Ledger(lines, dir, a.ID, p) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			row.EntryDate, row.Ref, row.Debit.String(), row.Credit.String(), row.Balance.String())
		count++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if count == 0 {
		fmt.Fprintln(out, "(no activity)")
	}
	return nil
}
