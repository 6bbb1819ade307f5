package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
	"github.com/ledgerbook-dev/ledgerbook/internal/report"
)

func newTrialCommand() *cobra.Command {
	var year, month string
	var listYears bool

	cmd := &cobra.Command{
		Use:   "trial",
		Short: "Show the trial balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext("")
			if err != nil {
				return err
			}
			if listYears {
				return runTrialYears(ctx, os.Stdout)
			}
			return runTrial(ctx, os.Stdout, ctx.period(year, month))
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "filter to entries in this year (YYYY)")
	cmd.Flags().StringVar(&month, "month", "", "filter to entries in this month (MM)")
	cmd.Flags().BoolVar(&listYears, "list-years", false, "list the years present in the journal and exit")

	return cmd
}

func runTrial(ctx *cmdContext, out io.Writer, p report.Period) error {
	dir, lines, err := ctx.loadBooks()
	if err != nil {
		return err
	}

	tb := report.Trial(dir, report.Balances(lines, dir, p))

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "CODE\tACCOUNT\tTYPE\tDEBIT\tCREDIT")
	for _, row := range tb.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			row.Account.Code, row.Account.Name, row.Account.Type, row.Debit.String(), row.Credit.String())
	}
	fmt.Fprintf(w, "\tTOTAL\t\t%s\t%s\n", tb.TotalDebit.String(), tb.TotalCredit.String())
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s\n", tb.Status())
	return nil
}

func runTrialYears(ctx *cmdContext, out io.Writer) error {
	lines, err := ctx.store.LoadLines()
	if err != nil {
		return err
	}

	active := make([]model.JournalLine, 0, len(lines))
	for _, l := range lines {
		if !l.IsDeleted {
			active = append(active, l)
		}
	}

	for _, y := range report.Years(active) {
		fmt.Fprintln(out, y)
	}
	return nil
}
