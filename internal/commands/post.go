package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/journal"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// entryFlags are the header fields shared by "post" and "entry edit".
type entryFlags struct {
	date          string
	ref           string
	description   string
	department    string
	paymentMethod string
	counterparty  string
	remarks       string
	lines         []string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "entry date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&f.ref, "ref", "", "entry reference, unique across the books (required)")
	cmd.Flags().StringVar(&f.description, "desc", "", "entry description (required)")
	cmd.Flags().StringVar(&f.department, "department", "", "department")
	cmd.Flags().StringVar(&f.paymentMethod, "method", "", "payment method")
	cmd.Flags().StringVar(&f.counterparty, "counterparty", "", "counterparty")
	cmd.Flags().StringVar(&f.remarks, "remarks", "", "remarks")
	cmd.Flags().StringArrayVar(&f.lines, "line", nil, "debit/credit leg as ACCOUNT,DEBIT,CREDIT (repeatable)")
}

func (f *entryFlags) header() journal.EntryInput {
	return journal.EntryInput{
		EntryDate:     f.date,
		Ref:           f.ref,
		Description:   f.description,
		Department:    f.department,
		PaymentMethod: f.paymentMethod,
		Counterparty:  f.counterparty,
		Remarks:       f.remarks,
	}
}

// lineInputs parses the repeated --line flags, resolving each account
// reference through the chart so codes and display text work as well as ids.
func (f *entryFlags) lineInputs(dir *coa.Directory) ([]journal.LineInput, error) {
	inputs := make([]journal.LineInput, 0, len(f.lines))
	for _, raw := range f.lines {
		parts := strings.SplitN(raw, ",", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("line %q: want ACCOUNT,DEBIT,CREDIT", raw)
		}
		inputs = append(inputs, journal.LineInput{
			AccountID: dir.Resolve(strings.TrimSpace(parts[0]), ""),
			Debit:     model.ParseAmount(parts[1]),
			Credit:    model.ParseAmount(parts[2]),
		})
	}
	return inputs, nil
}

func newPostCommand() *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post a journal entry",
		Example: `  ledgerbook post --date 2025-03-14 --ref INV-042 --desc "Office chairs" \
    --line "6100,250.00," --line "1000,,250.00"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext("")
			if err != nil {
				return err
			}
			return runPost(ctx, flags)
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("ref")
	_ = cmd.MarkFlagRequired("desc")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}

func runPost(ctx *cmdContext, flags entryFlags) error {
	accounts, err := ctx.store.LoadAccounts()
	if err != nil {
		return err
	}
	dir := coa.Build(accounts)

	lines, err := flags.lineInputs(dir)
	if err != nil {
		return err
	}

	refs, err := ctx.store.Refs("")
	if err != nil {
		return err
	}

	entry, batch, verrs := journal.NewService(dir).Prepare(flags.header(), lines, refs, time.Now())
	if len(verrs) > 0 {
		return validationFailure(verrs)
	}

	if err := ctx.store.AppendEntry(entry, batch); err != nil {
		return err
	}

	ctx.autoCommit("journal: post " + entry.Ref)
	fmt.Printf("Posted %s (%s, %d lines)\n", entry.Ref, entry.EntryDate, len(batch))
	return nil
}

// validationFailure folds a validation error list into a single CLI error,
// one violation per line.
func validationFailure(verrs []journal.ValidationError) error {
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = "  - " + ve.Error()
	}
	return fmt.Errorf("entry rejected:\n%s", strings.Join(msgs, "\n"))
}
