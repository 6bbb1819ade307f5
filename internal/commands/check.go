package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/journal"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the whole books for consistency problems",
		Long: "Check the whole books for consistency problems: unbalanced entries, " +
			"duplicate refs, entries with too few lines, dangling account references, " +
			"and lines whose entry is missing or deleted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext("")
			if err != nil {
				return err
			}
			return runCheck(ctx, os.Stdout)
		},
	}
	return cmd
}

func runCheck(ctx *cmdContext, out io.Writer) error {
	dir, lines, err := ctx.loadBooks()
	if err != nil {
		return err
	}
	entries, err := ctx.store.LoadEntries()
	if err != nil {
		return err
	}

	var problems []string

	// Index active lines per entry.
	byEntry := make(map[string][]model.ResolvedLine)
	for _, l := range lines {
		if !l.IsDeleted {
			byEntry[l.JournalID] = append(byEntry[l.JournalID], l)
		}
	}

	active := make(map[string]bool)
	seenRefs := make(map[string]string)
	checked := 0
	for _, e := range entries {
		if e.IsDeleted {
			continue
		}
		active[e.ID] = true
		checked++

		if prior, dup := seenRefs[e.Ref]; dup {
			problems = append(problems, fmt.Sprintf("entries %s and %s share ref %q", prior, e.ID, e.Ref))
		} else {
			seenRefs[e.Ref] = e.ID
		}

		entryLines := byEntry[e.ID]
		if len(entryLines) < 2 {
			problems = append(problems, fmt.Sprintf("entry %s (%s) has %d lines, want at least 2", e.Ref, e.ID, len(entryLines)))
		}

		debit := decimal.Zero
		credit := decimal.Zero
		for _, l := range entryLines {
			debit = debit.Add(l.Debit)
			credit = credit.Add(l.Credit)
			if !dir.Exists(l.ResolvedAccountID) {
				problems = append(problems, fmt.Sprintf("entry %s: line %s references unknown account %q", e.Ref, l.ID, l.AccountRef))
			}
		}
		if debit.Sub(credit).Abs().GreaterThan(journal.BalanceTolerance) {
			problems = append(problems, fmt.Sprintf("entry %s is unbalanced: debits %s, credits %s", e.Ref, debit, credit))
		}
	}

	for _, l := range lines {
		if !l.IsDeleted && !active[l.JournalID] {
			problems = append(problems, fmt.Sprintf("line %s belongs to missing or deleted entry %q", l.ID, l.JournalID))
		}
	}

	if len(problems) == 0 {
		fmt.Fprintf(out, "OK: %d entries checked, no problems found\n", checked)
		return nil
	}

	for _, p := range problems {
		fmt.Fprintf(out, "PROBLEM: %s\n", p)
	}
	return fmt.Errorf("%d problems in %d entries", len(problems), checked)
}
