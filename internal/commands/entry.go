package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/journal"
)

func newEntryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Edit or delete posted journal entries",
	}

	cmd.AddCommand(newEntryEditCommand())
	cmd.AddCommand(newEntryDeleteCommand())

	return cmd
}

func newEntryEditCommand() *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "edit <ref-or-id>",
		Short: "Replace a posted entry's header and lines",
		Long: "Replace a posted entry's header and lines. The entry keeps its id; " +
			"the old lines are soft-deleted and the new line set is appended.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext("")
			if err != nil {
				return err
			}
			return runEntryEdit(ctx, args[0], flags)
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("ref")
	_ = cmd.MarkFlagRequired("desc")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}

func runEntryEdit(ctx *cmdContext, arg string, flags entryFlags) error {
	entries, err := ctx.store.LoadEntries()
	if err != nil {
		return err
	}
	target, err := findEntry(entries, arg)
	if err != nil {
		return err
	}

	accounts, err := ctx.store.LoadAccounts()
	if err != nil {
		return err
	}
	dir := coa.Build(accounts)

	lines, err := flags.lineInputs(dir)
	if err != nil {
		return err
	}

	// The entry may keep its own ref without tripping the duplicate check.
	refs, err := ctx.store.Refs(target.ID)
	if err != nil {
		return err
	}

	rep, verrs := journal.NewService(dir).PrepareReplacement(target.ID, flags.header(), lines, refs, time.Now())
	if len(verrs) > 0 {
		return validationFailure(verrs)
	}

	if err := ctx.store.ReplaceEntry(rep); err != nil {
		return err
	}

	ctx.autoCommit("journal: edit " + rep.Entry.Ref)
	fmt.Printf("Replaced %s (%d lines)\n", rep.Entry.Ref, len(rep.NewLines))
	return nil
}

func newEntryDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <ref-or-id>",
		Short: "Soft-delete an entry and all of its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext("")
			if err != nil {
				return err
			}
			return runEntryDelete(ctx, args[0])
		},
	}
	return cmd
}

func runEntryDelete(ctx *cmdContext, arg string) error {
	entries, err := ctx.store.LoadEntries()
	if err != nil {
		return err
	}
	target, err := findEntry(entries, arg)
	if err != nil {
		return err
	}

	if err := ctx.store.ApplySoftDelete(journal.CascadeDelete(target.ID)); err != nil {
		return err
	}

	ctx.autoCommit("journal: delete " + target.Ref)
	fmt.Printf("Deleted %s\n", target.Ref)
	return nil
}
