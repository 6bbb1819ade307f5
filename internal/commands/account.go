package commands

import (
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
	"github.com/ledgerbook-dev/ledgerbook/internal/report"
)

func newAccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the chart of accounts",
	}

	cmd.AddCommand(newAccountAddCommand())
	cmd.AddCommand(newAccountListCommand())
	cmd.AddCommand(newAccountRenameCommand())
	cmd.AddCommand(newAccountDeleteCommand())
	cmd.AddCommand(newAccountSeedCommand())

	return cmd
}

func newAccountAddCommand() *cobra.Command {
	var code, name, accountType, normal string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account to the chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext("")
			if err != nil {
				return err
			}
			return runAccountAdd(ctx, code, name, accountType, normal)
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "account code (required)")
	_ = cmd.MarkFlagRequired("code")
	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&accountType, "type", "", "account type: Asset, Liability, Equity, Revenue, or Expense (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&normal, "normal", "", "normal balance side: Debit or Credit (default follows type)")

	return cmd
}

func runAccountAdd(ctx *cmdContext, code, name, accountType, normal string) error {
	t := model.AccountType(accountType)
	if !slices.Contains(model.AccountTypes, t) {
		return fmt.Errorf("unknown account type %q", accountType)
	}

	side := model.NormalSide(normal)
	switch side {
	case model.NormalDebit, model.NormalCredit:
	case "":
		side = model.NormalCredit
		if t == model.AccountTypeAsset || t == model.AccountTypeExpense {
			side = model.NormalDebit
		}
	default:
		return fmt.Errorf("unknown normal side %q", normal)
	}

	added, err := ctx.store.AddAccount(model.Account{
		Code:   code,
		Name:   name,
		Type:   t,
		Normal: side,
	})
	if err != nil {
		return err
	}

	ctx.autoCommit("account: add " + added.DisplayName())
	fmt.Printf("Added account %s (%s, normal %s)\n", added.DisplayName(), added.Type, added.Normal)
	return nil
}

func newAccountListCommand() *cobra.Command {
	var typeFilter, year, month string
	var withBalances bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext("")
			if err != nil {
				return err
			}
			return runAccountList(ctx, os.Stdout, typeFilter, withBalances, ctx.period(year, month))
		},
	}

	cmd.Flags().StringVar(&typeFilter, "type", "", "only show accounts of this type")
	cmd.Flags().BoolVar(&withBalances, "balances", false, "include each account's balance")
	cmd.Flags().StringVar(&year, "year", "", "balance period year (YYYY)")
	cmd.Flags().StringVar(&month, "month", "", "balance period month (MM)")

	return cmd
}

func runAccountList(ctx *cmdContext, out io.Writer, typeFilter string, withBalances bool, p report.Period) error {
	dir, lines, err := ctx.loadBooks()
	if err != nil {
		return err
	}

	var balances map[string]decimal.Decimal
	if withBalances {
		balances = report.Balances(lines, dir, p)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if withBalances {
		fmt.Fprintln(w, "CODE\tNAME\tTYPE\tNORMAL\tBALANCE")
	} else {
		fmt.Fprintln(w, "CODE\tNAME\tTYPE\tNORMAL")
	}
	for _, a := range dir.ByType(typeFilter) {
		if withBalances {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.Code, a.Name, a.Type, a.Normal, balances[a.ID].String())
		} else {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Code, a.Name, a.Type, a.Normal)
		}
	}
	return w.Flush()
}

func newAccountRenameCommand() *cobra.Command {
	var code, name string

	cmd := &cobra.Command{
		Use:   "rename <account>",
		Short: "Change an account's code or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext("")
			if err != nil {
				return err
			}
			return runAccountRename(ctx, args[0], code, name)
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "new account code")
	cmd.Flags().StringVar(&name, "name", "", "new account name")

	return cmd
}

func runAccountRename(ctx *cmdContext, arg, code, name string) error {
	if code == "" && name == "" {
		return fmt.Errorf("nothing to change: pass --code and/or --name")
	}

	accounts, err := ctx.store.LoadAccounts()
	if err != nil {
		return err
	}
	a, err := resolveAccountArg(coa.Build(accounts), arg)
	if err != nil {
		return err
	}

	err = ctx.store.UpdateAccount(a.ID, func(acc *model.Account) {
		if code != "" {
			acc.Code = code
		}
		if name != "" {
			acc.Name = name
		}
	})
	if err != nil {
		return err
	}

	ctx.autoCommit("account: rename " + a.DisplayName())
	fmt.Printf("Updated account %s\n", a.ID)
	return nil
}

func newAccountDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <account>",
		Short: "Soft-delete an account",
		Long: "Soft-delete an account. Existing journal lines keep their reference; " +
			"reports fall back to the line's recorded account name.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext("")
			if err != nil {
				return err
			}
			return runAccountDelete(ctx, args[0])
		},
	}
	return cmd
}

func runAccountDelete(ctx *cmdContext, arg string) error {
	accounts, err := ctx.store.LoadAccounts()
	if err != nil {
		return err
	}
	a, err := resolveAccountArg(coa.Build(accounts), arg)
	if err != nil {
		return err
	}

	if err := ctx.store.SoftDeleteAccount(a.ID); err != nil {
		return err
	}

	ctx.autoCommit("account: delete " + a.DisplayName())
	fmt.Printf("Deleted account %s\n", a.DisplayName())
	return nil
}

func newAccountSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Merge accounts from the books coa.json seed file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := loadContext("")
			if err != nil {
				return err
			}
			return runAccountSeed(ctx)
		},
	}
	return cmd
}

func runAccountSeed(ctx *cmdContext) error {
	added, err := ctx.store.SeedAccounts()
	if err != nil {
		return err
	}
	if added > 0 {
		ctx.autoCommit(fmt.Sprintf("account: seed %d accounts", added))
	}
	fmt.Printf("Seeded %d new accounts\n", added)
	return nil
}
