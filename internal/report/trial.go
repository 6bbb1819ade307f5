package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/journal"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// TrialRow is one account's balance split into debit and credit columns.
// At most one column is nonzero.
type TrialRow struct {
	Account model.Account
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// TrialBalance is the full report: every active account (zero balances
// included) in presentation order, plus the column totals.
type TrialBalance struct {
	Rows        []TrialRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// Difference returns |total debit - total credit|.
func (tb TrialBalance) Difference() decimal.Decimal {
	return tb.TotalDebit.Sub(tb.TotalCredit).Abs()
}

// Balanced reports whether the columns tie within the entry tolerance.
func (tb TrialBalance) Balanced() bool {
	return tb.Difference().LessThan(journal.BalanceTolerance)
}

// Status returns the display verdict for the report footer.
func (tb TrialBalance) Status() string {
	if tb.Balanced() {
		return "Balanced"
	}
	return fmt.Sprintf("Not balanced (difference: %s)", tb.Difference().String())
}

// Trial splits each account's aggregated balance into debit/credit columns
// per its normal side: a positive balance lands on the normal side, a
// negative balance flips to the opposite column.
func Trial(dir *coa.Directory, balances map[string]decimal.Decimal) TrialBalance {
	var tb TrialBalance
	tb.TotalDebit = decimal.Zero
	tb.TotalCredit = decimal.Zero

	for _, a := range dir.Active() {
		bal := balances[a.ID]

		var debit, credit decimal.Decimal
		if a.Normal == model.NormalCredit {
			credit = decimal.Max(bal, decimal.Zero)
			debit = decimal.Max(bal.Neg(), decimal.Zero)
		} else {
			debit = decimal.Max(bal, decimal.Zero)
			credit = decimal.Max(bal.Neg(), decimal.Zero)
		}

		tb.TotalDebit = tb.TotalDebit.Add(debit)
		tb.TotalCredit = tb.TotalCredit.Add(credit)
		tb.Rows = append(tb.Rows, TrialRow{Account: a, Debit: debit, Credit: credit})
	}

	return tb
}
