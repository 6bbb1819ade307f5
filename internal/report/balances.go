package report

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// accountKey is the id a line's amounts accumulate under: the resolved id
// when resolution succeeded, otherwise the raw reference so dangling lines
// still show up somewhere instead of vanishing.
func accountKey(l model.ResolvedLine) string {
	if l.ResolvedAccountID != "" {
		return l.ResolvedAccountID
	}
	return l.AccountRef
}

// signedDelta is a line's contribution to its account balance, honoring the
// account's normal side: debit-normal accounts grow with debits,
// credit-normal accounts grow with credits.
func signedDelta(l model.JournalLine, normal model.NormalSide) decimal.Decimal {
	if normal == model.NormalCredit {
		return l.Credit.Sub(l.Debit)
	}
	return l.Debit.Sub(l.Credit)
}

// Balances computes a signed balance per account id over every non-deleted
// line passing the period filter. Lines whose account is entirely unknown
// fall back to debit-normal so a stale reference can never make the
// computation fail. Accumulation order does not affect the result.
func Balances(lines []model.ResolvedLine, dir *coa.Directory, p Period) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)

	for _, l := range lines {
		if l.IsDeleted || !p.Matches(l.EntryDate) {
			continue
		}
		if l.IsBlank() {
			continue
		}

		key := accountKey(l)
		normal := model.NormalDebit
		if a, ok := dir.Get(key); ok {
			normal = a.Normal
		}

		balances[key] = balances[key].Add(signedDelta(l.JournalLine, normal))
	}

	return balances
}
