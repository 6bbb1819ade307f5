package report

import (
	"iter"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// Row is one ledger line with its running balance.
type Row struct {
	EntryDate string
	Ref       string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Balance   decimal.Decimal // running total after this line
	JournalID string          // empty for legacy unlinked rows
}

// Ledger produces the chronological running-balance sequence for one
// account. Lines are ordered by (entry date, ref) as a composite string key;
// two entries on the same date order by reference text. The sequence is
// restartable: each range re-seeds the running total at zero. An account
// with no matching lines yields an empty sequence.
func Ledger(lines []model.ResolvedLine, dir *coa.Directory, accountID string, p Period) iter.Seq[Row] {
	normal := model.NormalDebit
	if a, ok := dir.Get(accountID); ok {
		normal = a.Normal
	}

	var matched []model.ResolvedLine
	for _, l := range lines {
		if l.IsDeleted || accountKey(l) != accountID {
			continue
		}
		if !p.Matches(l.EntryDate) {
			continue
		}
		matched = append(matched, l)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if c := strings.Compare(matched[i].EntryDate, matched[j].EntryDate); c != 0 {
			return c < 0
		}
		return strings.Compare(matched[i].Ref, matched[j].Ref) < 0
	})

	return func(yield func(Row) bool) {
		running := decimal.Zero
		for _, l := range matched {
			running = running.Add(signedDelta(l.JournalLine, normal))
			row := Row{
				EntryDate: l.EntryDate,
				Ref:       l.Ref,
				Debit:     l.Debit,
				Credit:    l.Credit,
				Balance:   running,
				JournalID: l.JournalID,
			}
			if !yield(row) {
				return
			}
		}
	}
}
