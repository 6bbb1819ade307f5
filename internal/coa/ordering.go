package coa

import (
	"sort"
	"strings"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// codeSortLast sorts accounts whose code has no digits after every numeric code.
const codeSortLast = 999999999

var typeOrder = map[model.AccountType]int{
	model.AccountTypeAsset:     1,
	model.AccountTypeLiability: 2,
	model.AccountTypeEquity:    3,
	model.AccountTypeRevenue:   4,
	model.AccountTypeExpense:   5,
}

// Compare orders accounts for presentation: by type (Asset, Liability,
// Equity, Revenue, Expense), then by the numeric value embedded in the code,
// then by name. Every listing (directory, trial balance, exports) uses this
// one comparator.
func Compare(a, b model.Account) int {
	ta, ok := typeOrder[a.Type]
	if !ok {
		ta = 99
	}
	tb, ok := typeOrder[b.Type]
	if !ok {
		tb = 99
	}
	if ta != tb {
		return ta - tb
	}

	if ca, cb := codeNum(a.Code), codeNum(b.Code); ca != cb {
		if ca < cb {
			return -1
		}
		return 1
	}

	return strings.Compare(a.Name, b.Name)
}

// Sort sorts accounts in place using Compare.
func Sort(accounts []model.Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		return Compare(accounts[i], accounts[j]) < 0
	})
}

// codeNum extracts the numeric value of a code, ignoring non-digit
// characters. Codes with no digits sort last.
func codeNum(code string) int {
	n := 0
	seen := false
	for _, r := range code {
		if r < '0' || r > '9' {
			continue
		}
		seen = true
		n = n*10 + int(r-'0')
		if n > codeSortLast {
			return codeSortLast
		}
	}
	if !seen {
		return codeSortLast
	}
	return n
}
