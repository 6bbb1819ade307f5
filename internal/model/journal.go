package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the header of one balanced transaction.
type JournalEntry struct {
	ID            string
	EntryDate     string // ISO "YYYY-MM-DD"
	Ref           string // unique among non-deleted entries
	Description   string
	Department    string
	PaymentMethod string
	Counterparty  string
	Remarks       string
	IsDeleted     bool
}

// JournalLine is one debit or credit leg of an entry.
//
// EntryDate and Ref are denormalized copies of the header values so lines can
// be filtered and ordered without a join. AccountRef is the raw account
// reference exactly as stored at posting time: it may be an account id, a
// bare code, or a value that no longer matches anything.
type JournalLine struct {
	ID          string
	JournalID   string // owning entry; empty only for legacy unlinked rows
	EntryDate   string
	Ref         string
	AccountRef  string
	AccountName string // "code - name" snapshot at posting time
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	CreatedAt   time.Time // insertion order key
	IsDeleted   bool
}

// IsBlank reports whether neither side of the line was entered. Blank lines
// are treated as "not entered" and excluded from validation counts and
// balance totals.
func (l JournalLine) IsBlank() bool {
	return l.Debit.IsZero() && l.Credit.IsZero()
}

// ResolvedLine is a JournalLine annotated with the canonical account id the
// directory mapped its raw reference to. When resolution misses, the raw
// reference is carried through unchanged so the line still participates in
// every computation.
type ResolvedLine struct {
	JournalLine
	ResolvedAccountID string
}
