package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceTolerance is the fixed epsilon for debit/credit equality. It exists
// to absorb binary floating-point rounding in upstream callers, not as a
// material tolerance; entries further apart than this are rejected.
var BalanceTolerance = decimal.NewFromFloat(0.00001)

// FailureCode identifies why a proposed entry was rejected.
type FailureCode string

const (
	FailMissingRequiredField FailureCode = "missing_required_field"
	FailInsufficientLines    FailureCode = "insufficient_lines"
	FailUnbalanced           FailureCode = "unbalanced"
	FailDuplicateReference   FailureCode = "duplicate_reference"
)

// ValidationError describes a single rule violation on a proposed entry.
// These are result values for the caller to surface; the engine's internal
// state is never affected.
type ValidationError struct {
	Code        FailureCode
	Field       string // set for missing_required_field
	Description string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s [%s]: %s", e.Code, e.Field, e.Description)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// RefChecker tests whether a ref already belongs to an existing non-deleted
// entry. Uniqueness is ultimately enforced by persistence; the validator
// produces the same verdict locally so callers can reject before submission.
type RefChecker interface {
	RefExists(ref string) bool
}

// EntryInput is a proposed journal entry header.
type EntryInput struct {
	EntryDate     string
	Ref           string
	Description   string
	Department    string
	PaymentMethod string
	Counterparty  string
	Remarks       string
}

// LineInput is one candidate debit/credit leg of a proposed entry.
type LineInput struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// Result is the cleaned, verified form of an accepted entry.
type Result struct {
	Header      EntryInput // trimmed
	Lines       []LineInput
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// ValidateEntry decides whether a proposed entry may be posted.
//
// Candidate lines without an account reference, or with neither side
// entered, are dropped as "not entered" rather than rejected. All violations
// are returned, not just the first. On success the cleaned line set and
// verified totals are returned; nothing is persisted here.
func ValidateEntry(header EntryInput, lines []LineInput, refs RefChecker) (Result, []ValidationError) {
	var errs []ValidationError

	header.EntryDate = strings.TrimSpace(header.EntryDate)
	header.Ref = strings.TrimSpace(header.Ref)
	header.Description = strings.TrimSpace(header.Description)
	header.Department = strings.TrimSpace(header.Department)
	header.PaymentMethod = strings.TrimSpace(header.PaymentMethod)
	header.Counterparty = strings.TrimSpace(header.Counterparty)
	header.Remarks = strings.TrimSpace(header.Remarks)

	required := []struct {
		field string
		value string
	}{
		{"entry_date", header.EntryDate},
		{"ref", header.Ref},
		{"description", header.Description},
	}
	for _, r := range required {
		if r.value == "" {
			errs = append(errs, ValidationError{
				Code:        FailMissingRequiredField,
				Field:       r.field,
				Description: "required field is blank",
			})
		}
	}

	var usable []LineInput
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, l := range lines {
		l.AccountID = strings.TrimSpace(l.AccountID)
		if l.AccountID == "" {
			continue
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			continue
		}
		usable = append(usable, l)
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}

	if len(usable) < 2 {
		errs = append(errs, ValidationError{
			Code:        FailInsufficientLines,
			Description: fmt.Sprintf("need at least 2 usable lines, got %d", len(usable)),
		})
	}

	if diff := totalDebit.Sub(totalCredit).Abs(); diff.GreaterThan(BalanceTolerance) {
		errs = append(errs, ValidationError{
			Code:        FailUnbalanced,
			Description: fmt.Sprintf("debits (%s) != credits (%s), difference %s", totalDebit.String(), totalCredit.String(), diff.String()),
		})
	}

	if refs != nil && header.Ref != "" && refs.RefExists(header.Ref) {
		errs = append(errs, ValidationError{
			Code:        FailDuplicateReference,
			Description: fmt.Sprintf("ref %q already exists", header.Ref),
		})
	}

	if len(errs) > 0 {
		return Result{}, errs
	}

	return Result{
		Header:      header,
		Lines:       usable,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}, nil
}
