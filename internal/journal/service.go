package journal

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// Service assembles persistence batches for journal entries. It validates
// proposed entries against the current directory snapshot and emits the
// records persistence should insert; it performs no I/O itself.
type Service struct {
	dir *coa.Directory
}

// NewService creates a journal Service over a directory snapshot.
func NewService(dir *coa.Directory) *Service {
	return &Service{dir: dir}
}

// Prepare validates a proposed entry and, on success, returns the header
// record and line batch to insert. Each line carries the denormalized entry
// date, ref, and "code - name" account snapshot so later reads never need a
// join, and so resolution has a fallback if the account is ever re-keyed.
func (s *Service) Prepare(header EntryInput, lines []LineInput, refs RefChecker, now time.Time) (model.JournalEntry, []model.JournalLine, []ValidationError) {
	result, errs := ValidateEntry(header, lines, refs)
	if len(errs) > 0 {
		return model.JournalEntry{}, nil, errs
	}

	entry := model.JournalEntry{
		ID:            uuid.NewString(),
		EntryDate:     result.Header.EntryDate,
		Ref:           result.Header.Ref,
		Description:   result.Header.Description,
		Department:    result.Header.Department,
		PaymentMethod: result.Header.PaymentMethod,
		Counterparty:  result.Header.Counterparty,
		Remarks:       result.Header.Remarks,
	}

	batch := make([]model.JournalLine, len(result.Lines))
	for i, l := range result.Lines {
		var accountName string
		if a, ok := s.dir.Get(l.AccountID); ok {
			accountName = a.DisplayName()
		}
		batch[i] = model.JournalLine{
			ID:          uuid.NewString(),
			JournalID:   entry.ID,
			EntryDate:   entry.EntryDate,
			Ref:         entry.Ref,
			AccountRef:  l.AccountID,
			AccountName: accountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
			CreatedAt:   now,
		}
	}

	return entry, batch, nil
}

// Replacement describes an edit to an existing entry: the updated header
// plus a full replacement line set. Persistence applies it by updating the
// header, soft-deleting the old lines, and inserting the new batch.
type Replacement struct {
	Entry    model.JournalEntry
	NewLines []model.JournalLine
}

// PrepareReplacement validates an edited entry and builds its replacement
// batch. The existing entry keeps its id; refs should exclude the entry
// being edited so keeping its own ref is not flagged as a duplicate.
func (s *Service) PrepareReplacement(entryID string, header EntryInput, lines []LineInput, refs RefChecker, now time.Time) (Replacement, []ValidationError) {
	result, errs := ValidateEntry(header, lines, refs)
	if len(errs) > 0 {
		return Replacement{}, errs
	}

	entry := model.JournalEntry{
		ID:            entryID,
		EntryDate:     result.Header.EntryDate,
		Ref:           result.Header.Ref,
		Description:   result.Header.Description,
		Department:    result.Header.Department,
		PaymentMethod: result.Header.PaymentMethod,
		Counterparty:  result.Header.Counterparty,
		Remarks:       result.Header.Remarks,
	}

	batch := make([]model.JournalLine, len(result.Lines))
	for i, l := range result.Lines {
		var accountName string
		if a, ok := s.dir.Get(l.AccountID); ok {
			accountName = a.DisplayName()
		}
		batch[i] = model.JournalLine{
			ID:          uuid.NewString(),
			JournalID:   entryID,
			EntryDate:   entry.EntryDate,
			Ref:         entry.Ref,
			AccountRef:  l.AccountID,
			AccountName: accountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
			CreatedAt:   now,
		}
	}

	return Replacement{Entry: entry, NewLines: batch}, nil
}

// SoftDeleteTarget names one side of a cascading delete.
type SoftDeleteTarget string

const (
	TargetEntry SoftDeleteTarget = "entry"
	TargetLines SoftDeleteTarget = "lines"
)

// SoftDeleteOp is one logical is_deleted update.
type SoftDeleteOp struct {
	Target  SoftDeleteTarget
	EntryID string
}

// CascadeDelete returns the two operations that soft-delete an entry and its
// lines as one logical unit. Persistence must apply both or neither.
func CascadeDelete(entryID string) []SoftDeleteOp {
	return []SoftDeleteOp{
		{Target: TargetEntry, EntryID: entryID},
		{Target: TargetLines, EntryID: entryID},
	}
}
