package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// EntriesHeader is the CSV header for journal-entries.csv.
const EntriesHeader = "id,entry_date,ref,description,department,payment_method,counterparty,remarks,is_deleted"

// LinesHeader is the CSV header for journal-lines.csv.
const LinesHeader = "id,journal_id,entry_date,ref,account_id,account_name,debit,credit,created_at,is_deleted"

const (
	entryFields     = 9
	colEntryID      = 0
	colEntryDate    = 1
	colEntryRef     = 2
	colEntryDesc    = 3
	colEntryDept    = 4
	colEntryPayment = 5
	colEntryCparty  = 6
	colEntryRemarks = 7
	colEntryDeleted = 8
)

const (
	lineFields     = 10
	colLineID      = 0
	colLineJournal = 1
	colLineDate    = 2
	colLineRef     = 3
	colLineAcct    = 4
	colLineAcctNm  = 5
	colLineDebit   = 6
	colLineCredit  = 7
	colLineCreated = 8
	colLineDeleted = 9
)

// ReadEntries reads all headers from a journal-entries.csv reader.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = entryFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading entries CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.JournalEntry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteEntries writes headers to a journal-entries.csv writer (including header row).
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(EntriesHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalEntry converts a JournalEntry to a CSV row.
func MarshalEntry(e model.JournalEntry) []string {
	row := make([]string, entryFields)
	row[colEntryID] = e.ID
	row[colEntryDate] = e.EntryDate
	row[colEntryRef] = e.Ref
	row[colEntryDesc] = e.Description
	row[colEntryDept] = e.Department
	row[colEntryPayment] = e.PaymentMethod
	row[colEntryCparty] = e.Counterparty
	row[colEntryRemarks] = e.Remarks
	row[colEntryDeleted] = strconv.FormatBool(e.IsDeleted)
	return row
}

// UnmarshalEntry converts a CSV row to a JournalEntry.
func UnmarshalEntry(record []string) (model.JournalEntry, error) {
	if len(record) != entryFields {
		return model.JournalEntry{}, fmt.Errorf("expected %d fields, got %d", entryFields, len(record))
	}

	deleted, err := strconv.ParseBool(record[colEntryDeleted])
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing is_deleted %q: %w", record[colEntryDeleted], err)
	}

	return model.JournalEntry{
		ID:            record[colEntryID],
		EntryDate:     record[colEntryDate],
		Ref:           record[colEntryRef],
		Description:   record[colEntryDesc],
		Department:    record[colEntryDept],
		PaymentMethod: record[colEntryPayment],
		Counterparty:  record[colEntryCparty],
		Remarks:       record[colEntryRemarks],
		IsDeleted:     deleted,
	}, nil
}

// AppendEntries appends headers to an existing journal-entries.csv writer (no header row).
func AppendEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// ReadLines reads all legs from a journal-lines.csv reader.
func ReadLines(r io.Reader) ([]model.JournalLine, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = lineFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading lines CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var lines []model.JournalLine
	for i, rec := range records[1:] {
		l, err := UnmarshalLine(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}

// WriteLines writes legs to a journal-lines.csv writer (including header row).
func WriteLines(w io.Writer, lines []model.JournalLine) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(LinesHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, l := range lines {
		if err := cw.Write(MarshalLine(l)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendLines appends legs to an existing journal-lines.csv writer (no header row).
func AppendLines(w io.Writer, lines []model.JournalLine) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, l := range lines {
		if err := cw.Write(MarshalLine(l)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalLine converts a JournalLine to a CSV row.
func MarshalLine(l model.JournalLine) []string {
	row := make([]string, lineFields)
	row[colLineID] = l.ID
	row[colLineJournal] = l.JournalID
	row[colLineDate] = l.EntryDate
	row[colLineRef] = l.Ref
	row[colLineAcct] = l.AccountRef
	row[colLineAcctNm] = l.AccountName

	if !l.Debit.IsZero() {
		row[colLineDebit] = l.Debit.String()
	}
	if !l.Credit.IsZero() {
		row[colLineCredit] = l.Credit.String()
	}

	if !l.CreatedAt.IsZero() {
		row[colLineCreated] = l.CreatedAt.Format(time.RFC3339Nano)
	}
	row[colLineDeleted] = strconv.FormatBool(l.IsDeleted)
	return row
}

// UnmarshalLine converts a CSV row to a JournalLine.
func UnmarshalLine(record []string) (model.JournalLine, error) {
	if len(record) != lineFields {
		return model.JournalLine{}, fmt.Errorf("expected %d fields, got %d", lineFields, len(record))
	}

	var debit, credit decimal.Decimal
	var err error

	if record[colLineDebit] != "" {
		debit, err = decimal.NewFromString(record[colLineDebit])
		if err != nil {
			return model.JournalLine{}, fmt.Errorf("parsing debit %q: %w", record[colLineDebit], err)
		}
	}

	if record[colLineCredit] != "" {
		credit, err = decimal.NewFromString(record[colLineCredit])
		if err != nil {
			return model.JournalLine{}, fmt.Errorf("parsing credit %q: %w", record[colLineCredit], err)
		}
	}

	var createdAt time.Time
	if record[colLineCreated] != "" {
		createdAt, err = time.Parse(time.RFC3339Nano, record[colLineCreated])
		if err != nil {
			return model.JournalLine{}, fmt.Errorf("parsing created_at %q: %w", record[colLineCreated], err)
		}
	}

	deleted, err := strconv.ParseBool(record[colLineDeleted])
	if err != nil {
		return model.JournalLine{}, fmt.Errorf("parsing is_deleted %q: %w", record[colLineDeleted], err)
	}

	return model.JournalLine{
		ID:          record[colLineID],
		JournalID:   record[colLineJournal],
		EntryDate:   record[colLineDate],
		Ref:         record[colLineRef],
		AccountRef:  record[colLineAcct],
		AccountName: record[colLineAcctNm],
		Debit:       debit,
		Credit:      credit,
		CreatedAt:   createdAt,
		IsDeleted:   deleted,
	}, nil
}
