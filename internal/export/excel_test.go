package export

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
	"github.com/ledgerbook-dev/ledgerbook/internal/report"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestWorkbook(t *testing.T) {
	dir := coa.Build([]model.Account{
		{ID: "a1", Code: "1001", Name: "Cash", Type: model.AccountTypeAsset, Normal: model.NormalDebit},
		{ID: "a2", Code: "4001", Name: "Sales", Type: model.AccountTypeRevenue, Normal: model.NormalCredit},
		{ID: "a3", Code: "5001", Name: "Rent", Type: model.AccountTypeExpense, Normal: model.NormalDebit},
	})
	lines := dir.ResolveLines([]model.JournalLine{
		{ID: "l1", JournalID: "j1", EntryDate: "2025-03-01", Ref: "INV-1", AccountRef: "a1", Debit: dec("500")},
		{ID: "l2", JournalID: "j1", EntryDate: "2025-03-01", Ref: "INV-1", AccountRef: "a2", Credit: dec("500")},
	})

	path := filepath.Join(t.TempDir(), "books.xlsx")
	require.NoError(t, Workbook(dir, lines, report.Period{}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Trial Balance")
	assert.Contains(t, sheets, "1001 - Cash")
	assert.Contains(t, sheets, "4001 - Sales")
	// No activity, no ledger sheet.
	assert.NotContains(t, sheets, "5001 - Rent")
	assert.NotContains(t, sheets, "Sheet1")

	// Trial balance carries the posted amounts.
	v, err := f.GetCellValue("Trial Balance", "D2")
	require.NoError(t, err)
	assert.Equal(t, "500", v)
}

func TestWorkbookTruncatesLongSheetNames(t *testing.T) {
	dir := coa.Build([]model.Account{
		{ID: "a1", Code: "5099", Name: "Extremely Long Descriptive Expense Account Name", Type: model.AccountTypeExpense, Normal: model.NormalDebit},
		{ID: "a2", Code: "1001", Name: "Cash", Type: model.AccountTypeAsset, Normal: model.NormalDebit},
	})
	lines := dir.ResolveLines([]model.JournalLine{
		{ID: "l1", JournalID: "j1", EntryDate: "2025-03-01", Ref: "R1", AccountRef: "a1", Debit: dec("10")},
		{ID: "l2", JournalID: "j1", EntryDate: "2025-03-01", Ref: "R1", AccountRef: "a2", Credit: dec("10")},
	})

	path := filepath.Join(t.TempDir(), "books.xlsx")
	require.NoError(t, Workbook(dir, lines, report.Period{}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	for _, s := range f.GetSheetList() {
		assert.LessOrEqual(t, len(s), 31)
	}
}
