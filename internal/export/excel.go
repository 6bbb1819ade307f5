// Package export writes reports to Excel workbooks.
package export

import (
	"fmt"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
	"github.com/ledgerbook-dev/ledgerbook/internal/report"
)

// Workbook writes a trial balance sheet plus one ledger sheet per account
// with activity, and saves the file at filePath.
func Workbook(dir *coa.Directory, lines []model.ResolvedLine, p report.Period, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	balances := report.Balances(lines, dir, p)
	tb := report.Trial(dir, balances)

	if err := writeTrialSheet(f, tb); err != nil {
		return err
	}

	for _, a := range dir.Active() {
		rows := slices.Collect(report.Ledger(lines, dir, a.ID, p))
		if len(rows) == 0 {
			continue
		}
		if err := writeLedgerSheet(f, a, rows); err != nil {
			return err
		}
	}

	f.DeleteSheet("Sheet1")
	return f.SaveAs(filePath)
}

func writeTrialSheet(f *excelize.File, tb report.TrialBalance) error {
	const sheet = "Trial Balance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("creating trial balance sheet: %w", err)
	}

	headers := []string{"Code", "Name", "Type", "Debit", "Credit"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheet, "A1", "E1", headerStyle)

	for i, row := range tb.Rows {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.Account.Code)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Account.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), string(row.Account.Type))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Debit.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.Credit.InexactFloat64())
	}

	totalRow := len(tb.Rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), tb.TotalDebit.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), tb.TotalCredit.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow+1), tb.Status())

	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "C", 12)
	f.SetColWidth(sheet, "D", "E", 14)

	f.SetActiveSheet(index)
	return nil
}

func writeLedgerSheet(f *excelize.File, a model.Account, rows []report.Row) error {
	// Sheet names are capped at 31 chars by the format.
	sheet := a.DisplayName()
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating ledger sheet for %s: %w", a.Code, err)
	}

	headers := []string{"Date", "Ref", "Debit", "Credit", "Balance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, row := range rows {
		r := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", r), row.EntryDate)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.Ref)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Debit.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Credit.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("E%d", r), row.Balance.InexactFloat64())
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "B", 14)
	f.SetColWidth(sheet, "C", "E", 14)
	return nil
}
