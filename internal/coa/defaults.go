package coa

import (
	"github.com/google/uuid"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// StarterChart returns a minimal chart of accounts for new books. Each call
// assigns fresh ids; codes are the stable handles.
func StarterChart() []model.Account {
	chart := []model.Account{
		{Code: "1001", Name: "Cash", Type: model.AccountTypeAsset, Normal: model.NormalDebit},
		{Code: "1010", Name: "Bank", Type: model.AccountTypeAsset, Normal: model.NormalDebit},
		{Code: "1200", Name: "Accounts Receivable", Type: model.AccountTypeAsset, Normal: model.NormalDebit},
		{Code: "2001", Name: "Accounts Payable", Type: model.AccountTypeLiability, Normal: model.NormalCredit},
		{Code: "3001", Name: "Common Stock", Type: model.AccountTypeEquity, Normal: model.NormalCredit},
		{Code: "3100", Name: "Retained Earnings", Type: model.AccountTypeEquity, Normal: model.NormalCredit},
		{Code: "4001", Name: "Sales Revenue", Type: model.AccountTypeRevenue, Normal: model.NormalCredit},
		{Code: "4100", Name: "Service Revenue", Type: model.AccountTypeRevenue, Normal: model.NormalCredit},
		{Code: "5001", Name: "Rent Expense", Type: model.AccountTypeExpense, Normal: model.NormalDebit},
		{Code: "5010", Name: "Salaries Expense", Type: model.AccountTypeExpense, Normal: model.NormalDebit},
		{Code: "5020", Name: "Utilities Expense", Type: model.AccountTypeExpense, Normal: model.NormalDebit},
	}
	for i := range chart {
		chart[i].ID = uuid.NewString()
	}
	return chart
}
