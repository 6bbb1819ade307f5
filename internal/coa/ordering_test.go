package coa

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

func TestSortOrdersByTypeThenCodeThenName(t *testing.T) {
	accounts := []model.Account{
		{Code: "5001", Name: "Rent", Type: model.AccountTypeExpense},
		{Code: "1010", Name: "Bank", Type: model.AccountTypeAsset},
		{Code: "1001", Name: "Cash", Type: model.AccountTypeAsset},
		{Code: "3001", Name: "Common Stock", Type: model.AccountTypeEquity},
		{Code: "2001", Name: "Payables", Type: model.AccountTypeLiability},
		{Code: "4001", Name: "Sales", Type: model.AccountTypeRevenue},
	}
	Sort(accounts)

	var codes []string
	for _, a := range accounts {
		codes = append(codes, a.Code)
	}
	assert.Equal(t, []string{"1001", "1010", "2001", "3001", "4001", "5001"}, codes)
}

func TestSortNonDigitCodesLast(t *testing.T) {
	accounts := []model.Account{
		{Code: "misc", Name: "Petty", Type: model.AccountTypeAsset},
		{Code: "1001", Name: "Cash", Type: model.AccountTypeAsset},
	}
	Sort(accounts)
	assert.Equal(t, "1001", accounts[0].Code)
	assert.Equal(t, "misc", accounts[1].Code)
}

func TestSortTiesBreakOnName(t *testing.T) {
	accounts := []model.Account{
		{Code: "1001", Name: "Savings", Type: model.AccountTypeAsset},
		{Code: "1001", Name: "Cash", Type: model.AccountTypeAsset},
	}
	Sort(accounts)
	assert.Equal(t, "Cash", accounts[0].Name)
}

func TestCodeNumStripsNonDigits(t *testing.T) {
	assert.Equal(t, 1001, codeNum("1001"))
	assert.Equal(t, 1001, codeNum("A-10.01"))
	assert.Equal(t, codeSortLast, codeNum(""))
	assert.Equal(t, codeSortLast, codeNum("cash"))
}
