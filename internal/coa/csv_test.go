package coa

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

func TestReadWriteAccounts(t *testing.T) {
	accounts := []model.Account{
		{ID: "a1", Code: "1001", Name: "Cash", Type: model.AccountTypeAsset, Normal: model.NormalDebit},
		{ID: "a2", Code: "3001", Name: "Common Stock", Type: model.AccountTypeEquity, Normal: model.NormalCredit, IsDeleted: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, accounts))

	got, err := ReadAccounts(&buf)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)
}

func TestReadAccountsBadDeletedFlag(t *testing.T) {
	in := Header + "\na1,1001,Cash,Asset,Debit,maybe\n"
	_, err := ReadAccounts(strings.NewReader(in))
	assert.Error(t, err)
}

func TestReadAccountsEmpty(t *testing.T) {
	got, err := ReadAccounts(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Nil(t, got)
}
