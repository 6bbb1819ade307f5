package coa

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// Header is the CSV header for chart-of-accounts.csv.
const Header = "id,code,name,type,normal,is_deleted"

const (
	numFields  = 6
	colID      = 0
	colCode    = 1
	colName    = 2
	colType    = 3
	colNormal  = 4
	colDeleted = 5
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv (including header).
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "code", "name", "type", "normal", "is_deleted"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colNormal] = string(acct.Normal)
	row[colDeleted] = strconv.FormatBool(acct.IsDeleted)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	deleted, err := strconv.ParseBool(record[colDeleted])
	if err != nil {
		return model.Account{}, fmt.Errorf("parsing is_deleted %q: %w", record[colDeleted], err)
	}

	return model.Account{
		ID:        record[colID],
		Code:      record[colCode],
		Name:      record[colName],
		Type:      model.AccountType(record[colType]),
		Normal:    model.NormalSide(record[colNormal]),
		IsDeleted: deleted,
	}, nil
}
