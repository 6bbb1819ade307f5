package coa

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// seedAccount is one row of a coa.json seed file.
type seedAccount struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Normal string `json:"normal"`
}

// MergeSeed reads a JSON seed file and returns the accounts whose codes are
// not yet present in existing. Merging (instead of replacing) means adding
// one account by hand never hides the rest of the seeded chart. Seed rows
// missing a code or name are skipped; missing type and normal side fall back
// to Asset/Debit.
func MergeSeed(existing []model.Account, r io.Reader) ([]model.Account, error) {
	var seed []seedAccount
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return nil, fmt.Errorf("parsing COA seed: %w", err)
	}

	existingCodes := make(map[string]bool, len(existing))
	for _, a := range existing {
		existingCodes[strings.TrimSpace(a.Code)] = true
	}

	var missing []model.Account
	for _, s := range seed {
		code := strings.TrimSpace(s.Code)
		name := strings.TrimSpace(s.Name)
		if code == "" || name == "" || existingCodes[code] {
			continue
		}
		existingCodes[code] = true

		acctType := model.AccountType(strings.TrimSpace(s.Type))
		if acctType == "" {
			acctType = model.AccountTypeAsset
		}
		normal := model.NormalSide(strings.TrimSpace(s.Normal))
		if normal == "" {
			normal = model.NormalDebit
		}

		missing = append(missing, model.Account{
			ID:     uuid.NewString(),
			Code:   code,
			Name:   name,
			Type:   acctType,
			Normal: normal,
		})
	}
	return missing, nil
}
