package coa

import (
	"strings"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// Directory provides in-memory lookup over the chart of accounts. It indexes
// the non-deleted account set by id and by code and resolves the raw account
// references stored on journal lines back to canonical account ids.
//
// A Directory is a value built from a snapshot of the account list; it never
// mutates accounts or lines. Rebuild it whenever the account set changes.
type Directory struct {
	accounts []model.Account
	byID     map[string]model.Account
	byCode   map[string]model.Account
}

// Build creates a Directory from a slice of accounts. Deleted accounts are
// kept in the listing slice (historical lines may still reference them) but
// excluded from both indices.
func Build(accounts []model.Account) *Directory {
	byID := make(map[string]model.Account, len(accounts))
	byCode := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		if a.IsDeleted {
			continue
		}
		if id := strings.TrimSpace(a.ID); id != "" {
			byID[id] = a
		}
		if code := strings.TrimSpace(a.Code); code != "" {
			byCode[code] = a
		}
	}
	return &Directory{accounts: accounts, byID: byID, byCode: byCode}
}

// All returns every account in the snapshot, deleted ones included.
func (d *Directory) All() []model.Account {
	return d.accounts
}

// Active returns the non-deleted accounts in presentation order.
func (d *Directory) Active() []model.Account {
	var result []model.Account
	for _, a := range d.accounts {
		if !a.IsDeleted {
			result = append(result, a)
		}
	}
	Sort(result)
	return result
}

// ByType returns the non-deleted accounts of the given type, in presentation
// order. The filter value "All" (or empty) returns every active account.
func (d *Directory) ByType(filter string) []model.Account {
	if filter == "" || filter == "All" {
		return d.Active()
	}
	var result []model.Account
	for _, a := range d.accounts {
		if !a.IsDeleted && a.Type == model.AccountType(filter) {
			result = append(result, a)
		}
	}
	Sort(result)
	return result
}

// Get returns a non-deleted account by id.
func (d *Directory) Get(id string) (model.Account, bool) {
	a, ok := d.byID[id]
	return a, ok
}

// GetByCode returns a non-deleted account by code.
func (d *Directory) GetByCode(code string) (model.Account, bool) {
	a, ok := d.byCode[code]
	return a, ok
}

// Exists reports whether an account id is known.
func (d *Directory) Exists(id string) bool {
	_, ok := d.byID[id]
	return ok
}

// Resolve maps a line's raw account reference to a canonical account id.
//
// Lines are written with whatever identifier was resolvable at entry time: a
// picker may have emitted a code while the directory was stale, and accounts
// may later be re-imported under new ids. Resolution is best effort, in
// order: exact id match, exact code match, code parsed from the denormalized
// "code - name" snapshot. A miss returns the raw reference unchanged; a
// line must never silently disappear from the books because its reference
// went stale.
func (d *Directory) Resolve(rawRef, accountName string) string {
	raw := strings.TrimSpace(rawRef)
	if raw == "" {
		return ""
	}

	if _, ok := d.byID[raw]; ok {
		return raw
	}

	if a, ok := d.byCode[raw]; ok {
		return a.ID
	}

	if code := parseCodeFromDisplayName(accountName); code != "" {
		if a, ok := d.byCode[code]; ok {
			return a.ID
		}
	}

	return raw
}

// ResolveLines annotates every line with its resolved account id.
func (d *Directory) ResolveLines(lines []model.JournalLine) []model.ResolvedLine {
	resolved := make([]model.ResolvedLine, len(lines))
	for i, l := range lines {
		resolved[i] = model.ResolvedLine{
			JournalLine:       l,
			ResolvedAccountID: d.Resolve(l.AccountRef, l.AccountName),
		}
	}
	return resolved
}

// FromDisplayText maps exact (case-insensitive) "code - name" picker text to
// an account id. Returns empty when no account renders to that text.
func (d *Directory) FromDisplayText(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return ""
	}
	for _, a := range d.accounts {
		if a.IsDeleted {
			continue
		}
		if strings.ToLower(a.DisplayName()) == t {
			return a.ID
		}
	}
	return ""
}

// parseCodeFromDisplayName extracts the code from a "code - name" snapshot.
// The split is on the first " - " only; a name that itself contains " - " is
// unaffected.
func parseCodeFromDisplayName(accountName string) string {
	t := strings.TrimSpace(accountName)
	code, _, found := strings.Cut(t, " - ")
	if !found {
		return ""
	}
	return strings.TrimSpace(code)
}
