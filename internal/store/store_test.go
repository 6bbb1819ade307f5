package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/journal"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := Open(t.TempDir())
	require.NoError(t, s.Init(coa.StarterChart()))
	return s
}

func postEntry(t *testing.T, s *Store, ref string, debitCode, creditCode, amount string) model.JournalEntry {
	t.Helper()

	accounts, err := s.LoadAccounts()
	require.NoError(t, err)
	dir := coa.Build(accounts)
	debit, ok := dir.GetByCode(debitCode)
	require.True(t, ok)
	credit, ok := dir.GetByCode(creditCode)
	require.True(t, ok)

	svc := journal.NewService(dir)
	refs, err := s.Refs("")
	require.NoError(t, err)

	header := journal.EntryInput{EntryDate: "2026-01-15", Ref: ref, Description: "test entry"}
	lines := []journal.LineInput{
		{AccountID: debit.ID, Debit: dec(amount)},
		{AccountID: credit.ID, Credit: dec(amount)},
	}
	entry, batch, errs := svc.Prepare(header, lines, refs, time.Now().UTC())
	require.Empty(t, errs)
	require.NoError(t, s.AppendEntry(entry, batch))
	return entry
}

func TestInitCreatesFiles(t *testing.T) {
	dir := t.TempDir()
	s := Open(filepath.Join(dir, "books"))
	require.NoError(t, s.Init(coa.StarterChart()))

	for _, name := range []string{"chart-of-accounts.csv", "journal-entries.csv", "journal-lines.csv"} {
		_, err := os.Stat(filepath.Join(dir, "books", name))
		assert.NoError(t, err, name)
	}

	accounts, err := s.LoadAccounts()
	require.NoError(t, err)
	assert.NotEmpty(t, accounts)
}

func TestLoadMissingFilesMeansEmptyBooks(t *testing.T) {
	s := Open(t.TempDir())

	accounts, err := s.LoadAccounts()
	require.NoError(t, err)
	assert.Nil(t, accounts)

	lines, err := s.LoadLines()
	require.NoError(t, err)
	assert.Nil(t, lines)
}

func TestAddAccountRejectsDuplicateCode(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddAccount(model.Account{Code: "1001", Name: "Other Cash", Type: model.AccountTypeAsset, Normal: model.NormalDebit})
	assert.ErrorIs(t, err, ErrDuplicateCode)

	added, err := s.AddAccount(model.Account{Code: "1900", Name: "Prepaid Rent", Type: model.AccountTypeAsset, Normal: model.NormalDebit})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
}

func TestAddAccountAllowsReusingDeletedCode(t *testing.T) {
	s := newTestStore(t)

	accounts, err := s.LoadAccounts()
	require.NoError(t, err)
	require.NoError(t, s.SoftDeleteAccount(accounts[0].ID))

	_, err = s.AddAccount(model.Account{Code: accounts[0].Code, Name: "Cash v2", Type: model.AccountTypeAsset, Normal: model.NormalDebit})
	assert.NoError(t, err)
}

func TestUpdateAccountKeepsID(t *testing.T) {
	s := newTestStore(t)
	accounts, err := s.LoadAccounts()
	require.NoError(t, err)
	id := accounts[0].ID

	require.NoError(t, s.UpdateAccount(id, func(a *model.Account) {
		a.Name = "Cash on Hand"
		a.ID = "overwritten"
	}))

	reloaded, err := s.LoadAccounts()
	require.NoError(t, err)
	assert.Equal(t, id, reloaded[0].ID, "ids are immutable")
	assert.Equal(t, "Cash on Hand", reloaded[0].Name)

	assert.ErrorIs(t, s.UpdateAccount("nope", func(*model.Account) {}), ErrNotFound)
}

func TestUpdateAccountRejectsDuplicateCode(t *testing.T) {
	s := newTestStore(t)
	accounts, err := s.LoadAccounts()
	require.NoError(t, err)
	cash, bank := accounts[0], accounts[1]

	err = s.UpdateAccount(bank.ID, func(a *model.Account) {
		a.Code = cash.Code
	})
	assert.ErrorIs(t, err, ErrDuplicateCode)

	reloaded, err := s.LoadAccounts()
	require.NoError(t, err)
	assert.Equal(t, bank.Code, reloaded[1].Code, "rejected update must not be persisted")

	// Keeping its own code is not a collision.
	assert.NoError(t, s.UpdateAccount(cash.ID, func(a *model.Account) {
		a.Name = "Petty Cash"
	}))

	// A deleted account's code is free for the taking.
	require.NoError(t, s.SoftDeleteAccount(cash.ID))
	assert.NoError(t, s.UpdateAccount(bank.ID, func(a *model.Account) {
		a.Code = cash.Code
	}))
}

func TestAppendEntryAndReload(t *testing.T) {
	s := newTestStore(t)
	entry := postEntry(t, s, "JE-001", "1001", "3001", "500")

	entries, err := s.LoadEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)

	lines, err := s.LoadLines()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, entry.ID, lines[0].JournalID)
	assert.Contains(t, lines[0].AccountName, " - ")
}

func TestAppendEntryRejectsDuplicateRef(t *testing.T) {
	s := newTestStore(t)
	postEntry(t, s, "JE-001", "1001", "3001", "500")

	err := s.AppendEntry(model.JournalEntry{ID: "x", Ref: "JE-001", EntryDate: "2026-01-16", Description: "dup"}, nil)
	assert.ErrorIs(t, err, ErrDuplicateRef)
}

func TestRefsExcludesDeletedAndSelf(t *testing.T) {
	s := newTestStore(t)
	e1 := postEntry(t, s, "JE-001", "1001", "3001", "500")
	postEntry(t, s, "JE-002", "1001", "3001", "10")

	refs, err := s.Refs("")
	require.NoError(t, err)
	assert.True(t, refs.RefExists("JE-001"))

	refs, err = s.Refs(e1.ID)
	require.NoError(t, err)
	assert.False(t, refs.RefExists("JE-001"), "the edited entry's own ref is not a collision")
	assert.True(t, refs.RefExists("JE-002"))

	require.NoError(t, s.ApplySoftDelete(journal.CascadeDelete(e1.ID)))
	refs, err = s.Refs("")
	require.NoError(t, err)
	assert.False(t, refs.RefExists("JE-001"), "deleted entries free their ref")
}

func TestApplySoftDeleteCascades(t *testing.T) {
	s := newTestStore(t)
	e1 := postEntry(t, s, "JE-001", "1001", "3001", "500")
	postEntry(t, s, "JE-002", "1001", "3001", "10")

	require.NoError(t, s.ApplySoftDelete(journal.CascadeDelete(e1.ID)))

	entries, err := s.LoadEntries()
	require.NoError(t, err)
	assert.True(t, entries[0].IsDeleted)
	assert.False(t, entries[1].IsDeleted)

	lines, err := s.LoadLines()
	require.NoError(t, err)
	for _, l := range lines {
		assert.Equal(t, l.JournalID == e1.ID, l.IsDeleted)
	}
}

func TestApplySoftDeleteUnknownEntryChangesNothing(t *testing.T) {
	s := newTestStore(t)
	postEntry(t, s, "JE-001", "1001", "3001", "500")

	err := s.ApplySoftDelete(journal.CascadeDelete("ghost"))
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err := s.LoadEntries()
	require.NoError(t, err)
	assert.False(t, entries[0].IsDeleted)
}

func TestReplaceEntry(t *testing.T) {
	s := newTestStore(t)
	e1 := postEntry(t, s, "JE-001", "1001", "3001", "500")

	accounts, err := s.LoadAccounts()
	require.NoError(t, err)
	dir := coa.Build(accounts)
	cash, _ := dir.GetByCode("1001")
	stock, _ := dir.GetByCode("3001")

	svc := journal.NewService(dir)
	refs, err := s.Refs(e1.ID)
	require.NoError(t, err)

	rep, errs := svc.PrepareReplacement(e1.ID,
		journal.EntryInput{EntryDate: "2026-01-20", Ref: "JE-001", Description: "corrected"},
		[]journal.LineInput{
			{AccountID: cash.ID, Debit: dec("750")},
			{AccountID: stock.ID, Credit: dec("750")},
		}, refs, time.Now().UTC())
	require.Empty(t, errs)
	require.NoError(t, s.ReplaceEntry(rep))

	entries, err := s.LoadEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "corrected", entries[0].Description)

	lines, err := s.LoadLines()
	require.NoError(t, err)
	require.Len(t, lines, 4, "old lines kept as soft-deleted history")

	var active int
	for _, l := range lines {
		if !l.IsDeleted {
			active++
			assert.True(t, l.Debit.Add(l.Credit).Equal(dec("750")))
		}
	}
	assert.Equal(t, 2, active)
}

func TestSeedAccountsMergesMissing(t *testing.T) {
	s := newTestStore(t)

	seed := `[{"code": "1001", "name": "Cash"}, {"code": "6001", "name": "Insurance Expense", "type": "Expense", "normal": "Debit"}]`
	require.NoError(t, os.WriteFile(filepath.Join(s.root, "coa.json"), []byte(seed), 0o644))

	added, err := s.SeedAccounts()
	require.NoError(t, err)
	assert.Equal(t, 1, added, "existing codes are not duplicated")

	accounts, err := s.LoadAccounts()
	require.NoError(t, err)
	dir := coa.Build(accounts)
	_, ok := dir.GetByCode("6001")
	assert.True(t, ok)
}

func TestSeedAccountsNoFile(t *testing.T) {
	s := newTestStore(t)
	added, err := s.SeedAccounts()
	require.NoError(t, err)
	assert.Zero(t, added)
}
