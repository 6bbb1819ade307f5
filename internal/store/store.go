// Package store is the persistence collaborator for the ledger engine: CSV
// files under a books directory. It owns id generation, ref uniqueness, and
// the application of cascading soft deletes; the engine packages only ever
// see the in-memory records it loads.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/journal"
	"github.com/ledgerbook-dev/ledgerbook/internal/logging"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

const (
	accountsFile = "chart-of-accounts.csv"
	entriesFile  = "journal-entries.csv"
	linesFile    = "journal-lines.csv"
	seedFile     = "coa.json"
)

var (
	// ErrDuplicateRef is returned when an entry's ref collides with an
	// existing non-deleted entry.
	ErrDuplicateRef = errors.New("ref already exists")
	// ErrDuplicateCode is returned when an account's code collides with an
	// existing non-deleted account.
	ErrDuplicateCode = errors.New("account code already exists")
	// ErrNotFound is returned when an id matches nothing.
	ErrNotFound = errors.New("not found")
)

// Store reads and writes the books directory.
type Store struct {
	root string
	log  *logrus.Logger
}

// Open returns a Store over a books directory.
func Open(root string) *Store {
	return &Store{root: root, log: logging.Logger()}
}

// Init creates the books directory and writes the initial chart of accounts
// plus empty journal files.
func (s *Store) Init(accounts []model.Account) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating books dir: %w", err)
	}
	if err := s.SaveAccounts(accounts); err != nil {
		return err
	}
	if err := s.saveEntries(nil); err != nil {
		return err
	}
	return s.saveLines(nil)
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name)
}

// LoadAccounts reads the chart of accounts. A missing file is empty books,
// not an error.
func (s *Store) LoadAccounts() ([]model.Account, error) {
	f, err := os.Open(s.path(accountsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accounts, err := coa.ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return accounts, nil
}

// SaveAccounts rewrites the chart of accounts.
func (s *Store) SaveAccounts(accounts []model.Account) error {
	f, err := os.Create(s.path(accountsFile))
	if err != nil {
		return fmt.Errorf("creating chart of accounts: %w", err)
	}
	defer f.Close()

	if err := coa.WriteAccounts(f, accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}

// AddAccount assigns an id and appends a new account, rejecting a code that
// is already in use by a non-deleted account.
func (s *Store) AddAccount(a model.Account) (model.Account, error) {
	accounts, err := s.LoadAccounts()
	if err != nil {
		return model.Account{}, err
	}

	code := strings.TrimSpace(a.Code)
	for _, existing := range accounts {
		if !existing.IsDeleted && existing.Code == code {
			return model.Account{}, fmt.Errorf("code %q: %w", code, ErrDuplicateCode)
		}
	}

	a.ID = uuid.NewString()
	a.Code = code
	if err := s.SaveAccounts(append(accounts, a)); err != nil {
		return model.Account{}, err
	}
	return a, nil
}

// UpdateAccount applies mutate to the account with the given id and rewrites
// the chart. The id itself is immutable, and the mutated code must stay
// unique among non-deleted accounts.
func (s *Store) UpdateAccount(id string, mutate func(*model.Account)) error {
	accounts, err := s.LoadAccounts()
	if err != nil {
		return err
	}

	for i := range accounts {
		if accounts[i].ID != id {
			continue
		}
		mutate(&accounts[i])
		accounts[i].ID = id
		accounts[i].Code = strings.TrimSpace(accounts[i].Code)
		if !accounts[i].IsDeleted {
			for _, other := range accounts {
				if other.ID != id && !other.IsDeleted && other.Code == accounts[i].Code {
					return fmt.Errorf("code %q: %w", accounts[i].Code, ErrDuplicateCode)
				}
			}
		}
		return s.SaveAccounts(accounts)
	}
	return fmt.Errorf("account %q: %w", id, ErrNotFound)
}

// SoftDeleteAccount flags an account as deleted. Historical lines keep
// referencing it; it simply drops out of indices and listings.
func (s *Store) SoftDeleteAccount(id string) error {
	return s.UpdateAccount(id, func(a *model.Account) {
		a.IsDeleted = true
	})
}

// SeedAccounts merges coa.json (if present in the books directory) into the
// chart, adding only accounts whose codes are missing. Returns the number
// added.
func (s *Store) SeedAccounts() (int, error) {
	f, err := os.Open(s.path(seedFile))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("opening COA seed: %w", err)
	}
	defer f.Close()

	accounts, err := s.LoadAccounts()
	if err != nil {
		return 0, err
	}

	missing, err := coa.MergeSeed(accounts, f)
	if err != nil {
		return 0, err
	}
	if len(missing) == 0 {
		return 0, nil
	}

	if err := s.SaveAccounts(append(accounts, missing...)); err != nil {
		return 0, err
	}
	return len(missing), nil
}

// LoadEntries reads all journal headers, deleted ones included.
func (s *Store) LoadEntries() ([]model.JournalEntry, error) {
	f, err := os.Open(s.path(entriesFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal entries: %w", err)
	}
	defer f.Close()

	entries, err := journal.ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal entries: %w", err)
	}
	return entries, nil
}

// LoadLines reads all journal lines, deleted ones included, in insertion
// order. Legacy rows without an owning entry are kept and logged.
func (s *Store) LoadLines() ([]model.JournalLine, error) {
	f, err := os.Open(s.path(linesFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal lines: %w", err)
	}
	defer f.Close()

	lines, err := journal.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal lines: %w", err)
	}

	unlinked := 0
	for _, l := range lines {
		if l.JournalID == "" && !l.IsDeleted {
			unlinked++
		}
	}
	if unlinked > 0 {
		s.log.WithField("count", unlinked).Warn("journal lines without an owning entry")
	}
	return lines, nil
}

// RefSet is the set of refs held by non-deleted entries. It implements
// journal.RefChecker.
type RefSet map[string]bool

// RefExists reports whether ref belongs to a non-deleted entry.
func (r RefSet) RefExists(ref string) bool { return r[ref] }

// Refs returns the current RefSet, optionally excluding one entry id (used
// when editing, so an entry keeping its own ref is not a collision).
func (s *Store) Refs(excludeEntryID string) (RefSet, error) {
	entries, err := s.LoadEntries()
	if err != nil {
		return nil, err
	}

	refs := make(RefSet, len(entries))
	for _, e := range entries {
		if e.IsDeleted || e.ID == excludeEntryID {
			continue
		}
		refs[e.Ref] = true
	}
	return refs, nil
}

// AppendEntry appends a validated header and its line batch. Ref uniqueness
// is re-checked here: this is the boundary that serializes writers.
func (s *Store) AppendEntry(entry model.JournalEntry, lines []model.JournalLine) error {
	refs, err := s.Refs("")
	if err != nil {
		return err
	}
	if refs.RefExists(entry.Ref) {
		return fmt.Errorf("ref %q: %w", entry.Ref, ErrDuplicateRef)
	}

	if err := s.appendEntries([]model.JournalEntry{entry}); err != nil {
		return err
	}
	return s.appendLines(lines)
}

// ApplySoftDelete applies a cascading delete emitted by the engine. Both
// sides are staged in memory first so a missing entry flags nothing.
func (s *Store) ApplySoftDelete(ops []journal.SoftDeleteOp) error {
	entries, err := s.LoadEntries()
	if err != nil {
		return err
	}
	lines, err := s.LoadLines()
	if err != nil {
		return err
	}

	for _, op := range ops {
		switch op.Target {
		case journal.TargetEntry:
			found := false
			for i := range entries {
				if entries[i].ID == op.EntryID {
					entries[i].IsDeleted = true
					found = true
				}
			}
			if !found {
				return fmt.Errorf("entry %q: %w", op.EntryID, ErrNotFound)
			}
		case journal.TargetLines:
			for i := range lines {
				if lines[i].JournalID == op.EntryID {
					lines[i].IsDeleted = true
				}
			}
		default:
			return fmt.Errorf("unknown soft-delete target %q", op.Target)
		}
	}

	if err := s.saveEntries(entries); err != nil {
		return err
	}
	return s.saveLines(lines)
}

// ReplaceEntry applies an edit: the header is rewritten in place, the old
// lines are soft-deleted, and the replacement batch is appended.
func (s *Store) ReplaceEntry(rep journal.Replacement) error {
	entries, err := s.LoadEntries()
	if err != nil {
		return err
	}

	found := false
	for i := range entries {
		if entries[i].ID == rep.Entry.ID {
			deleted := entries[i].IsDeleted
			entries[i] = rep.Entry
			entries[i].IsDeleted = deleted
			found = true
		}
	}
	if !found {
		return fmt.Errorf("entry %q: %w", rep.Entry.ID, ErrNotFound)
	}

	lines, err := s.LoadLines()
	if err != nil {
		return err
	}
	for i := range lines {
		if lines[i].JournalID == rep.Entry.ID {
			lines[i].IsDeleted = true
		}
	}
	lines = append(lines, rep.NewLines...)

	if err := s.saveEntries(entries); err != nil {
		return err
	}
	return s.saveLines(lines)
}

func (s *Store) saveEntries(entries []model.JournalEntry) error {
	f, err := os.Create(s.path(entriesFile))
	if err != nil {
		return fmt.Errorf("creating journal entries: %w", err)
	}
	defer f.Close()

	if err := journal.WriteEntries(f, entries); err != nil {
		return fmt.Errorf("writing journal entries: %w", err)
	}
	return nil
}

func (s *Store) saveLines(lines []model.JournalLine) error {
	f, err := os.Create(s.path(linesFile))
	if err != nil {
		return fmt.Errorf("creating journal lines: %w", err)
	}
	defer f.Close()

	if err := journal.WriteLines(f, lines); err != nil {
		return fmt.Errorf("writing journal lines: %w", err)
	}
	return nil
}

func (s *Store) appendEntries(entries []model.JournalEntry) error {
	isNew := false
	if _, err := os.Stat(s.path(entriesFile)); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(s.path(entriesFile), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening journal entries: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, journal.EntriesHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	return journal.AppendEntries(f, entries)
}

func (s *Store) appendLines(lines []model.JournalLine) error {
	isNew := false
	if _, err := os.Stat(s.path(linesFile)); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(s.path(linesFile), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening journal lines: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, journal.LinesHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	return journal.AppendLines(f, lines)
}
