package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/config"
	"github.com/ledgerbook-dev/ledgerbook/internal/gitops"
	"github.com/ledgerbook-dev/ledgerbook/internal/logging"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
	"github.com/ledgerbook-dev/ledgerbook/internal/report"
	"github.com/ledgerbook-dev/ledgerbook/internal/store"
)

const configFile = "ledgerbook.yaml"

// cmdContext is the loaded project a subcommand operates on: its config,
// its books store, and the project root for git integration.
type cmdContext struct {
	cfg   *config.Config
	store *store.Store
	root  string
}

func loadContext(projectDir string) (*cmdContext, error) {
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		projectDir = wd
	}

	cfgPath := filepath.Join(projectDir, configFile)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no %s in %s (run \"ledgerbook init\" first)", configFile, projectDir)
		}
		return nil, err
	}

	booksDir := cfg.Books.Dir
	if !filepath.IsAbs(booksDir) {
		booksDir = filepath.Join(projectDir, booksDir)
	}

	return &cmdContext{cfg: cfg, store: store.Open(booksDir), root: projectDir}, nil
}

// period merges CLI flags over the config default filter. An empty flag
// value falls back to the configured default for that field.
func (c *cmdContext) period(year, month string) report.Period {
	if year == "" {
		year = c.cfg.Filter.Year
	}
	if month == "" {
		month = c.cfg.Filter.Month
	}
	return report.Period{Year: year, Month: month}
}

// loadBooks reads the chart and all journal lines, resolving each line's
// account reference against the current chart.
func (c *cmdContext) loadBooks() (*coa.Directory, []model.ResolvedLine, error) {
	accounts, err := c.store.LoadAccounts()
	if err != nil {
		return nil, nil, err
	}
	dir := coa.Build(accounts)

	lines, err := c.store.LoadLines()
	if err != nil {
		return nil, nil, err
	}
	return dir, dir.ResolveLines(lines), nil
}

// autoCommit records a books change in git when the project opted in.
// Failures are logged, never fatal: the books files are already saved.
func (c *cmdContext) autoCommit(message string) {
	if !c.cfg.Git.AutoCommit || !gitops.IsRepo(c.root) {
		return
	}
	if _, err := gitops.CommitAll(c.root, message, c.cfg.Git.AuthorName, c.cfg.Git.AuthorEmail); err != nil {
		logging.Logger().WithError(err).Warn("auto-commit failed")
	}
}

// resolveAccountArg turns a CLI account argument (id, code, or
// "code - name" display text) into the matching active account.
func resolveAccountArg(dir *coa.Directory, arg string) (model.Account, error) {
	arg = strings.TrimSpace(arg)
	if a, ok := dir.Get(arg); ok {
		return a, nil
	}
	if a, ok := dir.GetByCode(arg); ok {
		return a, nil
	}
	if id := dir.FromDisplayText(arg); id != "" {
		if a, ok := dir.Get(id); ok {
			return a, nil
		}
	}
	return model.Account{}, fmt.Errorf("account %q: %w", arg, store.ErrNotFound)
}

// findEntry locates a non-deleted journal entry by ref or id.
func findEntry(entries []model.JournalEntry, arg string) (model.JournalEntry, error) {
	arg = strings.TrimSpace(arg)
	for _, e := range entries {
		if e.IsDeleted {
			continue
		}
		if e.Ref == arg || e.ID == arg {
			return e, nil
		}
	}
	return model.JournalEntry{}, fmt.Errorf("entry %q: %w", arg, store.ErrNotFound)
}
