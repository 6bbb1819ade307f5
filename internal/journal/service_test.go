package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbook-dev/ledgerbook/internal/coa"
	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

func testService() *Service {
	dir := coa.Build([]model.Account{
		{ID: "a1", Code: "1001", Name: "Cash", Type: model.AccountTypeAsset, Normal: model.NormalDebit},
		{ID: "a2", Code: "3001", Name: "Common Stock", Type: model.AccountTypeEquity, Normal: model.NormalCredit},
	})
	return NewService(dir)
}

func TestPrepareBuildsBatch(t *testing.T) {
	svc := testService()
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	lines := []LineInput{
		{AccountID: "a1", Debit: dec("500")},
		{AccountID: "a2", Credit: dec("500")},
	}
	entry, batch, errs := svc.Prepare(validHeader(), lines, mockRefs{}, now)
	require.Empty(t, errs)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "JE-001", entry.Ref)

	require.Len(t, batch, 2)
	for _, l := range batch {
		assert.NotEmpty(t, l.ID)
		assert.Equal(t, entry.ID, l.JournalID)
		assert.Equal(t, "2026-01-15", l.EntryDate)
		assert.Equal(t, "JE-001", l.Ref)
		assert.Equal(t, now, l.CreatedAt)
	}
	assert.Equal(t, "1001 - Cash", batch[0].AccountName)
	assert.Equal(t, "3001 - Common Stock", batch[1].AccountName)
}

func TestPrepareUnknownAccountGetsNoSnapshot(t *testing.T) {
	svc := testService()

	lines := []LineInput{
		{AccountID: "a1", Debit: dec("5")},
		{AccountID: "ghost", Credit: dec("5")},
	}
	_, batch, errs := svc.Prepare(validHeader(), lines, mockRefs{}, time.Now())
	require.Empty(t, errs)
	assert.Equal(t, "", batch[1].AccountName)
	assert.Equal(t, "ghost", batch[1].AccountRef)
}

func TestPrepareRejectsInvalid(t *testing.T) {
	svc := testService()

	_, _, errs := svc.Prepare(validHeader(), []LineInput{{AccountID: "a1", Debit: dec("1")}}, mockRefs{}, time.Now())
	assert.NotEmpty(t, errs)
}

func TestPrepareReplacementKeepsEntryID(t *testing.T) {
	svc := testService()

	lines := []LineInput{
		{AccountID: "a1", Debit: dec("250")},
		{AccountID: "a2", Credit: dec("250")},
	}
	rep, errs := svc.PrepareReplacement("je-7", validHeader(), lines, mockRefs{}, time.Now())
	require.Empty(t, errs)

	assert.Equal(t, "je-7", rep.Entry.ID)
	require.Len(t, rep.NewLines, 2)
	for _, l := range rep.NewLines {
		assert.Equal(t, "je-7", l.JournalID)
	}
}

func TestCascadeDelete(t *testing.T) {
	ops := CascadeDelete("je-7")
	require.Len(t, ops, 2)
	assert.Equal(t, TargetEntry, ops[0].Target)
	assert.Equal(t, TargetLines, ops[1].Target)
	for _, op := range ops {
		assert.Equal(t, "je-7", op.EntryID)
	}
}
