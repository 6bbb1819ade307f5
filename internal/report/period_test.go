package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

func TestPeriodMatches(t *testing.T) {
	tests := []struct {
		name   string
		period Period
		date   string
		want   bool
	}{
		{"no filter", Period{}, "2026-01-15", true},
		{"year match", Period{Year: "2026"}, "2026-01-15", true},
		{"year mismatch", Period{Year: "2025"}, "2026-01-15", false},
		{"month match", Period{Month: "1"}, "2026-01-15", true},
		{"month match padded", Period{Month: "01"}, "2026-01-15", true},
		{"month mismatch", Period{Month: "2"}, "2026-01-15", false},
		{"month across years", Period{Month: "3"}, "2019-03-01", true},
		{"both match", Period{Year: "2026", Month: "1"}, "2026-01-15", true},
		{"both, month off", Period{Year: "2026", Month: "2"}, "2026-01-15", false},
		{"short date with month filter", Period{Month: "1"}, "2026", false},
		{"garbled month digits", Period{Month: "1"}, "2026-xx-15", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.Matches(tt.date))
		})
	}
}

func TestPeriodIsZero(t *testing.T) {
	assert.True(t, Period{}.IsZero())
	assert.False(t, Period{Year: "2026"}.IsZero())
	assert.False(t, Period{Month: "4"}.IsZero())
}

func TestYears(t *testing.T) {
	lines := []model.JournalLine{
		{EntryDate: "2026-01-15"},
		{EntryDate: "2024-12-31"},
		{EntryDate: "2026-03-01"},
		{EntryDate: "bad"},
		{EntryDate: ""},
	}
	assert.Equal(t, []string{"2024", "2026"}, Years(lines))
}
