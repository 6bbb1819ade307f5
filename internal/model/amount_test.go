package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"500", "500"},
		{"499.99", "499.99"},
		{"$1,234.56", "1234.56"},
		{"-42.50", "-42.5"},
		{"", "0"},
		{"abc", "0"},
		{"12abc34", "1234"},
		{"1.2.3", "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAmount(tt.in).String(), "ParseAmount(%q)", tt.in)
	}
}

func TestJournalLineIsBlank(t *testing.T) {
	assert.True(t, JournalLine{}.IsBlank())

	withDebit := JournalLine{Debit: ParseAmount("10")}
	assert.False(t, withDebit.IsBlank())

	withCredit := JournalLine{Credit: ParseAmount("10")}
	assert.False(t, withCredit.IsBlank())
}

func TestAccountDisplayName(t *testing.T) {
	a := Account{Code: "1001", Name: "Cash"}
	assert.Equal(t, "1001 - Cash", a.DisplayName())
}
