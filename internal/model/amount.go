package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount coerces human-entered monetary input to a decimal. Currency
// symbols and grouping separators are stripped; anything still unparsable
// becomes zero so malformed legacy data degrades instead of blocking a whole
// report.
func ParseAmount(v string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, v)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
