package report

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledgerbook-dev/ledgerbook/internal/model"
)

// Period is an optional year/month filter over ISO "YYYY-MM-DD" entry dates.
// Empty fields mean "no filter"; year and month apply independently, so a
// month filter alone matches that calendar month across every year.
type Period struct {
	Year  string // e.g. "2026"
	Month string // calendar month, "1".."12"
}

// IsZero reports whether no filtering is requested.
func (p Period) IsZero() bool {
	return p.Year == "" && p.Month == ""
}

// Matches reports whether an entry date passes the filter. The year check is
// a string prefix match and the month check compares the numeric value of
// characters 6-7; both are deliberately not calendar-aware.
func (p Period) Matches(entryDate string) bool {
	if p.Year != "" && !strings.HasPrefix(entryDate, p.Year) {
		return false
	}
	if p.Month != "" {
		want, err := strconv.Atoi(p.Month)
		if err != nil {
			return false
		}
		if len(entryDate) < 7 {
			return false
		}
		got, err := strconv.Atoi(entryDate[5:7])
		if err != nil || got != want {
			return false
		}
	}
	return true
}

var yearRE = regexp.MustCompile(`^\d{4}$`)

// Years returns the sorted set of years present in the lines' entry dates,
// for populating filter choices.
func Years(lines []model.JournalLine) []string {
	seen := make(map[string]bool)
	for _, l := range lines {
		if len(l.EntryDate) < 4 {
			continue
		}
		y := l.EntryDate[:4]
		if yearRE.MatchString(y) {
			seen[y] = true
		}
	}

	years := make([]string, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}
