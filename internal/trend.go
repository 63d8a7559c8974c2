package internal

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	Increased Direction = "increased"
	Decreased Direction = "decreased"
	NoChange  Direction = "no change"
)

// TrendEntry is the change in one expense category between two months
type TrendEntry struct {
	Category  string
	SpentFrom decimal.Decimal
	SpentTo   decimal.Decimal
	Direction Direction
	Magnitude decimal.Decimal
}

// Compare diffs expense categories from one month to the next.
// A category missing on either side counts as zero spend there.
// Entries are ordered by category name.
func Compare(from, to *MonthRecord) []TrendEntry {
	seen := make(map[string]bool)
	for c := range from.Expenses {
		seen[c] = true
	}
	for c := range to.Expenses {
		seen[c] = true
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	entries := make([]TrendEntry, 0, len(categories))
	for _, c := range categories {
		a := from.Expenses.Get(c)
		b := to.Expenses.Get(c)

		dir := NoChange
		switch b.Cmp(a) {
		case 1:
			dir = Increased
		case -1:
			dir = Decreased
		}

		entries = append(entries, TrendEntry{
			Category:  c,
			SpentFrom: a,
			SpentTo:   b,
			Direction: dir,
			Magnitude: b.Sub(a).Abs(),
		})
	}
	return entries
}

// Trend compares two stored months. Both must exist.
func (l *Ledger) Trend(from, to MonthKey) ([]TrendEntry, error) {
	a, ok := l.Month(from)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMonthNotFound, from)
	}
	b, ok := l.Month(to)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMonthNotFound, to)
	}
	return Compare(a, b), nil
}
