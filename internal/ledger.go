package internal

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// EntryKind says which side of a Month Record an entry is booked against
type EntryKind string

const (
	KindIncome  EntryKind = "income"
	KindExpense EntryKind = "expense"
)

// ParseEntryKind accepts "income" and "expense" (plus the plural "expenses" used on disk)
func ParseEntryKind(s string) (EntryKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return KindIncome, nil
	case "expense", "expenses":
		return KindExpense, nil
	}
	return "", fmt.Errorf("%w: %q (expected income or expense)", ErrInvalidKind, s)
}

// Amounts maps a category name to a non-negative amount
type Amounts map[string]decimal.Decimal

// Total returns the sum of all amounts
func (a Amounts) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range a {
		total = total.Add(v)
	}
	return total
}

// Get returns the amount for category, or zero if absent
func (a Amounts) Get(category string) decimal.Decimal {
	if v, ok := a[category]; ok {
		return v
	}
	return decimal.Zero
}

// Categories returns the category names in lexicographic order
func (a Amounts) Categories() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MonthRecord aggregates one month of income, expenses, and budget limits.
// A category in Limits need not appear in Expenses, and vice versa.
type MonthRecord struct {
	Income   Amounts
	Expenses Amounts
	Limits   Amounts
}

// NewMonthRecord returns a record with all three mappings empty
func NewMonthRecord() *MonthRecord {
	return &MonthRecord{
		Income:   Amounts{},
		Expenses: Amounts{},
		Limits:   Amounts{},
	}
}

// normalize replaces nil mappings with empty ones, e.g. after decoding "null"
func (r *MonthRecord) normalize() {
	if r.Income == nil {
		r.Income = Amounts{}
	}
	if r.Expenses == nil {
		r.Expenses = Amounts{}
	}
	if r.Limits == nil {
		r.Limits = Amounts{}
	}
}

func (r *MonthRecord) amountsFor(kind EntryKind) Amounts {
	switch kind {
	case KindIncome:
		return r.Income
	case KindExpense:
		return r.Expenses
	}
	return nil
}

// Ledger maps month keys to their records. It is the in-memory state of one session.
type Ledger struct {
	Months map[MonthKey]*MonthRecord
}

func NewLedger() *Ledger {
	return &Ledger{Months: make(map[MonthKey]*MonthRecord)}
}

// Month returns the record for key without creating it
func (l *Ledger) Month(key MonthKey) (*MonthRecord, bool) {
	r, ok := l.Months[key]
	return r, ok
}

// Has reports whether a record exists for key
func (l *Ledger) Has(key MonthKey) bool {
	_, ok := l.Months[key]
	return ok
}

// EnsureMonth returns the record for key, creating an empty one if absent
func (l *Ledger) EnsureMonth(key MonthKey) *MonthRecord {
	if l.Months == nil {
		l.Months = make(map[MonthKey]*MonthRecord)
	}
	r, ok := l.Months[key]
	if !ok {
		r = NewMonthRecord()
		l.Months[key] = r
	}
	return r
}

// Keys returns all month keys in chronological order
func (l *Ledger) Keys() []MonthKey {
	keys := make([]MonthKey, 0, len(l.Months))
	for k := range l.Months {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Before(keys[j])
	})
	return keys
}
