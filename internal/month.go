package internal

import (
	"fmt"
	"strings"
	"time"
)

const monthLayout = "2006-01"

// MonthKey identifies a ledger period in YYYY-MM form.
// Values are only produced by ParseMonthKey, so a MonthKey is always valid.
type MonthKey string

// ParseMonthKey validates s as a calendar year-month (4-digit year, month 01-12)
func ParseMonthKey(s string) (MonthKey, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonthFormat, s)
	}
	return MonthKey(t.Format(monthLayout)), nil
}

// MustMonthKey is like ParseMonthKey but panics on invalid input. Intended for tests and constants.
func MustMonthKey(s string) MonthKey {
	k, err := ParseMonthKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

func (k MonthKey) String() string {
	return string(k)
}

// Before reports whether k is an earlier month than other.
// The fixed-width layout makes string order chronological.
func (k MonthKey) Before(other MonthKey) bool {
	return k < other
}
