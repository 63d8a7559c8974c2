package internal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a user-supplied amount. Non-numeric and negative input is rejected.
// Both "12.50" and "12,50" are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := parseNonNegative(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, err)
	}
	return d, nil
}

// ParseLimit parses a user-supplied budget limit with the same rules as ParseAmount
func ParseLimit(s string) (decimal.Decimal, error) {
	d, err := parseNonNegative(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidLimit, err)
	}
	return d, nil
}

func parseNonNegative(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty value")
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", d.String())
	}
	return d, nil
}

// NormalizeCategory is applied to every category taken from user input or import files.
// Surrounding whitespace is dropped; case and inner spacing are kept.
func NormalizeCategory(s string) string {
	return strings.TrimSpace(s)
}

// RecordEntry adds amount to the category's running total for the given kind.
// Nothing is changed when validation fails.
func (r *MonthRecord) RecordEntry(category string, amount decimal.Decimal, kind EntryKind) error {
	if category == "" {
		return fmt.Errorf("%w: category must not be empty", ErrInvalidCategory)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidAmount, amount.String())
	}
	amounts := r.amountsFor(kind)
	if amounts == nil {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	amounts[category] = amounts.Get(category).Add(amount)
	return nil
}

// SetLimit replaces the budget ceiling for an expense category.
// A limit may be set before any spending is recorded.
func (r *MonthRecord) SetLimit(category string, limit decimal.Decimal) error {
	if category == "" {
		return fmt.Errorf("%w: category must not be empty", ErrInvalidCategory)
	}
	if limit.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidLimit, limit.String())
	}
	r.Limits[category] = limit
	return nil
}

// ApplyDefaultLimits sets every limit in defaults that the record has no limit for yet
func (r *MonthRecord) ApplyDefaultLimits(defaults Amounts) error {
	for _, category := range defaults.Categories() {
		if _, ok := r.Limits[category]; ok {
			continue
		}
		if err := r.SetLimit(category, defaults[category]); err != nil {
			return err
		}
	}
	return nil
}
