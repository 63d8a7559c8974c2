package internal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CategoryShare is one expense category's part of the month's total spend
type CategoryShare struct {
	Category string
	Amount   decimal.Decimal
	Percent  float64
}

// BudgetAlert reports an expense category that went over its limit.
// PercentOfLimit is nil when the limit is zero, since any spend is then unbounded relative to it.
type BudgetAlert struct {
	Category       string
	Spent          decimal.Decimal
	Limit          decimal.Decimal
	Over           decimal.Decimal
	PercentOfLimit *float64
}

// Summary is the derived, non-persisted view of one month
type Summary struct {
	Month          MonthKey
	IncomeTotal    decimal.Decimal
	ExpenseTotal   decimal.Decimal
	NetSavings     decimal.Decimal
	SavingsPercent float64
	Breakdown      []CategoryShare
	Alerts         []BudgetAlert
}

// Summarize computes totals, savings, expense breakdown and overrun alerts for a record
func Summarize(month MonthKey, r *MonthRecord) Summary {
	income := r.Income.Total()
	expenses := r.Expenses.Total()
	net := income.Sub(expenses)

	s := Summary{
		Month:          month,
		IncomeTotal:    income,
		ExpenseTotal:   expenses,
		NetSavings:     net,
		SavingsPercent: percentOf(net, income),
		Breakdown:      make([]CategoryShare, 0, len(r.Expenses)),
		Alerts:         []BudgetAlert{},
	}

	for _, category := range r.Expenses.Categories() {
		amount := r.Expenses[category]
		s.Breakdown = append(s.Breakdown, CategoryShare{
			Category: category,
			Amount:   amount,
			Percent:  percentOf(amount, expenses),
		})
	}

	// Only categories with a limit can alert
	for _, category := range r.Limits.Categories() {
		limit := r.Limits[category]
		spent := r.Expenses.Get(category)
		if !spent.GreaterThan(limit) {
			continue
		}
		alert := BudgetAlert{
			Category: category,
			Spent:    spent,
			Limit:    limit,
			Over:     spent.Sub(limit),
		}
		if !limit.IsZero() {
			pct := percentOf(spent, limit)
			alert.PercentOfLimit = &pct
		}
		s.Alerts = append(s.Alerts, alert)
	}

	return s
}

// Summary returns the summary for month, or ErrMonthNotFound if nothing was ever recorded for it.
// An existing but empty month yields a zero-valued summary instead.
func (l *Ledger) Summary(month MonthKey) (Summary, error) {
	r, ok := l.Month(month)
	if !ok {
		return Summary{}, fmt.Errorf("%w: %s", ErrMonthNotFound, month)
	}
	return Summarize(month, r), nil
}

// percentOf returns part/whole*100, or 0 when whole is not positive
func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(hundred).InexactFloat64()
}
