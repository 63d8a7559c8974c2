package internal

import (
	"sort"

	"github.com/shopspring/decimal"
)

// LimitSuggestion is a proposed budget limit derived from earlier months
type LimitSuggestion struct {
	Category   string
	Suggested  decimal.Decimal
	Average    decimal.Decimal
	MonthCount int
}

// SuggestLimits proposes a limit for every expense category seen before month
// that has no limit in month yet. The suggestion is the average spend over the
// months the category appears in, rounded up to a whole unit.
func SuggestLimits(l *Ledger, month MonthKey) []LimitSuggestion {
	var existing Amounts
	if r, ok := l.Month(month); ok {
		existing = r.Limits
	}

	totals := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, key := range l.Keys() {
		if !key.Before(month) {
			break
		}
		for category, spent := range l.Months[key].Expenses {
			totals[category] = totals[category].Add(spent)
			counts[category]++
		}
	}

	var suggestions []LimitSuggestion
	for category, total := range totals {
		if _, ok := existing[category]; ok {
			continue
		}
		avg := total.Div(decimal.NewFromInt(int64(counts[category])))
		suggestions = append(suggestions, LimitSuggestion{
			Category:   category,
			Suggested:  avg.Ceil(),
			Average:    avg.Round(2),
			MonthCount: counts[category],
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Category < suggestions[j].Category
	})
	return suggestions
}
