package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// JSONSummary is the JSON output format for a month summary
type JSONSummary struct {
	Month          string              `json:"month"`
	Currency       string              `json:"currency"`
	IncomeTotal    float64             `json:"income_total"`
	ExpenseTotal   float64             `json:"expense_total"`
	NetSavings     float64             `json:"net_savings"`
	SavingsPercent float64             `json:"savings_percent"`
	Breakdown      []JSONCategoryShare `json:"breakdown"`
	Alerts         []JSONBudgetAlert   `json:"alerts"`
}

type JSONCategoryShare struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

// JSONBudgetAlert omits percent_of_limit when the limit is zero
type JSONBudgetAlert struct {
	Category       string   `json:"category"`
	Spent          float64  `json:"spent"`
	Limit          float64  `json:"limit"`
	Over           float64  `json:"over"`
	PercentOfLimit *float64 `json:"percent_of_limit,omitempty"`
}

// JSONTrend is the JSON output format for a month-to-month comparison
type JSONTrend struct {
	From    string           `json:"from"`
	To      string           `json:"to"`
	Entries []JSONTrendEntry `json:"entries"`
}

type JSONTrendEntry struct {
	Category  string  `json:"category"`
	From      float64 `json:"from"`
	To        float64 `json:"to"`
	Direction string  `json:"direction"`
	Magnitude float64 `json:"magnitude"`
}

// JSONMonth is one row of the months listing
type JSONMonth struct {
	Month        string  `json:"month"`
	IncomeTotal  float64 `json:"income_total"`
	ExpenseTotal float64 `json:"expense_total"`
	NetSavings   float64 `json:"net_savings"`
	Alerts       int     `json:"alerts"`
}

type JSONLimitSuggestion struct {
	Category   string  `json:"category"`
	Suggested  float64 `json:"suggested"`
	Average    float64 `json:"average"`
	MonthCount int     `json:"month_count"`
}

// ValidateOutputFormat accepts the console formats "table" and "json"
func ValidateOutputFormat(s string) error {
	switch s {
	case "table", "json":
		return nil
	}
	return fmt.Errorf("invalid output %q (expected table or json)", s)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ToJSONSummary converts a Summary to its JSON output form
func ToJSONSummary(s Summary, currency Currency) JSONSummary {
	out := JSONSummary{
		Month:          s.Month.String(),
		Currency:       currency.Code,
		IncomeTotal:    s.IncomeTotal.InexactFloat64(),
		ExpenseTotal:   s.ExpenseTotal.InexactFloat64(),
		NetSavings:     s.NetSavings.InexactFloat64(),
		SavingsPercent: s.SavingsPercent,
		Breakdown:      []JSONCategoryShare{},
		Alerts:         []JSONBudgetAlert{},
	}
	for _, b := range s.Breakdown {
		out.Breakdown = append(out.Breakdown, JSONCategoryShare{
			Category: b.Category,
			Amount:   b.Amount.InexactFloat64(),
			Percent:  b.Percent,
		})
	}
	for _, a := range s.Alerts {
		out.Alerts = append(out.Alerts, JSONBudgetAlert{
			Category:       a.Category,
			Spent:          a.Spent.InexactFloat64(),
			Limit:          a.Limit.InexactFloat64(),
			Over:           a.Over.InexactFloat64(),
			PercentOfLimit: a.PercentOfLimit,
		})
	}
	return out
}

// PrintSummaryJSON outputs a month summary in JSON format
func PrintSummaryJSON(w io.Writer, s Summary, currency Currency) error {
	return writeJSON(w, ToJSONSummary(s, currency))
}

// PrintSummaryTable outputs totals, the expense breakdown and budget alerts as tables
func PrintSummaryTable(w io.Writer, s Summary, currency Currency) {
	fmt.Fprintf(w, "FINANCIAL SUMMARY: %s\n", s.Month)

	totals := newTable(w)
	totals.AppendRow(table.Row{"Total income", currency.Format(s.IncomeTotal)})
	totals.AppendRow(table.Row{"Total expenses", currency.Format(s.ExpenseTotal)})
	net := currency.Format(s.NetSavings)
	if s.NetSavings.IsNegative() {
		net = text.FgRed.Sprint(net)
	}
	totals.AppendRow(table.Row{"Net savings", fmt.Sprintf("%s (%s)", net, FormatPercent(s.SavingsPercent))})
	totals.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	totals.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXPENSE BREAKDOWN")
	if len(s.Breakdown) == 0 {
		fmt.Fprintln(w, "No expenses recorded.")
	} else {
		t := newTable(w)
		t.AppendHeader(table.Row{"Category", "Share", "Amount", "Percent"})
		for _, b := range s.Breakdown {
			t.AppendRow(table.Row{b.Category, percentBar(b.Percent), currency.Format(b.Amount), FormatPercent(b.Percent)})
		}
		t.AppendSeparator()
		t.AppendFooter(table.Row{text.Bold.Sprint("Total"), "", text.Bold.Sprint(currency.Format(s.ExpenseTotal)), ""})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 3, Align: text.AlignRight},
			{Number: 4, Align: text.AlignRight},
		})
		t.Render()
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "BUDGET ALERTS")
	if len(s.Alerts) == 0 {
		fmt.Fprintln(w, "No budget overruns.")
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"Category", "Spent", "Limit", "Over", "Of limit"})
	for _, a := range s.Alerts {
		t.AppendRow(table.Row{
			a.Category,
			currency.Format(a.Spent),
			currency.Format(a.Limit),
			text.FgRed.Sprint(currency.Format(a.Over)),
			alertPercent(a),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

// PrintTrendJSON outputs a trend comparison in JSON format
func PrintTrendJSON(w io.Writer, from, to MonthKey, entries []TrendEntry) error {
	out := JSONTrend{From: from.String(), To: to.String(), Entries: []JSONTrendEntry{}}
	for _, e := range entries {
		out.Entries = append(out.Entries, JSONTrendEntry{
			Category:  e.Category,
			From:      e.SpentFrom.InexactFloat64(),
			To:        e.SpentTo.InexactFloat64(),
			Direction: string(e.Direction),
			Magnitude: e.Magnitude.InexactFloat64(),
		})
	}
	return writeJSON(w, out)
}

// PrintTrendTable outputs a trend comparison as a table
func PrintTrendTable(w io.Writer, from, to MonthKey, entries []TrendEntry, currency Currency) {
	fmt.Fprintf(w, "SPENDING TREND: %s -> %s\n", from, to)
	if len(entries) == 0 {
		fmt.Fprintln(w, "No expenses recorded in either month.")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Category", from.String(), to.String(), "Trend", "Change"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.Category,
			currency.Format(e.SpentFrom),
			currency.Format(e.SpentTo),
			directionLabel(e.Direction),
			currency.Format(e.Magnitude),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

// PrintMonthsJSON outputs an overview line per stored month in JSON format
func PrintMonthsJSON(w io.Writer, l *Ledger) error {
	out := []JSONMonth{}
	for _, key := range l.Keys() {
		s := Summarize(key, l.Months[key])
		out = append(out, JSONMonth{
			Month:        key.String(),
			IncomeTotal:  s.IncomeTotal.InexactFloat64(),
			ExpenseTotal: s.ExpenseTotal.InexactFloat64(),
			NetSavings:   s.NetSavings.InexactFloat64(),
			Alerts:       len(s.Alerts),
		})
	}
	return writeJSON(w, out)
}

// PrintMonthsTable outputs an overview line per stored month
func PrintMonthsTable(w io.Writer, l *Ledger, currency Currency) {
	keys := l.Keys()
	if len(keys) == 0 {
		fmt.Fprintln(w, "No months recorded.")
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Month", "Income", "Expenses", "Net", "Alerts"})
	for _, key := range keys {
		s := Summarize(key, l.Months[key])
		alerts := fmt.Sprint(len(s.Alerts))
		if len(s.Alerts) > 0 {
			alerts = text.FgRed.Sprint(alerts)
		}
		t.AppendRow(table.Row{key.String(), currency.Format(s.IncomeTotal), currency.Format(s.ExpenseTotal), currency.Format(s.NetSavings), alerts})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

// PrintSuggestionsJSON outputs limit suggestions in JSON format
func PrintSuggestionsJSON(w io.Writer, suggestions []LimitSuggestion) error {
	out := []JSONLimitSuggestion{}
	for _, s := range suggestions {
		out = append(out, JSONLimitSuggestion{
			Category:   s.Category,
			Suggested:  s.Suggested.InexactFloat64(),
			Average:    s.Average.InexactFloat64(),
			MonthCount: s.MonthCount,
		})
	}
	return writeJSON(w, out)
}

// PrintSuggestionsTable outputs limit suggestions together with the set-limit command to apply each
func PrintSuggestionsTable(w io.Writer, month MonthKey, suggestions []LimitSuggestion, currency Currency) {
	if len(suggestions) == 0 {
		fmt.Fprintln(w, "No limit suggestions (no earlier spending without a limit).")
		return
	}

	fmt.Fprintf(w, "Suggested limits for %s:\n", month)
	t := newTable(w)
	t.AppendHeader(table.Row{"Category", "Average", "Months", "Suggested"})
	for _, s := range suggestions {
		t.AppendRow(table.Row{s.Category, currency.Format(s.Average), s.MonthCount, currency.Format(s.Suggested)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Apply with:")
	for _, s := range suggestions {
		fmt.Fprintf(w, "  budget-tracker set-limit --month %s --category %q --amount %s\n", month, s.Category, s.Suggested.String())
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	return t
}

// percentBar renders a 20-cell bar where each filled cell is 5%
func percentBar(percent float64) string {
	filled := int(percent / 5)
	if filled < 0 {
		filled = 0
	}
	if filled > 20 {
		filled = 20
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

// alertPercent renders percent-of-limit, or N/A for a zero limit
func alertPercent(a BudgetAlert) string {
	if a.PercentOfLimit == nil {
		return "N/A"
	}
	return FormatPercent(*a.PercentOfLimit)
}

func directionLabel(d Direction) string {
	switch d {
	case Increased:
		return text.FgRed.Sprint("Increased")
	case Decreased:
		return text.FgGreen.Sprint("Decreased")
	default:
		return "No change"
	}
}
