package internal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportFormat selects the rendering of an exported summary
type ExportFormat string

const (
	ExportText ExportFormat = "text"
	ExportXLSX ExportFormat = "xlsx"
)

// ParseExportFormat validates a user-supplied export format
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ExportText, ExportXLSX:
		return f, nil
	}
	return "", fmt.Errorf("invalid export format %q (expected text or xlsx)", s)
}

// ExportPath returns where the summary for month is written in dir
func ExportPath(dir string, month MonthKey, format ExportFormat) string {
	ext := ".txt"
	if format == ExportXLSX {
		ext = ".xlsx"
	}
	return filepath.Join(dir, month.String()+"_summary"+ext)
}

// ExportSummary writes the summary to dir in the given format and returns the file path
func ExportSummary(dir string, s Summary, format ExportFormat, currency Currency) (string, error) {
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	path := ExportPath(dir, s.Month, format)

	switch format {
	case ExportText:
		f, err := os.Create(path)
		if err != nil {
			return "", fmt.Errorf("creating export file: %w", err)
		}
		bw := bufio.NewWriter(f)
		WriteSummaryText(bw, s, currency)
		if err := bw.Flush(); err != nil {
			f.Close()
			return "", fmt.Errorf("writing export file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("closing export file: %w", err)
		}
	case ExportXLSX:
		if err := WriteSummaryXLSX(path, s); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unknown export format: %s (available: text, xlsx)", format)
	}
	return path, nil
}

// WriteSummaryText renders the plain-text summary document
func WriteSummaryText(w io.Writer, s Summary, currency Currency) {
	fmt.Fprintf(w, "=== BUDGET SUMMARY: %s ===\n", s.Month)
	fmt.Fprintf(w, "Total Income: %s\n", currency.Format(s.IncomeTotal))
	fmt.Fprintf(w, "Total Expenses: %s\n", currency.Format(s.ExpenseTotal))
	fmt.Fprintf(w, "Net Savings: %s (%s)\n\n", currency.Format(s.NetSavings), FormatPercent(s.SavingsPercent))

	fmt.Fprintln(w, "Expense Breakdown:")
	for _, b := range s.Breakdown {
		fmt.Fprintf(w, "%s: %s (%s)\n", b.Category, currency.Format(b.Amount), FormatPercent(b.Percent))
	}

	fmt.Fprintln(w, "\nBudget Alerts:")
	if len(s.Alerts) == 0 {
		fmt.Fprintln(w, "No budget overruns.")
	}
	for _, a := range s.Alerts {
		fmt.Fprintf(w, "%s: %s over budget (%s of limit)\n", a.Category, currency.Format(a.Over), alertPercent(a))
	}
}

// WriteSummaryXLSX renders the summary as a workbook with Summary, Breakdown and Alerts sheets
func WriteSummaryXLSX(path string, s Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	summaryRows := [][]any{
		{"Month", s.Month.String()},
		{"Total Income", s.IncomeTotal.InexactFloat64()},
		{"Total Expenses", s.ExpenseTotal.InexactFloat64()},
		{"Net Savings", s.NetSavings.InexactFloat64()},
		{"Savings Percent", s.SavingsPercent},
	}
	if err := writeSheetRows(f, summarySheet, summaryRows); err != nil {
		return err
	}

	breakdownRows := [][]any{{"Category", "Amount", "Percent"}}
	for _, b := range s.Breakdown {
		breakdownRows = append(breakdownRows, []any{b.Category, b.Amount.InexactFloat64(), b.Percent})
	}
	if err := writeNewSheet(f, "Breakdown", breakdownRows); err != nil {
		return err
	}

	alertRows := [][]any{{"Category", "Spent", "Limit", "Over", "Percent of limit"}}
	for _, a := range s.Alerts {
		var pct any = "N/A"
		if a.PercentOfLimit != nil {
			pct = *a.PercentOfLimit
		}
		alertRows = append(alertRows, []any{a.Category, a.Spent.InexactFloat64(), a.Limit.InexactFloat64(), a.Over.InexactFloat64(), pct})
	}
	if err := writeNewSheet(f, "Alerts", alertRows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeNewSheet(f *excelize.File, sheet string, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	return writeSheetRows(f, sheet, rows)
}

func writeSheetRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
