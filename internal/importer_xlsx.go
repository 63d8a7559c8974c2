package internal

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportXLSX reads entries from the first sheet of an Excel workbook.
// The header row must contain Month, Kind, Category and Amount (any order, any case).
// Rows above the header and fully blank rows are skipped.
func ImportXLSX(path string) ([]ImportedEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find header row and column indices
	monthCol, kindCol, categoryCol, amountCol := -1, -1, -1, -1
	dataStartRow := -1
	for i, row := range rows {
		for j, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "month":
				monthCol = j
			case "kind", "type":
				kindCol = j
			case "category":
				categoryCol = j
			case "amount":
				amountCol = j
			}
		}
		if monthCol >= 0 && kindCol >= 0 && categoryCol >= 0 && amountCol >= 0 {
			dataStartRow = i + 1
			break
		}
		monthCol, kindCol, categoryCol, amountCol = -1, -1, -1, -1
	}

	if dataStartRow < 0 {
		return nil, fmt.Errorf("could not find required columns (Month, Kind, Category, Amount)")
	}

	cell := func(row []string, col int) string {
		if col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	var entries []ImportedEntry
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]
		month := cell(row, monthCol)
		kind := cell(row, kindCol)
		category := cell(row, categoryCol)
		amount := cell(row, amountCol)

		// Skip empty rows
		if month == "" && kind == "" && category == "" && amount == "" {
			continue
		}

		entries = append(entries, ImportedEntry{
			Row:      i + 1, // spreadsheet rows are 1-based
			Month:    month,
			Kind:     kind,
			Category: category,
			Amount:   amount,
		})
	}

	return entries, nil
}

func init() {
	RegisterImporter("xlsx", ImporterFunc(ImportXLSX))
}
