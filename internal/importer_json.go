package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

// SimpleJSONFormat is a minimal JSON format for importing entries
// Example:
//
//	{
//	  "entries": [
//	    {"month": "2025-01", "kind": "income", "category": "Salary", "amount": 3000},
//	    {"month": "2025-01", "kind": "expense", "category": "Food", "amount": 412.50}
//	  ]
//	}
//
// This format is easy to convert to from any bank export or spreadsheet.
type SimpleJSONFormat struct {
	Entries []SimpleJSONEntry `json:"entries"`
}

type SimpleJSONEntry struct {
	Month    string      `json:"month"`    // YYYY-MM
	Kind     string      `json:"kind"`     // income or expense
	Category string      `json:"category"` // free text
	Amount   json.Number `json:"amount"`   // non-negative
}

// ImportSimpleJSON reads entries from a file in the simple JSON format
func ImportSimpleJSON(path string) ([]ImportedEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var doc SimpleJSONFormat
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	entries := make([]ImportedEntry, 0, len(doc.Entries))
	for i, e := range doc.Entries {
		entries = append(entries, ImportedEntry{
			Row:      i + 1,
			Month:    e.Month,
			Kind:     e.Kind,
			Category: e.Category,
			Amount:   e.Amount.String(),
		})
	}
	return entries, nil
}

func init() {
	RegisterImporter("simple-json", ImporterFunc(ImportSimpleJSON))
}
