package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestIsKnownFormat(t *testing.T) {
	// Register a test importer
	RegisterImporter("test-format", ImporterFunc(func(path string) ([]ImportedEntry, error) {
		return nil, nil
	}))

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"known format", "test-format", true},
		{"built-in json", "simple-json", true},
		{"built-in xlsx", "xlsx", true},
		{"unknown format", "unknown-format", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsKnownFormat(tt.input)
			if got != tt.expected {
				t.Errorf("IsKnownFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFileArg(t *testing.T) {
	RegisterImporter("test-format", ImporterFunc(func(path string) ([]ImportedEntry, error) {
		return nil, nil
	}))

	tests := []struct {
		name           string
		input          string
		expectedFormat string
		expectedPath   string
	}{
		{"with known format prefix", "test-format:data.json", "test-format", "data.json"},
		{"with built-in format prefix", "xlsx:entries.bin", "xlsx", "entries.bin"},
		{"xlsx extension", "entries.xlsx", "xlsx", "entries.xlsx"},
		{"xlsx extension any case", "Entries.XLSX", "xlsx", "Entries.XLSX"},
		{"no prefix defaults to json", "data.json", "simple-json", "data.json"},
		{"unknown prefix treated as path", "unknown:data.json", "simple-json", "unknown:data.json"},
		{"windows path with drive letter", "C:\\Users\\test\\data.xlsx", "xlsx", "C:\\Users\\test\\data.xlsx"},
		{"format prefix with absolute path", "test-format:/home/user/data.json", "test-format", "/home/user/data.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotFormat, gotPath := ParseFileArg(tt.input)
			if gotFormat != tt.expectedFormat {
				t.Errorf("ParseFileArg(%q) format = %q, want %q", tt.input, gotFormat, tt.expectedFormat)
			}
			if gotPath != tt.expectedPath {
				t.Errorf("ParseFileArg(%q) path = %q, want %q", tt.input, gotPath, tt.expectedPath)
			}
		})
	}
}

func TestImportSimpleJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	content := `{
  "entries": [
    {"month": "2025-01", "kind": "income", "category": "Salary", "amount": 3000},
    {"month": "2025-01", "kind": "expense", "category": "Food", "amount": 12.50},
    {"month": "2025-02", "kind": "expense", "category": "Food", "amount": "7.25"}
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadImportFile(path)
	if err != nil {
		t.Fatalf("ReadImportFile: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[1].Category != "Food" || entries[1].Amount != "12.50" || entries[1].Row != 2 {
		t.Errorf("unexpected entry: %+v", entries[1])
	}
	if entries[2].Amount != "7.25" {
		t.Errorf("string amount should be accepted, got %q", entries[2].Amount)
	}
}

func TestImportSimpleJSON_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	os.WriteFile(path, []byte(`{"entries": [`), 0644)

	if _, err := ImportSimpleJSON(path); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func writeTestWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "entries.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportXLSX(t *testing.T) {
	path := writeTestWorkbook(t, [][]any{
		{"Household budget export"},
		{},
		{"Category", "Amount", "Month", "Kind"},
		{"Salary", "3000", "2025-01", "Income"},
		{"Food", "412.5", "2025-01", "Expense"},
		{},
		{"Rent", "1000", "2025-02", "expense"},
	})

	entries, err := ImportXLSX(path)
	if err != nil {
		t.Fatalf("ImportXLSX: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Month != "2025-01" || entries[0].Kind != "Income" || entries[0].Category != "Salary" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[2].Row != 7 {
		t.Errorf("expected spreadsheet row 7, got %d", entries[2].Row)
	}
}

func TestImportXLSX_MissingColumns(t *testing.T) {
	path := writeTestWorkbook(t, [][]any{
		{"Category", "Amount"},
		{"Food", "10"},
	})

	if _, err := ImportXLSX(path); err == nil {
		t.Error("expected error for missing Month/Kind columns")
	}
}

func TestApplyImport(t *testing.T) {
	l := NewLedger()
	err := ApplyImport(l, []ImportedEntry{
		{Row: 1, Month: "2025-01", Kind: "income", Category: "Salary", Amount: "3000"},
		{Row: 2, Month: "2025-01", Kind: "expense", Category: "Food", Amount: "10.10"},
		{Row: 3, Month: "2025-01", Kind: "expenses", Category: " Food ", Amount: "0.20"},
	})
	if err != nil {
		t.Fatalf("ApplyImport: %v", err)
	}

	r, ok := l.Month(MustMonthKey("2025-01"))
	if !ok {
		t.Fatal("expected month to be created")
	}
	if got := r.Expenses.Get("Food"); !got.Equal(d("10.30")) {
		t.Errorf("Food = %s, want 10.30", got)
	}
	if got := r.Income.Get("Salary"); !got.Equal(d("3000")) {
		t.Errorf("Salary = %s, want 3000", got)
	}
}

func TestApplyImport_AllOrNothing(t *testing.T) {
	tests := []struct {
		name    string
		bad     ImportedEntry
		wantErr error
	}{
		{"bad month", ImportedEntry{Row: 2, Month: "2025-13", Kind: "expense", Category: "Food", Amount: "1"}, ErrInvalidMonthFormat},
		{"bad kind", ImportedEntry{Row: 2, Month: "2025-01", Kind: "transfer", Category: "Food", Amount: "1"}, ErrInvalidKind},
		{"empty category", ImportedEntry{Row: 2, Month: "2025-01", Kind: "expense", Category: "  ", Amount: "1"}, ErrInvalidCategory},
		{"negative amount", ImportedEntry{Row: 2, Month: "2025-01", Kind: "expense", Category: "Food", Amount: "-1"}, ErrInvalidAmount},
		{"non-numeric amount", ImportedEntry{Row: 2, Month: "2025-01", Kind: "expense", Category: "Food", Amount: "lots"}, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			err := ApplyImport(l, []ImportedEntry{
				{Row: 1, Month: "2025-01", Kind: "expense", Category: "Rent", Amount: "1000"},
				tt.bad,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(l.Months) != 0 {
				t.Errorf("ledger should be untouched, got %d months", len(l.Months))
			}
		})
	}
}
