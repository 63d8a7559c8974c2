package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ImportedEntry is one raw row read from an import file, not yet validated
type ImportedEntry struct {
	Row      int // 1-based position in the source, for error messages
	Month    string
	Kind     string
	Category string
	Amount   string
}

// Importer reads entries from a file
type Importer interface {
	Import(path string) ([]ImportedEntry, error)
}

// ImporterFunc is a function that implements Importer
type ImporterFunc func(path string) ([]ImportedEntry, error)

func (f ImporterFunc) Import(path string) ([]ImportedEntry, error) {
	return f(path)
}

// importers is the registry of available import formats
var importers = map[string]Importer{}

// RegisterImporter registers an importer with the given format name
func RegisterImporter(name string, imp Importer) {
	importers[name] = imp
}

// GetImporter returns the importer for the given format
func GetImporter(format string) (Importer, error) {
	imp, ok := importers[format]
	if !ok {
		return nil, fmt.Errorf("unknown import format: %s (available: %v)", format, AvailableFormats())
	}
	return imp, nil
}

// AvailableFormats returns a sorted list of registered import formats
func AvailableFormats() []string {
	var formats []string
	for name := range importers {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// IsKnownFormat returns true if the name is a registered import format
func IsKnownFormat(name string) bool {
	_, ok := importers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Without a prefix the format is guessed from the extension.
// Example: "xlsx:data.bin" → ("xlsx", "data.bin")
// Example: "entries.xlsx" → ("xlsx", "entries.xlsx")
// Example: "C:\path\entries.json" → ("simple-json", "C:\path\entries.json")
func ParseFileArg(arg string) (format, path string) {
	if idx := strings.Index(arg, ":"); idx != -1 {
		prefix := arg[:idx]
		if IsKnownFormat(prefix) {
			return prefix, arg[idx+1:]
		}
	}
	if strings.EqualFold(filepath.Ext(arg), ".xlsx") {
		return "xlsx", arg
	}
	return "simple-json", arg
}

// ReadImportFile resolves the format of arg and reads its entries
func ReadImportFile(arg string) ([]ImportedEntry, error) {
	format, path := ParseFileArg(arg)
	imp, err := GetImporter(format)
	if err != nil {
		return nil, err
	}
	entries, err := imp.Import(path)
	if err != nil {
		return nil, fmt.Errorf("importing %s (%s): %w", path, format, err)
	}
	return entries, nil
}

// ApplyImport validates every entry and then records all of them.
// If any entry is invalid the ledger is left untouched.
func ApplyImport(l *Ledger, entries []ImportedEntry) error {
	type validEntry struct {
		month    MonthKey
		kind     EntryKind
		category string
		amount   decimal.Decimal
		row      int
	}
	valid := make([]validEntry, 0, len(entries))

	for _, e := range entries {
		month, err := ParseMonthKey(e.Month)
		if err != nil {
			return fmt.Errorf("row %d: %w", e.Row, err)
		}
		kind, err := ParseEntryKind(e.Kind)
		if err != nil {
			return fmt.Errorf("row %d: %w", e.Row, err)
		}
		category := NormalizeCategory(e.Category)
		if category == "" {
			return fmt.Errorf("row %d: %w: category must not be empty", e.Row, ErrInvalidCategory)
		}
		amount, err := ParseAmount(e.Amount)
		if err != nil {
			return fmt.Errorf("row %d: %w", e.Row, err)
		}
		valid = append(valid, validEntry{month: month, kind: kind, category: category, amount: amount, row: e.Row})
	}

	for _, v := range valid {
		if err := l.EnsureMonth(v.month).RecordEntry(v.category, v.amount, v.kind); err != nil {
			return fmt.Errorf("row %d: %w", v.row, err)
		}
	}
	return nil
}
