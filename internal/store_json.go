package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

// jsonMonth is the on-disk layout of one month:
//
//	{
//	  "2025-01": {
//	    "income":   {"Salary": 3000},
//	    "expenses": {"Food": 412.5},
//	    "limits":   {"Food": 400}
//	  }
//	}
type jsonMonth struct {
	Income   map[string]json.Number `json:"income"`
	Expenses map[string]json.Number `json:"expenses"`
	Limits   map[string]json.Number `json:"limits"`
}

// JSONFileStorage keeps the ledger in a single indented JSON file
type JSONFileStorage struct {
	Path string
}

func NewJSONFileStorage(path string) *JSONFileStorage {
	return &JSONFileStorage{Path: path}
}

func (s *JSONFileStorage) Load() (*Ledger, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return initEmptyStore(s, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrStoreUnreadable, s.Path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return NewLedger(), nil
	}

	var doc map[string]jsonMonth
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrStoreUnreadable, s.Path, err)
	}

	months := make(map[string]storedMonth, len(doc))
	for key, m := range doc {
		var sm storedMonth
		var err error
		if sm.Income, err = decodeJSONAmounts(m.Income); err != nil {
			return nil, fmt.Errorf("%w: %s income: %v", ErrStoreUnreadable, key, err)
		}
		if sm.Expenses, err = decodeJSONAmounts(m.Expenses); err != nil {
			return nil, fmt.Errorf("%w: %s expenses: %v", ErrStoreUnreadable, key, err)
		}
		if sm.Limits, err = decodeJSONAmounts(m.Limits); err != nil {
			return nil, fmt.Errorf("%w: %s limits: %v", ErrStoreUnreadable, key, err)
		}
		months[key] = sm
	}

	ledger, err := buildLedger(months)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.Path, err)
	}
	slog.Debug("ledger loaded", "backend", "json", "path", s.Path, "months", len(ledger.Months))
	return ledger, nil
}

func (s *JSONFileStorage) Save(ledger *Ledger) error {
	doc := make(map[string]jsonMonth, len(ledger.Months))
	for key, r := range ledger.Months {
		doc[key.String()] = jsonMonth{
			Income:   encodeJSONAmounts(r.Income),
			Expenses: encodeJSONAmounts(r.Expenses),
			Limits:   encodeJSONAmounts(r.Limits),
		}
	}

	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	if err := writeStoreFile(s.Path, append(data, '\n')); err != nil {
		return err
	}
	slog.Debug("ledger saved", "backend", "json", "path", s.Path, "months", len(ledger.Months))
	return nil
}

func decodeJSONAmounts(in map[string]json.Number) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(in))
	for category, n := range in {
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return nil, fmt.Errorf("%q: %q is not a number", category, n.String())
		}
		out[category] = d
	}
	return out, nil
}

func encodeJSONAmounts(in Amounts) map[string]json.Number {
	out := make(map[string]json.Number, len(in))
	for category, d := range in {
		out[category] = json.Number(d.String())
	}
	return out
}

// initEmptyStore persists an empty ledger to a store that does not exist yet
func initEmptyStore(s Storage, path string) (*Ledger, error) {
	ledger := NewLedger()
	if err := s.Save(ledger); err != nil {
		return nil, fmt.Errorf("initializing ledger %s: %w", path, err)
	}
	slog.Info("created empty ledger", "path", path)
	return ledger, nil
}

func writeStoreFile(path string, data []byte) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing ledger file: %w", err)
	}
	return nil
}
