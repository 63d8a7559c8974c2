package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Storage loads and saves a whole ledger.
// Load on a store that does not exist yet initializes it with an empty ledger.
// Save is a full replace of the stored state.
type Storage interface {
	Load() (*Ledger, error)
	Save(ledger *Ledger) error
}

// Backend opens a Storage for a location
type Backend interface {
	Open(path string) (Storage, error)
}

// BackendFunc is a function that implements Backend
type BackendFunc func(path string) (Storage, error)

func (f BackendFunc) Open(path string) (Storage, error) {
	return f(path)
}

const defaultBackend = "json"

// backends is the registry of available storage backends
var backends = map[string]Backend{}

// backendByExt maps a lowercase file extension to a backend name
var backendByExt = map[string]string{}

// RegisterBackend registers a backend under name, optionally claiming file extensions
func RegisterBackend(name string, b Backend, extensions ...string) {
	backends[name] = b
	for _, ext := range extensions {
		backendByExt[strings.ToLower(ext)] = name
	}
}

// GetBackend returns the backend registered under name
func GetBackend(name string) (Backend, error) {
	b, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage backend: %s (available: %v)", name, AvailableBackends())
	}
	return b, nil
}

// AvailableBackends returns the registered backend names, sorted
func AvailableBackends() []string {
	var names []string
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsKnownBackend returns true if the name is a registered backend
func IsKnownBackend(name string) bool {
	_, ok := backends[name]
	return ok
}

// ParseStorageArg splits a ledger location into backend name and path.
// An explicit known prefix wins, otherwise the extension decides, otherwise json.
// Example: "yaml:ledger.txt" → ("yaml", "ledger.txt")
// Example: "budget.db" → ("sqlite", "budget.db")
// Example: "C:\data\budget.json" → ("json", "C:\data\budget.json")
func ParseStorageArg(arg string) (backend, path string) {
	if idx := strings.Index(arg, ":"); idx != -1 {
		prefix := arg[:idx]
		if IsKnownBackend(prefix) {
			return prefix, arg[idx+1:]
		}
	}
	if name, ok := backendByExt[strings.ToLower(filepath.Ext(arg))]; ok {
		return name, arg
	}
	return defaultBackend, arg
}

// OpenStorage resolves a ledger location to a Storage
func OpenStorage(arg string) (Storage, error) {
	name, path := ParseStorageArg(arg)
	if path == "" {
		return nil, fmt.Errorf("empty ledger path")
	}
	b, err := GetBackend(name)
	if err != nil {
		return nil, err
	}
	return b.Open(path)
}

// storedMonth is the backend-neutral shape of a persisted month, before validation
type storedMonth struct {
	Income   map[string]decimal.Decimal
	Expenses map[string]decimal.Decimal
	Limits   map[string]decimal.Decimal
}

// buildLedger validates persisted data and turns it into a Ledger.
// Bad month keys and negative amounts make the whole store unreadable.
func buildLedger(months map[string]storedMonth) (*Ledger, error) {
	ledger := NewLedger()
	for raw, m := range months {
		key, err := ParseMonthKey(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnreadable, err)
		}
		if raw != key.String() {
			return nil, fmt.Errorf("%w: month key %q is not in YYYY-MM form", ErrStoreUnreadable, raw)
		}
		r := ledger.EnsureMonth(key)
		for _, part := range []struct {
			name string
			in   map[string]decimal.Decimal
			out  Amounts
		}{
			{"income", m.Income, r.Income},
			{"expenses", m.Expenses, r.Expenses},
			{"limits", m.Limits, r.Limits},
		} {
			for category, v := range part.in {
				if category == "" {
					return nil, fmt.Errorf("%w: %s %s has an empty category", ErrStoreUnreadable, raw, part.name)
				}
				if v.IsNegative() {
					return nil, fmt.Errorf("%w: %s %s[%q] is negative", ErrStoreUnreadable, raw, part.name, category)
				}
				part.out[category] = v
			}
		}
	}
	return ledger, nil
}

// Clone returns a deep copy of the ledger
func (l *Ledger) Clone() *Ledger {
	c := NewLedger()
	for k, r := range l.Months {
		cr := c.EnsureMonth(k)
		for cat, v := range r.Income {
			cr.Income[cat] = v
		}
		for cat, v := range r.Expenses {
			cr.Expenses[cat] = v
		}
		for cat, v := range r.Limits {
			cr.Limits[cat] = v
		}
	}
	return c
}

func init() {
	RegisterBackend("json", BackendFunc(func(path string) (Storage, error) {
		return NewJSONFileStorage(path), nil
	}), ".json")
	RegisterBackend("yaml", BackendFunc(func(path string) (Storage, error) {
		return NewYAMLFileStorage(path), nil
	}), ".yaml", ".yml")
	RegisterBackend("sqlite", BackendFunc(func(path string) (Storage, error) {
		return NewSQLiteStorage(path), nil
	}), ".db", ".sqlite", ".sqlite3")
}
