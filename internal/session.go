package internal

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Session is one load-mutate-save cycle against a Storage.
// Mutations only touch the in-memory ledger; Close persists them if there were any.
type Session struct {
	storage       Storage
	ledger        *Ledger
	defaultLimits Amounts
	dirty         bool
}

// OpenSession loads the ledger. defaultLimits (may be nil) are applied to months the session creates.
func OpenSession(storage Storage, defaultLimits Amounts) (*Session, error) {
	ledger, err := storage.Load()
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		ledger = NewLedger()
	}
	if ledger.Months == nil {
		ledger.Months = make(map[MonthKey]*MonthRecord)
	}
	return &Session{storage: storage, ledger: ledger, defaultLimits: defaultLimits}, nil
}

func (s *Session) Ledger() *Ledger {
	return s.ledger
}

// Dirty reports whether the session has unsaved mutations
func (s *Session) Dirty() bool {
	return s.dirty
}

// month creates the record for key if needed, seeding configured default limits
func (s *Session) month(key MonthKey) (*MonthRecord, error) {
	if r, ok := s.ledger.Month(key); ok {
		return r, nil
	}
	r := NewMonthRecord()
	if err := r.ApplyDefaultLimits(s.defaultLimits); err != nil {
		return nil, fmt.Errorf("applying default limits: %w", err)
	}
	s.ledger.Months[key] = r
	return r, nil
}

// AddEntry validates raw user input and records it. Nothing changes on error.
func (s *Session) AddEntry(month, category, amount string, kind EntryKind) (MonthKey, decimal.Decimal, error) {
	key, err := ParseMonthKey(month)
	if err != nil {
		return "", decimal.Zero, err
	}
	d, err := ParseAmount(amount)
	if err != nil {
		return "", decimal.Zero, err
	}
	category = NormalizeCategory(category)
	if category == "" {
		return "", decimal.Zero, fmt.Errorf("%w: category must not be empty", ErrInvalidCategory)
	}
	if kind != KindIncome && kind != KindExpense {
		return "", decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	r, err := s.month(key)
	if err != nil {
		return "", decimal.Zero, err
	}
	if err := r.RecordEntry(category, d, kind); err != nil {
		return "", decimal.Zero, err
	}
	s.dirty = true
	slog.Debug("entry recorded", "month", key, "kind", kind, "category", category, "amount", d.String())
	return key, d, nil
}

// SetLimit validates raw user input and replaces the category's limit. Nothing changes on error.
func (s *Session) SetLimit(month, category, limit string) (MonthKey, decimal.Decimal, error) {
	key, err := ParseMonthKey(month)
	if err != nil {
		return "", decimal.Zero, err
	}
	d, err := ParseLimit(limit)
	if err != nil {
		return "", decimal.Zero, err
	}
	category = NormalizeCategory(category)
	if category == "" {
		return "", decimal.Zero, fmt.Errorf("%w: category must not be empty", ErrInvalidCategory)
	}
	r, err := s.month(key)
	if err != nil {
		return "", decimal.Zero, err
	}
	if err := r.SetLimit(category, d); err != nil {
		return "", decimal.Zero, err
	}
	s.dirty = true
	slog.Debug("limit set", "month", key, "category", category, "limit", d.String())
	return key, d, nil
}

// Import validates and applies a batch of entries. Either all entries are recorded or none.
func (s *Session) Import(entries []ImportedEntry) (int, error) {
	staged := s.ledger.Clone()
	if err := ApplyImport(staged, entries); err != nil {
		return 0, err
	}
	for key := range staged.Months {
		if !s.ledger.Has(key) {
			if err := staged.Months[key].ApplyDefaultLimits(s.defaultLimits); err != nil {
				return 0, fmt.Errorf("applying default limits: %w", err)
			}
		}
	}
	s.ledger = staged
	if len(entries) > 0 {
		s.dirty = true
	}
	return len(entries), nil
}

// Close saves the ledger if the session mutated it
func (s *Session) Close() error {
	if !s.dirty {
		return nil
	}
	if err := s.storage.Save(s.ledger); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	s.dirty = false
	return nil
}
