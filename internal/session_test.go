package internal

import (
	"errors"
	"testing"
)

func TestSession_SavesOnlyWhenMutated(t *testing.T) {
	storage := NewMemoryStorage()

	s, err := OpenSession(storage, nil)
	if err != nil {
		t.Fatal(err)
	}
	if storage.Saves() != 1 {
		t.Fatalf("opening a fresh store should initialize it once, got %d saves", storage.Saves())
	}
	if _, err := s.Ledger().Summary(MustMonthKey("2025-01")); !errors.Is(err, ErrMonthNotFound) {
		t.Fatalf("expected ErrMonthNotFound, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if storage.Saves() != 1 {
		t.Errorf("read-only session must not save, got %d saves", storage.Saves())
	}

	s, _ = OpenSession(storage, nil)
	if _, _, err := s.AddEntry("2025-01", "Food", "12.50", KindExpense); err != nil {
		t.Fatal(err)
	}
	if !s.Dirty() {
		t.Error("session should be dirty after AddEntry")
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if storage.Saves() != 2 {
		t.Errorf("expected one save after mutation, got %d saves", storage.Saves())
	}

	l, _ := storage.Load()
	if got := l.Months[MustMonthKey("2025-01")].Expenses.Get("Food"); !got.Equal(d("12.50")) {
		t.Errorf("persisted Food = %s, want 12.50", got)
	}
}

func TestSession_RejectedInputChangesNothing(t *testing.T) {
	tests := []struct {
		name    string
		run     func(s *Session) error
		wantErr error
	}{
		{"bad month", func(s *Session) error {
			_, _, err := s.AddEntry("2025-13", "Food", "10", KindExpense)
			return err
		}, ErrInvalidMonthFormat},
		{"negative amount", func(s *Session) error {
			_, _, err := s.AddEntry("2025-01", "Food", "-50", KindExpense)
			return err
		}, ErrInvalidAmount},
		{"empty category", func(s *Session) error {
			_, _, err := s.AddEntry("2025-01", "", "10", KindIncome)
			return err
		}, ErrInvalidCategory},
		{"negative limit", func(s *Session) error {
			_, _, err := s.SetLimit("2025-01", "Food", "-1")
			return err
		}, ErrInvalidLimit},
		{"non-numeric limit", func(s *Session) error {
			_, _, err := s.SetLimit("2025-01", "Food", "a lot")
			return err
		}, ErrInvalidLimit},
		{"bad import row", func(s *Session) error {
			_, err := s.Import([]ImportedEntry{
				{Row: 1, Month: "2025-01", Kind: "expense", Category: "Food", Amount: "5"},
				{Row: 2, Month: "2025-01", Kind: "expense", Category: "Food", Amount: "-5"},
			})
			return err
		}, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			s, _ := OpenSession(storage, Amounts{"Food": d("400")})

			if err := tt.run(s); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if s.Dirty() {
				t.Error("session should not be dirty after a rejected mutation")
			}
			if len(s.Ledger().Months) != 0 {
				t.Errorf("no month should be created, got %v", s.Ledger().Keys())
			}
			s.Close()
			if storage.Saves() != 1 {
				t.Errorf("rejected mutation must not be saved, got %d saves", storage.Saves())
			}
		})
	}
}

func TestSession_DefaultLimitsOnlyForNewMonths(t *testing.T) {
	storage := NewMemoryStorage()
	existing := NewLedger()
	existing.EnsureMonth(MustMonthKey("2025-01")).Expenses["Food"] = d("10")
	storage.Save(existing)

	s, _ := OpenSession(storage, Amounts{"Food": d("400"), "Rent": d("1000")})
	if _, _, err := s.AddEntry("2025-01", "Food", "5", KindExpense); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.SetLimit("2025-02", "Food", "350"); err != nil {
		t.Fatal(err)
	}

	jan := s.Ledger().Months[MustMonthKey("2025-01")]
	if len(jan.Limits) != 0 {
		t.Errorf("existing month should not receive default limits, got %v", jan.Limits)
	}
	feb := s.Ledger().Months[MustMonthKey("2025-02")]
	if !feb.Limits["Food"].Equal(d("350")) {
		t.Errorf("explicit limit should win over the default, got %s", feb.Limits["Food"])
	}
	if !feb.Limits["Rent"].Equal(d("1000")) {
		t.Errorf("new month should receive default Rent limit, got %v", feb.Limits)
	}
}

func TestSession_Import(t *testing.T) {
	storage := NewMemoryStorage()
	s, _ := OpenSession(storage, Amounts{"Food": d("400")})

	n, err := s.Import([]ImportedEntry{
		{Row: 1, Month: "2025-03", Kind: "income", Category: "Salary", Amount: "3000"},
		{Row: 2, Month: "2025-03", Kind: "expense", Category: "Food", Amount: "450"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("imported %d entries, want 2", n)
	}

	summary, err := s.Ledger().Summary(MustMonthKey("2025-03"))
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Alerts) != 1 || !summary.Alerts[0].Over.Equal(d("50")) {
		t.Errorf("imported month should carry the default Food limit, got alerts %+v", summary.Alerts)
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if storage.Saves() != 2 {
		t.Errorf("expected the import to be saved once, got %d saves", storage.Saves())
	}
}

// zeroLedgerStorage hands out a zero-value ledger, as a minimal Storage implementation might
type zeroLedgerStorage struct {
	ledger *Ledger
	saved  *Ledger
}

func (s *zeroLedgerStorage) Load() (*Ledger, error) {
	return s.ledger, nil
}

func (s *zeroLedgerStorage) Save(l *Ledger) error {
	s.saved = l
	return nil
}

func TestSession_ZeroValueLedgerFromStorage(t *testing.T) {
	tests := []struct {
		name   string
		ledger *Ledger
	}{
		{"zero-value ledger", &Ledger{}},
		{"nil ledger", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &zeroLedgerStorage{ledger: tt.ledger}
			s, err := OpenSession(storage, Amounts{"Rent": d("1000")})
			if err != nil {
				t.Fatal(err)
			}
			if _, _, err := s.AddEntry("2025-01", "Food", "5", KindExpense); err != nil {
				t.Fatalf("AddEntry: %v", err)
			}
			if _, _, err := s.SetLimit("2025-02", "Food", "100"); err != nil {
				t.Fatalf("SetLimit: %v", err)
			}
			if err := s.Close(); err != nil {
				t.Fatal(err)
			}
			if storage.saved == nil || len(storage.saved.Months) != 2 {
				t.Fatalf("expected two saved months, got %+v", storage.saved)
			}
			if got := storage.saved.Months[MustMonthKey("2025-01")].Limits.Get("Rent"); !got.Equal(d("1000")) {
				t.Errorf("default limit on new month = %s, want 1000", got)
			}
		})
	}
}

func TestSession_CategoryWhitespaceMatchesImport(t *testing.T) {
	s, _ := OpenSession(NewMemoryStorage(), nil)

	if _, _, err := s.AddEntry("2025-01", " Food ", "5", KindExpense); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.SetLimit("2025-01", "Food\t", "20"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Import([]ImportedEntry{{Row: 1, Month: "2025-01", Kind: "expense", Category: "Food", Amount: "7"}}); err != nil {
		t.Fatal(err)
	}

	r := s.Ledger().Months[MustMonthKey("2025-01")]
	if len(r.Expenses) != 1 || !r.Expenses.Get("Food").Equal(d("12")) {
		t.Errorf("expected a single Food category totalling 12, got %v", r.Expenses)
	}
	if len(r.Limits) != 1 || !r.Limits.Get("Food").Equal(d("20")) {
		t.Errorf("expected a single Food limit, got %v", r.Limits)
	}

	if _, _, err := s.AddEntry("2025-01", "   ", "5", KindExpense); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("whitespace-only category should be rejected, got %v", err)
	}
}
