package internal

import (
	"errors"
	"testing"
)

func TestRecordEntry_Accumulates(t *testing.T) {
	r := NewMonthRecord()
	for _, amount := range []string{"10.10", "0.20", "5"} {
		if err := r.RecordEntry("Food", d(amount), KindExpense); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.RecordEntry("Salary", d("3000"), KindIncome); err != nil {
		t.Fatal(err)
	}

	if got := r.Expenses.Get("Food"); !got.Equal(d("15.30")) {
		t.Errorf("Food = %s, want 15.30", got)
	}
	if got := r.Income.Get("Salary"); !got.Equal(d("3000")) {
		t.Errorf("Salary = %s, want 3000", got)
	}
	if len(r.Limits) != 0 {
		t.Errorf("recording entries must not create limits, got %v", r.Limits)
	}
}

func TestRecordEntry_ZeroAmountCreatesCategory(t *testing.T) {
	r := NewMonthRecord()
	if err := r.RecordEntry("Gifts", d("0"), KindExpense); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Expenses["Gifts"]; !ok {
		t.Error("zero amount should still create the category")
	}
}

func TestRecordEntry_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		category string
		amount   string
		kind     EntryKind
		wantErr  error
	}{
		{"negative amount", "Food", "-5", KindExpense, ErrInvalidAmount},
		{"empty category", "", "5", KindExpense, ErrInvalidCategory},
		{"unknown kind", "Food", "5", EntryKind("transfer"), ErrInvalidKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewMonthRecord()
			r.Expenses["Food"] = d("7")

			err := r.RecordEntry(tt.category, d(tt.amount), tt.kind)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(r.Expenses) != 1 || !r.Expenses["Food"].Equal(d("7")) || len(r.Income) != 0 {
				t.Errorf("record changed after rejected entry: %+v", r)
			}
		})
	}
}

func TestSetLimit(t *testing.T) {
	r := NewMonthRecord()
	if err := r.SetLimit("Food", d("300")); err != nil {
		t.Fatal(err)
	}
	if err := r.SetLimit("Food", d("300")); err != nil {
		t.Fatal(err)
	}
	if got := r.Limits["Food"]; !got.Equal(d("300")) {
		t.Errorf("setting the same limit twice should not accumulate, got %s", got)
	}

	if err := r.SetLimit("Food", d("250")); err != nil {
		t.Fatal(err)
	}
	if got := r.Limits["Food"]; !got.Equal(d("250")) {
		t.Errorf("limit should be replaced, got %s", got)
	}
	if len(r.Expenses) != 0 {
		t.Error("a limit may exist without any spending")
	}

	if err := r.SetLimit("Food", d("-1")); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
	if err := r.SetLimit("", d("1")); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
	if got := r.Limits["Food"]; !got.Equal(d("250")) {
		t.Errorf("rejected limit changed the record: %s", got)
	}
}

func TestApplyDefaultLimits_KeepsExisting(t *testing.T) {
	r := NewMonthRecord()
	r.Limits["Food"] = d("100")

	if err := r.ApplyDefaultLimits(Amounts{"Food": d("400"), "Rent": d("1000")}); err != nil {
		t.Fatal(err)
	}
	if !r.Limits["Food"].Equal(d("100")) {
		t.Errorf("existing limit overwritten: %s", r.Limits["Food"])
	}
	if !r.Limits["Rent"].Equal(d("1000")) {
		t.Errorf("default limit not applied: %s", r.Limits["Rent"])
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"12.50", "12.5", false},
		{"12,50", "12.5", false},
		{" 100 ", "100", false},
		{"0", "0", false},
		{"-1", "", true},
		{"abc", "", true},
		{"", "", true},
		{"1e", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(d(tt.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLimit_ErrorKind(t *testing.T) {
	if _, err := ParseLimit("-20"); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Food", "Food"},
		{"  Food\t", "Food"},
		{"Eating Out", "Eating Out"},
		{"food", "food"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeCategory(tt.input); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
