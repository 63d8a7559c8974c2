package internal

import "testing"

func TestSuggestLimits(t *testing.T) {
	l := NewLedger()
	l.EnsureMonth(MustMonthKey("2025-01")).Expenses["Food"] = d("100")
	l.EnsureMonth(MustMonthKey("2025-02")).Expenses["Food"] = d("150.50")
	l.EnsureMonth(MustMonthKey("2025-02")).Expenses["Rent"] = d("1000")
	// Months at or after the target don't count
	l.EnsureMonth(MustMonthKey("2025-03")).Expenses["Food"] = d("9999")
	l.EnsureMonth(MustMonthKey("2025-03")).Limits["Rent"] = d("1000")

	got := SuggestLimits(l, MustMonthKey("2025-03"))

	if len(got) != 1 {
		t.Fatalf("expected only Food (Rent already has a limit), got %+v", got)
	}
	s := got[0]
	if s.Category != "Food" || s.MonthCount != 2 {
		t.Errorf("unexpected suggestion: %+v", s)
	}
	if !s.Average.Equal(d("125.25")) {
		t.Errorf("average = %s, want 125.25", s.Average)
	}
	if !s.Suggested.Equal(d("126")) {
		t.Errorf("suggested = %s, want 126", s.Suggested)
	}
}

func TestSuggestLimits_NoHistory(t *testing.T) {
	l := NewLedger()
	l.EnsureMonth(MustMonthKey("2025-01")).Expenses["Food"] = d("100")

	if got := SuggestLimits(l, MustMonthKey("2025-01")); len(got) != 0 {
		t.Errorf("expected no suggestions without earlier months, got %+v", got)
	}
}
