package calendar

import (
	"errors"
	"testing"
	"time"
)

// =============================================================================
// PARSING TESTS
// =============================================================================

func TestParseDate_Valid(t *testing.T) {
	d, err := ParseDate("2025-10-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.October || d.Day() != 1 {
		t.Errorf("expected 2025-10-01, got %s", d)
	}
	if d.String() != "2025-10-01" {
		t.Errorf("round trip mismatch: %s", d)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	cases := []string{"", "not-a-date", "2025-13-01", "2025-02-30", "01.10.2025", "2025-10-01T00:00:00Z"}
	for _, input := range cases {
		_, err := ParseDate(input)
		if err == nil {
			t.Errorf("expected error for %q", input)
			continue
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate for %q, got %v", input, err)
		}
		var ide *InvalidDateError
		if !errors.As(err, &ide) {
			t.Errorf("expected InvalidDateError for %q", input)
		}
	}
}

func TestFromTime_TruncatesTimeOfDay(t *testing.T) {
	// GIVEN: a timestamp with time-of-day in a non-UTC zone
	// THEN: the Date is the UTC calendar day at midnight
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2025, time.October, 1, 23, 45, 0, 0, loc) // 22:45 UTC
	d := FromTime(ts)
	if d.String() != "2025-10-01" {
		t.Errorf("expected 2025-10-01, got %s", d)
	}
	if h := d.Time.Hour(); h != 0 {
		t.Errorf("expected midnight, got hour %d", h)
	}
}

// =============================================================================
// ARITHMETIC TESTS
// =============================================================================

func TestDaysBetween(t *testing.T) {
	from := MustParseDate("2025-10-01")
	if got := DaysBetween(from, MustParseDate("2025-10-07")); got != 6 {
		t.Errorf("expected 6, got %d", got)
	}
	if got := DaysBetween(from, MustParseDate("2025-08-20")); got != -42 {
		t.Errorf("expected -42, got %d", got)
	}
	if got := DaysBetween(from, from); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestAddDays_CrossesMonthAndYear(t *testing.T) {
	if got := MustParseDate("2025-12-30").AddDays(3); got.String() != "2026-01-02" {
		t.Errorf("expected 2026-01-02, got %s", got)
	}
	if got := MustParseDate("2025-10-01").AddDays(-42); got.String() != "2025-08-20" {
		t.Errorf("expected 2025-08-20, got %s", got)
	}
}

func TestIsWeekend(t *testing.T) {
	if !MustParseDate("2025-10-04").IsWeekend() { // Saturday
		t.Error("expected 2025-10-04 to be a weekend")
	}
	if !MustParseDate("2025-10-05").IsWeekend() { // Sunday
		t.Error("expected 2025-10-05 to be a weekend")
	}
	if MustParseDate("2025-10-06").IsWeekend() { // Monday
		t.Error("expected 2025-10-06 to be a weekday")
	}
}
