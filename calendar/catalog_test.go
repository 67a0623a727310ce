package calendar

import (
	"testing"
)

// =============================================================================
// FIXED HOLIDAYS
// =============================================================================

func TestFixedHolidays_CountAndOperationalDays(t *testing.T) {
	holidays := FixedHolidays(2025)

	if len(holidays) != 12 {
		t.Fatalf("expected 12 fixed holidays, got %d", len(holidays))
	}

	operational := 0
	byDate := make(map[string]Holiday)
	for _, h := range holidays {
		byDate[h.Date.String()] = h
		if h.Type == TypeOperational {
			operational++
		}
	}

	if operational != 2 {
		t.Errorf("expected 2 operational holidays, got %d", operational)
	}
	if h := byDate["2025-12-24"]; h.Type != TypeOperational {
		t.Errorf("expected Dec 24 to be operational, got %s", h.Type)
	}
	if h := byDate["2025-12-31"]; h.Type != TypeOperational {
		t.Errorf("expected Dec 31 to be operational, got %s", h.Type)
	}
	if h := byDate["2025-10-03"]; h.Name != "Tag der Deutschen Einheit" || !h.Nationwide() {
		t.Errorf("unexpected Oct 3 entry: %+v", h)
	}
}

func TestFixedHolidays_RegionMetadata(t *testing.T) {
	for _, h := range FixedHolidays(2025) {
		if h.Name == "Heilige Drei Könige" {
			if len(h.Regions) != 3 {
				t.Errorf("expected 3 regions for Heilige Drei Könige, got %v", h.Regions)
			}
			return
		}
	}
	t.Fatal("Heilige Drei Könige not found")
}

// =============================================================================
// MOVING HOLIDAYS
// =============================================================================

func TestEasterSunday_GoldenDates(t *testing.T) {
	cases := map[int]string{
		2024: "2024-03-31",
		2025: "2025-04-20",
		2026: "2026-04-05",
		2038: "2038-04-25", // latest possible Easter in the century
	}
	for year, want := range cases {
		if got := EasterSunday(year).String(); got != want {
			t.Errorf("Easter %d: expected %s, got %s", year, want, got)
		}
	}
}

func TestMovingHolidays_DerivedDates2025(t *testing.T) {
	byName := make(map[string]Holiday)
	for _, h := range MovingHolidays(2025) {
		byName[h.Name] = h
	}

	want := map[string]string{
		"Karfreitag":          "2025-04-18",
		"Ostersonntag":        "2025-04-20",
		"Ostermontag":         "2025-04-21",
		"Christi Himmelfahrt": "2025-05-29",
		"Pfingstsonntag":      "2025-06-08",
		"Pfingstmontag":       "2025-06-09",
		"Fronleichnam":        "2025-06-19",
		"Buß- und Bettag":     "2025-11-19",
	}
	for name, date := range want {
		h, ok := byName[name]
		if !ok {
			t.Errorf("missing holiday %s", name)
			continue
		}
		if h.Date.String() != date {
			t.Errorf("%s: expected %s, got %s", name, date, h.Date)
		}
	}
}

func TestRepentanceDay(t *testing.T) {
	cases := map[int]string{
		2025: "2025-11-19",
		2026: "2026-11-18",
		// Nov 23 falls on a Wednesday in 2022: the result must be the
		// Wednesday one week earlier, never Nov 23 itself.
		2022: "2022-11-16",
	}
	for year, want := range cases {
		if got := RepentanceDay(year).String(); got != want {
			t.Errorf("RepentanceDay(%d): expected %s, got %s", year, want, got)
		}
	}
}

// =============================================================================
// SPECIAL HOLIDAYS
// =============================================================================

func TestSpecialHolidays_FilteredByYear(t *testing.T) {
	for _, h := range SpecialHolidays(2025) {
		if h.Date.Year() != 2025 {
			t.Errorf("holiday %s leaked into 2025", h.Date)
		}
		if h.Type != TypeSpecial || !h.OneTime {
			t.Errorf("special holiday %s should be one-time SPECIAL_HOLIDAY", h.Name)
		}
	}

	if got := SpecialHolidays(1999); len(got) != 0 {
		t.Errorf("expected no special holidays for 1999, got %d", len(got))
	}
}
