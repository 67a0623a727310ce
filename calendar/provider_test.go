package calendar

import (
	"errors"
	"testing"
)

func newDefaultProvider() *Provider {
	return NewProvider(Config{})
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

func TestIsWorkingDay_WeekendsAlwaysNonWorking(t *testing.T) {
	p := newDefaultProvider()

	// Every Saturday and Sunday of 2025
	d := MustParseDate("2025-01-01")
	for d.Year() == 2025 {
		if d.IsWeekend() && p.IsWorkingDay(d) {
			t.Errorf("weekend %s classified as working", d)
		}
		d = d.AddDays(1)
	}
}

func TestIsWorkingDay_DefaultCalendarGoldenDates(t *testing.T) {
	p := newDefaultProvider()

	nonWorking := []string{"2025-01-01", "2025-10-03", "2025-12-24", "2025-12-31"}
	for _, s := range nonWorking {
		if p.IsWorkingDay(MustParseDate(s)) {
			t.Errorf("expected %s to be non-working", s)
		}
	}

	working := []string{"2025-10-01", "2025-10-02", "2025-10-06", "2025-12-22"}
	for _, s := range working {
		if !p.IsWorkingDay(MustParseDate(s)) {
			t.Errorf("expected %s to be working", s)
		}
	}
}

func TestDayInfo_SynthesizesWeekendHoliday(t *testing.T) {
	p := newDefaultProvider()

	sat := p.DayInfo(MustParseDate("2025-10-04"))
	if sat.IsWorkingDay {
		t.Error("Saturday classified as working")
	}
	if sat.Holiday == nil || sat.Holiday.Type != TypeWeekend || sat.Holiday.Name != "Samstag" {
		t.Errorf("expected synthetic Samstag entry, got %+v", sat.Holiday)
	}

	sun := p.DayInfo(MustParseDate("2025-10-05"))
	if sun.Holiday == nil || sun.Holiday.Name != "Sonntag" {
		t.Errorf("expected synthetic Sonntag entry, got %+v", sun.Holiday)
	}

	workday := p.DayInfo(MustParseDate("2025-10-06"))
	if !workday.IsWorkingDay || workday.Holiday != nil {
		t.Errorf("expected plain working day, got %+v", workday)
	}
}

func TestDayInfo_RegisteredHolidayWins(t *testing.T) {
	p := newDefaultProvider()

	info := p.DayInfo(MustParseDate("2025-10-03"))
	if info.IsWorkingDay {
		t.Error("Oct 3 classified as working")
	}
	if info.Holiday == nil || info.Holiday.Name != "Tag der Deutschen Einheit" {
		t.Errorf("expected Tag der Deutschen Einheit, got %+v", info.Holiday)
	}
}

func TestIsWorkingDay_RegionRestrictedHolidayBlocksEveryone(t *testing.T) {
	// Fronleichnam 2025 (Jun 19, Thursday) is region-restricted metadata,
	// but classification applies it nationwide.
	p := newDefaultProvider()
	if p.IsWorkingDay(MustParseDate("2025-06-19")) {
		t.Error("expected region-restricted Fronleichnam to be non-working")
	}
}

func TestIsWorkingDay_SpecialHolidayToggle(t *testing.T) {
	// 2025-06-06 (Friday) is a special market-transition day.
	withSpecial := newDefaultProvider()
	if withSpecial.IsWorkingDay(MustParseDate("2025-06-06")) {
		t.Error("expected special holiday to be non-working by default")
	}

	off := false
	withoutSpecial := NewProvider(Config{UseSpecialHolidays: &off})
	if !withoutSpecial.IsWorkingDay(MustParseDate("2025-06-06")) {
		t.Error("expected working day with special holidays disabled")
	}
}

// =============================================================================
// WORKING-DAY ARITHMETIC
// =============================================================================

func TestAddWorkingDays_GoldenScenario(t *testing.T) {
	// GIVEN: 2025-10-01 (Wed); Oct 3 is a holiday, Oct 4/5 a weekend
	// WHEN: adding 2 working days
	// THEN: the 2nd working day after start is Mon Oct 6; result is the
	//       day after it, Oct 7
	p := newDefaultProvider()
	got := p.AddWorkingDays(MustParseDate("2025-10-01"), 2)
	if got.String() != "2025-10-07" {
		t.Errorf("expected 2025-10-07, got %s", got)
	}
}

func TestAddWorkingDays_ZeroReturnsNextCalendarDay(t *testing.T) {
	p := newDefaultProvider()
	got := p.AddWorkingDays(MustParseDate("2025-10-03"), 0)
	if got.String() != "2025-10-04" {
		t.Errorf("expected 2025-10-04, got %s", got)
	}
}

func TestAddWorkingDays_StartDayDoesNotCount(t *testing.T) {
	// The walk starts on the day after 'start', so a working start day
	// contributes nothing.
	p := newDefaultProvider()
	got := p.AddWorkingDays(MustParseDate("2025-10-06"), 1) // Monday
	if got.String() != "2025-10-08" {                       // Tue counts, result Wed
		t.Errorf("expected 2025-10-08, got %s", got)
	}
}

func TestCountWorkingDays_YearEndGolden(t *testing.T) {
	// Dec 22, 23, 29, 30 and Jan 2, 5 are the only working days in the range.
	p := newDefaultProvider()
	got := p.CountWorkingDays(MustParseDate("2025-12-22"), MustParseDate("2026-01-05"))
	if got != 6 {
		t.Errorf("expected 6 working days, got %d", got)
	}
}

func TestRangeScans_InclusiveAndComplementary(t *testing.T) {
	p := newDefaultProvider()
	start := MustParseDate("2025-12-22")
	end := MustParseDate("2026-01-05")

	working := p.WorkingDaysInRange(start, end)
	nonWorking := p.NonWorkingDaysInRange(start, end)

	total := DaysBetween(start, end) + 1
	if len(working)+len(nonWorking) != total {
		t.Errorf("expected %d days total, got %d + %d", total, len(working), len(nonWorking))
	}
	for _, d := range nonWorking {
		if d.Holiday == nil {
			t.Errorf("non-working day %s has no holiday detail", d.Date)
		}
	}
}

func TestRangeScans_InvertedRangeIsEmpty(t *testing.T) {
	p := newDefaultProvider()
	if got := p.CountWorkingDays(MustParseDate("2025-10-07"), MustParseDate("2025-10-01")); got != 0 {
		t.Errorf("expected 0 for inverted range, got %d", got)
	}
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestNextWorkingDay_SkipsHolidayBlock(t *testing.T) {
	p := newDefaultProvider()
	got, err := p.NextWorkingDay(MustParseDate("2025-10-02"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "2025-10-06" {
		t.Errorf("expected 2025-10-06, got %s", got)
	}
}

func TestPreviousWorkingDay_SkipsHolidayBlock(t *testing.T) {
	p := newDefaultProvider()
	got, err := p.PreviousWorkingDay(MustParseDate("2025-10-06"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.String() != "2025-10-02" {
		t.Errorf("expected 2025-10-02, got %s", got)
	}
}

func TestNextWorkingDay_ScanLimit(t *testing.T) {
	// GIVEN: a custom calendar marking well over a year of weekdays as
	// non-working
	// THEN: the bounded scan fails instead of looping
	var custom []Holiday
	d := MustParseDate("2030-01-01")
	for i := 0; i < 800; i++ {
		custom = append(custom, Holiday{Date: d, Name: "Dauerstillstand", Type: TypeSpecial})
		d = d.AddDays(1)
	}

	p := NewProvider(Config{CustomHolidays: custom})
	_, err := p.NextWorkingDay(MustParseDate("2030-01-01"))
	if !errors.Is(err, ErrScanLimitExceeded) {
		t.Errorf("expected ErrScanLimitExceeded, got %v", err)
	}
}

// =============================================================================
// CUSTOM HOLIDAYS AND CACHE
// =============================================================================

func TestCustomHolidays_OverrideAndInvalidate(t *testing.T) {
	p := newDefaultProvider()

	mon := MustParseDate("2025-10-06")
	if !p.IsWorkingDay(mon) {
		t.Fatal("expected Monday Oct 6 to start as working")
	}

	p.UpdateCustomHolidays([]Holiday{{Date: mon, Name: "Betriebsruhe", Type: TypeSpecial, OneTime: true}})

	if p.IsWorkingDay(mon) {
		t.Error("expected custom holiday to make Oct 6 non-working")
	}

	// Deadline arithmetic shifts accordingly: Oct 6 no longer counts.
	got := p.AddWorkingDays(MustParseDate("2025-10-01"), 2)
	if got.String() != "2025-10-08" {
		t.Errorf("expected 2025-10-08 with custom holiday, got %s", got)
	}

	// Clearing the set restores the default calendar.
	p.UpdateCustomHolidays(nil)
	if !p.IsWorkingDay(mon) {
		t.Error("expected Oct 6 working again after custom holidays cleared")
	}
}

func TestCustomHolidays_LaterSourceWinsOnSameDate(t *testing.T) {
	p := NewProvider(Config{CustomHolidays: []Holiday{
		{Date: MustParseDate("2025-10-03"), Name: "Umbenannt", Type: TypeSpecial},
	}})

	h, ok := p.IsHoliday(MustParseDate("2025-10-03"))
	if !ok {
		t.Fatal("expected holiday on Oct 3")
	}
	if h.Name != "Umbenannt" || h.Type != TypeSpecial {
		t.Errorf("expected custom entry to win, got %+v", h)
	}
}

func TestCache_BuiltOncePerYearAndFullyInvalidated(t *testing.T) {
	p := newDefaultProvider()

	p.IsWorkingDay(MustParseDate("2025-03-03"))
	p.IsWorkingDay(MustParseDate("2025-11-11"))
	if len(p.cache) != 1 {
		t.Errorf("expected 1 cached year, got %d", len(p.cache))
	}

	p.IsWorkingDay(MustParseDate("2026-01-02"))
	if len(p.cache) != 2 {
		t.Errorf("expected 2 cached years, got %d", len(p.cache))
	}

	p.UpdateCustomHolidays([]Holiday{{Date: MustParseDate("2025-07-07"), Name: "x", Type: TypeSpecial}})
	if len(p.cache) != 0 {
		t.Errorf("expected empty cache after update, got %d entries", len(p.cache))
	}

	// Next query rebuilds with the new custom set applied.
	if p.IsWorkingDay(MustParseDate("2025-07-07")) {
		t.Error("expected rebuilt cache to include the new custom holiday")
	}
}

func TestCalendarVersion_Metadata(t *testing.T) {
	v := Version{Version: "2025.1", Year: 2025}
	p := NewProvider(Config{Version: &v})

	got := p.CalendarVersion()
	if got.Version != "2025.1" || got.Year != 2025 {
		t.Errorf("unexpected version metadata: %+v", got)
	}
}
