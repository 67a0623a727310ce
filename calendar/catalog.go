/*
catalog.go - Holiday generation per calendar year

PURPOSE:
  Pure functions of a year number producing the three built-in holiday
  sources the Provider aggregates:

  FixedHolidays:   Hard-coded month/day entries, including the two
                   operational holidays (Dec 24, Dec 31) that are always
                   non-working for market processes.
  MovingHolidays:  Easter-relative days via the Gregorian computus, plus
                   the Day of Repentance and Prayer (Buß- und Bettag).
  SpecialHolidays: Curated one-time market-coordination days filtered to
                   the requested year.

BUSS- UND BETTAG:
  The Wednesday strictly preceding November 23. When November 23 itself
  falls on a Wednesday the result is the Wednesday one week earlier, never
  November 23 itself. The scan therefore starts at November 22.

SEE ALSO:
  - provider.go: Aggregation, caching, and custom-holiday overrides
*/
package calendar

import (
	"time"
)

// =============================================================================
// FIXED HOLIDAYS
// =============================================================================

// FixedHolidays returns the recurring fixed-date holidays for a year.
// Region lists are descriptive metadata; classification ignores them.
func FixedHolidays(year int) []Holiday {
	return []Holiday{
		{Date: NewDate(year, time.January, 1), Name: "Neujahr", Type: TypePublic},
		{Date: NewDate(year, time.January, 6), Name: "Heilige Drei Könige", Type: TypePublic,
			Regions: []Region{RegionBW, RegionBY, RegionST}},
		{Date: NewDate(year, time.May, 1), Name: "Tag der Arbeit", Type: TypePublic},
		{Date: NewDate(year, time.August, 15), Name: "Mariä Himmelfahrt", Type: TypePublic,
			Regions: []Region{RegionBY, RegionSL}},
		{Date: NewDate(year, time.September, 20), Name: "Weltkindertag", Type: TypePublic,
			Regions: []Region{RegionTH}},
		{Date: NewDate(year, time.October, 3), Name: "Tag der Deutschen Einheit", Type: TypePublic},
		{Date: NewDate(year, time.October, 31), Name: "Reformationstag", Type: TypePublic,
			Regions: []Region{RegionBB, RegionHB, RegionHH, RegionMV, RegionNI, RegionSN, RegionST, RegionSH, RegionTH}},
		{Date: NewDate(year, time.November, 1), Name: "Allerheiligen", Type: TypePublic,
			Regions: []Region{RegionBW, RegionBY, RegionNW, RegionRP, RegionSL}},
		{Date: NewDate(year, time.December, 24), Name: "Heiligabend", Type: TypeOperational,
			Description: "Non-working for market processes under GPKE/GeLi Gas"},
		{Date: NewDate(year, time.December, 25), Name: "1. Weihnachtstag", Type: TypePublic},
		{Date: NewDate(year, time.December, 26), Name: "2. Weihnachtstag", Type: TypePublic},
		{Date: NewDate(year, time.December, 31), Name: "Silvester", Type: TypeOperational,
			Description: "Non-working for market processes under GPKE/GeLi Gas"},
	}
}

// =============================================================================
// MOVING (EASTER-RELATIVE) HOLIDAYS
// =============================================================================

// EasterSunday computes Easter Sunday for a year using the anonymous
// Gregorian computus (Meeus/Jones/Butcher).
func EasterSunday(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return NewDate(year, time.Month(month), day)
}

// RepentanceDay returns the Day of Repentance and Prayer (Buß- und Bettag):
// the Wednesday strictly before November 23 of the year.
func RepentanceDay(year int) Date {
	d := NewDate(year, time.November, 22)
	for d.Weekday() != time.Wednesday {
		d = d.AddDays(-1)
	}
	return d
}

// MovingHolidays returns the Easter-derived holidays plus the Day of
// Repentance and Prayer for a year.
func MovingHolidays(year int) []Holiday {
	easter := EasterSunday(year)

	return []Holiday{
		{Date: easter.AddDays(-2), Name: "Karfreitag", Type: TypePublic},
		{Date: easter, Name: "Ostersonntag", Type: TypePublic},
		{Date: easter.AddDays(1), Name: "Ostermontag", Type: TypePublic},
		{Date: easter.AddDays(39), Name: "Christi Himmelfahrt", Type: TypePublic},
		{Date: easter.AddDays(49), Name: "Pfingstsonntag", Type: TypePublic},
		{Date: easter.AddDays(50), Name: "Pfingstmontag", Type: TypePublic},
		{Date: easter.AddDays(60), Name: "Fronleichnam", Type: TypePublic,
			Regions: []Region{RegionBW, RegionBY, RegionHE, RegionNW, RegionRP, RegionSL}},
		{Date: RepentanceDay(year), Name: "Buß- und Bettag", Type: TypePublic,
			Regions: []Region{RegionSN}},
	}
}

// =============================================================================
// SPECIAL HOLIDAYS (Sonderfeiertage)
// =============================================================================

// specialHolidays is the curated list of coordinated market-transition
// days. Hand-maintained; entries are one-time by nature.
var specialHolidays = []Holiday{
	{Date: MustParseDate("2023-04-01"), Name: "MaKo-Umstellung Gasmarkt", Type: TypeSpecial,
		Description: "Coordinated market-communication format changeover (gas)", OneTime: true},
	{Date: MustParseDate("2024-04-03"), Name: "MaKo-Umstellung Strommarkt", Type: TypeSpecial,
		Description: "Coordinated market-communication format changeover (power)", OneTime: true},
	{Date: MustParseDate("2025-06-06"), Name: "Go-Live 24h-Lieferantenwechsel", Type: TypeSpecial,
		Description: "Market-wide cutover to the 24-hour supplier switch", OneTime: true},
}

// SpecialHolidays returns the curated special days whose date falls in the
// requested year.
func SpecialHolidays(year int) []Holiday {
	var out []Holiday
	for _, h := range specialHolidays {
		if h.Date.Year() == year {
			out = append(out, h)
		}
	}
	return out
}
