/*
Package calendar implements the German energy-market working-day calendar.

PURPOSE:
  Classifies any calendar day as working or non-working under GPKE/GeLi Gas
  market rules. A day is non-working when it is a Saturday, a Sunday, a
  statutory public holiday, one of the two operational holidays (Dec 24 and
  Dec 31), a special market-coordination day, or a caller-supplied custom
  holiday.

KEY CONCEPTS IN THIS FILE (types.go):
  - Holiday: A non-working day with its classification and region scope
  - HolidayType: WEEKEND / PUBLIC_HOLIDAY / OPERATIONAL_HOLIDAY / SPECIAL_HOLIDAY
  - Region: Closed set of Bundesland (federal state) codes
  - DayInfo: Per-day query result combining classification and holiday detail
  - Version: Calendar data version metadata (not used in computation)

REGION SEMANTICS:
  Holiday.Regions is descriptive metadata. Working-day classification does
  NOT filter by region: every registered holiday counts as non-working for
  every caller, nationwide or not. Market processes run against a single
  shared calendar, so a regionally restricted holiday still blocks the
  nationwide process day.

SEE ALSO:
  - catalog.go: Fixed, moving, and special holiday generation
  - provider.go: Cached aggregation and working-day arithmetic
*/
package calendar

import (
	"time"
)

// =============================================================================
// HOLIDAY
// =============================================================================

// HolidayType classifies why a day is non-working.
type HolidayType string

const (
	// TypeWeekend marks synthetic Saturday/Sunday entries in DayInfo results.
	TypeWeekend HolidayType = "WEEKEND"

	// TypePublic marks statutory public holidays.
	TypePublic HolidayType = "PUBLIC_HOLIDAY"

	// TypeOperational marks days that are non-working for market processes
	// without being statutory holidays everywhere (Dec 24, Dec 31).
	TypeOperational HolidayType = "OPERATIONAL_HOLIDAY"

	// TypeSpecial marks one-time market-coordination days (Sonderfeiertage).
	TypeSpecial HolidayType = "SPECIAL_HOLIDAY"
)

// Region identifies a German federal state (Bundesland) by its common code.
type Region string

const (
	RegionBW Region = "BW" // Baden-Württemberg
	RegionBY Region = "BY" // Bayern
	RegionBE Region = "BE" // Berlin
	RegionBB Region = "BB" // Brandenburg
	RegionHB Region = "HB" // Bremen
	RegionHH Region = "HH" // Hamburg
	RegionHE Region = "HE" // Hessen
	RegionMV Region = "MV" // Mecklenburg-Vorpommern
	RegionNI Region = "NI" // Niedersachsen
	RegionNW Region = "NW" // Nordrhein-Westfalen
	RegionRP Region = "RP" // Rheinland-Pfalz
	RegionSL Region = "SL" // Saarland
	RegionSN Region = "SN" // Sachsen
	RegionST Region = "ST" // Sachsen-Anhalt
	RegionSH Region = "SH" // Schleswig-Holstein
	RegionTH Region = "TH" // Thüringen
)

// Holiday is a registered non-working day. Identity within a calendar year
// is the date; when multiple sources produce the same date, the later
// source wins (insertion order: fixed, moving, special, custom).
type Holiday struct {
	Date        Date
	Name        string
	Type        HolidayType
	Regions     []Region // empty = nationwide
	Description string
	OneTime     bool // non-recurring entry (special/custom days)
}

// Nationwide reports whether the holiday has no region restriction.
func (h Holiday) Nationwide() bool {
	return len(h.Regions) == 0
}

// =============================================================================
// DAY INFO
// =============================================================================

// DayInfo is the full classification of a single calendar day.
// Holiday is set for registered holidays AND for plain weekends, where a
// synthetic WEEKEND entry named after the day is filled in.
type DayInfo struct {
	Date         Date
	IsWorkingDay bool
	Holiday      *Holiday
}

// =============================================================================
// VERSION METADATA
// =============================================================================

// Version describes the provenance of the calendar data. It is metadata
// only and never consulted during classification.
type Version struct {
	Version     string    `json:"version"`
	Year        int       `json:"year"`
	LastUpdated time.Time `json:"lastUpdated"`
}
