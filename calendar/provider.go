/*
provider.go - Cached holiday aggregation and working-day arithmetic

PURPOSE:
  The Provider is the single source of truth for working-day questions.
  It aggregates the catalog sources with caller-supplied custom holidays
  into a per-year date lookup, caches that map, and exposes
  classification, navigation, range scans, and the deadline-critical
  AddWorkingDays operation.

CACHING:
  Holiday maps are built lazily per year on first access and kept for the
  life of the Provider. Replacing the custom holiday set invalidates the
  whole cache; there is no partial invalidation. The cache is guarded by
  a RWMutex so one Provider can serve concurrent callers.

INSERTION ORDER:
  fixed -> moving -> special -> custom. Later sources overwrite earlier
  entries on the same date, so a custom holiday can rename or retype a
  built-in one.

ADDWORKINGDAYS CONTRACT:
  The walk starts on the day AFTER 'start' and counts qualifying working
  days. The result is the calendar day immediately following the nth
  working day, not the nth working day itself. n = 0 returns start + 1.
  Downstream deadline math depends on this exact contract; golden tests
  pin it.

SEE ALSO:
  - catalog.go: The holiday sources being aggregated
  - switching: Deadline rules consuming AddWorkingDays
*/
package calendar

import (
	"sync"
	"time"
)

// maxScanDays bounds NextWorkingDay/PreviousWorkingDay. A full leap year
// plus one day; any real calendar has a working day well inside that.
const maxScanDays = 366

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config configures a Provider. The zero value is a valid default
// calendar: no custom holidays, special holidays enabled.
type Config struct {
	// CustomHolidays are caller-supplied entries merged in last (they win
	// over built-in entries on the same date).
	CustomHolidays []Holiday

	// Version is optional calendar data provenance metadata.
	Version *Version

	// UseSpecialHolidays toggles the curated Sonderfeiertag list.
	// nil means true.
	UseSpecialHolidays *bool
}

// =============================================================================
// PROVIDER
// =============================================================================

// Provider classifies calendar days and performs working-day arithmetic
// over the aggregated holiday data.
type Provider struct {
	mu             sync.RWMutex
	cache          map[int]map[string]Holiday
	custom         []Holiday
	version        Version
	specialEnabled bool
}

// NewProvider creates a Provider from the given configuration.
func NewProvider(cfg Config) *Provider {
	special := true
	if cfg.UseSpecialHolidays != nil {
		special = *cfg.UseSpecialHolidays
	}

	version := Version{Version: "default", Year: Today().Year(), LastUpdated: time.Now().UTC()}
	if cfg.Version != nil {
		version = *cfg.Version
	}

	return &Provider{
		cache:          make(map[int]map[string]Holiday),
		custom:         append([]Holiday(nil), cfg.CustomHolidays...),
		version:        version,
		specialEnabled: special,
	}
}

// CalendarVersion returns the version metadata for the calendar data.
func (p *Provider) CalendarVersion() Version {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// UpdateCustomHolidays replaces the custom holiday set and drops the
// entire per-year cache. The next query rebuilds affected years.
func (p *Provider) UpdateCustomHolidays(holidays []Holiday) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.custom = append([]Holiday(nil), holidays...)
	p.cache = make(map[int]map[string]Holiday)
	p.version.LastUpdated = time.Now().UTC()
}

// =============================================================================
// YEAR AGGREGATION
// =============================================================================

// holidaysFor returns the cached date->Holiday map for a year, building
// it on first access.
func (p *Provider) holidaysFor(year int) map[string]Holiday {
	p.mu.RLock()
	m, ok := p.cache[year]
	p.mu.RUnlock()
	if ok {
		return m
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// Re-check under the write lock; another goroutine may have built it.
	if m, ok := p.cache[year]; ok {
		return m
	}

	m = make(map[string]Holiday)
	insert := func(hs []Holiday) {
		for _, h := range hs {
			if h.Date.Year() != year {
				continue
			}
			m[h.Date.String()] = h
		}
	}

	insert(FixedHolidays(year))
	insert(MovingHolidays(year))
	if p.specialEnabled {
		insert(SpecialHolidays(year))
	}
	insert(p.custom)

	p.cache[year] = m
	return m
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

// IsHoliday returns the registered holiday on the given date, if any.
// Weekends without a registered entry return (Holiday{}, false).
func (p *Provider) IsHoliday(date Date) (Holiday, bool) {
	h, ok := p.holidaysFor(date.Year())[date.String()]
	return h, ok
}

// IsWorkingDay reports whether the date is neither a weekend day nor a
// registered holiday.
func (p *Provider) IsWorkingDay(date Date) bool {
	if date.IsWeekend() {
		return false
	}
	_, holiday := p.IsHoliday(date)
	return !holiday
}

// DayInfo returns the full classification of a date. Weekend days without
// a registered holiday get a synthetic WEEKEND entry named after the day.
func (p *Provider) DayInfo(date Date) DayInfo {
	if h, ok := p.IsHoliday(date); ok {
		return DayInfo{Date: date, IsWorkingDay: false, Holiday: &h}
	}
	if date.IsWeekend() {
		h := Holiday{Date: date, Name: weekendName(date.Weekday()), Type: TypeWeekend}
		return DayInfo{Date: date, IsWorkingDay: false, Holiday: &h}
	}
	return DayInfo{Date: date, IsWorkingDay: true}
}

func weekendName(wd time.Weekday) string {
	if wd == time.Saturday {
		return "Samstag"
	}
	return "Sonntag"
}

// =============================================================================
// WORKING-DAY ARITHMETIC
// =============================================================================

// AddWorkingDays walks forward from start one calendar day at a time,
// counting working days, and returns the day immediately after the nth
// working day. n <= 0 returns start + 1 under the same rule.
func (p *Provider) AddWorkingDays(start Date, n int) Date {
	cursor := start
	for counted := 0; counted < n; {
		cursor = cursor.AddDays(1)
		if p.IsWorkingDay(cursor) {
			counted++
		}
	}
	return cursor.AddDays(1)
}

// NextWorkingDay returns the first working day strictly after date.
// Fails with ErrScanLimitExceeded if none exists within maxScanDays.
func (p *Provider) NextWorkingDay(date Date) (Date, error) {
	cursor := date
	for i := 0; i < maxScanDays; i++ {
		cursor = cursor.AddDays(1)
		if p.IsWorkingDay(cursor) {
			return cursor, nil
		}
	}
	return Date{}, ErrScanLimitExceeded
}

// PreviousWorkingDay returns the first working day strictly before date.
// Fails with ErrScanLimitExceeded if none exists within maxScanDays.
func (p *Provider) PreviousWorkingDay(date Date) (Date, error) {
	cursor := date
	for i := 0; i < maxScanDays; i++ {
		cursor = cursor.AddDays(-1)
		if p.IsWorkingDay(cursor) {
			return cursor, nil
		}
	}
	return Date{}, ErrScanLimitExceeded
}

// =============================================================================
// RANGE SCANS
// =============================================================================

// WorkingDaysInRange returns DayInfo for every working day in [start, end],
// inclusive on both ends. An inverted range yields nil.
func (p *Provider) WorkingDaysInRange(start, end Date) []DayInfo {
	return p.scanRange(start, end, true)
}

// NonWorkingDaysInRange returns DayInfo for every non-working day in
// [start, end], inclusive on both ends.
func (p *Provider) NonWorkingDaysInRange(start, end Date) []DayInfo {
	return p.scanRange(start, end, false)
}

// CountWorkingDays returns the number of working days in [start, end].
func (p *Provider) CountWorkingDays(start, end Date) int {
	return len(p.WorkingDaysInRange(start, end))
}

func (p *Provider) scanRange(start, end Date, working bool) []DayInfo {
	var out []DayInfo
	for cursor := start; cursor.BeforeOrEqual(end); cursor = cursor.AddDays(1) {
		info := p.DayInfo(cursor)
		if info.IsWorkingDay == working {
			out = append(out, info)
		}
	}
	return out
}
