/*
date.go - Calendar-day value type

PURPOSE:
  All date handling in the engine is calendar-day only: UTC-normalized,
  no time-of-day, no timezone awareness. Date wraps time.Time pinned to
  UTC midnight so that comparisons and day arithmetic are exact and the
  off-by-one deadline semantics stay bit-for-bit reproducible.

KEY OPERATIONS:
  - ParseDate: strict ISO 8601 (YYYY-MM-DD) parsing with invalid-date errors
  - FromTime: truncates any time.Time to its UTC calendar day
  - AddDays / DaysBetween: plain calendar-day arithmetic
  - Weekday helpers: IsWeekend for Saturday/Sunday classification

SEE ALSO:
  - provider.go: Working-day classification on top of Date
  - errors.go: ErrInvalidDate and InvalidDateError
*/
package calendar

import (
	"time"
)

// ISODate is the wire format for all dates exchanged with callers.
const ISODate = "2006-01-02"

// Date is a single calendar day, normalized to UTC midnight.
type Date struct {
	Time time.Time
}

// NewDate constructs a Date from year/month/day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a time.Time to its calendar day in UTC.
func FromTime(t time.Time) Date {
	u := t.UTC()
	return NewDate(u.Year(), u.Month(), u.Day())
}

// Today returns the current calendar day (UTC).
func Today() Date {
	return FromTime(time.Now())
}

// ParseDate parses a strict ISO 8601 date-only string (YYYY-MM-DD).
// Unparseable input or impossible calendar dates (month 13, Feb 30)
// fail with an InvalidDateError wrapping ErrInvalidDate.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return Date{}, &InvalidDateError{Input: s, Cause: err}
	}
	return FromTime(t), nil
}

// MustParseDate is ParseDate for compile-time-known literals; panics on error.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool         { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool         { return d.Time.Equal(other.Time) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// DaysBetween returns the signed calendar-day span from 'from' to 'to'.
func DaysBetween(from, to Date) int {
	return int(to.Time.Sub(from.Time).Hours() / 24)
}

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }

func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) String() string {
	return d.Time.Format(ISODate)
}
