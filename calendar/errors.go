/*
errors.go - Error types for the calendar package

ERROR CATEGORIES:
  1. Invalid date - caller input that does not parse to a calendar day
  2. Scan limit - pathological calendars where no working day is found
     within the bounded search window

All calendar errors are deterministic caller errors; nothing here is
retryable.
*/
package calendar

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when an input string does not parse to a
	// valid ISO 8601 calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrScanLimitExceeded is returned by NextWorkingDay/PreviousWorkingDay
	// when no working day exists within the bounded scan window. This only
	// happens with custom calendars that mark an unbroken run of days as
	// non-working.
	ErrScanLimitExceeded = errors.New("no working day found within scan limit")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidDateError reports the offending input alongside the parse failure.
type InvalidDateError struct {
	Input string
	Cause error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q: expected ISO 8601 (YYYY-MM-DD)", e.Input)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }
