/*
Package switching computes earliest permissible start dates for supply
contract switches and relocations.

PURPOSE:
  Under GPKE (power) and GeLi Gas (gas), a new supply contract may only
  start after a commodity- and use-case-specific lead time measured in
  market working days - or, for some relocation cases, retroactively
  within a bounded calendar-day window. This package holds the rule table
  and the calculator projecting rules onto the working-day calendar.

KEY CONCEPTS IN THIS FILE (types.go):
  - Commodity / UseCase: Closed enums keying the rule table
  - SwitchingCase: The lookup triple for one concrete switch
  - DeadlineRule: Lead-time rule (working days or retrospective window)
  - DeadlineResult / ValidationResult: Calculator outputs

SEE ALSO:
  - rules.go: Default rule table and lookup
  - calculator.go: Date computation and validation
*/
package switching

import (
	"github.com/gridswitch/deadline-engine/calendar"
)

// =============================================================================
// CASE KEYS
// =============================================================================

// Commodity is the traded energy type.
type Commodity string

const (
	CommodityPower Commodity = "POWER"
	CommodityGas   Commodity = "GAS"
)

// UseCase is the market process triggering the switch.
type UseCase string

const (
	UseCaseSwitch     UseCase = "SWITCH"     // supplier switch at an unchanged site
	UseCaseRelocation UseCase = "RELOCATION" // move-in / move-out
)

// SwitchingCase is the rule lookup key. It has no independent lifecycle;
// one is constructed per query.
type SwitchingCase struct {
	Commodity           Commodity
	UseCase             UseCase
	RequiresTermination bool
}

// =============================================================================
// DEADLINE RULE
// =============================================================================

// DeadlineRule is one lead-time rule. The (Commodity, UseCase,
// RequiresTermination) triple must be unique within an active table;
// lookup uses the first match if that invariant is violated.
type DeadlineRule struct {
	ID                  string
	Commodity           Commodity
	UseCase             UseCase
	RequiresTermination bool

	// RequiredWorkingDays is the forward lead time in market working days.
	// Ignored when AllowsRetrospective is set.
	RequiredWorkingDays int

	// AllowsRetrospective permits start dates in the past, up to
	// MaxRetrospectiveDays calendar days before the processing date.
	AllowsRetrospective  bool
	MaxRetrospectiveDays int

	Description string
}

// Matches reports whether the rule applies to the given case.
func (r DeadlineRule) Matches(sc SwitchingCase) bool {
	return r.Commodity == sc.Commodity &&
		r.UseCase == sc.UseCase &&
		r.RequiresTermination == sc.RequiresTermination
}

// =============================================================================
// CALCULATOR OUTPUTS
// =============================================================================

// DeadlineResult is the outcome of an earliest-start-date calculation.
type DeadlineResult struct {
	EarliestStartDate calendar.Date
	EarliestStartISO  string

	// CalendarDays is the signed calendar-day span from the processing
	// date to the earliest start date (negative for retrospective cases).
	CalendarDays int

	// WorkingDaysApplied is the lead time that was projected onto the
	// calendar; 0 for retrospective cases.
	WorkingDaysApplied int

	IsRetrospective bool
	Rule            DeadlineRule
}

// ValidationResult is the outcome of checking a proposed start date.
type ValidationResult struct {
	IsValid      bool
	ProposedDate calendar.Date

	// EarliestValidDate is the suggested correction: the earliest start
	// date that would have been accepted. Always populated.
	EarliestValidDate calendar.Date

	IsRetrospective bool
	Rule            DeadlineRule
}
