/*
calculator.go - Earliest start date computation and validation

PURPOSE:
  Resolves the applicable deadline rule for a switching case and projects
  it onto the working-day calendar:

  Forward rules:       earliest = calendar.AddWorkingDays(from, required)
  Retrospective rules: earliest = from - maxRetrospectiveDays (plain
                       calendar-day subtraction, not working-day aware)

ERROR HANDLING:
  A case with no matching rule fails with a RuleNotFoundError naming the
  unmatched combination. Nothing is silently defaulted.
*/
package switching

import (
	"errors"
	"fmt"

	"github.com/gridswitch/deadline-engine/calendar"
)

// ErrRuleNotFound is returned when no configured rule matches a case.
var ErrRuleNotFound = errors.New("no deadline rule for switching case")

// RuleNotFoundError names the unmatched combination.
type RuleNotFoundError struct {
	Case SwitchingCase
}

func (e *RuleNotFoundError) Error() string {
	return fmt.Sprintf("no deadline rule for %s/%s (requires termination: %t)",
		e.Case.Commodity, e.Case.UseCase, e.Case.RequiresTermination)
}

func (e *RuleNotFoundError) Unwrap() error { return ErrRuleNotFound }

// =============================================================================
// CALCULATOR
// =============================================================================

// Config configures a Calculator. Zero-value fields fall back to the
// default calendar and the default rule table.
type Config struct {
	Calendar *calendar.Provider
	Rules    RuleTable
}

// Calculator resolves deadline rules and computes earliest start dates.
// The rule table is fixed at construction; supply a new Calculator to
// change rules.
type Calculator struct {
	calendar *calendar.Provider
	rules    RuleTable
}

// NewCalculator creates a Calculator from the given configuration.
func NewCalculator(cfg Config) *Calculator {
	cal := cfg.Calendar
	if cal == nil {
		cal = calendar.NewProvider(calendar.Config{})
	}
	rules := cfg.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	return &Calculator{calendar: cal, rules: rules}
}

// Calendar exposes the provider backing this calculator.
func (c *Calculator) Calendar() *calendar.Provider { return c.calendar }

// Rules returns the active rule table.
func (c *Calculator) Rules() RuleTable {
	return append(RuleTable(nil), c.rules...)
}

// Rule resolves the rule for a case without computing anything.
func (c *Calculator) Rule(sc SwitchingCase) (DeadlineRule, error) {
	rule, ok := c.rules.Lookup(sc)
	if !ok {
		return DeadlineRule{}, &RuleNotFoundError{Case: sc}
	}
	return rule, nil
}

// EarliestStartDate computes the earliest permissible contract start for
// a case, processed as of 'from'. Callers wanting "as of today" pass
// calendar.Today().
func (c *Calculator) EarliestStartDate(sc SwitchingCase, from calendar.Date) (*DeadlineResult, error) {
	rule, err := c.Rule(sc)
	if err != nil {
		return nil, err
	}

	if rule.AllowsRetrospective {
		earliest := from.AddDays(-rule.MaxRetrospectiveDays)
		return &DeadlineResult{
			EarliestStartDate:  earliest,
			EarliestStartISO:   earliest.String(),
			CalendarDays:       calendar.DaysBetween(from, earliest),
			WorkingDaysApplied: 0,
			IsRetrospective:    true,
			Rule:               rule,
		}, nil
	}

	earliest := c.calendar.AddWorkingDays(from, rule.RequiredWorkingDays)
	return &DeadlineResult{
		EarliestStartDate:  earliest,
		EarliestStartISO:   earliest.String(),
		CalendarDays:       calendar.DaysBetween(from, earliest),
		WorkingDaysApplied: rule.RequiredWorkingDays,
		IsRetrospective:    false,
		Rule:               rule,
	}, nil
}

// ValidateStartDate checks a proposed start date against the earliest
// permissible one (inclusive). When invalid, EarliestValidDate carries
// the suggested correction.
func (c *Calculator) ValidateStartDate(sc SwitchingCase, proposed, from calendar.Date) (*ValidationResult, error) {
	result, err := c.EarliestStartDate(sc, from)
	if err != nil {
		return nil, err
	}

	return &ValidationResult{
		IsValid:           proposed.AfterOrEqual(result.EarliestStartDate),
		ProposedDate:      proposed,
		EarliestValidDate: result.EarliestStartDate,
		IsRetrospective:   result.IsRetrospective,
		Rule:              result.Rule,
	}, nil
}
