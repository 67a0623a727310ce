/*
Package factory provides JSON to Go configuration conversion.

PURPOSE:
  Converts JSON rule tables and holiday lists into switching.DeadlineRule
  and calendar.Holiday values. This enables configuration without code
  changes - market operations staff can maintain rule sets and custom
  holiday lists as JSON, stored in the database or shipped as files.

JSON SCHEMA (rules):
  [
    {
      "id": "power_switch_with_termination",
      "commodity": "POWER",
      "use_case": "SWITCH",
      "requires_termination": true,
      "required_working_days": 2,
      "description": "..."
    },
    {
      "id": "gas_relocation_without_termination",
      "commodity": "GAS",
      "use_case": "RELOCATION",
      "allows_retrospective": true,
      "max_retrospective_days": 42
    }
  ]

JSON SCHEMA (holidays):
  [
    {
      "date": "2026-03-31",
      "name": "Betriebsruhe Netzbetreiber",
      "type": "SPECIAL_HOLIDAY",
      "regions": ["BY"],
      "one_time": true
    }
  ]

VALIDATION:
  Commodity, use case, holiday type, and region values are closed enums;
  unknown values fail with a descriptive error rather than passing
  through as open strings.

SEE ALSO:
  - switching/rules.go: DeadlineRule and the default table
  - calendar/types.go: Holiday and the region/type enums
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/gridswitch/deadline-engine/calendar"
	"github.com/gridswitch/deadline-engine/switching"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// RuleJSON is the JSON representation of a deadline rule.
type RuleJSON struct {
	ID                   string `json:"id"`
	Commodity            string `json:"commodity"`
	UseCase              string `json:"use_case"`
	RequiresTermination  bool   `json:"requires_termination"`
	RequiredWorkingDays  int    `json:"required_working_days,omitempty"`
	AllowsRetrospective  bool   `json:"allows_retrospective,omitempty"`
	MaxRetrospectiveDays int    `json:"max_retrospective_days,omitempty"`
	Description          string `json:"description,omitempty"`
}

// HolidayJSON is the JSON representation of a (custom) holiday.
type HolidayJSON struct {
	Date        string   `json:"date"`
	Name        string   `json:"name"`
	Type        string   `json:"type,omitempty"` // default SPECIAL_HOLIDAY
	Regions     []string `json:"regions,omitempty"`
	Description string   `json:"description,omitempty"`
	OneTime     bool     `json:"one_time,omitempty"`
}

// =============================================================================
// RULES
// =============================================================================

// ParseRules parses a JSON array into a rule table.
func ParseRules(jsonStr string) (switching.RuleTable, error) {
	var rjs []RuleJSON
	if err := json.Unmarshal([]byte(jsonStr), &rjs); err != nil {
		return nil, fmt.Errorf("failed to parse rules JSON: %w", err)
	}
	return RulesFromJSON(rjs)
}

// RulesFromJSON converts RuleJSON entries to a rule table.
func RulesFromJSON(rjs []RuleJSON) (switching.RuleTable, error) {
	var table switching.RuleTable
	for i, rj := range rjs {
		rule, err := ruleFromJSON(rj)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, rj.ID, err)
		}
		table = append(table, rule)
	}
	return table, nil
}

func ruleFromJSON(rj RuleJSON) (switching.DeadlineRule, error) {
	if rj.ID == "" {
		return switching.DeadlineRule{}, fmt.Errorf("missing id")
	}
	commodity, err := ParseCommodity(rj.Commodity)
	if err != nil {
		return switching.DeadlineRule{}, err
	}
	useCase, err := ParseUseCase(rj.UseCase)
	if err != nil {
		return switching.DeadlineRule{}, err
	}
	if rj.RequiredWorkingDays < 0 {
		return switching.DeadlineRule{}, fmt.Errorf("required_working_days must be non-negative")
	}
	if rj.AllowsRetrospective && rj.MaxRetrospectiveDays <= 0 {
		return switching.DeadlineRule{}, fmt.Errorf("retrospective rule needs max_retrospective_days > 0")
	}

	return switching.DeadlineRule{
		ID:                   rj.ID,
		Commodity:            commodity,
		UseCase:              useCase,
		RequiresTermination:  rj.RequiresTermination,
		RequiredWorkingDays:  rj.RequiredWorkingDays,
		AllowsRetrospective:  rj.AllowsRetrospective,
		MaxRetrospectiveDays: rj.MaxRetrospectiveDays,
		Description:          rj.Description,
	}, nil
}

// RulesToJSON converts a rule table back to its JSON representation.
func RulesToJSON(table switching.RuleTable) []RuleJSON {
	rjs := make([]RuleJSON, 0, len(table))
	for _, r := range table {
		rjs = append(rjs, RuleJSON{
			ID:                   r.ID,
			Commodity:            string(r.Commodity),
			UseCase:              string(r.UseCase),
			RequiresTermination:  r.RequiresTermination,
			RequiredWorkingDays:  r.RequiredWorkingDays,
			AllowsRetrospective:  r.AllowsRetrospective,
			MaxRetrospectiveDays: r.MaxRetrospectiveDays,
			Description:          r.Description,
		})
	}
	return rjs
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// ParseHolidays parses a JSON array into holidays.
func ParseHolidays(jsonStr string) ([]calendar.Holiday, error) {
	var hjs []HolidayJSON
	if err := json.Unmarshal([]byte(jsonStr), &hjs); err != nil {
		return nil, fmt.Errorf("failed to parse holidays JSON: %w", err)
	}
	return HolidaysFromJSON(hjs)
}

// HolidaysFromJSON converts HolidayJSON entries to calendar holidays.
func HolidaysFromJSON(hjs []HolidayJSON) ([]calendar.Holiday, error) {
	var out []calendar.Holiday
	for i, hj := range hjs {
		h, err := holidayFromJSON(hj)
		if err != nil {
			return nil, fmt.Errorf("holiday %d (%s): %w", i, hj.Date, err)
		}
		out = append(out, h)
	}
	return out, nil
}

func holidayFromJSON(hj HolidayJSON) (calendar.Holiday, error) {
	date, err := calendar.ParseDate(hj.Date)
	if err != nil {
		return calendar.Holiday{}, err
	}
	if hj.Name == "" {
		return calendar.Holiday{}, fmt.Errorf("missing name")
	}
	htype, err := parseHolidayType(hj.Type)
	if err != nil {
		return calendar.Holiday{}, err
	}
	regions, err := parseRegions(hj.Regions)
	if err != nil {
		return calendar.Holiday{}, err
	}

	return calendar.Holiday{
		Date:        date,
		Name:        hj.Name,
		Type:        htype,
		Regions:     regions,
		Description: hj.Description,
		OneTime:     hj.OneTime,
	}, nil
}

// HolidaysToJSON converts holidays back to their JSON representation.
func HolidaysToJSON(hs []calendar.Holiday) []HolidayJSON {
	hjs := make([]HolidayJSON, 0, len(hs))
	for _, h := range hs {
		var regions []string
		for _, r := range h.Regions {
			regions = append(regions, string(r))
		}
		hjs = append(hjs, HolidayJSON{
			Date:        h.Date.String(),
			Name:        h.Name,
			Type:        string(h.Type),
			Regions:     regions,
			Description: h.Description,
			OneTime:     h.OneTime,
		})
	}
	return hjs
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

// ParseCommodity converts a wire string to the closed Commodity enum.
func ParseCommodity(s string) (switching.Commodity, error) {
	switch s {
	case "POWER":
		return switching.CommodityPower, nil
	case "GAS":
		return switching.CommodityGas, nil
	default:
		return "", fmt.Errorf("unknown commodity %q (want POWER or GAS)", s)
	}
}

// ParseUseCase converts a wire string to the closed UseCase enum.
func ParseUseCase(s string) (switching.UseCase, error) {
	switch s {
	case "SWITCH":
		return switching.UseCaseSwitch, nil
	case "RELOCATION":
		return switching.UseCaseRelocation, nil
	default:
		return "", fmt.Errorf("unknown use case %q (want SWITCH or RELOCATION)", s)
	}
}

func parseHolidayType(s string) (calendar.HolidayType, error) {
	switch s {
	case "", string(calendar.TypeSpecial):
		return calendar.TypeSpecial, nil
	case string(calendar.TypePublic):
		return calendar.TypePublic, nil
	case string(calendar.TypeOperational):
		return calendar.TypeOperational, nil
	case string(calendar.TypeWeekend):
		return calendar.TypeWeekend, nil
	default:
		return "", fmt.Errorf("unknown holiday type %q", s)
	}
}

var validRegions = map[string]calendar.Region{
	"BW": calendar.RegionBW, "BY": calendar.RegionBY, "BE": calendar.RegionBE,
	"BB": calendar.RegionBB, "HB": calendar.RegionHB, "HH": calendar.RegionHH,
	"HE": calendar.RegionHE, "MV": calendar.RegionMV, "NI": calendar.RegionNI,
	"NW": calendar.RegionNW, "RP": calendar.RegionRP, "SL": calendar.RegionSL,
	"SN": calendar.RegionSN, "ST": calendar.RegionST, "SH": calendar.RegionSH,
	"TH": calendar.RegionTH,
}

func parseRegions(ss []string) ([]calendar.Region, error) {
	var out []calendar.Region
	for _, s := range ss {
		r, ok := validRegions[s]
		if !ok {
			return nil, fmt.Errorf("unknown region %q", s)
		}
		out = append(out, r)
	}
	return out, nil
}
