/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the internal domain
  model from the external contract. Dates cross the wire as ISO 8601
  date-only strings (YYYY-MM-DD).

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - factory/config.go: HolidayJSON / RuleJSON reused on the wire
*/
package api

import (
	"github.com/gridswitch/deadline-engine/calendar"
	"github.com/gridswitch/deadline-engine/factory"
	"github.com/gridswitch/deadline-engine/switching"
)

// =============================================================================
// CALENDAR TYPES
// =============================================================================

// HolidayDTO represents a holiday in API responses.
type HolidayDTO struct {
	Date        string   `json:"date"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Regions     []string `json:"regions,omitempty"`
	Description string   `json:"description,omitempty"`
	OneTime     bool     `json:"one_time,omitempty"`
}

// DayInfoDTO represents the classification of a single day.
type DayInfoDTO struct {
	Date         string      `json:"date"`
	IsWorkingDay bool        `json:"is_working_day"`
	Holiday      *HolidayDTO `json:"holiday,omitempty"`
}

// RangeDTO is the response for range scans.
type RangeDTO struct {
	From  string       `json:"from"`
	To    string       `json:"to"`
	Kind  string       `json:"kind"` // "working" or "non-working"
	Count int          `json:"count"`
	Days  []DayInfoDTO `json:"days"`
}

// AddWorkingDaysRequest asks for working-day arithmetic from a start date.
type AddWorkingDaysRequest struct {
	Start string `json:"start"`
	Days  int    `json:"days"`
}

// AddWorkingDaysDTO is the arithmetic result.
type AddWorkingDaysDTO struct {
	Start  string `json:"start"`
	Days   int    `json:"days"`
	Result string `json:"result"`
}

// UpdateCustomHolidaysRequest replaces the custom holiday set.
type UpdateCustomHolidaysRequest struct {
	Holidays []factory.HolidayJSON `json:"holidays"`
}

// VersionDTO is the calendar version metadata.
type VersionDTO struct {
	Version     string `json:"version"`
	Year        int    `json:"year"`
	LastUpdated string `json:"last_updated"`
}

// =============================================================================
// DEADLINE TYPES
// =============================================================================

// CalculateRequest asks for the earliest permissible start date.
// FromDate defaults to today when omitted.
type CalculateRequest struct {
	Commodity           string `json:"commodity"`
	UseCase             string `json:"use_case"`
	RequiresTermination bool   `json:"requires_termination"`
	FromDate            string `json:"from_date,omitempty"`
}

// ValidateRequest asks whether a proposed start date is permissible.
type ValidateRequest struct {
	Commodity           string `json:"commodity"`
	UseCase             string `json:"use_case"`
	RequiresTermination bool   `json:"requires_termination"`
	ProposedDate        string `json:"proposed_date"`
	FromDate            string `json:"from_date,omitempty"`
}

// DeadlineDTO is the calculation result.
type DeadlineDTO struct {
	EarliestStartDate  string          `json:"earliest_start_date"`
	FromDate           string          `json:"from_date"`
	CalendarDays       int             `json:"calendar_days"`
	WorkingDaysApplied int             `json:"working_days_applied"`
	IsRetrospective    bool            `json:"is_retrospective"`
	Rule               factory.RuleJSON `json:"rule"`
}

// ValidationDTO is the validation result.
type ValidationDTO struct {
	IsValid           bool            `json:"is_valid"`
	ProposedDate      string          `json:"proposed_date"`
	EarliestValidDate string          `json:"earliest_valid_date"`
	IsRetrospective   bool            `json:"is_retrospective"`
	Rule              factory.RuleJSON `json:"rule"`
}

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toHolidayDTO(h calendar.Holiday) HolidayDTO {
	var regions []string
	for _, r := range h.Regions {
		regions = append(regions, string(r))
	}
	return HolidayDTO{
		Date:        h.Date.String(),
		Name:        h.Name,
		Type:        string(h.Type),
		Regions:     regions,
		Description: h.Description,
		OneTime:     h.OneTime,
	}
}

func toDayInfoDTO(info calendar.DayInfo) DayInfoDTO {
	dto := DayInfoDTO{
		Date:         info.Date.String(),
		IsWorkingDay: info.IsWorkingDay,
	}
	if info.Holiday != nil {
		h := toHolidayDTO(*info.Holiday)
		dto.Holiday = &h
	}
	return dto
}

func toRuleJSON(r switching.DeadlineRule) factory.RuleJSON {
	rjs := factory.RulesToJSON(switching.RuleTable{r})
	return rjs[0]
}
