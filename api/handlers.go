/*
handlers.go - HTTP API handlers for the deadline engine

PURPOSE:
  Exposes the calendar and deadline engines via REST. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Calendar:
    GET  /api/calendar/day/{date}                      Day classification
    GET  /api/calendar/day/{date}/next-working-day     Forward navigation
    GET  /api/calendar/day/{date}/previous-working-day Backward navigation
    GET  /api/calendar/range?from=&to=&kind=           Range scan
    POST /api/calendar/add-working-days                Working-day arithmetic
    GET  /api/calendar/holidays?year=                  Year holiday list
    PUT  /api/calendar/custom-holidays                 Replace custom set
    GET  /api/calendar/version                         Version metadata

  Deadlines:
    POST /api/deadlines/calculate                      Earliest start date
    POST /api/deadlines/validate                       Proposed-date check
    GET  /api/deadlines/rules                          Active rule table
    GET  /api/deadlines/rules/match?commodity=&use_case=&requires_termination=

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid dates, unknown enum values, malformed bodies
  - 404: No rule for the requested switching case
  - 500: Persistence failures

PERSISTENCE:
  The Store is optional. When present, custom holiday updates are
  persisted and every served deadline decision is appended to the audit
  log; audit failures are logged, never surfaced to the caller.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gridswitch/deadline-engine/calendar"
	"github.com/gridswitch/deadline-engine/factory"
	"github.com/gridswitch/deadline-engine/store/sqlite"
	"github.com/gridswitch/deadline-engine/switching"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Calendar   *calendar.Provider
	Calculator *switching.Calculator
	Store      *sqlite.Store // optional
	Log        zerolog.Logger
}

// NewHandler creates a handler around an existing provider and calculator.
func NewHandler(cal *calendar.Provider, calc *switching.Calculator, store *sqlite.Store, log zerolog.Logger) *Handler {
	return &Handler{Calendar: cal, Calculator: calc, Store: store, Log: log}
}

// RestoreCustomHolidays loads the persisted custom holiday set into the
// calendar provider. Called once at startup; a nil store is a no-op.
func (h *Handler) RestoreCustomHolidays(ctx context.Context) error {
	if h.Store == nil {
		return nil
	}
	holidays, err := h.Store.LoadCustomHolidays(ctx)
	if err != nil {
		return err
	}
	if len(holidays) > 0 {
		h.Calendar.UpdateCustomHolidays(holidays)
		h.Log.Info().Int("count", len(holidays)).Msg("restored custom holidays")
	}
	return nil
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// GetDayInfo classifies a single day.
// GET /api/calendar/day/{date}
func (h *Handler) GetDayInfo(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDateParam(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toDayInfoDTO(h.Calendar.DayInfo(date)))
}

// GetNextWorkingDay returns the first working day after the given date.
// GET /api/calendar/day/{date}/next-working-day
func (h *Handler) GetNextWorkingDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDateParam(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}
	next, err := h.Calendar.NextWorkingDay(date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "No working day found", err)
		return
	}
	writeJSON(w, http.StatusOK, toDayInfoDTO(h.Calendar.DayInfo(next)))
}

// GetPreviousWorkingDay returns the first working day before the given date.
// GET /api/calendar/day/{date}/previous-working-day
func (h *Handler) GetPreviousWorkingDay(w http.ResponseWriter, r *http.Request) {
	date, ok := h.parseDateParam(w, chi.URLParam(r, "date"))
	if !ok {
		return
	}
	prev, err := h.Calendar.PreviousWorkingDay(date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "No working day found", err)
		return
	}
	writeJSON(w, http.StatusOK, toDayInfoDTO(h.Calendar.DayInfo(prev)))
}

// GetRange scans [from, to] for working or non-working days.
// GET /api/calendar/range?from=YYYY-MM-DD&to=YYYY-MM-DD&kind=working|non-working
func (h *Handler) GetRange(w http.ResponseWriter, r *http.Request) {
	from, ok := h.parseDateParam(w, r.URL.Query().Get("from"))
	if !ok {
		return
	}
	to, ok := h.parseDateParam(w, r.URL.Query().Get("to"))
	if !ok {
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "working"
	}

	var days []calendar.DayInfo
	switch kind {
	case "working":
		days = h.Calendar.WorkingDaysInRange(from, to)
	case "non-working":
		days = h.Calendar.NonWorkingDaysInRange(from, to)
	default:
		writeError(w, http.StatusBadRequest, "kind must be 'working' or 'non-working'", nil)
		return
	}

	dto := RangeDTO{From: from.String(), To: to.String(), Kind: kind, Count: len(days), Days: []DayInfoDTO{}}
	for _, d := range days {
		dto.Days = append(dto.Days, toDayInfoDTO(d))
	}
	writeJSON(w, http.StatusOK, dto)
}

// AddWorkingDays applies the working-day arithmetic used by deadline rules.
// POST /api/calendar/add-working-days
func (h *Handler) AddWorkingDays(w http.ResponseWriter, r *http.Request) {
	var req AddWorkingDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	start, ok := h.parseDateParam(w, req.Start)
	if !ok {
		return
	}
	if req.Days < 0 {
		writeError(w, http.StatusBadRequest, "days must be non-negative", nil)
		return
	}

	result := h.Calendar.AddWorkingDays(start, req.Days)
	writeJSON(w, http.StatusOK, AddWorkingDaysDTO{
		Start:  start.String(),
		Days:   req.Days,
		Result: result.String(),
	})
}

// ListHolidays returns every registered holiday of a year, sorted by date.
// GET /api/calendar/holidays?year=2025
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	yearStr := r.URL.Query().Get("year")
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1583 || year > 9999 {
		writeError(w, http.StatusBadRequest, "year must be a four-digit Gregorian year", err)
		return
	}

	start := calendar.NewDate(year, 1, 1)
	end := calendar.NewDate(year, 12, 31)

	dtos := []HolidayDTO{}
	for cursor := start; cursor.BeforeOrEqual(end); cursor = cursor.AddDays(1) {
		if holiday, ok := h.Calendar.IsHoliday(cursor); ok {
			dtos = append(dtos, toHolidayDTO(holiday))
		}
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].Date < dtos[j].Date })

	writeJSON(w, http.StatusOK, dtos)
}

// UpdateCustomHolidays replaces the custom holiday set and clears the
// calendar cache. Persisted when a store is configured.
// PUT /api/calendar/custom-holidays
func (h *Handler) UpdateCustomHolidays(w http.ResponseWriter, r *http.Request) {
	var req UpdateCustomHolidaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	holidays, err := factory.HolidaysFromJSON(req.Holidays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid holiday entry", err)
		return
	}

	if h.Store != nil {
		if err := h.Store.ReplaceCustomHolidays(r.Context(), holidays); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to persist custom holidays", err)
			return
		}
	}

	h.Calendar.UpdateCustomHolidays(holidays)
	h.Log.Info().Int("count", len(holidays)).Msg("custom holidays replaced")

	writeJSON(w, http.StatusOK, map[string]int{"count": len(holidays)})
}

// GetVersion returns the calendar version metadata.
// GET /api/calendar/version
func (h *Handler) GetVersion(w http.ResponseWriter, r *http.Request) {
	v := h.Calendar.CalendarVersion()
	writeJSON(w, http.StatusOK, VersionDTO{
		Version:     v.Version,
		Year:        v.Year,
		LastUpdated: v.LastUpdated.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// =============================================================================
// DEADLINE HANDLERS
// =============================================================================

// Calculate computes the earliest permissible start date for a case.
// POST /api/deadlines/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sc, ok := h.parseCase(w, req.Commodity, req.UseCase, req.RequiresTermination)
	if !ok {
		return
	}
	from, ok := h.parseFromDate(w, req.FromDate)
	if !ok {
		return
	}

	result, err := h.Calculator.EarliestStartDate(sc, from)
	if err != nil {
		h.writeDeadlineError(w, err)
		return
	}

	h.audit(r.Context(), sqlite.AuditEntry{
		Operation:           "calculate",
		Commodity:           string(sc.Commodity),
		UseCase:             string(sc.UseCase),
		RequiresTermination: sc.RequiresTermination,
		FromDate:            from.String(),
		EarliestDate:        result.EarliestStartISO,
		RuleID:              result.Rule.ID,
		Retrospective:       result.IsRetrospective,
	})

	writeJSON(w, http.StatusOK, DeadlineDTO{
		EarliestStartDate:  result.EarliestStartISO,
		FromDate:           from.String(),
		CalendarDays:       result.CalendarDays,
		WorkingDaysApplied: result.WorkingDaysApplied,
		IsRetrospective:    result.IsRetrospective,
		Rule:               toRuleJSON(result.Rule),
	})
}

// Validate checks a proposed start date against the earliest permissible one.
// POST /api/deadlines/validate
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sc, ok := h.parseCase(w, req.Commodity, req.UseCase, req.RequiresTermination)
	if !ok {
		return
	}
	proposed, ok := h.parseDateParam(w, req.ProposedDate)
	if !ok {
		return
	}
	from, ok := h.parseFromDate(w, req.FromDate)
	if !ok {
		return
	}

	result, err := h.Calculator.ValidateStartDate(sc, proposed, from)
	if err != nil {
		h.writeDeadlineError(w, err)
		return
	}

	valid := result.IsValid
	h.audit(r.Context(), sqlite.AuditEntry{
		Operation:           "validate",
		Commodity:           string(sc.Commodity),
		UseCase:             string(sc.UseCase),
		RequiresTermination: sc.RequiresTermination,
		FromDate:            from.String(),
		EarliestDate:        result.EarliestValidDate.String(),
		ProposedDate:        proposed.String(),
		RuleID:              result.Rule.ID,
		Retrospective:       result.IsRetrospective,
		Valid:               &valid,
	})

	writeJSON(w, http.StatusOK, ValidationDTO{
		IsValid:           result.IsValid,
		ProposedDate:      result.ProposedDate.String(),
		EarliestValidDate: result.EarliestValidDate.String(),
		IsRetrospective:   result.IsRetrospective,
		Rule:              toRuleJSON(result.Rule),
	})
}

// ListRules returns the active rule table.
// GET /api/deadlines/rules
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, factory.RulesToJSON(h.Calculator.Rules()))
}

// MatchRule resolves the rule for a switching case without computing dates.
// GET /api/deadlines/rules/match?commodity=POWER&use_case=SWITCH&requires_termination=true
func (h *Handler) MatchRule(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	requiresTermination := q.Get("requires_termination") == "true"
	sc, ok := h.parseCase(w, q.Get("commodity"), q.Get("use_case"), requiresTermination)
	if !ok {
		return
	}

	rule, err := h.Calculator.Rule(sc)
	if err != nil {
		h.writeDeadlineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRuleJSON(rule))
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) parseDateParam(w http.ResponseWriter, s string) (calendar.Date, bool) {
	date, err := calendar.ParseDate(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return calendar.Date{}, false
	}
	return date, true
}

// parseFromDate treats an empty from_date as today.
func (h *Handler) parseFromDate(w http.ResponseWriter, s string) (calendar.Date, bool) {
	if s == "" {
		return calendar.Today(), true
	}
	return h.parseDateParam(w, s)
}

func (h *Handler) parseCase(w http.ResponseWriter, commodity, useCase string, requiresTermination bool) (switching.SwitchingCase, bool) {
	c, err := factory.ParseCommodity(commodity)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid switching case", err)
		return switching.SwitchingCase{}, false
	}
	u, err := factory.ParseUseCase(useCase)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid switching case", err)
		return switching.SwitchingCase{}, false
	}
	return switching.SwitchingCase{
		Commodity:           c,
		UseCase:             u,
		RequiresTermination: requiresTermination,
	}, true
}

func (h *Handler) writeDeadlineError(w http.ResponseWriter, err error) {
	if errors.Is(err, switching.ErrRuleNotFound) {
		writeError(w, http.StatusNotFound, "No rule for switching case", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Calculation failed", err)
}

// audit appends a served decision to the audit log; failures are logged only.
func (h *Handler) audit(ctx context.Context, e sqlite.AuditEntry) {
	if h.Store == nil {
		return
	}
	if err := h.Store.RecordDeadlineAudit(ctx, e); err != nil {
		h.Log.Error().Err(err).Str("rule", e.RuleID).Msg("failed to record audit entry")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
