package factory

import (
	"strings"
	"testing"

	"github.com/gridswitch/deadline-engine/calendar"
	"github.com/gridswitch/deadline-engine/switching"
)

// =============================================================================
// RULE PARSING
// =============================================================================

func TestParseRules_Valid(t *testing.T) {
	jsonStr := `[
		{
			"id": "power_switch_with_termination",
			"commodity": "POWER",
			"use_case": "SWITCH",
			"requires_termination": true,
			"required_working_days": 2,
			"description": "test rule"
		},
		{
			"id": "gas_relocation_without_termination",
			"commodity": "GAS",
			"use_case": "RELOCATION",
			"allows_retrospective": true,
			"max_retrospective_days": 42
		}
	]`

	table, err := ParseRules(jsonStr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(table))
	}

	if table[0].Commodity != switching.CommodityPower || table[0].RequiredWorkingDays != 2 {
		t.Errorf("unexpected first rule: %+v", table[0])
	}
	if !table[1].AllowsRetrospective || table[1].MaxRetrospectiveDays != 42 {
		t.Errorf("unexpected second rule: %+v", table[1])
	}
}

func TestParseRules_UnknownCommodity(t *testing.T) {
	_, err := ParseRules(`[{"id": "x", "commodity": "WATER", "use_case": "SWITCH"}]`)
	if err == nil || !strings.Contains(err.Error(), "unknown commodity") {
		t.Errorf("expected unknown commodity error, got %v", err)
	}
}

func TestParseRules_RetrospectiveNeedsWindow(t *testing.T) {
	_, err := ParseRules(`[{"id": "x", "commodity": "GAS", "use_case": "RELOCATION", "allows_retrospective": true}]`)
	if err == nil || !strings.Contains(err.Error(), "max_retrospective_days") {
		t.Errorf("expected retrospective window error, got %v", err)
	}
}

func TestParseRules_MissingID(t *testing.T) {
	_, err := ParseRules(`[{"commodity": "GAS", "use_case": "SWITCH"}]`)
	if err == nil || !strings.Contains(err.Error(), "missing id") {
		t.Errorf("expected missing id error, got %v", err)
	}
}

func TestRulesToJSON_RoundTrip(t *testing.T) {
	original := switching.DefaultRules()
	parsed, err := RulesFromJSON(RulesToJSON(original))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parsed) != len(original) {
		t.Fatalf("expected %d rules, got %d", len(original), len(parsed))
	}
	for i := range original {
		if parsed[i] != original[i] {
			t.Errorf("rule %d changed in round trip:\n  %+v\n  %+v", i, original[i], parsed[i])
		}
	}
}

// =============================================================================
// HOLIDAY PARSING
// =============================================================================

func TestParseHolidays_Valid(t *testing.T) {
	jsonStr := `[
		{
			"date": "2026-03-31",
			"name": "Betriebsruhe Netzbetreiber",
			"regions": ["BY", "SN"],
			"one_time": true
		}
	]`

	holidays, err := ParseHolidays(jsonStr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(holidays) != 1 {
		t.Fatalf("expected 1 holiday, got %d", len(holidays))
	}

	h := holidays[0]
	if h.Date.String() != "2026-03-31" {
		t.Errorf("unexpected date %s", h.Date)
	}
	// Type defaults to SPECIAL_HOLIDAY for custom entries.
	if h.Type != calendar.TypeSpecial {
		t.Errorf("expected SPECIAL_HOLIDAY default, got %s", h.Type)
	}
	if len(h.Regions) != 2 || h.Regions[0] != calendar.RegionBY {
		t.Errorf("unexpected regions %v", h.Regions)
	}
}

func TestParseHolidays_InvalidDate(t *testing.T) {
	_, err := ParseHolidays(`[{"date": "31.03.2026", "name": "x"}]`)
	if err == nil || !strings.Contains(err.Error(), "invalid date") {
		t.Errorf("expected invalid date error, got %v", err)
	}
}

func TestParseHolidays_UnknownRegion(t *testing.T) {
	_, err := ParseHolidays(`[{"date": "2026-03-31", "name": "x", "regions": ["XX"]}]`)
	if err == nil || !strings.Contains(err.Error(), "unknown region") {
		t.Errorf("expected unknown region error, got %v", err)
	}
}

func TestParseHolidays_MissingName(t *testing.T) {
	_, err := ParseHolidays(`[{"date": "2026-03-31"}]`)
	if err == nil || !strings.Contains(err.Error(), "missing name") {
		t.Errorf("expected missing name error, got %v", err)
	}
}
