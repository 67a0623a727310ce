/*
rules.go - Default deadline rule table and lookup

PURPOSE:
  Plain immutable data. The default table covers every combination of
  {POWER, GAS} x {SWITCH, RELOCATION} x {termination required or not}.
  Lead times reflect the post-LFW24 market design: supplier switches
  complete within a couple of working days; relocations without a
  termination obligation may be registered retroactively for up to six
  weeks (42 calendar days).

LOOKUP:
  Linear scan, first match wins. Lookup returns ok=false instead of an
  error; the Calculator is the layer that raises rule-not-found.
*/
package switching

// RuleTable is an ordered collection of deadline rules. Tables are
// immutable for the life of a Calculator; callers supply a replacement
// table rather than mutating one.
type RuleTable []DeadlineRule

// Lookup returns the first rule matching the case, if any.
func (t RuleTable) Lookup(sc SwitchingCase) (DeadlineRule, bool) {
	for _, r := range t {
		if r.Matches(sc) {
			return r, true
		}
	}
	return DeadlineRule{}, false
}

// maxRelocationLookback is the retroactive registration window for
// relocations, in calendar days (six weeks).
const maxRelocationLookback = 42

// DefaultRules returns the standard GPKE/GeLi Gas rule table.
func DefaultRules() RuleTable {
	return RuleTable{
		{
			ID:                  "power_switch_with_termination",
			Commodity:           CommodityPower,
			UseCase:             UseCaseSwitch,
			RequiresTermination: true,
			RequiredWorkingDays: 2,
			Description:         "Supplier switch (power) where the new supplier terminates the old contract",
		},
		{
			ID:                  "power_switch_without_termination",
			Commodity:           CommodityPower,
			UseCase:             UseCaseSwitch,
			RequiresTermination: false,
			RequiredWorkingDays: 1,
			Description:         "Supplier switch (power) with the old contract already terminated",
		},
		{
			ID:                  "power_relocation_with_termination",
			Commodity:           CommodityPower,
			UseCase:             UseCaseRelocation,
			RequiresTermination: true,
			RequiredWorkingDays: 2,
			Description:         "Relocation (power) requiring termination of the previous contract",
		},
		{
			ID:                   "power_relocation_without_termination",
			Commodity:            CommodityPower,
			UseCase:              UseCaseRelocation,
			RequiresTermination:  false,
			AllowsRetrospective:  true,
			MaxRetrospectiveDays: maxRelocationLookback,
			Description:          "Move-in (power); retroactive registration within six weeks",
		},
		{
			ID:                  "gas_switch_with_termination",
			Commodity:           CommodityGas,
			UseCase:             UseCaseSwitch,
			RequiresTermination: true,
			RequiredWorkingDays: 2,
			Description:         "Supplier switch (gas) where the new supplier terminates the old contract",
		},
		{
			ID:                  "gas_switch_without_termination",
			Commodity:           CommodityGas,
			UseCase:             UseCaseSwitch,
			RequiresTermination: false,
			RequiredWorkingDays: 1,
			Description:         "Supplier switch (gas) with the old contract already terminated",
		},
		{
			ID:                  "gas_relocation_with_termination",
			Commodity:           CommodityGas,
			UseCase:             UseCaseRelocation,
			RequiresTermination: true,
			RequiredWorkingDays: 2,
			Description:         "Relocation (gas) requiring termination of the previous contract",
		},
		{
			ID:                   "gas_relocation_without_termination",
			Commodity:            CommodityGas,
			UseCase:              UseCaseRelocation,
			RequiresTermination:  false,
			AllowsRetrospective:  true,
			MaxRetrospectiveDays: maxRelocationLookback,
			Description:          "Move-in (gas); retroactive registration within six weeks",
		},
	}
}
