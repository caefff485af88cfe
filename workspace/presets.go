/*
presets.go - Sample policies for demos and onboarding

PURPOSE:
  Provides ready-made policies that fill in the seeded rows (and add a few
  extra rows) so a new user can see a complete, saveable policy without
  typing every value.

AVAILABLE PRESETS:
  canada-annual:    Canada/Toronto annual leave, monthly accrual, carry over with a cap
  uk-sick:          UK sick leave granted upfront, no carry over
  us-parental:      US parental leave for full-time staff with tenure
  contractor-unpaid: Unpaid personal leave for contractors

HOW PRESETS WORK:
  1. Start from the seeded rule list
  2. Set values on the seeded rows in seed order (carry over ON inserts the
     derived max row, which is then filled in)
  3. Append extra rows
  The result is loaded as a new, unsaved policy.

ADDING NEW PRESETS:
  Append to 'presets' with an ID, name, description, values and extras.
*/
package workspace

import (
	"fmt"
	"log/slog"

	"github.com/warp/leave-rules/catalog"
	"github.com/warp/leave-rules/rules"
)

// Preset is a named sample policy.
type Preset struct {
	ID          string
	Name        string
	Description string
	Category    string

	// Values are applied to rows by id, in order.
	Values []RowValue
	// Extra rows appended after the seeded ones.
	Extra []rules.Fields
}

// RowValue sets the value of one row.
type RowValue struct {
	RuleID string
	Value  string
}

// =============================================================================
// PRESET DEFINITIONS
// =============================================================================

var presets = []Preset{
	{
		ID:          "canada-annual",
		Name:        "Canada Annual Leave",
		Description: "20 days accrued monthly, prorated, up to 5 days carried over",
		Category:    "annual",
		Values: []RowValue{
			{rules.CountryRuleID, "Canada"},
			{rules.OfficeRuleID, "Toronto"},
			{rules.LeaveTypeRuleID, "Annual"},
			{rules.BaseEntitlementRuleID, "20 days"},
			{rules.AssignDateRuleID, "2024-01-01"},
			{rules.AccrualFrequencyRuleID, "Monthly"},
			{rules.ProratedRuleID, catalog.On},
			{rules.CarryOverRuleID, catalog.On},
			{rules.MaxCarryOverRuleID, "5 days"},
			{rules.MinDurationRuleID, "1 day"},
			{rules.PaidRuleID, catalog.On},
		},
	},
	{
		ID:          "uk-sick",
		Name:        "UK Sick Leave",
		Description: "10 days granted upfront, forfeited at year end",
		Category:    "sick",
		Values: []RowValue{
			{rules.CountryRuleID, "United Kingdom"},
			{rules.OfficeRuleID, "London"},
			{rules.LeaveTypeRuleID, "Sick"},
			{rules.BaseEntitlementRuleID, "10 days"},
			{rules.AssignDateRuleID, "2024-01-01"},
			{rules.AccrualFrequencyRuleID, "Upfront"},
			{rules.ProratedRuleID, catalog.Off},
			{rules.CarryOverRuleID, catalog.Off},
			{rules.MinDurationRuleID, "4 hours"},
			{rules.PaidRuleID, catalog.On},
		},
	},
	{
		ID:          "us-parental",
		Name:        "US Parental Leave",
		Description: "12 weeks upfront for full-time employees after one year",
		Category:    "parental",
		Values: []RowValue{
			{rules.CountryRuleID, "United States"},
			{rules.OfficeRuleID, "New York"},
			{rules.LeaveTypeRuleID, "Parental"},
			{rules.BaseEntitlementRuleID, "12 weeks"},
			{rules.AssignDateRuleID, "2024-01-01"},
			{rules.AccrualFrequencyRuleID, "Upfront"},
			{rules.ProratedRuleID, catalog.Off},
			{rules.CarryOverRuleID, catalog.Off},
			{rules.MinDurationRuleID, "1 week"},
			{rules.PaidRuleID, catalog.On},
		},
		Extra: []rules.Fields{
			{RuleType: catalog.RuleAnd, ConditionType: "Employment Type", Operator: "=", ConditionValue: "Full-time"},
			{RuleType: catalog.RuleAnd, ConditionType: "Tenure", Operator: ">=", ConditionValue: "365 days"},
		},
	},
	{
		ID:          "contractor-unpaid",
		Name:        "Contractor Unpaid Leave",
		Description: "Unpaid personal leave for contractors outside engineering",
		Category:    "personal",
		Values: []RowValue{
			{rules.CountryRuleID, "Germany"},
			{rules.OfficeRuleID, "Berlin"},
			{rules.LeaveTypeRuleID, "Unpaid"},
			{rules.BaseEntitlementRuleID, "15 days"},
			{rules.AssignDateRuleID, "2024-01-01"},
			{rules.AccrualFrequencyRuleID, "Annually"},
			{rules.ProratedRuleID, catalog.On},
			{rules.CarryOverRuleID, catalog.Off},
			{rules.MinDurationRuleID, "1 day"},
			{rules.PaidRuleID, catalog.Off},
		},
		Extra: []rules.Fields{
			{RuleType: catalog.RuleAnd, ConditionType: "Employment Type", Operator: "=", ConditionValue: "Contractor"},
			{RuleType: catalog.RuleAnd, ConditionType: "Department", Operator: "!=", ConditionValue: "Engineering"},
		},
	},
}

// Presets returns the built-in presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// FindPreset looks a preset up by id.
func FindPreset(id string) (Preset, error) {
	for _, p := range presets {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%q: %w", id, ErrPresetNotFound)
}

// Build runs the preset through the engine, starting from the seeded list.
func (p Preset) Build(e *rules.Engine) []rules.Rule {
	list := e.Initialize()
	for _, v := range p.Values {
		list = e.UpdateRule(list, v.RuleID, rules.SetValue(v.Value))
	}
	for _, f := range p.Extra {
		list = e.AddRule(list)
		id := list[len(list)-1].ID
		list = e.UpdateRule(list, id, rules.Patch{
			RuleType:       &f.RuleType,
			ConditionType:  &f.ConditionType,
			Operator:       &f.Operator,
			ConditionValue: &f.ConditionValue,
		})
	}
	return list
}

// =============================================================================
// SESSION
// =============================================================================

// ListPresets returns the built-in presets.
func (s *Session) ListPresets() []Preset {
	return Presets()
}

// LoadPreset replaces the working list with a preset as a new, unsaved policy.
func (s *Session) LoadPreset(id string) (State, error) {
	p, err := FindPreset(id)
	if err != nil {
		return s.State(), fmt.Errorf("workspace.Session.LoadPreset: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = p.Build(s.engine)
	s.editingID = ""
	s.log.Debug("preset loaded", slog.String("preset", p.ID), slog.Int("rules", len(s.list)))
	return s.stateLocked(), nil
}
