package rules

import "github.com/warp/leave-rules/catalog"

// Well-known row ids. The seed ids are fixed literals so that two
// initializations produce identical lists and the carry-over row can be
// recognized by identity.
const (
	CountryRuleID          = "default-country"
	OfficeRuleID           = "default-office"
	LeaveTypeRuleID        = "default-leave-type"
	BaseEntitlementRuleID  = "default-base-entitlement"
	AssignDateRuleID       = "default-assign-date"
	AccrualFrequencyRuleID = "default-accrual-freq"
	ProratedRuleID         = "default-prorated"
	CarryOverRuleID        = "default-carry-over"
	MinDurationRuleID      = "default-min-duration"
	PaidRuleID             = "default-paid"

	// MaxCarryOverRuleID is the id of the derived row inserted when the
	// carry-over row is switched ON.
	MaxCarryOverRuleID = "default-max-carry-over"
)

var seed = []struct {
	id            string
	conditionType string
}{
	{CountryRuleID, catalog.Country},
	{OfficeRuleID, catalog.Office},
	{LeaveTypeRuleID, catalog.LeaveType},
	{BaseEntitlementRuleID, catalog.BaseEntitlement},
	{AssignDateRuleID, catalog.AssignDate},
	{AccrualFrequencyRuleID, catalog.AccrualFrequency},
	{ProratedRuleID, catalog.Prorated},
	{CarryOverRuleID, catalog.CarryOverAllowed},
	{MinDurationRuleID, catalog.MinimumDurationAllowed},
	{PaidRuleID, catalog.Paid},
}

// DefaultRules returns the seeded rule list: If Country, then And for every
// other default row, all with operator "=" and no value.
func DefaultRules() []Rule {
	out := make([]Rule, len(seed))
	for i, s := range seed {
		ruleType := catalog.RuleAnd
		if i == 0 {
			ruleType = catalog.RuleIf
		}
		out[i] = Rule{
			ID:            s.id,
			RuleType:      ruleType,
			ConditionType: s.conditionType,
			Operator:      "=",
			IsDefault:     true,
		}
	}
	return out
}

func maxCarryOverRule() Rule {
	return Rule{
		ID:            MaxCarryOverRuleID,
		RuleType:      catalog.RuleAnd,
		ConditionType: catalog.MaximumCarryOver,
		Operator:      "=",
		IsDefault:     true,
	}
}
