package summary

import (
	"strings"

	"github.com/warp/leave-rules/catalog"
	"github.com/warp/leave-rules/rules"
)

// Closing is the last sentence of every narrative.
const Closing = "The policy applies to every employee who matches the conditions above."

// sentence builds zero or one sentence from the rule list.
type sentence func(list []rules.Fields) (string, bool)

// narrative order is fixed and independent of rule order.
var narrative = []sentence{
	eligibilitySentence,
	coverageSentence,
	entitlementSentence,
	accrualSentence,
	prorationSentence,
	carryOverSentence,
	minimumDurationSentence,
	paidSentence,
}

// Narrative explains the rule list in plain language.
func Narrative(list []rules.Fields) string {
	var parts []string
	if len(list) == 0 {
		parts = append(parts, "No rules have been configured for this policy, so every setting is "+NotConfigured+".")
	}
	for _, build := range narrative {
		if s, ok := build(list); ok {
			parts = append(parts, s)
		}
	}
	parts = append(parts, Closing)
	return strings.Join(parts, " ")
}

func eligibilitySentence(list []rules.Fields) (string, bool) {
	var clauses []string
	if r, ok := lookup(list, catalog.Country); ok {
		if r.Operator == "!=" {
			clauses = append(clauses, "outside "+valueOr(r.ConditionValue, NotSet))
		} else {
			clauses = append(clauses, "in "+valueOr(r.ConditionValue, NotSet))
		}
	}
	if r, ok := lookup(list, catalog.Office); ok {
		if r.Operator == "!=" {
			clauses = append(clauses, "outside the "+valueOr(r.ConditionValue, NotSet)+" office")
		} else {
			clauses = append(clauses, "at the "+valueOr(r.ConditionValue, NotSet)+" office")
		}
	}
	if len(clauses) == 0 {
		return "", false
	}
	return "This policy applies to employees " + strings.Join(clauses, " ") + ".", true
}

func coverageSentence(list []rules.Fields) (string, bool) {
	r, ok := lookup(list, catalog.LeaveType)
	if !ok {
		return "", false
	}
	return "It covers " + valueOr(r.ConditionValue, NotSet) + " leave.", true
}

func entitlementSentence(list []rules.Fields) (string, bool) {
	r, ok := lookup(list, catalog.BaseEntitlement)
	if !ok {
		return "", false
	}
	return "Employees are entitled to " + bound(r.Operator) + amount(r.ConditionValue) + " of leave.", true
}

func accrualSentence(list []rules.Fields) (string, bool) {
	r, ok := lookup(list, catalog.AccrualFrequency)
	if !ok {
		return "", false
	}
	v := valueOr(r.ConditionValue, NotSet)
	if v != NotSet {
		v = strings.ToLower(v)
	}
	return "Leave accrues " + v + ".", true
}

func prorationSentence(list []rules.Fields) (string, bool) {
	r, ok := lookup(list, catalog.Prorated)
	if !ok {
		return "", false
	}
	switch r.ConditionValue {
	case catalog.On:
		return "Entitlement is prorated for employees who join or leave part-way through the period.", true
	case catalog.Off:
		return "Entitlement is not prorated: every eligible employee receives the full amount.", true
	default:
		return "", false
	}
}

func carryOverSentence(list []rules.Fields) (string, bool) {
	r, ok := lookup(list, catalog.CarryOverAllowed)
	if !ok {
		return "", false
	}
	switch r.ConditionValue {
	case catalog.On:
		if max, ok := lookup(list, catalog.MaximumCarryOver); ok && max.ConditionValue != "" {
			return "Unused leave can be carried over to the next period, up to a maximum of " + amount(max.ConditionValue) + ".", true
		}
		return "Unused leave can be carried over to the next period.", true
	case catalog.Off:
		return "Unused leave is forfeited at the end of the period.", true
	default:
		return "", false
	}
}

func minimumDurationSentence(list []rules.Fields) (string, bool) {
	r, ok := lookup(list, catalog.MinimumDurationAllowed)
	if !ok {
		return "", false
	}
	return "Each leave request must be at least " + amount(r.ConditionValue) + " long.", true
}

func paidSentence(list []rules.Fields) (string, bool) {
	r, ok := lookup(list, catalog.Paid)
	if !ok {
		return "", false
	}
	switch r.ConditionValue {
	case catalog.On:
		return "Leave taken under this policy is paid.", true
	case catalog.Off:
		return "Leave taken under this policy is unpaid.", true
	default:
		return "", false
	}
}

// amount renders a quantity value as typed; bare numbers get a "days" unit.
func amount(v string) string {
	if v == "" {
		return NotSet
	}
	q, err := catalog.ParseQuantity(v)
	if err != nil || q.Unit != catalog.UnitNone {
		return v
	}
	return strings.TrimSpace(v) + " " + q.WithDefaultUnit(catalog.UnitDays).UnitLabel()
}

func bound(operator string) string {
	switch operator {
	case ">=", ">":
		return "at least "
	case "<=", "<":
		return "up to "
	default:
		return ""
	}
}
