// Package rules owns the working list of policy rules and the structural
// invariants that hold across every edit.
package rules

// =============================================================================
// RULE
// =============================================================================

// Rule is one row of the working rule list.
type Rule struct {
	ID             string `json:"id"`
	RuleType       string `json:"ruleType"`
	ConditionType  string `json:"conditionType"`
	Operator       string `json:"operator"`
	ConditionValue string `json:"conditionValue"`
	IsDefault      bool   `json:"isDefault,omitempty"`
}

// Fields is a rule without its identity: what a saved policy keeps.
type Fields struct {
	RuleType       string `json:"ruleType"`
	ConditionType  string `json:"conditionType"`
	Operator       string `json:"operator"`
	ConditionValue string `json:"conditionValue"`
}

// Fields strips the id and the default flag.
func (r Rule) Fields() Fields {
	return Fields{
		RuleType:       r.RuleType,
		ConditionType:  r.ConditionType,
		Operator:       r.Operator,
		ConditionValue: r.ConditionValue,
	}
}

// FieldsOf strips every rule of a list.
func FieldsOf(list []Rule) []Fields {
	out := make([]Fields, len(list))
	for i, r := range list {
		out[i] = r.Fields()
	}
	return out
}

// =============================================================================
// PATCH
// =============================================================================

// Patch is a partial update of a rule. Nil fields are left alone.
type Patch struct {
	RuleType       *string `json:"ruleType,omitempty"`
	ConditionType  *string `json:"conditionType,omitempty"`
	Operator       *string `json:"operator,omitempty"`
	ConditionValue *string `json:"conditionValue,omitempty"`
}

// SetRuleType is a Patch that only changes the rule type.
func SetRuleType(v string) Patch { return Patch{RuleType: &v} }

// SetConditionType is a Patch that only changes the condition type.
func SetConditionType(v string) Patch { return Patch{ConditionType: &v} }

// SetOperator is a Patch that only changes the operator.
func SetOperator(v string) Patch { return Patch{Operator: &v} }

// SetValue is a Patch that only changes the condition value.
func SetValue(v string) Patch { return Patch{ConditionValue: &v} }

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.RuleType == nil && p.ConditionType == nil && p.Operator == nil && p.ConditionValue == nil
}
