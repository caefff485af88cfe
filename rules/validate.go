package rules

import "strings"

// IsComplete reports whether a rule has both an operator and a value.
func (r Rule) IsComplete() bool {
	return strings.TrimSpace(r.Operator) != "" && strings.TrimSpace(r.ConditionValue) != ""
}

// IsPolicyValid reports whether every rule is complete. It gates saving.
// Rule type and condition type are not checked: they always come from the
// catalog.
func IsPolicyValid(list []Rule) bool {
	for _, r := range list {
		if !r.IsComplete() {
			return false
		}
	}
	return true
}

// Incomplete returns the ids of rules missing an operator or a value.
func Incomplete(list []Rule) []string {
	var ids []string
	for _, r := range list {
		if !r.IsComplete() {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
