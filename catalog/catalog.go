/*
Package catalog describes the condition types a leave policy rule can use.

PURPOSE:
  The catalog is the static, read-only lookup table behind every rule row:
  which rule-type labels exist (If/And/Or/Then), which condition types exist,
  how each condition type takes its value (free text, number, date, dropdown),
  which operators it allows and, for dropdowns, which values.

ORDER:
  Condition types keep the order of the catalog document. The first entry is
  the default for a freshly added rule. Selectors may re-sort alphabetically
  (see SortedConditionTypes).

UNKNOWN TYPES:
  Resolve returns ok=false for a condition type that is not in the catalog.
  Callers render no operator/value controls for such a row; it is a
  configuration error, never a panic.

SEE ALSO:
  - document.go: JSON/YAML catalog documents
  - control.go:  input control dispatch per InputKind
  - value.go:    value hints per InputKind
*/
package catalog

import (
	"slices"
	"sort"
)

// =============================================================================
// INPUT KIND
// =============================================================================

// InputKind says how a condition value is entered.
type InputKind string

const (
	KindFreeText InputKind = "text"
	KindNumber   InputKind = "number"
	KindDate     InputKind = "date"
	KindDropdown InputKind = "dropdown"
)

// ParseInputKind maps a catalog document's inputType onto an InputKind.
// Anything other than number, date or dropdown is free text.
func ParseInputKind(s string) InputKind {
	switch InputKind(s) {
	case KindNumber, KindDate, KindDropdown:
		return InputKind(s)
	default:
		return KindFreeText
	}
}

// =============================================================================
// CONDITION SPEC
// =============================================================================

// ConditionSpec is one catalog entry.
type ConditionSpec struct {
	Name      string
	InputKind InputKind
	Operators []string // first element is the default operator
	Values    []string // dropdown only
}

// DefaultOperator is the operator a rule gets when it switches to this
// condition type. Empty when the spec allows no operators.
func (s ConditionSpec) DefaultOperator() string {
	if len(s.Operators) == 0 {
		return ""
	}
	return s.Operators[0]
}

// AllowsOperator reports whether op is one of the spec's operators.
func (s ConditionSpec) AllowsOperator(op string) bool {
	return slices.Contains(s.Operators, op)
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is an immutable set of condition specs plus the rule-type labels.
type Catalog struct {
	ruleTypes []string
	order     []string
	specs     map[string]ConditionSpec
}

// New builds a catalog. Later specs with a name already seen replace the
// earlier entry but keep its position.
func New(ruleTypes []string, specs []ConditionSpec) *Catalog {
	c := &Catalog{
		ruleTypes: slices.Clone(ruleTypes),
		specs:     make(map[string]ConditionSpec, len(specs)),
	}
	for _, s := range specs {
		if _, seen := c.specs[s.Name]; !seen {
			c.order = append(c.order, s.Name)
		}
		s.Operators = slices.Clone(s.Operators)
		s.Values = slices.Clone(s.Values)
		c.specs[s.Name] = s
	}
	return c
}

// Resolve looks up a condition type.
func (c *Catalog) Resolve(conditionType string) (ConditionSpec, bool) {
	s, ok := c.specs[conditionType]
	if !ok {
		return ConditionSpec{}, false
	}
	s.Operators = slices.Clone(s.Operators)
	s.Values = slices.Clone(s.Values)
	return s, true
}

// ConditionTypes returns condition type names in catalog order.
func (c *Catalog) ConditionTypes() []string {
	return slices.Clone(c.order)
}

// SortedConditionTypes returns condition type names in alphabetical order,
// the order rule rows present them in.
func (c *Catalog) SortedConditionTypes() []string {
	names := slices.Clone(c.order)
	sort.Strings(names)
	return names
}

// RuleTypes returns the rule-type labels in catalog order.
func (c *Catalog) RuleTypes() []string {
	return slices.Clone(c.ruleTypes)
}

// FirstRuleType is the rule type given to newly added rules.
func (c *Catalog) FirstRuleType() string {
	if len(c.ruleTypes) == 0 {
		return ""
	}
	return c.ruleTypes[0]
}

// FirstConditionType is the condition type given to newly added rules.
func (c *Catalog) FirstConditionType() string {
	if len(c.order) == 0 {
		return ""
	}
	return c.order[0]
}

// DefaultOperator returns the default operator for a condition type, or ""
// when the type is unknown or has no operators.
func (c *Catalog) DefaultOperator(conditionType string) string {
	return c.specs[conditionType].DefaultOperator()
}

// Operators returns the operators allowed for a condition type. Nil when the
// type is unknown.
func (c *Catalog) Operators(conditionType string) []string {
	s, ok := c.specs[conditionType]
	if !ok {
		return nil
	}
	return slices.Clone(s.Operators)
}

// Len is the number of condition types.
func (c *Catalog) Len() int { return len(c.order) }
