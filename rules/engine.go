/*
engine.go - Rule list state machine

PURPOSE:
  Applies user gestures (add, edit, delete, reorder) to the working rule list
  and keeps its structural invariants. Every operation takes a list and returns
  a new list; the input is never modified.

INVARIANTS:
  1. Ids are unique. New rows get a fresh UUIDv7; seed ids are fixed literals.
  2. Default rows cannot be deleted and their condition type cannot change.
  3. At most one row holds "Base entitlement". After every operation a heal
     pass reassigns any other holder to the first selectable condition type.
     A row that held it before the operation keeps it, then a default row,
     then the earlier row in list order (lists loaded already in conflict).
  4. Setting the carry-over default row (CarryOverRuleID) to ON inserts a
     "Maximum Carry Over" row right after it unless one exists. Setting it to
     OFF removes every "Maximum Carry Over" row. Only that row id triggers this.
  5. Changing a row's condition type resets its operator to the new type's
     default and clears its value.

NOT-FOUND:
  Operations on unknown ids are no-ops. Nothing here returns an error.

SEE ALSO:
  - seed.go: default rows and well-known ids
  - view.go: per-row presentation data
*/
package rules

import (
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/warp/leave-rules/catalog"
)

// Engine applies rule list operations against a catalog.
type Engine struct {
	catalog *catalog.Catalog
	newID   func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDGenerator replaces the UUIDv7 generator used for added rows.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// NewEngine creates an engine over a catalog.
func NewEngine(c *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: c,
		newID:   func() string { return uuid.Must(uuid.NewV7()).String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// =============================================================================
// OPERATIONS
// =============================================================================

// Initialize returns the default seed list. Repeated calls return identical
// lists, ids included.
func (e *Engine) Initialize() []Rule {
	return DefaultRules()
}

// AddRule appends an editable rule using the catalog's first rule type and
// first condition type, with no operator and no value.
func (e *Engine) AddRule(list []Rule) []Rule {
	id := e.newID()
	for indexOf(list, id) >= 0 {
		id = e.newID()
	}

	out := append(slices.Clone(list), Rule{
		ID:            id,
		RuleType:      e.catalog.FirstRuleType(),
		ConditionType: e.catalog.FirstConditionType(),
	})
	return e.heal(list, out)
}

// UpdateRule merges patch into the row with the given id.
func (e *Engine) UpdateRule(list []Rule, id string, patch Patch) []Rule {
	out := slices.Clone(list)
	i := indexOf(out, id)
	if i < 0 {
		return out
	}

	out[i] = e.merge(out[i], patch)
	if id == CarryOverRuleID {
		out = maintainCarryOver(out, i)
	}
	return e.heal(list, out)
}

// DeleteRule removes the row with the given id unless it is a default row.
func (e *Engine) DeleteRule(list []Rule, id string) []Rule {
	out := slices.Clone(list)
	i := indexOf(out, id)
	if i < 0 || out[i].IsDefault {
		return out
	}
	return e.heal(list, slices.Delete(out, i, i+1))
}

// Reorder moves the row at from to position to, shifting the rows between.
// Equal or out-of-range indices are a no-op.
func (e *Engine) Reorder(list []Rule, from, to int) []Rule {
	out := slices.Clone(list)
	if from == to || from < 0 || to < 0 || from >= len(out) || to >= len(out) {
		return out
	}

	moved := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, moved)
	return e.heal(list, out)
}

// ReorderByID resolves a drag from one row onto another into a Reorder.
func (e *Engine) ReorderByID(list []Rule, fromID, toID string) []Rule {
	if fromID == toID {
		return slices.Clone(list)
	}
	from, to := indexOf(list, fromID), indexOf(list, toID)
	if from < 0 || to < 0 {
		return slices.Clone(list)
	}
	return e.Reorder(list, from, to)
}

// Rehydrate builds a working list from saved rule tuples. Rows are editable
// and deletable; ids are "<policyID>-<index>".
func (e *Engine) Rehydrate(policyID string, saved []Fields) []Rule {
	out := make([]Rule, len(saved))
	for i, f := range saved {
		out[i] = Rule{
			ID:             rehydratedID(policyID, i),
			RuleType:       f.RuleType,
			ConditionType:  f.ConditionType,
			Operator:       f.Operator,
			ConditionValue: f.ConditionValue,
		}
	}
	return e.heal(nil, out)
}

// SelectableConditionTypes lists, alphabetically, the condition types the row
// with the given id may switch to. "Base entitlement" is left out when another
// row already holds it.
func (e *Engine) SelectableConditionTypes(list []Rule, id string) []string {
	taken := slices.ContainsFunc(list, func(r Rule) bool {
		return r.ID != id && r.ConditionType == catalog.BaseEntitlement
	})

	names := e.catalog.SortedConditionTypes()
	if !taken {
		return names
	}
	return slices.DeleteFunc(names, func(n string) bool { return n == catalog.BaseEntitlement })
}

// =============================================================================
// INTERNALS
// =============================================================================

func (e *Engine) merge(r Rule, p Patch) Rule {
	if p.RuleType != nil {
		r.RuleType = *p.RuleType
	}
	if p.ConditionType != nil && !r.IsDefault && *p.ConditionType != r.ConditionType {
		r.ConditionType = *p.ConditionType
		r.Operator = e.catalog.DefaultOperator(r.ConditionType)
		r.ConditionValue = ""
	}
	if p.Operator != nil {
		r.Operator = *p.Operator
	}
	if p.ConditionValue != nil {
		r.ConditionValue = *p.ConditionValue
	}
	return r
}

// maintainCarryOver applies the derived-row rule for the carry-over row at i.
func maintainCarryOver(list []Rule, i int) []Rule {
	switch list[i].ConditionValue {
	case catalog.On:
		if hasConditionType(list, catalog.MaximumCarryOver) {
			return list
		}
		return slices.Insert(list, i+1, maxCarryOverRule())
	case catalog.Off:
		return slices.DeleteFunc(list, func(r Rule) bool {
			return r.ConditionType == catalog.MaximumCarryOver
		})
	default:
		return list
	}
}

// heal enforces Base entitlement exclusivity on list. prev is the list the
// operation started from; nil when there is none.
func (e *Engine) heal(prev, list []Rule) []Rule {
	heldBefore := map[string]bool{}
	for _, r := range prev {
		if r.ConditionType == catalog.BaseEntitlement {
			heldBefore[r.ID] = true
		}
	}
	rank := func(r Rule) int {
		n := 0
		if heldBefore[r.ID] {
			n += 2
		}
		if r.IsDefault {
			n++
		}
		return n
	}

	keeper := -1
	for i, r := range list {
		if r.ConditionType != catalog.BaseEntitlement {
			continue
		}
		if keeper < 0 || rank(r) > rank(list[keeper]) {
			keeper = i
		}
	}
	if keeper < 0 {
		return list
	}

	for i, r := range list {
		if i == keeper || r.ConditionType != catalog.BaseEntitlement {
			continue
		}
		choices := e.SelectableConditionTypes(list, r.ID)
		if len(choices) == 0 {
			continue
		}
		r.ConditionType = choices[0]
		r.Operator = e.catalog.DefaultOperator(choices[0])
		r.ConditionValue = ""
		list[i] = r
	}
	return list
}

func indexOf(list []Rule, id string) int {
	return slices.IndexFunc(list, func(r Rule) bool { return r.ID == id })
}

func hasConditionType(list []Rule, conditionType string) bool {
	return slices.ContainsFunc(list, func(r Rule) bool { return r.ConditionType == conditionType })
}

func rehydratedID(policyID string, index int) string {
	return policyID + "-" + strconv.Itoa(index)
}
