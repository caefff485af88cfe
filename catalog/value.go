/*
value.go - Value hints per input kind

PURPOSE:
  The engine never rejects a value: a rule is complete as soon as its operator
  and value are non-blank. The checks here only produce hints for the rule row
  ("not a number", "not one of the allowed values").

QUANTITIES:
  Number conditions are leave amounts. Besides a bare decimal ("20") they
  accept a decimal followed by a unit ("20 days", "1 day", "7.5 hours").
  Amounts are decimal.Decimal so "0.1 + 0.2" style drift never shows up in
  summaries.
*/
package catalog

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout of date condition values.
const DateLayout = "2006-01-02"

// =============================================================================
// QUANTITY
// =============================================================================

// Unit of a quantity value. Empty when the value was a bare number.
type Unit string

const (
	UnitNone  Unit = ""
	UnitDays  Unit = "days"
	UnitHours Unit = "hours"
	UnitWeeks Unit = "weeks"
)

var unitAliases = map[string]Unit{
	"day":   UnitDays,
	"days":  UnitDays,
	"d":     UnitDays,
	"hour":  UnitHours,
	"hours": UnitHours,
	"h":     UnitHours,
	"week":  UnitWeeks,
	"weeks": UnitWeeks,
	"w":     UnitWeeks,
}

// Quantity is a parsed number condition value.
type Quantity struct {
	Value decimal.Decimal
	Unit  Unit
}

// ParseQuantity parses "20", "20 days", "1 day" or "7.5h".
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Quantity{}, fmt.Errorf("empty quantity")
	}

	// Split the numeric prefix from the unit suffix.
	end := 0
	for end < len(s) && strings.ContainsRune("+-.0123456789", rune(s[end])) {
		end++
	}
	value, err := decimal.NewFromString(s[:end])
	if err != nil {
		return Quantity{}, fmt.Errorf("not a number: %q", s)
	}

	suffix := strings.ToLower(strings.TrimSpace(s[end:]))
	if suffix == "" {
		return Quantity{Value: value, Unit: UnitNone}, nil
	}
	unit, ok := unitAliases[suffix]
	if !ok {
		return Quantity{}, fmt.Errorf("unknown unit %q", suffix)
	}
	return Quantity{Value: value, Unit: unit}, nil
}

// WithDefaultUnit fills in a missing unit.
func (q Quantity) WithDefaultUnit(u Unit) Quantity {
	if q.Unit == UnitNone {
		q.Unit = u
	}
	return q
}

// String renders "20 days", "1 day", "7.5 hours" or a bare "20".
func (q Quantity) String() string {
	v := q.Value.String()
	if q.Unit == UnitNone {
		return v
	}
	return v + " " + q.UnitLabel()
}

// UnitLabel is the unit name, singular when the value is exactly 1.
func (q Quantity) UnitLabel() string {
	unit := string(q.Unit)
	if q.Value.Equal(decimal.NewFromInt(1)) {
		unit = strings.TrimSuffix(unit, "s")
	}
	return unit
}

// =============================================================================
// VALUE CHECKS
// =============================================================================

// CheckValue reports whether value fits spec. An empty value is not checked:
// completeness is the engine's concern, not the catalog's.
func CheckValue(spec ConditionSpec, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	fail := func(reason string) error {
		return &ValueError{ConditionType: spec.Name, Value: value, Reason: reason}
	}

	switch spec.InputKind {
	case KindNumber:
		q, err := ParseQuantity(value)
		if err != nil {
			return fail("is not a number")
		}
		if q.Value.IsNegative() {
			return fail("must not be negative")
		}
	case KindDate:
		if _, err := time.Parse(DateLayout, value); err != nil {
			return fail("is not a YYYY-MM-DD date")
		}
	case KindDropdown:
		if !slices.Contains(spec.Values, value) {
			return fail("is not one of the allowed values")
		}
	}
	return nil
}

// Check resolves conditionType and checks value against it.
func (c *Catalog) Check(conditionType, value string) error {
	spec, ok := c.Resolve(conditionType)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownConditionType, conditionType)
	}
	return CheckValue(spec, value)
}
