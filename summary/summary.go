/*
Package summary explains a rule list in words.

PURPOSE:
  Summarize turns an ordered rule list into three views:
  - LineItems:       one "N. RuleType ConditionType Operator Value" line per rule
  - TechnicalDigest: a fixed report with named slots per condition type
  - Narrative:       a paragraph of plain-language sentences

LOOKUPS:
  Slots and sentences look rules up by condition type; the first matching rule
  wins and rule order does not change sentence order. Missing values show as
  "Not configured" (digest slots) or "[Not Set]" (line items and sentences).

  Summarize is pure and accepts an empty list.
*/
package summary

import (
	"fmt"
	"strings"

	"github.com/warp/leave-rules/catalog"
	"github.com/warp/leave-rules/rules"
)

// Placeholders for missing values.
const (
	NotSet        = "[Not Set]"
	NotConfigured = "Not configured"
)

// Summary is the generated explanation of a rule list.
type Summary struct {
	Narrative       string   `json:"narrative"`
	TechnicalDigest string   `json:"technicalDigest"`
	LineItems       []string `json:"lineItems"`
}

// Summarize explains a list of rule tuples.
func Summarize(list []rules.Fields) Summary {
	lines := LineItems(list)
	return Summary{
		Narrative:       Narrative(list),
		TechnicalDigest: technicalDigest(list, lines),
		LineItems:       lines,
	}
}

// SummarizeRules explains a working rule list.
func SummarizeRules(list []rules.Rule) Summary {
	return Summarize(rules.FieldsOf(list))
}

// LineItems renders one numbered line per rule.
func LineItems(list []rules.Fields) []string {
	lines := make([]string, len(list))
	for i, r := range list {
		lines[i] = fmt.Sprintf("%d. %s %s %s %s", i+1, r.RuleType, r.ConditionType, r.Operator, valueOr(r.ConditionValue, NotSet))
	}
	return lines
}

// =============================================================================
// TECHNICAL DIGEST
// =============================================================================

func technicalDigest(list []rules.Fields, lines []string) string {
	slot := func(conditionType string) string {
		if r, ok := lookup(list, conditionType); ok {
			return valueOr(r.ConditionValue, NotConfigured)
		}
		return NotConfigured
	}

	eligibility := "No specific conditions"
	for _, r := range list {
		if r.RuleType == catalog.RuleIf {
			eligibility = "All listed conditions must be met"
			break
		}
	}

	var b strings.Builder
	b.WriteString("Policy configuration\n\n")
	fmt.Fprintf(&b, "1. Eligibility: %s\n\n", eligibility)
	b.WriteString("2. Leave configuration:\n")
	fmt.Fprintf(&b, "   - Base entitlement: %s\n", slot(catalog.BaseEntitlement))
	fmt.Fprintf(&b, "   - Accrual frequency: %s\n", slot(catalog.AccrualFrequency))
	fmt.Fprintf(&b, "   - Carry over allowed: %s\n\n", slot(catalog.CarryOverAllowed))
	b.WriteString("3. Rules:\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "   %s\n", line)
	}
	b.WriteString("\n4. Additional features:\n")
	fmt.Fprintf(&b, "   - Prorated: %s\n", slot(catalog.Prorated))
	fmt.Fprintf(&b, "   - Minimum duration: %s\n", slot(catalog.MinimumDurationAllowed))
	fmt.Fprintf(&b, "   - Paid leave: %s\n\n", slot(catalog.Paid))
	fmt.Fprintf(&b, "Total rules: %d", len(list))
	return b.String()
}

// =============================================================================
// HELPERS
// =============================================================================

func lookup(list []rules.Fields, conditionType string) (rules.Fields, bool) {
	for _, r := range list {
		if r.ConditionType == conditionType {
			return r, true
		}
	}
	return rules.Fields{}, false
}

// valueOr substitutes placeholder for an empty value only; whitespace is
// shown as typed.
func valueOr(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}
