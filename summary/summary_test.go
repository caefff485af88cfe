package summary

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-rules/catalog"
	"github.com/warp/leave-rules/policy"
	"github.com/warp/leave-rules/rules"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestEngine() *rules.Engine {
	n := 0
	return rules.NewEngine(catalog.Default(), rules.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("rule-%d", n)
	}))
}

// scenarioOne fills every seeded row and the derived max carry-over row.
func scenarioOne(e *rules.Engine) []rules.Rule {
	list := e.Initialize()
	values := []struct{ id, value string }{
		{rules.CountryRuleID, "Canada"},
		{rules.OfficeRuleID, "Toronto"},
		{rules.LeaveTypeRuleID, "Annual"},
		{rules.BaseEntitlementRuleID, "20 days"},
		{rules.AssignDateRuleID, "2024-01-01"},
		{rules.AccrualFrequencyRuleID, "Monthly"},
		{rules.ProratedRuleID, catalog.On},
		{rules.CarryOverRuleID, catalog.On},
		{rules.MinDurationRuleID, "1 day"},
		{rules.PaidRuleID, catalog.On},
		{rules.MaxCarryOverRuleID, "5 days"},
	}
	for _, v := range values {
		list = e.UpdateRule(list, v.id, rules.SetValue(v.value))
	}
	return list
}

// assertInOrder checks that every fragment occurs in text, each after the previous one.
func assertInOrder(t *testing.T, text string, fragments ...string) {
	t.Helper()
	pos := 0
	for _, f := range fragments {
		i := strings.Index(text[pos:], f)
		if !assert.GreaterOrEqual(t, i, 0, "%q not found after offset %d", f, pos) {
			return
		}
		pos += i + len(f)
	}
}

// =============================================================================
// LINE ITEMS
// =============================================================================

func TestLineItems(t *testing.T) {
	// GIVEN: two rules, one without a value
	list := []rules.Fields{
		{RuleType: "If", ConditionType: "Country", Operator: "=", ConditionValue: "Canada"},
		{RuleType: "And", ConditionType: "Paid", Operator: "=", ConditionValue: "  "},
	}

	// WHEN: rendering line items
	lines := LineItems(list)

	// THEN: lines are 1-based and only empty values show the placeholder
	assert.Equal(t, []string{
		"1. If Country = Canada",
		"2. And Paid =   ",
	}, lines)
	assert.Equal(t, "1. If Leave Type = [Not Set]", LineItems([]rules.Fields{
		{RuleType: "If", ConditionType: catalog.LeaveType, Operator: "="},
	})[0])
}

// =============================================================================
// EMPTY LIST
// =============================================================================

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Empty(t, s.LineItems)
	assert.Equal(t, "No rules have been configured for this policy, so every setting is Not configured. "+Closing, s.Narrative)
	assert.Contains(t, s.TechnicalDigest, "Base entitlement: Not configured")
	assert.Contains(t, s.TechnicalDigest, "Accrual frequency: Not configured")
	assert.Contains(t, s.TechnicalDigest, "Carry over allowed: Not configured")
	assert.Contains(t, s.TechnicalDigest, "Prorated: Not configured")
	assert.Contains(t, s.TechnicalDigest, "Minimum duration: Not configured")
	assert.Contains(t, s.TechnicalDigest, "Paid leave: Not configured")
	assert.Contains(t, s.TechnicalDigest, "No specific conditions")
	assert.True(t, strings.HasSuffix(s.TechnicalDigest, "Total rules: 0"))
}

func TestSummarize_FreshDefaults(t *testing.T) {
	// GIVEN: the seeded list with no values
	list := newTestEngine().Initialize()

	// WHEN: summarizing
	s := SummarizeRules(list)

	// THEN: slots fall back to "Not configured" and sentences to "[Not Set]"
	require.Len(t, s.LineItems, len(list))
	assert.Equal(t, "1. If Country = [Not Set]", s.LineItems[0])
	assert.Contains(t, s.TechnicalDigest, "Base entitlement: Not configured")
	assert.Contains(t, s.Narrative, "This policy applies to employees in [Not Set] at the [Not Set] office.")
	assert.Contains(t, s.Narrative, "Employees are entitled to [Not Set] of leave.")
	assert.NotContains(t, s.Narrative, "carried over")
	assert.NotContains(t, s.Narrative, "forfeited")
	assert.True(t, strings.HasSuffix(s.Narrative, Closing))
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestSummarize_ScenarioOne(t *testing.T) {
	// GIVEN: every row filled in and carry over switched ON
	e := newTestEngine()
	list := scenarioOne(e)
	require.True(t, rules.IsPolicyValid(list))

	// WHEN: summarizing
	s := SummarizeRules(list)

	// THEN: the narrative has every sentence in the fixed order
	assertInOrder(t, s.Narrative,
		"This policy applies to employees in Canada at the Toronto office.",
		"It covers Annual leave.",
		"Employees are entitled to 20 days of leave.",
		"Leave accrues monthly.",
		"Entitlement is prorated",
		"Unused leave can be carried over to the next period, up to a maximum of 5 days.",
		"Each leave request must be at least 1 day long.",
		"Leave taken under this policy is paid.",
		Closing,
	)
	assert.Contains(t, s.TechnicalDigest, "Base entitlement: 20 days")
	assert.Contains(t, s.TechnicalDigest, "Carry over allowed: ON")
	assert.Contains(t, s.TechnicalDigest, "All listed conditions must be met")
	assert.Contains(t, s.TechnicalDigest, fmt.Sprintf("Total rules: %d", len(list)))
}

func TestSummarize_ScenarioTwo(t *testing.T) {
	// GIVEN: scenario one
	e := newTestEngine()
	list := scenarioOne(e)
	before := len(list)

	// WHEN: carry over is switched OFF
	list = e.UpdateRule(list, rules.CarryOverRuleID, rules.SetValue(catalog.Off))
	s := SummarizeRules(list)

	// THEN: the max row is gone and the forfeiture sentence replaces carry over
	assert.Len(t, list, before-1)
	assert.Contains(t, s.Narrative, "Unused leave is forfeited at the end of the period.")
	assert.NotContains(t, s.Narrative, "carried over")
	assertInOrder(t, s.Narrative, "Entitlement is prorated", "forfeited", "at least 1 day")
}

// =============================================================================
// SENTENCE DETAILS
// =============================================================================

func TestNarrative_OrderIndependentOfRuleOrder(t *testing.T) {
	list := []rules.Fields{
		{RuleType: "And", ConditionType: catalog.Paid, Operator: "=", ConditionValue: catalog.Off},
		{RuleType: "If", ConditionType: catalog.LeaveType, Operator: "=", ConditionValue: "Sick"},
	}

	n := Narrative(list)

	assertInOrder(t, n, "It covers Sick leave.", "Leave taken under this policy is unpaid.")
}

func TestNarrative_FirstMatchWins(t *testing.T) {
	list := []rules.Fields{
		{RuleType: "If", ConditionType: catalog.Country, Operator: "=", ConditionValue: "Canada"},
		{RuleType: "And", ConditionType: catalog.Country, Operator: "=", ConditionValue: "France"},
	}

	n := Narrative(list)

	assert.Contains(t, n, "employees in Canada.")
	assert.NotContains(t, n, "France")
}

func TestNarrative_Operators(t *testing.T) {
	tests := []struct {
		name string
		rule rules.Fields
		want string
	}{
		{"country excluded", rules.Fields{ConditionType: catalog.Country, Operator: "!=", ConditionValue: "USA"}, "employees outside USA."},
		{"entitlement floor", rules.Fields{ConditionType: catalog.BaseEntitlement, Operator: ">=", ConditionValue: "15"}, "entitled to at least 15 days of leave."},
		{"entitlement cap", rules.Fields{ConditionType: catalog.BaseEntitlement, Operator: "<=", ConditionValue: "7.5h"}, "entitled to up to 7.5h of leave."},
		{"free text entitlement", rules.Fields{ConditionType: catalog.BaseEntitlement, Operator: "=", ConditionValue: "unlimited"}, "entitled to unlimited of leave."},
		{"trailing zero kept", rules.Fields{ConditionType: catalog.BaseEntitlement, Operator: "=", ConditionValue: "20.0 days"}, "entitled to 20.0 days of leave."},
		{"bare decimal kept", rules.Fields{ConditionType: catalog.BaseEntitlement, Operator: "=", ConditionValue: "5.50"}, "entitled to 5.50 days of leave."},
		{"bare one is singular", rules.Fields{ConditionType: catalog.MinimumDurationAllowed, Operator: "=", ConditionValue: "1"}, "at least 1 day long."},
		{"prorated off", rules.Fields{ConditionType: catalog.Prorated, Operator: "=", ConditionValue: catalog.Off}, "Entitlement is not prorated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Narrative([]rules.Fields{tt.rule})
			assert.Contains(t, n, tt.want)
		})
	}
}

func TestNarrative_CarryOverWithoutMax(t *testing.T) {
	list := []rules.Fields{
		{ConditionType: catalog.CarryOverAllowed, Operator: "=", ConditionValue: catalog.On},
		{ConditionType: catalog.MaximumCarryOver, Operator: "=", ConditionValue: ""},
	}

	n := Narrative(list)

	assert.Contains(t, n, "Unused leave can be carried over to the next period.")
	assert.NotContains(t, n, "up to a maximum")
}

func TestSummarize_WhitespaceValueShownAsTyped(t *testing.T) {
	list := []rules.Fields{
		{RuleType: "If", ConditionType: catalog.AccrualFrequency, Operator: "=", ConditionValue: " "},
	}

	s := Summarize(list)

	assert.Contains(t, s.TechnicalDigest, "Accrual frequency:  \n")
	assert.NotContains(t, s.TechnicalDigest, "Accrual frequency: Not configured")
}

func TestNarrative_UnsetToggleSkipsSentence(t *testing.T) {
	list := []rules.Fields{
		{ConditionType: catalog.Paid, Operator: "=", ConditionValue: ""},
	}

	assert.Equal(t, Closing, Narrative(list))
}

// =============================================================================
// CARDS
// =============================================================================

func TestCard(t *testing.T) {
	p := policy.SavedPolicy{
		ID:        "0190a1b2-c3d4-7e5f-8000-000000000000",
		Name:      "Canada Annual",
		CreatedAt: time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC),
		Rules: []rules.Fields{
			{RuleType: "If", ConditionType: catalog.Country, Operator: "=", ConditionValue: "Canada"},
			{RuleType: "And", ConditionType: catalog.BaseEntitlement, Operator: "=", ConditionValue: "20 days"},
		},
	}

	c := Card(p)

	assert.Equal(t, PolicyCard{
		ID:              p.ID,
		ShortID:         "0190a1b2",
		Name:            "Canada Annual",
		CreatedOn:       "2024-03-09",
		RuleCount:       2,
		BaseEntitlement: "20 days",
	}, c)
}

func TestCard_Sparse(t *testing.T) {
	c := Card(policy.SavedPolicy{ID: "abc", Name: "Empty"})

	assert.Equal(t, "abc", c.ShortID)
	assert.Empty(t, c.CreatedOn)
	assert.Zero(t, c.RuleCount)
	assert.Equal(t, NotSet, c.BaseEntitlement)
}

func TestCards_KeepsOrder(t *testing.T) {
	cards := Cards([]policy.SavedPolicy{{ID: "b", Name: "B"}, {ID: "a", Name: "A"}})

	require.Len(t, cards, 2)
	assert.Equal(t, "B", cards[0].Name)
	assert.Equal(t, "A", cards[1].Name)
}
