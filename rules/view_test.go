package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/leave-rules/catalog"
)

func TestView(t *testing.T) {
	e := newTestEngine()
	list := e.AddRule(e.Initialize())
	list = e.UpdateRule(list, BaseEntitlementRuleID, SetValue("lots"))
	list = e.UpdateRule(list, "rule-1", SetOperator("="))
	list = e.UpdateRule(list, "rule-1", SetValue("Canada"))

	views := e.View(list)
	require.Len(t, views, len(list))

	country := views[0]
	assert.Equal(t, 1, country.Position)
	assert.False(t, country.Deletable)
	assert.False(t, country.ConditionTypeEditable)
	assert.Equal(t, []string{"=", "!="}, country.Operators)
	require.NotNil(t, country.Control)
	assert.Equal(t, catalog.KindDropdown, country.Control.Kind)
	assert.False(t, country.Complete)
	assert.Empty(t, country.Hint)

	base := views[3]
	assert.Contains(t, base.Hint, "is not a number")
	assert.Contains(t, base.ConditionTypes, catalog.BaseEntitlement)

	added := views[10]
	assert.True(t, added.Deletable)
	assert.True(t, added.ConditionTypeEditable)
	assert.True(t, added.Complete)
	assert.NotContains(t, added.ConditionTypes, catalog.BaseEntitlement)
	assert.Equal(t, []string{catalog.RuleIf, catalog.RuleAnd, catalog.RuleOr, catalog.RuleThen}, added.RuleTypes)
}

func TestView_UnknownConditionType(t *testing.T) {
	e := newTestEngine()
	list := e.Rehydrate("p", []Fields{{RuleType: "If", ConditionType: "Maximimum Carry Over", Operator: "=", ConditionValue: "5"}})

	views := e.View(list)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].Control)
	assert.Empty(t, views[0].Operators)
	assert.Contains(t, views[0].Hint, "unknown condition type")
}

func TestView_OperatorNotAllowed(t *testing.T) {
	e := newTestEngine()
	list := e.Rehydrate("p", []Fields{
		{RuleType: "If", ConditionType: catalog.LeaveType, Operator: ">=", ConditionValue: "Annual"},
		{RuleType: "And", ConditionType: catalog.Country, Operator: "!=", ConditionValue: "Canada"},
	})

	views := e.View(list)

	require.Len(t, views, 2)
	assert.Equal(t, "operator >= is not allowed for Leave Type", views[0].Hint)
	assert.Empty(t, views[1].Hint)
}
