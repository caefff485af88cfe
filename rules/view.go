package rules

import (
	"github.com/warp/leave-rules/catalog"
)

// RowView is everything the rendering layer needs to draw one rule row.
type RowView struct {
	Rule                  Rule                  `json:"rule"`
	Position              int                   `json:"position"`
	Deletable             bool                  `json:"deletable"`
	ConditionTypeEditable bool                  `json:"conditionTypeEditable"`
	RuleTypes             []string              `json:"ruleTypes"`
	ConditionTypes        []string              `json:"conditionTypes"`
	Operators             []string              `json:"operators"`
	Control               *catalog.InputControl `json:"control,omitempty"`
	Complete              bool                  `json:"complete"`
	Hint                  string                `json:"hint,omitempty"`
}

// View builds the row views of a list. Rows whose condition type is not in
// the catalog get no operators and no control.
func (e *Engine) View(list []Rule) []RowView {
	ruleTypes := e.catalog.RuleTypes()

	views := make([]RowView, len(list))
	for i, r := range list {
		v := RowView{
			Rule:                  r,
			Position:              i + 1,
			Deletable:             !r.IsDefault,
			ConditionTypeEditable: !r.IsDefault,
			RuleTypes:             ruleTypes,
			ConditionTypes:        e.SelectableConditionTypes(list, r.ID),
			Operators:             []string{},
			Complete:              r.IsComplete(),
		}
		if spec, ok := e.catalog.Resolve(r.ConditionType); ok {
			ctl := catalog.ControlFor(spec)
			v.Control = &ctl
			if spec.Operators != nil {
				v.Operators = spec.Operators
			}
			if r.Operator != "" && !spec.AllowsOperator(r.Operator) {
				v.Hint = "operator " + r.Operator + " is not allowed for " + spec.Name
			} else if err := catalog.CheckValue(spec, r.ConditionValue); err != nil {
				v.Hint = err.Error()
			}
		} else {
			v.Hint = "unknown condition type " + r.ConditionType
		}
		views[i] = v
	}
	return views
}
