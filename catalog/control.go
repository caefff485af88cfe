package catalog

// InputControl tells the rendering layer which widget to draw for a value.
type InputControl struct {
	Kind        InputKind `json:"kind"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

var controls = map[InputKind]func(ConditionSpec) InputControl{
	KindNumber: func(ConditionSpec) InputControl {
		return InputControl{Kind: KindNumber, Placeholder: "Enter number"}
	},
	KindDate: func(ConditionSpec) InputControl {
		return InputControl{Kind: KindDate}
	},
	KindDropdown: func(s ConditionSpec) InputControl {
		return InputControl{Kind: KindDropdown, Placeholder: "Select value", Options: s.Values}
	},
	KindFreeText: func(ConditionSpec) InputControl {
		return InputControl{Kind: KindFreeText, Placeholder: "Enter value"}
	},
}

// ControlFor returns the input control for a spec.
func ControlFor(spec ConditionSpec) InputControl {
	build, ok := controls[spec.InputKind]
	if !ok {
		build = controls[KindFreeText]
	}
	return build(spec)
}

// Control resolves conditionType and returns its input control. ok is false
// for unknown types; such rows get no value input at all.
func (c *Catalog) Control(conditionType string) (InputControl, bool) {
	spec, ok := c.Resolve(conditionType)
	if !ok {
		return InputControl{}, false
	}
	return ControlFor(spec), true
}
