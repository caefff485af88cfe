package catalog

// Condition types the rule engine and the summary generator look up by name.
const (
	Country                = "Country"
	Office                 = "Office"
	LeaveType              = "Leave Type"
	BaseEntitlement        = "Base entitlement"
	AssignDate             = "Assign Date"
	AccrualFrequency       = "Accrual Frequency"
	Prorated               = "Prorated"
	CarryOverAllowed       = "Carry Over Allowed"
	MaximumCarryOver       = "Maximum Carry Over"
	MinimumDurationAllowed = "Minimum Duration Allowed"
	Paid                   = "Paid"
)

// Toggle values of the ON/OFF dropdowns.
const (
	On  = "ON"
	Off = "OFF"
)

// Rule-type labels of the default catalog.
const (
	RuleIf   = "If"
	RuleAnd  = "And"
	RuleOr   = "Or"
	RuleThen = "Then"
)
