package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownConditionType is returned when a condition type is not in the catalog.
	ErrUnknownConditionType = errors.New("unknown condition type")

	// ErrInvalidValue is returned when a value does not fit its input kind.
	ErrInvalidValue = errors.New("invalid condition value")
)

// ValueError describes why a value does not fit its condition type.
type ValueError struct {
	ConditionType string
	Value         string
	Reason        string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s: %q %s", e.ConditionType, e.Value, e.Reason)
}

func (e *ValueError) Unwrap() error {
	return ErrInvalidValue
}
