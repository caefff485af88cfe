package policy

import (
	"errors"
	"fmt"
)

var (
	// ErrPolicyNotFound is returned when a referenced saved policy doesn't exist.
	ErrPolicyNotFound = errors.New("policy not found")

	// ErrMalformedSlot is returned when a persisted slot cannot be decoded.
	ErrMalformedSlot = errors.New("malformed saved policy data")
)

// MalformedSlotError carries the slot key and the decode failure.
type MalformedSlotError struct {
	Key string
	Err error
}

func (e *MalformedSlotError) Error() string {
	return fmt.Sprintf("slot %q: %v", e.Key, e.Err)
}

func (e *MalformedSlotError) Unwrap() []error {
	return []error{ErrMalformedSlot, e.Err}
}
