package workspace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/warp/leave-rules/policy"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

var (
	// ErrInvalidPolicy is returned by a save while some row lacks an operator
	// or a value.
	ErrInvalidPolicy = errors.New("policy has incomplete rules")

	// ErrPresetNotFound is returned when a preset id is unknown.
	ErrPresetNotFound = errors.New("preset not found")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// IncompletePolicyError lists the rows that block a save.
type IncompletePolicyError struct {
	RuleIDs []string
}

func (e *IncompletePolicyError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidPolicy, strings.Join(e.RuleIDs, ", "))
}

func (e *IncompletePolicyError) Unwrap() error {
	return ErrInvalidPolicy
}

// =============================================================================
// HELPERS
// =============================================================================

// IsNotFound reports whether err names an unknown policy or preset.
func IsNotFound(err error) bool {
	return errors.Is(err, policy.ErrPolicyNotFound) || errors.Is(err, ErrPresetNotFound)
}

// IsClientError reports whether err was caused by the caller rather than
// by storage.
func IsClientError(err error) bool {
	return IsNotFound(err) || errors.Is(err, ErrInvalidPolicy)
}
