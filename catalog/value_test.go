package catalog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonMarshal(v any) ([]byte, error) { return json.Marshal(v) }

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want string
		unit Unit
	}{
		{"20", "20", UnitNone},
		{"20 days", "20 days", UnitDays},
		{"1 day", "1 day", UnitDays},
		{"7.5h", "7.5 hours", UnitHours},
		{" 2 Weeks ", "2 weeks", UnitWeeks},
		{"1.0 days", "1 day", UnitDays},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, err := ParseQuantity(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.unit, q.Unit)
			assert.Equal(t, tt.want, q.String())
		})
	}
}

func TestParseQuantity_Invalid(t *testing.T) {
	for _, in := range []string{"", "days", "twenty", "5 fortnights", "1-2"} {
		_, err := ParseQuantity(in)
		assert.Error(t, err, in)
	}
}

func TestQuantity_WithDefaultUnit(t *testing.T) {
	q, err := ParseQuantity("5")
	require.NoError(t, err)
	assert.Equal(t, "5 days", q.WithDefaultUnit(UnitDays).String())

	q, _ = ParseQuantity("5 hours")
	assert.Equal(t, "5 hours", q.WithDefaultUnit(UnitDays).String())
}

func TestCheckValue(t *testing.T) {
	c := Default()

	ok := []struct{ condition, value string }{
		{BaseEntitlement, "20"},
		{BaseEntitlement, "20 days"},
		{MaximumCarryOver, ""},
		{AssignDate, "2025-01-31"},
		{Paid, "ON"},
		{"Department", "anything at all"},
	}
	for _, tt := range ok {
		assert.NoError(t, c.Check(tt.condition, tt.value), "%s=%q", tt.condition, tt.value)
	}

	bad := []struct{ condition, value string }{
		{BaseEntitlement, "lots"},
		{BaseEntitlement, "-3 days"},
		{AssignDate, "31/01/2025"},
		{Paid, "YES"},
	}
	for _, tt := range bad {
		err := c.Check(tt.condition, tt.value)
		require.Error(t, err, "%s=%q", tt.condition, tt.value)
		assert.True(t, errors.Is(err, ErrInvalidValue))

		var ve *ValueError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, tt.condition, ve.ConditionType)
	}

	err := c.Check("Nope", "x")
	assert.True(t, errors.Is(err, ErrUnknownConditionType))
}

func TestQuantity_UnitLabel(t *testing.T) {
	one, err := ParseQuantity("1 weeks")
	require.NoError(t, err)
	assert.Equal(t, "week", one.UnitLabel())

	many, err := ParseQuantity("2.5d")
	require.NoError(t, err)
	assert.Equal(t, "days", many.UnitLabel())
}
