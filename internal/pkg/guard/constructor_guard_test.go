package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expected := errors.New("order not constructed")

		// When
		err := g.Validate(expected)

		// Then
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.ErrorIs(t, err, guard.ErrNotConstructed)
	})

	t.Run("guard_embedded_in_struct", func(t *testing.T) {
		type caller struct {
			name  string
			guard guard.ConstructorGuard
		}
		errCaller := errors.New("caller not constructed")

		built := caller{name: "agent", guard: guard.NewConstructorGuard()}
		declared := caller{name: "agent"}

		require.NoError(t, built.guard.Validate(errCaller))
		require.ErrorIs(t, declared.guard.Validate(errCaller), errCaller)
	})
}
