package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreOrder(t *testing.T) {
	t.Run("round trips a packed order", func(t *testing.T) {
		original := newPackedOrder(t)

		restored, err := order.RestoreOrder(original.Snapshot())

		require.NoError(t, err)
		assert.True(t, restored.IsEqual(original))
		assert.Equal(t, original.Snapshot(), restored.Snapshot())
	})

	t.Run("tolerates removed actors", func(t *testing.T) {
		s := newPackedOrder(t).Snapshot()
		s.Creator = nil
		s.Preparer = nil

		restored, err := order.RestoreOrder(s)

		require.NoError(t, err)
		assert.Nil(t, restored.Creator())
		assert.Nil(t, restored.Preparer())
		assert.NotNil(t, restored.PreparedAt())
	})

	t.Run("rejects stage fields ahead of status", func(t *testing.T) {
		s := newCreatedOrder(t, kernel.NewUUID()).Snapshot()
		at := t0.Add(time.Minute)
		s.PackedAt = &at

		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects missing timestamp for reached stage", func(t *testing.T) {
		s := newPackedOrder(t).Snapshot()
		s.ControlledAt = nil

		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects out of order timestamps", func(t *testing.T) {
		s := newPackedOrder(t).Snapshot()
		early := s.CreatedAt.Add(-time.Minute)
		s.PreparedAt = &early

		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects completedAt differing from packedAt", func(t *testing.T) {
		s := newPackedOrder(t).Snapshot()
		other := s.PackedAt.Add(time.Second)
		s.CompletedAt = &other

		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects reserved status", func(t *testing.T) {
		s := newCreatedOrder(t, kernel.NewUUID()).Snapshot()
		s.Status = order.Completed

		_, err := order.RestoreOrder(s)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
