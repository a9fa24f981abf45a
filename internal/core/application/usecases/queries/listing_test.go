package queries

import (
	"testing"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name           string
		number, size   int
		expectedNumber int
		expectedSize   int
	}{
		{"defaults", 0, 0, 1, DefaultPageSize},
		{"negative", -3, -1, 1, DefaultPageSize},
		{"kept", 4, 20, 4, 20},
		{"capped", 1, 10_000, 1, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.number, tt.size)
			assert.Equal(t, tt.expectedNumber, p.Number)
			assert.Equal(t, tt.expectedSize, p.Size)
		})
	}
	assert.Equal(t, 40, NewPage(3, 20).offset())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 50))
	assert.Equal(t, 1, totalPages(50, 50))
	assert.Equal(t, 2, totalPages(51, 50))
	assert.Equal(t, 0, totalPages(10, 0))
}

func TestParseOrdering(t *testing.T) {
	o, ok := ParseOrdering("")
	assert.True(t, ok)
	assert.Equal(t, Ordering{Column: "created_at", Desc: true}, o)

	o, ok = ParseOrdering("reference")
	assert.True(t, ok)
	assert.Equal(t, Ordering{Column: "reference"}, o)

	o, ok = ParseOrdering("-packed_at")
	assert.True(t, ok)
	assert.Equal(t, Ordering{Column: "packed_at", Desc: true}, o)

	o, ok = ParseOrdering("-id; DROP TABLE orders")
	assert.False(t, ok)
	assert.Equal(t, Ordering{Column: "created_at", Desc: true}, o)
}

func TestUpstreamStateCode(t *testing.T) {
	assert.Equal(t, "2", UpstreamStateCode(order.Created, "9"))
	assert.Equal(t, "4", UpstreamStateCode(order.Prepared, "9"))
	assert.Equal(t, "5", UpstreamStateCode(order.Controlled, "9"))
	assert.Equal(t, "6", UpstreamStateCode(order.Packed, "9"))
	assert.Equal(t, "9", UpstreamStateCode(order.Unknown, "9"))
}

func TestQueryConstructors(t *testing.T) {
	caller, err := identity.NewCaller(kernel.NewUUID(), identity.Agent)
	require.NoError(t, err)

	t.Run("unknown stage", func(t *testing.T) {
		_, err := NewStageQueueQuery(caller, "shipping", paramsToday(), false, Page{})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("stage is case insensitive", func(t *testing.T) {
		q, err := NewStageQueueQuery(caller, "Packing", paramsToday(), false, Page{})
		require.NoError(t, err)
		assert.Equal(t, PackingStage, q.Stage())
	})

	t.Run("malformed creator filter", func(t *testing.T) {
		_, err := NewListOrdersQuery(caller, OrderFilter{CreatorID: "nope"}, Page{})
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("empty reference", func(t *testing.T) {
		_, err := NewGetOrderByReferenceQuery(caller, "  ")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero caller", func(t *testing.T) {
		_, err := NewListUsersQuery(identity.Caller{})
		assert.Error(t, err)
	})

	t.Run("zero value queries are rejected", func(t *testing.T) {
		assert.ErrorIs(t, ListOrdersQuery{}.Validate(), ErrListOrdersQueryIsNotConstructed)
		assert.ErrorIs(t, DashboardQuery{}.Validate(), ErrDashboardQueryIsNotConstructed)
	})
}

func paramsToday() period.Params {
	return period.Params{Date: period.Today}
}
