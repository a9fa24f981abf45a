// Package ports defines the contracts between the fulfillment core and its
// infrastructure: persistence of orders and identities, the transaction
// boundary, and the upstream commerce feed.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/period"
)

// DeleteCriteria selects the orders removed by a filtered bulk delete: one
// status and a creation window.
type DeleteCriteria struct {
	Status  order.Status
	Created period.Range
}

// OrderRepository defines the persistence contract for order aggregates.
// Every method runs inside the transaction of the unit of work that produced
// the repository.
type OrderRepository interface {
	// Add persists a new order. A duplicate reference is a validation error.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the current state of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with id, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	// Transitions use it so the status check and the write are serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByReference returns the order carrying reference, or an ObjectNotFoundError.
	GetByReference(ctx context.Context, reference string) (*order.Order, error)

	// Delete removes one order, or returns an ObjectNotFoundError.
	Delete(ctx context.Context, id kernel.UUID) error

	// DeleteMany removes the listed orders in one statement and returns how
	// many existed. Unknown ids are skipped.
	DeleteMany(ctx context.Context, ids []kernel.UUID) (int64, error)

	// DeleteMatching removes every order matching criteria in one statement.
	DeleteMatching(ctx context.Context, criteria DeleteCriteria) (int64, error)

	// ReleaseActor clears every stage attribution pointing at actor and
	// returns the number of orders touched. Orders themselves are kept.
	ReleaseActor(ctx context.Context, actor kernel.UUID) (int64, error)
}
