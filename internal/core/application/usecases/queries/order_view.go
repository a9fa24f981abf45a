// Package queries contains the read side: order listings and stage queues,
// single order lookups, the manager dashboard, the upstream merge view and
// the identity directory listing.
//
// Handlers read the store directly through GORM and never load aggregates.
// Every order view carries its stage durations.
package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

const ordersTable = "orders"

// OrderView is the read model of one order.
type OrderView struct {
	ID         kernel.UUID
	Reference  string
	CartNumber string
	LineCount  *int
	Status     order.Status

	CreatorID    *kernel.UUID
	PreparerID   *kernel.UUID
	ControllerID *kernel.UUID
	PackerID     *kernel.UUID

	CreatedAt    time.Time
	PreparedAt   *time.Time
	ControlledAt *time.Time
	PackedAt     *time.Time
	CompletedAt  *time.Time

	Durations order.StageDurations
}

type orderRow struct {
	ID           uuid.UUID
	Reference    string
	CartNumber   string
	LineCount    *int
	Status       string
	CreatorID    *uuid.UUID
	PreparerID   *uuid.UUID
	ControllerID *uuid.UUID
	PackerID     *uuid.UUID
	CreatedAt    time.Time
	PreparedAt   *time.Time
	ControlledAt *time.Time
	PackedAt     *time.Time
	CompletedAt  *time.Time
}

func (r orderRow) view() (OrderView, error) {
	id, err := kernel.UUIDFromGoogle(r.ID)
	if err != nil {
		return OrderView{}, err
	}
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderView{}, err
	}
	return OrderView{
		ID:           id,
		Reference:    r.Reference,
		CartNumber:   r.CartNumber,
		LineCount:    r.LineCount,
		Status:       status,
		CreatorID:    actor(r.CreatorID),
		PreparerID:   actor(r.PreparerID),
		ControllerID: actor(r.ControllerID),
		PackerID:     actor(r.PackerID),
		CreatedAt:    r.CreatedAt,
		PreparedAt:   r.PreparedAt,
		ControlledAt: r.ControlledAt,
		PackedAt:     r.PackedAt,
		CompletedAt:  r.CompletedAt,
		Durations:    order.DurationsOf(r.CreatedAt, r.PreparedAt, r.ControlledAt, r.PackedAt),
	}, nil
}

func views(rows []orderRow) ([]OrderView, error) {
	out := make([]OrderView, 0, len(rows))
	for _, r := range rows {
		v, err := r.view()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// actor drops identifiers that cannot be valid references.
func actor(id *uuid.UUID) *kernel.UUID {
	if id == nil {
		return nil
	}
	parsed, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil
	}
	return &parsed
}
