package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Snapshot is the flat state of an Order, used to persist it and to rebuild it.
type Snapshot struct {
	ID         kernel.UUID
	Reference  string
	CartNumber string
	LineCount  *int
	Status     Status

	Creator    *kernel.UUID
	Preparer   *kernel.UUID
	Controller *kernel.UUID
	Packer     *kernel.UUID

	CreatedAt    time.Time
	PreparedAt   *time.Time
	ControlledAt *time.Time
	PackedAt     *time.Time
	CompletedAt  *time.Time
}

// Snapshot copies the current state of the order.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:           o.id,
		Reference:    o.reference,
		CartNumber:   o.cartNumber,
		LineCount:    copyInt(o.lineCount),
		Status:       o.status,
		Creator:      copyUUID(o.creator),
		Preparer:     copyUUID(o.preparer),
		Controller:   copyUUID(o.controller),
		Packer:       copyUUID(o.packer),
		CreatedAt:    o.createdAt,
		PreparedAt:   copyTime(o.preparedAt),
		ControlledAt: copyTime(o.controlledAt),
		PackedAt:     copyTime(o.packedAt),
		CompletedAt:  copyTime(o.completedAt),
	}
}

// RestoreOrder rebuilds an order read from the store. The stage fields must be
// consistent with the status. Actors may be missing on any stage because actor
// references are soft.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{isConstructed: true}
	if err := errors.Join(
		o.setID(s.ID),
		o.setReference(s.Reference),
		o.setCartNumber(s.CartNumber),
		s.Status.Validate(),
		validateLineCount(s.LineCount),
		timeRequired("createdAt", s.CreatedAt),
	); err != nil {
		return nil, err
	}
	if err := validateStages(s); err != nil {
		return nil, err
	}

	o.lineCount = copyInt(s.LineCount)
	o.status = s.Status
	o.creator = copyUUID(s.Creator)
	o.preparer = copyUUID(s.Preparer)
	o.controller = copyUUID(s.Controller)
	o.packer = copyUUID(s.Packer)
	o.createdAt = s.CreatedAt
	o.preparedAt = copyTime(s.PreparedAt)
	o.controlledAt = copyTime(s.ControlledAt)
	o.packedAt = copyTime(s.PackedAt)
	o.completedAt = copyTime(s.CompletedAt)
	return o, nil
}

func validateStages(s Snapshot) error {
	stages := []struct {
		stage Status
		name  string
		at    *time.Time
		actor *kernel.UUID
	}{
		{Prepared, "preparedAt", s.PreparedAt, s.Preparer},
		{Controlled, "controlledAt", s.ControlledAt, s.Controller},
		{Packed, "packedAt", s.PackedAt, s.Packer},
	}

	previous := s.CreatedAt
	for _, st := range stages {
		reached := s.Status.Reached(st.stage)
		switch {
		case reached && st.at == nil:
			return errs.NewValueIsRequiredErrorWithCause(st.name,
				fmt.Errorf("status %s requires %s", s.Status, st.name))
		case !reached && (st.at != nil || st.actor != nil):
			return errs.NewValueIsInvalidErrorWithCause(st.name,
				fmt.Errorf("status %s does not allow %s stage fields", s.Status, st.stage))
		case reached && st.at.Before(previous):
			return errs.NewValueIsInvalidErrorWithCause(st.name,
				fmt.Errorf("%s precedes the previous stage", st.name))
		}
		if st.at != nil {
			previous = *st.at
		}
	}

	if s.Status == Packed {
		if s.CompletedAt == nil || !s.CompletedAt.Equal(*s.PackedAt) {
			return errs.NewValueIsInvalidErrorWithCause("completedAt", errors.New("completedAt must equal packedAt"))
		}
	} else if s.CompletedAt != nil {
		return errs.NewValueIsInvalidErrorWithCause("completedAt",
			fmt.Errorf("status %s does not allow completedAt", s.Status))
	}
	return nil
}
