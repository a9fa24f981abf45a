package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderFields are the raw fields of an administrative edit. Nil fields
// are left untouched.
type UpdateOrderFields struct {
	Reference  *string
	CartNumber *string
	Status     *string
	LineCount  *int
}

// UpdateOrderCommand is an administrative correction of an order. Only the
// cart number and line count can actually change. Reference and status are
// accepted when they repeat the stored values, which lets clients send back a
// whole order they previously read.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	caller  identity.Caller
	orderID kernel.UUID
	changes order.Changes

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(caller identity.Caller, orderID kernel.UUID, fields UpdateOrderFields) (UpdateOrderCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate()); err != nil {
		return UpdateOrderCommand{}, err
	}

	changes := order.Changes{
		Reference:  fields.Reference,
		CartNumber: fields.CartNumber,
		LineCount:  fields.LineCount,
	}
	if fields.Status != nil {
		status, err := order.ParseStatus(*fields.Status)
		if err != nil {
			return UpdateOrderCommand{}, err
		}
		changes.Status = &status
	}

	return UpdateOrderCommand{
		caller:  caller,
		orderID: orderID,
		changes: changes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) Caller() identity.Caller { return c.caller }
func (c UpdateOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c UpdateOrderCommand) Changes() order.Changes  { return c.changes }
