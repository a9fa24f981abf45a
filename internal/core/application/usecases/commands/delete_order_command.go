package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand removes a single order.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	caller  identity.Caller
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(caller identity.Caller, orderID kernel.UUID) (DeleteOrderCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate()); err != nil {
		return DeleteOrderCommand{}, err
	}
	return DeleteOrderCommand{caller: caller, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) Caller() identity.Caller { return c.caller }
func (c DeleteOrderCommand) OrderID() kernel.UUID    { return c.orderID }
