package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrPrepareOrderCommandIsNotConstructed = errors.New(
		"PrepareOrderCommand must be created via NewPrepareOrderCommand constructor",
	)
	ErrControlOrderCommandIsNotConstructed = errors.New(
		"ControlOrderCommand must be created via NewControlOrderCommand constructor",
	)
	ErrPackOrderCommandIsNotConstructed = errors.New(
		"PackOrderCommand must be created via NewPackOrderCommand constructor",
	)
)

// PrepareOrderCommand moves an order from Created to Prepared, crediting the
// caller as preparer. LineCount is optional.
type PrepareOrderCommand struct { //nolint:recvcheck //using for validation
	caller    identity.Caller
	orderID   kernel.UUID
	lineCount *int

	guard guard.ConstructorGuard
}

func NewPrepareOrderCommand(caller identity.Caller, orderID kernel.UUID, lineCount *int) (PrepareOrderCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate()); err != nil {
		return PrepareOrderCommand{}, err
	}
	cmd := PrepareOrderCommand{caller: caller, orderID: orderID, guard: guard.NewConstructorGuard()}
	if lineCount != nil {
		n := *lineCount
		cmd.lineCount = &n
	}
	return cmd, nil
}

func (c PrepareOrderCommand) Validate() error {
	return c.guard.Validate(ErrPrepareOrderCommandIsNotConstructed)
}

func (c PrepareOrderCommand) Caller() identity.Caller { return c.caller }
func (c PrepareOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c PrepareOrderCommand) LineCount() *int         { return c.lineCount }

// ControlOrderCommand moves an order from Prepared to Controlled.
type ControlOrderCommand struct { //nolint:recvcheck //using for validation
	caller  identity.Caller
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewControlOrderCommand(caller identity.Caller, orderID kernel.UUID) (ControlOrderCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate()); err != nil {
		return ControlOrderCommand{}, err
	}
	return ControlOrderCommand{caller: caller, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ControlOrderCommand) Validate() error {
	return c.guard.Validate(ErrControlOrderCommandIsNotConstructed)
}

func (c ControlOrderCommand) Caller() identity.Caller { return c.caller }
func (c ControlOrderCommand) OrderID() kernel.UUID    { return c.orderID }

// PackOrderCommand moves an order from Controlled to Packed.
type PackOrderCommand struct { //nolint:recvcheck //using for validation
	caller  identity.Caller
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewPackOrderCommand(caller identity.Caller, orderID kernel.UUID) (PackOrderCommand, error) {
	if err := errors.Join(caller.Validate(), orderID.Validate()); err != nil {
		return PackOrderCommand{}, err
	}
	return PackOrderCommand{caller: caller, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c PackOrderCommand) Validate() error {
	return c.guard.Validate(ErrPackOrderCommandIsNotConstructed)
}

func (c PackOrderCommand) Caller() identity.Caller { return c.caller }
func (c PackOrderCommand) OrderID() kernel.UUID    { return c.orderID }
