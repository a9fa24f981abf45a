package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new order on behalf of the caller, who
// becomes its creator.
//
// Example:
//
//	cmd, err := commands.NewCreateOrderCommand(caller, "CMD-0001", "C-12")
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	caller     identity.Caller
	reference  string
	cartNumber string

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(caller identity.Caller, reference, cartNumber string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		caller:     caller,
		reference:  strings.TrimSpace(reference),
		cartNumber: strings.TrimSpace(cartNumber),
		guard:      guard.NewConstructorGuard(),
	}

	var missing []error
	if cmd.reference == "" {
		missing = append(missing, errs.NewValueIsRequiredError("reference"))
	}
	if cmd.cartNumber == "" {
		missing = append(missing, errs.NewValueIsRequiredError("cartNumber"))
	}
	if err := errors.Join(append(missing, caller.Validate())...); err != nil {
		return CreateOrderCommand{}, err
	}
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Caller() identity.Caller { return c.caller }
func (c CreateOrderCommand) Reference() string       { return c.reference }
func (c CreateOrderCommand) CartNumber() string      { return c.cartNumber }
