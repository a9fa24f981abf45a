package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrBulkDeleteOrdersByFilterCommandIsNotConstructed = errors.New(
	"BulkDeleteOrdersByFilterCommand must be created via NewBulkDeleteOrdersByFilterCommand constructor",
)

// BulkDeleteOrdersByFilterCommand removes every order with a given status
// created inside [StartDate, EndDate). All three values are mandatory and are
// never replaced by defaults.
type BulkDeleteOrdersByFilterCommand struct { //nolint:recvcheck //using for validation
	caller    identity.Caller
	status    order.Status
	startDate string
	endDate   string

	guard guard.ConstructorGuard
}

func NewBulkDeleteOrdersByFilterCommand(
	caller identity.Caller,
	status, startDate, endDate string,
) (BulkDeleteOrdersByFilterCommand, error) {
	if err := caller.Validate(); err != nil {
		return BulkDeleteOrdersByFilterCommand{}, err
	}
	if strings.TrimSpace(status) == "" {
		return BulkDeleteOrdersByFilterCommand{}, errs.NewValueIsRequiredError("status")
	}
	parsed, err := order.ParseStatus(status)
	if err != nil {
		return BulkDeleteOrdersByFilterCommand{}, err
	}

	return BulkDeleteOrdersByFilterCommand{
		caller:    caller,
		status:    parsed,
		startDate: strings.TrimSpace(startDate),
		endDate:   strings.TrimSpace(endDate),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c BulkDeleteOrdersByFilterCommand) Validate() error {
	return c.guard.Validate(ErrBulkDeleteOrdersByFilterCommandIsNotConstructed)
}

func (c BulkDeleteOrdersByFilterCommand) Caller() identity.Caller { return c.caller }
func (c BulkDeleteOrdersByFilterCommand) Status() order.Status    { return c.status }
func (c BulkDeleteOrdersByFilterCommand) StartDate() string       { return c.startDate }
func (c BulkDeleteOrdersByFilterCommand) EndDate() string         { return c.endDate }
