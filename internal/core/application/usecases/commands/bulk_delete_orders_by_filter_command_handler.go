package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/core/ports"
)

// BulkDeleteOrdersByFilterCommandHandler removes orders matching a status and
// a creation window in one statement. Manager only. The dates are resolved
// strictly in the service time zone: a missing or malformed date fails the
// command instead of widening the deletion.
type BulkDeleteOrdersByFilterCommandHandler struct {
	uowFactory OrderUoWFactory
	calendar   period.Calendar
}

func NewBulkDeleteOrdersByFilterCommandHandler(
	uowFactory OrderUoWFactory,
	calendar period.Calendar,
) BulkDeleteOrdersByFilterCommandHandler {
	return BulkDeleteOrdersByFilterCommandHandler{uowFactory: uowFactory, calendar: calendar}
}

func (h *BulkDeleteOrdersByFilterCommandHandler) Handle(
	ctx context.Context,
	cmd BulkDeleteOrdersByFilterCommand,
) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	caller := cmd.Caller()
	if err := caller.Authorize(caller.Role().CanBulkDelete(), "bulk delete orders"); err != nil {
		return 0, err
	}
	window, err := h.calendar.ResolveStrict(cmd.StartDate(), cmd.EndDate())
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.OrderRepository().DeleteMatching(ctx, ports.DeleteCriteria{
		Status:  cmd.Status(),
		Created: window,
	})
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return deleted, nil
}
