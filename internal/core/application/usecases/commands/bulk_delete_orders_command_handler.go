package commands

import (
	"context"
)

// BulkDeleteOrdersCommandHandler removes a list of orders in one statement.
// Manager only.
type BulkDeleteOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewBulkDeleteOrdersCommandHandler(uowFactory OrderUoWFactory) BulkDeleteOrdersCommandHandler {
	return BulkDeleteOrdersCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of orders actually removed.
func (h *BulkDeleteOrdersCommandHandler) Handle(ctx context.Context, cmd BulkDeleteOrdersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	caller := cmd.Caller()
	if err := caller.Authorize(caller.Role().CanBulkDelete(), "bulk delete orders"); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.OrderRepository().DeleteMany(ctx, cmd.IDs())
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return deleted, nil
}
