package commands

import (
	"context"
)

// DeleteOrderCommandHandler removes one order. Managers and super agents may
// delete any order, agents only the orders they created.
type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = cmd.Caller().Authorize(cmd.Caller().CanModify(o.Creator()), "delete order"); err != nil {
		return err
	}
	if err = repo.Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
