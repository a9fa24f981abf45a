package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// transitionRunner applies one lifecycle step inside a transaction. The order
// row is locked before its status is checked, so two concurrent callers
// cannot both pass the same precondition.
type transitionRunner struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

func (r transitionRunner) run(
	ctx context.Context,
	orderID kernel.UUID,
	step func(o *order.Order, now time.Time) error,
) (*order.Order, error) {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err = step(o, r.clock.Now()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// PrepareOrderCommandHandler credits the caller with preparing an order.
type PrepareOrderCommandHandler struct {
	runner transitionRunner
}

func NewPrepareOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) PrepareOrderCommandHandler {
	return PrepareOrderCommandHandler{runner: transitionRunner{uowFactory: uowFactory, clock: clock}}
}

func (h *PrepareOrderCommandHandler) Handle(ctx context.Context, cmd PrepareOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.runner.run(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.Prepare(cmd.Caller().ID(), cmd.LineCount(), now)
	})
}

// ControlOrderCommandHandler credits the caller with controlling an order.
type ControlOrderCommandHandler struct {
	runner transitionRunner
}

func NewControlOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) ControlOrderCommandHandler {
	return ControlOrderCommandHandler{runner: transitionRunner{uowFactory: uowFactory, clock: clock}}
}

func (h *ControlOrderCommandHandler) Handle(ctx context.Context, cmd ControlOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.runner.run(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.Control(cmd.Caller().ID(), now)
	})
}

// PackOrderCommandHandler credits the caller with packing an order, which
// completes it.
type PackOrderCommandHandler struct {
	runner transitionRunner
}

func NewPackOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) PackOrderCommandHandler {
	return PackOrderCommandHandler{runner: transitionRunner{uowFactory: uowFactory, clock: clock}}
}

func (h *PackOrderCommandHandler) Handle(ctx context.Context, cmd PackOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.runner.run(ctx, cmd.OrderID(), func(o *order.Order, now time.Time) error {
		return o.Pack(cmd.Caller().ID(), now)
	})
}
