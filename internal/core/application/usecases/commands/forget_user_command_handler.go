package commands

import (
	"context"
)

// ForgetUserCommandHandler applies the attribution policy for removed
// identities: in one transaction every creator, preparer, controller and
// packer reference to the identity is cleared, then the directory entry is
// deleted. Manager only.
type ForgetUserCommandHandler struct {
	uowFactory UoWFactory
}

func NewForgetUserCommandHandler(uowFactory UoWFactory) ForgetUserCommandHandler {
	return ForgetUserCommandHandler{uowFactory: uowFactory}
}

// Handle returns how many orders lost an attribution.
func (h *ForgetUserCommandHandler) Handle(ctx context.Context, cmd ForgetUserCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}
	caller := cmd.Caller()
	if err := caller.Authorize(caller.Role().CanManageUsers(), "remove user"); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	if _, err := users.Get(ctx, cmd.UserID()); err != nil {
		return 0, err
	}
	released, err := uow.OrderRepository().ReleaseActor(ctx, cmd.UserID())
	if err != nil {
		return 0, err
	}
	if err = users.Delete(ctx, cmd.UserID()); err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return released, nil
}
