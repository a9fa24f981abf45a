package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/identity"
)

// RegisterUserCommandHandler stores directory entries. Manager only.
type RegisterUserCommandHandler struct {
	uowFactory UoWFactory
}

func NewRegisterUserCommandHandler(uowFactory UoWFactory) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{uowFactory: uowFactory}
}

func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*identity.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	caller := cmd.Caller()
	if err := caller.Authorize(caller.Role().CanManageUsers(), "register user"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.UserRepository().Add(ctx, cmd.User()); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return cmd.User(), nil
}
