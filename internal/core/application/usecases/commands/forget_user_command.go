package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrForgetUserCommandIsNotConstructed = errors.New(
	"ForgetUserCommand must be created via NewForgetUserCommand constructor",
)

// ForgetUserCommand removes an identity from the directory. Orders it handled
// are kept and lose the attribution instead.
type ForgetUserCommand struct { //nolint:recvcheck //using for validation
	caller identity.Caller
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewForgetUserCommand(caller identity.Caller, userID kernel.UUID) (ForgetUserCommand, error) {
	if err := errors.Join(caller.Validate(), userID.Validate()); err != nil {
		return ForgetUserCommand{}, err
	}
	if caller.ID().IsEqual(userID) {
		return ForgetUserCommand{}, errs.NewValueIsInvalidErrorWithCause("userId",
			errors.New("a caller cannot remove its own identity"))
	}
	return ForgetUserCommand{caller: caller, userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (c ForgetUserCommand) Validate() error {
	return c.guard.Validate(ErrForgetUserCommandIsNotConstructed)
}

func (c ForgetUserCommand) Caller() identity.Caller { return c.caller }
func (c ForgetUserCommand) UserID() kernel.UUID     { return c.userID }
