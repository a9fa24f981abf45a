package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand adds an identity issued by the identity provider to the
// local directory so it can be listed and appear in workload statistics.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	caller identity.Caller
	user   *identity.User

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(
	caller identity.Caller,
	userID kernel.UUID,
	username, firstName, lastName, role string,
) (RegisterUserCommand, error) {
	if err := caller.Validate(); err != nil {
		return RegisterUserCommand{}, err
	}
	parsedRole, err := identity.ParseRole(role)
	if err != nil {
		return RegisterUserCommand{}, err
	}
	user, err := identity.NewUser(userID, username, firstName, lastName, parsedRole)
	if err != nil {
		return RegisterUserCommand{}, err
	}
	return RegisterUserCommand{caller: caller, user: user, guard: guard.NewConstructorGuard()}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) Caller() identity.Caller { return c.caller }
func (c RegisterUserCommand) User() *identity.User    { return c.user }
