package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/pkg/guard"
)

var ErrListUsersQueryIsNotConstructed = errors.New("ListUsersQuery must be created via NewListUsersQuery")

type ListUsersQuery struct {
	caller identity.Caller
	guard  guard.ConstructorGuard
}

func NewListUsersQuery(caller identity.Caller) (ListUsersQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListUsersQuery{}, err
	}
	return ListUsersQuery{caller: caller, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}

// UserView is one identity directory entry.
type UserView struct {
	ID          string
	Username    string
	FirstName   string
	LastName    string
	DisplayName string
	Role        identity.Role
}
