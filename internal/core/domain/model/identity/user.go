package identity

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUserIsNotConstructed = errs.NewValueIsRequiredError("user must be created via NewUser or RestoreUser")

const maxUsernameLength = 150

// User is a directory entry mirroring an identity known to the provider.
type User struct {
	id        kernel.UUID
	username  string
	firstName string
	lastName  string
	role      Role
	guard     guard.ConstructorGuard
}

func NewUser(id kernel.UUID, username, firstName, lastName string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if err := errors.Join(id.Validate(), validateUsername(username), role.Validate()); err != nil {
		return nil, err
	}
	return &User{
		id:        id,
		username:  username,
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		role:      role,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreUser rebuilds a User read from the store.
func RestoreUser(id kernel.UUID, username, firstName, lastName string, role Role) (*User, error) {
	return NewUser(id, username, firstName, lastName, role)
}

func (u *User) ID() kernel.UUID   { return u.id }
func (u *User) Username() string  { return u.username }
func (u *User) FirstName() string { return u.firstName }
func (u *User) LastName() string  { return u.lastName }
func (u *User) Role() Role        { return u.role }

// DisplayName is "First Last" when both names are known, the username otherwise.
func (u *User) DisplayName() string {
	full := strings.TrimSpace(u.firstName + " " + u.lastName)
	if full == "" {
		return u.username
	}
	return full
}

func (u *User) Validate() error {
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func validateUsername(username string) error {
	if username == "" {
		return errs.NewValueIsRequiredError("username")
	}
	if len(username) > maxUsernameLength {
		return errs.NewValueIsOutOfRangeError("username length", len(username), 1, maxUsernameLength)
	}
	return nil
}
