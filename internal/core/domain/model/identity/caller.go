package identity

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCallerIsNotConstructed = errs.NewValueIsRequiredError("caller must be created via NewCaller")

// Caller is the identity performing the current request, as vouched for by the
// identity provider. A Caller is read once per request and never mutated.
type Caller struct {
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

func NewCaller(id kernel.UUID, role Role) (Caller, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Caller{}, err
	}
	return Caller{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (c Caller) ID() kernel.UUID {
	return c.id
}

func (c Caller) Role() Role {
	return c.role
}

func (c Caller) Validate() error {
	return c.guard.Validate(ErrCallerIsNotConstructed)
}

// CanModify reports whether the caller may edit or delete an order created by creator.
// A nil creator (the author's identity was removed) is only editable by privileged roles.
func (c Caller) CanModify(creator *kernel.UUID) bool {
	return c.role.CanEditAny() || kernel.SameActor(creator, c.id)
}

// Authorize returns a PermissionDeniedError naming action unless allowed holds.
func (c Caller) Authorize(allowed bool, action string) error {
	if !allowed {
		return errs.NewPermissionDeniedError(action)
	}
	return nil
}
