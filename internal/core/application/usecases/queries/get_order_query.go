package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery or NewGetOrderByReferenceQuery",
)

// GetOrderQuery fetches one order by id or by reference.
type GetOrderQuery struct {
	caller    identity.Caller
	id        *kernel.UUID
	reference string
	guard     guard.ConstructorGuard
}

func NewGetOrderQuery(caller identity.Caller, id kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(caller.Validate(), id.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{caller: caller, id: &id, guard: guard.NewConstructorGuard()}, nil
}

func NewGetOrderByReferenceQuery(caller identity.Caller, reference string) (GetOrderQuery, error) {
	if err := caller.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("reference")
	}
	return GetOrderQuery{caller: caller, reference: reference, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}
