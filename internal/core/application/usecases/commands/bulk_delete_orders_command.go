package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrBulkDeleteOrdersCommandIsNotConstructed = errors.New(
	"BulkDeleteOrdersCommand must be created via NewBulkDeleteOrdersCommand constructor",
)

// MaxBulkDeleteIDs bounds the id list of one bulk delete request.
const MaxBulkDeleteIDs = 1000

// BulkDeleteOrdersCommand removes a list of orders by id. Duplicated ids are
// collapsed.
type BulkDeleteOrdersCommand struct { //nolint:recvcheck //using for validation
	caller identity.Caller
	ids    []kernel.UUID

	guard guard.ConstructorGuard
}

func NewBulkDeleteOrdersCommand(caller identity.Caller, ids []kernel.UUID) (BulkDeleteOrdersCommand, error) {
	if err := caller.Validate(); err != nil {
		return BulkDeleteOrdersCommand{}, err
	}
	if len(ids) == 0 {
		return BulkDeleteOrdersCommand{}, errs.NewValueIsRequiredError("ids")
	}
	if len(ids) > MaxBulkDeleteIDs {
		return BulkDeleteOrdersCommand{}, errs.NewValueIsOutOfRangeError("ids", len(ids), 1, MaxBulkDeleteIDs)
	}

	seen := make(map[kernel.UUID]struct{}, len(ids))
	unique := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return BulkDeleteOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("ids", err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return BulkDeleteOrdersCommand{caller: caller, ids: unique, guard: guard.NewConstructorGuard()}, nil
}

func (c BulkDeleteOrdersCommand) Validate() error {
	return c.guard.Validate(ErrBulkDeleteOrdersCommandIsNotConstructed)
}

func (c BulkDeleteOrdersCommand) Caller() identity.Caller { return c.caller }
func (c BulkDeleteOrdersCommand) IDs() []kernel.UUID      { return c.ids }
