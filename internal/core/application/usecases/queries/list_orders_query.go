package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery")

// OrderFilter is the raw filter of an order listing. Status and Ordering are
// forgiving: unknown values are ignored with a warning.
type OrderFilter struct {
	Period      period.Params
	Status      string
	CreatorID   string
	CreatorOnly bool
	Ordering    string
}

// ListOrdersQuery lists orders visible to the caller.
//
// Example:
//
//	query, err := NewListOrdersQuery(caller, OrderFilter{
//	    Period:   period.Params{Date: period.Week},
//	    Status:   "PREPARED",
//	    Ordering: "-prepared_at",
//	}, NewPage(1, 50))
//	page, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	caller  identity.Caller
	filter  OrderFilter
	creator *kernel.UUID
	page    Page
	guard   guard.ConstructorGuard
}

// NewListOrdersQuery fails only on a caller that was not constructed or on a
// creator filter that is not an identifier.
func NewListOrdersQuery(caller identity.Caller, filter OrderFilter, page Page) (ListOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	var creator *kernel.UUID
	if raw := strings.TrimSpace(filter.CreatorID); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return ListOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("creator_id", err)
		}
		creator = &id
	}

	return ListOrdersQuery{
		caller:  caller,
		filter:  filter,
		creator: creator,
		page:    NewPage(page.Number, page.Size),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Caller() identity.Caller { return q.caller }
func (q ListOrdersQuery) Filter() OrderFilter     { return q.filter }
func (q ListOrdersQuery) Page() Page              { return q.page }

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}
