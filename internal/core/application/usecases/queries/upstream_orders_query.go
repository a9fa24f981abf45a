package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrUpstreamOrdersQueryIsNotConstructed = errors.New(
	"UpstreamOrdersQuery must be created via NewUpstreamOrdersQuery",
)

// upstreamStateCodes translates internal statuses into the upstream
// system's order state identifiers.
var upstreamStateCodes = map[order.Status]string{
	order.Created:    "2",
	order.Prepared:   "4",
	order.Controlled: "5",
	order.Packed:     "6",
}

// UpstreamStateCode returns the upstream state matching an internal status,
// or fallback when the status has no upstream equivalent.
func UpstreamStateCode(status order.Status, fallback string) string {
	if code, ok := upstreamStateCodes[status]; ok {
		return code
	}
	return fallback
}

// UpstreamOrdersQuery asks for one day of upstream orders merged with the
// matching internal orders. Date is empty, a period token or YYYY-MM-DD; the
// first day of the resolved window is used.
type UpstreamOrdersQuery struct {
	caller identity.Caller
	date   string
	guard  guard.ConstructorGuard
}

func NewUpstreamOrdersQuery(caller identity.Caller, date string) (UpstreamOrdersQuery, error) {
	if err := caller.Validate(); err != nil {
		return UpstreamOrdersQuery{}, err
	}
	return UpstreamOrdersQuery{caller: caller, date: date, guard: guard.NewConstructorGuard()}, nil
}

func (q UpstreamOrdersQuery) Validate() error {
	return q.guard.Validate(ErrUpstreamOrdersQueryIsNotConstructed)
}

// UpstreamOrderView is one upstream order with its internal counterpart.
// Internal is nil when no internal order carries the upstream reference.
type UpstreamOrderView struct {
	Upstream  ports.UpstreamOrder
	StateCode string
	Internal  *OrderView

	CreatedBy    string
	PreparedBy   string
	ControlledBy string
	PackedBy     string
}
