package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// Reconciliation compares one day of the upstream feed with the internal
// orders. Unmatched lists upstream references with no internal order.
type Reconciliation struct {
	Day       time.Time
	Fetched   int
	Unmatched []string
}

// ReconcileUpstreamQueryHandler runs on behalf of the system rather than a
// caller, so it takes no query value and checks no permission.
type ReconcileUpstreamQueryHandler struct {
	feed     ports.UpstreamFeed
	db       *gorm.DB
	calendar period.Calendar
}

func NewReconcileUpstreamQueryHandler(
	feed ports.UpstreamFeed,
	db *gorm.DB,
	calendar period.Calendar,
) ReconcileUpstreamQueryHandler {
	return ReconcileUpstreamQueryHandler{feed: feed, db: db, calendar: calendar}
}

// Handle reconciles the current calendar day.
func (h ReconcileUpstreamQueryHandler) Handle(ctx context.Context) (Reconciliation, error) {
	today := h.calendar.Resolve(period.Params{Date: period.Today})
	day := h.calendar.Now()
	if today.Start != nil {
		day = *today.Start
	}

	upstream, err := h.feed.OrdersOn(ctx, day)
	if err != nil {
		return Reconciliation{}, err
	}
	internal, err := internalByReference(ctx, h.db, upstream)
	if err != nil {
		return Reconciliation{}, err
	}

	result := Reconciliation{Day: day, Fetched: len(upstream), Unmatched: []string{}}
	for _, u := range upstream {
		if _, ok := internal[u.Reference]; !ok {
			result.Unmatched = append(result.Unmatched, u.Reference)
		}
	}
	return result, nil
}
