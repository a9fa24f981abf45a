package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/period"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	lister   orderLister
	calendar period.Calendar
	logger   *zap.Logger
}

func NewListOrdersQueryHandler(db *gorm.DB, calendar period.Calendar, logger *zap.Logger) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{
		lister:   orderLister{db: db, logger: logger},
		calendar: calendar,
		logger:   logger,
	}
}

// Handle applies scope, date window, status, creator and ordering, then
// returns the requested page.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (OrderPage, error) {
	if err := query.Validate(); err != nil {
		return OrderPage{}, err
	}
	filter := query.Filter()

	spec := listSpec{
		caller:      query.Caller(),
		creatorOnly: filter.CreatorOnly,
		creator:     query.creator,
		window:      resolveWindow(h.calendar, filter.Period, h.logger),
		page:        query.Page(),
	}

	if filter.Status != "" {
		status, err := order.ParseStatus(filter.Status)
		if err != nil {
			h.logger.Warn("ignoring unknown status filter", zap.String("status", filter.Status), zap.Error(err))
		} else {
			spec.status = &status
		}
	}

	ordering, ok := ParseOrdering(filter.Ordering)
	if !ok {
		h.logger.Warn("ignoring unknown ordering", zap.String("ordering", filter.Ordering))
	}
	spec.ordering = ordering

	return h.lister.list(ctx, spec)
}
