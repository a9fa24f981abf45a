package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/period"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StageQueueQueryHandler serves the preparation, control and packing queues.
// Scope and date rules are those of the order list; the date filter applies
// to the creation time.
type StageQueueQueryHandler struct {
	lister   orderLister
	calendar period.Calendar
	logger   *zap.Logger
}

func NewStageQueueQueryHandler(db *gorm.DB, calendar period.Calendar, logger *zap.Logger) StageQueueQueryHandler {
	return StageQueueQueryHandler{
		lister:   orderLister{db: db, logger: logger},
		calendar: calendar,
		logger:   logger,
	}
}

func (h StageQueueQueryHandler) Handle(ctx context.Context, query StageQueueQuery) (OrderPage, error) {
	if err := query.Validate(); err != nil {
		return OrderPage{}, err
	}
	queue := stageQueues[query.stage]
	status := queue.status

	return h.lister.list(ctx, listSpec{
		caller:      query.caller,
		creatorOnly: query.creatorOnly,
		status:      &status,
		window:      resolveWindow(h.calendar, query.period, h.logger),
		ordering:    Ordering{Column: queue.ordered, Desc: true},
		page:        query.page,
	})
}
