package queries

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/pkg/errs"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
	DefaultOrdering = "-created_at"
)

// orderingColumns whitelists the fields accepted by the ordering parameter.
var orderingColumns = map[string]struct{}{
	"reference":     {},
	"status":        {},
	"cart_number":   {},
	"line_count":    {},
	"created_at":    {},
	"prepared_at":   {},
	"controlled_at": {},
	"packed_at":     {},
}

// Page selects one slice of a listing. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// NewPage normalizes raw pagination input: missing or non-positive values get
// the defaults and sizes above MaxPageSize are capped.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) offset() int {
	return (p.Number - 1) * p.Size
}

// OrderPage is one page of an order listing.
type OrderPage struct {
	Results    []OrderView
	TotalCount int64
	Page       int
	PageSize   int
	TotalPages int
}

func totalPages(count int64, size int) int {
	if size < 1 {
		return 0
	}
	return int((count + int64(size) - 1) / int64(size))
}

// Ordering is a validated sort on one order column.
type Ordering struct {
	Column string
	Desc   bool
}

// ParseOrdering reads a "field" or "-field" sort. The second result is false
// when the field is not sortable; the default ordering is returned then.
func ParseOrdering(raw string) (Ordering, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultOrdering
	}
	desc := strings.HasPrefix(raw, "-")
	column := strings.TrimPrefix(raw, "-")
	if _, ok := orderingColumns[column]; !ok {
		return Ordering{Column: "created_at", Desc: true}, false
	}
	return Ordering{Column: column, Desc: desc}, true
}

func (o Ordering) clause() clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc}
}

// listSpec describes one filtered order listing.
type listSpec struct {
	caller      identity.Caller
	creatorOnly bool
	creator     *kernel.UUID
	status      *order.Status
	window      period.Range
	ordering    Ordering
	page        Page
}

// orderLister runs listings shared by the order list and the stage queues.
type orderLister struct {
	db     *gorm.DB
	logger *zap.Logger
}

func (l orderLister) list(ctx context.Context, spec listSpec) (OrderPage, error) {
	filtered := func() *gorm.DB {
		q := l.db.WithContext(ctx).Table(ordersTable).Scopes(visibleTo(spec.caller, spec.creatorOnly))
		if spec.creator != nil {
			q = q.Where("creator_id = ?", spec.creator.Bytes())
		}
		if spec.status != nil {
			q = q.Where("status = ?", spec.status.String())
		}
		return q.Scopes(within("created_at", spec.window))
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return OrderPage{}, errs.NewStoreFailureError("count orders", err)
	}

	var rows []orderRow
	err := filtered().
		Order(spec.ordering.clause()).
		Order("id").
		Limit(spec.page.Size).
		Offset(spec.page.offset()).
		Find(&rows).Error
	if err != nil {
		return OrderPage{}, errs.NewStoreFailureError("list orders", err)
	}

	results, err := views(rows)
	if err != nil {
		return OrderPage{}, err
	}
	return OrderPage{
		Results:    results,
		TotalCount: total,
		Page:       spec.page.Number,
		PageSize:   spec.page.Size,
		TotalPages: totalPages(total, spec.page.Size),
	}, nil
}

// resolveWindow resolves a date filter and logs when today was substituted.
func resolveWindow(calendar period.Calendar, p period.Params, logger *zap.Logger) period.Range {
	r := calendar.Resolve(p)
	if r.Fallback {
		logger.Warn("date filter fell back to today",
			zap.String("date", p.Date),
			zap.String("start_date", p.StartDate),
			zap.String("end_date", p.EndDate),
			zap.String("reason", r.Reason),
		)
	}
	return r
}

// visibleTo restricts agents, and anyone asking for creator-only results, to
// the orders they created.
func visibleTo(caller identity.Caller, creatorOnly bool) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if creatorOnly || !caller.Role().CanViewAll() {
			return q.Where("creator_id = ?", caller.ID().Bytes())
		}
		return q
	}
}

// within keeps rows whose column falls inside r. Columns are package constants.
func within(column string, r period.Range) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if r.Start != nil {
			q = q.Where(column+" >= ?", r.Start.UTC())
		}
		if r.End != nil {
			q = q.Where(column+" < ?", r.End.UTC())
		}
		return q
	}
}
