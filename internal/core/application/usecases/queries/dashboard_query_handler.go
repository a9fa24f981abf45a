package queries

import (
	"context"
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/core/domain/model/report"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetDashboardQueryHandler computes the manager dashboard.
//
// All five sections read one snapshot: they run inside a single read-only
// REPEATABLE READ transaction. Each section runs in its own savepoint; a
// failing section is logged, rolled back to its savepoint and reported in
// Dashboard.Failed while the others complete.
type GetDashboardQueryHandler struct {
	db         *gorm.DB
	calendar   period.Calendar
	calculator *services.ReportCalculator
	logger     *zap.Logger
}

func NewGetDashboardQueryHandler(
	db *gorm.DB,
	calendar period.Calendar,
	calculator *services.ReportCalculator,
	logger *zap.Logger,
) GetDashboardQueryHandler {
	return GetDashboardQueryHandler{db: db, calendar: calendar, calculator: calculator, logger: logger}
}

func (h GetDashboardQueryHandler) Handle(ctx context.Context, query DashboardQuery) (Dashboard, error) {
	if err := query.Validate(); err != nil {
		return Dashboard{}, err
	}
	if err := query.caller.Authorize(query.caller.Role().CanViewDashboard(), "view dashboard"); err != nil {
		return Dashboard{}, err
	}

	now := h.calendar.Now()
	loc := h.calendar.Location()
	d := Dashboard{Window: resolveWindow(h.calendar, query.period, h.logger)}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		h.section(tx, &d, SectionDistribution, func(sp *gorm.DB) error {
			counts, err := statusCounts(sp, d.Window)
			if err != nil {
				return err
			}
			d.Distribution = h.calculator.Distribution(counts)
			return nil
		})
		h.section(tx, &d, SectionGrowth, func(sp *gorm.DB) error {
			growth, err := h.growth(sp, d.Window, now, loc)
			if err != nil {
				return err
			}
			d.Growth = growth
			return nil
		})
		h.section(tx, &d, SectionDurations, func(sp *gorm.DB) error {
			durations, err := averageDurations(sp, d.Window)
			if err != nil {
				return err
			}
			d.Durations = durations
			return nil
		})
		h.section(tx, &d, SectionWorkload, func(sp *gorm.DB) error {
			workload, err := agentWorkload(sp)
			if err != nil {
				return err
			}
			d.Workload = workload
			return nil
		})
		h.section(tx, &d, SectionMonthly, func(sp *gorm.DB) error {
			orders, packed, err := monthlyCounts(sp, period.TrailingMonths(now, loc, MonthlyWindow), loc)
			if err != nil {
				return err
			}
			d.Monthly = h.calculator.MonthlySeries(orders, packed)
			return nil
		})
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return Dashboard{}, errs.NewStoreFailureError("dashboard snapshot", err)
	}

	if d.Workload == nil {
		d.Workload = []report.AgentWorkload{}
	}
	if d.Monthly.Labels == nil {
		d.Monthly = h.calculator.MonthlySeries(nil, nil)
	}
	if d.Distribution.ByStatus == nil {
		d.Distribution = h.calculator.Distribution(nil)
	}
	return d, nil
}

// section runs fn inside a savepoint. Its error is logged and recorded, never
// returned, so the remaining sections still run.
func (h GetDashboardQueryHandler) section(tx *gorm.DB, d *Dashboard, name string, fn func(*gorm.DB) error) {
	if err := tx.Transaction(fn); err != nil {
		h.logger.Error("dashboard section failed", zap.String("section", name), zap.Error(err))
		d.Failed = append(d.Failed, name)
	}
}

func (h GetDashboardQueryHandler) growth(tx *gorm.DB, window period.Range, now time.Time, loc *time.Location) (report.Growth, error) {
	ranges := []period.Range{
		window,
		period.PreviousDay(now, loc),
		period.PreviousWeek(now, loc),
		period.PreviousMonth(now, loc),
	}
	counts := make([]report.WindowCounts, len(ranges))
	for i, r := range ranges {
		c, err := h.windowCounts(tx, r)
		if err != nil {
			return report.Growth{}, err
		}
		counts[i] = c
	}
	return h.calculator.Growth(counts[0], counts[1], counts[2], counts[3]), nil
}

func (h GetDashboardQueryHandler) windowCounts(tx *gorm.DB, r period.Range) (report.WindowCounts, error) {
	var row struct {
		Total     int64
		Completed int64
	}
	err := tx.Table(ordersTable).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE status = ?) AS completed", order.Packed.String()).
		Scopes(within("created_at", r)).
		Scan(&row).Error
	if err != nil {
		return report.WindowCounts{}, err
	}
	return h.calculator.Counts(row.Total, row.Completed), nil
}

func statusCounts(tx *gorm.DB, window period.Range) (map[order.Status]int64, error) {
	var rows []struct {
		Status string
		N      int64
	}
	err := tx.Table(ordersTable).
		Select("status, COUNT(*) AS n").
		Scopes(within("created_at", window)).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int64, len(rows))
	for _, r := range rows {
		s, parseErr := order.ParseStatus(r.Status)
		if parseErr != nil {
			continue
		}
		counts[s] = r.N
	}
	return counts, nil
}

const averageDurationsSelect = `
	COALESCE(AVG(EXTRACT(EPOCH FROM (prepared_at - created_at)) / 60), 0)::float8 AS preparation,
	COALESCE(AVG(EXTRACT(EPOCH FROM (controlled_at - prepared_at)) / 60), 0)::float8 AS control,
	COALESCE(AVG(EXTRACT(EPOCH FROM (packed_at - controlled_at)) / 60), 0)::float8 AS packing,
	COALESCE(AVG(EXTRACT(EPOCH FROM (packed_at - created_at)) / 60), 0)::float8 AS total,
	COUNT(*) AS samples`

// averageDurations averages stage durations over packed orders whose packing
// time falls in window. AVG skips rows missing a bounding timestamp.
func averageDurations(tx *gorm.DB, window period.Range) (report.AverageDurations, error) {
	var row report.AverageDurations
	err := tx.Table(ordersTable).
		Select(averageDurationsSelect).
		Where("status = ?", order.Packed.String()).
		Scopes(within("packed_at", window)).
		Scan(&row).Error
	if err != nil {
		return report.AverageDurations{}, err
	}
	row.Preparation = services.RoundMinutes(row.Preparation)
	row.Control = services.RoundMinutes(row.Control)
	row.Packing = services.RoundMinutes(row.Packing)
	row.Total = services.RoundMinutes(row.Total)
	return row, nil
}

const agentWorkloadSQL = `
SELECT
	u.id,
	u.username,
	u.first_name,
	u.last_name,
	COUNT(o.id) FILTER (WHERE o.creator_id = u.id)    AS created,
	COUNT(o.id) FILTER (WHERE o.preparer_id = u.id)   AS prepared,
	COUNT(o.id) FILTER (WHERE o.controller_id = u.id) AS controlled,
	COUNT(o.id) FILTER (WHERE o.packer_id = u.id)     AS packed
FROM users u
LEFT JOIN orders o ON u.id IN (o.creator_id, o.preparer_id, o.controller_id, o.packer_id)
WHERE u.role = ?
GROUP BY u.id, u.username, u.first_name, u.last_name
ORDER BY u.username`

// agentWorkload counts, for every agent, the orders handled at each stage.
// It is not date filtered.
func agentWorkload(tx *gorm.DB) ([]report.AgentWorkload, error) {
	var rows []struct {
		ID         uuid.UUID
		Username   string
		FirstName  string
		LastName   string
		Created    int64
		Prepared   int64
		Controlled int64
		Packed     int64
	}
	if err := tx.Raw(agentWorkloadSQL, identity.Agent.String()).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]report.AgentWorkload, 0, len(rows))
	for _, r := range rows {
		w := report.AgentWorkload{
			AgentID:     r.ID.String(),
			Username:    r.Username,
			DisplayName: r.Username,
			Created:     r.Created,
			Prepared:    r.Prepared,
			Controlled:  r.Controlled,
			Packed:      r.Packed,
			Total:       r.Created + r.Prepared + r.Controlled + r.Packed,
		}
		if id, err := kernel.UUIDFromGoogle(r.ID); err == nil {
			if u, err := identity.RestoreUser(id, r.Username, r.FirstName, r.LastName, identity.Agent); err == nil {
				w.DisplayName = u.DisplayName()
			}
		}
		out = append(out, w)
	}
	return out, nil
}

// monthlyCounts buckets creations, and packings of packed orders, by month of
// year in loc over window.
func monthlyCounts(tx *gorm.DB, window period.Range, loc *time.Location) (orders, packed map[time.Month]int64, err error) {
	orders, err = monthBuckets(tx, "created_at", window, loc, nil)
	if err != nil {
		return nil, nil, err
	}
	packedStatus := order.Packed
	packed, err = monthBuckets(tx, "packed_at", window, loc, &packedStatus)
	if err != nil {
		return nil, nil, err
	}
	return orders, packed, nil
}

func monthBuckets(
	tx *gorm.DB,
	column string,
	window period.Range,
	loc *time.Location,
	status *order.Status,
) (map[time.Month]int64, error) {
	var rows []struct {
		Month int
		N     int64
	}
	q := tx.Table(ordersTable).
		Select("EXTRACT(MONTH FROM "+column+" AT TIME ZONE ?)::int AS month, COUNT(*) AS n", loc.String()).
		Scopes(within(column, window))
	if status != nil {
		q = q.Where("status = ?", status.String())
	}
	if err := q.Group("month").Scan(&rows).Error; err != nil {
		return nil, err
	}

	buckets := make(map[time.Month]int64, len(rows))
	for _, r := range rows {
		buckets[time.Month(r.Month)] = r.N
	}
	return buckets, nil
}
