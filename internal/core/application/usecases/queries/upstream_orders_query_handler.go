package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UpstreamOrdersQueryHandler merges the upstream feed with internal orders by
// reference. Unmatched orders on either side are normal: upstream orders
// without an internal counterpart are returned with Internal unset and
// internal orders unknown upstream are not listed.
type UpstreamOrdersQueryHandler struct {
	feed     ports.UpstreamFeed
	db       *gorm.DB
	calendar period.Calendar
	logger   *zap.Logger
}

func NewUpstreamOrdersQueryHandler(
	feed ports.UpstreamFeed,
	db *gorm.DB,
	calendar period.Calendar,
	logger *zap.Logger,
) UpstreamOrdersQueryHandler {
	return UpstreamOrdersQueryHandler{feed: feed, db: db, calendar: calendar, logger: logger}
}

func (h UpstreamOrdersQueryHandler) Handle(ctx context.Context, query UpstreamOrdersQuery) ([]UpstreamOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.caller.Authorize(query.caller.Role().CanReadUpstream(), "read upstream orders"); err != nil {
		return nil, err
	}

	window := resolveWindow(h.calendar, period.Params{Date: query.date}, h.logger)
	day := h.calendar.Now()
	if window.Start != nil {
		day = *window.Start
	}

	upstream, err := h.feed.OrdersOn(ctx, day)
	if err != nil {
		return nil, err
	}

	internal, err := internalByReference(ctx, h.db, upstream)
	if err != nil {
		return nil, err
	}
	names, err := h.usernames(ctx, internal)
	if err != nil {
		return nil, err
	}

	out := make([]UpstreamOrderView, 0, len(upstream))
	for _, u := range upstream {
		v := UpstreamOrderView{Upstream: u, StateCode: u.Status}
		if match, ok := internal[u.Reference]; ok {
			match := match
			v.Internal = &match
			v.StateCode = UpstreamStateCode(match.Status, u.Status)
			v.CreatedBy = names.of(match.CreatorID)
			v.PreparedBy = names.of(match.PreparerID)
			v.ControlledBy = names.of(match.ControllerID)
			v.PackedBy = names.of(match.PackerID)
		}
		out = append(out, v)
	}
	return out, nil
}

// internalByReference loads the internal orders sharing a reference with the
// upstream ones.
func internalByReference(
	ctx context.Context,
	db *gorm.DB,
	upstream []ports.UpstreamOrder,
) (map[string]OrderView, error) {
	refs := make([]string, 0, len(upstream))
	for _, u := range upstream {
		if u.Reference != "" {
			refs = append(refs, u.Reference)
		}
	}
	if len(refs) == 0 {
		return map[string]OrderView{}, nil
	}

	var rows []orderRow
	err := db.WithContext(ctx).
		Table(ordersTable).
		Where("reference = ANY(?)", pq.Array(refs)).
		Find(&rows).Error
	if err != nil {
		return nil, errs.NewStoreFailureError("match upstream references", err)
	}

	byRef := make(map[string]OrderView, len(rows))
	for _, r := range rows {
		v, viewErr := r.view()
		if viewErr != nil {
			return nil, viewErr
		}
		byRef[v.Reference] = v
	}
	return byRef, nil
}

type usernames map[string]string

func (n usernames) of(id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	return n[id.String()]
}

func (h UpstreamOrdersQueryHandler) usernames(ctx context.Context, orders map[string]OrderView) (usernames, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, o := range orders {
		for _, a := range []*kernel.UUID{o.CreatorID, o.PreparerID, o.ControllerID, o.PackerID} {
			if a == nil {
				continue
			}
			if _, ok := seen[a.String()]; !ok {
				seen[a.String()] = struct{}{}
				ids = append(ids, a.String())
			}
		}
	}
	if len(ids) == 0 {
		return usernames{}, nil
	}

	var rows []struct {
		ID       uuid.UUID
		Username string
	}
	err := h.db.WithContext(ctx).
		Table(usersTable).
		Select("id, username").
		Where("id = ANY(?::uuid[])", pq.Array(ids)).
		Scan(&rows).Error
	if err != nil {
		return nil, errs.NewStoreFailureError("load usernames", err)
	}

	names := make(usernames, len(rows))
	for _, r := range rows {
		names[r.ID.String()] = r.Username
	}
	return names, nil
}
