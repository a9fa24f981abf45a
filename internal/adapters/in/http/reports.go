package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetStageQueue handles GET /api/v1/queues/{stage}.
func (s *Server) GetStageQueue(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	params := ctx.QueryParams()
	p, err := bindPeriod(params)
	if err != nil {
		return err
	}
	var creatorOnly bool
	if err := bindQuery(params, "creator_only", &creatorOnly); err != nil {
		return err
	}
	page, err := bindPage(params)
	if err != nil {
		return err
	}

	query, err := queries.NewStageQueueQuery(caller, ctx.Param("stage"), p, creatorOnly, page)
	if err != nil {
		return err
	}
	result, err := s.handlers.StageQueue.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderPage(result))
}

// GetDashboard handles GET /api/v1/dashboard.
func (s *Server) GetDashboard(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	p, err := bindPeriod(ctx.QueryParams())
	if err != nil {
		return err
	}
	query, err := queries.NewDashboardQuery(caller, p)
	if err != nil {
		return err
	}
	dashboard, err := s.handlers.Dashboard.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toDashboard(dashboard))
}

// ListUpstreamOrders handles GET /api/v1/upstream/orders.
func (s *Server) ListUpstreamOrders(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	var date string
	if err := bindQuery(ctx.QueryParams(), "date", &date); err != nil {
		return err
	}
	query, err := queries.NewUpstreamOrdersQuery(caller, date)
	if err != nil {
		return err
	}
	merged, err := s.handlers.UpstreamOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]UpstreamOrder, 0, len(merged))
	for _, v := range merged {
		response = append(response, toUpstreamOrder(v))
	}
	return ctx.JSON(http.StatusOK, response)
}
