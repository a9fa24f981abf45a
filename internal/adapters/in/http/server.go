package http

import (
	"net/http"
	"net/url"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/period"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metric"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder        commands.CreateOrderCommandHandler
	UpdateOrder        commands.UpdateOrderCommandHandler
	DeleteOrder        commands.DeleteOrderCommandHandler
	BulkDelete         commands.BulkDeleteOrdersCommandHandler
	BulkDeleteByFilter commands.BulkDeleteOrdersByFilterCommandHandler
	PrepareOrder       commands.PrepareOrderCommandHandler
	ControlOrder       commands.ControlOrderCommandHandler
	PackOrder          commands.PackOrderCommandHandler
	RegisterUser       commands.RegisterUserCommandHandler
	ForgetUser         commands.ForgetUserCommandHandler

	ListOrders     queries.ListOrdersQueryHandler
	StageQueue     queries.StageQueueQueryHandler
	GetOrder       queries.GetOrderQueryHandler
	Dashboard      queries.GetDashboardQueryHandler
	UpstreamOrders queries.UpstreamOrdersQueryHandler
	ListUsers      queries.ListUsersQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	metrics  *metric.Metrics
	logger   *zap.Logger
}

func NewServer(handlers Handlers, metrics *metric.Metrics, logger *zap.Logger) *Server {
	return &Server{handlers: handlers, metrics: metrics, logger: logger}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(caller, body.Reference, body.CartNumber)
	if err != nil {
		return err
	}
	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toOrder(created))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	params := ctx.QueryParams()

	var filter queries.OrderFilter
	if filter.Period, err = bindPeriod(params); err != nil {
		return err
	}
	if err := bindQuery(params, "status", &filter.Status); err != nil {
		return err
	}
	if err := bindQuery(params, "creator_id", &filter.CreatorID); err != nil {
		return err
	}
	if err := bindQuery(params, "creator_only", &filter.CreatorOnly); err != nil {
		return err
	}
	if err := bindQuery(params, "ordering", &filter.Ordering); err != nil {
		return err
	}
	page, err := bindPage(params)
	if err != nil {
		return err
	}

	query, err := queries.NewListOrdersQuery(caller, filter, page)
	if err != nil {
		return err
	}
	result, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderPage(result))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(caller, id)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderView(view))
}

// GetOrderByReference handles GET /api/v1/orders/reference/{reference}.
func (s *Server) GetOrderByReference(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	var reference string
	if err := runtime.BindStyledParameterWithLocation(
		"simple", false, "reference", runtime.ParamLocationPath, ctx.Param("reference"), &reference,
	); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("reference", err)
	}
	query, err := queries.NewGetOrderByReferenceQuery(caller, reference)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrderView(view))
}

// UpdateOrder handles PATCH /api/v1/orders/{id}.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var body OrderChanges
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderCommand(caller, id, commands.UpdateOrderFields{
		Reference:  body.Reference,
		CartNumber: body.CartNumber,
		Status:     body.Status,
		LineCount:  body.LineCount,
	})
	if err != nil {
		return err
	}
	updated, err := s.handlers.UpdateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/{id}.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteOrderCommand(caller, id)
	if err != nil {
		return err
	}
	if err := s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// BulkDeleteOrders handles POST /api/v1/orders/bulk-delete.
func (s *Server) BulkDeleteOrders(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	var body BulkDeleteRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	ids := make([]kernel.UUID, 0, len(body.IDs))
	for _, raw := range body.IDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause("ids", err)
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewBulkDeleteOrdersCommand(caller, ids)
	if err != nil {
		return err
	}
	deleted, err := s.handlers.BulkDelete.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

// BulkDeleteOrdersByFilter handles POST /api/v1/orders/bulk-delete/filter.
func (s *Server) BulkDeleteOrdersByFilter(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	var body BulkDeleteFilterRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewBulkDeleteOrdersByFilterCommand(caller, body.Status, body.StartDate, body.EndDate)
	if err != nil {
		return err
	}
	deleted, err := s.handlers.BulkDeleteByFilter.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	var raw string
	if err := runtime.BindStyledParameterWithLocation(
		"simple", false, "id", runtime.ParamLocationPath, ctx.Param("id"), &raw,
	); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

func bindQuery(params url.Values, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, params, dest); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return nil
}

func bindPeriod(params url.Values) (period.Params, error) {
	var p period.Params
	if err := bindQuery(params, "date", &p.Date); err != nil {
		return p, err
	}
	if err := bindQuery(params, "start_date", &p.StartDate); err != nil {
		return p, err
	}
	if err := bindQuery(params, "end_date", &p.EndDate); err != nil {
		return p, err
	}
	return p, nil
}

// bindPage reads the pagination parameters. Missing values fall back to the
// listing defaults.
func bindPage(params url.Values) (queries.Page, error) {
	var number, size int
	if err := bindQuery(params, "page", &number); err != nil {
		return queries.Page{}, err
	}
	if err := bindQuery(params, "page_size", &size); err != nil {
		return queries.Page{}, err
	}
	return queries.NewPage(number, size), nil
}
