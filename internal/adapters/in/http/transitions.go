package http

import (
	"context"
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metric"

	"github.com/labstack/echo/v4"
)

// PrepareOrder handles POST /api/v1/orders/{id}/prepare. The body is optional.
func (s *Server) PrepareOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	var body PrepareRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	return s.transition(ctx, "prepare", func(c context.Context) (*order.Order, error) {
		cmd, err := commands.NewPrepareOrderCommand(caller, id, body.LineCount)
		if err != nil {
			return nil, err
		}
		return s.handlers.PrepareOrder.Handle(c, cmd)
	})
}

// ControlOrder handles POST /api/v1/orders/{id}/control.
func (s *Server) ControlOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	return s.transition(ctx, "control", func(c context.Context) (*order.Order, error) {
		cmd, err := commands.NewControlOrderCommand(caller, id)
		if err != nil {
			return nil, err
		}
		return s.handlers.ControlOrder.Handle(c, cmd)
	})
}

// PackOrder handles POST /api/v1/orders/{id}/pack.
func (s *Server) PackOrder(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	return s.transition(ctx, "pack", func(c context.Context) (*order.Order, error) {
		cmd, err := commands.NewPackOrderCommand(caller, id)
		if err != nil {
			return nil, err
		}
		return s.handlers.PackOrder.Handle(c, cmd)
	})
}

func (s *Server) transition(ctx echo.Context, action string, apply func(context.Context) (*order.Order, error)) error {
	updated, err := apply(ctx.Request().Context())
	s.metrics.Transitions.WithLabelValues(action, outcomeOf(err)).Inc()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(updated))
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metric.OutcomeApplied
	case errs.IsValidation(err),
		errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrPermissionDenied),
		errors.Is(err, errs.ErrObjectNotFound):
		return metric.OutcomeRejected
	default:
		return metric.OutcomeFailed
	}
}
