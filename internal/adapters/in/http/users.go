package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListUsers handles GET /api/v1/users.
func (s *Server) ListUsers(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	query, err := queries.NewListUsersQuery(caller)
	if err != nil {
		return err
	}
	users, err := s.handlers.ListUsers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]User, 0, len(users))
	for _, u := range users {
		response = append(response, toUserView(u))
	}
	return ctx.JSON(http.StatusOK, response)
}

// RegisterUser handles POST /api/v1/users. Identities are issued by the
// authentication provider; this only records them locally.
func (s *Server) RegisterUser(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	var body NewUser
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	id, err := kernel.UUIDFromString(body.ID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	cmd, err := commands.NewRegisterUserCommand(caller, id, body.Username, body.FirstName, body.LastName, body.Role)
	if err != nil {
		return err
	}
	user, err := s.handlers.RegisterUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toUser(user))
}

// ForgetUser handles DELETE /api/v1/users/{id}.
func (s *Server) ForgetUser(ctx echo.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	cmd, err := commands.NewForgetUserCommand(caller, id)
	if err != nil {
		return err
	}
	released, err := s.handlers.ForgetUser.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ReleasedResponse{Released: released})
}
