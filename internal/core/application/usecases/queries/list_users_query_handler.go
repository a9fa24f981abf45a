package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const usersTable = "users"

type ListUsersQueryHandler struct {
	db *gorm.DB
}

func NewListUsersQueryHandler(db *gorm.DB) ListUsersQueryHandler {
	return ListUsersQueryHandler{db: db}
}

// Handle lists the identity directory ordered by username. Manager only.
func (h ListUsersQueryHandler) Handle(ctx context.Context, query ListUsersQuery) ([]UserView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := query.caller.Authorize(query.caller.Role().CanManageUsers(), "list users"); err != nil {
		return nil, err
	}

	var rows []struct {
		ID        uuid.UUID
		Username  string
		FirstName string
		LastName  string
		Role      string
	}
	err := h.db.WithContext(ctx).
		Table(usersTable).
		Select("id, username, first_name, last_name, role").
		Order("username").
		Scan(&rows).Error
	if err != nil {
		return nil, errs.NewStoreFailureError("list users", err)
	}

	users := make([]UserView, 0, len(rows))
	for _, r := range rows {
		id, idErr := kernel.UUIDFromGoogle(r.ID)
		if idErr != nil {
			return nil, idErr
		}
		role, roleErr := identity.ParseRole(r.Role)
		if roleErr != nil {
			return nil, roleErr
		}
		u, userErr := identity.RestoreUser(id, r.Username, r.FirstName, r.LastName, role)
		if userErr != nil {
			return nil, userErr
		}
		users = append(users, UserView{
			ID:          id.String(),
			Username:    u.Username(),
			FirstName:   u.FirstName(),
			LastName:    u.LastName(),
			DisplayName: u.DisplayName(),
			Role:        u.Role(),
		})
	}
	return users, nil
}
