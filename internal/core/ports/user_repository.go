package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
)

// UserRepository stores the local identity directory.
type UserRepository interface {
	// Add persists a new entry. A duplicate username is a validation error.
	Add(ctx context.Context, user *identity.User) error

	// Get returns the entry with id, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*identity.User, error)

	// Delete removes the entry with id, or returns an ObjectNotFoundError.
	Delete(ctx context.Context, id kernel.UUID) error
}
