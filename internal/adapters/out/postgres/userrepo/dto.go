package userrepo

import (
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UserDTO is the row layout of the local identity directory.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string    `gorm:"size:150;not null;uniqueIndex"`
	FirstName string    `gorm:"size:150"`
	LastName  string    `gorm:"size:150"`
	Role      string    `gorm:"size:20;not null"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *identity.User) UserDTO {
	return UserDTO{
		ID:        u.ID().Bytes(),
		Username:  u.Username(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		Role:      u.Role().String(),
	}
}

func toDomain(dto UserDTO) (*identity.User, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	role, err := identity.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return identity.RestoreUser(id, dto.Username, dto.FirstName, dto.LastName, role)
}
