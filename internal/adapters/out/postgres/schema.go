package postgres

import (
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables of the fulfillment store. Actor
// columns are plain indexed UUIDs without foreign keys: removing an identity
// is handled by the application, which clears attributions explicitly.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderrepo.OrderDTO{}, &userrepo.UserDTO{})
}
