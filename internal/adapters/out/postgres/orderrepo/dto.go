package orderrepo

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of the orders table. Actor columns are nullable
// soft references to the users table.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reference  string    `gorm:"size:50;not null;uniqueIndex"`
	CartNumber string    `gorm:"size:50;not null"`
	LineCount  *int
	Status     string `gorm:"size:20;not null;index"`

	CreatorID    *uuid.UUID `gorm:"type:uuid;index"`
	PreparerID   *uuid.UUID `gorm:"type:uuid;index"`
	ControllerID *uuid.UUID `gorm:"type:uuid;index"`
	PackerID     *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt    time.Time `gorm:"autoCreateTime:false;not null;index"`
	PreparedAt   *time.Time
	ControlledAt *time.Time
	PackedAt     *time.Time
	CompletedAt  *time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

// mutableColumns are written by Update. The reference, creator and creation
// time never change after insertion.
var mutableColumns = []string{
	"cart_number", "line_count", "status",
	"preparer_id", "controller_id", "packer_id",
	"prepared_at", "controlled_at", "packed_at", "completed_at",
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()
	return OrderDTO{
		ID:           s.ID.Bytes(),
		Reference:    s.Reference,
		CartNumber:   s.CartNumber,
		LineCount:    s.LineCount,
		Status:       s.Status.String(),
		CreatorID:    actorColumn(s.Creator),
		PreparerID:   actorColumn(s.Preparer),
		ControllerID: actorColumn(s.Controller),
		PackerID:     actorColumn(s.Packer),
		CreatedAt:    s.CreatedAt.UTC(),
		PreparedAt:   utc(s.PreparedAt),
		ControlledAt: utc(s.ControlledAt),
		PackedAt:     utc(s.PackedAt),
		CompletedAt:  utc(s.CompletedAt),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", dto.ID, err)
	}

	creator, errCreator := actorValue(dto.CreatorID)
	preparer, errPreparer := actorValue(dto.PreparerID)
	controller, errController := actorValue(dto.ControllerID)
	packer, errPacker := actorValue(dto.PackerID)
	if err = errors.Join(errCreator, errPreparer, errController, errPacker); err != nil {
		return nil, fmt.Errorf("order %s: %w", dto.ID, err)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           id,
		Reference:    dto.Reference,
		CartNumber:   dto.CartNumber,
		LineCount:    dto.LineCount,
		Status:       status,
		Creator:      creator,
		Preparer:     preparer,
		Controller:   controller,
		Packer:       packer,
		CreatedAt:    dto.CreatedAt,
		PreparedAt:   dto.PreparedAt,
		ControlledAt: dto.ControlledAt,
		PackedAt:     dto.PackedAt,
		CompletedAt:  dto.CompletedAt,
	})
}

func actorColumn(actor *kernel.UUID) *uuid.UUID {
	if actor == nil {
		return nil
	}
	id := actor.Bytes()
	return &id
}

func actorValue(column *uuid.UUID) (*kernel.UUID, error) {
	if column == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromGoogle(*column)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
