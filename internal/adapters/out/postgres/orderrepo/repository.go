package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// GormOrderRepository persists orders through the connection it was built on,
// usually the transaction of a unit of work.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("reference", err)
		}
		return errs.NewStoreFailureError("insert order", err)
	}
	return nil
}

func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select(mutableColumns).
		Updates(&dto)
	if result.Error != nil {
		return errs.NewStoreFailureError("update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("id", aggregate.ID())
	}
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.first(r.db.WithContext(ctx), "id", id, "id = ?", id.Bytes())
}

func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	locked := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.first(locked, "id", id, "id = ?", id.Bytes())
}

func (r *GormOrderRepository) GetByReference(ctx context.Context, reference string) (*order.Order, error) {
	return r.first(r.db.WithContext(ctx), "reference", reference, "reference = ?", reference)
}

func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).Delete(&OrderDTO{})
	if result.Error != nil {
		return errs.NewStoreFailureError("delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("id", id)
	}
	return nil
}

func (r *GormOrderRepository) DeleteMany(ctx context.Context, ids []kernel.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}

	result := r.db.WithContext(ctx).
		Where("id = ANY(?::uuid[])", pq.Array(values)).
		Delete(&OrderDTO{})
	if result.Error != nil {
		return 0, errs.NewStoreFailureError("bulk delete orders", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormOrderRepository) DeleteMatching(ctx context.Context, criteria ports.DeleteCriteria) (int64, error) {
	query := r.db.WithContext(ctx).Where("status = ?", criteria.Status.String())
	if criteria.Created.Start != nil {
		query = query.Where("created_at >= ?", criteria.Created.Start.UTC())
	}
	if criteria.Created.End != nil {
		query = query.Where("created_at < ?", criteria.Created.End.UTC())
	}

	result := query.Delete(&OrderDTO{})
	if result.Error != nil {
		return 0, errs.NewStoreFailureError("bulk delete orders by filter", result.Error)
	}
	return result.RowsAffected, nil
}

const releaseActorSQL = `
UPDATE orders SET
	creator_id    = CASE WHEN creator_id    = @actor THEN NULL ELSE creator_id END,
	preparer_id   = CASE WHEN preparer_id   = @actor THEN NULL ELSE preparer_id END,
	controller_id = CASE WHEN controller_id = @actor THEN NULL ELSE controller_id END,
	packer_id     = CASE WHEN packer_id     = @actor THEN NULL ELSE packer_id END
WHERE @actor IN (creator_id, preparer_id, controller_id, packer_id)`

func (r *GormOrderRepository) ReleaseActor(ctx context.Context, actor kernel.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Exec(releaseActorSQL, map[string]any{"actor": actor.Bytes()})
	if result.Error != nil {
		return 0, errs.NewStoreFailureError("release actor", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *GormOrderRepository) first(db *gorm.DB, param string, key any, where string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	if err := db.Where(where, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, errs.NewStoreFailureError("load order", err)
	}
	return toDomain(dto)
}

// IsUniqueViolation reports whether err carries a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
