package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order when the caller may see everything or created it.
// An unknown order is reported as not found before permissions are checked.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	q := h.db.WithContext(ctx).Table(ordersTable)
	var param string
	var key any
	if query.id != nil {
		q = q.Where("id = ?", query.id.Bytes())
		param, key = "id", *query.id
	} else {
		q = q.Where("reference = ?", query.reference)
		param, key = "reference", query.reference
	}

	var row orderRow
	if err := q.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderView{}, errs.NewObjectNotFoundError(param, key)
		}
		return OrderView{}, errs.NewStoreFailureError("load order", err)
	}

	view, err := row.view()
	if err != nil {
		return OrderView{}, err
	}

	caller := query.caller
	allowed := caller.Role().CanViewAll() || kernel.SameActor(view.CreatorID, caller.ID())
	if err = caller.Authorize(allowed, "view order"); err != nil {
		return OrderView{}, err
	}
	return view, nil
}
