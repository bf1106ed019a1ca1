package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
	"github.com/dispatchly/dispatchly-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate locks the order row; concurrent transitions against the
// same order serialize on this lock.
func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkDelivered performs the conditional terminal write. A false return with
// a nil error means the order was already delivered and the caller must treat
// the request as settled rather than crediting again.
func (r *repository) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status <> ?", id, enums.OrderStatusDelivered).
		Updates(map[string]any{
			"status":       enums.OrderStatusDelivered,
			"delivered_at": deliveredAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) ListAssigned(ctx context.Context, deliveryManID uuid.UUID, params pagination.Params) (*OrderList, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("assigned_delivery_man_id = ?", deliveryManID)
	return r.listPage(ctx, query, params)
}

// ListCityQueue returns unassigned pending orders visible to a courier in the
// given city. A nil city matches orders with no city set.
func (r *repository) ListCityQueue(ctx context.Context, city *string, params pagination.Params) (*OrderList, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", enums.OrderStatusPending).
		Where("assigned_delivery_man_id IS NULL")
	if city != nil {
		query = query.Where("city = ?", *city)
	} else {
		query = query.Where("city IS NULL")
	}
	return r.listPage(ctx, query, params)
}

func (r *repository) listPage(ctx context.Context, query *gorm.DB, params pagination.Params) (*OrderList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	limit := pagination.NormalizeLimit(params.Limit)

	var rows []models.Order
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &OrderList{Orders: make([]OrderSummary, 0, len(rows))}
	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}
	for _, row := range rows {
		list.Orders = append(list.Orders, OrderSummary{
			ID:              row.ID,
			Code:            row.Code,
			CustomerName:    row.CustomerName,
			CustomerAddress: row.CustomerAddress,
			City:            row.City,
			TotalCents:      row.TotalCents,
			PaymentMethod:   row.PaymentMethod,
			Status:          row.Status,
			CreatedAt:       row.CreatedAt,
		})
	}
	if hasMore {
		last := rows[len(rows)-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}
