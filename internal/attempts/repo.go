package attempts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
)

// Repository defines persistence operations for the attempt ledger.
// Attempts are append-only; there is deliberately no update or delete.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	MaxAttemptNumber(ctx context.Context, orderID uuid.UUID) (int, error)
	Insert(ctx context.Context, attempt *models.DeliveryAttempt) (*models.DeliveryAttempt, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DeliveryAttempt, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an attempts repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) MaxAttemptNumber(ctx context.Context, orderID uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.DeliveryAttempt{}).
		Where("order_id = ?", orderID).
		Select("MAX(attempt_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *repository) Insert(ctx context.Context, attempt *models.DeliveryAttempt) (*models.DeliveryAttempt, error) {
	if err := r.db.WithContext(ctx).Create(attempt).Error; err != nil {
		return nil, err
	}
	return attempt, nil
}

func (r *repository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DeliveryAttempt, error) {
	var list []models.DeliveryAttempt
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("attempt_number DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
