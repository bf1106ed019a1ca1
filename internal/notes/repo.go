package notes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
)

// Repository defines persistence operations for delivery notes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, note *models.DeliveryNote) (*models.DeliveryNote, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DeliveryNote, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a notes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, note *models.DeliveryNote) (*models.DeliveryNote, error) {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

func (r *repository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DeliveryNote, error) {
	var list []models.DeliveryNote
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
