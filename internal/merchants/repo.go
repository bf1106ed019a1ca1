package merchants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
)

// Repository defines persistence operations for merchants. The merchant
// balance is a stored running figure, mutated directly by payouts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Merchant, error)
	AdjustBalance(ctx context.Context, id uuid.UUID, deltaCents int64) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a merchants repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error) {
	var merchant models.Merchant
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&merchant).Error
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Merchant, error) {
	var merchant models.Merchant
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&merchant).Error
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

func (r *repository) AdjustBalance(ctx context.Context, id uuid.UUID, deltaCents int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Merchant{}).
		Where("id = ?", id).
		Update("balance_cents", gorm.Expr("balance_cents + ?", deltaCents))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
