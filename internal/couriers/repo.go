package couriers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
)

// Repository defines persistence operations for delivery men.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryMan, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.DeliveryMan, error)
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.DeliveryMan, error)
	CreditDelivery(ctx context.Context, id uuid.UUID, baseFeeCents, codCents int64) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a couriers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryMan, error) {
	var dm models.DeliveryMan
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&dm).Error
	if err != nil {
		return nil, err
	}
	return &dm, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.DeliveryMan, error) {
	var dm models.DeliveryMan
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&dm).Error
	if err != nil {
		return nil, err
	}
	return &dm, nil
}

func (r *repository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.DeliveryMan, error) {
	var dm models.DeliveryMan
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		First(&dm).Error
	if err != nil {
		return nil, err
	}
	return &dm, nil
}

// CreditDelivery applies the per-delivery counter deltas. Counters are only
// ever incremented; callers run this inside the transaction that records the
// attempt justifying the credit.
func (r *repository) CreditDelivery(ctx context.Context, id uuid.UUID, baseFeeCents, codCents int64) error {
	updates := map[string]any{
		"total_deliveries":      gorm.Expr("total_deliveries + 1"),
		"successful_deliveries": gorm.Expr("successful_deliveries + 1"),
		"total_earned_cents":    gorm.Expr("total_earned_cents + ?", baseFeeCents),
	}
	if codCents > 0 {
		updates["cod_collected_cents"] = gorm.Expr("cod_collected_cents + ?", codCents)
	}

	result := r.db.WithContext(ctx).
		Model(&models.DeliveryMan{}).
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
