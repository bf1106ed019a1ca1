package finance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
)

// Repository defines persistence operations for the transfer ledger.
// Transfers are immutable once created.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateTransfer(ctx context.Context, transfer *models.MoneyTransfer) (*models.MoneyTransfer, error)
	SumByCourier(ctx context.Context, deliveryManID uuid.UUID, kind enums.TransferKind) (int64, error)
	ListByCourier(ctx context.Context, deliveryManID uuid.UUID) ([]models.MoneyTransfer, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a finance repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateTransfer(ctx context.Context, transfer *models.MoneyTransfer) (*models.MoneyTransfer, error) {
	if err := r.db.WithContext(ctx).Create(transfer).Error; err != nil {
		return nil, err
	}
	return transfer, nil
}

func (r *repository) SumByCourier(ctx context.Context, deliveryManID uuid.UUID, kind enums.TransferKind) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).
		Model(&models.MoneyTransfer{}).
		Where("delivery_man_id = ? AND kind = ?", deliveryManID, kind).
		Select("SUM(amount_cents)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *repository) ListByCourier(ctx context.Context, deliveryManID uuid.UUID) ([]models.MoneyTransfer, error) {
	var list []models.MoneyTransfer
	err := r.db.WithContext(ctx).
		Where("delivery_man_id = ?", deliveryManID).
		Order("transfer_date DESC, created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
