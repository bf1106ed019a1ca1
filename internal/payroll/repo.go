package payroll

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
)

// Repository defines persistence operations for worker payroll data.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindWorker(ctx context.Context, id uuid.UUID) (*models.Worker, error)
	ListAttendance(ctx context.Context, workerID uuid.UUID) ([]models.WorkerAttendance, error)
	ListPayments(ctx context.Context, workerID uuid.UUID) ([]models.WorkerPayment, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a payroll repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindWorker(ctx context.Context, id uuid.UUID) (*models.Worker, error) {
	var worker models.Worker
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&worker).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *repository) ListAttendance(ctx context.Context, workerID uuid.UUID) ([]models.WorkerAttendance, error) {
	var list []models.WorkerAttendance
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("day ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListPayments(ctx context.Context, workerID uuid.UUID) ([]models.WorkerPayment, error) {
	var list []models.WorkerPayment
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("paid_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
