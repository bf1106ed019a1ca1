package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/dispatchly/dispatchly-backend/pkg/errors"
)

// BalanceReport is the admin-facing payroll snapshot for a worker.
// Absences are reported separately from unrecorded days even though both
// contribute zero to the arithmetic.
type BalanceReport struct {
	WorkerID      uuid.UUID       `json:"worker_id"`
	WeeklyPayment decimal.Decimal `json:"weekly_payment"`
	DailyRate     decimal.Decimal `json:"daily_rate"`
	DaysRecorded  int             `json:"days_recorded"`
	Absences      int             `json:"absences"`
	EarnedTotal   decimal.Decimal `json:"earned_total"`
	PaidTotal     decimal.Decimal `json:"paid_total"`
	Balance       decimal.Decimal `json:"balance"`
}

// Service computes worker payroll balances from attendance history.
type Service interface {
	Balance(ctx context.Context, workerID uuid.UUID) (*BalanceReport, error)
}

type service struct {
	repo Repository
}

// NewService builds the payroll balance service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payroll repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Balance(ctx context.Context, workerID uuid.UUID) (*BalanceReport, error) {
	if workerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "worker id required")
	}

	worker, err := s.repo.FindWorker(ctx, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "worker not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load worker")
	}

	attendance, err := s.repo.ListAttendance(ctx, worker.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list attendance")
	}
	payments, err := s.repo.ListPayments(ctx, worker.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}

	absences := 0
	for _, day := range attendance {
		if day.Kind == enums.AttendanceAbsence {
			absences++
		}
	}

	earned := EarnedTotal(worker.WeeklyPayment, attendance)
	paid := PaidTotal(payments)

	return &BalanceReport{
		WorkerID:      worker.ID,
		WeeklyPayment: worker.WeeklyPayment,
		DailyRate:     DailyRate(worker.WeeklyPayment),
		DaysRecorded:  len(attendance),
		Absences:      absences,
		EarnedTotal:   earned,
		PaidTotal:     paid,
		Balance:       Balance(earned, paid),
	}, nil
}
