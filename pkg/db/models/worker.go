package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dispatchly/dispatchly-backend/pkg/enums"
)

// Worker is an hourly/day laborer paid from attendance, not deliveries.
type Worker struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string          `gorm:"column:name;not null"`
	Phone         string          `gorm:"column:phone"`
	WeeklyPayment decimal.Decimal `gorm:"column:weekly_payment;type:numeric(12,2);not null"`
	Active        bool            `gorm:"column:active;not null;default:true"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// WorkerAttendance records how one calendar day was logged for a worker.
// A day with no row contributes nothing to the balance but is reported
// separately from an explicit absence.
type WorkerAttendance struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WorkerID  uuid.UUID            `gorm:"column:worker_id;type:uuid;not null;uniqueIndex:idx_worker_attendance_day,priority:1"`
	Day       time.Time            `gorm:"column:day;type:date;not null;uniqueIndex:idx_worker_attendance_day,priority:2"`
	Kind      enums.AttendanceKind `gorm:"column:kind;type:text;not null"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
}

// WorkerPayment is one payout made to a worker against accrued earnings.
type WorkerPayment struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WorkerID  uuid.UUID       `gorm:"column:worker_id;type:uuid;not null"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Note      *string         `gorm:"column:note"`
	PaidAt    time.Time       `gorm:"column:paid_at;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
