package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispatchly/dispatchly-backend/pkg/enums"
)

// DeliveryAttempt is the append-only evidence of one status-changing action
// by a delivery actor. Rows are never updated or deleted.
type DeliveryAttempt struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       uuid.UUID            `gorm:"column:order_id;type:uuid;not null;uniqueIndex:idx_attempts_order_number,priority:1"`
	AttemptNumber int                  `gorm:"column:attempt_number;not null;uniqueIndex:idx_attempts_order_number,priority:2"`
	DeliveryManID *uuid.UUID           `gorm:"column:delivery_man_id;type:uuid"`
	Outcome       enums.AttemptOutcome `gorm:"column:outcome;type:text;not null"`
	Reason        *string              `gorm:"column:reason"`
	Notes         *string              `gorm:"column:notes"`
	Latitude      *float64             `gorm:"column:latitude"`
	Longitude     *float64             `gorm:"column:longitude"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime"`
}
