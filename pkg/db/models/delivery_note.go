package models

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryNote is a free-text note a courier attaches to an order. Distinct
// from attempts; notes carry no financial weight.
type DeliveryNote struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID       uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	DeliveryManID uuid.UUID `gorm:"column:delivery_man_id;type:uuid;not null"`
	Body          string    `gorm:"column:body;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
