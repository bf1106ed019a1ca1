package models

import (
	"time"

	"github.com/google/uuid"
)

// Merchant keeps a stored running balance that payouts decrement directly.
// This is deliberately asymmetric with delivery-man earnings, which are
// derived from the transfer history instead.
type Merchant struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	City         *string   `gorm:"column:city"`
	BalanceCents int64     `gorm:"column:balance_cents;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
