package models

import (
	"time"

	"github.com/google/uuid"
)

// DeliveryMan carries the actor's identity plus the running financial totals.
// The counters are only ever incremented, inside the same transaction as the
// attempt that justifies them; pending figures are derived from transfers.
type DeliveryMan struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID               uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	Name                 string    `gorm:"column:name;not null"`
	Phone                string    `gorm:"column:phone;not null"`
	City                 *string   `gorm:"column:city"`
	Active               bool      `gorm:"column:active;not null;default:true"`
	BaseFeeCents         int64     `gorm:"column:base_fee_cents;not null;default:0"`
	TotalDeliveries      int       `gorm:"column:total_deliveries;not null;default:0"`
	SuccessfulDeliveries int       `gorm:"column:successful_deliveries;not null;default:0"`
	TotalEarnedCents     int64     `gorm:"column:total_earned_cents;not null;default:0"`
	CODCollectedCents    int64     `gorm:"column:cod_collected_cents;not null;default:0"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
