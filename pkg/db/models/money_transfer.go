package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispatchly/dispatchly-backend/pkg/enums"
)

// MoneyTransfer records one settlement between the company and a delivery man
// or merchant. Immutable once created.
type MoneyTransfer struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DeliveryManID *uuid.UUID         `gorm:"column:delivery_man_id;type:uuid"`
	MerchantID    *uuid.UUID         `gorm:"column:merchant_id;type:uuid"`
	Kind          enums.TransferKind `gorm:"column:kind;type:text;not null"`
	AmountCents   int64              `gorm:"column:amount_cents;not null"`
	Reference     string             `gorm:"column:reference;not null;uniqueIndex"`
	Note          *string            `gorm:"column:note"`
	TransferDate  time.Time          `gorm:"column:transfer_date;not null"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
}
