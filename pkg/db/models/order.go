package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispatchly/dispatchly-backend/pkg/enums"
)

// Order represents one delivery job from a merchant to a customer.
type Order struct {
	ID                    uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code                  string              `gorm:"column:code;not null;uniqueIndex"`
	MerchantID            uuid.UUID           `gorm:"column:merchant_id;type:uuid;not null"`
	CustomerName          string              `gorm:"column:customer_name;not null"`
	CustomerPhone         string              `gorm:"column:customer_phone;not null"`
	CustomerAddress       string              `gorm:"column:customer_address;not null"`
	City                  *string             `gorm:"column:city"`
	TotalCents            int64               `gorm:"column:total_cents;not null"`
	MerchantEarningCents  int64               `gorm:"column:merchant_earning_cents;not null;default:0"`
	PaymentMethod         enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:'cod'"`
	Status                enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	AssignedDeliveryManID *uuid.UUID          `gorm:"column:assigned_delivery_man_id;type:uuid"`
	DeliveredAt           *time.Time          `gorm:"column:delivered_at"`
	Attempts              []DeliveryAttempt   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
