package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
)

// Location is an optional geotag attached to a status change.
type Location struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// AcceptInput identifies the order and the acting courier.
type AcceptInput struct {
	OrderID uuid.UUID
	Actor   *models.DeliveryMan
}

// RejectInput carries the optional free-text reason alongside the actor.
type RejectInput struct {
	OrderID uuid.UUID
	Actor   *models.DeliveryMan
	Reason  *string
}

// SetStatusInput captures a courier-driven status change request.
type SetStatusInput struct {
	OrderID  uuid.UUID
	Actor    *models.DeliveryMan
	Status   enums.OrderStatus
	Reason   *string
	Notes    *string
	Location *Location
}

// OrderSummary exposes the fields returned in courier-facing lists.
type OrderSummary struct {
	ID              uuid.UUID           `json:"id"`
	Code            string              `json:"code"`
	CustomerName    string              `json:"customer_name"`
	CustomerAddress string              `json:"customer_address"`
	City            *string             `json:"city,omitempty"`
	TotalCents      int64               `json:"total_cents"`
	PaymentMethod   enums.PaymentMethod `json:"payment_method"`
	Status          enums.OrderStatus   `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
}

// OrderList wraps a paginated page of orders plus the next cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
