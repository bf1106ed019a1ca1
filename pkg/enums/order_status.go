package enums

import "fmt"

// OrderStatus tracks the delivery lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending            OrderStatus = "pending"
	OrderStatusAccepted           OrderStatus = "accepted"
	OrderStatusAssignedToDelivery OrderStatus = "assigned_to_delivery"
	OrderStatusDelivered          OrderStatus = "delivered"
	OrderStatusReported           OrderStatus = "reported"
	OrderStatusDelayed            OrderStatus = "delayed"
	OrderStatusRejected           OrderStatus = "rejected"
	OrderStatusCancelled          OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusAssignedToDelivery,
	OrderStatusDelivered,
	OrderStatusReported,
	OrderStatusDelayed,
	OrderStatusRejected,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further delivery action may follow.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusRejected, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
