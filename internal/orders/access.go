package orders

import (
	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
)

// Authorized reports whether the actor may act on the order. The rule is
// city match or current assignment; two nil cities count as a match. It is
// evaluated fresh on every request so reassignment takes effect immediately.
func Authorized(order *models.Order, actor *models.DeliveryMan) bool {
	if order == nil || actor == nil {
		return false
	}
	if order.AssignedDeliveryManID != nil && *order.AssignedDeliveryManID == actor.ID {
		return true
	}
	return cityMatch(order.City, actor.City)
}

func cityMatch(orderCity, actorCity *string) bool {
	if orderCity == nil && actorCity == nil {
		return true
	}
	if orderCity == nil || actorCity == nil {
		return false
	}
	return *orderCity == *actorCity
}
