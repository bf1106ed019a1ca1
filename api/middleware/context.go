package middleware

import (
	"context"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
)

type contextKey string

const (
	ctxUserID  contextKey = "user_id"
	ctxRole    contextKey = "actor_role"
	ctxCourier contextKey = "courier"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// CourierFromContext returns the delivery-man record loaded for this request,
// or nil when the request was not made by an active courier.
func CourierFromContext(ctx context.Context) *models.DeliveryMan {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxCourier).(*models.DeliveryMan); ok {
		return v
	}
	return nil
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithRole injects the actor role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}

// WithCourier injects the loaded delivery-man record into the context.
func WithCourier(ctx context.Context, courier *models.DeliveryMan) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCourier, courier)
}
