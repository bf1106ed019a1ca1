package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/pagination"
)

// Repository defines persistence operations for order rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error
	MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) (bool, error)
	ListAssigned(ctx context.Context, deliveryManID uuid.UUID, params pagination.Params) (*OrderList, error)
	ListCityQueue(ctx context.Context, city *string, params pagination.Params) (*OrderList, error)
}
