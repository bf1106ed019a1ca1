package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	pkgerrors "github.com/dispatchly/dispatchly-backend/pkg/errors"
)

// orderLoader resolves an order while enforcing the same city-or-assignment
// guard used for status changes.
type orderLoader interface {
	Get(ctx context.Context, orderID uuid.UUID, actor *models.DeliveryMan) (*models.Order, error)
}

// AddInput carries a new note for an order.
type AddInput struct {
	OrderID uuid.UUID
	Actor   *models.DeliveryMan
	Body    string
}

// Service attaches courier notes to orders. Notes carry no financial weight
// and live outside the attempt ledger.
type Service interface {
	Add(ctx context.Context, input AddInput) (*models.DeliveryNote, error)
	List(ctx context.Context, orderID uuid.UUID, actor *models.DeliveryMan) ([]models.DeliveryNote, error)
}

type service struct {
	repo   Repository
	orders orderLoader
}

// NewService builds the notes service.
func NewService(repo Repository, orders orderLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notes repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order loader required")
	}
	return &service{repo: repo, orders: orders}, nil
}

func (s *service) Add(ctx context.Context, input AddInput) (*models.DeliveryNote, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "note body required")
	}
	if input.Actor == nil || input.Actor.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "courier identity missing")
	}

	order, err := s.orders.Get(ctx, input.OrderID, input.Actor)
	if err != nil {
		return nil, err
	}

	note := &models.DeliveryNote{
		ID:            uuid.New(),
		OrderID:       order.ID,
		DeliveryManID: input.Actor.ID,
		Body:          body,
	}
	created, err := s.repo.Create(ctx, note)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery note")
	}
	return created, nil
}

func (s *service) List(ctx context.Context, orderID uuid.UUID, actor *models.DeliveryMan) ([]models.DeliveryNote, error) {
	if _, err := s.orders.Get(ctx, orderID, actor); err != nil {
		return nil, err
	}
	list, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivery notes")
	}
	return list, nil
}
