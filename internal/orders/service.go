package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/internal/attempts"
	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/dispatchly/dispatchly-backend/pkg/errors"
	"github.com/dispatchly/dispatchly-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type attemptRecorder interface {
	Append(ctx context.Context, tx *gorm.DB, input attempts.AppendInput) (*models.DeliveryAttempt, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DeliveryAttempt, error)
}

// SettlementEngine credits the courier for a first-time delivery inside the
// caller's transaction.
type SettlementEngine interface {
	SettleDelivery(ctx context.Context, tx *gorm.DB, order *models.Order, actor *models.DeliveryMan) error
}

// Service owns the legal transitions of an order's status.
type Service interface {
	Accept(ctx context.Context, input AcceptInput) (*models.Order, error)
	Reject(ctx context.Context, input RejectInput) (*models.Order, error)
	SetStatus(ctx context.Context, input SetStatusInput) (*models.Order, error)
	Get(ctx context.Context, orderID uuid.UUID, actor *models.DeliveryMan) (*models.Order, error)
	ListAttempts(ctx context.Context, orderID uuid.UUID, actor *models.DeliveryMan) ([]models.DeliveryAttempt, error)
	ListAssigned(ctx context.Context, actor *models.DeliveryMan, params pagination.Params) (*OrderList, error)
	ListQueue(ctx context.Context, actor *models.DeliveryMan, params pagination.Params) (*OrderList, error)
}

type service struct {
	repo       Repository
	tx         txRunner
	recorder   attemptRecorder
	settlement SettlementEngine
}

// NewService builds the order state machine service.
func NewService(repo Repository, tx txRunner, recorder attemptRecorder, settlement SettlementEngine) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("attempt recorder required")
	}
	if settlement == nil {
		return nil, fmt.Errorf("settlement engine required")
	}
	return &service{
		repo:       repo,
		tx:         tx,
		recorder:   recorder,
		settlement: settlement,
	}, nil
}

func (s *service) Accept(ctx context.Context, input AcceptInput) (*models.Order, error) {
	if err := validateActor(input.OrderID, input.Actor); err != nil {
		return nil, err
	}

	var out *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := loadForUpdate(ctx, repo, input.OrderID)
		if err != nil {
			return err
		}
		if !Authorized(order, input.Actor) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order is outside your city")
		}
		if order.Status != enums.OrderStatusPending && order.Status != enums.OrderStatusAccepted {
			return pkgerrors.New(pkgerrors.CodeInvalidState, "order cannot be accepted from its current status").
				WithDetails(map[string]any{"status": order.Status})
		}

		actorID := input.Actor.ID
		err = repo.UpdateOrder(ctx, order.ID, map[string]any{
			"status":                   enums.OrderStatusAssignedToDelivery,
			"assigned_delivery_man_id": actorID,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign order")
		}

		order.Status = enums.OrderStatusAssignedToDelivery
		order.AssignedDeliveryManID = &actorID
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Reject(ctx context.Context, input RejectInput) (*models.Order, error) {
	if err := validateActor(input.OrderID, input.Actor); err != nil {
		return nil, err
	}

	var out *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := loadForUpdate(ctx, repo, input.OrderID)
		if err != nil {
			return err
		}
		if !Authorized(order, input.Actor) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order is outside your city")
		}

		actorID := input.Actor.ID
		_, err = s.recorder.Append(ctx, tx, attempts.AppendInput{
			OrderID:       order.ID,
			DeliveryManID: &actorID,
			Outcome:       enums.AttemptOutcomeRefused,
			Reason:        input.Reason,
		})
		if err != nil {
			return err
		}

		// the only transition that unassigns, so the order can be re-routed
		err = repo.UpdateOrder(ctx, order.ID, map[string]any{
			"status":                   enums.OrderStatusRejected,
			"assigned_delivery_man_id": nil,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reject order")
		}

		order.Status = enums.OrderStatusRejected
		order.AssignedDeliveryManID = nil
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) SetStatus(ctx context.Context, input SetStatusInput) (*models.Order, error) {
	if err := validateActor(input.OrderID, input.Actor); err != nil {
		return nil, err
	}
	switch input.Status {
	case enums.OrderStatusAccepted, enums.OrderStatusDelivered, enums.OrderStatusReported:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported status").
			WithDetails(map[string]any{"status": input.Status})
	}

	var out *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := loadForUpdate(ctx, repo, input.OrderID)
		if err != nil {
			return err
		}
		if !Authorized(order, input.Actor) {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order is outside your city")
		}

		if input.Status == enums.OrderStatusDelivered {
			out, err = s.deliver(ctx, tx, repo, order, input)
			return err
		}

		err = repo.UpdateOrder(ctx, order.ID, map[string]any{"status": input.Status})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}

		outcome := enums.AttemptOutcomeAttempted
		if input.Status == enums.OrderStatusReported {
			outcome = attempts.Classify(input.Reason, enums.AttemptOutcomeOther)
		}
		actorID := input.Actor.ID
		_, err = s.recorder.Append(ctx, tx, attempts.AppendInput{
			OrderID:       order.ID,
			DeliveryManID: &actorID,
			Outcome:       outcome,
			Reason:        input.Reason,
			Notes:         input.Notes,
			Latitude:      latitude(input.Location),
			Longitude:     longitude(input.Location),
		})
		if err != nil {
			return err
		}

		order.Status = input.Status
		out = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// deliver performs the terminal-success transition. The conditional update is
// a second safeguard beyond the row lock: zero rows affected means someone
// already delivered the order and the call is treated as settled.
func (s *service) deliver(ctx context.Context, tx *gorm.DB, repo Repository, order *models.Order, input SetStatusInput) (*models.Order, error) {
	now := time.Now().UTC()

	updated, err := repo.MarkDelivered(ctx, order.ID, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order delivered")
	}
	if !updated {
		return order, nil
	}

	actorID := input.Actor.ID
	_, err = s.recorder.Append(ctx, tx, attempts.AppendInput{
		OrderID:       order.ID,
		DeliveryManID: &actorID,
		Outcome:       enums.AttemptOutcomeSuccessful,
		Reason:        input.Reason,
		Notes:         input.Notes,
		Latitude:      latitude(input.Location),
		Longitude:     longitude(input.Location),
	})
	if err != nil {
		return nil, err
	}

	if err := s.settlement.SettleDelivery(ctx, tx, order, input.Actor); err != nil {
		return nil, err
	}

	order.Status = enums.OrderStatusDelivered
	order.DeliveredAt = &now
	return order, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID, actor *models.DeliveryMan) (*models.Order, error) {
	if err := validateActor(orderID, actor); err != nil {
		return nil, err
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !Authorized(order, actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order is outside your city")
	}
	return order, nil
}

func (s *service) ListAttempts(ctx context.Context, orderID uuid.UUID, actor *models.DeliveryMan) ([]models.DeliveryAttempt, error) {
	if _, err := s.Get(ctx, orderID, actor); err != nil {
		return nil, err
	}
	return s.recorder.ListByOrder(ctx, orderID)
}

func (s *service) ListAssigned(ctx context.Context, actor *models.DeliveryMan, params pagination.Params) (*OrderList, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "courier identity missing")
	}
	list, err := s.repo.ListAssigned(ctx, actor.ID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assigned orders")
	}
	return list, nil
}

func (s *service) ListQueue(ctx context.Context, actor *models.DeliveryMan, params pagination.Params) (*OrderList, error) {
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "courier identity missing")
	}
	list, err := s.repo.ListCityQueue(ctx, actor.City, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list city queue")
	}
	return list, nil
}

func validateActor(orderID uuid.UUID, actor *models.DeliveryMan) error {
	if orderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if actor == nil || actor.ID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "courier identity missing")
	}
	return nil
}

func loadForUpdate(ctx context.Context, repo Repository, orderID uuid.UUID) (*models.Order, error) {
	order, err := repo.FindByIDForUpdate(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func latitude(loc *Location) *float64 {
	if loc == nil {
		return nil
	}
	return &loc.Latitude
}

func longitude(loc *Location) *float64 {
	if loc == nil {
		return nil
	}
	return &loc.Longitude
}
