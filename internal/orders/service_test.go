package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/internal/attempts"
	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/dispatchly/dispatchly-backend/pkg/errors"
	"github.com/dispatchly/dispatchly-backend/pkg/pagination"
)

type stubOrdersRepo struct {
	order        *models.Order
	orderUpdates map[string]any
	markCalls    int
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubOrdersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.order, nil
}

func (s *stubOrdersRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.FindByID(ctx, id)
}

func (s *stubOrdersRepo) UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if s.order == nil || s.order.ID != id {
		return gorm.ErrRecordNotFound
	}
	s.orderUpdates = updates
	for key, value := range updates {
		switch key {
		case "status":
			if v, ok := value.(enums.OrderStatus); ok {
				s.order.Status = v
			}
		case "assigned_delivery_man_id":
			switch v := value.(type) {
			case uuid.UUID:
				id := v
				s.order.AssignedDeliveryManID = &id
			case nil:
				s.order.AssignedDeliveryManID = nil
			}
		}
	}
	return nil
}

func (s *stubOrdersRepo) MarkDelivered(ctx context.Context, id uuid.UUID, deliveredAt time.Time) (bool, error) {
	if s.order == nil || s.order.ID != id {
		return false, nil
	}
	s.markCalls++
	if s.order.Status == enums.OrderStatusDelivered {
		return false, nil
	}
	at := deliveredAt
	s.order.Status = enums.OrderStatusDelivered
	s.order.DeliveredAt = &at
	return true, nil
}

func (s *stubOrdersRepo) ListAssigned(ctx context.Context, deliveryManID uuid.UUID, params pagination.Params) (*OrderList, error) {
	return &OrderList{}, nil
}

func (s *stubOrdersRepo) ListCityQueue(ctx context.Context, city *string, params pagination.Params) (*OrderList, error) {
	return &OrderList{}, nil
}

type stubRecorder struct {
	appended []attempts.AppendInput
	listed   []models.DeliveryAttempt
	err      error
}

func (s *stubRecorder) Append(ctx context.Context, tx *gorm.DB, input attempts.AppendInput) (*models.DeliveryAttempt, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.appended = append(s.appended, input)
	return &models.DeliveryAttempt{
		ID:            uuid.New(),
		OrderID:       input.OrderID,
		AttemptNumber: len(s.appended),
		DeliveryManID: input.DeliveryManID,
		Outcome:       input.Outcome,
		Reason:        input.Reason,
	}, nil
}

func (s *stubRecorder) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DeliveryAttempt, error) {
	return s.listed, nil
}

type stubSettlement struct {
	calls     int
	lastActor *models.DeliveryMan
	err       error
}

func (s *stubSettlement) SettleDelivery(ctx context.Context, tx *gorm.DB, order *models.Order, actor *models.DeliveryMan) error {
	if s.err != nil {
		return s.err
	}
	s.calls++
	s.lastActor = actor
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func ptr[T any](v T) *T {
	return &v
}

func newCourier(city string) *models.DeliveryMan {
	return &models.DeliveryMan{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		Name:         "Test Courier",
		City:         ptr(city),
		Active:       true,
		BaseFeeCents: 1000,
	}
}

func newPendingOrder(city string) *models.Order {
	return &models.Order{
		ID:            uuid.New(),
		Code:          "ORD-0001",
		MerchantID:    uuid.New(),
		CustomerName:  "Customer",
		City:          ptr(city),
		TotalCents:    25000,
		PaymentMethod: enums.PaymentMethodCOD,
		Status:        enums.OrderStatusPending,
	}
}

func newTestService(t *testing.T, repo *stubOrdersRepo, recorder *stubRecorder, settlement *stubSettlement) Service {
	t.Helper()

	svc, err := NewService(repo, stubTxRunner{}, recorder, settlement)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func TestAcceptAssignsActor(t *testing.T) {
	order := newPendingOrder("Dakhla")
	actor := newCourier("Dakhla")
	repo := &stubOrdersRepo{order: order}
	recorder := &stubRecorder{}
	svc := newTestService(t, repo, recorder, &stubSettlement{})

	got, err := svc.Accept(context.Background(), AcceptInput{OrderID: order.ID, Actor: actor})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if got.Status != enums.OrderStatusAssignedToDelivery {
		t.Fatalf("expected assigned_to_delivery got %s", got.Status)
	}
	if got.AssignedDeliveryManID == nil || *got.AssignedDeliveryManID != actor.ID {
		t.Fatalf("expected assignment to actor, got %v", got.AssignedDeliveryManID)
	}
	if len(recorder.appended) != 0 {
		t.Fatalf("accept must not append attempts, got %d", len(recorder.appended))
	}
}

func TestAcceptForbiddenOnCityMismatch(t *testing.T) {
	order := newPendingOrder("Dakhla")
	actor := newCourier("Laayoune")
	repo := &stubOrdersRepo{order: order}
	svc := newTestService(t, repo, &stubRecorder{}, &stubSettlement{})

	_, err := svc.Accept(context.Background(), AcceptInput{OrderID: order.ID, Actor: actor})
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden got %v", err)
	}
	if repo.orderUpdates != nil {
		t.Fatalf("no updates expected, got %+v", repo.orderUpdates)
	}
}

func TestAcceptInvalidStateWhenAlreadyAssigned(t *testing.T) {
	order := newPendingOrder("Dakhla")
	actor := newCourier("Dakhla")
	order.Status = enums.OrderStatusAssignedToDelivery
	order.AssignedDeliveryManID = &actor.ID
	repo := &stubOrdersRepo{order: order}
	svc := newTestService(t, repo, &stubRecorder{}, &stubSettlement{})

	_, err := svc.Accept(context.Background(), AcceptInput{OrderID: order.ID, Actor: actor})
	if !pkgerrors.IsCode(err, pkgerrors.CodeInvalidState) {
		t.Fatalf("expected invalid state got %v", err)
	}
}

func TestAcceptNotFound(t *testing.T) {
	svc := newTestService(t, &stubOrdersRepo{}, &stubRecorder{}, &stubSettlement{})

	_, err := svc.Accept(context.Background(), AcceptInput{OrderID: uuid.New(), Actor: newCourier("Dakhla")})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestRejectClearsAssignmentAndPreservesReason(t *testing.T) {
	order := newPendingOrder("Dakhla")
	actor := newCourier("Dakhla")
	order.Status = enums.OrderStatusAssignedToDelivery
	order.AssignedDeliveryManID = &actor.ID
	repo := &stubOrdersRepo{order: order}
	recorder := &stubRecorder{}
	svc := newTestService(t, repo, recorder, &stubSettlement{})

	reason := "Refused by customer"
	got, err := svc.Reject(context.Background(), RejectInput{OrderID: order.ID, Actor: actor, Reason: &reason})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if got.Status != enums.OrderStatusRejected {
		t.Fatalf("expected rejected got %s", got.Status)
	}
	if got.AssignedDeliveryManID != nil {
		t.Fatalf("expected assignment cleared, got %v", got.AssignedDeliveryManID)
	}
	if len(recorder.appended) != 1 {
		t.Fatalf("expected one attempt got %d", len(recorder.appended))
	}
	attempt := recorder.appended[0]
	if attempt.Outcome != enums.AttemptOutcomeRefused {
		t.Fatalf("expected refused outcome got %s", attempt.Outcome)
	}
	if attempt.Reason == nil || *attempt.Reason != "Refused by customer" {
		t.Fatalf("expected literal reason preserved, got %v", attempt.Reason)
	}
}

func TestSetStatusDeliveredCreditsExactlyOnce(t *testing.T) {
	order := newPendingOrder("Dakhla")
	actor := newCourier("Dakhla")
	order.Status = enums.OrderStatusAssignedToDelivery
	order.AssignedDeliveryManID = &actor.ID
	repo := &stubOrdersRepo{order: order}
	recorder := &stubRecorder{}
	settlement := &stubSettlement{}
	svc := newTestService(t, repo, recorder, settlement)

	first, err := svc.SetStatus(context.Background(), SetStatusInput{
		OrderID: order.ID,
		Actor:   actor,
		Status:  enums.OrderStatusDelivered,
	})
	if err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if first.Status != enums.OrderStatusDelivered {
		t.Fatalf("expected delivered got %s", first.Status)
	}
	if first.DeliveredAt == nil {
		t.Fatal("expected delivered_at set")
	}
	if settlement.calls != 1 {
		t.Fatalf("expected one settlement call got %d", settlement.calls)
	}
	if len(recorder.appended) != 1 || recorder.appended[0].Outcome != enums.AttemptOutcomeSuccessful {
		t.Fatalf("expected one successful attempt, got %+v", recorder.appended)
	}

	second, err := svc.SetStatus(context.Background(), SetStatusInput{
		OrderID: order.ID,
		Actor:   actor,
		Status:  enums.OrderStatusDelivered,
	})
	if err != nil {
		t.Fatalf("second delivery call failed: %v", err)
	}
	if second.Status != enums.OrderStatusDelivered {
		t.Fatalf("expected delivered got %s", second.Status)
	}
	if settlement.calls != 1 {
		t.Fatalf("double credit: settlement called %d times", settlement.calls)
	}
	if len(recorder.appended) != 1 {
		t.Fatalf("duplicate attempt appended: %d", len(recorder.appended))
	}
}

func TestSetStatusDeliveredForbiddenForForeignCourier(t *testing.T) {
	order := newPendingOrder("Dakhla")
	foreign := newCourier("Laayoune")
	order.Status = enums.OrderStatusAssignedToDelivery
	other := uuid.New()
	order.AssignedDeliveryManID = &other
	repo := &stubOrdersRepo{order: order}
	settlement := &stubSettlement{}
	svc := newTestService(t, repo, &stubRecorder{}, settlement)

	_, err := svc.SetStatus(context.Background(), SetStatusInput{
		OrderID: order.ID,
		Actor:   foreign,
		Status:  enums.OrderStatusDelivered,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden got %v", err)
	}
	if settlement.calls != 0 {
		t.Fatalf("settlement must not run, got %d calls", settlement.calls)
	}
}

func TestSetStatusRejectsUnsupportedStatus(t *testing.T) {
	order := newPendingOrder("Dakhla")
	actor := newCourier("Dakhla")
	repo := &stubOrdersRepo{order: order}
	svc := newTestService(t, repo, &stubRecorder{}, &stubSettlement{})

	_, err := svc.SetStatus(context.Background(), SetStatusInput{
		OrderID: order.ID,
		Actor:   actor,
		Status:  enums.OrderStatusDelayed,
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestSetStatusReportedClassifiesReason(t *testing.T) {
	order := newPendingOrder("Dakhla")
	actor := newCourier("Dakhla")
	order.Status = enums.OrderStatusAssignedToDelivery
	order.AssignedDeliveryManID = &actor.ID
	repo := &stubOrdersRepo{order: order}
	recorder := &stubRecorder{}
	svc := newTestService(t, repo, recorder, &stubSettlement{})

	reason := "customer not available until evening"
	got, err := svc.SetStatus(context.Background(), SetStatusInput{
		OrderID: order.ID,
		Actor:   actor,
		Status:  enums.OrderStatusReported,
		Reason:  &reason,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if got.Status != enums.OrderStatusReported {
		t.Fatalf("expected reported got %s", got.Status)
	}
	if len(recorder.appended) != 1 {
		t.Fatalf("expected one attempt got %d", len(recorder.appended))
	}
	if recorder.appended[0].Outcome != enums.AttemptOutcomeCustomerNotAvailable {
		t.Fatalf("expected classified outcome got %s", recorder.appended[0].Outcome)
	}
}

func TestListAttemptsEnforcesGuard(t *testing.T) {
	order := newPendingOrder("Dakhla")
	foreign := newCourier("Laayoune")
	repo := &stubOrdersRepo{order: order}
	svc := newTestService(t, repo, &stubRecorder{}, &stubSettlement{})

	_, err := svc.ListAttempts(context.Background(), order.ID, foreign)
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden got %v", err)
	}
}
