package notes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	pkgerrors "github.com/dispatchly/dispatchly-backend/pkg/errors"
)

type stubNotesRepo struct {
	notes []models.DeliveryNote
}

func (s *stubNotesRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubNotesRepo) Create(ctx context.Context, note *models.DeliveryNote) (*models.DeliveryNote, error) {
	s.notes = append(s.notes, *note)
	return note, nil
}

func (s *stubNotesRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DeliveryNote, error) {
	var out []models.DeliveryNote
	for _, note := range s.notes {
		if note.OrderID == orderID {
			out = append(out, note)
		}
	}
	return out, nil
}

// stubOrderLoader mimics the guard: only the allowed actor may see the order.
type stubOrderLoader struct {
	order   *models.Order
	allowed uuid.UUID
}

func (s *stubOrderLoader) Get(ctx context.Context, orderID uuid.UUID, actor *models.DeliveryMan) (*models.Order, error) {
	if s.order == nil || s.order.ID != orderID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if actor == nil || actor.ID != s.allowed {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order is outside your city")
	}
	return s.order, nil
}

func newNotesService(t *testing.T, repo Repository, loader orderLoader) Service {
	t.Helper()

	svc, err := NewService(repo, loader)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func TestAddNote(t *testing.T) {
	actor := &models.DeliveryMan{ID: uuid.New()}
	order := &models.Order{ID: uuid.New()}
	repo := &stubNotesRepo{}
	svc := newNotesService(t, repo, &stubOrderLoader{order: order, allowed: actor.ID})

	note, err := svc.Add(context.Background(), AddInput{
		OrderID: order.ID,
		Actor:   actor,
		Body:    "  customer asked to call before arrival  ",
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if note.Body != "customer asked to call before arrival" {
		t.Fatalf("expected trimmed body, got %q", note.Body)
	}
	if note.DeliveryManID != actor.ID || note.OrderID != order.ID {
		t.Fatal("note not attributed to actor and order")
	}
	if len(repo.notes) != 1 {
		t.Fatalf("expected one stored note got %d", len(repo.notes))
	}
}

func TestAddNoteBlankBody(t *testing.T) {
	actor := &models.DeliveryMan{ID: uuid.New()}
	order := &models.Order{ID: uuid.New()}
	repo := &stubNotesRepo{}
	svc := newNotesService(t, repo, &stubOrderLoader{order: order, allowed: actor.ID})

	_, err := svc.Add(context.Background(), AddInput{
		OrderID: order.ID,
		Actor:   actor,
		Body:    "   ",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
	if len(repo.notes) != 0 {
		t.Fatal("blank note must not be stored")
	}
}

func TestAddNoteGuardRejectsForeignCourier(t *testing.T) {
	order := &models.Order{ID: uuid.New()}
	svc := newNotesService(t, &stubNotesRepo{}, &stubOrderLoader{order: order, allowed: uuid.New()})

	_, err := svc.Add(context.Background(), AddInput{
		OrderID: order.ID,
		Actor:   &models.DeliveryMan{ID: uuid.New()},
		Body:    "should not land",
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden got %v", err)
	}
}

func TestListNotesGuarded(t *testing.T) {
	actor := &models.DeliveryMan{ID: uuid.New()}
	order := &models.Order{ID: uuid.New()}
	repo := &stubNotesRepo{notes: []models.DeliveryNote{
		{ID: uuid.New(), OrderID: order.ID, DeliveryManID: actor.ID, Body: "first"},
		{ID: uuid.New(), OrderID: uuid.New(), DeliveryManID: actor.ID, Body: "other order"},
	}}
	svc := newNotesService(t, repo, &stubOrderLoader{order: order, allowed: actor.ID})

	list, err := svc.List(context.Background(), order.ID, actor)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if len(list) != 1 || list[0].Body != "first" {
		t.Fatalf("unexpected notes %+v", list)
	}

	_, err = svc.List(context.Background(), order.ID, &models.DeliveryMan{ID: uuid.New()})
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden got %v", err)
	}
}
