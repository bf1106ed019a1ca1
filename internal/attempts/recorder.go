package attempts

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/dispatchly/dispatchly-backend/pkg/errors"
)

// AppendInput carries everything needed to record one attempt.
type AppendInput struct {
	OrderID       uuid.UUID
	DeliveryManID *uuid.UUID
	Outcome       enums.AttemptOutcome
	Reason        *string
	Notes         *string
	Latitude      *float64
	Longitude     *float64
}

// Recorder appends immutable attempt records inside a caller-owned
// transaction so attempt numbers stay gapless under concurrency.
type Recorder struct {
	repo Repository
}

// NewRecorder builds an attempt recorder.
func NewRecorder(repo Repository) (*Recorder, error) {
	if repo == nil {
		return nil, fmt.Errorf("attempts repository required")
	}
	return &Recorder{repo: repo}, nil
}

// Append allocates the next attempt number and inserts the record. It must
// run on the same transaction that locks and mutates the order row; the
// unique (order_id, attempt_number) index backstops any serialization gap.
func (r *Recorder) Append(ctx context.Context, tx *gorm.DB, input AppendInput) (*models.DeliveryAttempt, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Outcome.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid attempt outcome")
	}

	repo := r.repo.WithTx(tx)

	last, err := repo.MaxAttemptNumber(ctx, input.OrderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read last attempt number")
	}

	attempt := &models.DeliveryAttempt{
		ID:            uuid.New(),
		OrderID:       input.OrderID,
		AttemptNumber: last + 1,
		DeliveryManID: input.DeliveryManID,
		Outcome:       input.Outcome,
		Reason:        input.Reason,
		Notes:         input.Notes,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
	}

	created, err := repo.Insert(ctx, attempt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert delivery attempt")
	}
	return created, nil
}

// ListByOrder returns the attempt trail, newest attempt first.
func (r *Recorder) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DeliveryAttempt, error) {
	list, err := r.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivery attempts")
	}
	return list, nil
}

// Classify maps a free-text reason to a canonical outcome. Best-effort
// substring matching; the literal reason is stored regardless, so this is
// enrichment and never feeds financial math.
func Classify(reason *string, fallback enums.AttemptOutcome) enums.AttemptOutcome {
	if reason == nil {
		return fallback
	}
	text := strings.ToLower(strings.TrimSpace(*reason))
	switch {
	case strings.Contains(text, "not available"):
		return enums.AttemptOutcomeCustomerNotAvailable
	case strings.Contains(text, "address"):
		return enums.AttemptOutcomeWrongAddress
	case strings.Contains(text, "refus"):
		return enums.AttemptOutcomeRefused
	default:
		return fallback
	}
}
