package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/internal/couriers"
	"github.com/dispatchly/dispatchly-backend/internal/merchants"
	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/dispatchly/dispatchly-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// SettlementInput identifies a courier settlement request.
type SettlementInput struct {
	DeliveryManID uuid.UUID
	AmountCents   int64
	Note          *string
}

// MerchantPayoutInput identifies a merchant payout request.
type MerchantPayoutInput struct {
	MerchantID  uuid.UUID
	AmountCents int64
	Note        *string
}

// Summary is the courier-facing financial snapshot. Pending figures are
// derived from the transfer ledger; the available balance is floored at zero
// for display while the underlying ledger is never clamped.
type Summary struct {
	TotalEarnedCents      int64 `json:"total_earned_cents"`
	PendingEarningsCents  int64 `json:"pending_earnings_cents"`
	CollectedCODCents     int64 `json:"collected_cod_cents"`
	PendingCODCents       int64 `json:"pending_cod_cents"`
	AvailableBalanceCents int64 `json:"available_balance_cents"`
}

// Service is the financial settlement engine.
type Service interface {
	SettleDelivery(ctx context.Context, tx *gorm.DB, order *models.Order, actor *models.DeliveryMan) error
	PayEarnings(ctx context.Context, input SettlementInput) (*models.MoneyTransfer, error)
	CollectCOD(ctx context.Context, input SettlementInput) (*models.MoneyTransfer, error)
	Summary(ctx context.Context, deliveryManID uuid.UUID) (*Summary, error)
	PayMerchant(ctx context.Context, input MerchantPayoutInput) (*models.MoneyTransfer, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	couriers  couriers.Repository
	merchants merchants.Repository
}

// NewService builds the settlement engine with the required dependencies.
func NewService(repo Repository, tx txRunner, courierRepo couriers.Repository, merchantRepo merchants.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("finance repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if courierRepo == nil {
		return nil, fmt.Errorf("couriers repository required")
	}
	if merchantRepo == nil {
		return nil, fmt.Errorf("merchants repository required")
	}
	return &service{
		repo:      repo,
		tx:        tx,
		couriers:  courierRepo,
		merchants: merchantRepo,
	}, nil
}

// SettleDelivery applies the per-delivery counter credits. It runs on the
// caller's transaction so counters stay consistent with the attempt history
// that justifies them.
func (s *service) SettleDelivery(ctx context.Context, tx *gorm.DB, order *models.Order, actor *models.DeliveryMan) error {
	if order == nil || actor == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order and actor required")
	}

	var codCents int64
	if order.PaymentMethod == enums.PaymentMethodCOD {
		codCents = order.TotalCents
	}

	if err := s.couriers.WithTx(tx).CreditDelivery(ctx, actor.ID, actor.BaseFeeCents, codCents); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "delivery man not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "credit delivery")
	}
	return nil
}

func (s *service) PayEarnings(ctx context.Context, input SettlementInput) (*models.MoneyTransfer, error) {
	return s.settleCourier(ctx, input, enums.TransferKindEarnings)
}

func (s *service) CollectCOD(ctx context.Context, input SettlementInput) (*models.MoneyTransfer, error) {
	return s.settleCourier(ctx, input, enums.TransferKindCOD)
}

// settleCourier creates one ledger transfer after re-checking the pending
// ceiling under the courier row lock, so the ceiling stays hard even when
// two admin requests race.
func (s *service) settleCourier(ctx context.Context, input SettlementInput, kind enums.TransferKind) (*models.MoneyTransfer, error) {
	if input.DeliveryManID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery man id required")
	}
	if input.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidAmount, "amount must be positive")
	}

	var out *models.MoneyTransfer
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		courier, err := s.couriers.WithTx(tx).FindByIDForUpdate(ctx, input.DeliveryManID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "delivery man not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery man")
		}

		repo := s.repo.WithTx(tx)
		settled, err := repo.SumByCourier(ctx, courier.ID, kind)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum settled transfers")
		}

		var pending int64
		switch kind {
		case enums.TransferKindEarnings:
			pending = courier.TotalEarnedCents - settled
		case enums.TransferKindCOD:
			pending = courier.CODCollectedCents - settled
		default:
			return pkgerrors.New(pkgerrors.CodeValidation, "unsupported transfer kind")
		}
		if input.AmountCents > pending {
			return pkgerrors.New(pkgerrors.CodeInvalidAmount, "amount exceeds pending balance").
				WithDetails(map[string]any{"pending_cents": pending})
		}

		courierID := courier.ID
		transfer := &models.MoneyTransfer{
			ID:            uuid.New(),
			DeliveryManID: &courierID,
			Kind:          kind,
			AmountCents:   input.AmountCents,
			Reference:     newReference(kind),
			Note:          input.Note,
			TransferDate:  time.Now().UTC(),
		}
		out, err = repo.CreateTransfer(ctx, transfer)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transfer")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Summary(ctx context.Context, deliveryManID uuid.UUID) (*Summary, error) {
	if deliveryManID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery man id required")
	}

	courier, err := s.couriers.FindByID(ctx, deliveryManID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery man not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery man")
	}

	settledEarnings, err := s.repo.SumByCourier(ctx, courier.ID, enums.TransferKindEarnings)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum settled earnings")
	}
	settledCOD, err := s.repo.SumByCourier(ctx, courier.ID, enums.TransferKindCOD)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum settled cod")
	}

	pendingEarnings := courier.TotalEarnedCents - settledEarnings
	available := pendingEarnings
	if available < 0 {
		available = 0
	}

	return &Summary{
		TotalEarnedCents:      courier.TotalEarnedCents,
		PendingEarningsCents:  pendingEarnings,
		CollectedCODCents:     courier.CODCollectedCents,
		PendingCODCents:       courier.CODCollectedCents - settledCOD,
		AvailableBalanceCents: available,
	}, nil
}

// PayMerchant mirrors courier settlement but mutates the stored merchant
// balance directly instead of deriving it from the ledger.
func (s *service) PayMerchant(ctx context.Context, input MerchantPayoutInput) (*models.MoneyTransfer, error) {
	if input.MerchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id required")
	}
	if input.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidAmount, "amount must be positive")
	}

	var out *models.MoneyTransfer
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		merchantRepo := s.merchants.WithTx(tx)

		merchant, err := merchantRepo.FindByIDForUpdate(ctx, input.MerchantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "merchant not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load merchant")
		}
		if input.AmountCents > merchant.BalanceCents {
			return pkgerrors.New(pkgerrors.CodeInvalidAmount, "amount exceeds merchant balance").
				WithDetails(map[string]any{"balance_cents": merchant.BalanceCents})
		}

		merchantID := merchant.ID
		transfer := &models.MoneyTransfer{
			ID:           uuid.New(),
			MerchantID:   &merchantID,
			Kind:         enums.TransferKindMerchantPayout,
			AmountCents:  input.AmountCents,
			Reference:    newReference(enums.TransferKindMerchantPayout),
			Note:         input.Note,
			TransferDate: time.Now().UTC(),
		}
		out, err = s.repo.WithTx(tx).CreateTransfer(ctx, transfer)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create transfer")
		}

		if err := merchantRepo.AdjustBalance(ctx, merchant.ID, -input.AmountCents); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjust merchant balance")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func newReference(kind enums.TransferKind) string {
	return fmt.Sprintf("%s-%s", kind, uuid.New())
}
