package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dispatchly/dispatchly-backend/api/responses"
	"github.com/dispatchly/dispatchly-backend/api/validators"
	internalfinance "github.com/dispatchly/dispatchly-backend/internal/finance"
	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	"github.com/dispatchly/dispatchly-backend/pkg/logger"
)

type courierSettlementRequest struct {
	AmountCents int64   `json:"amount_cents" validate:"required,min=1"`
	Note        *string `json:"note" validate:"omitempty,max=500"`
}

type merchantPayoutRequest struct {
	AmountCents int64   `json:"amount_cents" validate:"required,min=1"`
	Note        *string `json:"note" validate:"omitempty,max=500"`
}

// PayCourierEarnings settles delivery fees out to a courier.
func PayCourierEarnings(svc internalfinance.Service, logg *logger.Logger) http.HandlerFunc {
	return courierSettlement(logg, svc.PayEarnings)
}

// CollectCourierCOD records cash handed over by a courier.
func CollectCourierCOD(svc internalfinance.Service, logg *logger.Logger) http.HandlerFunc {
	return courierSettlement(logg, svc.CollectCOD)
}

func courierSettlement(logg *logger.Logger, settle func(ctx context.Context, input internalfinance.SettlementInput) (*models.MoneyTransfer, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deliveryManID, err := validators.ParsePathUUID(chi.URLParam(r, "deliveryManID"), "delivery man id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req courierSettlementRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transfer, err := settle(r.Context(), internalfinance.SettlementInput{
			DeliveryManID: deliveryManID,
			AmountCents:   req.AmountCents,
			Note:          req.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, transfer)
	}
}

// AdminCourierFinance returns the financial snapshot for any courier.
func AdminCourierFinance(svc internalfinance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deliveryManID, err := validators.ParsePathUUID(chi.URLParam(r, "deliveryManID"), "delivery man id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Summary(r.Context(), deliveryManID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// PayMerchant pays out against a merchant's stored balance.
func PayMerchant(svc internalfinance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := validators.ParsePathUUID(chi.URLParam(r, "merchantID"), "merchant id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req merchantPayoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		transfer, err := svc.PayMerchant(r.Context(), internalfinance.MerchantPayoutInput{
			MerchantID:  merchantID,
			AmountCents: req.AmountCents,
			Note:        req.Note,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, transfer)
	}
}
