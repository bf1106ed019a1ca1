package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dispatchly/dispatchly-backend/api/middleware"
	"github.com/dispatchly/dispatchly-backend/api/responses"
	"github.com/dispatchly/dispatchly-backend/api/validators"
	internalorders "github.com/dispatchly/dispatchly-backend/internal/orders"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
	pkgerrors "github.com/dispatchly/dispatchly-backend/pkg/errors"
	"github.com/dispatchly/dispatchly-backend/pkg/logger"
	"github.com/dispatchly/dispatchly-backend/pkg/pagination"
)

const maxReasonLen = 500

type rejectOrderRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

type setStatusRequest struct {
	Status   string                   `json:"status" validate:"required"`
	Reason   *string                  `json:"reason" validate:"omitempty,max=500"`
	Notes    *string                  `json:"notes" validate:"omitempty,max=500"`
	Location *internalorders.Location `json:"location" validate:"omitempty"`
}

// DeliveryOrders returns the courier's assigned order page.
func DeliveryOrders(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListAssigned(r.Context(), middleware.CourierFromContext(r.Context()), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// DeliveryQueue returns unassigned pending orders visible to the courier's city.
func DeliveryQueue(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListQueue(r.Context(), middleware.CourierFromContext(r.Context()), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// DeliveryOrderDetail returns a single order after the access guard passes.
func DeliveryOrderDetail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), orderID, middleware.CourierFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AcceptOrder assigns the order to the acting courier.
func AcceptOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Accept(r.Context(), internalorders.AcceptInput{
			OrderID: orderID,
			Actor:   middleware.CourierFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// RejectOrder records a refused attempt and releases the assignment.
func RejectOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req rejectOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Reject(r.Context(), internalorders.RejectInput{
			OrderID: orderID,
			Actor:   middleware.CourierFromContext(r.Context()),
			Reason:  sanitizeOptional(req.Reason),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// SetOrderStatus applies a courier-driven status change.
func SetOrderStatus(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req setStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(strings.TrimSpace(req.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		order, err := svc.SetStatus(r.Context(), internalorders.SetStatusInput{
			OrderID:  orderID,
			Actor:    middleware.CourierFromContext(r.Context()),
			Status:   status,
			Reason:   sanitizeOptional(req.Reason),
			Notes:    sanitizeOptional(req.Notes),
			Location: req.Location,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrderAttempts returns the full attempt history, newest first.
func OrderAttempts(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		attempts, err := svc.ListAttempts(r.Context(), orderID, middleware.CourierFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, attempts)
	}
}

func paginationParams(r *http.Request) (pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}, nil
}

func sanitizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := validators.SanitizeString(*value, maxReasonLen)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
