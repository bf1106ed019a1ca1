package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dispatchly/dispatchly-backend/api/middleware"
	"github.com/dispatchly/dispatchly-backend/api/responses"
	"github.com/dispatchly/dispatchly-backend/api/validators"
	internalnotes "github.com/dispatchly/dispatchly-backend/internal/notes"
	"github.com/dispatchly/dispatchly-backend/pkg/logger"
)

type addNoteRequest struct {
	Body string `json:"body" validate:"required,max=1000"`
}

// AddOrderNote attaches a courier note to an order.
func AddOrderNote(svc internalnotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req addNoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		note, err := svc.Add(r.Context(), internalnotes.AddInput{
			OrderID: orderID,
			Actor:   middleware.CourierFromContext(r.Context()),
			Body:    req.Body,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, note)
	}
}

// ListOrderNotes returns the notes on an order, newest first.
func ListOrderNotes(svc internalnotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "order id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), orderID, middleware.CourierFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
