package controllers

import (
	"net/http"

	"github.com/dispatchly/dispatchly-backend/api/middleware"
	"github.com/dispatchly/dispatchly-backend/api/responses"
	internalfinance "github.com/dispatchly/dispatchly-backend/internal/finance"
	pkgerrors "github.com/dispatchly/dispatchly-backend/pkg/errors"
	"github.com/dispatchly/dispatchly-backend/pkg/logger"
)

// DeliveryFinanceSummary returns the acting courier's own financial snapshot.
func DeliveryFinanceSummary(svc internalfinance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courier := middleware.CourierFromContext(r.Context())
		if courier == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "courier identity missing"))
			return
		}

		summary, err := svc.Summary(r.Context(), courier.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}
