package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dispatchly/dispatchly-backend/api/responses"
	"github.com/dispatchly/dispatchly-backend/api/validators"
	internalpayroll "github.com/dispatchly/dispatchly-backend/internal/payroll"
	"github.com/dispatchly/dispatchly-backend/pkg/logger"
)

// WorkerBalance returns the attendance-derived payroll balance for a worker.
func WorkerBalance(svc internalpayroll.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workerID, err := validators.ParsePathUUID(chi.URLParam(r, "workerID"), "worker id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Balance(r.Context(), workerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}
