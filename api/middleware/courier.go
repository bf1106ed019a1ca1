package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dispatchly/dispatchly-backend/api/responses"
	"github.com/dispatchly/dispatchly-backend/pkg/db/models"
	pkgerrors "github.com/dispatchly/dispatchly-backend/pkg/errors"
	"github.com/dispatchly/dispatchly-backend/pkg/logger"
)

type courierFinder interface {
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*models.DeliveryMan, error)
}

// CourierContext resolves the live delivery-man record for the authenticated
// user on every request. Deactivating a courier takes effect immediately, no
// matter how long their token remains valid.
func CourierContext(finder courierFinder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := uuid.Parse(UserIDFromContext(r.Context()))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			courier, err := finder.FindActiveByUserID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active courier profile"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load courier profile"))
				return
			}

			ctx := WithCourier(r.Context(), courier)
			if logg != nil {
				ctx = logg.WithCourierID(ctx, courier.ID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
