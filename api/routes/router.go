package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dispatchly/dispatchly-backend/api/controllers"
	"github.com/dispatchly/dispatchly-backend/api/middleware"
	"github.com/dispatchly/dispatchly-backend/internal/couriers"
	internalfinance "github.com/dispatchly/dispatchly-backend/internal/finance"
	internalnotes "github.com/dispatchly/dispatchly-backend/internal/notes"
	internalorders "github.com/dispatchly/dispatchly-backend/internal/orders"
	internalpayroll "github.com/dispatchly/dispatchly-backend/internal/payroll"
	"github.com/dispatchly/dispatchly-backend/pkg/config"
	"github.com/dispatchly/dispatchly-backend/pkg/db"
	"github.com/dispatchly/dispatchly-backend/pkg/enums"
	"github.com/dispatchly/dispatchly-backend/pkg/logger"
	"github.com/dispatchly/dispatchly-backend/pkg/metrics"
	"github.com/dispatchly/dispatchly-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	promRegistry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	courierRepo couriers.Repository,
	ordersSvc internalorders.Service,
	financeSvc internalfinance.Service,
	notesSvc internalnotes.Service,
	payrollSvc internalpayroll.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	statusPolicy := middleware.NewStatusRateLimitPolicy(cfg.RateLimit)

	var idempotencyStore redis.IdempotencyStore
	var cachePinger redis.Pinger
	var rateLimitStore interface {
		IncrWithTTL(context.Context, string, time.Duration) (int64, error)
	}
	if redisClient != nil {
		idempotencyStore = redisClient
		cachePinger = redisClient
		rateLimitStore = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cachePinger, logg))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/delivery", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.ActorRoleDeliveryMan), logg))
			r.Use(middleware.CourierContext(courierRepo, logg))

			r.Get("/finance", controllers.DeliveryFinanceSummary(financeSvc, logg))
			r.Get("/queue", controllers.DeliveryQueue(ordersSvc, logg))
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.DeliveryOrders(ordersSvc, logg))
				r.Get("/{orderID}", controllers.DeliveryOrderDetail(ordersSvc, logg))
				r.Get("/{orderID}/attempts", controllers.OrderAttempts(ordersSvc, logg))
				r.Get("/{orderID}/notes", controllers.ListOrderNotes(notesSvc, logg))
				r.Post("/{orderID}/notes", controllers.AddOrderNote(notesSvc, logg))

				r.Group(func(r chi.Router) {
					r.Use(middleware.StatusRateLimit(statusPolicy, rateLimitStore, logg))
					r.Post("/{orderID}/accept", controllers.AcceptOrder(ordersSvc, logg))
					r.Post("/{orderID}/reject", controllers.RejectOrder(ordersSvc, logg))
					r.Post("/{orderID}/status", controllers.SetOrderStatus(ordersSvc, logg))
				})
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.ActorRoleAdmin), logg))

			r.Route("/couriers/{deliveryManID}", func(r chi.Router) {
				r.Get("/finance", controllers.AdminCourierFinance(financeSvc, logg))
				r.Post("/pay-earnings", controllers.PayCourierEarnings(financeSvc, logg))
				r.Post("/collect-cod", controllers.CollectCourierCOD(financeSvc, logg))
			})
			r.Post("/merchants/{merchantID}/payouts", controllers.PayMerchant(financeSvc, logg))
			r.Get("/workers/{workerID}/balance", controllers.WorkerBalance(payrollSvc, logg))
		})
	})

	return r
}
