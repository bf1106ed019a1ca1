package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dispatchly/dispatchly-backend/api/routes"
	"github.com/dispatchly/dispatchly-backend/internal/attempts"
	"github.com/dispatchly/dispatchly-backend/internal/couriers"
	"github.com/dispatchly/dispatchly-backend/internal/finance"
	"github.com/dispatchly/dispatchly-backend/internal/merchants"
	"github.com/dispatchly/dispatchly-backend/internal/notes"
	"github.com/dispatchly/dispatchly-backend/internal/orders"
	"github.com/dispatchly/dispatchly-backend/internal/payroll"
	"github.com/dispatchly/dispatchly-backend/pkg/config"
	"github.com/dispatchly/dispatchly-backend/pkg/db"
	"github.com/dispatchly/dispatchly-backend/pkg/logger"
	"github.com/dispatchly/dispatchly-backend/pkg/metrics"
	"github.com/dispatchly/dispatchly-backend/pkg/migrate"
	"github.com/dispatchly/dispatchly-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(promRegistry)

	gormDB := dbClient.DB()
	courierRepo := couriers.NewRepository(gormDB)
	merchantRepo := merchants.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)
	attemptsRepo := attempts.NewRepository(gormDB)
	financeRepo := finance.NewRepository(gormDB)
	notesRepo := notes.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)

	recorder, err := attempts.NewRecorder(attemptsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create attempt recorder", err)
		os.Exit(1)
	}

	financeSvc, err := finance.NewService(financeRepo, dbClient, courierRepo, merchantRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create finance service", err)
		os.Exit(1)
	}

	ordersSvc, err := orders.NewService(ordersRepo, dbClient, recorder, financeSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	notesSvc, err := notes.NewService(notesRepo, ordersSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create notes service", err)
		os.Exit(1)
	}

	payrollSvc, err := payroll.NewService(payrollRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create payroll service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			promRegistry,
			httpMetrics,
			courierRepo,
			ordersSvc,
			financeSvc,
			notesSvc,
			payrollSvc,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
