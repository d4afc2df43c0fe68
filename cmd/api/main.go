package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/maxscharwath/tacocrew-sub004/api/routes"
	"github.com/maxscharwath/tacocrew-sub004/internal/grouporders"
	"github.com/maxscharwath/tacocrew-sub004/internal/stock"
	"github.com/maxscharwath/tacocrew-sub004/internal/submission"
	"github.com/maxscharwath/tacocrew-sub004/pkg/config"
	"github.com/maxscharwath/tacocrew-sub004/pkg/db"
	"github.com/maxscharwath/tacocrew-sub004/pkg/logger"
	"github.com/maxscharwath/tacocrew-sub004/pkg/metrics"
	"github.com/maxscharwath/tacocrew-sub004/pkg/migrate"
	"github.com/maxscharwath/tacocrew-sub004/pkg/ordering"
	"github.com/maxscharwath/tacocrew-sub004/pkg/redis"
	"github.com/prometheus/client_golang/prometheus"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	orderingClient, err := ordering.NewClient(cfg.Ordering, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create ordering client", err)
		os.Exit(1)
	}

	stockService, err := stock.NewService(orderingClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock service", err)
		os.Exit(1)
	}

	groupOrderRepo := grouporders.NewRepository(dbClient.DB())
	groupOrderService, err := grouporders.NewService(groupOrderRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create group order service", err)
		os.Exit(1)
	}

	submissionMetrics := metrics.NewSubmissionMetrics(prometheus.DefaultRegisterer)
	submissionService, err := submission.NewService(
		groupOrderRepo,
		stockService,
		orderingClient,
		logg,
		submissionMetrics,
		cfg.Ordering.ReplayConcurrency,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create submission service", err)
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
		Handler: routes.NewRouter(routes.Dependencies{
			Config:            cfg,
			Logger:            logg,
			DBPinger:          dbClient,
			RedisPinger:       redisClient,
			IdempotencyStore:  redisClient,
			StockService:      stockService,
			GroupOrderService: groupOrderService,
			SubmissionService: submissionService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
