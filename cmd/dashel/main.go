package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dashel-erp/dashel-erp/internal/analytics"
	analytichttp "github.com/dashel-erp/dashel-erp/internal/analytics/http"
	"github.com/dashel-erp/dashel-erp/internal/app"
	"github.com/dashel-erp/dashel-erp/internal/inventory"
	"github.com/dashel-erp/dashel-erp/internal/ledger"
	"github.com/dashel-erp/dashel-erp/internal/payouts"
	"github.com/dashel-erp/dashel-erp/internal/platform/cache"
	"github.com/dashel-erp/dashel-erp/internal/platform/db"
	"github.com/dashel-erp/dashel-erp/internal/sales"
	"github.com/dashel-erp/dashel-erp/internal/search"
	"github.com/dashel-erp/dashel-erp/internal/stkpush"
	"github.com/dashel-erp/dashel-erp/internal/suppliers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, analytics cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}
	}()

	analyticsCache := analytics.NewCache(redisClient, cfg.CacheTTL)
	if err := analyticsCache.ListenForInvalidation(ctx); err != nil {
		logger.Warn("cache invalidation listener", slog.Any("error", err))
	}

	suppliersService := suppliers.NewService(suppliers.NewRepository(pool))
	suppliersHandler := suppliers.NewHandler(logger, suppliersService)

	ledgerService := ledger.NewService(ledger.NewRepository(pool))
	ledgerHandler := ledger.NewHandler(logger, ledgerService)

	payoutsService := payouts.NewService(payouts.NewRepository(pool))
	payoutsHandler := payouts.NewHandler(logger, payoutsService)

	salesService := sales.NewService(sales.NewRepository(pool), analyticsCache, logger)
	salesHandler := sales.NewHandler(logger, salesService)

	inventoryService := inventory.NewService(inventory.NewRepository(pool))
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	analyticsService := analytics.NewService(analytics.NewRepository(pool), analyticsCache)
	analyticsHandler := analytichttp.NewHandler(logger, analyticsService)

	searchService := search.NewService(search.NewRepository(pool))
	searchHandler := search.NewHandler(logger, searchService)

	gateway := stkpush.NewDarajaGateway(stkpush.DarajaConfig{
		ConsumerKey:    cfg.MpesaConsumerKey,
		ConsumerSecret: cfg.MpesaConsumerSecret,
		Shortcode:      cfg.MpesaShortcode,
		Passkey:        cfg.MpesaPasskey,
		Env:            cfg.MpesaEnv,
		CallbackURL:    cfg.MpesaCallbackURL,
	})
	stkService := stkpush.NewService(stkpush.NewRepository(pool), gateway, cfg.MpesaShortcode, logger)
	stkHandler := stkpush.NewHandler(logger, stkService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SuppliersHandler: suppliersHandler,
		LedgerHandler:    ledgerHandler,
		PayoutsHandler:   payoutsHandler,
		SalesHandler:     salesHandler,
		InventoryHandler: inventoryHandler,
		AnalyticsHandler: analyticsHandler,
		SearchHandler:    searchHandler,
		StkPushHandler:   stkHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
