package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/fatimaskitchen/storefront/api/routes"
	"github.com/fatimaskitchen/storefront/internal/cart"
	"github.com/fatimaskitchen/storefront/internal/checkout"
	"github.com/fatimaskitchen/storefront/internal/inventory"
	"github.com/fatimaskitchen/storefront/internal/menu"
	"github.com/fatimaskitchen/storefront/internal/orders"
	"github.com/fatimaskitchen/storefront/internal/reviews"
	"github.com/fatimaskitchen/storefront/internal/snapshots"
	"github.com/fatimaskitchen/storefront/internal/vouchers"
	"github.com/fatimaskitchen/storefront/pkg/config"
	"github.com/fatimaskitchen/storefront/pkg/env"
	"github.com/fatimaskitchen/storefront/pkg/logger"
	"github.com/fatimaskitchen/storefront/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

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
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewStorefrontMetrics(registry)

	backend, err := snapshots.Open(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logg.Error(context.Background(), "error closing snapshot storage", err)
		}
	}()

	store := cart.Restore(ctx, cart.Options{
		Key:       cfg.Storage.SnapshotKey,
		Snapshots: backend.Store,
		Logger:    logg,
		Metrics:   recorder,
	})

	book := orders.NewBook()
	svc, err := checkout.NewService(store, catalog, book, checkout.Settings{
		TaxRate:         cfg.Pricing.TaxRate(),
		DeliveryFee:     decimal.NewFromInt(cfg.Pricing.DeliveryFee),
		MinimumOrder:    cfg.Pricing.MinimumOrder,
		ProcessingDelay: cfg.Checkout.ProcessingDelay,
	}, logg, recorder)
	if err != nil {
		return err
	}

	addr := ":" + env.FirstOf(cfg.App.Port, "PORT")
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"storage": backend.Name,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			Storage:   backend,
			Menu:      menu.Default(),
			Cart:      store,
			Checkout:  svc,
			Orders:    book,
			Reviews:   reviews.Default(),
			Inventory: inventory.Default(),
			Gatherer:  registry,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(logCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func loadCatalog(cfg *config.Config) (*vouchers.Catalog, error) {
	if cfg.Catalog.VoucherFile == "" {
		return vouchers.DefaultCatalog(), nil
	}
	return vouchers.LoadFile(cfg.Catalog.VoucherFile)
}
