package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/andersonseixas/fornecedor-backend/api/routes"
	"github.com/andersonseixas/fornecedor-backend/internal/analytics"
	"github.com/andersonseixas/fornecedor-backend/internal/cart"
	"github.com/andersonseixas/fornecedor-backend/internal/catalog"
	"github.com/andersonseixas/fornecedor-backend/internal/ledger"
	"github.com/andersonseixas/fornecedor-backend/internal/orders"
	"github.com/andersonseixas/fornecedor-backend/pkg/config"
	"github.com/andersonseixas/fornecedor-backend/pkg/logger"
	"github.com/andersonseixas/fornecedor-backend/pkg/metrics"
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

	products, err := catalog.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		logg.Error(context.Background(), "failed to load product catalog", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(products)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	store := cart.NewStore()
	cartService, err := cart.NewService(store, catalogService, cart.Options{
		EnforceStock: cfg.Cart.EnforceStock,
		AllowRemoval: cfg.Cart.AllowRemoval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	ledgerRepo, err := ledger.NewFileRepository(cfg.Ledger, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap sales ledger", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	orderService, err := orders.NewService(store, ledgerRepo, checkoutMetrics, cfg.Ledger.Policy)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	analyticsService, err := analytics.NewService(ledgerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create analytics service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"catalog":  cfg.Catalog.Path,
		"ledger":   cfg.Ledger.Dir,
		"policy":   cfg.Ledger.Policy,
		"products": len(products),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, catalogService, cartService, orderService, analyticsService, ledgerRepo, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
