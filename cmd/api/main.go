// Copyright (c) 2026 PressArt. All rights reserved.

// Command api is the entry point for the PressArt storefront HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis (guest carts).
//  4. Build the catalog registry and image CDN strategy.
//  5. Wire the store API client, cart workflow and auth handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressart/storefront/internal/api"
	"github.com/pressart/storefront/internal/cart"
	"github.com/pressart/storefront/internal/catalog"
	"github.com/pressart/storefront/internal/checkout"
	"github.com/pressart/storefront/internal/media"
	"github.com/pressart/storefront/internal/platform/config"
	"github.com/pressart/storefront/internal/platform/constants"
	redisstore "github.com/pressart/storefront/internal/platform/redis"
	"github.com/pressart/storefront/internal/session"
	"github.com/pressart/storefront/internal/storeapi"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	log.Info("[PressArt] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
		if cfg.IsProduction() {
			log.Warn("debug_logging_in_production")
		}
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("image_cdn", cfg.ImageCDN),
	)

	if cfg.RedisURL == "" {
		must(log, errors.New("REDIS_URL is required"), "load configuration")
	}

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives until shutdown; stops background janitors such as the rate limiter's.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 4. Catalog ────────────────────────────────────────────────────────
	registry, err := catalog.NewRegistry(log, catalog.Seed())
	must(log, err, "build catalog registry")

	urls, err := media.New(cfg)
	must(log, err, "select image cdn")
	catalogService := catalog.NewService(registry, urls)

	// ── 5. Cart & Session Wiring ──────────────────────────────────────────
	store := storeapi.New(cfg.StoreAPIBaseURL, cfg.StoreAPITimeout, log)
	guest := cart.NewGuest(cart.NewRedisStore(rdb, cfg.GuestCartTTL, log), nil)
	checkoutService := checkout.NewService(catalogService, store, guest,
		checkout.Channel{BaseURL: cfg.CheckoutBaseURL, Phone: cfg.CheckoutPhone}, log)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckCache: func(context context.Context) error {
			return redisstore.Ping(context, rdb)
		},
		CheckStoreAPI: store.Ping,
	}, log)

	// ── 6. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(catalogService),
		Cart:      checkout.NewHandler(checkoutService),
		Auth:      session.NewHandler(store, checkoutService),
	}

	server := api.NewServer(appCtx, cfg, log, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// newLogger builds the JSON logger and installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
