package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"churro-kiosk/internal/backend"
	"churro-kiosk/internal/cart"
	"churro-kiosk/internal/catalog"
	"churro-kiosk/internal/checkout"
	"churro-kiosk/internal/config"
	"churro-kiosk/internal/database"
	"churro-kiosk/internal/handler"
	"churro-kiosk/internal/router"
	"churro-kiosk/internal/session"
	"churro-kiosk/internal/store"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting churro-kiosk storefront engine")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the cart persistence store
	cartStore, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize cart store: %w", err)
	}
	defer closeStore()

	// Initialize the cart engine and restore any persisted cart
	engine := cart.NewEngine(cartStore, logger)
	defer engine.Close()
	engine.Restore(ctx)

	// Initialize collaborators
	sessions := session.NewManager(logger)
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), logger)
	cat := catalog.New(client, logger)
	co := checkout.New(engine, sessions, client, logger)

	// Initialize HTTP handlers
	cartHandler := handler.NewCartHandler(engine, cat, logger)
	checkoutHandler := handler.NewCheckoutHandler(co, logger)
	sessionHandler := handler.NewSessionHandler(sessions, logger)
	catalogHandler := handler.NewCatalogHandler(cat, sessions, logger)

	// Initialize router
	mux := router.New(cartHandler, checkoutHandler, sessionHandler, catalogHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("facade server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newStore builds the configured persistence backend. Postgres and redis
// failures fall back to the local file store so the kiosk still starts with
// its cart persisted on the device.
func newStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Store, func(), error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err == nil {
			st, initErr := store.NewPostgresStore(ctx, pool, logger)
			if initErr == nil {
				return st, pool.Close, nil
			}
			pool.Close()
			err = initErr
		}
		logger.Warn().Err(err).Msg("postgres store unavailable, falling back to file store")

	case config.StoreBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
		st, err := store.NewRedisStore(ctx, client, logger)
		if err == nil {
			return st, func() { client.Close() }, nil
		}
		client.Close()
		logger.Warn().Err(err).Msg("redis store unavailable, falling back to file store")
	}

	st, err := store.NewFileStore(cfg.Store.StateDir, logger)
	if err != nil {
		return nil, noop, err
	}
	return st, noop, nil
}
