// main is the entry point of the personas web app.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file + env overrides)
//  2. Initialise the logger
//  3. Open the persona store (SQLite or PostgreSQL)
//  4. Parse the HTML views and register routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block until SIGINT / SIGTERM, then shut down gracefully
//
// RUNNING THE SERVER:
//
//	go run ./cmd/personas --config=config/local.yaml
//
// or:
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/personas
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/personas-app/internal/config"
	"github.com/aanand-mishra/personas-app/internal/http/handlers/persona"
	"github.com/aanand-mishra/personas-app/internal/http/middleware"
	"github.com/aanand-mishra/personas-app/internal/http/views"
	"github.com/aanand-mishra/personas-app/internal/logger"
	service "github.com/aanand-mishra/personas-app/internal/service/persona"
	"github.com/aanand-mishra/personas-app/internal/storage"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(cfg.Env)
	log.Info().
		Str("env", cfg.Env).
		Str("storage_driver", cfg.Storage.Driver).
		Msg("starting personas-app")

	// The store is the injected data-access collaborator; nothing below
	// reaches the pool any other way.
	store, err := storage.Open(context.Background(), cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialise storage")
		os.Exit(1)
	}
	defer store.Close()

	log.Info().Str("driver", cfg.Storage.Driver).Msg("storage initialised")

	renderer, err := views.New()
	if err != nil {
		log.Error().Err(err).Msg("failed to parse views")
		os.Exit(1)
	}

	router := http.NewServeMux()
	persona.Routes(router, service.New(store), renderer)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      middleware.Chain(router, middleware.Default(log)...),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.HTTPServer.Addr).Msg("server started")

		// ErrServerClosed is the normal result of Shutdown.
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.Info().Msg("shutdown signal received, stopping server...")
	case err := <-serverErr:
		log.Error().Err(err).Msg("server encountered an error")
		store.Close()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown server gracefully")
		store.Close()
		os.Exit(1)
	}

	log.Info().Msg("server stopped gracefully")
}
