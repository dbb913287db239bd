package storage

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/personas-app/internal/config"
	"github.com/aanand-mishra/personas-app/internal/storage/postgres"
	"github.com/aanand-mishra/personas-app/internal/storage/sqlite"
	"github.com/rs/zerolog"
)

// Open builds the backend named by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.Storage.SQLitePath, sqlite.Options{
			MaxOpenConns:    cfg.Storage.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.MaxIdleConns,
			ConnMaxLifetime: cfg.Storage.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverPostgres:
		store, err := postgres.New(ctx, cfg.Storage.PostgresDSN, postgres.Options{
			MaxConns:        cfg.Storage.MaxOpenConns,
			ConnMaxLifetime: cfg.Storage.ConnMaxLifetime,
			TraceSQL:        cfg.Env == "dev",
		}, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
