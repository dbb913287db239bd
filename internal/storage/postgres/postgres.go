// Package postgres implements storage.Storage on PostgreSQL through a
// pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aanand-mishra/personas-app/internal/types"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

const pingTimeout = 10 * time.Second

// Options tunes the pool. Zero values keep the pgxpool defaults.
type Options struct {
	MaxConns        int
	ConnMaxLifetime time.Duration

	// TraceSQL logs every statement through the given logger at debug level.
	TraceSQL bool
}

// Postgres is the pgxpool-backed store.
type Postgres struct {
	Pool *pgxpool.Pool
	log  zerolog.Logger
}

// New connects to dsn, pings the server and creates the persona table if
// needed.
func New(ctx context.Context, dsn string, opts Options, logger zerolog.Logger) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	if opts.MaxConns > 0 {
		poolConfig.MaxConns = int32(opts.MaxConns)
	}
	if opts.ConnMaxLifetime > 0 {
		poolConfig.MaxConnLifetime = opts.ConnMaxLifetime
	}
	if opts.TraceSQL {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(logger.With().Str("component", "pgx").Logger()),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS persona (
			id       BIGSERIAL PRIMARY KEY,
			name     TEXT,
			lastname TEXT,
			age      INTEGER
		)
	`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: create table: %w", err)
	}

	logger.Info().Msg("connected to the database")

	return &Postgres{Pool: pool, log: logger}, nil
}

func (p *Postgres) ListPersonas(ctx context.Context) ([]types.Persona, error) {
	rows, err := p.Pool.Query(ctx, "SELECT id, name, lastname, age FROM persona")
	if err != nil {
		return nil, fmt.Errorf("ListPersonas: query: %w", err)
	}

	personas, err := pgx.CollectRows(rows, pgx.RowToStructByPos[types.Persona])
	if err != nil {
		return nil, fmt.Errorf("ListPersonas: collect rows: %w", err)
	}

	return personas, nil
}

func (p *Postgres) CreatePersona(ctx context.Context, fields types.PersonaFields) (int64, error) {
	var id int64
	err := p.Pool.QueryRow(ctx,
		"INSERT INTO persona (name, lastname, age) VALUES ($1, $2, $3) RETURNING id",
		fields.Name, fields.Lastname, fields.Age,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("CreatePersona: insert: %w", err)
	}

	return id, nil
}

// GetPersonaByID returns (nil, nil) when no row matches.
func (p *Postgres) GetPersonaByID(ctx context.Context, id int64) (*types.Persona, error) {
	var persona types.Persona
	err := p.Pool.QueryRow(ctx,
		"SELECT id, name, lastname, age FROM persona WHERE id = $1",
		id,
	).Scan(&persona.ID, &persona.Name, &persona.Lastname, &persona.Age)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetPersonaByID: scan: %w", err)
	}

	return &persona, nil
}

func (p *Postgres) UpdatePersonaByID(ctx context.Context, id int64, fields types.PersonaFields) error {
	_, err := p.Pool.Exec(ctx,
		"UPDATE persona SET name = $1, lastname = $2, age = $3 WHERE id = $4",
		fields.Name, fields.Lastname, fields.Age, id,
	)
	if err != nil {
		return fmt.Errorf("UpdatePersonaByID: exec: %w", err)
	}

	return nil
}

func (p *Postgres) DeletePersonaByID(ctx context.Context, id int64) error {
	if _, err := p.Pool.Exec(ctx, "DELETE FROM persona WHERE id = $1", id); err != nil {
		return fmt.Errorf("DeletePersonaByID: exec: %w", err)
	}

	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("Ping: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.log.Info().Msg("closing database connection pool")
	p.Pool.Close()
	return nil
}
