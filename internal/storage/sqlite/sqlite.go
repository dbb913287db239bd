// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using database/sql.
//
// The blank import registers the "sqlite3" driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aanand-mishra/personas-app/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// Options tunes the *sql.DB connection pool. Zero values keep the
// database/sql defaults.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is a connection pool and is safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the persona table if it
// does not exist yet, and returns a ready-to-use *SQLite.
func New(path string, opts Options) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	// Idempotent bootstrap, not a migration.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS persona (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			name     TEXT,
			lastname TEXT,
			age      INTEGER
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// ListPersonas returns all persona rows in rowid order.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) ListPersonas(ctx context.Context) ([]types.Persona, error) {
	stmt, err := s.Db.PrepareContext(ctx, "SELECT id, name, lastname, age FROM persona")
	if err != nil {
		return nil, fmt.Errorf("ListPersonas: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListPersonas: query: %w", err)
	}
	defer rows.Close()

	personas := make([]types.Persona, 0)
	for rows.Next() {
		var p types.Persona
		if err := rows.Scan(&p.ID, &p.Name, &p.Lastname, &p.Age); err != nil {
			return nil, fmt.Errorf("ListPersonas: scan row: %w", err)
		}
		personas = append(personas, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPersonas: rows iteration: %w", err)
	}

	return personas, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CreatePersona inserts a new row and returns its generated id.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreatePersona(ctx context.Context, fields types.PersonaFields) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO persona (name, lastname, age) VALUES (?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("CreatePersona: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, fields.Name, fields.Lastname, fields.Age)
	if err != nil {
		return 0, fmt.Errorf("CreatePersona: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreatePersona: last insert id: %w", err)
	}

	return lastID, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// GetPersonaByID fetches one row by primary key. A missing row yields
// (nil, nil): the edit form renders empty instead of failing.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) GetPersonaByID(ctx context.Context, id int64) (*types.Persona, error) {
	stmt, err := s.Db.PrepareContext(ctx,
		"SELECT id, name, lastname, age FROM persona WHERE id = ? LIMIT 1",
	)
	if err != nil {
		return nil, fmt.Errorf("GetPersonaByID: prepare: %w", err)
	}
	defer stmt.Close()

	var p types.Persona
	err = stmt.QueryRowContext(ctx, id).Scan(&p.ID, &p.Name, &p.Lastname, &p.Age)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetPersonaByID: scan: %w", err)
	}

	return &p, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// UpdatePersonaByID overwrites name, lastname and age. There is no
// existence check: an unknown id updates zero rows and returns nil.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) UpdatePersonaByID(ctx context.Context, id int64, fields types.PersonaFields) error {
	stmt, err := s.Db.PrepareContext(ctx,
		"UPDATE persona SET name = ?, lastname = ?, age = ? WHERE id = ?",
	)
	if err != nil {
		return fmt.Errorf("UpdatePersonaByID: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, fields.Name, fields.Lastname, fields.Age, id); err != nil {
		return fmt.Errorf("UpdatePersonaByID: exec: %w", err)
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// DeletePersonaByID removes a row by primary key. Unknown ids are a no-op.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) DeletePersonaByID(ctx context.Context, id int64) error {
	stmt, err := s.Db.PrepareContext(ctx, "DELETE FROM persona WHERE id = ?")
	if err != nil {
		return fmt.Errorf("DeletePersonaByID: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, id); err != nil {
		return fmt.Errorf("DeletePersonaByID: exec: %w", err)
	}

	return nil
}

// Ping verifies a connection can be obtained from the pool.
func (s *SQLite) Ping(ctx context.Context) error {
	if err := s.Db.PingContext(ctx); err != nil {
		return fmt.Errorf("Ping: %w", err)
	}
	return nil
}

// Close closes the underlying pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
