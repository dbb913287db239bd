// Package storage defines the Storage interface, the contract every
// database backend must satisfy to serve personas.
//
// The HTTP and service layers only see this interface. Switching from
// SQLite to PostgreSQL is a config change (storage.driver) and tests can
// pass a fake that satisfies it.
package storage

import (
	"context"

	"github.com/aanand-mishra/personas-app/internal/types"
)

// Storage is the data-access contract for the persona table.
// Each method issues exactly one SQL statement.
type Storage interface {
	// ListPersonas returns every persona in the store's natural order.
	// Returns an empty slice (not nil) when the table is empty.
	ListPersonas(ctx context.Context) ([]types.Persona, error)

	// CreatePersona inserts a row and returns the generated id.
	CreatePersona(ctx context.Context, fields types.PersonaFields) (int64, error)

	// GetPersonaByID returns the persona with the given id, or nil (and a
	// nil error) when no row matches.
	GetPersonaByID(ctx context.Context, id int64) (*types.Persona, error)

	// UpdatePersonaByID overwrites all fields of the row. A missing id
	// affects zero rows and is not an error.
	UpdatePersonaByID(ctx context.Context, id int64, fields types.PersonaFields) error

	// DeletePersonaByID removes the row. A missing id is not an error.
	DeletePersonaByID(ctx context.Context, id int64) error

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection pool.
	Close() error
}
