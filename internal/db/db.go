// Package db persists airfoils, planforms, and loft run records in sqlite.
//
// The schema is managed by golang-migrate over an embedded set of SQL
// migration files. Geometry payloads (airfoil points, planform stations)
// are stored as JSON text columns and decoded into internal/geom types at
// the scan boundary.
package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by lookups and deletes when no row matches.
// Callers branch on it with errors.Is to map missing rows to 404s.
var ErrNotFound = errors.New("not found")

type DB struct {
	*sql.DB
}

// OpenDB opens the sqlite database at path without touching the schema.
// Use NewDB when the schema should be migrated and seeded.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{db}, nil
}

// NewDB opens the database, applies any pending schema migrations, and
// seeds the built-in geometry catalog.
func NewDB(path string) (*DB, error) {
	database, err := OpenDB(path)
	if err != nil {
		return nil, err
	}

	migrationsFS, err := getMigrationsFS()
	if err != nil {
		database.Close()
		return nil, err
	}

	if err := database.MigrateUp(migrationsFS); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := database.SeedBuiltins(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to seed built-in geometry: %w", err)
	}

	return database, nil
}
