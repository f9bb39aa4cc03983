package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// withMigrate builds a migrate instance over migrationsFS and hands it to fn.
// The instance is never closed: closing it would also close the shared
// *sql.DB, so it is left to the garbage collector.
func (db *DB) withMigrate(migrationsFS fs.FS, fn func(*migrate.Migrate) error) error {
	m, err := db.newMigrate(migrationsFS)
	if err != nil {
		return err
	}
	return fn(m)
}

// MigrateUp applies every pending migration. A database already at the
// latest version is not an error.
func (db *DB) MigrateUp(migrationsFS fs.FS) error {
	return db.withMigrate(migrationsFS, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls back the most recent migration.
func (db *DB) MigrateDown(migrationsFS fs.FS) error {
	return db.withMigrate(migrationsFS, func(m *migrate.Migrate) error {
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		return nil
	})
}

// MigrateTo migrates up or down until the schema sits at version.
func (db *DB) MigrateTo(migrationsFS fs.FS, version uint) error {
	return db.withMigrate(migrationsFS, func(m *migrate.Migrate) error {
		if err := m.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration to version %d failed: %w", version, err)
		}
		return nil
	})
}

// MigrateForce overwrites the recorded schema version without running any
// migration. This is a recovery tool for a dirty migration state, nothing
// more.
func (db *DB) MigrateForce(migrationsFS fs.FS, version int) error {
	return db.withMigrate(migrationsFS, func(m *migrate.Migrate) error {
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force migration to version %d failed: %w", version, err)
		}
		return nil
	})
}

// MigrateVersion reports the current schema version and dirty flag. A
// database with no migration history reports version 0, clean.
func (db *DB) MigrateVersion(migrationsFS fs.FS) (version uint, dirty bool, err error) {
	m, err := db.newMigrate(migrationsFS)
	if err != nil {
		return 0, false, err
	}

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// newMigrate wires an iofs source over migrationsFS to a sqlite driver
// running on the already-open connection.
func (db *DB) newMigrate(migrationsFS fs.FS) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = &migrationLogger{}

	return m, nil
}

// migrationLogger funnels golang-migrate output through the standard logger
// with a subsystem prefix.
type migrationLogger struct{}

func (l *migrationLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (l *migrationLogger) Verbose() bool { return false }

// BaselineAtVersion marks an existing database as already migrated to
// version without replaying the migrations. Intended for databases whose
// schema predates migration tracking. Refuses to touch a database with any
// recorded migration history.
func (db *DB) BaselineAtVersion(version uint) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER NOT NULL,
			dirty INTEGER NOT NULL
		);
		CREATE UNIQUE INDEX IF NOT EXISTS version_unique ON schema_migrations (version);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		return fmt.Errorf("failed to check existing migrations: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("database already has migrations applied, cannot baseline")
	}

	if _, err := db.Exec("INSERT INTO schema_migrations (version, dirty) VALUES (?, 0)", version); err != nil {
		return fmt.Errorf("failed to insert baseline version: %w", err)
	}

	log.Printf("Database baselined at version %d", version)
	return nil
}

// GetMigrationStatus summarizes the schema state for the status command.
func (db *DB) GetMigrationStatus(migrationsFS fs.FS) (map[string]interface{}, error) {
	version, dirty, err := db.MigrateVersion(migrationsFS)
	if err != nil {
		return nil, fmt.Errorf("failed to get migration version: %w", err)
	}

	var tableExists bool
	err = db.QueryRow(`
		SELECT COUNT(*) > 0
		FROM sqlite_master
		WHERE type='table' AND name='schema_migrations'
	`).Scan(&tableExists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check schema_migrations table: %w", err)
	}

	return map[string]interface{}{
		"current_version":          version,
		"dirty":                    dirty,
		"schema_migrations_exists": tableExists,
	}, nil
}

// GetLatestMigrationVersion scans migrationsFS for the highest-numbered
// *.up.sql file.
func GetLatestMigrationVersion(migrationsFS fs.FS) (uint, error) {
	entries, err := fs.Glob(migrationsFS, "*.up.sql")
	if err != nil {
		return 0, fmt.Errorf("failed to read migrations: %w", err)
	}
	if len(entries) == 0 {
		return 0, fmt.Errorf("no migration files found")
	}

	// Filenames look like 000002_loft_runs.up.sql.
	var maxVersion uint
	for _, entry := range entries {
		var version uint
		if _, err := fmt.Sscanf(entry, "%d_", &version); err == nil && version > maxVersion {
			maxVersion = version
		}
	}
	if maxVersion == 0 {
		return 0, fmt.Errorf("could not determine latest migration version")
	}

	return maxVersion, nil
}

// CheckAndPromptMigrations compares the database schema version against the
// newest bundled migration. When the database is behind or dirty it logs
// instructions and returns true so the caller can refuse to start.
func (db *DB) CheckAndPromptMigrations(migrationsFS fs.FS) (bool, error) {
	currentVersion, dirty, err := db.MigrateVersion(migrationsFS)
	if err != nil {
		return false, fmt.Errorf("failed to get current migration version: %w", err)
	}

	latestVersion, err := GetLatestMigrationVersion(migrationsFS)
	if err != nil {
		return false, fmt.Errorf("failed to get latest migration version: %w", err)
	}

	if currentVersion == latestVersion && !dirty {
		return false, nil
	}
	if dirty {
		return true, fmt.Errorf("database is in a dirty state (version %d). Run 'wingloft migrate status' to diagnose", currentVersion)
	}
	if currentVersion > latestVersion {
		return true, fmt.Errorf("database version (%d) is ahead of latest migration (%d). This should not happen", currentVersion, latestVersion)
	}

	log.Printf("⚠️  Database schema is %d migration(s) behind (version %d, latest %d)", latestVersion-currentVersion, currentVersion, latestVersion)
	log.Printf("Apply them with 'wingloft migrate up', or inspect with 'wingloft migrate status'")

	return true, fmt.Errorf("database schema is out of date (version %d, need %d). Please run migrations", currentVersion, latestVersion)
}
