package db

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed migrations
var migrationsFS embed.FS

// DevMode switches migration loading from the embedded copy to the on-disk
// internal/db/migrations directory, so schema changes can be iterated
// without rebuilding the binary.
var DevMode bool

// getMigrationsFS returns the filesystem holding the SQL migration files,
// rooted so that the *.sql files sit at the top level.
func getMigrationsFS() (fs.FS, error) {
	if DevMode {
		dir := "internal/db/migrations"
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("dev mode migrations directory not found: %w", err)
		}
		return os.DirFS(dir), nil
	}

	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to access embedded migrations: %w", err)
	}
	return sub, nil
}
