package main

import (
	"flag"

	"github.com/chordline-aero/wingloft/internal/db"
)

// handleMigrate forwards to the migration runner after resolving the
// database path.
func handleMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	dbPath := fs.String("db", "", "Path to the SQLite database file (overrides config)")
	configPath := fs.String("config", "", "Path to a JSON config file")
	dev := fs.Bool("dev", false, "Read migrations from disk instead of the embedded copies")
	fs.Parse(args)

	cfg := loadServeConfig(*configPath)
	if *dbPath != "" {
		cfg.DBPath = dbPath
	}

	db.DevMode = *dev
	db.RunMigrateCommand(fs.Args(), cfg.GetDBPath())
}
