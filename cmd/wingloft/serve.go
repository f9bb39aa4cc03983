package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/chordline-aero/wingloft/internal/api"
	"github.com/chordline-aero/wingloft/internal/config"
	"github.com/chordline-aero/wingloft/internal/db"
)

// loadServeConfig resolves the effective configuration for serve and
// generate: defaults, overlaid by the config file when one is given.
func loadServeConfig(path string) *config.WingConfig {
	if path == "" {
		return config.DefaultWingConfig()
	}
	cfg, err := config.LoadWingConfig(path)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", path, err)
	}
	return cfg
}

func handleServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	listen := fs.String("listen", ":8080", "HTTP listen address")
	dbPath := fs.String("db", "", "Path to the SQLite database file (overrides config)")
	configPath := fs.String("config", "", "Path to a JSON config file")
	dev := fs.Bool("dev", false, "Run in dev mode (migrations read from disk)")
	fs.Parse(args)

	if *listen == "" {
		log.Fatal("Listen address is required")
	}

	cfg := loadServeConfig(*configPath)
	if *dbPath != "" {
		cfg.DBPath = dbPath
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db.DevMode = *dev

	database, err := db.NewDB(cfg.GetDBPath())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	var wg sync.WaitGroup
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// HTTP server goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()

		mux := api.NewServer(database, cfg).ServeMux()
		database.AttachAdminRoutes(mux)

		server := &http.Server{
			Addr:    *listen,
			Handler: api.LoggingMiddleware(mux),
		}

		// Start server in a goroutine so it doesn't block
		go func() {
			log.Printf("wingloft listening on %s (db %s)", *listen, cfg.GetDBPath())
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("failed to start server: %v", err)
			}
		}()

		// Wait for context cancellation to shut down server
		<-ctx.Done()
		log.Println("shutting down HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
			// Force close the server if graceful shutdown fails
			if err := server.Close(); err != nil {
				log.Printf("HTTP server force close error: %v", err)
			}
		}

		log.Printf("HTTP server routine stopped")
	}()

	wg.Wait()
	log.Printf("Graceful shutdown complete")
}
