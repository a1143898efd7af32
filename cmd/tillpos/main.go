// tillpos - point of sale terminal service
//
// This is the main entry point for the till service. It owns the local
// SQLite database, runs schema migrations on startup, and seeds the
// default administrator account on a fresh install so the terminal is
// usable out of the box.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/tillworks/tillpos/migrations"

	"github.com/tillworks/tillpos/internal/auth"
	"github.com/tillworks/tillpos/internal/infrastructure/config"
	"github.com/tillworks/tillpos/internal/infrastructure/database"
	"github.com/tillworks/tillpos/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use the default logger until config is loaded.
	log := logging.Default()
	log.Info("starting tillpos",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings.
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Wire up the auth layer and make sure a fresh terminal has an
	// administrator to sign in with.
	users := auth.NewUserStore(db.DB)
	repo := auth.NewRepository(users, log.With("component", "auth").Logger)
	if seedErr := repo.InitializeDefaultUser(ctx); seedErr != nil {
		return fmt.Errorf("seeding default admin: %w", seedErr)
	}

	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("initialisation complete",
		"terminal_id", cfg.Terminal.ID,
		"terminal_name", cfg.Terminal.Name,
	)

	// Wait for shutdown signal. The terminal UI layer drives the auth
	// repository in-process; this process just owns the database.
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("tillpos stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses the TILLPOS_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("TILLPOS_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
