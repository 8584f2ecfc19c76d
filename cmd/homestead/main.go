// Homestead Core - Home Automation Controller
//
// This is the main entry point for the Homestead Core application.
// Homestead is an in-process home-automation controller designed for:
//   - A heterogeneous device registry with per-type behaviour
//   - Permission-gated control and administration
//   - Minute-resolution scheduled tasks driven by a wall-clock ticker
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashford-labs/homestead-core/internal/auth"
	"github.com/ashford-labs/homestead-core/internal/infrastructure/config"
	"github.com/ashford-labs/homestead-core/internal/infrastructure/logging"
	"github.com/ashford-labs/homestead-core/internal/system"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Homestead Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Seed the bootstrap accounts. Unconfigured passwords are generated
	// randomly and logged with a change-me warning.
	admin, resident, err := auth.Seed(
		cfg.Seed.AdminUsername, cfg.Seed.AdminPassword,
		cfg.Seed.ResidentUsername, cfg.Seed.ResidentPassword,
		log.Logger,
	)
	if err != nil {
		return fmt.Errorf("seeding accounts: %w", err)
	}

	// Construct the controller and switch it on so scheduled tasks run
	sys := system.New(log, admin, resident)
	sys.TurnSystemOn()
	log.Info("controller initialised",
		"site", cfg.Site.Name,
		"timezone", cfg.Site.Timezone,
	)

	// Drive the scheduled-task engine. The controller keeps no clock of
	// its own; this ticker is its only time source.
	loc := cfg.Location()
	ticker := time.NewTicker(cfg.TickInterval())
	defer ticker.Stop()

	log.Info("scheduler started", "interval", cfg.TickInterval())

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received, cleaning up")
			sys.TurnSystemOff()
			log.Info("Homestead Core stopped")
			return nil
		case now := <-ticker.C:
			sys.Tick(now.In(loc))
		}
	}
}

// getConfigPath returns the configuration file path.
// Uses HOMESTEAD_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HOMESTEAD_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
