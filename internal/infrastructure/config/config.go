package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Homestead Core.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Logging   LoggingConfig   `yaml:"logging"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Seed      SeedConfig      `yaml:"seed"`
}

// SiteConfig contains site-specific information.
type SiteConfig struct {
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// SchedulerConfig contains settings for the external task tick.
type SchedulerConfig struct {
	// TickSeconds is the interval between scheduled-task evaluation passes.
	// Task triggers match on the exact minute, so anything above 60 will
	// silently miss tasks. Default: 60.
	TickSeconds int `yaml:"tick_seconds"`
}

// SeedConfig contains the bootstrap account credentials.
// Passwords left empty are generated randomly at startup and logged with a
// change-me warning.
type SeedConfig struct {
	AdminUsername    string `yaml:"admin_username"`
	AdminPassword    string `yaml:"admin_password"`
	ResidentUsername string `yaml:"resident_username"`
	ResidentPassword string `yaml:"resident_password"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: HOMESTEAD_SECTION_KEY
// For example: HOMESTEAD_LOGGING_LEVEL, HOMESTEAD_SCHEDULER_TICK_SECONDS
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Name:     "Homestead",
			Timezone: "UTC",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Scheduler: SchedulerConfig{
			TickSeconds: 60,
		},
		Seed: SeedConfig{
			AdminUsername:    "admin",
			ResidentUsername: "resident",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: HOMESTEAD_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HOMESTEAD_SITE_NAME"); v != "" {
		cfg.Site.Name = v
	}
	if v := os.Getenv("HOMESTEAD_SITE_TIMEZONE"); v != "" {
		cfg.Site.Timezone = v
	}
	if v := os.Getenv("HOMESTEAD_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HOMESTEAD_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("HOMESTEAD_SCHEDULER_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scheduler.TickSeconds = n
		}
	}

	// Seed credentials (prefer environment over the YAML file in production)
	if v := os.Getenv("HOMESTEAD_SEED_ADMIN_PASSWORD"); v != "" {
		cfg.Seed.AdminPassword = v
	}
	if v := os.Getenv("HOMESTEAD_SEED_RESIDENT_PASSWORD"); v != "" {
		cfg.Seed.ResidentPassword = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Site.Name == "" {
		errs = append(errs, "site.name is required")
	}

	if _, err := time.LoadLocation(c.Site.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("site.timezone %q is not a valid IANA timezone", c.Site.Timezone))
	}

	if c.Scheduler.TickSeconds < 1 {
		errs = append(errs, "scheduler.tick_seconds must be at least 1")
	}
	if c.Scheduler.TickSeconds > 60 {
		errs = append(errs, "scheduler.tick_seconds above 60 would miss exact-minute task triggers")
	}

	if c.Seed.AdminUsername == "" {
		errs = append(errs, "seed.admin_username is required")
	}
	if c.Seed.ResidentUsername == "" {
		errs = append(errs, "seed.resident_username is required")
	}
	if c.Seed.AdminUsername == c.Seed.ResidentUsername {
		errs = append(errs, "seed.admin_username and seed.resident_username must differ")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// TickInterval returns the scheduler tick interval as a Duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Scheduler.TickSeconds) * time.Second
}

// Location returns the configured site timezone.
// Falls back to UTC if the timezone cannot be loaded (Validate catches this
// earlier in normal operation).
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Site.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
