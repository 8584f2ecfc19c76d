package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeConfig writes a temporary config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() should validate cleanly: %v", err)
	}
}

func TestLoadAppliesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
site:
  name: "Seaside House"
  timezone: "Europe/London"
logging:
  level: "debug"
  format: "text"
scheduler:
  tick_seconds: 30
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Site.Name != "Seaside House" {
		t.Errorf("Site.Name = %q, want Seaside House", cfg.Site.Name)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want debug/text", cfg.Logging)
	}
	if got := cfg.TickInterval(); got != 30*time.Second {
		t.Errorf("TickInterval() = %v, want 30s", got)
	}
	// Unset values keep their defaults.
	if cfg.Seed.AdminUsername != "admin" {
		t.Errorf("Seed.AdminUsername = %q, want default admin", cfg.Seed.AdminUsername)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: "info"
`)
	t.Setenv("HOMESTEAD_LOGGING_LEVEL", "error")
	t.Setenv("HOMESTEAD_SCHEDULER_TICK_SECONDS", "15")
	t.Setenv("HOMESTEAD_SEED_ADMIN_PASSWORD", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want env override error", cfg.Logging.Level)
	}
	if cfg.Scheduler.TickSeconds != 15 {
		t.Errorf("Scheduler.TickSeconds = %d, want 15", cfg.Scheduler.TickSeconds)
	}
	if cfg.Seed.AdminPassword != "from-env" {
		t.Errorf("Seed.AdminPassword = %q, want from-env", cfg.Seed.AdminPassword)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty site name", func(c *Config) { c.Site.Name = "" }, "site.name"},
		{"bad timezone", func(c *Config) { c.Site.Timezone = "Mars/Olympus" }, "timezone"},
		{"zero tick", func(c *Config) { c.Scheduler.TickSeconds = 0 }, "tick_seconds"},
		{"oversized tick", func(c *Config) { c.Scheduler.TickSeconds = 300 }, "tick_seconds"},
		{"same seed usernames", func(c *Config) { c.Seed.ResidentUsername = "admin" }, "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := Default()
	cfg.Site.Timezone = "Mars/Olympus"
	if got := cfg.Location(); got != time.UTC {
		t.Errorf("Location() = %v for invalid timezone, want UTC", got)
	}
}
