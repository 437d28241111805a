package config_test

import (
	"testing"

	"github.com/Kawsar6f/console-banking-system/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOBANK_DATA_FILE", "")
	t.Setenv("GOBANK_METRICS_FILE", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DataFile != "accounts.json" {
		t.Fatalf("expected default data file accounts.json, got %q", cfg.DataFile)
	}

	if cfg.PasswordScheme != "bcrypt" || cfg.BcryptCost != 10 {
		t.Fatalf("expected bcrypt cost 10 by default, got %s/%d", cfg.PasswordScheme, cfg.BcryptCost)
	}

	if cfg.MetricsFile != "" {
		t.Fatalf("expected metrics file default to be empty, got %q", cfg.MetricsFile)
	}

	if cfg.LogLevel != "warn" || cfg.LogFormat != "console" {
		t.Fatalf("unexpected log defaults: level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GOBANK_DATA_FILE", "/tmp/bank.json")
	t.Setenv("GOBANK_PASSWORD_SCHEME", "sha256")
	t.Setenv("GOBANK_BCRYPT_COST", "12")
	t.Setenv("GOBANK_SAVE_RETRIES", "5")
	t.Setenv("GOBANK_METRICS_FILE", "/tmp/gobank.prom")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DataFile != "/tmp/bank.json" {
		t.Fatalf("expected custom data file, got %s", cfg.DataFile)
	}

	if cfg.PasswordScheme != "sha256" || cfg.BcryptCost != 12 {
		t.Fatalf("expected password overrides, got %s/%d", cfg.PasswordScheme, cfg.BcryptCost)
	}

	if cfg.SaveRetries != 5 {
		t.Fatalf("expected save retries override, got %d", cfg.SaveRetries)
	}

	if cfg.MetricsFile != "/tmp/gobank.prom" {
		t.Fatalf("expected metrics file override, got %s", cfg.MetricsFile)
	}

	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("expected log overrides, got level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadInvalidInt(t *testing.T) {
	t.Setenv("GOBANK_BCRYPT_COST", "not-a-number")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid bcrypt cost")
	}
}
