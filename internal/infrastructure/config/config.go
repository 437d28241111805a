package config

import (
	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Storage
	DataFile    string `env:"GOBANK_DATA_FILE"    envDefault:"accounts.json"`
	SaveRetries int    `env:"GOBANK_SAVE_RETRIES" envDefault:"2"`

	// Passwords
	PasswordScheme string `env:"GOBANK_PASSWORD_SCHEME" envDefault:"bcrypt"`
	BcryptCost     int    `env:"GOBANK_BCRYPT_COST"     envDefault:"10"`

	// Metrics textfile, written on exit when set
	MetricsFile string `env:"GOBANK_METRICS_FILE" envDefault:""`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
