package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppConfig is the complete service configuration.
type AppConfig struct {
	Server   ServerSettings   `envPrefix:"SERVER_"`
	Database DatabaseSettings `envPrefix:"DB_"`
	Logger   LoggerSettings   `envPrefix:"LOG_"`
	Auth     AuthSettings     `envPrefix:"AUTH_"`

	// LogAPI enables the per-request API log line.
	LogAPI bool `env:"LOG_API" envDefault:"false"`
}

// Load reads an optional dotenv file and parses the environment into an AppConfig.
// A missing dotenv file is not an error; variables already set in the
// environment take precedence over the file.
func Load(envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates every settings group.
func (c *AppConfig) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}
