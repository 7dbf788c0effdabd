package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for the server.
type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	AppName string `env:"APP_NAME" envDefault:"Catalyst Auth"`

	// Environment controls log verbosity and whether demo data is seeded.
	Environment string `env:"ENV" envDefault:"DEV"`

	// Store lifetimes. Access tokens must stay well under a year.
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	CodeTTL        time.Duration `env:"CODE_TTL" envDefault:"10m"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`

	// Path to the bbolt client directory. Empty selects the in-memory repo.
	ClientsDBPath string `env:"CLIENTS_DB" envDefault:""`

	// SeedDemoData forces seeding of the demo user and clients regardless
	// of environment.
	SeedDemoData bool `env:"SEED_DEMO_DATA" envDefault:"false"`
}

// Load reads configuration from environment variables. It first attempts to
// load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.AccessTokenTTL <= 0 || c.AccessTokenTTL >= 365*24*time.Hour {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive and under a year, got %s", c.AccessTokenTTL)
	}
	if c.CodeTTL <= 0 {
		return fmt.Errorf("CODE_TTL must be positive, got %s", c.CodeTTL)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	if len(c.Port) > 0 && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

// IsDev reports whether the server runs in the development environment.
func (c *Config) IsDev() bool {
	return c.Environment == "DEV"
}
