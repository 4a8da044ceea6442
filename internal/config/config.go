package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// defaultAuthSecret seeds the session signature key when no secret is
// configured. It is only acceptable for local development; operators must
// set AUTH_SECRET in any real deployment.
const defaultAuthSecret = "bookmark-dev-secret-change-me"

// Config holds all configuration parameters of the application.
type Config struct {
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	AuthSecret string `env:"AUTH_SECRET"`

	// Cloudflare D1 credentials. The remote backend is active only when
	// all three are present.
	CloudflareAccountID string `env:"CLOUDFLARE_ACCOUNT_ID"`
	D1DatabaseID        string `env:"CLOUDFLARE_D1_DATABASE_ID"`
	D1APIToken          string `env:"CLOUDFLARE_D1_API_TOKEN"`
}

// Load reads configuration from environment variables. In development a
// .env file is loaded first when one exists.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration from environment: %w", err)
	}

	return &cfg, nil
}

// RemoteConfigured reports whether the Cloudflare D1 backend can be used.
// Evaluated once at startup; the selected store never changes afterwards.
func (c *Config) RemoteConfigured() bool {
	return c.CloudflareAccountID != "" && c.D1DatabaseID != "" && c.D1APIToken != ""
}

// SessionSecret returns the key used to sign session tokens: AUTH_SECRET
// if set, otherwise the D1 API token, otherwise the insecure development
// default.
func (c *Config) SessionSecret() string {
	if c.AuthSecret != "" {
		return c.AuthSecret
	}
	if c.D1APIToken != "" {
		return c.D1APIToken
	}
	return defaultAuthSecret
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
