package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Port      string        `envconfig:"PORT" default:"8080"`
	DBPath    string        `envconfig:"SNIP_DB_PATH" default:"snip.db"`
	BaseURL   string        `envconfig:"SNIP_BASE_URL" default:"http://localhost:8080"`
	JWTSecret string        `envconfig:"JWT_SECRET" default:"snip-dev-secret-change-in-production"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base URL must start with http:// or https://, got %q", c.BaseURL)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret cannot be empty")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT TTL must be positive")
	}
	return nil
}

// Load loads configuration from environment variables only.
// (Do .env loading in cmd/snip-server/main.go for dev, not here.)
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Generated short links are BaseURL + "/" + code; keep joins predictable.
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}
