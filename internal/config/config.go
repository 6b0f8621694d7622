// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Shopify holds Storefront API credentials.
type Shopify struct {
	Domain     string `envconfig:"SHOPIFY_DOMAIN"`
	Token      string `envconfig:"SHOPIFY_STOREFRONT_TOKEN"`
	APIVersion string `envconfig:"SHOPIFY_API_VERSION" default:"2024-01"`
	PageSize   int    `envconfig:"PAGE_SIZE" default:"100"`
	Timeout    int    `envconfig:"SHOPIFY_TIMEOUT" default:"15"`
}

// Redis configures the optional catalog cache. An empty URL disables it.
type Redis struct {
	URL          string `envconfig:"REDIS_URL"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	TTL          string `envconfig:"CACHE_TTL" default:"10m"`
}

type Config struct {
	Env           string `envconfig:"APP_ENV" default:"development"`
	Port          string `envconfig:"APP_PORT" default:"8080"`
	DatabaseDSN   string `envconfig:"DB_DSN"`
	SessionSecret string `envconfig:"SESSION_SECRET" default:"dev_fallback_secret"`
	ContactNumber string `envconfig:"CONTACT_NUMBER"`

	Shopify Shopify
	Redis   Redis
}

// Load reads .env files (current dir, parent and repo root, so the binary
// works when started from cmd/server) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Overload(".env", "../.env", "../../.env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	if _, err := cfg.CacheTTL(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Environment() Environment {
	return ParseEnvironment(c.Env)
}

// CacheTTL parses Redis.TTL.
func (c *Config) CacheTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Redis.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid CACHE_TTL %q: %w", c.Redis.TTL, err)
	}
	return ttl, nil
}

// Validate checks the settings needed to talk to the storefront.
func (s Shopify) Validate() error {
	if s.Domain == "" {
		return fmt.Errorf("SHOPIFY_DOMAIN is empty (check your .env)")
	}
	if s.Token == "" {
		return fmt.Errorf("SHOPIFY_STOREFRONT_TOKEN is empty (check your .env)")
	}
	return nil
}
