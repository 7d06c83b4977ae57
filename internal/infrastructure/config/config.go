package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Catalog   CatalogConfig
	Session   SessionConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration. The global limit caps
// all clients together and is off while GlobalRequestsPerSecond is 0.
type RateLimitConfig struct {
	RequestsPerSecond       int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst                   int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled                 bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	GlobalRequestsPerSecond int  `envconfig:"RATE_LIMIT_GLOBAL_RPS" default:"0"`
	GlobalBurst             int  `envconfig:"RATE_LIMIT_GLOBAL_BURST" default:"0"`
}

// CatalogConfig names extra unit definitions loaded at startup.
type CatalogConfig struct {
	Dir     string        `envconfig:"UNITS_DIR"`
	URL     string        `envconfig:"UNITS_URL"`
	Timeout time.Duration `envconfig:"UNITS_TIMEOUT" default:"10s"`
}

// SessionConfig holds session persistence settings. An empty StorePath
// keeps snapshots in memory.
type SessionConfig struct {
	StorePath string        `envconfig:"SESSION_STORE_PATH"`
	MaxIdle   time.Duration `envconfig:"SESSION_MAX_IDLE" default:"30m"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every setting the server could not start with.
func (c *Config) Validate() error {
	var errs []error
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Server.Port))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate limit needs positive rps and burst"))
	}
	if c.RateLimit.GlobalRequestsPerSecond < 0 || c.RateLimit.GlobalBurst < 0 {
		errs = append(errs, errors.New("global rate limit cannot be negative"))
	}
	if c.Catalog.URL != "" {
		u, err := url.Parse(c.Catalog.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("units url %q is not http(s)", c.Catalog.URL))
		}
	}
	if c.Catalog.Timeout <= 0 {
		errs = append(errs, errors.New("units timeout must be positive"))
	}
	if c.Session.MaxIdle <= 0 {
		errs = append(errs, errors.New("session max idle must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Catalog: CatalogConfig{
			Timeout: 10 * time.Second,
		},
		Session: SessionConfig{
			MaxIdle: 30 * time.Minute,
		},
	}
}
