// Package config loads runtime settings from an optional YAML file and
// the environment. The API token comes only from the environment and its
// absence is fatal at startup, before any request is attempted.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/reader-bridge/internal/core/domain"
)

// EnvAPIKey is the environment variable holding the Reader access token.
const EnvAPIKey = "READWISE_API_KEY"

const defaultRequestTimeout = 30 * time.Second

// Config holds runtime settings for reader-bridge. All file-based fields
// are optional; the zero config with a token is valid.
type Config struct {
	// BaseURL overrides the Reader API root, mainly for testing.
	BaseURL string `yaml:"base_url,omitempty"`

	// RefreshInterval enables the background refresher when set to a
	// positive Go duration string ("15m", "1h").
	RefreshInterval string `yaml:"refresh_interval,omitempty"`

	// RefreshLocation is the location the refresher re-fetches.
	// Defaults to "new".
	RefreshLocation string `yaml:"refresh_location,omitempty"`

	// RequestTimeout bounds each HTTP attempt (not the retry loop).
	RequestTimeout string `yaml:"request_timeout,omitempty"`

	// Token is resolved from the environment, never from the file.
	Token string `yaml:"-"`
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "reader-bridge", "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty) and the
// token from the environment. A missing file is fine; a missing token
// is not.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults only
	default:
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.Token = os.Getenv(EnvAPIKey)
	if cfg.Token == "" {
		return nil, fmt.Errorf("missing %s in environment", EnvAPIKey)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.RefreshInterval != "" {
		if _, err := time.ParseDuration(cfg.RefreshInterval); err != nil {
			return fmt.Errorf("invalid refresh_interval %q: %w", cfg.RefreshInterval, err)
		}
	}
	if cfg.RequestTimeout != "" {
		if _, err := time.ParseDuration(cfg.RequestTimeout); err != nil {
			return fmt.Errorf("invalid request_timeout %q: %w", cfg.RequestTimeout, err)
		}
	}
	if cfg.RefreshLocation != "" {
		if _, err := domain.ParseLocation(cfg.RefreshLocation); err != nil {
			return fmt.Errorf("invalid refresh_location: %w", err)
		}
	}
	return nil
}

// RefreshDuration returns the parsed refresh interval, zero when the
// refresher is disabled.
func (c *Config) RefreshDuration() time.Duration {
	if c.RefreshInterval == "" {
		return 0
	}
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 0
	}
	return d
}

// RequestTimeoutDuration returns the per-attempt HTTP timeout.
func (c *Config) RequestTimeoutDuration() time.Duration {
	if c.RequestTimeout == "" {
		return defaultRequestTimeout
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return defaultRequestTimeout
	}
	return d
}

// Location returns the refresh location, defaulting to "new".
func (c *Config) Location() string {
	if c.RefreshLocation == "" {
		return string(domain.LocationNew)
	}
	return c.RefreshLocation
}
