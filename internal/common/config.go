// Package common provides shared utilities for Pulse
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Pulse
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Clients     ClientsConfig   `toml:"clients"`
	Dashboard   DashboardConfig `toml:"dashboard"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds storage configuration.
type StorageConfig struct {
	Path string `toml:"path"` // BadgerHold directory (settings KV + payload cache)
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Webhook WebhookConfig `toml:"webhook"`
	Weather WeatherConfig `toml:"weather"`
}

// WebhookConfig holds the metrics webhook configuration.
// The webhook is the single external data source: it runs the dashboard and
// documentation queries upstream and returns the pre-aggregated payload.
type WebhookConfig struct {
	URL       string `toml:"url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *WebhookConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 300 * time.Second
	}
	return d
}

// WeatherConfig holds the wttr.in widget client configuration.
type WeatherConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *WeatherConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// DashboardConfig holds dashboard behaviour configuration.
type DashboardConfig struct {
	CacheTTL           string `toml:"cache_ttl"`           // payload cache entry lifetime
	DashboardQuery     string `toml:"dashboard_query"`     // path to the dashboard SQL text sent to the webhook
	DocumentationQuery string `toml:"documentation_query"` // path to the documentation SQL text
}

// GetCacheTTL parses and returns the payload cache TTL.
func (c *DashboardConfig) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 60 * time.Minute
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string `toml:"level"`
	Format   string `toml:"format"`
	FilePath string `toml:"file_path"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Path: "data/pulse",
		},
		Clients: ClientsConfig{
			Webhook: WebhookConfig{
				RateLimit: 2,
				Timeout:   "300s",
			},
			Weather: WeatherConfig{
				BaseURL: "https://wttr.in",
				Timeout: "10s",
			},
		},
		Dashboard: DashboardConfig{
			CacheTTL: "60m",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("PULSE_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("PULSE_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("PULSE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("PULSE_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("PULSE_DATA_PATH"); path != "" {
		config.Storage.Path = filepath.Join(path, "pulse")
	}

	if url := os.Getenv("PULSE_WEBHOOK_URL"); url != "" {
		config.Clients.Webhook.URL = url
	}

	if ttl := os.Getenv("PULSE_CACHE_TTL"); ttl != "" {
		config.Dashboard.CacheTTL = ttl
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}
