package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the hardcoded local fallback for the backend.
const DefaultAPIURL = "http://localhost:8080"

// Config is the dashboard configuration, resolved once at startup.
type Config struct {
	APIURL            string `yaml:"api_url"`
	PollIntervalMs    int    `yaml:"poll_interval_ms"`
	SettleDelayMs     int    `yaml:"settle_delay_ms"`
	NotificationTTLMs int    `yaml:"notification_ttl_ms"`
	RequestTimeoutMs  int    `yaml:"request_timeout_ms"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:            DefaultAPIURL,
		PollIntervalMs:    2000,
		SettleDelayMs:     500,
		NotificationTTLMs: 3000,
		RequestTimeoutMs:  10000,
		LogLevel:          "info",
		LogFile:           "logs/tradedash.log",
	}
}

// Load resolves the configuration: defaults, then the YAML file when
// one is given, then environment variable overrides.
func Load(filePath string) (*Config, error) {
	cfg := Default()

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", filePath)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", filePath)
		}
	}

	cfg.applyEnv()

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TRADEDASH_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("TRADEDASH_POLL_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.PollIntervalMs = ms
		}
	}
	if v := os.Getenv("TRADEDASH_SETTLE_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.SettleDelayMs = ms
		}
	}
	if v := os.Getenv("TRADEDASH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("TRADEDASH_LOG_FILE"); v != "" {
		c.LogFile = v
	}
}

// PollInterval returns the refresh cycle interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// SettleDelay returns the post-submission refresh delay.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// NotificationTTL returns the notification auto-clear duration.
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.NotificationTTLMs) * time.Millisecond
}

// RequestTimeout returns the per-request HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}
