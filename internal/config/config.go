// Package config loads service settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when SALES_CONFIG_PATH is unset.
const DefaultPath = "config.yaml"

// PathEnvVar names the environment variable holding the config file path.
const PathEnvVar = "SALES_CONFIG_PATH"

// Config holds the runtime settings of the sales service.
type Config struct {
	HTTPAddr        string        `yaml:"http_addr"`
	DataSource      string        `yaml:"data_source"`
	LogLevel        string        `yaml:"log_level"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	CORSAllowOrigin string        `yaml:"cors_allow_origin"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		HTTPAddr:        ":4000",
		DataSource:      "data/sales.csv",
		LogLevel:        "info",
		CORSAllowOrigin: "*",
		ShutdownTimeout: 10 * time.Second,
		FetchTimeout:    30 * time.Second,
	}
}

// Load reads the file named by SALES_CONFIG_PATH (or config.yaml), then
// applies environment overrides. A missing file is not an error.
func Load() (Config, error) {
	return LoadFile(getEnvStr(PathEnvVar, DefaultPath))
}

// LoadFile is Load with an explicit file path.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	case len(data) > 0:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.HTTPAddr = getEnvStr("HTTP_ADDR", cfg.HTTPAddr)
	cfg.DataSource = getEnvStr("SALES_DATA_SOURCE", cfg.DataSource)
	cfg.LogLevel = getEnvStr("LOG_LEVEL", cfg.LogLevel)
	cfg.RateLimitRPS = getEnvFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS)
	cfg.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", cfg.RateLimitBurst)
	cfg.CORSAllowOrigin = getEnvStr("CORS_ALLOW_ORIGIN", cfg.CORSAllowOrigin)
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", cfg.FetchTimeout)

	return cfg, cfg.Validate()
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return errors.New("http address must not be empty")
	}
	if c.DataSource == "" {
		return errors.New("data source must not be empty")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit rps must not be negative, got %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit burst must not be negative, got %d", c.RateLimitBurst)
	}
	return nil
}

func getEnvStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
