// Package config loads process configuration from defaults, an optional YAML
// file and the environment.
package config

import (
	"time"

	"go.uber.org/zap"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv   string `koanf:"app_env"`
	DBPath   string `koanf:"db_path"`
	DBDriver string `koanf:"db_driver"`

	// RedisAddr enables the response cache. Empty disables it.
	RedisAddr string `koanf:"redis_addr"`

	GRPCPort              int  `koanf:"grpc_port"`
	GRPCReflectionEnabled bool `koanf:"grpc_reflection_enabled"`

	// MetricsAddr is the listen address of the Prometheus endpoint. Empty disables it.
	MetricsAddr string `koanf:"metrics_addr"`

	CacheTTL          time.Duration `koanf:"cache_ttl"`
	ReportConcurrency int           `koanf:"report_concurrency"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		AppEnv:                "development",
		DBPath:                "./data/database.db",
		DBDriver:              "sqlite3",
		RedisAddr:             "",
		GRPCPort:              50051,
		GRPCReflectionEnabled: false,
		MetricsAddr:           ":9090",
		CacheTTL:              10 * time.Minute,
		ReportConcurrency:     4,
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
