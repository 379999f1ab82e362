package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileEnvVar names the environment variable holding an optional YAML config path.
const FileEnvVar = "CALIBRATION_CONFIG"

var knownKeys = map[string]struct{}{
	"app_env":                 {},
	"db_path":                 {},
	"db_driver":               {},
	"redis_addr":              {},
	"grpc_port":               {},
	"grpc_reflection_enabled": {},
	"metrics_addr":            {},
	"cache_ttl":               {},
	"report_concurrency":      {},
}

// Load builds a Config by layering, from lowest to highest precedence,
// defaults, the YAML file named by CALIBRATION_CONFIG, and environment
// variables such as GRPC_PORT or CACHE_TTL.
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(FileEnvVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := knownKeys[key]; !ok {
			return ""
		}
		return key
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used to start the service.
func (c *Config) Validate() error {
	switch {
	case c.DBDriver == "":
		return fmt.Errorf("%w: db_driver must not be empty", ErrInvalidConfig)
	case c.DBPath == "":
		return fmt.Errorf("%w: db_path must not be empty", ErrInvalidConfig)
	case c.GRPCPort < 0 || c.GRPCPort > 65535:
		return fmt.Errorf("%w: grpc_port %d out of range", ErrInvalidConfig, c.GRPCPort)
	case c.CacheTTL <= 0:
		return fmt.Errorf("%w: cache_ttl must be positive", ErrInvalidConfig)
	case c.ReportConcurrency < 1:
		return fmt.Errorf("%w: report_concurrency must be at least 1", ErrInvalidConfig)
	}
	return nil
}
