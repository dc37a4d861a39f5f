package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// Values absent from the file keep their defaults. An empty path yields
// the default configuration. Environment variables are not consulted;
// use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention PAIRNUM_SECTION_FIELD (e.g., PAIRNUM_HOMEWORK_WORKERS) and
// always take precedence over the file.
//
// The loading sequence is:
// 1. Start from defaults
// 2. Overlay the YAML file, if any
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// ResolvePath picks the configuration file to load. An explicit path is
// always returned as-is so that a missing file is reported. Without one,
// DefaultConfigFile is used if it exists, otherwise "" (defaults only).
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	_, err := os.Stat(DefaultConfigFile)
	switch {
	case err == nil:
		return DefaultConfigFile, nil
	case errors.Is(err, fs.ErrNotExist):
		return "", nil
	default:
		return "", fmt.Errorf("failed to stat %q: %w", DefaultConfigFile, err)
	}
}

// applyEnvOverrides applies PAIRNUM_* environment variables.
// Values that fail to parse are ignored.
func applyEnvOverrides(cfg *Config) {
	// Homework overrides
	envInt("PAIRNUM_HOMEWORK_WORKERS", &cfg.Homework.Workers)
	envInt("PAIRNUM_HOMEWORK_MAX_NESTING", &cfg.Homework.MaxNesting)

	// Results overrides
	envBool("PAIRNUM_RESULTS_ENABLED", &cfg.Results.Enabled)
	envString("PAIRNUM_RESULTS_BACKEND", &cfg.Results.Backend)
	envString("PAIRNUM_RESULTS_SQLITE_PATH", &cfg.Results.SQLite.Path)
	envString("PAIRNUM_RESULTS_SQLITE_DRIVER", &cfg.Results.SQLite.Driver)
	envBool("PAIRNUM_RESULTS_SQLITE_WAL_MODE", &cfg.Results.SQLite.WALMode)
	envDuration("PAIRNUM_RESULTS_SQLITE_BUSY_TIMEOUT", &cfg.Results.SQLite.BusyTimeout)
	envInt("PAIRNUM_RESULTS_RETENTION_MAX_RUNS", &cfg.Results.Retention.MaxRuns)
	envDuration("PAIRNUM_RESULTS_RETENTION_MAX_AGE", &cfg.Results.Retention.MaxAge)
	envString("PAIRNUM_RESULTS_RETENTION_SCHEDULE", &cfg.Results.Retention.Schedule)

	// Watch overrides
	envDuration("PAIRNUM_WATCH_DEBOUNCE_INTERVAL", &cfg.Watch.DebounceInterval)

	// Telemetry overrides
	envString("PAIRNUM_TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("PAIRNUM_TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("PAIRNUM_TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	envBool("PAIRNUM_TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("PAIRNUM_TELEMETRY_METRICS_NAMESPACE", &cfg.Telemetry.Metrics.Namespace)
	envString("PAIRNUM_TELEMETRY_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
	envString("PAIRNUM_TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
}

func envString(key string, dst *string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func envInt(key string, dst *int) {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envBool(key string, dst *bool) {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envDuration(key string, dst *time.Duration) {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}
