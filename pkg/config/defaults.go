package config

import "time"

// Default values for configuration fields.
const (
	// DefaultConfigFile is read when no --config flag is given. A missing
	// default file is not an error.
	DefaultConfigFile = "pairnum.yaml"

	// Homework defaults
	DefaultHomeworkWorkers    = 0
	DefaultHomeworkMaxNesting = 1024

	// Results defaults
	DefaultResultsEnabled           = false
	DefaultResultsBackend           = "sqlite"
	DefaultResultsSQLitePath        = "data/pairnum.db"
	DefaultResultsSQLiteDriver      = "sqlite"
	DefaultResultsSQLiteMaxOpenConn = 4
	DefaultResultsSQLiteWALMode     = true
	DefaultResultsSQLiteBusyTimeout = 5 * time.Second
	DefaultRetentionMaxRuns         = 1000
	DefaultRetentionSchedule        = "0 * * * *"

	// Watch defaults
	DefaultWatchDebounceInterval = 100 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "text"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "pairnum"
	DefaultMetricsPath      = "/metrics"
)

// DefaultDurationBuckets are histogram buckets for run durations.
var DefaultDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// DefaultConfig returns a configuration with every default applied,
// including boolean defaults that ApplyDefaults cannot infer from zero values.
func DefaultConfig() *Config {
	cfg := &Config{
		Results: ResultsConfig{
			Enabled: DefaultResultsEnabled,
			SQLite: SQLiteConfig{
				WALMode: DefaultResultsSQLiteWALMode,
			},
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{
				Enabled: DefaultMetricsEnabled,
			},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	if cfg.Homework.MaxNesting == 0 {
		cfg.Homework.MaxNesting = DefaultHomeworkMaxNesting
	}

	if cfg.Results.Backend == "" {
		cfg.Results.Backend = DefaultResultsBackend
	}
	if cfg.Results.SQLite.Path == "" {
		cfg.Results.SQLite.Path = DefaultResultsSQLitePath
	}
	if cfg.Results.SQLite.Driver == "" {
		cfg.Results.SQLite.Driver = DefaultResultsSQLiteDriver
	}
	if cfg.Results.SQLite.MaxOpenConns == 0 {
		cfg.Results.SQLite.MaxOpenConns = DefaultResultsSQLiteMaxOpenConn
	}
	if cfg.Results.SQLite.BusyTimeout == 0 {
		cfg.Results.SQLite.BusyTimeout = DefaultResultsSQLiteBusyTimeout
	}
	if cfg.Results.Retention.MaxRuns == 0 {
		cfg.Results.Retention.MaxRuns = DefaultRetentionMaxRuns
	}
	if cfg.Results.Retention.Schedule == "" {
		cfg.Results.Retention.Schedule = DefaultRetentionSchedule
	}

	if cfg.Watch.DebounceInterval == 0 {
		cfg.Watch.DebounceInterval = DefaultWatchDebounceInterval
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
}
