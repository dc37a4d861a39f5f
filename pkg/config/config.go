package config

import "time"

// Config is the root configuration for pairnum.
// All sections are optional; missing values are filled by ApplyDefaults.
type Config struct {
	// Homework controls how homework files are evaluated.
	Homework HomeworkConfig `yaml:"homework"`

	// Results configures persistence of homework runs.
	Results ResultsConfig `yaml:"results"`

	// Watch configures the file watcher used by "pairnum watch".
	Watch WatchConfig `yaml:"watch"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// HomeworkConfig controls the homework driver.
type HomeworkConfig struct {
	// Workers bounds the number of goroutines evaluating ordered pairs.
	// Zero means one worker per CPU.
	Workers int `yaml:"workers"`

	// MaxNesting is the deepest bracket nesting the parser accepts.
	MaxNesting int `yaml:"max_nesting"`
}

// ResultsConfig configures the results store.
type ResultsConfig struct {
	// Enabled turns on recording for commands that record by default
	// (watch). The root command records only with --record.
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend: "sqlite" or "memory".
	Backend string `yaml:"backend"`

	// SQLite configures the SQLite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention configures pruning of old runs.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains SQLite-specific settings.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string `yaml:"path"`

	// Driver is the database/sql driver name: "sqlite" (modernc.org/sqlite)
	// or "sqlite3" (mattn/go-sqlite3).
	Driver string `yaml:"driver"`

	// MaxOpenConns is the maximum number of open connections.
	MaxOpenConns int `yaml:"max_open_conns"`

	// WALMode enables Write-Ahead Logging.
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long SQLite waits on a locked database.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig configures pruning of recorded runs.
type RetentionConfig struct {
	// MaxRuns keeps only the newest N runs. Zero disables the limit.
	MaxRuns int `yaml:"max_runs"`

	// MaxAge deletes runs older than this. Zero disables the limit.
	MaxAge time.Duration `yaml:"max_age"`

	// Schedule is the cron expression for pruning (standard 5-field syntax).
	Schedule string `yaml:"schedule"`
}

// WatchConfig configures file watching.
type WatchConfig struct {
	// DebounceInterval coalesces bursts of file events.
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// TelemetryConfig groups observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "text" or "json".
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	Enabled bool `yaml:"enabled"`

	// Namespace prefixes every metric name.
	Namespace string `yaml:"namespace"`

	// ListenAddress, when set, serves the metrics endpoint during watch mode.
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path of the metrics endpoint.
	Path string `yaml:"path"`

	// DurationBuckets are the histogram buckets for run durations, in seconds.
	DurationBuckets []float64 `yaml:"duration_buckets"`
}
