package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "homework.workers").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

var metricNamespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateHomework(&cfg.Homework)...)
	errs = append(errs, validateResults(&cfg.Results)...)
	errs = append(errs, validateWatch(&cfg.Watch)...)
	errs = append(errs, validateLogging(&cfg.Telemetry.Logging)...)
	errs = append(errs, validateMetrics(&cfg.Telemetry.Metrics)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateHomework(cfg *HomeworkConfig) []FieldError {
	var errs []FieldError

	if cfg.Workers < 0 {
		errs = append(errs, FieldError{
			Field:   "homework.workers",
			Message: fmt.Sprintf("must be zero or positive, got %d", cfg.Workers),
		})
	}
	if cfg.MaxNesting < 1 {
		errs = append(errs, FieldError{
			Field:   "homework.max_nesting",
			Message: fmt.Sprintf("must be positive, got %d", cfg.MaxNesting),
		})
	}

	return errs
}

func validateResults(cfg *ResultsConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "sqlite":
		if cfg.SQLite.Path == "" {
			errs = append(errs, FieldError{Field: "results.sqlite.path", Message: "must not be empty"})
		}
		if cfg.SQLite.Driver != "sqlite" && cfg.SQLite.Driver != "sqlite3" {
			errs = append(errs, FieldError{
				Field:   "results.sqlite.driver",
				Message: fmt.Sprintf("must be one of [sqlite, sqlite3], got %q", cfg.SQLite.Driver),
			})
		}
		if cfg.SQLite.MaxOpenConns < 1 {
			errs = append(errs, FieldError{
				Field:   "results.sqlite.max_open_conns",
				Message: fmt.Sprintf("must be positive, got %d", cfg.SQLite.MaxOpenConns),
			})
		}
		if cfg.SQLite.BusyTimeout < 0 {
			errs = append(errs, FieldError{Field: "results.sqlite.busy_timeout", Message: "must not be negative"})
		}
	case "memory":
	default:
		errs = append(errs, FieldError{
			Field:   "results.backend",
			Message: fmt.Sprintf("must be one of [sqlite, memory], got %q", cfg.Backend),
		})
	}

	if cfg.Retention.MaxRuns < 0 {
		errs = append(errs, FieldError{
			Field:   "results.retention.max_runs",
			Message: fmt.Sprintf("must be zero or positive, got %d", cfg.Retention.MaxRuns),
		})
	}
	if cfg.Retention.MaxAge < 0 {
		errs = append(errs, FieldError{Field: "results.retention.max_age", Message: "must not be negative"})
	}
	if _, err := cron.ParseStandard(cfg.Retention.Schedule); err != nil {
		errs = append(errs, FieldError{
			Field:   "results.retention.schedule",
			Message: fmt.Sprintf("invalid cron expression %q: %v", cfg.Retention.Schedule, err),
		})
	}

	return errs
}

func validateWatch(cfg *WatchConfig) []FieldError {
	if cfg.DebounceInterval <= 0 {
		return []FieldError{{Field: "watch.debounce_interval", Message: "must be positive"}}
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of [debug, info, warn, error], got %q", cfg.Level),
		})
	}

	switch strings.ToLower(cfg.Format) {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be one of [json, text], got %q", cfg.Format),
		})
	}

	return errs
}

func validateMetrics(cfg *MetricsConfig) []FieldError {
	if !cfg.Enabled {
		return nil
	}

	var errs []FieldError

	if !metricNamespacePattern.MatchString(cfg.Namespace) {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.namespace",
			Message: fmt.Sprintf("invalid metric namespace %q", cfg.Namespace),
		})
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: fmt.Sprintf("must start with '/', got %q", cfg.Path),
		})
	}
	if cfg.ListenAddress != "" {
		if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: fmt.Sprintf("invalid address %q: %v", cfg.ListenAddress, err),
			})
		}
	}
	for i := 1; i < len(cfg.DurationBuckets); i++ {
		if cfg.DurationBuckets[i] <= cfg.DurationBuckets[i-1] {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.duration_buckets",
				Message: "must be strictly increasing",
			})
			break
		}
	}

	return errs
}
