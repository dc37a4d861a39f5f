package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := &Config{}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	validationErr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	if len(validationErr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(validationErr.Errors))
	}

	errMsg := validationErr.Error()
	if !strings.Contains(errMsg, "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", errMsg)
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Config)
		wantError  bool
		errorField string
	}{
		{
			name:   "zero workers means per CPU",
			modify: func(c *Config) { c.Homework.Workers = 0 },
		},
		{
			name:       "negative workers",
			modify:     func(c *Config) { c.Homework.Workers = -2 },
			wantError:  true,
			errorField: "homework.workers",
		},
		{
			name:       "zero max nesting",
			modify:     func(c *Config) { c.Homework.MaxNesting = 0 },
			wantError:  true,
			errorField: "homework.max_nesting",
		},
		{
			name:       "unknown backend",
			modify:     func(c *Config) { c.Results.Backend = "postgres" },
			wantError:  true,
			errorField: "results.backend",
		},
		{
			name:       "unknown sqlite driver",
			modify:     func(c *Config) { c.Results.SQLite.Driver = "pgx" },
			wantError:  true,
			errorField: "results.sqlite.driver",
		},
		{
			name: "memory backend ignores sqlite settings",
			modify: func(c *Config) {
				c.Results.Backend = "memory"
				c.Results.SQLite.Driver = "pgx"
			},
		},
		{
			name:       "empty sqlite path",
			modify:     func(c *Config) { c.Results.SQLite.Path = "" },
			wantError:  true,
			errorField: "results.sqlite.path",
		},
		{
			name:       "negative max runs",
			modify:     func(c *Config) { c.Results.Retention.MaxRuns = -1 },
			wantError:  true,
			errorField: "results.retention.max_runs",
		},
		{
			name:       "negative max age",
			modify:     func(c *Config) { c.Results.Retention.MaxAge = -time.Hour },
			wantError:  true,
			errorField: "results.retention.max_age",
		},
		{
			name:       "bad cron schedule",
			modify:     func(c *Config) { c.Results.Retention.Schedule = "every tuesday" },
			wantError:  true,
			errorField: "results.retention.schedule",
		},
		{
			name:   "cron descriptor",
			modify: func(c *Config) { c.Results.Retention.Schedule = "@daily" },
		},
		{
			name:       "zero debounce",
			modify:     func(c *Config) { c.Watch.DebounceInterval = 0 },
			wantError:  true,
			errorField: "watch.debounce_interval",
		},
		{
			name:       "bad log level",
			modify:     func(c *Config) { c.Telemetry.Logging.Level = "trace" },
			wantError:  true,
			errorField: "telemetry.logging.level",
		},
		{
			name:       "bad log format",
			modify:     func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			wantError:  true,
			errorField: "telemetry.logging.format",
		},
		{
			name:       "bad namespace",
			modify:     func(c *Config) { c.Telemetry.Metrics.Namespace = "pair-num" },
			wantError:  true,
			errorField: "telemetry.metrics.namespace",
		},
		{
			name:       "relative metrics path",
			modify:     func(c *Config) { c.Telemetry.Metrics.Path = "metrics" },
			wantError:  true,
			errorField: "telemetry.metrics.path",
		},
		{
			name:       "bad listen address",
			modify:     func(c *Config) { c.Telemetry.Metrics.ListenAddress = "localhost" },
			wantError:  true,
			errorField: "telemetry.metrics.listen_address",
		},
		{
			name:       "unsorted buckets",
			modify:     func(c *Config) { c.Telemetry.Metrics.DurationBuckets = []float64{1, 0.5} },
			wantError:  true,
			errorField: "telemetry.metrics.duration_buckets",
		},
		{
			name: "disabled metrics skip checks",
			modify: func(c *Config) {
				c.Telemetry.Metrics.Enabled = false
				c.Telemetry.Metrics.Namespace = "pair-num"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if !tt.wantError {
				if err != nil {
					t.Errorf("expected no error, got: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected error, got nil")
			}
			verr, ok := err.(ValidationError)
			if !ok {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.errorField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error for field %q, got %v", tt.errorField, verr.Errors)
			}
		})
	}
}

func TestFieldError_Error(t *testing.T) {
	err := FieldError{Field: "homework.workers", Message: "must be zero or positive, got -1"}
	want := "homework.workers: must be zero or positive, got -1"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
