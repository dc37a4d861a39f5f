// Package config provides configuration management for pairnum.
//
// Configuration is read from an optional YAML file and may be overridden by
// environment variables. Every field has a default, so running without a
// file is the common case.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("pairnum.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("pairnum.yaml")
//
// An empty path yields DefaultConfig. ResolvePath implements the CLI rule
// that an explicit --config must exist while the default file may be absent.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention PAIRNUM_SECTION_FIELD:
//
//   - PAIRNUM_HOMEWORK_WORKERS overrides homework.workers
//   - PAIRNUM_RESULTS_SQLITE_PATH overrides results.sqlite.path
//   - PAIRNUM_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	homework:
//	  workers: 8
//
//	results:
//	  enabled: true
//	  backend: sqlite
//	  sqlite:
//	    path: data/pairnum.db
//	    driver: sqlite
//	  retention:
//	    max_runs: 500
//	    max_age: 720h
//	    schedule: "0 3 * * *"
//
//	watch:
//	  debounce_interval: 200ms
//
//	telemetry:
//	  logging:
//	    level: debug
//	    format: json
//	  metrics:
//	    enabled: true
//	    listen_address: 127.0.0.1:9090
package config
