package storage

import (
	"fmt"
	"log/slog"

	"mercator-hq/pairnum/pkg/config"
	"mercator-hq/pairnum/pkg/results"
)

// New opens the backend selected by cfg.Backend.
func New(cfg *config.ResultsConfig, logger *slog.Logger) (results.Storage, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryStorage(), nil
	case "sqlite", "":
		return NewSQLiteStorage(cfg.SQLite, logger)
	default:
		return nil, results.NewStorageError(cfg.Backend, "open", fmt.Errorf("unknown backend %q", cfg.Backend))
	}
}
