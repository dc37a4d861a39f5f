package retention

import (
	"context"
	"log/slog"
	"time"

	"mercator-hq/pairnum/pkg/config"
	"mercator-hq/pairnum/pkg/results"
)

// Pruner enforces the retention limits on a results store.
type Pruner struct {
	storage results.Storage
	config  config.RetentionConfig
	logger  *slog.Logger
	now     func() time.Time
}

// NewPruner creates a pruner. A nil logger uses slog.Default().
func NewPruner(storage results.Storage, cfg config.RetentionConfig, logger *slog.Logger) *Pruner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{
		storage: storage,
		config:  cfg,
		logger:  logger.With("component", "results.retention"),
		now:     time.Now,
	}
}

// Prune deletes runs older than MaxAge, then trims the store to the newest
// MaxRuns. A zero limit is skipped. It returns the total number of runs
// deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.MaxAge > 0 {
		cutoff := p.now().Add(-p.config.MaxAge)
		deleted, err := p.storage.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return total, results.NewRetentionError("max_age", err)
		}
		total += deleted
		p.logger.Debug("pruned runs by age", "deleted_count", deleted, "cutoff", cutoff)
	}

	if p.config.MaxRuns > 0 {
		deleted, err := p.storage.DeleteExceptLatest(ctx, p.config.MaxRuns)
		if err != nil {
			return total, results.NewRetentionError("max_runs", err)
		}
		total += deleted
		p.logger.Debug("pruned runs by count", "deleted_count", deleted, "max_runs", p.config.MaxRuns)
	}

	if total > 0 {
		p.logger.Info("results pruning completed",
			"total_deleted", total,
			"max_age", p.config.MaxAge.String(),
			"max_runs", p.config.MaxRuns,
		)
	}
	return total, nil
}

// Schedule returns the configured cron expression.
func (p *Pruner) Schedule() string {
	return p.config.Schedule
}
