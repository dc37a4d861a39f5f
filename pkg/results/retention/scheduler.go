package retention

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a Pruner on its cron schedule.
type Scheduler struct {
	pruner *Pruner
	cron   *cron.Cron
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewScheduler creates a scheduler for pruner.
func NewScheduler(pruner *Pruner) *Scheduler {
	return &Scheduler{
		pruner: pruner,
		logger: pruner.logger,
	}
}

// Start schedules pruning using the standard 5-field cron syntax, e.g.
// "0 3 * * *" for daily at 3 AM, or descriptors such as "@every 1h".
// The scheduler stops when ctx is cancelled or Stop is called. An empty
// schedule is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	spec := s.pruner.Schedule()
	if spec == "" {
		s.logger.Info("prune schedule not configured, skipping scheduler")
		return nil
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}

	s.cron = cron.New()
	s.cron.Schedule(schedule, cron.FuncJob(func() {
		s.runPruning(ctx)
	}))
	s.cron.Start()
	s.running = true
	s.done = make(chan struct{})

	s.logger.Info("retention scheduler started", "schedule", spec)

	done := s.done
	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-done:
		}
	}()

	return nil
}

func (s *Scheduler) runPruning(ctx context.Context) {
	deleted, err := s.pruner.Prune(ctx)
	if err != nil {
		s.logger.Error("scheduled pruning failed", "error", err)
		return
	}
	s.logger.Debug("scheduled pruning completed", "deleted_count", deleted)
}

// Stop stops the scheduler and waits for a running prune to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	close(s.done)
	s.running = false
	s.logger.Info("retention scheduler stopped")
}

// IsRunning reports whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled pruning time, or nil when not running.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}
