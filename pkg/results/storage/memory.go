package storage

import (
	"context"
	"slices"
	"sync"
	"time"

	"mercator-hq/pairnum/pkg/results"
)

// MemoryStorage implements results.Storage in process memory.
// Runs are lost when the process exits.
type MemoryStorage struct {
	mu   sync.RWMutex
	runs map[string]memoryEntry
	seq  int64
}

type memoryEntry struct {
	run results.Run
	seq int64
}

// NewMemoryStorage creates an empty in-memory backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{runs: make(map[string]memoryEntry)}
}

// Store persists a copy of run.
func (s *MemoryStorage) Store(ctx context.Context, run *results.Run) error {
	if err := ctx.Err(); err != nil {
		return results.NewStorageError("memory", "store", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[run.ID]; ok {
		return results.NewStorageError("memory", "store", results.ErrDuplicate)
	}
	s.seq++
	s.runs[run.ID] = memoryEntry{run: *run, seq: s.seq}
	return nil
}

// Get returns a copy of the run with the given ID.
func (s *MemoryStorage) Get(ctx context.Context, id string) (*results.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.runs[id]
	if !ok {
		return nil, results.ErrNotFound
	}
	run := e.run
	return &run, nil
}

// List returns up to limit runs, newest first.
func (s *MemoryStorage) List(ctx context.Context, limit int) ([]*results.Run, error) {
	s.mu.RLock()
	entries := s.sorted()
	s.mu.RUnlock()

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]*results.Run, len(entries))
	for i, e := range entries {
		run := e.run
		out[i] = &run
	}
	return out, nil
}

// DeleteOlderThan removes runs started before cutoff.
func (s *MemoryStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, e := range s.runs {
		if e.run.StartedAt.Before(cutoff) {
			delete(s.runs, id)
			deleted++
		}
	}
	return deleted, nil
}

// DeleteExceptLatest keeps the newest n runs.
func (s *MemoryStorage) DeleteExceptLatest(ctx context.Context, n int) (int64, error) {
	if n < 0 {
		n = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.sorted()
	if len(entries) <= n {
		return 0, nil
	}
	for _, e := range entries[n:] {
		delete(s.runs, e.run.ID)
	}
	return int64(len(entries) - n), nil
}

// Count returns the number of stored runs.
func (s *MemoryStorage) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.runs)), nil
}

// Close is a no-op.
func (s *MemoryStorage) Close() error {
	return nil
}

// sorted returns entries newest first; insertion order breaks ties.
// Callers hold s.mu.
func (s *MemoryStorage) sorted() []memoryEntry {
	entries := make([]memoryEntry, 0, len(s.runs))
	for _, e := range s.runs {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b memoryEntry) int {
		if c := b.run.StartedAt.Compare(a.run.StartedAt); c != 0 {
			return c
		}
		return int(b.seq - a.seq)
	})
	return entries
}
