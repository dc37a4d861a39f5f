package results

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"mercator-hq/pairnum/pkg/homework"
)

// Run is a recorded homework run.
type Run struct {
	ID        string        `json:"id"`
	InputPath string        `json:"input_path"`
	InputHash string        `json:"input_hash"` // SHA-256 of the raw input, hex
	Count     int           `json:"count"`
	Part1     int           `json:"part1"`
	Part2     int           `json:"part2"`
	BestI     int           `json:"best_i"`
	BestJ     int           `json:"best_j"`
	Explodes  int           `json:"explodes"`
	Splits    int           `json:"splits"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// NewRun builds a Run from a driver result. input is the raw homework text
// the result was computed from.
func NewRun(res *homework.Result, inputPath string, input []byte) *Run {
	stats := res.SumStats
	stats.Merge(res.PairStats)
	return &Run{
		ID:        res.RunID,
		InputPath: inputPath,
		InputHash: HashInput(input),
		Count:     res.Count,
		Part1:     res.Part1,
		Part2:     res.Part2,
		BestI:     res.Best.I,
		BestJ:     res.Best.J,
		Explodes:  stats.Explodes,
		Splits:    stats.Splits,
		StartedAt: res.Started,
		Duration:  res.Duration,
	}
}

// HashInput returns the hex SHA-256 of input.
func HashInput(input []byte) string {
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}

// Storage persists recorded runs. Implementations must be safe for
// concurrent use.
type Storage interface {
	// Store persists a run. Storing an existing ID is an error.
	Store(ctx context.Context, run *Run) error

	// Get returns the run with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns up to limit runs, newest first. A limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]*Run, error)

	// DeleteOlderThan removes runs started before cutoff.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteExceptLatest keeps the newest n runs and removes the rest.
	DeleteExceptLatest(ctx context.Context, n int) (int64, error)

	// Count returns the number of stored runs.
	Count(ctx context.Context) (int64, error)

	// Close releases resources held by the backend.
	Close() error
}
