package results

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"mercator-hq/pairnum/pkg/homework"
	"mercator-hq/pairnum/pkg/pairnum"
)

func TestNewRun(t *testing.T) {
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	res := &homework.Result{
		RunID:     "run-1",
		Count:     10,
		Part1:     4140,
		Part2:     3993,
		Best:      homework.PairResult{I: 8, J: 0, Magnitude: 3993},
		SumStats:  pairnum.Stats{Explodes: 40, Splits: 7},
		PairStats: pairnum.Stats{Explodes: 900, Splits: 120},
		Started:   started,
		Duration:  25 * time.Millisecond,
	}

	got := NewRun(res, "homework.txt", []byte("[1,2]\n"))
	want := &Run{
		ID:        "run-1",
		InputPath: "homework.txt",
		InputHash: HashInput([]byte("[1,2]\n")),
		Count:     10,
		Part1:     4140,
		Part2:     3993,
		BestI:     8,
		BestJ:     0,
		Explodes:  940,
		Splits:    127,
		StartedAt: started,
		Duration:  25 * time.Millisecond,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewRun mismatch (-want +got):\n%s", diff)
	}
}

func TestHashInput(t *testing.T) {
	// sha256 of the empty string
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := HashInput(nil); got != empty {
		t.Errorf("HashInput(nil) = %q, want %q", got, empty)
	}

	a := HashInput([]byte("[1,2]"))
	b := HashInput([]byte("[2,1]"))
	if a == b {
		t.Error("different inputs produced the same hash")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("sqlite", "store", cause)

	if !errors.Is(err, cause) {
		t.Error("StorageError should unwrap to its cause")
	}
	want := "storage error [backend=sqlite, operation=store]: disk full"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	rerr := NewRetentionError("max_runs", err)
	var serr *StorageError
	if !errors.As(rerr, &serr) {
		t.Error("RetentionError should unwrap to StorageError")
	}
}
