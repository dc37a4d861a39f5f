package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceInterval coalesces the burst of events a single save produces.
const DefaultDebounceInterval = 100 * time.Millisecond

// ErrAlreadyWatching is returned when Watch is called while a watch is active.
var ErrAlreadyWatching = errors.New("watch: watcher already running")

// Config configures a FileWatcher.
type Config struct {
	// Path is the file to watch.
	Path string

	// DebounceInterval is the quiet period after the last event before the
	// callback runs.
	DebounceInterval time.Duration
}

// FileWatcher invokes a callback when a single file is written or replaced.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file over the original keep
// triggering changes.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	config  Config
	target  string
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
	closed  bool
}

// NewFileWatcher creates a watcher for cfg.Path. The file must exist.
func NewFileWatcher(cfg Config, logger *slog.Logger) (*FileWatcher, error) {
	if cfg.DebounceInterval <= 0 {
		cfg.DebounceInterval = DefaultDebounceInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	target, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", cfg.Path, err)
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", cfg.Path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%q is a directory, want a file", cfg.Path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(target), err)
	}

	return &FileWatcher{
		watcher: w,
		config:  cfg,
		target:  target,
		logger:  logger.With("component", "watch", "path", cfg.Path),
	}, nil
}

// Watch blocks until ctx is cancelled, calling onChange after each debounced
// burst of writes to the file. Calls are serialized on the Watch goroutine,
// so a slow callback delays but never overlaps the next one. Callback errors
// are logged and watching continues.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(context.Context) error) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return ErrAlreadyWatching
	}
	if fw.closed {
		fw.mu.Unlock()
		return errors.New("watch: watcher closed")
	}
	fw.running = true
	fw.mu.Unlock()

	defer func() {
		fw.mu.Lock()
		fw.running = false
		fw.mu.Unlock()
	}()

	fw.logger.Info("file watcher started", "debounce_ms", fw.config.DebounceInterval.Milliseconds())

	timer := time.NewTimer(fw.config.DebounceInterval)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watch: events channel closed")
			}
			if !fw.relevant(event) {
				continue
			}
			fw.logger.Debug("file event detected", "op", event.Op.String())
			timer.Reset(fw.config.DebounceInterval)

		case <-timer.C:
			if _, err := os.Stat(fw.target); err != nil {
				fw.logger.Debug("file missing after change, waiting", "error", err)
				continue
			}
			if err := onChange(ctx); err != nil {
				fw.logger.Error("change handler failed", "error", err)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watch: errors channel closed")
			}
			fw.logger.Error("file watcher error", "error", err)
		}
	}
}

// relevant reports whether event changes the watched file's content.
func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != fw.target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// Close releases the underlying fsnotify watcher. Watch must have returned.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.closed {
		return nil
	}
	fw.closed = true
	if err := fw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}
