package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
	_ "modernc.org/sqlite"          // registers "sqlite"

	"mercator-hq/pairnum/pkg/config"
	"mercator-hq/pairnum/pkg/results"
)

// Driver names accepted in config.SQLiteConfig.Driver.
const (
	DriverModernC = "sqlite"  // modernc.org/sqlite, pure Go
	DriverMattn   = "sqlite3" // github.com/mattn/go-sqlite3, cgo
)

// SQLiteStorage implements results.Storage on SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config config.SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens (creating if needed) the database at cfg.Path,
// applies the schema and verifies its version.
func NewSQLiteStorage(cfg config.SQLiteConfig, logger *slog.Logger) (*SQLiteStorage, error) {
	if cfg.Path == "" {
		return nil, results.NewStorageError("sqlite", "open", errors.New("database path is empty"))
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverModernC
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = config.DefaultResultsSQLiteMaxOpenConn
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "results.storage.sqlite")

	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, results.NewStorageError("sqlite", "open", err)
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, results.NewStorageError("sqlite", "open", err)
		}
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, results.NewStorageError("sqlite", "open", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	s := &SQLiteStorage{db: db, config: cfg, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", cfg.Path,
		"driver", cfg.Driver,
		"wal_mode", cfg.WALMode,
		"max_open_conns", cfg.MaxOpenConns,
	)
	return s, nil
}

// buildDSN encodes busy timeout and journal mode in the form each driver
// expects, so every pooled connection gets them.
func buildDSN(cfg config.SQLiteConfig) (string, error) {
	busy := cfg.BusyTimeout.Milliseconds()
	q := url.Values{}

	switch cfg.Driver {
	case DriverModernC:
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy))
		if cfg.WALMode {
			q.Add("_pragma", "journal_mode(WAL)")
		}
	case DriverMattn:
		q.Set("_busy_timeout", fmt.Sprint(busy))
		if cfg.WALMode {
			q.Set("_journal_mode", "WAL")
		}
	default:
		return "", fmt.Errorf("unsupported sqlite driver %q", cfg.Driver)
	}

	return "file:" + cfg.Path + "?" + q.Encode(), nil
}

func (s *SQLiteStorage) initialize() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return results.NewStorageError("sqlite", "create_schema", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return results.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return results.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return results.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

// Store inserts run. An existing ID yields results.ErrDuplicate.
func (s *SQLiteStorage) Store(ctx context.Context, run *results.Run) error {
	res, err := s.db.ExecContext(ctx, insertRunSQL,
		run.ID, run.InputPath, run.InputHash,
		run.Count, run.Part1, run.Part2,
		run.BestI, run.BestJ, run.Explodes, run.Splits,
		run.StartedAt.UnixNano(), int64(run.Duration),
	)
	if err != nil {
		return results.NewStorageError("sqlite", "store", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return results.NewStorageError("sqlite", "store", err)
	}
	if n == 0 {
		return results.NewStorageError("sqlite", "store", results.ErrDuplicate)
	}

	s.logger.Debug("run stored", "run_id", run.ID)
	return nil
}

// Get returns the run with the given ID.
func (s *SQLiteStorage) Get(ctx context.Context, id string) (*results.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, getRunSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, results.ErrNotFound
	}
	if err != nil {
		return nil, results.NewStorageError("sqlite", "get", err)
	}
	return run, nil
}

// List returns up to limit runs, newest first.
func (s *SQLiteStorage) List(ctx context.Context, limit int) ([]*results.Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, listRunsSQL, limit)
	if err != nil {
		return nil, results.NewStorageError("sqlite", "list", err)
	}
	defer rows.Close()

	var runs []*results.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, results.NewStorageError("sqlite", "list", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, results.NewStorageError("sqlite", "list", err)
	}
	return runs, nil
}

// DeleteOlderThan removes runs started before cutoff.
func (s *SQLiteStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.exec(ctx, "delete_older_than", deleteOlderThanSQL, cutoff.UnixNano())
}

// DeleteExceptLatest keeps the newest n runs.
func (s *SQLiteStorage) DeleteExceptLatest(ctx context.Context, n int) (int64, error) {
	if n < 0 {
		n = 0
	}
	return s.exec(ctx, "delete_except_latest", deleteExceptLatestSQL, n)
}

// Count returns the number of stored runs.
func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, countRunsSQL).Scan(&n); err != nil {
		return 0, results.NewStorageError("sqlite", "count", err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return results.NewStorageError("sqlite", "close", err)
	}
	s.logger.Debug("SQLite storage closed")
	return nil
}

// Ping verifies the database is reachable.
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStorage) exec(ctx context.Context, op, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, results.NewStorageError("sqlite", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, results.NewStorageError("sqlite", op, err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*results.Run, error) {
	var (
		run       results.Run
		startedAt int64
		duration  int64
	)
	err := row.Scan(
		&run.ID, &run.InputPath, &run.InputHash,
		&run.Count, &run.Part1, &run.Part2,
		&run.BestI, &run.BestJ, &run.Explodes, &run.Splits,
		&startedAt, &duration,
	)
	if err != nil {
		return nil, err
	}
	run.StartedAt = time.Unix(0, startedAt).UTC()
	run.Duration = time.Duration(duration)
	return &run, nil
}
