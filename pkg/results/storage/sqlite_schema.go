package storage

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the runs table. Times are stored as Unix nanoseconds so
// both drivers read them back identically.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    input_path TEXT NOT NULL,
    input_hash TEXT NOT NULL,
    count INTEGER NOT NULL,
    part1 INTEGER NOT NULL,
    part2 INTEGER NOT NULL,
    best_i INTEGER NOT NULL,
    best_j INTEGER NOT NULL,
    explodes INTEGER NOT NULL,
    splits INTEGER NOT NULL,
    started_at INTEGER NOT NULL,
    duration_ns INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_runs_input_hash ON runs(input_hash);
`

// InsertSchemaVersion records the schema version once.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion returns the newest applied schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const (
	insertRunSQL = `
INSERT INTO runs (
    id, input_path, input_hash, count, part1, part2,
    best_i, best_j, explodes, splits, started_at, duration_ns
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO NOTHING;
`

	selectRunColumns = `
SELECT id, input_path, input_hash, count, part1, part2,
       best_i, best_j, explodes, splits, started_at, duration_ns
FROM runs`

	getRunSQL = selectRunColumns + ` WHERE id = ?;`

	listRunsSQL = selectRunColumns + ` ORDER BY started_at DESC, rowid DESC LIMIT ?;`

	deleteOlderThanSQL = `DELETE FROM runs WHERE started_at < ?;`

	deleteExceptLatestSQL = `
DELETE FROM runs WHERE rowid NOT IN (
    SELECT rowid FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
);`

	countRunsSQL = `SELECT COUNT(*) FROM runs;`
)
