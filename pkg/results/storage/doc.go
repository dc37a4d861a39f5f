// Package storage provides backends for recorded homework runs.
//
// MemoryStorage keeps runs for the lifetime of the process. SQLiteStorage
// persists them in a single file through either modernc.org/sqlite
// (driver "sqlite", no cgo) or github.com/mattn/go-sqlite3 (driver
// "sqlite3"). Both order runs newest first by start time, with insertion
// order breaking ties.
package storage
