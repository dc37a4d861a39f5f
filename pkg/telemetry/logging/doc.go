// Package logging provides structured logging for pairnum.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging in JSON or text format
//   - Context-aware logging that carries the homework run ID and input path
//   - Configurable log levels (debug, info, warn, error)
//
// Logs are written to stderr by default so that stdout only carries results.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "text",
//	})
//
//	ctx = logging.WithRunID(ctx, runID)
//	logger.InfoContext(ctx, "homework finished", "part1", 4140)
//
// Components that accept a *slog.Logger take logger.Slog().
package logging
