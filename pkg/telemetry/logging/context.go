package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for homework run IDs.
	RunIDKey contextKey = "run_id"

	// InputKey is the context key for the homework input path.
	InputKey contextKey = "input"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithInput adds the homework input path to the context.
func WithInput(ctx context.Context, input string) context.Context {
	return context.WithValue(ctx, InputKey, input)
}

// GetInput retrieves the homework input path from the context.
func GetInput(ctx context.Context) string {
	if input, ok := ctx.Value(InputKey).(string); ok {
		return input
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}
	if input := GetInput(ctx); input != "" {
		fields = append(fields, "input", input)
	}

	return fields
}
