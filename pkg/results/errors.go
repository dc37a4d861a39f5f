package results

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Storage.Get for an unknown ID.
	ErrNotFound = errors.New("results: run not found")

	// ErrDuplicate is returned by Storage.Store for an ID already stored.
	ErrDuplicate = errors.New("results: run already stored")
)

// StorageError represents an error from a storage backend.
type StorageError struct {
	Backend   string // "sqlite" or "memory"
	Operation string // "store", "list", "delete", ...
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// RetentionError reports a failed pruning pass.
type RetentionError struct {
	Policy string // "max_age" or "max_runs"
	Cause  error
}

// Error implements the error interface.
func (e *RetentionError) Error() string {
	return fmt.Sprintf("retention error [policy=%s]: %v", e.Policy, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *RetentionError) Unwrap() error {
	return e.Cause
}

// NewRetentionError creates a new RetentionError.
func NewRetentionError(policy string, cause error) *RetentionError {
	return &RetentionError{Policy: policy, Cause: cause}
}
