package cli

import (
	"errors"
	"fmt"

	pnErrors "mercator-hq/pairnum/pkg/pairnum/errors"
)

// Process exit codes.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitParseError = 2
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// ExitCode maps err to the process exit code. Malformed input anywhere in
// the chain exits with ExitParseError.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case pnErrors.IsParseError(err):
		return ExitParseError
	default:
		return ExitFailure
	}
}

// IsConfigError reports whether err is or wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
