package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType categorizes the type of error encountered by the engine.
type ErrorType string

const (
	ErrorTypeSyntax    ErrorType = "syntax"    // Bracket grammar violation
	ErrorTypeRange     ErrorType = "range"     // Literal does not fit in 32 bits
	ErrorTypeInvariant ErrorType = "invariant" // Malformed number reached an evaluator
)

// ErrMalformed is wrapped by every InvariantError.
var ErrMalformed = stderrors.New("pairnum: malformed number")

// ParseError reports malformed bracket text.
type ParseError struct {
	Type   ErrorType // syntax or range
	Reason string    // What was expected or found
	Line   int       // 1-based input line, 0 when parsing a single literal
	Column int       // 1-based column within the line
	Offset int       // 0-based byte offset within the line
	Source string    // The offending line, used for context
}

// Error implements the error interface.
// The message includes the location and, when available, a caret context.
func (e *ParseError) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Type, e.Reason))
	sb.WriteString(fmt.Sprintf("  --> %s\n", e.Position()))

	if e.Source != "" {
		sb.WriteString("  |\n")
		sb.WriteString(fmt.Sprintf("  |  %s\n", e.Source))
		sb.WriteString(fmt.Sprintf("  |  %s^\n", strings.Repeat(" ", e.Offset)))
	}

	return sb.String()
}

// Position returns a human-readable location.
func (e *ParseError) Position() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, column %d", e.Line, e.Column)
	}
	return fmt.Sprintf("column %d", e.Column)
}

// NewParseError creates a syntax error at the given byte offset of source.
func NewParseError(source string, offset int, format string, args ...any) *ParseError {
	return &ParseError{
		Type:   ErrorTypeSyntax,
		Reason: fmt.Sprintf(format, args...),
		Column: offset + 1,
		Offset: offset,
		Source: source,
	}
}

// WithLine returns a copy of the error tagged with a 1-based input line.
func (e *ParseError) WithLine(line int) *ParseError {
	c := *e
	c.Line = line
	return &c
}

// InvariantError reports that a Number violated the structural
// well-formedness invariant.
type InvariantError struct {
	Op      string // Operation that detected the violation
	Message string
}

// Error implements the error interface.
func (e *InvariantError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ErrorTypeInvariant, e.Op, e.Message)
}

// Unwrap returns ErrMalformed so callers can match with errors.Is.
func (e *InvariantError) Unwrap() error {
	return ErrMalformed
}

// NewInvariantError creates a new InvariantError.
func NewInvariantError(op, format string, args ...any) *InvariantError {
	return &InvariantError{
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsParseError reports whether err is or wraps a ParseError.
func IsParseError(err error) bool {
	var perr *ParseError
	return stderrors.As(err, &perr)
}
