// Package errors provides the error types raised by the pairnum engine.
//
// Two failure classes are kept apart:
//
// ParseError: the input text does not follow the bracket grammar. It carries
// the line, column and byte offset of the offending character and is always
// surfaced to the caller.
//
// InvariantError: a Number that is not a well-formed nested pair reached an
// operation that requires one (for example the magnitude fold finished with
// more than one value on its stack). It wraps ErrMalformed and signals a
// defect, not bad user input.
//
// # Error Format
//
// Parse errors render with the offending source line and a caret:
//
//	[syntax] expected ',' but found ']'
//	  --> line 3, column 6
//	  |
//	  |  [1,2]]
//	  |       ^
//
// # Basic Usage
//
//	n, err := parser.Parse(text)
//	var perr *errors.ParseError
//	if stderrors.As(err, &perr) {
//	    fmt.Println(perr.Line, perr.Column, perr.Reason)
//	}
package errors
