// Package parser reads nested pair numbers written in bracket notation.
//
// Grammar:
//
//	number  := literal | pair
//	pair    := "[" number "," number "]"
//	literal := digit { digit }
//
// No whitespace is permitted inside a number. ParseLines reads one number
// per line and skips blank lines.
//
// Every failure is a *errors.ParseError carrying the position of the
// offending character.
package parser
