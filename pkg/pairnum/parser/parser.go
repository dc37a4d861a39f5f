package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mercator-hq/pairnum/pkg/pairnum"
	pnErrors "mercator-hq/pairnum/pkg/pairnum/errors"
)

// DefaultMaxNesting bounds bracket nesting to keep recursion shallow on
// hostile input.
const DefaultMaxNesting = 1024

// maxLineBytes is the largest homework line ParseLines accepts.
const maxLineBytes = 1 << 20

// Parser parses bracket notation into pairnum.Number values.
type Parser struct {
	maxNesting int
}

// NewParser creates a parser with default limits.
func NewParser() *Parser {
	return &Parser{maxNesting: DefaultMaxNesting}
}

// WithMaxNesting sets the deepest bracket nesting the parser accepts.
// Values below 1 restore the default.
func (p *Parser) WithMaxNesting(n int) *Parser {
	if n < 1 {
		n = DefaultMaxNesting
	}
	p.maxNesting = n
	return p
}

// Parse parses a single number. The whole of text must be consumed.
func (p *Parser) Parse(text string) (pairnum.Number, error) {
	s := &scanner{src: text, maxNesting: p.maxNesting}
	if len(text) == 0 {
		return nil, s.errorf("empty input, expected '[' or digit")
	}

	var out pairnum.Number
	if err := s.number(0, &out); err != nil {
		return nil, err
	}
	if s.pos != len(s.src) {
		return nil, s.errorf("unexpected trailing input %q", s.src[s.pos:])
	}
	return out, nil
}

// ParseLines parses one number per line from r. Surrounding whitespace is
// trimmed and blank lines are skipped. Parsing stops at the first error,
// which is tagged with its 1-based line number.
func (p *Parser) ParseLines(r io.Reader) ([]pairnum.Number, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var nums []pairnum.Number
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		n, err := p.Parse(text)
		if err != nil {
			if perr, ok := err.(*pnErrors.ParseError); ok {
				return nil, perr.WithLine(line)
			}
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		nums = append(nums, n)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return nums, nil
}

// Parse parses a single number with a default Parser.
func Parse(text string) (pairnum.Number, error) {
	return NewParser().Parse(text)
}

// MustParse is like Parse but panics on error. It is intended for tests
// and literals known to be valid.
func MustParse(text string) pairnum.Number {
	n, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return n
}

// ParseLines parses one number per line with a default Parser.
func ParseLines(r io.Reader) ([]pairnum.Number, error) {
	return NewParser().ParseLines(r)
}

// scanner holds the read cursor for one Parse call. Depth is passed down
// the recursion rather than stored here.
type scanner struct {
	src        string
	pos        int
	maxNesting int
}

func (s *scanner) number(depth int, out *pairnum.Number) error {
	if s.pos >= len(s.src) {
		return s.errorf("unexpected end of input, expected '[' or digit")
	}

	switch c := s.src[s.pos]; {
	case c == '[':
		return s.pair(depth, out)
	case isDigit(c):
		return s.literal(depth, out)
	default:
		return s.errorf("unexpected %q, expected '[' or digit", c)
	}
}

func (s *scanner) pair(depth int, out *pairnum.Number) error {
	if depth >= s.maxNesting {
		return s.errorf("nesting deeper than %d", s.maxNesting)
	}
	s.pos++ // '['

	if err := s.number(depth+1, out); err != nil {
		return err
	}
	if err := s.expect(','); err != nil {
		return err
	}
	if err := s.number(depth+1, out); err != nil {
		return err
	}
	return s.expect(']')
}

func (s *scanner) literal(depth int, out *pairnum.Number) error {
	start := s.pos
	for s.pos < len(s.src) && isDigit(s.src[s.pos]) {
		s.pos++
	}

	v, err := strconv.ParseInt(s.src[start:s.pos], 10, 32)
	if err != nil {
		perr := pnErrors.NewParseError(s.src, start, "literal %s does not fit in 32 bits", s.src[start:s.pos])
		perr.Type = pnErrors.ErrorTypeRange
		return perr
	}

	*out = append(*out, pairnum.Entry{Value: int(v), Depth: depth})
	return nil
}

func (s *scanner) expect(want byte) error {
	if s.pos >= len(s.src) {
		return s.errorf("unexpected end of input, expected %q", want)
	}
	if got := s.src[s.pos]; got != want {
		return s.errorf("expected %q but found %q", want, got)
	}
	s.pos++
	return nil
}

func (s *scanner) errorf(format string, args ...any) *pnErrors.ParseError {
	return pnErrors.NewParseError(s.src, s.pos, format, args...)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
