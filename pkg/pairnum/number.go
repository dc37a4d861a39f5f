package pairnum

import (
	"fmt"
	"strconv"
	"strings"

	pnErrors "mercator-hq/pairnum/pkg/pairnum/errors"
)

// Entry is one leaf of a nested pair number.
type Entry struct {
	Value int // Leaf value
	Depth int // Number of enclosing brackets (0 for a bare literal)
}

// Number is the in-order sequence of a nested pair number's leaves.
//
// A Number is owned by a single holder. Add consumes its operands and
// Reduce rewrites in place; use Clone when the same number feeds several
// computations.
type Number []Entry

// Clone returns an independent copy of n.
func (n Number) Clone() Number {
	if n == nil {
		return nil
	}
	c := make(Number, len(n))
	copy(c, n)
	return c
}

// Values returns the leaf values in order.
func (n Number) Values() []int {
	values := make([]int, len(n))
	for i, e := range n {
		values[i] = e.Value
	}
	return values
}

// MaxDepth returns the deepest leaf depth, or -1 for an empty number.
func (n Number) MaxDepth() int {
	maxDepth := -1
	for _, e := range n {
		maxDepth = max(maxDepth, e.Depth)
	}
	return maxDepth
}

// Equal reports whether n and o have the same entries.
func (n Number) Equal(o Number) bool {
	if len(n) != len(o) {
		return false
	}
	for i := range n {
		if n[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders n in bracket notation.
func (n Number) String() string {
	s, err := fold(n, "render",
		strconv.Itoa,
		func(left, right string) string {
			return "[" + left + "," + right + "]"
		},
	)
	if err != nil {
		parts := make([]string, len(n))
		for i, e := range n {
			parts[i] = fmt.Sprintf("%d@%d", e.Value, e.Depth)
		}
		return "<malformed " + strings.Join(parts, " ") + ">"
	}
	return s
}

// Validate checks that n describes a well-formed nested pair.
func (n Number) Validate() error {
	_, err := fold(n, "validate",
		func(int) struct{} { return struct{}{} },
		func(struct{}, struct{}) struct{} { return struct{}{} },
	)
	return err
}

type frame[T any] struct {
	val   T
	depth int
}

// fold collapses n bottom-up without building a tree. Entries are pushed
// left to right; whenever the top two frames share a depth d they are
// replaced by pair(left, right) at depth d-1. A well-formed number leaves
// exactly one frame at depth 0.
func fold[T any](n Number, op string, leaf func(int) T, pair func(left, right T) T) (T, error) {
	var zero T
	if len(n) == 0 {
		return zero, pnErrors.NewInvariantError(op, "empty number")
	}

	stack := make([]frame[T], 0, n.MaxDepth()+2)
	for i, e := range n {
		if e.Depth < 0 {
			return zero, pnErrors.NewInvariantError(op, "entry %d has negative depth %d", i, e.Depth)
		}
		stack = append(stack, frame[T]{val: leaf(e.Value), depth: e.Depth})

		for len(stack) >= 2 {
			top := len(stack) - 1
			left, right := stack[top-1], stack[top]
			if left.depth != right.depth {
				break
			}
			if right.depth == 0 {
				return zero, pnErrors.NewInvariantError(op, "pair above top level at entry %d", i)
			}
			stack = append(stack[:top-1], frame[T]{
				val:   pair(left.val, right.val),
				depth: right.depth - 1,
			})
		}
	}

	if len(stack) != 1 {
		return zero, pnErrors.NewInvariantError(op, "%d values left after fold, want 1", len(stack))
	}
	if stack[0].depth != 0 {
		return zero, pnErrors.NewInvariantError(op, "fold ended at depth %d, want 0", stack[0].depth)
	}
	return stack[0].val, nil
}
