package pairnum

import "slices"

const (
	// ExplodeDepth is the depth at which a pair's leaves explode.
	ExplodeDepth = 5

	// SplitThreshold is the smallest leaf value that splits.
	SplitThreshold = 10
)

// Stats counts the rewrites applied while reducing.
type Stats struct {
	Explodes int
	Splits   int
}

// Merge adds o's counts to s.
func (s *Stats) Merge(o Stats) {
	s.Explodes += o.Explodes
	s.Splits += o.Splits
}

// Total returns the number of rewrites.
func (s Stats) Total() int {
	return s.Explodes + s.Splits
}

// Reduce rewrites n in place until no rule applies.
//
// Explode always wins over split, and every rewrite restarts the scan from
// the leftmost entry. Reducing an already reduced number is a no-op and
// returns zero Stats.
func Reduce(n *Number) Stats {
	var st Stats
	for {
		if Explode(n) {
			st.Explodes++
			continue
		}
		if Split(n) {
			st.Splits++
			continue
		}
		return st
	}
}

// Explode applies the explode rule once to the leftmost pair of
// equal-depth adjacent leaves at depth ExplodeDepth or deeper.
// The left value is added to the preceding leaf and the right value to
// the following leaf, when they exist; the pair becomes a single 0.
// It reports whether a pair exploded.
func Explode(n *Number) bool {
	s := *n
	i := explodeIndex(s)
	if i < 0 {
		return false
	}

	left, right := s[i], s[i+1]
	if i > 0 {
		s[i-1].Value += left.Value
	}
	if i+2 < len(s) {
		s[i+2].Value += right.Value
	}

	s[i] = Entry{Value: 0, Depth: left.Depth - 1}
	*n = slices.Delete(s, i+1, i+2)
	return true
}

func explodeIndex(s Number) int {
	for i := 0; i+1 < len(s); i++ {
		if s[i].Depth >= ExplodeDepth && s[i].Depth == s[i+1].Depth {
			return i
		}
	}
	return -1
}

// Split applies the split rule once to the leftmost leaf whose value is at
// least SplitThreshold, replacing it with a pair that rounds down on the
// left and up on the right. It reports whether a leaf split.
func Split(n *Number) bool {
	s := *n
	for i, e := range s {
		if e.Value < SplitThreshold {
			continue
		}
		left := Entry{Value: e.Value / 2, Depth: e.Depth + 1}
		right := Entry{Value: (e.Value + 1) / 2, Depth: e.Depth + 1}
		s[i] = left
		*n = slices.Insert(s, i+1, right)
		return true
	}
	return false
}
