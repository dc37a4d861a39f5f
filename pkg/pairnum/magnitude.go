package pairnum

// Magnitude returns 3*magnitude(left) + 2*magnitude(right) for a pair and
// the value itself for a leaf.
//
// The computation is an iterative fold over the leaf sequence, so it uses
// no recursion proportional to nesting. A number that is not a
// well-formed nested pair yields an *errors.InvariantError.
func Magnitude(n Number) (int, error) {
	return fold(n, "magnitude",
		func(v int) int { return v },
		func(left, right int) int { return 3*left + 2*right },
	)
}

// MustMagnitude is like Magnitude but panics on a malformed number.
// Use it only on numbers produced by the parser or by Add.
func MustMagnitude(n Number) int {
	m, err := Magnitude(n)
	if err != nil {
		panic(err)
	}
	return m
}
