package pairnum

import "errors"

// ErrEmpty is returned when summing an empty list.
var ErrEmpty = errors.New("pairnum: nothing to add")

// Add returns the reduced sum [a,b].
//
// Both operands are consumed: the result may share a's backing array, so
// neither a nor b may be used afterwards. Addition is not commutative;
// Add(a, b) and Add(b, a) generally reduce to different numbers.
func Add(a, b Number) (Number, Stats) {
	sum := append(a, b...)
	for i := range sum {
		sum[i].Depth++
	}
	st := Reduce(&sum)
	return sum, st
}

// Sum left-folds Add over nums: ((n0+n1)+n2)+...
// The elements of nums are consumed. A single element is returned as is.
func Sum(nums []Number) (Number, Stats, error) {
	if len(nums) == 0 {
		return nil, Stats{}, ErrEmpty
	}

	acc := nums[0]
	var total Stats
	for _, n := range nums[1:] {
		var st Stats
		acc, st = Add(acc, n)
		total.Merge(st)
	}
	return acc, total, nil
}
