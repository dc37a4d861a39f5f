// Package homework runs the two aggregate computations over a list of
// nested pair numbers.
//
// Scenario A (Sum) adds every number in input order, ((n0+n1)+n2)+..., and
// reports the magnitude of the result.
//
// Scenario B (BestPair) evaluates magnitude(ni + nj) for every ordered pair
// of distinct indices and reports the largest. Rows of the search are
// spread over a bounded worker pool; each evaluation works on its own
// clones of the two operands, so the parsed input is never modified.
//
// # Basic Usage
//
//	d := homework.NewDriver(homework.WithWorkers(4))
//	res, err := d.Run(ctx, file)
//	fmt.Println("part1", res.Part1)
//	fmt.Println("part2", res.Part2)
package homework
