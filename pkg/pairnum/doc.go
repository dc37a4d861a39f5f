// Package pairnum implements arithmetic on nested pair numbers.
//
// A nested pair number is a binary tree of integers written in bracket
// notation, for example [[1,2],3]. The package never builds that tree.
// A Number is the flattened, left-to-right list of its leaves, each tagged
// with the depth at which it occurs:
//
//	[[1,2],3]  ->  {1 2} {2 2} {3 1}
//
// Neighbour lookup during reduction becomes slice adjacency and replacing a
// node becomes a slice splice, so there are no parent links to keep in sync.
//
// # Operations
//
//   - Reduce applies explode and split to a fixed point, explode first,
//     re-scanning from the left after every rewrite.
//   - Add wraps two numbers in a new pair and reduces the result.
//   - Magnitude folds a number to 3*left + 2*right, bottoming out at leaves.
//
// Parsing lives in the parser subpackage and the error types in the errors
// subpackage.
//
// # Basic Usage
//
//	a, _ := parser.Parse("[[[[4,3],4],4],[7,[[8,4],9]]]")
//	b, _ := parser.Parse("[1,1]")
//	sum, _ := pairnum.Add(a, b)
//	fmt.Println(sum) // [[[[0,7],4],[[7,8],[6,0]]],[8,1]]
//	mag, _ := pairnum.Magnitude(sum)
package pairnum
