// Pairnum adds and measures nested-pair numbers.
//
// Each number is either a regular integer or a pair [left,right] of
// numbers. Adding two numbers pairs them and reduces the result by
// repeated explodes and splits; the magnitude folds a number to a single
// integer.
//
// Usage:
//
//	# Sum a homework list and find the best pair
//	pairnum homework.txt
//
//	# Read the homework from stdin
//	cat homework.txt | pairnum
//
//	# Reduce, add or measure individual numbers
//	pairnum reduce '[[[[[9,8],1],2],3],4]'
//	pairnum add '[1,2]' '[[3,4],5]'
//	pairnum magnitude '[[9,1],[1,9]]'
//
//	# Re-run on every save, serving metrics and recording results
//	pairnum watch homework.txt --config pairnum.yaml
//
//	# Show recorded runs
//	pairnum history --limit 10
package main

import "os"

func main() {
	os.Exit(Execute())
}
