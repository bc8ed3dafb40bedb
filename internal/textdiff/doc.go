// Package textdiff diffs text at two granularities on top of package lcs.
//
// Lines: SplitLines turns text into lines ("\n" and "\r\n" are both separators; "" is zero lines). DiffLines runs the LCS engine over two line slices
// with exact string equality and returns the edit script as-is.
//
// Pairs: Resolve walks a line-level script once, left to right, and turns each adjacent Removed+Added (or Added+Removed) into a modified Pair. Pair.Old
// is always the removed line and Pair.New the added one. The walk is greedy and never re-pairs a consumed operation, so in a run like
// [Removed a, Added b, Removed c, Added d] the pairs are (a,b) and (c,d).
//
// Words: DiffTokens tokenizes both lines of a pair with TokenizeWords (alternating whitespace and non-whitespace runs, with an empty token standing in for a missing leading or trailing word) and runs the same
// LCS engine over the tokens.
//
// No normalization (trimming, case folding) happens anywhere.
package textdiff
