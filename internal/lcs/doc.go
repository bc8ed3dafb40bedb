// Package lcs computes edit scripts between two sequences using the classic longest-common-subsequence dynamic program.
//
// An edit script is an ordered []Edit[T]. Each Edit is Same, Added, or Removed:
//   - Reading only Same and Removed values, in order, reproduces the first sequence (see Old).
//   - Reading only Same and Added values, in order, reproduces the second sequence (see New).
//   - The Same values form a longest common subsequence of the two inputs.
//
// Tie-break: when backtracking reaches a mismatch and both directions keep an LCS of the same length, the element of the first sequence is emitted as
// Removed. This is observable (ex: ["a","b"] vs ["b","a"] yields [Added b, Same a, Removed b]) and callers rely on it, so both the line-level and the
// token-level differs go through DiffFunc.
//
// Cost is O(m*n) time and space for sequences of length m and n. There are no heuristics or early exits. The engine holds no state between calls and
// is safe for concurrent use.
package lcs
