// Package match provides edit distance calculation and candidate ranking
// used to pair a removed method with its likely replacement.
//
// Key functions:
//   - Distance: edit distance between two sequences
//   - Levenshtein: edit distance between strings
//   - RankSignatures: ranks replacement candidates for a method
//
// Ranking is a heuristic. It decides which of several same-name, same-arity
// candidates is reported as the changed signature and nothing else.
package match
