// Package fuzzy ranks completion candidates against the word being typed.
//
// A candidate matches when every query rune appears in it in order,
// ignoring case. Filter keeps prefix matches ahead of everything else in
// their original order, then appends the remaining subsequence matches
// by descending score.
//
// # Scoring
//
// The scorer favors:
//   - Consecutive runes
//   - Runes at word boundaries (after punctuation, camelCase humps)
//   - Matches starting at the first rune
//   - Short candidates
//
// Gaps between matched runes and runes skipped before the first match
// are penalized.
package fuzzy
