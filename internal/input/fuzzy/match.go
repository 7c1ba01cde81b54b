package fuzzy

import (
	"cmp"
	"slices"
	"unicode"
)

// Result describes how a candidate matched a query.
type Result struct {
	// Score is higher for better matches. Zero means no match.
	Score int

	// Positions holds the matched rune indices.
	Positions []int

	// Prefix is set when the candidate starts with the query.
	Prefix bool
}

// Match reports whether every rune of query occurs in text in order,
// ignoring case. An empty query matches everything with a zero score.
func Match(query, text string) (Result, bool) {
	return DefaultWeights().Match(query, text)
}

// Match is the package-level Match scored with w.
func (w Weights) Match(query, text string) (Result, bool) {
	q := []rune(query)
	if len(q) == 0 {
		return Result{Prefix: true}, true
	}
	original := []rune(text)

	positions := make([]int, 0, len(q))
	qi := 0
	for i := 0; i < len(original) && qi < len(q); i++ {
		if fold(original[i]) == fold(q[qi]) {
			positions = append(positions, i)
			qi++
		}
	}
	if qi != len(q) {
		return Result{}, false
	}
	return Result{
		Score:     w.Score(original, positions),
		Positions: positions,
		Prefix:    positions[len(positions)-1] == len(q)-1,
	}, true
}

// Filter returns the items whose key matches query. Prefix matches come
// first in their original order; the other matches follow by descending
// score, ties keeping their original order.
func Filter[T any](query string, items []T, keyOf func(T) string) []T {
	type scored struct {
		item  T
		score int
	}
	var prefix []T
	var rest []scored
	for _, it := range items {
		r, ok := Match(query, keyOf(it))
		switch {
		case !ok:
		case r.Prefix:
			prefix = append(prefix, it)
		default:
			rest = append(rest, scored{it, r.Score})
		}
	}
	slices.SortStableFunc(rest, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})
	out := make([]T, 0, len(prefix)+len(rest))
	out = append(out, prefix...)
	for _, s := range rest {
		out = append(out, s.item)
	}
	return out
}

func fold(r rune) rune {
	return unicode.ToLower(r)
}
