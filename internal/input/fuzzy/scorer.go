package fuzzy

import "unicode"

// Weights tunes the scorer.
type Weights struct {
	// Base is the starting score for any match.
	Base int

	// Consecutive is added for each matched rune directly following
	// the previous one.
	Consecutive int

	// WordBoundary is added for each matched rune at a word boundary.
	WordBoundary int

	// Leading is added when the first match is at position 0.
	Leading int

	// Gap is subtracted for each unmatched rune between the first and
	// last match.
	Gap int

	// Skip is subtracted for each rune before the first match.
	Skip int

	// ShortText rewards candidates shorter than this many runes.
	ShortText int
}

// DefaultWeights returns the weights used by Filter.
func DefaultWeights() Weights {
	return Weights{
		Base:         100,
		Consecutive:  20,
		WordBoundary: 15,
		Leading:      25,
		Gap:          2,
		Skip:         1,
		ShortText:    20,
	}
}

// Score rates a match. original keeps the candidate's case for boundary
// detection; positions are the matched rune indices in ascending order.
// Any match scores at least 1.
func (w Weights) Score(original []rune, positions []int) int {
	if len(positions) == 0 {
		return 0
	}

	score := w.Base
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			score += w.Consecutive
		}
	}
	for _, idx := range positions {
		if isWordBoundary(original, idx) {
			score += w.WordBoundary
		}
	}

	first, last := positions[0], positions[len(positions)-1]
	if first == 0 {
		score += w.Leading
	}
	if gap := last - first - len(positions) + 1; gap > 0 {
		score -= gap * w.Gap
	}
	score -= first * w.Skip
	if n := len(original); n < w.ShortText {
		score += w.ShortText - n
	}
	return max(score, 1)
}

func isWordBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
