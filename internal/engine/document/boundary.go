package document

import (
	"errors"
	"unicode"

	"github.com/dshills/promptline/internal/engine/text"
)

// ErrInvalidDirection is the panic value of boundary and indent
// operations called with a zero direction.
var ErrInvalidDirection = errors.New("document: direction must be non-zero")

// Direction selects the search direction of boundary moves and indent
// operations. Any positive value means forward, any negative value
// backward. Zero is invalid.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

func mustDirection(dir Direction) {
	if dir == 0 {
		panic(ErrInvalidDirection)
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isTransition reports whether a word boundary lies between buf[i] and
// buf[i+1].
func (d *Document) isTransition(i int, dir Direction) bool {
	a, b := d.buf[i], d.buf[i+1]
	if dir > 0 && unicode.IsSpace(a) && !unicode.IsSpace(b) {
		return true
	}
	return isWordRune(a) != isWordRune(b)
}

// WordBoundary returns the offset of the next word boundary from the
// caret in the given direction.
func (d *Document) WordBoundary(dir Direction) int {
	mustDirection(dir)
	n := len(d.buf)
	if dir > 0 {
		for i := d.caret; i < n-1; i++ {
			if d.isTransition(i, dir) {
				return i + 1
			}
		}
		return n
	}
	for i := d.caret - 2; i >= 0; i-- {
		if d.isTransition(i, dir) {
			return i + 1
		}
	}
	return 0
}

// MoveToWordBoundary moves the caret to WordBoundary(dir).
func (d *Document) MoveToWordBoundary(dir Direction) {
	d.caret = d.WordBoundary(dir)
}

// LineBoundary returns the start or end of the caret's line. With
// smartHome, a backward move stops at the first non-whitespace character
// unless the caret is already there.
func (d *Document) LineBoundary(dir Direction, smartHome bool) int {
	mustDirection(dir)
	if dir > 0 {
		return d.LineEnd(d.caret)
	}
	start := d.LineStart(d.caret)
	if !smartHome {
		return start
	}
	first := start
	for first < len(d.buf) && d.buf[first] != '\n' && unicode.IsSpace(d.buf[first]) {
		first++
	}
	if d.caret == first {
		return start
	}
	return first
}

// MoveToLineBoundary moves the caret to LineBoundary(dir, smartHome).
func (d *Document) MoveToLineBoundary(dir Direction, smartHome bool) {
	d.caret = d.LineBoundary(dir, smartHome)
}

// WordSpanAtCaret returns the span of word characters ending at the
// caret. The span is empty when the caret does not follow a word
// character.
func (d *Document) WordSpanAtCaret() text.Span {
	start := d.caret
	for start > 0 && isWordRune(d.buf[start-1]) {
		start--
	}
	return text.SpanFromBounds(start, d.caret)
}

// IsWordRune reports whether r is a word character for boundary purposes.
func IsWordRune(r rune) bool {
	return isWordRune(r)
}
