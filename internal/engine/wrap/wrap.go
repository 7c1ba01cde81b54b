// Package wrap computes the visual rows of prompt text.
//
// Characters wraps the live document at grapheme cluster granularity and
// places the caret. Words wraps read-only text such as documentation at
// word granularity. Both honor double-width glyphs: a glyph that would
// straddle the right edge moves to the next row whole.
package wrap

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/promptline/internal/engine/text"
)

// WrappedLine is one visual row of source text.
type WrappedLine struct {
	// StartOffset is the rune offset of the row's first character.
	StartOffset int

	// Text is the row's source text. Rows produced by Characters keep
	// their terminating newline.
	Text string
}

// Length returns the number of runes in the row.
func (l WrappedLine) Length() int {
	return utf8.RuneCountInString(l.Text)
}

// EndsWithNewline reports whether the row is terminated by a newline.
func (l WrappedLine) EndsWithNewline() bool {
	return strings.HasSuffix(l.Text, "\n")
}

// WordWrappedText is the result of wrapping the document.
type WordWrappedText struct {
	Lines []WrappedLine

	// Cursor is the caret's row and its column in cells, not counting
	// the continuation half of wide glyphs.
	Cursor text.Coordinate
}

// Characters wraps s into rows no wider than width columns. A newline
// ends its row and stays part of that row's text, so concatenating the
// rows reproduces s. The result always has at least one row.
//
// A glyph is never split, so at width 1 each 2-wide glyph gets a row of
// its own that is two columns wide. This is the only case where a row
// exceeds width.
//
// A caret at the end of a row that is exactly width columns wide is
// placed at column 0 of the following row, which may be one past the
// last row.
func Characters(s string, caret, width int) WordWrappedText {
	width = max(width, 1)

	var (
		lines     []WrappedLine
		row       strings.Builder
		rowStart  int
		rowWidth  int
		rowCells  int
		cursor    text.Coordinate
		caretDone bool
		end       int
	)

	flush := func(next int) {
		lines = append(lines, WrappedLine{StartOffset: rowStart, Text: row.String()})
		row.Reset()
		rowStart = next
		rowWidth = 0
		rowCells = 0
	}

	for off, cluster := range text.Graphemes(s) {
		n := utf8.RuneCountInString(cluster)
		end = off + n

		if text.IsNewline(cluster) {
			if !caretDone && off >= caret {
				cursor = text.NewCoordinate(len(lines), rowCells)
				caretDone = true
			}
			row.WriteString(cluster)
			flush(end)
			continue
		}

		w := text.GraphemeWidth(cluster)
		if rowWidth > 0 && rowWidth+w > width {
			flush(off)
		}
		if !caretDone && off >= caret {
			cursor = text.NewCoordinate(len(lines), rowCells)
			caretDone = true
		}
		row.WriteString(cluster)
		rowWidth += w
		rowCells++
	}
	flush(end)

	if !caretDone {
		last := len(lines) - 1
		cursor = text.NewCoordinate(last, cellCount(lines[last].Text))
		if text.StringWidth(lines[last].Text) >= width {
			cursor = text.NewCoordinate(last+1, 0)
		}
	}
	return WordWrappedText{Lines: lines, Cursor: cursor}
}

// cellCount returns the number of grapheme clusters in s, ignoring
// newlines.
func cellCount(s string) int {
	n := 0
	for _, cluster := range text.Graphemes(s) {
		if !text.IsNewline(cluster) {
			n++
		}
	}
	return n
}
