package wrap

import (
	"unicode/utf8"

	"github.com/dshills/promptline/internal/engine/text"
)

// SelectionDirection tells which end of a selection holds the caret.
type SelectionDirection int

const (
	LeftToRight SelectionDirection = iota
	RightToLeft
)

// SelectionSpan is a selection in row/column coordinates.
type SelectionSpan struct {
	Start     text.Coordinate
	End       text.Coordinate
	Direction SelectionDirection
}

// Contains reports whether the cell at c lies inside the selection.
func (s SelectionSpan) Contains(c text.Coordinate) bool {
	return !c.Before(s.Start) && c.Before(s.End)
}

// Selection converts an anchor/active offset pair to coordinates.
func (w WordWrappedText) Selection(anchor, active int) SelectionSpan {
	dir := LeftToRight
	if active < anchor {
		dir = RightToLeft
		anchor, active = active, anchor
	}
	return SelectionSpan{
		Start:     w.CoordinateOf(anchor),
		End:       w.CoordinateOf(active),
		Direction: dir,
	}
}

// CoordinateOf returns the row and cell column of offset. An offset at
// the boundary between two wrapped rows belongs to the later row.
func (w WordWrappedText) CoordinateOf(offset int) text.Coordinate {
	row := 0
	for i, l := range w.Lines {
		if l.StartOffset > offset {
			break
		}
		row = i
	}
	if len(w.Lines) == 0 {
		return text.Coordinate{}
	}
	line := w.Lines[row]
	col := 0
	for i, cluster := range text.Graphemes(line.Text) {
		if line.StartOffset+i >= offset || text.IsNewline(cluster) {
			break
		}
		col++
	}
	return text.NewCoordinate(row, col)
}

// OffsetOf returns the offset closest to the cell at c. The column is
// clamped to the row: past a newline or, on a soft-wrapped row, past the
// last cell.
func (w WordWrappedText) OffsetOf(c text.Coordinate) int {
	if len(w.Lines) == 0 {
		return 0
	}
	row := min(max(c.Row, 0), len(w.Lines)-1)
	line := w.Lines[row]
	softWrapped := row < len(w.Lines)-1 && !line.EndsWithNewline()

	off := line.StartOffset
	col := 0
	for _, cluster := range text.Graphemes(line.Text) {
		if col >= c.Column || text.IsNewline(cluster) {
			break
		}
		next := off + utf8.RuneCountInString(cluster)
		if softWrapped && next >= line.StartOffset+line.Length() {
			break
		}
		off = next
		col++
	}
	return off
}

// RowCount returns the number of rows needed to show the text and the
// caret.
func (w WordWrappedText) RowCount() int {
	return max(len(w.Lines), w.Cursor.Row+1)
}
