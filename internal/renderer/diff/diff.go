// Package diff computes the terminal output that turns one screen into
// another.
//
// The output uses relative cursor movement only. Absolute positioning is
// relative to the viewport and breaks once the prompt has scrolled.
package diff

import (
	"strings"

	"github.com/dshills/promptline/internal/engine/text"
	"github.com/dshills/promptline/internal/renderer/core"
	"github.com/dshills/promptline/internal/renderer/screen"
)

// Options controls platform specific output.
type Options struct {
	// WindowsNewlines means a newline only moves the cursor down and
	// keeps its column.
	WindowsNewlines bool
}

// Calculate returns the output that changes a terminal showing previous
// into current. anchor is the terminal position of the screen's top left
// cell; only its column matters since all movement is relative. Both
// screens must have the same width.
//
// The terminal cursor is assumed to be at previous.Cursor and is left at
// current.Cursor.
func Calculate(current, previous *screen.Screen, anchor text.Coordinate, opts Options) string {
	w := &writer{
		anchor: anchor,
		width:  current.Width,
		cursor: anchor.Offset(previous.Cursor.Row, previous.Cursor.Column),
		opts:   opts,
	}

	n := max(len(current.Cells), len(previous.Cells))
	for i := range n {
		cell := cellAt(current, i)
		prev := cellAt(previous, i)
		if cell.IsContinuation || cell == prev {
			continue
		}

		w.moveTo(anchor.Offset(i/w.width, i%w.width))
		switch {
		case cell.IsEmpty():
			w.closeRun()
			w.put(" ", 1, cell.TruncateToScreenHeight)
		case cell.IsNewline():
			w.closeRun()
			w.newline()
		default:
			w.setFormat(cell.Format)
			w.put(cell.Text, cell.ElementWidth, cell.TruncateToScreenHeight)
		}
	}
	w.closeRun()
	w.moveTo(anchor.Offset(current.Cursor.Row, current.Cursor.Column))
	return w.b.String()
}

// Erase returns the output that clears a previously drawn screen and
// leaves the cursor at the prompt's top left corner, ready for a full
// redraw against screen.Empty.
func Erase(previous *screen.Screen) string {
	return Up(previous.Cursor.Row) + "\r" + EraseBelow
}

func cellAt(s *screen.Screen, i int) core.Cell {
	if i < len(s.Cells) {
		return s.Cells[i]
	}
	return core.Cell{}
}

type writer struct {
	b      strings.Builder
	anchor text.Coordinate
	width  int
	cursor text.Coordinate
	active core.Format
	opts   Options
}

func (w *writer) moveTo(target text.Coordinate) {
	dr := target.Row - w.cursor.Row
	dc := target.Column - w.cursor.Column
	switch {
	case dr < 0:
		w.b.WriteString(Up(-dr))
	case dr > 0:
		w.b.WriteString(Down(dr))
	}
	switch {
	case dc > 0:
		w.b.WriteString(Right(dc))
	case dc < 0:
		w.b.WriteString(Left(-dc))
	}
	w.cursor = target
}

func (w *writer) setFormat(f core.Format) {
	if f == w.active {
		return
	}
	if w.active.NeedsReset(f) {
		w.b.WriteString(core.SGRReset)
	}
	w.b.WriteString(f.SGR())
	w.active = f
}

func (w *writer) closeRun() {
	if !w.active.IsDefault() {
		w.b.WriteString(core.SGRReset)
		w.active = core.Format{}
	}
}

func (w *writer) lastColumn() int {
	return w.anchor.Column + w.width - 1
}

// put writes a glyph and advances the tracked cursor. Writing into the
// last column leaves the terminal in a pending wrap state; a newline
// resolves it unless the cell must not scroll the terminal.
func (w *writer) put(s string, width int, truncate bool) {
	w.b.WriteString(s)
	w.cursor.Column += max(width, 1)
	if w.cursor.Column > w.lastColumn() {
		w.cursor.Column = w.lastColumn()
		if truncate {
			return
		}
		w.b.WriteByte('\n')
		w.lineFeed()
	}
}

// newline blanks the newline cell's position and moves to the next row.
func (w *writer) newline() {
	w.b.WriteString(" \n")
	w.cursor.Column = min(w.cursor.Column+1, w.lastColumn())
	w.lineFeed()
}

func (w *writer) lineFeed() {
	w.cursor.Row++
	if !w.opts.WindowsNewlines {
		w.cursor.Column = w.anchor.Column
	}
}
