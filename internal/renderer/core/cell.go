package core

import (
	"strings"

	"github.com/dshills/promptline/internal/engine/text"
)

// Cell is one terminal column. A double-width glyph occupies two
// adjacent cells, the second marked as a continuation. The zero Cell is
// an empty position.
type Cell struct {
	// Text is a single grapheme cluster, "\n" for a line break, or ""
	// for an empty position.
	Text string

	// Format is the formatting of the cell.
	Format Format

	// ElementWidth is the width of the glyph the cell starts, 1 or 2.
	ElementWidth int

	// IsContinuation marks the second half of a double-width glyph.
	IsContinuation bool

	// TruncateToScreenHeight marks overlay cells that must never push
	// the terminal to scroll.
	TruncateToScreenHeight bool
}

// NewCell creates a cell for a grapheme cluster.
func NewCell(cluster string, f Format) Cell {
	if text.IsNewline(cluster) {
		return Cell{Text: "\n", Format: f, ElementWidth: 1}
	}
	return Cell{
		Text:         text.Printable(cluster),
		Format:       f,
		ElementWidth: text.GraphemeWidth(cluster),
	}
}

// ContinuationCell returns the second half of a wide glyph cell.
func ContinuationCell(of Cell) Cell {
	return Cell{
		Format:                 of.Format,
		IsContinuation:         true,
		TruncateToScreenHeight: of.TruncateToScreenHeight,
	}
}

// IsEmpty returns true if the cell holds nothing.
func (c Cell) IsEmpty() bool {
	return c.Text == "" && !c.IsContinuation
}

// IsNewline returns true if the cell is a line break.
func (c Cell) IsNewline() bool {
	return c.Text == "\n"
}

// WithFormat returns a copy of the cell with the given format.
func (c Cell) WithFormat(f Format) Cell {
	c.Format = f
	return c
}

// Row is one rendered line of a screen area.
type Row []Cell

// Width returns the number of columns the row occupies.
func (r Row) Width() int {
	return len(r)
}

// String converts the row back to text.
func (r Row) String() string {
	var b strings.Builder
	for _, c := range r {
		if !c.IsContinuation {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}

// Truncated marks every cell of the row as TruncateToScreenHeight.
func (r Row) Truncated() Row {
	out := make(Row, len(r))
	for i, c := range r {
		c.TruncateToScreenHeight = true
		out[i] = c
	}
	return out
}

// CellsFromString creates cells for s with a single format.
func CellsFromString(s string, f Format) Row {
	row := make(Row, 0, len(s))
	for _, cluster := range text.Graphemes(s) {
		row = appendCell(row, NewCell(cluster, f))
	}
	return row
}

// CellsFromFormatted creates cells for a formatted string. A cluster
// takes the format in effect at its first rune.
func CellsFromFormatted(s FormattedString) Row {
	if len(s.Spans) == 0 {
		return CellsFromString(s.Text, Format{})
	}
	row := make(Row, 0, len(s.Text))
	for off, cluster := range text.Graphemes(s.Text) {
		row = appendCell(row, NewCell(cluster, s.FormatAt(off)))
	}
	return row
}

func appendCell(row Row, c Cell) Row {
	row = append(row, c)
	if c.ElementWidth == 2 {
		row = append(row, ContinuationCell(c))
	}
	return row
}

// TruncateRow cuts row to at most width columns. When cells are dropped
// the last visible column is replaced by tail, which must be a single
// narrow glyph such as "…". A wide glyph is never split.
func TruncateRow(row Row, width int, tail string) Row {
	if len(row) <= width {
		return row
	}
	if width <= 0 {
		return Row{}
	}
	keep := width
	if tail != "" {
		keep = width - 1
	}
	for keep > 0 && row[keep].IsContinuation {
		keep--
	}
	out := make(Row, 0, width)
	out = append(out, row[:keep]...)
	if tail != "" {
		var f Format
		if keep > 0 {
			f = row[keep-1].Format
		}
		out = append(out, NewCell(tail, f))
	}
	return out
}

// PadRow extends row with blank cells of format f up to width columns.
func PadRow(row Row, width int, f Format) Row {
	for len(row) < width {
		row = append(row, Cell{Text: " ", Format: f, ElementWidth: 1})
	}
	return row
}
