package screen

import (
	"github.com/dshills/promptline/internal/renderer/core"
)

// Box drawing glyphs.
const (
	boxHorizontal  = "─"
	boxVertical    = "│"
	boxTopLeft     = "┌"
	boxTopRight    = "┐"
	boxBottomLeft  = "└"
	boxBottomRight = "┘"
	boxTeeDown     = "┬"
	boxTeeUp       = "┴"
	boxTeeRight    = "├"
	boxTeeLeft     = "┤"
	ellipsis       = "…"
)

// BoxOptions controls BuildBox.
type BoxOptions struct {
	// MaxWidth clamps the total box width including borders. Zero means
	// unlimited.
	MaxWidth int

	// MinWidth is the smallest total box width.
	MinWidth int

	// Padding is the number of blank columns inside each border.
	Padding int

	// Selected is the index of the highlighted item, or -1.
	Selected int

	// SelectedFormat is merged into every cell of the selected row.
	SelectedFormat core.Format

	// BorderFormat formats the border glyphs.
	BorderFormat core.Format
}

// DefaultBoxOptions returns options for an unlimited box with one column
// of padding and no selection.
func DefaultBoxOptions() BoxOptions {
	return BoxOptions{Padding: 1, Selected: -1}
}

// BuildBox draws items inside a border. The box is as wide as the widest
// item plus borders and padding, clamped to MaxWidth; items that still do
// not fit are truncated with an ellipsis. BuildBox returns nil for no
// items.
func BuildBox(items []core.FormattedString, opts BoxOptions) []core.Row {
	if len(items) == 0 {
		return nil
	}
	padding := max(opts.Padding, 0)
	chrome := 2 + 2*padding

	content := 0
	for _, it := range items {
		content = max(content, it.Width())
	}
	width := max(content+chrome, opts.MinWidth, chrome+1)
	if opts.MaxWidth > 0 {
		width = max(min(width, opts.MaxWidth), chrome+1)
	}
	inner := width - chrome

	border := func(s string) core.Cell {
		return core.NewCell(s, opts.BorderFormat)
	}
	edge := func(left, right string) core.Row {
		row := make(core.Row, 0, width)
		row = append(row, border(left))
		for range width - 2 {
			row = append(row, border(boxHorizontal))
		}
		return append(row, border(right))
	}

	rows := make([]core.Row, 0, len(items)+2)
	rows = append(rows, edge(boxTopLeft, boxTopRight))
	for i, it := range items {
		var f core.Format
		selected := i == opts.Selected
		if selected {
			f = opts.SelectedFormat
		}
		cells := core.TruncateRow(core.CellsFromFormatted(it), inner, ellipsis)
		line := make(core.Row, 0, inner+2*padding)
		line = core.PadRow(line, padding, f)
		line = append(line, cells...)
		line = core.PadRow(line, padding+inner+padding, f)
		if selected {
			for j := range line {
				line[j].Format = line[j].Format.Merge(opts.SelectedFormat)
			}
		}

		row := make(core.Row, 0, width)
		row = append(row, border(boxVertical))
		row = append(row, line...)
		rows = append(rows, append(row, border(boxVertical)))
	}
	return append(rows, edge(boxBottomLeft, boxBottomRight))
}

// BoxWidth returns the width of a box built by BuildBox.
func BoxWidth(rows []core.Row) int {
	if len(rows) == 0 {
		return 0
	}
	return rows[0].Width()
}

// Connect returns a copy of right with its first column rewritten so the
// box joins left along a shared border column. right is drawn starting at
// left's last column.
func Connect(left, right []core.Row) []core.Row {
	if len(left) == 0 || len(right) == 0 {
		return right
	}
	out := make([]core.Row, len(right))
	for i, r := range right {
		out[i] = append(core.Row(nil), r...)
	}
	set := func(row int, glyph string) {
		if row < len(out) && len(out[row]) > 0 {
			out[row][0].Text = glyph
		}
	}

	set(0, boxTeeDown)
	lastLeft, lastRight := len(left)-1, len(right)-1
	switch {
	case lastRight == lastLeft:
		set(lastRight, boxTeeUp)
	case lastRight < lastLeft:
		set(lastRight, boxTeeRight)
	default:
		set(lastLeft, boxTeeLeft)
	}
	return out
}
