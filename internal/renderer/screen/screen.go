// Package screen composites screen areas into an immutable grid of cells.
package screen

import (
	"github.com/dshills/promptline/internal/engine/text"
	"github.com/dshills/promptline/internal/renderer/core"
)

// Area is a positioned block of rows contributed by one UI element.
type Area struct {
	Start text.Coordinate
	Rows  []core.Row

	// TruncateToScreenHeight clips the area to the console height and
	// marks its cells so the diff engine never scrolls on their behalf.
	TruncateToScreenHeight bool
}

// NewArea creates an area at start.
func NewArea(start text.Coordinate, rows []core.Row, truncate bool) Area {
	return Area{Start: start, Rows: rows, TruncateToScreenHeight: truncate}
}

// bottom returns the row just past the area.
func (a Area) bottom(consoleHeight int) int {
	b := a.Start.Row + len(a.Rows)
	if a.TruncateToScreenHeight {
		b = min(b, consoleHeight)
	}
	return b
}

// Screen is what the prompt should look like. It is immutable after
// construction.
type Screen struct {
	Width  int
	Height int
	Cursor text.Coordinate
	Cells  []core.Cell
}

// New composites areas into a screen width columns wide. Later areas
// overwrite earlier ones cell by cell.
//
// The cursor column is given in cells from the left edge, with each wide
// glyph counting once; it is corrected to a visual column and wrapped to
// the next row when it reaches the right edge.
func New(width, consoleHeight int, cursor text.Coordinate, areas ...Area) *Screen {
	width = max(width, 1)
	height := max(cursor.Row+1, 1)
	for _, a := range areas {
		height = max(height, a.bottom(consoleHeight))
	}

	s := &Screen{
		Width:  width,
		Height: height,
		Cells:  make([]core.Cell, width*height),
	}
	for _, a := range areas {
		s.draw(a, consoleHeight)
	}
	s.repairWideGlyphs()
	s.Cursor = s.correctCursor(cursor)
	if s.Cursor.Row >= s.Height {
		s.grow(s.Cursor.Row + 1)
	}
	return s
}

// Empty returns a screen with no content, used as the previous screen of
// a first render.
func Empty(width int) *Screen {
	width = max(width, 1)
	return &Screen{Width: width, Height: 1, Cells: make([]core.Cell, width)}
}

// Cell returns the cell at (row, col), or the zero cell when out of
// range.
func (s *Screen) Cell(row, col int) core.Cell {
	if row < 0 || row >= s.Height || col < 0 || col >= s.Width {
		return core.Cell{}
	}
	return s.Cells[row*s.Width+col]
}

// CoordinateOf returns the coordinate of a linear cell index.
func (s *Screen) CoordinateOf(i int) text.Coordinate {
	return text.NewCoordinate(i/s.Width, i%s.Width)
}

// RowString returns the text of one row, with empty cells as spaces and
// trailing blanks removed.
func (s *Screen) RowString(row int) string {
	if row < 0 || row >= s.Height {
		return ""
	}
	var out []byte
	last := 0
	for col := range s.Width {
		c := s.Cells[row*s.Width+col]
		switch {
		case c.IsContinuation:
			continue
		case c.Text == "" || c.IsNewline():
			out = append(out, ' ')
		default:
			out = append(out, c.Text...)
			last = len(out)
		}
	}
	return string(out[:last])
}

func (s *Screen) draw(a Area, consoleHeight int) {
	bottom := min(a.bottom(consoleHeight), s.Height)
	for i, row := range a.Rows {
		r := a.Start.Row + i
		if r < 0 {
			continue
		}
		if r >= bottom {
			break
		}
		for j, c := range row {
			col := a.Start.Column + j
			if col < 0 || col >= s.Width {
				continue
			}
			if a.TruncateToScreenHeight {
				c.TruncateToScreenHeight = true
			}
			s.Cells[r*s.Width+col] = c
		}
	}
}

// repairWideGlyphs blanks halves of wide glyphs that an overlapping area
// cut apart.
func (s *Screen) repairWideGlyphs() {
	for r := range s.Height {
		row := s.Cells[r*s.Width : (r+1)*s.Width]
		for col := range row {
			c := row[col]
			switch {
			case c.IsContinuation && (col == 0 || row[col-1].ElementWidth != 2 || row[col-1].IsContinuation):
				row[col] = blank(c)
			case c.ElementWidth == 2 && !c.IsContinuation && (col+1 == len(row) || !row[col+1].IsContinuation):
				row[col] = blank(c)
			}
		}
	}
}

func blank(c core.Cell) core.Cell {
	return core.Cell{
		Text:                   " ",
		Format:                 c.Format,
		ElementWidth:           1,
		TruncateToScreenHeight: c.TruncateToScreenHeight,
	}
}

func (s *Screen) correctCursor(c text.Coordinate) text.Coordinate {
	row := min(max(c.Row, 0), s.Height-1)
	visual := 0
	for range max(c.Column, 0) {
		if visual < s.Width && s.Cells[row*s.Width+visual].ElementWidth == 2 {
			visual += 2
			continue
		}
		visual++
	}
	if visual >= s.Width {
		row += visual / s.Width
		visual %= s.Width
	}
	return text.NewCoordinate(row, visual)
}

func (s *Screen) grow(height int) {
	cells := make([]core.Cell, s.Width*height)
	copy(cells, s.Cells)
	s.Cells = cells
	s.Height = height
}
