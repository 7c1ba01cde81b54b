package text

import "fmt"

// Coordinate is a zero-based (row, column) position on screen.
type Coordinate struct {
	Row    int
	Column int
}

// NewCoordinate creates a coordinate.
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Column: col}
}

// MoveRight returns the coordinate one column to the right.
func (c Coordinate) MoveRight() Coordinate {
	c.Column++
	return c
}

// MoveDown returns the coordinate one row down.
func (c Coordinate) MoveDown() Coordinate {
	c.Row++
	return c
}

// Offset returns the coordinate moved by the given row and column deltas.
func (c Coordinate) Offset(rows, cols int) Coordinate {
	return Coordinate{Row: c.Row + rows, Column: c.Column + cols}
}

// Before returns true if c precedes other in row-major order.
func (c Coordinate) Before(other Coordinate) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Column < other.Column
}

// String returns a string representation of the coordinate.
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Column)
}
