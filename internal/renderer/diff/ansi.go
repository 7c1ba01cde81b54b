package diff

import (
	"strconv"
	"strings"
)

// Cursor movement and erase sequences.
const (
	EraseBelow  = "\x1b[0J"
	EraseScreen = "\x1b[2J\x1b[3J\x1b[H"
)

// Up moves the cursor up n rows.
func Up(n int) string { return move(n, 'A') }

// Down moves the cursor down n rows. It does not scroll.
func Down(n int) string { return move(n, 'B') }

// Right moves the cursor right n columns.
func Right(n int) string { return move(n, 'C') }

// Left moves the cursor left n columns.
func Left(n int) string { return move(n, 'D') }

func move(n int, dir byte) string {
	if n <= 0 {
		return ""
	}
	return "\x1b[" + strconv.Itoa(n) + string(dir)
}

// ScrollReserve makes sure rows lines exist below the cursor by printing
// newlines, which scroll the terminal at the bottom edge, then returns to
// the starting row and column.
func ScrollReserve(rows, column int, opts Options) string {
	if rows <= 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", rows))
	b.WriteString(Up(rows))
	if !opts.WindowsNewlines {
		b.WriteString(Right(column))
	}
	return b.String()
}
