package screen

import (
	"strings"
	"testing"

	"github.com/dshills/promptline/internal/engine/text"
	"github.com/dshills/promptline/internal/renderer/core"
)

func rows(lines ...string) []core.Row {
	out := make([]core.Row, len(lines))
	for i, l := range lines {
		out[i] = core.CellsFromString(l, core.Format{})
	}
	return out
}

func TestNewHeightAndCells(t *testing.T) {
	s := New(10, 24, text.NewCoordinate(0, 0),
		NewArea(text.NewCoordinate(0, 0), rows("> "), false),
		NewArea(text.NewCoordinate(0, 2), rows("abc", "de"), false),
	)
	if s.Width != 10 || s.Height != 2 {
		t.Fatalf("size = %dx%d, want 10x2", s.Width, s.Height)
	}
	if len(s.Cells) != s.Width*s.Height {
		t.Fatalf("len(Cells) = %d", len(s.Cells))
	}
	if got := s.RowString(0); got != "> abc" {
		t.Errorf("row 0 = %q", got)
	}
	if got := s.RowString(1); got != "  de" {
		t.Errorf("row 1 = %q", got)
	}
}

func TestNewLaterAreasWin(t *testing.T) {
	s := New(10, 24, text.Coordinate{},
		NewArea(text.NewCoordinate(0, 0), rows("aaaaaa"), false),
		NewArea(text.NewCoordinate(0, 2), rows("bb"), true),
	)
	if got := s.RowString(0); got != "aabbaa" {
		t.Errorf("row 0 = %q, want %q", got, "aabbaa")
	}
	if !s.Cell(0, 2).TruncateToScreenHeight || s.Cell(0, 0).TruncateToScreenHeight {
		t.Error("TruncateToScreenHeight not applied per area")
	}
}

func TestNewTruncatesToConsoleHeight(t *testing.T) {
	s := New(10, 3, text.Coordinate{},
		NewArea(text.NewCoordinate(0, 0), rows("code"), false),
		NewArea(text.NewCoordinate(1, 0), rows("1", "2", "3", "4"), true),
	)
	if s.Height != 3 {
		t.Errorf("Height = %d, want 3", s.Height)
	}

	s = New(10, 3, text.Coordinate{},
		NewArea(text.NewCoordinate(0, 0), rows("1", "2", "3", "4", "5"), false),
	)
	if s.Height != 5 {
		t.Errorf("untruncated Height = %d, want 5", s.Height)
	}
}

func TestCursorCorrection(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		width  int
		cursor text.Coordinate
		want   text.Coordinate
	}{
		{"ascii", "abc", 10, text.NewCoordinate(0, 2), text.NewCoordinate(0, 2)},
		{"after wide glyphs", "每个x", 10, text.NewCoordinate(0, 2), text.NewCoordinate(0, 4)},
		{"between wide glyphs", "每个", 10, text.NewCoordinate(0, 1), text.NewCoordinate(0, 2)},
		{"past content", "每", 10, text.NewCoordinate(0, 3), text.NewCoordinate(0, 4)},
		{"wraps at edge", "每每", 4, text.NewCoordinate(0, 2), text.NewCoordinate(1, 0)},
		{"negative column", "abc", 10, text.NewCoordinate(0, -1), text.NewCoordinate(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.width, 24, tt.cursor, NewArea(text.Coordinate{}, rows(tt.line), false))
			if s.Cursor != tt.want {
				t.Errorf("Cursor = %v, want %v", s.Cursor, tt.want)
			}
			if s.Cursor.Row >= s.Height {
				t.Errorf("cursor row %d outside height %d", s.Cursor.Row, s.Height)
			}
		})
	}
}

func TestOverlayCuttingWideGlyph(t *testing.T) {
	s := New(10, 24, text.Coordinate{},
		NewArea(text.Coordinate{}, rows("每个人"), false),
		NewArea(text.NewCoordinate(0, 1), rows("x"), false),
	)
	if got := s.RowString(0); got != " x个人" {
		t.Errorf("row 0 = %q, want %q", got, " x个人")
	}
	for col := range s.Width {
		c := s.Cell(0, col)
		if c.IsContinuation && s.Cell(0, col-1).ElementWidth != 2 {
			t.Errorf("orphaned continuation at column %d", col)
		}
	}
}

func TestBuildBox(t *testing.T) {
	items := []core.FormattedString{core.Plain("print"), core.Plain("println")}
	opts := DefaultBoxOptions()
	box := BuildBox(items, opts)

	want := []string{
		"┌─────────┐",
		"│ print   │",
		"│ println │",
		"└─────────┘",
	}
	if len(box) != len(want) {
		t.Fatalf("got %d rows, want %d", len(box), len(want))
	}
	for i, r := range box {
		if r.String() != want[i] {
			t.Errorf("row %d = %q, want %q", i, r.String(), want[i])
		}
	}
	if BoxWidth(box) != 11 {
		t.Errorf("BoxWidth = %d, want 11", BoxWidth(box))
	}
}

func TestBuildBoxClampsAndTruncates(t *testing.T) {
	items := []core.FormattedString{core.Plain("a very long completion item")}
	opts := DefaultBoxOptions()
	opts.MaxWidth = 12
	box := BuildBox(items, opts)

	for i, r := range box {
		if r.Width() != 12 {
			t.Errorf("row %d width = %d, want 12", i, r.Width())
		}
	}
	if got := box[1].String(); got != "│ a very … │" {
		t.Errorf("content row = %q", got)
	}
}

func TestBuildBoxSelection(t *testing.T) {
	sel := core.Format{}.WithBackground(core.ColorBlue)
	opts := DefaultBoxOptions()
	opts.Selected = 1
	opts.SelectedFormat = sel
	box := BuildBox([]core.FormattedString{core.Plain("a"), core.Plain("b")}, opts)

	for j, c := range box[2] {
		inside := j > 0 && j < len(box[2])-1
		if inside && c.Format.Background != core.ColorBlue {
			t.Errorf("selected row cell %d background = %v", j, c.Format.Background)
		}
	}
	for _, c := range box[1] {
		if c.Format.Background == core.ColorBlue {
			t.Error("unselected row highlighted")
		}
	}
	if BuildBox(nil, opts) != nil {
		t.Error("BuildBox(nil) should be nil")
	}
}

func TestConnect(t *testing.T) {
	box := func(n int) []core.Row {
		items := make([]core.FormattedString, n)
		for i := range items {
			items[i] = core.Plain("x")
		}
		return BuildBox(items, DefaultBoxOptions())
	}
	firstColumn := func(rs []core.Row) string {
		var b strings.Builder
		for _, r := range rs {
			b.WriteString(r[0].Text)
		}
		return b.String()
	}

	tests := []struct {
		name        string
		left, right int
		want        string
	}{
		{"equal", 2, 2, "┬││┴"},
		{"documentation shorter", 3, 1, "┬│├"},
		{"documentation taller", 1, 3, "┬│┤│└"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			right := box(tt.right)
			got := Connect(box(tt.left), right)
			if firstColumn(got) != tt.want {
				t.Errorf("first column = %q, want %q", firstColumn(got), tt.want)
			}
			if firstColumn(right) == tt.want {
				t.Error("Connect modified its input")
			}
		})
	}
}
