package core

import (
	"testing"

	"github.com/dshills/promptline/internal/engine/text"
)

func TestColorZeroValueIsDefault(t *testing.T) {
	var c Color
	if !c.IsDefault() || c != ColorDefault {
		t.Error("zero Color should be the default color")
	}
	if ColorRed.IsDefault() {
		t.Error("palette color reported as default")
	}
}

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		want    Color
		wantErr bool
	}{
		{"#FF8040", ColorFromRGB(255, 128, 64), false},
		{"#ff8040", ColorFromRGB(255, 128, 64), false},
		{"FF8040", ColorFromRGB(255, 128, 64), false},
		{"#FFF", ColorFromRGB(255, 255, 255), false},
		{"#000", ColorFromRGB(0, 0, 0), false},
		{"invalid", Color{}, true},
		{"#GGG", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := ColorFromHex(tt.hex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ColorFromHex(%q) error = %v, wantErr %v", tt.hex, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ColorFromHex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"", ColorDefault, false},
		{"Default", ColorDefault, false},
		{"maroon", ColorRed, false},
		{"red", ColorBrightRed, false},
		{" navy ", ColorBlue, false},
		{"darkorange", ColorFromRGB(0xff, 0x8c, 0x00), false},
		{"#102030", ColorFromRGB(0x10, 0x20, 0x30), false},
		{"208", ColorFromIndex(208), false},
		{"256", Color{}, true},
		{"not-a-color", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorBlend(t *testing.T) {
	black := ColorFromRGB(0, 0, 0)
	white := ColorFromRGB(255, 255, 255)

	if got := black.Blend(white, 0); got != black {
		t.Errorf("Blend(0) = %v, want %v", got, black)
	}
	if got := black.Blend(white, 1); got != white {
		t.Errorf("Blend(1) = %v, want %v", got, white)
	}
	mid := black.Blend(white, 0.5)
	if mid.R == 0 || mid.R == 255 || mid.Mode != ColorModeRGB {
		t.Errorf("Blend(0.5) = %v, want a gray", mid)
	}
	if got := ColorRed.Blend(white, 0.4); got != ColorRed {
		t.Errorf("palette Blend(0.4) = %v, want %v", got, ColorRed)
	}
}

func TestFormatSGR(t *testing.T) {
	tests := []struct {
		name string
		f    Format
		want string
	}{
		{"default", Format{}, ""},
		{"bold", Format{}.Bold(), "\x1b[1m"},
		{"palette fg", NewFormat(ColorRed), "\x1b[31m"},
		{"bright bg", Format{}.WithBackground(ColorBrightBlue), "\x1b[104m"},
		{"256 fg", NewFormat(ColorFromIndex(200)), "\x1b[38;5;200m"},
		{"rgb bg", Format{}.WithBackground(ColorFromRGB(1, 2, 3)), "\x1b[48;2;1;2;3m"},
		{"combined", NewFormat(ColorGreen).Underline().Reverse(), "\x1b[4;7;32m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.SGR(); got != tt.want {
				t.Errorf("SGR() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatNeedsReset(t *testing.T) {
	red := NewFormat(ColorRed)
	tests := []struct {
		name     string
		from, to Format
		want     bool
	}{
		{"default to red", Format{}, red, false},
		{"red to blue", red, NewFormat(ColorBlue), false},
		{"red to default", red, Format{}, true},
		{"reverse dropped", Format{}.Reverse(), Format{}, true},
		{"bold added", red, red.Bold(), false},
		{"bold dropped", red.Bold(), red, true},
		{"background dropped", Format{}.WithBackground(ColorBlue), red, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.NeedsReset(tt.to); got != tt.want {
				t.Errorf("NeedsReset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatMerge(t *testing.T) {
	base := NewFormat(ColorRed).Bold()
	got := base.Merge(Format{}.WithBackground(ColorBlue).Italic())
	want := Format{Foreground: ColorRed, Background: ColorBlue, Attributes: AttrBold | AttrItalic}
	if got != want {
		t.Errorf("Merge() = %+v, want %+v", got, want)
	}
}

func TestCellsFromString(t *testing.T) {
	row := CellsFromString("a每\n\té", Format{})
	if len(row) != 6 {
		t.Fatalf("len = %d, want 6", len(row))
	}
	if row[1].ElementWidth != 2 || !row[2].IsContinuation {
		t.Errorf("wide glyph cells = %+v %+v", row[1], row[2])
	}
	if !row[3].IsNewline() {
		t.Errorf("row[3] = %+v, want newline", row[3])
	}
	if row[4].Text != " " {
		t.Errorf("tab rendered as %q", row[4].Text)
	}
	if row[5].Text != "é" || row[5].ElementWidth != 1 {
		t.Errorf("combining cluster = %+v", row[5])
	}
}

func TestCellsFromFormatted(t *testing.T) {
	red := NewFormat(ColorRed)
	s := FormattedString{
		Text:  "let x",
		Spans: []FormatSpan{NewFormatSpan(0, 3, red)},
	}
	row := CellsFromFormatted(s)
	for i, c := range row {
		want := Format{}
		if i < 3 {
			want = red
		}
		if c.Format != want {
			t.Errorf("cell %d format = %+v, want %+v", i, c.Format, want)
		}
	}
	if row.String() != "let x" {
		t.Errorf("String() = %q", row.String())
	}
}

func TestFormattedStringLinesAndAppend(t *testing.T) {
	bold := Format{}.Bold()
	s := Plain("ab").Append(Formatted("c\nde", bold))
	if s.Text != "abc\nde" {
		t.Fatalf("Text = %q", s.Text)
	}
	if s.FormatAt(1) != (Format{}) || s.FormatAt(2) != bold {
		t.Error("Append did not shift spans")
	}

	lines := s.Lines()
	if len(lines) != 2 || lines[0].Text != "abc" || lines[1].Text != "de" {
		t.Fatalf("Lines() = %+v", lines)
	}
	if lines[1].FormatAt(0) != bold || lines[0].FormatAt(0) != (Format{}) {
		t.Error("Lines() lost formatting")
	}
	if got := lines[1].Spans[0].Span; got != text.NewSpan(0, 2) {
		t.Errorf("second line span = %v", got)
	}
}

func TestTruncateRow(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		want  string
	}{
		{"fits", "abc", 5, "abc"},
		{"exact", "abcde", 5, "abcde"},
		{"cut", "abcdef", 5, "abcd…"},
		{"wide not split", "ab每每", 5, "ab每…"},
		{"wide at boundary", "abc每d", 5, "abc…"},
		{"zero", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateRow(CellsFromString(tt.s, Format{}), tt.width, "…")
			if got.String() != tt.want {
				t.Errorf("TruncateRow = %q, want %q", got.String(), tt.want)
			}
			if got.Width() > tt.width {
				t.Errorf("width %d exceeds %d", got.Width(), tt.width)
			}
		})
	}
}
