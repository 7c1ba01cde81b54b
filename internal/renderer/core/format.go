package core

import "strings"

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrDim                     // Faint/dim text
	AttrItalic                  // Italic text
	AttrUnderline               // Underlined text
	AttrBlink                   // Blinking text (rarely supported)
	AttrReverse                 // Reverse video (swap fg/bg)
	AttrStrikethrough           // Strikethrough text
	AttrHidden                  // Hidden/invisible text
)

var attrCodes = []struct {
	attr Attribute
	code string
}{
	{AttrBold, "1"},
	{AttrDim, "2"},
	{AttrItalic, "3"},
	{AttrUnderline, "4"},
	{AttrBlink, "5"},
	{AttrReverse, "7"},
	{AttrHidden, "8"},
	{AttrStrikethrough, "9"},
}

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// Format is the visual formatting of text. The zero value is unformatted.
type Format struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultFormat returns the unformatted format.
func DefaultFormat() Format {
	return Format{}
}

// NewFormat creates a format with the given foreground color.
func NewFormat(fg Color) Format {
	return Format{Foreground: fg}
}

// WithForeground returns a new format with the given foreground color.
func (f Format) WithForeground(fg Color) Format {
	f.Foreground = fg
	return f
}

// WithBackground returns a new format with the given background color.
func (f Format) WithBackground(bg Color) Format {
	f.Background = bg
	return f
}

// WithAttributes returns a new format with the given attributes added.
func (f Format) WithAttributes(attrs Attribute) Format {
	f.Attributes |= attrs
	return f
}

// Bold returns a new format with bold added.
func (f Format) Bold() Format { return f.WithAttributes(AttrBold) }

// Italic returns a new format with italic added.
func (f Format) Italic() Format { return f.WithAttributes(AttrItalic) }

// Underline returns a new format with underline added.
func (f Format) Underline() Format { return f.WithAttributes(AttrUnderline) }

// Reverse returns a new format with reverse video added.
func (f Format) Reverse() Format { return f.WithAttributes(AttrReverse) }

// Merge layers other on top of f. Non-default colors of other win;
// attributes accumulate.
func (f Format) Merge(other Format) Format {
	if !other.Foreground.IsDefault() {
		f.Foreground = other.Foreground
	}
	if !other.Background.IsDefault() {
		f.Background = other.Background
	}
	f.Attributes |= other.Attributes
	return f
}

// IsDefault returns true if this is the unformatted format.
func (f Format) IsDefault() bool {
	return f == Format{}
}

// NeedsReset reports whether switching from f to next requires an SGR
// reset: next drops an attribute f has, or reverts a color of f to the
// default. Anything else can be layered on top of f.
func (f Format) NeedsReset(next Format) bool {
	if f.Attributes&^next.Attributes != 0 {
		return true
	}
	if !f.Foreground.IsDefault() && next.Foreground.IsDefault() {
		return true
	}
	return !f.Background.IsDefault() && next.Background.IsDefault()
}

// SGR returns the escape sequence that selects f on top of the default
// format, or "" for the default format.
func (f Format) SGR() string {
	if f.IsDefault() {
		return ""
	}
	var params []string
	for _, a := range attrCodes {
		if f.Attributes.Has(a.attr) {
			params = append(params, a.code)
		}
	}
	if !f.Foreground.IsDefault() {
		params = append(params, f.Foreground.sgr(false))
	}
	if !f.Background.IsDefault() {
		params = append(params, f.Background.sgr(true))
	}
	return "\x1b[" + strings.Join(params, ";") + "m"
}

// SGRReset resets all formatting.
const SGRReset = "\x1b[0m"
