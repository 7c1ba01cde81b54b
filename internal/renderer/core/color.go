package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned by ParseColor.
var ErrInvalidColor = errors.New("invalid color")

// ColorMode tells how a Color is interpreted.
type ColorMode uint8

const (
	// ColorModeDefault is the terminal's default color.
	ColorModeDefault ColorMode = iota
	// ColorModeIndexed is a palette color; R holds the index.
	ColorModeIndexed
	// ColorModeRGB is a true color.
	ColorModeRGB
)

// Color is a terminal color. The zero value is the default color.
type Color struct {
	R, G, B uint8
	Mode    ColorMode
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{}

// The 16 ANSI palette colors.
var (
	ColorBlack         = ColorFromIndex(0)
	ColorRed           = ColorFromIndex(1)
	ColorGreen         = ColorFromIndex(2)
	ColorYellow        = ColorFromIndex(3)
	ColorBlue          = ColorFromIndex(4)
	ColorMagenta       = ColorFromIndex(5)
	ColorCyan          = ColorFromIndex(6)
	ColorWhite         = ColorFromIndex(7)
	ColorBrightBlack   = ColorFromIndex(8)
	ColorBrightRed     = ColorFromIndex(9)
	ColorBrightGreen   = ColorFromIndex(10)
	ColorBrightYellow  = ColorFromIndex(11)
	ColorBrightBlue    = ColorFromIndex(12)
	ColorBrightMagenta = ColorFromIndex(13)
	ColorBrightCyan    = ColorFromIndex(14)
	ColorBrightWhite   = ColorFromIndex(15)
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Mode: ColorModeRGB}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Mode: ColorModeIndexed}
}

// ColorFromHex parses "#rgb" or "#rrggbb". The leading '#' is optional.
func ColorFromHex(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// ParseColor parses a color name ("red", "darkorange", "default"), a hex
// value ("#ff8700") or a palette index ("208").
func ParseColor(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch {
	case name == "" || name == "default":
		return ColorDefault, nil
	case strings.HasPrefix(name, "#"):
		return ColorFromHex(name)
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n > 255 {
			return Color{}, fmt.Errorf("%w: palette index %d", ErrInvalidColor, n)
		}
		return ColorFromIndex(uint8(n)), nil
	}

	c := tcell.GetColor(name)
	switch {
	case c == tcell.ColorDefault:
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	case c >= tcell.ColorValid && c < tcell.ColorValid+16:
		return ColorFromIndex(uint8(c - tcell.ColorValid)), nil
	}
	r, g, b := c.RGB()
	return ColorFromRGB(uint8(r), uint8(g), uint8(b)), nil
}

// IsDefault returns true if this is the default color.
func (c Color) IsDefault() bool {
	return c.Mode == ColorModeDefault
}

// Blend mixes c toward other by amount in [0, 1] in Lab space. Palette
// and default colors have no known RGB value, so they switch over at the
// halfway point instead.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Mode != ColorModeRGB || other.Mode != ColorModeRGB {
		if amount < 0.5 {
			return c
		}
		return other
	}
	mixed := c.colorful().BlendLab(other.colorful(), amount).Clamped()
	r, g, b := mixed.RGB255()
	return ColorFromRGB(r, g, b)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// String returns a string representation of the color.
func (c Color) String() string {
	switch c.Mode {
	case ColorModeIndexed:
		return fmt.Sprintf("idx(%d)", c.R)
	case ColorModeRGB:
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	default:
		return "default"
	}
}

// sgr returns the SGR parameters selecting c as the foreground, or as
// the background when bg is set.
func (c Color) sgr(bg bool) string {
	base := 30
	if bg {
		base = 40
	}
	switch c.Mode {
	case ColorModeIndexed:
		switch {
		case c.R < 8:
			return fmt.Sprint(base + int(c.R))
		case c.R < 16:
			return fmt.Sprint(base + 60 + int(c.R) - 8)
		default:
			return fmt.Sprintf("%d;5;%d", base+8, c.R)
		}
	case ColorModeRGB:
		return fmt.Sprintf("%d;2;%d;%d;%d", base+8, c.R, c.G, c.B)
	default:
		return fmt.Sprint(base + 9)
	}
}
