package highlight

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/promptline/internal/renderer/core"
)

// ansi holds the xterm defaults for the 16 palette colors.
var ansi = [16]string{
	"#000000", "#cd0000", "#00cd00", "#cdcd00", "#0000ee", "#cd00cd", "#00cdcd", "#e5e5e5",
	"#7f7f7f", "#ff0000", "#00ff00", "#ffff00", "#5c5cff", "#ff00ff", "#00ffff", "#ffffff",
}

var ansiColors = func() [16]colorful.Color {
	var out [16]colorful.Color
	for i, hex := range ansi {
		out[i], _ = colorful.Hex(hex)
	}
	return out
}()

// nearestANSI returns the palette color closest to c by perceived
// distance.
func nearestANSI(c core.Color) core.Color {
	if c.Mode != core.ColorModeRGB {
		return c
	}
	target := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	best, bestDist := 0, target.DistanceCIEDE2000(ansiColors[0])
	for i := 1; i < len(ansiColors); i++ {
		if d := target.DistanceCIEDE2000(ansiColors[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return core.ColorFromIndex(uint8(best))
}
