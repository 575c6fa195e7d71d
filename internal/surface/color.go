package surface

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with float components (0.0 to 1.0).
// Components are straight (not premultiplied) alpha.
type Color struct {
	R, G, B, A float64
}

// Palette colors of the wireframe.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}

	ColorIndigo = RGB(99, 102, 241)
	ColorViolet = RGB(139, 92, 246)
	ColorCyan   = RGB(6, 182, 212)
)

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
		A: 1.0,
	}
}

// Hex parses "#rrggbb" (or "#rgb") into an opaque color.
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// Hex formats the color as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float64) Color {
	return Color{c.R, c.G, c.B, a}
}

// Lerp blends from c to other by t in RGB space, alpha included.
func (c Color) Lerp(other Color, t float64) Color {
	rgb := colorful.Color{R: c.R, G: c.G, B: c.B}.BlendRgb(colorful.Color{R: other.R, G: other.G, B: other.B}, t)
	return Color{
		R: rgb.R,
		G: rgb.G,
		B: rgb.B,
		A: c.A + (other.A-c.A)*t,
	}
}

// RGBA8 returns the color as 8-bit straight-alpha components.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

func to8(f float64) uint8 {
	switch {
	case f <= 0 || f != f:
		return 0
	case f >= 1:
		return 255
	default:
		return uint8(f*255 + 0.5)
	}
}
