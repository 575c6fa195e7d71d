// Package surface defines the drawing surface the wireframe paints on.
//
// A surface owns a backing pixel buffer sized in device pixels and a uniform
// scale transform, so callers draw in logical pixels. Implementations live
// in surface/raster (software, image.RGBA) and engine/renderer (OpenGL).
package surface

import (
	stdmath "math"

	"github.com/Faultbox/floating-geometry/pkg/math"
)

// Stop is a gradient color stop. Offset runs from 0 (line start) to 1.
type Stop struct {
	Offset float64
	Color  Color
}

// Surface is a 2D drawing context.
//
// Primitives with non-finite coordinates or radii are skipped.
type Surface interface {
	// Resize reallocates the backing buffer to width x height device pixels
	// and sets the logical-to-device scale. Existing content is discarded.
	Resize(width, height int, scale float64)
	// Clear erases the whole backing buffer to transparent.
	Clear()
	// StrokeLine draws a straight line with a linear gradient along it.
	StrokeLine(from, to math.Vec2, width float64, stops []Stop)
	// FillGlow fills a disc with a radial gradient from inner at the centre
	// to outer at the rim.
	FillGlow(center math.Vec2, radius float64, inner, outer Color)
	// FillDisc fills a solid disc.
	FillDisc(center math.Vec2, radius float64, c Color)
}

// ColorAt evaluates a gradient at offset t. Stops must be sorted by offset.
func ColorAt(stops []Stop, t float64) Color {
	switch {
	case len(stops) == 0:
		return ColorTransparent
	case t <= stops[0].Offset:
		return stops[0].Color
	case t >= stops[len(stops)-1].Offset:
		return stops[len(stops)-1].Color
	}

	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t > b.Offset {
			continue
		}
		if t == b.Offset {
			return b.Color
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return a.Color.Lerp(b.Color, (t-a.Offset)/span)
	}
	return stops[len(stops)-1].Color
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(values ...float64) bool {
	for _, v := range values {
		if !math.Finite(v) {
			return false
		}
	}
	return true
}

// Segments returns how many polygon sides approximate a circle of radius
// r device pixels: about one per two pixels of circumference, within
// [12, 64].
func Segments(r float64) int {
	n := int(stdmath.Ceil(2 * stdmath.Pi * r / 2))
	return min(64, max(12, n))
}
