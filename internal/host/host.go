// Package host defines what a hosting shell provides to the wireframe:
// a drawing surface, its logical rectangle and pixel density, a frame
// requester, and pointer/resize notifications.
package host

import (
	"github.com/Faultbox/floating-geometry/internal/frame"
	"github.com/Faultbox/floating-geometry/internal/surface"
)

// Rect is a rectangle in logical client coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Host is the hosting shell.
type Host interface {
	Events

	// Surface returns the drawing surface, or an error when the platform
	// cannot provide a 2D drawing context.
	Surface() (surface.Surface, error)
	// Bounds returns the surface rectangle in logical client coordinates.
	Bounds() Rect
	// Density returns device pixels per logical pixel.
	Density() float64
	// Frames returns the per-refresh frame requester.
	Frames() frame.Requester
}

// BufferSize returns the backing buffer size for a logical rect at a
// density, rounding to whole pixels.
func BufferSize(r Rect, density float64) (int, int) {
	return int(r.W*density + 0.5), int(r.H*density + 0.5)
}
