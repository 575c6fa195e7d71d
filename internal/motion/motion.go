// Package motion owns the pointer target and the smoothed rotation of the
// wireframe. Time and pointer samples are passed in explicitly so callers
// can drive it with synthetic values.
package motion

import (
	"github.com/Faultbox/floating-geometry/pkg/math"
)

// Default tuning.
const (
	DefaultSensitivity = 0.5
	DefaultDamping     = 0.05
	DefaultAutoX       = 0.0002 // rad/ms
	DefaultAutoY       = 0.0003 // rad/ms
)

// Rotation is a pair of angles in radians.
type Rotation struct {
	X, Y float64
}

// Params tunes the integrator.
type Params struct {
	// Sensitivity converts a normalized pointer offset to an angle.
	Sensitivity float64
	// Damping is the fraction of the remaining gap closed per frame.
	Damping float64
	// AutoX and AutoY are auto-rotation speeds in radians per millisecond.
	AutoX, AutoY float64
}

// DefaultParams returns the stock tuning.
func DefaultParams() Params {
	return Params{
		Sensitivity: DefaultSensitivity,
		Damping:     DefaultDamping,
		AutoX:       DefaultAutoX,
		AutoY:       DefaultAutoY,
	}
}

// Bounds is a surface rectangle in client coordinates.
type Bounds struct {
	Left, Top, Width, Height float64
}

// Normalize converts a client-space pointer position to an offset from the
// surface centre, in surface widths/heights. Positions outside the surface
// give values beyond ±0.5; a zero-sized surface gives NaN or ±Inf.
func Normalize(clientX, clientY float64, b Bounds) math.Vec2 {
	return math.Vec2{
		X: (clientX - b.Left - b.Width/2) / b.Width,
		Y: (clientY - b.Top - b.Height/2) / b.Height,
	}
}
