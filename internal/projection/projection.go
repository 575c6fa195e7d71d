// Package projection rotates model-space points and applies the
// perspective divide.
package projection

import (
	"github.com/Faultbox/floating-geometry/pkg/math"
)

// DefaultFocalLength is the distance from the eye to the projection plane.
const DefaultFocalLength = 200.0

// Point is a projected vertex, relative to the surface centre.
type Point struct {
	X, Y  float64 // screen offset
	Z     float64 // depth after rotation; positive is further away
	Scale float64 // perspective factor applied to X and Y
}

// Screen returns the point's absolute position for a given centre.
func (p Point) Screen(center math.Vec2) math.Vec2 {
	return math.Vec2{X: center.X + p.X, Y: center.Y + p.Y}
}

// Projector maps model-space vertices to the screen.
//
// The mesh circumradius must stay below FocalLength so focal+z never
// reaches zero; callers validate that when either value is configurable.
type Projector struct {
	FocalLength float64
}

// New returns a projector with the given focal length.
func New(focal float64) Projector {
	return Projector{FocalLength: focal}
}

// Rotate turns v about Y by rotY, then about X by rotX.
// The order is fixed; swapping it changes the tumbling axis.
func Rotate(v math.Vec3, rotX, rotY float64) math.Vec3 {
	return v.RotateY(rotY).RotateX(rotX)
}

// Project rotates v and applies the perspective divide.
func (p Projector) Project(v math.Vec3, rotX, rotY float64) Point {
	r := Rotate(v, rotX, rotY)
	scale := p.FocalLength / (p.FocalLength + r.Z)
	return Point{
		X:     r.X * scale,
		Y:     r.Y * scale,
		Z:     r.Z,
		Scale: scale,
	}
}

// ProjectAll projects every vertex into dst, growing it when needed, and
// returns the filled slice.
func (p Projector) ProjectAll(dst []Point, vertices []math.Vec3, rotX, rotY float64) []Point {
	if cap(dst) < len(vertices) {
		dst = make([]Point, len(vertices))
	}
	dst = dst[:len(vertices)]
	for i, v := range vertices {
		dst[i] = p.Project(v, rotX, rotY)
	}
	return dst
}
