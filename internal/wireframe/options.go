package wireframe

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/Faultbox/floating-geometry/internal/mesh"
	"github.com/Faultbox/floating-geometry/internal/motion"
	"github.com/Faultbox/floating-geometry/internal/projection"
	"github.com/Faultbox/floating-geometry/internal/surface"
)

// Vertex sprite sizing, in logical pixels.
const (
	vertexBaseSize  = 2.0
	vertexScaleSize = 2.0
	glowRadius      = 3.0 // times the vertex size
	glowAlpha       = 0.5 // times the vertex opacity
)

// Range is a closed opacity interval.
type Range struct {
	Min, Max float64
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	return stdmath.Max(r.Min, stdmath.Min(r.Max, v))
}

// Palette holds the colors used to paint the mesh. Alphas are replaced
// by depth-derived opacities when drawing.
type Palette struct {
	Start surface.Color // edge gradient at the first vertex
	Mid   surface.Color // edge gradient midpoint
	End   surface.Color // edge gradient at the second vertex
	Glow  surface.Color // vertex halo
	Core  surface.Color // vertex point
}

// DefaultPalette is indigo, violet and cyan edges with white points.
func DefaultPalette() Palette {
	return Palette{
		Start: surface.ColorIndigo,
		Mid:   surface.ColorViolet,
		End:   surface.ColorCyan,
		Glow:  surface.ColorIndigo,
		Core:  surface.ColorWhite,
	}
}

// Options configures a Geometry.
type Options struct {
	Radius      float64
	FocalLength float64
	Motion      motion.Params

	// DepthRange maps z in [-DepthRange, DepthRange] onto opacity [1, 0]
	// before clamping.
	DepthRange    float64
	LineWidth     float64
	EdgeOpacity   Range
	VertexOpacity Range
	Palette       Palette
}

// DefaultOptions returns the stock look.
func DefaultOptions() Options {
	return Options{
		Radius:        mesh.DefaultRadius,
		FocalLength:   projection.DefaultFocalLength,
		Motion:        motion.DefaultParams(),
		DepthRange:    100,
		LineWidth:     1.5,
		EdgeOpacity:   Range{Min: 0.1, Max: 0.8},
		VertexOpacity: Range{Min: 0.3, Max: 1.0},
		Palette:       DefaultPalette(),
	}
}

// Validate checks the options. The mesh must fit inside the focal length
// so focal+z stays positive for every rotation. NaN and infinite values
// are rejected.
func (o Options) Validate() error {
	var errs []error
	if !positive(o.Radius) {
		errs = append(errs, fmt.Errorf("radius must be positive and finite, got %v", o.Radius))
	}
	if !positive(o.FocalLength) {
		errs = append(errs, fmt.Errorf("focal length must be positive and finite, got %v", o.FocalLength))
	}
	if r := mesh.CircumradiusFor(o.Radius); !(r < o.FocalLength) {
		errs = append(errs, fmt.Errorf("mesh circumradius %.2f must be below focal length %.2f", r, o.FocalLength))
	}
	if !(o.Motion.Damping > 0 && o.Motion.Damping <= 1) {
		errs = append(errs, fmt.Errorf("damping must be in (0, 1], got %v", o.Motion.Damping))
	}
	if !surface.Finite(o.Motion.Sensitivity, o.Motion.AutoX, o.Motion.AutoY) {
		errs = append(errs, fmt.Errorf("sensitivity and auto rotation must be finite, got %v, %v, %v",
			o.Motion.Sensitivity, o.Motion.AutoX, o.Motion.AutoY))
	}
	if !positive(o.DepthRange) {
		errs = append(errs, fmt.Errorf("depth range must be positive and finite, got %v", o.DepthRange))
	}
	if !positive(o.LineWidth) {
		errs = append(errs, fmt.Errorf("line width must be positive and finite, got %v", o.LineWidth))
	}
	ranges := []struct {
		name string
		r    Range
	}{
		{"edge", o.EdgeOpacity},
		{"vertex", o.VertexOpacity},
	}
	for _, nr := range ranges {
		if r := nr.r; !(r.Min >= 0 && r.Max <= 1 && r.Min <= r.Max) {
			errs = append(errs, fmt.Errorf("%s opacity range [%v, %v] must satisfy 0 <= min <= max <= 1", nr.name, r.Min, r.Max))
		}
	}
	return errors.Join(errs...)
}

func positive(v float64) bool {
	return v > 0 && !stdmath.IsInf(v, 1)
}

// Opacity maps a depth to an opacity: nearer (more negative z) is more
// opaque, clamped to r.
func Opacity(z, depthRange float64, r Range) float64 {
	return r.Clamp((depthRange - z) / (2 * depthRange))
}
