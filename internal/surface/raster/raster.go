// Package raster is a software implementation of surface.Surface backed by
// an image.RGBA and anti-aliased with golang.org/x/image/vector.
package raster

import (
	"image"
	"image/color"
	stdmath "math"

	"golang.org/x/image/vector"

	"github.com/Faultbox/floating-geometry/internal/surface"
	"github.com/Faultbox/floating-geometry/pkg/math"
)

// Surface draws into an in-memory RGBA buffer.
type Surface struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	scale float64
	path  []math.Vec2 // current polygon in device pixels
}

// New creates a surface with a width x height pixel buffer.
func New(width, height int, scale float64) *Surface {
	s := &Surface{}
	s.Resize(width, height, scale)
	return s
}

// Resize reallocates the backing buffer; content is discarded.
func (s *Surface) Resize(width, height int, scale float64) {
	width, height = max(width, 0), max(height, 0)
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.z = vector.NewRasterizer(0, 0)
	s.scale = scale
}

// Image returns the backing buffer. It is reused across frames.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Size returns the backing buffer size in pixels.
func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Scale returns the logical-to-pixel scale.
func (s *Surface) Scale() float64 {
	return s.scale
}

// Clear erases the buffer to transparent black.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// StrokeLine draws a gradient line as a filled quad.
func (s *Surface) StrokeLine(from, to math.Vec2, width float64, stops []surface.Stop) {
	if !surface.Finite(from.X, from.Y, to.X, to.Y, width, s.scale) || width <= 0 || len(stops) == 0 {
		return
	}
	a, b := from.Scale(s.scale), to.Scale(s.scale)
	dir := b.Sub(a)
	if dir.Length() == 0 {
		return
	}
	n := dir.Normalize().Perp().Scale(width * s.scale / 2)

	s.path = append(s.path[:0], a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
	s.fill(&linearGradient{from: a, dir: dir.Scale(1 / dir.Dot(dir)), stops: stops})
}

// FillGlow fills a disc with a radial gradient.
func (s *Surface) FillGlow(center math.Vec2, radius float64, inner, outer surface.Color) {
	if !s.circle(center, radius) {
		return
	}
	s.fill(&radialGradient{
		center: center.Scale(s.scale),
		radius: radius * s.scale,
		inner:  inner,
		outer:  outer,
	})
}

// FillDisc fills a solid disc.
func (s *Surface) FillDisc(center math.Vec2, radius float64, c surface.Color) {
	if !s.circle(center, radius) {
		return
	}
	s.fill(image.NewUniform(nrgba(c)))
}

// circle sets the path to a polygon approximating the disc.
func (s *Surface) circle(center math.Vec2, radius float64) bool {
	if !surface.Finite(center.X, center.Y, radius, s.scale) || radius <= 0 {
		return false
	}

	c := center.Scale(s.scale)
	r := radius * s.scale
	segments := surface.Segments(r)
	s.path = s.path[:0]
	for i := 0; i < segments; i++ {
		sin, cos := stdmath.Sincos(2 * stdmath.Pi * float64(i) / float64(segments))
		s.path = append(s.path, math.Vec2{X: c.X + r*cos, Y: c.Y + r*sin})
	}
	return true
}

// fill rasterizes the current path over src. Only the path's bounding box,
// clipped to the buffer, is touched; src is sampled in buffer coordinates.
func (s *Surface) fill(src image.Image) {
	if len(s.path) == 0 {
		return
	}
	r := pathBounds(s.path).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}

	s.z.Reset(r.Dx(), r.Dy())
	off := math.Vec2{X: float64(r.Min.X), Y: float64(r.Min.Y)}
	for i, p := range s.path {
		p = p.Sub(off)
		if i == 0 {
			s.z.MoveTo(float32(p.X), float32(p.Y))
		} else {
			s.z.LineTo(float32(p.X), float32(p.Y))
		}
	}
	s.z.ClosePath()
	s.z.Draw(s.img, r, src, r.Min)
}

// pathBounds returns the smallest pixel rectangle covering path.
func pathBounds(path []math.Vec2) image.Rectangle {
	minX, minY := path[0].X, path[0].Y
	maxX, maxY := minX, minY
	for _, p := range path[1:] {
		minX, maxX = stdmath.Min(minX, p.X), stdmath.Max(maxX, p.X)
		minY, maxY = stdmath.Min(minY, p.Y), stdmath.Max(maxY, p.Y)
	}
	// Clamp before converting so far off-screen points cannot overflow.
	const limit = 1 << 30
	clampInt := func(v float64) int { return int(stdmath.Max(-limit, stdmath.Min(limit, v))) }
	return image.Rect(
		clampInt(stdmath.Floor(minX)), clampInt(stdmath.Floor(minY)),
		clampInt(stdmath.Ceil(maxX)), clampInt(stdmath.Ceil(maxY)),
	)
}

func nrgba(c surface.Color) color.NRGBA {
	r, g, b, a := c.RGBA8()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// everywhere is the bounds of the unbounded gradient sources.
var everywhere = image.Rect(-1<<30, -1<<30, 1<<30, 1<<30)

// linearGradient paints stops along a line starting at from, sampled at
// pixel centres.
type linearGradient struct {
	from  math.Vec2
	dir   math.Vec2 // direction divided by its squared length
	stops []surface.Stop
}

func (g *linearGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g *linearGradient) Bounds() image.Rectangle { return everywhere }

func (g *linearGradient) At(x, y int) color.Color {
	p := math.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	return nrgba(surface.ColorAt(g.stops, p.Sub(g.from).Dot(g.dir)))
}

// radialGradient fades from inner at the centre to outer at radius.
type radialGradient struct {
	center       math.Vec2
	radius       float64
	inner, outer surface.Color
}

func (g *radialGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g *radialGradient) Bounds() image.Rectangle { return everywhere }

func (g *radialGradient) At(x, y int) color.Color {
	p := math.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
	t := stdmath.Min(1, p.Distance(g.center)/g.radius)
	return nrgba(g.inner.Lerp(g.outer, t))
}
