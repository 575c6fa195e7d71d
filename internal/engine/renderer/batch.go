package renderer

import (
	stdmath "math"

	"github.com/Faultbox/floating-geometry/internal/surface"
	"github.com/Faultbox/floating-geometry/pkg/math"
)

// Vertex format: x, y, z, r, g, b, a.
const floatsPerVertex = 7

// Batch accumulates colored triangles in logical pixel coordinates.
type Batch struct {
	vertices []float32
}

// NewBatch creates a batch with room for n vertices.
func NewBatch(n int) *Batch {
	return &Batch{vertices: make([]float32, 0, n*floatsPerVertex)}
}

// Reset drops all queued triangles.
func (b *Batch) Reset() {
	b.vertices = b.vertices[:0]
}

// Len returns the number of queued vertices.
func (b *Batch) Len() int {
	return len(b.vertices) / floatsPerVertex
}

// Data returns the raw vertex data.
func (b *Batch) Data() []float32 {
	return b.vertices
}

// Line queues a gradient line as one quad per pair of adjacent stops.
func (b *Batch) Line(from, to math.Vec2, width float64, stops []surface.Stop) {
	if !surface.Finite(from.X, from.Y, to.X, to.Y, width) || width <= 0 || len(stops) == 0 {
		return
	}
	dir := to.Sub(from)
	if dir.Length() == 0 {
		return
	}
	n := dir.Normalize().Perp().Scale(width / 2)

	// Pad so the stops cover [0, 1].
	first, last := stops[0], stops[len(stops)-1]
	prev := surface.Stop{Offset: 0, Color: first.Color}
	if first.Offset <= 0 {
		prev, stops = first, stops[1:]
	}
	if last.Offset < 1 {
		stops = append(stops[:len(stops):len(stops)], surface.Stop{Offset: 1, Color: last.Color})
	}

	for _, next := range stops {
		p0 := from.Lerp(to, prev.Offset)
		p1 := from.Lerp(to, next.Offset)
		b.quad(p0.Add(n), p1.Add(n), p1.Sub(n), p0.Sub(n), prev.Color, next.Color)
		prev = next
	}
}

// Fan queues a disc as a triangle fan with inner at the centre and outer
// on the rim. segments is the number of rim edges.
func (b *Batch) Fan(center math.Vec2, radius float64, inner, outer surface.Color, segments int) {
	if !surface.Finite(center.X, center.Y, radius) || radius <= 0 || segments < 3 {
		return
	}
	prev := math.Vec2{X: center.X + radius, Y: center.Y}
	for i := 1; i <= segments; i++ {
		sin, cos := stdmath.Sincos(2 * stdmath.Pi * float64(i) / float64(segments))
		p := math.Vec2{X: center.X + radius*cos, Y: center.Y + radius*sin}
		b.vertex(center, inner)
		b.vertex(prev, outer)
		b.vertex(p, outer)
		prev = p
	}
}

// quad queues a, b, c, d (clockwise) with color ca on the a-d side and cb
// on the b-c side.
func (b *Batch) quad(pa, pb, pc, pd math.Vec2, ca, cb surface.Color) {
	b.vertex(pa, ca)
	b.vertex(pb, cb)
	b.vertex(pc, cb)

	b.vertex(pa, ca)
	b.vertex(pc, cb)
	b.vertex(pd, ca)
}

func (b *Batch) vertex(p math.Vec2, c surface.Color) {
	b.vertices = append(b.vertices,
		float32(p.X), float32(p.Y), 0,
		float32(c.R), float32(c.G), float32(c.B), float32(c.A),
	)
}
