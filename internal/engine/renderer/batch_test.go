package renderer

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/floating-geometry/internal/surface"
	"github.com/Faultbox/floating-geometry/pkg/math"
)

var stops = []surface.Stop{
	{Offset: 0, Color: surface.ColorIndigo},
	{Offset: 0.5, Color: surface.ColorViolet},
	{Offset: 1, Color: surface.ColorCyan},
}

func vertexAt(b *Batch, i int) (math.Vec2, surface.Color) {
	v := b.Data()[i*floatsPerVertex:]
	return math.Vec2{X: float64(v[0]), Y: float64(v[1])},
		surface.Color{R: float64(v[3]), G: float64(v[4]), B: float64(v[5]), A: float64(v[6])}
}

func TestLineSplitsAtStops(t *testing.T) {
	b := NewBatch(0)
	b.Line(math.Vec2{X: 0, Y: 0}, math.Vec2{X: 10, Y: 0}, 2, stops)

	// Two quads, two triangles each.
	assert.Equal(t, 12, b.Len())

	p, c := vertexAt(b, 0)
	assert.InDelta(t, 0, p.X, 1e-6)
	assert.InDelta(t, 1, stdmath.Abs(p.Y), 1e-6)
	assert.InDelta(t, surface.ColorIndigo.R, c.R, 1e-6)

	p, c = vertexAt(b, 1)
	assert.InDelta(t, 5, p.X, 1e-6)
	assert.InDelta(t, surface.ColorViolet.B, c.B, 1e-6)

	p, c = vertexAt(b, 7)
	assert.InDelta(t, 10, p.X, 1e-6)
	assert.InDelta(t, surface.ColorCyan.G, c.G, 1e-6)
}

func TestLinePadsStops(t *testing.T) {
	b := NewBatch(0)
	b.Line(math.Vec2{}, math.Vec2{X: 4}, 1, []surface.Stop{{Offset: 0.5, Color: surface.ColorWhite}})
	assert.Equal(t, 12, b.Len())
}

func TestLineSkipsDegenerate(t *testing.T) {
	b := NewBatch(0)
	b.Line(math.Vec2{X: 1}, math.Vec2{X: 1}, 1, stops)
	b.Line(math.Vec2{X: stdmath.NaN()}, math.Vec2{X: 1}, 1, stops)
	b.Line(math.Vec2{}, math.Vec2{X: 1}, 0, stops)
	b.Line(math.Vec2{}, math.Vec2{X: 1}, 1, nil)
	assert.Zero(t, b.Len())
}

func TestFan(t *testing.T) {
	b := NewBatch(0)
	center := math.Vec2{X: 5, Y: 5}
	b.Fan(center, 3, surface.ColorWhite, surface.ColorTransparent, 12)

	assert.Equal(t, 36, b.Len())
	for i := 0; i < b.Len(); i++ {
		p, c := vertexAt(b, i)
		if i%3 == 0 {
			assert.Equal(t, center, p)
			assert.InDelta(t, 1, c.A, 1e-6)
			continue
		}
		assert.InDelta(t, 3, p.Distance(center), 1e-5)
		assert.Zero(t, c.A)
	}

	b.Reset()
	b.Fan(center, stdmath.Inf(1), surface.ColorWhite, surface.ColorWhite, 12)
	b.Fan(center, 0, surface.ColorWhite, surface.ColorWhite, 12)
	assert.Zero(t, b.Len())
}

func TestProjectionUsesLogicalPixels(t *testing.T) {
	m := Projection(1000, 600, 2)

	// Logical (500, 300) is the bottom right corner of a 1000x600 buffer.
	got := m.TransformPoint([3]float32{500, 300, 0})
	assert.InDelta(t, 1, got[0], 1e-6)
	assert.InDelta(t, -1, got[1], 1e-6)

	got = m.TransformPoint([3]float32{0, 0, 0})
	assert.InDelta(t, -1, got[0], 1e-6)
	assert.InDelta(t, 1, got[1], 1e-6)
}
