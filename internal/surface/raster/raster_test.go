package raster

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/floating-geometry/internal/surface"
	"github.com/Faultbox/floating-geometry/pkg/math"
)

var edgeStops = []surface.Stop{
	{Offset: 0, Color: surface.ColorIndigo.WithAlpha(0.8)},
	{Offset: 0.5, Color: surface.ColorViolet.WithAlpha(0.8)},
	{Offset: 1, Color: surface.ColorCyan.WithAlpha(0.8)},
}

func blank(t *testing.T, s *Surface) bool {
	t.Helper()
	for _, b := range s.Image().Pix {
		if b != 0 {
			return false
		}
	}
	return true
}

func TestResizeSetsBackingBuffer(t *testing.T) {
	s := New(10, 10, 1)
	s.Resize(1000, 600, 2)

	w, h := s.Size()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, 2.0, s.Scale())
}

func TestStrokeLineGradientEnds(t *testing.T) {
	s := New(100, 20, 1)
	s.StrokeLine(math.Vec2{X: 0, Y: 10}, math.Vec2{X: 100, Y: 10}, 4, edgeStops)

	start := s.Image().RGBAAt(2, 10)
	end := s.Image().RGBAAt(97, 10)
	require.NotZero(t, start.A)
	require.NotZero(t, end.A)

	// indigo is blue-heavy, cyan is green-heavy
	assert.Greater(t, start.B, start.G)
	assert.Greater(t, end.G, end.R)

	assert.Zero(t, s.Image().RGBAAt(50, 0).A, "nothing far from the line")
}

func TestScaleMapsLogicalToDevicePixels(t *testing.T) {
	s := New(40, 40, 2)
	s.FillDisc(math.Vec2{X: 10, Y: 10}, 3, surface.ColorWhite)

	assert.Equal(t, uint8(255), s.Image().RGBAAt(20, 20).A)
	assert.Zero(t, s.Image().RGBAAt(10, 10).A)
}

func TestFillGlowFadesOut(t *testing.T) {
	s := New(60, 60, 1)
	s.FillGlow(math.Vec2{X: 30, Y: 30}, 20, surface.ColorIndigo.WithAlpha(0.5), surface.ColorIndigo.WithAlpha(0))

	centre := s.Image().RGBAAt(30, 30).A
	near := s.Image().RGBAAt(40, 30).A
	rim := s.Image().RGBAAt(49, 30).A

	assert.Greater(t, centre, near)
	assert.Greater(t, near, rim)
}

func TestNonFiniteCoordinatesAreSkipped(t *testing.T) {
	s := New(50, 50, 1)
	nan := stdmath.NaN()
	inf := stdmath.Inf(1)

	assert.NotPanics(t, func() {
		s.StrokeLine(math.Vec2{X: nan, Y: 0}, math.Vec2{X: 10, Y: 10}, 1.5, edgeStops)
		s.StrokeLine(math.Vec2{X: 0, Y: 0}, math.Vec2{X: inf, Y: 10}, 1.5, edgeStops)
		s.FillGlow(math.Vec2{X: 10, Y: 10}, nan, surface.ColorWhite, surface.ColorTransparent)
		s.FillDisc(math.Vec2{X: 10, Y: inf}, 3, surface.ColorWhite)
	})
	assert.True(t, blank(t, s))
}

func TestZeroSizedSurfaceIgnoresDrawing(t *testing.T) {
	s := New(0, 0, 1)
	assert.NotPanics(t, func() {
		s.Clear()
		s.StrokeLine(math.Vec2{}, math.Vec2{X: 5, Y: 5}, 1.5, edgeStops)
		s.FillDisc(math.Vec2{X: 1, Y: 1}, 2, surface.ColorWhite)
	})
}

func TestClear(t *testing.T) {
	s := New(20, 20, 1)
	s.FillDisc(math.Vec2{X: 10, Y: 10}, 5, surface.ColorWhite)
	require.False(t, blank(t, s))

	s.Clear()
	assert.True(t, blank(t, s))
}

func TestGradientSampledInBufferCoordinates(t *testing.T) {
	s := New(100, 40, 1)
	s.StrokeLine(math.Vec2{X: 20, Y: 30}, math.Vec2{X: 80, Y: 30}, 4, edgeStops)

	start := s.Image().RGBAAt(21, 30)
	end := s.Image().RGBAAt(78, 30)
	require.NotZero(t, start.A)
	require.NotZero(t, end.A)
	assert.Greater(t, start.B, start.G)
	assert.Greater(t, end.G, end.R)

	// Outside the stroke's box.
	assert.Zero(t, s.Image().RGBAAt(10, 30).A)
	assert.Zero(t, s.Image().RGBAAt(50, 10).A)
}

func TestPrimitivesClippedToBuffer(t *testing.T) {
	s := New(40, 40, 1)

	assert.NotPanics(t, func() {
		s.FillDisc(math.Vec2{X: 0, Y: 0}, 6, surface.ColorWhite)
		s.FillGlow(math.Vec2{X: 40, Y: 40}, 6, surface.ColorWhite, surface.ColorTransparent)
		s.StrokeLine(math.Vec2{X: -1e6, Y: 20}, math.Vec2{X: 1e6, Y: 20}, 2, edgeStops)
	})

	assert.Equal(t, uint8(255), s.Image().RGBAAt(1, 1).A)
	assert.NotZero(t, s.Image().RGBAAt(38, 38).A)
	assert.NotZero(t, s.Image().RGBAAt(0, 20).A)
	assert.NotZero(t, s.Image().RGBAAt(39, 20).A)
	assert.Zero(t, s.Image().RGBAAt(20, 10).A)
}

func TestOffscreenPrimitivesDrawNothing(t *testing.T) {
	s := New(40, 40, 1)
	s.FillDisc(math.Vec2{X: -20, Y: 10}, 5, surface.ColorWhite)
	s.FillGlow(math.Vec2{X: 100, Y: 100}, 5, surface.ColorWhite, surface.ColorTransparent)
	s.StrokeLine(math.Vec2{X: 0, Y: -10}, math.Vec2{X: 40, Y: -10}, 2, edgeStops)
	assert.True(t, blank(t, s))
}

func BenchmarkEdgeFrame(b *testing.B) {
	s := New(500, 500, 1)
	for i := 0; i < b.N; i++ {
		s.Clear()
		for e := 0; e < 30; e++ {
			a := float64(e) * 12
			s.StrokeLine(math.Vec2{X: 100 + a, Y: 150}, math.Vec2{X: 400 - a, Y: 350}, 1.5, edgeStops)
		}
		for v := 0; v < 12; v++ {
			c := math.Vec2{X: 150 + float64(v)*20, Y: 250}
			s.FillGlow(c, 12, surface.ColorIndigo.WithAlpha(0.5), surface.ColorIndigo.WithAlpha(0))
			s.FillDisc(c, 4, surface.ColorWhite)
		}
	}
}
