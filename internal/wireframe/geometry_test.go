package wireframe

import (
	stdmath "math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/floating-geometry/internal/clock"
	"github.com/Faultbox/floating-geometry/internal/host"
	"github.com/Faultbox/floating-geometry/internal/mesh"
	"github.com/Faultbox/floating-geometry/internal/projection"
	"github.com/Faultbox/floating-geometry/internal/surface"
	"github.com/Faultbox/floating-geometry/internal/surface/raster"
	"github.com/Faultbox/floating-geometry/pkg/math"
)

// recorder keeps every drawing call.
type recorder struct {
	w, h    int
	scale   float64
	clears  int
	strokes int
	glows   int
	discs   int
	widths  []float64

	lines  [][]surface.Stop
	halos  []halo
	points []point
}

type halo struct {
	center       math.Vec2
	radius       float64
	inner, outer surface.Color
}

type point struct {
	center math.Vec2
	radius float64
	color  surface.Color
}

func (r *recorder) Resize(w, h int, scale float64) { r.w, r.h, r.scale = w, h, scale }
func (r *recorder) Clear()                         { r.clears++ }
func (r *recorder) StrokeLine(_, _ math.Vec2, width float64, stops []surface.Stop) {
	r.strokes++
	r.widths = append(r.widths, width)
	r.lines = append(r.lines, append([]surface.Stop(nil), stops...))
}
func (r *recorder) FillGlow(c math.Vec2, radius float64, inner, outer surface.Color) {
	r.glows++
	r.halos = append(r.halos, halo{c, radius, inner, outer})
}
func (r *recorder) FillDisc(c math.Vec2, radius float64, col surface.Color) {
	r.discs++
	r.points = append(r.points, point{c, radius, col})
}

func stillOptions() Options {
	opts := DefaultOptions()
	opts.Motion.AutoX = 0
	opts.Motion.AutoY = 0
	return opts
}

func newHeadless(surf surface.Surface, w, h, density float64) (*host.Headless, *clock.Manual) {
	clk := clock.NewManual(time.Unix(0, 0))
	return host.NewHeadless(surf, host.Rect{W: w, H: h}, density, clk), clk
}

func TestMountUnmountLeavesNothingBehind(t *testing.T) {
	h, _ := newHeadless(&recorder{}, 500, 500, 1)
	g := New(DefaultOptions(), nil)

	g.Mount(h)
	require.True(t, g.Mounted())
	assert.Equal(t, 1, h.PointerCount())
	assert.Equal(t, 1, h.ResizeCount())
	assert.Equal(t, 1, h.Queue().Pending())

	h.Step()
	h.Step()

	g.Unmount()
	assert.False(t, g.Mounted())
	assert.Equal(t, 0, h.Queue().Pending())
	assert.Equal(t, 0, h.PointerCount())
	assert.Equal(t, 0, h.ResizeCount())
	assert.Equal(t, h.Added(), h.Removed())
	assert.Equal(t, uint64(2), g.Frames())

	// Idempotent, and the host stays quiet afterwards.
	g.Unmount()
	assert.Equal(t, 0, h.Step())
}

func TestMountWithoutSurface(t *testing.T) {
	h, _ := newHeadless(nil, 500, 500, 1)
	g := New(DefaultOptions(), nil)

	g.Mount(h)

	assert.False(t, g.Mounted())
	assert.Equal(t, 0, h.Added())
	assert.Equal(t, 0, h.Queue().Pending())
	assert.Equal(t, 0, h.Step())
	g.Unmount()
}

func TestMountRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"mesh reaches focal plane", func(o *Options) { o.Radius = 120 }},
		{"nan radius", func(o *Options) { o.Radius = stdmath.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			h, _ := newHeadless(rec, 500, 500, 1)
			opts := DefaultOptions()
			tt.modify(&opts)
			g := New(opts, nil)

			g.Mount(h)

			assert.False(t, g.Mounted())
			assert.Equal(t, 0, h.Added())
			assert.Equal(t, 0, h.Step())
			assert.Zero(t, rec.strokes)
			g.Unmount()
		})
	}
}

func TestFrameDrawsEveryPrimitive(t *testing.T) {
	rec := &recorder{}
	h, _ := newHeadless(rec, 500, 500, 1)
	g := New(DefaultOptions(), nil)
	g.Mount(h)
	defer g.Unmount()

	require.Equal(t, 1, h.Step())

	assert.Equal(t, 1, rec.clears)
	assert.Equal(t, mesh.EdgeCount, rec.strokes)
	assert.Equal(t, mesh.VertexCount, rec.glows)
	assert.Equal(t, mesh.VertexCount, rec.discs)
	for _, w := range rec.widths {
		assert.Equal(t, 1.5, w)
	}
	assert.Len(t, g.Projected(), mesh.VertexCount)
}

func TestEdgeGradientFollowsEndpointDepth(t *testing.T) {
	rec := &recorder{}
	h, _ := newHeadless(rec, 500, 500, 1)
	opts := stillOptions()
	g := New(opts, nil)
	g.Mount(h)
	defer g.Unmount()

	require.Equal(t, 1, h.Step())
	pts := g.Projected()
	m := mesh.Icosahedron(opts.Radius)
	require.Len(t, rec.lines, mesh.EdgeCount)

	uneven := 0
	for i, e := range m.Edges {
		z1, z2 := pts[e[0]].Z, pts[e[1]].Z
		a1 := Opacity(z1, opts.DepthRange, opts.EdgeOpacity)
		a2 := Opacity(z2, opts.DepthRange, opts.EdgeOpacity)
		if a1 != a2 {
			uneven++
		}

		want := []surface.Stop{
			{Offset: 0, Color: surface.ColorIndigo.WithAlpha(a1)},
			{Offset: 0.5, Color: surface.ColorViolet.WithAlpha((a1 + a2) / 2)},
			{Offset: 1, Color: surface.ColorCyan.WithAlpha(a2)},
		}
		if diff := cmp.Diff(want, rec.lines[i], cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("edge %v stops mismatch (-want +got):\n%s", e, diff)
		}
	}
	// Otherwise swapped endpoints would go unnoticed.
	assert.Greater(t, uneven, 0)
}

func TestVertexGlowAndCore(t *testing.T) {
	rec := &recorder{}
	h, _ := newHeadless(rec, 500, 500, 1)
	opts := stillOptions()
	g := New(opts, nil)
	g.Mount(h)
	defer g.Unmount()

	require.Equal(t, 1, h.Step())
	require.Len(t, rec.halos, mesh.VertexCount)
	require.Len(t, rec.points, mesh.VertexCount)

	center := math.Vec2{X: 250, Y: 250}
	for i, p := range g.Projected() {
		size := VertexSize(p)
		alpha := Opacity(p.Z, opts.DepthRange, opts.VertexOpacity)

		wantHalo := halo{
			center: p.Screen(center),
			radius: 3 * size,
			inner:  surface.ColorIndigo.WithAlpha(0.5 * alpha),
			outer:  surface.ColorIndigo.WithAlpha(0),
		}
		wantPoint := point{
			center: p.Screen(center),
			radius: size,
			color:  surface.ColorWhite.WithAlpha(alpha),
		}
		approx := cmpopts.EquateApprox(0, 1e-12)
		allow := cmp.AllowUnexported(halo{}, point{})
		if diff := cmp.Diff(wantHalo, rec.halos[i], approx, allow); diff != "" {
			t.Errorf("vertex %d glow mismatch (-want +got):\n%s", i, diff)
		}
		if diff := cmp.Diff(wantPoint, rec.points[i], approx, allow); diff != "" {
			t.Errorf("vertex %d core mismatch (-want +got):\n%s", i, diff)
		}
	}

	// The nearest vertex uses the vertex range, not the edge range.
	nearest := 0
	for i, p := range g.Projected() {
		if p.Z < g.Projected()[nearest].Z {
			nearest = i
		}
	}
	assert.Greater(t, rec.points[nearest].color.A, opts.EdgeOpacity.Max)
}

func TestCentredPointerMatchesUnrotatedProjection(t *testing.T) {
	h, clk := newHeadless(raster.New(0, 0, 1), 500, 500, 1)
	g := New(stillOptions(), nil)
	g.Mount(h)
	defer g.Unmount()

	h.Move(250, 250)
	for i := 0; i < 10; i++ {
		h.Step()
		clk.Advance(16 * time.Millisecond)
	}

	rot := g.Rotation()
	assert.InDelta(t, 0, rot.X, 1e-12)
	assert.InDelta(t, 0, rot.Y, 1e-12)

	m := mesh.Icosahedron(mesh.DefaultRadius)
	want := projection.New(projection.DefaultFocalLength).ProjectAll(nil, m.Vertices[:], 0, 0)
	if diff := cmp.Diff(want, g.Projected(), cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("projected points mismatch (-want +got):\n%s", diff)
	}
}

func TestPointerTiltsTowardTarget(t *testing.T) {
	h, clk := newHeadless(&recorder{}, 500, 500, 1)
	g := New(stillOptions(), nil)
	g.Mount(h)
	defer g.Unmount()

	// Bottom right corner: target (0.5, 0.5) scaled by sensitivity.
	h.Move(500, 500)
	prev := g.Rotation()
	for i := 0; i < 200; i++ {
		h.Step()
		clk.Advance(16 * time.Millisecond)
		rot := g.Rotation()
		assert.GreaterOrEqual(t, rot.X, prev.X)
		assert.LessOrEqual(t, rot.X, 0.25)
		prev = rot
	}
	assert.InDelta(t, 0.25, prev.X, 1e-3)
	assert.InDelta(t, 0.25, prev.Y, 1e-3)
}

func TestResizeSizesBackingBuffer(t *testing.T) {
	surf := raster.New(0, 0, 1)
	h, _ := newHeadless(surf, 500, 300, 1)
	g := New(DefaultOptions(), nil)
	g.Mount(h)
	defer g.Unmount()

	w, ht := surf.Size()
	assert.Equal(t, 500, w)
	assert.Equal(t, 300, ht)

	h.Resize(host.Rect{W: 300, H: 200}, 2)
	w, ht = surf.Size()
	assert.Equal(t, 600, w)
	assert.Equal(t, 400, ht)
	assert.Equal(t, 2.0, surf.Scale())
}

func TestNonFinitePointerKeepsLoopRunning(t *testing.T) {
	rec := &recorder{}
	h, clk := newHeadless(rec, 500, 500, 1)
	g := New(DefaultOptions(), nil)
	g.Mount(h)
	defer g.Unmount()

	h.Move(stdmath.NaN(), 0)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 1, h.Step())
		clk.Advance(16 * time.Millisecond)
	}

	assert.Equal(t, 3, rec.clears)
	assert.Zero(t, rec.strokes)
	assert.Zero(t, rec.discs)
	assert.Equal(t, 1, h.Queue().Pending())
}

func TestZeroSizeHostKeepsLoopRunning(t *testing.T) {
	rec := &recorder{}
	h, _ := newHeadless(rec, 0, 0, 1)
	g := New(DefaultOptions(), nil)
	g.Mount(h)
	defer g.Unmount()

	h.Move(10, 10)
	assert.Equal(t, 1, h.Step())
	assert.Equal(t, 1, h.Step())
	assert.Zero(t, rec.strokes)
}

func TestRenderedPixels(t *testing.T) {
	surf := raster.New(0, 0, 1)
	h, _ := newHeadless(surf, 200, 200, 1)
	g := New(DefaultOptions(), nil)
	g.Mount(h)
	defer g.Unmount()

	h.Step()

	// The centre is covered by the mesh and the corners are not.
	img := surf.Image()
	assert.Zero(t, img.RGBAAt(0, 0).A)
	assert.Zero(t, img.RGBAAt(199, 199).A)
	lit := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 100)
}

func TestRetune(t *testing.T) {
	h, clk := newHeadless(&recorder{}, 500, 500, 1)
	g := New(DefaultOptions(), nil)
	g.Mount(h)
	defer g.Unmount()

	h.Move(500, 250)
	for i := 0; i < 5; i++ {
		h.Step()
		clk.Advance(16 * time.Millisecond)
	}
	before := g.Rotation()

	bad := DefaultOptions()
	bad.Radius = 120
	assert.Error(t, g.Retune(bad))
	assert.Equal(t, DefaultOptions().Radius, g.Options().Radius)

	opts := DefaultOptions()
	opts.Radius = 40
	require.NoError(t, g.Retune(opts))
	assert.Equal(t, before, g.Rotation())

	h.Step()
	rot := g.Rotation()
	m := mesh.Icosahedron(40)
	want := projection.New(projection.DefaultFocalLength).ProjectAll(nil, m.Vertices[:], rot.X, rot.Y)
	if diff := cmp.Diff(want, g.Projected(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("retuned mesh mismatch (-want +got):\n%s", diff)
	}
}

func TestRetuneUnmounted(t *testing.T) {
	g := New(DefaultOptions(), nil)
	opts := DefaultOptions()
	opts.LineWidth = 3
	require.NoError(t, g.Retune(opts))
	assert.Equal(t, 3.0, g.Options().LineWidth)
	assert.Equal(t, uint64(0), g.Frames())
	assert.Empty(t, g.Projected())
}
