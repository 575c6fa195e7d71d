package wireframe

import (
	"time"

	"github.com/Faultbox/floating-geometry/internal/projection"
	"github.com/Faultbox/floating-geometry/internal/surface"
	"github.com/Faultbox/floating-geometry/pkg/math"
)

func (g *Geometry) frame(now time.Time) {
	b := g.host.Bounds()
	rot := g.state.Advance(now)
	g.points = g.proj.ProjectAll(g.points, g.mesh.Vertices[:], rot.X, rot.Y)

	g.surf.Clear()
	center := math.Vec2{X: b.W / 2, Y: b.H / 2}
	g.drawEdges(center)
	g.drawVertices(center)
}

func (g *Geometry) drawEdges(center math.Vec2) {
	o := &g.opts
	for _, e := range g.mesh.Edges {
		p1, p2 := g.points[e[0]], g.points[e[1]]
		from, to := p1.Screen(center), p2.Screen(center)
		if !from.IsFinite() || !to.IsFinite() {
			continue
		}
		a1 := Opacity(p1.Z, o.DepthRange, o.EdgeOpacity)
		a2 := Opacity(p2.Z, o.DepthRange, o.EdgeOpacity)
		g.stops[0] = surface.Stop{Offset: 0, Color: o.Palette.Start.WithAlpha(a1)}
		g.stops[1] = surface.Stop{Offset: 0.5, Color: o.Palette.Mid.WithAlpha((a1 + a2) / 2)}
		g.stops[2] = surface.Stop{Offset: 1, Color: o.Palette.End.WithAlpha(a2)}
		g.surf.StrokeLine(from, to, o.LineWidth, g.stops[:])
	}
}

func (g *Geometry) drawVertices(center math.Vec2) {
	o := &g.opts
	for _, p := range g.points {
		size := VertexSize(p)
		c := p.Screen(center)
		if !c.IsFinite() || !surface.Finite(size) {
			continue
		}
		alpha := Opacity(p.Z, o.DepthRange, o.VertexOpacity)
		g.surf.FillGlow(c, size*glowRadius,
			o.Palette.Glow.WithAlpha(alpha*glowAlpha),
			o.Palette.Glow.WithAlpha(0),
		)
		g.surf.FillDisc(c, size, o.Palette.Core.WithAlpha(alpha))
	}
}

// VertexSize is the on-screen radius of a projected vertex.
func VertexSize(p projection.Point) float64 {
	return vertexBaseSize + p.Scale*vertexScaleSize
}
