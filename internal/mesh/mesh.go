// Package mesh builds the fixed icosahedron shown by the wireframe.
package mesh

import (
	"fmt"
	stdmath "math"

	"github.com/Faultbox/floating-geometry/pkg/math"
)

const (
	// VertexCount is the number of icosahedron vertices.
	VertexCount = 12
	// EdgeCount is the number of icosahedron edges.
	EdgeCount = 30
	// DefaultRadius scales the unit golden-rectangle coordinates.
	DefaultRadius = 50.0
)

// Phi is the golden ratio.
var Phi = (1 + stdmath.Sqrt(5)) / 2

// Edge connects two vertex indices.
type Edge [2]int

// Mesh is an immutable vertex/edge set. Fixed-size arrays keep the counts
// constant for the lifetime of a value.
type Mesh struct {
	Radius   float64
	Vertices [VertexCount]math.Vec3
	Edges    [EdgeCount]Edge
}

// unitVertices are the corners of the three orthogonal golden rectangles.
var unitVertices = [VertexCount]math.Vec3{
	{X: -1, Y: Phi, Z: 0}, {X: 1, Y: Phi, Z: 0}, {X: -1, Y: -Phi, Z: 0}, {X: 1, Y: -Phi, Z: 0},
	{X: 0, Y: -1, Z: Phi}, {X: 0, Y: 1, Z: Phi}, {X: 0, Y: -1, Z: -Phi}, {X: 0, Y: 1, Z: -Phi},
	{X: Phi, Y: 0, Z: -1}, {X: Phi, Y: 0, Z: 1}, {X: -Phi, Y: 0, Z: -1}, {X: -Phi, Y: 0, Z: 1},
}

// edges lists every pair of vertices at distance 2 in unit coordinates:
// the fan around vertex 0 and its ring, the fan around vertex 3 and its
// ring, then the band joining the two rings.
var edges = [EdgeCount]Edge{
	{0, 11}, {0, 5}, {0, 1}, {0, 7}, {0, 10},
	{1, 5}, {5, 11}, {11, 10}, {10, 7}, {7, 1},
	{3, 9}, {3, 4}, {3, 2}, {3, 6}, {3, 8},
	{4, 9}, {2, 4}, {6, 2}, {8, 6}, {9, 8},
	{1, 9}, {5, 4}, {11, 2}, {10, 6}, {7, 8},
	{5, 9}, {11, 4}, {10, 2}, {7, 6}, {1, 8},
}

// Icosahedron returns the mesh scaled by radius.
func Icosahedron(radius float64) *Mesh {
	m := &Mesh{
		Radius: radius,
		Edges:  edges,
	}
	for i, v := range unitVertices {
		m.Vertices[i] = v.Scale(radius)
	}
	return m
}

// EdgeLength is the length every edge has by construction.
func (m *Mesh) EdgeLength() float64 {
	return 2 * m.Radius
}

// Circumradius is the distance from the origin to every vertex.
func (m *Mesh) Circumradius() float64 {
	return CircumradiusFor(m.Radius)
}

// CircumradiusFor returns the circumradius of an icosahedron built with
// the given radius, without building it.
func CircumradiusFor(radius float64) float64 {
	return stdmath.Abs(radius) * stdmath.Sqrt(1+Phi*Phi)
}

// Validate checks the edge table: indices in range, no self loops and no
// duplicate edges.
func (m *Mesh) Validate() error {
	seen := make(map[Edge]struct{}, EdgeCount)
	for n, e := range m.Edges {
		i, j := e[0], e[1]
		if i < 0 || i >= VertexCount || j < 0 || j >= VertexCount {
			return fmt.Errorf("edge %d: index out of range: %v", n, e)
		}
		if i == j {
			return fmt.Errorf("edge %d: self loop on vertex %d", n, i)
		}
		key := Edge{min(i, j), max(i, j)}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("edge %d: duplicate %v", n, e)
		}
		seen[key] = struct{}{}
	}
	return nil
}
