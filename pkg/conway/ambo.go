package conway

import (
	"github.com/chazu/conway/pkg/flag"
	"github.com/chazu/conway/pkg/geom"
	"github.com/chazu/conway/pkg/mesh"
)

// Ambo truncates every vertex to the midpoints of its edges. Each original
// face becomes a face threading its edge midpoints, and each original
// vertex becomes a face threading the midpoints around it.
func Ambo(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	b := flag.NewBuilder()
	for i, f := range p.Faces {
		corners(f, func(v1, v2, v3 int) {
			if v1 < v2 {
				b.Vertex(mid(v1, v2), geom.Midpoint(p.Vertices[v1], p.Vertices[v2]))
			}
			b.Edge(flag.S(faceOrig, i), mid(v1, v2), mid(v2, v3))
			b.Edge(flag.S(faceVertex, v2), mid(v2, v3), mid(v1, v2))
		})
	}
	return resolve(b, "ambo", "a"+p.Name)
}
