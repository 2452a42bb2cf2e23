package conway

import (
	"github.com/chazu/conway/pkg/flag"
	"github.com/chazu/conway/pkg/geom"
	"github.com/chazu/conway/pkg/mesh"
)

// Perspectiva1 stellates every face: each directed edge gets a point
// halfway between its midpoint and the face centroid. Faces become an
// inner polygon of those points, one triangle per corner and one per
// remaining gap, and each original edge is replaced by two triangles.
func Perspectiva1(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	b := flag.NewBuilder()
	centers := p.Centers()
	stellate := func(a, c int) flag.Sym { return flag.S(tagStellate, a, c) }

	for i, f := range p.Faces {
		corners(f, func(v1, v2, v3 int) {
			v12, v21, v23 := stellate(v1, v2), stellate(v2, v1), stellate(v2, v3)
			m := geom.Midpoint(p.Vertices[v1], p.Vertices[v2])
			b.Vertex(v12, geom.Midpoint(m, centers[i]))

			b.Edge(flag.S(faceInner, i), v12, v23)

			corner := flag.S(faceCorner, i, v2)
			b.Edge(corner, v23, v12)
			b.Edge(corner, v12, vert(v2))
			b.Edge(corner, vert(v2), v23)

			edge := flag.S(faceEdge, v1, v2)
			b.Edge(edge, vert(v1), v21)
			b.Edge(edge, v21, v12)
			b.Edge(edge, v12, vert(v1))
		})
	}
	for i, v := range p.Vertices {
		b.Vertex(vert(i), v)
	}
	return resolve(b, "perspectiva", "P"+p.Name)
}
