package conway

import (
	"github.com/chazu/conway/pkg/flag"
	"github.com/chazu/conway/pkg/geom"
	"github.com/chazu/conway/pkg/mesh"
)

// DefaultChamfer is the chamfer distance used when none is given.
const DefaultChamfer = 0.5

// Chamfer bevels every edge into a hexagon. Original vertices move out by
// a factor of 1+dist; every face gets its own copy of its vertices raised
// 1.5*dist along the face normal.
func Chamfer(p *mesh.Polyhedron, dist float64) (*mesh.Polyhedron, error) {
	b := flag.NewBuilder()
	normals := p.Normals()
	for i, f := range p.Faces {
		edgesOf(f, func(v1, v2 int) {
			b.Vertex(vert(v2), p.Vertices[v2].MulScalar(1+dist))
			n1, n2 := flag.S(tagFaceVertex, i, v1), flag.S(tagFaceVertex, i, v2)
			b.Vertex(n2, p.Vertices[v2].Add(normals[i].MulScalar(1.5*dist)))

			b.Edge(flag.S(faceOrig, i), n1, n2)

			hex := flag.S(faceEdge, min(v1, v2), max(v1, v2))
			b.Edge(hex, vert(v2), n2)
			b.Edge(hex, n2, n1)
			b.Edge(hex, n1, vert(v1))
		})
	}
	return resolve(b, "chamfer", "c"+p.Name)
}

// Quinto replaces every face with a ring of pentagons, one per corner,
// around an inner copy of the face built from points halfway between the
// edge midpoints and the face centroid.
func Quinto(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	b := flag.NewBuilder()
	for i, f := range p.Faces {
		centroid := geom.Centroid(p.FacePoints(i))
		inner := func(a, c int) flag.Sym {
			return flag.S(tagInner, i, min(a, c), max(a, c))
		}
		corners(f, func(v1, v2, v3 int) {
			m := geom.Midpoint(p.Vertices[v1], p.Vertices[v2])
			b.Vertex(mid(v1, v2), m)
			b.Vertex(inner(v1, v2), geom.Midpoint(m, centroid))
			b.Vertex(vert(v2), p.Vertices[v2])

			fs := flag.S(faceCorner, i, v2)
			b.Edge(fs, inner(v1, v2), mid(v1, v2))
			b.Edge(fs, mid(v1, v2), vert(v2))
			b.Edge(fs, vert(v2), mid(v2, v3))
			b.Edge(fs, mid(v2, v3), inner(v2, v3))
			b.Edge(fs, inner(v2, v3), inner(v1, v2))

			b.Edge(flag.S(faceInner, i), inner(v1, v2), inner(v2, v3))
		})
	}
	return resolve(b, "quinto", "q"+p.Name)
}
