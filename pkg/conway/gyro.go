package conway

import (
	"github.com/chazu/conway/pkg/flag"
	"github.com/chazu/conway/pkg/geom"
	"github.com/chazu/conway/pkg/mesh"
)

// Gyro splits every edge at its thirds and replaces each face with a ring
// of pentagons meeting at the face center. The result is chiral.
func Gyro(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	b := flag.NewBuilder()
	for i, v := range p.Vertices {
		b.Vertex(vert(i), geom.Unit(v))
	}
	for i, c := range p.Centers() {
		b.Vertex(flag.S(tagCenter, i), geom.Unit(c))
	}
	for i, f := range p.Faces {
		center := flag.S(tagCenter, i)
		corners(f, func(v1, v2, v3 int) {
			b.Vertex(third(v1, v2), geom.OneThird(p.Vertices[v1], p.Vertices[v2]))
			fs := flag.S(faceCorner, i, v1)
			b.Edge(fs, center, third(v1, v2))
			b.Edge(fs, third(v1, v2), third(v2, v1))
			b.Edge(fs, third(v2, v1), vert(v2))
			b.Edge(fs, vert(v2), third(v2, v3))
			b.Edge(fs, third(v2, v3), center)
		})
	}
	return resolve(b, "gyro", "g"+p.Name)
}

// Propellor splits every edge at its thirds, keeps a rotated copy of each
// face inside it and fills each corner with a quad.
func Propellor(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	b := flag.NewBuilder()
	for i, v := range p.Vertices {
		b.Vertex(vert(i), geom.Unit(v))
	}
	for i, f := range p.Faces {
		corners(f, func(v1, v2, v3 int) {
			b.Vertex(third(v1, v2), geom.OneThird(p.Vertices[v1], p.Vertices[v2]))
			b.Edge(flag.S(faceInner, i), third(v1, v2), third(v2, v3))
			fs := flag.S(faceCorner, i, v2)
			b.Edge(fs, third(v1, v2), third(v2, v1))
			b.Edge(fs, third(v2, v1), vert(v2))
			b.Edge(fs, vert(v2), third(v2, v3))
			b.Edge(fs, third(v2, v3), third(v1, v2))
		})
	}
	return resolve(b, "propellor", "p"+p.Name)
}

// Whirl splits every edge at its thirds, places one hexagon along each
// directed edge and keeps a shrunk, rotated copy of every face.
func Whirl(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	b := flag.NewBuilder()
	for i, v := range p.Vertices {
		b.Vertex(vert(i), geom.Unit(v))
	}
	centers := p.Centers()
	for i, f := range p.Faces {
		corners(f, func(v1, v2, v3 int) {
			e12 := geom.OneThird(p.Vertices[v1], p.Vertices[v2])
			b.Vertex(third(v1, v2), e12)
			cv1, cv2 := flag.S(tagCenterThird, i, v1), flag.S(tagCenterThird, i, v2)
			b.Vertex(cv1, geom.Unit(geom.OneThird(centers[i], e12)))

			fs := flag.S(faceCorner, i, v1)
			b.Edge(fs, cv1, third(v1, v2))
			b.Edge(fs, third(v1, v2), third(v2, v1))
			b.Edge(fs, third(v2, v1), vert(v2))
			b.Edge(fs, vert(v2), third(v2, v3))
			b.Edge(fs, third(v2, v3), cv2)
			b.Edge(fs, cv2, cv1)

			b.Edge(flag.S(faceInner, i), cv1, cv2)
		})
	}
	return resolve(b, "whirl", "w"+p.Name)
}
