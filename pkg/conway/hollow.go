package conway

import (
	"github.com/pkg/errors"

	"github.com/chazu/conway/pkg/flag"
	"github.com/chazu/conway/pkg/geom"
	"github.com/chazu/conway/pkg/mesh"
)

// Default parameters of Hollow.
const (
	DefaultHollowInset     = 0.5
	DefaultHollowThickness = 0.2
)

// Hollow turns the solid into a shell of the given thickness with a window
// in every face. Each vertex is copied inward along the matching dual face
// normal; each face gets an inset ring and a lowered copy of that ring.
// The result is not a sphere topologically.
func Hollow(p *mesh.Polyhedron, insetDist, thickness float64) (*mesh.Polyhedron, error) {
	d, err := Dual(p)
	if err != nil {
		return nil, errors.Wrap(err, "hollow")
	}
	dualNormals := d.Normals()
	if len(dualNormals) != len(p.Vertices) {
		return nil, errors.Wrapf(ErrNonManifold, "hollow: %d dual faces for %d vertices", len(dualNormals), len(p.Vertices))
	}
	normals := p.Normals()
	centers := p.Centers()

	b := flag.NewBuilder()
	for i, v := range p.Vertices {
		b.Vertex(vert(i), v)
		b.Vertex(flag.S(tagDown, i), v.Sub(dualNormals[i].MulScalar(thickness)))
	}
	for i, f := range p.Faces {
		for _, v := range f {
			in := geom.Tween(p.Vertices[v], centers[i], insetDist)
			b.Vertex(flag.S(tagFaceVertex, i, v), in)
			b.Vertex(flag.S(tagFaceVertDown, i, v), in.Sub(normals[i].MulScalar(thickness)))
		}
	}

	for i, f := range p.Faces {
		edgesOf(f, func(v1, v2 int) {
			in1, in2 := flag.S(tagFaceVertex, i, v1), flag.S(tagFaceVertex, i, v2)
			lo1, lo2 := flag.S(tagFaceVertDown, i, v1), flag.S(tagFaceVertDown, i, v2)
			down1, down2 := flag.S(tagDown, v1), flag.S(tagDown, v2)

			top := flag.S(faceCorner, i, v1)
			b.Edge(top, vert(v1), vert(v2))
			b.Edge(top, vert(v2), in2)
			b.Edge(top, in2, in1)
			b.Edge(top, in1, vert(v1))

			side := flag.S(faceSide, i, v1)
			b.Edge(side, in1, in2)
			b.Edge(side, in2, lo2)
			b.Edge(side, lo2, lo1)
			b.Edge(side, lo1, in1)

			bottom := flag.S(faceBottom, i, v1)
			b.Edge(bottom, down2, down1)
			b.Edge(bottom, down1, lo1)
			b.Edge(bottom, lo1, lo2)
			b.Edge(bottom, lo2, down2)
		})
	}
	return resolve(b, "hollow", "H"+p.Name)
}
