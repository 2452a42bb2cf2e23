package conway

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/chazu/conway/pkg/flag"
	"github.com/chazu/conway/pkg/mesh"
)

// faceOfEdge maps every directed edge (v1,v2) to the face traversing it.
// A directed edge used by two faces is reported as ErrNonManifold.
func faceOfEdge(p *mesh.Polyhedron) (map[[2]int]int, error) {
	faceOf := make(map[[2]int]int)
	for i, f := range p.Faces {
		var err error
		edgesOf(f, func(v1, v2 int) {
			if err != nil {
				return
			}
			key := [2]int{v1, v2}
			if j, dup := faceOf[key]; dup {
				err = errors.Wrapf(ErrNonManifold, "edge %d->%d in faces %d and %d", v1, v2, j, i)
				return
			}
			faceOf[key] = i
		})
		if err != nil {
			return nil, err
		}
	}
	return faceOf, nil
}

// Dual places a vertex at the centroid of every face and builds one face
// around every original vertex. Face k of the result corresponds to
// vertex k of p. The input must be an oriented manifold.
func Dual(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	faceOf, err := faceOfEdge(p)
	if err != nil {
		return nil, errors.Wrap(err, "dual")
	}

	b := flag.NewBuilder()
	for i, c := range p.Centers() {
		b.Vertex(flag.S(tagCenter, i), c)
	}
	for i, f := range p.Faces {
		edgesOf(f, func(v1, v2 int) {
			if err != nil {
				return
			}
			opp, ok := faceOf[[2]int{v2, v1}]
			if !ok {
				err = errors.Wrapf(ErrNonManifold, "dual: edge %d->%d of face %d has no opposite", v1, v2, i)
				return
			}
			b.Edge(vert(v1), flag.S(tagCenter, opp), flag.S(tagCenter, i))
		})
		if err != nil {
			return nil, err
		}
	}

	name := "d" + p.Name
	if strings.HasPrefix(p.Name, "d") {
		name = p.Name[1:]
	}
	q, err := resolve(b, "dual", name)
	if err != nil {
		return nil, err
	}

	// Place the face built around original vertex v at index v.
	faces := make([][]int, len(p.Vertices))
	for i, sym := range b.FaceSymbols() {
		v := sym.A
		if v < 0 || v >= len(faces) || faces[v] != nil {
			return nil, errors.Wrapf(ErrNonManifold, "dual: face %d has no distinct source vertex", i)
		}
		faces[v] = q.Faces[i]
	}
	for v, f := range faces {
		if f == nil {
			return nil, errors.Wrapf(ErrNonManifold, "dual: vertex %d is on no face", v)
		}
	}
	q.Faces = faces
	return q, nil
}
