package canonical

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"

	"github.com/chazu/conway/pkg/conway"
	"github.com/chazu/conway/pkg/geom"
	"github.com/chazu/conway/pkg/mesh"
)

// AdjustXYZ alternates between primal and dual, placing each dual vertex
// at the reciprocal of the matching primal face center and each primal
// vertex at the reciprocal of the matching dual face center. It is a
// cheap approximation of Canonicalize used to tidy generated seeds.
func AdjustXYZ(p *mesh.Polyhedron, iterations int) (*mesh.Polyhedron, error) {
	return reciprocate(p, iterations, "adjust", reciprocalC)
}

// CanonicalXYZ is AdjustXYZ reciprocating face planes instead of face
// centers, which converges closer to the canonical form.
func CanonicalXYZ(p *mesh.Polyhedron, iterations int) (*mesh.Polyhedron, error) {
	return reciprocate(p, iterations, "canonical-xyz", reciprocalN)
}

func reciprocate(p *mesh.Polyhedron, iterations int, op string, recip func(*mesh.Polyhedron) ([]v3.Vec, error)) (*mesh.Polyhedron, error) {
	q := p.Clone()
	d, err := conway.Dual(q)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	if len(d.Faces) != len(q.Vertices) {
		return nil, errors.Wrapf(conway.ErrNonManifold, "%s: %d dual faces for %d vertices", op, len(d.Faces), len(q.Vertices))
	}
	for i := 0; i < iterations; i++ {
		if d.Vertices, err = recip(q); err != nil {
			return nil, errors.Wrapf(err, "%s: primal iteration %d", op, i)
		}
		if q.Vertices, err = recip(d); err != nil {
			return nil, errors.Wrapf(err, "%s: dual iteration %d", op, i)
		}
	}
	return q, nil
}

// reciprocalC returns the reciprocal of every face center.
func reciprocalC(p *mesh.Polyhedron) ([]v3.Vec, error) {
	centers := p.Centers()
	for i, c := range centers {
		if c.Length() < geom.Epsilon {
			return nil, errors.Wrapf(geom.ErrDegenerate, "face %d center at origin", i)
		}
		centers[i] = geom.Reciprocal(c)
	}
	return centers, nil
}

// reciprocalN returns, per face, the reciprocal of the foot of the
// perpendicular from the origin to the face plane, scaled by the mean of 1
// and the face's average edge distance.
func reciprocalN(p *mesh.Polyhedron) ([]v3.Vec, error) {
	out := make([]v3.Vec, len(p.Faces))
	for i := range p.Faces {
		pts := p.FacePoints(i)
		n, err := geom.UnitChecked(geom.RawNormal(pts))
		if err != nil {
			return nil, errors.Wrapf(err, "face %d normal", i)
		}
		var avgEdge float64
		prev := pts[len(pts)-1]
		for _, v := range pts {
			avgEdge += geom.EdgeDist(prev, v)
			prev = v
		}
		avgEdge /= float64(len(pts))

		foot := n.MulScalar(geom.Centroid(pts).Dot(n))
		if foot.Length() < geom.Epsilon {
			return nil, errors.Wrapf(geom.ErrDegenerate, "face %d plane through origin", i)
		}
		out[i] = geom.Reciprocal(foot).MulScalar((1 + avgEdge) / 2)
	}
	return out, nil
}
