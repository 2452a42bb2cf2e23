// Package canonical relaxes polyhedron vertex positions toward the
// canonical embedding: every edge tangent to the unit sphere, every face
// planar, and the tangent points centered on the origin.
//
// Only coordinates change; faces are copied as-is. Convergence is best
// effort and is reported through Stats, never as an error.
package canonical

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/chazu/conway/pkg/geom"
	"github.com/chazu/conway/pkg/mesh"
)

// Params are the damping constants of Canonicalize.
type Params struct {
	// Tangent scales the edge tangency correction. Half of it is applied
	// to each endpoint.
	Tangent float64 `json:"tangent"`
	// Planar scales the pull of each vertex toward its face planes.
	Planar float64 `json:"planar"`
	// Threshold is the largest per-iteration vertex displacement that
	// counts as converged.
	Threshold float64 `json:"threshold"`
}

// DefaultParams returns the stock damping constants.
func DefaultParams() Params {
	return Params{Tangent: 0.1, Planar: 0.1, Threshold: 1e-8}
}

// Stats describes a relaxation run.
type Stats struct {
	Iterations      int
	MaxDisplacement float64
	Converged       bool
	InradiusMean    float64
	InradiusStdDev  float64
	EdgeDistMean    float64
	EdgeDistStdDev  float64
}

// Canonicalize runs up to iterations rounds of tangentify, recenter and
// planarize on a copy of p, stopping early once no vertex moves more than
// params.Threshold. The input is not modified.
func Canonicalize(p *mesh.Polyhedron, iterations int, params Params) (*mesh.Polyhedron, Stats) {
	q := p.Clone()
	edges := q.Edges()
	var st Stats
	for st.Iterations < iterations {
		old := append([]v3.Vec(nil), q.Vertices...)
		tangentify(q.Vertices, edges, params.Tangent)
		recenter(q.Vertices, edges)
		planarize(q.Vertices, q.Faces, params.Planar)
		st.Iterations++

		st.MaxDisplacement = maxDisplacement(old, q.Vertices)
		if st.MaxDisplacement < params.Threshold {
			st.Converged = true
			break
		}
	}
	st.fill(q)
	return q, st
}

// tangentify moves both ends of every edge along the edge's tangent point
// so the edge line approaches the unit sphere. Later edges see the
// updates of earlier ones.
func tangentify(vs []v3.Vec, edges []mesh.Edge, factor float64) {
	for _, e := range edges {
		t := geom.TangentPoint(vs[e[0]], vs[e[1]])
		c := t.MulScalar(factor / 2 * (1 - t.Length()))
		vs[e[0]] = vs[e[0]].Add(c)
		vs[e[1]] = vs[e[1]].Add(c)
	}
}

// recenter translates the vertices so the mean edge tangent point is the
// origin.
func recenter(vs []v3.Vec, edges []mesh.Edge) {
	if len(edges) == 0 {
		return
	}
	var center v3.Vec
	for _, e := range edges {
		center = center.Add(geom.TangentPoint(vs[e[0]], vs[e[1]]))
	}
	center = center.DivScalar(float64(len(edges)))
	for i := range vs {
		vs[i] = vs[i].Sub(center)
	}
}

// planarize pulls every vertex toward the plane of each face it is on.
// All faces measure the positions from before this pass.
func planarize(vs []v3.Vec, faces [][]int, factor float64) {
	before := append([]v3.Vec(nil), vs...)
	for _, f := range faces {
		pts := make([]v3.Vec, len(f))
		for j, v := range f {
			pts[j] = before[v]
		}
		n := geom.Normal(pts)
		c := geom.Centroid(pts)
		if n.Dot(c) < 0 {
			n = n.Neg()
		}
		for _, v := range f {
			vs[v] = vs[v].Add(n.MulScalar(n.MulScalar(factor).Dot(c.Sub(before[v]))))
		}
	}
}

func maxDisplacement(a, b []v3.Vec) float64 {
	if len(a) == 0 {
		return 0
	}
	d := make([]float64, len(a))
	for i := range a {
		d[i] = a[i].Sub(b[i]).Length()
	}
	return floats.Max(d)
}

func (st *Stats) fill(p *mesh.Polyhedron) {
	if fd := p.FaceDistances(); len(fd) > 0 {
		st.InradiusMean, st.InradiusStdDev = stat.MeanStdDev(fd, nil)
	}
	if ed := p.EdgeDistances(); len(ed) > 0 {
		st.EdgeDistMean, st.EdgeDistStdDev = stat.MeanStdDev(ed, nil)
	}
}

// Measure reports the inradius and edge-distance spread of p without
// relaxing it.
func Measure(p *mesh.Polyhedron) Stats {
	var st Stats
	st.fill(p)
	return st
}

// Recenter returns a copy of p translated so its mean edge tangent point
// is the origin.
func Recenter(p *mesh.Polyhedron) *mesh.Polyhedron {
	q := p.Clone()
	recenter(q.Vertices, q.Edges())
	return q
}

// Rescale returns a copy of p scaled so its farthest vertex lies on the
// unit sphere.
func Rescale(p *mesh.Polyhedron) *mesh.Polyhedron {
	q := p.Clone()
	var extent float64
	for _, v := range q.Vertices {
		extent = max(extent, v.Length())
	}
	if extent < geom.Epsilon {
		return q
	}
	for i, v := range q.Vertices {
		q.Vertices[i] = v.DivScalar(extent)
	}
	return q
}

// Spherize returns a copy of p with every vertex projected onto the unit
// sphere.
func Spherize(p *mesh.Polyhedron) *mesh.Polyhedron {
	q := p.Clone()
	for i, v := range q.Vertices {
		q.Vertices[i] = geom.Unit(v)
	}
	return q
}
