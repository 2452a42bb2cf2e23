// Package mesh defines the Polyhedron value shared by the seeds, the
// operator library, canonicalization and triangulation.
//
// A Polyhedron is an ordered vertex list plus oriented faces of vertex
// indices. Faces wind so that their Newell normal points away from the
// solid. Operators never modify their input; canonicalization relaxes a
// caller-owned copy.
package mesh

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"

	"github.com/chazu/conway/pkg/geom"
)

// Polyhedron is a polygon mesh.
type Polyhedron struct {
	Name     string   `json:"name"`
	Vertices []v3.Vec `json:"vertices"`
	Faces    [][]int  `json:"faces"`
	// FaceClasses parallels Faces when a painter has assigned color
	// classes. It is nil otherwise.
	FaceClasses []int `json:"faceClasses,omitempty"`
}

// Edge is an undirected edge stored as (min, max).
type Edge [2]int

// MakeEdge canonicalizes the pair (a, b).
func MakeEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// New returns a polyhedron that owns the given slices.
func New(name string, verts []v3.Vec, faces [][]int) *Polyhedron {
	return &Polyhedron{Name: name, Vertices: verts, Faces: faces}
}

// VertexCount returns the number of vertices.
func (p *Polyhedron) VertexCount() int {
	return len(p.Vertices)
}

// FaceCount returns the number of faces.
func (p *Polyhedron) FaceCount() int {
	return len(p.Faces)
}

// Edges returns each undirected edge once, in the order it is first met
// walking the faces.
func (p *Polyhedron) Edges() []Edge {
	seen := make(map[Edge]struct{})
	var out []Edge
	for _, f := range p.Faces {
		if len(f) == 0 {
			continue
		}
		prev := f[len(f)-1]
		for _, v := range f {
			e := MakeEdge(prev, v)
			if _, ok := seen[e]; !ok {
				seen[e] = struct{}{}
				out = append(out, e)
			}
			prev = v
		}
	}
	return out
}

// EdgeCount returns len(Edges()).
func (p *Polyhedron) EdgeCount() int {
	return len(p.Edges())
}

// FacePoints returns the coordinates of face i in winding order.
func (p *Polyhedron) FacePoints(i int) []v3.Vec {
	f := p.Faces[i]
	pts := make([]v3.Vec, len(f))
	for j, v := range f {
		pts[j] = p.Vertices[v]
	}
	return pts
}

// Centers returns the centroid of every face.
func (p *Polyhedron) Centers() []v3.Vec {
	out := make([]v3.Vec, len(p.Faces))
	for i := range p.Faces {
		out[i] = geom.Centroid(p.FacePoints(i))
	}
	return out
}

// Normals returns the unit normal of every face.
func (p *Polyhedron) Normals() []v3.Vec {
	out := make([]v3.Vec, len(p.Faces))
	for i := range p.Faces {
		out[i] = geom.Normal(p.FacePoints(i))
	}
	return out
}

// FaceDistances returns, per face, the distance from the origin to the
// face plane through its first vertex.
func (p *Polyhedron) FaceDistances() []float64 {
	normals := p.Normals()
	out := make([]float64, len(p.Faces))
	for i, f := range p.Faces {
		if len(f) == 0 {
			continue
		}
		out[i] = math.Abs(normals[i].Dot(p.Vertices[f[0]]))
	}
	return out
}

// Inradius is the distance from the origin to the nearest face plane.
func (p *Polyhedron) Inradius() float64 {
	d := p.FaceDistances()
	if len(d) == 0 {
		return 0
	}
	return lo.Min(d)
}

// EdgeDistances returns the distance from the origin to the line of
// every edge, in Edges order.
func (p *Polyhedron) EdgeDistances() []float64 {
	return lo.Map(p.Edges(), func(e Edge, _ int) float64 {
		return geom.EdgeDist(p.Vertices[e[0]], p.Vertices[e[1]])
	})
}

// MinEdgeLength returns the shortest edge length, or 0 for no edges.
func (p *Polyhedron) MinEdgeLength() float64 {
	edges := p.Edges()
	if len(edges) == 0 {
		return 0
	}
	return lo.Min(lo.Map(edges, func(e Edge, _ int) float64 {
		return p.Vertices[e[0]].Sub(p.Vertices[e[1]]).Length()
	}))
}

// EulerCharacteristic returns V - E + F. A closed combinatorial sphere
// gives 2.
func (p *Polyhedron) EulerCharacteristic() int {
	return len(p.Vertices) - p.EdgeCount() + len(p.Faces)
}

// FaceSizeHistogram maps face side-count to the number of such faces.
func (p *Polyhedron) FaceSizeHistogram() map[int]int {
	return lo.CountValuesBy(p.Faces, func(f []int) int { return len(f) })
}

// Clone returns a deep copy.
func (p *Polyhedron) Clone() *Polyhedron {
	q := &Polyhedron{
		Name:     p.Name,
		Vertices: append([]v3.Vec(nil), p.Vertices...),
		Faces:    make([][]int, len(p.Faces)),
	}
	for i, f := range p.Faces {
		q.Faces[i] = append([]int(nil), f...)
	}
	if p.FaceClasses != nil {
		q.FaceClasses = append([]int(nil), p.FaceClasses...)
	}
	return q
}

// Transform returns a copy with every vertex mapped through m.
func (p *Polyhedron) Transform(m sdf.M44) *Polyhedron {
	q := p.Clone()
	for i, v := range q.Vertices {
		q.Vertices[i] = m.MulPosition(v)
	}
	return q
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (p *Polyhedron) Bounds() sdf.Box3 {
	return geom.Bounds(p.Vertices)
}

// VertexFaces returns, per vertex, the indices of the faces that use it.
func (p *Polyhedron) VertexFaces() [][]int {
	out := make([][]int, len(p.Vertices))
	for i, f := range p.Faces {
		for _, v := range f {
			if v >= 0 && v < len(out) {
				out[v] = append(out[v], i)
			}
		}
	}
	return out
}

// Renamed returns a shallow copy carrying a new name. Operators use it to
// prefix their letter without touching the source value.
func (p *Polyhedron) Renamed(name string) *Polyhedron {
	q := *p
	q.Name = name
	return &q
}
