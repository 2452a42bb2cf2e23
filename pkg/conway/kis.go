package conway

import (
	"github.com/chazu/conway/pkg/flag"
	"github.com/chazu/conway/pkg/geom"
	"github.com/chazu/conway/pkg/mesh"
)

// Default parameters of the selector operators.
const (
	DefaultApexDist   = 0.1
	DefaultInsetDist  = 0.5
	DefaultPopoutDist = -0.2
	DefaultExtrude    = 0.3
	DefaultLoft       = 0.5
)

// Kis raises a pyramid on every n-sided face (every face when n is 0).
// The apex sits apexDist above the face centroid along its normal.
func Kis(p *mesh.Polyhedron, n int, apexDist float64) (*mesh.Polyhedron, []Warning, error) {
	b := flag.NewBuilder()
	for i, v := range p.Vertices {
		b.Vertex(vert(i), v)
	}
	normals := p.Normals()
	centers := p.Centers()

	found := false
	for i, f := range p.Faces {
		if !matches(len(f), n) {
			edgesOf(f, func(v1, v2 int) {
				b.Edge(flag.S(faceOrig, i), vert(v1), vert(v2))
			})
			continue
		}
		found = true
		apex := flag.S(tagApex, i)
		b.Vertex(apex, centers[i].Add(normals[i].MulScalar(apexDist)))
		edgesOf(f, func(v1, v2 int) {
			fs := flag.S(faceCorner, i, v1)
			b.Edge(fs, vert(v1), vert(v2))
			b.Edge(fs, vert(v2), apex)
			b.Edge(fs, apex, vert(v1))
		})
	}

	q, err := resolve(b, "kis", selectorName("k", n, p.Name))
	if err != nil {
		return nil, nil, err
	}
	var warnings []Warning
	if !found {
		warnings = append(warnings, noMatch("kis", n))
	}
	return q, warnings, nil
}

// Inset shrinks every n-sided face toward its centroid by insetDist and
// pushes the copy popoutDist along the face normal, joining it to the
// original boundary with quads.
func Inset(p *mesh.Polyhedron, n int, insetDist, popoutDist float64) (*mesh.Polyhedron, []Warning, error) {
	return inset(p, n, insetDist, popoutDist, "inset", selectorName("I", n, p.Name))
}

// Extrude raises every n-sided face along its normal.
func Extrude(p *mesh.Polyhedron, n int) (*mesh.Polyhedron, []Warning, error) {
	return inset(p, n, 0, DefaultExtrude, "extrude", selectorName("x", n, p.Name))
}

// Loft insets every n-sided face in its own plane.
func Loft(p *mesh.Polyhedron, n int, alpha float64) (*mesh.Polyhedron, []Warning, error) {
	return inset(p, n, alpha, 0, "loft", selectorName("l", n, p.Name))
}

func inset(p *mesh.Polyhedron, n int, insetDist, popoutDist float64, op, name string) (*mesh.Polyhedron, []Warning, error) {
	b := flag.NewBuilder()
	for i, v := range p.Vertices {
		b.Vertex(vert(i), v)
	}
	normals := p.Normals()
	centers := p.Centers()
	for i, f := range p.Faces {
		if !matches(len(f), n) {
			continue
		}
		for _, v := range f {
			pt := geom.Tween(p.Vertices[v], centers[i], insetDist).Add(normals[i].MulScalar(popoutDist))
			b.Vertex(flag.S(tagFaceVertex, i, v), pt)
		}
	}

	found := false
	for i, f := range p.Faces {
		if !matches(len(f), n) {
			edgesOf(f, func(v1, v2 int) {
				b.Edge(flag.S(faceOrig, i), vert(v1), vert(v2))
			})
			continue
		}
		found = true
		edgesOf(f, func(v1, v2 int) {
			fs := flag.S(faceCorner, i, v1)
			in1, in2 := flag.S(tagFaceVertex, i, v1), flag.S(tagFaceVertex, i, v2)
			b.Edge(fs, vert(v1), vert(v2))
			b.Edge(fs, vert(v2), in2)
			b.Edge(fs, in2, in1)
			b.Edge(fs, in1, vert(v1))
			b.Edge(flag.S(faceInner, i), in1, in2)
		})
	}

	q, err := resolve(b, op, name)
	if err != nil {
		return nil, nil, err
	}
	var warnings []Warning
	if !found {
		warnings = append(warnings, noMatch(op, n))
	}
	return q, warnings, nil
}
