// Package tessellate splits polygon faces into triangles and flattens
// polyhedra into render meshes.
package tessellate

import (
	"fmt"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
	"github.com/rclancey/earcut"
	"github.com/samber/lo"
	"honnef.co/go/curve"

	"github.com/chazu/conway/pkg/conway"
	"github.com/chazu/conway/pkg/geom"
	"github.com/chazu/conway/pkg/kernel"
	"github.com/chazu/conway/pkg/mesh"
)

// Options controls TriangulateWith.
type Options struct {
	// PreserveColors copies each face's FaceClasses entry onto the
	// triangles cut from it.
	PreserveColors bool
	// StepLimit bounds the ear clipper's ring walk per face. Zero picks
	// k*k + k for a k-gon.
	StepLimit int
}

// Triangulate splits every face with more than three vertices into
// triangles. Triangular faces pass through unchanged. Vertices are shared
// with no renumbering.
func Triangulate(p *mesh.Polyhedron, preserveColors bool) (*mesh.Polyhedron, []conway.Warning, error) {
	return TriangulateWith(p, Options{PreserveColors: preserveColors})
}

// TriangulateWith is Triangulate with explicit options. A face whose ear
// clipping fails is cut by earcut, or failing that by a fan from its
// first vertex; either fallback is reported as a Warning.
func TriangulateWith(p *mesh.Polyhedron, opt Options) (*mesh.Polyhedron, []conway.Warning, error) {
	keep := opt.PreserveColors && len(p.FaceClasses) == len(p.Faces)
	var (
		faces    [][]int
		classes  []int
		warnings []conway.Warning
	)
	for i, f := range p.Faces {
		if len(f) < 3 {
			return nil, nil, errors.Errorf("triangulate: face %d has %d vertices", i, len(f))
		}
		for _, v := range f {
			if v < 0 || v >= len(p.Vertices) {
				return nil, nil, errors.Errorf("triangulate: face %d references vertex %d of %d", i, v, len(p.Vertices))
			}
		}

		tris := [][3]int{{0, 1, 2}}
		if len(f) > 3 {
			var note string
			tris, note = triangulateFace(p.FacePoints(i), opt.StepLimit)
			if note != "" {
				warnings = append(warnings, conway.Warning{
					Op:      "triangulate",
					Message: fmt.Sprintf("face %d: %s", i, note),
				})
			}
		}
		for _, t := range tris {
			faces = append(faces, []int{f[t[0]], f[t[1]], f[t[2]]})
			if keep {
				classes = append(classes, p.FaceClasses[i])
			}
		}
	}

	q := mesh.New(p.Name, slices.Clone(p.Vertices), faces)
	if keep {
		q.FaceClasses = classes
	}
	return q, warnings, nil
}

// triangulateFace returns triangles as index triples into pts, each in the
// face's own winding. note is empty unless a fallback was used.
func triangulateFace(pts []v3.Vec, limit int) (tris [][3]int, note string) {
	flat := geom.Project2D(pts)
	diags, err := diagonals(flat, limit)
	if err == nil {
		if tris, err = fromDiagonals(len(pts), diags); err == nil {
			return tris, ""
		}
	}
	if tris, ecErr := earcutFace(flat); ecErr == nil {
		return tris, fmt.Sprintf("%v; used earcut", err)
	}
	return fan(len(pts)), fmt.Sprintf("%v; used fan", err)
}

// fromDiagonals recovers the k-2 triangles bounded by the edges of a
// k-gon and a full set of non-crossing diagonals. Every chord is walked in
// both directions; the third corner of a triangle on a chord is a vertex
// adjacent to both ends. Each triangle is listed once, lowest index first,
// which is the face's own winding.
func fromDiagonals(k int, diags [][2]int) ([][3]int, error) {
	adj := make([]map[int]bool, k)
	for i := range adj {
		adj[i] = make(map[int]bool)
	}
	link := func(a, b int) {
		adj[a][b] = true
		adj[b][a] = true
	}
	chords := make([][2]int, 0, k+len(diags))
	for i := 0; i < k; i++ {
		j := (i + 1) % k
		link(i, j)
		chords = append(chords, [2]int{i, j})
	}
	for _, d := range diags {
		if d[0] == d[1] || d[0] < 0 || d[1] < 0 || d[0] >= k || d[1] >= k {
			return nil, errors.Errorf("tessellate: bad diagonal %v", d)
		}
		link(d[0], d[1])
		chords = append(chords, d)
	}

	seen := make(map[[3]int]bool)
	var out [][3]int
	for _, c := range chords {
		for _, dir := range [][2]int{{c[0], c[1]}, {c[1], c[0]}} {
			for w := range adj[dir[1]] {
				if w == dir[0] || !adj[dir[0]][w] {
					continue
				}
				t := [3]int{dir[0], dir[1], w}
				slices.Sort(t[:])
				if !seen[t] {
					seen[t] = true
					out = append(out, t)
				}
			}
		}
	}
	if len(out) != k-2 {
		return nil, errors.Errorf("tessellate: %d triangles from %d-gon", len(out), k)
	}
	slices.SortFunc(out, func(a, b [3]int) int {
		return slices.Compare(a[:], b[:])
	})
	return out, nil
}

func earcutFace(pts []curve.Point) ([][3]int, error) {
	coords := make([]float64, 0, 2*len(pts))
	for _, p := range pts {
		coords = append(coords, p.X, p.Y)
	}
	idx, err := earcut.Earcut(coords, nil, 2)
	if err != nil {
		return nil, err
	}
	if len(idx) != 3*(len(pts)-2) {
		return nil, errors.Errorf("earcut: %d indices for %d-gon", len(idx), len(pts))
	}
	tris := lo.Map(lo.Chunk(idx, 3), func(c []int, _ int) [3]int {
		t := [3]int{c[0], c[1], c[2]}
		slices.Sort(t[:])
		return t
	})
	if len(lo.Uniq(tris)) != len(tris) {
		return nil, errors.New("earcut: repeated triangle")
	}
	return tris, nil
}

func fan(k int) [][3]int {
	out := make([][3]int, 0, k-2)
	for i := 1; i < k-1; i++ {
		out = append(out, [3]int{0, i, i + 1})
	}
	return out
}

// ToMesh flattens p into a flat-shaded render mesh with one normal per
// face. Faces with more than three vertices are fanned, so non-convex
// faces should be triangulated first. color, when non-nil, gives the RGB
// color of each face.
func ToMesh(p *mesh.Polyhedron, color func(face int) [3]float32) *kernel.Mesh {
	m := &kernel.Mesh{PartName: p.Name}
	for i, f := range p.Faces {
		if len(f) < 3 {
			continue
		}
		n := geom.Normal(p.FacePoints(i))
		var rgb [3]float32
		if color != nil {
			rgb = color(i)
		}
		for _, t := range fan(len(f)) {
			for _, j := range t {
				v := p.Vertices[f[j]]
				m.Indices = append(m.Indices, uint32(m.VertexCount()))
				m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
				m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
				if color != nil {
					m.Colors = append(m.Colors, rgb[0], rgb[1], rgb[2])
				}
			}
		}
	}
	return m
}

// ClassifyFaces gives congruent faces the same class, numbered in order of
// first appearance. sensitivity is the number of significant figures
// compared.
func ClassifyFaces(p *mesh.Polyhedron, sensitivity int) []int {
	classes := make([]int, len(p.Faces))
	seen := make(map[string]int)
	for i := range p.Faces {
		sig := geom.FaceSignature(p.FacePoints(i), sensitivity)
		c, ok := seen[sig]
		if !ok {
			c = len(seen)
			seen[sig] = c
		}
		classes[i] = c
	}
	return classes
}
