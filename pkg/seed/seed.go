// Package seed builds the primitive solids operator chains start from.
package seed

import (
	"fmt"
	"math"
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"

	"github.com/chazu/conway/pkg/canonical"
	"github.com/chazu/conway/pkg/conway"
	"github.com/chazu/conway/pkg/geom"
	"github.com/chazu/conway/pkg/mesh"
)

var (
	// ErrUnknownSeed is returned by ByName for an unrecognized name.
	ErrUnknownSeed = errors.New("seed: unknown seed")
	// ErrSides is returned when a parameterized seed gets fewer than 3
	// sides.
	ErrSides = errors.New("seed: need at least 3 sides")
)

// Tetrahedron returns the regular tetrahedron inscribed in the cube
// [-1,1]³. Its edges are tangent to the unit sphere.
func Tetrahedron() *mesh.Polyhedron {
	return orient(mesh.New("T",
		[]v3.Vec{
			{X: 1, Y: 1, Z: 1},
			{X: 1, Y: -1, Z: -1},
			{X: -1, Y: 1, Z: -1},
			{X: -1, Y: -1, Z: 1},
		},
		[][]int{{0, 1, 2}, {0, 2, 3}, {0, 3, 1}, {1, 3, 2}}))
}

// Cube returns the cube with edges tangent to the unit sphere.
func Cube() *mesh.Polyhedron {
	s := math.Sqrt(0.5)
	return orient(mesh.New("C",
		[]v3.Vec{
			{X: -s, Y: -s, Z: -s}, {X: s, Y: -s, Z: -s}, {X: s, Y: s, Z: -s}, {X: -s, Y: s, Z: -s},
			{X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s},
		},
		[][]int{
			{0, 3, 2, 1},
			{4, 5, 6, 7},
			{0, 1, 5, 4},
			{2, 3, 7, 6},
			{0, 4, 7, 3},
			{1, 2, 6, 5},
		}))
}

// Octahedron returns the octahedron with edges tangent to the unit sphere.
func Octahedron() *mesh.Polyhedron {
	s := math.Sqrt2
	return orient(mesh.New("O",
		[]v3.Vec{
			{Z: s}, {X: s}, {Y: s}, {X: -s}, {Y: -s}, {Z: -s},
		},
		[][]int{
			{0, 1, 2}, {0, 2, 3}, {0, 3, 4}, {0, 4, 1},
			{5, 2, 1}, {5, 3, 2}, {5, 4, 3}, {5, 1, 4},
		}))
}

// Icosahedron returns the unit-circumradius icosahedron: two poles plus
// two staggered rings of five at height ±1/√5.
func Icosahedron() *mesh.Polyhedron {
	z := 1 / math.Sqrt(5)
	r := 2 / math.Sqrt(5)
	verts := []v3.Vec{{Z: 1}}
	for k := 0; k < 5; k++ {
		a := 2 * math.Pi * float64(k) / 5
		verts = append(verts, v3.Vec{X: r * math.Cos(a), Y: r * math.Sin(a), Z: z})
	}
	for k := 0; k < 5; k++ {
		a := 2*math.Pi*float64(k)/5 + math.Pi/5
		verts = append(verts, v3.Vec{X: r * math.Cos(a), Y: r * math.Sin(a), Z: -z})
	}
	verts = append(verts, v3.Vec{Z: -1})

	var faces [][]int
	for k := 0; k < 5; k++ {
		k1 := (k + 1) % 5
		up, upNext := 1+k, 1+k1
		low, lowNext := 6+k, 6+k1
		faces = append(faces,
			[]int{0, up, upNext},
			[]int{up, low, upNext},
			[]int{low, lowNext, upNext},
			[]int{11, lowNext, low},
		)
	}
	return orient(mesh.New("I", verts, faces))
}

// Dodecahedron returns the dual of Icosahedron.
func Dodecahedron() *mesh.Polyhedron {
	d, err := conway.Dual(Icosahedron())
	if err != nil {
		panic(fmt.Sprintf("seed: dual of icosahedron: %v", err))
	}
	return d.Renamed("D")
}

// Prism returns an n-sided prism with square sides.
func Prism(n int) (*mesh.Polyhedron, error) {
	if n < 3 {
		return nil, errors.Wrapf(ErrSides, "prism %d", n)
	}
	h := math.Sin(math.Pi / float64(n))
	verts := make([]v3.Vec, 0, 2*n)
	for _, z := range []float64{h, -h} {
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / float64(n)
			verts = append(verts, v3.Vec{X: math.Cos(a), Y: math.Sin(a), Z: z})
		}
	}
	faces := [][]int{ring(0, n), reversed(ring(n, n))}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		faces = append(faces, []int{i, n + i, n + j, j})
	}
	return finish(mesh.New(fmt.Sprintf("P%d", n), verts, faces), adjust)
}

// Antiprism returns an n-sided antiprism with equilateral side triangles.
func Antiprism(n int) (*mesh.Polyhedron, error) {
	if n < 3 {
		return nil, errors.Wrapf(ErrSides, "antiprism %d", n)
	}
	step := math.Pi / float64(n)
	h := math.Sqrt(math.Pow(math.Sin(step), 2) - math.Pow(math.Sin(step/2), 2))
	verts := make([]v3.Vec, 0, 2*n)
	for i := 0; i < n; i++ {
		a := 2 * step * float64(i)
		verts = append(verts, v3.Vec{X: math.Cos(a), Y: math.Sin(a), Z: h})
	}
	for i := 0; i < n; i++ {
		a := 2*step*float64(i) + step
		verts = append(verts, v3.Vec{X: math.Cos(a), Y: math.Sin(a), Z: -h})
	}
	faces := [][]int{ring(0, n), reversed(ring(n, n))}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		faces = append(faces,
			[]int{i, n + i, j},
			[]int{n + i, n + j, j},
		)
	}
	return finish(mesh.New(fmt.Sprintf("A%d", n), verts, faces), adjust)
}

// Pyramid returns an n-sided pyramid.
func Pyramid(n int) (*mesh.Polyhedron, error) {
	if n < 3 {
		return nil, errors.Wrapf(ErrSides, "pyramid %d", n)
	}
	verts := make([]v3.Vec, 0, n+1)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		verts = append(verts, v3.Vec{X: math.Cos(a), Y: math.Sin(a), Z: -0.3})
	}
	verts = append(verts, v3.Vec{Z: 1})
	faces := [][]int{reversed(ring(0, n))}
	for i := 0; i < n; i++ {
		faces = append(faces, []int{n, i, (i + 1) % n})
	}
	return finish(mesh.New(fmt.Sprintf("Y%d", n), verts, faces), func(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
		return canonical.CanonicalXYZ(p, 3)
	})
}

// Cupola returns an n-sided cupola: an n-gon on top of a 2n-gon joined
// by alternating squares and triangles.
func Cupola(n int) (*mesh.Polyhedron, error) {
	if n < 3 {
		return nil, errors.Wrapf(ErrSides, "cupola %d", n)
	}
	step := math.Pi / float64(n)
	top := 1 / (2 * math.Sin(step))
	bottom := 1 / (2 * math.Sin(step/2))
	h := math.Sqrt(math.Max(1-(top*top+bottom*bottom-2*top*bottom*math.Cos(step/2)), 0.01))

	verts := make([]v3.Vec, 0, 3*n)
	for i := 0; i < n; i++ {
		a := 2 * step * float64(i)
		verts = append(verts, v3.Vec{X: top * math.Cos(a), Y: top * math.Sin(a), Z: h / 2})
	}
	for j := 0; j < 2*n; j++ {
		a := step*float64(j) + step/2
		verts = append(verts, v3.Vec{X: bottom * math.Cos(a), Y: bottom * math.Sin(a), Z: -h / 2})
	}
	b := func(j int) int { return n + j%(2*n) }
	faces := [][]int{ring(0, n), reversed(ring(n, 2*n))}
	for i := 0; i < n; i++ {
		i1 := (i + 1) % n
		faces = append(faces,
			[]int{i, b(2 * i), b(2*i + 1), i1},
			[]int{i1, b(2*i + 1), b(2*i + 2)},
		)
	}
	return finish(mesh.New(fmt.Sprintf("U%d", n), verts, faces), adjust)
}

func adjust(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	return canonical.AdjustXYZ(p, 1)
}

// finish orients p and runs the relaxation step, keeping p's name.
func finish(p *mesh.Polyhedron, relax func(*mesh.Polyhedron) (*mesh.Polyhedron, error)) (*mesh.Polyhedron, error) {
	q, err := relax(orient(p))
	if err != nil {
		return nil, errors.Wrapf(err, "seed %s", p.Name)
	}
	return q.Renamed(p.Name), nil
}

// orient flips every face whose normal points toward the body centroid.
func orient(p *mesh.Polyhedron) *mesh.Polyhedron {
	body := geom.Centroid(p.Vertices)
	centers := p.Centers()
	for i, n := range p.Normals() {
		if n.Dot(centers[i].Sub(body)) < 0 {
			slices.Reverse(p.Faces[i])
		}
	}
	return p
}

func ring(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}

func reversed(f []int) []int {
	slices.Reverse(f)
	return f
}
