package conway

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/chazu/conway/pkg/mesh"
	"github.com/chazu/conway/pkg/weld"
)

// DefaultTrisub is the subdivision factor used when none is given.
const DefaultTrisub = 2

// Trisub divides every triangle into n² triangles on a barycentric grid.
// Grid points shared by neighbouring faces are merged by distance rather
// than by symbol, so this operator does not go through the flag builder.
// Meshes with any non-triangular face are returned unchanged with a
// Warning.
func Trisub(p *mesh.Polyhedron, n int) (*mesh.Polyhedron, []Warning, error) {
	if n < 1 {
		return nil, nil, errors.Errorf("trisub: subdivision factor %d, must be at least 1", n)
	}
	for i, f := range p.Faces {
		if len(f) != 3 {
			w := Warning{Op: "trisub", Message: fmt.Sprintf("%v (face %d has %d sides); mesh unchanged", ErrNotTriangular, i, len(f))}
			return p.Clone(), []Warning{w}, nil
		}
	}

	w := weld.New(weld.DefaultEpsilon)
	// grid[i][j] is the welded id of v1 + (i/n)(v2-v1) + (j/n)(v3-v1).
	grid := make([][]int, n+1)
	var faces [][]int
	for _, f := range p.Faces {
		v1, v2, v3 := p.Vertices[f[0]], p.Vertices[f[1]], p.Vertices[f[2]]
		v21, v31 := v2.Sub(v1), v3.Sub(v1)
		for i := 0; i <= n; i++ {
			grid[i] = grid[i][:0]
			for j := 0; i+j <= n; j++ {
				pt := v1.Add(v21.MulScalar(float64(i) / float64(n))).Add(v31.MulScalar(float64(j) / float64(n)))
				grid[i] = append(grid[i], w.Add(pt))
			}
		}
		for i := 0; i < n; i++ {
			for j := 0; i+j < n; j++ {
				faces = append(faces, []int{grid[i][j], grid[i+1][j], grid[i][j+1]})
			}
		}
		for i := 1; i < n; i++ {
			for j := 0; i+j < n; j++ {
				faces = append(faces, []int{grid[i][j], grid[i][j+1], grid[i-1][j+1]})
			}
		}
	}

	name := fmt.Sprintf("u%d%s", n, p.Name)
	return mesh.New(name, w.Points(), faces), nil, nil
}
