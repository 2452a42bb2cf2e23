package seed

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/chazu/conway/pkg/mesh"
)

// Names lists the seeds ByName accepts. Entries marked with n take a side
// count.
var Names = []string{
	"tetrahedron", "cube", "octahedron", "icosahedron", "dodecahedron",
	"prism n", "antiprism n", "pyramid n", "cupola n",
}

// ByName builds a seed from its name or single-letter recipe symbol
// (T, C, O, I, D, P, A, Y, U). n is ignored by the Platonic solids.
func ByName(name string, n int) (*mesh.Polyhedron, error) {
	switch strings.ToLower(name) {
	case "t", "tetrahedron":
		return Tetrahedron(), nil
	case "c", "cube":
		return Cube(), nil
	case "o", "octahedron":
		return Octahedron(), nil
	case "i", "icosahedron":
		return Icosahedron(), nil
	case "d", "dodecahedron":
		return Dodecahedron(), nil
	case "p", "prism":
		return Prism(n)
	case "a", "antiprism":
		return Antiprism(n)
	case "y", "pyramid":
		return Pyramid(n)
	case "u", "cupola":
		return Cupola(n)
	}
	return nil, errors.Wrapf(ErrUnknownSeed, "%q", name)
}
