// Package conway implements the Conway polyhedron operators.
//
// Every operator reads one Polyhedron and returns a new one built through a
// fresh flag.Builder; the input is never modified. The result name is the
// input name prefixed with the operator letter, so "daC" reads as
// dual(ambo(cube)).
//
// Operators parameterized by a face side-count n (0 selects every face)
// also return warnings. When no face matches, the topology is returned
// unchanged with a Warning rather than an error.
package conway

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/chazu/conway/pkg/flag"
	"github.com/chazu/conway/pkg/mesh"
)

var (
	// ErrNonManifold is returned when an operator that needs edge
	// adjacency meets a directed edge used twice or an edge with no
	// opposite half-edge.
	ErrNonManifold = errors.New("conway: mesh is not an oriented manifold")
	// ErrUnknownOperator is returned by Apply for a Kind outside the
	// catalog and by Lookup for an unknown name.
	ErrUnknownOperator = errors.New("conway: unknown operator")
	// ErrNotTriangular is reported (as a Warning) by Trisub.
	ErrNotTriangular = errors.New("conway: mesh has non-triangular faces")
)

// Warning is an advisory condition that did not stop the operator.
type Warning struct {
	Op      string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Op, w.Message)
}

func noMatch(op string, n int) Warning {
	return Warning{Op: op, Message: fmt.Sprintf("no %d-sided faces found", n)}
}

// Vertex symbol tags.
const (
	tagVertex       flag.Tag = iota + 1 // original vertex A
	tagCenter                           // center of face A
	tagMid                              // midpoint of edge (A,B), A < B
	tagThird                            // point one third from A toward B
	tagFaceVertex                       // copy of vertex B owned by face A
	tagFaceVertDown                     // hollow: lowered copy of vertex B in face A
	tagDown                             // hollow: vertex A pushed along the dual normal
	tagApex                             // kis apex over face A
	tagInner                            // quinto: inner point of face A on edge (B,C)
	tagCenterThird                      // whirl: point of face A toward edge leaving B
	tagStellate                         // perspectiva: inset point of directed edge A->B
)

// Face symbol tags.
const (
	faceOrig   flag.Tag = iota + 1 // face derived from original face A
	faceCorner                     // face at corner B of original face A
	faceVertex                     // face around original vertex A
	faceEdge                       // face across edge (A,B)
	faceInner                      // inset or cap face of original face A
	faceSide                       // hollow side wall at corner B of face A
	faceBottom                     // hollow bottom at corner B of face A
)

// corners calls fn for every corner of face f with the previous vertex,
// the corner vertex and the next vertex. The walk starts at the last
// vertex so the first call sees (f[n-2], f[n-1], f[0]).
func corners(f []int, fn func(v1, v2, v3 int)) {
	if len(f) < 2 {
		return
	}
	v1, v2 := f[len(f)-2], f[len(f)-1]
	for _, v3 := range f {
		fn(v1, v2, v3)
		v1, v2 = v2, v3
	}
}

// edgesOf calls fn for every directed edge of face f, starting with the
// closing edge (f[n-1], f[0]).
func edgesOf(f []int, fn func(v1, v2 int)) {
	if len(f) == 0 {
		return
	}
	v1 := f[len(f)-1]
	for _, v2 := range f {
		fn(v1, v2)
		v1 = v2
	}
}

// matches reports whether a face of side-count size is selected by n.
func matches(size, n int) bool {
	return n == 0 || size == n
}

// selectorName builds names such as "k", "k5".
func selectorName(letter string, n int, base string) string {
	if n == 0 {
		return letter + base
	}
	return letter + strconv.Itoa(n) + base
}

func mid(a, b int) flag.Sym {
	if a > b {
		a, b = b, a
	}
	return flag.S(tagMid, a, b)
}

func vert(i int) flag.Sym { return flag.S(tagVertex, i) }

func third(a, b int) flag.Sym { return flag.S(tagThird, a, b) }

// resolve wraps flag errors with the operator name.
func resolve(b *flag.Builder, op, name string) (*mesh.Polyhedron, error) {
	p, err := b.Resolve(name)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", op)
	}
	return p, nil
}
