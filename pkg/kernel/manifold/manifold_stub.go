//go:build !manifold

// Package manifold binds the Manifold boolean library as a solid kernel.
// Without the "manifold" build tag only this fallback is compiled and
// every entry point reports ErrUnavailable.
package manifold

import (
	"github.com/pkg/errors"

	"github.com/chazu/conway/pkg/kernel"
	"github.com/chazu/conway/pkg/mesh"
)

// ErrUnavailable is returned when the package was built without cgo
// support for Manifold.
var ErrUnavailable = errors.New("manifold kernel not available: build with -tags=manifold")

// New reports ErrUnavailable.
func New() (kernel.Kernel, error) {
	return nil, ErrUnavailable
}

// ToPolyhedron reports ErrUnavailable.
func ToPolyhedron(s kernel.Solid, cells int) (*mesh.Polyhedron, error) {
	return nil, errors.Wrap(ErrUnavailable, "manifold: to polyhedron")
}
