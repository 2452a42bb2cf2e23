// Package kernel defines the abstract solid-modeling kernel that can seed
// operator chains with CAD shapes, and the flat Mesh handed to renderers.
// Implementations (sdfx, manifold) provide solid modeling and boolean
// operations behind this interface.
package kernel

import "github.com/chazu/conway/pkg/mesh"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// ToPolyhedron converts the solid's surface into an indexed triangle
	// polyhedron with outward faces. cells sets the sampling resolution
	// along the longest axis for kernels that sample; others ignore it.
	ToPolyhedron(s Solid, cells int) (*mesh.Polyhedron, error)
}
