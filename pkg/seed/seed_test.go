package seed_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/conway/pkg/mesh"
	"github.com/chazu/conway/pkg/seed"
)

func mustSeed(t *testing.T, name string, n int) *mesh.Polyhedron {
	t.Helper()
	p, err := seed.ByName(name, n)
	require.NoError(t, err, "seed %s %d", name, n)
	return p
}

func TestSeedCounts(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		label   string
		v, e, f int
	}{
		{"tetrahedron", 0, "T", 4, 6, 4},
		{"cube", 0, "C", 8, 12, 6},
		{"octahedron", 0, "O", 6, 12, 8},
		{"icosahedron", 0, "I", 12, 30, 20},
		{"dodecahedron", 0, "D", 20, 30, 12},
		{"prism", 5, "P5", 10, 15, 7},
		{"antiprism", 4, "A4", 8, 16, 10},
		{"pyramid", 6, "Y6", 7, 12, 7},
		{"cupola", 3, "U3", 9, 15, 8},
		{"cupola", 5, "U5", 15, 25, 12},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			p := mustSeed(t, tt.name, tt.n)
			assert.Equal(t, tt.label, p.Name)
			assert.Equal(t, tt.v, p.VertexCount(), "vertices")
			assert.Equal(t, tt.e, p.EdgeCount(), "edges")
			assert.Equal(t, tt.f, p.FaceCount(), "faces")

			r := p.Validate()
			assert.Empty(t, r.Errors)
			assert.Empty(t, r.Warnings)
		})
	}
}

func TestSeedsFaceOutward(t *testing.T) {
	for _, name := range []string{"T", "C", "O", "I", "D", "P", "A", "Y", "U"} {
		p := mustSeed(t, name, 5)
		centers := p.Centers()
		for i, n := range p.Normals() {
			assert.Greater(t, n.Dot(centers[i]), 0.0, "%s face %d points inward", p.Name, i)
		}
	}
}

func TestPlatonicEdgesTangent(t *testing.T) {
	for _, p := range []*mesh.Polyhedron{seed.Tetrahedron(), seed.Cube(), seed.Octahedron()} {
		for i, d := range p.EdgeDistances() {
			assert.InDelta(t, 1.0, d, 1e-12, "%s edge %d", p.Name, i)
		}
	}
}

func TestIcosahedronOnUnitSphere(t *testing.T) {
	p := seed.Icosahedron()
	for i, v := range p.Vertices {
		assert.InDelta(t, 1.0, v.Length(), 1e-12, "vertex %d", i)
	}
	assert.InDelta(t, 1.0514622242382672, p.MinEdgeLength(), 1e-9)
}

func TestByNameErrors(t *testing.T) {
	_, err := seed.ByName("klein bottle", 0)
	assert.True(t, errors.Is(err, seed.ErrUnknownSeed), "got %v", err)

	for _, name := range []string{"prism", "antiprism", "pyramid", "cupola"} {
		_, err := seed.ByName(name, 2)
		assert.True(t, errors.Is(err, seed.ErrSides), "%s: got %v", name, err)
	}
}
