package geom

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(x, y, z float64) v3.Vec { return v3.Vec{X: x, Y: y, Z: z} }

func assertVecNear(t *testing.T, want, got v3.Vec, tol float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "X of %v", got)
	assert.InDelta(t, want.Y, got.Y, tol, "Y of %v", got)
	assert.InDelta(t, want.Z, got.Z, tol, "Z of %v", got)
}

func TestUnit(t *testing.T) {
	assertVecNear(t, vec(0.6, 0.8, 0), Unit(vec(3, 4, 0)), 1e-12)

	t.Run("zero vector stays zero", func(t *testing.T) {
		got := Unit(v3.Vec{})
		assert.Equal(t, v3.Vec{}, got)
		assert.False(t, math.IsNaN(got.X))
	})

	t.Run("checked variant reports degenerate", func(t *testing.T) {
		_, err := UnitChecked(v3.Vec{})
		require.ErrorIs(t, err, ErrDegenerate)

		u, err := UnitChecked(vec(0, 0, 2))
		require.NoError(t, err)
		assertVecNear(t, vec(0, 0, 1), u, 1e-12)
	})
}

func TestInterpolation(t *testing.T) {
	a, b := vec(0, 0, 0), vec(3, 6, 9)
	assertVecNear(t, vec(1.5, 3, 4.5), Midpoint(a, b), 1e-12)
	assertVecNear(t, vec(1, 2, 3), OneThird(a, b), 1e-12)
	assertVecNear(t, a, Tween(a, b, 0), 1e-12)
	assertVecNear(t, b, Tween(a, b, 1), 1e-12)
}

func TestReciprocal(t *testing.T) {
	assertVecNear(t, vec(0.5, 0, 0), Reciprocal(vec(2, 0, 0)), 1e-12)
	assert.Equal(t, v3.Vec{}, Reciprocal(v3.Vec{}))
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, v3.Vec{}, Centroid(nil))
	assertVecNear(t, vec(1, 1, 0), Centroid([]v3.Vec{vec(0, 0, 0), vec(2, 0, 0), vec(2, 2, 0), vec(0, 2, 0)}), 1e-12)
}

func TestNormal(t *testing.T) {
	square := []v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(0, 1, 0)}
	assertVecNear(t, vec(0, 0, 1), Normal(square), 1e-12)

	reversed := []v3.Vec{square[3], square[2], square[1], square[0]}
	assertVecNear(t, vec(0, 0, -1), Normal(reversed), 1e-12)

	t.Run("mildly non-planar quad", func(t *testing.T) {
		warped := []v3.Vec{vec(0, 0, 0.01), vec(1, 0, -0.01), vec(1, 1, 0.01), vec(0, 1, -0.01)}
		n := Normal(warped)
		assert.InDelta(t, 1.0, n.Z, 1e-3)
	})

	t.Run("collinear points", func(t *testing.T) {
		line := []v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(2, 0, 0)}
		assert.Equal(t, v3.Vec{}, Normal(line))
	})
}

func TestPlanarArea(t *testing.T) {
	square := []v3.Vec{vec(0, 0, 5), vec(2, 0, 5), vec(2, 2, 5), vec(0, 2, 5)}
	assert.InDelta(t, 4.0, PlanarArea(square), 1e-12)

	tri := []v3.Vec{vec(0, 0, 0), vec(0, 3, 0), vec(0, 0, 4)}
	assert.InDelta(t, 6.0, PlanarArea(tri), 1e-12)
}

func TestPointSegmentDist2(t *testing.T) {
	a, b := vec(0, 0, 0), vec(2, 0, 0)
	tests := []struct {
		name string
		p    v3.Vec
		want float64
	}{
		{"above middle", vec(1, 1, 0), 1},
		{"before start", vec(-1, 0, 0), 1},
		{"past end", vec(3, 0, 1), 2},
		{"on segment", vec(1.5, 0, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PointSegmentDist2(tt.p, a, b), 1e-12)
		})
	}
	assert.InDelta(t, 2.0, PointSegmentDist2(vec(1, 1, 0), vec(0, 0, 0), vec(0, 0, 0)), 1e-12)
}

func TestTangentPoint(t *testing.T) {
	got := TangentPoint(vec(-1, 1, 0), vec(1, 1, 0))
	assertVecNear(t, vec(0, 1, 0), got, 1e-12)
	assert.InDelta(t, 1.0, EdgeDist(vec(-1, 1, 0), vec(5, 1, 0)), 1e-12)

	same := vec(2, 2, 2)
	assert.Equal(t, same, TangentPoint(same, same))
}

func TestFaceSignature(t *testing.T) {
	tri := []v3.Vec{vec(0, 0, 0), vec(1, 0, 0), vec(0, 2, 0)}
	mirrored := []v3.Vec{vec(0, 0, 0), vec(0, 2, 0), vec(1, 0, 0)}
	moved := []v3.Vec{vec(5, 5, 5), vec(6, 5, 5), vec(5, 7, 5)}
	other := []v3.Vec{vec(0, 0, 0), vec(3, 0, 0), vec(0, 1, 0)}

	sig := FaceSignature(tri, 3)
	assert.NotEmpty(t, sig)
	assert.Equal(t, sig, FaceSignature(mirrored, 3))
	assert.Equal(t, sig, FaceSignature(moved, 3))
	assert.NotEqual(t, sig, FaceSignature(other, 3))
	assert.Empty(t, FaceSignature(tri[:2], 3))
}

func TestProject2DPreservesShape(t *testing.T) {
	// A regular pentagon centered on the z axis hits the binormal fallback.
	var pent []v3.Vec
	for i := 0; i < 5; i++ {
		a := 2 * math.Pi * float64(i) / 5
		pent = append(pent, vec(math.Cos(a), math.Sin(a), 1))
	}
	pts := Project2D(pent)
	require.Len(t, pts, 5)
	for i := range pent {
		j := (i + 1) % len(pent)
		want := pent[j].Sub(pent[i]).Length()
		got := pts[j].Distance(pts[i])
		assert.InDelta(t, want, got, 1e-9)
	}

	var area float64
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	assert.Greater(t, area, 0.0, "face wound about its normal should project counter-clockwise")
}

func TestBounds(t *testing.T) {
	box := Bounds([]v3.Vec{vec(1, -2, 3), vec(-1, 2, 0), vec(0, 0, 5)})
	assert.Equal(t, vec(-1, -2, 0), box.Min)
	assert.Equal(t, vec(1, 2, 5), box.Max)
}
