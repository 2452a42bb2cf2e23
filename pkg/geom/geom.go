// Package geom holds the vector helpers the polyhedron operators are built
// on. Points and vectors are sdfx v3.Vec values; everything here is a pure
// function over its inputs.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"
)

// ErrDegenerate is returned by the checked helpers when a vector has no
// usable direction (zero length or NaN).
var ErrDegenerate = errors.New("geom: degenerate vector")

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-12

// Unit returns v scaled to length 1. A zero-length vector returns the zero
// vector rather than NaN components.
func Unit(v v3.Vec) v3.Vec {
	l := v.Length()
	if l < Epsilon || math.IsNaN(l) {
		return v3.Vec{}
	}
	return v.DivScalar(l)
}

// UnitChecked is Unit but reports ErrDegenerate for a zero-length input.
func UnitChecked(v v3.Vec) (v3.Vec, error) {
	l := v.Length()
	if l < Epsilon || math.IsNaN(l) {
		return v3.Vec{}, errors.Wrapf(ErrDegenerate, "normalize %v", v)
	}
	return v.DivScalar(l), nil
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b v3.Vec) v3.Vec {
	return a.Add(b).MulScalar(0.5)
}

// Tween interpolates linearly: t=0 gives a, t=1 gives b.
func Tween(a, b v3.Vec, t float64) v3.Vec {
	return a.MulScalar(1 - t).Add(b.MulScalar(t))
}

// OneThird returns the point one third of the way from a toward b.
func OneThird(a, b v3.Vec) v3.Vec {
	return Tween(a, b, 1.0/3.0)
}

// Reciprocal inverts v through the unit sphere: v/|v|².
// The zero vector maps to itself.
func Reciprocal(v v3.Vec) v3.Vec {
	l2 := v.Length2()
	if l2 < Epsilon*Epsilon {
		return v3.Vec{}
	}
	return v.DivScalar(l2)
}

// Centroid returns the arithmetic mean of pts, or the origin for no points.
func Centroid(pts []v3.Vec) v3.Vec {
	var c v3.Vec
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.DivScalar(float64(len(pts)))
}

// Orthogonal returns (b-a)×(c-b), the turn at b of the path a→b→c.
func Orthogonal(a, b, c v3.Vec) v3.Vec {
	return b.Sub(a).Cross(c.Sub(b))
}

// RawNormal sums Orthogonal over every cyclic triple of the polygon, starting
// with the window formed by the last two vertices. The result is not
// normalized.
func RawNormal(pts []v3.Vec) v3.Vec {
	var n v3.Vec
	if len(pts) < 3 {
		return n
	}
	v1, v2 := pts[len(pts)-2], pts[len(pts)-1]
	for _, v := range pts {
		n = n.Add(Orthogonal(v1, v2, v))
		v1, v2 = v2, v
	}
	return n
}

// Normal is the unit Newell normal of a polygon. It tolerates mildly
// non-planar faces. Degenerate polygons give the zero vector.
func Normal(pts []v3.Vec) v3.Vec {
	return Unit(RawNormal(pts))
}

// PlanarArea returns the area of a planar polygon.
func PlanarArea(pts []v3.Vec) float64 {
	if len(pts) < 3 {
		return 0
	}
	var sum v3.Vec
	v2 := pts[len(pts)-1]
	for _, v := range pts {
		sum = sum.Add(v2.Cross(v))
		v2 = v
	}
	return math.Abs(Normal(pts).Dot(sum)) / 2
}

// PointSegmentDist2 returns the squared distance from p to the closed
// segment ab.
func PointSegmentDist2(p, a, b v3.Vec) float64 {
	ab := b.Sub(a)
	l2 := ab.Length2()
	if l2 < Epsilon*Epsilon {
		return p.Sub(a).Length2()
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t <= 0:
		return p.Sub(a).Length2()
	case t >= 1:
		return p.Sub(b).Length2()
	}
	return p.Sub(a.Add(ab.MulScalar(t))).Length2()
}

// TangentPoint returns the point of the infinite line through a and b that
// lies closest to the origin. If a and b coincide, a is returned.
func TangentPoint(a, b v3.Vec) v3.Vec {
	d := b.Sub(a)
	l2 := d.Length2()
	if l2 < Epsilon*Epsilon {
		return a
	}
	return a.Sub(d.MulScalar(d.Dot(a) / l2))
}

// EdgeDist is the distance from the origin to the line through a and b.
func EdgeDist(a, b v3.Vec) float64 {
	return TangentPoint(a, b).Length()
}
