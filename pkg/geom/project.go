package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"honnef.co/go/curve"
)

// binormalEpsilon is the smallest |n × ĉ| accepted as a projection axis.
const binormalEpsilon = 1e-6

// Project2D maps the vertices of a face into the face plane. The first axis
// is the binormal n × ĉ (face normal crossed with the unit centroid); when
// the centroid is parallel to the normal, as it is for a centered regular
// face, the first usable edge direction is taken instead. The second axis
// completes a right-handed frame with the normal, so a face wound
// counter-clockwise about its Newell normal projects counter-clockwise.
// Coordinates are relative to the first vertex.
func Project2D(pts []v3.Vec) []curve.Point {
	out := make([]curve.Point, len(pts))
	if len(pts) == 0 {
		return out
	}
	n := Normal(pts)
	u := n.Cross(Unit(Centroid(pts)))
	if u.Length() < binormalEpsilon {
		u = v3.Vec{}
		for i := range pts {
			e := pts[(i+1)%len(pts)].Sub(pts[i])
			e = e.Sub(n.MulScalar(e.Dot(n)))
			if e.Length() > Epsilon {
				u = e
				break
			}
		}
	}
	u = Unit(u)
	w := n.Cross(u)

	origin := pts[0]
	for i, p := range pts {
		d := p.Sub(origin)
		out[i] = curve.Pt(d.Dot(u), d.Dot(w))
	}
	return out
}

// Bounds returns the axis-aligned bounding box of pts. An empty input gives
// the zero box.
func Bounds(pts []v3.Vec) sdf.Box3 {
	if len(pts) == 0 {
		return sdf.Box3{}
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = v3.Vec{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = v3.Vec{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}
	return sdf.Box3{Min: lo, Max: hi}
}
