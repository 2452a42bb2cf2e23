package tessellate

import (
	"math"

	"github.com/pkg/errors"
	"honnef.co/go/curve"
)

// ErrStalled is returned by Diagonals when no ear can be clipped, which
// happens for self-intersecting or degenerate outlines.
var ErrStalled = errors.New("tessellate: ear clipping stalled")

// polygon is the working ring of the ear clipper. prev and next link the
// vertices still in the ring; ear caches whether the triangle at a vertex
// can be clipped.
type polygon struct {
	pts        []curve.Point
	prev, next []int
	ear        []bool
	eps        float64
}

func newPolygon(pts []curve.Point) *polygon {
	n := len(pts)
	pg := &polygon{
		pts:  pts,
		prev: make([]int, n),
		next: make([]int, n),
		ear:  make([]bool, n),
	}
	for i := range pts {
		pg.prev[i] = (i + n - 1) % n
		pg.next[i] = (i + 1) % n
	}

	var minX, minY, maxX, maxY float64
	for i, p := range pts {
		if i == 0 || p.X < minX {
			minX = p.X
		}
		if i == 0 || p.Y < minY {
			minY = p.Y
		}
		if i == 0 || p.X > maxX {
			maxX = p.X
		}
		if i == 0 || p.Y > maxY {
			maxY = p.Y
		}
	}
	scale := math.Max(maxX-minX, maxY-minY)
	pg.eps = 1e-12 * scale * scale
	return pg
}

// area2 is twice the signed area of (a, b, c), positive when counter-clockwise.
func (pg *polygon) area2(a, b, c int) float64 {
	pa := pg.pts[a]
	return pg.pts[b].Sub(pa).Cross(pg.pts[c].Sub(pa))
}

func (pg *polygon) left(a, b, c int) bool {
	return pg.area2(a, b, c) > pg.eps
}

func (pg *polygon) leftOn(a, b, c int) bool {
	return pg.area2(a, b, c) > -pg.eps
}

func (pg *polygon) collinear(a, b, c int) bool {
	return math.Abs(pg.area2(a, b, c)) <= pg.eps
}

// between reports whether c lies on the closed segment ab.
func (pg *polygon) between(a, b, c int) bool {
	if !pg.collinear(a, b, c) {
		return false
	}
	pa, pb, pc := pg.pts[a], pg.pts[b], pg.pts[c]
	if math.Abs(pa.X-pb.X) >= math.Abs(pa.Y-pb.Y) {
		return (pa.X <= pc.X && pc.X <= pb.X) || (pa.X >= pc.X && pc.X >= pb.X)
	}
	return (pa.Y <= pc.Y && pc.Y <= pb.Y) || (pa.Y >= pc.Y && pc.Y >= pb.Y)
}

// intersectProp reports a proper crossing of ab and cd, one interior to
// both segments.
func (pg *polygon) intersectProp(a, b, c, d int) bool {
	if pg.collinear(a, b, c) || pg.collinear(a, b, d) ||
		pg.collinear(c, d, a) || pg.collinear(c, d, b) {
		return false
	}
	return pg.left(a, b, c) != pg.left(a, b, d) &&
		pg.left(c, d, a) != pg.left(c, d, b)
}

func (pg *polygon) intersect(a, b, c, d int) bool {
	if pg.intersectProp(a, b, c, d) {
		return true
	}
	return pg.between(a, b, c) || pg.between(a, b, d) ||
		pg.between(c, d, a) || pg.between(c, d, b)
}

// diagonalie reports whether ab crosses no ring edge that avoids both a
// and b.
func (pg *polygon) diagonalie(a, b int) bool {
	c := a
	for {
		c1 := pg.next[c]
		if c != a && c1 != a && c != b && c1 != b && pg.intersect(a, b, c, c1) {
			return false
		}
		c = c1
		if c == a {
			return true
		}
	}
}

// inCone reports whether b lies strictly inside the interior angle at a.
func (pg *polygon) inCone(a, b int) bool {
	a0, a1 := pg.prev[a], pg.next[a]
	if pg.leftOn(a, a1, a0) {
		return pg.left(a, b, a0) && pg.left(b, a, a1)
	}
	return !(pg.leftOn(a, b, a1) && pg.leftOn(b, a, a0))
}

func (pg *polygon) diagonal(a, b int) bool {
	return pg.inCone(a, b) && pg.inCone(b, a) && pg.diagonalie(a, b)
}

// Diagonals returns the chords of an ear-clipping decomposition of the
// simple polygon pts, as index pairs into pts. Either winding is accepted.
// A k-gon yields k-3 diagonals.
func Diagonals(pts []curve.Point) ([][2]int, error) {
	return diagonals(pts, 0)
}

// diagonals is Diagonals with a bound on ring steps. limit <= 0 selects
// k*k + k for a k-gon.
func diagonals(pts []curve.Point, limit int) ([][2]int, error) {
	n := len(pts)
	if n < 3 {
		return nil, errors.Errorf("tessellate: polygon with %d vertices", n)
	}
	if limit <= 0 {
		limit = n*n + n
	}

	// The predicates assume a counter-clockwise ring.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if signedArea(pts) < 0 {
		for i := range order {
			order[i] = n - 1 - i
		}
	}
	ccw := make([]curve.Point, n)
	for i, j := range order {
		ccw[i] = pts[j]
	}

	pg := newPolygon(ccw)
	for v := range ccw {
		pg.ear[v] = pg.diagonal(pg.prev[v], pg.next[v])
	}

	out := make([][2]int, 0, n-3)
	steps := 0
	v0 := 0
	for remaining := n; remaining > 3; remaining-- {
		v2 := v0
		for !pg.ear[v2] {
			v2 = pg.next[v2]
			steps++
			if v2 == v0 {
				return out, errors.Wrapf(ErrStalled, "%d of %d vertices left", remaining, n)
			}
			if steps > limit {
				return out, errors.Wrapf(ErrStalled, "step limit %d reached", limit)
			}
		}

		v1, v3 := pg.prev[v2], pg.next[v2]
		out = append(out, [2]int{order[v1], order[v3]})
		pg.next[v1] = v3
		pg.prev[v3] = v1
		pg.ear[v1] = pg.diagonal(pg.prev[v1], v3)
		pg.ear[v3] = pg.diagonal(v1, pg.next[v3])
		v0 = v3
	}
	return out, nil
}

// signedArea is twice the shoelace area of pts.
func signedArea(pts []curve.Point) float64 {
	var a float64
	prev := pts[len(pts)-1]
	for _, p := range pts {
		a += curve.Vec(prev.X, prev.Y).Cross(curve.Vec(p.X, p.Y))
		prev = p
	}
	return a
}
