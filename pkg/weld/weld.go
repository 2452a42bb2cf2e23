// Package weld merges points that lie within a tolerance of each other.
// It backs the subdivision operator, whose per-face grids repeat the points
// along shared edges, and the marching-cubes importer, which emits every
// triangle with its own corners.
package weld

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/dhconnelly/rtreego"
)

// DefaultEpsilon is the merge distance used by the subdivision operator.
const DefaultEpsilon = 1e-8

type entry struct {
	rect rtreego.Rect
	p    v3.Vec
	id   int
}

func (e *entry) Bounds() rtreego.Rect { return e.rect }

// Welder assigns dense ids to points, reusing the id of any earlier point
// closer than its tolerance.
type Welder struct {
	eps    float64
	tree   *rtreego.Rtree
	points []v3.Vec
}

// New returns a welder merging points closer than eps.
func New(eps float64) *Welder {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	return &Welder{eps: eps, tree: rtreego.NewTree(3, 25, 50)}
}

func point(p v3.Vec) rtreego.Point {
	return rtreego.Point{p.X, p.Y, p.Z}
}

// Add returns the id of p, allocating a new one if no earlier point lies
// within the tolerance. When several do, the lowest id wins.
func (w *Welder) Add(p v3.Vec) int {
	best := -1
	for _, s := range w.tree.SearchIntersect(point(p).ToRect(w.eps)) {
		e := s.(*entry)
		if e.p.Sub(p).Length() < w.eps && (best < 0 || e.id < best) {
			best = e.id
		}
	}
	if best >= 0 {
		return best
	}
	id := len(w.points)
	w.points = append(w.points, p)
	w.tree.Insert(&entry{rect: point(p).ToRect(w.eps / 2), p: p, id: id})
	return id
}

// Points returns the merged points indexed by id.
func (w *Welder) Points() []v3.Vec {
	return w.points
}

// Len returns the number of distinct points.
func (w *Welder) Len() int {
	return len(w.points)
}
