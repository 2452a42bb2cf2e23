// Package flag assembles polyhedra from flags: directed half-edges tagged
// with the face they belong to.
//
// An operator declares vertices and face edges under symbolic names before
// any final vertex numbering exists, then calls Resolve. Symbols are small
// comparable structs interned to dense arena handles, so declaration and
// lookup never build strings.
//
//	b := flag.NewBuilder()
//	b.Vertex(flag.S(tagOld, i), p)
//	b.Edge(flag.S(tagFace, f), flag.S(tagOld, i), flag.S(tagOld, j))
//	poly, err := b.Resolve("dC")
//
// A Builder is used for one operator call and is not safe for concurrent
// use.
package flag

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"

	"github.com/chazu/conway/pkg/mesh"
)

var (
	// ErrTopology matches every *TopologyError.
	ErrTopology = errors.New("flag: malformed face")
	// ErrUndeclaredVertex is wrapped when a face edge names a vertex
	// symbol that was never given a coordinate.
	ErrUndeclaredVertex = errors.New("flag: undeclared vertex")
)

// Tag distinguishes families of symbols, such as "old vertex" or
// "edge midpoint". Operators define their own tag constants.
type Tag uint16

// Sym names a vertex or a face during one assembly. Unused index slots
// are zero.
type Sym struct {
	Tag     Tag
	A, B, C int
}

// S builds a symbol from a tag and up to three indices.
func S(tag Tag, idx ...int) Sym {
	s := Sym{Tag: tag}
	switch len(idx) {
	case 3:
		s.C = idx[2]
		fallthrough
	case 2:
		s.B = idx[1]
		fallthrough
	case 1:
		s.A = idx[0]
	case 0:
	default:
		panic(fmt.Sprintf("flag.S: %d indices, at most 3 allowed", len(idx)))
	}
	return s
}

func (s Sym) String() string {
	return fmt.Sprintf("%d(%d,%d,%d)", s.Tag, s.A, s.B, s.C)
}

// TopologyError reports a face whose successor map does not form a single
// closed cycle. It always matches ErrTopology.
type TopologyError struct {
	Face   Sym
	Reason string
	Err    error
}

func (e *TopologyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("flag: face %v: %s: %v", e.Face, e.Reason, e.Err)
	}
	return fmt.Sprintf("flag: face %v: %s", e.Face, e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *TopologyError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrTopology) hold for every TopologyError.
func (e *TopologyError) Is(target error) bool { return target == ErrTopology }

// face holds the successor map of one face symbol, keyed by vertex handle.
type face struct {
	sym   Sym
	first int
	next  map[int]int
}

// Builder collects vertex and edge declarations.
type Builder struct {
	handles map[Sym]int // vertex symbol -> arena handle
	syms    []Sym       // handle -> symbol
	rank    []int       // handle -> vertex id, -1 until declared
	coords  []v3.Vec    // vertex id -> coordinate

	faceIndex map[Sym]int
	faces     []*face
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		handles:   make(map[Sym]int),
		faceIndex: make(map[Sym]int),
	}
}

func (b *Builder) intern(s Sym) int {
	if h, ok := b.handles[s]; ok {
		return h
	}
	h := len(b.syms)
	b.handles[s] = h
	b.syms = append(b.syms, s)
	b.rank = append(b.rank, -1)
	return h
}

// Vertex declares a vertex. The first declaration of a symbol wins; later
// calls with the same symbol are ignored. Vertex ids follow the order of
// first declaration.
func (b *Builder) Vertex(s Sym, p v3.Vec) {
	h := b.intern(s)
	if b.rank[h] >= 0 {
		return
	}
	b.rank[h] = len(b.coords)
	b.coords = append(b.coords, p)
}

// HasVertex reports whether s has been declared.
func (b *Builder) HasVertex(s Sym) bool {
	h, ok := b.handles[s]
	return ok && b.rank[h] >= 0
}

// Edge records that inside face f the boundary runs from one vertex to
// the next. Declaring the same from twice for a face replaces its
// successor.
func (b *Builder) Edge(f, from, to Sym) {
	hf, ht := b.intern(from), b.intern(to)
	i, ok := b.faceIndex[f]
	if !ok {
		i = len(b.faces)
		b.faceIndex[f] = i
		b.faces = append(b.faces, &face{sym: f, first: hf, next: make(map[int]int)})
	}
	b.faces[i].next[hf] = ht
}

// VertexCount returns the number of declared vertices.
func (b *Builder) VertexCount() int { return len(b.coords) }

// FaceCount returns the number of distinct face symbols.
func (b *Builder) FaceCount() int { return len(b.faces) }

// FaceSymbols returns the face symbols in resolution order.
func (b *Builder) FaceSymbols() []Sym {
	out := make([]Sym, len(b.faces))
	for i, f := range b.faces {
		out[i] = f.sym
	}
	return out
}

// Resolve numbers the vertices and walks every face into an index loop.
// Faces come out in the order their symbols were first used and each loop
// starts at the first vertex declared as an edge origin of that face.
func (b *Builder) Resolve(name string) (*mesh.Polyhedron, error) {
	faces := make([][]int, 0, len(b.faces))
	for _, f := range b.faces {
		loop, err := b.walk(f)
		if err != nil {
			return nil, err
		}
		faces = append(faces, loop)
	}
	verts := make([]v3.Vec, len(b.coords))
	copy(verts, b.coords)
	return mesh.New(name, verts, faces), nil
}

func (b *Builder) walk(f *face) ([]int, error) {
	loop := make([]int, 0, len(f.next))
	cur := f.first
	for {
		id := b.rank[cur]
		if id < 0 {
			return nil, &TopologyError{
				Face:   f.sym,
				Reason: fmt.Sprintf("vertex %v", b.syms[cur]),
				Err:    ErrUndeclaredVertex,
			}
		}
		loop = append(loop, id)
		nxt, ok := f.next[cur]
		if !ok {
			return nil, &TopologyError{
				Face:   f.sym,
				Reason: fmt.Sprintf("open chain ends at vertex %v", b.syms[cur]),
			}
		}
		cur = nxt
		if cur == f.first {
			break
		}
		if len(loop) >= len(f.next) {
			return nil, &TopologyError{
				Face:   f.sym,
				Reason: fmt.Sprintf("walk from %v does not return after %d steps", b.syms[f.first], len(loop)),
			}
		}
	}
	if len(loop) != len(f.next) {
		return nil, &TopologyError{
			Face:   f.sym,
			Reason: fmt.Sprintf("cycle covers %d of %d flags", len(loop), len(f.next)),
		}
	}
	return loop, nil
}
