package flag

import (
	"errors"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/google/go-cmp/cmp"
)

const (
	tagV Tag = iota + 1
	tagF
)

func v(i int) Sym { return S(tagV, i) }
func f(i int) Sym { return S(tagF, i) }

// dihedron declares a face over vertices 0,1,2 and its reverse as
// face 1, giving a closed two-faced surface.
func dihedron(b *Builder) {
	for i := 0; i < 3; i++ {
		b.Vertex(v(i), v3.Vec{X: float64(i)})
	}
	b.Edge(f(0), v(0), v(1))
	b.Edge(f(0), v(1), v(2))
	b.Edge(f(0), v(2), v(0))
	b.Edge(f(1), v(2), v(1))
	b.Edge(f(1), v(1), v(0))
	b.Edge(f(1), v(0), v(2))
}

func TestResolveDihedron(t *testing.T) {
	b := NewBuilder()
	dihedron(b)
	p, err := b.Resolve("D2")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := [][]int{{0, 1, 2}, {2, 1, 0}}
	if diff := cmp.Diff(want, p.Faces); diff != "" {
		t.Errorf("faces mismatch (-want +got):\n%s", diff)
	}
	if p.Name != "D2" {
		t.Errorf("Name = %q", p.Name)
	}
	if got := b.VertexCount(); got != 3 {
		t.Errorf("VertexCount() = %d, want 3", got)
	}
	if got := b.FaceCount(); got != 2 {
		t.Errorf("FaceCount() = %d, want 2", got)
	}
	if diff := cmp.Diff([]Sym{f(0), f(1)}, b.FaceSymbols()); diff != "" {
		t.Errorf("FaceSymbols mismatch:\n%s", diff)
	}
}

func TestFirstVertexDeclarationWins(t *testing.T) {
	b := NewBuilder()
	b.Vertex(v(7), v3.Vec{X: 1})
	b.Vertex(v(3), v3.Vec{Y: 1})
	b.Vertex(v(7), v3.Vec{X: 99})
	if !b.HasVertex(v(7)) || b.HasVertex(v(8)) {
		t.Fatal("HasVertex disagrees with declarations")
	}
	b.Edge(f(0), v(3), v(7))
	b.Edge(f(0), v(7), v(3))
	p, err := b.Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	// v7 was declared first, so it is vertex 0 and keeps X=1.
	if got := p.Vertices[0]; got != (v3.Vec{X: 1}) {
		t.Errorf("vertex 0 = %v, want first-declared coordinate", got)
	}
	if got := p.Vertices[1]; got != (v3.Vec{Y: 1}) {
		t.Errorf("vertex 1 = %v", got)
	}
	if diff := cmp.Diff([][]int{{1, 0}}, p.Faces); diff != "" {
		t.Errorf("faces mismatch:\n%s", diff)
	}
}

func TestEdgeOverwritesSuccessor(t *testing.T) {
	b := NewBuilder()
	dihedron(b)
	b.Vertex(v(3), v3.Vec{Z: 1})
	// Reroute face 0 through v3: 0 -> 3 -> 1.
	b.Edge(f(0), v(0), v(3))
	b.Edge(f(0), v(3), v(1))
	p, err := b.Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if diff := cmp.Diff([]int{0, 3, 1, 2}, p.Faces[0]); diff != "" {
		t.Errorf("face 0 mismatch:\n%s", diff)
	}
}

func TestResolveTopologyErrors(t *testing.T) {
	tests := []struct {
		name       string
		build      func(b *Builder)
		undeclared bool
	}{
		{
			name: "open chain",
			build: func(b *Builder) {
				b.Edge(f(5), v(0), v(1))
				b.Edge(f(5), v(1), v(2))
			},
		},
		{
			name: "loop not through start",
			build: func(b *Builder) {
				b.Edge(f(5), v(0), v(1))
				b.Edge(f(5), v(1), v(2))
				b.Edge(f(5), v(2), v(1))
			},
		},
		{
			name: "two disjoint cycles",
			build: func(b *Builder) {
				b.Vertex(v(3), v3.Vec{})
				b.Vertex(v(4), v3.Vec{})
				b.Edge(f(5), v(0), v(1))
				b.Edge(f(5), v(1), v(0))
				b.Edge(f(5), v(3), v(4))
				b.Edge(f(5), v(4), v(3))
			},
		},
		{
			name: "undeclared vertex",
			build: func(b *Builder) {
				b.Edge(f(5), v(0), v(9))
				b.Edge(f(5), v(9), v(0))
			},
			undeclared: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			for i := 0; i < 3; i++ {
				b.Vertex(v(i), v3.Vec{})
			}
			tt.build(b)
			p, err := b.Resolve("")
			if err == nil {
				t.Fatalf("Resolve succeeded with faces %v", p.Faces)
			}
			if !errors.Is(err, ErrTopology) {
				t.Errorf("error %v does not match ErrTopology", err)
			}
			if got := errors.Is(err, ErrUndeclaredVertex); got != tt.undeclared {
				t.Errorf("errors.Is(err, ErrUndeclaredVertex) = %v, want %v", got, tt.undeclared)
			}
			var te *TopologyError
			if !errors.As(err, &te) {
				t.Fatalf("error %T is not a *TopologyError", err)
			}
			if te.Face != f(5) {
				t.Errorf("TopologyError.Face = %v, want %v", te.Face, f(5))
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	var first [][]int
	for run := 0; run < 5; run++ {
		b := NewBuilder()
		dihedron(b)
		p, err := b.Resolve("")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if run == 0 {
			first = p.Faces
			continue
		}
		if diff := cmp.Diff(first, p.Faces); diff != "" {
			t.Fatalf("run %d differs:\n%s", run, diff)
		}
	}
}

func TestSymConstructor(t *testing.T) {
	if got := S(tagV, 1, 2, 3); got != (Sym{Tag: tagV, A: 1, B: 2, C: 3}) {
		t.Errorf("S(...) = %v", got)
	}
	if got := S(tagF); got != (Sym{Tag: tagF}) {
		t.Errorf("S(tag) = %v", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("S with four indices did not panic")
		}
	}()
	_ = S(tagV, 1, 2, 3, 4)
}
