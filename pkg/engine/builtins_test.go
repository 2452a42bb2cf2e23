package engine

import (
	"strings"
	"testing"

	"github.com/chazu/conway/pkg/config"
	"github.com/chazu/conway/pkg/mesh"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(kis p :n 4)`,
			expect: `(kis p "__kw_n" 4)`,
		},
		{
			name:   "multiple keywords",
			input:  `(canonicalize p :tangent 0.2 :planar 0.1)`,
			expect: `(canonicalize p "__kw_tangent" 0.2 "__kw_planar" 0.1)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(canonical-xyz p)`,
			expect: `(canonical_xyz p)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "exponent preserved",
			input:  `:threshold 1e-8`,
			expect: `"__kw_threshold" 1e-8`,
		},
		{
			name:   "recipe string preserved",
			input:  `(recipe "k-C")`,
			expect: `(recipe "k-C")`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:solid-cells`,
			expect: `"__kw_solid-cells"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// evalPoly evaluates source and fails unless it yields a polyhedron
// without errors.
func evalPoly(t *testing.T, eng *Engine, source string) (*mesh.Polyhedron, []EvalWarning) {
	t.Helper()
	res, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(res.Errors) > 0 {
		t.Fatalf("eval errors: %v", res.Errors)
	}
	if res.Poly == nil {
		t.Fatal("expected a polyhedron")
	}
	if r := res.Poly.Validate(); !r.OK() {
		t.Fatalf("invalid polyhedron %q: %v", res.Poly.Name, r)
	}
	return res.Poly, res.Warnings
}

// evalFails evaluates source and fails unless it yields an eval error.
func evalFails(t *testing.T, eng *Engine, source string) []EvalError {
	t.Helper()
	res, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if len(res.Errors) == 0 {
		t.Fatalf("expected an eval error for %q", source)
	}
	if res.Errors[0].Message == "" {
		t.Error("eval error should have a non-empty message")
	}
	return res.Errors
}

// ---------------------------------------------------------------------------
// Seed tests
// ---------------------------------------------------------------------------

func TestSeeds(t *testing.T) {
	eng := NewEngine()

	tests := []struct {
		source string
		v, f   int
	}{
		{"(tetrahedron)", 4, 4},
		{"(cube)", 8, 6},
		{"(octahedron)", 6, 8},
		{"(icosahedron)", 12, 20},
		{"(dodecahedron)", 20, 12},
		{"(prism 5)", 10, 7},
		{"(antiprism 4)", 8, 10},
		{"(pyramid 6)", 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			p, _ := evalPoly(t, eng, tt.source)
			if p.VertexCount() != tt.v {
				t.Errorf("vertices = %d, want %d", p.VertexCount(), tt.v)
			}
			if p.FaceCount() != tt.f {
				t.Errorf("faces = %d, want %d", p.FaceCount(), tt.f)
			}
		})
	}
}

func TestGenericSeed(t *testing.T) {
	eng := NewEngine()

	p, _ := evalPoly(t, eng, "(seed :prism 5)")
	if p.FaceCount() != 7 {
		t.Errorf("prism: faces = %d, want 7", p.FaceCount())
	}
	p, _ = evalPoly(t, eng, `(seed "D")`)
	if p.FaceCount() != 12 {
		t.Errorf("dodecahedron: faces = %d, want 12", p.FaceCount())
	}
	evalFails(t, eng, "(seed :torus)")
	evalFails(t, eng, "(seed 5)")
}

func TestSeedArgumentErrors(t *testing.T) {
	eng := NewEngine()
	for _, src := range []string{
		"(cube 3)",
		"(prism)",
		"(prism 2.5)",
		"(prism 2)",
		`(prism "five")`,
	} {
		t.Run(src, func(t *testing.T) {
			evalFails(t, eng, src)
		})
	}
}

// ---------------------------------------------------------------------------
// Operator tests
// ---------------------------------------------------------------------------

func TestOperatorBuiltins(t *testing.T) {
	eng := NewEngine()

	tests := []struct {
		source string
		v, f   int
	}{
		{"(kis (cube))", 14, 24},
		{"(kis (cube) 4)", 14, 24},
		{"(kis (cube) :n 4 :apex 0.2)", 14, 24},
		{"(dual (cube))", 6, 8},
		{"(ambo (cube))", 12, 14},
		{"(truncate (tetrahedron))", 12, 8},
		{"(dual (dual (icosahedron)))", 12, 20},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			p, ws := evalPoly(t, eng, tt.source)
			if len(ws) > 0 {
				t.Errorf("unexpected warnings: %v", ws)
			}
			if p.VertexCount() != tt.v {
				t.Errorf("vertices = %d, want %d", p.VertexCount(), tt.v)
			}
			if p.FaceCount() != tt.f {
				t.Errorf("faces = %d, want %d", p.FaceCount(), tt.f)
			}
		})
	}
}

func TestOperatorVariableReference(t *testing.T) {
	eng := NewEngine()

	source := `
(def base (cube))
(def sides 4)
(ambo (kis base sides))
`
	p, _ := evalPoly(t, eng, source)
	if p.FaceCount() != 14+24 {
		t.Errorf("faces = %d, want %d", p.FaceCount(), 14+24)
	}
}

func TestOperatorNoMatchWarning(t *testing.T) {
	eng := NewEngine()

	p, ws := evalPoly(t, eng, "(kis (cube) :n 5)")
	if len(ws) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(ws), ws)
	}
	if !strings.Contains(ws[0].Message, "5-sided") {
		t.Errorf("warning = %q, want mention of 5-sided faces", ws[0].Message)
	}
	if p.FaceCount() != 6 {
		t.Errorf("faces = %d, want cube unchanged", p.FaceCount())
	}
}

func TestOperatorArgumentErrors(t *testing.T) {
	eng := NewEngine()
	for _, src := range []string{
		"(kis)",
		"(kis 3)",
		"(kis (cube) 1 2 3)",
		"(kis (cube) :bogus 1)",
		`(kis (cube) :apex "high")`,
		"(dual (cube) 1)",
		"(ambo (cube) :n 4)",
	} {
		t.Run(src, func(t *testing.T) {
			evalFails(t, eng, src)
		})
	}
}

func TestOperatorConfigDefaults(t *testing.T) {
	plain, _ := evalPoly(t, NewEngine(), "(kis (cube))")

	cfg := config.Default()
	cfg.Operators = map[string][]float64{"kis": {0, 0.5}}
	tall, _ := evalPoly(t, NewEngine(WithConfig(cfg)), "(kis (cube))")

	if plain.VertexCount() != tall.VertexCount() {
		t.Fatalf("vertex counts differ: %d vs %d", plain.VertexCount(), tall.VertexCount())
	}
	same := true
	for i := range plain.Vertices {
		if plain.Vertices[i] != tall.Vertices[i] {
			same = false
		}
	}
	if same {
		t.Error("config apex override had no effect")
	}

	// An explicit argument beats the config.
	explicit, _ := evalPoly(t, NewEngine(WithConfig(cfg)), "(kis (cube) :apex 0.1)")
	for i := range plain.Vertices {
		if plain.Vertices[i] != explicit.Vertices[i] {
			t.Fatalf("vertex %d: explicit apex should match the default", i)
		}
	}
}

// ---------------------------------------------------------------------------
// Recipe tests
// ---------------------------------------------------------------------------

func TestRecipe(t *testing.T) {
	eng := NewEngine()

	p, _ := evalPoly(t, eng, `(recipe "dC")`)
	if p.VertexCount() != 6 || p.FaceCount() != 8 {
		t.Errorf("dC: got V=%d F=%d, want V=6 F=8", p.VertexCount(), p.FaceCount())
	}
	if p.Name != "dC" {
		t.Errorf("name = %q, want dC", p.Name)
	}

	p, _ = evalPoly(t, eng, `(recipe "P5")`)
	if p.FaceCount() != 7 {
		t.Errorf("P5: faces = %d, want 7", p.FaceCount())
	}
}

func TestRecipeWarnings(t *testing.T) {
	eng := NewEngine()

	_, ws := evalPoly(t, eng, `(recipe "k5C")`)
	if len(ws) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(ws), ws)
	}
	if ws[0].Op == "" {
		t.Error("warning should name its operator")
	}
}

func TestRecipeErrors(t *testing.T) {
	eng := NewEngine()
	for _, src := range []string{
		`(recipe "")`,
		`(recipe "fC")`,
		`(recipe "kZ")`,
		`(recipe 4)`,
		`(recipe)`,
	} {
		t.Run(src, func(t *testing.T) {
			evalFails(t, eng, src)
		})
	}
}

// ---------------------------------------------------------------------------
// Relaxation and cleanup tests
// ---------------------------------------------------------------------------

func TestCanonicalize(t *testing.T) {
	eng := NewEngine()

	p, ws := evalPoly(t, eng, "(canonicalize (cube))")
	if len(ws) > 0 {
		t.Errorf("cube should converge without warnings, got %v", ws)
	}
	if p.VertexCount() != 8 {
		t.Errorf("vertices = %d, want 8", p.VertexCount())
	}

	_, ws = evalPoly(t, eng, "(canonicalize (kis (dodecahedron)) 1 :threshold 1e-30)")
	if len(ws) != 1 || ws[0].Op != "canonicalize" {
		t.Errorf("expected one canonicalize warning, got %v", ws)
	}

	evalFails(t, eng, `(canonicalize (cube) :tangent "x")`)
	evalFails(t, eng, "(canonicalize 5)")
}

func TestCanonicalizeDefaultsToOneIteration(t *testing.T) {
	eng := NewEngine()
	_, ws := evalPoly(t, eng, "(canonicalize (kis (dodecahedron)) :threshold 1e-30)")
	if len(ws) != 1 || !strings.Contains(ws[0].Message, "after 1 iterations") {
		t.Errorf("expected a single pass, got %v", ws)
	}

	cfg := config.Default()
	cfg.CanonicalIterations = 3
	eng = NewEngine(WithConfig(cfg))
	_, ws = evalPoly(t, eng, "(canonicalize (kis (dodecahedron)) :threshold 1e-30)")
	if len(ws) != 1 || !strings.Contains(ws[0].Message, "after 3 iterations") {
		t.Errorf("expected three passes from config, got %v", ws)
	}
}

func TestCleanupBuiltins(t *testing.T) {
	eng := NewEngine()
	for _, src := range []string{
		"(adjust (cube))",
		"(adjust (cube) 2)",
		"(canonical-xyz (octahedron) 3)",
		"(spherize (prism 6))",
		"(rescale (kis (cube)))",
		"(recenter (cube))",
	} {
		t.Run(src, func(t *testing.T) {
			evalPoly(t, eng, src)
		})
	}
	evalFails(t, eng, "(spherize)")
	evalFails(t, eng, "(adjust (cube) 1.5)")
}

func TestTriangulateBuiltin(t *testing.T) {
	eng := NewEngine()

	p, ws := evalPoly(t, eng, "(triangulate (cube))")
	if len(ws) > 0 {
		t.Errorf("unexpected warnings: %v", ws)
	}
	if p.FaceCount() != 12 {
		t.Errorf("faces = %d, want 12", p.FaceCount())
	}
	for i, f := range p.Faces {
		if len(f) != 3 {
			t.Fatalf("face %d has %d vertices", i, len(f))
		}
	}
}

func TestCountBuiltins(t *testing.T) {
	eng := NewEngine()
	source := `
(def p (ambo (cube)))
(if (and (== (vertex-count p) 12) (== (edge-count p) 24) (== (face-count p) 14))
  p
  (cube))
`
	p, _ := evalPoly(t, eng, source)
	if p.FaceCount() != 14 {
		t.Errorf("count builtins disagree with the cuboctahedron: got %d faces", p.FaceCount())
	}
}

// ---------------------------------------------------------------------------
// Solid kernel tests
// ---------------------------------------------------------------------------

func TestSolidSeed(t *testing.T) {
	eng := NewEngine()

	p, _ := evalPoly(t, eng, "(solid (box 2 2 2) :cells 8)")
	if p.FaceCount() == 0 {
		t.Fatal("expected faces from the sampled box")
	}
	for i, f := range p.Faces {
		if len(f) != 3 {
			t.Fatalf("face %d has %d vertices", i, len(f))
		}
	}
}

func TestSolidBooleans(t *testing.T) {
	eng := NewEngine()

	source := `
(def body (box 4 4 4))
(def hole (rotate (cylinder 8 1 :segments 24) 90 0 0))
(solid (difference body (translate hole 0 0 0)) :cells 16)
`
	holed, _ := evalPoly(t, eng, source)
	plain, _ := evalPoly(t, eng, "(solid (box 4 4 4) :cells 16)")
	if holed.FaceCount() <= plain.FaceCount() {
		t.Errorf("drilled box has %d faces, plain box %d", holed.FaceCount(), plain.FaceCount())
	}

	evalPoly(t, eng, "(solid (union (box 1 1 1) (translate (box 1 1 1) 0.5 0 0)) :cells 8)")
	evalPoly(t, eng, "(solid (intersection (box 2 2 2) (cylinder 2 1)) :cells 8)")
}

func TestSolidErrors(t *testing.T) {
	eng := NewEngine()
	for _, src := range []string{
		"(box 1 2)",
		"(cylinder 1)",
		"(union (box 1 1 1))",
		"(union (box 1 1 1) (cube))",
		"(translate (box 1 1 1) 1 2)",
		"(solid (cube))",
		"(solid (box 1 1 1) :cells 2.5)",
	} {
		t.Run(src, func(t *testing.T) {
			evalFails(t, eng, src)
		})
	}
}
