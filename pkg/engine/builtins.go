package engine

import (
	"fmt"
	"math"
	"slices"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/conway/pkg/canonical"
	"github.com/chazu/conway/pkg/config"
	"github.com/chazu/conway/pkg/conway"
	"github.com/chazu/conway/pkg/kernel"
	"github.com/chazu/conway/pkg/mesh"
	"github.com/chazu/conway/pkg/seed"
	"github.com/chazu/conway/pkg/tessellate"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms recipe Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: canonical-xyz -> canonical_xyz
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoly wraps a mesh.Polyhedron so it can be passed between builtins.
type sexpPoly struct {
	p *mesh.Polyhedron
}

func (s *sexpPoly) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(polyhedron %q :v %d :f %d)", s.p.Name, s.p.VertexCount(), s.p.FaceCount())
}
func (s *sexpPoly) Type() *zygo.RegisteredType { return nil }

// sexpSolid wraps a kernel.Solid so it can be combined by the CSG
// builtins and sampled by `solid`.
type sexpSolid struct {
	s kernel.Solid
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	lo, hi := s.s.BoundingBox()
	return fmt.Sprintf("(solid %.1fx%.1fx%.1f)", hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2])
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toInt extracts a whole number from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %g", f)
	}
	return int(f), nil
}

// toPoly extracts a Polyhedron from a sexpPoly.
func toPoly(s zygo.Sexp) (*mesh.Polyhedron, error) {
	if p, ok := s.(*sexpPoly); ok {
		return p.p, nil
	}
	return nil, fmt.Errorf("expected polyhedron, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts a kernel Solid from a sexpSolid.
func toSolid(s zygo.Sexp) (kernel.Solid, error) {
	if v, ok := s.(*sexpSolid); ok {
		return v.s, nil
	}
	return nil, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// floats converts every element of args to float64.
func floats(args []zygo.Sexp) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// polyArg checks that the first positional argument is a polyhedron.
func polyArg(name string, pa kwArgs) (*mesh.Polyhedron, error) {
	if len(pa.positional) < 1 {
		return nil, fmt.Errorf("%s requires a polyhedron as first argument", name)
	}
	p, err := toPoly(pa.positional[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// intKW reads an optional integer keyword, falling back to def.
func intKW(name, key string, pa kwArgs, def int) (int, error) {
	v, ok := pa.kw[key]
	if !ok {
		return def, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", name, key, err)
	}
	return n, nil
}

// floatKW reads an optional numeric keyword, falling back to def.
func floatKW(name, key string, pa kwArgs, def float64) (float64, error) {
	v, ok := pa.kw[key]
	if !ok {
		return def, nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %s: %w", name, key, err)
	}
	return f, nil
}

// ---------------------------------------------------------------------------
// Evaluation state
// ---------------------------------------------------------------------------

// DefaultCanonicalIterations is the number of passes `canonicalize` runs
// when neither the call nor the config gives a count.
const DefaultCanonicalIterations = 1

// evalState is shared by the builtins of one evaluation.
type evalState struct {
	cfg      config.Config
	kernel   kernel.Kernel
	warnings []EvalWarning
}

func (st *evalState) warn(ws []conway.Warning) {
	for _, w := range ws {
		st.warnings = append(st.warnings, EvalWarning{Message: w.String(), Op: w.Op})
	}
}

// run applies ops to p with config defaults filled in.
func (st *evalState) run(p *mesh.Polyhedron, ops []conway.Op) (*mesh.Polyhedron, error) {
	filled := make([]conway.Op, len(ops))
	for i, op := range ops {
		filled[i] = conway.Op{Kind: op.Kind, Args: st.cfg.Args(op.Kind, op.Args)}
	}
	q, ws, err := conway.Pipeline{Ops: filled}.Run(p)
	st.warn(ws)
	return q, err
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all recipe builtins into a zygomys environment.
// Warnings raised by operators are collected on st.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, st *evalState) {
	registerSeeds(env)
	registerOperators(env, st)
	registerRelax(env, st)
	registerQueries(env)
	registerSolids(env, st)
}

// registerSeeds installs one builtin per seed, (cube) or (prism 5), and
// the generic (seed :prism 5).
func registerSeeds(env *zygo.Zlisp) {
	for _, seedName := range []string{"tetrahedron", "cube", "octahedron", "icosahedron", "dodecahedron"} {
		env.AddFunction(seedName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 0 {
				return zygo.SexpNull, fmt.Errorf("%s takes no arguments, got %d", seedName, len(args))
			}
			p, err := seed.ByName(seedName, 0)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpPoly{p: p}, nil
		})
	}

	for _, seedName := range []string{"prism", "antiprism", "pyramid", "cupola"} {
		env.AddFunction(seedName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires a side count", seedName)
			}
			n, err := toInt(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: n: %w", seedName, err)
			}
			p, err := seed.ByName(seedName, n)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpPoly{p: p}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (seed :prism 5), (seed "C")
	// -----------------------------------------------------------------------
	env.AddFunction("seed", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 || len(args) > 2 {
			return zygo.SexpNull, fmt.Errorf("seed requires a name and an optional side count")
		}
		seedName, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("seed: name: %w", err)
		}
		n := 0
		if len(args) == 2 {
			if n, err = toInt(args[1]); err != nil {
				return zygo.SexpNull, fmt.Errorf("seed: n: %w", err)
			}
		}
		p, err := seed.ByName(seedName, n)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPoly{p: p}, nil
	})
}

// registerOperators installs `recipe` and one builtin per operator.
func registerOperators(env *zygo.Zlisp, st *evalState) {
	// -----------------------------------------------------------------------
	// (recipe "k4dC")
	// -----------------------------------------------------------------------
	env.AddFunction("recipe", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("recipe requires a recipe string")
		}
		s, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("recipe: %w", err)
		}
		r, err := conway.ParseRecipe(s)
		if err != nil {
			return zygo.SexpNull, err
		}
		p, err := seed.ByName(r.Seed, r.N)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("recipe %q: %w", s, err)
		}
		q, err := st.run(p, r.Ops)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPoly{p: q}, nil
	})

	// -----------------------------------------------------------------------
	// (kis p), (kis p 4 0.2), (kis p :n 4 :apex 0.2)
	// Parameters may be given positionally in spec order or by keyword.
	// -----------------------------------------------------------------------
	for _, spec := range conway.Specs() {
		env.AddFunction(spec.Name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			p, err := polyArg(spec.Name, pa)
			if err != nil {
				return zygo.SexpNull, err
			}
			given, err := floats(pa.positional[1:])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", spec.Name, err)
			}
			if len(given) > spec.Arity() {
				return zygo.SexpNull, fmt.Errorf("%s takes at most %d parameters, got %d", spec.Name, spec.Arity(), len(given))
			}

			vals := st.cfg.Args(spec.Kind, given)
			for key, v := range pa.kw {
				i := slices.Index(spec.Params, key)
				if i < 0 {
					return zygo.SexpNull, fmt.Errorf("%s: unknown parameter :%s", spec.Name, key)
				}
				f, err := toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: %s: %w", spec.Name, key, err)
				}
				vals[i] = f
			}

			q, err := st.run(p, []conway.Op{{Kind: spec.Kind, Args: vals}})
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpPoly{p: q}, nil
		})
	}
}

// registerRelax installs the canonicalization and cleanup builtins.
func registerRelax(env *zygo.Zlisp, st *evalState) {
	// -----------------------------------------------------------------------
	// (canonicalize p 500 :tangent 0.1 :planar 0.1 :threshold 1e-8)
	// -----------------------------------------------------------------------
	env.AddFunction("canonicalize", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p, err := polyArg("canonicalize", pa)
		if err != nil {
			return zygo.SexpNull, err
		}

		iterations := st.cfg.CanonicalIterations
		if iterations <= 0 {
			iterations = DefaultCanonicalIterations
		}
		if len(pa.positional) > 1 {
			if iterations, err = toInt(pa.positional[1]); err != nil {
				return zygo.SexpNull, fmt.Errorf("canonicalize: iterations: %w", err)
			}
		}
		if iterations, err = intKW("canonicalize", "iterations", pa, iterations); err != nil {
			return zygo.SexpNull, err
		}

		params := st.cfg.Canonical
		if params.Tangent, err = floatKW("canonicalize", "tangent", pa, params.Tangent); err != nil {
			return zygo.SexpNull, err
		}
		if params.Planar, err = floatKW("canonicalize", "planar", pa, params.Planar); err != nil {
			return zygo.SexpNull, err
		}
		if params.Threshold, err = floatKW("canonicalize", "threshold", pa, params.Threshold); err != nil {
			return zygo.SexpNull, err
		}

		q, stats := canonical.Canonicalize(p, iterations, params)
		if !stats.Converged && iterations > 0 {
			st.warnings = append(st.warnings, EvalWarning{
				Op: "canonicalize",
				Message: fmt.Sprintf("canonicalize: not converged after %d iterations (max displacement %.3g)",
					stats.Iterations, stats.MaxDisplacement),
			})
		}
		return &sexpPoly{p: q}, nil
	})

	// -----------------------------------------------------------------------
	// (adjust p 3), (canonical-xyz p 3)
	// -----------------------------------------------------------------------
	reciprocal := map[string]func(*mesh.Polyhedron, int) (*mesh.Polyhedron, error){
		"adjust":        canonical.AdjustXYZ,
		"canonical_xyz": canonical.CanonicalXYZ,
	}
	for fnName, fn := range reciprocal {
		env.AddFunction(fnName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			p, err := polyArg(fnName, pa)
			if err != nil {
				return zygo.SexpNull, err
			}
			iterations := 1
			if len(pa.positional) > 1 {
				if iterations, err = toInt(pa.positional[1]); err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: iterations: %w", fnName, err)
				}
			}
			q, err := fn(p, iterations)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpPoly{p: q}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (spherize p), (rescale p), (recenter p)
	// -----------------------------------------------------------------------
	simple := map[string]func(*mesh.Polyhedron) *mesh.Polyhedron{
		"spherize": canonical.Spherize,
		"rescale":  canonical.Rescale,
		"recenter": canonical.Recenter,
	}
	for fnName, fn := range simple {
		env.AddFunction(fnName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 argument, got %d", fnName, len(args))
			}
			p, err := toPoly(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fnName, err)
			}
			return &sexpPoly{p: fn(p)}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (triangulate p)
	// -----------------------------------------------------------------------
	env.AddFunction("triangulate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("triangulate requires exactly 1 argument, got %d", len(args))
		}
		p, err := toPoly(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("triangulate: %w", err)
		}
		q, ws, err := tessellate.TriangulateWith(p, tessellate.Options{
			PreserveColors: true,
			StepLimit:      st.cfg.StepLimit,
		})
		if err != nil {
			return zygo.SexpNull, err
		}
		st.warn(ws)
		return &sexpPoly{p: q}, nil
	})
}

// registerQueries installs the counting builtins.
func registerQueries(env *zygo.Zlisp) {
	counts := map[string]func(*mesh.Polyhedron) int{
		"vertex_count": (*mesh.Polyhedron).VertexCount,
		"face_count":   (*mesh.Polyhedron).FaceCount,
		"edge_count":   (*mesh.Polyhedron).EdgeCount,
	}
	for fnName, fn := range counts {
		env.AddFunction(fnName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 1 argument, got %d", fnName, len(args))
			}
			p, err := toPoly(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fnName, err)
			}
			return &zygo.SexpInt{Val: int64(fn(p))}, nil
		})
	}
}

// registerSolids installs the kernel primitives, booleans and transforms,
// plus `solid` which samples a kernel solid into a polyhedron seed.
func registerSolids(env *zygo.Zlisp, st *evalState) {
	// -----------------------------------------------------------------------
	// (box 10 20 30)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("box requires exactly 3 arguments, got %d", len(args))
		}
		v, err := floats(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		return &sexpSolid{s: st.kernel.Box(v[0], v[1], v[2])}, nil
	})

	// -----------------------------------------------------------------------
	// (cylinder 20 5 :segments 32)
	// -----------------------------------------------------------------------
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("cylinder requires a height and a radius")
		}
		v, err := floats(pa.positional)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		segments, err := intKW("cylinder", "segments", pa, 32)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpSolid{s: st.kernel.Cylinder(v[0], v[1], segments)}, nil
	})

	// -----------------------------------------------------------------------
	// (union a b), (difference a b), (intersection a b)
	// -----------------------------------------------------------------------
	booleans := map[string]func(a, b kernel.Solid) kernel.Solid{
		"union":        st.kernel.Union,
		"difference":   st.kernel.Difference,
		"intersection": st.kernel.Intersection,
	}
	for fnName, fn := range booleans {
		env.AddFunction(fnName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s requires exactly 2 solids, got %d", fnName, len(args))
			}
			a, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fnName, err)
			}
			b, err := toSolid(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fnName, err)
			}
			return &sexpSolid{s: fn(a, b)}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (translate s 0 0 10), (rotate s 0 0 45)
	// -----------------------------------------------------------------------
	transforms := map[string]func(s kernel.Solid, x, y, z float64) kernel.Solid{
		"translate": st.kernel.Translate,
		"rotate":    st.kernel.Rotate,
	}
	for fnName, fn := range transforms {
		env.AddFunction(fnName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 4 {
				return zygo.SexpNull, fmt.Errorf("%s requires a solid and 3 numbers, got %d arguments", fnName, len(args))
			}
			s, err := toSolid(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fnName, err)
			}
			v, err := floats(args[1:])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", fnName, err)
			}
			return &sexpSolid{s: fn(s, v[0], v[1], v[2])}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (solid s :cells 32)
	// -----------------------------------------------------------------------
	env.AddFunction("solid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("solid requires exactly 1 solid")
		}
		s, err := toSolid(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solid: %w", err)
		}
		cells, err := intKW("solid", "cells", pa, st.cfg.SolidCells)
		if err != nil {
			return zygo.SexpNull, err
		}
		p, err := st.kernel.ToPolyhedron(s, cells)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPoly{p: p}, nil
	})
}
