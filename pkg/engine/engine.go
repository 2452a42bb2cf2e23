// Package engine provides the Lisp recipe engine. It wraps zygomys in a
// sandboxed environment whose builtins build seeds, apply operators and
// relax the result, and returns the polyhedron the program evaluates to.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/conway/pkg/config"
	"github.com/chazu/conway/pkg/kernel"
	"github.com/chazu/conway/pkg/kernel/sdfx"
	"github.com/chazu/conway/pkg/mesh"
)

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// EvalWarning represents a non-fatal warning produced during evaluation,
// such as an operator selector that matched no face.
type EvalWarning struct {
	Line    int
	Col     int
	Message string
	Op      string
}

// EvalResult bundles the full output of an evaluation.
type EvalResult struct {
	// Poly is the program's value when it is a polyhedron, nil otherwise.
	Poly     *mesh.Polyhedron
	Errors   []EvalError
	Warnings []EvalWarning
}

// Engine wraps the zygomys interpreter for recipe evaluation.
// It is safe for concurrent use; each call to Evaluate creates a fresh
// sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64

	cfg    config.Config
	kernel kernel.Kernel
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the operator defaults and relaxation settings.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithKernel sets the solid kernel behind the box/cylinder builtins.
func WithKernel(k kernel.Kernel) Option {
	return func(e *Engine) { e.kernel = k }
}

// NewEngine creates a new Engine with the default config and the sdfx
// kernel unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{cfg: config.Default(), kernel: sdfx.New()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Evaluate runs Lisp source code and returns the polyhedron it produces.
// Each call creates a fresh zygomys sandbox for deterministic evaluation.
//
// Return semantics:
//   - On success: returns result with Poly set (or nil for a program whose
//     value is not a polyhedron) + nil error
//   - On parse/eval failure: returns result with Errors + nil error
//   - On fatal failure (timeout, panic): returns empty result + error
func (e *Engine) Evaluate(source string) (EvalResult, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res := e.evaluate(source)
		ch <- evalResult{res: res}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) EvalResult {
	// Empty source is a valid program that produces nothing.
	if strings.TrimSpace(source) == "" {
		return EvalResult{}
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	st := &evalState{cfg: e.cfg, kernel: e.kernel}
	registerBuiltins(env, st)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return EvalResult{Errors: parseZygomysError(err)}
	}

	v, err := env.Run()
	if err != nil {
		return EvalResult{Errors: parseZygomysError(err), Warnings: st.warnings}
	}

	res := EvalResult{Warnings: st.warnings}
	if p, ok := v.(*sexpPoly); ok {
		res.Poly = p.p
	}
	return res
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
// It attempts to extract line number information from the error message.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	// zygomys formats parse errors as "Error on line N: <details>\n"
	for _, re := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := re.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	// Fallback: no line info available.
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
