package conway

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/chazu/conway/pkg/mesh"
)

// Kind identifies an operator in the catalog.
type Kind int

const (
	KindInvalid Kind = iota
	KindDual
	KindAmbo
	KindKis
	KindGyro
	KindPropellor
	KindReflect
	KindChamfer
	KindWhirl
	KindQuinto
	KindInset
	KindExtrude
	KindLoft
	KindHollow
	KindPerspectiva
	KindTrisub
	KindTruncate
	KindJoin
	KindExpand
	KindBevel
	KindOrtho
	KindMeta
	KindNeedle
	KindZip
	KindSnub
	kindCount
)

// OpSpec describes an operator's name, recipe letter and numeric
// parameters. Args missing from an Op take the corresponding default.
type OpSpec struct {
	Kind     Kind
	Name     string
	Letter   string
	Params   []string
	Defaults []float64
}

// Arity returns the number of numeric parameters.
func (s OpSpec) Arity() int { return len(s.Params) }

var specs = [kindCount]OpSpec{
	KindDual:        {Name: "dual", Letter: "d"},
	KindAmbo:        {Name: "ambo", Letter: "a"},
	KindKis:         {Name: "kis", Letter: "k", Params: []string{"n", "apex"}, Defaults: []float64{0, DefaultApexDist}},
	KindGyro:        {Name: "gyro", Letter: "g"},
	KindPropellor:   {Name: "propellor", Letter: "p"},
	KindReflect:     {Name: "reflect", Letter: "r"},
	KindChamfer:     {Name: "chamfer", Letter: "c", Params: []string{"dist"}, Defaults: []float64{DefaultChamfer}},
	KindWhirl:       {Name: "whirl", Letter: "w"},
	KindQuinto:      {Name: "quinto", Letter: "q"},
	KindInset:       {Name: "inset", Letter: "I", Params: []string{"n", "inset", "popout"}, Defaults: []float64{0, DefaultInsetDist, DefaultPopoutDist}},
	KindExtrude:     {Name: "extrude", Letter: "x", Params: []string{"n"}, Defaults: []float64{0}},
	KindLoft:        {Name: "loft", Letter: "l", Params: []string{"n", "alpha"}, Defaults: []float64{0, DefaultLoft}},
	KindHollow:      {Name: "hollow", Letter: "H", Params: []string{"inset", "thickness"}, Defaults: []float64{DefaultHollowInset, DefaultHollowThickness}},
	KindPerspectiva: {Name: "perspectiva", Letter: "P"},
	KindTrisub:      {Name: "trisub", Letter: "u", Params: []string{"n"}, Defaults: []float64{DefaultTrisub}},
	KindTruncate:    {Name: "truncate", Letter: "t", Params: []string{"n", "apex"}, Defaults: []float64{0, DefaultApexDist}},
	KindJoin:        {Name: "join", Letter: "j"},
	KindExpand:      {Name: "expand", Letter: "e"},
	KindBevel:       {Name: "bevel", Letter: "b"},
	KindOrtho:       {Name: "ortho", Letter: "o"},
	KindMeta:        {Name: "meta", Letter: "m", Params: []string{"n", "apex"}, Defaults: []float64{0, DefaultApexDist}},
	KindNeedle:      {Name: "needle", Letter: "n", Params: []string{"n", "apex"}, Defaults: []float64{0, DefaultApexDist}},
	KindZip:         {Name: "zip", Letter: "z", Params: []string{"n", "apex"}, Defaults: []float64{0, DefaultApexDist}},
	KindSnub:        {Name: "snub", Letter: "s"},
}

func init() {
	for k := range specs {
		specs[k].Kind = Kind(k)
	}
}

func (k Kind) valid() bool { return k > KindInvalid && k < kindCount }

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return specs[k].Name
}

// Spec returns the description of kind k.
func Spec(k Kind) (OpSpec, error) {
	if !k.valid() {
		return OpSpec{}, errors.Wrapf(ErrUnknownOperator, "kind %d", int(k))
	}
	return specs[k], nil
}

// Specs returns every operator description in Kind order.
func Specs() []OpSpec {
	return append([]OpSpec(nil), specs[KindInvalid+1:]...)
}

// Lookup finds an operator by name or recipe letter. Names are matched
// case-insensitively; letters are case-sensitive.
func Lookup(name string) (Kind, error) {
	for _, s := range specs[KindInvalid+1:] {
		if s.Letter == name || strings.EqualFold(s.Name, name) {
			return s.Kind, nil
		}
	}
	return KindInvalid, errors.Wrapf(ErrUnknownOperator, "%q", name)
}

// Op is one operator application: a kind plus positional numeric
// arguments.
type Op struct {
	Kind Kind
	Args []float64
}

// args returns the Op arguments padded with the defaults of its kind.
func (s OpSpec) args(given []float64) ([]float64, error) {
	if len(given) > len(s.Params) {
		return nil, errors.Errorf("%s: %d arguments, takes at most %d", s.Name, len(given), len(s.Params))
	}
	out := append([]float64(nil), s.Defaults...)
	copy(out, given)
	return out, nil
}

func sides(name string, x float64) (int, error) {
	if x < 0 || x != math.Trunc(x) {
		return 0, errors.Errorf("%s: face side-count %v must be a non-negative integer", name, x)
	}
	return int(x), nil
}

// Apply runs one operator on p.
func Apply(p *mesh.Polyhedron, op Op) (*mesh.Polyhedron, []Warning, error) {
	spec, err := Spec(op.Kind)
	if err != nil {
		return nil, nil, err
	}
	a, err := spec.args(op.Args)
	if err != nil {
		return nil, nil, err
	}
	var n int
	if len(spec.Params) > 0 && spec.Params[0] == "n" {
		if n, err = sides(spec.Name, a[0]); err != nil {
			return nil, nil, err
		}
	}

	plain := func(q *mesh.Polyhedron, err error) (*mesh.Polyhedron, []Warning, error) {
		return q, nil, err
	}
	switch op.Kind {
	case KindDual:
		return plain(Dual(p))
	case KindAmbo:
		return plain(Ambo(p))
	case KindKis:
		return Kis(p, n, a[1])
	case KindGyro:
		return plain(Gyro(p))
	case KindPropellor:
		return plain(Propellor(p))
	case KindReflect:
		return Reflect(p), nil, nil
	case KindChamfer:
		return plain(Chamfer(p, a[0]))
	case KindWhirl:
		return plain(Whirl(p))
	case KindQuinto:
		return plain(Quinto(p))
	case KindInset:
		return Inset(p, n, a[1], a[2])
	case KindExtrude:
		return Extrude(p, n)
	case KindLoft:
		return Loft(p, n, a[1])
	case KindHollow:
		return plain(Hollow(p, a[0], a[1]))
	case KindPerspectiva:
		return plain(Perspectiva1(p))
	case KindTrisub:
		return Trisub(p, n)
	case KindTruncate:
		return Truncate(p, n, a[1])
	case KindJoin:
		return plain(Join(p))
	case KindExpand:
		return plain(Expand(p))
	case KindBevel:
		return plain(Bevel(p))
	case KindOrtho:
		return plain(Ortho(p))
	case KindMeta:
		return Meta(p, n, a[1])
	case KindNeedle:
		return Needle(p, n, a[1])
	case KindZip:
		return Zip(p, n, a[1])
	case KindSnub:
		return plain(Snub(p))
	}
	return nil, nil, errors.Wrapf(ErrUnknownOperator, "kind %v", op.Kind)
}

// Pipeline applies operators in order, innermost first.
type Pipeline struct {
	Ops []Op
}

// Run applies every stage to the output of the previous one. Warnings of
// all stages are collected; the first error stops the run.
func (pl Pipeline) Run(p *mesh.Polyhedron) (*mesh.Polyhedron, []Warning, error) {
	var warnings []Warning
	for i, op := range pl.Ops {
		q, ws, err := Apply(p, op)
		if err != nil {
			return nil, warnings, errors.Wrapf(err, "stage %d (%v)", i, op.Kind)
		}
		warnings = append(warnings, ws...)
		p = q
	}
	return p, warnings, nil
}
