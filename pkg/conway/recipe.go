package conway

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Recipe is a parsed operator string such as "k4dC". The rightmost symbol
// names the seed, optionally followed by its side count; each symbol to
// its left is an operator letter, optionally followed by its first
// numeric argument. Operators apply right to left.
type Recipe struct {
	Seed string
	N    int
	// Ops are in application order, innermost first.
	Ops []Op
}

// Pipeline returns the recipe's operators as a Pipeline.
func (r Recipe) Pipeline() Pipeline {
	return Pipeline{Ops: r.Ops}
}

type token struct {
	letter string
	arg    string
	pos    int
}

// ParseRecipe parses s. Whitespace is ignored. Only the seed symbol is
// left unchecked; resolving it is up to the caller.
func ParseRecipe(s string) (Recipe, error) {
	s = strings.Join(strings.Fields(s), "")
	var toks []token
	for i := 0; i < len(s); {
		c := s[i]
		if !isRecipeLetter(c) {
			return Recipe{}, errors.Errorf("recipe %q: unexpected %q at %d", s, c, i)
		}
		j := i + 1
		for j < len(s) && (isDigit(s[j]) || s[j] == '.') {
			j++
		}
		toks = append(toks, token{letter: s[i : i+1], arg: s[i+1 : j], pos: i})
		i = j
	}
	if len(toks) == 0 {
		return Recipe{}, errors.New("recipe: empty")
	}

	last := toks[len(toks)-1]
	r := Recipe{Seed: last.letter}
	if last.arg != "" {
		n, err := strconv.Atoi(last.arg)
		if err != nil {
			return Recipe{}, errors.Wrapf(err, "recipe %q: seed side count", s)
		}
		r.N = n
	}

	for i := len(toks) - 2; i >= 0; i-- {
		t := toks[i]
		kind, err := Lookup(t.letter)
		if err != nil {
			return Recipe{}, errors.Wrapf(err, "recipe %q at %d", s, t.pos)
		}
		op := Op{Kind: kind}
		if t.arg != "" {
			x, err := strconv.ParseFloat(t.arg, 64)
			if err != nil {
				return Recipe{}, errors.Wrapf(err, "recipe %q at %d", s, t.pos)
			}
			if specs[kind].Arity() == 0 {
				return Recipe{}, errors.Errorf("recipe %q at %d: %s takes no arguments", s, t.pos, specs[kind].Name)
			}
			op.Args = []float64{x}
		}
		r.Ops = append(r.Ops, op)
	}
	return r, nil
}

func isRecipeLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
