// Package config loads the tunable defaults of the operator engine from a
// JSON file and merges command-line overrides into them.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chazu/conway/pkg/canonical"
	"github.com/chazu/conway/pkg/conway"
)

// DefaultPalette is the color list face classes are painted from.
var DefaultPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// Config holds operator defaults, relaxation settings and output options.
type Config struct {
	// Operators overrides operator parameter defaults, keyed by operator
	// name or recipe letter. Shorter lists override a prefix.
	Operators map[string][]float64 `json:"operators"`

	Canonical           canonical.Params `json:"canonical"`
	CanonicalIterations int              `json:"canonical_iterations"`

	Triangulate bool `json:"triangulate"`
	StepLimit   int  `json:"step_limit"`

	Palette     []string `json:"palette"`
	Sensitivity int      `json:"signature_sensitivity"`

	SolidCells int `json:"solid_cells"`
}

// Default returns a fully resolved configuration.
func Default() Config {
	var c Config
	c.Resolve(Flags{})
	return c
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values until Resolve.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	CanonicalIterations int
	Triangulate         bool
	Palette             string // comma-separated hex colors
}

// Resolve applies CLI overrides, then fills unset fields with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.CanonicalIterations > 0 {
		c.CanonicalIterations = flags.CanonicalIterations
	}
	if flags.Triangulate {
		c.Triangulate = true
	}
	if flags.Palette != "" {
		c.Palette = strings.Split(flags.Palette, ",")
	}

	d := canonical.DefaultParams()
	if c.Canonical.Tangent <= 0 {
		c.Canonical.Tangent = d.Tangent
	}
	if c.Canonical.Planar <= 0 {
		c.Canonical.Planar = d.Planar
	}
	if c.Canonical.Threshold <= 0 {
		c.Canonical.Threshold = d.Threshold
	}
	if len(c.Palette) == 0 {
		c.Palette = append([]string(nil), DefaultPalette...)
	}
	if c.Sensitivity <= 0 {
		c.Sensitivity = 2
	}
	if c.SolidCells <= 0 {
		c.SolidCells = 24
	}
}

// Validate checks operator names and palette entries.
func (c Config) Validate() error {
	for name, vals := range c.Operators {
		k, err := conway.Lookup(name)
		if err != nil {
			return fmt.Errorf("operators: %w", err)
		}
		spec, _ := conway.Spec(k)
		if len(vals) > spec.Arity() {
			return fmt.Errorf("operators: %s takes %d parameters, got %d", spec.Name, spec.Arity(), len(vals))
		}
	}
	for _, s := range c.Palette {
		if _, err := ParseColor(s); err != nil {
			return fmt.Errorf("palette: %w", err)
		}
	}
	return nil
}

// Args returns the arguments an operator of kind k runs with: given,
// then config overrides, then the operator's own defaults.
func (c Config) Args(k conway.Kind, given []float64) []float64 {
	spec, err := conway.Spec(k)
	if err != nil || len(given) >= spec.Arity() {
		return given
	}
	out := append([]float64(nil), spec.Defaults...)
	if vals, ok := c.Operators[spec.Letter]; ok {
		copy(out, vals)
	}
	for key, vals := range c.Operators {
		if key != spec.Letter && strings.EqualFold(key, spec.Name) {
			copy(out, vals)
		}
	}
	copy(out, given)
	return out
}

// Colors parses the palette. Invalid entries are skipped.
func (c Config) Colors() [][3]float32 {
	out := make([][3]float32, 0, len(c.Palette))
	for _, s := range c.Palette {
		if rgb, err := ParseColor(s); err == nil {
			out = append(out, rgb)
		}
	}
	return out
}

// ParseColor parses "#rrggbb" (the # is optional) into RGB in [0,1].
func ParseColor(s string) ([3]float32, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return [3]float32{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return [3]float32{}, fmt.Errorf("color %q: %w", s, err)
	}
	return [3]float32{
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}
