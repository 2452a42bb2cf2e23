package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/chazu/conway/pkg/config"
	"github.com/chazu/conway/pkg/engine"
	"github.com/chazu/conway/pkg/kernel"
	"github.com/chazu/conway/pkg/kernel/manifold"
	"github.com/chazu/conway/pkg/kernel/sdfx"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	recipeFile := flag.String("recipe", "", "Path to a Lisp recipe file")
	expr := flag.String("e", "", "Lisp expression to evaluate")
	notation := flag.String("r", "", "Operator notation to evaluate, e.g. k4dC")
	canon := flag.Int("canon", 0, "Canonicalization iterations (0: off)")
	triangulate := flag.Bool("triangulate", false, "Triangulate faces before output")
	palette := flag.String("palette", "", "Comma-separated hex colors for face classes")
	asJSON := flag.Bool("json", false, "Print the full mesh result as JSON")
	kernelName := flag.String("kernel", "sdfx", "Solid kernel: sdfx or manifold")

	flag.Parse()

	source, err := readSource(*recipeFile, *expr, *notation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		CanonicalIterations: *canon,
		Triangulate:         *triangulate,
		Palette:             *palette,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	k, err := newKernel(*kernelName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result := NewApp(cfg, engine.WithKernel(k)).Evaluate(source)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			os.Exit(1)
		}
	} else {
		printSummary(result)
	}

	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}

// newKernel returns the solid kernel named on the command line.
func newKernel(name string) (kernel.Kernel, error) {
	switch name {
	case "", "sdfx":
		return sdfx.New(), nil
	case "manifold":
		return manifold.New()
	default:
		return nil, fmt.Errorf("unknown kernel %q (want sdfx or manifold)", name)
	}
}

// readSource picks the program to run from exactly one of the three
// source flags.
func readSource(file, expr, notation string) (string, error) {
	set := 0
	for _, s := range []string{file, expr, notation} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return "", fmt.Errorf("give exactly one of -recipe, -e or -r")
	}

	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case expr != "":
		return expr, nil
	}
	return "(recipe " + strconv.Quote(notation) + ")", nil
}

func printSummary(r EvalResult) {
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(os.Stderr, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(os.Stderr, "error: %s\n", e.Message)
		}
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
	}
	if r.Stats == nil {
		return
	}

	s := r.Stats
	fmt.Printf("%s\n", s.Name)
	fmt.Printf("V=%d E=%d F=%d (Euler %d)\n", s.Vertices, s.Edges, s.Faces, s.Vertices-s.Edges+s.Faces)
	fmt.Printf("Face classes: %d\n", s.FaceClasses)
	fmt.Printf("Inradius: %.6f ± %.2g\n", s.InradiusMean, s.InradiusStdDev)
	fmt.Printf("Edge tangency: %.6f\n", s.EdgeDistMean)
	for _, m := range r.Meshes {
		fmt.Printf("Mesh: %d triangles\n", len(m.Indices)/3)
	}
}
