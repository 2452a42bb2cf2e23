package main

import (
	"fmt"
	"log"

	"github.com/chazu/conway/pkg/canonical"
	"github.com/chazu/conway/pkg/config"
	"github.com/chazu/conway/pkg/engine"
	"github.com/chazu/conway/pkg/mesh"
	"github.com/chazu/conway/pkg/tessellate"
)

// App drives the evaluate, relax, paint and mesh pipeline shared by the
// CLI and any frontend.
type App struct {
	engine *engine.Engine
	cfg    config.Config
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Colors   []float32 `json:"colors,omitempty"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// StatsData summarizes the evaluated polyhedron before triangulation.
type StatsData struct {
	Name           string  `json:"name"`
	Vertices       int     `json:"vertices"`
	Edges          int     `json:"edges"`
	Faces          int     `json:"faces"`
	FaceClasses    int     `json:"faceClasses"`
	InradiusMean   float64 `json:"inradiusMean"`
	InradiusStdDev float64 `json:"inradiusStdDev"`
	EdgeDistMean   float64 `json:"edgeDistMean"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
	Stats    *StatsData      `json:"stats,omitempty"`

	// Poly is the final polyhedron, after relaxation and triangulation.
	Poly *mesh.Polyhedron `json:"-"`
}

// NewApp creates a new App whose engine shares cfg.
func NewApp(cfg config.Config, opts ...engine.Option) *App {
	opts = append([]engine.Option{engine.WithConfig(cfg)}, opts...)
	return &App{
		engine: engine.NewEngine(opts...),
		cfg:    cfg,
	}
}

// Evaluate takes Lisp source and returns mesh data + errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a polyhedron.
	res, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors and warnings to the frontend format.
	for _, w := range res.Warnings {
		log.Printf("warning: %s", w.Message)
		result.Warnings = append(result.Warnings, EvalErrorData{
			Line:    w.Line,
			Col:     w.Col,
			Message: w.Message,
		})
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}
	if res.Poly == nil {
		return result
	}

	// Step 3: Relax toward the canonical form when configured.
	p := res.Poly
	if a.cfg.CanonicalIterations > 0 {
		var st canonical.Stats
		p, st = canonical.Canonicalize(p, a.cfg.CanonicalIterations, a.cfg.Canonical)
		if !st.Converged {
			msg := fmt.Sprintf("canonicalize: not converged after %d iterations (max displacement %.3g)",
				st.Iterations, st.MaxDisplacement)
			log.Printf("warning: %s", msg)
			result.Warnings = append(result.Warnings, EvalErrorData{Message: msg})
		}
	}

	// Step 4: Paint congruent faces alike.
	p = p.Clone()
	p.FaceClasses = tessellate.ClassifyFaces(p, a.cfg.Sensitivity)
	result.Stats = summarize(p)

	// Step 5: Triangulate, keeping each triangle's face class.
	if a.cfg.Triangulate {
		q, ws, err := tessellate.TriangulateWith(p, tessellate.Options{
			PreserveColors: true,
			StepLimit:      a.cfg.StepLimit,
		})
		if err != nil {
			log.Printf("Triangulate error: %v", err)
			result.Errors = append(result.Errors, EvalErrorData{
				Message: "triangulation failed: " + err.Error(),
			})
			return result
		}
		for _, w := range ws {
			log.Printf("warning: %s", w)
			result.Warnings = append(result.Warnings, EvalErrorData{Message: w.String()})
		}
		p = q
	}
	result.Poly = p

	// Step 6: Flatten into the frontend MeshData format.
	palette := a.cfg.Colors()
	color := func(face int) [3]float32 {
		if len(palette) == 0 {
			return [3]float32{1, 1, 1}
		}
		return palette[p.FaceClasses[face]%len(palette)]
	}
	m := tessellate.ToMesh(p, color)
	base := ""
	if len(a.cfg.Palette) > 0 {
		base = a.cfg.Palette[0]
	}
	result.Meshes = append(result.Meshes, MeshData{
		Vertices: m.Vertices,
		Normals:  m.Normals,
		Indices:  m.Indices,
		Colors:   m.Colors,
		PartName: m.PartName,
		Color:    base,
	})

	return result
}

func summarize(p *mesh.Polyhedron) *StatsData {
	st := canonical.Measure(p)
	classes := make(map[int]bool)
	for _, c := range p.FaceClasses {
		classes[c] = true
	}
	return &StatsData{
		Name:           p.Name,
		Vertices:       p.VertexCount(),
		Edges:          p.EdgeCount(),
		Faces:          p.FaceCount(),
		FaceClasses:    len(classes),
		InradiusMean:   st.InradiusMean,
		InradiusStdDev: st.InradiusStdDev,
		EdgeDistMean:   st.EdgeDistMean,
	}
}
