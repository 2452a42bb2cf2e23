package mesh

import "fmt"

// ValidationSeverity indicates whether a finding makes the mesh unusable
// for the operators or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // breaks the manifold contract
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding. Face is -1 for
// mesh-level findings.
type ValidationError struct {
	Face     int
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Face < 0 {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] face %d: %s", e.Severity, e.Face, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Face    int
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether no blocking errors were found.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks the manifold invariants: indices in range, faces of at
// least three vertices, every directed edge used once and matched by its
// opposite. Euler characteristic and unused vertices are reported as
// warnings. Validate never mutates p.
func (p *Polyhedron) Validate() ValidationResult {
	var result ValidationResult
	result.Errors = append(result.Errors, p.validateIndices()...)
	if len(result.Errors) > 0 {
		// Edge checks would index out of range.
		return result
	}
	result.Errors = append(result.Errors, p.validateDirectedEdges()...)
	result.Warnings = append(result.Warnings, p.validateUsage()...)
	if chi := p.EulerCharacteristic(); chi != 2 {
		result.Warnings = append(result.Warnings, ValidationWarning{
			Face:    -1,
			Message: fmt.Sprintf("Euler characteristic is %d, expected 2 for a closed sphere", chi),
		})
	}
	return result
}

func (p *Polyhedron) validateIndices() []ValidationError {
	var errs []ValidationError
	for i, f := range p.Faces {
		if len(f) < 3 {
			errs = append(errs, ValidationError{
				Face:     i,
				Message:  fmt.Sprintf("face has %d vertices, need at least 3", len(f)),
				Severity: SeverityError,
			})
		}
		for _, v := range f {
			if v < 0 || v >= len(p.Vertices) {
				errs = append(errs, ValidationError{
					Face:     i,
					Message:  fmt.Sprintf("vertex index %d out of range [0,%d)", v, len(p.Vertices)),
					Severity: SeverityError,
				})
			}
		}
	}
	if p.FaceClasses != nil && len(p.FaceClasses) != len(p.Faces) {
		errs = append(errs, ValidationError{
			Face:     -1,
			Message:  fmt.Sprintf("%d face classes for %d faces", len(p.FaceClasses), len(p.Faces)),
			Severity: SeverityError,
		})
	}
	return errs
}

func (p *Polyhedron) validateDirectedEdges() []ValidationError {
	var errs []ValidationError
	owner := make(map[[2]int]int)
	for i, f := range p.Faces {
		prev := f[len(f)-1]
		for _, v := range f {
			key := [2]int{prev, v}
			if j, dup := owner[key]; dup {
				errs = append(errs, ValidationError{
					Face:     i,
					Message:  fmt.Sprintf("directed edge %d->%d already used by face %d", prev, v, j),
					Severity: SeverityError,
				})
			} else {
				owner[key] = i
			}
			prev = v
		}
	}
	for i, f := range p.Faces {
		prev := f[len(f)-1]
		for _, v := range f {
			if _, ok := owner[[2]int{v, prev}]; !ok {
				errs = append(errs, ValidationError{
					Face:     i,
					Message:  fmt.Sprintf("edge %d->%d has no opposite half-edge", prev, v),
					Severity: SeverityError,
				})
			}
			prev = v
		}
	}
	return errs
}

func (p *Polyhedron) validateUsage() []ValidationWarning {
	var warnings []ValidationWarning
	used := make([]bool, len(p.Vertices))
	for _, f := range p.Faces {
		for _, v := range f {
			used[v] = true
		}
	}
	for v, ok := range used {
		if !ok {
			warnings = append(warnings, ValidationWarning{
				Face:    -1,
				Message: fmt.Sprintf("vertex %d is not referenced by any face", v),
			})
		}
	}
	return warnings
}
