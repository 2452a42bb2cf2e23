package conway

import (
	"slices"

	"github.com/chazu/conway/pkg/mesh"
)

// Reflect mirrors the solid through the origin and reverses every face so
// the normals still point outward.
func Reflect(p *mesh.Polyhedron) *mesh.Polyhedron {
	q := p.Clone()
	for i, v := range q.Vertices {
		q.Vertices[i] = v.Neg()
	}
	for _, f := range q.Faces {
		slices.Reverse(f)
	}
	q.Name = "r" + p.Name
	return q
}

// Truncate cuts every n-valent vertex (every vertex when n is 0). It is
// the dual of kis applied to the dual.
func Truncate(p *mesh.Polyhedron, n int, apexDist float64) (*mesh.Polyhedron, []Warning, error) {
	d, err := Dual(p)
	if err != nil {
		return nil, nil, err
	}
	k, warnings, err := Kis(d, n, apexDist)
	if err != nil {
		return nil, nil, err
	}
	t, err := Dual(k)
	if err != nil {
		return nil, nil, err
	}
	return t.Renamed(selectorName("t", n, p.Name)), retag(warnings, "truncate"), nil
}

// Join is the dual of ambo: one rhombus per original edge.
func Join(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	a, err := Ambo(p)
	if err != nil {
		return nil, err
	}
	j, err := Dual(a)
	if err != nil {
		return nil, err
	}
	return j.Renamed("j" + p.Name), nil
}

// Expand is ambo applied twice (cantellation).
func Expand(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	a, err := Ambo(p)
	if err != nil {
		return nil, err
	}
	e, err := Ambo(a)
	if err != nil {
		return nil, err
	}
	return e.Renamed("e" + p.Name), nil
}

// Bevel truncates the ambo.
func Bevel(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	a, err := Ambo(p)
	if err != nil {
		return nil, err
	}
	t, _, err := Truncate(a, 0, DefaultApexDist)
	if err != nil {
		return nil, err
	}
	return t.Renamed("b" + p.Name), nil
}

// Ortho is join applied twice.
func Ortho(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	j, err := Join(p)
	if err != nil {
		return nil, err
	}
	o, err := Join(j)
	if err != nil {
		return nil, err
	}
	return o.Renamed("o" + p.Name), nil
}

// Meta raises pyramids on the n-sided faces of the join.
func Meta(p *mesh.Polyhedron, n int, apexDist float64) (*mesh.Polyhedron, []Warning, error) {
	j, err := Join(p)
	if err != nil {
		return nil, nil, err
	}
	m, warnings, err := Kis(j, n, apexDist)
	if err != nil {
		return nil, nil, err
	}
	return m.Renamed(selectorName("m", n, p.Name)), retag(warnings, "meta"), nil
}

// Needle raises pyramids on the n-sided faces of the dual.
func Needle(p *mesh.Polyhedron, n int, apexDist float64) (*mesh.Polyhedron, []Warning, error) {
	d, err := Dual(p)
	if err != nil {
		return nil, nil, err
	}
	k, warnings, err := Kis(d, n, apexDist)
	if err != nil {
		return nil, nil, err
	}
	return k.Renamed(selectorName("n", n, p.Name)), retag(warnings, "needle"), nil
}

// Zip is the dual of kis.
func Zip(p *mesh.Polyhedron, n int, apexDist float64) (*mesh.Polyhedron, []Warning, error) {
	k, warnings, err := Kis(p, n, apexDist)
	if err != nil {
		return nil, nil, err
	}
	z, err := Dual(k)
	if err != nil {
		return nil, nil, err
	}
	return z.Renamed(selectorName("z", n, p.Name)), retag(warnings, "zip"), nil
}

// Snub is the dual of gyro applied to the dual.
func Snub(p *mesh.Polyhedron) (*mesh.Polyhedron, error) {
	d, err := Dual(p)
	if err != nil {
		return nil, err
	}
	g, err := Gyro(d)
	if err != nil {
		return nil, err
	}
	s, err := Dual(g)
	if err != nil {
		return nil, err
	}
	return s.Renamed("s" + p.Name), nil
}

func retag(ws []Warning, op string) []Warning {
	for i := range ws {
		ws[i].Op = op
	}
	return ws
}
