package sdfx

import (
	"math"
	"testing"
)

func TestBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	p, err := k.ToPolyhedron(box, 16)
	if err != nil {
		t.Fatalf("ToPolyhedron failed: %v", err)
	}
	if p.FaceCount() == 0 {
		t.Fatal("expected faces")
	}
	for i, f := range p.Faces {
		if len(f) != 3 {
			t.Fatalf("face %d has %d vertices, want 3", i, len(f))
		}
	}
	// Welding shares corners between neighbouring triangles.
	if p.VertexCount() >= 3*p.FaceCount() {
		t.Errorf("vertex count %d not reduced by welding (%d faces)", p.VertexCount(), p.FaceCount())
	}
	const slack = 10.0 // one cell along the longest axis
	for i, v := range p.Vertices {
		if math.Abs(v.X) > 50+slack || math.Abs(v.Y) > 25+slack || math.Abs(v.Z) > 12.5+slack {
			t.Fatalf("vertex %d at %v outside the box", i, v)
		}
	}
	if p.Name != "solid" {
		t.Errorf("Name = %q, want %q", p.Name, "solid")
	}
}

func TestDefaultCells(t *testing.T) {
	k := New()
	p, err := k.ToPolyhedron(k.Box(1, 1, 1), 0)
	if err != nil {
		t.Fatalf("ToPolyhedron failed: %v", err)
	}
	if p.FaceCount() == 0 {
		t.Fatal("expected faces")
	}
}

func TestCylinder(t *testing.T) {
	k := New()
	cyl := k.Cylinder(50, 10, 32)
	p, err := k.ToPolyhedron(cyl, 16)
	if err != nil {
		t.Fatalf("ToPolyhedron failed: %v", err)
	}
	if p.FaceCount() == 0 {
		t.Fatal("expected non-zero face count")
	}
	t.Logf("cylinder face count: %d", p.FaceCount())
}

func TestDifference(t *testing.T) {
	k := New()

	box := k.Box(100, 100, 100)
	boxPoly, err := k.ToPolyhedron(box, 20)
	if err != nil {
		t.Fatalf("ToPolyhedron(box) failed: %v", err)
	}

	cyl := k.Cylinder(120, 20, 32)
	diff := k.Difference(box, cyl)
	diffPoly, err := k.ToPolyhedron(diff, 20)
	if err != nil {
		t.Fatalf("ToPolyhedron(diff) failed: %v", err)
	}
	// A box with a hole should have more triangles than a plain box.
	if diffPoly.FaceCount() <= boxPoly.FaceCount() {
		t.Fatalf("difference (%d triangles) should have more triangles than box (%d triangles)",
			diffPoly.FaceCount(), boxPoly.FaceCount())
	}
}

func TestUnion(t *testing.T) {
	k := New()
	box1 := k.Box(50, 50, 50)
	box2 := k.Translate(k.Box(50, 50, 50), 30, 0, 0)
	u := k.Union(box1, box2)
	p, err := k.ToPolyhedron(u, 16)
	if err != nil {
		t.Fatalf("ToPolyhedron failed: %v", err)
	}
	min, max := u.BoundingBox()
	if max[0]-min[0] < 79 {
		t.Errorf("union X extent = %f, want ~80", max[0]-min[0])
	}
	t.Logf("union face count: %d", p.FaceCount())
}

func TestTranslate(t *testing.T) {
	k := New()
	box := k.Box(10, 10, 10)
	translated := k.Translate(box, 100, 200, 300)

	min, max := translated.BoundingBox()

	// Translated box(10,10,10) by (100,200,300) should be centered at (100,200,300).
	// So bounds should be approximately (95,195,295) to (105,205,305).
	const tol = 0.5
	expectMin := [3]float64{95, 195, 295}
	expectMax := [3]float64{105, 205, 305}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestIntersection(t *testing.T) {
	k := New()
	box1 := k.Box(100, 100, 100)
	box2 := k.Translate(k.Box(100, 100, 100), 50, 0, 0)
	inter := k.Intersection(box1, box2)
	p, err := k.ToPolyhedron(inter, 16)
	if err != nil {
		t.Fatalf("ToPolyhedron failed: %v", err)
	}
	if p.FaceCount() == 0 {
		t.Fatal("intersection polyhedron is empty")
	}
}

func TestRotate(t *testing.T) {
	k := New()
	box := k.Box(100, 10, 10)

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	// After 90-degree Z rotation, the X extent should be small and Y extent large.
	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}
