//go:build !manifold

package manifold

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/chazu/conway/pkg/kernel/sdfx"
)

func TestNewUnavailable(t *testing.T) {
	k, err := New()
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("New() error = %v, want ErrUnavailable", err)
	}
	if k != nil {
		t.Fatal("New() returned a kernel without the manifold tag")
	}
}

func TestToPolyhedronUnavailable(t *testing.T) {
	box := sdfx.New().Box(1, 1, 1)
	p, err := ToPolyhedron(box, 16)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("ToPolyhedron() error = %v, want ErrUnavailable", err)
	}
	if p != nil {
		t.Fatalf("ToPolyhedron() = %v, want nil", p)
	}
}
