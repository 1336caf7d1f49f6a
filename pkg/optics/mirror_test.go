package optics

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

func TestMirror_Flat(t *testing.T) {
	mirror, err := NewMirror(10, 0, 20)
	if err != nil {
		t.Fatal(err)
	}

	ray := mustRay(t, core.NewVec3(0, 0, 0), core.NewVec3(0.6, 0, 0.8))
	if err := Propagate(mirror, ray, TIRTerminate); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !ray.Position().ApproxEqual(core.NewVec3(7.5, 0, 10), 1e-12) {
		t.Errorf("Expected hit at (7.5,0,10), got %v", ray.Position())
	}
	if !ray.Direction().ApproxEqual(core.NewVec3(0.6, 0, -0.8), 1e-12) {
		t.Errorf("Expected reflected direction (0.6,0,-0.8), got %v", ray.Direction())
	}
}

func TestMirror_ConcaveFocus(t *testing.T) {
	// R = -100: centre of curvature at z=100, paraxial focus at z=150
	mirror, err := NewMirror(200, -0.01, 20)
	if err != nil {
		t.Fatal(err)
	}
	system, err := NewSystem(mirror, NewOutputPlane(150))
	if err != nil {
		t.Fatal(err)
	}

	ray := mustRay(t, core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))
	if err := system.Trace(ray); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if math.Abs(ray.Position().X) > 1e-3 {
		t.Errorf("Expected paraxial ray to focus near the axis, got %v", ray.Position())
	}
}

func TestMirror_InvalidGeometry(t *testing.T) {
	if _, err := NewMirror(10, 0.1, 20); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry for aperture beyond radius, got %v", err)
	}
	if _, err := NewMirror(10, 0, -1); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry for negative aperture, got %v", err)
	}
}
