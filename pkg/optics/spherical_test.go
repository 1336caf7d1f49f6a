package optics

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

func TestNewSphericalRefraction_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name                             string
		z0, curvature, n1, n2, aperture float64
	}{
		{"zero curvature", 100, 0, 1, 1.5, 10},
		{"aperture wider than sphere", 100, 0.1, 1, 1.5, 11},
		{"zero aperture", 100, 0.03, 1, 1.5, 0},
		{"negative index", 100, 0.03, -1, 1.5, 10},
		{"zero index", 100, 0.03, 1, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSphericalRefraction(tt.z0, tt.curvature, tt.n1, tt.n2, tt.aperture)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("Expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestSphericalRefraction_IntersectParallelRays(t *testing.T) {
	surface, err := NewSphericalRefraction(100, 0.03, 1.0, 1.5, 30)
	if err != nil {
		t.Fatal(err)
	}
	radius := 1 / 0.03

	for _, height := range []float64{0, 1, 5, 15, 29.9} {
		ray := mustRay(t, core.NewVec3(height, 0, 0), core.NewVec3(0, 0, 1))
		hit, err := surface.Intersect(ray)
		if err != nil {
			t.Fatalf("height %g: unexpected error %v", height, err)
		}

		// Sag of a sphere at distance h from the axis
		expectedZ := 100 + radius - math.Sqrt(radius*radius-height*height)
		if math.Abs(hit.Point.Z-expectedZ) > 1e-9 {
			t.Errorf("height %g: expected z=%f, got %f", height, expectedZ, hit.Point.Z)
		}
		if hit.Point.X != height {
			t.Errorf("height %g: expected x=%g, got %g", height, height, hit.Point.X)
		}
		if hit.Normal.Dot(ray.Direction()) >= 0 {
			t.Errorf("height %g: normal %v should face the incoming ray", height, hit.Normal)
		}
	}
}

func TestSphericalRefraction_IntersectConcave(t *testing.T) {
	surface, err := NewSphericalRefraction(100, -0.02, 1.0, 1.5, 20)
	if err != nil {
		t.Fatal(err)
	}

	ray := mustRay(t, core.NewVec3(10, 0, 0), core.NewVec3(0, 0, 1))
	hit, err := surface.Intersect(ray)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// Centre at z=50, the cap containing the vertex is the far side
	expectedZ := 50 + math.Sqrt(2500-100)
	if math.Abs(hit.Point.Z-expectedZ) > 1e-9 {
		t.Errorf("Expected z=%f, got %f", expectedZ, hit.Point.Z)
	}
}

func TestSphericalRefraction_IntersectMisses(t *testing.T) {
	surface, err := NewSphericalRefraction(100, 0.03, 1.0, 1.5, 30)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		position  core.Vec3
		direction core.Vec3
	}{
		{"outside aperture", core.NewVec3(31, 0, 0), core.NewVec3(0, 0, 1)},
		{"misses sphere", core.NewVec3(40, 0, 0), core.NewVec3(0, 0, 1)},
		{"travelling away", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)},
		{"already past surface", core.NewVec3(0, 0, 150), core.NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := mustRay(t, tt.position, tt.direction)
			if _, err := surface.Intersect(ray); !errors.Is(err, ErrNoIntersection) {
				t.Errorf("Expected ErrNoIntersection, got %v", err)
			}
		})
	}
}

func TestSphericalRefraction_OnAxisRayUndeviated(t *testing.T) {
	surface, err := NewSphericalRefraction(100, 0.03, 1.0, 1.5, 30)
	if err != nil {
		t.Fatal(err)
	}

	ray := mustRay(t, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	if err := Propagate(surface, ray, TIRTerminate); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !ray.Position().ApproxEqual(core.NewVec3(0, 0, 100), 1e-9) {
		t.Errorf("Expected ray at vertex, got %v", ray.Position())
	}
	if !ray.Direction().ApproxEqual(core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Expected undeviated direction, got %v", ray.Direction())
	}
}

func TestSphericalRefraction_BendsTowardAxis(t *testing.T) {
	surface, err := NewSphericalRefraction(100, 0.03, 1.0, 1.5, 30)
	if err != nil {
		t.Fatal(err)
	}

	ray := mustRay(t, core.NewVec3(5, 0, 0), core.NewVec3(0, 0, 1))
	if err := Propagate(surface, ray, TIRTerminate); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if ray.Direction().X >= 0 {
		t.Errorf("Convex surface into glass should bend the ray toward the axis, got %v", ray.Direction())
	}
}
