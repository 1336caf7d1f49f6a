package optics

import (
	"fmt"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// Mirror is a reflecting surface. Zero curvature gives a flat mirror.
type Mirror struct {
	z0        float64
	curvature float64
	aperture  float64
	sphere    *sphericalCap
}

// NewMirror creates a mirror with its vertex at z0
func NewMirror(z0, curvature, aperture float64) (*Mirror, error) {
	if err := validateAperture(aperture); err != nil {
		return nil, err
	}
	m := &Mirror{z0: z0, curvature: curvature, aperture: aperture}
	if curvature != 0 {
		sphere, err := newSphericalCap(z0, curvature, aperture)
		if err != nil {
			return nil, err
		}
		m.sphere = &sphere
	}
	return m, nil
}

// Intersect implements Element
func (m *Mirror) Intersect(ray *Ray) (Hit, error) {
	if m.sphere == nil {
		return planeAt(ray, m.z0, m.aperture)
	}
	return m.sphere.intersect(ray)
}

// Deflect implements Element
func (m *Mirror) Deflect(direction core.Vec3, hit Hit) (core.Vec3, error) {
	return Reflect(direction, hit.Normal), nil
}

// Vertex implements Element
func (m *Mirror) Vertex() float64 { return m.z0 }

// Reflective implements Element
func (m *Mirror) Reflective() bool { return true }

// Curvature returns the mirror curvature
func (m *Mirror) Curvature() float64 { return m.curvature }

func (m *Mirror) String() string {
	if m.sphere == nil {
		return fmt.Sprintf("flat mirror at z=%g", m.z0)
	}
	return fmt.Sprintf("spherical mirror at z=%g (C=%g)", m.z0, m.curvature)
}
