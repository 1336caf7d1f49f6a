package optics

import (
	"fmt"
	"math"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// sphericalCap is the part of a sphere that crosses the optical axis at z0,
// limited to a circular aperture around the axis
type sphericalCap struct {
	z0        float64
	curvature float64
	aperture  float64
	radius    float64
	center    core.Vec3
}

func newSphericalCap(z0, curvature, aperture float64) (sphericalCap, error) {
	if curvature == 0 || math.IsNaN(curvature) || math.IsInf(curvature, 0) {
		return sphericalCap{}, fmt.Errorf("curvature %g: %w", curvature, ErrInvalidGeometry)
	}
	if err := validateAperture(aperture); err != nil {
		return sphericalCap{}, err
	}
	radius := 1.0 / curvature
	if aperture > math.Abs(radius) {
		return sphericalCap{}, fmt.Errorf("aperture %g exceeds radius of curvature %g: %w",
			aperture, math.Abs(radius), ErrInvalidGeometry)
	}
	return sphericalCap{
		z0:        z0,
		curvature: curvature,
		aperture:  aperture,
		radius:    radius,
		center:    core.NewVec3(0, 0, z0+radius),
	}, nil
}

// intersect solves the ray-sphere quadratic and keeps the nearest forward root
// that lies on the vertex side of the sphere and inside the aperture
func (s sphericalCap) intersect(ray *Ray) (Hit, error) {
	origin := ray.Position()
	direction := ray.Direction()

	// Quadratic equation coefficients with a unit direction: t² + 2·halfB·t + c = 0
	oc := origin.Subtract(s.center)
	halfB := oc.Dot(direction)
	c := oc.Dot(oc) - s.radius*s.radius

	discriminant := halfB*halfB - c
	if discriminant < 0 {
		return Hit{}, ErrNoIntersection
	}
	sqrtD := math.Sqrt(discriminant)

	for _, t := range [2]float64{-halfB - sqrtD, -halfB + sqrtD} {
		if t <= intersectEpsilon {
			continue
		}
		point := origin.Add(direction.Multiply(t))
		// The vertex sits at z0 = center - radius, so the valid cap satisfies (z - center)·radius <= 0
		if (point.Z-s.center.Z)*s.radius > 0 {
			continue
		}
		if point.RadialSquared() > s.aperture*s.aperture {
			continue
		}

		normal := point.Subtract(s.center).Multiply(1.0 / math.Abs(s.radius))
		return Hit{
			T:      t,
			Point:  point,
			Normal: faceAgainst(normal, direction),
		}, nil
	}

	return Hit{}, ErrNoIntersection
}

// SphericalRefraction is a spherical boundary between two media
type SphericalRefraction struct {
	sphericalCap
	n1, n2 float64
}

// NewSphericalRefraction creates a spherical refracting surface with its vertex at z0.
// Positive curvature places the centre of curvature at larger z. n1 is the index on the
// -z side and n2 on the +z side.
func NewSphericalRefraction(z0, curvature, n1, n2, aperture float64) (*SphericalRefraction, error) {
	if err := validateIndices(n1, n2); err != nil {
		return nil, err
	}
	sphere, err := newSphericalCap(z0, curvature, aperture)
	if err != nil {
		return nil, err
	}
	return &SphericalRefraction{sphericalCap: sphere, n1: n1, n2: n2}, nil
}

// Intersect implements Element
func (s *SphericalRefraction) Intersect(ray *Ray) (Hit, error) {
	return s.intersect(ray)
}

// Deflect implements Element
func (s *SphericalRefraction) Deflect(direction core.Vec3, hit Hit) (core.Vec3, error) {
	return Refract(direction, hit.Normal, refractionRatio(direction, s.n1, s.n2))
}

// Vertex implements Element
func (s *SphericalRefraction) Vertex() float64 { return s.z0 }

// Reflective implements Element
func (s *SphericalRefraction) Reflective() bool { return false }

// Curvature returns the surface curvature
func (s *SphericalRefraction) Curvature() float64 { return s.curvature }

// Aperture returns the aperture radius
func (s *SphericalRefraction) Aperture() float64 { return s.aperture }

// Indices returns the refractive indices on the -z and +z sides
func (s *SphericalRefraction) Indices() (float64, float64) { return s.n1, s.n2 }

func (s *SphericalRefraction) String() string {
	return fmt.Sprintf("spherical refraction at z=%g (C=%g, n %g->%g)", s.z0, s.curvature, s.n1, s.n2)
}
