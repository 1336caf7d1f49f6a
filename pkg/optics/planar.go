package optics

import (
	"fmt"
	"math"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// planeAt intersects a ray with the plane z = z0, limited to aperture when it is positive
func planeAt(ray *Ray, z0, aperture float64) (Hit, error) {
	origin := ray.Position()
	direction := ray.Direction()

	// Ray is parallel to the plane
	if math.Abs(direction.Z) < 1e-12 {
		return Hit{}, ErrNoIntersection
	}

	t := (z0 - origin.Z) / direction.Z
	if t <= intersectEpsilon {
		return Hit{}, ErrNoIntersection
	}

	point := origin.Add(direction.Multiply(t))
	// Snap onto the plane so path vertices sit exactly at z0
	point.Z = z0
	if aperture > 0 && point.RadialSquared() > aperture*aperture {
		return Hit{}, ErrNoIntersection
	}

	return Hit{
		T:      t,
		Point:  point,
		Normal: faceAgainst(core.NewVec3(0, 0, 1), direction),
	}, nil
}

// PlanarRefraction is a flat boundary between two media, perpendicular to the optical axis
type PlanarRefraction struct {
	z0       float64
	n1, n2   float64
	aperture float64
}

// NewPlanarRefraction creates a flat refracting surface at z0 with index n1 on the -z side
func NewPlanarRefraction(z0, n1, n2, aperture float64) (*PlanarRefraction, error) {
	if err := validateIndices(n1, n2); err != nil {
		return nil, err
	}
	if err := validateAperture(aperture); err != nil {
		return nil, err
	}
	return &PlanarRefraction{z0: z0, n1: n1, n2: n2, aperture: aperture}, nil
}

// Intersect implements Element
func (p *PlanarRefraction) Intersect(ray *Ray) (Hit, error) {
	return planeAt(ray, p.z0, p.aperture)
}

// Deflect implements Element
func (p *PlanarRefraction) Deflect(direction core.Vec3, hit Hit) (core.Vec3, error) {
	return Refract(direction, hit.Normal, refractionRatio(direction, p.n1, p.n2))
}

// Vertex implements Element
func (p *PlanarRefraction) Vertex() float64 { return p.z0 }

// Reflective implements Element
func (p *PlanarRefraction) Reflective() bool { return false }

// Aperture returns the aperture radius
func (p *PlanarRefraction) Aperture() float64 { return p.aperture }

// Indices returns the refractive indices on the -z and +z sides
func (p *PlanarRefraction) Indices() (float64, float64) { return p.n1, p.n2 }

func (p *PlanarRefraction) String() string {
	return fmt.Sprintf("planar refraction at z=%g (n %g->%g)", p.z0, p.n1, p.n2)
}

// OutputPlane is an unbounded detector plane; rays stop on it without changing direction
type OutputPlane struct {
	z0 float64
}

// NewOutputPlane creates a detector plane at z0
func NewOutputPlane(z0 float64) *OutputPlane {
	return &OutputPlane{z0: z0}
}

// Intersect implements Element
func (o *OutputPlane) Intersect(ray *Ray) (Hit, error) {
	return planeAt(ray, o.z0, 0)
}

// Deflect implements Element
func (o *OutputPlane) Deflect(direction core.Vec3, hit Hit) (core.Vec3, error) {
	return direction, nil
}

// Vertex implements Element
func (o *OutputPlane) Vertex() float64 { return o.z0 }

// Reflective implements Element
func (o *OutputPlane) Reflective() bool { return false }

func (o *OutputPlane) String() string {
	return fmt.Sprintf("output plane at z=%g", o.z0)
}
