package optics

import (
	"errors"
	"fmt"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// intersectEpsilon keeps a ray that starts on a surface from hitting it again
const intersectEpsilon = 1e-9

// Hit describes where a ray meets an element
type Hit struct {
	T      float64   // Distance along the ray
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Unit surface normal facing against the incoming ray
}

// Element is a single surface of an optical system
type Element interface {
	// Intersect finds the first valid intersection of the ray with the surface
	Intersect(ray *Ray) (Hit, error)
	// Deflect returns the outgoing direction for a ray arriving along direction at hit
	Deflect(direction core.Vec3, hit Hit) (core.Vec3, error)
	// Vertex returns the z position where the surface crosses the optical axis
	Vertex() float64
	// Reflective reports whether the element sends light back along the axis
	Reflective() bool
	String() string
}

// TIRPolicy selects what happens to a ray that is totally internally reflected
type TIRPolicy int

const (
	// TIRTerminate moves the ray to the surface and stops it there
	TIRTerminate TIRPolicy = iota
	// TIRReflect reflects the ray off the surface and keeps tracing
	TIRReflect
)

func (p TIRPolicy) String() string {
	switch p {
	case TIRTerminate:
		return "terminate"
	case TIRReflect:
		return "reflect"
	default:
		return fmt.Sprintf("TIRPolicy(%d)", int(p))
	}
}

// ParseTIRPolicy converts a policy name into a TIRPolicy
func ParseTIRPolicy(name string) (TIRPolicy, error) {
	switch name {
	case "terminate":
		return TIRTerminate, nil
	case "reflect":
		return TIRReflect, nil
	default:
		return TIRTerminate, fmt.Errorf("unknown total internal reflection policy %q", name)
	}
}

// Propagate advances a ray through a single element.
// A ray that misses is terminated and left where it was. Any other failure terminates it.
func Propagate(element Element, ray *Ray, policy TIRPolicy) error {
	if ray.IsTerminated() {
		return ErrRayTerminated
	}

	hit, err := element.Intersect(ray)
	if err != nil {
		ray.Terminate()
		return err
	}

	direction, err := element.Deflect(ray.Direction(), hit)
	switch {
	case errors.Is(err, ErrTotalInternalReflection):
		if policy == TIRReflect {
			direction = Reflect(ray.Direction(), hit.Normal)
			break
		}
		ray.Advance(hit.Point, ray.Direction())
		ray.Terminate()
		return err
	case err != nil:
		ray.Terminate()
		return err
	}

	ray.Advance(hit.Point, direction)
	return nil
}

// faceAgainst flips the unit normal so it points against direction
func faceAgainst(normal, direction core.Vec3) core.Vec3 {
	if normal.Dot(direction) > 0 {
		return normal.Negate()
	}
	return normal
}

// refractionRatio returns n_incident / n_transmitted for a ray crossing a surface
// with index n1 on the -z side and n2 on the +z side
func refractionRatio(direction core.Vec3, n1, n2 float64) float64 {
	if direction.Z >= 0 {
		return n1 / n2
	}
	return n2 / n1
}

func validateIndices(n1, n2 float64) error {
	if !(n1 > 0) || !(n2 > 0) {
		return fmt.Errorf("refractive indices n1=%g n2=%g must be positive: %w", n1, n2, ErrInvalidGeometry)
	}
	return nil
}

func validateAperture(aperture float64) error {
	if !(aperture > 0) {
		return fmt.Errorf("aperture radius %g must be positive: %w", aperture, ErrInvalidGeometry)
	}
	return nil
}
