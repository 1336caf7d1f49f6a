package optics

import (
	"math"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// Reflect calculates the reflection of a unit direction off a surface with unit normal n
func Reflect(direction, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return direction.Subtract(n.Multiply(2 * direction.Dot(n))).Normalize()
}

// Refract applies the vector form of Snell's law.
// n must face against direction and eta is n_incident / n_transmitted.
func Refract(direction, n core.Vec3, eta float64) (core.Vec3, error) {
	cosI := math.Min(-direction.Dot(n), 1.0)
	sin2T := eta * eta * (1.0 - cosI*cosI)
	if sin2T > 1.0 {
		return core.Vec3{}, ErrTotalInternalReflection
	}

	cosT := math.Sqrt(1.0 - sin2T)
	refracted := direction.Multiply(eta).Add(n.Multiply(eta*cosI - cosT))
	return refracted.Normalize(), nil
}

// CriticalAngle returns the incidence angle above which light going from n1 into n2
// is totally internally reflected, and false when n1 <= n2
func CriticalAngle(n1, n2 float64) (float64, bool) {
	if n1 <= n2 {
		return 0, false
	}
	return math.Asin(n2 / n1), true
}
