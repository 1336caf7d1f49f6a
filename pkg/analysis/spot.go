// Package analysis evaluates the imaging quality of traced ray bundles.
package analysis

import (
	"errors"
	"math"

	"github.com/df07/go-optical-raytracer/pkg/core"
	"github.com/df07/go-optical-raytracer/pkg/optics"
)

// ErrNoRays is returned when there are no live rays to measure
var ErrNoRays = errors.New("no rays to analyse")

// SpotPositions returns the current positions of rays that were not lost
func SpotPositions(rays []*optics.Ray) []core.Vec3 {
	points := make([]core.Vec3, 0, len(rays))
	for _, ray := range rays {
		if ray.IsTerminated() {
			continue
		}
		points = append(points, ray.Position())
	}
	return points
}

// SpotDiagram projects points onto the xy plane
func SpotDiagram(points []core.Vec3) []core.Vec2 {
	spots := make([]core.Vec2, len(points))
	for i, p := range points {
		spots[i] = core.NewVec2(p.X, p.Y)
	}
	return spots
}

// Centroid returns the mean position of the points
func Centroid(points []core.Vec3) (core.Vec3, error) {
	if len(points) == 0 {
		return core.Vec3{}, ErrNoRays
	}
	var sum core.Vec3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Multiply(1.0 / float64(len(points))), nil
}

// RMSRadius returns the root-mean-square distance of the points from the optical axis
func RMSRadius(points []core.Vec3) (float64, error) {
	if len(points) == 0 {
		return 0, ErrNoRays
	}
	var sum float64
	for _, p := range points {
		sum += p.RadialSquared()
	}
	return math.Sqrt(sum / float64(len(points))), nil
}

// RMSAboutCentroid returns the root-mean-square transverse distance of the points
// from their own centroid, for spots that are not centred on the axis
func RMSAboutCentroid(points []core.Vec3) (float64, error) {
	centroid, err := Centroid(points)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, p := range points {
		sum += p.Subtract(centroid).RadialSquared()
	}
	return math.Sqrt(sum / float64(len(points))), nil
}

// PositionsAtPlane extends each live ray along its current direction to the plane z.
// Rays are not modified; rays parallel to the plane are skipped.
func PositionsAtPlane(rays []*optics.Ray, z float64) []core.Vec3 {
	points := make([]core.Vec3, 0, len(rays))
	for _, ray := range rays {
		if ray.IsTerminated() {
			continue
		}
		p, d := ray.Position(), ray.Direction()
		if math.Abs(d.Z) < 1e-12 {
			continue
		}
		point := p.Add(d.Multiply((z - p.Z) / d.Z))
		point.Z = z
		points = append(points, point)
	}
	return points
}

// RMSAtPlane returns the RMS radius of the live rays extended to the plane z
func RMSAtPlane(rays []*optics.Ray, z float64) (float64, error) {
	return RMSRadius(PositionsAtPlane(rays, z))
}
