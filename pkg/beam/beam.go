// Package beam builds bundles of rays for tracing through an optical system.
package beam

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-optical-raytracer/pkg/core"
	"github.com/df07/go-optical-raytracer/pkg/optics"
)

// ErrInvalidBeam is returned when beam parameters cannot produce a bundle
var ErrInvalidBeam = errors.New("invalid beam")

// CollimatedRings creates a parallel beam of concentric rings in the plane z.
// The bundle holds a central ray plus counts[i] evenly spaced rays on a ring of radii[i].
func CollimatedRings(radii []float64, counts []int, z float64, direction core.Vec3) ([]*optics.Ray, error) {
	if len(radii) != len(counts) {
		return nil, fmt.Errorf("%d radii but %d ring counts: %w", len(radii), len(counts), ErrInvalidBeam)
	}

	origins := []core.Vec3{core.NewVec3(0, 0, z)}
	for i, radius := range radii {
		if !(radius > 0) || counts[i] <= 0 {
			return nil, fmt.Errorf("ring %d radius %g count %d: %w", i, radius, counts[i], ErrInvalidBeam)
		}
		step := 2 * math.Pi / float64(counts[i])
		for j := 0; j < counts[i]; j++ {
			angle := float64(j) * step
			origins = append(origins, core.NewVec3(radius*math.Cos(angle), radius*math.Sin(angle), z))
		}
	}

	return parallelRays(origins, direction)
}

// EvenRings creates rings out to radius with ring i holding perRing*i rays,
// which keeps the ray density roughly uniform across the disc
func EvenRings(radius float64, rings, perRing int, z float64, direction core.Vec3) ([]*optics.Ray, error) {
	if !(radius > 0) || rings <= 0 || perRing <= 0 {
		return nil, fmt.Errorf("radius %g rings %d per ring %d: %w", radius, rings, perRing, ErrInvalidBeam)
	}
	radii := make([]float64, rings)
	counts := make([]int, rings)
	for i := range radii {
		radii[i] = radius * float64(i+1) / float64(rings)
		counts[i] = perRing * (i + 1)
	}
	return CollimatedRings(radii, counts, z, direction)
}

// UniformDisc creates n parallel rays with origins sampled uniformly over a disc in the plane z
func UniformDisc(radius float64, n int, z float64, direction core.Vec3, sampler core.Sampler) ([]*optics.Ray, error) {
	if !(radius > 0) || n <= 0 || sampler == nil {
		return nil, fmt.Errorf("radius %g count %d: %w", radius, n, ErrInvalidBeam)
	}

	origins := make([]core.Vec3, n)
	for i := range origins {
		p := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(radius)
		origins[i] = core.NewVec3(p.X, p.Y, z)
	}
	return parallelRays(origins, direction)
}

// Grid creates parallel rays on a square grid of perSide x perSide points, keeping those inside radius
func Grid(radius float64, perSide int, z float64, direction core.Vec3) ([]*optics.Ray, error) {
	if !(radius > 0) || perSide < 2 {
		return nil, fmt.Errorf("radius %g per side %d: %w", radius, perSide, ErrInvalidBeam)
	}

	step := 2 * radius / float64(perSide-1)
	var origins []core.Vec3
	for i := 0; i < perSide; i++ {
		for j := 0; j < perSide; j++ {
			p := core.NewVec3(-radius+float64(i)*step, -radius+float64(j)*step, z)
			if p.RadialSquared() <= radius*radius*(1+1e-12) {
				origins = append(origins, p)
			}
		}
	}
	return parallelRays(origins, direction)
}

// PointFan creates rays diverging from a single point around the +z axis.
// Ring i of rings is at polar angle halfAngle*i/rings and holds perRing*i rays.
func PointFan(origin core.Vec3, halfAngle float64, rings, perRing int) ([]*optics.Ray, error) {
	if !(halfAngle > 0) || halfAngle >= math.Pi/2 || rings <= 0 || perRing <= 0 {
		return nil, fmt.Errorf("half angle %g rings %d per ring %d: %w", halfAngle, rings, perRing, ErrInvalidBeam)
	}

	directions := []core.Vec3{core.NewVec3(0, 0, 1)}
	for i := 1; i <= rings; i++ {
		theta := halfAngle * float64(i) / float64(rings)
		count := perRing * i
		for j := 0; j < count; j++ {
			phi := 2 * math.Pi * float64(j) / float64(count)
			directions = append(directions, core.NewVec3(
				math.Sin(theta)*math.Cos(phi),
				math.Sin(theta)*math.Sin(phi),
				math.Cos(theta),
			))
		}
	}

	rays := make([]*optics.Ray, len(directions))
	for i, direction := range directions {
		ray, err := optics.NewRay(origin, direction)
		if err != nil {
			return nil, err
		}
		rays[i] = ray
	}
	return rays, nil
}

// ConeSample creates n rays from origin with directions drawn uniformly inside a cone
func ConeSample(origin, axis core.Vec3, halfAngle float64, n int, sampler core.Sampler) ([]*optics.Ray, error) {
	if !(halfAngle > 0) || halfAngle >= math.Pi/2 || n <= 0 || sampler == nil || axis.IsZero() {
		return nil, fmt.Errorf("half angle %g count %d: %w", halfAngle, n, ErrInvalidBeam)
	}

	cosWidth := math.Cos(halfAngle)
	rays := make([]*optics.Ray, n)
	for i := range rays {
		ray, err := optics.NewRay(origin, core.SampleCone(axis, cosWidth, sampler.Get2D()))
		if err != nil {
			return nil, err
		}
		rays[i] = ray
	}
	return rays, nil
}

func parallelRays(origins []core.Vec3, direction core.Vec3) ([]*optics.Ray, error) {
	rays := make([]*optics.Ray, len(origins))
	for i, origin := range origins {
		ray, err := optics.NewRay(origin, direction)
		if err != nil {
			return nil, err
		}
		rays[i] = ray
	}
	return rays, nil
}
