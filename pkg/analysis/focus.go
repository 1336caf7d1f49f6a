package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-optical-raytracer/pkg/core"
	"github.com/df07/go-optical-raytracer/pkg/optics"
)

// ErrNoFocus is returned when a system or formula has no finite focus
var ErrNoFocus = errors.New("no finite focus")

// ParaxialFocus traces a ray parallel to the axis at a small height and returns
// the z where it crosses the optical axis after the last element
func ParaxialFocus(system *optics.System, height float64) (float64, error) {
	if !(height > 0) {
		return 0, fmt.Errorf("paraxial height %g must be positive", height)
	}

	elements := system.Elements()
	start := elements[0].Vertex() - 1
	ray, err := optics.NewRay(core.NewVec3(height, 0, start), core.NewVec3(0, 0, 1))
	if err != nil {
		return 0, err
	}
	if err := system.Trace(ray); err != nil {
		return 0, fmt.Errorf("tracing paraxial ray: %w", err)
	}

	p, d := ray.Position(), ray.Direction()
	if math.Abs(d.X) < 1e-15 {
		return 0, fmt.Errorf("output ray is parallel to the axis: %w", ErrNoFocus)
	}
	return p.Z - p.X*d.Z/d.X, nil
}

// SingleSurfaceFocus returns the paraxial focus of a single spherical surface
// with its vertex at z0 for light arriving parallel to the axis from the n1 side
func SingleSurfaceFocus(z0, curvature, n1, n2 float64) (float64, error) {
	if curvature == 0 || n1 == n2 {
		return 0, ErrNoFocus
	}
	return z0 + n2/((n2-n1)*curvature), nil
}

// LensmakerFocalLength returns the effective focal length of a lens of index n in air,
// with surface curvatures c1 and c2 and centre thickness
func LensmakerFocalLength(n, c1, c2, thickness float64) (float64, error) {
	power := (n - 1) * (c1 - c2 + (n-1)*thickness*c1*c2/n)
	if power == 0 {
		return 0, ErrNoFocus
	}
	return 1 / power, nil
}

// ThinLensImageDistance returns the image distance for an object at objectDistance
// in front of a thin lens of focal length f (both measured from the lens, positive distances)
func ThinLensImageDistance(f, objectDistance float64) (float64, error) {
	if f == 0 || objectDistance == f {
		return 0, ErrNoFocus
	}
	return 1 / (1/f - 1/objectDistance), nil
}

// DiffractionScale returns the diffraction-limited spot scale λf/D for a beam of
// the given radius, to compare against RMS spot sizes
func DiffractionScale(wavelength, focalLength, beamRadius float64) (float64, error) {
	if !(beamRadius > 0) || !(wavelength > 0) {
		return 0, fmt.Errorf("wavelength %g beam radius %g must be positive", wavelength, beamRadius)
	}
	return wavelength * math.Abs(focalLength) / (2 * beamRadius), nil
}

// FocalScan returns the RMS radius of the bundle at each plane in zs
func FocalScan(rays []*optics.Ray, zs []float64) ([]float64, error) {
	rms := make([]float64, len(zs))
	for i, z := range zs {
		value, err := RMSAtPlane(rays, z)
		if err != nil {
			return nil, err
		}
		rms[i] = value
	}
	return rms, nil
}

// BestFocus scans [lo, hi] in steps and then refines around the smallest RMS
// radius, returning the plane and its RMS radius
func BestFocus(rays []*optics.Ray, lo, hi float64, steps int) (float64, float64, error) {
	if steps < 2 || !(hi > lo) {
		return 0, 0, fmt.Errorf("focus scan [%g, %g] with %d steps", lo, hi, steps)
	}

	bestZ, bestRMS := lo, math.Inf(1)
	// Two passes: coarse over the whole range, then fine over the neighbouring steps
	for pass := 0; pass < 2; pass++ {
		step := (hi - lo) / float64(steps-1)
		for i := 0; i < steps; i++ {
			z := lo + float64(i)*step
			rms, err := RMSAtPlane(rays, z)
			if err != nil {
				return 0, 0, err
			}
			if rms < bestRMS {
				bestZ, bestRMS = z, rms
			}
		}
		lo, hi = bestZ-step, bestZ+step
	}

	return bestZ, bestRMS, nil
}
