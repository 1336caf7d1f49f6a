package lens

import (
	"fmt"
	"sort"

	"github.com/df07/go-optical-raytracer/pkg/analysis"
	"github.com/df07/go-optical-raytracer/pkg/optics"
)

// CrownGlass is the refractive index of N-BK7 at the sodium d-line
const CrownGlass = 1.5168

// Preset is a named lens system with the formula-predicted paraxial focus
type Preset struct {
	Name        string
	Description string
	BeamRadius  float64 // Largest collimated beam radius that fits the aperture
	build       func() ([]optics.Element, error)
	focus       func() (float64, error)
	focalLength func() (float64, error)
}

// Elements builds a fresh element list for the preset
func (p Preset) Elements() ([]optics.Element, error) {
	return p.build()
}

// System builds the lens system without a detector
func (p Preset) System() (*optics.System, error) {
	elements, err := p.build()
	if err != nil {
		return nil, err
	}
	return optics.NewSystem(elements...)
}

// SystemWithOutput builds the lens system followed by an output plane at z
func (p Preset) SystemWithOutput(z float64) (*optics.System, error) {
	elements, err := p.build()
	if err != nil {
		return nil, err
	}
	return optics.NewSystem(append(elements, optics.NewOutputPlane(z))...)
}

// Vertex returns the z of the first surface
func (p Preset) Vertex() (float64, error) {
	elements, err := p.build()
	if err != nil {
		return 0, err
	}
	if len(elements) == 0 {
		return 0, fmt.Errorf("lens %q has no elements: %w", p.Name, optics.ErrInvalidGeometry)
	}
	return elements[0].Vertex(), nil
}

// FocalLength returns the effective focal length, measured from the rear principal plane
func (p Preset) FocalLength() (float64, error) {
	return p.focalLength()
}

// PredictedFocus returns the paraxial focus given by the lens formulas
func (p Preset) PredictedFocus() (float64, error) {
	return p.focus()
}

var presets = map[string]Preset{
	"single-surface": {
		Name:        "single-surface",
		Description: "Single convex surface into n=1.5 glass, C=0.03 at z=100",
		BeamRadius:  5,
		build: func() ([]optics.Element, error) {
			surface, err := optics.NewSphericalRefraction(100, 0.03, 1.0, 1.5, 30)
			if err != nil {
				return nil, err
			}
			return []optics.Element{surface}, nil
		},
		focus: func() (float64, error) {
			return analysis.SingleSurfaceFocus(100, 0.03, 1.0, 1.5)
		},
		focalLength: func() (float64, error) {
			// The principal planes of a single surface sit at its vertex
			return analysis.SingleSurfaceFocus(0, 0.03, 1.0, 1.5)
		},
	},
	"plano-convex": {
		Name:        "plano-convex",
		Description: "Plano-convex singlet with the flat face toward the beam",
		BeamRadius:  10,
		build: func() ([]optics.Element, error) {
			return singlet(100, 5, 0, -0.02, 20)
		},
		focus: func() (float64, error) {
			return backFocus(100, 5, 0, -0.02)
		},
		focalLength: func() (float64, error) {
			return analysis.LensmakerFocalLength(CrownGlass, 0, -0.02, 5)
		},
	},
	"convex-plano": {
		Name:        "convex-plano",
		Description: "Plano-convex singlet with the curved face toward the beam",
		BeamRadius:  10,
		build: func() ([]optics.Element, error) {
			return singlet(100, 5, 0.02, 0, 20)
		},
		focus: func() (float64, error) {
			return backFocus(100, 5, 0.02, 0)
		},
		focalLength: func() (float64, error) {
			return analysis.LensmakerFocalLength(CrownGlass, 0.02, 0, 5)
		},
	},
	"biconvex": {
		Name:        "biconvex",
		Description: "Symmetric biconvex singlet, R=50 on both faces",
		BeamRadius:  10,
		build: func() ([]optics.Element, error) {
			return singlet(100, 8, 0.02, -0.02, 15)
		},
		focus: func() (float64, error) {
			return backFocus(100, 8, 0.02, -0.02)
		},
		focalLength: func() (float64, error) {
			return analysis.LensmakerFocalLength(CrownGlass, 0.02, -0.02, 8)
		},
	},
	"concave-mirror": {
		Name:        "concave-mirror",
		Description: "Spherical concave mirror at z=200, R=100",
		BeamRadius:  10,
		build: func() ([]optics.Element, error) {
			mirror, err := optics.NewMirror(200, -0.01, 20)
			if err != nil {
				return nil, err
			}
			return []optics.Element{mirror}, nil
		},
		focus: func() (float64, error) {
			// f = R/2 in front of the mirror
			return 200 + 1/(2*-0.01), nil
		},
		focalLength: func() (float64, error) {
			return 1 / (2 * 0.01), nil
		},
	},
}

// singlet builds a glass lens in air; zero curvature gives a flat face
func singlet(z0, thickness, c1, c2, aperture float64) ([]optics.Element, error) {
	front, err := face(z0, c1, 1.0, CrownGlass, aperture)
	if err != nil {
		return nil, fmt.Errorf("front face: %w", err)
	}
	back, err := face(z0+thickness, c2, CrownGlass, 1.0, aperture)
	if err != nil {
		return nil, fmt.Errorf("back face: %w", err)
	}
	return []optics.Element{front, back}, nil
}

func face(z0, curvature, n1, n2, aperture float64) (optics.Element, error) {
	if curvature == 0 {
		return optics.NewPlanarRefraction(z0, n1, n2, aperture)
	}
	return optics.NewSphericalRefraction(z0, curvature, n1, n2, aperture)
}

// backFocus returns the focus z of a thick singlet: back vertex plus the back focal distance
func backFocus(z0, thickness, c1, c2 float64) (float64, error) {
	f, err := analysis.LensmakerFocalLength(CrownGlass, c1, c2, thickness)
	if err != nil {
		return 0, err
	}
	bfd := f * (1 - (CrownGlass-1)*thickness*c1/CrownGlass)
	return z0 + thickness + bfd, nil
}

// Lookup returns the preset with the given name
func Lookup(name string) (Preset, error) {
	preset, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown lens %q (available: %v)", name, Names())
	}
	return preset, nil
}

// Names returns the preset names in sorted order
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
