package optics

import (
	"fmt"
)

// System is an ordered sequence of elements forming a lens assembly.
// Elements are ordered by increasing z, reversing after each reflective element.
// A System holds no ray state and can be shared by concurrent traces.
type System struct {
	elements []Element
	policy   TIRPolicy
}

// NewSystem creates a system from elements in the order light meets them
func NewSystem(elements ...Element) (*System, error) {
	if len(elements) == 0 {
		return nil, fmt.Errorf("system has no elements: %w", ErrInvalidGeometry)
	}

	forward := true
	for i, element := range elements {
		if element == nil {
			return nil, fmt.Errorf("element %d is nil: %w", i, ErrInvalidGeometry)
		}
		if i > 0 {
			prev, z := elements[i-1].Vertex(), element.Vertex()
			if (forward && z < prev) || (!forward && z > prev) {
				return nil, fmt.Errorf("element %d (%s) out of order after z=%g: %w", i, element, prev, ErrInvalidGeometry)
			}
		}
		if element.Reflective() {
			forward = !forward
		}
	}

	return &System{
		elements: append([]Element(nil), elements...),
		policy:   TIRTerminate,
	}, nil
}

// SetPolicy sets the total internal reflection policy
func (s *System) SetPolicy(policy TIRPolicy) {
	s.policy = policy
}

// Policy returns the total internal reflection policy
func (s *System) Policy() TIRPolicy {
	return s.policy
}

// Elements returns a copy of the element list
func (s *System) Elements() []Element {
	return append([]Element(nil), s.elements...)
}

// Trace passes a ray through every element in order, stopping at the first failure
func (s *System) Trace(ray *Ray) error {
	if ray.IsTerminated() {
		return ErrRayTerminated
	}
	for i, element := range s.elements {
		if err := Propagate(element, ray, s.policy); err != nil {
			return fmt.Errorf("element %d (%s): %w", i, element, err)
		}
	}
	return nil
}

// TraceBundle traces every ray independently and returns one result per ray
func (s *System) TraceBundle(rays []*Ray) []error {
	results := make([]error, len(rays))
	for i, ray := range rays {
		results[i] = s.Trace(ray)
	}
	return results
}
