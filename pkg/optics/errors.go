package optics

import "errors"

var (
	// ErrInvalidGeometry is returned when surface or system parameters cannot describe a valid element
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidVector is returned for zero or non-finite ray vectors
	ErrInvalidVector = errors.New("invalid vector")

	// ErrInvalidPropagation is returned when a ray is asked to move a negative or non-finite distance
	ErrInvalidPropagation = errors.New("invalid propagation distance")

	// ErrNoIntersection is returned when a ray misses a surface or lands outside its aperture
	ErrNoIntersection = errors.New("no intersection")

	// ErrTotalInternalReflection is returned when Snell's law has no real solution
	ErrTotalInternalReflection = errors.New("total internal reflection")

	// ErrRayTerminated is returned when tracing a ray that was already lost
	ErrRayTerminated = errors.New("ray already terminated")
)
