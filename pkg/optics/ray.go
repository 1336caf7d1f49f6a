package optics

import (
	"fmt"
	"math"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// Vertex is a single recorded ray state
type Vertex struct {
	Position  core.Vec3
	Direction core.Vec3
}

// Ray is a light ray with a current position, unit direction and the states it passed through.
// A Ray is mutated in place by the elements it is traced through and must not be
// shared between goroutines while a trace is running.
type Ray struct {
	position   core.Vec3
	direction  core.Vec3
	history    []Vertex
	terminated bool
}

// NewRay creates a ray; the direction is normalized
func NewRay(position, direction core.Vec3) (*Ray, error) {
	if !position.IsFinite() {
		return nil, fmt.Errorf("ray position %v: %w", position, ErrInvalidVector)
	}
	if direction.IsZero() || !direction.IsFinite() {
		return nil, fmt.Errorf("ray direction %v: %w", direction, ErrInvalidVector)
	}
	return &Ray{
		position:  position,
		direction: direction.Normalize(),
	}, nil
}

// Position returns the current position
func (r *Ray) Position() core.Vec3 {
	return r.position
}

// Direction returns the current unit direction
func (r *Ray) Direction() core.Vec3 {
	return r.direction
}

// Path returns every recorded state in traversal order, ending with the current one
func (r *Ray) Path() []Vertex {
	path := make([]Vertex, 0, len(r.history)+1)
	path = append(path, r.history...)
	return append(path, Vertex{Position: r.position, Direction: r.direction})
}

// Vertices returns the positions along the path, ending with the current position
func (r *Ray) Vertices() []core.Vec3 {
	points := make([]core.Vec3, 0, len(r.history)+1)
	for _, v := range r.history {
		points = append(points, v.Position)
	}
	return append(points, r.position)
}

// Propagate moves the ray distance units along its direction
func (r *Ray) Propagate(distance float64) error {
	if distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return fmt.Errorf("distance %g: %w", distance, ErrInvalidPropagation)
	}
	r.Advance(r.position.Add(r.direction.Multiply(distance)), r.direction)
	return nil
}

// Advance records the current state and moves the ray to point with a new direction
func (r *Ray) Advance(point, direction core.Vec3) {
	r.history = append(r.history, Vertex{Position: r.position, Direction: r.direction})
	r.position = point
	r.direction = direction.Normalize()
}

// Terminate marks the ray as lost; later traces skip it
func (r *Ray) Terminate() {
	r.terminated = true
}

// IsTerminated reports whether the ray has been lost
func (r *Ray) IsTerminated() bool {
	return r.terminated
}

// Clone returns an independent copy of the ray including its history
func (r *Ray) Clone() *Ray {
	clone := *r
	clone.history = append([]Vertex(nil), r.history...)
	return &clone
}

func (r *Ray) String() string {
	return fmt.Sprintf("Ray(position=%v, direction=%v)", r.position, r.direction)
}
