package tracer

import (
	"errors"

	"github.com/df07/go-optical-raytracer/pkg/optics"
)

// TraceStats summarizes the outcome of tracing a bundle
type TraceStats struct {
	Total                   int // Rays submitted
	Reached                 int // Rays that passed every element
	NoIntersection          int // Rays that missed a surface or aperture
	TotalInternalReflection int // Rays stopped by total internal reflection
	Skipped                 int // Rays that were already terminated
	Failed                  int // Rays lost for any other reason
}

// Lost returns the number of rays that did not reach the last element
func (s TraceStats) Lost() int {
	return s.Total - s.Reached
}

// Transmission returns the fraction of rays that reached the last element
func (s TraceStats) Transmission() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Reached) / float64(s.Total)
}

// AddResult classifies a single trace result
func (s *TraceStats) AddResult(err error) {
	s.Total++
	switch {
	case err == nil:
		s.Reached++
	case errors.Is(err, optics.ErrNoIntersection):
		s.NoIntersection++
	case errors.Is(err, optics.ErrTotalInternalReflection):
		s.TotalInternalReflection++
	case errors.Is(err, optics.ErrRayTerminated):
		s.Skipped++
	default:
		s.Failed++
	}
}

// StatsFromResults builds stats from per-ray trace results
func StatsFromResults(results []error) TraceStats {
	var stats TraceStats
	for _, err := range results {
		stats.AddResult(err)
	}
	return stats
}
