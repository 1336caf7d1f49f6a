package tracer

// TraceConfig contains bundle tracing configuration
type TraceConfig struct {
	NumWorkers int // Number of parallel workers (0 = use CPU count, 1 = trace inline)
	BatchSize  int // Rays handed to a worker per task
}

// DefaultTraceConfig returns sensible default values
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		NumWorkers: 0,   // Auto-detect CPU count
		BatchSize:  256, // Large enough to amortize channel traffic for cheap traces
	}
}

// MergeTraceConfig overrides the fields of base with the usable fields of override.
// Non-positive worker counts mean auto-detect; non-positive batch sizes are ignored.
func MergeTraceConfig(base, override TraceConfig) TraceConfig {
	if override.NumWorkers > 0 {
		base.NumWorkers = override.NumWorkers
	}
	if override.BatchSize > 0 {
		base.BatchSize = override.BatchSize
	}
	if base.BatchSize <= 0 {
		base.BatchSize = DefaultTraceConfig().BatchSize
	}
	return base
}
