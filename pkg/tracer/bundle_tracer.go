package tracer

import (
	"time"

	"github.com/df07/go-optical-raytracer/pkg/core"
	"github.com/df07/go-optical-raytracer/pkg/optics"
)

// BundleTracer traces ray bundles through a system, optionally in parallel
type BundleTracer struct {
	system *optics.System
	config TraceConfig
	logger core.Logger
}

// NewBundleTracer creates a bundle tracer; a nil logger discards output
func NewBundleTracer(system *optics.System, config TraceConfig, logger core.Logger) *BundleTracer {
	if logger == nil {
		logger = discardLogger{}
	}
	return &BundleTracer{
		system: system,
		config: MergeTraceConfig(DefaultTraceConfig(), config),
		logger: logger,
	}
}

// Config returns the effective configuration
func (bt *BundleTracer) Config() TraceConfig {
	return bt.config
}

// TraceBundle traces every ray and returns aggregate stats plus one result per ray.
// Per-ray outcomes are identical to calling System.Trace on each ray in turn.
func (bt *BundleTracer) TraceBundle(rays []*optics.Ray) (TraceStats, []error) {
	startTime := time.Now()

	var results []error
	if bt.config.NumWorkers == 1 || len(rays) <= bt.config.BatchSize {
		results = bt.system.TraceBundle(rays)
	} else {
		results = bt.traceParallel(rays)
	}

	stats := StatsFromResults(results)
	bt.logger.Printf("Traced %d rays in %v: %d reached, %d missed, %d total internal reflection\n",
		stats.Total, time.Since(startTime), stats.Reached, stats.NoIntersection, stats.TotalInternalReflection)

	return stats, results
}

func (bt *BundleTracer) traceParallel(rays []*optics.Ray) []error {
	batchSize := bt.config.BatchSize
	numTasks := (len(rays) + batchSize - 1) / batchSize

	pool := NewWorkerPool(bt.system, bt.config.NumWorkers, numTasks)
	pool.Start()

	bt.logger.Printf("Tracing %d rays in %d batches (using %d workers)...\n",
		len(rays), numTasks, pool.GetNumWorkers())

	for taskID := 0; taskID < numTasks; taskID++ {
		start := taskID * batchSize
		end := min(start+batchSize, len(rays))
		pool.SubmitTask(TraceTask{
			TaskID: taskID,
			Start:  start,
			Rays:   rays[start:end],
		})
	}

	results := make([]error, len(rays))
	for received := 0; received < numTasks; received++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		copy(results[result.Start:], result.Results)
	}

	pool.Stop()
	return results
}
