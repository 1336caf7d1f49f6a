package tracer

import (
	"runtime"
	"sync"

	"github.com/df07/go-optical-raytracer/pkg/optics"
)

// TraceTask is a contiguous batch of rays for one worker
type TraceTask struct {
	TaskID int
	Start  int           // Index of the first ray in the bundle
	Rays   []*optics.Ray // Rays owned by this task until its result is sent
}

// TraceResult contains the per-ray results of a task
type TraceResult struct {
	TaskID  int
	Start   int
	Results []error
}

// WorkerPool manages parallel ray tracing
type WorkerPool struct {
	taskQueue   chan TraceTask
	resultQueue chan TraceResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker traces batches of rays through a shared system
type Worker struct {
	ID          int
	system      *optics.System
	taskQueue   chan TraceTask
	resultQueue chan TraceResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(system *optics.System, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueSize <= 0 {
		queueSize = numWorkers
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TraceTask, queueSize),
		resultQueue: make(chan TraceResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			system:      system,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a task to the worker pool
func (wp *WorkerPool) SubmitTask(task TraceTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed task result
func (wp *WorkerPool) GetResult() (TraceResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Each ray belongs to exactly one task, so no two workers touch the same ray
		w.resultQueue <- TraceResult{
			TaskID:  task.TaskID,
			Start:   task.Start,
			Results: w.system.TraceBundle(task.Rays),
		}
	}
}
