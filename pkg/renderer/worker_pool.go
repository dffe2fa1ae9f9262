package renderer

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
)

// ScanlineTask represents a scanline rendering task for the worker pool
type ScanlineTask struct {
	Row  int   // Scanline index, 0 is the bottom of the image
	Seed int64 // Seed for the scanline's private random source
}

// ScanlineResult contains the result from rendering a scanline
type ScanlineResult struct {
	Row    int
	Pixels []PixelStats
	Error  error
}

// WorkerPool manages parallel scanline rendering
type WorkerPool struct {
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual scanline rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// numWorkers <= 0 uses one worker per CPU. Queues are buffered for maxTasks scanlines.
func NewWorkerPool(raytracer *Raytracer, maxTasks, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan ScanlineTask, maxTasks),
		resultQueue: make(chan ScanlineResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   raytracer,
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

// SubmitTask submits a scanline task to the worker pool
func (wp *WorkerPool) SubmitTask(task ScanlineTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed scanline result
func (wp *WorkerPool) GetResult() (ScanlineResult, bool) {
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
		w.resultQueue <- w.render(task)
	}
}

// render traces one scanline, converting a panic from the scanline into an error result
func (w *Worker) render(task ScanlineTask) (result ScanlineResult) {
	result.Row = task.Row
	defer func() {
		if r := recover(); r != nil {
			result.Pixels = nil
			if err, ok := r.(error); ok {
				result.Error = fmt.Errorf("scanline %d: %w", task.Row, err)
			} else {
				result.Error = fmt.Errorf("scanline %d: %v", task.Row, r)
			}
		}
	}()

	random := rand.New(rand.NewSource(task.Seed))
	result.Pixels = w.raytracer.RenderScanline(task.Row, random)
	return result
}
