package workers

import (
	"context"
	"sync"
)

// Workers runs a fixed set of workers side by side.
type Workers struct {
	workers []Worker
	wg      sync.WaitGroup
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and returns.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.Run(ctx)
		}()
	}
}

// Wait blocks until every started worker has returned.
func (w *Workers) Wait() {
	w.wg.Wait()
}
