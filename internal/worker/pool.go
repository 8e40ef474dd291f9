package worker

import (
	"context"
	"sync"

	"github.com/ternarybob/arbor"
)

type task struct {
	fn   func()
	done chan struct{}
}

// Pool runs CPU-bound work on a fixed set of goroutines so composition does
// not monopolize the request-serving path. Submitters block until their
// task completes, keeping the orchestration logic sequential.
type Pool struct {
	tasks      chan task
	logger     arbor.ILogger
	numWorkers int
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewPool creates a pool with the given number of workers
func NewPool(numWorkers int, logger arbor.ILogger) *Pool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		tasks:      make(chan task),
		logger:     logger,
		numWorkers: numWorkers,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the worker goroutines
func (p *Pool) Start() {
	p.logger.Info().
		Int("num_workers", p.numWorkers).
		Msg("Starting worker pool")

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Stop stops the worker pool gracefully
func (p *Pool) Stop() {
	p.logger.Info().Msg("Stopping worker pool...")
	p.cancel()
	p.wg.Wait()
	p.logger.Info().Msg("Worker pool stopped")
}

// Run executes fn on a pool worker and waits for it to finish. Returns the
// context error if the caller's context or the pool is cancelled first.
func (p *Pool) Run(ctx context.Context, fn func()) error {
	t := task{fn: fn, done: make(chan struct{})}

	select {
	case p.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return p.ctx.Err()
	}

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) worker(workerID int) {
	defer p.wg.Done()

	p.logger.Debug().
		Int("worker_id", workerID).
		Msg("Worker started")

	for {
		select {
		case <-p.ctx.Done():
			p.logger.Debug().
				Int("worker_id", workerID).
				Msg("Worker stopping")
			return
		case t := <-p.tasks:
			t.fn()
			close(t.done)
		}
	}
}
