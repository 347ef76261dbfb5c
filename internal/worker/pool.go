// Package worker provides the small pool and rate limiter used for
// concurrent per-deputy detail lookups. The source aggregation itself stays
// strictly sequential.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is a job outcome.
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed number of goroutines.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeQueue sync.Once
	closeOnce  sync.Once
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Close marks the queue complete. Workers drain the remaining jobs, then the
// results channel closes. Must not be called while another goroutine is
// still inside Submit.
func (p *Pool) Close() {
	p.closeQueue.Do(func() {
		close(p.jobQueue)
		go func() {
			p.wg.Wait()
			p.closeResults()
		}()
	})
}

// Results exposes the result stream. The channel closes after Close once
// every worker has exited.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Wait closes the queue, waits for the workers and returns all results.
// The queue and result buffers together hold only a few times the worker
// count, so a caller queuing more jobs than that must submit from a
// separate goroutine (ending with Close) and range over Results instead;
// Wait cannot unblock a Submit running in its own goroutine.
func (p *Pool) Wait() []Result {
	p.Close()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Shutdown cancels outstanding work.
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
