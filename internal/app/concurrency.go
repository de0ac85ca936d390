package app

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// concurrently runs fns in parallel and returns the first error. The others
// see their context cancelled once one fails.
func concurrently(ctx context.Context, fns ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fn := range fns {
		g.Go(func() error { return fn(gctx) })
	}

	return g.Wait()
}

// FanOut calls fn for every item with at most workers calls in flight. It
// stops scheduling on the first error or when ctx ends, and reports either.
func FanOut[T any](ctx context.Context, workers int, items []T, fn func(context.Context, T) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for _, item := range items {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error { return fn(gctx, item) })
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("fan out: %w", err)
	}

	return nil
}

// writeQueue runs background writes one at a time in submission order.
// A write that has not started yet is replaced when a newer one arrives
// under the same key, so the store always ends on the latest value.
//
// The zero value is ready to use.
type writeQueue struct {
	mu      sync.Mutex
	keys    []string
	jobs    map[string]func()
	running bool
	workers sync.WaitGroup
}

// Submit queues job under key and starts the worker if it is idle.
func (q *writeQueue) Submit(key string, job func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.jobs == nil {
		q.jobs = make(map[string]func())
	}

	if _, queued := q.jobs[key]; !queued {
		q.keys = append(q.keys, key)
	}
	q.jobs[key] = job

	if !q.running {
		q.running = true
		q.workers.Go(q.drain)
	}
}

// Wait blocks until the queue is empty and the worker has exited.
func (q *writeQueue) Wait() {
	q.workers.Wait()
}

func (q *writeQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.keys) == 0 {
			q.running = false
			q.mu.Unlock()

			return
		}

		key := q.keys[0]
		q.keys = q.keys[1:]
		job := q.jobs[key]
		delete(q.jobs, key)
		q.mu.Unlock()

		job()
	}
}
