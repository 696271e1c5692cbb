// Package pool manages a fixed group of worker threads and shuts them down
// without losing work: each worker finishes everything queued to it before it
// stops.
package pool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/threadcall/internal/invoke"
	"github.com/sevigo/threadcall/internal/loop"
)

// ErrInvalidSize is returned by New when the pool would have no workers.
var ErrInvalidSize = errors.New("pool: size must be positive")

// Pool is a set of worker threads plus a control thread that owns their
// lifecycle.
type Pool struct {
	control  *loop.Thread
	workers  []*loop.Thread
	next     atomic.Uint64
	logger   *slog.Logger
	observer loop.Observer
	prefix   string

	shutdownOnce sync.Once
	shutdownErr  error
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger used by the pool and its threads.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) { p.logger = l }
}

// WithObserver sets the observer attached to every worker thread.
func WithObserver(o loop.Observer) Option {
	return func(p *Pool) { p.observer = o }
}

// WithNamePrefix sets the prefix of worker thread names. Workers are named
// <prefix>_<index>.
func WithNamePrefix(prefix string) Option {
	return func(p *Pool) { p.prefix = prefix }
}

// New creates and starts a pool of size worker threads.
func New(size int, opts ...Option) (*Pool, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	p := &Pool{
		logger:   slog.Default(),
		observer: loop.NopObserver{},
		prefix:   "thread",
	}
	for _, opt := range opts {
		opt(p)
	}

	p.control = loop.New(p.prefix+"_control", loop.WithLogger(p.logger))
	if err := p.control.Start(); err != nil {
		return nil, fmt.Errorf("failed to start control thread: %w", err)
	}

	p.workers = make([]*loop.Thread, size)
	for i := range p.workers {
		p.workers[i] = loop.New(fmt.Sprintf("%s_%d", p.prefix, i),
			loop.WithLogger(p.logger),
			loop.WithObserver(p.observer),
			loop.WithOwner(p.control),
		)
		if err := p.workers[i].Start(); err != nil {
			p.abort(i)
			return nil, fmt.Errorf("failed to start worker %d: %w", i, err)
		}
	}

	p.logger.Info("thread pool started", "workers", size)
	return p, nil
}

// abort quits the control thread and the first n workers.
func (p *Pool) abort(n int) {
	for _, w := range p.workers[:n] {
		w.Quit()
	}
	p.control.Quit()
}

// Size returns the number of worker threads.
func (p *Pool) Size() int { return len(p.workers) }

// Thread returns worker i.
func (p *Pool) Thread(i int) *loop.Thread { return p.workers[i] }

// Threads returns all worker threads in index order.
func (p *Pool) Threads() []*loop.Thread {
	return append([]*loop.Thread(nil), p.workers...)
}

// Next returns worker threads in round-robin order.
func (p *Pool) Next() *loop.Thread {
	n := p.next.Add(1) - 1
	return p.workers[n%uint64(len(p.workers))]
}

// Shutdown drains and stops every worker. Each worker runs all the tasks that
// were queued to it before Shutdown was called, then quits through the pool's
// control thread. Shutdown waits for all workers until ctx is done. Calling
// Shutdown again returns the result of the first call.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() {
		p.shutdownErr = p.shutdown(ctx)
	})
	return p.shutdownErr
}

func (p *Pool) shutdown(ctx context.Context) error {
	p.logger.Info("draining thread pool", "workers", len(p.workers))

	for _, w := range p.workers {
		if !invoke.QuitWhenDrained(w) {
			p.logger.Warn("worker already stopped", "thread", w.Name())
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range p.workers {
		g.Go(func() error {
			return w.Wait(gctx)
		})
	}
	err := g.Wait()

	// The control thread has delivered every Quit once all workers are done.
	if stopErr := p.control.Stop(ctx); err == nil {
		err = stopErr
	}
	if err != nil {
		return fmt.Errorf("thread pool shutdown: %w", err)
	}

	p.logger.Info("thread pool stopped")
	return nil
}
