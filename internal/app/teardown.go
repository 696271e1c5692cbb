package app

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sevigo/threadcall/internal/core"
	"github.com/sevigo/threadcall/internal/invoke"
	"github.com/sevigo/threadcall/internal/loop"
	"github.com/sevigo/threadcall/internal/pool"
)

// ErrIncomplete is returned by RunTeardown when some posted tasks did not run
// on their target thread before the pool stopped.
var ErrIncomplete = errors.New("not every task completed on its thread")

// TeardownReport summarises one teardown run.
type TeardownReport struct {
	Threads        int
	TasksPerThread int
	Posted         int
	Completed      int
	Misplaced      int
	Elapsed        time.Duration
}

// Expected returns the number of tasks the run should have completed.
func (r *TeardownReport) Expected() int { return r.Threads * r.TasksPerThread }

// OK reports whether every task ran, each on the thread it was posted to.
func (r *TeardownReport) OK() bool {
	return r.Posted == r.Expected() && r.Completed == r.Expected() && r.Misplaced == 0
}

// RunTeardown starts a pool of worker threads, posts a batch of sleeping tasks
// to each, and then asks every worker to quit once its queue is drained. The
// run succeeds only if every task completed on the thread it was posted to.
func (a *App) RunTeardown(ctx context.Context) (*TeardownReport, error) {
	report := &TeardownReport{
		Threads:        a.cfg.Threads,
		TasksPerThread: a.cfg.TasksPerThread,
	}

	p, err := pool.New(a.cfg.Threads,
		pool.WithLogger(a.logger),
		pool.WithObserver(a.metrics),
		pool.WithNamePrefix("worker"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start worker pool: %w", err)
	}

	a.logger.Info("running teardown scenario",
		"threads", a.cfg.Threads,
		"tasks_per_thread", a.cfg.TasksPerThread,
		"task_duration", a.cfg.TaskDuration)

	var completed, misplaced atomic.Int64
	work := func(target core.ThreadID, d time.Duration) {
		time.Sleep(d)
		if loop.CurrentID() != target {
			misplaced.Add(1)
		}
		completed.Add(1)
	}

	start := time.Now()
	for _, w := range p.Threads() {
		for range a.cfg.TasksPerThread {
			if invoke.Func2(w, work, w.ID(), a.cfg.TaskDuration) {
				report.Posted++
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.ShutdownTimeout)
	defer cancel()
	err = p.Shutdown(shutdownCtx)

	report.Elapsed = time.Since(start)
	report.Completed = int(completed.Load())
	report.Misplaced = int(misplaced.Load())

	if err != nil {
		return report, err
	}
	if !report.OK() {
		a.logger.Error("teardown scenario lost tasks",
			"expected", report.Expected(),
			"posted", report.Posted,
			"completed", report.Completed,
			"misplaced", report.Misplaced)
		return report, fmt.Errorf("%w: %d of %d completed, %d on the wrong thread",
			ErrIncomplete, report.Completed, report.Expected(), report.Misplaced)
	}

	a.logger.Info("teardown scenario finished",
		"completed", report.Completed,
		"elapsed", report.Elapsed)
	return report, nil
}
