package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/sevigo/threadcall/internal/core"
	"github.com/sevigo/threadcall/internal/invoke"
	"github.com/sevigo/threadcall/internal/loop"
)

// Call describes one invocation made by Demo.
type Call struct {
	Label    string
	Caller   core.ThreadID
	Executor core.ThreadID
	Inline   bool
	Result   string
}

type tally struct {
	mu    sync.Mutex
	total int
}

func (t *tally) Add(n int) {
	t.mu.Lock()
	t.total += n
	t.mu.Unlock()
}

func (t *tally) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Demo starts a single thread and invokes work on it from outside and from
// inside, once for each calling form. Calls made from the thread itself run
// inline; the others are queued.
func (a *App) Demo(ctx context.Context) ([]Call, error) {
	target := loop.New("demo", loop.WithLogger(a.logger), loop.WithObserver(a.metrics))
	if err := target.Start(); err != nil {
		return nil, fmt.Errorf("failed to start demo thread: %w", err)
	}
	defer func() {
		if err := target.Stop(ctx); err != nil {
			a.logger.Warn("demo thread did not stop", "error", err)
		}
	}()

	var (
		mu    sync.Mutex
		calls []Call
		wg    sync.WaitGroup
	)
	record := func(label string, caller core.ThreadID, result string) {
		executor := loop.CurrentID()
		mu.Lock()
		calls = append(calls, Call{
			Label:    label,
			Caller:   caller,
			Executor: executor,
			Inline:   executor == caller,
			Result:   result,
		})
		mu.Unlock()
		wg.Done()
	}

	counter := &tally{}
	invokeAll := func(prefix string) error {
		caller := loop.CurrentID()

		wg.Add(1)
		if !invoke.Func(target, func() { record(prefix+" func", caller, "") }) {
			wg.Done()
			return fmt.Errorf("%s func: thread rejected the call", prefix)
		}

		wg.Add(1)
		if !invoke.Func2(target, func(word string, n int) {
			record(prefix+" func2", caller, fmt.Sprintf("%s=%d", word, n))
		}, "answer", 42) {
			wg.Done()
			return fmt.Errorf("%s func2: thread rejected the call", prefix)
		}

		wg.Add(1)
		ok := invoke.Method1(target, counter, (*tally).Add, 5) &&
			invoke.Func(target, func() {
				record(prefix+" method", caller, fmt.Sprintf("total=%d", counter.Total()))
			})
		if !ok {
			wg.Done()
			return fmt.Errorf("%s method: thread rejected the call", prefix)
		}

		wg.Add(1)
		ok, err := invoke.Dynamic(target, func(x, y, z int) {
			record(prefix+" dynamic", caller, fmt.Sprintf("sum=%d", x+y+z))
		}, 1, 2, 3)
		if err != nil {
			wg.Done()
			return fmt.Errorf("%s dynamic: %w", prefix, err)
		}
		if !ok {
			wg.Done()
			return fmt.Errorf("%s dynamic: thread rejected the call", prefix)
		}
		return nil
	}

	if err := invokeAll("cross-thread"); err != nil {
		return nil, err
	}

	inner := make(chan error, 1)
	if !invoke.Func(target, func() { inner <- invokeAll("same-thread") }) {
		return nil, fmt.Errorf("demo thread rejected the same-thread batch")
	}

	select {
	case err := <-inner:
		if err != nil {
			return nil, err
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]Call(nil), calls...), nil
}
