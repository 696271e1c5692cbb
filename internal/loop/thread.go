package loop

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	list "github.com/bahlo/generic-list-go"

	"github.com/sevigo/threadcall/internal/core"
	"github.com/sevigo/threadcall/internal/logger"
)

type state int

const (
	stateNew state = iota
	stateRunning
	stateQuitting
	stateFinished
)

var lastID atomic.Uint64

// Thread is an event loop bound to a single OS thread. The zero value is not
// usable; create threads with New.
type Thread struct {
	id       core.ThreadID
	name     string
	owner    *Thread
	logger   *slog.Logger
	observer Observer

	mu      sync.Mutex
	queue   *list.List[core.Task]
	state   state
	started bool
	sealed  bool

	wake     chan struct{}
	finished chan struct{}
}

// New creates a thread that is not yet running. Tasks may be posted to it
// straight away; they run once the thread is started. The calling thread, if
// any, becomes the new thread's owner.
func New(name string, opts ...Option) *Thread {
	t := &Thread{
		id:       core.ThreadID(lastID.Add(1)),
		name:     name,
		owner:    Current(),
		observer: NopObserver{},
		queue:    list.New[core.Task](),
		wake:     make(chan struct{}, 1),
		finished: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = logger.ForThread(t.logger, name, t.id)
	return t
}

// ID returns the identity of the thread.
func (t *Thread) ID() core.ThreadID { return t.id }

// Name returns the name given to New.
func (t *Thread) Name() string { return t.name }

func (t *Thread) String() string {
	return fmt.Sprintf("%s(%s)", t.name, t.id)
}

// Owner returns the thread that controls this thread's lifecycle, or nil.
func (t *Thread) Owner() core.Thread {
	if t.owner == nil {
		return nil
	}
	return t.owner
}

// Start runs the thread's loop on a new goroutine locked to its own OS thread.
// It returns once the loop is ready to execute tasks.
func (t *Thread) Start() error {
	if err := t.begin(); err != nil {
		return err
	}
	ready := make(chan struct{})
	go t.run(ready, false)
	<-ready
	return nil
}

// Run turns the calling goroutine into the thread's loop and blocks until the
// thread quits. It is typically called from main after runtime.LockOSThread in
// an init function, to serve libraries that must be driven from the main
// thread. Run returns ErrNested when called from a task of another loop.
func (t *Thread) Run() error {
	if Current() != nil {
		return ErrNested
	}
	if err := t.begin(); err != nil {
		return err
	}
	t.run(nil, true)
	return nil
}

func (t *Thread) begin() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return ErrAlreadyStarted
	}
	if t.state >= stateQuitting {
		return ErrFinished
	}
	t.started = true
	t.state = stateRunning
	return nil
}

func (t *Thread) run(ready chan<- struct{}, unlock bool) {
	runtime.LockOSThread()
	if unlock {
		defer runtime.UnlockOSThread()
	}

	key := affinityKey()
	register(key, t)
	t.logger.Debug("thread started")
	if ready != nil {
		close(ready)
	}

	for {
		task, ok := t.next()
		if !ok {
			break
		}
		t.execute(task)
	}

	unregister(key)
	t.finish()
}

// next blocks until a task is available or the thread is quitting.
func (t *Thread) next() (core.Task, bool) {
	for {
		t.mu.Lock()
		if t.state >= stateQuitting {
			t.mu.Unlock()
			return nil, false
		}
		if e := t.queue.Front(); e != nil {
			task := t.queue.Remove(e)
			t.mu.Unlock()
			return task, true
		}
		t.mu.Unlock()
		<-t.wake
	}
}

func (t *Thread) execute(task core.Task) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("task panicked",
				"panic", r,
				"stack", string(debug.Stack()),
			)
			t.observer.TaskPanicked(t.name)
			return
		}
		t.observer.TaskExecuted(t.name, time.Since(start))
	}()
	task.Execute()
}

func (t *Thread) finish() {
	t.mu.Lock()
	t.state = stateFinished
	dropped := t.queue.Len()
	t.queue.Init()
	t.mu.Unlock()

	if dropped > 0 {
		t.logger.Warn("thread finished with tasks still queued", "dropped", dropped)
		t.observer.TasksDropped(t.name, dropped)
	}
	t.logger.Debug("thread finished")
	close(t.finished)
	t.observer.ThreadFinished(t.name)
}

// Post appends task to the thread's queue. It returns false, without running
// the task, when task is nil, when the thread is quitting or has finished, or
// when PostLast has already been called.
func (t *Thread) Post(task core.Task) bool {
	return t.push(task, false)
}

// PostLast appends task to the thread's queue as the last task the thread
// accepts. Every later Post is rejected, while the tasks already queued still
// run, task last.
func (t *Thread) PostLast(task core.Task) bool {
	return t.push(task, true)
}

func (t *Thread) push(task core.Task, last bool) bool {
	if task == nil {
		return false
	}

	t.mu.Lock()
	if t.state >= stateQuitting || t.sealed {
		t.mu.Unlock()
		t.logger.Debug("task rejected, thread no longer accepts work")
		t.observer.TaskRejected(t.name)
		return false
	}
	t.queue.PushBack(task)
	t.sealed = last
	t.mu.Unlock()

	t.signal()
	t.observer.TaskPosted(t.name)
	return true
}

func (t *Thread) signal() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// Quit stops the thread from accepting work and makes the loop exit once the
// task it is currently running returns. Quit may be called from any goroutine
// and more than once. A thread that was never started finishes immediately.
func (t *Thread) Quit() {
	t.mu.Lock()
	switch {
	case t.state >= stateQuitting:
		t.mu.Unlock()
		return
	case !t.started:
		t.state = stateQuitting
		t.mu.Unlock()
		t.finish()
		return
	}
	t.state = stateQuitting
	t.mu.Unlock()

	t.logger.Debug("thread quitting")
	t.signal()
}

// Wait blocks until the thread has finished or ctx is done.
func (t *Thread) Wait(ctx context.Context) error {
	if CurrentID() == t.id {
		return ErrWaitOnSelf
	}
	select {
	case <-t.finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for thread %s: %w", t.name, ctx.Err())
	}
}

// Stop quits the thread and waits for it to finish.
func (t *Thread) Stop(ctx context.Context) error {
	if CurrentID() == t.id {
		return ErrWaitOnSelf
	}
	t.Quit()
	return t.Wait(ctx)
}

// Finished returns a channel that is closed when the thread has finished.
func (t *Thread) Finished() <-chan struct{} { return t.finished }

// IsRunning reports whether the thread has been started and has not finished.
func (t *Thread) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started && t.state != stateFinished
}

// IsFinished reports whether the thread's loop has exited.
func (t *Thread) IsFinished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == stateFinished
}

// Pending returns the number of tasks waiting in the queue.
func (t *Thread) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.queue.Len()
}
