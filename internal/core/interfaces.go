// Package core defines the essential interfaces and data structures shared by the
// invocation machinery. They are kept abstract so that the dispatcher does not
// depend on any particular event-loop implementation.
package core

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/thread_mock.go -package=mocks github.com/sevigo/threadcall/internal/core Thread

// Thread is an execution context that owns a FIFO queue of deferred work.
// Everything posted to a Thread runs on that Thread, in the order it was posted.
type Thread interface {
	// ID returns the identity of the thread. It is stable for the lifetime of
	// the thread and never equal to NoThread.
	ID() ThreadID

	// Post hands a task over to the thread's queue for later execution.
	// Ownership of the task moves to the thread. It returns false when the
	// hand-off failed, for example because the queue has already been torn
	// down, in which case the task will never run.
	Post(task Task) bool
}

// Stopper is a Thread whose lifecycle is controlled from another thread, its
// owner. Quit must be delivered on the owner when one exists.
type Stopper interface {
	Thread

	// Owner returns the thread that controls this thread's lifecycle, or nil
	// if it was created outside of any thread.
	Owner() Thread

	// PostLast posts task as the last task the thread accepts. Tasks queued
	// before it still run; every later Post returns false.
	PostLast(task Task) bool

	// Quit asks the thread to stop once the task it is running returns.
	Quit()
}
