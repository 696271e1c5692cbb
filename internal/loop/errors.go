package loop

import "errors"

var (
	// ErrAlreadyStarted is returned by Start and Run when the thread's loop
	// has already been started.
	ErrAlreadyStarted = errors.New("loop: thread already started")

	// ErrFinished is returned by Start and Run when the thread has already
	// finished.
	ErrFinished = errors.New("loop: thread finished")

	// ErrNested is returned by Run when the calling goroutine is already
	// running another thread's loop.
	ErrNested = errors.New("loop: run called from inside another loop")

	// ErrWaitOnSelf is returned by Wait and Stop when called from the thread
	// being waited for, which would otherwise deadlock.
	ErrWaitOnSelf = errors.New("loop: thread cannot wait for itself")
)
