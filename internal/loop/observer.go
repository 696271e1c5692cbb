package loop

import "time"

// Observer receives notifications about a thread's queue. Implementations
// must be safe for concurrent use; TaskPosted and TaskRejected are called
// from the posting goroutine, everything else from the thread itself.
type Observer interface {
	TaskPosted(thread string)
	TaskRejected(thread string)
	TaskExecuted(thread string, elapsed time.Duration)
	TaskPanicked(thread string)
	TasksDropped(thread string, n int)
	ThreadFinished(thread string)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) TaskPosted(string)                  {}
func (NopObserver) TaskRejected(string)                {}
func (NopObserver) TaskExecuted(string, time.Duration) {}
func (NopObserver) TaskPanicked(string)                {}
func (NopObserver) TasksDropped(string, int)           {}
func (NopObserver) ThreadFinished(string)              {}
