package core

// Task is a single, self-contained unit of deferred work. A Task is executed at
// most once; after Execute returns the task must not be used again.
type Task interface {
	Execute()
}

// TaskFunc adapts an ordinary function to the Task interface.
type TaskFunc func()

// Execute calls f.
func (f TaskFunc) Execute() { f() }
