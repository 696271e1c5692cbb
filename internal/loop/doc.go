// Package loop provides threads: goroutines locked to an OS thread that drain an
// unbounded FIFO queue of tasks.
//
// A Thread is the execution context that owns thread-affine state. Code on any
// goroutine may Post work to it, and CurrentID reports which Thread, if any,
// the calling goroutine is running. Together these form the primitive that the
// invoke package builds on.
//
// Tasks run one at a time, in the order they were accepted. A task that panics
// is recovered and logged, and the loop moves on to the next one. Once Quit has
// been called the thread accepts no more work, and anything still queued when
// the loop exits is dropped.
package loop
