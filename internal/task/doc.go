// Package task implements the one-shot units of work that carry a callable and a
// snapshot of its arguments from one thread to another.
//
// A unit is built on the caller's goroutine, handed to a thread's queue, and
// executed exactly once on that thread. Arguments are copied into the unit when
// it is built, so the caller's variables may change or go out of scope before
// the unit runs. Data reachable through pointer arguments is not copied.
package task
