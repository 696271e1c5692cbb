package invoke

import "github.com/sevigo/threadcall/internal/core"

// The FuncR forms accept callables that return a value. The value is
// discarded: there is no channel back to the caller.

// FuncR0 runs fn on target and discards its result.
func FuncR0[R any](target core.Thread, fn func() R) bool {
	return Func(target, func() { fn() })
}

// FuncR1 runs fn(a1) on target and discards its result.
func FuncR1[A1, R any](target core.Thread, fn func(A1) R, a1 A1) bool {
	return Func1(target, func(a1 A1) { fn(a1) }, a1)
}

// FuncR2 runs fn(a1, a2) on target and discards its result.
func FuncR2[A1, A2, R any](target core.Thread, fn func(A1, A2) R, a1 A1, a2 A2) bool {
	return Func2(target, func(a1 A1, a2 A2) { fn(a1, a2) }, a1, a2)
}

// FuncR3 runs fn(a1, a2, a3) on target and discards its result.
func FuncR3[A1, A2, A3, R any](target core.Thread, fn func(A1, A2, A3) R, a1 A1, a2 A2, a3 A3) bool {
	return Func3(target, func(a1 A1, a2 A2, a3 A3) { fn(a1, a2, a3) }, a1, a2, a3)
}

// FuncR4 runs fn(a1, a2, a3, a4) on target and discards its result.
func FuncR4[A1, A2, A3, A4, R any](target core.Thread, fn func(A1, A2, A3, A4) R, a1 A1, a2 A2, a3 A3, a4 A4) bool {
	return Func4(target, func(a1 A1, a2 A2, a3 A3, a4 A4) { fn(a1, a2, a3, a4) }, a1, a2, a3, a4)
}
