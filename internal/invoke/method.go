package invoke

import "github.com/sevigo/threadcall/internal/core"

// The Method forms take a receiver and a method expression, such as
// (*Counter).Add, and call the method on that receiver on target. They are
// shorthands for the Func form with the receiver as the first argument.

// Method0 runs m(obj) on target.
func Method0[O any](target core.Thread, obj O, m func(O)) bool {
	return Func1(target, m, obj)
}

// Method1 runs m(obj, a1) on target.
func Method1[O, A1 any](target core.Thread, obj O, m func(O, A1), a1 A1) bool {
	return Func2(target, m, obj, a1)
}

// Method2 runs m(obj, a1, a2) on target.
func Method2[O, A1, A2 any](target core.Thread, obj O, m func(O, A1, A2), a1 A1, a2 A2) bool {
	return Func3(target, m, obj, a1, a2)
}

// Method3 runs m(obj, a1, a2, a3) on target.
func Method3[O, A1, A2, A3 any](target core.Thread, obj O, m func(O, A1, A2, A3), a1 A1, a2 A2, a3 A3) bool {
	return Func4(target, m, obj, a1, a2, a3)
}
