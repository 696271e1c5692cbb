package invoke

import (
	"log/slog"
	"reflect"

	"github.com/sevigo/threadcall/internal/core"
	"github.com/sevigo/threadcall/internal/loop"
	"github.com/sevigo/threadcall/internal/task"
)

// currentThread reports the identity of the calling goroutine's thread.
var currentThread = loop.CurrentID

// isNil reports whether target is nil, including a nil pointer stored in the
// interface.
func isNil(target core.Thread) bool {
	if target == nil {
		return true
	}
	v := reflect.ValueOf(target)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

func onTarget(target core.Thread) bool {
	return currentThread() == target.ID()
}

func post(target core.Thread, unit core.Task) bool {
	if target.Post(unit) {
		return true
	}
	slog.Debug("invoke: target thread rejected unit of work", "target", target.ID())
	return false
}

// Func runs fn on target.
func Func(target core.Thread, fn func()) bool {
	if isNil(target) {
		return false
	}
	if onTarget(target) {
		fn()
		return true
	}
	return post(target, task.New0(fn))
}

// Func1 runs fn(a1) on target.
func Func1[A1 any](target core.Thread, fn func(A1), a1 A1) bool {
	if isNil(target) {
		return false
	}
	if onTarget(target) {
		fn(a1)
		return true
	}
	return post(target, task.New1(fn, a1))
}

// Func2 runs fn(a1, a2) on target.
func Func2[A1, A2 any](target core.Thread, fn func(A1, A2), a1 A1, a2 A2) bool {
	if isNil(target) {
		return false
	}
	if onTarget(target) {
		fn(a1, a2)
		return true
	}
	return post(target, task.New2(fn, a1, a2))
}

// Func3 runs fn(a1, a2, a3) on target.
func Func3[A1, A2, A3 any](target core.Thread, fn func(A1, A2, A3), a1 A1, a2 A2, a3 A3) bool {
	if isNil(target) {
		return false
	}
	if onTarget(target) {
		fn(a1, a2, a3)
		return true
	}
	return post(target, task.New3(fn, a1, a2, a3))
}

// Func4 runs fn(a1, a2, a3, a4) on target.
func Func4[A1, A2, A3, A4 any](target core.Thread, fn func(A1, A2, A3, A4), a1 A1, a2 A2, a3 A3, a4 A4) bool {
	if isNil(target) {
		return false
	}
	if onTarget(target) {
		fn(a1, a2, a3, a4)
		return true
	}
	return post(target, task.New4(fn, a1, a2, a3, a4))
}

// Dynamic runs fn with args on target, whatever fn's arity. The arguments are
// checked against fn's parameters before anything runs or is queued; a
// mismatch is reported as an error wrapping task.ErrArgumentMismatch.
func Dynamic(target core.Thread, fn any, args ...any) (bool, error) {
	unit, err := task.NewDynamic(fn, args...)
	if err != nil {
		return false, err
	}
	if isNil(target) {
		return false, nil
	}
	if onTarget(target) {
		unit.Execute()
		return true, nil
	}
	return post(target, unit), nil
}
