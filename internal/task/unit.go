package task

import (
	"sync/atomic"

	"github.com/sevigo/threadcall/internal/core"
)

// guard enforces the single execution of a unit.
type guard struct {
	executed atomic.Bool
}

func (g *guard) claim() {
	if !g.executed.CompareAndSwap(false, true) {
		panic(ErrAlreadyExecuted)
	}
}

type unit0 struct {
	guard
	fn func()
}

// New0 wraps a callable that takes no arguments.
func New0(fn func()) core.Task {
	return &unit0{fn: fn}
}

func (u *unit0) Execute() {
	u.claim()
	fn := u.fn
	u.fn = nil
	fn()
}

type unit1[A1 any] struct {
	guard
	fn func(A1)
	a1 A1
}

// New1 wraps fn together with a copy of its single argument.
func New1[A1 any](fn func(A1), a1 A1) core.Task {
	return &unit1[A1]{fn: fn, a1: a1}
}

func (u *unit1[A1]) Execute() {
	u.claim()
	fn, a1 := u.fn, u.a1
	u.fn, u.a1 = nil, *new(A1)
	fn(a1)
}

type unit2[A1, A2 any] struct {
	guard
	fn func(A1, A2)
	a1 A1
	a2 A2
}

// New2 wraps fn together with copies of its two arguments.
func New2[A1, A2 any](fn func(A1, A2), a1 A1, a2 A2) core.Task {
	return &unit2[A1, A2]{fn: fn, a1: a1, a2: a2}
}

func (u *unit2[A1, A2]) Execute() {
	u.claim()
	fn, a1, a2 := u.fn, u.a1, u.a2
	u.fn, u.a1, u.a2 = nil, *new(A1), *new(A2)
	fn(a1, a2)
}

type unit3[A1, A2, A3 any] struct {
	guard
	fn func(A1, A2, A3)
	a1 A1
	a2 A2
	a3 A3
}

// New3 wraps fn together with copies of its three arguments.
func New3[A1, A2, A3 any](fn func(A1, A2, A3), a1 A1, a2 A2, a3 A3) core.Task {
	return &unit3[A1, A2, A3]{fn: fn, a1: a1, a2: a2, a3: a3}
}

func (u *unit3[A1, A2, A3]) Execute() {
	u.claim()
	fn, a1, a2, a3 := u.fn, u.a1, u.a2, u.a3
	u.fn, u.a1, u.a2, u.a3 = nil, *new(A1), *new(A2), *new(A3)
	fn(a1, a2, a3)
}

type unit4[A1, A2, A3, A4 any] struct {
	guard
	fn func(A1, A2, A3, A4)
	a1 A1
	a2 A2
	a3 A3
	a4 A4
}

// New4 wraps fn together with copies of its four arguments.
func New4[A1, A2, A3, A4 any](fn func(A1, A2, A3, A4), a1 A1, a2 A2, a3 A3, a4 A4) core.Task {
	return &unit4[A1, A2, A3, A4]{fn: fn, a1: a1, a2: a2, a3: a3, a4: a4}
}

func (u *unit4[A1, A2, A3, A4]) Execute() {
	u.claim()
	fn, a1, a2, a3, a4 := u.fn, u.a1, u.a2, u.a3, u.a4
	u.fn, u.a1, u.a2, u.a3, u.a4 = nil, *new(A1), *new(A2), *new(A3), *new(A4)
	fn(a1, a2, a3, a4)
}
