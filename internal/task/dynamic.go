package task

import (
	"fmt"
	"reflect"

	"github.com/sevigo/threadcall/internal/core"
)

type dynamic struct {
	guard
	fn   reflect.Value
	args []reflect.Value
}

// NewDynamic wraps a callable of any arity. Unlike the typed constructors the
// argument list is checked at run time: fn must be a function and every
// argument must be assignable to the corresponding parameter. Any return
// values produced by fn are discarded when the unit executes.
func NewDynamic(fn any, args ...any) (core.Task, error) {
	fv, in, err := bind(fn, args)
	if err != nil {
		return nil, err
	}
	return &dynamic{fn: fv, args: in}, nil
}

func (u *dynamic) Execute() {
	u.claim()
	fn, args := u.fn, u.args
	u.fn, u.args = reflect.Value{}, nil
	fn.Call(args)
}

func bind(fn any, args []any) (reflect.Value, []reflect.Value, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return reflect.Value{}, nil, fmt.Errorf("%w: callable is %T, not a function", ErrArgumentMismatch, fn)
	}
	if fv.IsNil() {
		return reflect.Value{}, nil, fmt.Errorf("%w: callable is a nil %s", ErrArgumentMismatch, fv.Type())
	}

	ft := fv.Type()
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return reflect.Value{}, nil, fmt.Errorf("%w: %s takes at least %d arguments, got %d",
				ErrArgumentMismatch, ft, fixed, len(args))
		}
	} else if len(args) != fixed {
		return reflect.Value{}, nil, fmt.Errorf("%w: %s takes %d arguments, got %d",
			ErrArgumentMismatch, ft, fixed, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if i < fixed {
			pt = ft.In(i)
		} else {
			pt = ft.In(fixed).Elem()
		}
		v, err := convertArg(i, arg, pt)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		in[i] = v
	}
	return fv, in, nil
}

func convertArg(i int, arg any, pt reflect.Type) (reflect.Value, error) {
	if arg == nil {
		if !nilable(pt.Kind()) {
			return reflect.Value{}, fmt.Errorf("%w: argument %d is nil, want %s", ErrArgumentMismatch, i, pt)
		}
		return reflect.Zero(pt), nil
	}
	v := reflect.ValueOf(arg)
	if !v.Type().AssignableTo(pt) {
		return reflect.Value{}, fmt.Errorf("%w: argument %d is %s, want %s", ErrArgumentMismatch, i, v.Type(), pt)
	}
	return v, nil
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}
