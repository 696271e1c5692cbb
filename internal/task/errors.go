package task

import "errors"

var (
	// ErrAlreadyExecuted is the panic value raised when a unit of work is
	// executed more than once.
	ErrAlreadyExecuted = errors.New("task: unit of work already executed")

	// ErrArgumentMismatch is returned when the arguments supplied for a
	// callable do not match its parameter list.
	ErrArgumentMismatch = errors.New("task: argument mismatch")
)
