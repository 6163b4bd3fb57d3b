package ir

import "errors"

var (
	// ErrUsage marks malformed calls: wrong arity, duplicate names,
	// constructors applied to the wrong kinds of arguments.
	ErrUsage = errors.New("usage error")

	// ErrNotBoolean is returned when a boolean normal form is requested
	// of a non-boolean expression.
	ErrNotBoolean = errors.New("not a boolean expression")
)
