package compiler

import "errors"

var (
	// ErrUsage marks malformed calls: requesting an unsupported
	// compilation kind, mapping back an instance of an unknown action,
	// grounding-map arity mismatches.
	ErrUsage = errors.New("usage error")

	// ErrUnsupportedKind is returned when a problem's kind exceeds what
	// a compiler accepts.
	ErrUnsupportedKind = errors.New("unsupported problem kind")

	// ErrUnsupportedProblem marks a feature combination a compiler
	// cannot handle even though the kind flags alone would admit it.
	ErrUnsupportedProblem = errors.New("unsupported problem type")
)
