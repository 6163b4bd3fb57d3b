package model

import (
	"errors"
	"fmt"

	"github.com/plankit/plankit/ir"
)

var (
	// ErrConflictingEffects is raised when inserting an effect would make
	// two effects unconditionally assign different values to the same
	// fluent instance. Speculative callers (grounding, conditional-effect
	// expansion) catch it and treat the candidate as invalid.
	ErrConflictingEffects = errors.New("conflicting effects")

	// ErrUsage marks malformed calls: duplicate names, unregistered
	// symbols, arity mismatches.
	ErrUsage = errors.New("usage error")

	// ErrProblemDefinition marks domain-semantics violations a compiler
	// cannot work around.
	ErrProblemDefinition = errors.New("problem definition error")
)

// ConflictError reports the fluent instance two effects disagree on.
type ConflictError struct {
	Fluent *ir.Expr
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting effects on %s", e.Fluent)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflictingEffects
}
