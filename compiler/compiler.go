package compiler

import (
	"fmt"

	"github.com/plankit/plankit/model"
)

// MapBackFunc translates one action instance of a compiled problem to
// the corresponding instance of the problem the compiler was given.
// A nil instance with a nil error means the action has no counterpart
// (for example a synthetic goal action); an error means the instance's
// action is unknown to the mapping, which is a caller mistake.
//
// A MapBackFunc must be a pure function of its input so pipelines can
// compose it safely.
type MapBackFunc func(*model.ActionInstance) (*model.ActionInstance, error)

// Result is the outcome of one compilation: the new problem and the
// plan map-back. Problem is nil when the input was judged infeasible to
// compile further.
type Result struct {
	Problem *model.Problem
	MapBack MapBackFunc
}

// Compiler is the unit of transformation.
type Compiler interface {
	// Name is a short identifier used in composed engine names and in
	// fresh names generated into output problems.
	Name() string

	// SupportedKind is the maximal feature set accepted as input.
	SupportedKind() model.ProblemKind

	// SupportsCompilation reports whether this compiler performs kind.
	SupportsCompilation(kind Kind) bool

	// ResultingKind predicts the kind of the compiled problem as a pure
	// function of the input kind; it must stay consistent with what
	// Compile actually produces.
	ResultingKind(pk model.ProblemKind, kind Kind) model.ProblemKind

	// Compile transforms the problem. The input is never mutated.
	Compile(p *model.Problem, kind Kind) (*Result, error)
}

// Check validates a compile request: the kind must be one the compiler
// performs and the problem's kind must be within the supported set.
func Check(c Compiler, p *model.Problem, kind Kind) error {
	if !c.SupportsCompilation(kind) {
		return fmt.Errorf("%w: %s does not perform %s", ErrUsage, c.Name(), kind)
	}
	pk := p.Kind()
	if !pk.LE(c.SupportedKind()) {
		unsupported := pk.Unset(c.SupportedKind().Features()...)
		return fmt.Errorf("%w: %s cannot accept features %s", ErrUnsupportedKind, c.Name(), unsupported)
	}
	return nil
}

// IdentityMapBack builds a map-back for compilers that rename or split
// actions without changing parameters: trace maps each new action name
// to the original action.
func IdentityMapBack(trace map[string]model.Action) MapBackFunc {
	return func(ai *model.ActionInstance) (*model.ActionInstance, error) {
		orig, ok := trace[ai.Action.Name()]
		if !ok {
			return nil, fmt.Errorf("%w: no mapping for action %q", ErrUsage, ai.Action.Name())
		}
		if orig == nil {
			return nil, nil // synthetic action, no counterpart
		}
		res := model.NewActionInstance(orig, ai.Params...)
		res.Agent = ai.Agent
		return res, nil
	}
}
