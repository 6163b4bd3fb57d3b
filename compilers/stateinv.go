package compilers

import (
	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// StateInvariantsRemover pushes trajectory constraints into the actions
// and the goal: every action must observe the invariants while it runs,
// and the goal state must still satisfy them.
type StateInvariantsRemover struct{}

func NewStateInvariantsRemover() compiler.Compiler {
	return &StateInvariantsRemover{}
}

func (r *StateInvariantsRemover) Name() string { return "sirm" }

func (r *StateInvariantsRemover) SupportedKind() model.ProblemKind {
	return model.FullKind()
}

func (r *StateInvariantsRemover) SupportsCompilation(kind compiler.Kind) bool {
	return kind == compiler.TrajectoryConstraintsRemoving
}

func (r *StateInvariantsRemover) ResultingKind(pk model.ProblemKind, kind compiler.Kind) model.ProblemKind {
	return pk.Unset(model.TrajectoryConstraints)
}

func (r *StateInvariantsRemover) Compile(p *model.Problem, kind compiler.Kind) (*compiler.Result, error) {
	if err := compiler.Check(r, p, kind); err != nil {
		return nil, err
	}
	res := p.Clone()
	inv := ir.Simplify(ir.And(res.Constraints()...))
	res.ClearConstraints()
	if !inv.IsTrue() {
		for _, a := range res.Actions() {
			switch act := a.(type) {
			case *model.InstantaneousAction:
				act.AddPrecondition(inv)
			case *model.DurativeAction:
				act.AddCondition(model.OverAll(), inv)
			}
		}
		res.AddGoal(inv)
	}
	return &compiler.Result{
		Problem: res,
		MapBack: sameActionMapBack(p, res),
	}, nil
}
