package model

import (
	"strings"

	"github.com/plankit/plankit/ir"
)

// ActionInstance is an action applied to ground parameter values, as
// produced by a solver. Agent optionally tags the owning agent in
// multi-agent problems.
type ActionInstance struct {
	Action Action
	Params []*ir.Expr
	Agent  string
}

func NewActionInstance(a Action, params ...*ir.Expr) *ActionInstance {
	return &ActionInstance{Action: a, Params: params}
}

func (ai *ActionInstance) String() string {
	if len(ai.Params) == 0 {
		return ai.Action.Name()
	}
	parts := make([]string, len(ai.Params))
	for i, p := range ai.Params {
		parts[i] = p.String()
	}
	return ai.Action.Name() + "(" + strings.Join(parts, ", ") + ")"
}

// Plan is a sequential plan: an ordered list of action instances.
type Plan []*ActionInstance

func (p Plan) String() string {
	parts := make([]string, len(p))
	for i, ai := range p {
		parts[i] = ai.String()
	}
	return "[" + strings.Join(parts, "; ") + "]"
}
