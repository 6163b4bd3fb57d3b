package compilers

import (
	"fmt"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/debug"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// Grounder removes lifted actions: every action of the output is a
// parameter-free instantiation of an action of the input, named after
// the action and its arguments. Meaningless instantiations are dropped.
type Grounder struct {
	opts []GrounderOption
}

func NewGrounder() compiler.Compiler {
	return &Grounder{}
}

// NewGrounderWith configures the underlying GrounderHelper, for
// example with an explicit grounding map.
func NewGrounderWith(opts ...GrounderOption) *Grounder {
	return &Grounder{opts: opts}
}

func (g *Grounder) Name() string { return "grounder" }

func (g *Grounder) SupportedKind() model.ProblemKind {
	return model.FullKind()
}

func (g *Grounder) SupportsCompilation(kind compiler.Kind) bool {
	return kind == compiler.Grounding
}

// ResultingKind is the input kind: grounding changes the action set,
// not the feature set.
func (g *Grounder) ResultingKind(pk model.ProblemKind, kind compiler.Kind) model.ProblemKind {
	return pk
}

type groundedFrom struct {
	orig   model.Action
	params []*ir.Expr
}

func (g *Grounder) Compile(p *model.Problem, kind compiler.Kind) (*compiler.Result, error) {
	if err := compiler.Check(g, p, kind); err != nil {
		return nil, err
	}
	helper, err := NewGrounderHelper(p, g.opts...)
	if err != nil {
		return nil, err
	}
	seq, err := helper.GroundedActions()
	if err != nil {
		return nil, err
	}

	res := p.Clone()
	res.ClearActions()
	res.ClearMetrics()
	namer := compiler.NewFreshNamer(res.HasName)
	trace := map[string]groundedFrom{}
	var added []model.Action
	from := map[model.Action]groundedFrom{}
	for ga := range seq {
		if ga.Grounded == nil {
			continue
		}
		act := renamed(ga.Grounded, namer.Fresh(ga.Grounded.Name()))
		if err := res.AddAction(act); err != nil {
			return nil, err
		}
		trace[act.Name()] = groundedFrom{orig: ga.Original, params: ga.Params}
		from[act] = groundedFrom{orig: ga.Original, params: ga.Params}
		added = append(added, act)
	}
	if debug.Compile() {
		debug.Logf("grounder: %d lifted -> %d grounded actions\n", len(p.Actions()), len(added))
	}
	for _, m := range p.Metrics() {
		res.AddMetric(groundMetric(m, added, from))
	}

	mapBack := func(ai *model.ActionInstance) (*model.ActionInstance, error) {
		gf, ok := trace[ai.Action.Name()]
		if !ok {
			return nil, fmt.Errorf("%w: no mapping for action %q", compiler.ErrUsage, ai.Action.Name())
		}
		orig := model.NewActionInstance(gf.orig, gf.params...)
		orig.Agent = ai.Agent
		return orig, nil
	}
	return &compiler.Result{Problem: res, MapBack: mapBack}, nil
}

// groundMetric re-keys an action-costs metric from lifted actions to
// their instantiations, substituting the arguments into each cost
// expression. Other metric kinds carry over unchanged.
func groundMetric(m *model.Metric, grounded []model.Action, from map[model.Action]groundedFrom) *model.Metric {
	if m.Kind != model.MinimizeActionCosts {
		return m.Clone()
	}
	res := model.NewActionCostsMetric()
	res.DefaultCost = m.DefaultCost
	for _, ga := range grounded {
		gf := from[ga]
		cost := m.Cost(gf.orig)
		if cost == nil {
			continue
		}
		sub := paramSubstitution(gf.orig, gf.params)
		res.SetCost(ga, ir.Simplify(ir.SubstituteParams(cost, sub)))
	}
	return res
}

func renamed(a model.Action, name string) model.Action {
	switch act := a.(type) {
	case *model.InstantaneousAction:
		return act.Renamed(name)
	case *model.DurativeAction:
		return act.Renamed(name)
	}
	return a
}
