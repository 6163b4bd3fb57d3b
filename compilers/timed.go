package compilers

import (
	"fmt"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// TimedToSequential compiles each durative action into a start/end pair
// of instantaneous actions linked by a fresh running-token fluent: the
// start action sets the token and the end action requires and clears
// it. The token also blocks self-overlap. Over-all conditions are
// required at both endpoints; conditions and effects strictly inside
// the action are not expressible sequentially and are rejected.
type TimedToSequential struct{}

func NewTimedToSequential() compiler.Compiler {
	return &TimedToSequential{}
}

func (r *TimedToSequential) Name() string { return "t2s" }

func (r *TimedToSequential) SupportedKind() model.ProblemKind {
	return model.FullKind().Unset(model.TimedGoals, model.TimedEffects)
}

func (r *TimedToSequential) SupportsCompilation(kind compiler.Kind) bool {
	return kind == compiler.TimedToSequential
}

func (r *TimedToSequential) ResultingKind(pk model.ProblemKind, kind compiler.Kind) model.ProblemKind {
	res := pk.Unset(model.ContinuousTime, model.IntermediateConditionsAndEffects)
	if pk.Has(model.ContinuousTime) {
		res = res.Set(model.NegativeConditions)
	}
	return res
}

func (r *TimedToSequential) Compile(p *model.Problem, kind compiler.Kind) (*compiler.Result, error) {
	if err := compiler.Check(r, p, kind); err != nil {
		return nil, err
	}
	res := p.Clone()
	namer := compiler.NewFreshNamer(res.HasName)
	trace := map[string]model.Action{}
	costs := map[model.Action]model.Action{}

	actions := res.Actions()
	res.ClearActions()
	for _, a := range actions {
		from := p.ActionByName(a.Name())
		switch act := a.(type) {
		case *model.InstantaneousAction:
			na := act.Renamed(namer.Fresh(a.Name()))
			res.AddAction(na)
			trace[na.Name()] = from
			costs[from] = na
		case *model.DurativeAction:
			start, end, err := sequentialPair(res, act, namer)
			if err != nil {
				return nil, err
			}
			trace[start.Name()] = from
			trace[end.Name()] = nil
			costs[from] = start
		}
	}
	rekeyCosts(p, res, costs)
	return &compiler.Result{
		Problem: res,
		MapBack: compiler.IdentityMapBack(trace),
	}, nil
}

// sequentialPair adds the start and end actions for a durative action
// to the problem. The end action has no counterpart in the original
// problem.
func sequentialPair(p *model.Problem, a *model.DurativeAction, namer *compiler.FreshNamer) (start, end *model.InstantaneousAction, err error) {
	running := ir.NewFluent(namer.Fresh(a.Name(), "running"), ir.BoolType, a.Parameters()...)
	p.AddFluent(running, ir.False())
	args := make([]*ir.Expr, len(a.Parameters()))
	for i, par := range a.Parameters() {
		args[i] = ir.ParamExp(par)
	}
	token := ir.FluentExp(running, args...)

	start = model.NewInstantaneousAction(namer.Fresh(a.Name(), "start"), a.Parameters()...)
	end = model.NewInstantaneousAction(namer.Fresh(a.Name(), "end"), a.Parameters()...)
	start.AddPrecondition(ir.Not(token))
	end.AddPrecondition(token)

	for _, tc := range a.Conditions() {
		atStart, atEnd, err := endpointSpan(tc.Interval)
		if err != nil {
			return nil, nil, fmt.Errorf("action %s: %w", a.Name(), err)
		}
		if atStart {
			start.AddPrecondition(tc.Cond)
		}
		if atEnd {
			end.AddPrecondition(tc.Cond)
		}
	}
	for _, te := range a.Effects() {
		target, err := endpointAction(te.Timing, start, end)
		if err != nil {
			return nil, nil, fmt.Errorf("action %s: %w", a.Name(), err)
		}
		if err := target.AddEffect(te.Effect.Clone()); err != nil {
			return nil, nil, err
		}
	}
	if err := start.AddEffect(model.Assign(token, ir.True())); err != nil {
		return nil, nil, err
	}
	if err := end.AddEffect(model.Assign(token, ir.False())); err != nil {
		return nil, nil, err
	}
	if err := p.AddAction(start); err != nil {
		return nil, nil, err
	}
	if err := p.AddAction(end); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}

// endpointSpan classifies a condition interval as holding at the start
// endpoint, the end endpoint, or both.
func endpointSpan(iv model.Interval) (atStart, atEnd bool, err error) {
	if iv.Lower.Delay != 0 || iv.Upper.Delay != 0 {
		return false, false, fmt.Errorf("%w: condition at intermediate time %s",
			compiler.ErrUnsupportedProblem, iv)
	}
	switch {
	case iv.IsPoint() && iv.Lower == model.StartTiming():
		return true, false, nil
	case iv.IsPoint() && iv.Lower == model.EndTiming():
		return false, true, nil
	case iv.Lower == model.StartTiming() && iv.Upper == model.EndTiming():
		return true, true, nil
	}
	return false, false, fmt.Errorf("%w: condition over interval %s",
		compiler.ErrUnsupportedProblem, iv)
}

func endpointAction(t model.Timing, start, end *model.InstantaneousAction) (*model.InstantaneousAction, error) {
	if t.Delay != 0 {
		return nil, fmt.Errorf("%w: effect at intermediate time %s", compiler.ErrUnsupportedProblem, t)
	}
	switch t.Timepoint {
	case model.StartTimepoint:
		return start, nil
	case model.EndTimepoint:
		return end, nil
	}
	return nil, fmt.Errorf("%w: effect at %s", compiler.ErrUnsupportedProblem, t)
}

// rekeyCosts moves action-cost metrics onto the replacement action of
// each original one; a durative action's cost lands on its start.
func rekeyCosts(orig, compiled *model.Problem, repl map[model.Action]model.Action) {
	compiled.ClearMetrics()
	for _, m := range orig.Metrics() {
		if m.Kind != model.MinimizeActionCosts {
			compiled.AddMetric(m.Clone())
			continue
		}
		nm := model.NewActionCostsMetric()
		nm.DefaultCost = m.DefaultCost
		for _, ac := range m.Costs() {
			if na, ok := repl[ac.Action]; ok {
				nm.SetCost(na, ac.Cost)
			}
		}
		compiled.AddMetric(nm)
	}
}
