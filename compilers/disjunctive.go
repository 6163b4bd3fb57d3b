package compilers

import (
	"fmt"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// DisjunctiveConditionsRemover splits every action whose conditions are
// not pure conjunctions into one action per disjunct of their DNF, and
// replaces a disjunctive goal with a synthetic fake-goal fluent set by
// one synthetic action per goal disjunct. Every other action with real
// effects resets the fake-goal fluent, so a plan cannot achieve it and
// then drift away from the goal.
type DisjunctiveConditionsRemover struct{}

func NewDisjunctiveConditionsRemover() compiler.Compiler {
	return &DisjunctiveConditionsRemover{}
}

func (r *DisjunctiveConditionsRemover) Name() string { return "dcrm" }

func (r *DisjunctiveConditionsRemover) SupportedKind() model.ProblemKind {
	return model.FullKind().Unset(model.ExistentialConditions, model.UniversalConditions)
}

func (r *DisjunctiveConditionsRemover) SupportsCompilation(kind compiler.Kind) bool {
	return kind == compiler.DisjunctiveConditionsRemoving
}

func (r *DisjunctiveConditionsRemover) ResultingKind(pk model.ProblemKind, kind compiler.Kind) model.ProblemKind {
	return pk.Unset(model.DisjunctiveConditions)
}

func (r *DisjunctiveConditionsRemover) Compile(p *model.Problem, kind compiler.Kind) (*compiler.Result, error) {
	if err := compiler.Check(r, p, kind); err != nil {
		return nil, err
	}
	res := p.Clone()
	rw := &disjRewriter{
		problem: res,
		namer:   compiler.NewFreshNamer(res.HasName),
		trace:   map[string]model.Action{},
	}
	if err := rw.splitActions(p); err != nil {
		return nil, err
	}
	if err := rw.splitTimedEffects(); err != nil {
		return nil, err
	}
	if err := rw.rewriteGoals(); err != nil {
		return nil, err
	}
	if err := rw.rewriteTimedGoals(); err != nil {
		return nil, err
	}
	if err := rw.rewriteOversubscription(); err != nil {
		return nil, err
	}
	if rw.infeasible {
		return &compiler.Result{}, nil
	}
	if err := rw.addResetEffects(); err != nil {
		return nil, err
	}
	retargetCosts(p, res, rw.trace)
	return &compiler.Result{
		Problem: res,
		MapBack: compiler.IdentityMapBack(rw.trace),
	}, nil
}

type disjRewriter struct {
	problem *model.Problem
	namer   *compiler.FreshNamer
	// trace maps new action names to the original action, nil for the
	// synthetic goal actions.
	trace map[string]model.Action
	// meaningful are the non-synthetic output actions with at least one
	// effect; they receive the fake-goal reset effects.
	meaningful []model.Action
	fakeGoals  []*ir.Fluent
	// infeasible is set when a goal simplifies to false; the compiled
	// result then carries a nil problem.
	infeasible bool
}

// splitActions rebuilds the action set of the output problem, one
// action per DNF disjunct of each input action's conditions.
func (rw *disjRewriter) splitActions(orig *model.Problem) error {
	actions := rw.problem.Actions()
	rw.problem.ClearActions()
	for _, a := range actions {
		from := orig.ActionByName(a.Name())
		switch act := a.(type) {
		case *model.InstantaneousAction:
			if err := rw.splitInstantaneous(act, from); err != nil {
				return err
			}
		case *model.DurativeAction:
			if err := rw.splitDurative(act, from); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rw *disjRewriter) splitInstantaneous(a *model.InstantaneousAction, from model.Action) error {
	effects := expandEffectConditions(a.Effects())
	terms := ir.Disjuncts(ir.ToDNF(ir.And(a.Preconditions()...)))
	for _, term := range terms {
		if term.IsFalse() {
			continue
		}
		na := model.NewInstantaneousAction(rw.namer.Fresh(a.Name()), a.Parameters()...)
		for _, c := range ir.Conjuncts(term) {
			if !c.IsTrue() {
				na.AddPrecondition(c)
			}
		}
		for _, e := range effects {
			if err := na.AddEffect(e.Clone()); err != nil {
				return err
			}
		}
		rw.add(na, from)
	}
	return nil
}

func (rw *disjRewriter) splitDurative(a *model.DurativeAction, from model.Action) error {
	conds := a.Conditions()
	termsPer := make([][]*ir.Expr, len(conds))
	for i, tc := range conds {
		termsPer[i] = ir.Disjuncts(ir.ToDNF(tc.Cond))
	}
	type timedEff struct {
		timing model.Timing
		eff    *model.Effect
	}
	var effects []timedEff
	for _, te := range a.Effects() {
		for _, e := range expandEffectConditions([]*model.Effect{te.Effect}) {
			effects = append(effects, timedEff{timing: te.Timing, eff: e})
		}
	}
combos:
	for _, combo := range cartesian(termsPer) {
		na := model.NewDurativeAction(rw.namer.Fresh(a.Name()), a.Parameters()...)
		na.SetDuration(a.Duration())
		for i, term := range combo {
			if term.IsFalse() {
				continue combos
			}
			if term.IsTrue() {
				continue
			}
			na.AddCondition(conds[i].Interval, term)
		}
		for _, te := range effects {
			if err := na.AddTimedEffect(te.timing, te.eff.Clone()); err != nil {
				return err
			}
		}
		rw.add(na, from)
	}
	return nil
}

func (rw *disjRewriter) add(a model.Action, from model.Action) {
	rw.problem.AddAction(a)
	rw.trace[a.Name()] = from
	if hasEffects(a) && from != nil {
		rw.meaningful = append(rw.meaningful, a)
	}
}

func hasEffects(a model.Action) bool {
	switch act := a.(type) {
	case *model.InstantaneousAction:
		return len(act.Effects()) > 0
	case *model.DurativeAction:
		return len(act.Effects()) > 0
	}
	return false
}

// expandEffectConditions replaces each effect whose condition is
// disjunctive with one effect per disjunct of the condition's DNF.
func expandEffectConditions(effects []*model.Effect) []*model.Effect {
	var res []*model.Effect
	for _, e := range effects {
		if !e.IsConditional() {
			res = append(res, e)
			continue
		}
		for _, term := range ir.Disjuncts(ir.ToDNF(e.Condition)) {
			if term.IsFalse() {
				continue
			}
			ne := e.Clone()
			ne.Condition = term
			res = append(res, ne)
		}
	}
	return res
}

// splitTimedEffects applies the effect-condition expansion to the timed
// effects of the problem itself.
func (rw *disjRewriter) splitTimedEffects() error {
	p := rw.problem
	timed := p.TimedEffects()
	p.ClearTimedEffects()
	for _, te := range timed {
		for _, e := range expandEffectConditions([]*model.Effect{te.Effect}) {
			p.AddTimedEffect(te.Timing, e)
		}
	}
	return nil
}

// rewriteGoals replaces a disjunctive goal with a fake-goal fluent
// achieved by one synthetic action per disjunct. A goal that simplifies
// to false marks the problem infeasible instead of leaving it with no
// goals at all.
func (rw *disjRewriter) rewriteGoals() error {
	p := rw.problem
	goal := ir.Simplify(ir.And(p.Goals()...))
	if goal.IsFalse() {
		rw.infeasible = true
		return nil
	}
	terms := ir.Disjuncts(ir.ToDNF(goal))
	if len(terms) <= 1 {
		p.ClearGoals()
		for _, t := range terms {
			for _, c := range ir.Conjuncts(t) {
				if !c.IsTrue() {
					p.AddGoal(c)
				}
			}
		}
		return nil
	}
	fake, err := rw.fakeGoal(terms)
	if err != nil {
		return err
	}
	p.ClearGoals()
	p.AddGoal(ir.FluentExp(fake))
	return nil
}

// fakeGoal creates a fresh boolean fluent, initially false, plus one
// synthetic action per disjunct whose sole effect sets it true.
func (rw *disjRewriter) fakeGoal(terms []*ir.Expr) (*ir.Fluent, error) {
	p := rw.problem
	fake := ir.NewFluent(rw.namer.Fresh("dcrm", "fake", "goal"), ir.BoolType)
	p.AddFluent(fake, ir.False())
	rw.fakeGoals = append(rw.fakeGoals, fake)
	for _, term := range terms {
		a := model.NewInstantaneousAction(rw.namer.Fresh("dcrm", "goal", "action"))
		for _, c := range ir.Conjuncts(term) {
			if !c.IsTrue() {
				a.AddPrecondition(c)
			}
		}
		if err := a.AddEffect(model.Assign(ir.FluentExp(fake), ir.True())); err != nil {
			return nil, err
		}
		p.AddAction(a)
		rw.trace[a.Name()] = nil
	}
	return fake, nil
}

// rewriteTimedGoals normalizes each timed goal; a timed goal that stays
// disjunctive after DNF cannot be compiled into synthetic actions
// without changing when it must hold, and one that simplifies to false
// marks the problem infeasible.
func (rw *disjRewriter) rewriteTimedGoals() error {
	p := rw.problem
	timed := p.TimedGoals()
	p.ClearTimedGoals()
	for _, tg := range timed {
		g := ir.Simplify(tg.Goal)
		if g.IsFalse() {
			rw.infeasible = true
			return nil
		}
		if g.IsTrue() {
			continue
		}
		terms := ir.Disjuncts(ir.ToDNF(g))
		if len(terms) > 1 {
			return fmt.Errorf("%w: disjunctive timed goal %s", compiler.ErrUnsupportedProblem, tg.Goal)
		}
		for _, t := range terms {
			p.AddTimedGoal(tg.Interval, t)
		}
	}
	return nil
}

// rewriteOversubscription gives each disjunctive weighted goal its own
// fake-goal fluent and synthetic actions.
func (rw *disjRewriter) rewriteOversubscription() error {
	for _, m := range rw.problem.Metrics() {
		if m.Kind != model.MaximizeOversubscription {
			continue
		}
		for i, wg := range m.Goals {
			terms := ir.Disjuncts(ir.ToDNF(wg.Goal))
			if len(terms) <= 1 {
				if len(terms) == 1 {
					m.Goals[i].Goal = terms[0]
				}
				continue
			}
			fake, err := rw.fakeGoal(terms)
			if err != nil {
				return err
			}
			m.Goals[i].Goal = ir.FluentExp(fake)
		}
	}
	return nil
}

// addResetEffects makes every meaningful action reset every fake-goal
// fluent to false. Durative actions reset at their end.
func (rw *disjRewriter) addResetEffects() error {
	for _, fake := range rw.fakeGoals {
		reset := model.Assign(ir.FluentExp(fake), ir.False())
		for _, a := range rw.meaningful {
			var err error
			switch act := a.(type) {
			case *model.InstantaneousAction:
				err = act.AddEffect(reset.Clone())
			case *model.DurativeAction:
				err = act.AddTimedEffect(model.EndTiming(), reset.Clone())
			}
			if err != nil {
				return fmt.Errorf("resetting %s in %s: %w", fake, a.Name(), err)
			}
		}
	}
	return nil
}
