package compilers

import (
	"fmt"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// ConditionalEffectsRemover removes conditional effects by case
// analysis: for each subset of an action's conditional effects it emits
// one candidate action that keeps exactly that subset unconditionally,
// assuming the kept conditions and the negations of the dropped ones as
// extra preconditions. Candidates with conflicting effects, no effects,
// or contradictory preconditions are discarded.
type ConditionalEffectsRemover struct{}

func NewConditionalEffectsRemover() compiler.Compiler {
	return &ConditionalEffectsRemover{}
}

func (r *ConditionalEffectsRemover) Name() string { return "cerm" }

func (r *ConditionalEffectsRemover) SupportedKind() model.ProblemKind {
	return model.FullKind()
}

func (r *ConditionalEffectsRemover) SupportsCompilation(kind compiler.Kind) bool {
	return kind == compiler.ConditionalEffectsRemoving
}

func (r *ConditionalEffectsRemover) ResultingKind(pk model.ProblemKind, kind compiler.Kind) model.ProblemKind {
	res := pk.Unset(model.ConditionalEffects)
	if pk.Has(model.ConditionalEffects) {
		res = res.Set(model.NegativeConditions)
	}
	return res
}

func (r *ConditionalEffectsRemover) Compile(p *model.Problem, kind compiler.Kind) (*compiler.Result, error) {
	if err := compiler.Check(r, p, kind); err != nil {
		return nil, err
	}
	res := p.Clone()
	namer := compiler.NewFreshNamer(res.HasName)
	trace := map[string]model.Action{}

	actions := res.Actions()
	res.ClearActions()
	for _, a := range actions {
		from := p.ActionByName(a.Name())
		switch act := a.(type) {
		case *model.InstantaneousAction:
			for _, na := range splitConditional(act, namer) {
				res.AddAction(na)
				trace[na.Name()] = from
			}
		case *model.DurativeAction:
			for _, na := range splitConditionalDurative(act, namer) {
				res.AddAction(na)
				trace[na.Name()] = from
			}
		}
	}
	if err := rewriteConditionalTimedEffects(res); err != nil {
		return nil, err
	}
	retargetCosts(p, res, trace)
	return &compiler.Result{
		Problem: res,
		MapBack: compiler.IdentityMapBack(trace),
	}, nil
}

// splitConditional enumerates the powerset of the action's conditional
// effects, the empty subset first.
func splitConditional(a *model.InstantaneousAction, namer *compiler.FreshNamer) []*model.InstantaneousAction {
	var plain, cond []*model.Effect
	for _, e := range a.Effects() {
		if e.IsConditional() {
			cond = append(cond, e)
		} else {
			plain = append(plain, e)
		}
	}
	if len(cond) == 0 {
		return []*model.InstantaneousAction{a.Renamed(namer.Fresh(a.Name()))}
	}
	var res []*model.InstantaneousAction
	for mask := 0; mask < 1<<len(cond); mask++ {
		base := a.Preconditions()
		var negated [][]*ir.Expr
		for i, e := range cond {
			if mask&(1<<i) != 0 {
				base = append(base, e.Condition)
			} else {
				negated = append(negated, negationTerms(e.Condition))
			}
		}
		for _, terms := range termCombos(negated) {
			na := model.NewInstantaneousAction(namer.Fresh(a.Name()), a.Parameters()...)
			pres := append(append([]*ir.Expr{}, base...), terms...)
			if contradictory(pres) {
				continue
			}
			for _, pre := range pres {
				if s := ir.Simplify(pre); !s.IsTrue() {
					na.AddPrecondition(s)
				}
			}
			ok := true
			for _, e := range plain {
				if na.AddEffect(e.Clone()) != nil {
					ok = false
					break
				}
			}
			for i, e := range cond {
				if !ok || mask&(1<<i) == 0 {
					continue
				}
				ne := e.Clone()
				ne.Condition = ir.True()
				if na.AddEffect(ne) != nil {
					ok = false
				}
			}
			if !ok || len(na.Effects()) == 0 {
				continue
			}
			res = append(res, na)
		}
	}
	return res
}

// negationTerms returns the disjuncts of the negated condition in
// disjunctive normal form. The negation of a dropped conjunction splits
// into one term per conjunct, so the candidates never carry a negated
// conjunction as a precondition.
func negationTerms(cond *ir.Expr) []*ir.Expr {
	d := ir.ToDNF(ir.ToNNF(ir.Simplify(ir.Not(cond))))
	if d.IsTrue() {
		return []*ir.Expr{ir.True()}
	}
	if d.IsFalse() {
		return nil
	}
	if terms := ir.Disjuncts(d); len(terms) != 0 {
		return terms
	}
	return []*ir.Expr{d}
}

// termCombos enumerates one term per dropped condition, odometer order.
// An empty list of lists yields the single empty combination.
func termCombos(lists [][]*ir.Expr) [][]*ir.Expr {
	res := [][]*ir.Expr{nil}
	for _, list := range lists {
		if len(list) == 0 {
			return nil
		}
		var next [][]*ir.Expr
		for _, combo := range res {
			for _, t := range list {
				nc := make([]*ir.Expr, len(combo), len(combo)+1)
				copy(nc, combo)
				next = append(next, append(nc, t))
			}
		}
		res = next
	}
	return res
}

// splitConditionalDurative does the same case analysis over the timed
// conditional effects; a kept or dropped condition is asserted at the
// instant of its effect's timing.
func splitConditionalDurative(a *model.DurativeAction, namer *compiler.FreshNamer) []*model.DurativeAction {
	var plain, cond []model.TimedEffect
	for _, te := range a.Effects() {
		if te.Effect.IsConditional() {
			cond = append(cond, te)
		} else {
			plain = append(plain, te)
		}
	}
	if len(cond) == 0 {
		return []*model.DurativeAction{a.Renamed(namer.Fresh(a.Name()))}
	}
	var res []*model.DurativeAction
	for mask := 0; mask < 1<<len(cond); mask++ {
		var negated [][]*ir.Expr
		for i, te := range cond {
			if mask&(1<<i) == 0 {
				negated = append(negated, negationTerms(te.Effect.Condition))
			}
		}
		for _, terms := range termCombos(negated) {
			res = appendDurativeCase(res, a, namer, cond, mask, terms, plain)
		}
	}
	return res
}

// appendDurativeCase builds one candidate for a subset of kept
// conditional effects; terms holds, per dropped effect in order, one
// disjunct of its negated condition.
func appendDurativeCase(res []*model.DurativeAction, a *model.DurativeAction, namer *compiler.FreshNamer,
	cond []model.TimedEffect, mask int, terms []*ir.Expr, plain []model.TimedEffect) []*model.DurativeAction {
	na := model.NewDurativeAction(namer.Fresh(a.Name()), a.Parameters()...)
	na.SetDuration(a.Duration())
	var all []*ir.Expr
	for _, tc := range a.Conditions() {
		na.AddCondition(tc.Interval, tc.Cond)
		all = append(all, tc.Cond)
	}
	t := 0
	for i, te := range cond {
		c := te.Effect.Condition
		if mask&(1<<i) == 0 {
			c = terms[t]
			t++
		}
		c = ir.Simplify(c)
		all = append(all, c)
		if !c.IsTrue() {
			na.AddCondition(model.At(te.Timing), c)
		}
	}
	if contradictory(all) {
		return res
	}
	ok := true
	n := 0
	for _, te := range plain {
		if na.AddTimedEffect(te.Timing, te.Effect.Clone()) != nil {
			ok = false
			break
		}
		n++
	}
	for i, te := range cond {
		if !ok || mask&(1<<i) == 0 {
			continue
		}
		ne := te.Effect.Clone()
		ne.Condition = ir.True()
		if na.AddTimedEffect(te.Timing, ne) != nil {
			ok = false
		}
		n++
	}
	if !ok || n == 0 {
		return res
	}
	return append(res, na)
}

// contradictory reports whether the conjunction of the conditions is
// provably unsatisfiable.
func contradictory(conds []*ir.Expr) bool {
	simplified := make([]*ir.Expr, 0, len(conds))
	for _, c := range conds {
		s := ir.Simplify(c)
		if s.IsFalse() {
			return true
		}
		if !s.IsTrue() {
			simplified = append(simplified, s)
		}
	}
	if s := ir.Simplify(ir.And(simplified...)); s.IsFalse() {
		return true
	}
	return len(simplified) > 1 && infeasible(simplified)
}

// rewriteConditionalTimedEffects removes conditions from the problem's
// own timed effects. They cannot be split into alternative actions, so
// a boolean conditional assignment is folded into its value instead.
func rewriteConditionalTimedEffects(p *model.Problem) error {
	timed := p.TimedEffects()
	p.ClearTimedEffects()
	for _, te := range timed {
		e := te.Effect
		if !e.IsConditional() {
			p.AddTimedEffect(te.Timing, e)
			continue
		}
		if e.Kind != model.AssignEffect || !e.Fluent.Type().IsBool() {
			return fmt.Errorf("%w: conditional timed effect on non-boolean fluent %s",
				compiler.ErrUnsupportedProblem, e.Fluent)
		}
		ne := e.Clone()
		ne.Condition = ir.True()
		ne.Value = ir.Simplify(ir.Or(
			ir.And(e.Condition, e.Value),
			ir.And(ir.Not(e.Condition), e.Fluent),
		))
		p.AddTimedEffect(te.Timing, ne)
	}
	return nil
}
