package compilers

import (
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// rewriteAllConditions applies f to every condition position of the
// problem in place: action preconditions and durative conditions,
// effect conditions, goals, timed goals, trajectory constraints and
// oversubscription goals. The problem must be a private clone.
func rewriteAllConditions(p *model.Problem, f func(*ir.Expr) (*ir.Expr, error)) error {
	effCond := func(e *model.Effect) error {
		nc, err := f(e.Condition)
		if err != nil {
			return err
		}
		e.Condition = nc
		return nil
	}
	for _, a := range p.Actions() {
		switch act := a.(type) {
		case *model.InstantaneousAction:
			pres := act.Preconditions()
			act.ClearPreconditions()
			for _, pre := range pres {
				np, err := f(pre)
				if err != nil {
					return err
				}
				act.AddPrecondition(np)
			}
			for _, e := range act.Effects() {
				if err := effCond(e); err != nil {
					return err
				}
			}
		case *model.DurativeAction:
			conds := act.Conditions()
			act.ClearConditions()
			for _, tc := range conds {
				nc, err := f(tc.Cond)
				if err != nil {
					return err
				}
				act.AddCondition(tc.Interval, nc)
			}
			for _, te := range act.Effects() {
				if err := effCond(te.Effect); err != nil {
					return err
				}
			}
		}
	}
	goals := p.Goals()
	p.ClearGoals()
	for _, g := range goals {
		ng, err := f(g)
		if err != nil {
			return err
		}
		p.AddGoal(ng)
	}
	timed := p.TimedGoals()
	p.ClearTimedGoals()
	for _, tg := range timed {
		ng, err := f(tg.Goal)
		if err != nil {
			return err
		}
		p.AddTimedGoal(tg.Interval, ng)
	}
	for _, te := range p.TimedEffects() {
		if err := effCond(te.Effect); err != nil {
			return err
		}
	}
	constraints := p.Constraints()
	p.ClearConstraints()
	for _, c := range constraints {
		nc, err := f(c)
		if err != nil {
			return err
		}
		p.AddConstraint(nc)
	}
	for _, m := range p.Metrics() {
		for i, wg := range m.Goals {
			ng, err := f(wg.Goal)
			if err != nil {
				return err
			}
			m.Goals[i].Goal = ng
		}
	}
	return nil
}
