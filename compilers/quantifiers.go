package compilers

import (
	"fmt"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// QuantifiersRemover expands existential and universal conditions over
// the finite object domains, and unrolls forall effects into one effect
// per variable binding.
type QuantifiersRemover struct{}

func NewQuantifiersRemover() compiler.Compiler {
	return &QuantifiersRemover{}
}

func (r *QuantifiersRemover) Name() string { return "qrm" }

func (r *QuantifiersRemover) SupportedKind() model.ProblemKind {
	return model.FullKind()
}

func (r *QuantifiersRemover) SupportsCompilation(kind compiler.Kind) bool {
	return kind == compiler.QuantifiersRemoving
}

func (r *QuantifiersRemover) ResultingKind(pk model.ProblemKind, kind compiler.Kind) model.ProblemKind {
	res := pk.Unset(model.ExistentialConditions, model.UniversalConditions, model.ForallEffects)
	if pk.Has(model.ExistentialConditions) {
		res = res.Set(model.DisjunctiveConditions)
	}
	return res
}

func (r *QuantifiersRemover) Compile(p *model.Problem, kind compiler.Kind) (*compiler.Result, error) {
	if err := compiler.Check(r, p, kind); err != nil {
		return nil, err
	}
	res := p.Clone()
	rw := &quantExpander{problem: res}
	if err := rewriteAllConditions(res, rw.expand); err != nil {
		return nil, err
	}
	if err := rw.expandEffectValues(); err != nil {
		return nil, err
	}
	if err := rw.unrollForallEffects(); err != nil {
		return nil, err
	}
	return &compiler.Result{
		Problem: res,
		MapBack: sameActionMapBack(p, res),
	}, nil
}

type quantExpander struct {
	problem *model.Problem
}

// expand replaces every quantifier in e with a finite junction over the
// bound variables' domains, innermost first.
func (q *quantExpander) expand(e *ir.Expr) (*ir.Expr, error) {
	res, err := q.expandRec(e)
	if err != nil {
		return nil, err
	}
	return ir.Simplify(res), nil
}

func (q *quantExpander) expandRec(e *ir.Expr) (*ir.Expr, error) {
	if e.Kind == ir.ExistsKind || e.Kind == ir.ForallKind {
		body, err := q.expandRec(e.Args[0])
		if err != nil {
			return nil, err
		}
		tuples, err := q.bindings(e.Vars)
		if err != nil {
			return nil, err
		}
		terms := make([]*ir.Expr, len(tuples))
		for i, sub := range tuples {
			terms[i] = ir.SubstituteVars(body, sub)
		}
		if e.Kind == ir.ExistsKind {
			return ir.Or(terms...), nil
		}
		return ir.And(terms...), nil
	}
	if len(e.Args) == 0 {
		return e, nil
	}
	changed := false
	args := make([]*ir.Expr, len(e.Args))
	for i, a := range e.Args {
		na, err := q.expandRec(a)
		if err != nil {
			return nil, err
		}
		args[i] = na
		if na != a {
			changed = true
		}
	}
	if !changed {
		return e, nil
	}
	res := *e
	res.Args = args
	return &res, nil
}

// bindings enumerates every assignment of the variables to members of
// their domains, in deterministic odometer order.
func (q *quantExpander) bindings(vars []*ir.Variable) ([]map[*ir.Variable]*ir.Expr, error) {
	cands := make([][]*ir.Expr, len(vars))
	for i, v := range vars {
		switch {
		case v.Type().IsUser():
			objs := q.problem.ObjectsOfType(v.Type().User())
			dom := make([]*ir.Expr, len(objs))
			for j, o := range objs {
				dom[j] = ir.ObjectExp(o)
			}
			cands[i] = dom
		case v.Type().IsBool():
			cands[i] = []*ir.Expr{ir.False(), ir.True()}
		default:
			return nil, fmt.Errorf("%w: cannot enumerate domain of quantified variable %s",
				model.ErrProblemDefinition, v.Name())
		}
	}
	tuples := cartesian(cands)
	res := make([]map[*ir.Variable]*ir.Expr, len(tuples))
	for i, tup := range tuples {
		sub := make(map[*ir.Variable]*ir.Expr, len(vars))
		for j, v := range vars {
			sub[v] = tup[j]
		}
		res[i] = sub
	}
	return res, nil
}

// expandEffectValues applies the expansion to effect values, where a
// quantified boolean expression may be assigned to a fluent. Variables
// bound by a forall effect stay free here and are substituted when the
// effect is unrolled.
func (q *quantExpander) expandEffectValues() error {
	rewrite := func(e *model.Effect) error {
		if !ir.HasKind(e.Value, ir.ExistsKind) && !ir.HasKind(e.Value, ir.ForallKind) {
			return nil
		}
		nv, err := q.expand(e.Value)
		if err != nil {
			return err
		}
		e.Value = nv
		return nil
	}
	for _, a := range q.problem.Actions() {
		switch act := a.(type) {
		case *model.InstantaneousAction:
			for _, e := range act.Effects() {
				if err := rewrite(e); err != nil {
					return err
				}
			}
		case *model.DurativeAction:
			for _, te := range act.Effects() {
				if err := rewrite(te.Effect); err != nil {
					return err
				}
			}
		}
	}
	for _, te := range q.problem.TimedEffects() {
		if err := rewrite(te.Effect); err != nil {
			return err
		}
	}
	return nil
}

// unrollForallEffects replaces each forall effect with one plain effect
// per binding of its variables.
func (q *quantExpander) unrollForallEffects() error {
	for _, a := range q.problem.Actions() {
		switch act := a.(type) {
		case *model.InstantaneousAction:
			effs := act.Effects()
			act.ClearEffects()
			for _, e := range effs {
				expanded, err := q.unrollEffect(e)
				if err != nil {
					return err
				}
				for _, ne := range expanded {
					if err := act.AddEffect(ne); err != nil {
						return err
					}
				}
			}
		case *model.DurativeAction:
			effs := act.Effects()
			act.ClearEffects()
			for _, te := range effs {
				expanded, err := q.unrollEffect(te.Effect)
				if err != nil {
					return err
				}
				for _, ne := range expanded {
					if err := act.AddTimedEffect(te.Timing, ne); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func (q *quantExpander) unrollEffect(e *model.Effect) ([]*model.Effect, error) {
	if len(e.Forall) == 0 {
		return []*model.Effect{e}, nil
	}
	tuples, err := q.bindings(e.Forall)
	if err != nil {
		return nil, err
	}
	var res []*model.Effect
	for _, sub := range tuples {
		ne := e.Clone()
		ne.Forall = nil
		ne.Fluent = ir.SubstituteVars(e.Fluent, sub)
		ne.Value = ir.Simplify(ir.SubstituteVars(e.Value, sub))
		ne.Condition = ir.Simplify(ir.SubstituteVars(e.Condition, sub))
		if ne.Condition.IsFalse() {
			continue
		}
		res = append(res, ne)
	}
	return res, nil
}
