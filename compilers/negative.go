package compilers

import (
	"fmt"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// NegativeConditionsRemover rewrites every negated condition into a
// positive one. Negated boolean fluents become applications of a twin
// fluent whose value is kept complementary by companion effects and
// complementary initial values. Negated comparisons flip, and negated
// equalities expand over the finite object domain.
type NegativeConditionsRemover struct{}

func NewNegativeConditionsRemover() compiler.Compiler {
	return &NegativeConditionsRemover{}
}

func (r *NegativeConditionsRemover) Name() string { return "ncrm" }

func (r *NegativeConditionsRemover) SupportedKind() model.ProblemKind {
	return model.FullKind()
}

func (r *NegativeConditionsRemover) SupportsCompilation(kind compiler.Kind) bool {
	return kind == compiler.NegativeConditionsRemoving
}

func (r *NegativeConditionsRemover) ResultingKind(pk model.ProblemKind, kind compiler.Kind) model.ProblemKind {
	res := pk.Unset(model.NegativeConditions)
	if pk.Has(model.NegativeConditions) && pk.Has(model.EqualityConditions) {
		res = res.Set(model.DisjunctiveConditions)
	}
	return res
}

func (r *NegativeConditionsRemover) Compile(p *model.Problem, kind compiler.Kind) (*compiler.Result, error) {
	if err := compiler.Check(r, p, kind); err != nil {
		return nil, err
	}
	res := p.Clone()
	rw := &negRewriter{
		problem: res,
		namer:   compiler.NewFreshNamer(res.HasName),
		twins:   map[*ir.Fluent]*ir.Fluent{},
	}
	if err := rw.rewriteConditions(); err != nil {
		return nil, err
	}
	rw.addCompanionEffects()
	if err := rw.addTwinInitialValues(); err != nil {
		return nil, err
	}
	return &compiler.Result{
		Problem: res,
		MapBack: sameActionMapBack(p, res),
	}, nil
}

// sameActionMapBack maps instances of the compiled problem back to the
// identically named action of the original.
func sameActionMapBack(orig, compiled *model.Problem) compiler.MapBackFunc {
	trace := map[string]model.Action{}
	for _, a := range compiled.Actions() {
		trace[a.Name()] = orig.ActionByName(a.Name())
	}
	return compiler.IdentityMapBack(trace)
}

type negRewriter struct {
	problem *model.Problem
	namer   *compiler.FreshNamer
	twins   map[*ir.Fluent]*ir.Fluent
}

func (rw *negRewriter) rewriteConditions() error {
	return rewriteAllConditions(rw.problem, rw.rewrite)
}

// rewrite normalizes a condition to negation normal form and removes
// the remaining leaf negations.
func (rw *negRewriter) rewrite(e *ir.Expr) (*ir.Expr, error) {
	return rw.positive(ir.ToNNF(ir.Simplify(e)))
}

func (rw *negRewriter) positive(e *ir.Expr) (*ir.Expr, error) {
	switch e.Kind {
	case ir.NotKind:
		return rw.positiveNot(e.Args[0])
	case ir.AndKind, ir.OrKind:
		args := make([]*ir.Expr, len(e.Args))
		for i, a := range e.Args {
			na, err := rw.positive(a)
			if err != nil {
				return nil, err
			}
			args[i] = na
		}
		if e.Kind == ir.AndKind {
			return ir.And(args...), nil
		}
		return ir.Or(args...), nil
	case ir.ExistsKind, ir.ForallKind:
		body, err := rw.positive(e.Args[0])
		if err != nil {
			return nil, err
		}
		if e.Kind == ir.ExistsKind {
			return ir.Exists(body, e.Vars...), nil
		}
		return ir.Forall(body, e.Vars...), nil
	}
	return e, nil
}

// positiveNot removes a negation sitting on an atom.
func (rw *negRewriter) positiveNot(atom *ir.Expr) (*ir.Expr, error) {
	switch atom.Kind {
	case ir.FluentKind:
		if !atom.Fluent.Type().IsBool() {
			return nil, fmt.Errorf("%w: negated non-boolean fluent %s", model.ErrProblemDefinition, atom.Fluent.Name())
		}
		return ir.FluentExp(rw.twin(atom.Fluent), atom.Args...), nil
	case ir.LEKind:
		return ir.LT(atom.Args[1], atom.Args[0]), nil
	case ir.LTKind:
		return ir.LE(atom.Args[1], atom.Args[0]), nil
	case ir.EqualsKind:
		return rw.positiveNotEquals(atom)
	case ir.BoolConstKind:
		return ir.Bool(!atom.Bool), nil
	}
	return nil, fmt.Errorf("%w: cannot remove negation over %s", model.ErrProblemDefinition, atom.Kind)
}

// positiveNotEquals expands a negated equality. Numeric inequality
// becomes a strict comparison either way; object inequality becomes a
// disjunction over the distinct pairs of the operands' domains.
func (rw *negRewriter) positiveNotEquals(atom *ir.Expr) (*ir.Expr, error) {
	a, b := atom.Args[0], atom.Args[1]
	if a.Type().IsNumeric() {
		return ir.Or(ir.LT(a, b), ir.LT(b, a)), nil
	}
	if !a.Type().IsUser() || !b.Type().IsUser() {
		return nil, fmt.Errorf("%w: cannot remove negated equality over %s", model.ErrProblemDefinition, a.Type())
	}
	da := rw.problem.ObjectsOfType(a.Type().User())
	db := rw.problem.ObjectsOfType(b.Type().User())
	if len(da) == 0 || len(db) == 0 {
		return nil, fmt.Errorf("%w: empty domain for type %s in negated equality", model.ErrProblemDefinition, a.Type())
	}
	var terms []*ir.Expr
	for _, va := range da {
		for _, vb := range db {
			if va == vb {
				continue
			}
			t := ir.Simplify(ir.And(
				ir.Equals(a, ir.ObjectExp(va)),
				ir.Equals(b, ir.ObjectExp(vb)),
			))
			if t.IsFalse() {
				continue
			}
			terms = append(terms, t)
		}
	}
	return ir.Or(terms...), nil
}

// twin returns the complementary fluent of f, creating and registering
// it on first use.
func (rw *negRewriter) twin(f *ir.Fluent) *ir.Fluent {
	if t, ok := rw.twins[f]; ok {
		return t
	}
	t := ir.NewFluent(rw.namer.Fresh("not", f.Name()), ir.BoolType, f.Parameters()...)
	var dflt *ir.Expr
	if d := rw.problem.Default(f); d != nil {
		dflt = ir.Simplify(ir.Not(d))
	}
	rw.problem.AddFluent(t, dflt)
	rw.twins[f] = t
	return t
}

// addCompanionEffects appends, for every assignment to a fluent with a
// twin, the complementary assignment to the twin under the same
// condition.
func (rw *negRewriter) addCompanionEffects() {
	for _, a := range rw.problem.Actions() {
		switch act := a.(type) {
		case *model.InstantaneousAction:
			for _, e := range act.Effects() {
				if c := rw.companion(e); c != nil {
					act.AddEffect(c)
				}
			}
		case *model.DurativeAction:
			for _, te := range act.Effects() {
				if c := rw.companion(te.Effect); c != nil {
					act.AddTimedEffect(te.Timing, c)
				}
			}
		}
	}
	for _, te := range rw.problem.TimedEffects() {
		if c := rw.companion(te.Effect); c != nil {
			rw.problem.AddTimedEffect(te.Timing, c)
		}
	}
}

func (rw *negRewriter) companion(e *model.Effect) *model.Effect {
	if e.Kind != model.AssignEffect || e.Fluent.Kind != ir.FluentKind {
		return nil
	}
	t, ok := rw.twins[e.Fluent.Fluent]
	if !ok {
		return nil
	}
	c := e.Clone()
	c.Fluent = ir.FluentExp(t, e.Fluent.Args...)
	c.Value = ir.Simplify(ir.Not(e.Value))
	return c
}

// addTwinInitialValues mirrors every explicit initial value of a
// twinned fluent with the complementary value of the twin.
func (rw *negRewriter) addTwinInitialValues() error {
	for _, asg := range rw.problem.ExplicitInitialValues() {
		if asg.Fluent.Kind != ir.FluentKind {
			continue
		}
		t, ok := rw.twins[asg.Fluent.Fluent]
		if !ok {
			continue
		}
		v := ir.Simplify(ir.Not(asg.Value))
		if !v.IsConstant() {
			return fmt.Errorf("%w: initial value of %s is not constant", model.ErrProblemDefinition, asg.Fluent)
		}
		rw.problem.SetInitialValue(ir.FluentExp(t, asg.Fluent.Args...), v)
	}
	return nil
}
