package compilers

import (
	"fmt"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// UsertypeFluentsRemover replaces every object-valued fluent with one
// boolean fluent per object of its value type. An equality against an
// object constant becomes an application of that object's fluent; an
// assignment becomes one boolean assignment per object, keeping exactly
// one of them true.
type UsertypeFluentsRemover struct{}

func NewUsertypeFluentsRemover() compiler.Compiler {
	return &UsertypeFluentsRemover{}
}

func (r *UsertypeFluentsRemover) Name() string { return "utfrm" }

func (r *UsertypeFluentsRemover) SupportedKind() model.ProblemKind {
	return model.FullKind()
}

func (r *UsertypeFluentsRemover) SupportsCompilation(kind compiler.Kind) bool {
	return kind == compiler.UsertypeFluentsRemoving
}

func (r *UsertypeFluentsRemover) ResultingKind(pk model.ProblemKind, kind compiler.Kind) model.ProblemKind {
	return pk.Unset(model.ObjectFluents)
}

func (r *UsertypeFluentsRemover) Compile(p *model.Problem, kind compiler.Kind) (*compiler.Result, error) {
	if err := compiler.Check(r, p, kind); err != nil {
		return nil, err
	}
	res := p.Clone()
	rw := &utfRewriter{
		problem: res,
		namer:   compiler.NewFreshNamer(res.HasName),
		boolFor: map[*ir.Fluent]map[*ir.Object]*ir.Fluent{},
	}
	if err := rw.replaceFluents(); err != nil {
		return nil, err
	}
	if err := rw.rewriteEffects(); err != nil {
		return nil, err
	}
	if err := rw.rewriteInitialValues(); err != nil {
		return nil, err
	}
	if err := rewriteAllConditions(res, rw.rewrite); err != nil {
		return nil, err
	}
	return &compiler.Result{
		Problem: res,
		MapBack: sameActionMapBack(p, res),
	}, nil
}

type utfRewriter struct {
	problem *model.Problem
	namer   *compiler.FreshNamer
	boolFor map[*ir.Fluent]map[*ir.Object]*ir.Fluent
	domains map[*ir.Fluent][]*ir.Object
}

// replaceFluents creates the per-object boolean fluents for every
// object-valued fluent of the problem.
func (rw *utfRewriter) replaceFluents() error {
	p := rw.problem
	rw.domains = map[*ir.Fluent][]*ir.Object{}
	for _, f := range p.Fluents() {
		if !f.Type().IsUser() {
			continue
		}
		objs := p.ObjectsOfType(f.Type().User())
		if len(objs) == 0 {
			return fmt.Errorf("%w: no objects of type %s for fluent %s",
				model.ErrProblemDefinition, f.Type(), f.Name())
		}
		dflt := p.Default(f)
		byObj := make(map[*ir.Object]*ir.Fluent, len(objs))
		for _, o := range objs {
			nf := ir.NewFluent(rw.namer.Fresh(f.Name(), o.Name()), ir.BoolType, f.Parameters()...)
			var nd *ir.Expr
			if dflt != nil && dflt.Kind == ir.ObjectKind {
				nd = ir.Bool(dflt.Object == o)
			}
			if err := p.AddFluent(nf, nd); err != nil {
				return err
			}
			byObj[o] = nf
		}
		rw.boolFor[f] = byObj
		rw.domains[f] = objs
		p.RemoveFluent(f)
	}
	return nil
}

// rewriteEffects expands each assignment to an object-valued fluent
// into one boolean assignment per object of the domain.
func (rw *utfRewriter) rewriteEffects() error {
	for _, a := range rw.problem.Actions() {
		switch act := a.(type) {
		case *model.InstantaneousAction:
			effs := act.Effects()
			act.ClearEffects()
			for _, e := range effs {
				expanded, err := rw.expandEffect(e)
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
				expanded, err := rw.expandEffect(te.Effect)
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
	timed := rw.problem.TimedEffects()
	rw.problem.ClearTimedEffects()
	for _, te := range timed {
		expanded, err := rw.expandEffect(te.Effect)
		if err != nil {
			return err
		}
		for _, ne := range expanded {
			rw.problem.AddTimedEffect(te.Timing, ne)
		}
	}
	return nil
}

func (rw *utfRewriter) expandEffect(e *model.Effect) ([]*model.Effect, error) {
	if e.Fluent.Kind != ir.FluentKind || !e.Fluent.Fluent.Type().IsUser() {
		if err := rw.checkNoObjectFluent(e.Value); err != nil {
			return nil, err
		}
		return []*model.Effect{e}, nil
	}
	if e.Kind != model.AssignEffect {
		return nil, fmt.Errorf("%w: non-assignment effect on object fluent %s",
			model.ErrProblemDefinition, e.Fluent.Fluent.Name())
	}
	if err := rw.checkNoObjectFluent(e.Value); err != nil {
		return nil, err
	}
	f := e.Fluent.Fluent
	var res []*model.Effect
	for _, o := range rw.domains[f] {
		ne := e.Clone()
		ne.Fluent = ir.FluentExp(rw.boolFor[f][o], e.Fluent.Args...)
		ne.Value = ir.Simplify(ir.Equals(e.Value, ir.ObjectExp(o)))
		res = append(res, ne)
	}
	return res, nil
}

// rewriteInitialValues mirrors the effect expansion on the explicit
// initial values.
func (rw *utfRewriter) rewriteInitialValues() error {
	p := rw.problem
	for _, asg := range p.ExplicitInitialValues() {
		if asg.Fluent.Kind != ir.FluentKind || !asg.Fluent.Fluent.Type().IsUser() {
			continue
		}
		f := asg.Fluent.Fluent
		if asg.Value.Kind != ir.ObjectKind {
			return fmt.Errorf("%w: initial value of %s is not an object", model.ErrProblemDefinition, asg.Fluent)
		}
		p.RemoveInitialValue(asg.Fluent)
		for _, o := range rw.domains[f] {
			p.SetInitialValue(
				ir.FluentExp(rw.boolFor[f][o], asg.Fluent.Args...),
				ir.Bool(asg.Value.Object == o),
			)
		}
	}
	return nil
}

// rewrite replaces equalities against object-valued fluents. Only
// comparisons with a constant object can be expressed with the boolean
// replacements; anything else keeping the fluent is rejected.
func (rw *utfRewriter) rewrite(e *ir.Expr) (*ir.Expr, error) {
	res := ir.Substitute(e, func(x *ir.Expr) *ir.Expr {
		if x.Kind != ir.EqualsKind {
			return nil
		}
		a, b := x.Args[0], x.Args[1]
		if a.Kind == ir.ObjectKind && b.Kind == ir.FluentKind {
			a, b = b, a
		}
		if a.Kind != ir.FluentKind || !a.Fluent.Type().IsUser() || b.Kind != ir.ObjectKind {
			return nil
		}
		nf, ok := rw.boolFor[a.Fluent][b.Object]
		if !ok {
			return ir.False()
		}
		return ir.FluentExp(nf, a.Args...)
	})
	if err := rw.checkNoObjectFluent(res); err != nil {
		return nil, err
	}
	return res, nil
}

// checkNoObjectFluent rejects surviving object-fluent applications.
func (rw *utfRewriter) checkNoObjectFluent(e *ir.Expr) error {
	var bad *ir.Fluent
	ir.Walk(e, func(x *ir.Expr) bool {
		if x.Kind == ir.FluentKind {
			if _, ok := rw.boolFor[x.Fluent]; ok {
				bad = x.Fluent
				return false
			}
		}
		return true
	})
	if bad != nil {
		return fmt.Errorf("%w: object fluent %s used outside an equality with a constant",
			compiler.ErrUnsupportedProblem, bad.Name())
	}
	return nil
}
