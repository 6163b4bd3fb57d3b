package model

import "github.com/plankit/plankit/ir"

// Kind computes the feature set the problem actually uses by scanning
// its conditions, effects, metrics and type hierarchy.
func (p *Problem) Kind() ProblemKind {
	var k ProblemKind

	cond := func(e *ir.Expr) {
		k = k.Union(conditionKind(e))
	}
	eff := func(e *Effect) {
		if e.IsConditional() {
			k = k.Set(ConditionalEffects)
			cond(e.Condition)
		}
		if len(e.Forall) > 0 {
			k = k.Set(ForallEffects)
		}
		switch e.Kind {
		case IncreaseEffect:
			k = k.Set(IncreaseEffects)
		case DecreaseEffect:
			k = k.Set(DecreaseEffects)
		}
		k = k.Union(termKind(e.Fluent)).Union(termKind(e.Value))
		k = k.Union(quantifierKind(e.Value))
	}

	for _, f := range p.fluents {
		switch {
		case f.Type().IsNumeric():
			k = k.Set(NumericFluents)
		case f.Type().IsUser():
			k = k.Set(ObjectFluents)
		}
	}
	for _, a := range p.actions {
		switch act := a.(type) {
		case *InstantaneousAction:
			for _, pre := range act.Preconditions() {
				cond(pre)
			}
			for _, e := range act.Effects() {
				eff(e)
			}
		case *DurativeAction:
			k = k.Set(ContinuousTime)
			for _, tc := range act.Conditions() {
				cond(tc.Cond)
				if intermediate(tc.Interval.Lower) || intermediate(tc.Interval.Upper) {
					k = k.Set(IntermediateConditionsAndEffects)
				}
			}
			for _, te := range act.Effects() {
				eff(te.Effect)
				if intermediate(te.Timing) {
					k = k.Set(IntermediateConditionsAndEffects)
				}
			}
		}
	}
	for _, g := range p.goals {
		cond(g)
	}
	for _, tg := range p.timedGoals {
		k = k.Set(TimedGoals)
		cond(tg.Goal)
	}
	for _, te := range p.timedEffects {
		k = k.Set(TimedEffects)
		eff(te.Effect)
	}
	for _, c := range p.constraints {
		k = k.Set(TrajectoryConstraints)
		cond(c)
	}
	for _, m := range p.metrics {
		switch m.Kind {
		case MinimizeActionCosts:
			k = k.Set(ActionCosts)
		case MaximizeOversubscription:
			k = k.Set(OversubscriptionGoals)
			for _, wg := range m.Goals {
				cond(wg.Goal)
			}
		}
	}
	if p.env != nil {
		for _, u := range p.env.UserTypes() {
			if u.Parent() != nil {
				k = k.Set(HierarchicalTyping)
			}
		}
	}
	return k
}

// intermediate reports a timing strictly inside the action (a delayed
// start or negatively delayed end).
func intermediate(t Timing) bool {
	switch t.Timepoint {
	case StartTimepoint:
		return t.Delay > 0
	case EndTimepoint:
		return t.Delay < 0
	}
	return false
}

// conditionKind scans a boolean condition for condition features. It
// tracks negation polarity so the flags match the condition's negation
// normal form: not(and(a, b)) counts as disjunctive because it desugars
// to or(not(a), not(b)), and a quantifier under an odd number of
// negations counts as its dual.
func conditionKind(e *ir.Expr) ProblemKind {
	var k ProblemKind
	var scan func(x *ir.Expr, neg bool)
	scan = func(x *ir.Expr, neg bool) {
		if x == nil {
			return
		}
		switch x.Kind {
		case ir.NotKind:
			scan(x.Args[0], !neg)
		case ir.AndKind:
			if neg {
				k = k.Set(DisjunctiveConditions)
			}
			for _, a := range x.Args {
				scan(a, neg)
			}
		case ir.OrKind:
			if !neg {
				k = k.Set(DisjunctiveConditions)
			}
			for _, a := range x.Args {
				scan(a, neg)
			}
		case ir.ImpliesKind:
			// a implies b reads not(a) or b in negation normal form
			k = k.Set(NegativeConditions)
			if !neg {
				k = k.Set(DisjunctiveConditions)
			}
			scan(x.Args[0], !neg)
			scan(x.Args[1], neg)
		case ir.IffKind:
			// both directions desugar with a disjunction and a negation
			k = k.Set(DisjunctiveConditions).Set(NegativeConditions)
			scan(x.Args[0], neg)
			scan(x.Args[1], neg)
			scan(x.Args[0], !neg)
			scan(x.Args[1], !neg)
		case ir.ExistsKind:
			if neg {
				k = k.Set(UniversalConditions)
			} else {
				k = k.Set(ExistentialConditions)
			}
			scan(x.Args[0], neg)
		case ir.ForallKind:
			if neg {
				k = k.Set(ExistentialConditions)
			} else {
				k = k.Set(UniversalConditions)
			}
			scan(x.Args[0], neg)
		case ir.EqualsKind:
			k = k.Set(EqualityConditions)
			if neg {
				k = k.Set(NegativeConditions)
			}
		case ir.FluentKind, ir.FunctionKind, ir.LEKind, ir.LTKind:
			if neg {
				k = k.Set(NegativeConditions)
			}
		}
	}
	scan(e, false)
	return k.Union(termKind(e))
}

// termKind scans a term for fluent-typing, function and arithmetic
// features.
func termKind(e *ir.Expr) ProblemKind {
	var k ProblemKind
	ir.Walk(e, func(x *ir.Expr) bool {
		switch x.Kind {
		case ir.FluentKind:
			switch {
			case x.Fluent.Type().IsNumeric():
				k = k.Set(NumericFluents)
			case x.Fluent.Type().IsUser():
				k = k.Set(ObjectFluents)
			}
		case ir.FunctionKind:
			k = k.Set(InterpretedFunctions)
		case ir.LEKind, ir.LTKind, ir.PlusKind, ir.MinusKind, ir.TimesKind, ir.DivKind:
			k = k.Set(NumericFluents)
		}
		return true
	})
	return k
}

// quantifierKind scans a term for quantifiers, which reach effect
// values through boolean assignments.
func quantifierKind(e *ir.Expr) ProblemKind {
	var k ProblemKind
	ir.Walk(e, func(x *ir.Expr) bool {
		switch x.Kind {
		case ir.ExistsKind:
			k = k.Set(ExistentialConditions)
		case ir.ForallKind:
			k = k.Set(UniversalConditions)
		}
		return true
	})
	return k
}
