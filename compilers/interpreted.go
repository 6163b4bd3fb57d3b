package compilers

import (
	"fmt"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// KnownCall records one evaluated input tuple of an interpreted
// function. Result may be nil, in which case the remover evaluates the
// function body on Args at compile time.
type KnownCall struct {
	Args   []*ir.Expr
	Result *ir.Expr
}

// InterpretedFunctionsRemover eliminates interpreted-function
// applications from instantaneous preconditions. For every combination
// of known input tuples it emits a variant of the action in which each
// application is replaced by its evaluated result, guarded by equality
// of the application's arguments with the tuple. One extra optimistic
// variant drops the applications entirely; it is guarded by a fresh
// tracking fluent, initially false, that a refinement loop may set true
// to admit unevaluated inputs.
//
// Interpreted functions anywhere else (durative conditions, effects,
// goals) cannot be removed this way and are rejected.
type InterpretedFunctionsRemover struct {
	known map[*ir.Function][]KnownCall
}

func NewInterpretedFunctionsRemover() compiler.Compiler {
	return &InterpretedFunctionsRemover{}
}

// NewInterpretedFunctionsRemoverWith seeds the remover with known input
// tuples per function.
func NewInterpretedFunctionsRemoverWith(known map[*ir.Function][]KnownCall) *InterpretedFunctionsRemover {
	return &InterpretedFunctionsRemover{known: known}
}

func (r *InterpretedFunctionsRemover) Name() string { return "ifrm" }

func (r *InterpretedFunctionsRemover) SupportedKind() model.ProblemKind {
	return model.FullKind()
}

func (r *InterpretedFunctionsRemover) SupportsCompilation(kind compiler.Kind) bool {
	return kind == compiler.InterpretedFunctionsRemoving
}

func (r *InterpretedFunctionsRemover) ResultingKind(pk model.ProblemKind, kind compiler.Kind) model.ProblemKind {
	res := pk.Unset(model.InterpretedFunctions)
	if pk.Has(model.InterpretedFunctions) {
		res = res.Set(model.EqualityConditions)
	}
	return res
}

func (r *InterpretedFunctionsRemover) Compile(p *model.Problem, kind compiler.Kind) (*compiler.Result, error) {
	if err := compiler.Check(r, p, kind); err != nil {
		return nil, err
	}
	if err := rejectStrayFunctions(p); err != nil {
		return nil, err
	}
	res := p.Clone()
	rw := &ifRewriter{
		problem:  res,
		known:    r.known,
		namer:    compiler.NewFreshNamer(res.HasName),
		trace:    map[string]model.Action{},
		tracking: map[*ir.Function]*ir.Fluent{},
	}
	actions := res.Actions()
	res.ClearActions()
	for _, a := range actions {
		from := p.ActionByName(a.Name())
		act, ok := a.(*model.InstantaneousAction)
		if !ok {
			res.AddAction(a)
			rw.trace[a.Name()] = from
			continue
		}
		if err := rw.rewriteAction(act, from); err != nil {
			return nil, err
		}
	}
	retargetCosts(p, res, rw.trace)
	return &compiler.Result{
		Problem: res,
		MapBack: compiler.IdentityMapBack(rw.trace),
	}, nil
}

// rejectStrayFunctions refuses interpreted functions outside
// instantaneous preconditions.
func rejectStrayFunctions(p *model.Problem) error {
	inEffects := func(e *model.Effect) bool {
		return ir.HasKind(e.Value, ir.FunctionKind) || ir.HasKind(e.Condition, ir.FunctionKind)
	}
	for _, a := range p.Actions() {
		switch act := a.(type) {
		case *model.InstantaneousAction:
			for _, e := range act.Effects() {
				if inEffects(e) {
					return fmt.Errorf("%w: interpreted function in effect of %s",
						compiler.ErrUnsupportedProblem, a.Name())
				}
			}
		case *model.DurativeAction:
			for _, tc := range act.Conditions() {
				if ir.HasKind(tc.Cond, ir.FunctionKind) {
					return fmt.Errorf("%w: interpreted function in durative condition of %s",
						compiler.ErrUnsupportedProblem, a.Name())
				}
			}
			for _, te := range act.Effects() {
				if inEffects(te.Effect) {
					return fmt.Errorf("%w: interpreted function in effect of %s",
						compiler.ErrUnsupportedProblem, a.Name())
				}
			}
		}
	}
	for _, g := range p.Goals() {
		if ir.HasKind(g, ir.FunctionKind) {
			return fmt.Errorf("%w: interpreted function in goal", compiler.ErrUnsupportedProblem)
		}
	}
	for _, tg := range p.TimedGoals() {
		if ir.HasKind(tg.Goal, ir.FunctionKind) {
			return fmt.Errorf("%w: interpreted function in timed goal", compiler.ErrUnsupportedProblem)
		}
	}
	return nil
}

type ifRewriter struct {
	problem *model.Problem
	known   map[*ir.Function][]KnownCall
	namer   *compiler.FreshNamer
	trace   map[string]model.Action
	// tracking holds the per-function fluent guarding the optimistic
	// variants.
	tracking map[*ir.Function]*ir.Fluent
}

func (rw *ifRewriter) rewriteAction(a *model.InstantaneousAction, from model.Action) error {
	var apps []*ir.Expr
	for _, pre := range a.Preconditions() {
		apps = append(apps, ir.FunctionApps(pre)...)
	}
	apps = dedupExprs(apps)
	if len(apps) == 0 {
		rw.add(a.Renamed(rw.namer.Fresh(a.Name())), from)
		return nil
	}

	// one known-call list per application, in application order
	calls := make([][]KnownCall, len(apps))
	for i, app := range apps {
		list, err := rw.resolvedCalls(app.Function)
		if err != nil {
			return err
		}
		calls[i] = list
	}
	for _, combo := range callCombos(calls) {
		na := model.NewInstantaneousAction(rw.namer.Fresh(a.Name()), a.Parameters()...)
		ok := true
		for i, app := range apps {
			kc := combo[i]
			for j, arg := range app.Args {
				guard := ir.Simplify(ir.Equals(arg, kc.Args[j]))
				if guard.IsFalse() {
					ok = false
					break
				}
				if !guard.IsTrue() {
					na.AddPrecondition(guard)
				}
			}
			if !ok {
				break
			}
		}
		if !ok {
			continue
		}
		for _, pre := range a.Preconditions() {
			np := pre
			for i, app := range apps {
				np = ir.Replace(np, app, combo[i].Result)
			}
			np = ir.Simplify(np)
			if np.IsFalse() {
				ok = false
				break
			}
			if !np.IsTrue() {
				na.AddPrecondition(np)
			}
		}
		if !ok {
			continue
		}
		for _, e := range a.Effects() {
			if err := na.AddEffect(e.Clone()); err != nil {
				return err
			}
		}
		rw.add(na, from)
	}
	return rw.addOptimistic(a, from, apps)
}

// addOptimistic emits the variant usable outside the known input set:
// every precondition conjunct mentioning an application is dropped and
// the per-function tracking fluents are required instead.
func (rw *ifRewriter) addOptimistic(a *model.InstantaneousAction, from model.Action, apps []*ir.Expr) error {
	na := model.NewInstantaneousAction(rw.namer.Fresh(a.Name()), a.Parameters()...)
	for _, pre := range a.Preconditions() {
		keep := true
		for _, c := range ir.Conjuncts(pre) {
			if ir.HasKind(c, ir.FunctionKind) {
				keep = false
				break
			}
		}
		if keep {
			na.AddPrecondition(pre)
		} else {
			for _, c := range ir.Conjuncts(pre) {
				if !ir.HasKind(c, ir.FunctionKind) {
					na.AddPrecondition(c)
				}
			}
		}
	}
	seen := map[*ir.Function]bool{}
	for _, app := range apps {
		if seen[app.Function] {
			continue
		}
		seen[app.Function] = true
		na.AddPrecondition(ir.FluentExp(rw.trackingFluent(app.Function)))
	}
	for _, e := range a.Effects() {
		if err := na.AddEffect(e.Clone()); err != nil {
			return err
		}
	}
	rw.add(na, from)
	return nil
}

func (rw *ifRewriter) add(a model.Action, from model.Action) {
	rw.problem.AddAction(a)
	rw.trace[a.Name()] = from
}

// resolvedCalls returns the known calls of f with every missing result
// evaluated from the function body. Caller-seeded tuples are checked
// against the function's arity whether or not they carry a result.
func (rw *ifRewriter) resolvedCalls(f *ir.Function) ([]KnownCall, error) {
	list := rw.known[f]
	res := make([]KnownCall, len(list))
	for i, kc := range list {
		if len(kc.Args) != f.Arity() {
			return nil, fmt.Errorf("%w: known call of %s expects %d args, got %d",
				compiler.ErrUsage, f.Name(), f.Arity(), len(kc.Args))
		}
		if kc.Result != nil {
			res[i] = kc
			continue
		}
		v, err := f.Call(kc.Args...)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", f.Name(), err)
		}
		res[i] = KnownCall{Args: kc.Args, Result: v}
	}
	return res, nil
}

func (rw *ifRewriter) trackingFluent(f *ir.Function) *ir.Fluent {
	if t, ok := rw.tracking[f]; ok {
		return t
	}
	t := ir.NewFluent(rw.namer.Fresh(f.Name(), "unknown"), ir.BoolType)
	rw.problem.AddFluent(t, ir.False())
	rw.tracking[f] = t
	return t
}

// callCombos enumerates one known call per application, odometer order.
func callCombos(calls [][]KnownCall) [][]KnownCall {
	for _, c := range calls {
		if len(c) == 0 {
			return nil
		}
	}
	if len(calls) == 0 {
		return nil
	}
	res := [][]KnownCall{}
	idx := make([]int, len(calls))
	for {
		combo := make([]KnownCall, len(calls))
		for i, j := range idx {
			combo[i] = calls[i][j]
		}
		res = append(res, combo)
		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(calls[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return res
		}
	}
}

func dedupExprs(exprs []*ir.Expr) []*ir.Expr {
	seen := map[string]bool{}
	var res []*ir.Expr
	for _, e := range exprs {
		k := e.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		res = append(res, e)
	}
	return res
}
