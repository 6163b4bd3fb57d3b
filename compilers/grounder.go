package compilers

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/debug"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// GrounderHelper instantiates lifted actions over every admissible
// tuple of their parameters' domains. It is used directly by the
// Grounder compiler and by compilers that need fresh grounded actions.
//
// Instantiation is memoized by (action name, parameter tuple): repeated
// calls return the same action value, which downstream deduplication
// relies on. A memoized nil means the instantiation is meaningless (a
// contradictory precondition, conflicting effects, or no effects at
// all) and must be silently dropped.
type GrounderHelper struct {
	problem  *model.Problem
	explicit map[model.Action][][]*ir.Expr
	prune    bool

	memo    map[groundKey]model.Action
	memoSet map[groundKey]bool
}

type groundKey struct {
	action string
	args   string
}

type GrounderOption func(*GrounderHelper)

// WithGroundingMap supplies the exact parameter tuples to ground each
// action with. An action absent from the map grounds to nothing.
func WithGroundingMap(m map[model.Action][][]*ir.Expr) GrounderOption {
	return func(g *GrounderHelper) { g.explicit = m }
}

// WithoutPruning disables static-fluent candidate pruning.
func WithoutPruning() GrounderOption {
	return func(g *GrounderHelper) { g.prune = false }
}

// NewGrounderHelper builds a helper for p. A grounding map with a
// parameter-count mismatch is a usage error reported here.
func NewGrounderHelper(p *model.Problem, opts ...GrounderOption) (*GrounderHelper, error) {
	g := &GrounderHelper{
		problem: p,
		prune:   true,
		memo:    map[groundKey]model.Action{},
		memoSet: map[groundKey]bool{},
	}
	for _, opt := range opts {
		opt(g)
	}
	for a, tuples := range g.explicit {
		for _, tup := range tuples {
			if len(tup) != len(a.Parameters()) {
				return nil, fmt.Errorf("%w: grounding map entry for %s has %d values, action has %d parameters",
					compiler.ErrUsage, a.Name(), len(tup), len(a.Parameters()))
			}
		}
	}
	return g, nil
}

func key(a model.Action, params []*ir.Expr) groundKey {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return groundKey{action: a.Name(), args: strings.Join(parts, ",")}
}

// GroundAction substitutes params into a. It returns (nil, nil) when
// the instantiation is meaningless. len(params) must match the action's
// parameter count.
func (g *GrounderHelper) GroundAction(a model.Action, params []*ir.Expr) (model.Action, error) {
	if len(params) != len(a.Parameters()) {
		return nil, fmt.Errorf("%w: grounding %s with %d values, action has %d parameters",
			compiler.ErrUsage, a.Name(), len(params), len(a.Parameters()))
	}
	k := key(a, params)
	if g.memoSet[k] {
		return g.memo[k], nil
	}
	grounded := g.instantiate(a, params)
	g.memoSet[k] = true
	g.memo[k] = grounded
	if debug.Ground() {
		debug.Logf("ground: %s(%s) -> %v\n", a.Name(), k.args, grounded)
	}
	return grounded, nil
}

func groundName(a model.Action, params []*ir.Expr) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, a.Name())
	for _, p := range params {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, "_")
}

func paramSubstitution(a model.Action, params []*ir.Expr) map[*ir.Parameter]*ir.Expr {
	sub := make(map[*ir.Parameter]*ir.Expr, len(params))
	for i, fp := range a.Parameters() {
		sub[fp] = params[i]
	}
	return sub
}

// instantiate returns the parameter-free action, or nil when the
// instantiation is meaningless.
func (g *GrounderHelper) instantiate(a model.Action, params []*ir.Expr) model.Action {
	sub := paramSubstitution(a, params)
	switch act := a.(type) {
	case *model.InstantaneousAction:
		return groundInstantaneous(act, groundName(a, params), sub)
	case *model.DurativeAction:
		return groundDurative(act, groundName(a, params), sub)
	}
	return nil
}

func groundInstantaneous(a *model.InstantaneousAction, name string, sub map[*ir.Parameter]*ir.Expr) model.Action {
	res := model.NewInstantaneousAction(name)
	var pres []*ir.Expr
	for _, pre := range a.Preconditions() {
		s := ir.Simplify(ir.SubstituteParams(pre, sub))
		if s.IsFalse() {
			return nil
		}
		if s.IsTrue() {
			continue
		}
		pres = append(pres, s)
	}
	if len(pres) > 1 && infeasible(pres) {
		return nil
	}
	for _, pre := range pres {
		res.AddPrecondition(pre)
	}
	for _, e := range a.Effects() {
		ne, ok := groundEffect(e, sub)
		if !ok {
			continue
		}
		if err := res.AddEffect(ne); err != nil {
			if errors.Is(err, model.ErrConflictingEffects) {
				return nil
			}
			return nil
		}
	}
	if len(res.Effects()) == 0 {
		return nil
	}
	return res
}

func groundDurative(a *model.DurativeAction, name string, sub map[*ir.Parameter]*ir.Expr) model.Action {
	res := model.NewDurativeAction(name)
	dur := a.Duration()
	if dur.Lower != nil {
		dur.Lower = ir.Simplify(ir.SubstituteParams(dur.Lower, sub))
	}
	if dur.Upper != nil {
		dur.Upper = ir.Simplify(ir.SubstituteParams(dur.Upper, sub))
	}
	res.SetDuration(dur)
	for _, tc := range a.Conditions() {
		s := ir.Simplify(ir.SubstituteParams(tc.Cond, sub))
		if s.IsFalse() {
			return nil
		}
		if s.IsTrue() {
			continue
		}
		res.AddCondition(tc.Interval, s)
	}
	n := 0
	for _, te := range a.Effects() {
		ne, ok := groundEffect(te.Effect, sub)
		if !ok {
			continue
		}
		if err := res.AddTimedEffect(te.Timing, ne); err != nil {
			return nil
		}
		n++
	}
	if n == 0 {
		return nil
	}
	return res
}

// groundEffect substitutes into an effect; ok is false when the
// effect's condition simplifies to false.
func groundEffect(e *model.Effect, sub map[*ir.Parameter]*ir.Expr) (*model.Effect, bool) {
	cond := ir.Simplify(ir.SubstituteParams(e.Condition, sub))
	if cond.IsFalse() {
		return nil, false
	}
	res := e.Clone()
	res.Fluent = ir.SubstituteParams(e.Fluent, sub)
	res.Value = ir.Simplify(ir.SubstituteParams(e.Value, sub))
	res.Condition = cond
	return res, true
}

// PossibleParameters returns the parameter tuples a will be grounded
// with: the grounding-map entries when one was supplied, otherwise the
// Cartesian product of the parameters' domains, narrowed by static
// preconditions when pruning is enabled.
func (g *GrounderHelper) PossibleParameters(a model.Action) ([][]*ir.Expr, error) {
	if g.explicit != nil {
		tuples := g.explicit[a]
		// dedup, preserving order
		seen := map[string]bool{}
		var res [][]*ir.Expr
		for _, tup := range tuples {
			k := key(a, tup)
			if seen[k.args] {
				continue
			}
			seen[k.args] = true
			res = append(res, tup)
		}
		return res, nil
	}
	cands := make([][]*ir.Expr, len(a.Parameters()))
	for i, p := range a.Parameters() {
		dom, err := g.domain(p.Type())
		if err != nil {
			return nil, fmt.Errorf("parameter %s of %s: %w", p.Name(), a.Name(), err)
		}
		cands[i] = dom
	}
	if g.prune {
		g.pruneCandidates(a, cands)
	}
	return cartesian(cands), nil
}

func (g *GrounderHelper) domain(t *ir.Type) ([]*ir.Expr, error) {
	switch {
	case t.IsUser():
		objs := g.problem.ObjectsOfType(t.User())
		res := make([]*ir.Expr, len(objs))
		for i, o := range objs {
			res[i] = ir.ObjectExp(o)
		}
		return res, nil
	case t.IsBool():
		return []*ir.Expr{ir.False(), ir.True()}, nil
	}
	return nil, fmt.Errorf("%w: cannot enumerate domain of type %s", compiler.ErrUsage, t)
}

// pruneCandidates narrows candidate objects using top-level static
// boolean fluent preconditions: an object stays only if some true
// initial value of the static fluent mentions it at the matching
// argument position. A fluent whose default is true admits everything
// and is skipped; otherwise explicit initial values are the full truth
// set, so only they are scanned.
func (g *GrounderHelper) pruneCandidates(a model.Action, cands [][]*ir.Expr) {
	statics := g.problem.StaticFluents()
	paramIdx := map[*ir.Parameter]int{}
	for i, p := range a.Parameters() {
		paramIdx[p] = i
	}
	for _, conj := range topConjuncts(a) {
		if conj.Kind != ir.FluentKind || !conj.Fluent.Type().IsBool() || !statics[conj.Fluent] {
			continue
		}
		if d := g.problem.Default(conj.Fluent); d != nil && d.IsTrue() {
			continue
		}
		allowed := g.allowedObjects(conj, paramIdx)
		for pos, set := range allowed {
			var kept []*ir.Expr
			for _, c := range cands[pos] {
				if set[c.String()] {
					kept = append(kept, c)
				}
			}
			cands[pos] = kept
		}
	}
}

// allowedObjects scans the explicit initial values of the conjunct's
// static fluent and collects, per parameter position of the action, the
// objects that appear where the conjunct has that parameter.
func (g *GrounderHelper) allowedObjects(conj *ir.Expr, paramIdx map[*ir.Parameter]int) map[int]map[string]bool {
	allowed := map[int]map[string]bool{}
	for _, arg := range conj.Args {
		if arg.Kind != ir.ParamKind {
			continue
		}
		if pos, ok := paramIdx[arg.Param]; ok && allowed[pos] == nil {
			allowed[pos] = map[string]bool{}
		}
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, asg := range g.problem.ExplicitInitialValues() {
		if asg.Fluent.Kind != ir.FluentKind || asg.Fluent.Fluent != conj.Fluent || !asg.Value.IsTrue() {
			continue
		}
		if !initialMatches(conj, asg.Fluent) {
			continue
		}
		for i, arg := range conj.Args {
			if arg.Kind != ir.ParamKind {
				continue
			}
			pos, ok := paramIdx[arg.Param]
			if !ok {
				continue
			}
			allowed[pos][asg.Fluent.Args[i].String()] = true
		}
	}
	return allowed
}

// initialMatches checks the conjunct's constant arguments against an
// initial-value fluent application.
func initialMatches(conj, init *ir.Expr) bool {
	if len(conj.Args) != len(init.Args) {
		return false
	}
	for i, arg := range conj.Args {
		if arg.IsConstant() && !ir.Equal(arg, init.Args[i]) {
			return false
		}
	}
	return true
}

// topConjuncts returns the top-level precondition conjuncts of an
// action, across all intervals for durative actions.
func topConjuncts(a model.Action) []*ir.Expr {
	var res []*ir.Expr
	switch act := a.(type) {
	case *model.InstantaneousAction:
		for _, pre := range act.Preconditions() {
			res = append(res, ir.Conjuncts(pre)...)
		}
	case *model.DurativeAction:
		for _, tc := range act.Conditions() {
			res = append(res, ir.Conjuncts(tc.Cond)...)
		}
	}
	return res
}

// cartesian enumerates tuples in odometer order: the last position
// varies fastest.
func cartesian(cands [][]*ir.Expr) [][]*ir.Expr {
	if len(cands) == 0 {
		return [][]*ir.Expr{{}}
	}
	total := 1
	for _, c := range cands {
		total *= len(c)
		if total == 0 {
			return nil
		}
	}
	res := make([][]*ir.Expr, 0, total)
	idx := make([]int, len(cands))
	for {
		tup := make([]*ir.Expr, len(cands))
		for i, j := range idx {
			tup[i] = cands[i][j]
		}
		res = append(res, tup)
		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(cands[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return res
		}
	}
}

// GroundedAction is one entry of the full grounding of a problem.
type GroundedAction struct {
	Original model.Action
	Params   []*ir.Expr
	// Grounded is nil when the instantiation is meaningless.
	Grounded model.Action
}

// GroundedActions lazily produces the full grounding of the problem:
// one triple per action and admissible parameter tuple, never the same
// (action, params) pair twice.
func (g *GrounderHelper) GroundedActions() (iter.Seq[GroundedAction], error) {
	tuplesByAction := make([][][]*ir.Expr, 0, len(g.problem.Actions()))
	actions := g.problem.Actions()
	for _, a := range actions {
		tuples, err := g.PossibleParameters(a)
		if err != nil {
			return nil, err
		}
		tuplesByAction = append(tuplesByAction, tuples)
	}
	return func(yield func(GroundedAction) bool) {
		for i, a := range actions {
			for _, params := range tuplesByAction[i] {
				grounded, err := g.GroundAction(a, params)
				if err != nil {
					return
				}
				if !yield(GroundedAction{Original: a, Params: params, Grounded: grounded}) {
					return
				}
			}
		}
	}, nil
}
