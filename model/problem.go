package model

import (
	"fmt"

	"github.com/plankit/plankit/ir"
)

// Assignment pairs a ground fluent application with its value.
type Assignment struct {
	Fluent *ir.Expr
	Value  *ir.Expr
}

// Problem is a named aggregate owning fluents, actions, objects,
// initial values, goals, timed goals/effects, trajectory constraints
// and quality metrics.
type Problem struct {
	name string
	env  *ir.Environment

	fluents      []*ir.Fluent
	fluentByName map[string]*ir.Fluent
	defaults     map[*ir.Fluent]*ir.Expr

	actions      []Action
	actionByName map[string]Action

	objects      []*ir.Object
	objectByName map[string]*ir.Object

	initial    []Assignment
	initialIdx map[string]int

	goals        []*ir.Expr
	timedGoals   []TimedGoal
	timedEffects []TimedEffect
	constraints  []*ir.Expr
	metrics      []*Metric
}

func NewProblem(name string, env *ir.Environment) *Problem {
	return &Problem{
		name:         name,
		env:          env,
		fluentByName: map[string]*ir.Fluent{},
		defaults:     map[*ir.Fluent]*ir.Expr{},
		actionByName: map[string]Action{},
		objectByName: map[string]*ir.Object{},
		initialIdx:   map[string]int{},
	}
}

func (p *Problem) Name() string {
	return p.name
}

func (p *Problem) Environment() *ir.Environment {
	return p.env
}

// AddFluent registers a fluent; dflt, when non-nil, is the value of
// every instance not covered by an explicit initial value.
func (p *Problem) AddFluent(f *ir.Fluent, dflt *ir.Expr) error {
	if _, ok := p.fluentByName[f.Name()]; ok {
		return fmt.Errorf("%w: duplicate fluent %q", ErrUsage, f.Name())
	}
	p.fluents = append(p.fluents, f)
	p.fluentByName[f.Name()] = f
	if dflt != nil {
		p.defaults[f] = dflt
	}
	return nil
}

func (p *Problem) Fluents() []*ir.Fluent {
	res := make([]*ir.Fluent, len(p.fluents))
	copy(res, p.fluents)
	return res
}

func (p *Problem) FluentByName(name string) *ir.Fluent {
	return p.fluentByName[name]
}

// RemoveFluent deregisters a fluent and its default. Conditions and
// effects still mentioning it are the caller's responsibility.
func (p *Problem) RemoveFluent(f *ir.Fluent) {
	if _, ok := p.fluentByName[f.Name()]; !ok {
		return
	}
	delete(p.fluentByName, f.Name())
	delete(p.defaults, f)
	for i, x := range p.fluents {
		if x == f {
			p.fluents = append(p.fluents[:i], p.fluents[i+1:]...)
			break
		}
	}
}

// Default returns the declared default value of f, or nil.
func (p *Problem) Default(f *ir.Fluent) *ir.Expr {
	return p.defaults[f]
}

func (p *Problem) AddAction(a Action) error {
	if _, ok := p.actionByName[a.Name()]; ok {
		return fmt.Errorf("%w: duplicate action %q", ErrUsage, a.Name())
	}
	p.actions = append(p.actions, a)
	p.actionByName[a.Name()] = a
	return nil
}

func (p *Problem) Actions() []Action {
	res := make([]Action, len(p.actions))
	copy(res, p.actions)
	return res
}

func (p *Problem) ActionByName(name string) Action {
	return p.actionByName[name]
}

func (p *Problem) ClearActions() {
	p.actions = nil
	p.actionByName = map[string]Action{}
}

func (p *Problem) AddObject(o *ir.Object) error {
	if _, ok := p.objectByName[o.Name()]; ok {
		return fmt.Errorf("%w: duplicate object %q", ErrUsage, o.Name())
	}
	p.objects = append(p.objects, o)
	p.objectByName[o.Name()] = o
	return nil
}

func (p *Problem) Objects() []*ir.Object {
	res := make([]*ir.Object, len(p.objects))
	copy(res, p.objects)
	return res
}

func (p *Problem) ObjectByName(name string) *ir.Object {
	return p.objectByName[name]
}

// ObjectsOfType returns the objects whose type is ut or a subtype of it,
// in registration order.
func (p *Problem) ObjectsOfType(ut *ir.UserType) []*ir.Object {
	var res []*ir.Object
	for _, o := range p.objects {
		if o.UserType().IsSubtypeOf(ut) {
			res = append(res, o)
		}
	}
	return res
}

// SetInitialValue records the initial value of a ground fluent
// application, replacing any earlier entry for the same instance.
func (p *Problem) SetInitialValue(fluent, value *ir.Expr) {
	key := fluent.String()
	if i, ok := p.initialIdx[key]; ok {
		p.initial[i].Value = value
		return
	}
	p.initialIdx[key] = len(p.initial)
	p.initial = append(p.initial, Assignment{Fluent: fluent, Value: value})
}

// InitialValue returns the value of a ground fluent application in the
// initial state: the explicit entry if present, else the fluent's
// declared default.
func (p *Problem) InitialValue(fluent *ir.Expr) (*ir.Expr, bool) {
	if i, ok := p.initialIdx[fluent.String()]; ok {
		return p.initial[i].Value, true
	}
	if fluent.Kind == ir.FluentKind {
		if d := p.defaults[fluent.Fluent]; d != nil {
			return d, true
		}
	}
	return nil, false
}

// RemoveInitialValue drops the explicit entry for a ground fluent
// application, if any.
func (p *Problem) RemoveInitialValue(fluent *ir.Expr) {
	key := fluent.String()
	i, ok := p.initialIdx[key]
	if !ok {
		return
	}
	delete(p.initialIdx, key)
	p.initial = append(p.initial[:i], p.initial[i+1:]...)
	for k, j := range p.initialIdx {
		if j > i {
			p.initialIdx[k] = j - 1
		}
	}
}

// ExplicitInitialValues returns the explicitly set initial values in
// insertion order, without defaults.
func (p *Problem) ExplicitInitialValues() []Assignment {
	res := make([]Assignment, len(p.initial))
	copy(res, p.initial)
	return res
}

func (p *Problem) AddGoal(e *ir.Expr) {
	p.goals = append(p.goals, e)
}

func (p *Problem) Goals() []*ir.Expr {
	res := make([]*ir.Expr, len(p.goals))
	copy(res, p.goals)
	return res
}

func (p *Problem) ClearGoals() {
	p.goals = nil
}

func (p *Problem) AddTimedGoal(iv Interval, e *ir.Expr) {
	p.timedGoals = append(p.timedGoals, TimedGoal{Interval: iv, Goal: e})
}

func (p *Problem) TimedGoals() []TimedGoal {
	res := make([]TimedGoal, len(p.timedGoals))
	copy(res, p.timedGoals)
	return res
}

func (p *Problem) ClearTimedGoals() {
	p.timedGoals = nil
}

// AddTimedEffect schedules a problem-level effect at a global timing.
func (p *Problem) AddTimedEffect(t Timing, e *Effect) {
	p.timedEffects = append(p.timedEffects, TimedEffect{Timing: t, Effect: e})
}

func (p *Problem) TimedEffects() []TimedEffect {
	res := make([]TimedEffect, len(p.timedEffects))
	copy(res, p.timedEffects)
	return res
}

func (p *Problem) ClearTimedEffects() {
	p.timedEffects = nil
}

// AddConstraint adds a state invariant: a condition that must hold in
// every state of any plan.
func (p *Problem) AddConstraint(e *ir.Expr) {
	p.constraints = append(p.constraints, e)
}

func (p *Problem) Constraints() []*ir.Expr {
	res := make([]*ir.Expr, len(p.constraints))
	copy(res, p.constraints)
	return res
}

func (p *Problem) ClearConstraints() {
	p.constraints = nil
}

func (p *Problem) AddMetric(m *Metric) {
	p.metrics = append(p.metrics, m)
}

func (p *Problem) Metrics() []*Metric {
	res := make([]*Metric, len(p.metrics))
	copy(res, p.metrics)
	return res
}

func (p *Problem) ClearMetrics() {
	p.metrics = nil
}

// HasName reports whether name is taken by a fluent, action, object or
// user type. Fresh-name generators probe with it.
func (p *Problem) HasName(name string) bool {
	if _, ok := p.fluentByName[name]; ok {
		return true
	}
	if _, ok := p.actionByName[name]; ok {
		return true
	}
	if _, ok := p.objectByName[name]; ok {
		return true
	}
	return p.env != nil && p.env.UserTypeByName(name) != nil
}

// Clone returns a problem sharing no mutable state with p. Actions and
// effects are cloned; expressions are immutable and shared.
func (p *Problem) Clone() *Problem {
	res := NewProblem(p.name, p.env)
	res.fluents = make([]*ir.Fluent, len(p.fluents))
	copy(res.fluents, p.fluents)
	for name, f := range p.fluentByName {
		res.fluentByName[name] = f
	}
	for f, d := range p.defaults {
		res.defaults[f] = d
	}
	for _, a := range p.actions {
		c := a.Clone()
		res.actions = append(res.actions, c)
		res.actionByName[c.Name()] = c
	}
	res.objects = make([]*ir.Object, len(p.objects))
	copy(res.objects, p.objects)
	for name, o := range p.objectByName {
		res.objectByName[name] = o
	}
	res.initial = make([]Assignment, len(p.initial))
	copy(res.initial, p.initial)
	for k, i := range p.initialIdx {
		res.initialIdx[k] = i
	}
	res.goals = make([]*ir.Expr, len(p.goals))
	copy(res.goals, p.goals)
	res.timedGoals = make([]TimedGoal, len(p.timedGoals))
	copy(res.timedGoals, p.timedGoals)
	res.timedEffects = make([]TimedEffect, len(p.timedEffects))
	for i, te := range p.timedEffects {
		res.timedEffects[i] = TimedEffect{Timing: te.Timing, Effect: te.Effect.Clone()}
	}
	res.constraints = make([]*ir.Expr, len(p.constraints))
	copy(res.constraints, p.constraints)
	for _, m := range p.metrics {
		c := m.Clone()
		for i := range c.costs {
			if repl, ok := res.actionByName[c.costs[i].Action.Name()]; ok {
				c.costs[i].Action = repl
			}
		}
		res.metrics = append(res.metrics, c)
	}
	return res
}

// StaticFluents returns the fluents never assigned by any action effect
// or timed effect, hence constant throughout any plan.
func (p *Problem) StaticFluents() map[*ir.Fluent]bool {
	res := make(map[*ir.Fluent]bool, len(p.fluents))
	for _, f := range p.fluents {
		res[f] = true
	}
	mark := func(e *Effect) {
		if e.Fluent.Kind == ir.FluentKind {
			delete(res, e.Fluent.Fluent)
		}
	}
	for _, a := range p.actions {
		switch act := a.(type) {
		case *InstantaneousAction:
			for _, e := range act.Effects() {
				mark(e)
			}
		case *DurativeAction:
			for _, te := range act.Effects() {
				mark(te.Effect)
			}
		}
	}
	for _, te := range p.timedEffects {
		mark(te.Effect)
	}
	return res
}
