package model

import (
	"fmt"
	"strings"

	"github.com/plankit/plankit/ir"
)

// Action is a closed sum type: *InstantaneousAction or *DurativeAction.
type Action interface {
	Name() string
	Parameters() []*ir.Parameter
	Clone() Action
	isAction()
}

// InstantaneousAction applies its effects atomically when its
// preconditions hold.
type InstantaneousAction struct {
	name    string
	params  []*ir.Parameter
	pre     []*ir.Expr
	effects EffectList
}

func NewInstantaneousAction(name string, params ...*ir.Parameter) *InstantaneousAction {
	return &InstantaneousAction{name: name, params: params}
}

func (a *InstantaneousAction) isAction() {}

func (a *InstantaneousAction) Name() string {
	return a.name
}

func (a *InstantaneousAction) Parameters() []*ir.Parameter {
	res := make([]*ir.Parameter, len(a.params))
	copy(res, a.params)
	return res
}

func (a *InstantaneousAction) AddPrecondition(e *ir.Expr) {
	a.pre = append(a.pre, e)
}

func (a *InstantaneousAction) Preconditions() []*ir.Expr {
	res := make([]*ir.Expr, len(a.pre))
	copy(res, a.pre)
	return res
}

// ClearPreconditions removes all preconditions.
func (a *InstantaneousAction) ClearPreconditions() {
	a.pre = nil
}

// AddEffect inserts an effect, returning a *ConflictError when it
// unconditionally disagrees with an existing effect.
func (a *InstantaneousAction) AddEffect(e *Effect) error {
	return a.effects.Add(e)
}

func (a *InstantaneousAction) Effects() []*Effect {
	return a.effects.Effects()
}

func (a *InstantaneousAction) ClearEffects() {
	a.effects = EffectList{}
}

func (a *InstantaneousAction) Clone() Action {
	return a.CloneInstantaneous()
}

func (a *InstantaneousAction) CloneInstantaneous() *InstantaneousAction {
	res := &InstantaneousAction{name: a.name}
	res.params = make([]*ir.Parameter, len(a.params))
	copy(res.params, a.params)
	res.pre = make([]*ir.Expr, len(a.pre))
	copy(res.pre, a.pre)
	res.effects = a.effects.Clone()
	return res
}

// Renamed returns a clone carrying a different name.
func (a *InstantaneousAction) Renamed(name string) *InstantaneousAction {
	res := a.CloneInstantaneous()
	res.name = name
	return res
}

func (a *InstantaneousAction) String() string {
	return fmt.Sprintf("action %s(%s)", a.name, paramString(a.params))
}

// DurativeAction holds over a duration, with conditions attached to
// time intervals and effects attached to timings.
type DurativeAction struct {
	name       string
	params     []*ir.Parameter
	duration   Duration
	conditions []TimedCondition
	effects    []TimedEffect
}

func NewDurativeAction(name string, params ...*ir.Parameter) *DurativeAction {
	return &DurativeAction{name: name, params: params}
}

func (a *DurativeAction) isAction() {}

func (a *DurativeAction) Name() string {
	return a.name
}

func (a *DurativeAction) Parameters() []*ir.Parameter {
	res := make([]*ir.Parameter, len(a.params))
	copy(res, a.params)
	return res
}

func (a *DurativeAction) SetDuration(d Duration) {
	a.duration = d
}

func (a *DurativeAction) Duration() Duration {
	return a.duration
}

func (a *DurativeAction) AddCondition(iv Interval, cond *ir.Expr) {
	a.conditions = append(a.conditions, TimedCondition{Interval: iv, Cond: cond})
}

func (a *DurativeAction) Conditions() []TimedCondition {
	res := make([]TimedCondition, len(a.conditions))
	copy(res, a.conditions)
	return res
}

func (a *DurativeAction) ClearConditions() {
	a.conditions = nil
}

// AddTimedEffect inserts an effect at a timing, rejecting effects that
// unconditionally disagree with an existing effect at the same timing.
func (a *DurativeAction) AddTimedEffect(t Timing, e *Effect) error {
	for _, x := range a.effects {
		if x.Timing != t || !sameInstance(x.Effect, e) {
			continue
		}
		if x.Effect.Kind == AssignEffect && e.Kind == AssignEffect && ir.Equal(x.Effect.Value, e.Value) {
			return nil
		}
		if x.Effect.Kind == AssignEffect || e.Kind == AssignEffect {
			return &ConflictError{Fluent: e.Fluent}
		}
	}
	a.effects = append(a.effects, TimedEffect{Timing: t, Effect: e})
	return nil
}

func (a *DurativeAction) Effects() []TimedEffect {
	res := make([]TimedEffect, len(a.effects))
	copy(res, a.effects)
	return res
}

func (a *DurativeAction) ClearEffects() {
	a.effects = nil
}

func (a *DurativeAction) Clone() Action {
	return a.CloneDurative()
}

func (a *DurativeAction) CloneDurative() *DurativeAction {
	res := &DurativeAction{name: a.name, duration: a.duration}
	res.params = make([]*ir.Parameter, len(a.params))
	copy(res.params, a.params)
	res.conditions = make([]TimedCondition, len(a.conditions))
	copy(res.conditions, a.conditions)
	res.effects = make([]TimedEffect, len(a.effects))
	for i, te := range a.effects {
		res.effects[i] = TimedEffect{Timing: te.Timing, Effect: te.Effect.Clone()}
	}
	return res
}

func (a *DurativeAction) Renamed(name string) *DurativeAction {
	res := a.CloneDurative()
	res.name = name
	return res
}

func (a *DurativeAction) String() string {
	return fmt.Sprintf("durative action %s(%s)", a.name, paramString(a.params))
}

func paramString(params []*ir.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name(), p.Type())
	}
	return strings.Join(parts, ", ")
}
