package model

import (
	"fmt"

	"github.com/plankit/plankit/ir"
)

type EffectKind int

const (
	AssignEffect EffectKind = iota
	IncreaseEffect
	DecreaseEffect
)

func (k EffectKind) String() string {
	switch k {
	case AssignEffect:
		return ":="
	case IncreaseEffect:
		return "+="
	case DecreaseEffect:
		return "-="
	}
	return "<unknown effect kind>"
}

// Effect assigns (or increases/decreases) a fluent instance to a value
// when its condition holds. Forall variables, when present, range the
// effect over every combination of their domains.
type Effect struct {
	Fluent    *ir.Expr // fluent application
	Value     *ir.Expr
	Condition *ir.Expr
	Kind      EffectKind
	Forall    []*ir.Variable
}

// NewEffect builds an effect; a nil condition means unconditional.
func NewEffect(fluent, value, condition *ir.Expr, kind EffectKind) *Effect {
	if condition == nil {
		condition = ir.True()
	}
	return &Effect{Fluent: fluent, Value: value, Condition: condition, Kind: kind}
}

// Assign builds an unconditional assignment effect.
func Assign(fluent, value *ir.Expr) *Effect {
	return NewEffect(fluent, value, nil, AssignEffect)
}

func (e *Effect) IsConditional() bool {
	return !e.Condition.IsTrue()
}

func (e *Effect) Clone() *Effect {
	res := *e
	res.Forall = make([]*ir.Variable, len(e.Forall))
	copy(res.Forall, e.Forall)
	return &res
}

func (e *Effect) String() string {
	s := fmt.Sprintf("%s %s %s", e.Fluent, e.Kind, e.Value)
	if e.IsConditional() {
		s = fmt.Sprintf("if %s then %s", e.Condition, s)
	}
	if len(e.Forall) > 0 {
		s = fmt.Sprintf("forall %v %s", e.Forall, s)
	}
	return s
}

// EffectList is an ordered effect collection with conflict checking at
// insertion time.
type EffectList struct {
	effects []*Effect
}

// Add appends an effect, rejecting unconditional assignments that
// conflict with an existing unconditional effect on the same fluent
// instance. A duplicate of an existing assignment is silently dropped.
func (l *EffectList) Add(e *Effect) error {
	for _, x := range l.effects {
		if !sameInstance(x, e) {
			continue
		}
		if x.Kind == AssignEffect && e.Kind == AssignEffect && ir.Equal(x.Value, e.Value) {
			return nil // exact duplicate
		}
		if x.Kind == AssignEffect || e.Kind == AssignEffect {
			return &ConflictError{Fluent: e.Fluent}
		}
	}
	l.effects = append(l.effects, e)
	return nil
}

// sameInstance reports whether two effects target the same fluent
// instance unconditionally.
func sameInstance(a, b *Effect) bool {
	return !a.IsConditional() && !b.IsConditional() &&
		len(a.Forall) == 0 && len(b.Forall) == 0 &&
		ir.Equal(a.Fluent, b.Fluent)
}

func (l *EffectList) Effects() []*Effect {
	res := make([]*Effect, len(l.effects))
	copy(res, l.effects)
	return res
}

func (l *EffectList) Len() int {
	return len(l.effects)
}

func (l *EffectList) Clone() EffectList {
	res := EffectList{effects: make([]*Effect, len(l.effects))}
	for i, e := range l.effects {
		res.effects[i] = e.Clone()
	}
	return res
}
