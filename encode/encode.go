package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

type EncState struct {
	indent int
	kind   bool
	color  func(ColorAttr, string) string

	err error
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if es.color == nil {
		es.color = func(_ ColorAttr, s string) string { return s }
	}
	return es
}

func (es *EncState) write(w io.Writer, s string) {
	if es.err != nil {
		return
	}
	_, es.err = io.WriteString(w, s)
}

func (es *EncState) line(w io.Writer, depth int, parts ...string) {
	es.write(w, strings.Repeat(" ", es.indent*depth)+strings.Join(parts, "")+"\n")
}

func (es *EncState) keyword(s string) string { return es.color(KeywordColor, s) }
func (es *EncState) name(s string) string    { return es.color(NameColor, s) }
func (es *EncState) typ(s string) string     { return es.color(TypeColor, s) }
func (es *EncState) expr(e *ir.Expr) string  { return es.color(ExprColor, e.String()) }
func (es *EncState) value(s string) string   { return es.color(ValueColor, s) }
func (es *EncState) sep(s string) string     { return es.color(SepColor, s) }

// Problem renders every section of the problem in registration order.
func Problem(w io.Writer, p *model.Problem, opts ...EncodeOption) error {
	es := newState(opts)
	es.line(w, 0, es.keyword("problem "), es.name(p.Name()))
	if es.kind {
		es.line(w, 0, es.keyword("kind "), es.value(p.Kind().String()))
	}
	if env := p.Environment(); env != nil && len(env.UserTypes()) > 0 {
		es.line(w, 0, es.keyword("types"))
		for _, u := range env.UserTypes() {
			if u.Parent() != nil {
				es.line(w, 1, es.typ(u.Name()), es.sep(" < "), es.typ(u.Parent().Name()))
			} else {
				es.line(w, 1, es.typ(u.Name()))
			}
		}
	}
	if objs := p.Objects(); len(objs) > 0 {
		es.line(w, 0, es.keyword("objects"))
		for _, o := range objs {
			es.line(w, 1, es.name(o.Name()), es.sep(": "), es.typ(o.UserType().Name()))
		}
	}
	if fls := p.Fluents(); len(fls) > 0 {
		es.line(w, 0, es.keyword("fluents"))
		for _, f := range fls {
			parts := []string{es.name(f.Name()), signature(es, f.Parameters()), es.sep(": "), es.typ(f.Type().String())}
			if d := p.Default(f); d != nil {
				parts = append(parts, es.sep(" := "), es.expr(d))
			}
			es.line(w, 1, parts...)
		}
	}
	for _, a := range p.Actions() {
		encodeAction(w, a, es)
	}
	if init := p.ExplicitInitialValues(); len(init) > 0 {
		es.line(w, 0, es.keyword("init"))
		for _, asg := range init {
			es.line(w, 1, es.expr(asg.Fluent), es.sep(" := "), es.expr(asg.Value))
		}
	}
	if goals := p.Goals(); len(goals) > 0 {
		es.line(w, 0, es.keyword("goals"))
		for _, g := range goals {
			es.line(w, 1, es.expr(g))
		}
	}
	for _, tg := range p.TimedGoals() {
		es.line(w, 0, es.keyword("timed goal "), es.value(tg.Interval.String()), es.sep(" "), es.expr(tg.Goal))
	}
	for _, te := range p.TimedEffects() {
		es.line(w, 0, es.keyword("timed effect "), es.value(te.Timing.String()), es.sep(" "), effectString(es, te.Effect))
	}
	if cs := p.Constraints(); len(cs) > 0 {
		es.line(w, 0, es.keyword("constraints"))
		for _, c := range cs {
			es.line(w, 1, es.expr(c))
		}
	}
	for _, m := range p.Metrics() {
		encodeMetric(w, m, es)
	}
	return es.err
}

// Action renders one action.
func Action(w io.Writer, a model.Action, opts ...EncodeOption) error {
	es := newState(opts)
	encodeAction(w, a, es)
	return es.err
}

func encodeAction(w io.Writer, a model.Action, es *EncState) {
	switch act := a.(type) {
	case *model.InstantaneousAction:
		es.line(w, 0, es.keyword("action "), es.name(act.Name()), signature(es, act.Parameters()))
		for _, pre := range act.Preconditions() {
			es.line(w, 1, es.keyword("pre "), es.expr(pre))
		}
		for _, e := range act.Effects() {
			es.line(w, 1, es.keyword("eff "), effectString(es, e))
		}
	case *model.DurativeAction:
		es.line(w, 0, es.keyword("durative action "), es.name(act.Name()), signature(es, act.Parameters()))
		if d := act.Duration(); d.Lower != nil || d.Upper != nil {
			es.line(w, 1, es.keyword("duration "), es.value(d.String()))
		}
		for _, tc := range act.Conditions() {
			es.line(w, 1, es.keyword("cond "), es.value(tc.Interval.String()), es.sep(" "), es.expr(tc.Cond))
		}
		for _, te := range act.Effects() {
			es.line(w, 1, es.keyword("eff "), es.value(te.Timing.String()), es.sep(" "), effectString(es, te.Effect))
		}
	}
}

// Plan renders a plan, one instance per line.
func Plan(w io.Writer, plan model.Plan, opts ...EncodeOption) error {
	es := newState(opts)
	for i, ai := range plan {
		es.line(w, 0, es.value(fmt.Sprintf("%d", i)), es.sep(": "), es.name(ai.String()))
	}
	return es.err
}

func signature(es *EncState, params []*ir.Parameter) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = es.name(p.Name()) + es.sep(": ") + es.typ(p.Type().String())
	}
	return es.sep("(") + strings.Join(parts, es.sep(", ")) + es.sep(")")
}

func effectString(es *EncState, e *model.Effect) string {
	op := " := "
	switch e.Kind {
	case model.IncreaseEffect:
		op = " += "
	case model.DecreaseEffect:
		op = " -= "
	}
	s := es.expr(e.Fluent) + es.sep(op) + es.expr(e.Value)
	if e.IsConditional() {
		s = es.keyword("when ") + es.expr(e.Condition) + es.sep(" then ") + s
	}
	if len(e.Forall) > 0 {
		names := make([]string, len(e.Forall))
		for i, v := range e.Forall {
			names[i] = v.Name()
		}
		s = es.keyword("forall ") + es.name(strings.Join(names, ", ")) + es.sep(" ") + s
	}
	return s
}

func encodeMetric(w io.Writer, m *model.Metric, es *EncState) {
	switch m.Kind {
	case model.MinimizeActionCosts:
		es.line(w, 0, es.keyword("minimize action costs"))
		for _, ac := range m.Costs() {
			es.line(w, 1, es.name(ac.Action.Name()), es.sep(": "), es.expr(ac.Cost))
		}
		if m.DefaultCost != nil {
			es.line(w, 1, es.keyword("default "), es.expr(m.DefaultCost))
		}
	case model.MinimizeMakespan:
		es.line(w, 0, es.keyword("minimize makespan"))
	case model.MaximizeOversubscription:
		es.line(w, 0, es.keyword("maximize oversubscription"))
		for _, wg := range m.Goals {
			es.line(w, 1, es.expr(wg.Goal), es.sep(" worth "), es.expr(wg.Weight))
		}
	}
}
