package main

import (
	"fmt"
	"sort"

	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"

	"github.com/scott-cotton/cli"
)

// demos are small built-in problems, one per feature family, so the
// subcommands have something to compile without a parser.
var demos = map[string]func() (*model.Problem, error){
	"switches": switchesDemo,
	"rovers":   roversDemo,
	"charge":   chargeDemo,
}

func demoProblem(name string) (*model.Problem, error) {
	f, ok := demos[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown demo problem %q", cli.ErrUsage, name)
	}
	return f()
}

func demoNames() []string {
	names := make([]string, 0, len(demos))
	for n := range demos {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// switchesDemo exercises negative and disjunctive conditions: flip
// actions guarded by negations, and a disjunctive goal.
func switchesDemo() (*model.Problem, error) {
	p := model.NewProblem("switches", ir.NewEnvironment())
	a := ir.NewFluent("a", ir.BoolType)
	b := ir.NewFluent("b", ir.BoolType)
	if err := p.AddFluent(a, ir.False()); err != nil {
		return nil, err
	}
	if err := p.AddFluent(b, ir.False()); err != nil {
		return nil, err
	}
	flipA := model.NewInstantaneousAction("flip_a")
	flipA.AddPrecondition(ir.Not(ir.FluentExp(a)))
	flipA.AddEffect(model.Assign(ir.FluentExp(a), ir.True()))
	flipB := model.NewInstantaneousAction("flip_b")
	flipB.AddPrecondition(ir.Not(ir.FluentExp(b)))
	flipB.AddEffect(model.Assign(ir.FluentExp(b), ir.True()))
	if err := p.AddAction(flipA); err != nil {
		return nil, err
	}
	if err := p.AddAction(flipB); err != nil {
		return nil, err
	}
	p.AddGoal(ir.Or(ir.FluentExp(a), ir.FluentExp(b)))
	return p, nil
}

// roversDemo exercises grounding: lifted move actions over a typed
// object domain with a static adjacency fluent.
func roversDemo() (*model.Problem, error) {
	env := ir.NewEnvironment()
	loc, err := env.NewUserType("location", nil)
	if err != nil {
		return nil, err
	}
	p := model.NewProblem("rovers", env)
	base := ir.NewObject("base", loc)
	hill := ir.NewObject("hill", loc)
	crater := ir.NewObject("crater", loc)
	for _, o := range []*ir.Object{base, hill, crater} {
		if err := p.AddObject(o); err != nil {
			return nil, err
		}
	}
	at := ir.NewFluent("at", ir.BoolType, ir.NewParameter("l", loc.AsType()))
	road := ir.NewFluent("road", ir.BoolType,
		ir.NewParameter("from", loc.AsType()), ir.NewParameter("to", loc.AsType()))
	if err := p.AddFluent(at, ir.False()); err != nil {
		return nil, err
	}
	if err := p.AddFluent(road, ir.False()); err != nil {
		return nil, err
	}
	from := ir.NewParameter("from", loc.AsType())
	to := ir.NewParameter("to", loc.AsType())
	move := model.NewInstantaneousAction("move", from, to)
	move.AddPrecondition(ir.FluentExp(at, ir.ParamExp(from)))
	move.AddPrecondition(ir.FluentExp(road, ir.ParamExp(from), ir.ParamExp(to)))
	move.AddEffect(model.Assign(ir.FluentExp(at, ir.ParamExp(from)), ir.False()))
	move.AddEffect(model.Assign(ir.FluentExp(at, ir.ParamExp(to)), ir.True()))
	if err := p.AddAction(move); err != nil {
		return nil, err
	}
	p.SetInitialValue(ir.FluentExp(at, ir.ObjectExp(base)), ir.True())
	p.SetInitialValue(ir.FluentExp(road, ir.ObjectExp(base), ir.ObjectExp(hill)), ir.True())
	p.SetInitialValue(ir.FluentExp(road, ir.ObjectExp(hill), ir.ObjectExp(crater)), ir.True())
	p.AddGoal(ir.FluentExp(at, ir.ObjectExp(crater)))
	return p, nil
}

// chargeDemo exercises the timed-to-sequential compiler: one durative
// charge action with endpoint conditions and effects.
func chargeDemo() (*model.Problem, error) {
	p := model.NewProblem("charge", ir.NewEnvironment())
	plugged := ir.NewFluent("plugged", ir.BoolType)
	charged := ir.NewFluent("charged", ir.BoolType)
	if err := p.AddFluent(plugged, ir.False()); err != nil {
		return nil, err
	}
	if err := p.AddFluent(charged, ir.False()); err != nil {
		return nil, err
	}
	plug := model.NewInstantaneousAction("plug")
	plug.AddEffect(model.Assign(ir.FluentExp(plugged), ir.True()))
	if err := p.AddAction(plug); err != nil {
		return nil, err
	}
	charge := model.NewDurativeAction("charge")
	charge.SetDuration(model.FixedDuration(ir.Int(10)))
	charge.AddCondition(model.OverAll(), ir.FluentExp(plugged))
	if err := charge.AddTimedEffect(model.EndTiming(), model.Assign(ir.FluentExp(charged), ir.True())); err != nil {
		return nil, err
	}
	if err := p.AddAction(charge); err != nil {
		return nil, err
	}
	p.AddGoal(ir.FluentExp(charged))
	return p, nil
}
