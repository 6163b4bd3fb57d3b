package model

import (
	"errors"
	"testing"

	"github.com/plankit/plankit/ir"
)

func TestProblemFluents(t *testing.T) {
	p := NewProblem("test", ir.NewEnvironment())
	f := ir.NewFluent("p", ir.BoolType)
	if err := p.AddFluent(f, ir.False()); err != nil {
		t.Fatal(err)
	}
	if err := p.AddFluent(ir.NewFluent("p", ir.BoolType), nil); !errors.Is(err, ErrUsage) {
		t.Errorf("AddFluent(duplicate) = %v, want ErrUsage", err)
	}
	if got := p.FluentByName("p"); got != f {
		t.Errorf("FluentByName(p) = %v, want %v", got, f)
	}
	if got := p.Default(f); !got.IsFalse() {
		t.Errorf("Default(p) = %v, want false", got)
	}

	p.RemoveFluent(f)
	if got := p.FluentByName("p"); got != nil {
		t.Errorf("FluentByName after RemoveFluent = %v, want nil", got)
	}
	if got := p.Default(f); got != nil {
		t.Errorf("Default after RemoveFluent = %v, want nil", got)
	}
	if got := len(p.Fluents()); got != 0 {
		t.Errorf("Fluents() = %d entries, want 0", got)
	}
}

func TestProblemInitialValues(t *testing.T) {
	p := NewProblem("test", ir.NewEnvironment())
	f := ir.NewFluent("p", ir.BoolType)
	if err := p.AddFluent(f, ir.False()); err != nil {
		t.Fatal(err)
	}
	app := ir.FluentExp(f)

	// Default applies while no explicit value is set.
	v, ok := p.InitialValue(app)
	if !ok || !v.IsFalse() {
		t.Errorf("InitialValue() = %v, %v, want false, true", v, ok)
	}

	p.SetInitialValue(app, ir.True())
	v, ok = p.InitialValue(app)
	if !ok || !v.IsTrue() {
		t.Errorf("InitialValue() = %v, %v, want true, true", v, ok)
	}

	// A second set for the same instance replaces, not appends.
	p.SetInitialValue(app, ir.False())
	if got := len(p.ExplicitInitialValues()); got != 1 {
		t.Errorf("ExplicitInitialValues() = %d entries, want 1", got)
	}

	p.RemoveInitialValue(app)
	v, ok = p.InitialValue(app)
	if !ok || !v.IsFalse() {
		t.Errorf("InitialValue() after remove = %v, %v, want default false", v, ok)
	}
}

func TestRemoveInitialValueReindexes(t *testing.T) {
	p := NewProblem("test", ir.NewEnvironment())
	a := ir.FluentExp(ir.NewFluent("a", ir.BoolType))
	b := ir.FluentExp(ir.NewFluent("b", ir.BoolType))
	c := ir.FluentExp(ir.NewFluent("c", ir.BoolType))
	p.SetInitialValue(a, ir.True())
	p.SetInitialValue(b, ir.True())
	p.SetInitialValue(c, ir.True())

	p.RemoveInitialValue(a)
	p.SetInitialValue(c, ir.False())
	if v, _ := p.InitialValue(c); !v.IsFalse() {
		t.Errorf("InitialValue(c) = %v, want false", v)
	}
	if v, _ := p.InitialValue(b); !v.IsTrue() {
		t.Errorf("InitialValue(b) = %v, want true", v)
	}
}

func TestObjectsOfType(t *testing.T) {
	env := ir.NewEnvironment()
	vehicle, err := env.NewUserType("vehicle", nil)
	if err != nil {
		t.Fatal(err)
	}
	truck, err := env.NewUserType("truck", vehicle)
	if err != nil {
		t.Fatal(err)
	}
	p := NewProblem("test", env)
	v1 := ir.NewObject("v1", vehicle)
	t1 := ir.NewObject("t1", truck)
	for _, o := range []*ir.Object{v1, t1} {
		if err := p.AddObject(o); err != nil {
			t.Fatal(err)
		}
	}

	if got := p.ObjectsOfType(vehicle); len(got) != 2 {
		t.Errorf("ObjectsOfType(vehicle) = %v, want both objects", got)
	}
	got := p.ObjectsOfType(truck)
	if len(got) != 1 || got[0] != t1 {
		t.Errorf("ObjectsOfType(truck) = %v, want [t1]", got)
	}
}

func TestStaticFluents(t *testing.T) {
	p := NewProblem("test", ir.NewEnvironment())
	road := ir.NewFluent("road", ir.BoolType)
	at := ir.NewFluent("at", ir.BoolType)
	for _, f := range []*ir.Fluent{road, at} {
		if err := p.AddFluent(f, ir.False()); err != nil {
			t.Fatal(err)
		}
	}
	a := NewInstantaneousAction("move")
	a.AddPrecondition(ir.FluentExp(road))
	if err := a.AddEffect(Assign(ir.FluentExp(at), ir.True())); err != nil {
		t.Fatal(err)
	}
	if err := p.AddAction(a); err != nil {
		t.Fatal(err)
	}

	static := p.StaticFluents()
	if !static[road] {
		t.Error("StaticFluents() missing road")
	}
	if static[at] {
		t.Error("StaticFluents() includes assigned fluent at")
	}
}

func TestProblemClone(t *testing.T) {
	p := NewProblem("test", ir.NewEnvironment())
	f := ir.NewFluent("p", ir.BoolType)
	if err := p.AddFluent(f, ir.False()); err != nil {
		t.Fatal(err)
	}
	a := NewInstantaneousAction("set")
	if err := a.AddEffect(Assign(ir.FluentExp(f), ir.True())); err != nil {
		t.Fatal(err)
	}
	if err := p.AddAction(a); err != nil {
		t.Fatal(err)
	}
	p.AddGoal(ir.FluentExp(f))

	c := p.Clone()
	c.ClearActions()
	c.ClearGoals()
	c.SetInitialValue(ir.FluentExp(f), ir.True())

	if len(p.Actions()) != 1 || len(p.Goals()) != 1 {
		t.Error("Clone() mutation leaked into original actions or goals")
	}
	if len(p.ExplicitInitialValues()) != 0 {
		t.Error("Clone() mutation leaked into original initial values")
	}
	// Cloned actions are distinct values.
	if c2 := p.Clone(); c2.ActionByName("set") == p.ActionByName("set") {
		t.Error("Clone() shares action values with original")
	}
}

func TestProblemCloneRekeysActionCosts(t *testing.T) {
	p := NewProblem("test", ir.NewEnvironment())
	a := NewInstantaneousAction("move")
	if err := p.AddAction(a); err != nil {
		t.Fatal(err)
	}
	m := NewActionCostsMetric()
	m.DefaultCost = ir.Int(10)
	m.SetCost(a, ir.Int(1))
	p.AddMetric(m)

	c := p.Clone()
	cm := c.Metrics()[0]
	ca := c.ActionByName("move")
	if got := cm.Cost(ca); got == nil || got.String() != "1" {
		t.Errorf("Cost(cloned action) = %v, want 1", got)
	}
	// The cloned metric must not key costs by the original's actions.
	for _, ac := range cm.Costs() {
		if ac.Action == a {
			t.Error("Clone() metric references an action of the original")
		}
	}
}

func TestHasName(t *testing.T) {
	env := ir.NewEnvironment()
	if _, err := env.NewUserType("location", nil); err != nil {
		t.Fatal(err)
	}
	p := NewProblem("test", env)
	if err := p.AddFluent(ir.NewFluent("at", ir.BoolType), nil); err != nil {
		t.Fatal(err)
	}
	if err := p.AddAction(NewInstantaneousAction("move")); err != nil {
		t.Fatal(err)
	}
	if err := p.AddObject(ir.NewObject("base", env.UserTypeByName("location"))); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"at", "move", "base", "location"} {
		if !p.HasName(name) {
			t.Errorf("HasName(%q) = false, want true", name)
		}
	}
	if p.HasName("free") {
		t.Error("HasName(free) = true, want false")
	}
}
