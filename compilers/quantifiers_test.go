package compilers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

func TestQuantifiersRemoverExpandsConditions(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "quant")
	at := ir.NewFluent("at", ir.BoolType, ir.NewParameter("l", d.loc.AsType()))
	mustAddFluent(t, p, at, ir.False())
	v := ir.NewVariable("l", d.loc.AsType())

	p.AddGoal(ir.Exists(ir.FluentExp(at, ir.VarExp(v)), v))
	p.AddConstraint(ir.Forall(ir.FluentExp(at, ir.VarExp(v)), v))

	res, err := NewQuantifiersRemover().Compile(p, compiler.QuantifiersRemoving)
	if err != nil {
		t.Fatal(err)
	}
	out := res.Problem

	goals := out.Goals()
	if len(goals) != 1 || goals[0].String() != "or(at(base), at(hill))" {
		t.Errorf("goal = %v, want or(at(base), at(hill))", goals)
	}
	constraints := out.Constraints()
	if len(constraints) != 1 || constraints[0].String() != "and(at(base), at(hill))" {
		t.Errorf("constraint = %v, want and(at(base), at(hill))", constraints)
	}

	rem := NewQuantifiersRemover()
	if predicted := rem.ResultingKind(p.Kind(), compiler.QuantifiersRemoving); predicted != out.Kind() {
		t.Errorf("ResultingKind() = %v, output kind = %v", predicted, out.Kind())
	}
}

func TestQuantifiersRemoverUnrollsForallEffects(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "sweep")
	clean := ir.NewFluent("clean", ir.BoolType, ir.NewParameter("l", d.loc.AsType()))
	mustAddFluent(t, p, clean, ir.False())
	v := ir.NewVariable("l", d.loc.AsType())

	a := model.NewInstantaneousAction("sweep")
	e := model.Assign(ir.FluentExp(clean, ir.VarExp(v)), ir.True())
	e.Forall = []*ir.Variable{v}
	mustEffect(t, a, e)
	mustAdd(t, p, a)

	res, err := NewQuantifiersRemover().Compile(p, compiler.QuantifiersRemoving)
	if err != nil {
		t.Fatal(err)
	}
	got := effectStrings(res.Problem.ActionByName("sweep"))
	want := []string{"clean(base) := true", "clean(hill) := true"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("effects mismatch (-want +got):\n%s", diff)
	}
	if got := res.Problem.Kind(); got.Has(model.ForallEffects) {
		t.Errorf("Kind() = %v, still has forall effects", got)
	}
}

func TestQuantifiersRemoverExpandsEffectValues(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "values")
	occupied := ir.NewFluent("occupied", ir.BoolType, ir.NewParameter("l", d.loc.AsType()))
	busy := ir.NewFluent("busy", ir.BoolType)
	mustAddFluent(t, p, occupied, ir.False())
	mustAddFluent(t, p, busy, ir.False())
	v := ir.NewVariable("l", d.loc.AsType())

	a := model.NewInstantaneousAction("check")
	mustEffect(t, a, model.Assign(ir.FluentExp(busy),
		ir.Exists(ir.FluentExp(occupied, ir.VarExp(v)), v)))
	mustAdd(t, p, a)
	p.AddTimedEffect(model.GlobalStartTiming(), model.Assign(ir.FluentExp(busy),
		ir.Forall(ir.FluentExp(occupied, ir.VarExp(v)), v)))

	res, err := NewQuantifiersRemover().Compile(p, compiler.QuantifiersRemoving)
	if err != nil {
		t.Fatal(err)
	}
	out := res.Problem

	got := effectStrings(out.ActionByName("check"))
	want := []string{"busy := or(occupied(base), occupied(hill))"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("effects mismatch (-want +got):\n%s", diff)
	}
	timed := out.TimedEffects()
	if len(timed) != 1 {
		t.Fatalf("TimedEffects() = %d entries, want 1", len(timed))
	}
	if want := "and(occupied(base), occupied(hill))"; timed[0].Effect.Value.String() != want {
		t.Errorf("timed value = %v, want %s", timed[0].Effect.Value, want)
	}
	if got := out.Kind(); got.Has(model.ExistentialConditions) || got.Has(model.UniversalConditions) {
		t.Errorf("Kind() = %v, quantifier survived in an effect value", got)
	}
}

func TestQuantifiersNestedExpansion(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "nested")
	road := ir.NewFluent("road", ir.BoolType,
		ir.NewParameter("a", d.loc.AsType()), ir.NewParameter("b", d.loc.AsType()))
	mustAddFluent(t, p, road, ir.False())
	u := ir.NewVariable("u", d.loc.AsType())
	w := ir.NewVariable("w", d.loc.AsType())

	// every location reaches some location
	p.AddGoal(ir.Forall(ir.Exists(ir.FluentExp(road, ir.VarExp(u), ir.VarExp(w)), w), u))

	res, err := NewQuantifiersRemover().Compile(p, compiler.QuantifiersRemoving)
	if err != nil {
		t.Fatal(err)
	}
	goals := res.Problem.Goals()
	want := "and(or(road(base, base), road(base, hill)), or(road(hill, base), road(hill, hill)))"
	if len(goals) != 1 || goals[0].String() != want {
		t.Errorf("goal = %v, want %s", goals, want)
	}
}
