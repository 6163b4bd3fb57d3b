package compilers

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

func TestDisjunctiveConditionsRemoverSplitsActions(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "split")
	p1 := ir.NewFluent("p1", ir.BoolType)
	p2 := ir.NewFluent("p2", ir.BoolType)
	q := ir.NewFluent("q", ir.BoolType)
	for _, f := range []*ir.Fluent{p1, p2, q} {
		mustAddFluent(t, p, f, ir.False())
	}
	a := model.NewInstantaneousAction("act")
	a.AddPrecondition(ir.Or(ir.FluentExp(p1), ir.FluentExp(p2)))
	mustEffect(t, a, model.Assign(ir.FluentExp(q), ir.True()))
	mustAdd(t, p, a)
	p.AddGoal(ir.FluentExp(q))

	res, err := NewDisjunctiveConditionsRemover().Compile(p, compiler.DisjunctiveConditionsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	out := res.Problem

	want := []string{"act", "act_1"}
	if diff := cmp.Diff(want, actionNames(out)); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}
	if got := preStrings(out.ActionByName("act")); len(got) != 1 || got[0] != "p1" {
		t.Errorf("act preconditions = %v, want [p1]", got)
	}
	if got := preStrings(out.ActionByName("act_1")); len(got) != 1 || got[0] != "p2" {
		t.Errorf("act_1 preconditions = %v, want [p2]", got)
	}

	// Both split actions map back to the one original.
	for _, name := range want {
		orig, err := res.MapBack(model.NewActionInstance(out.ActionByName(name)))
		if err != nil {
			t.Fatal(err)
		}
		if orig.Action != a {
			t.Errorf("MapBack(%s) = %v, want act", name, orig.Action)
		}
	}
	if got := out.Kind(); got.Has(model.DisjunctiveConditions) {
		t.Errorf("Kind() = %v, still disjunctive", got)
	}
}

func TestDisjunctiveGoalFakeGoal(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "either")
	g1 := ir.NewFluent("g1", ir.BoolType)
	g2 := ir.NewFluent("g2", ir.BoolType)
	for _, f := range []*ir.Fluent{g1, g2} {
		mustAddFluent(t, p, f, ir.False())
	}
	win := model.NewInstantaneousAction("win")
	mustEffect(t, win, model.Assign(ir.FluentExp(g1), ir.True()))
	mustAdd(t, p, win)
	p.AddGoal(ir.Or(ir.FluentExp(g1), ir.FluentExp(g2)))

	res, err := NewDisjunctiveConditionsRemover().Compile(p, compiler.DisjunctiveConditionsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	out := res.Problem

	fake := out.FluentByName("dcrm_fake_goal")
	if fake == nil {
		t.Fatal("fake goal fluent missing")
	}
	if dflt := out.Default(fake); dflt == nil || !dflt.IsFalse() {
		t.Errorf("fake goal default = %v, want false", dflt)
	}
	goals := out.Goals()
	if len(goals) != 1 || goals[0].String() != "dcrm_fake_goal" {
		t.Errorf("goals = %v, want [dcrm_fake_goal]", goals)
	}

	// One synthetic achiever per disjunct, mapping back to nothing.
	want := []string{"dcrm_goal_action", "dcrm_goal_action_1", "win"}
	if diff := cmp.Diff(want, actionNames(out)); diff != "" {
		t.Errorf("actions mismatch (-want +got):\n%s", diff)
	}
	syn := out.ActionByName("dcrm_goal_action")
	if got := preStrings(syn); len(got) != 1 || got[0] != "g1" {
		t.Errorf("synthetic preconditions = %v, want [g1]", got)
	}
	orig, err := res.MapBack(model.NewActionInstance(syn))
	if err != nil {
		t.Fatal(err)
	}
	if orig != nil {
		t.Errorf("MapBack(synthetic) = %v, want nil", orig)
	}

	// Every meaningful action resets the fake goal.
	got := effectStrings(out.ActionByName("win"))
	wantEff := []string{"g1 := true", "dcrm_fake_goal := false"}
	if diff := cmp.Diff(wantEff, got); diff != "" {
		t.Errorf("win effects mismatch (-want +got):\n%s", diff)
	}
	// Synthetic achievers do not reset each other.
	if got := effectStrings(syn); len(got) != 1 || got[0] != "dcrm_fake_goal := true" {
		t.Errorf("synthetic effects = %v, want [dcrm_fake_goal := true]", got)
	}
}

func TestDisjunctiveConjunctiveGoalUnpacked(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "plain")
	g1 := ir.NewFluent("g1", ir.BoolType)
	g2 := ir.NewFluent("g2", ir.BoolType)
	for _, f := range []*ir.Fluent{g1, g2} {
		mustAddFluent(t, p, f, ir.False())
	}
	p.AddGoal(ir.And(ir.FluentExp(g1), ir.FluentExp(g2)))

	res, err := NewDisjunctiveConditionsRemover().Compile(p, compiler.DisjunctiveConditionsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	goals := res.Problem.Goals()
	if len(goals) != 2 {
		t.Errorf("goals = %v, want the two conjuncts", goals)
	}
	if res.Problem.FluentByName("dcrm_fake_goal") != nil {
		t.Error("conjunctive goal grew a fake goal fluent")
	}
}

func TestDisjunctiveUnsatisfiableGoalInfeasible(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "contra")
	x := ir.NewFluent("x", ir.BoolType)
	mustAddFluent(t, p, x, ir.False())
	p.AddGoal(ir.And(ir.FluentExp(x), ir.Not(ir.FluentExp(x))))

	res, err := NewDisjunctiveConditionsRemover().Compile(p, compiler.DisjunctiveConditionsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	if res.Problem != nil {
		t.Errorf("Problem = %v, want nil for an unsatisfiable goal", res.Problem.Name())
	}
}

func TestDisjunctiveUnsatisfiableTimedGoalInfeasible(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "contra_timed")
	x := ir.NewFluent("x", ir.BoolType)
	mustAddFluent(t, p, x, ir.False())
	p.AddTimedGoal(model.At(model.GlobalEndTiming()),
		ir.And(ir.FluentExp(x), ir.Not(ir.FluentExp(x))))

	res, err := NewDisjunctiveConditionsRemover().Compile(p, compiler.DisjunctiveConditionsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	if res.Problem != nil {
		t.Errorf("Problem = %v, want nil for an unsatisfiable timed goal", res.Problem.Name())
	}
}

func TestDisjunctiveSplitKeepsActionCosts(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "costs")
	p1 := ir.NewFluent("p1", ir.BoolType)
	p2 := ir.NewFluent("p2", ir.BoolType)
	q := ir.NewFluent("q", ir.BoolType)
	for _, f := range []*ir.Fluent{p1, p2, q} {
		mustAddFluent(t, p, f, ir.False())
	}
	a := model.NewInstantaneousAction("act")
	a.AddPrecondition(ir.Or(ir.FluentExp(p1), ir.FluentExp(p2)))
	mustEffect(t, a, model.Assign(ir.FluentExp(q), ir.True()))
	mustAdd(t, p, a)
	p.AddGoal(ir.FluentExp(q))
	m := model.NewActionCostsMetric()
	m.DefaultCost = ir.Int(99)
	m.SetCost(a, ir.Int(1))
	p.AddMetric(m)

	res, err := NewDisjunctiveConditionsRemover().Compile(p, compiler.DisjunctiveConditionsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	out := res.Problem
	nm := out.Metrics()[0]
	for _, name := range []string{"act", "act_1"} {
		na := out.ActionByName(name)
		if got := nm.Cost(na); got == nil || got.String() != "1" {
			t.Errorf("Cost(%s) = %v, want 1", name, got)
		}
	}
	for _, ac := range nm.Costs() {
		if ac.Action == a {
			t.Error("output metric references an action of the input problem")
		}
	}
}

func TestDisjunctiveTimedGoalRejected(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "timed")
	g1 := ir.NewFluent("g1", ir.BoolType)
	g2 := ir.NewFluent("g2", ir.BoolType)
	for _, f := range []*ir.Fluent{g1, g2} {
		mustAddFluent(t, p, f, ir.False())
	}
	p.AddTimedGoal(model.At(model.GlobalEndTiming()), ir.Or(ir.FluentExp(g1), ir.FluentExp(g2)))

	_, err := NewDisjunctiveConditionsRemover().Compile(p, compiler.DisjunctiveConditionsRemoving)
	if !errors.Is(err, compiler.ErrUnsupportedProblem) {
		t.Errorf("Compile() = %v, want ErrUnsupportedProblem", err)
	}
}

func TestDisjunctiveEffectConditionExpanded(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "effects")
	c1 := ir.NewFluent("c1", ir.BoolType)
	c2 := ir.NewFluent("c2", ir.BoolType)
	q := ir.NewFluent("q", ir.BoolType)
	for _, f := range []*ir.Fluent{c1, c2, q} {
		mustAddFluent(t, p, f, ir.False())
	}
	a := model.NewInstantaneousAction("act")
	mustEffect(t, a, model.NewEffect(ir.FluentExp(q), ir.True(),
		ir.Or(ir.FluentExp(c1), ir.FluentExp(c2)), model.AssignEffect))
	mustAdd(t, p, a)

	res, err := NewDisjunctiveConditionsRemover().Compile(p, compiler.DisjunctiveConditionsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	got := effectStrings(res.Problem.ActionByName("act"))
	want := []string{"if c1 then q := true", "if c2 then q := true"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("effects mismatch (-want +got):\n%s", diff)
	}
}
