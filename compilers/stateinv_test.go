package compilers

import (
	"testing"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

func TestStateInvariantsRemover(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "safety")
	safe := ir.NewFluent("safe", ir.BoolType)
	q := ir.NewFluent("q", ir.BoolType)
	for _, f := range []*ir.Fluent{safe, q} {
		mustAddFluent(t, p, f, ir.True())
	}
	inst := model.NewInstantaneousAction("act")
	mustEffect(t, inst, model.Assign(ir.FluentExp(q), ir.True()))
	mustAdd(t, p, inst)
	dur := model.NewDurativeAction("wait")
	dur.SetDuration(model.FixedDuration(ir.Int(3)))
	if err := dur.AddTimedEffect(model.EndTiming(), model.Assign(ir.FluentExp(q), ir.False())); err != nil {
		t.Fatal(err)
	}
	mustAdd(t, p, dur)
	p.AddConstraint(ir.FluentExp(safe))
	p.AddGoal(ir.FluentExp(q))

	res, err := NewStateInvariantsRemover().Compile(p, compiler.TrajectoryConstraintsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	out := res.Problem

	if got := out.Constraints(); len(got) != 0 {
		t.Errorf("Constraints() = %v, want none", got)
	}
	if got := preStrings(out.ActionByName("act")); len(got) != 1 || got[0] != "safe" {
		t.Errorf("act preconditions = %v, want [safe]", got)
	}
	wconds := out.ActionByName("wait").(*model.DurativeAction).Conditions()
	if len(wconds) != 1 || wconds[0].Cond.String() != "safe" || wconds[0].Interval != model.OverAll() {
		t.Errorf("wait conditions = %v, want over-all safe", wconds)
	}
	goals := out.Goals()
	if len(goals) != 2 || goals[1].String() != "safe" {
		t.Errorf("goals = %v, want [q, safe]", goals)
	}
	if got := out.Kind(); got.Has(model.TrajectoryConstraints) {
		t.Errorf("Kind() = %v, still has constraints", got)
	}
}

func TestStateInvariantsTrivialConstraint(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "trivial")
	q := ir.NewFluent("q", ir.BoolType)
	mustAddFluent(t, p, q, ir.False())
	a := model.NewInstantaneousAction("act")
	mustEffect(t, a, model.Assign(ir.FluentExp(q), ir.True()))
	mustAdd(t, p, a)
	p.AddConstraint(ir.True())

	res, err := NewStateInvariantsRemover().Compile(p, compiler.TrajectoryConstraintsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	if got := preStrings(res.Problem.ActionByName("act")); len(got) != 0 {
		t.Errorf("act preconditions = %v, want none for a trivial invariant", got)
	}
	if got := res.Problem.Goals(); len(got) != 0 {
		t.Errorf("goals = %v, want none", got)
	}
}
