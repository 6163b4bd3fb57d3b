package compilers

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

func chargeProblem(t *testing.T, d *testDomain) (*model.Problem, *model.DurativeAction) {
	t.Helper()
	p := d.problem(t, "charge")
	plugged := ir.NewFluent("plugged", ir.BoolType)
	charged := ir.NewFluent("charged", ir.BoolType)
	for _, f := range []*ir.Fluent{plugged, charged} {
		mustAddFluent(t, p, f, ir.False())
	}
	charge := model.NewDurativeAction("charge")
	charge.SetDuration(model.FixedDuration(ir.Int(10)))
	charge.AddCondition(model.OverAll(), ir.FluentExp(plugged))
	if err := charge.AddTimedEffect(model.EndTiming(), model.Assign(ir.FluentExp(charged), ir.True())); err != nil {
		t.Fatal(err)
	}
	mustAdd(t, p, charge)
	p.AddGoal(ir.FluentExp(charged))
	return p, charge
}

func TestTimedToSequential(t *testing.T) {
	d := newTestDomain(t)
	p, charge := chargeProblem(t, d)

	res, err := NewTimedToSequential().Compile(p, compiler.TimedToSequential)
	if err != nil {
		t.Fatal(err)
	}
	out := res.Problem

	want := []string{"charge_end", "charge_start"}
	if diff := cmp.Diff(want, actionNames(out)); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
	if out.FluentByName("charge_running") == nil {
		t.Fatal("running token fluent missing")
	}

	start := out.ActionByName("charge_start")
	wantPre := []string{"not(charge_running)", "plugged"}
	if diff := cmp.Diff(wantPre, preStrings(start)); diff != "" {
		t.Errorf("start preconditions mismatch (-want +got):\n%s", diff)
	}
	if got := effectStrings(start); len(got) != 1 || got[0] != "charge_running := true" {
		t.Errorf("start effects = %v, want [charge_running := true]", got)
	}

	end := out.ActionByName("charge_end")
	wantPre = []string{"charge_running", "plugged"}
	if diff := cmp.Diff(wantPre, preStrings(end)); diff != "" {
		t.Errorf("end preconditions mismatch (-want +got):\n%s", diff)
	}
	wantEff := []string{"charged := true", "charge_running := false"}
	if diff := cmp.Diff(wantEff, effectStrings(end)); diff != "" {
		t.Errorf("end effects mismatch (-want +got):\n%s", diff)
	}

	// The start maps back to the durative action, the end is synthetic.
	orig, err := res.MapBack(model.NewActionInstance(start))
	if err != nil {
		t.Fatal(err)
	}
	if orig == nil || orig.Action != charge {
		t.Errorf("MapBack(start) = %v, want charge", orig)
	}
	orig, err = res.MapBack(model.NewActionInstance(end))
	if err != nil {
		t.Fatal(err)
	}
	if orig != nil {
		t.Errorf("MapBack(end) = %v, want nil", orig)
	}

	if got := out.Kind(); got.Has(model.ContinuousTime) {
		t.Errorf("Kind() = %v, still continuous", got)
	}
	rem := NewTimedToSequential()
	if predicted := rem.ResultingKind(p.Kind(), compiler.TimedToSequential); predicted != out.Kind() {
		t.Errorf("ResultingKind() = %v, output kind = %v", predicted, out.Kind())
	}
}

func TestTimedToSequentialCosts(t *testing.T) {
	d := newTestDomain(t)
	p, charge := chargeProblem(t, d)
	m := model.NewActionCostsMetric()
	m.SetCost(charge, ir.Int(7))
	p.AddMetric(m)

	res, err := NewTimedToSequential().Compile(p, compiler.TimedToSequential)
	if err != nil {
		t.Fatal(err)
	}
	out := res.Problem
	metrics := out.Metrics()
	if len(metrics) != 1 {
		t.Fatalf("Metrics() = %d entries, want 1", len(metrics))
	}
	start := out.ActionByName("charge_start")
	if cost := metrics[0].Cost(start); cost == nil || cost.String() != "7" {
		t.Errorf("Cost(charge_start) = %v, want 7", cost)
	}
}

func TestTimedToSequentialRejectsIntermediate(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "mid")
	q := ir.NewFluent("q", ir.BoolType)
	mustAddFluent(t, p, q, ir.False())
	a := model.NewDurativeAction("drift")
	a.SetDuration(model.FixedDuration(ir.Int(4)))
	if err := a.AddTimedEffect(model.Timing{Timepoint: model.StartTimepoint, Delay: 2},
		model.Assign(ir.FluentExp(q), ir.True())); err != nil {
		t.Fatal(err)
	}
	mustAdd(t, p, a)

	_, err := NewTimedToSequential().Compile(p, compiler.TimedToSequential)
	if !errors.Is(err, compiler.ErrUnsupportedProblem) {
		t.Errorf("Compile() = %v, want ErrUnsupportedProblem", err)
	}
}
