package compilers

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

func TestNegativeConditionsRemover(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "switches")
	x := ir.NewFluent("x", ir.BoolType)
	mustAddFluent(t, p, x, nil)
	xApp := ir.FluentExp(x)
	p.SetInitialValue(xApp, ir.False())

	set := model.NewInstantaneousAction("set")
	set.AddPrecondition(ir.Not(xApp))
	mustEffect(t, set, model.Assign(xApp, ir.True()))
	mustAdd(t, p, set)
	p.AddGoal(xApp)

	res, err := NewNegativeConditionsRemover().Compile(p, compiler.NegativeConditionsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	out := res.Problem

	twin := out.FluentByName("not_x")
	if twin == nil {
		t.Fatal("twin fluent not_x missing")
	}
	a := out.ActionByName("set")
	if got := preStrings(a); len(got) != 1 || got[0] != "not_x" {
		t.Errorf("preconditions = %v, want [not_x]", got)
	}
	// The assignment to x is mirrored with the complementary value.
	want := []string{"x := true", "not_x := false"}
	if diff := cmp.Diff(want, effectStrings(a)); diff != "" {
		t.Errorf("effects mismatch (-want +got):\n%s", diff)
	}
	// Complementary initial value.
	if v, ok := out.InitialValue(ir.FluentExp(twin)); !ok || !v.IsTrue() {
		t.Errorf("InitialValue(not_x) = %v, %v, want true", v, ok)
	}
	if got := out.Kind(); got.Has(model.NegativeConditions) {
		t.Errorf("Kind() = %v, still negative", got)
	}
	// Prediction matches the actual output kind.
	r := NewNegativeConditionsRemover()
	if predicted := r.ResultingKind(p.Kind(), compiler.NegativeConditionsRemoving); predicted != out.Kind() {
		t.Errorf("ResultingKind() = %v, output kind = %v", predicted, out.Kind())
	}

	orig, err := res.MapBack(model.NewActionInstance(a))
	if err != nil {
		t.Fatal(err)
	}
	if orig.Action != set {
		t.Errorf("MapBack() = %v, want set", orig.Action)
	}
}

func TestNegativeNegatedConjunction(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "nand")
	a := ir.NewFluent("a", ir.BoolType)
	b := ir.NewFluent("b", ir.BoolType)
	for _, f := range []*ir.Fluent{a, b} {
		mustAddFluent(t, p, f, ir.False())
	}
	act := model.NewInstantaneousAction("act")
	act.AddPrecondition(ir.Not(ir.And(ir.FluentExp(a), ir.FluentExp(b))))
	mustAdd(t, p, act)

	// The input already counts as disjunctive: the negated conjunction
	// becomes a disjunction in negation normal form.
	if got := p.Kind(); !got.Has(model.DisjunctiveConditions) {
		t.Errorf("Kind() = %v, negated conjunction not counted disjunctive", got)
	}

	r := NewNegativeConditionsRemover()
	res, err := r.Compile(p, compiler.NegativeConditionsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	out := res.Problem
	if got := preStrings(out.ActionByName("act")); len(got) != 1 || got[0] != "or(not_a, not_b)" {
		t.Errorf("preconditions = %v, want [or(not_a, not_b)]", got)
	}
	if predicted := r.ResultingKind(p.Kind(), compiler.NegativeConditionsRemoving); predicted != out.Kind() {
		t.Errorf("ResultingKind() = %v, output kind = %v", predicted, out.Kind())
	}
}

func TestNegativeComparisonsFlip(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "numeric")
	fuel := ir.NewFluent("fuel", ir.IntType)
	mustAddFluent(t, p, fuel, ir.Int(0))
	app := ir.FluentExp(fuel)

	tests := []struct {
		name string
		goal *ir.Expr
		want string
	}{
		{"negated le", ir.Not(ir.LE(app, ir.Int(5))), "(5 < fuel)"},
		{"negated lt", ir.Not(ir.LT(app, ir.Int(5))), "(5 <= fuel)"},
		{"negated numeric equality", ir.Not(ir.Equals(app, ir.Int(5))), "or((fuel < 5), (5 < fuel))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := p.Clone()
			q.AddGoal(tt.goal)
			res, err := NewNegativeConditionsRemover().Compile(q, compiler.NegativeConditionsRemoving)
			if err != nil {
				t.Fatal(err)
			}
			goals := res.Problem.Goals()
			if len(goals) != 1 || goals[0].String() != tt.want {
				t.Errorf("goal = %v, want %s", goals, tt.want)
			}
		})
	}
}

func TestNegativeObjectEquality(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "pose")
	pos := ir.NewFluent("pos", d.loc.AsType())
	mustAddFluent(t, p, pos, nil)
	p.AddGoal(ir.Not(ir.Equals(ir.FluentExp(pos), ir.ObjectExp(d.base))))

	res, err := NewNegativeConditionsRemover().Compile(p, compiler.NegativeConditionsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	goals := res.Problem.Goals()
	// Two locations, so being away from base means being at hill.
	if len(goals) != 1 || goals[0].String() != "(pos == hill)" {
		t.Errorf("goal = %v, want (pos == hill)", goals)
	}
}
