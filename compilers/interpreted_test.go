package compilers

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plankit/plankit/compiler"
	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

func TestInterpretedFunctionsRemover(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "battery")
	fuel := ir.NewFluent("fuel", ir.IntType)
	moved := ir.NewFluent("moved", ir.BoolType)
	mustAddFluent(t, p, fuel, ir.Int(0))
	mustAddFluent(t, p, moved, ir.False())

	double, err := ir.NewFunction("double", ir.IntType, "x * 2", ir.NewParameter("x", ir.IntType))
	if err != nil {
		t.Fatal(err)
	}
	a := model.NewInstantaneousAction("go")
	a.AddPrecondition(ir.LE(ir.FunctionExp(double, ir.FluentExp(fuel)), ir.Int(10)))
	mustEffect(t, a, model.Assign(ir.FluentExp(moved), ir.True()))
	mustAdd(t, p, a)

	rem := NewInterpretedFunctionsRemoverWith(map[*ir.Function][]KnownCall{
		double: {
			{Args: []*ir.Expr{ir.Int(3)}},                        // result evaluated: 6
			{Args: []*ir.Expr{ir.Int(8)}, Result: ir.Int(16)},    // precomputed
		},
	})
	res, err := rem.Compile(p, compiler.InterpretedFunctionsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	out := res.Problem

	// double(3) = 6 <= 10 keeps its guarded variant; double(8) = 16
	// fails the precondition, so that variant is discarded. The last
	// action is the optimistic variant.
	want := []string{"go", "go_2"}
	if diff := cmp.Diff(want, actionNames(out)); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
	if got := preStrings(out.ActionByName("go")); len(got) != 1 || got[0] != "(fuel == 3)" {
		t.Errorf("go preconditions = %v, want [(fuel == 3)]", got)
	}
	got := preStrings(out.ActionByName("go_2"))
	if len(got) != 1 || got[0] != "double_unknown" {
		t.Errorf("go_2 preconditions = %v, want [double_unknown]", got)
	}

	tracking := out.FluentByName("double_unknown")
	if tracking == nil {
		t.Fatal("tracking fluent missing")
	}
	if dflt := out.Default(tracking); dflt == nil || !dflt.IsFalse() {
		t.Errorf("tracking default = %v, want false", dflt)
	}
	if got := out.Kind(); got.Has(model.InterpretedFunctions) {
		t.Errorf("Kind() = %v, still has interpreted functions", got)
	}
}

func TestInterpretedFunctionsKnownCallArityChecked(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "arity")
	fuel := ir.NewFluent("fuel", ir.IntType)
	moved := ir.NewFluent("moved", ir.BoolType)
	mustAddFluent(t, p, fuel, ir.Int(0))
	mustAddFluent(t, p, moved, ir.False())

	add, err := ir.NewFunction("add", ir.IntType, "x + y",
		ir.NewParameter("x", ir.IntType), ir.NewParameter("y", ir.IntType))
	if err != nil {
		t.Fatal(err)
	}
	a := model.NewInstantaneousAction("go")
	a.AddPrecondition(ir.LE(ir.FunctionExp(add, ir.FluentExp(fuel), ir.Int(1)), ir.Int(10)))
	mustEffect(t, a, model.Assign(ir.FluentExp(moved), ir.True()))
	mustAdd(t, p, a)

	// A seeded tuple with a precomputed result skips evaluation, so its
	// arity must be checked up front.
	rem := NewInterpretedFunctionsRemoverWith(map[*ir.Function][]KnownCall{
		add: {{Args: []*ir.Expr{ir.Int(3)}, Result: ir.Int(4)}},
	})
	_, err = rem.Compile(p, compiler.InterpretedFunctionsRemoving)
	if !errors.Is(err, compiler.ErrUsage) {
		t.Errorf("Compile() = %v, want ErrUsage", err)
	}
}

func TestInterpretedFunctionsRejectedOutsidePreconditions(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "stray")
	fuel := ir.NewFluent("fuel", ir.IntType)
	mustAddFluent(t, p, fuel, ir.Int(0))
	double, err := ir.NewFunction("double", ir.IntType, "x * 2", ir.NewParameter("x", ir.IntType))
	if err != nil {
		t.Fatal(err)
	}
	p.AddGoal(ir.LE(ir.FunctionExp(double, ir.FluentExp(fuel)), ir.Int(4)))

	_, err = NewInterpretedFunctionsRemover().Compile(p, compiler.InterpretedFunctionsRemoving)
	if !errors.Is(err, compiler.ErrUnsupportedProblem) {
		t.Errorf("Compile() = %v, want ErrUnsupportedProblem", err)
	}
}

func TestInterpretedFunctionsUntouchedAction(t *testing.T) {
	d := newTestDomain(t)
	p := d.problem(t, "plainacts")
	q := ir.NewFluent("q", ir.BoolType)
	mustAddFluent(t, p, q, ir.False())
	a := model.NewInstantaneousAction("noop")
	mustEffect(t, a, model.Assign(ir.FluentExp(q), ir.True()))
	mustAdd(t, p, a)

	res, err := NewInterpretedFunctionsRemover().Compile(p, compiler.InterpretedFunctionsRemoving)
	if err != nil {
		t.Fatal(err)
	}
	out := res.Problem
	if got := actionNames(out); len(got) != 1 || got[0] != "noop" {
		t.Errorf("actions = %v, want [noop]", got)
	}
	orig, err := res.MapBack(model.NewActionInstance(out.ActionByName("noop")))
	if err != nil {
		t.Fatal(err)
	}
	if orig.Action != a {
		t.Errorf("MapBack() = %v, want noop", orig.Action)
	}
}
