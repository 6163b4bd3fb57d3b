package encode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

func cargoProblem(t *testing.T) *model.Problem {
	t.Helper()
	env := ir.NewEnvironment()
	loc, err := env.NewUserType("location", nil)
	if err != nil {
		t.Fatal(err)
	}
	p := model.NewProblem("cargo", env)
	base := ir.NewObject("base", loc)
	hill := ir.NewObject("hill", loc)
	for _, o := range []*ir.Object{base, hill} {
		if err := p.AddObject(o); err != nil {
			t.Fatal(err)
		}
	}
	l := ir.NewParameter("l", loc.AsType())
	at := ir.NewFluent("at", ir.BoolType, l)
	if err := p.AddFluent(at, ir.Bool(false)); err != nil {
		t.Fatal(err)
	}
	if err := p.AddFluent(ir.NewFluent("fuel", ir.IntType), nil); err != nil {
		t.Fatal(err)
	}
	from := ir.NewParameter("from", loc.AsType())
	to := ir.NewParameter("to", loc.AsType())
	move := model.NewInstantaneousAction("move", from, to)
	move.AddPrecondition(ir.FluentExp(at, ir.ParamExp(from)))
	if err := move.AddEffect(model.Assign(ir.FluentExp(at, ir.ParamExp(to)), ir.Bool(true))); err != nil {
		t.Fatal(err)
	}
	if err := p.AddAction(move); err != nil {
		t.Fatal(err)
	}
	p.SetInitialValue(ir.FluentExp(at, ir.ObjectExp(base)), ir.Bool(true))
	p.AddGoal(ir.FluentExp(at, ir.ObjectExp(hill)))
	return p
}

func TestProblem(t *testing.T) {
	p := cargoProblem(t)
	want := strings.Join([]string{
		"problem cargo",
		"types",
		"  location",
		"objects",
		"  base: location",
		"  hill: location",
		"fluents",
		"  at(l: location): bool := false",
		"  fuel: int",
		"action move(from: location, to: location)",
		"  pre at(from)",
		"  eff at(to) := true",
		"init",
		"  at(base) := true",
		"goals",
		"  at(hill)",
	}, "\n")
	if got := MustString(p); got != want {
		t.Errorf("MustString() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestProblemDeterministic(t *testing.T) {
	p := cargoProblem(t)
	first := MustString(p)
	for i := 0; i < 3; i++ {
		if got := MustString(p); got != first {
			t.Fatalf("run %d differs:\n%s", i, cmp.Diff(first, got))
		}
	}
}

func TestProblemWithIndent(t *testing.T) {
	p := cargoProblem(t)
	buf := bytes.NewBuffer(nil)
	if err := Problem(buf, p, WithIndent(4)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n    base: location\n") {
		t.Errorf("output not indented by 4:\n%s", buf.String())
	}
}

func TestProblemWithKind(t *testing.T) {
	p := cargoProblem(t)
	buf := bytes.NewBuffer(nil)
	if err := Problem(buf, p, WithKind(true)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "kind ") {
		t.Errorf("kind line missing:\n%s", buf.String())
	}
}

func TestPlan(t *testing.T) {
	p := cargoProblem(t)
	move := p.ActionByName("move")
	base := p.ObjectByName("base")
	hill := p.ObjectByName("hill")
	plan := model.Plan{
		model.NewActionInstance(move, ir.ObjectExp(base), ir.ObjectExp(hill)),
		model.NewActionInstance(move, ir.ObjectExp(hill), ir.ObjectExp(base)),
	}
	buf := bytes.NewBuffer(nil)
	if err := Plan(buf, plan); err != nil {
		t.Fatal(err)
	}
	want := "0: move(base, hill)\n1: move(hill, base)\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
	}
}
