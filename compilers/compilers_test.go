package compilers

import (
	"sort"
	"testing"

	"github.com/plankit/plankit/ir"
	"github.com/plankit/plankit/model"
)

// testDomain is the shared fixture: a location type with two objects
// and a handful of boolean fluents.
type testDomain struct {
	env  *ir.Environment
	loc  *ir.UserType
	base *ir.Object
	hill *ir.Object
}

func newTestDomain(t *testing.T) *testDomain {
	t.Helper()
	env := ir.NewEnvironment()
	loc, err := env.NewUserType("location", nil)
	if err != nil {
		t.Fatal(err)
	}
	return &testDomain{
		env:  env,
		loc:  loc,
		base: ir.NewObject("base", loc),
		hill: ir.NewObject("hill", loc),
	}
}

func (d *testDomain) problem(t *testing.T, name string) *model.Problem {
	t.Helper()
	p := model.NewProblem(name, d.env)
	for _, o := range []*ir.Object{d.base, d.hill} {
		if err := p.AddObject(o); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func mustAddFluent(t *testing.T, p *model.Problem, f *ir.Fluent, dflt *ir.Expr) {
	t.Helper()
	if err := p.AddFluent(f, dflt); err != nil {
		t.Fatal(err)
	}
}

func mustAdd(t *testing.T, p *model.Problem, a model.Action) {
	t.Helper()
	if err := p.AddAction(a); err != nil {
		t.Fatal(err)
	}
}

func mustEffect(t *testing.T, a *model.InstantaneousAction, e *model.Effect) {
	t.Helper()
	if err := a.AddEffect(e); err != nil {
		t.Fatal(err)
	}
}

func actionNames(p *model.Problem) []string {
	var res []string
	for _, a := range p.Actions() {
		res = append(res, a.Name())
	}
	sort.Strings(res)
	return res
}

func preStrings(a model.Action) []string {
	var res []string
	switch act := a.(type) {
	case *model.InstantaneousAction:
		for _, pre := range act.Preconditions() {
			res = append(res, pre.String())
		}
	case *model.DurativeAction:
		for _, tc := range act.Conditions() {
			res = append(res, tc.Cond.String())
		}
	}
	return res
}

func effectStrings(a model.Action) []string {
	var res []string
	switch act := a.(type) {
	case *model.InstantaneousAction:
		for _, e := range act.Effects() {
			res = append(res, e.String())
		}
	case *model.DurativeAction:
		for _, te := range act.Effects() {
			res = append(res, te.Timing.String()+": "+te.Effect.String())
		}
	}
	return res
}
