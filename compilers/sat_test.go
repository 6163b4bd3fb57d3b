package compilers

import (
	"testing"

	"github.com/plankit/plankit/ir"
)

func TestInfeasible(t *testing.T) {
	p := ir.FluentExp(ir.NewFluent("p", ir.BoolType))
	q := ir.FluentExp(ir.NewFluent("q", ir.BoolType))
	a := ir.FluentExp(ir.NewFluent("a", ir.IntType))
	b := ir.FluentExp(ir.NewFluent("b", ir.IntType))

	tests := []struct {
		name  string
		conds []*ir.Expr
		want  bool
	}{
		{"empty", nil, false},
		{"single atom", []*ir.Expr{p}, false},
		{"direct contradiction", []*ir.Expr{p, ir.Not(p)}, true},
		{"false constant", []*ir.Expr{p, ir.Bool(false)}, true},
		{"disjunction fully blocked", []*ir.Expr{ir.Or(p, q), ir.Not(p), ir.Not(q)}, true},
		{"disjunction half blocked", []*ir.Expr{ir.Or(p, q), ir.Not(p)}, false},
		{"implication chain", []*ir.Expr{ir.Implies(p, q), p, ir.Not(q)}, true},
		{"iff broken", []*ir.Expr{ir.Iff(p, q), p, ir.Not(q)}, true},
		// equality atoms are symmetric
		{"flipped equality", []*ir.Expr{ir.Equals(a, b), ir.Not(ir.Equals(b, a))}, true},
		{"comparisons stay opaque", []*ir.Expr{ir.LE(ir.Int(1), ir.Int(2)), ir.LT(ir.Int(2), ir.Int(1))}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := infeasible(tt.conds); got != tt.want {
				t.Errorf("infeasible(%v) = %v, want %v", tt.conds, got, tt.want)
			}
		})
	}
}
