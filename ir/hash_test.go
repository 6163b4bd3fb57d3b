package ir

import "testing"

func TestHashConsistentWithEqual(t *testing.T) {
	p := FluentExp(NewFluent("p", BoolType))
	q := FluentExp(NewFluent("q", BoolType))
	pairs := []struct {
		name string
		a, b *Expr
	}{
		{"same fluent", p, FluentExp(NewFluent("p", BoolType))},
		{"same junction", And(p, q), And(p, q)},
		{"same arithmetic", Plus(Int(1), Int(2)), Plus(Int(1), Int(2))},
		{"same real", Real(0.5), Real(0.5)},
	}
	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			if !Equal(tt.a, tt.b) {
				t.Fatalf("Equal(%v, %v) = false", tt.a, tt.b)
			}
			if tt.a.Hash() != tt.b.Hash() {
				t.Errorf("Hash(%v) != Hash(%v)", tt.a, tt.b)
			}
		})
	}
}

func TestHashSeparatesStructure(t *testing.T) {
	p := FluentExp(NewFluent("p", BoolType))
	q := FluentExp(NewFluent("q", BoolType))
	distinct := []*Expr{
		p, q, Not(p), And(p, q), And(q, p), Or(p, q), Int(0), Int(1), Bool(true), Bool(false),
	}
	seen := map[uint64]*Expr{}
	for _, e := range distinct {
		h := e.Hash()
		if prev, ok := seen[h]; ok {
			t.Errorf("Hash collision between %v and %v", prev, e)
		}
		seen[h] = e
	}
}
