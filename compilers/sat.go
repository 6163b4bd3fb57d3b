package compilers

// SAT-based infeasibility check for precondition sets.
//
// The boolean skeleton of a condition set is encoded as a circuit over
// opaque atom variables (fluent applications, equalities, comparisons,
// quantified subexpressions) and handed to gini. The abstraction is an
// over-approximation of satisfiability, so an unsatisfiable skeleton
// proves the original set contradictory; a satisfiable skeleton proves
// nothing and the candidate is kept.

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/plankit/plankit/debug"
	"github.com/plankit/plankit/ir"
)

type satChecker struct {
	c    *logic.C
	vars map[string]z.Lit
}

func newSatChecker() *satChecker {
	return &satChecker{
		c:    logic.NewC(),
		vars: map[string]z.Lit{},
	}
}

// lit builds the circuit literal of a boolean expression.
func (b *satChecker) lit(e *ir.Expr) z.Lit {
	switch e.Kind {
	case ir.BoolConstKind:
		if e.Bool {
			return b.c.T
		}
		return b.c.F
	case ir.AndKind:
		return b.c.Ands(b.lits(e.Args)...)
	case ir.OrKind:
		return b.c.Ors(b.lits(e.Args)...)
	case ir.NotKind:
		return b.lit(e.Args[0]).Not()
	case ir.ImpliesKind:
		return b.c.Ors(b.lit(e.Args[0]).Not(), b.lit(e.Args[1]))
	case ir.IffKind:
		a, c := b.lit(e.Args[0]), b.lit(e.Args[1])
		return b.c.Ands(b.c.Ors(a.Not(), c), b.c.Ors(c.Not(), a))
	}
	return b.atom(e)
}

func (b *satChecker) lits(es []*ir.Expr) []z.Lit {
	res := make([]z.Lit, len(es))
	for i, e := range es {
		res[i] = b.lit(e)
	}
	return res
}

// atom returns the variable of an opaque atom; structurally equal atoms
// share a variable. Equality is symmetric, so its arguments are ordered
// canonically before keying.
func (b *satChecker) atom(e *ir.Expr) z.Lit {
	key := e.String()
	if e.Kind == ir.EqualsKind && ir.Compare(e.Args[0], e.Args[1]) > 0 {
		key = ir.Equals(e.Args[1], e.Args[0]).String()
	}
	if lit, ok := b.vars[key]; ok {
		return lit
	}
	lit := b.c.Lit()
	b.vars[key] = lit
	return lit
}

// infeasible reports whether the conjunction of the conditions is
// propositionally unsatisfiable.
func infeasible(conds []*ir.Expr) bool {
	b := newSatChecker()
	formula := b.c.Ands(b.lits(conds)...)
	if formula == b.c.F {
		return true
	}
	if formula == b.c.T {
		return false
	}
	g := gini.New()
	b.c.ToCnf(g)
	g.Assume(formula)
	unsat := g.Solve() != 1
	if unsat && debug.Sat() {
		debug.Logf("sat: contradictory condition set %v\n", conds)
	}
	return unsat
}
