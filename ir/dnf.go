package ir

// ToDNF returns the disjunctive normal form of a boolean expression: an
// Or of Ands of literals (or a single conjunction, or a single literal).
// The input is simplified and NNF-normalized first; quantifiers are left
// in place and treated as atoms. Disjunct order follows the order of the
// input's arguments, so the result is deterministic.
func ToDNF(e *Expr) *Expr {
	n := ToNNF(Simplify(e))
	terms := dnfTerms(n)
	var disjuncts []*Expr
	for _, term := range terms {
		c := Simplify(And(term...))
		if c.IsFalse() {
			continue
		}
		if c.IsTrue() {
			return trueExpr
		}
		dup := false
		for _, d := range disjuncts {
			if Equal(d, c) {
				dup = true
				break
			}
		}
		if !dup {
			disjuncts = append(disjuncts, c)
		}
	}
	return Or(disjuncts...)
}

// dnfTerms computes the DNF of an NNF expression as a list of conjunct
// lists: And distributes over Or by Cartesian product.
func dnfTerms(e *Expr) [][]*Expr {
	switch e.Kind {
	case OrKind:
		var res [][]*Expr
		for _, a := range e.Args {
			res = append(res, dnfTerms(a)...)
		}
		return res
	case AndKind:
		res := [][]*Expr{{}}
		for _, a := range e.Args {
			sub := dnfTerms(a)
			next := make([][]*Expr, 0, len(res)*len(sub))
			for _, r := range res {
				for _, s := range sub {
					term := make([]*Expr, 0, len(r)+len(s))
					term = append(term, r...)
					term = append(term, s...)
					next = append(next, term)
				}
			}
			res = next
		}
		return res
	}
	return [][]*Expr{{e}}
}

// Conjuncts returns the top-level conjuncts of e: the arguments if e is
// an And, otherwise e itself. True contributes no conjuncts.
func Conjuncts(e *Expr) []*Expr {
	if e == nil || e.IsTrue() {
		return nil
	}
	if e.Kind == AndKind {
		res := make([]*Expr, len(e.Args))
		copy(res, e.Args)
		return res
	}
	return []*Expr{e}
}

// Disjuncts returns the top-level disjuncts of e: the arguments if e is
// an Or, otherwise e itself. False contributes no disjuncts.
func Disjuncts(e *Expr) []*Expr {
	if e == nil || e.IsFalse() {
		return nil
	}
	if e.Kind == OrKind {
		res := make([]*Expr, len(e.Args))
		copy(res, e.Args)
		return res
	}
	return []*Expr{e}
}
