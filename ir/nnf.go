package ir

// ToNNF returns the negation normal form of a boolean expression:
// Implies and Iff are eliminated and negation is pushed down until it
// applies only to atoms (fluent or function applications, equalities,
// comparisons, boolean leaves).
func ToNNF(e *Expr) *Expr {
	return nnf(e, false)
}

func nnf(e *Expr, neg bool) *Expr {
	switch e.Kind {
	case NotKind:
		return nnf(e.Args[0], !neg)
	case AndKind, OrKind:
		args := make([]*Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = nnf(a, neg)
		}
		if (e.Kind == AndKind) != neg {
			return And(args...)
		}
		return Or(args...)
	case ImpliesKind:
		return nnf(Or(Not(e.Args[0]), e.Args[1]), neg)
	case IffKind:
		a, b := e.Args[0], e.Args[1]
		return nnf(And(Or(Not(a), b), Or(Not(b), a)), neg)
	case ExistsKind, ForallKind:
		body := nnf(e.Args[0], neg)
		if (e.Kind == ExistsKind) != neg {
			return Exists(body, e.Vars...)
		}
		return Forall(body, e.Vars...)
	case BoolConstKind:
		return Bool(e.Bool != neg)
	}
	if neg {
		return Not(e)
	}
	return e
}
