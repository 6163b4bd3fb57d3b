package ir

// Simplify returns a simplified expression equivalent to e: constants
// are folded, And/Or are flattened and deduplicated, double negations
// and trivial quantifiers are removed. Argument order is preserved, so
// the result is deterministic.
func Simplify(e *Expr) *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case AndKind:
		return simplifyJunction(e, true)
	case OrKind:
		return simplifyJunction(e, false)
	case NotKind:
		return simplifyNot(e)
	case ImpliesKind:
		a, b := Simplify(e.Args[0]), Simplify(e.Args[1])
		switch {
		case a.IsFalse() || b.IsTrue():
			return trueExpr
		case a.IsTrue():
			return b
		case b.IsFalse():
			return simplifyNot(Not(a))
		}
		return Implies(a, b)
	case IffKind:
		a, b := Simplify(e.Args[0]), Simplify(e.Args[1])
		switch {
		case a.IsTrue():
			return b
		case b.IsTrue():
			return a
		case a.IsFalse():
			return simplifyNot(Not(b))
		case b.IsFalse():
			return simplifyNot(Not(a))
		case Equal(a, b):
			return trueExpr
		}
		return Iff(a, b)
	case ExistsKind, ForallKind:
		body := Simplify(e.Args[0])
		if body.Kind == BoolConstKind {
			// domains are assumed non-empty
			return body
		}
		if e.Kind == ExistsKind {
			return Exists(body, e.Vars...)
		}
		return Forall(body, e.Vars...)
	case EqualsKind:
		a, b := Simplify(e.Args[0]), Simplify(e.Args[1])
		if Equal(a, b) {
			return trueExpr
		}
		if a.IsConstant() && b.IsConstant() {
			return Bool(constEqual(a, b))
		}
		return Equals(a, b)
	case LEKind, LTKind:
		a, b := Simplify(e.Args[0]), Simplify(e.Args[1])
		av, aok := numValue(a)
		bv, bok := numValue(b)
		if aok && bok {
			if e.Kind == LEKind {
				return Bool(av <= bv)
			}
			return Bool(av < bv)
		}
		if e.Kind == LEKind {
			return LE(a, b)
		}
		return LT(a, b)
	case PlusKind:
		return simplifyPlus(e)
	case TimesKind:
		return simplifyTimes(e)
	case MinusKind:
		a, b := Simplify(e.Args[0]), Simplify(e.Args[1])
		if av, aok := numValue(a); aok {
			if bv, bok := numValue(b); bok {
				return numConst(av-bv, a.Kind == IntConstKind && b.Kind == IntConstKind)
			}
		}
		return Minus(a, b)
	case DivKind:
		a, b := Simplify(e.Args[0]), Simplify(e.Args[1])
		if bv, bok := numValue(b); bok && bv != 0 {
			if av, aok := numValue(a); aok {
				if a.Kind == IntConstKind && b.Kind == IntConstKind && int64(av)%int64(bv) == 0 {
					return Int(int64(av) / int64(bv))
				}
				return Real(av / bv)
			}
		}
		return Div(a, b)
	case FluentKind:
		return FluentExp(e.Fluent, simplifyAll(e.Args)...)
	case FunctionKind:
		return FunctionExp(e.Function, simplifyAll(e.Args)...)
	}
	return e
}

func simplifyAll(args []*Expr) []*Expr {
	res := make([]*Expr, len(args))
	for i, a := range args {
		res[i] = Simplify(a)
	}
	return res
}

// simplifyJunction handles And (conj=true) and Or (conj=false):
// flattening, unit and absorbing constants, duplicate removal, and the
// x/not(x) contradiction (resp. tautology) check.
func simplifyJunction(e *Expr, conj bool) *Expr {
	var flat []*Expr
	seen := map[string]bool{}
	negated := map[string]bool{}

	var push func(x *Expr) bool // returns false on short-circuit
	push = func(x *Expr) bool {
		x = Simplify(x)
		switch {
		case conj && x.IsTrue(), !conj && x.IsFalse():
			return true // unit element, drop
		case conj && x.IsFalse(), !conj && x.IsTrue():
			return false
		}
		if (conj && x.Kind == AndKind) || (!conj && x.Kind == OrKind) {
			for _, sub := range x.Args {
				if !push(sub) {
					return false
				}
			}
			return true
		}
		key := x.String()
		if seen[key] {
			return true
		}
		if x.Kind == NotKind {
			inner := x.Args[0].String()
			if seen[inner] {
				return false // x and not(x)
			}
			negated[inner] = true
		} else if negated[key] {
			return false
		}
		seen[key] = true
		flat = append(flat, x)
		return true
	}

	for _, a := range e.Args {
		if !push(a) {
			return Bool(!conj)
		}
	}
	if conj {
		return And(flat...)
	}
	return Or(flat...)
}

func simplifyNot(e *Expr) *Expr {
	c := Simplify(e.Args[0])
	switch {
	case c.IsTrue():
		return falseExpr
	case c.IsFalse():
		return trueExpr
	case c.Kind == NotKind:
		return c.Args[0]
	}
	return Not(c)
}

func simplifyPlus(e *Expr) *Expr {
	var rest []*Expr
	sum, allInt, haveConst := 0.0, true, false
	for _, a := range e.Args {
		a = Simplify(a)
		if a.Kind == PlusKind {
			rest = append(rest, a.Args...)
			continue
		}
		if v, ok := numValue(a); ok {
			sum += v
			haveConst = true
			allInt = allInt && a.Kind == IntConstKind
			continue
		}
		rest = append(rest, a)
	}
	if haveConst && sum != 0 {
		rest = append(rest, numConst(sum, allInt))
	}
	if len(rest) == 0 {
		return numConst(sum, allInt)
	}
	return Plus(rest...)
}

func simplifyTimes(e *Expr) *Expr {
	var rest []*Expr
	prod, allInt, haveConst := 1.0, true, false
	for _, a := range e.Args {
		a = Simplify(a)
		if a.Kind == TimesKind {
			rest = append(rest, a.Args...)
			continue
		}
		if v, ok := numValue(a); ok {
			prod *= v
			haveConst = true
			allInt = allInt && a.Kind == IntConstKind
			continue
		}
		rest = append(rest, a)
	}
	if haveConst && prod == 0 {
		return numConst(0, allInt)
	}
	if haveConst && prod != 1 {
		rest = append(rest, numConst(prod, allInt))
	}
	if len(rest) == 0 {
		return numConst(prod, allInt)
	}
	return Times(rest...)
}

func numValue(e *Expr) (float64, bool) {
	switch e.Kind {
	case IntConstKind:
		return float64(e.Int), true
	case RealConstKind:
		return e.Real, true
	}
	return 0, false
}

func numConst(v float64, isInt bool) *Expr {
	if isInt {
		return Int(int64(v))
	}
	return Real(v)
}

func constEqual(a, b *Expr) bool {
	av, aok := numValue(a)
	bv, bok := numValue(b)
	if aok && bok {
		return av == bv
	}
	return Equal(a, b)
}
