package ir

// Walk visits e and every subexpression in preorder. If f returns false
// the children of the current node are skipped.
func Walk(e *Expr, f func(*Expr) bool) {
	if e == nil {
		return
	}
	if !f(e) {
		return
	}
	for _, a := range e.Args {
		Walk(a, f)
	}
}

// HasKind reports whether e contains a node of any of the given kinds.
func HasKind(e *Expr, kinds ...Kind) bool {
	found := false
	Walk(e, func(x *Expr) bool {
		for _, k := range kinds {
			if x.Kind == k {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// FreeVars returns the variables of e not bound by an enclosing
// quantifier, in first-occurrence order.
func FreeVars(e *Expr) []*Variable {
	var res []*Variable
	seen := map[*Variable]bool{}
	var walk func(e *Expr, bound map[*Variable]bool)
	walk = func(e *Expr, bound map[*Variable]bool) {
		if e == nil {
			return
		}
		switch e.Kind {
		case VariableKind:
			if !bound[e.Var] && !seen[e.Var] {
				seen[e.Var] = true
				res = append(res, e.Var)
			}
			return
		case ExistsKind, ForallKind:
			inner := make(map[*Variable]bool, len(bound)+len(e.Vars))
			for v := range bound {
				inner[v] = true
			}
			for _, v := range e.Vars {
				inner[v] = true
			}
			walk(e.Args[0], inner)
			return
		}
		for _, a := range e.Args {
			walk(a, bound)
		}
	}
	walk(e, map[*Variable]bool{})
	return res
}

// Params returns the action parameters referenced by e, in
// first-occurrence order.
func Params(e *Expr) []*Parameter {
	var res []*Parameter
	seen := map[*Parameter]bool{}
	Walk(e, func(x *Expr) bool {
		if x.Kind == ParamKind && !seen[x.Param] {
			seen[x.Param] = true
			res = append(res, x.Param)
		}
		return true
	})
	return res
}

// FluentApps returns every fluent application in e, in preorder.
func FluentApps(e *Expr) []*Expr {
	var res []*Expr
	Walk(e, func(x *Expr) bool {
		if x.Kind == FluentKind {
			res = append(res, x)
		}
		return true
	})
	return res
}

// FunctionApps returns every interpreted-function application in e, in
// preorder, without duplicates (structural equality).
func FunctionApps(e *Expr) []*Expr {
	var res []*Expr
	Walk(e, func(x *Expr) bool {
		if x.Kind == FunctionKind {
			for _, seen := range res {
				if Equal(seen, x) {
					return true
				}
			}
			res = append(res, x)
		}
		return true
	})
	return res
}

// ContainsFluent reports whether e applies the given fluent anywhere.
func ContainsFluent(e *Expr, f *Fluent) bool {
	found := false
	Walk(e, func(x *Expr) bool {
		if x.Kind == FluentKind && x.Fluent == f {
			found = true
			return false
		}
		return true
	})
	return found
}
