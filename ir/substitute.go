package ir

// Substitute rebuilds e, replacing every subexpression for which f
// returns a non-nil expression. Replacement is not applied recursively
// to the replacement itself. When nothing is replaced, subtrees are
// shared with the input.
func Substitute(e *Expr, f func(*Expr) *Expr) *Expr {
	if e == nil {
		return nil
	}
	if r := f(e); r != nil {
		return r
	}
	if len(e.Args) == 0 {
		return e
	}
	changed := false
	args := make([]*Expr, len(e.Args))
	for i, a := range e.Args {
		args[i] = Substitute(a, f)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return e
	}
	res := *e
	res.Args = args
	return &res
}

// SubstituteParams replaces parameter references according to sub.
func SubstituteParams(e *Expr, sub map[*Parameter]*Expr) *Expr {
	if len(sub) == 0 {
		return e
	}
	return Substitute(e, func(x *Expr) *Expr {
		if x.Kind == ParamKind {
			return sub[x.Param]
		}
		return nil
	})
}

// SubstituteVars replaces variable references according to sub. Bound
// occurrences of a substituted variable are replaced too; callers
// substituting under quantifiers must strip the binder first.
func SubstituteVars(e *Expr, sub map[*Variable]*Expr) *Expr {
	if len(sub) == 0 {
		return e
	}
	return Substitute(e, func(x *Expr) *Expr {
		if x.Kind == VariableKind {
			return sub[x.Var]
		}
		return nil
	})
}

// Replace substitutes every subexpression structurally equal to old with
// repl.
func Replace(e, old, repl *Expr) *Expr {
	return Substitute(e, func(x *Expr) *Expr {
		if Equal(x, old) {
			return repl
		}
		return nil
	})
}
