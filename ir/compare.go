package ir

import "cmp"

// Equal reports structural equality. Symbols (fluents, parameters,
// variables, objects, functions) compare by identity.
func Equal(a, b *Expr) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case BoolConstKind:
		if a.Bool != b.Bool {
			return false
		}
	case IntConstKind:
		if a.Int != b.Int {
			return false
		}
	case RealConstKind:
		if a.Real != b.Real {
			return false
		}
	case ObjectKind:
		return a.Object == b.Object
	case ParamKind:
		return a.Param == b.Param
	case VariableKind:
		return a.Var == b.Var
	case FluentKind:
		if a.Fluent != b.Fluent {
			return false
		}
	case FunctionKind:
		if a.Function != b.Function {
			return false
		}
	case ExistsKind, ForallKind:
		if len(a.Vars) != len(b.Vars) {
			return false
		}
		for i := range a.Vars {
			if a.Vars[i] != b.Vars[i] {
				return false
			}
		}
	}
	if len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !Equal(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}

// Compare returns an integer comparing two expressions in a fixed total
// order. The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// The order has no semantic meaning; it exists so callers can sort
// expression collections deterministically.
func Compare(a, b *Expr) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	switch a.Kind {
	case BoolConstKind:
		return compareBool(a.Bool, b.Bool)
	case IntConstKind:
		return cmp.Compare(a.Int, b.Int)
	case RealConstKind:
		return cmp.Compare(a.Real, b.Real)
	case ObjectKind:
		return cmp.Compare(a.Object.Name(), b.Object.Name())
	case ParamKind:
		return cmp.Compare(a.Param.Name(), b.Param.Name())
	case VariableKind:
		return cmp.Compare(a.Var.Name(), b.Var.Name())
	case FluentKind:
		if c := cmp.Compare(a.Fluent.Name(), b.Fluent.Name()); c != 0 {
			return c
		}
	case FunctionKind:
		if c := cmp.Compare(a.Function.Name(), b.Function.Name()); c != 0 {
			return c
		}
	case ExistsKind, ForallKind:
		if c := cmp.Compare(len(a.Vars), len(b.Vars)); c != 0 {
			return c
		}
		for i := range a.Vars {
			if c := cmp.Compare(a.Vars[i].Name(), b.Vars[i].Name()); c != 0 {
				return c
			}
		}
	}
	if c := cmp.Compare(len(a.Args), len(b.Args)); c != 0 {
		return c
	}
	for i := range a.Args {
		if c := Compare(a.Args[i], b.Args[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}
