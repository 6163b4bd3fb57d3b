package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags an expression node.
type Kind int

const (
	BoolConstKind Kind = iota
	IntConstKind
	RealConstKind
	ObjectKind
	ParamKind
	VariableKind
	FluentKind
	FunctionKind
	AndKind
	OrKind
	NotKind
	ImpliesKind
	IffKind
	ExistsKind
	ForallKind
	EqualsKind
	LEKind
	LTKind
	PlusKind
	MinusKind
	TimesKind
	DivKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		BoolConstKind: "bool",
		IntConstKind:  "int",
		RealConstKind: "real",
		ObjectKind:    "object",
		ParamKind:     "param",
		VariableKind:  "variable",
		FluentKind:    "fluent",
		FunctionKind:  "function",
		AndKind:       "and",
		OrKind:        "or",
		NotKind:       "not",
		ImpliesKind:   "implies",
		IffKind:       "iff",
		ExistsKind:    "exists",
		ForallKind:    "forall",
		EqualsKind:    "==",
		LEKind:        "<=",
		LTKind:        "<",
		PlusKind:      "+",
		MinusKind:     "-",
		TimesKind:     "*",
		DivKind:       "/",
	}[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

// Expr is an immutable expression node. Exactly the fields relevant to
// Kind are set; all other fields are zero. Expressions are never mutated
// after construction and may be shared between trees and problems.
type Expr struct {
	Kind Kind

	// Args holds connective/operator operands, fluent arguments, or
	// function arguments.
	Args []*Expr

	// Vars holds the bound variables of Exists/Forall.
	Vars []*Variable

	Fluent   *Fluent
	Function *Function
	Param    *Parameter
	Var      *Variable
	Object   *Object

	Bool bool
	Int  int64
	Real float64
}

var (
	trueExpr  = &Expr{Kind: BoolConstKind, Bool: true}
	falseExpr = &Expr{Kind: BoolConstKind, Bool: false}
)

// True returns the boolean constant true.
func True() *Expr { return trueExpr }

// False returns the boolean constant false.
func False() *Expr { return falseExpr }

func Bool(b bool) *Expr {
	if b {
		return trueExpr
	}
	return falseExpr
}

func Int(v int64) *Expr {
	return &Expr{Kind: IntConstKind, Int: v}
}

func Real(v float64) *Expr {
	return &Expr{Kind: RealConstKind, Real: v}
}

func ObjectExp(o *Object) *Expr {
	return &Expr{Kind: ObjectKind, Object: o}
}

func ParamExp(p *Parameter) *Expr {
	return &Expr{Kind: ParamKind, Param: p}
}

func VarExp(v *Variable) *Expr {
	return &Expr{Kind: VariableKind, Var: v}
}

// FluentExp applies a fluent to arguments. Arity is checked only by
// callers that know their problem; the constructor is permissive so
// partially built expressions can be assembled freely.
func FluentExp(f *Fluent, args ...*Expr) *Expr {
	return &Expr{Kind: FluentKind, Fluent: f, Args: args}
}

func FunctionExp(f *Function, args ...*Expr) *Expr {
	return &Expr{Kind: FunctionKind, Function: f, Args: args}
}

// And returns the conjunction of args. Zero args yield true, one arg
// yields that arg unchanged.
func And(args ...*Expr) *Expr {
	switch len(args) {
	case 0:
		return trueExpr
	case 1:
		return args[0]
	}
	return &Expr{Kind: AndKind, Args: args}
}

// Or returns the disjunction of args. Zero args yield false, one arg
// yields that arg unchanged.
func Or(args ...*Expr) *Expr {
	switch len(args) {
	case 0:
		return falseExpr
	case 1:
		return args[0]
	}
	return &Expr{Kind: OrKind, Args: args}
}

func Not(e *Expr) *Expr {
	return &Expr{Kind: NotKind, Args: []*Expr{e}}
}

func Implies(a, b *Expr) *Expr {
	return &Expr{Kind: ImpliesKind, Args: []*Expr{a, b}}
}

func Iff(a, b *Expr) *Expr {
	return &Expr{Kind: IffKind, Args: []*Expr{a, b}}
}

func Exists(body *Expr, vars ...*Variable) *Expr {
	if len(vars) == 0 {
		return body
	}
	return &Expr{Kind: ExistsKind, Args: []*Expr{body}, Vars: vars}
}

func Forall(body *Expr, vars ...*Variable) *Expr {
	if len(vars) == 0 {
		return body
	}
	return &Expr{Kind: ForallKind, Args: []*Expr{body}, Vars: vars}
}

func Equals(a, b *Expr) *Expr {
	return &Expr{Kind: EqualsKind, Args: []*Expr{a, b}}
}

func LE(a, b *Expr) *Expr {
	return &Expr{Kind: LEKind, Args: []*Expr{a, b}}
}

func LT(a, b *Expr) *Expr {
	return &Expr{Kind: LTKind, Args: []*Expr{a, b}}
}

func GE(a, b *Expr) *Expr {
	return LE(b, a)
}

func GT(a, b *Expr) *Expr {
	return LT(b, a)
}

func Plus(args ...*Expr) *Expr {
	switch len(args) {
	case 0:
		return Int(0)
	case 1:
		return args[0]
	}
	return &Expr{Kind: PlusKind, Args: args}
}

func Minus(a, b *Expr) *Expr {
	return &Expr{Kind: MinusKind, Args: []*Expr{a, b}}
}

func Times(args ...*Expr) *Expr {
	switch len(args) {
	case 0:
		return Int(1)
	case 1:
		return args[0]
	}
	return &Expr{Kind: TimesKind, Args: args}
}

func Div(a, b *Expr) *Expr {
	return &Expr{Kind: DivKind, Args: []*Expr{a, b}}
}

// IsTrue reports whether e is the boolean constant true.
func (e *Expr) IsTrue() bool {
	return e != nil && e.Kind == BoolConstKind && e.Bool
}

// IsFalse reports whether e is the boolean constant false.
func (e *Expr) IsFalse() bool {
	return e != nil && e.Kind == BoolConstKind && !e.Bool
}

// IsConstant reports whether e is a literal: a boolean, numeric, or
// object constant.
func (e *Expr) IsConstant() bool {
	switch e.Kind {
	case BoolConstKind, IntConstKind, RealConstKind, ObjectKind:
		return true
	}
	return false
}

// IsFluentExp reports whether e is a fluent application.
func (e *Expr) IsFluentExp() bool {
	return e.Kind == FluentKind
}

// Type returns the value type of e.
func (e *Expr) Type() *Type {
	switch e.Kind {
	case BoolConstKind, AndKind, OrKind, NotKind, ImpliesKind, IffKind,
		ExistsKind, ForallKind, EqualsKind, LEKind, LTKind:
		return BoolType
	case IntConstKind:
		return IntType
	case RealConstKind:
		return RealType
	case ObjectKind:
		return e.Object.UserType().AsType()
	case ParamKind:
		return e.Param.Type()
	case VariableKind:
		return e.Var.Type()
	case FluentKind:
		return e.Fluent.Type()
	case FunctionKind:
		return e.Function.Type()
	case PlusKind, MinusKind, TimesKind, DivKind:
		for _, a := range e.Args {
			if a.Type().IsReal() {
				return RealType
			}
		}
		return IntType
	}
	return nil
}

// String renders e deterministically. The rendering doubles as a
// canonical structural key: two expressions are Equal iff their strings
// coincide, up to symbol identity.
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case BoolConstKind:
		return strconv.FormatBool(e.Bool)
	case IntConstKind:
		return strconv.FormatInt(e.Int, 10)
	case RealConstKind:
		return strconv.FormatFloat(e.Real, 'g', -1, 64)
	case ObjectKind:
		return e.Object.Name()
	case ParamKind:
		return e.Param.Name()
	case VariableKind:
		return e.Var.Name()
	case FluentKind:
		return applyString(e.Fluent.Name(), e.Args)
	case FunctionKind:
		return applyString(e.Function.Name(), e.Args)
	case AndKind, OrKind, NotKind, ImpliesKind, IffKind:
		return applyString(e.Kind.String(), e.Args)
	case ExistsKind, ForallKind:
		vars := make([]string, len(e.Vars))
		for i, v := range e.Vars {
			vars[i] = fmt.Sprintf("%s: %s", v.Name(), v.Type())
		}
		return fmt.Sprintf("%s[%s](%s)", e.Kind, strings.Join(vars, ", "), e.Args[0])
	case EqualsKind, LEKind, LTKind, MinusKind, DivKind:
		return fmt.Sprintf("(%s %s %s)", e.Args[0], e.Kind, e.Args[1])
	case PlusKind, TimesKind:
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			parts[i] = a.String()
		}
		return "(" + strings.Join(parts, " "+e.Kind.String()+" ") + ")"
	}
	return "<unknown expr>"
}

func applyString(head string, args []*Expr) string {
	if len(args) == 0 {
		return head
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return head + "(" + strings.Join(parts, ", ") + ")"
}
