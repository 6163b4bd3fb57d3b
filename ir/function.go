package ir

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Function is an interpreted (black-box) function symbol. The body is an
// expr program compiled once at construction and evaluated over constant
// arguments; the planning core never inspects it.
type Function struct {
	name   string
	typ    *Type
	params []*Parameter
	src    string
	prg    *vm.Program
}

// NewFunction compiles src as an expr program whose environment binds the
// parameter names. The result type must be bool, int or real.
func NewFunction(name string, typ *Type, src string, params ...*Parameter) (*Function, error) {
	if typ.IsUser() {
		return nil, fmt.Errorf("%w: interpreted function %s cannot return user type %s", ErrUsage, name, typ)
	}
	env := make(map[string]any, len(params))
	for _, p := range params {
		env[p.Name()] = zeroValueFor(p.Type())
	}
	prg, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return nil, fmt.Errorf("compiling interpreted function %s: %w", name, err)
	}
	return &Function{name: name, typ: typ, params: params, src: src, prg: prg}, nil
}

func zeroValueFor(t *Type) any {
	switch {
	case t.IsBool():
		return false
	case t.IsInt():
		return int64(0)
	case t.IsReal():
		return float64(0)
	default:
		// user-typed arguments are passed as object names
		return ""
	}
}

func (f *Function) Name() string {
	return f.name
}

func (f *Function) Type() *Type {
	return f.typ
}

func (f *Function) Parameters() []*Parameter {
	res := make([]*Parameter, len(f.params))
	copy(res, f.params)
	return res
}

func (f *Function) Arity() int {
	return len(f.params)
}

func (f *Function) String() string {
	return f.name
}

// Call evaluates the function on constant arguments and returns the
// result as a constant expression.
func (f *Function) Call(args ...*Expr) (*Expr, error) {
	if len(args) != len(f.params) {
		return nil, fmt.Errorf("%w: %s expects %d args, got %d", ErrUsage, f.name, len(f.params), len(args))
	}
	env := make(map[string]any, len(args))
	for i, a := range args {
		v, err := constValue(a)
		if err != nil {
			return nil, fmt.Errorf("calling %s: %w", f.name, err)
		}
		env[f.params[i].Name()] = v
	}
	res, err := expr.Run(f.prg, env)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", f.name, err)
	}
	return constExpr(f, res)
}

func constValue(e *Expr) (any, error) {
	switch e.Kind {
	case BoolConstKind:
		return e.Bool, nil
	case IntConstKind:
		return e.Int, nil
	case RealConstKind:
		return e.Real, nil
	case ObjectKind:
		return e.Object.Name(), nil
	}
	return nil, fmt.Errorf("%w: non-constant argument %s", ErrUsage, e)
}

func constExpr(f *Function, res any) (*Expr, error) {
	switch {
	case f.typ.IsBool():
		b, ok := res.(bool)
		if !ok {
			return nil, fmt.Errorf("%s returned %T, want bool", f.name, res)
		}
		return Bool(b), nil
	case f.typ.IsInt():
		switch v := res.(type) {
		case int:
			return Int(int64(v)), nil
		case int64:
			return Int(v), nil
		case float64:
			return Int(int64(v)), nil
		}
		return nil, fmt.Errorf("%s returned %T, want int", f.name, res)
	case f.typ.IsReal():
		switch v := res.(type) {
		case int:
			return Real(float64(v)), nil
		case int64:
			return Real(float64(v)), nil
		case float64:
			return Real(v), nil
		}
		return nil, fmt.Errorf("%s returned %T, want real", f.name, res)
	}
	return nil, fmt.Errorf("%s has unsupported result type %s", f.name, f.typ)
}
