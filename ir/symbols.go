package ir

import (
	"fmt"
	"strings"
)

// Object is a named member of a user type's domain.
type Object struct {
	name  string
	utype *UserType
}

func NewObject(name string, utype *UserType) *Object {
	return &Object{name: name, utype: utype}
}

func (o *Object) Name() string {
	return o.name
}

func (o *Object) UserType() *UserType {
	return o.utype
}

func (o *Object) String() string {
	return o.name
}

// Parameter is a typed formal parameter of an action or fluent.
type Parameter struct {
	name string
	typ  *Type
}

func NewParameter(name string, typ *Type) *Parameter {
	return &Parameter{name: name, typ: typ}
}

func (p *Parameter) Name() string {
	return p.name
}

func (p *Parameter) Type() *Type {
	return p.typ
}

func (p *Parameter) String() string {
	return p.name
}

// Variable is a typed quantifier variable.
type Variable struct {
	name string
	typ  *Type
}

func NewVariable(name string, typ *Type) *Variable {
	return &Variable{name: name, typ: typ}
}

func (v *Variable) Name() string {
	return v.name
}

func (v *Variable) Type() *Type {
	return v.typ
}

func (v *Variable) String() string {
	return v.name
}

// Fluent is a named, possibly parameterized state variable. Its
// signature is fixed at construction; compilers that need a different
// signature create a new fluent.
type Fluent struct {
	name   string
	typ    *Type
	params []*Parameter
}

func NewFluent(name string, typ *Type, params ...*Parameter) *Fluent {
	return &Fluent{name: name, typ: typ, params: params}
}

func (f *Fluent) Name() string {
	return f.name
}

func (f *Fluent) Type() *Type {
	return f.typ
}

func (f *Fluent) Parameters() []*Parameter {
	res := make([]*Parameter, len(f.params))
	copy(res, f.params)
	return res
}

func (f *Fluent) Arity() int {
	return len(f.params)
}

func (f *Fluent) String() string {
	if len(f.params) == 0 {
		return fmt.Sprintf("%s %s", f.typ, f.name)
	}
	parts := make([]string, len(f.params))
	for i, p := range f.params {
		parts[i] = fmt.Sprintf("%s: %s", p.Name(), p.Type())
	}
	return fmt.Sprintf("%s %s(%s)", f.typ, f.name, strings.Join(parts, ", "))
}
