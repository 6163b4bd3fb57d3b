package ir

import "fmt"

type typeKind int

const (
	boolKind typeKind = iota
	intKind
	realKind
	userKind
)

// Type is the value type of an expression or fluent: boolean, integer,
// real, or a user type.
type Type struct {
	kind typeKind
	user *UserType
}

var (
	BoolType = &Type{kind: boolKind}
	IntType  = &Type{kind: intKind}
	RealType = &Type{kind: realKind}
)

func (t *Type) IsBool() bool { return t.kind == boolKind }
func (t *Type) IsInt() bool  { return t.kind == intKind }
func (t *Type) IsReal() bool { return t.kind == realKind }
func (t *Type) IsUser() bool { return t.kind == userKind }

// IsNumeric reports whether t is an integer or real type.
func (t *Type) IsNumeric() bool {
	return t.kind == intKind || t.kind == realKind
}

// User returns the user type, or nil for built-in types.
func (t *Type) User() *UserType {
	return t.user
}

func (t *Type) Equal(o *Type) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	return t.kind == o.kind && t.user == o.user
}

func (t *Type) String() string {
	switch t.kind {
	case boolKind:
		return "bool"
	case intKind:
		return "int"
	case realKind:
		return "real"
	case userKind:
		return t.user.Name()
	}
	return "<unknown type>"
}

// UserType is a named, possibly hierarchical object type. User types are
// created through an Environment and compared by identity.
type UserType struct {
	name   string
	parent *UserType
	typ    *Type
}

func (u *UserType) Name() string {
	return u.name
}

func (u *UserType) Parent() *UserType {
	return u.parent
}

// AsType returns the *Type wrapping this user type. The result is
// interned: every call returns the same pointer.
func (u *UserType) AsType() *Type {
	return u.typ
}

// IsSubtypeOf reports whether u is v or a descendant of v.
func (u *UserType) IsSubtypeOf(v *UserType) bool {
	for t := u; t != nil; t = t.parent {
		if t == v {
			return true
		}
	}
	return false
}

func (u *UserType) String() string {
	return u.name
}

// Environment registers the user types of a modeling session. It is
// passed explicitly wherever types are created or looked up; there is no
// ambient global registry.
type Environment struct {
	byName map[string]*UserType
	order  []*UserType
}

func NewEnvironment() *Environment {
	return &Environment{byName: map[string]*UserType{}}
}

// NewUserType creates and registers a user type. parent may be nil.
func (e *Environment) NewUserType(name string, parent *UserType) (*UserType, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty user type name", ErrUsage)
	}
	if _, ok := e.byName[name]; ok {
		return nil, fmt.Errorf("%w: duplicate user type %q", ErrUsage, name)
	}
	u := &UserType{name: name, parent: parent}
	u.typ = &Type{kind: userKind, user: u}
	e.byName[name] = u
	e.order = append(e.order, u)
	return u, nil
}

// UserTypeByName returns the registered user type, or nil.
func (e *Environment) UserTypeByName(name string) *UserType {
	return e.byName[name]
}

// UserTypes returns all registered user types in creation order.
func (e *Environment) UserTypes() []*UserType {
	res := make([]*UserType, len(e.order))
	copy(res, e.order)
	return res
}
