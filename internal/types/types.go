// Package types implements the source language's closed type lattice:
// the primitive types, struct instance/definition types, function types,
// and the Error sentinel used to suppress cascading diagnostics.
package types

import "fmt"

// Kind tags the variant of a Type.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindVoid
	KindString
	KindStruct    // an instance of a named struct
	KindStructDef // the struct name itself, used as a type constructor
	KindFn
	KindError
)

// Type is a single entry in the closed type lattice. Use the package-level
// singletons (Int, Bool, Void, String, Error) for primitives and the
// constructors (NewStruct, NewStructDef, NewFn) for the rest.
type Type struct {
	kind    Kind
	name    string // struct/struct-def declaration name
	params  []Type // Fn: parameter types
	ret     *Type  // Fn: return type
}

var (
	Int    = Type{kind: KindInt}
	Bool   = Type{kind: KindBool}
	Void   = Type{kind: KindVoid}
	String = Type{kind: KindString}
	Error  = Type{kind: KindError}
)

// NewStruct returns the type of an instance of the struct named name.
func NewStruct(name string) Type { return Type{kind: KindStruct, name: name} }

// NewStructDef returns the type of the struct name itself (a type
// constructor, not a value type).
func NewStructDef(name string) Type { return Type{kind: KindStructDef, name: name} }

// NewFn returns the type of a function with the given parameter types and
// return type.
func NewFn(params []Type, ret Type) Type {
	r := ret
	return Type{kind: KindFn, params: params, ret: &r}
}

func (t Type) Kind() Kind { return t.kind }

func (t Type) IsInt() bool       { return t.kind == KindInt }
func (t Type) IsBool() bool      { return t.kind == KindBool }
func (t Type) IsVoid() bool      { return t.kind == KindVoid }
func (t Type) IsString() bool    { return t.kind == KindString }
func (t Type) IsStruct() bool    { return t.kind == KindStruct }
func (t Type) IsStructDef() bool { return t.kind == KindStructDef }
func (t Type) IsFn() bool        { return t.kind == KindFn }
func (t Type) IsError() bool     { return t.kind == KindError }

// StructName returns the declaring struct's name for a Struct or
// StructDef type; it is meaningless for other kinds.
func (t Type) StructName() string { return t.name }

// Params returns a Fn type's parameter types.
func (t Type) Params() []Type { return t.params }

// Ret returns a Fn type's return type.
func (t Type) Ret() Type {
	if t.ret == nil {
		return Void
	}
	return *t.ret
}

// Equal implements the lattice's equality rule: primitives compare by
// kind; Struct(a) == Struct(b) iff they name the same declaration. Fn and
// StructDef values are never equatable at the source level; this method
// exists for internal bookkeeping (e.g. matching a declared return type
// against itself) and compares them structurally.
func (t Type) Equal(other Type) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case KindStruct, KindStructDef:
		return t.name == other.name
	case KindFn:
		if len(t.params) != len(other.params) || !t.Ret().Equal(other.Ret()) {
			return false
		}
		for i := range t.params {
			if !t.params[i].Equal(other.params[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.kind {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindVoid:
		return "void"
	case KindString:
		return "string"
	case KindStruct:
		return "struct " + t.name
	case KindStructDef:
		return "struct-name " + t.name
	case KindFn:
		return fmt.Sprintf("fn(%v) -> %v", t.params, t.Ret())
	case KindError:
		return "<error>"
	default:
		return "<unknown>"
	}
}
