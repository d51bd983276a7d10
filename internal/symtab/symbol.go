// Package symtab implements the compiler's symbol table: a stack of
// lexical scopes used during name analysis to resolve identifiers and
// assign storage offsets, and consulted again by type check and code
// generation.
package symtab

import "github.com/cwbudde/mipc/internal/types"

// Kind tags the variant of a Symbol.
type Kind int

const (
	KindVar Kind = iota
	KindFn
	KindStructInstance
	KindStructDef
)

// WordSize is the size in bytes of every source-language value (int,
// bool, string address): one 32-bit word.
const WordSize = 4

// Symbol is the compiler's record for a single declaration.
type Symbol struct {
	Name     string
	Kind     Kind
	Type     types.Type
	Offset   int  // FP-relative offset for vars/formals; unused for globals
	IsGlobal bool

	// Fn only.
	ParamTypes []types.Type
	ParamSize  int // bytes occupied by the formals
	LocalSize  int // bytes occupied by the locals

	// StructInstance only: the declaring struct's name, resolved via a
	// global lookup to a StructDef symbol.
	StructName string

	// StructDef only: the struct body's own symbol table, holding field
	// symbols keyed by field name.
	Fields *Table
}
