// Package sema implements the two front-end semantic passes: name
// analysis (scope construction, identifier resolution, offset
// assignment) and type checking. Each pass reads the AST and an upstream
// diag.Sink, and produces a side table of derived information for the
// next pass to consume — the AST itself is never mutated.
package sema

import (
	"github.com/cwbudde/mipc/internal/ast"
	"github.com/cwbudde/mipc/internal/symtab"
	"github.com/cwbudde/mipc/internal/types"
)

// NameInfo is the output of name analysis.
type NameInfo struct {
	// Links maps every resolved identifier *use* (including a
	// declaration's own name, for convenience) to the symbol it refers
	// to. An identifier with no entry here was diagnosed as undeclared.
	Links map[*ast.Identifier]*symtab.Symbol

	// Decls maps every declaration node to the symbol it introduced.
	// Populated even when the declaration was rejected as a duplicate,
	// so later passes always have a symbol to read from.
	Decls map[ast.Node]*symtab.Symbol

	// StructDefs maps a struct name to its struct-def symbol, for
	// resolving field access during type check.
	StructDefs map[string]*symtab.Symbol

	// HasMain is true iff a function named "main" was declared at the
	// program's outer scope.
	HasMain bool
}

func newNameInfo() *NameInfo {
	return &NameInfo{
		Links:      make(map[*ast.Identifier]*symtab.Symbol),
		Decls:      make(map[ast.Node]*symtab.Symbol),
		StructDefs: make(map[string]*symtab.Symbol),
	}
}

// TypeInfo is the output of type checking.
type TypeInfo struct {
	// Types maps every expression node to its inferred type.
	Types map[ast.Expression]types.Type

	// FieldLinks maps a struct field access to the field symbol it
	// resolved to inside the struct's field table.
	FieldLinks map[*ast.DotAccessExpr]*symtab.Symbol
}

func newTypeInfo() *TypeInfo {
	return &TypeInfo{
		Types:      make(map[ast.Expression]types.Type),
		FieldLinks: make(map[*ast.DotAccessExpr]*symtab.Symbol),
	}
}

// TypeOf returns the type checker's inferred type for expr, or the Error
// sentinel if expr was never type-checked (a programmer bug).
func (ti *TypeInfo) TypeOf(expr ast.Expression) types.Type {
	if t, ok := ti.Types[expr]; ok {
		return t
	}
	return types.Error
}
