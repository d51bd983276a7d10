// Package ast defines the Abstract Syntax Tree node types produced by the
// parser and consumed by the three semantic passes (name analysis, type
// check, code generation). Nodes are plain data; passes attach derived
// information (symbol links, inferred types) in side tables rather than by
// mutating the tree, so the AST stays immutable after parsing.
package ast

import (
	"bytes"

	"github.com/cwbudde/mipc/internal/lexer"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// TokenLiteral returns the literal text of the token the node starts with.
	TokenLiteral() string
	// String renders the node back to source-like text, for debugging.
	String() string
	// Pos returns the node's source position, for diagnostics.
	Pos() lexer.Position
}

// Expression is a node that yields a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Decl is a top-level declaration: a global variable, a function, or a
// struct definition.
type Decl interface {
	Node
	declNode()
}

// Program is the root of the AST: an ordered list of top-level declarations.
type Program struct {
	Decls []Decl
}

func (p *Program) TokenLiteral() string {
	if len(p.Decls) > 0 {
		return p.Decls[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() lexer.Position {
	if len(p.Decls) > 0 {
		return p.Decls[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, d := range p.Decls {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	return out.String()
}

// TypeNode names a type as written in source: a primitive keyword
// ("int", "bool", "void", "string") or "struct Name".
type TypeNode struct {
	Token      lexer.Token // the leading type keyword token
	Name       string      // "int", "bool", "void", "string", or "struct"
	StructName string      // populated when Name == "struct"
}

func (t *TypeNode) TokenLiteral() string { return t.Token.Literal }
func (t *TypeNode) Pos() lexer.Position  { return t.Token.Pos }
func (t *TypeNode) String() string {
	if t.Name == "struct" {
		return "struct " + t.StructName
	}
	return t.Name
}
