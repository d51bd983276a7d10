package ast

import (
	"bytes"
	"strings"

	"github.com/cwbudde/mipc/internal/lexer"
)

// VarDecl declares a variable: "T x;". It appears both as a top-level
// global declaration and as a local declaration inside a function or block.
type VarDecl struct {
	Token lexer.Token // the type token that starts the declaration
	Type  *TypeNode
	Name  *Identifier
}

func (v *VarDecl) declNode()              {}
func (v *VarDecl) statementNode()         {}
func (v *VarDecl) TokenLiteral() string   { return v.Token.Literal }
func (v *VarDecl) Pos() lexer.Position    { return v.Token.Pos }
func (v *VarDecl) String() string         { return v.Type.String() + " " + v.Name.String() + ";" }

// Formal is a single function parameter declaration: "T x".
type Formal struct {
	Token lexer.Token
	Type  *TypeNode
	Name  *Identifier
}

func (f *Formal) TokenLiteral() string { return f.Token.Literal }
func (f *Formal) Pos() lexer.Position  { return f.Token.Pos }
func (f *Formal) String() string       { return f.Type.String() + " " + f.Name.String() }

// FnDecl declares a function: "T f(formals) { body }".
type FnDecl struct {
	Token     lexer.Token // the return-type token
	RetType   *TypeNode
	Name      *Identifier
	Formals   []*Formal
	Body      *Block
}

func (f *FnDecl) declNode()            {}
func (f *FnDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FnDecl) Pos() lexer.Position  { return f.Token.Pos }
func (f *FnDecl) String() string {
	var out bytes.Buffer
	parts := make([]string, len(f.Formals))
	for i, p := range f.Formals {
		parts[i] = p.String()
	}
	out.WriteString(f.RetType.String())
	out.WriteString(" ")
	out.WriteString(f.Name.String())
	out.WriteString("(")
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(") ")
	out.WriteString(f.Body.String())
	return out.String()
}

// StructDecl declares a struct type: "struct S { fields }".
type StructDecl struct {
	Token  lexer.Token
	Name   *Identifier
	Fields []*VarDecl
}

func (s *StructDecl) declNode()            {}
func (s *StructDecl) TokenLiteral() string { return s.Token.Literal }
func (s *StructDecl) Pos() lexer.Position  { return s.Token.Pos }
func (s *StructDecl) String() string {
	var out bytes.Buffer
	out.WriteString("struct ")
	out.WriteString(s.Name.String())
	out.WriteString(" {\n")
	for _, f := range s.Fields {
		out.WriteString("  " + f.String() + "\n")
	}
	out.WriteString("};")
	return out.String()
}
