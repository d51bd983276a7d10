package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/cwbudde/mipc/internal/lexer"
)

// Identifier is a use of a name: a variable, a function, or a struct type
// name. Name analysis links it to the symbol it resolves to in a side
// table; the node itself never holds that link directly.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// IntLiteral is an integer literal such as "42".
type IntLiteral struct {
	Token lexer.Token
	Value int64
}

func (il *IntLiteral) expressionNode()      {}
func (il *IntLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntLiteral) Pos() lexer.Position  { return il.Token.Pos }
func (il *IntLiteral) String() string       { return strconv.FormatInt(il.Value, 10) }

// StringLiteral is a string literal such as "\"hi\"".
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) Pos() lexer.Position  { return sl.Token.Pos }
func (sl *StringLiteral) String() string       { return strconv.Quote(sl.Value) }

// BoolLiteral is "true" or "false".
type BoolLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BoolLiteral) expressionNode()      {}
func (bl *BoolLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BoolLiteral) Pos() lexer.Position  { return bl.Token.Pos }
func (bl *BoolLiteral) String() string       { return bl.Token.Literal }

// BinaryExpr is a binary operator application: arithmetic, relational,
// equality, or logical.
type BinaryExpr struct {
	Token    lexer.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpr) expressionNode()      {}
func (be *BinaryExpr) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpr) Pos() lexer.Position  { return be.Token.Pos }
func (be *BinaryExpr) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(be.Left.String())
	out.WriteString(" " + be.Operator + " ")
	out.WriteString(be.Right.String())
	out.WriteString(")")
	return out.String()
}

// UnaryExpr is a prefix unary operator: "-e" or "!e".
type UnaryExpr struct {
	Token    lexer.Token
	Operator string
	Operand  Expression
}

func (ue *UnaryExpr) expressionNode()      {}
func (ue *UnaryExpr) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpr) Pos() lexer.Position  { return ue.Token.Pos }
func (ue *UnaryExpr) String() string       { return "(" + ue.Operator + ue.Operand.String() + ")" }

// DotAccessExpr is a struct field access: "e.field". It is usable both as
// an expression (a field read) and, when it appears on the left of an
// assignment or as the target of ++/--, as an assignable location.
type DotAccessExpr struct {
	Token lexer.Token // the '.' token
	Recv  Expression
	Field *Identifier
}

func (d *DotAccessExpr) expressionNode()      {}
func (d *DotAccessExpr) TokenLiteral() string { return d.Token.Literal }
func (d *DotAccessExpr) Pos() lexer.Position  { return d.Token.Pos }
func (d *DotAccessExpr) String() string       { return d.Recv.String() + "." + d.Field.String() }

// CallExpr is a function call used as an expression: "f(a, b)".
type CallExpr struct {
	Token  lexer.Token // the '(' token
	Fn     *Identifier
	Args   []Expression
}

func (c *CallExpr) expressionNode()      {}
func (c *CallExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpr) Pos() lexer.Position  { return c.Token.Pos }
func (c *CallExpr) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Fn.String() + "(" + strings.Join(parts, ", ") + ")"
}
