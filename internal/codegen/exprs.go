package codegen

import (
	"fmt"

	"github.com/cwbudde/mipc/internal/ast"
	"github.com/cwbudde/mipc/internal/symtab"
)

// push stores reg to the top of the stack and advances SP downward by
// one word, per the evaluation discipline every expression follows:
// its result is always left on top of the stack.
func (g *Generator) push(reg string) {
	g.sink.Instr("sw", reg, "0($sp)")
	g.sink.Instr("subu", "$sp", "$sp", fmt.Sprintf("%d", symtab.WordSize))
}

// pop reverses push: restores SP and loads the top word into reg.
func (g *Generator) pop(reg string) {
	g.sink.Instr("addu", "$sp", "$sp", fmt.Sprintf("%d", symtab.WordSize))
	g.sink.Instr("lw", reg, "0($sp)")
}

// genExpr emits code that leaves expr's value on top of the stack.
func (g *Generator) genExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		g.sink.Instr("li", "$t0", fmt.Sprintf("%d", e.Value))
		g.push("$t0")
	case *ast.BoolLiteral:
		v := 0
		if e.Value {
			v = 1
		}
		g.sink.Instr("li", "$t0", fmt.Sprintf("%d", v))
		g.push("$t0")
	case *ast.StringLiteral:
		g.genStringLiteral(e)
	case *ast.Identifier:
		g.genLoadIdentifier(e)
	case *ast.UnaryExpr:
		g.genUnaryExpr(e)
	case *ast.BinaryExpr:
		g.genBinaryExpr(e)
	case *ast.DotAccessExpr:
		// Struct field access is not code-generated; pushing a zero
		// keeps the stack-balance invariant for any containing
		// expression that (incorrectly, per the type checker) still
		// evaluates it.
		g.sink.Comment("struct field access: unsupported, no code emitted")
		g.sink.Instr("li", "$t0", "0")
		g.push("$t0")
	case *ast.CallExpr:
		g.genCallExpr(e)
	}
}

func (g *Generator) genStringLiteral(s *ast.StringLiteral) {
	label := g.newLabel()
	g.sink.Data()
	g.sink.Label(label)
	g.sink.Directive(fmt.Sprintf(".asciiz %q", s.Value))
	g.sink.Text()
	g.sink.Instr("la", "$t0", label)
	g.push("$t0")
}

func (g *Generator) genLoadIdentifier(id *ast.Identifier) {
	sym, ok := g.names.Links[id]
	if !ok {
		// Unresolved by name analysis: an upstream diagnostic was already
		// reported, and a driver that chose to run code generation anyway
		// gets a zero in place of the missing value rather than a crash.
		g.sink.Comment("unresolved identifier %q", id.Value)
		g.sink.Instr("li", "$t0", "0")
		g.push("$t0")
		return
	}
	g.sink.Instr("lw", "$t0", g.location(sym))
	g.push("$t0")
}

// location returns the operand string addressing sym's storage: a
// global label, or an FP-relative offset for a local/formal.
func (g *Generator) location(sym *symtab.Symbol) string {
	if sym.IsGlobal {
		return asmName(sym)
	}
	return fmt.Sprintf("%d($fp)", sym.Offset)
}

func (g *Generator) genUnaryExpr(u *ast.UnaryExpr) {
	switch u.Operator {
	case "-":
		g.genExpr(u.Operand)
		g.pop("$t0")
		g.sink.Instr("li", "$t1", "0")
		g.sink.Instr("sub", "$t0", "$t1", "$t0")
		g.push("$t0")
	case "!":
		g.genExpr(u.Operand)
		g.pop("$t0")
		g.sink.Instr("xor", "$t0", "$t0", "1")
		g.push("$t0")
	}
}

func (g *Generator) genBinaryExpr(b *ast.BinaryExpr) {
	switch b.Operator {
	case "&&":
		g.genShortCircuit(b, true)
	case "||":
		g.genShortCircuit(b, false)
	case "+", "-", "*", "/":
		g.genArith(b)
	case "<", "<=", ">", ">=", "==", "!=":
		g.genRelational(b)
	}
}

// genArith evaluates both operands and applies the corresponding
// native instruction. Subtraction and division are non-commutative, so
// the left operand must end up in $t0 and the right in $t1 regardless
// of which order they were pushed in; since the stack pops in reverse
// push order, the right operand (pushed second) is popped first.
func (g *Generator) genArith(b *ast.BinaryExpr) {
	g.genExpr(b.Left)
	g.genExpr(b.Right)
	g.pop("$t1") // right
	g.pop("$t0") // left
	switch b.Operator {
	case "+":
		g.sink.Instr("add", "$t0", "$t0", "$t1")
	case "-":
		g.sink.Instr("sub", "$t0", "$t0", "$t1")
	case "*":
		g.sink.Instr("mul", "$t0", "$t0", "$t1")
	case "/":
		g.sink.Instr("div", "$t0", "$t0", "$t1")
	}
	g.push("$t0")
}

func relBranch(op string) string {
	// The branch chosen jumps to the "false" label, so it is the
	// logical negation of the source operator.
	switch op {
	case "<":
		return "bge"
	case "<=":
		return "bgt"
	case ">":
		return "ble"
	case ">=":
		return "blt"
	case "==":
		return "bne"
	case "!=":
		return "beq"
	default:
		return "bne"
	}
}

func (g *Generator) genRelational(b *ast.BinaryExpr) {
	g.genExpr(b.Left)
	g.genExpr(b.Right)
	g.pop("$t1")
	g.pop("$t0")

	falseLabel := g.newLabel()
	doneLabel := g.newLabel()

	g.sink.Instr(relBranch(b.Operator), "$t0", "$t1", falseLabel)
	g.sink.Instr("li", "$t0", "1")
	g.push("$t0")
	g.sink.Instr("b", doneLabel)
	g.sink.Label(falseLabel)
	g.sink.Instr("li", "$t0", "0")
	g.push("$t0")
	g.sink.Label(doneLabel)
}

// genShortCircuit implements && (isAnd) and || by evaluating only the
// left operand unconditionally; the right operand is generated inside
// the rhs branch, so it is skipped entirely at runtime when the left
// operand already determines the result.
func (g *Generator) genShortCircuit(b *ast.BinaryExpr, isAnd bool) {
	g.genExpr(b.Left)
	g.pop("$t0")

	rhsLabel := g.newLabel()
	doneLabel := g.newLabel()

	// Only a left value that leaves the result open reaches the rhs:
	// true for &&, false for ||.
	rhsValue := "1"
	if !isAnd {
		rhsValue = "0"
	}
	g.sink.Instr("beq", "$t0", rhsValue, rhsLabel)
	g.push("$t0")
	g.sink.Instr("b", doneLabel)
	g.sink.Label(rhsLabel)
	g.genExpr(b.Right)
	g.sink.Label(doneLabel)
}

// genCallExpr compiles a call used as an expression: each argument is
// generated in order (forming the argument area on the stack), the
// callee is jumped to, and its return value in $v0 is pushed to
// restore the "every expression leaves a value on the stack" invariant.
func (g *Generator) genCallExpr(call *ast.CallExpr) {
	for _, arg := range call.Args {
		g.genExpr(arg)
	}

	fnSym, ok := g.names.Links[call.Fn]
	if !ok {
		g.sink.Comment("unresolved call to %q", call.Fn.Value)
		g.sink.Instr("li", "$v0", "0")
		g.push("$v0")
		return
	}
	g.sink.Instr("jal", asmName(fnSym))
	g.push("$v0")
}
