package codegen

import (
	"github.com/cwbudde/mipc/internal/ast"
)

func (g *Generator) genBlock(b *ast.Block) {
	for _, s := range b.Stmts {
		g.genStmt(s)
	}
}

func (g *Generator) genStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		g.genAssignStmt(s)
	case *ast.IfStmt:
		g.genIfStmt(s)
	case *ast.WhileStmt:
		g.genWhileStmt(s)
	case *ast.RepeatStmt:
		g.genRepeatStmt(s)
	case *ast.CallStmt:
		g.genExpr(s.Call)
		g.pop("$t0") // discard the call's result
	case *ast.ReadStmt:
		g.genReadStmt(s)
	case *ast.WriteStmt:
		g.genWriteStmt(s)
	case *ast.ReturnStmt:
		g.genReturnStmt(s)
	case *ast.IncDecStmt:
		g.genIncDecStmt(s)
	}
}

// genAssignStmt evaluates the right-hand side and stores it to the
// left-hand side's location. A struct-typed location emits nothing
// beyond evaluating the right-hand side for its (discarded) side
// effects, per the declared non-support for struct code generation.
func (g *Generator) genAssignStmt(s *ast.AssignStmt) {
	g.genExpr(s.Value)
	g.pop("$t0")
	if dot, ok := s.Loc.(*ast.DotAccessExpr); ok {
		g.sink.Comment("struct field assignment to %s: unsupported, no code emitted", dot.String())
		return
	}
	id := s.Loc.(*ast.Identifier)
	sym, ok := g.names.Links[id]
	if !ok {
		g.sink.Comment("assignment to unresolved identifier %q", id.Value)
		return
	}
	g.sink.Instr("sw", "$t0", g.location(sym))
}

func (g *Generator) genIfStmt(s *ast.IfStmt) {
	g.genExpr(s.Cond)
	g.pop("$t0")

	if s.Else == nil {
		doneLabel := g.newLabel()
		g.sink.Instr("beq", "$t0", "0", doneLabel)
		g.genBlock(s.Then)
		g.sink.Label(doneLabel)
		return
	}

	elseLabel := g.newLabel()
	doneLabel := g.newLabel()
	g.sink.Instr("beq", "$t0", "0", elseLabel)
	g.genBlock(s.Then)
	g.sink.Instr("b", doneLabel)
	g.sink.Label(elseLabel)
	g.genBlock(s.Else)
	g.sink.Label(doneLabel)
}

func (g *Generator) genWhileStmt(s *ast.WhileStmt) {
	loopLabel := g.newLabel()
	doneLabel := g.newLabel()

	g.sink.Label(loopLabel)
	g.genExpr(s.Cond)
	g.pop("$t0")
	g.sink.Instr("beq", "$t0", "0", doneLabel)
	g.genBlock(s.Body)
	g.sink.Instr("b", loopLabel)
	g.sink.Label(doneLabel)
}

// genRepeatStmt evaluates the count expression once into the $t2
// register, used as the loop counter, then runs the body that many
// times. The specification leaves repeat-statement code generation
// optional; this generator completes it, modeled as "evaluate the
// count once, loop that many times."
func (g *Generator) genRepeatStmt(s *ast.RepeatStmt) {
	g.genExpr(s.Count)
	g.pop("$t2")

	loopLabel := g.newLabel()
	doneLabel := g.newLabel()

	g.sink.Label(loopLabel)
	g.sink.Instr("ble", "$t2", "0", doneLabel)
	g.genBlock(s.Body)
	g.sink.Instr("subu", "$t2", "$t2", "1")
	g.sink.Instr("b", loopLabel)
	g.sink.Label(doneLabel)
}

func (g *Generator) genReadStmt(s *ast.ReadStmt) {
	g.sink.Instr("li", "$v0", "5")
	g.sink.Instr("syscall")

	if dot, ok := s.Loc.(*ast.DotAccessExpr); ok {
		g.sink.Comment("struct field read into %s: unsupported, no code emitted", dot.String())
		return
	}
	id := s.Loc.(*ast.Identifier)
	sym, ok := g.names.Links[id]
	if !ok {
		g.sink.Comment("read into unresolved identifier %q", id.Value)
		return
	}
	g.sink.Instr("sw", "$v0", g.location(sym))
}

// genWriteStmt picks the I/O syscall number from the operand's static
// type, as recorded by type check: 1 for int/bool, 4 for string.
func (g *Generator) genWriteStmt(s *ast.WriteStmt) {
	g.genExpr(s.Exp)
	g.pop("$a0")

	t := g.typeOf(s.Exp)
	syscallNo := "1"
	if t.IsString() {
		syscallNo = "4"
	}
	g.sink.Instr("li", "$v0", syscallNo)
	g.sink.Instr("syscall")
}

func (g *Generator) genReturnStmt(s *ast.ReturnStmt) {
	if s.Exp != nil {
		g.genExpr(s.Exp)
		g.pop("$v0")
	}
	g.sink.Instr("b", g.exitLabel)
}

// genIncDecStmt evaluates the target's current value, adjusts it by
// one, and stores the result back to the same location. Whether this
// is pre- or post-increment is immaterial: the adjusted value is never
// itself used as an expression result.
func (g *Generator) genIncDecStmt(s *ast.IncDecStmt) {
	if dot, ok := s.Loc.(*ast.DotAccessExpr); ok {
		g.sink.Comment("struct field %s%s: unsupported, no code emitted", dot.String(), s.Operator)
		return
	}

	id := s.Loc.(*ast.Identifier)
	sym, ok := g.names.Links[id]
	if !ok {
		g.sink.Comment("%s on unresolved identifier %q", s.Operator, id.Value)
		return
	}
	loc := g.location(sym)

	g.sink.Instr("lw", "$t0", loc)
	delta := "1"
	if s.Operator == "--" {
		delta = "-1"
	}
	g.sink.Instr("addu", "$t0", "$t0", delta)
	g.sink.Instr("sw", "$t0", loc)
}
