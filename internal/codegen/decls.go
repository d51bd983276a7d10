package codegen

import (
	"fmt"

	"github.com/cwbudde/mipc/internal/ast"
	"github.com/cwbudde/mipc/internal/symtab"
)

// genGlobalVarDecl emits storage for a single top-level variable: a
// labeled, word-aligned, zero-initialized 4-byte cell. Struct-typed
// globals get the same single word (struct field storage is not
// generated; see the DotAccessExpr case of genExpr).
func (g *Generator) genGlobalVarDecl(v *ast.VarDecl) {
	sym := g.symbolOf(v)
	g.sink.Data()
	g.sink.Directive(".align 2")
	g.sink.Label(asmName(sym))
	g.sink.Directive(fmt.Sprintf(".space %d", symtab.WordSize))
	g.sink.Text()
}

// genFnDecl emits a function's label, prologue, body, and epilogue,
// following the frame layout in which the first formal sits at 0($fp),
// each later formal one word lower, and the saved RA/FP pair and then
// the locals sit below them.
func (g *Generator) genFnDecl(f *ast.FnDecl) {
	sym := g.symbolOf(f)
	isMain := sym.Name == "main"

	g.sink.Text()
	if isMain {
		g.sink.Directive(".globl main")
		g.sink.Label("main")
		g.sink.Label("__start")
	} else {
		g.sink.Label(asmName(sym))
	}

	g.push("$ra")
	g.push("$fp")

	frameSize := sym.LocalSize
	if frameSize > 0 {
		g.sink.Instr("subu", "$sp", "$sp", fmt.Sprintf("%d", frameSize))
	}
	g.sink.Instr("addu", "$fp", "$sp", fmt.Sprintf("%d", frameSize+8+sym.ParamSize))

	prevExit := g.exitLabel
	g.exitLabel = asmName(sym) + "_Exit"
	if isMain {
		g.exitLabel = "main_Exit"
	}

	g.genBlock(f.Body)

	g.sink.Label(g.exitLabel)
	raOffset := -sym.ParamSize
	g.sink.Instr("lw", "$ra", fmt.Sprintf("%d($fp)", raOffset))
	g.sink.Instr("addu", "$t0", "$fp", fmt.Sprintf("%d", -sym.ParamSize))
	g.sink.Instr("lw", "$fp", fmt.Sprintf("%d($fp)", -4-sym.ParamSize))
	g.sink.Instr("move", "$sp", "$t0")

	if isMain {
		g.sink.Instr("li", "$v0", "10")
		g.sink.Instr("syscall")
	} else {
		g.sink.Instr("jr", "$ra")
	}

	g.exitLabel = prevExit
}
