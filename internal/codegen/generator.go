// Package codegen implements the final compiler pass: emitting SPIM/MIPS
// assembly text for a name-analyzed, type-checked program. It is a tree
// walker over the same AST name analysis and type check already
// annotated via their side tables; code generation never mutates those
// tables, only reads them.
package codegen

import (
	"fmt"

	"github.com/cwbudde/mipc/internal/ast"
	"github.com/cwbudde/mipc/internal/sema"
	"github.com/cwbudde/mipc/internal/symtab"
	"github.com/cwbudde/mipc/internal/types"
)

// Generator holds the mutable state threaded through a single
// compilation's worth of code generation: the output sink, a
// monotonically increasing label counter, and the current function's
// exit label (so nested return statements can reach it). None of this
// state survives past a single Generate call.
type Generator struct {
	sink       *Sink
	names      *sema.NameInfo
	types      *sema.TypeInfo
	labelCount int
	exitLabel  string
}

// NewGenerator constructs a code generator over the given semantic
// analysis results.
func NewGenerator(names *sema.NameInfo, typeInfo *sema.TypeInfo) *Generator {
	return &Generator{sink: NewSink(), names: names, types: typeInfo}
}

// Generate emits assembly text for prog and returns it. prog must
// already have been through name analysis and type check; Generate
// does not check whether they reported diagnostics — that decision
// belongs to the driver, which by default still generates code for an
// ill-typed program.
func Generate(prog *ast.Program, names *sema.NameInfo, typeInfo *sema.TypeInfo) string {
	g := NewGenerator(names, typeInfo)
	g.genProgram(prog)
	return g.sink.String()
}

func (g *Generator) genProgram(prog *ast.Program) {
	for _, d := range prog.Decls {
		if v, ok := d.(*ast.VarDecl); ok {
			g.genGlobalVarDecl(v)
		}
	}

	for _, d := range prog.Decls {
		if f, ok := d.(*ast.FnDecl); ok {
			g.sink.Blank()
			g.genFnDecl(f)
		}
	}
}

// newLabel returns a fresh control-flow label, unique within this
// Generator's output.
func (g *Generator) newLabel() string {
	l := fmt.Sprintf(".L%d", g.labelCount)
	g.labelCount++
	return l
}

// symbolOf looks up the symbol a declaration node was given by name
// analysis. It is a thin, panicking wrapper: by the time code
// generation runs, every declaration reachable here was successfully
// analyzed, so a miss is a programmer bug in pass wiring, not a source
// error.
func (g *Generator) symbolOf(node ast.Node) *symtab.Symbol {
	sym, ok := g.names.Decls[node]
	if !ok {
		panic(fmt.Sprintf("codegen: no symbol recorded for %T", node))
	}
	return sym
}

// asmName returns the assembler-visible name for a global variable or
// function symbol: the declared name prefixed with "_", except "main"
// which is never prefixed.
func asmName(sym *symtab.Symbol) string {
	if sym.Name == "main" {
		return "main"
	}
	return "_" + sym.Name
}

func (g *Generator) typeOf(expr ast.Expression) types.Type {
	return g.types.TypeOf(expr)
}
