package parser

import (
	"testing"

	"github.com/cwbudde/mipc/internal/ast"
	"github.com/cwbudde/mipc/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	return prog
}

func TestParseGlobalVarDecl(t *testing.T) {
	prog := parseProgram(t, "int x;")
	if len(prog.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(prog.Decls))
	}
	decl, ok := prog.Decls[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("expected *ast.VarDecl, got %T", prog.Decls[0])
	}
	if decl.Type.Name != "int" || decl.Name.Value != "x" {
		t.Fatalf("unexpected decl: %+v", decl)
	}
}

func TestParseStructDeclVsStructVar(t *testing.T) {
	prog := parseProgram(t, `
struct Point { int x; int y; }
struct Point p;
`)
	if len(prog.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(prog.Decls))
	}
	sd, ok := prog.Decls[0].(*ast.StructDecl)
	if !ok || sd.Name.Value != "Point" || len(sd.Fields) != 2 {
		t.Fatalf("unexpected struct decl: %+v", prog.Decls[0])
	}
	vd, ok := prog.Decls[1].(*ast.VarDecl)
	if !ok || vd.Type.Name != "struct" || vd.Type.StructName != "Point" {
		t.Fatalf("unexpected var decl: %+v", prog.Decls[1])
	}
}

func TestParseFunctionWithFormalsAndBody(t *testing.T) {
	prog := parseProgram(t, `
int add(int a, int b) {
	return a + b;
}
`)
	fn, ok := prog.Decls[0].(*ast.FnDecl)
	if !ok {
		t.Fatalf("expected *ast.FnDecl, got %T", prog.Decls[0])
	}
	if fn.Name.Value != "add" || len(fn.Formals) != 2 {
		t.Fatalf("unexpected function: %+v", fn)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fn.Body.Stmts))
	}
	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", fn.Body.Stmts[0])
	}
	bin, ok := ret.Exp.(*ast.BinaryExpr)
	if !ok || bin.Operator != "+" {
		t.Fatalf("unexpected return expression: %+v", ret.Exp)
	}
}

func TestParseIfElseWhileRepeat(t *testing.T) {
	prog := parseProgram(t, `
void main() {
	int x;
	if (x < 1) {
		x = 1;
	} else {
		x = 2;
	}
	while (x < 10) {
		x++;
	}
	repeat (3) {
		x--;
	}
}
`)
	fn := prog.Decls[0].(*ast.FnDecl)
	stmts := fn.Body.Stmts
	if _, ok := stmts[0].(*ast.IfStmt); !ok {
		t.Fatalf("expected IfStmt, got %T", stmts[0])
	}
	if _, ok := stmts[1].(*ast.WhileStmt); !ok {
		t.Fatalf("expected WhileStmt, got %T", stmts[1])
	}
	if _, ok := stmts[2].(*ast.RepeatStmt); !ok {
		t.Fatalf("expected RepeatStmt, got %T", stmts[2])
	}
}

func TestParseCallStatementAndExpression(t *testing.T) {
	prog := parseProgram(t, `
int f(int a) {
	return a;
}
void main() {
	int y;
	f(1);
	y = f(2) + 3;
}
`)
	main := prog.Decls[1].(*ast.FnDecl)
	if _, ok := main.Body.Stmts[0].(*ast.CallStmt); !ok {
		t.Fatalf("expected CallStmt, got %T", main.Body.Stmts[0])
	}
	assign := main.Body.Stmts[1].(*ast.AssignStmt)
	bin := assign.Value.(*ast.BinaryExpr)
	if _, ok := bin.Left.(*ast.CallExpr); !ok {
		t.Fatalf("expected CallExpr on left of +, got %T", bin.Left)
	}
}

func TestParseDotAccessAndIO(t *testing.T) {
	prog := parseProgram(t, `
struct Point { int x; }
void main() {
	struct Point p;
	cin >> p.x;
	cout << p.x;
	p.x++;
}
`)
	main := prog.Decls[1].(*ast.FnDecl)
	read := main.Body.Stmts[0].(*ast.ReadStmt)
	if _, ok := read.Loc.(*ast.DotAccessExpr); !ok {
		t.Fatalf("expected DotAccessExpr loc, got %T", read.Loc)
	}
	write := main.Body.Stmts[1].(*ast.WriteStmt)
	if _, ok := write.Exp.(*ast.DotAccessExpr); !ok {
		t.Fatalf("expected DotAccessExpr exp, got %T", write.Exp)
	}
	incdec := main.Body.Stmts[2].(*ast.IncDecStmt)
	if incdec.Operator != "++" {
		t.Fatalf("expected ++, got %s", incdec.Operator)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	prog := parseProgram(t, `
bool main() {
	bool b;
	b = 1 + 2 * 3 == 7 && !false || true;
	return b;
}
`)
	main := prog.Decls[0].(*ast.FnDecl)
	assign := main.Body.Stmts[0].(*ast.AssignStmt)
	top := assign.Value.(*ast.BinaryExpr)
	if top.Operator != "||" {
		t.Fatalf("expected top-level operator ||, got %s", top.Operator)
	}
}
