package sema

import (
	"testing"

	"github.com/cwbudde/mipc/internal/ast"
	"github.com/cwbudde/mipc/internal/diag"
	"github.com/cwbudde/mipc/internal/lexer"
	"github.com/cwbudde/mipc/internal/parser"
)

// typeCheck parses src, runs name analysis (failing the test if it
// diagnoses anything — those cases belong in nameresolve_test.go), then
// runs type check and returns its diagnostics for inspection.
func typeCheck(t *testing.T, src string) (*ast.Program, *TypeInfo, *diag.CollectingSink) {
	t.Helper()

	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}

	sink := diag.NewCollectingSink(src, "t.src")
	names := NameAnalysis(prog, sink)
	if sink.FatalCount() != 0 {
		t.Fatalf("unexpected name-analysis diagnostics: %s", sink.Format())
	}

	info := TypeCheck(prog, names, sink)
	return prog, info, sink
}

func TestWellTypedProgramHasNoTypeCheckDiagnostics(t *testing.T) {
	_, _, sink := typeCheck(t, `
int add(int a, int b) {
	return a + b;
}
void main() {
	int x;
	x = add(1, 2);
	cout << x;
}
`)
	if sink.FatalCount() != 0 {
		t.Fatalf("unexpected diagnostics: %s", sink.Format())
	}
}

func TestTypeMismatchScenario(t *testing.T) {
	// Scenario 6: assigning a bool to an int-typed location.
	_, _, sink := typeCheck(t, `
int main() {
	int x;
	x = true;
}
`)
	if sink.FatalCount() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %s", sink.FatalCount(), sink.Format())
	}
	if sink.Diagnostics()[0].Message != "Type mismatch in assignment" {
		t.Errorf("expected a type-mismatch diagnostic, got %q", sink.Diagnostics()[0].Message)
	}
}

func TestStructInstanceCannotBeAssigned(t *testing.T) {
	_, _, sink := typeCheck(t, `
struct S { int a; }
int main() {
	struct S x;
	struct S y;
	x = y;
}
`)
	if sink.FatalCount() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %s", sink.FatalCount(), sink.Format())
	}
	if sink.Diagnostics()[0].Message != "Cannot assign a function, struct name, or struct instance" {
		t.Errorf("expected a struct-instance assignment diagnostic, got %q", sink.Diagnostics()[0].Message)
	}
}

func TestStructInstanceCannotBeCompared(t *testing.T) {
	_, _, sink := typeCheck(t, `
struct S { int a; }
int main() {
	struct S x;
	struct S y;
	bool b;
	b = (x == y);
}
`)
	var messages []string
	for _, d := range sink.Diagnostics() {
		messages = append(messages, d.Message)
	}
	if len(messages) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", messages)
	}
	want := "Equality operands must not be void, a function, a struct name, or a struct instance"
	if messages[0] != want {
		t.Errorf("expected %q, got %q", want, messages[0])
	}
}

func TestBoolIsAValidCinTarget(t *testing.T) {
	_, _, sink := typeCheck(t, `
bool b;
int main() {
	cin >> b;
}
`)
	if sink.FatalCount() != 0 {
		t.Fatalf("expected bool to be a legal cin target, got: %s", sink.Format())
	}
}

func TestStructInstanceIsNotAValidCinTarget(t *testing.T) {
	_, _, sink := typeCheck(t, `
struct S { int a; }
int main() {
	struct S x;
	cin >> x;
}
`)
	if sink.FatalCount() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %s", sink.FatalCount(), sink.Format())
	}
	if sink.Diagnostics()[0].Message != "cin target must not be a function, struct name, or struct instance" {
		t.Errorf("unexpected diagnostic: %q", sink.Diagnostics()[0].Message)
	}
}

func TestCallWithWrongArgumentCount(t *testing.T) {
	_, _, sink := typeCheck(t, `
int add(int a, int b) {
	return a + b;
}
void main() {
	int x;
	x = add(1);
}
`)
	if sink.FatalCount() != 1 || sink.Diagnostics()[0].Message != "Wrong number of arguments" {
		t.Fatalf("expected a single wrong-arity diagnostic: %s", sink.Format())
	}
}

func TestReturnTypeMismatchIsDiagnosedOnce(t *testing.T) {
	_, _, sink := typeCheck(t, `
int f() {
	return true;
}
void main(){}
`)
	if sink.FatalCount() != 1 || sink.Diagnostics()[0].Message != "Return type mismatch" {
		t.Fatalf("expected a single return-type-mismatch diagnostic: %s", sink.Format())
	}
}

func TestErrorPropagationSuppressesCascade(t *testing.T) {
	// x is undeclared (a name-analysis error, so its type is Error); using
	// it in an arithmetic expression must not also raise a "requires int
	// operands" diagnostic on top of the undeclared-identifier one.
	p := parser.New(lexer.New(`
int main() {
	int y;
	y = x + 1;
}
`))
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	sink := diag.NewCollectingSink("", "t.src")
	names := NameAnalysis(prog, sink)
	if sink.FatalCount() != 1 {
		t.Fatalf("expected exactly one name-analysis diagnostic, got %d: %s", sink.FatalCount(), sink.Format())
	}

	TypeCheck(prog, names, sink)
	if sink.FatalCount() != 1 {
		t.Fatalf("expected type check to add no further diagnostics, got %d total: %s", sink.FatalCount(), sink.Format())
	}
}
