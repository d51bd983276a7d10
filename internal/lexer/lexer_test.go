package lexer

import "testing"

func TestNextTokenBasic(t *testing.T) {
	input := `int main() {
	int x;
	x = 2 * 3 + 4;
	cout << x;
}`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{INT, "int"},
		{IDENT, "main"},
		{LPAREN, "("},
		{RPAREN, ")"},
		{LBRACE, "{"},
		{INT, "int"},
		{IDENT, "x"},
		{SEMI, ";"},
		{IDENT, "x"},
		{ASSIGN, "="},
		{INTLIT, "2"},
		{STAR, "*"},
		{INTLIT, "3"},
		{PLUS, "+"},
		{INTLIT, "4"},
		{SEMI, ";"},
		{COUT, "cout"},
		{SHL, "<<"},
		{IDENT, "x"},
		{SEMI, ";"},
		{RBRACE, "}"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextTokenOperatorsAndStruct(t *testing.T) {
	input := `struct S { int f; }
bool b;
b = !(1 <= 2) && (3 != 4) || (5 >= 6);
s.f++;
s.f--;
cin >> s.f;
`
	l := New(input)
	var types []TokenType
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == EOF {
			break
		}
	}

	mustContain := []TokenType{STRUCT, NOT, LE, AND, NE, OR, GE, INC, DEC, CIN, SHR, DOT}
	for _, want := range mustContain {
		found := false
		for _, got := range types {
			if got == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected token type %s to appear in scan", want)
		}
	}
}

func TestNextTokenStringLiteral(t *testing.T) {
	l := New(`"Hi\n"`)
	tok := l.NextToken()
	if tok.Type != STRLIT {
		t.Fatalf("expected STRLIT, got %s", tok.Type)
	}
	if tok.Literal != "Hi\n" {
		t.Fatalf("expected escaped literal %q, got %q", "Hi\n", tok.Literal)
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("int x;\nint y;")
	tok := l.NextToken() // int
	if tok.Pos.Line != 1 {
		t.Fatalf("expected line 1, got %d", tok.Pos.Line)
	}
	for i := 0; i < 2; i++ {
		l.NextToken() // x ;
	}
	tok = l.NextToken() // int on line 2
	if tok.Pos.Line != 2 {
		t.Fatalf("expected line 2, got %d", tok.Pos.Line)
	}
}
