// Package parser builds an AST from a token stream produced by the
// lexer. It is a straightforward recursive-descent, precedence-climbing
// parser; by spec, the parser is an external collaborator to the three
// core passes (name analysis, type check, code generation) and exists
// here only so the core has real ASTs to work over.
package parser

import (
	"fmt"

	"github.com/cwbudde/mipc/internal/ast"
	"github.com/cwbudde/mipc/internal/lexer"
)

// Parser consumes tokens from a Lexer and builds an *ast.Program.
type Parser struct {
	l   *lexer.Lexer
	cur lexer.Token
	pk  lexer.Token

	errors []string
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns the syntax errors accumulated while parsing.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) next() {
	p.cur = p.pk
	p.pk = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("%d:%d: %s", p.cur.Pos.Line, p.cur.Pos.Column, msg))
}

func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.cur
	if p.cur.Type != tt {
		p.errorf("expected %s, got %s (%q)", tt, p.cur.Type, p.cur.Literal)
	}
	p.next()
	return tok
}

// ParseProgram parses the whole input into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Type != lexer.EOF {
		decl := p.parseTopLevelDecl()
		if decl != nil {
			prog.Decls = append(prog.Decls, decl)
		} else {
			// avoid an infinite loop on unrecoverable garbage
			p.next()
		}
	}
	return prog
}

func isTypeStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.INT, lexer.BOOLTYPE, lexer.VOIDTYPE, lexer.STRINGTYPE, lexer.STRUCT:
		return true
	}
	return false
}

func (p *Parser) parseType() *ast.TypeNode {
	tok := p.cur
	switch p.cur.Type {
	case lexer.INT:
		p.next()
		return &ast.TypeNode{Token: tok, Name: "int"}
	case lexer.BOOLTYPE:
		p.next()
		return &ast.TypeNode{Token: tok, Name: "bool"}
	case lexer.VOIDTYPE:
		p.next()
		return &ast.TypeNode{Token: tok, Name: "void"}
	case lexer.STRINGTYPE:
		p.next()
		return &ast.TypeNode{Token: tok, Name: "string"}
	case lexer.STRUCT:
		p.next()
		name := p.expect(lexer.IDENT)
		return &ast.TypeNode{Token: tok, Name: "struct", StructName: name.Literal}
	default:
		p.errorf("expected a type, got %s (%q)", p.cur.Type, p.cur.Literal)
		p.next()
		return &ast.TypeNode{Token: tok, Name: "int"}
	}
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	tok := p.expect(lexer.IDENT)
	return &ast.Identifier{Token: tok, Value: tok.Literal}
}

// parseTopLevelDecl parses a global variable, function, or struct
// declaration. All three start with a type (struct declarations are
// disambiguated by the '{' that follows the struct name instead of a
// variable name).
func (p *Parser) parseTopLevelDecl() ast.Decl {
	if !isTypeStart(p.cur.Type) {
		p.errorf("expected a declaration, got %s (%q)", p.cur.Type, p.cur.Literal)
		return nil
	}

	typ := p.parseType()

	if typ.Name == "struct" && p.cur.Type == lexer.LBRACE {
		return p.parseStructBody(typ)
	}

	name := p.parseIdentifier()

	if p.cur.Type == lexer.LPAREN {
		return p.parseFnDeclRest(typ, name)
	}

	p.expect(lexer.SEMI)
	return &ast.VarDecl{Token: typ.Token, Type: typ, Name: name}
}

func (p *Parser) parseStructBody(typ *ast.TypeNode) *ast.StructDecl {
	decl := &ast.StructDecl{Token: typ.Token, Name: &ast.Identifier{Token: typ.Token, Value: typ.StructName}}
	p.expect(lexer.LBRACE)
	for isTypeStart(p.cur.Type) {
		decl.Fields = append(decl.Fields, p.parseVarDecl())
	}
	p.expect(lexer.RBRACE)
	// The ';' after the closing brace is optional.
	if p.cur.Type == lexer.SEMI {
		p.next()
	}
	return decl
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	typ := p.parseType()
	name := p.parseIdentifier()
	p.expect(lexer.SEMI)
	return &ast.VarDecl{Token: typ.Token, Type: typ, Name: name}
}

func (p *Parser) parseFormal() *ast.Formal {
	typ := p.parseType()
	name := p.parseIdentifier()
	return &ast.Formal{Token: typ.Token, Type: typ, Name: name}
}

func (p *Parser) parseFnDeclRest(retType *ast.TypeNode, name *ast.Identifier) *ast.FnDecl {
	fn := &ast.FnDecl{Token: retType.Token, RetType: retType, Name: name}
	p.expect(lexer.LPAREN)
	for p.cur.Type != lexer.RPAREN {
		fn.Formals = append(fn.Formals, p.parseFormal())
		if p.cur.Type == lexer.COMMA {
			p.next()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.cur}
	p.expect(lexer.LBRACE)
	for isTypeStart(p.cur.Type) {
		block.Decls = append(block.Decls, p.parseVarDecl())
	}
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		} else {
			p.next()
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.REPEAT:
		return p.parseRepeatStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.CIN:
		return p.parseReadStmt()
	case lexer.COUT:
		return p.parseWriteStmt()
	case lexer.IDENT:
		return p.parseIdentStatement()
	default:
		p.errorf("expected a statement, got %s (%q)", p.cur.Type, p.cur.Literal)
		return nil
	}
}

func (p *Parser) parseIfStmt() ast.Statement {
	tok := p.cur
	p.expect(lexer.IF)
	p.expect(lexer.LPAREN)
	cond := p.parseExpression()
	p.expect(lexer.RPAREN)
	then := p.parseBlock()
	stmt := &ast.IfStmt{Token: tok, Cond: cond, Then: then}
	if p.cur.Type == lexer.ELSE {
		p.next()
		stmt.Else = p.parseBlock()
	}
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Statement {
	tok := p.cur
	p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	cond := p.parseExpression()
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body}
}

func (p *Parser) parseRepeatStmt() ast.Statement {
	tok := p.cur
	p.expect(lexer.REPEAT)
	p.expect(lexer.LPAREN)
	count := p.parseExpression()
	p.expect(lexer.RPAREN)
	body := p.parseBlock()
	return &ast.RepeatStmt{Token: tok, Count: count, Body: body}
}

func (p *Parser) parseReturnStmt() ast.Statement {
	tok := p.cur
	p.expect(lexer.RETURN)
	stmt := &ast.ReturnStmt{Token: tok}
	if p.cur.Type != lexer.SEMI {
		stmt.Exp = p.parseExpression()
	}
	p.expect(lexer.SEMI)
	return stmt
}

func (p *Parser) parseReadStmt() ast.Statement {
	tok := p.cur
	p.expect(lexer.CIN)
	p.expect(lexer.SHR)
	loc := p.parseLoc()
	p.expect(lexer.SEMI)
	return &ast.ReadStmt{Token: tok, Loc: loc}
}

func (p *Parser) parseWriteStmt() ast.Statement {
	tok := p.cur
	p.expect(lexer.COUT)
	p.expect(lexer.SHL)
	exp := p.parseExpression()
	p.expect(lexer.SEMI)
	return &ast.WriteStmt{Token: tok, Exp: exp}
}

// parseIdentStatement handles the statements that begin with an
// identifier: a call, an assignment, or an increment/decrement.
func (p *Parser) parseIdentStatement() ast.Statement {
	tok := p.cur
	if p.pk.Type == lexer.LPAREN {
		call := p.parseCallExpr()
		p.expect(lexer.SEMI)
		return &ast.CallStmt{Token: tok, Call: call}
	}

	loc := p.parseLoc()
	switch p.cur.Type {
	case lexer.ASSIGN:
		assignTok := p.cur
		p.next()
		value := p.parseExpression()
		p.expect(lexer.SEMI)
		return &ast.AssignStmt{Token: assignTok, Loc: loc, Value: value}
	case lexer.INC, lexer.DEC:
		opTok := p.cur
		p.next()
		p.expect(lexer.SEMI)
		return &ast.IncDecStmt{Token: opTok, Loc: loc, Operator: opTok.Literal}
	default:
		p.errorf("expected '=', '++' or '--', got %s (%q)", p.cur.Type, p.cur.Literal)
		return nil
	}
}

// parseLoc parses an identifier followed by zero or more ".field"
// accesses, producing an assignable location.
func (p *Parser) parseLoc() ast.Expression {
	var loc ast.Expression = p.parseIdentifier()
	for p.cur.Type == lexer.DOT {
		dotTok := p.cur
		p.next()
		field := p.parseIdentifier()
		loc = &ast.DotAccessExpr{Token: dotTok, Recv: loc, Field: field}
	}
	return loc
}

func (p *Parser) parseCallExpr() *ast.CallExpr {
	fn := p.parseIdentifier()
	tok := p.cur
	p.expect(lexer.LPAREN)
	call := &ast.CallExpr{Token: tok, Fn: fn}
	for p.cur.Type != lexer.RPAREN {
		call.Args = append(call.Args, p.parseExpression())
		if p.cur.Type == lexer.COMMA {
			p.next()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return call
}

// Expression grammar, from lowest to highest precedence:
//
//	orExpr     := andExpr ('||' andExpr)*
//	andExpr    := eqExpr ('&&' eqExpr)*
//	eqExpr     := relExpr (('=='|'!=') relExpr)*
//	relExpr    := addExpr (('<'|'<='|'>'|'>=') addExpr)*
//	addExpr    := mulExpr (('+'|'-') mulExpr)*
//	mulExpr    := unaryExpr (('*'|'/') unaryExpr)*
//	unaryExpr  := ('-'|'!') unaryExpr | postfixExpr
//	postfixExpr:= primaryExpr ('.' ident)*
//	primaryExpr:= intLit | strLit | 'true' | 'false' | '(' expr ')' | ident call-or-not
func (p *Parser) parseExpression() ast.Expression { return p.parseOr() }

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.cur.Type == lexer.OR {
		tok := p.cur
		p.next()
		left = &ast.BinaryExpr{Token: tok, Left: left, Operator: "||", Right: p.parseAnd()}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.cur.Type == lexer.AND {
		tok := p.cur
		p.next()
		left = &ast.BinaryExpr{Token: tok, Left: left, Operator: "&&", Right: p.parseEquality()}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for p.cur.Type == lexer.EQ || p.cur.Type == lexer.NE {
		tok := p.cur
		op := tok.Literal
		p.next()
		left = &ast.BinaryExpr{Token: tok, Left: left, Operator: op, Right: p.parseRelational()}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseAdditive()
	for p.cur.Type == lexer.LT || p.cur.Type == lexer.LE || p.cur.Type == lexer.GT || p.cur.Type == lexer.GE {
		tok := p.cur
		op := tok.Literal
		p.next()
		left = &ast.BinaryExpr{Token: tok, Left: left, Operator: op, Right: p.parseAdditive()}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.cur.Type == lexer.PLUS || p.cur.Type == lexer.MINUS {
		tok := p.cur
		op := tok.Literal
		p.next()
		left = &ast.BinaryExpr{Token: tok, Left: left, Operator: op, Right: p.parseMultiplicative()}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.cur.Type == lexer.STAR || p.cur.Type == lexer.SLASH {
		tok := p.cur
		op := tok.Literal
		p.next()
		left = &ast.BinaryExpr{Token: tok, Left: left, Operator: op, Right: p.parseUnary()}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.cur.Type == lexer.MINUS || p.cur.Type == lexer.NOT {
		tok := p.cur
		op := tok.Literal
		p.next()
		return &ast.UnaryExpr{Token: tok, Operator: op, Operand: p.parseUnary()}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for p.cur.Type == lexer.DOT {
		dotTok := p.cur
		p.next()
		field := p.parseIdentifier()
		expr = &ast.DotAccessExpr{Token: dotTok, Recv: expr, Field: field}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Type {
	case lexer.INTLIT:
		tok := p.cur
		p.next()
		var v int64
		fmt.Sscanf(tok.Literal, "%d", &v)
		return &ast.IntLiteral{Token: tok, Value: v}
	case lexer.STRLIT:
		tok := p.cur
		p.next()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}
	case lexer.TRUE:
		tok := p.cur
		p.next()
		return &ast.BoolLiteral{Token: tok, Value: true}
	case lexer.FALSE:
		tok := p.cur
		p.next()
		return &ast.BoolLiteral{Token: tok, Value: false}
	case lexer.LPAREN:
		p.next()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN)
		return expr
	case lexer.IDENT:
		if p.pk.Type == lexer.LPAREN {
			return p.parseCallExpr()
		}
		return p.parseIdentifier()
	default:
		tok := p.cur
		p.errorf("unexpected token in expression: %s (%q)", p.cur.Type, p.cur.Literal)
		p.next()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	}
}
