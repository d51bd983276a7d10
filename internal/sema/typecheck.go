package sema

import (
	"github.com/cwbudde/mipc/internal/ast"
	"github.com/cwbudde/mipc/internal/diag"
	"github.com/cwbudde/mipc/internal/symtab"
	"github.com/cwbudde/mipc/internal/types"
)

// currentFn carries the enclosing function's symbol through a recursive
// type-check walk, so return statements can be checked against its
// declared return type.
type checker struct {
	sink      diag.Sink
	names     *NameInfo
	info      *TypeInfo
	currentFn *symtab.Symbol
}

// TypeCheck walks prog using the symbol links NameAnalysis produced and
// infers a type for every expression, diagnosing mismatches against the
// language's type rules. It assumes NameAnalysis already ran; an
// identifier NameAnalysis could not resolve is simply treated as
// types.Error wherever it recurs here; this pass does not re-diagnose
// undeclared identifiers.
func TypeCheck(prog *ast.Program, names *NameInfo, sink diag.Sink) *TypeInfo {
	c := &checker{sink: sink, names: names, info: newTypeInfo()}

	for _, d := range prog.Decls {
		if fn, ok := d.(*ast.FnDecl); ok {
			c.checkFnDecl(fn)
		}
	}

	return c.info
}

func (c *checker) checkFnDecl(f *ast.FnDecl) {
	sym := c.names.Decls[f]
	c.currentFn = sym
	c.checkBlock(f.Body)
	c.currentFn = nil
}

func (c *checker) checkBlock(b *ast.Block) {
	for _, s := range b.Stmts {
		c.checkStmt(s)
	}
}

func (c *checker) checkStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		locType := c.checkLoc(s.Loc)
		valType := c.checkExpr(s.Value)
		if !locType.IsError() && !valType.IsError() {
			if isFnStructDefOrInstance(locType) || isFnStructDefOrInstance(valType) {
				c.sink.Error(s.Pos().Line, s.Pos().Column, "Cannot assign a function, struct name, or struct instance")
			} else if !locType.Equal(valType) {
				c.sink.Error(s.Pos().Line, s.Pos().Column, "Type mismatch in assignment")
			}
		}
	case *ast.IfStmt:
		cond := c.checkExpr(s.Cond)
		if !cond.IsError() && !cond.IsBool() {
			c.sink.Error(s.Cond.Pos().Line, s.Cond.Pos().Column, "If condition must be bool")
		}
		c.checkBlock(s.Then)
		if s.Else != nil {
			c.checkBlock(s.Else)
		}
	case *ast.WhileStmt:
		cond := c.checkExpr(s.Cond)
		if !cond.IsError() && !cond.IsBool() {
			c.sink.Error(s.Cond.Pos().Line, s.Cond.Pos().Column, "While condition must be bool")
		}
		c.checkBlock(s.Body)
	case *ast.RepeatStmt:
		count := c.checkExpr(s.Count)
		if !count.IsError() && !count.IsInt() {
			c.sink.Error(s.Count.Pos().Line, s.Count.Pos().Column, "Repeat count must be int")
		}
		c.checkBlock(s.Body)
	case *ast.CallStmt:
		c.checkCallExpr(s.Call)
	case *ast.ReadStmt:
		locType := c.checkLoc(s.Loc)
		if !locType.IsError() && isFnStructDefOrInstance(locType) {
			c.sink.Error(s.Pos().Line, s.Pos().Column, "cin target must not be a function, struct name, or struct instance")
		}
	case *ast.WriteStmt:
		expType := c.checkExpr(s.Exp)
		if !expType.IsError() && !expType.IsInt() && !expType.IsString() && !expType.IsBool() {
			c.sink.Error(s.Pos().Line, s.Pos().Column, "cout operand must be int, bool, or string")
		}
	case *ast.ReturnStmt:
		c.checkReturnStmt(s)
	case *ast.IncDecStmt:
		locType := c.checkLoc(s.Loc)
		if !locType.IsError() && !locType.IsInt() {
			c.sink.Error(s.Pos().Line, s.Pos().Column, "++/-- operand must be int")
		}
	}
}

func (c *checker) checkReturnStmt(s *ast.ReturnStmt) {
	want := types.Void
	if c.currentFn != nil {
		want = c.currentFn.Type.Ret()
	}

	if s.Exp == nil {
		if !want.IsVoid() {
			c.sink.Error(s.Pos().Line, s.Pos().Column, "Missing return value")
		}
		return
	}

	got := c.checkExpr(s.Exp)
	if want.IsVoid() {
		c.sink.Error(s.Pos().Line, s.Pos().Column, "Void function cannot return a value")
		return
	}
	if !got.IsError() && !got.Equal(want) {
		c.sink.Error(s.Exp.Pos().Line, s.Exp.Pos().Column, "Return type mismatch")
	}
}

// checkLoc type-checks an assignable location and records its type the
// same way checkExpr does, so callers needn't distinguish the two.
func (c *checker) checkLoc(loc ast.Expression) types.Type {
	return c.checkExpr(loc)
}

func (c *checker) checkExpr(expr ast.Expression) types.Type {
	var t types.Type
	switch e := expr.(type) {
	case *ast.IntLiteral:
		t = types.Int
	case *ast.StringLiteral:
		t = types.String
	case *ast.BoolLiteral:
		t = types.Bool
	case *ast.Identifier:
		t = c.checkIdentifier(e)
	case *ast.BinaryExpr:
		t = c.checkBinaryExpr(e)
	case *ast.UnaryExpr:
		t = c.checkUnaryExpr(e)
	case *ast.DotAccessExpr:
		t = c.checkDotAccess(e)
	case *ast.CallExpr:
		t = c.checkCallExpr(e)
	default:
		t = types.Error
	}
	c.info.Types[expr] = t
	return t
}

// isFnStructDefOrInstance reports whether t is one of the kinds the type
// rules exclude from assignment, cin/cout, and equality: a function, a
// struct name used as a type constructor, or a struct instance.
func isFnStructDefOrInstance(t types.Type) bool {
	return t.IsFn() || t.IsStructDef() || t.IsStruct()
}

func (c *checker) checkIdentifier(id *ast.Identifier) types.Type {
	sym, ok := c.names.Links[id]
	if !ok {
		return types.Error
	}
	if sym.Kind == symtab.KindFn || sym.Kind == symtab.KindStructDef {
		c.sink.Error(id.Pos().Line, id.Pos().Column, "Identifier used as a value is not a variable")
		return types.Error
	}
	return sym.Type
}

func (c *checker) checkDotAccess(d *ast.DotAccessExpr) types.Type {
	recvType := c.checkExpr(d.Recv)
	if recvType.IsError() {
		return types.Error
	}
	if !recvType.IsStruct() {
		c.sink.Error(d.Pos().Line, d.Pos().Column, "Dot-access of non-struct type")
		return types.Error
	}

	sdSym, ok := c.names.StructDefs[recvType.StructName()]
	if !ok {
		return types.Error
	}
	fieldSym, ok := sdSym.Fields.LookupLocal(d.Field.Value)
	if !ok {
		c.sink.Error(d.Field.Pos().Line, d.Field.Pos().Column, "Invalid struct field name")
		return types.Error
	}

	c.info.FieldLinks[d] = fieldSym
	return fieldSym.Type
}

func (c *checker) checkUnaryExpr(u *ast.UnaryExpr) types.Type {
	operand := c.checkExpr(u.Operand)
	if operand.IsError() {
		return types.Error
	}
	switch u.Operator {
	case "-":
		if !operand.IsInt() {
			c.sink.Error(u.Pos().Line, u.Pos().Column, "Unary - requires int operand")
			return types.Error
		}
		return types.Int
	case "!":
		if !operand.IsBool() {
			c.sink.Error(u.Pos().Line, u.Pos().Column, "Unary ! requires bool operand")
			return types.Error
		}
		return types.Bool
	default:
		return types.Error
	}
}

func (c *checker) checkBinaryExpr(b *ast.BinaryExpr) types.Type {
	left := c.checkExpr(b.Left)
	right := c.checkExpr(b.Right)
	if left.IsError() || right.IsError() {
		return types.Error
	}

	switch b.Operator {
	case "+", "-", "*", "/":
		if !left.IsInt() || !right.IsInt() {
			c.sink.Error(b.Pos().Line, b.Pos().Column, "Arithmetic operator requires int operands")
			return types.Error
		}
		return types.Int
	case "<", "<=", ">", ">=":
		if !left.IsInt() || !right.IsInt() {
			c.sink.Error(b.Pos().Line, b.Pos().Column, "Relational operator requires int operands")
			return types.Error
		}
		return types.Bool
	case "==", "!=":
		if left.IsVoid() || right.IsVoid() || isFnStructDefOrInstance(left) || isFnStructDefOrInstance(right) {
			c.sink.Error(b.Pos().Line, b.Pos().Column, "Equality operands must not be void, a function, a struct name, or a struct instance")
			return types.Error
		}
		if !left.Equal(right) {
			c.sink.Error(b.Pos().Line, b.Pos().Column, "Equality operands must have the same type")
			return types.Error
		}
		return types.Bool
	case "&&", "||":
		if !left.IsBool() || !right.IsBool() {
			c.sink.Error(b.Pos().Line, b.Pos().Column, "Logical operator requires bool operands")
			return types.Error
		}
		return types.Bool
	default:
		return types.Error
	}
}

func (c *checker) checkCallExpr(call *ast.CallExpr) types.Type {
	fnSym, ok := c.names.Links[call.Fn]

	argTypes := make([]types.Type, len(call.Args))
	anyArgError := false
	for i, arg := range call.Args {
		argTypes[i] = c.checkExpr(arg)
		if argTypes[i].IsError() {
			anyArgError = true
		}
	}

	if !ok {
		return types.Error
	}
	if fnSym.Kind != symtab.KindFn {
		c.sink.Error(call.Fn.Pos().Line, call.Fn.Pos().Column, "Called identifier is not a function")
		return types.Error
	}

	if len(argTypes) != len(fnSym.ParamTypes) {
		c.sink.Error(call.Pos().Line, call.Pos().Column, "Wrong number of arguments")
		return fnSym.Type.Ret()
	}

	if !anyArgError {
		for i, want := range fnSym.ParamTypes {
			if !argTypes[i].Equal(want) {
				c.sink.Error(call.Args[i].Pos().Line, call.Args[i].Pos().Column, "Argument type mismatch")
			}
		}
	}

	return fnSym.Type.Ret()
}
