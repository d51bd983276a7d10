package sema

import (
	"github.com/cwbudde/mipc/internal/ast"
	"github.com/cwbudde/mipc/internal/diag"
	"github.com/cwbudde/mipc/internal/symtab"
	"github.com/cwbudde/mipc/internal/types"
)

// NameAnalysis builds nested scopes over prog, resolves every identifier
// use to its declaration (or diagnoses it as undeclared), and assigns
// storage offsets to locals and formals. It is always the first pass;
// type check and code generation both depend on its output.
func NameAnalysis(prog *ast.Program, sink diag.Sink) *NameInfo {
	info := newNameInfo()
	table := symtab.New()

	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *ast.VarDecl:
			analyzeVarDeclIn(decl, table, table, sink, info)
		case *ast.FnDecl:
			analyzeFnDecl(decl, table, sink, info)
		case *ast.StructDecl:
			analyzeStructDecl(decl, table, sink, info)
		}
	}

	if !info.HasMain {
		sink.Error(0, 0, "No main function")
	}

	return info
}

// analyzeVarDeclIn analyzes a variable or formal declaration. declTable
// is where the resulting symbol is inserted (and whose current scope
// determines whether it is global); lookupTable is where a "struct S"
// type name is resolved — for ordinary declarations the two are the
// same table, but a struct field's type is declared into the struct's
// own field table while still resolving against the enclosing table, so
// fields may reference other top-level struct types.
func analyzeVarDeclIn(v *ast.VarDecl, declTable, lookupTable *symtab.Table, sink diag.Sink, info *NameInfo) {
	// sym is recorded in info.Decls up front, before any rejection path
	// below might return early, so every declaration node — accepted or
	// not — always has a symbol for later passes to read.
	sym := &symtab.Symbol{Name: v.Name.Value, Kind: symtab.KindVar, Type: types.Error}
	info.Decls[v] = sym

	if v.Type.Name == "void" {
		sink.Error(v.Type.Pos().Line, v.Type.Pos().Column, "Non-function declared void")
		return
	}

	if v.Type.Name == "struct" {
		sdSym, ok := lookupTable.LookupGlobal(v.Type.StructName)
		if !ok || sdSym.Kind != symtab.KindStructDef {
			sink.Error(v.Type.Pos().Line, v.Type.Pos().Column, "Invalid name of struct type")
			return
		}
		sym.Kind = symtab.KindStructInstance
		sym.StructName = v.Type.StructName
		sym.Type = types.NewStruct(v.Type.StructName)
	} else {
		sym.Type = primitiveType(v.Type.Name)
	}

	if !declTable.AddDecl(v.Name.Value, sym) {
		sink.Error(v.Name.Pos().Line, v.Name.Pos().Column, "Multiply declared identifier")
		return
	}

	if declTable.IsGlobalScope() {
		sym.IsGlobal = true
	} else {
		sym.Offset = declTable.CurrentOffset()
		declTable.SetOffset(declTable.CurrentOffset() - symtab.WordSize)
	}

	info.Links[v.Name] = sym
}

func primitiveType(name string) types.Type {
	switch name {
	case "int":
		return types.Int
	case "bool":
		return types.Bool
	case "string":
		return types.String
	default:
		return types.Void
	}
}

func analyzeFormal(f *ast.Formal, table *symtab.Table, sink diag.Sink, info *NameInfo) types.Type {
	v := &ast.VarDecl{Token: f.Token, Type: f.Type, Name: f.Name}
	analyzeVarDeclIn(v, table, table, sink, info)
	sym := info.Decls[v]
	info.Decls[f] = sym
	return sym.Type
}

func analyzeFnDecl(f *ast.FnDecl, table *symtab.Table, sink diag.Sink, info *NameInfo) {
	fnSym := &symtab.Symbol{Name: f.Name.Value, Kind: symtab.KindFn}
	inserted := table.AddDecl(f.Name.Value, fnSym)
	if !inserted {
		sink.Error(f.Name.Pos().Line, f.Name.Pos().Column, "Multiply declared identifier")
	}

	if f.Name.Value == "main" {
		info.HasMain = true
	}

	table.SetGlobalScope(false)
	table.SetOffset(0)
	table.AddScope()

	paramTypes := make([]types.Type, 0, len(f.Formals))
	for _, formal := range f.Formals {
		paramTypes = append(paramTypes, analyzeFormal(formal, table, sink, info))
	}
	fnSym.ParamSize = -table.CurrentOffset()

	table.SetOffset(table.CurrentOffset() - 8) // saved RA + saved FP
	preBody := table.CurrentOffset()

	retType := primitiveTypeOrStruct(f.RetType)
	fnSym.Type = types.NewFn(paramTypes, retType)
	fnSym.ParamTypes = paramTypes

	analyzeBlockInPlace(f.Body, table, sink, info)

	fnSym.LocalSize = -(table.CurrentOffset() - preBody)

	table.SetGlobalScope(true)
	table.RemoveScope()

	info.Decls[f] = fnSym
	info.Links[f.Name] = fnSym
}

func primitiveTypeOrStruct(t *ast.TypeNode) types.Type {
	if t.Name == "struct" {
		return types.NewStruct(t.StructName)
	}
	return primitiveType(t.Name)
}

func analyzeStructDecl(s *ast.StructDecl, table *symtab.Table, sink diag.Sink, info *NameInfo) {
	fields := symtab.New()
	for _, field := range s.Fields {
		analyzeVarDeclIn(field, fields, table, sink, info)
	}

	sdSym := &symtab.Symbol{
		Name:   s.Name.Value,
		Kind:   symtab.KindStructDef,
		Type:   types.NewStructDef(s.Name.Value),
		Fields: fields,
	}

	if !table.AddDecl(s.Name.Value, sdSym) {
		sink.Error(s.Name.Pos().Line, s.Name.Pos().Column, "Multiply declared identifier")
	} else {
		info.StructDefs[s.Name.Value] = sdSym
	}

	info.Decls[s] = sdSym
	info.Links[s.Name] = sdSym
}

// analyzeBlockInPlace analyzes block's declarations and statements in
// the caller's current scope, without pushing a new one. It is used for
// a function's own body, which shares its scope with the formals.
func analyzeBlockInPlace(block *ast.Block, table *symtab.Table, sink diag.Sink, info *NameInfo) {
	for _, d := range block.Decls {
		analyzeVarDeclIn(d, table, table, sink, info)
	}
	for _, s := range block.Stmts {
		analyzeStmt(s, table, sink, info)
	}
}

// analyzeBlockScoped pushes a fresh scope for block, analyzes it, and
// pops the scope. It is used for if/else/while/repeat bodies.
func analyzeBlockScoped(block *ast.Block, table *symtab.Table, sink diag.Sink, info *NameInfo) {
	table.AddScope()
	analyzeBlockInPlace(block, table, sink, info)
	table.RemoveScope()
}

func analyzeStmt(stmt ast.Statement, table *symtab.Table, sink diag.Sink, info *NameInfo) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		analyzeLoc(s.Loc, table, sink, info)
		analyzeExpr(s.Value, table, sink, info)
	case *ast.IfStmt:
		analyzeExpr(s.Cond, table, sink, info)
		analyzeBlockScoped(s.Then, table, sink, info)
		if s.Else != nil {
			analyzeBlockScoped(s.Else, table, sink, info)
		}
	case *ast.WhileStmt:
		analyzeExpr(s.Cond, table, sink, info)
		analyzeBlockScoped(s.Body, table, sink, info)
	case *ast.RepeatStmt:
		analyzeExpr(s.Count, table, sink, info)
		analyzeBlockScoped(s.Body, table, sink, info)
	case *ast.CallStmt:
		analyzeCallExpr(s.Call, table, sink, info)
	case *ast.ReadStmt:
		analyzeLoc(s.Loc, table, sink, info)
	case *ast.WriteStmt:
		analyzeExpr(s.Exp, table, sink, info)
	case *ast.ReturnStmt:
		if s.Exp != nil {
			analyzeExpr(s.Exp, table, sink, info)
		}
	case *ast.IncDecStmt:
		analyzeLoc(s.Loc, table, sink, info)
	}
}

// analyzeLoc resolves an assignable location: an identifier or a chain
// of struct field accesses.
func analyzeLoc(loc ast.Expression, table *symtab.Table, sink diag.Sink, info *NameInfo) {
	analyzeExpr(loc, table, sink, info)
}

func analyzeExpr(expr ast.Expression, table *symtab.Table, sink diag.Sink, info *NameInfo) {
	switch e := expr.(type) {
	case *ast.Identifier:
		sym, ok := table.LookupGlobal(e.Value)
		if !ok {
			sink.Error(e.Pos().Line, e.Pos().Column, "Undeclared identifier")
			return
		}
		info.Links[e] = sym
	case *ast.IntLiteral, *ast.StringLiteral, *ast.BoolLiteral:
		// leaves, nothing to resolve
	case *ast.BinaryExpr:
		analyzeExpr(e.Left, table, sink, info)
		analyzeExpr(e.Right, table, sink, info)
	case *ast.UnaryExpr:
		analyzeExpr(e.Operand, table, sink, info)
	case *ast.DotAccessExpr:
		// The field name is validated against the receiver's struct type
		// during type check, once the receiver's type is known; name
		// analysis only resolves the receiver chain.
		analyzeExpr(e.Recv, table, sink, info)
	case *ast.CallExpr:
		analyzeCallExpr(e, table, sink, info)
	}
}

func analyzeCallExpr(call *ast.CallExpr, table *symtab.Table, sink diag.Sink, info *NameInfo) {
	sym, ok := table.LookupGlobal(call.Fn.Value)
	if !ok {
		sink.Error(call.Fn.Pos().Line, call.Fn.Pos().Column, "Undeclared identifier")
	} else {
		info.Links[call.Fn] = sym
	}
	for _, arg := range call.Args {
		analyzeExpr(arg, table, sink, info)
	}
}
