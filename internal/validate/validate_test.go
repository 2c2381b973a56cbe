package validate

import (
	"testing"

	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/errors"
)

func codes(reports []*errors.Report) []string {
	out := make([]string, len(reports))
	for i, r := range reports {
		out[i] = r.Code
	}
	return out
}

func hasCode(reports []*errors.Report, code string) bool {
	for _, r := range reports {
		if r.Code == code {
			return true
		}
	}
	return false
}

func TestValidator_AmbientTypeIsVAL001(t *testing.T) {
	v := New()
	v.File(&ast.File{Decls: []ast.Decl{
		&ast.TypeAliasDecl{Name: "X", Value: &ast.AmbientType{Kind: "any"}},
	}})
	if !hasCode(v.Reports, errors.VAL001) {
		t.Errorf("expected VAL001, got %v", codes(v.Reports))
	}
}

func TestValidator_MissingParamTypeIsVAL002(t *testing.T) {
	v := New()
	v.File(&ast.File{Decls: []ast.Decl{
		&ast.FuncDecl{Name: "f", Params: []*ast.Param{{Name: "a"}}, ReturnType: &ast.NamedType{Name: "i64"}},
	}})
	if !hasCode(v.Reports, errors.VAL002) {
		t.Errorf("expected VAL002 for a missing param type, got %v", codes(v.Reports))
	}
}

func TestValidator_MissingReturnTypeIsVAL002(t *testing.T) {
	v := New()
	v.File(&ast.File{Decls: []ast.Decl{
		&ast.FuncDecl{Name: "f", Params: []*ast.Param{{Name: "a", Type: &ast.NamedType{Name: "i64"}}}},
	}})
	if !hasCode(v.Reports, errors.VAL002) {
		t.Errorf("expected VAL002 for a missing return type, got %v", codes(v.Reports))
	}
}

func TestValidator_AsyncFuncIsVAL003(t *testing.T) {
	v := New()
	v.File(&ast.File{Decls: []ast.Decl{
		&ast.FuncDecl{
			Name: "f", IsAsync: true,
			Params:     []*ast.Param{},
			ReturnType: &ast.NamedType{Name: "void"},
		},
	}})
	if !hasCode(v.Reports, errors.VAL003) {
		t.Errorf("expected VAL003 for async, got %v", codes(v.Reports))
	}
}

func TestValidator_AwaitAndYieldAreVAL003(t *testing.T) {
	v := New()
	v.File(&ast.File{Statements: []ast.Stmt{
		&ast.ExprStmt{Expr: &ast.AwaitExpr{Operand: &ast.Ident{Name: "p"}}},
		&ast.ExprStmt{Expr: &ast.YieldExpr{}},
	}})
	count := 0
	for _, r := range v.Reports {
		if r.Code == errors.VAL003 {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected 2 VAL003 reports for await and yield, got %d (%v)", count, codes(v.Reports))
	}
}

func TestValidator_WithStmtIsVAL004(t *testing.T) {
	v := New()
	v.File(&ast.File{Statements: []ast.Stmt{
		&ast.WithStmt{Object: &ast.Ident{Name: "o"}, Body: &ast.BlockStmt{}},
	}})
	if !hasCode(v.Reports, errors.VAL004) {
		t.Errorf("expected VAL004 for `with`, got %v", codes(v.Reports))
	}
}

func TestValidator_EvalCallIsVAL004(t *testing.T) {
	v := New()
	v.File(&ast.File{Statements: []ast.Stmt{
		&ast.ExprStmt{Expr: &ast.CallExpr{Callee: &ast.Ident{Name: "eval"}, Args: []ast.Expr{&ast.StringLit{Value: "1"}}}},
	}})
	if !hasCode(v.Reports, errors.VAL004) {
		t.Errorf("expected VAL004 for eval(...), got %v", codes(v.Reports))
	}
}

func TestValidator_PrototypeAccessIsVAL004(t *testing.T) {
	v := New()
	v.File(&ast.File{Statements: []ast.Stmt{
		&ast.ExprStmt{Expr: &ast.MemberExpr{Object: &ast.Ident{Name: "o"}, Property: "__proto__"}},
	}})
	if !hasCode(v.Reports, errors.VAL004) {
		t.Errorf("expected VAL004 for __proto__ access, got %v", codes(v.Reports))
	}
}

func TestValidator_DecoratorIsVAL005(t *testing.T) {
	v := New()
	v.File(&ast.File{Decls: []ast.Decl{
		&ast.ClassDecl{Name: "Thing", Decorators: []*ast.Decorator{{Name: "Injectable"}}},
	}})
	if !hasCode(v.Reports, errors.VAL005) {
		t.Errorf("expected VAL005 for a decorator, got %v", codes(v.Reports))
	}
}

func TestValidator_VarDeclarationIsVAL006(t *testing.T) {
	v := New()
	v.File(&ast.File{Statements: []ast.Stmt{
		&ast.VarDecl{Kind: "var", Name: "x", Init: &ast.NumberLit{Value: 1, Raw: "1"}},
	}})
	if !hasCode(v.Reports, errors.VAL006) {
		t.Errorf("expected VAL006 for legacy `var`, got %v", codes(v.Reports))
	}
}

func TestValidator_ComputedFieldIsVAL007(t *testing.T) {
	v := New()
	v.File(&ast.File{Decls: []ast.Decl{
		&ast.InterfaceDecl{Name: "X", Fields: []*ast.FieldDecl{{Computed: true, KeyExpr: &ast.Ident{Name: "k"}}}},
	}})
	if !hasCode(v.Reports, errors.VAL007) {
		t.Errorf("expected VAL007 for a computed field key, got %v", codes(v.Reports))
	}
}

func TestValidator_BigIntLiteralIsVAL008(t *testing.T) {
	v := New()
	v.File(&ast.File{Statements: []ast.Stmt{
		&ast.ExprStmt{Expr: &ast.BigIntLit{Raw: "10n"}},
	}})
	if !hasCode(v.Reports, errors.VAL008) {
		t.Errorf("expected VAL008 for a BigInt literal, got %v", codes(v.Reports))
	}
}

func TestValidator_WellFormedFunctionProducesNoReports(t *testing.T) {
	v := New()
	v.File(&ast.File{Decls: []ast.Decl{
		&ast.FuncDecl{
			Name: "add",
			Params: []*ast.Param{
				{Name: "a", Type: &ast.NamedType{Name: "i64"}},
				{Name: "b", Type: &ast.NamedType{Name: "i64"}},
			},
			ReturnType: &ast.NamedType{Name: "i64"},
			Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.ReturnStmt{Value: &ast.BinaryExpr{Op: "+", Left: &ast.Ident{Name: "a"}, Right: &ast.Ident{Name: "b"}}},
			}},
		},
	}})
	if len(v.Reports) != 0 {
		t.Errorf("expected no reports for a well-formed function, got %v", codes(v.Reports))
	}
}
