package lower

import (
	"testing"

	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/ir"
	"github.com/bherbruck/llts/internal/mono"
	"github.com/bherbruck/llts/internal/types"
)

func addFuncFile() *ast.File {
	return &ast.File{
		Path: "entry.ts",
		Decls: []ast.Decl{
			&ast.FuncDecl{
				Name: "add",
				Params: []*ast.Param{
					{Name: "a", Type: &ast.NamedType{Name: "i64"}},
					{Name: "b", Type: &ast.NamedType{Name: "i64"}},
				},
				ReturnType: &ast.NamedType{Name: "i64"},
				Body: &ast.BlockStmt{Stmts: []ast.Stmt{
					&ast.ReturnStmt{Value: &ast.BinaryExpr{
						Op:   "+",
						Left: &ast.Ident{Name: "a"},
						Right: &ast.Ident{Name: "b"},
					}},
				}},
			},
		},
		Statements: []ast.Stmt{
			&ast.ExprStmt{Expr: &ast.CallExpr{
				Callee: &ast.Ident{Name: "add"},
				Args:   []ast.Expr{&ast.NumberLit{Value: 1, Raw: "1"}, &ast.NumberLit{Value: 2, Raw: "2"}},
			}},
		},
	}
}

func TestLower_SimpleFunction(t *testing.T) {
	reg := types.NewRegistry()
	resolver := types.NewResolver(reg)
	mz := mono.New(reg)

	f := addFuncFile()
	prog, reports := Lower([]*ast.File{f}, reg, mz, resolver.ResolveTypeAnnotation, "entry.ts")

	for _, r := range reports {
		if r.EffectiveSeverity() == "error" {
			t.Fatalf("unexpected fatal report: %s: %s", r.Code, r.Message)
		}
	}

	var add *ir.FuncDef
	for _, fn := range prog.Functions {
		if fn.Name == "add" {
			add = fn
		}
	}
	if add == nil {
		t.Fatal("expected a lowered \"add\" function")
	}
	if len(add.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(add.Params))
	}
	if add.Return != types.I64 {
		t.Fatalf("expected i64 return type, got %v", add.Return)
	}
	if len(add.Body) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(add.Body))
	}
}

func TestLower_EntryMainIsAppendedLast(t *testing.T) {
	reg := types.NewRegistry()
	resolver := types.NewResolver(reg)
	mz := mono.New(reg)

	f := addFuncFile()
	prog, _ := Lower([]*ast.File{f}, reg, mz, resolver.ResolveTypeAnnotation, "entry.ts")

	if len(prog.Functions) == 0 {
		t.Fatal("expected at least one lowered function")
	}
	main := prog.Functions[len(prog.Functions)-1]
	if main.Name != "main" || !main.IsEntry {
		t.Fatalf("expected main to be the last, entry function; got %+v", main)
	}
}

// shapeAreaFile builds the Circle/Rect/Shape discriminated union and an
// `area` function switching on the `kind` discriminant, matching the
// narrowing example from the language guide.
func shapeAreaFile(resolver *types.Resolver) *ast.File {
	circle := &ast.InterfaceDecl{
		Name: "Circle",
		Fields: []*ast.FieldDecl{
			{Name: "kind", Type: &ast.LiteralType{Value: "circle"}},
			{Name: "radius", Type: &ast.NamedType{Name: "f64"}},
		},
	}
	rect := &ast.InterfaceDecl{
		Name: "Rect",
		Fields: []*ast.FieldDecl{
			{Name: "kind", Type: &ast.LiteralType{Value: "rect"}},
			{Name: "w", Type: &ast.NamedType{Name: "f64"}},
			{Name: "h", Type: &ast.NamedType{Name: "f64"}},
		},
	}
	shape := &ast.TypeAliasDecl{
		Name: "Shape",
		Value: &ast.UnionType{Variants: []ast.Type{
			&ast.NamedType{Name: "Circle"},
			&ast.NamedType{Name: "Rect"},
		}},
	}
	resolver.RegisterInterface(circle)
	resolver.RegisterInterface(rect)
	resolver.RegisterAlias(shape)

	area := &ast.FuncDecl{
		Name:       "area",
		Params:     []*ast.Param{{Name: "s", Type: &ast.NamedType{Name: "Shape"}}},
		ReturnType: &ast.NamedType{Name: "f64"},
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.SwitchStmt{
				Discriminant: &ast.MemberExpr{Object: &ast.Ident{Name: "s"}, Property: "kind"},
				Cases: []*ast.SwitchCase{
					{
						Test: &ast.StringLit{Value: "circle"},
						Body: []ast.Stmt{&ast.ReturnStmt{Value: &ast.MemberExpr{Object: &ast.Ident{Name: "s"}, Property: "radius"}}},
					},
					{
						Test: &ast.StringLit{Value: "rect"},
						Body: []ast.Stmt{&ast.ReturnStmt{Value: &ast.MemberExpr{Object: &ast.Ident{Name: "s"}, Property: "w"}}},
					},
				},
			},
		}},
	}

	return &ast.File{Path: "shape.ts", Decls: []ast.Decl{circle, rect, shape, area}}
}

func TestLower_DiscriminatedUnionSwitchComparesIntegerTags(t *testing.T) {
	reg := types.NewRegistry()
	resolver := types.NewResolver(reg)
	mz := mono.New(reg)

	f := shapeAreaFile(resolver)
	prog, reports := Lower([]*ast.File{f}, reg, mz, resolver.ResolveTypeAnnotation, "shape.ts")

	for _, r := range reports {
		if r.EffectiveSeverity() == "error" {
			t.Fatalf("unexpected fatal report: %s: %s", r.Code, r.Message)
		}
	}

	var area *ir.FuncDef
	for _, fn := range prog.Functions {
		if fn.Name == "area" {
			area = fn
		}
	}
	if area == nil {
		t.Fatal("expected a lowered \"area\" function")
	}
	if len(area.Body) != 2 {
		t.Fatalf("expected the scrutinee var-decl plus the narrowed if-chain, got %d statements", len(area.Body))
	}

	circleBranch, ok := area.Body[1].(ir.IfStmt)
	if !ok {
		t.Fatalf("expected the switch to lower to an ir.IfStmt, got %T", area.Body[1])
	}
	assertTagComparison(t, circleBranch.Cond, 0)

	if len(circleBranch.Else) != 1 {
		t.Fatalf("expected a single else-if branch for the rect case, got %d", len(circleBranch.Else))
	}
	rectBranch, ok := circleBranch.Else[0].(ir.IfStmt)
	if !ok {
		t.Fatalf("expected the rect branch to be an ir.IfStmt, got %T", circleBranch.Else[0])
	}
	assertTagComparison(t, rectBranch.Cond, 1)
}

// assertTagComparison checks that cond compares a TagAccess against an
// integer tag literal rather than the discriminant's source string value.
func assertTagComparison(t *testing.T, cond ir.Expr, wantTag int64) {
	t.Helper()
	bin, ok := cond.(ir.BinOp)
	if !ok {
		t.Fatalf("expected the branch condition to be a BinOp, got %T", cond)
	}
	if _, ok := bin.Left.(ir.TagAccess); !ok {
		t.Fatalf("expected the comparison's left side to be a TagAccess, got %T", bin.Left)
	}
	if bin.Left.GetType() != types.I32 {
		t.Fatalf("expected the tag to be typed i32, got %v", bin.Left.GetType())
	}
	lit, ok := bin.Right.(ir.IntLit)
	if !ok {
		t.Fatalf("expected the comparison's right side to be an IntLit tag, got %T", bin.Right)
	}
	if lit.Value != wantTag {
		t.Fatalf("expected tag comparison against %d, got %d", wantTag, lit.Value)
	}
}

func TestLower_EntryFileWithoutStatementsProducesNoMain(t *testing.T) {
	reg := types.NewRegistry()
	resolver := types.NewResolver(reg)
	mz := mono.New(reg)

	f := addFuncFile()
	f.Statements = nil
	prog, _ := Lower([]*ast.File{f}, reg, mz, resolver.ResolveTypeAnnotation, "entry.ts")

	for _, fn := range prog.Functions {
		if fn.IsEntry {
			t.Fatalf("did not expect an entry function when the entry file has no top-level statements: %+v", fn)
		}
	}
}
