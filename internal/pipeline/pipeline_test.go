package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bherbruck/llts/internal/ast"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// parseAddFile returns a fixed AST regardless of on-disk content, since this
// repo does not implement a parser; the tests stand in a minimal ast.File
// for whatever entry path is requested.
func parseAddFile(path string) (*ast.File, error) {
	return &ast.File{
		Path: path,
		Decls: []ast.Decl{
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
		},
		Statements: []ast.Stmt{
			&ast.ExprStmt{Expr: &ast.CallExpr{
				Callee: &ast.Ident{Name: "add"},
				Args:   []ast.Expr{&ast.NumberLit{Value: 1, Raw: "1"}, &ast.NumberLit{Value: 2, Raw: "2"}},
			}},
		},
	}, nil
}

func TestRun_SucceedsOnWellFormedUnit(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.ts", `// entry`)

	result := Run(Config{EntryPath: entry, ParseFile: parseAddFile})
	require.True(t, result.Success, "reports: %+v", result.Reports)
	require.NotNil(t, result.Program)

	found := false
	for _, fn := range result.Program.Functions {
		if fn.Name == "add" {
			found = true
		}
	}
	require.True(t, found, "expected the lowered program to contain the add function")
}

func TestRun_MissingEntryFailsAtResolvePhase(t *testing.T) {
	result := Run(Config{EntryPath: "/nonexistent/entry.ts", ParseFile: parseAddFile})
	require.False(t, result.Success)
	require.Nil(t, result.Program)
}

func TestRun_ParseErrorHaltsBeforeValidate(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.ts", `// entry`)

	parseErr := func(path string) (*ast.File, error) {
		return nil, fmt.Errorf("boom")
	}

	result := Run(Config{EntryPath: entry, ParseFile: parseErr})
	require.False(t, result.Success)
	_, ranValidate := result.PhaseTimings["validate"]
	require.False(t, ranValidate, "expected validate phase to never run after a fatal parse error")
}

func TestRun_ValidationFailureHaltsBeforeLowering(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.ts", `// entry`)

	parseBadFunc := func(path string) (*ast.File, error) {
		return &ast.File{
			Decls: []ast.Decl{
				// Missing parameter type annotation: a VAL002 rejection.
				&ast.FuncDecl{Name: "bad", Params: []*ast.Param{{Name: "x"}}, ReturnType: &ast.NamedType{Name: "i64"}},
			},
		}, nil
	}

	result := Run(Config{EntryPath: entry, ParseFile: parseBadFunc})
	require.False(t, result.Success)
	_, ranLower := result.PhaseTimings["lower"]
	require.False(t, ranLower, "expected the lower phase to never run after a validation failure")
}

func TestRun_DanglingTypeReferenceReportsTYP001(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.ts", `// entry`)

	parseDangling := func(path string) (*ast.File, error) {
		return &ast.File{
			Path: path,
			Decls: []ast.Decl{
				&ast.InterfaceDecl{
					Name: "Holder",
					Fields: []*ast.FieldDecl{
						{Name: "item", Type: &ast.NamedType{Name: "Nowhere"}},
					},
				},
			},
		}, nil
	}

	result := Run(Config{EntryPath: entry, ParseFile: parseDangling})
	require.False(t, result.Success)

	found := false
	for _, r := range result.Reports {
		if r.Code == "TYP001" {
			found = true
		}
	}
	require.True(t, found, "expected a TYP001 report for the dangling `Nowhere` reference, got %+v", result.Reports)
}

func TestRun_RecordsPhaseTimingsOnSuccess(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.ts", `// entry`)

	result := Run(Config{EntryPath: entry, ParseFile: parseAddFile})
	for _, phase := range []string{"resolve", "parse", "validate", "types", "lower"} {
		_, ok := result.PhaseTimings[phase]
		require.True(t, ok, "expected a recorded timing for phase %q", phase)
	}
}
