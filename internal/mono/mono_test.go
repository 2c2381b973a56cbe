package mono

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/errors"
	"github.com/bherbruck/llts/internal/types"
)

func identityResolve(t ast.Type) types.Type {
	if n, ok := t.(*ast.NamedType); ok {
		if prim, ok := types.LookupPrimitive(n.Name); ok {
			return prim
		}
	}
	return types.Unknown{}
}

func TestMonomorphizeFunction_CachesByMangledName(t *testing.T) {
	reg := types.NewRegistry()
	m := New(reg)

	m.RegisterGenericFunction("identity", []*ast.TypeParam{{Name: "T"}},
		&types.Function{Params: []types.FuncParam{{Name: "x", Type: &types.Alias{Name: "T"}}}, Return: &types.Alias{Name: "T"}},
		identityResolve)

	name1, ok1 := m.MonomorphizeFunction("identity", []types.Type{types.I64}, ast.Pos{})
	name2, ok2 := m.MonomorphizeFunction("identity", []types.Type{types.I64}, ast.Pos{})
	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, name1, name2)
	require.Len(t, m.Instances(), 1)
}

func TestMonomorphizeFunction_DifferentArgsProduceDifferentNames(t *testing.T) {
	reg := types.NewRegistry()
	m := New(reg)
	m.RegisterGenericFunction("identity", []*ast.TypeParam{{Name: "T"}},
		&types.Function{Params: []types.FuncParam{{Name: "x", Type: &types.Alias{Name: "T"}}}, Return: &types.Alias{Name: "T"}},
		identityResolve)

	nameI64, _ := m.MonomorphizeFunction("identity", []types.Type{types.I64}, ast.Pos{})
	nameBool, _ := m.MonomorphizeFunction("identity", []types.Type{types.Boolean}, ast.Pos{})
	require.NotEqual(t, nameI64, nameBool)
}

func TestMonomorphizeFunction_SubstitutesTypeParamInSignature(t *testing.T) {
	reg := types.NewRegistry()
	m := New(reg)
	m.RegisterGenericFunction("box", []*ast.TypeParam{{Name: "T"}},
		&types.Function{
			Params: []types.FuncParam{{Name: "x", Type: &types.Alias{Name: "T"}}},
			Return: &types.Array{Elem: &types.Alias{Name: "T"}},
		},
		identityResolve)

	mangled, ok := m.MonomorphizeFunction("box", []types.Type{types.I64}, ast.Pos{})
	require.True(t, ok)
	inst, ok := m.GetInstance(mangled)
	require.True(t, ok)

	fn, ok := inst.Specialized.(*types.Function)
	require.True(t, ok)
	require.Equal(t, types.Type(types.I64), fn.Params[0].Type)

	arr, ok := fn.Return.(*types.Array)
	require.True(t, ok)
	require.Equal(t, types.Type(types.I64), arr.Elem)
}

func TestMonomorphizeType_RegistersSpecializationInRegistry(t *testing.T) {
	reg := types.NewRegistry()
	m := New(reg)
	m.RegisterGenericType("Box", []*ast.TypeParam{{Name: "T"}},
		&types.Struct{Name: "Box", Fields: []types.StructField{{Name: "value", Type: &types.Alias{Name: "T"}}}},
		identityResolve)

	mangled, ok := m.MonomorphizeType("Box", []types.Type{types.I64}, ast.Pos{})
	require.True(t, ok)

	_, ty, ok := reg.Lookup(mangled)
	require.True(t, ok)

	s, ok := ty.(*types.Struct)
	require.True(t, ok)
	require.Equal(t, types.Type(types.I64), s.Fields[0].Type)
}

func TestMonomorphizeFunction_UnknownNameFails(t *testing.T) {
	reg := types.NewRegistry()
	m := New(reg)
	_, ok := m.MonomorphizeFunction("nope", nil, ast.Pos{})
	require.False(t, ok)
}

func TestResolveDefaults_MissingDefaultReportsMONO002(t *testing.T) {
	reg := types.NewRegistry()
	m := New(reg)
	m.RegisterGenericFunction("identity", []*ast.TypeParam{{Name: "T"}},
		&types.Function{Params: nil, Return: &types.Alias{Name: "T"}},
		identityResolve)

	_, ok := m.ResolveDefaults("identity", ast.Pos{})
	require.False(t, ok)

	found := false
	for _, r := range m.Reports {
		if r.Code == errors.MONO002 {
			found = true
		}
	}
	require.True(t, found, "expected a MONO002 report, got %+v", m.Reports)
}

func TestResolveDefaults_AllDefaultsPresentSucceeds(t *testing.T) {
	reg := types.NewRegistry()
	m := New(reg)
	m.RegisterGenericFunction("identity",
		[]*ast.TypeParam{{Name: "T", Default: &ast.NamedType{Name: "i64"}}},
		&types.Function{Return: &types.Alias{Name: "T"}},
		identityResolve)

	args, ok := m.ResolveDefaults("identity", ast.Pos{})
	require.True(t, ok)
	require.Equal(t, []types.Type{types.I64}, args)
}

func TestCheckConstraints_MismatchWarnsButProceeds(t *testing.T) {
	reg := types.NewRegistry()
	m := New(reg)
	m.RegisterGenericFunction("identity",
		[]*ast.TypeParam{{Name: "T", Constraint: &ast.UnionType{Variants: []ast.Type{&ast.NamedType{Name: "i64"}, &ast.NamedType{Name: "boolean"}}}}},
		&types.Function{Params: []types.FuncParam{{Name: "x", Type: &types.Alias{Name: "T"}}}, Return: &types.Alias{Name: "T"}},
		identityResolve)

	mangled, ok := m.MonomorphizeFunction("identity", []types.Type{types.String}, ast.Pos{})
	require.True(t, ok)
	require.NotEmpty(t, mangled)

	found := false
	for _, r := range m.Reports {
		if r.Code == errors.MONO001 {
			found = true
		}
	}
	require.True(t, found, "expected a MONO001 warning report, got %+v", m.Reports)
}

func TestCheckArity_MismatchReportsTYP002ButMatchDoesNotReport(t *testing.T) {
	reg := types.NewRegistry()
	m := New(reg)
	m.RegisterGenericFunction("pair",
		[]*ast.TypeParam{{Name: "A"}, {Name: "B"}},
		&types.Function{Return: &types.Alias{Name: "A"}},
		identityResolve)

	require.True(t, m.CheckArity("pair", 2, ast.Pos{}))
	require.Empty(t, m.Reports)

	require.False(t, m.CheckArity("pair", 1, ast.Pos{}))
	require.Len(t, m.Reports, 1)
	require.Equal(t, errors.TYP002, m.Reports[0].Code)

	// An unknown name (not registered) has nothing to check arity against.
	require.True(t, m.CheckArity("nonexistent", 3, ast.Pos{}))
	require.Len(t, m.Reports, 1)
}
