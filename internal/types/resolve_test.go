package types

import (
	"testing"

	"github.com/bherbruck/llts/internal/ast"
)

func TestResolver_RegisterInterfaceAsStruct(t *testing.T) {
	reg := NewRegistry()
	r := NewResolver(reg)

	id := r.RegisterInterface(&ast.InterfaceDecl{
		Name: "Point",
		Fields: []*ast.FieldDecl{
			{Name: "x", Type: &ast.NamedType{Name: "i64"}},
			{Name: "y", Type: &ast.NamedType{Name: "i64"}, Readonly: true},
		},
	})

	_, ty, ok := reg.Lookup("Point")
	if !ok {
		t.Fatal("expected Point to be registered")
	}
	s, ok := ty.(*Struct)
	if !ok {
		t.Fatalf("expected *Struct, got %T", ty)
	}
	if len(s.Fields) != 2 || s.Fields[1].Readonly != true {
		t.Errorf("expected 2 fields with readonly preserved, got %+v", s.Fields)
	}
	if gotID, _, _ := reg.Lookup("Point"); gotID != id {
		t.Errorf("expected RegisterInterface to return the registered id")
	}
}

func TestResolver_RegisterEnumAssignsSequentialTags(t *testing.T) {
	reg := NewRegistry()
	r := NewResolver(reg)

	r.RegisterEnum(&ast.EnumDecl{
		Name: "Color",
		Members: []*ast.EnumMember{
			{Name: "Red"},
			{Name: "Green"},
			{Name: "Blue"},
		},
	})

	_, ty, _ := reg.Lookup("Color")
	e, ok := ty.(*Enum)
	if !ok {
		t.Fatalf("expected *Enum, got %T", ty)
	}
	for i, v := range e.Variants {
		if v.Tag != i {
			t.Errorf("expected variant %d to have tag %d, got %d", i, i, v.Tag)
		}
	}
}

func TestResolver_RegisterEnumHonorsExplicitNumericSeed(t *testing.T) {
	reg := NewRegistry()
	r := NewResolver(reg)

	r.RegisterEnum(&ast.EnumDecl{
		Name: "Status",
		Members: []*ast.EnumMember{
			{Name: "Active", Value: int64(10)},
			{Name: "Inactive"},
		},
	})

	_, ty, _ := reg.Lookup("Status")
	e := ty.(*Enum)
	if e.Variants[0].Tag != 10 {
		t.Errorf("expected explicit tag 10, got %d", e.Variants[0].Tag)
	}
	if e.Variants[1].Tag != 11 {
		t.Errorf("expected auto-increment to continue from the explicit seed, got %d", e.Variants[1].Tag)
	}
}

func TestResolver_RegisterAliasToAggregateRegistersDirectly(t *testing.T) {
	reg := NewRegistry()
	r := NewResolver(reg)

	r.RegisterAlias(&ast.TypeAliasDecl{
		Name: "PointAlias",
		Value: &ast.NamedType{Name: "PointStruct"},
	})
	// First make PointStruct resolve to a real struct.
	reg.Register("PointStruct", &Struct{Name: "PointStruct"})
	r2 := NewResolver(reg)
	r2.RegisterAlias(&ast.TypeAliasDecl{
		Name:  "PointAlias2",
		Value: &ast.NamedType{Name: "PointStruct"},
	})

	_, ty, _ := reg.Lookup("PointAlias2")
	if _, ok := ty.(*Ref); !ok {
		t.Fatalf("expected a named reference to resolve to a Ref placeholder, got %T", ty)
	}
}

func TestResolver_RegisterAliasToPrimitiveWrapsInAlias(t *testing.T) {
	reg := NewRegistry()
	r := NewResolver(reg)

	r.RegisterAlias(&ast.TypeAliasDecl{Name: "UserId", Value: &ast.NamedType{Name: "i64"}})

	_, ty, _ := reg.Lookup("UserId")
	a, ok := ty.(*Alias)
	if !ok {
		t.Fatalf("expected *Alias wrapping a primitive, got %T", ty)
	}
	if a.Inner != Type(I64) {
		t.Errorf("expected alias inner to be i64, got %v", a.Inner)
	}
}

func TestResolver_ResolveNamedForwardReferencesThenDefines(t *testing.T) {
	reg := NewRegistry()
	r := NewResolver(reg)

	// A reference appears before its target is declared.
	ref := r.ResolveTypeAnnotation(&ast.NamedType{Name: "Node"})
	refTyped, ok := ref.(*Ref)
	if !ok {
		t.Fatalf("expected a forward Ref, got %T", ref)
	}

	r.RegisterInterface(&ast.InterfaceDecl{Name: "Node", Fields: nil})

	resolved := reg.Resolve(refTyped)
	if _, ok := resolved.(*Struct); !ok {
		t.Fatalf("expected the forward ref to resolve to the later-declared struct, got %T", resolved)
	}
}

func TestResolver_ResolveTypeAnnotationBuiltins(t *testing.T) {
	reg := NewRegistry()
	r := NewResolver(reg)

	arr := r.ResolveTypeAnnotation(&ast.ArrayType{Elem: &ast.NamedType{Name: "i64"}})
	a, ok := arr.(*Array)
	if !ok || a.Elem != Type(I64) {
		t.Errorf("expected Array<i64>, got %T %v", arr, arr)
	}

	opt := r.ResolveTypeAnnotation(&ast.NamedType{Name: "Option", TypeArgs: []ast.Type{&ast.NamedType{Name: "i64"}}})
	if _, ok := opt.(*Option); !ok {
		t.Errorf("expected Option<i64>, got %T", opt)
	}

	res := r.ResolveTypeAnnotation(&ast.ResultType{
		Ok:  &ast.NamedType{Name: "i64"},
		Err: &ast.NamedType{Name: "string"},
	})
	if _, ok := res.(*Result); !ok {
		t.Errorf("expected *Result, got %T", res)
	}
}

func TestResolver_ResolveTypeAnnotationNilIsUnknown(t *testing.T) {
	reg := NewRegistry()
	r := NewResolver(reg)

	if _, ok := r.ResolveTypeAnnotation(nil).(Unknown); !ok {
		t.Error("expected a nil annotation to resolve to Unknown")
	}
}
