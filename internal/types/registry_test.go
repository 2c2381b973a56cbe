package types

import "testing"

func TestRegistry_RegisterIsIdempotentOnName(t *testing.T) {
	reg := NewRegistry()
	id1 := reg.Register("Point", &Struct{Name: "Point"})
	id2 := reg.Register("Point", I64)

	if id1 != id2 {
		t.Fatalf("expected same id for repeat registration, got %d and %d", id1, id2)
	}
	_, ty, _ := reg.Lookup("Point")
	if _, ok := ty.(*Struct); !ok {
		t.Fatalf("expected second Register call to be a no-op, got %v", ty)
	}
}

func TestRegistry_ForwardThenUpdateReplacesPlaceholder(t *testing.T) {
	reg := NewRegistry()
	id := reg.Forward("Node")

	_, ty, _ := reg.Lookup("Node")
	if _, ok := ty.(Unknown); !ok {
		t.Fatalf("expected Unknown placeholder before Update, got %v", ty)
	}

	real := &Struct{Name: "Node"}
	reg.Update("Node", real)

	gotID, gotTy, ok := reg.Lookup("Node")
	if !ok || gotID != id {
		t.Fatalf("expected Update to keep the same id %d, got %d", id, gotID)
	}
	if gotTy != Type(real) {
		t.Fatalf("expected Update to replace the placeholder, got %v", gotTy)
	}
}

func TestRegistry_UpdateOnUnknownNameIsNoop(t *testing.T) {
	reg := NewRegistry()
	reg.Update("Ghost", I64)
	if _, _, ok := reg.Lookup("Ghost"); ok {
		t.Fatal("expected Update on an unregistered name to remain a no-op")
	}
}

func TestRegistry_ResolveDanglingRefReturnsUnknown(t *testing.T) {
	reg := NewRegistry()
	got := reg.Resolve(&Ref{ID: 99})
	if _, ok := got.(Unknown); !ok {
		t.Fatalf("expected dangling ref to resolve to Unknown, got %v", got)
	}
}

func TestRegistry_ResolveFollowsRegisteredID(t *testing.T) {
	reg := NewRegistry()
	id := reg.Register("Id", I64)
	got := reg.Resolve(&Ref{ID: id})
	if got != Type(I64) {
		t.Fatalf("expected Resolve to find the registered type, got %v", got)
	}
}

func TestRegistry_NameOfRoundTrips(t *testing.T) {
	reg := NewRegistry()
	id := reg.Register("Widget", I64)
	name, ok := reg.NameOf(id)
	if !ok || name != "Widget" {
		t.Fatalf("expected NameOf(%d) == \"Widget\", got %q, %v", id, name, ok)
	}
	if _, ok := reg.NameOf(id + 1); ok {
		t.Fatal("expected NameOf on an out-of-range id to report not-found")
	}
}

func TestRegistry_EquivalentPrimitives(t *testing.T) {
	reg := NewRegistry()
	if !reg.Equivalent(I64, I64) {
		t.Error("expected I64 equivalent to itself")
	}
	if reg.Equivalent(I64, Boolean) {
		t.Error("expected I64 not equivalent to Boolean")
	}
}

func TestRegistry_EquivalentStructsCompareFieldwise(t *testing.T) {
	reg := NewRegistry()
	a := &Struct{Fields: []StructField{{Name: "x", Type: I64}, {Name: "y", Type: I64}}}
	b := &Struct{Fields: []StructField{{Name: "x", Type: I64}, {Name: "y", Type: I64}}}
	c := &Struct{Fields: []StructField{{Name: "x", Type: I64}, {Name: "y", Type: Boolean}}}

	if !reg.Equivalent(a, b) {
		t.Error("expected structurally identical structs to be equivalent")
	}
	if reg.Equivalent(a, c) {
		t.Error("expected field-type mismatch to break equivalence")
	}
}

func TestRegistry_EquivalentThroughAliasAndRef(t *testing.T) {
	reg := NewRegistry()
	id := reg.Register("Id", I64)
	alias := &Alias{Name: "Id", Inner: I64}
	ref := &Ref{ID: id}

	if !reg.Equivalent(alias, I64) {
		t.Error("expected alias to be transparent to its inner type")
	}
	if !reg.Equivalent(ref, I64) {
		t.Error("expected ref to resolve through the registry for equivalence")
	}
}

func TestRegistry_EquivalentUnknownOnlyMatchesUnknown(t *testing.T) {
	reg := NewRegistry()
	if !reg.Equivalent(Unknown{}, Unknown{}) {
		t.Error("expected Unknown equivalent to Unknown")
	}
	if reg.Equivalent(Unknown{}, I64) {
		t.Error("expected Unknown not equivalent to a concrete type")
	}
}

func TestRegistry_NameNormalization(t *testing.T) {
	reg := NewRegistry()
	// precomposed single codepoint vs. "e" + combining acute accent (U+0301).
	precomposed := "Caf\u00e9"
	decomposed := "Cafe\u0301"

	id := reg.Register(precomposed, I64)
	gotID, _, ok := reg.Lookup(decomposed)
	if !ok || gotID != id {
		t.Fatalf("expected NFC-normalized lookup to find the same entry, got %d, %v", gotID, ok)
	}
}

func TestRegistry_UnresolvedNames(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Known", I64)
	reg.Forward("Dangling")

	unresolved := reg.UnresolvedNames()
	if len(unresolved) != 1 || unresolved[0] != "Dangling" {
		t.Fatalf("expected only the unresolved forward reference, got %v", unresolved)
	}

	reg.Update("Dangling", I64)
	if got := reg.UnresolvedNames(); len(got) != 0 {
		t.Fatalf("expected no unresolved names after Update, got %v", got)
	}
}
