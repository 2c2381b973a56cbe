package intrinsics

import (
	"testing"

	"github.com/bherbruck/llts/internal/types"
)

func TestIsIntrinsic(t *testing.T) {
	if !IsIntrinsic("print") {
		t.Error("expected print to be a registered intrinsic")
	}
	if IsIntrinsic("not_a_real_intrinsic") {
		t.Error("expected an unregistered name to report false")
	}
}

func TestLookup_PrintIsVariadicVoid(t *testing.T) {
	meta, ok := Lookup("print")
	if !ok {
		t.Fatal("expected print to be registered")
	}
	if meta.NumArgs != -1 {
		t.Errorf("expected print to be variadic (-1), got %d", meta.NumArgs)
	}
	if meta.Return != types.Void {
		t.Errorf("expected print to return void, got %v", meta.Return)
	}
}

func TestLookup_MathPowIsBinary(t *testing.T) {
	meta, ok := Lookup("Math_pow")
	if !ok {
		t.Fatal("expected Math_pow to be registered")
	}
	if meta.NumArgs != 2 {
		t.Errorf("expected Math_pow to take 2 args, got %d", meta.NumArgs)
	}
	if meta.Return != types.Number {
		t.Errorf("expected Math_pow to return number, got %v", meta.Return)
	}
}

func TestLookup_ArrayLengthReturnsI64(t *testing.T) {
	meta, ok := Lookup("array_length")
	if !ok {
		t.Fatal("expected array_length to be registered")
	}
	if meta.Return != types.I64 {
		t.Errorf("expected array_length to return i64, got %v", meta.Return)
	}
}

func TestLookup_UnknownNameFails(t *testing.T) {
	if _, ok := Lookup("nonexistent"); ok {
		t.Error("expected Lookup on an unregistered name to fail")
	}
}

func TestNames_IncludesEveryRegisteredIntrinsic(t *testing.T) {
	names := Names()
	if len(names) != len(Registry) {
		t.Fatalf("expected Names() to report %d entries, got %d", len(Registry), len(names))
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{"print", "typeof", "instanceof", "string_length", "array_push", "Math_sqrt"} {
		if !seen[want] {
			t.Errorf("expected %q among registered intrinsic names", want)
		}
	}
}
