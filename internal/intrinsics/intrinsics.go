// Package intrinsics holds metadata for the runtime-provided operations the
// lowering engine references by name in IntrinsicCall nodes: console/Math
// stubs, array mutation/query helpers, and the handful of primitive queries
// (length, typeof, instanceof) that have no user-level declaration anywhere
// in a source program. The C shims that actually implement these at link
// time are an external collaborator; this package only records the shape
// each one expects, so the lowering engine and any consumer of the typed IR
// agree on arity and typing without re-deriving it from the call sites.
package intrinsics

import "github.com/bherbruck/llts/internal/types"

// Meta describes one intrinsic's calling convention.
type Meta struct {
	Name    string
	NumArgs int // -1 means variadic (e.g. print)
	Return  types.Type
}

// Registry holds every intrinsic's metadata, keyed by the name lowering
// emits in ir.IntrinsicCall.Name.
var Registry = make(map[string]*Meta)

func init() {
	registerIOMeta()
	registerMathMeta()
	registerArrayMeta()
	registerPrimitiveMeta()
}

// IsIntrinsic reports whether name is a registered intrinsic.
func IsIntrinsic(name string) bool {
	_, ok := Registry[name]
	return ok
}

// Lookup returns an intrinsic's metadata.
func Lookup(name string) (*Meta, bool) {
	m, ok := Registry[name]
	return m, ok
}

// Names returns every registered intrinsic name.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	return names
}

func registerIOMeta() {
	Registry["print"] = &Meta{Name: "print", NumArgs: -1, Return: types.Void}
}

func registerMathMeta() {
	unary := []string{"abs", "floor", "ceil", "round", "sqrt", "trunc", "log", "log2", "log10", "sin", "cos", "tan"}
	for _, name := range unary {
		full := "Math_" + name
		Registry[full] = &Meta{Name: full, NumArgs: 1, Return: types.Number}
	}
	Registry["Math_pow"] = &Meta{Name: "Math_pow", NumArgs: 2, Return: types.Number}
	Registry["Math_min"] = &Meta{Name: "Math_min", NumArgs: -1, Return: types.Number}
	Registry["Math_max"] = &Meta{Name: "Math_max", NumArgs: -1, Return: types.Number}
	Registry["Math_random"] = &Meta{Name: "Math_random", NumArgs: 0, Return: types.Number}
}

func registerArrayMeta() {
	// First argument is always the receiver array; NumArgs counts it.
	Registry["array_push"] = &Meta{Name: "array_push", NumArgs: -1, Return: types.I64}
	Registry["array_pop"] = &Meta{Name: "array_pop", NumArgs: 1, Return: types.Unknown{}}
	Registry["array_shift"] = &Meta{Name: "array_shift", NumArgs: 1, Return: types.Unknown{}}
	Registry["array_unshift"] = &Meta{Name: "array_unshift", NumArgs: -1, Return: types.I64}
	Registry["array_splice"] = &Meta{Name: "array_splice", NumArgs: -1, Return: types.Unknown{}}
	Registry["array_sort"] = &Meta{Name: "array_sort", NumArgs: -1, Return: types.Unknown{}}
	Registry["array_reverse"] = &Meta{Name: "array_reverse", NumArgs: 1, Return: types.Unknown{}}
	Registry["array_fill"] = &Meta{Name: "array_fill", NumArgs: -1, Return: types.Unknown{}}
	Registry["array_copyWithin"] = &Meta{Name: "array_copyWithin", NumArgs: -1, Return: types.Unknown{}}
	Registry["array_set"] = &Meta{Name: "array_set", NumArgs: 3, Return: types.Void}
	Registry["array_delete"] = &Meta{Name: "array_delete", NumArgs: 2, Return: types.Void}
	Registry["array_clear"] = &Meta{Name: "array_clear", NumArgs: 1, Return: types.Void}
	Registry["array_slice"] = &Meta{Name: "array_slice", NumArgs: -1, Return: types.Unknown{}}
	Registry["array_map"] = &Meta{Name: "array_map", NumArgs: 2, Return: types.Unknown{}}
	Registry["array_filter"] = &Meta{Name: "array_filter", NumArgs: 2, Return: types.Unknown{}}
	Registry["array_includes"] = &Meta{Name: "array_includes", NumArgs: 2, Return: types.Boolean}
	Registry["array_indexOf"] = &Meta{Name: "array_indexOf", NumArgs: 2, Return: types.I64}
	Registry["array_join"] = &Meta{Name: "array_join", NumArgs: -1, Return: types.String}
	Registry["array_length"] = &Meta{Name: "array_length", NumArgs: 1, Return: types.I64}
}

func registerPrimitiveMeta() {
	Registry["string_length"] = &Meta{Name: "string_length", NumArgs: 1, Return: types.I64}
	Registry["typeof"] = &Meta{Name: "typeof", NumArgs: 1, Return: types.String}
	Registry["instanceof"] = &Meta{Name: "instanceof", NumArgs: 2, Return: types.Boolean}
}
