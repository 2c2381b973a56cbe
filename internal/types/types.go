// Package types implements the typed IR's type system: the tagged-sum Type
// representation and the process-local Registry that names and resolves it.
package types

import (
	"fmt"
	"strings"
)

// Type is the tagged sum at the center of the type system. Every concrete
// type below implements it; callers switch on the concrete Go type to
// inspect a value, mirroring the teacher's Kind interface.
type Type interface {
	String() string
	typeNode()
}

// ---------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------

// PrimKind enumerates the primitive tags.
type PrimKind int

const (
	KNumber PrimKind = iota // default untyped numeric literal form (64-bit float)
	KI8
	KI16
	KI32
	KI64
	KU8
	KU16
	KU32
	KU64
	KF32
	KF64
	KBoolean
	KString
	KVoid
	KNever
)

var primNames = map[PrimKind]string{
	KNumber:  "number",
	KI8:      "i8",
	KI16:     "i16",
	KI32:     "i32",
	KI64:     "i64",
	KU8:      "u8",
	KU16:     "u16",
	KU32:     "u32",
	KU64:     "u64",
	KF32:     "f32",
	KF64:     "f64",
	KBoolean: "boolean",
	KString:  "string",
	KVoid:    "void",
	KNever:   "never",
}

// Primitive is a sized numeric, boolean, string, void, or never type.
type Primitive struct{ Kind PrimKind }

func (p Primitive) typeNode()      {}
func (p Primitive) String() string { return primNames[p.Kind] }

// IsInteger reports whether p is one of the signed/unsigned integer kinds.
func (p Primitive) IsInteger() bool {
	switch p.Kind {
	case KI8, KI16, KI32, KI64, KU8, KU16, KU32, KU64:
		return true
	}
	return false
}

// IsSigned reports whether p is a signed integer kind.
func (p Primitive) IsSigned() bool {
	switch p.Kind {
	case KI8, KI16, KI32, KI64:
		return true
	}
	return false
}

// IsFloat reports whether p is f32/f64/number.
func (p Primitive) IsFloat() bool {
	return p.Kind == KF32 || p.Kind == KF64 || p.Kind == KNumber
}

// Width returns the bit width for sized numeric kinds, 0 otherwise.
func (p Primitive) Width() int {
	switch p.Kind {
	case KI8, KU8:
		return 8
	case KI16, KU16:
		return 16
	case KI32, KU32, KF32:
		return 32
	case KI64, KU64, KF64, KNumber:
		return 64
	}
	return 0
}

// Named primitive constructors, used throughout the resolver.
var (
	Number  = Primitive{KNumber}
	I8      = Primitive{KI8}
	I16     = Primitive{KI16}
	I32     = Primitive{KI32}
	I64     = Primitive{KI64}
	U8      = Primitive{KU8}
	U16     = Primitive{KU16}
	U32     = Primitive{KU32}
	U64     = Primitive{KU64}
	F32     = Primitive{KF32}
	F64     = Primitive{KF64}
	Boolean = Primitive{KBoolean}
	String  = Primitive{KString}
	Void    = Primitive{KVoid}
	Never   = Primitive{KNever}
)

// primitiveByName maps the source-level ambient numeric names to Primitive.
var primitiveByName = map[string]Primitive{
	"i8": I8, "i16": I16, "i32": I32, "i64": I64,
	"u8": U8, "u16": U16, "u32": U32, "u64": U64,
	"f32": F32, "f64": F64,
	"boolean": Boolean, "string": String, "void": Void, "never": Never,
	"number": Number,
}

// LookupPrimitive returns the Primitive named by a source identifier, if any.
func LookupPrimitive(name string) (Primitive, bool) {
	p, ok := primitiveByName[name]
	return p, ok
}

// ---------------------------------------------------------------------
// Aggregates
// ---------------------------------------------------------------------

// StructField is one ordered field of a Struct.
type StructField struct {
	Name     string
	Type     Type
	Readonly bool
	Optional bool
}

// Struct is a structurally-typed record with declaration-order fields.
type Struct struct {
	Name       string
	Fields     []StructField
	TypeParams []string // empty once monomorphized
}

func (s *Struct) typeNode() {}
func (s *Struct) String() string {
	if s.Name != "" {
		return s.Name
	}
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// FieldIndex returns the declaration-order index of name, or -1.
func (s *Struct) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Array is a homogeneous, growable sequence type.
type Array struct{ Elem Type }

func (a *Array) typeNode()      {}
func (a *Array) String() string { return fmt.Sprintf("Array<%s>", a.Elem) }

// Tuple is a fixed-length heterogeneous sequence type.
type Tuple struct{ Elems []Type }

func (t *Tuple) typeNode() {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ---------------------------------------------------------------------
// Sum types
// ---------------------------------------------------------------------

// UnionVariant is one tagged member of a Union.
type UnionVariant struct {
	Tag  int
	Type Type
}

// Union is a tagged sum over heterogeneous variants, tags 0..n-1 in source
// order.
type Union struct {
	Name     string // empty for anonymous unions
	Variants []UnionVariant
}

func (u *Union) typeNode() {}
func (u *Union) String() string {
	if u.Name != "" {
		return u.Name
	}
	parts := make([]string, len(u.Variants))
	for i, v := range u.Variants {
		parts[i] = v.Type.String()
	}
	return strings.Join(parts, " | ")
}

// EnumVariant is one member of an Enum.
type EnumVariant struct {
	Name  string
	Tag   int
	Value interface{} // int64 or string; the runtime representation is always Tag
}

// Enum is a tagged enum, numeric or string-initialized in source but always
// an integer tag at runtime.
type Enum struct {
	Name     string
	Variants []EnumVariant
	IsConst  bool
}

func (e *Enum) typeNode()      {}
func (e *Enum) String() string { return e.Name }

// Option is `Option(inner)`, normalized representation of `T | null`.
type Option struct{ Inner Type }

func (o *Option) typeNode()      {}
func (o *Option) String() string { return fmt.Sprintf("Option<%s>", o.Inner) }

// Result is `Result{ok, err}`.
type Result struct{ Ok, Err Type }

func (r *Result) typeNode()      {}
func (r *Result) String() string { return fmt.Sprintf("Result<%s, %s>", r.Ok, r.Err) }

// ---------------------------------------------------------------------
// Function value
// ---------------------------------------------------------------------

// FuncParam is one named, typed parameter of a Function type.
type FuncParam struct {
	Name string
	Type Type
}

// Function is a first-class function value's type.
type Function struct {
	Params     []FuncParam
	Return     Type
	TypeParams []string // empty once monomorphized
}

func (f *Function) typeNode() {}
func (f *Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Type.String()
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), f.Return)
}

// ---------------------------------------------------------------------
// Wrappers
// ---------------------------------------------------------------------

// Readonly marks a borrow-only value; mutation through it is an ownership
// error.
type Readonly struct{ Inner Type }

func (r *Readonly) typeNode()      {}
func (r *Readonly) String() string { return fmt.Sprintf("Readonly<%s>", r.Inner) }

// Weak is a non-owning back-reference.
type Weak struct{ Inner Type }

func (w *Weak) typeNode()      {}
func (w *Weak) String() string { return fmt.Sprintf("Weak<%s>", w.Inner) }

// ---------------------------------------------------------------------
// Indirection
// ---------------------------------------------------------------------

// Alias is a transparent rename, and (pre-monomorphization) the
// representation of a generic type-parameter placeholder.
type Alias struct {
	Name  string
	Inner Type // nil for an unresolved type-parameter placeholder
}

func (a *Alias) typeNode()      {}
func (a *Alias) String() string { return a.Name }

// Ref points at a registry entry by dense integer id, used for forward
// references and recursive types.
type Ref struct{ ID int }

func (r *Ref) typeNode()      {}
func (r *Ref) String() string { return fmt.Sprintf("ref<%d>", r.ID) }

// Generic is a pre-monomorphization function or struct/type, carrying its
// type-parameter names and underlying shape. It is never emitted as code;
// only monomorphize()'d specializations are.
type Generic struct {
	Name       string
	TypeParams []string
	Base       Type
}

func (g *Generic) typeNode()      {}
func (g *Generic) String() string { return fmt.Sprintf("%s<%s>", g.Name, strings.Join(g.TypeParams, ", ")) }

// Unknown is the unresolved placeholder. The validator must never let it
// escape its own pass except for opaque forward references.
type Unknown struct{}

func (Unknown) typeNode()      {}
func (Unknown) String() string { return "Unknown" }
