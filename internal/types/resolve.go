package types

import (
	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/errors"
)

// Resolver converts source type-annotation AST nodes into typed-IR Type
// values, registering declarations along the way. It holds no state beyond
// the Registry it wraps, so it can be constructed fresh per file and still
// share one Registry across a whole compilation unit.
type Resolver struct {
	Reg     *Registry
	Reports []*errors.Report
}

// NewResolver returns a Resolver backed by reg.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{Reg: reg}
}

func (r *Resolver) report(code string, pos ast.Pos, msg string) {
	span := ast.Span{Start: pos, End: pos}
	r.Reports = append(r.Reports, errors.New(code, &span, msg))
}

// define installs t under name, resolving any forward-reference placeholder
// a prior Ref already registered under that name. Register alone is
// idempotent on name, so a name seen earlier via Forward must go through
// Update here rather than a second Register call, or its real shape would
// never replace the Unknown{} placeholder.
func (r *Resolver) define(name string, t Type) int {
	id := r.Reg.Register(name, t)
	r.Reg.Update(name, t)
	return id
}

// RegisterInterface materializes an interface declaration as a Struct with
// ordered fields.
func (r *Resolver) RegisterInterface(d *ast.InterfaceDecl) int {
	fields := r.resolveFields(d.Fields)
	typeParams := typeParamNames(d.TypeParams)
	return r.define(d.Name, &Struct{Name: d.Name, Fields: fields, TypeParams: typeParams})
}

// RegisterClass treats a class as a struct of its property declarations;
// methods are not part of the struct shape (they become standalone
// functions during lowering).
func (r *Resolver) RegisterClass(d *ast.ClassDecl) int {
	fields := r.resolveFields(d.Fields)
	typeParams := typeParamNames(d.TypeParams)
	return r.define(d.Name, &Struct{Name: d.Name, Fields: fields, TypeParams: typeParams})
}

// RegisterEnum emits an Enum with variants in source order. Explicit numeric
// initializers set the next auto-increment seed to value+1; string-valued
// variants receive sequential integer tags at runtime and keep their string
// value for compile-time use only.
func (r *Resolver) RegisterEnum(d *ast.EnumDecl) int {
	variants := make([]EnumVariant, len(d.Members))
	nextTag := 0
	for i, m := range d.Members {
		tag := nextTag
		var value interface{} = int64(tag)
		switch v := m.Value.(type) {
		case int64:
			tag = int(v)
			value = v
			nextTag = tag + 1
		case string:
			value = v
			nextTag = tag + 1
		default:
			nextTag = tag + 1
		}
		variants[i] = EnumVariant{Name: m.Name, Tag: tag, Value: value}
	}
	return r.define(d.Name, &Enum{Name: d.Name, Variants: variants, IsConst: d.IsConst})
}

// RegisterAlias registers a type alias. If the right-hand side resolves to
// Struct/Union/Enum, it is registered directly under the alias name;
// otherwise it is wrapped in Alias{name, inner}.
func (r *Resolver) RegisterAlias(d *ast.TypeAliasDecl) int {
	inner := r.ResolveTypeAnnotation(d.Value)
	switch inner.(type) {
	case *Struct, *Union, *Enum:
		return r.define(d.Name, inner)
	default:
		return r.define(d.Name, &Alias{Name: d.Name, Inner: inner})
	}
}

func (r *Resolver) resolveFields(decls []*ast.FieldDecl) []StructField {
	fields := make([]StructField, len(decls))
	for i, f := range decls {
		fields[i] = StructField{
			Name:     f.Name,
			Type:     r.ResolveTypeAnnotation(f.Type),
			Readonly: f.Readonly,
			Optional: f.Optional,
		}
	}
	return fields
}

func typeParamNames(tps []*ast.TypeParam) []string {
	if len(tps) == 0 {
		return nil
	}
	names := make([]string, len(tps))
	for i, tp := range tps {
		names[i] = tp.Name
	}
	return names
}

// ResolveTypeAnnotation resolves an arbitrary type-annotation AST node to a
// type-IR value, per the key resolution rules of spec §4.3.
func (r *Resolver) ResolveTypeAnnotation(t ast.Type) Type {
	if t == nil {
		return Unknown{}
	}
	switch n := t.(type) {
	case *ast.NamedType:
		return r.resolveNamed(n)
	case *ast.ArrayType:
		return &Array{Elem: r.ResolveTypeAnnotation(n.Elem)}
	case *ast.TupleType:
		elems := make([]Type, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = r.ResolveTypeAnnotation(e)
		}
		return &Tuple{Elems: elems}
	case *ast.UnionType:
		variants := make([]Type, len(n.Variants))
		for i, v := range n.Variants {
			variants[i] = r.ResolveTypeAnnotation(v)
		}
		return NormalizeUnion(variants)
	case *ast.IntersectionType:
		parts := make([]Type, len(n.Parts))
		for i, p := range n.Parts {
			parts[i] = r.ResolveTypeAnnotation(p)
		}
		result := NormalizeIntersection(parts)
		if _, ok := result.(Unknown); ok {
			r.report(errors.TYP003, n.Pos, "intersection of non-struct types resolves to Unknown")
		}
		return result
	case *ast.FunctionType:
		params := make([]FuncParam, len(n.Params))
		for i, p := range n.Params {
			params[i] = FuncParam{Name: p.Name, Type: r.ResolveTypeAnnotation(p.Type)}
		}
		return &Function{Params: params, Return: r.ResolveTypeAnnotation(n.Return)}
	case *ast.ReadonlyType:
		return &Readonly{Inner: r.ResolveTypeAnnotation(n.Inner)}
	case *ast.WeakType:
		return &Weak{Inner: r.ResolveTypeAnnotation(n.Inner)}
	case *ast.ResultType:
		return &Result{Ok: r.ResolveTypeAnnotation(n.Ok), Err: r.ResolveTypeAnnotation(n.Err)}
	case *ast.NullType:
		return &Alias{Name: "null"}
	case *ast.LiteralType:
		if s, ok := n.Value.(string); ok {
			return StringLiteral{Value: s}
		}
		return Number
	case *ast.AmbientType:
		return Unknown{}
	default:
		return Unknown{}
	}
}

func (r *Resolver) resolveNamed(n *ast.NamedType) Type {
	if prim, ok := LookupPrimitive(n.Name); ok && len(n.TypeArgs) == 0 {
		return prim
	}
	switch n.Name {
	case "Array":
		if len(n.TypeArgs) == 1 {
			return &Array{Elem: r.ResolveTypeAnnotation(n.TypeArgs[0])}
		}
	case "Readonly":
		if len(n.TypeArgs) == 1 {
			return &Readonly{Inner: r.ResolveTypeAnnotation(n.TypeArgs[0])}
		}
	case "Weak":
		if len(n.TypeArgs) == 1 {
			return &Weak{Inner: r.ResolveTypeAnnotation(n.TypeArgs[0])}
		}
	case "Option":
		if len(n.TypeArgs) == 1 {
			return NormalizeUnion([]Type{r.ResolveTypeAnnotation(n.TypeArgs[0]), &Alias{Name: "null"}})
		}
	case "Result":
		if len(n.TypeArgs) == 2 {
			return &Result{Ok: r.ResolveTypeAnnotation(n.TypeArgs[0]), Err: r.ResolveTypeAnnotation(n.TypeArgs[1])}
		}
	}

	// Named reference: if the registry has it, emit Ref(id); otherwise
	// register a forward-reference placeholder and emit Ref(id) pointing
	// at it. Concrete type arguments on a bare named reference (as opposed
	// to a call site) are resolved by internal/mono when the reference is
	// actually instantiated; here we only need the base Ref.
	id, _, ok := r.Reg.Lookup(n.Name)
	if !ok {
		id = r.Reg.Forward(n.Name)
	}
	return &Ref{ID: id}
}
