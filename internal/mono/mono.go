// Package mono implements the Monomorphizer: it turns registered generic
// function and type definitions into concrete specializations on demand,
// caching each specialization under a mangled name.
package mono

import (
	"fmt"
	"strings"

	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/errors"
	"github.com/bherbruck/llts/internal/types"
)

// Constraint is a generic parameter's optional finite set of allowed
// concrete types (`T extends A | B | C`), checked permissively: a mismatch
// is a warning, not a rejection.
type Constraint struct {
	Allowed []types.Type // nil means unconstrained
}

func (c Constraint) satisfies(t types.Type, reg *types.Registry) bool {
	if len(c.Allowed) == 0 {
		return true
	}
	for _, a := range c.Allowed {
		if reg.Equivalent(a, t) {
			return true
		}
	}
	return false
}

// genericFunc is a registered generic function definition.
type genericFunc struct {
	typeParams  []string
	constraints map[string]Constraint
	defaults    map[string]types.Type
	fn          *types.Function
}

// genericType is a registered generic type definition.
type genericType struct {
	typeParams  []string
	constraints map[string]Constraint
	defaults    map[string]types.Type
	base        types.Type
}

// Instance is one monomorphized specialization.
type Instance struct {
	OriginalName string
	MangledName  string
	TypeArgs     []types.Type
	Specialized  types.Type
}

// Monomorphizer records generic definitions and produces cached
// specializations keyed by mangled name.
type Monomorphizer struct {
	Reg       *types.Registry
	instances map[string]*Instance
	functions map[string]*genericFunc
	gtypes    map[string]*genericType
	Reports   []*errors.Report
}

// New returns a Monomorphizer backed by reg.
func New(reg *types.Registry) *Monomorphizer {
	return &Monomorphizer{
		Reg:       reg,
		instances: make(map[string]*Instance),
		functions: make(map[string]*genericFunc),
		gtypes:    make(map[string]*genericType),
	}
}

// RegisterGenericFunction records a generic function definition, with
// per-parameter finite-union constraints and defaults derived from the
// declaration's type-parameter list.
func (m *Monomorphizer) RegisterGenericFunction(name string, tps []*ast.TypeParam, fn *types.Function, resolveType func(ast.Type) types.Type) {
	names, constraints, defaults := m.collectTypeParams(tps, resolveType)
	m.functions[name] = &genericFunc{typeParams: names, constraints: constraints, defaults: defaults, fn: fn}
}

// RegisterGenericType records a generic type definition.
func (m *Monomorphizer) RegisterGenericType(name string, tps []*ast.TypeParam, base types.Type, resolveType func(ast.Type) types.Type) {
	names, constraints, defaults := m.collectTypeParams(tps, resolveType)
	m.gtypes[name] = &genericType{typeParams: names, constraints: constraints, defaults: defaults, base: base}
}

func (m *Monomorphizer) collectTypeParams(tps []*ast.TypeParam, resolveType func(ast.Type) types.Type) ([]string, map[string]Constraint, map[string]types.Type) {
	names := make([]string, len(tps))
	constraints := make(map[string]Constraint)
	defaults := make(map[string]types.Type)
	for i, tp := range tps {
		names[i] = tp.Name
		if tp.Constraint != nil {
			constraints[tp.Name] = Constraint{Allowed: unionMembers(resolveType(tp.Constraint))}
		}
		if tp.Default != nil {
			defaults[tp.Name] = resolveType(tp.Default)
		}
	}
	return names, constraints, defaults
}

func unionMembers(t types.Type) []types.Type {
	if u, ok := t.(*types.Union); ok {
		members := make([]types.Type, len(u.Variants))
		for i, v := range u.Variants {
			members[i] = v.Type
		}
		return members
	}
	return []types.Type{t}
}

// IsGenericFunction reports whether name is a registered generic function.
func (m *Monomorphizer) IsGenericFunction(name string) bool {
	_, ok := m.functions[name]
	return ok
}

// IsGenericType reports whether name is a registered generic type.
func (m *Monomorphizer) IsGenericType(name string) bool {
	_, ok := m.gtypes[name]
	return ok
}

// TypeParamCount returns the number of type parameters a registered generic
// function or type declares, used by callers to flag an instantiation
// argument-count mismatch (TYP002) before substitution runs.
func (m *Monomorphizer) TypeParamCount(name string) (int, bool) {
	if g, ok := m.functions[name]; ok {
		return len(g.typeParams), true
	}
	if g, ok := m.gtypes[name]; ok {
		return len(g.typeParams), true
	}
	return 0, false
}

// CheckArity reports whether got type arguments match name's declared
// parameter count, emitting TYP002 and returning false on mismatch.
func (m *Monomorphizer) CheckArity(name string, got int, pos ast.Pos) bool {
	want, ok := m.TypeParamCount(name)
	if !ok || got == want {
		return true
	}
	span := ast.Span{Start: pos, End: pos}
	m.Reports = append(m.Reports, errors.New(errors.TYP002, &span,
		fmt.Sprintf("`%s` expects %d type argument(s), got %d", name, want, got)))
	return false
}

// ResolveDefaults returns the default type arguments for a generic function
// or type if every one of its parameters has a default, and ok=false
// otherwise (MONO002: the call must be left non-monomorphized).
func (m *Monomorphizer) ResolveDefaults(name string, pos ast.Pos) ([]types.Type, bool) {
	var tps []string
	var defaults map[string]types.Type
	if g, ok := m.functions[name]; ok {
		tps, defaults = g.typeParams, g.defaults
	} else if g, ok := m.gtypes[name]; ok {
		tps, defaults = g.typeParams, g.defaults
	} else {
		return nil, false
	}
	args := make([]types.Type, len(tps))
	for i, p := range tps {
		d, ok := defaults[p]
		if !ok {
			span := ast.Span{Start: pos, End: pos}
			m.Reports = append(m.Reports, errors.New(errors.MONO002,
				&span, "call to `"+name+"` supplies no type arguments and parameter `"+p+"` has no default"))
			return nil, false
		}
		args[i] = d
	}
	return args, true
}

// checkConstraints verifies each concrete argument against its parameter's
// finite-union constraint, emitting MONO001 warnings on mismatch and
// proceeding with the user-supplied type regardless.
func (m *Monomorphizer) checkConstraints(tps []string, constraints map[string]Constraint, args []types.Type, pos ast.Pos) {
	for i, p := range tps {
		if i >= len(args) {
			break
		}
		c, ok := constraints[p]
		if !ok || c.satisfies(args[i], m.Reg) {
			continue
		}
		span := ast.Span{Start: pos, End: pos}
		m.Reports = append(m.Reports, errors.New(errors.MONO001, &span,
			fmt.Sprintf("type argument %s does not satisfy the constraint on `%s`; proceeding", args[i], p)))
	}
}

// MonomorphizeFunction specializes the generic function name with args,
// returning its mangled name. Already-built specializations are served from
// cache.
func (m *Monomorphizer) MonomorphizeFunction(name string, args []types.Type, pos ast.Pos) (string, bool) {
	g, ok := m.functions[name]
	if !ok {
		return "", false
	}
	m.checkConstraints(g.typeParams, g.constraints, args, pos)

	mangled := mangleName(name, args)
	if _, ok := m.instances[mangled]; ok {
		return mangled, true
	}

	subs := buildSubstitutions(g.typeParams, args)
	params := make([]types.FuncParam, len(g.fn.Params))
	for i, p := range g.fn.Params {
		params[i] = types.FuncParam{Name: p.Name, Type: substitute(p.Type, subs)}
	}
	specialized := &types.Function{
		Params: params,
		Return: substitute(g.fn.Return, subs),
	}

	m.instances[mangled] = &Instance{OriginalName: name, MangledName: mangled, TypeArgs: args, Specialized: specialized}
	return mangled, true
}

// MonomorphizeType specializes the generic type name with args, registering
// the specialization under its mangled name in reg.
func (m *Monomorphizer) MonomorphizeType(name string, args []types.Type, pos ast.Pos) (string, bool) {
	g, ok := m.gtypes[name]
	if !ok {
		return "", false
	}
	m.checkConstraints(g.typeParams, g.constraints, args, pos)

	mangled := mangleName(name, args)
	if _, ok := m.instances[mangled]; ok {
		return mangled, true
	}

	subs := buildSubstitutions(g.typeParams, args)
	specialized := substitute(g.base, subs)
	m.Reg.Register(mangled, specialized)

	m.instances[mangled] = &Instance{OriginalName: name, MangledName: mangled, TypeArgs: args, Specialized: specialized}
	return mangled, true
}

// GetInstance returns the specialization recorded under mangled, if any.
func (m *Monomorphizer) GetInstance(mangled string) (*Instance, bool) {
	inst, ok := m.instances[mangled]
	return inst, ok
}

// Instances returns every specialization built so far, in no particular
// order.
func (m *Monomorphizer) Instances() []*Instance {
	out := make([]*Instance, 0, len(m.instances))
	for _, inst := range m.instances {
		out = append(out, inst)
	}
	return out
}

func buildSubstitutions(tps []string, args []types.Type) map[string]types.Type {
	subs := make(map[string]types.Type, len(tps))
	for i, p := range tps {
		if i < len(args) {
			subs[p] = args[i]
		}
	}
	return subs
}

// substitute visits t structurally, replacing any Alias placeholder whose
// name is in subs with its concrete type.
func substitute(t types.Type, subs map[string]types.Type) types.Type {
	switch n := t.(type) {
	case *types.Alias:
		if n.Inner == nil {
			if concrete, ok := subs[n.Name]; ok {
				return concrete
			}
		}
		return n
	case *types.Array:
		return &types.Array{Elem: substitute(n.Elem, subs)}
	case *types.Tuple:
		elems := make([]types.Type, len(n.Elems))
		for i, e := range n.Elems {
			elems[i] = substitute(e, subs)
		}
		return &types.Tuple{Elems: elems}
	case *types.Option:
		return &types.Option{Inner: substitute(n.Inner, subs)}
	case *types.Result:
		return &types.Result{Ok: substitute(n.Ok, subs), Err: substitute(n.Err, subs)}
	case *types.Readonly:
		return &types.Readonly{Inner: substitute(n.Inner, subs)}
	case *types.Weak:
		return &types.Weak{Inner: substitute(n.Inner, subs)}
	case *types.Struct:
		fields := make([]types.StructField, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = types.StructField{
				Name:     f.Name,
				Type:     substitute(f.Type, subs),
				Readonly: f.Readonly,
				Optional: f.Optional,
			}
		}
		return &types.Struct{Name: n.Name, Fields: fields}
	case *types.Union:
		variants := make([]types.UnionVariant, len(n.Variants))
		for i, v := range n.Variants {
			variants[i] = types.UnionVariant{Tag: v.Tag, Type: substitute(v.Type, subs)}
		}
		return &types.Union{Name: n.Name, Variants: variants}
	case *types.Function:
		params := make([]types.FuncParam, len(n.Params))
		for i, p := range n.Params {
			params[i] = types.FuncParam{Name: p.Name, Type: substitute(p.Type, subs)}
		}
		return &types.Function{Params: params, Return: substitute(n.Return, subs)}
	case *types.Generic:
		base := substitute(n.Base, subs)
		for _, p := range n.TypeParams {
			if _, ok := subs[p]; !ok {
				return n
			}
		}
		return base
	default:
		return t
	}
}

// mangleName builds original-name + "_" + suffix(arg) for each concrete
// type argument.
func mangleName(name string, args []types.Type) string {
	var b strings.Builder
	b.WriteString(name)
	for _, a := range args {
		b.WriteByte('_')
		b.WriteString(typeSuffix(a))
	}
	return b.String()
}

func typeSuffix(t types.Type) string {
	switch n := t.(type) {
	case types.Primitive:
		if n.Kind == types.KBoolean {
			return "bool"
		}
		return n.String()
	case *types.Struct:
		return n.Name
	case *types.Array:
		return "arr_" + typeSuffix(n.Elem)
	case *types.Tuple:
		parts := make([]string, len(n.Elems))
		for i, e := range n.Elems {
			parts[i] = typeSuffix(e)
		}
		return "tup_" + strings.Join(parts, "_")
	case *types.Option:
		return "opt_" + typeSuffix(n.Inner)
	case *types.Result:
		return "res_" + typeSuffix(n.Ok) + "_" + typeSuffix(n.Err)
	case *types.Ref:
		return fmt.Sprintf("ref%d", n.ID)
	case *types.Alias:
		return n.Name
	default:
		return "unknown"
	}
}
