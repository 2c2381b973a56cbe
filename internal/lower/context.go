// Package lower implements the Lowering Engine: it walks validated, typed
// source files and produces the merged typed IR program, maintaining a
// variable-type environment across scopes and performing the pattern-
// specific rewrites (null narrowing, discriminated-union narrowing,
// destructuring, Option-wrapping, generic call-site rewriting) described
// alongside it.
package lower

import (
	"fmt"

	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/errors"
	"github.com/bherbruck/llts/internal/ir"
	"github.com/bherbruck/llts/internal/mono"
	"github.com/bherbruck/llts/internal/ownership"
	"github.com/bherbruck/llts/internal/types"
)

// discriminatedUnion records everything lowering needs to rewrite a
// `switch (s.kind)` over an alias detected as a discriminated union.
type discriminatedUnion struct {
	AliasName  string
	Discrim    string
	Union      *types.Union
	Variants   map[string]duVariant // original struct name -> variant info
	ByDiscrim  map[string]duVariant // discriminant literal value -> variant info
}

type duVariant struct {
	Tag             int
	DiscriminantVal string
	Payload         *types.Struct
}

// monoRequest is a pending monomorphization the body sweep enqueued; it is
// drained after the first lowering pass over every file.
type monoRequest struct {
	isType bool
	name   string
	args   []types.Type
	pos    ast.Pos
}

// Context is the single mutable state threaded through one compilation
// unit's lowering. It outlives individual files (so forward references
// across the resolver's file order still see earlier files' declarations)
// but its var-type scope stack is pushed/popped per function.
type Context struct {
	Reg  *types.Registry
	Mono *mono.Monomorphizer

	// ResolveType maps a surface-syntax type annotation to its registered
	// Type, following the same rules the type resolver used to populate Reg.
	ResolveType func(ast.Type) types.Type

	structDefs map[string]*types.Struct
	enumDefs   map[string]*types.Enum
	discUnions map[string]*discriminatedUnion // alias name -> info
	byStruct   map[string]*discriminatedUnion // variant struct name -> owning union

	fnRetTypes   map[string]types.Type
	fnParamTypes map[string][]types.Type

	typeAliases map[string]types.Type

	genericFns map[string]*ast.FuncDecl

	varScopes []map[string]types.Type

	pendingMono []monoRequest
	scheduled   map[string]bool

	lambdaCounter int
	loopCounter   int
	loopLabels    []loopLabel

	// currentRetType is the enclosing function's declared return type,
	// consulted by ReturnStmt lowering for Option-wrapping at the return
	// site.
	currentRetType types.Type

	// pendingFunctions accumulates hoisted arrow-function FuncDefs as
	// bodies are lowered; lower.go appends them to the final Program.
	pendingFunctions []*ir.FuncDef

	Reports []*errors.Report
}

type loopLabel struct {
	Break, Cont string
}

// pushLoop allocates a fresh break/continue label pair for a loop body.
func (c *Context) pushLoop() loopLabel {
	c.loopCounter++
	lbl := loopLabel{
		Break: fmt.Sprintf("__break_%d", c.loopCounter),
		Cont:  fmt.Sprintf("__cont_%d", c.loopCounter),
	}
	c.loopLabels = append(c.loopLabels, lbl)
	return lbl
}

func (c *Context) popLoop() {
	c.loopLabels = c.loopLabels[:len(c.loopLabels)-1]
}

func (c *Context) currentLoop() loopLabel {
	if len(c.loopLabels) == 0 {
		return loopLabel{}
	}
	return c.loopLabels[len(c.loopLabels)-1]
}

// NewContext returns an empty Context sharing reg and mz across a whole
// compilation unit.
func NewContext(reg *types.Registry, mz *mono.Monomorphizer, resolveType func(ast.Type) types.Type) *Context {
	return &Context{
		Reg:          reg,
		Mono:         mz,
		ResolveType:  resolveType,
		structDefs:   make(map[string]*types.Struct),
		enumDefs:     make(map[string]*types.Enum),
		discUnions:   make(map[string]*discriminatedUnion),
		byStruct:     make(map[string]*discriminatedUnion),
		fnRetTypes:   make(map[string]types.Type),
		fnParamTypes: make(map[string][]types.Type),
		typeAliases:  make(map[string]types.Type),
		genericFns:   make(map[string]*ast.FuncDecl),
		scheduled:    make(map[string]bool),
	}
}

func (c *Context) report(code string, pos ast.Pos, msg string) {
	span := ast.Span{Start: pos, End: pos}
	c.Reports = append(c.Reports, errors.New(code, &span, msg))
}

// pushScope opens a new variable-type scope, e.g. entering a function body
// or a narrowed branch.
func (c *Context) pushScope() {
	c.varScopes = append(c.varScopes, make(map[string]types.Type))
}

// popScope discards the innermost scope, restoring the surrounding
// environment.
func (c *Context) popScope() {
	c.varScopes = c.varScopes[:len(c.varScopes)-1]
}

func (c *Context) declareVar(name string, ty types.Type) {
	c.varScopes[len(c.varScopes)-1][name] = ty
}

// lookupVar searches innermost-to-outermost scope for name.
func (c *Context) lookupVar(name string) (types.Type, bool) {
	for i := len(c.varScopes) - 1; i >= 0; i-- {
		if ty, ok := c.varScopes[i][name]; ok {
			return ty, true
		}
	}
	return nil, false
}

// structOf returns the Struct shape of a named record type, looking through
// Ref and Alias indirection.
func (c *Context) structOf(ty types.Type) (*types.Struct, bool) {
	switch n := ty.(type) {
	case *types.Struct:
		return n, true
	case *types.Ref:
		return c.structOf(c.Reg.Resolve(n))
	case *types.Alias:
		if n.Inner != nil {
			return c.structOf(n.Inner)
		}
	}
	return nil, false
}

func (c *Context) enumOf(ty types.Type) (*types.Enum, bool) {
	switch n := ty.(type) {
	case *types.Enum:
		return n, true
	case *types.Ref:
		return c.enumOf(c.Reg.Resolve(n))
	}
	return nil, false
}

// discriminatedUnionFor looks through Ref indirection to find the
// discriminated union owning ty, covering both forms a scrutinee can take:
// still typed as the union alias itself (resolved by registry name), or
// already narrowed to one concrete variant struct (resolved by struct name).
func (c *Context) discriminatedUnionFor(ty types.Type) (*discriminatedUnion, bool) {
	switch n := ty.(type) {
	case *types.Ref:
		if name, ok := c.Reg.NameOf(n.ID); ok {
			if du, ok := c.discUnions[name]; ok {
				return du, true
			}
		}
		return c.discriminatedUnionFor(c.Reg.Resolve(n))
	case *types.Struct:
		du, ok := c.byStruct[n.Name]
		return du, ok
	}
	return nil, false
}

func (c *Context) unionOf(ty types.Type) (*types.Union, bool) {
	switch n := ty.(type) {
	case *types.Union:
		return n, true
	case *types.Ref:
		return c.unionOf(c.Reg.Resolve(n))
	case *types.Alias:
		if n.Inner != nil {
			return c.unionOf(n.Inner)
		}
	}
	return nil, false
}

func (c *Context) optionOf(ty types.Type) (*types.Option, bool) {
	switch n := ty.(type) {
	case *types.Option:
		return n, true
	case *types.Ref:
		return c.optionOf(c.Reg.Resolve(n))
	case *types.Alias:
		if n.Inner != nil {
			return c.optionOf(n.Inner)
		}
	}
	return nil, false
}

// nextLambdaName returns a fresh synthetic name for a hoisted closure.
func (c *Context) nextLambdaName() string {
	c.lambdaCounter++
	return fmt.Sprintf("__lambda_%d", c.lambdaCounter)
}

// paramOwnership looks up a function's ownership classification for one of
// its parameters, defaulting to Owned if the function was never analyzed
// (e.g. an intrinsic).
func paramOwnership(fo ownership.FunctionOwnership, name string) ownership.ParamOwnership {
	for _, p := range fo.Params {
		if p.Name == name {
			return p.Ownership
		}
	}
	return ownership.Owned
}
