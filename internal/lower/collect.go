package lower

import (
	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/types"
)

// CollectFile is pass 1 of the sweep discipline: discover struct/interface/
// class/enum/type-alias declarations, detect discriminated unions, and
// register generic functions. It assumes the type resolver has already
// registered every declaration's shape in c.Reg.
func (c *Context) CollectFile(f *ast.File) {
	for _, d := range f.Decls {
		switch n := d.(type) {
		case *ast.InterfaceDecl:
			if s, ok := c.lookupStruct(n.Name); ok {
				c.structDefs[n.Name] = s
			}
		case *ast.ClassDecl:
			if s, ok := c.lookupStruct(n.Name); ok {
				c.structDefs[n.Name] = s
			}
		case *ast.EnumDecl:
			if e, ok := c.lookupEnum(n.Name); ok {
				c.enumDefs[n.Name] = e
			}
		case *ast.TypeAliasDecl:
			c.collectAlias(n)
		case *ast.FuncDecl:
			if len(n.TypeParams) > 0 {
				c.genericFns[n.Name] = n
			}
		}
	}
}

func (c *Context) lookupStruct(name string) (*types.Struct, bool) {
	_, t, ok := c.Reg.Lookup(name)
	if !ok {
		return nil, false
	}
	return c.structOf(t)
}

func (c *Context) lookupEnum(name string) (*types.Enum, bool) {
	_, t, ok := c.Reg.Lookup(name)
	if !ok {
		return nil, false
	}
	return c.enumOf(t)
}

// collectAlias records the alias's resolved type and, when the alias is a
// union over known record types, attempts discriminated-union detection.
func (c *Context) collectAlias(n *ast.TypeAliasDecl) {
	_, t, ok := c.Reg.Lookup(n.Name)
	if !ok {
		return
	}
	c.typeAliases[n.Name] = t

	union, isUnion := t.(*types.Union)
	if !isUnion {
		return
	}
	du, ok := detectDiscriminatedUnion(n.Name, union, c)
	if !ok {
		return
	}
	c.discUnions[n.Name] = du
	for structName := range du.Variants {
		c.byStruct[structName] = du
	}
}

// detectDiscriminatedUnion implements the rule: every variant must be a
// known record type, there are at least two variants, the variants share
// exactly one field name whose declared type in each variant is a distinct
// string literal, and those literal values are pairwise unique.
func detectDiscriminatedUnion(aliasName string, union *types.Union, c *Context) (*discriminatedUnion, bool) {
	if len(union.Variants) < 2 {
		return nil, false
	}

	type variantShape struct {
		structName string
		s          *types.Struct
	}
	shapes := make([]variantShape, 0, len(union.Variants))
	for _, v := range union.Variants {
		s, ok := c.structOf(v.Type)
		if !ok || s.Name == "" {
			return nil, false
		}
		shapes = append(shapes, variantShape{structName: s.Name, s: s})
	}

	// Candidate discriminant fields: present in the first variant with a
	// string-literal declared type (`kind: "circle"`). A field qualifies
	// only if every variant declares the same field name as a string
	// literal and the literal values are pairwise unique.
	if len(shapes[0].s.Fields) == 0 {
		return nil, false
	}
	var found *discriminatedUnion
	for _, candidate := range shapes[0].s.Fields {
		if _, ok := candidate.Type.(types.StringLiteral); !ok {
			continue
		}
		values := make(map[string]bool)
		variants := make(map[string]duVariant)
		byDiscrim := make(map[string]duVariant)
		ok := true
		for i, sh := range shapes {
			idx := sh.s.FieldIndex(candidate.Name)
			if idx < 0 {
				ok = false
				break
			}
			lit, isLit := sh.s.Fields[idx].Type.(types.StringLiteral)
			if !isLit {
				ok = false
				break
			}
			discrimVal := lit.Value
			if values[discrimVal] {
				ok = false
				break
			}
			values[discrimVal] = true
			payloadFields := make([]types.StructField, 0, len(sh.s.Fields)-1)
			for _, f := range sh.s.Fields {
				if f.Name != candidate.Name {
					payloadFields = append(payloadFields, f)
				}
			}
			payload := &types.Struct{Name: sh.structName + "Payload", Fields: payloadFields}
			vi := duVariant{Tag: i, DiscriminantVal: discrimVal, Payload: payload}
			variants[sh.structName] = vi
			byDiscrim[discrimVal] = vi
		}
		if ok {
			if found != nil {
				// A second qualifying field makes the discriminant ambiguous.
				return nil, false
			}
			found = &discriminatedUnion{
				AliasName: aliasName,
				Discrim:   candidate.Name,
				Union:     union,
				Variants:  variants,
				ByDiscrim: byDiscrim,
			}
		}
	}
	if found != nil {
		return found, true
	}
	return nil, false
}

// SignatureSweep is pass 2: compute return and parameter types for every
// non-generic function and method so forward calls resolve during the body
// sweep.
func (c *Context) SignatureSweep(f *ast.File) {
	for _, d := range f.Decls {
		switch n := d.(type) {
		case *ast.FuncDecl:
			if len(n.TypeParams) > 0 {
				continue
			}
			c.registerSignature(n.Name, n.Params, n.ReturnType)
		case *ast.ClassDecl:
			for _, m := range n.Methods {
				c.registerSignature(n.Name+"_"+m.Name, m.Params, m.ReturnType)
			}
		}
	}
}

func (c *Context) registerSignature(name string, params []*ast.Param, ret ast.Type) {
	paramTypes := make([]types.Type, len(params))
	for i, p := range params {
		paramTypes[i] = c.ResolveType(p.Type)
	}
	c.fnParamTypes[name] = paramTypes
	c.fnRetTypes[name] = c.ResolveType(ret)
}
