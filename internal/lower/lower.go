package lower

import (
	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/errors"
	"github.com/bherbruck/llts/internal/ir"
	"github.com/bherbruck/llts/internal/mono"
	"github.com/bherbruck/llts/internal/ownership"
	"github.com/bherbruck/llts/internal/types"
)

// Lower drives the four-sweep discipline over files (already in the
// resolver's topological order) and returns the merged, fully-monomorphic
// program plus any diagnostics raised along the way. entryPath names the
// file whose top-level statements become the program's `main`.
func Lower(files []*ast.File, reg *types.Registry, mz *mono.Monomorphizer, resolveType func(ast.Type) types.Type, entryPath string) (*ir.Program, []*errors.Report) {
	c := NewContext(reg, mz, resolveType)
	prog := &ir.Program{}

	// Sweep 1: collection.
	for _, f := range files {
		c.CollectFile(f)
		c.registerGenericsForMono(f)
	}

	// Sweep 2: signatures.
	for _, f := range files {
		c.SignatureSweep(f)
	}

	// Sweep 3: bodies.
	for _, f := range files {
		c.lowerFileDecls(f, prog)
	}

	entryStmts := c.entryStatements(files, entryPath)
	if entryStmts != nil {
		c.pushScope()
		c.currentRetType = types.Void
		body := c.lowerStmts(entryStmts)
		c.popScope()
		prog.Functions = append(prog.Functions, &ir.FuncDef{Name: "main", Return: types.Void, Body: body, IsEntry: true})
	}

	// Sweep 4: drain pending monomorphizations, lowering each
	// specialization's body under its substituted type environment.
	c.drainMonomorphizations(prog)

	prog.Functions = append(prog.Functions, c.pendingFunctions...)

	// The monomorphizer accumulates its own MONO001/MONO002/TYP002 reports
	// as call sites and specializations are processed across every sweep;
	// fold them into the batch the driver renders.
	c.Reports = append(c.Reports, mz.Reports...)

	return prog, c.Reports
}

func (c *Context) entryStatements(files []*ast.File, entryPath string) []ast.Stmt {
	for _, f := range files {
		if f.Path == entryPath {
			return f.Statements
		}
	}
	return nil
}

// registerGenericsForMono feeds generic function/type declarations found in
// CollectFile into the monomorphizer, so call sites discovered later in the
// body sweep can request specializations.
func (c *Context) registerGenericsForMono(f *ast.File) {
	for _, d := range f.Decls {
		switch n := d.(type) {
		case *ast.FuncDecl:
			if len(n.TypeParams) == 0 {
				continue
			}
			params := make([]types.FuncParam, len(n.Params))
			for i, p := range n.Params {
				params[i] = types.FuncParam{Name: p.Name, Type: c.ResolveType(p.Type)}
			}
			fn := &types.Function{Params: params, Return: c.ResolveType(n.ReturnType)}
			c.Mono.RegisterGenericFunction(n.Name, n.TypeParams, fn, c.ResolveType)
		case *ast.TypeAliasDecl:
			if len(n.TypeParams) == 0 {
				continue
			}
			c.Mono.RegisterGenericType(n.Name, n.TypeParams, c.ResolveType(n.Value), c.ResolveType)
		}
	}
}

// lowerFileDecls lowers struct/enum/union declaration containers and every
// non-generic function/method body, appending them to prog.
func (c *Context) lowerFileDecls(f *ast.File, prog *ir.Program) {
	for _, d := range f.Decls {
		switch n := d.(type) {
		case *ast.InterfaceDecl:
			if s, ok := c.structDefs[n.Name]; ok {
				prog.Structs = append(prog.Structs, toStructDef(s))
			}
		case *ast.ClassDecl:
			c.lowerClass(n, prog)
		case *ast.EnumDecl:
			if e, ok := c.enumDefs[n.Name]; ok {
				prog.Enums = append(prog.Enums, toEnumDef(e))
			}
		case *ast.TypeAliasDecl:
			if du, ok := c.discUnions[n.Name]; ok {
				prog.Unions = append(prog.Unions, toUnionDef(n.Name, du))
			}
		case *ast.FuncDecl:
			if len(n.TypeParams) > 0 {
				continue
			}
			prog.Functions = append(prog.Functions, c.lowerFunc(n.Name, n))
		}
	}
}

func toStructDef(s *types.Struct) *ir.StructDef {
	fields := make([]ir.FieldDef, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = ir.FieldDef{Name: f.Name, Type: f.Type}
	}
	return &ir.StructDef{Name: s.Name, Fields: fields}
}

func toEnumDef(e *types.Enum) *ir.EnumDef {
	variants := make([]ir.EnumVariantDef, len(e.Variants))
	for i, v := range e.Variants {
		variants[i] = ir.EnumVariantDef{Name: v.Name, Tag: v.Tag}
	}
	return &ir.EnumDef{Name: e.Name, Variants: variants}
}

func toUnionDef(name string, du *discriminatedUnion) *ir.UnionDef {
	variants := make([]types.Type, len(du.Union.Variants))
	for i, v := range du.Union.Variants {
		variants[i] = v.Type
	}
	return &ir.UnionDef{Name: name, Variants: variants}
}

func (c *Context) lowerClass(n *ast.ClassDecl, prog *ir.Program) {
	if s, ok := c.structDefs[n.Name]; ok {
		prog.Structs = append(prog.Structs, toStructDef(s))
	}
	for _, m := range n.Methods {
		if len(m.TypeParams) > 0 {
			continue
		}
		mangled := n.Name + "_" + m.Name
		fd := c.lowerFunc(mangled, m)
		fd.Params = c.prependReceiver(fd.Params, n.Name, m)
		prog.Functions = append(prog.Functions, fd)
	}
}

func (c *Context) prependReceiver(params []ir.ParamDef, className string, m *ast.FuncDecl) []ir.ParamDef {
	s, ok := c.structDefs[className]
	var recvTy types.Type = types.Unknown{}
	if ok {
		recvTy = s
	}
	recv := ir.ParamDef{Name: "this", Type: recvTy, Ownership: ownership.Borrow}
	return append([]ir.ParamDef{recv}, params...)
}

// lowerFunc lowers one function/method body into a FuncDef, running the
// ownership analyzer over it first to classify each parameter's passing
// convention.
func (c *Context) lowerFunc(mangledName string, fn *ast.FuncDecl) *ir.FuncDef {
	fo, reports := ownership.AnalyzeFunction(mangledName, fn.Params, fn.Body, c.ResolveType)
	c.Reports = append(c.Reports, reports...)

	params := make([]ir.ParamDef, len(fn.Params))
	paramTypes := c.fnParamTypes[mangledName]
	for i, p := range fn.Params {
		ty := c.ResolveType(p.Type)
		if i < len(paramTypes) {
			ty = paramTypes[i]
		}
		params[i] = ir.ParamDef{Name: p.Name, Type: ty, Ownership: paramOwnership(fo, p.Name)}
	}

	retTy := c.fnRetTypes[mangledName]
	if retTy == nil {
		retTy = c.ResolveType(fn.ReturnType)
	}

	savedRet := c.currentRetType
	c.currentRetType = retTy
	c.pushScope()
	for _, p := range params {
		c.declareVar(p.Name, p.Type)
	}
	var body []ir.Stmt
	if fn.Body != nil {
		body = c.lowerStmts(fn.Body.Stmts)
	}
	c.popScope()
	c.currentRetType = savedRet

	return &ir.FuncDef{Name: mangledName, Params: params, Return: retTy, Body: body}
}

// drainMonomorphizations lowers the body of each generic function
// specialization the body sweep requested, under the substituted type
// environment, appending the resulting FuncDefs to prog. Newly discovered
// nested generic calls enqueue further requests, so the drain loops to a
// fixed point.
func (c *Context) drainMonomorphizations(prog *ir.Program) {
	for len(c.pendingMono) > 0 {
		req := c.pendingMono[0]
		c.pendingMono = c.pendingMono[1:]
		if req.isType {
			continue
		}
		fn, ok := c.genericFns[req.name]
		if !ok {
			continue
		}
		mangled, ok := c.Mono.MonomorphizeFunction(req.name, req.args, req.pos)
		if !ok {
			continue
		}
		inst, _ := c.Mono.GetInstance(mangled)
		var specParams []types.Type
		var specRet types.Type
		if specFn, ok := inst.Specialized.(*types.Function); ok {
			specRet = specFn.Return
			specParams = make([]types.Type, len(specFn.Params))
			for i, p := range specFn.Params {
				specParams[i] = p.Type
			}
		}

		savedParamTypes := c.fnParamTypes[mangled]
		savedRetTypes := c.fnRetTypes[mangled]
		c.fnParamTypes[mangled] = specParams
		c.fnRetTypes[mangled] = specRet

		fd := c.lowerFunc(mangled, fn)
		prog.Functions = append(prog.Functions, fd)

		c.fnParamTypes[mangled] = savedParamTypes
		c.fnRetTypes[mangled] = savedRetTypes
	}
}
