package lower

import (
	"math"

	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/intrinsics"
	"github.com/bherbruck/llts/internal/ir"
	"github.com/bherbruck/llts/internal/types"
)

var mathIntrinsics = map[string]bool{
	"abs": true, "floor": true, "ceil": true, "round": true, "sqrt": true,
	"pow": true, "min": true, "max": true, "random": true, "trunc": true,
	"log": true, "log2": true, "log10": true, "sin": true, "cos": true, "tan": true,
}

// arrayIntrinsics lists the array methods that lowering routes to runtime
// array intrinsics rather than user-defined calls: the mutating methods the
// ownership analyzer also recognizes (push through clear), plus the
// non-mutating slice, map, filter, includes, indexOf and join.
var arrayIntrinsics = map[string]bool{
	"push": true, "pop": true, "shift": true, "unshift": true, "splice": true,
	"sort": true, "reverse": true, "fill": true, "copyWithin": true,
	"set": true, "delete": true, "clear": true, "slice": true, "map": true,
	"filter": true, "includes": true, "indexOf": true, "join": true,
}

// inferType computes the static type of an already-resolved-surface
// expression using the current variable scope and signature tables. It never
// emits diagnostics; callers fall back to types.Unknown{} when inference
// fails and proceed best-effort.
func (c *Context) inferType(e ast.Expr) types.Type {
	switch n := e.(type) {
	case *ast.NumberLit:
		return types.Number
	case *ast.StringLit:
		return types.String
	case *ast.BoolLit:
		return types.Boolean
	case *ast.NullLit:
		return &types.Option{Inner: types.Unknown{}}
	case *ast.TemplateStringExpr:
		return types.String
	case *ast.Ident:
		if ty, ok := c.lookupVar(n.Name); ok {
			return ty
		}
		return types.Unknown{}
	case *ast.BinaryExpr:
		switch n.Op {
		case "===", "!==", "==", "!=", "<", ">", "<=", ">=", "&&", "||":
			return types.Boolean
		default:
			return c.inferType(n.Left)
		}
	case *ast.UnaryExpr:
		if n.Op == "!" {
			return types.Boolean
		}
		return c.inferType(n.Operand)
	case *ast.ConditionalExpr:
		return c.inferType(n.Then)
	case *ast.AssignExpr:
		return c.inferType(n.Value)
	case *ast.CallExpr:
		return c.inferCallType(n)
	case *ast.NewExpr:
		if s, ok := c.lookupStruct(n.ClassName); ok {
			return s
		}
		return types.Unknown{}
	case *ast.MemberExpr:
		return c.inferMemberType(n)
	case *ast.IndexExpr:
		objTy := c.inferType(n.Object)
		if arr, ok := objTy.(*types.Array); ok {
			return arr.Elem
		}
		return types.Unknown{}
	case *ast.ArrayLit:
		if len(n.Elements) == 0 {
			return &types.Array{Elem: types.Unknown{}}
		}
		return &types.Array{Elem: c.inferType(n.Elements[0].Value)}
	case *ast.ArrowFunctionExpr:
		params := make([]types.FuncParam, len(n.Params))
		for i, p := range n.Params {
			params[i] = types.FuncParam{Name: p.Name, Type: c.ResolveType(p.Type)}
		}
		ret := types.Type(types.Unknown{})
		if n.ReturnType != nil {
			ret = c.ResolveType(n.ReturnType)
		}
		return &types.Function{Params: params, Return: ret}
	case *ast.AsExpr:
		return c.ResolveType(n.Type)
	case *ast.TypeofExpr:
		return types.String
	case *ast.InstanceofExpr:
		return types.Boolean
	default:
		return types.Unknown{}
	}
}

func (c *Context) inferCallType(n *ast.CallExpr) types.Type {
	if id, ok := n.Callee.(*ast.Ident); ok {
		if ret, ok := c.fnRetTypes[id.Name]; ok {
			return ret
		}
	}
	if m, ok := n.Callee.(*ast.MemberExpr); ok {
		if structName, ok := c.receiverStructName(m.Object); ok {
			if ret, ok := c.fnRetTypes[structName+"_"+m.Property]; ok {
				return ret
			}
		}
	}
	return types.Unknown{}
}

func (c *Context) inferMemberType(n *ast.MemberExpr) types.Type {
	objTy := c.inferType(n.Object)
	if du, ok := c.discriminatedUnionFor(objTy); ok {
		if n.Property == du.Discrim {
			return types.String
		}
	}
	if s, ok := c.structOf(objTy); ok {
		idx := s.FieldIndex(n.Property)
		if idx >= 0 {
			return s.Fields[idx].Type
		}
	}
	return types.Unknown{}
}

// receiverStructName resolves the struct name of a method-call receiver
// expression, if known statically.
func (c *Context) receiverStructName(obj ast.Expr) (string, bool) {
	ty := c.inferType(obj)
	if s, ok := c.structOf(ty); ok {
		return s.Name, true
	}
	return "", false
}

// lowerExpr lowers e under the binding-site expected type (nil when no
// coercion context applies, e.g. a bare statement expression).
func (c *Context) lowerExpr(e ast.Expr, expected types.Type) ir.Expr {
	switch n := e.(type) {
	case *ast.NumberLit:
		return c.lowerNumberLit(n, expected)
	case *ast.StringLit:
		return ir.StringLit{Base: ir.Base{Span: spanOf(n.Pos), Type: types.String}, Value: n.Value}
	case *ast.BoolLit:
		return ir.BoolLit{Base: ir.Base{Span: spanOf(n.Pos), Type: types.Boolean}, Value: n.Value}
	case *ast.NullLit:
		inner := types.Type(types.Unknown{})
		if opt, ok := expected.(*types.Option); ok {
			inner = opt.Inner
		}
		return ir.OptionNone{Base: ir.Base{Span: spanOf(n.Pos), Type: &types.Option{Inner: inner}}}
	case *ast.TemplateStringExpr:
		return c.lowerTemplate(n)
	case *ast.Ident:
		ty := c.inferType(n)
		return c.wrapForExpected(ir.VarRef{Base: ir.Base{Span: spanOf(n.Pos), Type: ty}, Name: n.Name}, ty, expected)
	case *ast.BinaryExpr:
		return c.lowerBinary(n, expected)
	case *ast.UnaryExpr:
		return c.lowerUnary(n)
	case *ast.ConditionalExpr:
		cond := c.lowerExpr(n.Cond, nil)
		then := c.lowerExpr(n.Then, expected)
		els := c.lowerExpr(n.Else, expected)
		return ir.CondExpr{Base: ir.Base{Span: spanOf(n.Pos), Type: then.GetType()}, Cond: cond, Then: then, Else: els}
	case *ast.AssignExpr:
		return c.lowerExpr(n.Value, expected)
	case *ast.CallExpr:
		return c.lowerCall(n)
	case *ast.NewExpr:
		return c.lowerNew(n)
	case *ast.MemberExpr:
		return c.lowerMember(n)
	case *ast.IndexExpr:
		objTy := c.inferType(n.Object)
		elemTy := types.Type(types.Unknown{})
		if arr, ok := objTy.(*types.Array); ok {
			elemTy = arr.Elem
		}
		return ir.IndexAccess{
			Base:   ir.Base{Span: spanOf(n.Pos), Type: elemTy},
			Object: c.lowerExpr(n.Object, nil),
			Index:  c.lowerExpr(n.Index, types.I64),
		}
	case *ast.ArrayLit:
		return c.lowerArrayLiteral(n)
	case *ast.ObjectLit:
		return c.lowerObjectLit(n, expected)
	case *ast.ArrowFunctionExpr:
		return c.lowerArrow(n)
	case *ast.AsExpr:
		target := c.ResolveType(n.Type)
		return ir.Cast{Base: ir.Base{Span: spanOf(n.Pos), Type: target}, Value: c.lowerExpr(n.Expr, nil), Target: target}
	case *ast.TypeofExpr:
		return ir.IntrinsicCall{
			Base: ir.Base{Span: spanOf(n.Pos), Type: types.String},
			Name: "typeof", Args: []ir.Expr{c.lowerExpr(n.Operand, nil)},
		}
	case *ast.InstanceofExpr:
		rhs := ""
		if id, ok := n.Right.(*ast.Ident); ok {
			rhs = id.Name
		}
		return ir.IntrinsicCall{
			Base: ir.Base{Span: spanOf(n.Pos), Type: types.Boolean},
			Name: "instanceof", Args: []ir.Expr{c.lowerExpr(n.Left, nil), ir.StringLit{Value: rhs}},
		}
	case *ast.SpreadExpr:
		return c.lowerExpr(n.Argument, expected)
	default:
		return ir.OptionNone{Base: ir.Base{Type: types.Unknown{}}}
	}
}

// lowerNumberLit applies default-64-bit-float typing with coercion at
// binding sites: a whole-valued literal bound to an integer type promotes
// directly, a non-whole literal bound to an integer type becomes an
// explicit Cast.
func (c *Context) lowerNumberLit(n *ast.NumberLit, expected types.Type) ir.Expr {
	base := ir.Base{Span: spanOf(n.Pos), Type: types.Number}
	if p, ok := expected.(types.Primitive); ok && p.IsInteger() {
		if n.Value == math.Trunc(n.Value) {
			return ir.IntLit{Base: ir.Base{Span: base.Span, Type: p}, Value: int64(n.Value)}
		}
		return ir.Cast{Base: ir.Base{Span: base.Span, Type: p}, Value: ir.FloatLit{Base: base, Value: n.Value}, Target: p}
	}
	return ir.FloatLit{Base: base, Value: n.Value}
}

func (c *Context) lowerTemplate(n *ast.TemplateStringExpr) ir.Expr {
	if len(n.Exprs) == 0 {
		return ir.StringLit{Base: ir.Base{Span: spanOf(n.Pos), Type: types.String}, Value: joinParts(n.Parts)}
	}
	parts := make([]ir.Expr, 0, len(n.Parts)+len(n.Exprs))
	for i, lit := range n.Parts {
		if lit != "" {
			parts = append(parts, ir.StringLit{Value: lit})
		}
		if i < len(n.Exprs) {
			parts = append(parts, c.lowerExpr(n.Exprs[i], nil))
		}
	}
	return ir.StringConcat{Base: ir.Base{Span: spanOf(n.Pos), Type: types.String}, Parts: parts}
}

func joinParts(parts []string) string {
	out := ""
	for _, p := range parts {
		out += p
	}
	return out
}

func (c *Context) lowerBinary(n *ast.BinaryExpr, expected types.Type) ir.Expr {
	if (n.Op == "===" || n.Op == "!==") {
		if isNullLit(n.Right) {
			return c.lowerNullCheck(n.Left, n.Op == "!==", n.Pos)
		}
		if isNullLit(n.Left) {
			return c.lowerNullCheck(n.Right, n.Op == "!==", n.Pos)
		}
	}
	lty := c.inferType(n.Left)
	left := c.lowerExpr(n.Left, nil)
	right := c.lowerExpr(n.Right, lty)
	resultTy := types.Type(types.Boolean)
	switch n.Op {
	case "===", "!==", "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		resultTy = types.Boolean
	default:
		resultTy = left.GetType()
	}
	return ir.BinOp{Base: ir.Base{Span: spanOf(n.Pos), Type: resultTy}, Op: normalizeOp(n.Op), Left: left, Right: right}
}

func normalizeOp(op string) string {
	if op == "===" {
		return "=="
	}
	if op == "!==" {
		return "!="
	}
	return op
}

func isNullLit(e ast.Expr) bool {
	_, ok := e.(*ast.NullLit)
	return ok
}

// lowerNullCheck rewrites `x === null` / `x !== null` on an Option(T) value
// into a (possibly negated) OptionIsSome test.
func (c *Context) lowerNullCheck(operand ast.Expr, negated bool, pos ast.Pos) ir.Expr {
	lowered := c.lowerExpr(operand, nil)
	isSome := ir.OptionIsSome{Base: ir.Base{Span: spanOf(pos), Type: types.Boolean}, Value: lowered}
	if negated {
		return isSome
	}
	return ir.UnOp{Base: ir.Base{Span: spanOf(pos), Type: types.Boolean}, Op: "!", Operand: isSome}
}

func (c *Context) lowerUnary(n *ast.UnaryExpr) ir.Expr {
	operand := c.lowerExpr(n.Operand, nil)
	ty := operand.GetType()
	if n.Op == "!" {
		ty = types.Boolean
	}
	return ir.UnOp{Base: ir.Base{Span: spanOf(n.Pos), Type: ty}, Op: n.Op, Operand: operand}
}

func (c *Context) lowerCall(n *ast.CallExpr) ir.Expr {
	switch callee := n.Callee.(type) {
	case *ast.Ident:
		return c.lowerNamedCall(callee.Name, n)
	case *ast.MemberExpr:
		return c.lowerMethodCall(callee, n)
	default:
		args := c.lowerArgs(n.Args, nil)
		return ir.Call{Base: ir.Base{Span: spanOf(n.Pos), Type: types.Unknown{}}, Callee: "<expr>", Args: args}
	}
}

func (c *Context) lowerNamedCall(name string, n *ast.CallExpr) ir.Expr {
	if c.Mono.IsGenericFunction(name) {
		return c.lowerGenericCall(name, n)
	}
	paramTypes := c.fnParamTypes[name]
	args := c.lowerArgs(n.Args, paramTypes)
	retTy := c.fnRetTypes[name]
	return ir.Call{Base: ir.Base{Span: spanOf(n.Pos), Type: retTy}, Callee: name, Args: args}
}

func (c *Context) lowerGenericCall(name string, n *ast.CallExpr) ir.Expr {
	var typeArgs []types.Type
	if len(n.TypeArgs) > 0 {
		c.Mono.CheckArity(name, len(n.TypeArgs), n.Pos)
		typeArgs = make([]types.Type, len(n.TypeArgs))
		for i, t := range n.TypeArgs {
			typeArgs[i] = c.ResolveType(t)
		}
	} else {
		defaults, ok := c.Mono.ResolveDefaults(name, n.Pos)
		if !ok {
			args := c.lowerArgs(n.Args, nil)
			return ir.Call{Base: ir.Base{Span: spanOf(n.Pos), Type: types.Unknown{}}, Callee: name, Args: args}
		}
		typeArgs = defaults
	}
	mangled, ok := c.Mono.MonomorphizeFunction(name, typeArgs, n.Pos)
	if !ok {
		mangled = name
	}
	c.enqueueMono(false, name, mangled, typeArgs, n.Pos)
	args := c.lowerArgs(n.Args, nil)
	retTy := types.Type(types.Unknown{})
	if inst, ok := c.Mono.GetInstance(mangled); ok {
		if fn, ok := inst.Specialized.(*types.Function); ok {
			retTy = fn.Return
		}
	}
	return ir.Call{Base: ir.Base{Span: spanOf(n.Pos), Type: retTy}, Callee: mangled, Args: args}
}

// enqueueMono schedules the body-lowering of a freshly built specialization
// for the monomorphization drain pass, skipping specializations already
// scheduled in this compilation unit.
func (c *Context) enqueueMono(isType bool, name, mangled string, args []types.Type, pos ast.Pos) {
	if c.scheduled[mangled] {
		return
	}
	c.scheduled[mangled] = true
	c.pendingMono = append(c.pendingMono, monoRequest{isType: isType, name: name, args: args, pos: pos})
}

func (c *Context) lowerMethodCall(callee *ast.MemberExpr, n *ast.CallExpr) ir.Expr {
	if id, ok := callee.Object.(*ast.Ident); ok {
		if id.Name == "console" && callee.Property == "log" {
			args := c.lowerArgs(n.Args, nil)
			return ir.IntrinsicCall{Base: ir.Base{Span: spanOf(n.Pos), Type: types.Void}, Name: "print", Args: args}
		}
		if id.Name == "Math" {
			if mathIntrinsics[callee.Property] {
				args := c.lowerArgs(n.Args, nil)
				return ir.IntrinsicCall{Base: ir.Base{Span: spanOf(n.Pos), Type: types.Number}, Name: "Math_" + callee.Property, Args: args}
			}
		}
	}
	objTy := c.inferType(callee.Object)
	if _, isArray := objTy.(*types.Array); isArray && arrayIntrinsics[callee.Property] {
		receiver := c.lowerExpr(callee.Object, nil)
		args := append([]ir.Expr{receiver}, c.lowerArgs(n.Args, nil)...)
		retTy := objTy
		if meta, ok := intrinsics.Lookup("array_" + callee.Property); ok {
			if _, unknown := meta.Return.(types.Unknown); !unknown {
				retTy = meta.Return
			}
		}
		return ir.IntrinsicCall{Base: ir.Base{Span: spanOf(n.Pos), Type: retTy}, Name: "array_" + callee.Property, Args: args}
	}

	structName, ok := c.receiverStructName(callee.Object)
	if !ok {
		args := c.lowerArgs(n.Args, nil)
		return ir.Call{Base: ir.Base{Span: spanOf(n.Pos), Type: types.Unknown{}}, Callee: callee.Property, Args: args}
	}
	mangled := structName + "_" + callee.Property
	receiver := c.lowerExpr(callee.Object, nil)
	argParamTypes := c.fnParamTypes[mangled]
	args := append([]ir.Expr{receiver}, c.lowerArgs(n.Args, argParamTypes)...)
	retTy := c.fnRetTypes[mangled]
	return ir.Call{Base: ir.Base{Span: spanOf(n.Pos), Type: retTy}, Callee: mangled, Args: args}
}

// lowerArrayLiteral lowers an array literal's elements, dropping spread and
// elided entries outright (per original_source's own array-literal lowering:
// no flattening, no runtime expansion) so neither contributes a value or an
// element-type hint.
func (c *Context) lowerArrayLiteral(n *ast.ArrayLit) ir.Expr {
	elems := make([]ir.Expr, 0, len(n.Elements))
	var elemTy types.Type = types.Unknown{}
	for _, el := range n.Elements {
		if el.Spread || el.Value == nil {
			continue
		}
		le := c.lowerExpr(el.Value, nil)
		elemTy = le.GetType()
		elems = append(elems, le)
	}
	return ir.NewArray{Base: ir.Base{Span: spanOf(n.Pos), Type: &types.Array{Elem: elemTy}}, Elements: elems}
}

func (c *Context) lowerArgs(args []ast.Expr, paramTypes []types.Type) []ir.Expr {
	out := make([]ir.Expr, len(args))
	for i, a := range args {
		var expected types.Type
		if i < len(paramTypes) {
			expected = paramTypes[i]
		}
		out[i] = c.lowerExpr(a, expected)
	}
	return out
}

// lowerObjectLit lowers an object literal into a NewStruct construction when
// the binding context names a known struct shape, field-ordering the
// arguments to match the shape's declaration order.
func (c *Context) lowerObjectLit(n *ast.ObjectLit, expected types.Type) ir.Expr {
	s, ok := c.structOf(expected)
	if !ok {
		fields := make([]ir.Expr, 0, len(n.Fields))
		for _, f := range n.Fields {
			if f.Spread {
				continue
			}
			fields = append(fields, c.lowerExpr(f.Value, nil))
		}
		return ir.NewStruct{Base: ir.Base{Span: spanOf(n.Pos), Type: types.Unknown{}}, StructName: "", Fields: fields}
	}
	byName := make(map[string]ast.Expr, len(n.Fields))
	for _, f := range n.Fields {
		if !f.Spread {
			byName[f.Name] = f.Value
		}
	}
	fields := make([]ir.Expr, len(s.Fields))
	for i, fd := range s.Fields {
		if v, present := byName[fd.Name]; present {
			fields[i] = c.boxForStore(c.lowerExpr(v, fd.Type), fd.Type)
		} else {
			fields[i] = ir.OptionNone{Base: ir.Base{Type: fd.Type}}
		}
	}
	return ir.NewStruct{Base: ir.Base{Span: spanOf(n.Pos), Type: s}, StructName: s.Name, Fields: fields}
}

func (c *Context) lowerNew(n *ast.NewExpr) ir.Expr {
	s, ok := c.lookupStruct(n.ClassName)
	if !ok {
		s = &types.Struct{Name: n.ClassName}
	}
	ctor := n.ClassName + "_new"
	args := c.lowerArgs(n.Args, c.fnParamTypes[ctor])
	return ir.Call{Base: ir.Base{Span: spanOf(n.Pos), Type: s}, Callee: ctor, Args: args}
}

func (c *Context) lowerMember(n *ast.MemberExpr) ir.Expr {
	objTy := c.inferType(n.Object)
	object := c.lowerExpr(n.Object, nil)

	if du, ok := c.discriminatedUnionFor(objTy); ok && n.Property == du.Discrim {
		return ir.TagAccess{Base: ir.Base{Span: spanOf(n.Pos), Type: types.String}, Object: object}
	}
	if s, ok := c.structOf(objTy); ok {
		idx := s.FieldIndex(n.Property)
		if idx >= 0 {
			return ir.FieldAccess{
				Base:       ir.Base{Span: spanOf(n.Pos), Type: s.Fields[idx].Type},
				Object:     object,
				FieldName:  n.Property,
				FieldIndex: idx,
			}
		}
	}
	if n.Property == "length" {
		if _, ok := objTy.(*types.Array); ok {
			return ir.IntrinsicCall{Base: ir.Base{Span: spanOf(n.Pos), Type: types.I64}, Name: "array_length", Args: []ir.Expr{object}}
		}
		if objTy == types.String {
			return ir.IntrinsicCall{Base: ir.Base{Span: spanOf(n.Pos), Type: types.I64}, Name: "string_length", Args: []ir.Expr{object}}
		}
	}
	return ir.FieldAccess{Base: ir.Base{Span: spanOf(n.Pos), Type: types.Unknown{}}, Object: object, FieldName: n.Property, FieldIndex: -1}
}

// lowerArrow hoists an arrow function to a top-level FuncDef under a fresh
// synthetic name and returns a reference to it by name (closures capture
// their environment at the backend layer, per the function-value layout
// contract).
func (c *Context) lowerArrow(n *ast.ArrowFunctionExpr) ir.Expr {
	name := c.nextLambdaName()
	params := make([]ir.ParamDef, len(n.Params))
	c.pushScope()
	for i, p := range n.Params {
		pty := c.ResolveType(p.Type)
		params[i] = ir.ParamDef{Name: p.Name, Type: pty}
		c.declareVar(p.Name, pty)
	}
	var retTy types.Type = types.Unknown{}
	if n.ReturnType != nil {
		retTy = c.ResolveType(n.ReturnType)
	}
	var body []ir.Stmt
	if n.ExprBody != nil {
		v := c.lowerExpr(n.ExprBody, retTy)
		if _, ok := retTy.(types.Unknown); ok {
			retTy = v.GetType()
		}
		body = []ir.Stmt{ir.ReturnStmt{Value: c.boxForStore(v, retTy)}}
	} else if n.BlockBody != nil {
		body = c.lowerBlock(n.BlockBody)
	}
	c.popScope()
	c.pendingFunctions = append(c.pendingFunctions, &ir.FuncDef{
		Name: name, Params: params, Return: retTy, Body: body,
	})
	fnType := &types.Function{Return: retTy}
	return ir.VarRef{Base: ir.Base{Span: spanOf(n.Pos), Type: fnType}, Name: name}
}

// wrapForExpected applies Option-wrapping at a binding site: a plain value
// stored into an Option(T)-typed site wraps in OptionSome; an already-Option
// value, or a site with no Option expectation, passes through unchanged.
func (c *Context) wrapForExpected(v ir.Expr, actual, expected types.Type) ir.Expr {
	return c.boxForStore(v, expected)
}

func (c *Context) boxForStore(v ir.Expr, expected types.Type) ir.Expr {
	if expected == nil {
		return v
	}
	opt, ok := expected.(*types.Option)
	if !ok {
		return v
	}
	if _, already := v.GetType().(*types.Option); already {
		return v
	}
	if _, isNone := v.(ir.OptionNone); isNone {
		return v
	}
	return ir.OptionSome{Base: ir.Base{Span: v.GetSpan(), Type: opt}, Value: v}
}

func spanOf(p ast.Pos) ast.Span { return ast.Span{Start: p, End: p} }
