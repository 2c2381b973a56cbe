package lower

import (
	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/ir"
	"github.com/bherbruck/llts/internal/types"
)

// lowerBlock lowers every statement of a block in its own pushed scope.
func (c *Context) lowerBlock(b *ast.BlockStmt) []ir.Stmt {
	c.pushScope()
	out := c.lowerStmts(b.Stmts)
	c.popScope()
	return out
}

func (c *Context) lowerStmts(stmts []ast.Stmt) []ir.Stmt {
	var out []ir.Stmt
	for _, s := range stmts {
		out = append(out, c.lowerStmt(s)...)
	}
	return out
}

// lowerStmt lowers one surface statement, possibly expanding it into several
// IR statements (destructuring declarations, narrowed conditionals).
func (c *Context) lowerStmt(s ast.Stmt) []ir.Stmt {
	switch n := s.(type) {
	case *ast.BlockStmt:
		return []ir.Stmt{ir.BlockStmt{Stmts: c.lowerBlock(n)}}
	case *ast.VarDecl:
		return c.lowerVarDecl(n)
	case *ast.ExprStmt:
		return c.lowerExprStmt(n)
	case *ast.ReturnStmt:
		return c.lowerReturn(n)
	case *ast.IfStmt:
		return c.lowerIf(n)
	case *ast.WhileStmt:
		return c.lowerWhile(n)
	case *ast.ForStmt:
		return c.lowerFor(n)
	case *ast.ForOfStmt:
		return c.lowerForOf(n)
	case *ast.SwitchStmt:
		return c.lowerSwitch(n)
	case *ast.BreakStmt:
		return []ir.Stmt{ir.BreakStmt{Label: c.currentLoop().Break}}
	case *ast.ContinueStmt:
		return []ir.Stmt{ir.ContinueStmt{Label: c.currentLoop().Cont}}
	default:
		return nil
	}
}

// lowerVarDecl handles both a plain named binding and a destructuring
// pattern, which expands into one temp declaration plus one field/indexed-
// access declaration per bound name.
func (c *Context) lowerVarDecl(n *ast.VarDecl) []ir.Stmt {
	declType := types.Type(nil)
	if n.Type != nil {
		declType = c.ResolveType(n.Type)
	}

	if n.Pattern != nil {
		return c.lowerDestructure(n.Pattern, n.Init, declType)
	}

	var init ir.Expr
	if n.Init != nil {
		init = c.lowerExpr(n.Init, declType)
		init = c.boxForStore(init, declType)
	}
	if declType == nil && init != nil {
		declType = init.GetType()
	}
	c.declareVar(n.Name, declType)
	return []ir.Stmt{ir.VarDeclStmt{Name: n.Name, Type: declType, Init: init}}
}

// lowerDestructure expands `const { a, b: renamed } = expr` / `const [a, b] =
// expr` into a synthetic temp binding plus one declaration per pattern
// binding, each reading the temp by field name or element index.
func (c *Context) lowerDestructure(pat ast.Pattern, init ast.Expr, declType types.Type) []ir.Stmt {
	tempName := c.nextLambdaName() + "_destr"
	lowered := c.lowerExpr(init, declType)
	tempTy := lowered.GetType()
	c.declareVar(tempName, tempTy)
	out := []ir.Stmt{ir.VarDeclStmt{Name: tempName, Type: tempTy, Init: lowered}}

	switch p := pat.(type) {
	case *ast.ObjectPattern:
		s, _ := c.structOf(tempTy)
		for _, prop := range p.Props {
			name, fieldIdx, fieldTy := c.destructureObjectProp(s, prop)
			access := ir.FieldAccess{
				Base:       ir.Base{Type: fieldTy},
				Object:     ir.VarRef{Base: ir.Base{Type: tempTy}, Name: tempName},
				FieldName:  prop.Key,
				FieldIndex: fieldIdx,
			}
			c.declareVar(name, fieldTy)
			out = append(out, ir.VarDeclStmt{Name: name, Type: fieldTy, Init: access})
		}
	case *ast.ArrayPattern:
		elemTy := types.Type(types.Unknown{})
		if arr, ok := tempTy.(*types.Array); ok {
			elemTy = arr.Elem
		}
		for i, el := range p.Elements {
			id, ok := el.(*ast.Ident)
			if !ok {
				continue
			}
			access := ir.IndexAccess{
				Base:   ir.Base{Type: elemTy},
				Object: ir.VarRef{Base: ir.Base{Type: tempTy}, Name: tempName},
				Index:  ir.IntLit{Base: ir.Base{Type: types.I64}, Value: int64(i)},
			}
			c.declareVar(id.Name, elemTy)
			out = append(out, ir.VarDeclStmt{Name: id.Name, Type: elemTy, Init: access})
		}
	}
	return out
}

func (c *Context) destructureObjectProp(s *types.Struct, prop *ast.ObjectPatternProp) (string, int, types.Type) {
	name := prop.Key
	if id, ok := prop.Value.(*ast.Ident); ok {
		name = id.Name
	}
	if s == nil {
		return name, -1, types.Unknown{}
	}
	idx := s.FieldIndex(prop.Key)
	if idx < 0 {
		return name, -1, types.Unknown{}
	}
	return name, idx, s.Fields[idx].Type
}

func (c *Context) lowerExprStmt(n *ast.ExprStmt) []ir.Stmt {
	if assign, ok := n.Expr.(*ast.AssignExpr); ok {
		return []ir.Stmt{c.lowerAssign(assign)}
	}
	return []ir.Stmt{ir.ExprStmt{Expr: c.lowerExpr(n.Expr, nil)}}
}

// lowerAssign produces a dedicated FieldAssignStmt/IndexAssignStmt for a
// struct-field or array-index target, or a plain AssignStmt for a local
// variable.
func (c *Context) lowerAssign(n *ast.AssignExpr) ir.Stmt {
	switch target := n.Target.(type) {
	case *ast.MemberExpr:
		objTy := c.inferType(target.Object)
		object := c.lowerExpr(target.Object, nil)
		var fieldTy types.Type = types.Unknown{}
		if s, ok := c.structOf(objTy); ok {
			if idx := s.FieldIndex(target.Property); idx >= 0 {
				fieldTy = s.Fields[idx].Type
			}
		}
		value := c.lowerAssignValue(n, fieldTy)
		return ir.FieldAssignStmt{Object: object, FieldName: target.Property, Value: value}
	case *ast.IndexExpr:
		objTy := c.inferType(target.Object)
		object := c.lowerExpr(target.Object, nil)
		index := c.lowerExpr(target.Index, types.I64)
		var elemTy types.Type = types.Unknown{}
		if arr, ok := objTy.(*types.Array); ok {
			elemTy = arr.Elem
		}
		value := c.lowerAssignValue(n, elemTy)
		return ir.IndexAssignStmt{Object: object, Index: index, Value: value}
	case *ast.Ident:
		ty, _ := c.lookupVar(target.Name)
		value := c.lowerAssignValue(n, ty)
		return ir.AssignStmt{Name: target.Name, Value: value}
	default:
		return ir.ExprStmt{Expr: c.lowerExpr(n.Value, nil)}
	}
}

// lowerAssignValue lowers the right-hand side, expanding compound `+=`-style
// operators into an explicit BinOp against the current target value, and
// applying Option-wrapping against the target's declared type.
func (c *Context) lowerAssignValue(n *ast.AssignExpr, targetTy types.Type) ir.Expr {
	rhs := c.lowerExpr(n.Value, targetTy)
	if n.Op == "=" {
		return c.boxForStore(rhs, targetTy)
	}
	op := n.Op[:len(n.Op)-1]
	lhs := c.lowerExpr(n.Target, nil)
	return ir.BinOp{Base: ir.Base{Type: targetTy}, Op: op, Left: lhs, Right: rhs}
}

func (c *Context) lowerReturn(n *ast.ReturnStmt) []ir.Stmt {
	if n.Value == nil {
		return []ir.Stmt{ir.ReturnStmt{}}
	}
	v := c.lowerExpr(n.Value, c.currentRetType)
	return []ir.Stmt{ir.ReturnStmt{Value: c.boxForStore(v, c.currentRetType)}}
}

// lowerIf applies the null-narrowing rewrite when the condition is exactly
// `x === null` / `x !== null` on an Option(T)-typed variable: the narrowed
// branch gets a synthetic unwrap declaration rebinding x to T.
func (c *Context) lowerIf(n *ast.IfStmt) []ir.Stmt {
	cond := c.lowerExpr(n.Cond, nil)

	narrowVar, narrowTy, someBranchIsThen, ok := c.detectNullNarrow(n.Cond)

	c.pushScope()
	var thenStmts []ir.Stmt
	if ok && someBranchIsThen {
		thenStmts = append(thenStmts, c.unwrapDecl(narrowVar, narrowTy))
	}
	thenStmts = append(thenStmts, c.lowerBranch(n.Then)...)
	c.popScope()

	var elseStmts []ir.Stmt
	if n.Else != nil {
		c.pushScope()
		if ok && !someBranchIsThen {
			elseStmts = append(elseStmts, c.unwrapDecl(narrowVar, narrowTy))
		}
		elseStmts = append(elseStmts, c.lowerBranch(n.Else)...)
		c.popScope()
	}

	return []ir.Stmt{ir.IfStmt{Cond: cond, Then: thenStmts, Else: elseStmts}}
}

func (c *Context) lowerBranch(s ast.Stmt) []ir.Stmt {
	if b, ok := s.(*ast.BlockStmt); ok {
		return c.lowerStmts(b.Stmts)
	}
	return c.lowerStmt(s)
}

// detectNullNarrow recognizes `v === null` / `v !== null` where v is a plain
// identifier of Option type, returning which branch is the "is Some" arm.
func (c *Context) detectNullNarrow(cond ast.Expr) (name string, innerTy types.Type, someIsThen bool, ok bool) {
	bin, isBin := cond.(*ast.BinaryExpr)
	if !isBin || (bin.Op != "===" && bin.Op != "!==") {
		return "", nil, false, false
	}
	var operand ast.Expr
	switch {
	case isNullLit(bin.Right):
		operand = bin.Left
	case isNullLit(bin.Left):
		operand = bin.Right
	default:
		return "", nil, false, false
	}
	id, isIdent := operand.(*ast.Ident)
	if !isIdent {
		return "", nil, false, false
	}
	ty, found := c.lookupVar(id.Name)
	if !found {
		return "", nil, false, false
	}
	opt, isOpt := c.optionOf(ty)
	if !isOpt {
		return "", nil, false, false
	}
	// `=== null` is true in the null branch (the Then arm here is the
	// null/None case); `!== null` is true in the Some branch.
	return id.Name, opt.Inner, bin.Op == "!==", true
}

func (c *Context) unwrapDecl(name string, innerTy types.Type) ir.Stmt {
	c.declareVar(name, innerTy)
	return ir.VarDeclStmt{
		Name: name,
		Type: innerTy,
		Init: ir.Unwrap{Base: ir.Base{Type: innerTy}, Value: ir.VarRef{Base: ir.Base{Type: innerTy}, Name: name}},
	}
}

func (c *Context) lowerWhile(n *ast.WhileStmt) []ir.Stmt {
	lbl := c.pushLoop()
	cond := c.lowerExpr(n.Cond, nil)
	body := c.lowerBranch(n.Body)
	c.popLoop()
	return []ir.Stmt{ir.WhileStmt{Cond: cond, Body: body, BreakLabel: lbl.Break, ContLabel: lbl.Cont}}
}

func (c *Context) lowerFor(n *ast.ForStmt) []ir.Stmt {
	c.pushScope()
	var init ir.Stmt
	if n.Init != nil {
		stmts := c.lowerStmt(n.Init)
		if len(stmts) > 0 {
			init = stmts[0]
		}
	}
	var cond ir.Expr
	if n.Cond != nil {
		cond = c.lowerExpr(n.Cond, nil)
	}
	var post ir.Stmt
	if n.Post != nil {
		stmts := c.lowerStmt(n.Post)
		if len(stmts) > 0 {
			post = stmts[0]
		}
	}
	lbl := c.pushLoop()
	body := c.lowerBranch(n.Body)
	c.popLoop()
	c.popScope()
	return []ir.Stmt{ir.ForStmt{Init: init, Cond: cond, Post: post, Body: body, BreakLabel: lbl.Break, ContLabel: lbl.Cont}}
}

// lowerForOf expands `for (const x of arr) body` into the classic indexed
// ForStmt form over the array, restricted to array iterables.
func (c *Context) lowerForOf(n *ast.ForOfStmt) []ir.Stmt {
	c.pushScope()
	arrTemp := c.nextLambdaName() + "_iter"
	arr := c.lowerExpr(n.Iter, nil)
	arrTy := arr.GetType()
	elemTy := types.Type(types.Unknown{})
	if at, ok := arrTy.(*types.Array); ok {
		elemTy = at.Elem
	}
	if n.VarType != nil {
		elemTy = c.ResolveType(n.VarType)
	}
	c.declareVar(arrTemp, arrTy)

	idxName := c.nextLambdaName() + "_idx"
	c.declareVar(idxName, types.I64)

	init := ir.VarDeclStmt{Name: arrTemp, Type: arrTy, Init: arr}
	idxInit := ir.VarDeclStmt{Name: idxName, Type: types.I64, Init: ir.IntLit{Base: ir.Base{Type: types.I64}, Value: 0}}
	cond := ir.BinOp{
		Base: ir.Base{Type: types.Boolean}, Op: "<",
		Left:  ir.VarRef{Base: ir.Base{Type: types.I64}, Name: idxName},
		Right: ir.IntrinsicCall{Base: ir.Base{Type: types.I64}, Name: "array_length", Args: []ir.Expr{ir.VarRef{Base: ir.Base{Type: arrTy}, Name: arrTemp}}},
	}
	post := ir.AssignStmt{
		Name: idxName,
		Value: ir.BinOp{
			Base: ir.Base{Type: types.I64}, Op: "+",
			Left:  ir.VarRef{Base: ir.Base{Type: types.I64}, Name: idxName},
			Right: ir.IntLit{Base: ir.Base{Type: types.I64}, Value: 1},
		},
	}

	c.pushScope()
	c.declareVar(n.VarName, elemTy)
	elemDecl := ir.VarDeclStmt{
		Name: n.VarName, Type: elemTy,
		Init: ir.IndexAccess{
			Base:   ir.Base{Type: elemTy},
			Object: ir.VarRef{Base: ir.Base{Type: arrTy}, Name: arrTemp},
			Index:  ir.VarRef{Base: ir.Base{Type: types.I64}, Name: idxName},
		},
	}
	lbl := c.pushLoop()
	body := append([]ir.Stmt{elemDecl}, c.lowerBranch(n.Body)...)
	c.popLoop()
	c.popScope()
	c.popScope()

	return []ir.Stmt{
		init,
		ir.ForStmt{Init: idxInit, Cond: cond, Post: post, Body: body, BreakLabel: lbl.Break, ContLabel: lbl.Cont},
	}
}

// lowerSwitch rewrites a discriminant-union switch into a tag comparison
// against field 0, rebinding the scrutinee to its payload struct (field 1)
// inside each matched case.
func (c *Context) lowerSwitch(n *ast.SwitchStmt) []ir.Stmt {
	member, isMember := n.Discriminant.(*ast.MemberExpr)
	if !isMember {
		return c.lowerGenericSwitch(n)
	}
	objTy := c.inferType(member.Object)
	du, ok := c.discriminatedUnionFor(objTy)
	scrutIdent, isIdent := member.Object.(*ast.Ident)
	if !ok || !isIdent || member.Property != du.Discrim {
		return c.lowerGenericSwitch(n)
	}

	scrutTemp := c.nextLambdaName() + "_scrut"
	scrut := c.lowerExpr(member.Object, nil)
	c.declareVar(scrutTemp, objTy)
	out := []ir.Stmt{ir.VarDeclStmt{Name: scrutTemp, Type: objTy, Init: scrut}}

	tag := ir.TagAccess{Base: ir.Base{Type: types.I32}, Object: ir.VarRef{Base: ir.Base{Type: objTy}, Name: scrutTemp}}

	var branches []*ir.IfStmt
	for _, kase := range n.Cases {
		if kase.Test == nil {
			continue
		}
		lit, isLit := kase.Test.(*ast.StringLit)
		if !isLit {
			continue
		}
		variant, found := du.ByDiscrim[lit.Value]
		if !found {
			continue
		}
		c.pushScope()
		c.declareVar(scrutIdent.Name, variant.Payload)
		payloadVar := ir.VarRef{Base: ir.Base{Type: objTy}, Name: scrutTemp}
		rebindInit := ir.Cast{Base: ir.Base{Type: variant.Payload}, Value: payloadVar, Target: variant.Payload}
		body := append([]ir.Stmt{ir.VarDeclStmt{Name: scrutIdent.Name, Type: variant.Payload, Init: rebindInit}},
			c.lowerStmts(kase.Body)...)
		c.popScope()

		branch := &ir.IfStmt{
			Cond: ir.BinOp{
				Base: ir.Base{Type: types.Boolean}, Op: "==",
				Left: tag, Right: ir.IntLit{Base: ir.Base{Type: types.I32}, Value: int64(variant.Tag)},
			},
			Then: body,
		}
		branches = append(branches, branch)
	}
	// Fold from the last branch backwards so each copied else-branch already
	// carries its own completed else chain.
	for i := len(branches) - 1; i > 0; i-- {
		branches[i-1].Else = []ir.Stmt{*branches[i]}
	}
	if len(branches) > 0 {
		out = append(out, *branches[0])
	}
	return out
}

// lowerGenericSwitch lowers a plain (non-discriminated-union) switch as a
// chain of equality-tested if statements over the discriminant value.
func (c *Context) lowerGenericSwitch(n *ast.SwitchStmt) []ir.Stmt {
	discTemp := c.nextLambdaName() + "_disc"
	disc := c.lowerExpr(n.Discriminant, nil)
	discTy := disc.GetType()
	c.declareVar(discTemp, discTy)
	out := []ir.Stmt{ir.VarDeclStmt{Name: discTemp, Type: discTy, Init: disc}}

	var branches []*ir.IfStmt
	var defaultBody []ir.Stmt
	for _, kase := range n.Cases {
		body := c.lowerStmts(kase.Body)
		if kase.Test == nil {
			defaultBody = body
			continue
		}
		test := c.lowerExpr(kase.Test, discTy)
		branch := &ir.IfStmt{
			Cond: ir.BinOp{Base: ir.Base{Type: types.Boolean}, Op: "==", Left: ir.VarRef{Base: ir.Base{Type: discTy}, Name: discTemp}, Right: test},
			Then: body,
		}
		branches = append(branches, branch)
	}
	if len(branches) > 0 {
		branches[len(branches)-1].Else = defaultBody
		for i := len(branches) - 1; i > 0; i-- {
			branches[i-1].Else = []ir.Stmt{*branches[i]}
		}
		out = append(out, *branches[0])
	} else if defaultBody != nil {
		out = append(out, defaultBody...)
	}
	return out
}
