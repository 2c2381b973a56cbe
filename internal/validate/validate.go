// Package validate implements the Subset Validator: a read-only pass over
// the AST that produces a list of rejections. It never mutates the AST and
// never consults the type registry.
package validate

import (
	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/errors"
)

// Validator accumulates rejections while walking a file.
type Validator struct {
	Reports []*errors.Report
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

func (v *Validator) reject(code string, pos ast.Pos, msg string) {
	span := ast.Span{Start: pos, End: pos}
	v.Reports = append(v.Reports, errors.New(code, &span, msg))
}

// File walks every declaration and top-level statement in f, collecting
// rejections. Each rejection carries a source span and a kind from the
// taxonomy in spec §4.2.
func (v *Validator) File(f *ast.File) {
	for _, d := range f.Decls {
		v.decl(d)
	}
	for _, s := range f.Statements {
		v.stmt(s)
	}
}

func (v *Validator) decl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.FuncDecl:
		v.decorators(n.Decorators)
		if n.IsAsync || n.IsGenerator {
			v.reject(errors.VAL003, n.Pos, "coroutine construct (async/generator) is outside the v1 subset")
		}
		v.funcSignature(n.Params, n.ReturnType, n.Pos)
		if n.Body != nil {
			v.stmt(n.Body)
		}
	case *ast.InterfaceDecl:
		v.decorators(n.Decorators)
		v.fields(n.Fields)
	case *ast.ClassDecl:
		v.decorators(n.Decorators)
		v.fields(n.Fields)
		for _, m := range n.Methods {
			v.decl(m)
		}
	case *ast.TypeAliasDecl:
		v.typ(n.Value)
	case *ast.EnumDecl:
		// enum members carry no type annotations to reject
	case *ast.TopVarDecl:
		if n.Kind == "var" {
			v.reject(errors.VAL006, n.Pos, "legacy block-leaky `var` declaration; use `let` or `const`")
		}
		if n.Type != nil {
			v.typ(n.Type)
		}
		if n.Init != nil {
			v.expr(n.Init)
		}
	}
}

func (v *Validator) decorators(ds []*ast.Decorator) {
	for _, d := range ds {
		v.reject(errors.VAL005, d.Pos, "decorator `@"+d.Name+"` is not permitted on any declaration")
	}
}

func (v *Validator) fields(fields []*ast.FieldDecl) {
	for _, f := range fields {
		if f.Computed {
			v.reject(errors.VAL007, f.Pos, "computed property key on a record type or class field")
		}
		if f.Type != nil {
			v.typ(f.Type)
		}
	}
}

// funcSignature rejects a missing parameter or return type annotation on
// any function or method declaration.
func (v *Validator) funcSignature(params []*ast.Param, ret ast.Type, pos ast.Pos) {
	for _, p := range params {
		if p.Type == nil {
			v.reject(errors.VAL002, p.Pos, "missing parameter type annotation for `"+p.Name+"`")
			continue
		}
		v.typ(p.Type)
	}
	if ret == nil {
		v.reject(errors.VAL002, pos, "missing return type annotation")
		return
	}
	v.typ(ret)
}

func (v *Validator) typ(t ast.Type) {
	switch n := t.(type) {
	case *ast.AmbientType:
		v.reject(errors.VAL001, n.Pos, "ambient type `"+n.Kind+"` has no stable layout")
	case *ast.ArrayType:
		v.typ(n.Elem)
	case *ast.TupleType:
		for _, e := range n.Elems {
			v.typ(e)
		}
	case *ast.UnionType:
		for _, vv := range n.Variants {
			v.typ(vv)
		}
	case *ast.IntersectionType:
		for _, p := range n.Parts {
			v.typ(p)
		}
	case *ast.FunctionType:
		v.funcSignature(n.Params, n.Return, n.Pos)
	case *ast.ReadonlyType:
		v.typ(n.Inner)
	case *ast.WeakType:
		v.typ(n.Inner)
	case *ast.ResultType:
		v.typ(n.Ok)
		v.typ(n.Err)
	case *ast.NamedType:
		for _, a := range n.TypeArgs {
			v.typ(a)
		}
	}
}

func (v *Validator) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		for _, st := range n.Stmts {
			v.stmt(st)
		}
	case *ast.VarDecl:
		if n.Kind == "var" {
			v.reject(errors.VAL006, n.Pos, "legacy block-leaky `var` declaration; use `let` or `const`")
		}
		if n.Type != nil {
			v.typ(n.Type)
		}
		if n.Init != nil {
			v.expr(n.Init)
		}
	case *ast.ExprStmt:
		v.expr(n.Expr)
	case *ast.ReturnStmt:
		if n.Value != nil {
			v.expr(n.Value)
		}
	case *ast.IfStmt:
		v.expr(n.Cond)
		v.stmt(n.Then)
		if n.Else != nil {
			v.stmt(n.Else)
		}
	case *ast.WhileStmt:
		v.expr(n.Cond)
		v.stmt(n.Body)
	case *ast.ForStmt:
		if n.Init != nil {
			v.stmt(n.Init)
		}
		if n.Cond != nil {
			v.expr(n.Cond)
		}
		if n.Post != nil {
			v.stmt(n.Post)
		}
		v.stmt(n.Body)
	case *ast.ForOfStmt:
		v.expr(n.Iter)
		v.stmt(n.Body)
	case *ast.SwitchStmt:
		v.expr(n.Discriminant)
		for _, c := range n.Cases {
			if c.Test != nil {
				v.expr(c.Test)
			}
			for _, st := range c.Body {
				v.stmt(st)
			}
		}
	case *ast.WithStmt:
		v.reject(errors.VAL004, n.Pos, "`with` introduces undefined-layout dynamic scope")
		v.expr(n.Object)
		v.stmt(n.Body)
	}
}

// dynamicNames is the finite set of reflective/prototype-manipulation
// identifiers the validator rejects wherever they appear as a call callee
// or member-access target.
var dynamicNames = map[string]bool{
	"eval": true, "Proxy": true, "Reflect": true,
}

func (v *Validator) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		if dynamicNames[n.Name] {
			v.reject(errors.VAL004, n.Pos, "reflective/dynamic facility `"+n.Name+"` is not permitted")
		}
	case *ast.BigIntLit:
		v.reject(errors.VAL008, n.Pos, "ambient big-integer literal")
	case *ast.AwaitExpr:
		v.reject(errors.VAL003, n.Pos, "`await` is a coroutine construct, outside the v1 subset")
		v.expr(n.Operand)
	case *ast.YieldExpr:
		v.reject(errors.VAL003, n.Pos, "`yield` is a coroutine construct, outside the v1 subset")
		if n.Operand != nil {
			v.expr(n.Operand)
		}
	case *ast.BinaryExpr:
		v.expr(n.Left)
		v.expr(n.Right)
	case *ast.UnaryExpr:
		v.expr(n.Operand)
	case *ast.AssignExpr:
		v.expr(n.Target)
		v.expr(n.Value)
	case *ast.ConditionalExpr:
		v.expr(n.Cond)
		v.expr(n.Then)
		v.expr(n.Else)
	case *ast.SpreadExpr:
		v.expr(n.Argument)
	case *ast.CallExpr:
		v.memberDynamicCheck(n.Callee)
		v.expr(n.Callee)
		for _, a := range n.Args {
			v.expr(a)
		}
	case *ast.NewExpr:
		for _, a := range n.Args {
			v.expr(a)
		}
	case *ast.MemberExpr:
		if n.Property == "__proto__" || n.Property == "prototype" {
			v.reject(errors.VAL004, n.Pos, "prototype-chain manipulation via `"+n.Property+"`")
		}
		v.expr(n.Object)
	case *ast.IndexExpr:
		v.expr(n.Object)
		v.expr(n.Index)
	case *ast.ArrayLit:
		for _, el := range n.Elements {
			v.expr(el.Value)
		}
	case *ast.ObjectLit:
		for _, f := range n.Fields {
			v.expr(f.Value)
		}
	case *ast.ArrowFunctionExpr:
		v.funcSignature(n.Params, n.ReturnType, n.Pos)
		if n.ExprBody != nil {
			v.expr(n.ExprBody)
		}
		if n.BlockBody != nil {
			v.stmt(n.BlockBody)
		}
	case *ast.TypeofExpr:
		v.expr(n.Operand)
	case *ast.InstanceofExpr:
		v.expr(n.Left)
		v.expr(n.Right)
	case *ast.AsExpr:
		v.expr(n.Expr)
		v.typ(n.Type)
	case *ast.TemplateStringExpr:
		for _, e := range n.Exprs {
			v.expr(e)
		}
	}
}

// memberDynamicCheck rejects `eval(...)`/`Reflect.x(...)`-shaped calls where
// the validator can see the dynamic name syntactically at the call site.
func (v *Validator) memberDynamicCheck(callee ast.Expr) {
	switch c := callee.(type) {
	case *ast.Ident:
		if dynamicNames[c.Name] {
			v.reject(errors.VAL004, c.Pos, "reflective/dynamic facility `"+c.Name+"` is not permitted")
		}
	case *ast.MemberExpr:
		if id, ok := c.Object.(*ast.Ident); ok && dynamicNames[id.Name] {
			v.reject(errors.VAL004, c.Pos, "reflective/dynamic facility `"+id.Name+"` is not permitted")
		}
	}
}
