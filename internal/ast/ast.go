// Package ast defines the AST shape produced by llts's (external) parser
// collaborator. Nothing in this package parses source text; it is a pure
// data definition consumed by internal/resolve, internal/validate,
// internal/types, internal/ownership, internal/mono and internal/lower.
package ast

import (
	"fmt"
	"strings"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	String() string
	Position() Pos
}

// Pos represents a position in source.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int
}

func (p Pos) String() string { return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column) }

// Span represents a range in source, used to attribute diagnostics.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string { return fmt.Sprintf("%s-%s", s.Start, s.End) }

// File is one parsed source file.
type File struct {
	Path       string
	Imports    []*ImportDecl
	Decls      []Decl
	Statements []Stmt // top-level statements (only meaningful in the entry file)
	Pos        Pos
}

func (f *File) Position() Pos { return f.Pos }
func (f *File) String() string {
	var parts []string
	for _, imp := range f.Imports {
		parts = append(parts, imp.String())
	}
	for _, d := range f.Decls {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "\n")
}

// ImportDecl names a module specifier; Symbols is empty for a whole-module
// import. The Module Graph Resolver only inspects Path.
type ImportDecl struct {
	Path    string
	Symbols []string
	Pos     Pos
	Span    Span
}

func (i *ImportDecl) Position() Pos { return i.Pos }
func (i *ImportDecl) String() string {
	if len(i.Symbols) > 0 {
		return fmt.Sprintf("import { %s } from %q", strings.Join(i.Symbols, ", "), i.Path)
	}
	return fmt.Sprintf("import %q", i.Path)
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// Type is a type annotation node.
type Type interface {
	Node
	typeNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Pattern is a binding pattern (destructuring target).
type Pattern interface {
	Node
	patternNode()
}

// Decorator attaches to a declaration so the validator can flag it (the
// v1 subset rejects all decorators).
type Decorator struct {
	Name string
	Args []Expr
	Pos  Pos
}

// Param is a function/method parameter.
type Param struct {
	Name     string
	Type     Type // nil means the annotation was omitted (validator rejects)
	Optional bool
	Pos      Pos
}

// TypeParam is a generic type-parameter declaration: `<T extends A | B = C>`.
type TypeParam struct {
	Name       string
	Constraint Type // nil if unconstrained
	Default    Type // nil if no default
	Pos        Pos
}

// ----------------------------------------------------------------------
// Declarations
// ----------------------------------------------------------------------

// FuncDecl is a top-level or class method function declaration.
type FuncDecl struct {
	Name        string
	Receiver    string // non-empty for methods lowered from a ClassDecl
	TypeParams  []*TypeParam
	Params      []*Param
	ReturnType  Type // nil means omitted (validator rejects)
	Body        *BlockStmt
	IsAsync     bool // rejected by validator (coroutines out of scope)
	IsGenerator bool // rejected by validator
	Decorators  []*Decorator
	Pos         Pos
	Span        Span
}

func (d *FuncDecl) declNode()       {}
func (d *FuncDecl) Position() Pos   { return d.Pos }
func (d *FuncDecl) String() string  { return fmt.Sprintf("function %s(...)", d.Name) }

// FieldDecl is a struct/interface/class field.
type FieldDecl struct {
	Name     string
	Type     Type
	Readonly bool
	Optional bool
	Computed bool // `[expr]: T` — rejected by validator
	KeyExpr  Expr // non-nil only when Computed
	Pos      Pos
}

// InterfaceDecl declares a structurally-typed record shape.
type InterfaceDecl struct {
	Name       string
	TypeParams []*TypeParam
	Fields     []*FieldDecl
	Decorators []*Decorator
	Pos        Pos
	Span       Span
}

func (d *InterfaceDecl) declNode()      {}
func (d *InterfaceDecl) Position() Pos  { return d.Pos }
func (d *InterfaceDecl) String() string { return fmt.Sprintf("interface %s", d.Name) }

// ClassDecl declares a class; its property declarations become a struct
// shape and its methods become standalone functions.
type ClassDecl struct {
	Name       string
	TypeParams []*TypeParam
	Fields     []*FieldDecl
	Methods    []*FuncDecl
	Decorators []*Decorator
	Pos        Pos
	Span       Span
}

func (d *ClassDecl) declNode()      {}
func (d *ClassDecl) Position() Pos  { return d.Pos }
func (d *ClassDecl) String() string { return fmt.Sprintf("class %s", d.Name) }

// TypeAliasDecl declares `type Name<T...> = <type>`.
type TypeAliasDecl struct {
	Name       string
	TypeParams []*TypeParam
	Value      Type
	Pos        Pos
	Span       Span
}

func (d *TypeAliasDecl) declNode()      {}
func (d *TypeAliasDecl) Position() Pos  { return d.Pos }
func (d *TypeAliasDecl) String() string { return fmt.Sprintf("type %s = %s", d.Name, d.Value) }

// EnumMember is one variant of an EnumDecl.
type EnumMember struct {
	Name  string
	Value interface{} // nil (auto), int64, or string
	Pos   Pos
}

// EnumDecl declares a tagged or const enum.
type EnumDecl struct {
	Name    string
	Members []*EnumMember
	IsConst bool
	Pos     Pos
	Span    Span
}

func (d *EnumDecl) declNode()      {}
func (d *EnumDecl) Position() Pos  { return d.Pos }
func (d *EnumDecl) String() string { return fmt.Sprintf("enum %s", d.Name) }

// TopVarDecl is a top-level `const`/`let` binding (module-scope).
type TopVarDecl struct {
	Kind string // "const" | "let" | "var" (var rejected by validator)
	Name string
	Type Type
	Init Expr
	Pos  Pos
}

func (d *TopVarDecl) declNode()      {}
func (d *TopVarDecl) Position() Pos  { return d.Pos }
func (d *TopVarDecl) String() string { return fmt.Sprintf("%s %s = %s", d.Kind, d.Name, d.Init) }

// ----------------------------------------------------------------------
// Types
// ----------------------------------------------------------------------

// NamedType is a reference to a primitive, a named declared type, or a
// generic instantiation `Name<Args...>`.
type NamedType struct {
	Name     string
	TypeArgs []Type
	Pos      Pos
}

func (t *NamedType) typeNode()     {}
func (t *NamedType) Position() Pos { return t.Pos }
func (t *NamedType) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Name
	}
	args := make([]string, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(args, ", "))
}

// ArrayType is `T[]`.
type ArrayType struct {
	Elem Type
	Pos  Pos
}

func (t *ArrayType) typeNode()      {}
func (t *ArrayType) Position() Pos  { return t.Pos }
func (t *ArrayType) String() string { return t.Elem.String() + "[]" }

// TupleType is `[T1, T2, ...]`.
type TupleType struct {
	Elems []Type
	Pos   Pos
}

func (t *TupleType) typeNode()     {}
func (t *TupleType) Position() Pos { return t.Pos }
func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// UnionType is `A | B | C`.
type UnionType struct {
	Variants []Type
	Pos      Pos
}

func (t *UnionType) typeNode()     {}
func (t *UnionType) Position() Pos { return t.Pos }
func (t *UnionType) String() string {
	parts := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		parts[i] = v.String()
	}
	return strings.Join(parts, " | ")
}

// IntersectionType is `A & B`.
type IntersectionType struct {
	Parts []Type
	Pos   Pos
}

func (t *IntersectionType) typeNode()     {}
func (t *IntersectionType) Position() Pos { return t.Pos }
func (t *IntersectionType) String() string {
	parts := make([]string, len(t.Parts))
	for i, p := range t.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " & ")
}

// FunctionType is `(params) => Return`.
type FunctionType struct {
	Params []*Param
	Return Type
	Pos    Pos
}

func (t *FunctionType) typeNode()     {}
func (t *FunctionType) Position() Pos { return t.Pos }
func (t *FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.Name
	}
	return fmt.Sprintf("(%s) => %s", strings.Join(parts, ", "), t.Return)
}

// ReadonlyType is `Readonly<T>`.
type ReadonlyType struct {
	Inner Type
	Pos   Pos
}

func (t *ReadonlyType) typeNode()      {}
func (t *ReadonlyType) Position() Pos  { return t.Pos }
func (t *ReadonlyType) String() string { return fmt.Sprintf("Readonly<%s>", t.Inner) }

// WeakType is `Weak<T>`.
type WeakType struct {
	Inner Type
	Pos   Pos
}

func (t *WeakType) typeNode()      {}
func (t *WeakType) Position() Pos  { return t.Pos }
func (t *WeakType) String() string { return fmt.Sprintf("Weak<%s>", t.Inner) }

// ResultType is `Result<Ok, Err>`.
type ResultType struct {
	Ok, Err Type
	Pos     Pos
}

func (t *ResultType) typeNode()      {}
func (t *ResultType) Position() Pos  { return t.Pos }
func (t *ResultType) String() string { return fmt.Sprintf("Result<%s, %s>", t.Ok, t.Err) }

// NullType is the literal `null`/`undefined` type, only meaningful inside a
// UnionType — type resolution normalizes `T | null` to Option(T).
type NullType struct{ Pos Pos }

func (t *NullType) typeNode()      {}
func (t *NullType) Position() Pos  { return t.Pos }
func (t *NullType) String() string { return "null" }

// LiteralType is a string or numeric literal type, e.g. `"circle"`.
type LiteralType struct {
	Value interface{} // string or float64
	Pos   Pos
}

func (t *LiteralType) typeNode()      {}
func (t *LiteralType) Position() Pos  { return t.Pos }
func (t *LiteralType) String() string { return fmt.Sprintf("%v", t.Value) }

// AmbientType represents the handful of ambient type annotations the
// validator must reject outright: any, unknown, bigint, symbol, and a bare
// non-null object type with no shape.
type AmbientType struct {
	Kind string // "any" | "unknown" | "bigint" | "symbol" | "object"
	Pos  Pos
}

func (t *AmbientType) typeNode()      {}
func (t *AmbientType) Position() Pos  { return t.Pos }
func (t *AmbientType) String() string { return t.Kind }

// ----------------------------------------------------------------------
// Statements
// ----------------------------------------------------------------------

// BlockStmt is `{ stmt; stmt; ... }`.
type BlockStmt struct {
	Stmts []Stmt
	Pos   Pos
}

func (s *BlockStmt) stmtNode()     {}
func (s *BlockStmt) Position() Pos { return s.Pos }
func (s *BlockStmt) String() string {
	parts := make([]string, len(s.Stmts))
	for i, st := range s.Stmts {
		parts[i] = st.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// VarDecl is a block-scoped local binding. Kind == "var" marks the legacy
// leaky form, rejected by the validator.
type VarDecl struct {
	Kind    string // "const" | "let" | "var"
	Name    string
	Pattern Pattern // non-nil for destructuring declarations; Name is empty then
	Type    Type
	Init    Expr
	Pos     Pos
}

func (s *VarDecl) stmtNode()      {}
func (s *VarDecl) Position() Pos  { return s.Pos }
func (s *VarDecl) String() string { return fmt.Sprintf("%s %s = %s", s.Kind, s.Name, s.Init) }

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	Expr Expr
	Pos  Pos
}

func (s *ExprStmt) stmtNode()      {}
func (s *ExprStmt) Position() Pos  { return s.Pos }
func (s *ExprStmt) String() string { return s.Expr.String() }

// ReturnStmt is `return <expr>?;`.
type ReturnStmt struct {
	Value Expr // nil for bare `return;`
	Pos   Pos
}

func (s *ReturnStmt) stmtNode()      {}
func (s *ReturnStmt) Position() Pos  { return s.Pos }
func (s *ReturnStmt) String() string { return fmt.Sprintf("return %s", s.Value) }

// IfStmt is `if (cond) then else else?`.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
	Pos  Pos
}

func (s *IfStmt) stmtNode()      {}
func (s *IfStmt) Position() Pos  { return s.Pos }
func (s *IfStmt) String() string { return fmt.Sprintf("if (%s) %s", s.Cond, s.Then) }

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Cond Expr
	Body Stmt
	Pos  Pos
}

func (s *WhileStmt) stmtNode()      {}
func (s *WhileStmt) Position() Pos  { return s.Pos }
func (s *WhileStmt) String() string { return fmt.Sprintf("while (%s) %s", s.Cond, s.Body) }

// ForStmt is the classic three-clause `for`.
type ForStmt struct {
	Init Stmt // nil if absent
	Cond Expr // nil if absent
	Post Stmt // nil if absent
	Body Stmt
	Pos  Pos
}

func (s *ForStmt) stmtNode()      {}
func (s *ForStmt) Position() Pos  { return s.Pos }
func (s *ForStmt) String() string { return "for (...)" }

// ForOfStmt is `for (const x of arrayExpr) body`, restricted to arrays.
type ForOfStmt struct {
	VarName string
	VarType Type
	Iter    Expr
	Body    Stmt
	Pos     Pos
}

func (s *ForOfStmt) stmtNode()     {}
func (s *ForOfStmt) Position() Pos { return s.Pos }
func (s *ForOfStmt) String() string {
	return fmt.Sprintf("for (const %s of %s) %s", s.VarName, s.Iter, s.Body)
}

// SwitchCase is one `case <test>:` or `default:` arm of a SwitchStmt.
type SwitchCase struct {
	Test Expr // nil for `default`
	Body []Stmt
	Pos  Pos
}

// SwitchStmt is `switch (discriminant) { case ...: ... }`.
type SwitchStmt struct {
	Discriminant Expr
	Cases        []*SwitchCase
	Pos          Pos
}

func (s *SwitchStmt) stmtNode()      {}
func (s *SwitchStmt) Position() Pos  { return s.Pos }
func (s *SwitchStmt) String() string { return fmt.Sprintf("switch (%s) { ... }", s.Discriminant) }

// BreakStmt is `break;`.
type BreakStmt struct{ Pos Pos }

func (s *BreakStmt) stmtNode()      {}
func (s *BreakStmt) Position() Pos  { return s.Pos }
func (s *BreakStmt) String() string { return "break" }

// ContinueStmt is `continue;`.
type ContinueStmt struct{ Pos Pos }

func (s *ContinueStmt) stmtNode()      {}
func (s *ContinueStmt) Position() Pos  { return s.Pos }
func (s *ContinueStmt) String() string { return "continue" }

// WithStmt is the dynamic-scope `with (obj) body` construct, unconditionally
// rejected by the validator.
type WithStmt struct {
	Object Expr
	Body   Stmt
	Pos    Pos
}

func (s *WithStmt) stmtNode()      {}
func (s *WithStmt) Position() Pos  { return s.Pos }
func (s *WithStmt) String() string { return "with (...)" }

// ----------------------------------------------------------------------
// Expressions
// ----------------------------------------------------------------------

// Ident is a variable/function/type reference.
type Ident struct {
	Name string
	Pos  Pos
}

func (e *Ident) exprNode()      {}
func (e *Ident) patternNode()   {}
func (e *Ident) Position() Pos  { return e.Pos }
func (e *Ident) String() string { return e.Name }

// NumberLit is a numeric literal; its textual form is preserved so lowering
// can tell whole-valued floats from fractional ones.
type NumberLit struct {
	Value float64
	Raw   string
	Pos   Pos
}

func (e *NumberLit) exprNode()      {}
func (e *NumberLit) Position() Pos  { return e.Pos }
func (e *NumberLit) String() string { return e.Raw }

// StringLit is a plain (hole-free) string literal.
type StringLit struct {
	Value string
	Pos   Pos
}

func (e *StringLit) exprNode()      {}
func (e *StringLit) Position() Pos  { return e.Pos }
func (e *StringLit) String() string { return fmt.Sprintf("%q", e.Value) }

// BoolLit is `true`/`false`.
type BoolLit struct {
	Value bool
	Pos   Pos
}

func (e *BoolLit) exprNode()      {}
func (e *BoolLit) Position() Pos  { return e.Pos }
func (e *BoolLit) String() string { return fmt.Sprintf("%v", e.Value) }

// NullLit is `null`/`undefined`.
type NullLit struct{ Pos Pos }

func (e *NullLit) exprNode()      {}
func (e *NullLit) Position() Pos  { return e.Pos }
func (e *NullLit) String() string { return "null" }

// BigIntLit is an ambient big-integer literal (`123n`), rejected outright.
type BigIntLit struct {
	Raw string
	Pos Pos
}

func (e *BigIntLit) exprNode()      {}
func (e *BigIntLit) Position() Pos  { return e.Pos }
func (e *BigIntLit) String() string { return e.Raw }

// TemplateStringExpr is a template literal; Parts has len(Exprs)+1 entries.
type TemplateStringExpr struct {
	Parts []string
	Exprs []Expr
	Pos   Pos
}

func (e *TemplateStringExpr) exprNode()      {}
func (e *TemplateStringExpr) Position() Pos  { return e.Pos }
func (e *TemplateStringExpr) String() string { return "`...`" }

// BinaryExpr is `left op right`.
type BinaryExpr struct {
	Op          string
	Left, Right Expr
	Pos         Pos
}

func (e *BinaryExpr) exprNode()      {}
func (e *BinaryExpr) Position() Pos  { return e.Pos }
func (e *BinaryExpr) String() string { return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right) }

// UnaryExpr is `op operand`.
type UnaryExpr struct {
	Op      string
	Operand Expr
	Pos     Pos
}

func (e *UnaryExpr) exprNode()      {}
func (e *UnaryExpr) Position() Pos  { return e.Pos }
func (e *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", e.Op, e.Operand) }

// AssignExpr is `target op= value` (including plain `=`).
type AssignExpr struct {
	Target Expr
	Op     string // "=", "+=", ...
	Value  Expr
	Pos    Pos
}

func (e *AssignExpr) exprNode()      {}
func (e *AssignExpr) Position() Pos  { return e.Pos }
func (e *AssignExpr) String() string { return fmt.Sprintf("%s %s %s", e.Target, e.Op, e.Value) }

// ConditionalExpr is `cond ? then : else`.
type ConditionalExpr struct {
	Cond, Then, Else Expr
	Pos              Pos
}

func (e *ConditionalExpr) exprNode()     {}
func (e *ConditionalExpr) Position() Pos { return e.Pos }
func (e *ConditionalExpr) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", e.Cond, e.Then, e.Else)
}

// SpreadExpr is `...argument`, legal inside call arguments and array
// literals; callers lower it differently depending on context.
type SpreadExpr struct {
	Argument Expr
	Pos      Pos
}

func (e *SpreadExpr) exprNode()      {}
func (e *SpreadExpr) Position() Pos  { return e.Pos }
func (e *SpreadExpr) String() string { return "..." + e.Argument.String() }

// CallExpr is `callee<TypeArgs>(args)`.
type CallExpr struct {
	Callee   Expr
	TypeArgs []Type
	Args     []Expr
	Pos      Pos
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Position() Pos { return e.Pos }
func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(args, ", "))
}

// NewExpr is `new ClassName(args)`.
type NewExpr struct {
	ClassName string
	Args      []Expr
	Pos       Pos
}

func (e *NewExpr) exprNode()      {}
func (e *NewExpr) Position() Pos  { return e.Pos }
func (e *NewExpr) String() string { return fmt.Sprintf("new %s(...)", e.ClassName) }

// MemberExpr is `object.property`.
type MemberExpr struct {
	Object   Expr
	Property string
	Pos      Pos
}

func (e *MemberExpr) exprNode()      {}
func (e *MemberExpr) Position() Pos  { return e.Pos }
func (e *MemberExpr) String() string { return fmt.Sprintf("%s.%s", e.Object, e.Property) }

// IndexExpr is `object[index]`.
type IndexExpr struct {
	Object Expr
	Index  Expr
	Pos    Pos
}

func (e *IndexExpr) exprNode()      {}
func (e *IndexExpr) Position() Pos  { return e.Pos }
func (e *IndexExpr) String() string { return fmt.Sprintf("%s[%s]", e.Object, e.Index) }

// ArrayElement is one entry of an ArrayLit; Spread marks `...expr`.
type ArrayElement struct {
	Value  Expr
	Spread bool
}

// ArrayLit is `[e1, e2, ...]`.
type ArrayLit struct {
	Elements []ArrayElement
	Pos      Pos
}

func (e *ArrayLit) exprNode()      {}
func (e *ArrayLit) Position() Pos  { return e.Pos }
func (e *ArrayLit) String() string { return "[...]" }

// ObjectField is one entry of an ObjectLit; Spread marks `...expr`.
type ObjectField struct {
	Name   string // empty when Spread is true
	Value  Expr
	Spread bool
	Pos    Pos
}

// ObjectLit is `{ field: value, ... }`.
type ObjectLit struct {
	Fields []*ObjectField
	Pos    Pos
}

func (e *ObjectLit) exprNode()      {}
func (e *ObjectLit) Position() Pos  { return e.Pos }
func (e *ObjectLit) String() string { return "{...}" }

// ArrowFunctionExpr is `(params): RetType => body`. Body is either an Expr
// (concise form) or a *BlockStmt (block form) — exactly one is non-nil.
type ArrowFunctionExpr struct {
	Params     []*Param
	ReturnType Type
	ExprBody   Expr
	BlockBody  *BlockStmt
	Pos        Pos
}

func (e *ArrowFunctionExpr) exprNode()      {}
func (e *ArrowFunctionExpr) Position() Pos  { return e.Pos }
func (e *ArrowFunctionExpr) String() string { return "(...) => ..." }

// TypeofExpr is `typeof operand`. Permitted by the validator; narrowing
// support stays limited.
type TypeofExpr struct {
	Operand Expr
	Pos     Pos
}

func (e *TypeofExpr) exprNode()      {}
func (e *TypeofExpr) Position() Pos  { return e.Pos }
func (e *TypeofExpr) String() string { return fmt.Sprintf("typeof %s", e.Operand) }

// InstanceofExpr is `left instanceof Right`.
type InstanceofExpr struct {
	Left  Expr
	Right Expr // an Ident naming the class
	Pos   Pos
}

func (e *InstanceofExpr) exprNode()     {}
func (e *InstanceofExpr) Position() Pos { return e.Pos }
func (e *InstanceofExpr) String() string {
	return fmt.Sprintf("%s instanceof %s", e.Left, e.Right)
}

// AsExpr is a type assertion `expr as Type`.
type AsExpr struct {
	Expr Expr
	Type Type
	Pos  Pos
}

func (e *AsExpr) exprNode()      {}
func (e *AsExpr) Position() Pos  { return e.Pos }
func (e *AsExpr) String() string { return fmt.Sprintf("(%s as %s)", e.Expr, e.Type) }

// AwaitExpr and YieldExpr are coroutine constructs, unconditionally
// rejected in v1 scope.
type AwaitExpr struct {
	Operand Expr
	Pos     Pos
}

func (e *AwaitExpr) exprNode()      {}
func (e *AwaitExpr) Position() Pos  { return e.Pos }
func (e *AwaitExpr) String() string { return fmt.Sprintf("await %s", e.Operand) }

// YieldExpr is `yield <expr>?`.
type YieldExpr struct {
	Operand Expr // nil for bare `yield`
	Pos     Pos
}

func (e *YieldExpr) exprNode()      {}
func (e *YieldExpr) Position() Pos  { return e.Pos }
func (e *YieldExpr) String() string { return "yield" }

// ----------------------------------------------------------------------
// Destructuring patterns
// ----------------------------------------------------------------------

// ObjectPatternProp is one binding of an ObjectPattern.
type ObjectPatternProp struct {
	Key   string
	Value Pattern
	Pos   Pos
}

// ObjectPattern is `{ a, b: renamed }` used as a declaration target.
type ObjectPattern struct {
	Props []*ObjectPatternProp
	Pos   Pos
}

func (p *ObjectPattern) patternNode()   {}
func (p *ObjectPattern) Position() Pos  { return p.Pos }
func (p *ObjectPattern) String() string { return "{...}" }

// ArrayPattern is `[a, b]` used as a declaration target.
type ArrayPattern struct {
	Elements []Pattern
	Pos      Pos
}

func (p *ArrayPattern) patternNode()   {}
func (p *ArrayPattern) Position() Pos  { return p.Pos }
func (p *ArrayPattern) String() string { return "[...]" }
