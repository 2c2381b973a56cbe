// Package ir defines the typed intermediate representation handed to the
// (external) LLVM-style backend: statement and expression forms, plus the
// declaration containers the lowering engine assembles a compiled program
// from. Every node here is fully monomorphic — no type parameter survives
// past internal/mono.
package ir

import (
	"fmt"
	"strings"

	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/ownership"
	"github.com/bherbruck/llts/internal/types"
)

// Base is embedded into every expression node, carrying its static type and
// originating span for backend diagnostics.
type Base struct {
	Span ast.Span
	Type types.Type
}

func (b Base) GetType() types.Type { return b.Type }
func (b Base) GetSpan() ast.Span   { return b.Span }

// Expr is any typed IR expression.
type Expr interface {
	GetType() types.Type
	GetSpan() ast.Span
	String() string
	exprNode()
}

// Stmt is any typed IR statement.
type Stmt interface {
	String() string
	stmtNode()
}

// ---------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------

// FieldDef is one field of a StructDef, field-ordered and contiguous per
// the backend layout contract.
type FieldDef struct {
	Name string
	Type types.Type
}

// StructDef is a lowered record type.
type StructDef struct {
	Name   string
	Fields []FieldDef
}

// EnumVariantDef is one lowered enum member.
type EnumVariantDef struct {
	Name string
	Tag  int
}

// EnumDef is a lowered enum type.
type EnumDef struct {
	Name     string
	Variants []EnumVariantDef
}

// UnionDef is a lowered tagged union, whose variant payloads are always
// struct types (anonymous payload structs for discriminated unions, or the
// original variant types otherwise).
type UnionDef struct {
	Name     string
	Variants []types.Type
}

// ParamDef is one parameter of a FuncDef, annotated with the passing
// convention the ownership analyzer assigned it.
type ParamDef struct {
	Name      string
	Type      types.Type
	Ownership ownership.ParamOwnership
}

// FuncDef is a lowered, fully-monomorphic function.
type FuncDef struct {
	Name       string
	Params     []ParamDef
	Return     types.Type
	Body       []Stmt
	IsEntry    bool // true only for the entry file's `main`
	IsIntrinsic bool // true for runtime stubs (print, Math_*) with no Body
}

// Program is the final merged output of the lowering engine: one set of
// declarations per compilation unit, file order honored (structs/enums/
// unions/functions accumulate in the resolver's topological order).
type Program struct {
	Structs   []*StructDef
	Enums     []*EnumDef
	Unions    []*UnionDef
	Functions []*FuncDef
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

type IntLit struct {
	Base
	Value int64
}

func (IntLit) exprNode()        {}
func (e IntLit) String() string { return fmt.Sprintf("%d", e.Value) }

type FloatLit struct {
	Base
	Value float64
}

func (FloatLit) exprNode()        {}
func (e FloatLit) String() string { return fmt.Sprintf("%g", e.Value) }

type BoolLit struct {
	Base
	Value bool
}

func (BoolLit) exprNode()        {}
func (e BoolLit) String() string { return fmt.Sprintf("%v", e.Value) }

type StringLit struct {
	Base
	Value string
}

func (StringLit) exprNode()        {}
func (e StringLit) String() string { return fmt.Sprintf("%q", e.Value) }

// VarRef reads a local variable or parameter by name.
type VarRef struct {
	Base
	Name string
}

func (VarRef) exprNode()        {}
func (e VarRef) String() string { return e.Name }

// BinOp is a binary operator application.
type BinOp struct {
	Base
	Op          string
	Left, Right Expr
}

func (BinOp) exprNode() {}
func (e BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

// UnOp is a unary operator application.
type UnOp struct {
	Base
	Op      string
	Operand Expr
}

func (UnOp) exprNode()        {}
func (e UnOp) String() string { return fmt.Sprintf("%s%s", e.Op, e.Operand) }

// Call is a direct call to a mangled/ordinary function name (method calls
// have already had the receiver prepended to Args).
type Call struct {
	Base
	Callee string
	Args   []Expr
}

func (Call) exprNode() {}
func (e Call) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Callee, strings.Join(parts, ", "))
}

// IntrinsicCall invokes a runtime-provided stub (print, Math_*) rather than
// a lowered user function.
type IntrinsicCall struct {
	Base
	Name string
	Args []Expr
}

func (IntrinsicCall) exprNode() {}
func (e IntrinsicCall) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("@%s(%s)", e.Name, strings.Join(parts, ", "))
}

// FieldAccess reads a struct field by its resolved declaration-order index.
type FieldAccess struct {
	Base
	Object     Expr
	FieldName  string
	FieldIndex int
}

func (FieldAccess) exprNode() {}
func (e FieldAccess) String() string {
	return fmt.Sprintf("%s.%s", e.Object, e.FieldName)
}

// TagAccess reads a tagged union's or discriminated union's tag field
// (field 0 of its runtime layout).
type TagAccess struct {
	Base
	Object Expr
}

func (TagAccess) exprNode()        {}
func (e TagAccess) String() string { return fmt.Sprintf("%s.#tag", e.Object) }

// IndexAccess reads an array element.
type IndexAccess struct {
	Base
	Object Expr
	Index  Expr
}

func (IndexAccess) exprNode() {}
func (e IndexAccess) String() string {
	return fmt.Sprintf("%s[%s]", e.Object, e.Index)
}

// NewStruct constructs a struct value field-ordered to match its StructDef.
type NewStruct struct {
	Base
	StructName string
	Fields     []Expr
}

func (NewStruct) exprNode() {}
func (e NewStruct) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s{%s}", e.StructName, strings.Join(parts, ", "))
}

// NewArray constructs an array literal.
type NewArray struct {
	Base
	Elements []Expr
}

func (NewArray) exprNode() {}
func (e NewArray) String() string {
	parts := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// NewUnion constructs a tagged-union value at the given tag with a payload
// expression (already the union's payload struct for discriminated unions).
type NewUnion struct {
	Base
	Tag     int
	Payload Expr
}

func (NewUnion) exprNode() {}
func (e NewUnion) String() string {
	return fmt.Sprintf("union#%d(%s)", e.Tag, e.Payload)
}

// OptionSome wraps value as `{tag: 1, value}`.
type OptionSome struct {
	Base
	Value Expr
}

func (OptionSome) exprNode()        {}
func (e OptionSome) String() string { return fmt.Sprintf("Some(%s)", e.Value) }

// OptionNone is `{tag: 0}`, typed by Base.Type's Option(inner).
type OptionNone struct{ Base }

func (OptionNone) exprNode()        {}
func (e OptionNone) String() string { return "None" }

// OptionIsSome tests an Option's tag bit.
type OptionIsSome struct {
	Base
	Value Expr
}

func (OptionIsSome) exprNode()        {}
func (e OptionIsSome) String() string { return fmt.Sprintf("isSome(%s)", e.Value) }

// Unwrap reads the value slot of an Option known (by prior narrowing) to be
// Some.
type Unwrap struct {
	Base
	Value Expr
}

func (Unwrap) exprNode()        {}
func (e Unwrap) String() string { return fmt.Sprintf("unwrap(%s)", e.Value) }

// StringConcat formats Parts (backend-provided numeric/boolean-to-string
// conversion for non-string parts) and concatenates them.
type StringConcat struct {
	Base
	Parts []Expr
}

func (StringConcat) exprNode() {}
func (e StringConcat) String() string {
	parts := make([]string, len(e.Parts))
	for i, p := range e.Parts {
		parts[i] = p.String()
	}
	return "concat(" + strings.Join(parts, ", ") + ")"
}

// Cast is an explicit conversion of Value to Target: an `as` expression, a
// non-whole float literal bound to a declared integer type, or the rebinding
// of a discriminated-union value to a variant's payload struct.
type Cast struct {
	Base
	Value  Expr
	Target types.Type
}

func (Cast) exprNode()        {}
func (e Cast) String() string { return fmt.Sprintf("(%s as %s)", e.Value, e.Target) }

// CondExpr is the value-producing ternary `cond ? then : else`, distinct
// from IfStmt, which is control flow only.
type CondExpr struct {
	Base
	Cond, Then, Else Expr
}

func (CondExpr) exprNode() {}
func (e CondExpr) String() string {
	return fmt.Sprintf("(%s ? %s : %s)", e.Cond, e.Then, e.Else)
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

type ExprStmt struct{ Expr Expr }

func (ExprStmt) stmtNode()        {}
func (s ExprStmt) String() string { return s.Expr.String() }

type VarDeclStmt struct {
	Name string
	Type types.Type
	Init Expr
}

func (VarDeclStmt) stmtNode() {}
func (s VarDeclStmt) String() string {
	return fmt.Sprintf("let %s: %s = %s", s.Name, s.Type, s.Init)
}

type ReturnStmt struct{ Value Expr }

func (ReturnStmt) stmtNode() {}
func (s ReturnStmt) String() string {
	if s.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", s.Value)
}

type IfStmt struct {
	Cond       Expr
	Then, Else []Stmt
}

func (IfStmt) stmtNode()        {}
func (s IfStmt) String() string { return fmt.Sprintf("if (%s) { ... }", s.Cond) }

// WhileStmt carries explicit break/continue targets so the backend never
// needs to re-derive loop structure.
type WhileStmt struct {
	Cond                   Expr
	Body                   []Stmt
	BreakLabel, ContLabel  string
}

func (WhileStmt) stmtNode()        {}
func (s WhileStmt) String() string { return fmt.Sprintf("while (%s) { ... }", s.Cond) }

// ForStmt is the lowered form of both a classic three-clause `for` and an
// expanded `for-of`-over-array loop.
type ForStmt struct {
	Init                  Stmt
	Cond                  Expr
	Post                  Stmt
	Body                  []Stmt
	BreakLabel, ContLabel string
}

func (ForStmt) stmtNode()        {}
func (s ForStmt) String() string { return "for (...) { ... }" }

type BlockStmt struct{ Stmts []Stmt }

func (BlockStmt) stmtNode() {}
func (s BlockStmt) String() string {
	parts := make([]string, len(s.Stmts))
	for i, st := range s.Stmts {
		parts[i] = st.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// FieldAssignStmt writes a struct field, distinct from a plain variable
// assignment.
type FieldAssignStmt struct {
	Object    Expr
	FieldName string
	Value     Expr
}

func (FieldAssignStmt) stmtNode() {}
func (s FieldAssignStmt) String() string {
	return fmt.Sprintf("%s.%s = %s", s.Object, s.FieldName, s.Value)
}

// IndexAssignStmt writes an array element.
type IndexAssignStmt struct {
	Object Expr
	Index  Expr
	Value  Expr
}

func (IndexAssignStmt) stmtNode() {}
func (s IndexAssignStmt) String() string {
	return fmt.Sprintf("%s[%s] = %s", s.Object, s.Index, s.Value)
}

// AssignStmt writes a plain local variable.
type AssignStmt struct {
	Name  string
	Value Expr
}

func (AssignStmt) stmtNode()        {}
func (s AssignStmt) String() string { return fmt.Sprintf("%s = %s", s.Name, s.Value) }

type BreakStmt struct{ Label string }

func (BreakStmt) stmtNode()        {}
func (s BreakStmt) String() string { return "break" }

type ContinueStmt struct{ Label string }

func (ContinueStmt) stmtNode()        {}
func (s ContinueStmt) String() string { return "continue" }

// ---------------------------------------------------------------------
// Textual rendering of whole declarations and programs
// ---------------------------------------------------------------------

func (d *StructDef) String() string {
	fields := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = fmt.Sprintf("%s: %s", f.Name, f.Type)
	}
	return fmt.Sprintf("struct %s { %s }", d.Name, strings.Join(fields, ", "))
}

func (d *EnumDef) String() string {
	variants := make([]string, len(d.Variants))
	for i, v := range d.Variants {
		variants[i] = fmt.Sprintf("%s = %d", v.Name, v.Tag)
	}
	return fmt.Sprintf("enum %s { %s }", d.Name, strings.Join(variants, ", "))
}

func (d *UnionDef) String() string {
	variants := make([]string, len(d.Variants))
	for i, v := range d.Variants {
		variants[i] = v.String()
	}
	return fmt.Sprintf("union %s = %s", d.Name, strings.Join(variants, " | "))
}

func (d *FuncDef) String() string {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = fmt.Sprintf("%s: %s [%s]", p.Name, p.Type, p.Ownership)
	}
	sig := fmt.Sprintf("fn %s(%s): %s", d.Name, strings.Join(params, ", "), d.Return)
	if d.IsIntrinsic {
		return sig + " { <intrinsic> }"
	}
	body := make([]string, len(d.Body))
	for i, s := range d.Body {
		body[i] = s.String()
	}
	return sig + " {\n  " + strings.Join(body, "\n  ") + "\n}"
}

// String renders the whole program as text, declarations in the order the
// lowering engine assembled them: structs, enums, unions, then functions.
func (p *Program) String() string {
	var b strings.Builder
	for _, d := range p.Structs {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	for _, d := range p.Enums {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	for _, d := range p.Unions {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	for _, d := range p.Functions {
		b.WriteString(d.String())
		b.WriteString("\n\n")
	}
	return b.String()
}
