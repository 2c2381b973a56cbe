// Package ownership implements the Ownership & Borrow Analyzer: a
// per-function pass that classifies how each parameter is passed (borrowed,
// mutably borrowed, or owned) and tracks the borrow state of every local
// binding, rejecting the five borrow-discipline violations.
package ownership

import (
	"github.com/bherbruck/llts/internal/ast"
	"github.com/bherbruck/llts/internal/errors"
	"github.com/bherbruck/llts/internal/types"
)

// Usage is how a parameter is used within a function body, in increasing
// order of obligation: Read < Mutate < Escape.
type Usage int

const (
	UsageRead Usage = iota
	UsageMutate
	UsageEscape
)

func joinUsage(a, b Usage) Usage {
	if a > b {
		return a
	}
	return b
}

// ParamOwnership is how a parameter is physically passed to a lowered
// function.
type ParamOwnership int

const (
	// Borrow: the callee receives an immutable reference.
	Borrow ParamOwnership = iota
	// MutableBorrow: the callee receives an exclusive mutable reference.
	MutableBorrow
	// Owned: the callee takes the value (reference-count transfer, or a
	// plain copy for stack types).
	Owned
)

func (o ParamOwnership) String() string {
	switch o {
	case Borrow:
		return "borrow"
	case MutableBorrow:
		return "mutable-borrow"
	default:
		return "owned"
	}
}

// ParamBinding records the classification decided for one parameter.
type ParamBinding struct {
	Name      string
	Type      types.Type
	Ownership ParamOwnership
}

// LocalBinding records the final borrow state observed for one local
// variable at the end of the analyzed function.
type LocalBinding struct {
	Name  string
	Type  types.Type
	Moved bool
}

// FunctionOwnership is the result of analyzing a single function body.
type FunctionOwnership struct {
	Name   string
	Params []ParamBinding
	Locals []LocalBinding
}

// borrowState is the borrow-tracking state of one variable.
type borrowState int

const (
	stateUnborrowed borrowState = iota
	stateImmutableBorrow
	stateMutableBorrow
	stateMoved
)

type binding struct {
	ty          types.Type
	state       borrowState
	borrowCount int
	readonly    bool
	copyType    bool
}

// Analyzer tracks borrow state across one function body. A fresh Analyzer
// must be used per function; bindings do not escape across function
// boundaries.
type Analyzer struct {
	vars    map[string]*binding
	Reports []*errors.Report
}

// New returns an empty Analyzer.
func New() *Analyzer {
	return &Analyzer{vars: make(map[string]*binding)}
}

func (a *Analyzer) report(code string, pos ast.Pos, msg string) {
	span := ast.Span{Start: pos, End: pos}
	a.Reports = append(a.Reports, errors.New(code, &span, msg))
}

// isCopyType reports whether values of t are implicitly duplicated on
// assignment rather than moved or reference-counted: primitives other than
// string, and small records (at most 4 fields, every field itself a
// non-string primitive) or same-shaped tuples. Strings, arrays, non-small
// records, tagged unions, enums, and function values are all Rc.
func isCopyType(t types.Type) bool {
	switch n := t.(type) {
	case types.Primitive:
		return n.Kind != types.KString
	case *types.Struct:
		if len(n.Fields) > 4 {
			return false
		}
		for _, f := range n.Fields {
			p, ok := f.Type.(types.Primitive)
			if !ok || p.Kind == types.KString {
				return false
			}
		}
		return true
	case *types.Tuple:
		if len(n.Elems) > 4 {
			return false
		}
		for _, e := range n.Elems {
			p, ok := e.(types.Primitive)
			if !ok || p.Kind == types.KString {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func isReadonlyType(t types.Type) bool {
	_, ok := t.(*types.Readonly)
	return ok
}

// declare registers a new binding, overwriting any stale state left by a
// shadowing declaration.
func (a *Analyzer) declare(name string, ty types.Type) {
	a.vars[name] = &binding{
		ty:       ty,
		state:    stateUnborrowed,
		readonly: isReadonlyType(ty),
		copyType: isCopyType(ty),
	}
}

// BorrowImmutable records an immutable borrow of name at pos, reporting
// OWN002 if name is currently mutably borrowed or OWN005 if it was moved.
func (a *Analyzer) BorrowImmutable(name string, pos ast.Pos) {
	b, ok := a.vars[name]
	if !ok {
		return
	}
	switch b.state {
	case stateMoved:
		a.report(errors.OWN005, pos, "use of moved variable `"+name+"`")
	case stateMutableBorrow:
		a.report(errors.OWN002, pos, "cannot borrow `"+name+"` while it is mutably borrowed")
	case stateImmutableBorrow:
		b.borrowCount++
	case stateUnborrowed:
		b.state = stateImmutableBorrow
		b.borrowCount = 1
	}
}

// BorrowMutable records a mutable borrow of name at pos, reporting OWN004 if
// name is readonly, OWN001 if it is immutably borrowed, OWN003 if it is
// already mutably borrowed, or OWN005 if it was moved.
func (a *Analyzer) BorrowMutable(name string, pos ast.Pos) {
	b, ok := a.vars[name]
	if !ok {
		return
	}
	if b.readonly {
		a.report(errors.OWN004, pos, "cannot mutate `"+name+"` through a Readonly reference")
		return
	}
	switch b.state {
	case stateMoved:
		a.report(errors.OWN005, pos, "use of moved variable `"+name+"`")
	case stateMutableBorrow:
		a.report(errors.OWN003, pos, "cannot mutably borrow `"+name+"` more than once at a time")
	case stateImmutableBorrow:
		a.report(errors.OWN001, pos, "cannot mutably borrow `"+name+"` while it is immutably borrowed")
	case stateUnborrowed:
		b.state = stateMutableBorrow
	}
}

// ReleaseBorrow ends one outstanding borrow of name, restoring Unborrowed
// once the last immutable borrow count drops to zero.
func (a *Analyzer) ReleaseBorrow(name string) {
	b, ok := a.vars[name]
	if !ok {
		return
	}
	switch b.state {
	case stateImmutableBorrow:
		b.borrowCount--
		if b.borrowCount <= 0 {
			b.state = stateUnborrowed
		}
	case stateMutableBorrow:
		b.state = stateUnborrowed
	}
}

// MarkMoved records that name has been moved out at pos. Copy types are
// never moved; using one after "moving" it is never an error.
func (a *Analyzer) MarkMoved(name string, pos ast.Pos) {
	b, ok := a.vars[name]
	if !ok || b.copyType {
		return
	}
	if b.state == stateMoved {
		a.report(errors.OWN005, pos, "use of moved variable `"+name+"`")
		return
	}
	b.state = stateMoved
}

// CheckUse reports OWN005 if name has already been moved.
func (a *Analyzer) CheckUse(name string, pos ast.Pos) {
	if b, ok := a.vars[name]; ok && b.state == stateMoved {
		a.report(errors.OWN005, pos, "use of moved variable `"+name+"`")
	}
}

// mutatingMethods mirrors the set of array/collection methods that mutate
// their receiver in place.
var mutatingMethods = map[string]bool{
	"push": true, "pop": true, "shift": true, "unshift": true,
	"splice": true, "sort": true, "reverse": true, "fill": true,
	"copyWithin": true, "set": true, "delete": true, "clear": true,
}

// AnalyzeFunction runs both the per-parameter usage scan and the borrow
// check over one function, returning the ownership classification for its
// parameters and the final state of its locals.
func AnalyzeFunction(name string, params []*ast.Param, body *ast.BlockStmt, resolveType func(ast.Type) types.Type) (FunctionOwnership, []*errors.Report) {
	a := New()
	result := FunctionOwnership{Name: name}

	for _, p := range params {
		ty := resolveType(p.Type)
		usage := scanParamUsage(p.Name, body)
		own := classifyParam(ty, usage)
		a.declare(p.Name, ty)
		result.Params = append(result.Params, ParamBinding{Name: p.Name, Type: ty, Ownership: own})
	}

	if body != nil {
		for _, s := range body.Stmts {
			a.checkStmt(s, resolveType)
		}
	}

	for n, b := range a.vars {
		result.Locals = append(result.Locals, LocalBinding{Name: n, Type: b.ty, Moved: b.state == stateMoved})
	}
	return result, a.Reports
}

// classifyParam turns a usage observation into a physical passing
// convention: Read borrows, Mutate mutably borrows, Escape takes ownership.
func classifyParam(ty types.Type, usage Usage) ParamOwnership {
	switch usage {
	case UsageMutate:
		return MutableBorrow
	case UsageEscape:
		return Owned
	default:
		return Borrow
	}
}

// scanParamUsage determines the strongest usage of name anywhere in body,
// without mutating any borrow state; it only decides the physical passing
// convention.
func scanParamUsage(name string, body *ast.BlockStmt) Usage {
	if body == nil {
		return UsageRead
	}
	usage := UsageRead
	for _, s := range body.Stmts {
		usage = joinUsage(usage, scanStmtUsage(name, s))
	}
	return usage
}

func scanStmtUsage(name string, s ast.Stmt) Usage {
	switch n := s.(type) {
	case *ast.ExprStmt:
		return scanExprUsage(name, n.Expr)
	case *ast.ReturnStmt:
		if n.Value == nil {
			return UsageRead
		}
		if exprReferences(n.Value, name) {
			return UsageEscape
		}
		return scanExprUsage(name, n.Value)
	case *ast.BlockStmt:
		usage := UsageRead
		for _, st := range n.Stmts {
			usage = joinUsage(usage, scanStmtUsage(name, st))
		}
		return usage
	case *ast.IfStmt:
		usage := scanStmtUsage(name, n.Then)
		if n.Else != nil {
			usage = joinUsage(usage, scanStmtUsage(name, n.Else))
		}
		return usage
	case *ast.WhileStmt:
		return scanStmtUsage(name, n.Body)
	case *ast.ForStmt:
		return scanStmtUsage(name, n.Body)
	case *ast.ForOfStmt:
		return scanStmtUsage(name, n.Body)
	}
	return UsageRead
}

func scanExprUsage(name string, e ast.Expr) Usage {
	switch n := e.(type) {
	case *ast.CallExpr:
		if member, ok := n.Callee.(*ast.MemberExpr); ok && exprReferences(member.Object, name) {
			if mutatingMethods[member.Property] {
				return UsageMutate
			}
		}
		for _, arg := range n.Args {
			if exprReferences(arg, name) {
				return UsageEscape
			}
		}
		return UsageRead
	case *ast.AssignExpr:
		if assignTargetReferences(n.Target, name) {
			return UsageMutate
		}
		if exprReferences(n.Value, name) {
			return UsageEscape
		}
		return UsageRead
	}
	return UsageRead
}

func exprReferences(e ast.Expr, name string) bool {
	switch n := e.(type) {
	case *ast.Ident:
		return n.Name == name
	case *ast.MemberExpr:
		return exprReferences(n.Object, name)
	case *ast.IndexExpr:
		return exprReferences(n.Object, name)
	case *ast.SpreadExpr:
		return exprReferences(n.Argument, name)
	}
	return false
}

func assignTargetReferences(target ast.Expr, name string) bool {
	switch n := target.(type) {
	case *ast.MemberExpr:
		return exprReferences(n.Object, name)
	case *ast.IndexExpr:
		return exprReferences(n.Object, name)
	}
	return false
}

// checkStmt walks a statement, recording declarations and threading borrow
// state through reads, mutations, and moves.
func (a *Analyzer) checkStmt(s ast.Stmt, resolveType func(ast.Type) types.Type) {
	switch n := s.(type) {
	case *ast.VarDecl:
		var ty types.Type = types.Unknown{}
		if n.Type != nil {
			ty = resolveType(n.Type)
		}
		a.declare(n.Name, ty)
		if n.Init != nil {
			a.checkExpr(n.Init)
		}
	case *ast.ExprStmt:
		a.checkExpr(n.Expr)
	case *ast.ReturnStmt:
		if n.Value == nil {
			return
		}
		if id, ok := n.Value.(*ast.Ident); ok {
			a.MarkMoved(id.Name, id.Pos)
			return
		}
		a.checkExpr(n.Value)
	case *ast.BlockStmt:
		for _, st := range n.Stmts {
			a.checkStmt(st, resolveType)
		}
	case *ast.IfStmt:
		a.checkExpr(n.Cond)
		a.checkStmt(n.Then, resolveType)
		if n.Else != nil {
			a.checkStmt(n.Else, resolveType)
		}
	case *ast.WhileStmt:
		a.checkExpr(n.Cond)
		a.checkStmt(n.Body, resolveType)
	case *ast.ForStmt:
		if n.Init != nil {
			a.checkStmt(n.Init, resolveType)
		}
		if n.Cond != nil {
			a.checkExpr(n.Cond)
		}
		a.checkStmt(n.Body, resolveType)
	case *ast.ForOfStmt:
		a.checkExpr(n.Iter)
		a.checkStmt(n.Body, resolveType)
	}
}

func (a *Analyzer) checkExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		a.CheckUse(n.Name, n.Pos)
	case *ast.AssignExpr:
		if id, ok := n.Target.(*ast.Ident); ok {
			a.BorrowMutable(id.Name, n.Pos)
			a.ReleaseBorrow(id.Name)
		} else if member, ok := n.Target.(*ast.MemberExpr); ok {
			if id, ok := member.Object.(*ast.Ident); ok {
				a.BorrowMutable(id.Name, n.Pos)
				a.ReleaseBorrow(id.Name)
			}
		}
		a.checkExpr(n.Value)
	case *ast.CallExpr:
		if member, ok := n.Callee.(*ast.MemberExpr); ok {
			if id, ok := member.Object.(*ast.Ident); ok {
				if mutatingMethods[member.Property] {
					a.BorrowMutable(id.Name, n.Pos)
				} else {
					a.BorrowImmutable(id.Name, n.Pos)
				}
				a.ReleaseBorrow(id.Name)
			}
		}
		a.checkExpr(n.Callee)
		for _, arg := range n.Args {
			a.checkExpr(arg)
		}
	case *ast.MemberExpr:
		a.checkExpr(n.Object)
	case *ast.IndexExpr:
		a.checkExpr(n.Object)
		a.checkExpr(n.Index)
	case *ast.BinaryExpr:
		a.checkExpr(n.Left)
		a.checkExpr(n.Right)
	case *ast.UnaryExpr:
		a.checkExpr(n.Operand)
	case *ast.ConditionalExpr:
		a.checkExpr(n.Cond)
		a.checkExpr(n.Then)
		a.checkExpr(n.Else)
	case *ast.SpreadExpr:
		a.checkExpr(n.Argument)
	}
}
