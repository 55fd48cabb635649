// Package semantic implements the type checker (§4.3): a single
// recursive walk over the AST that infers and validates types using a
// stack of lexical scopes, a table of declared function signatures, and
// the built-in catalogue for host-target intrinsics. It borrows the AST
// read-only and annotates nothing; a program either checks clean or the
// walk accumulates one or more TypeErrors.
package semantic

import (
	"fmt"

	"github.com/Lenni808090/lenniscript/internal/ast"
	"github.com/Lenni808090/lenniscript/internal/builtins"
	cerr "github.com/Lenni808090/lenniscript/internal/errors"
	"github.com/Lenni808090/lenniscript/internal/types"
)

// ScopeStack is a vector of maps, pushed on entering a function/if/
// while/for body and popped on exit; the bottom map is the global scope
// and outlives the whole check (§4.3's scope policy).
type ScopeStack struct {
	scopes []map[string]*types.Type
}

func newScopeStack() *ScopeStack {
	return &ScopeStack{scopes: []map[string]*types.Type{{}}}
}

func (s *ScopeStack) Push() { s.scopes = append(s.scopes, map[string]*types.Type{}) }

func (s *ScopeStack) Pop() { s.scopes = s.scopes[:len(s.scopes)-1] }

func (s *ScopeStack) Define(name string, t *types.Type) {
	s.scopes[len(s.scopes)-1][name] = t
}

// Resolve looks up name from the innermost scope outward.
func (s *ScopeStack) Resolve(name string) (*types.Type, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if t, ok := s.scopes[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

// FuncSig is a declared function's parameter and return types.
type FuncSig struct {
	Params  []*types.Type
	Return  *types.Type
	IsAsync bool
}

// Analyzer walks a Program and accumulates TypeErrors.
type Analyzer struct {
	scopes    *ScopeStack
	functions map[string]*FuncSig

	currentReturn *types.Type // nil when not inside a function
	inAsync       bool
	inLoop        bool

	source string
	file   string
	errs   []*cerr.CompilerError
}

// New creates an Analyzer with the global scope pre-populated from the
// built-in catalogue (§4.3: "pre-populated with entries for host-target
// intrinsic collections"). source and file are carried through only for
// diagnostic formatting.
func New(source, file string) *Analyzer {
	a := &Analyzer{
		scopes:    newScopeStack(),
		functions: map[string]*FuncSig{},
		source:    source,
		file:      file,
	}
	for _, owner := range builtins.GlobalObjects {
		a.scopes.Define(owner, builtins.AsRecordType(owner))
	}
	return a
}

// Check type-checks prog and returns the accumulated errors, if any.
func (a *Analyzer) Check(prog *ast.Program) []*cerr.CompilerError {
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ast.FunctionDeclaration); ok {
			a.registerFunctionSignature(fn)
		}
	}
	for _, stmt := range prog.Body {
		a.checkStatement(stmt)
	}
	return a.errs
}

func (a *Analyzer) fail(line int, format string, args ...any) {
	a.errs = append(a.errs, cerr.New(cerr.Type, line, fmt.Sprintf(format, args...), a.source, a.file))
}

// ---------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------

func (a *Analyzer) resolveTypeAnnotation(ann *ast.TypeAnnotation) *types.Type {
	if ann == nil {
		return types.Any
	}
	var base *types.Type
	switch ann.Name {
	case "num":
		base = types.Number
	case "string":
		base = types.String
	case "bool":
		base = types.Boolean
	case "array":
		base = types.NewArray(a.resolveTypeAnnotation(ann.Elem))
	default:
		base = types.Any
	}
	if ann.Optional {
		return types.NewOption(base)
	}
	return base
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (a *Analyzer) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		a.checkVarDeclaration(s)
	case *ast.FunctionDeclaration:
		a.checkFunctionDeclaration(s)
	case *ast.If:
		a.checkIf(s)
	case *ast.While:
		a.checkWhile(s)
	case *ast.ForC:
		a.checkForC(s)
	case *ast.ForIn:
		a.checkForIn(s)
	case *ast.ForRange:
		a.checkForRange(s)
	case *ast.Switch:
		a.checkSwitch(s)
	case *ast.TryCatchFinally:
		a.checkTry(s)
	case *ast.Return:
		a.checkReturn(s)
	case *ast.Break:
		if !a.inLoop {
			a.fail(s.Line(), "break outside loop")
		}
	case *ast.Continue:
		if !a.inLoop {
			a.fail(s.Line(), "continue outside loop")
		}
	case *ast.ExpressionStmt:
		a.inferExpression(s.Expr)
	default:
		a.fail(stmt.Line(), "internal: unhandled statement kind %T", stmt)
	}
}

func (a *Analyzer) checkBlock(body []ast.Statement) {
	a.scopes.Push()
	for _, stmt := range body {
		a.checkStatement(stmt)
	}
	a.scopes.Pop()
}

func (a *Analyzer) checkVarDeclaration(v *ast.VarDeclaration) {
	var declared *types.Type
	if v.DeclaredType != nil {
		declared = a.resolveTypeAnnotation(v.DeclaredType)
	}

	var inferred *types.Type
	if v.Initializer != nil {
		inferred = a.inferExpression(v.Initializer)
		target := declared
		if target == nil {
			target = inferred
		}
		if !types.Matches(target, inferred) {
			a.fail(v.Line(), "cannot assign %s to %q of declared type %s", inferred, v.Name, target)
		}
	}

	bound := declared
	if bound == nil {
		bound = inferred
	}
	if bound == nil {
		bound = types.Any
	}
	a.scopes.Define(v.Name, bound)
}

func (a *Analyzer) registerFunctionSignature(f *ast.FunctionDeclaration) *FuncSig {
	params := make([]*types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = a.resolveTypeAnnotation(p.Type)
	}
	ret := types.Void
	if f.ReturnType != nil {
		ret = a.resolveTypeAnnotation(f.ReturnType)
	}
	sig := &FuncSig{Params: params, Return: ret, IsAsync: f.IsAsync}
	a.functions[f.Name] = sig
	return sig
}

func (a *Analyzer) checkFunctionDeclaration(f *ast.FunctionDeclaration) {
	sig, ok := a.functions[f.Name]
	if !ok {
		sig = a.registerFunctionSignature(f)
	}

	prevReturn, prevAsync, prevLoop := a.currentReturn, a.inAsync, a.inLoop
	a.currentReturn = sig.Return
	a.inAsync = f.IsAsync
	a.inLoop = false // break/continue never leak across a function boundary

	a.scopes.Push()
	for i, p := range f.Params {
		a.scopes.Define(p.Name, sig.Params[i])
	}
	for _, stmt := range f.Body {
		a.checkStatement(stmt)
	}
	a.scopes.Pop()

	a.currentReturn, a.inAsync, a.inLoop = prevReturn, prevAsync, prevLoop
}

func (a *Analyzer) requireBoolean(e ast.Expression) {
	t := a.inferExpression(e)
	if !types.Matches(types.Boolean, t) {
		a.fail(e.Line(), "condition must have type Boolean, got %s", t)
	}
}

func (a *Analyzer) requireNumber(e ast.Expression) {
	t := a.inferExpression(e)
	if !types.Matches(types.Number, t) {
		a.fail(e.Line(), "expected Number, got %s", t)
	}
}

func (a *Analyzer) checkIf(n *ast.If) {
	a.requireBoolean(n.Cond)
	a.checkBlock(n.Then)
	for _, ei := range n.ElseIfs {
		a.requireBoolean(ei.Cond)
		a.checkBlock(ei.Body)
	}
	if n.Else != nil {
		a.checkBlock(n.Else)
	}
}

func (a *Analyzer) checkWhile(n *ast.While) {
	a.requireBoolean(n.Cond)
	prevLoop := a.inLoop
	a.inLoop = true
	a.checkBlock(n.Body)
	a.inLoop = prevLoop
}

// checkForC checks the initializer in the loop's own scope, per §4.3,
// so it shares that scope with the condition, update, and body rather
// than pushing a second nested scope for the body.
func (a *Analyzer) checkForC(n *ast.ForC) {
	a.scopes.Push()
	if n.Init != nil {
		a.checkStatement(n.Init)
	}
	if n.Cond != nil {
		a.requireBoolean(n.Cond)
	}
	if n.Update != nil {
		a.inferExpression(n.Update)
	}
	prevLoop := a.inLoop
	a.inLoop = true
	for _, stmt := range n.Body {
		a.checkStatement(stmt)
	}
	a.inLoop = prevLoop
	a.scopes.Pop()
}

func (a *Analyzer) checkForIn(n *ast.ForIn) {
	it := a.inferExpression(n.Iterable)
	var elem *types.Type
	switch it.Kind {
	case types.KindArray:
		elem = it.Elem
	case types.KindAny:
		elem = types.Any
	default:
		a.fail(n.Line(), "for-in iterable must be an array, got %s", it)
		elem = types.Any
	}

	a.scopes.Push()
	a.scopes.Define(n.IteratorName, elem)
	prevLoop := a.inLoop
	a.inLoop = true
	for _, stmt := range n.Body {
		a.checkStatement(stmt)
	}
	a.inLoop = prevLoop
	a.scopes.Pop()
}

func (a *Analyzer) checkForRange(n *ast.ForRange) {
	a.requireNumber(n.Start)
	a.requireNumber(n.End)

	a.scopes.Push()
	if n.IteratorName != "" {
		a.scopes.Define(n.IteratorName, types.Number)
	}
	prevLoop := a.inLoop
	a.inLoop = true
	for _, stmt := range n.Body {
		a.checkStatement(stmt)
	}
	a.inLoop = prevLoop
	a.scopes.Pop()
}

func (a *Analyzer) checkSwitch(n *ast.Switch) {
	a.inferExpression(n.Cond)
	for _, c := range n.Cases {
		a.inferExpression(c.Value)
		a.checkBlock(c.Body)
	}
	if n.Default != nil {
		a.checkBlock(n.Default)
	}
}

func (a *Analyzer) checkTry(n *ast.TryCatchFinally) {
	a.checkBlock(n.Try)
	a.scopes.Push()
	if n.CatchName != "" {
		a.scopes.Define(n.CatchName, types.Any)
	}
	for _, stmt := range n.Catch {
		a.checkStatement(stmt)
	}
	a.scopes.Pop()
	if n.Finally != nil {
		a.checkBlock(n.Finally)
	}
}

func (a *Analyzer) checkReturn(n *ast.Return) {
	if a.currentReturn == nil {
		a.fail(n.Line(), "return outside function")
		if n.Value != nil {
			a.inferExpression(n.Value)
		}
		return
	}
	if types.Equal(a.currentReturn, types.Void) {
		if n.Value != nil {
			a.fail(n.Line(), "function declared to return Void must not return a value")
			a.inferExpression(n.Value)
		}
		return
	}
	if n.Value == nil {
		a.fail(n.Line(), "function declared to return %s must return a value", a.currentReturn)
		return
	}
	t := a.inferExpression(n.Value)
	if !types.Matches(a.currentReturn, t) {
		a.fail(n.Line(), "return type mismatch: expected %s, got %s", a.currentReturn, t)
	}
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

func (a *Analyzer) inferExpression(expr ast.Expression) *types.Type {
	switch e := expr.(type) {
	case *ast.NumericLiteral:
		return types.Number
	case *ast.StringLiteral:
		return types.String
	case *ast.BooleanLiteral:
		return types.Boolean
	case *ast.NullLiteral:
		return types.Null
	case *ast.Identifier:
		if t, ok := a.scopes.Resolve(e.Name); ok {
			return t
		}
		a.fail(e.Line(), "undefined identifier %q", e.Name)
		return types.Any
	case *ast.ArrayLiteral:
		return a.inferArrayLiteral(e)
	case *ast.ObjectLiteral:
		return a.inferObjectLiteral(e)
	case *ast.Binary:
		return a.inferBinary(e)
	case *ast.Unary:
		return a.inferUnary(e)
	case *ast.Assignment:
		return a.inferAssignment(e)
	case *ast.CompoundAssignment:
		return a.inferCompoundAssignment(e)
	case *ast.Increment:
		return a.inferIncrement(e)
	case *ast.Member:
		return a.inferMember(e)
	case *ast.Call:
		return a.inferCall(e)
	case *ast.Await:
		return a.inferAwait(e)
	default:
		a.fail(expr.Line(), "internal: unhandled expression kind %T", expr)
		return types.Any
	}
}

func (a *Analyzer) inferArrayLiteral(e *ast.ArrayLiteral) *types.Type {
	if len(e.Elements) == 0 {
		return types.NewArray(types.Any)
	}
	anchor := a.inferExpression(e.Elements[0])
	for _, elem := range e.Elements[1:] {
		t := a.inferExpression(elem)
		if !types.Matches(anchor, t) {
			a.fail(elem.Line(), "array element type %s does not match %s", t, anchor)
		}
	}
	return types.NewArray(anchor)
}

func (a *Analyzer) inferObjectLiteral(e *ast.ObjectLiteral) *types.Type {
	rec := make(map[string]*types.Type, len(e.Properties))
	for _, prop := range e.Properties {
		if prop.Value == nil {
			rec[prop.Key] = types.Any
			continue
		}
		rec[prop.Key] = a.inferExpression(prop.Value)
	}
	return types.NewObject(rec)
}

// inferMember infers e.Object first, then delegates to
// inferMemberAccess so Assignment can reuse the per-receiver rules
// without re-inferring the object twice.
func (a *Analyzer) inferMember(e *ast.Member) *types.Type {
	objType := a.inferExpression(e.Object)
	return a.inferMemberAccess(objType, e)
}

func (a *Analyzer) inferMemberAccess(objType *types.Type, e *ast.Member) *types.Type {
	switch objType.Kind {
	case types.KindArray:
		if !e.IsComputed {
			a.fail(e.Line(), "array has no field access, use [index]")
			return types.Any
		}
		idxType := a.inferExpression(e.Property)
		if !types.Matches(types.Number, idxType) {
			a.fail(e.Line(), "array index must be Number, got %s", idxType)
		}
		return objType.Elem
	case types.KindObject:
		if e.IsComputed {
			a.inferExpression(e.Property)
			return types.Any
		}
		ident, ok := e.Property.(*ast.Identifier)
		if !ok {
			a.fail(e.Line(), "internal: non-computed member property must be an identifier")
			return types.Any
		}
		if t, ok := objType.Rec[ident.Name]; ok {
			return t
		}
		a.fail(e.Line(), "object has no field %q", ident.Name)
		return types.Any
	case types.KindString, types.KindNumber, types.KindBoolean:
		if e.IsComputed {
			a.fail(e.Line(), "cannot use computed member access on %s", objType)
			return types.Any
		}
		ident, ok := e.Property.(*ast.Identifier)
		if !ok {
			return types.Any
		}
		if t, ok := builtins.LookupByKind(objType, ident.Name); ok {
			return t
		}
		a.fail(e.Line(), "%s has no member %q", objType, ident.Name)
		return types.Any
	case types.KindAny:
		if e.IsComputed {
			a.inferExpression(e.Property)
		}
		return types.Any
	default:
		a.fail(e.Line(), "cannot access member on %s", objType)
		return types.Any
	}
}

func identifierReceiverName(e ast.Expression) string {
	if id, ok := e.(*ast.Identifier); ok {
		return id.Name
	}
	return ""
}

func (a *Analyzer) inferCall(e *ast.Call) *types.Type {
	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		sig, ok := a.functions[callee.Name]
		if !ok {
			if _, bound := a.scopes.Resolve(callee.Name); bound {
				for _, arg := range e.Args {
					a.inferExpression(arg)
				}
				return types.Any
			}
			a.fail(e.Line(), "call to undeclared function %q", callee.Name)
			for _, arg := range e.Args {
				a.inferExpression(arg)
			}
			return types.Any
		}
		if len(e.Args) != len(sig.Params) {
			a.fail(e.Line(), "function %q expects %d argument(s), got %d", callee.Name, len(sig.Params), len(e.Args))
		}
		for i, arg := range e.Args {
			t := a.inferExpression(arg)
			if i < len(sig.Params) && !types.Matches(sig.Params[i], t) {
				a.fail(arg.Line(), "function %q argument %d: expected %s, got %s", callee.Name, i+1, sig.Params[i], t)
			}
		}
		return sig.Return
	case *ast.Member:
		return a.inferCallOnMember(callee, e)
	default:
		a.inferExpression(e.Callee)
		for _, arg := range e.Args {
			a.inferExpression(arg)
		}
		return types.Any
	}
}

// inferCallOnMember implements §4.3's Call rule for a member callee:
// look up the receiver's binding name in the catalogue first (e.g.
// console.log), then fall back to the receiver's primitive kind (e.g.
// a string's toUpperCase). A miss on an Object receiver is Any; on any
// other receiver it is an error.
func (a *Analyzer) inferCallOnMember(m *ast.Member, call *ast.Call) *types.Type {
	objType := a.inferExpression(m.Object)
	for _, arg := range call.Args {
		a.inferExpression(arg)
	}

	if m.IsComputed {
		return a.inferMemberAccess(objType, m)
	}
	ident, ok := m.Property.(*ast.Identifier)
	if !ok {
		a.fail(m.Line(), "internal: non-computed member property must be an identifier")
		return types.Any
	}

	if receiver := identifierReceiverName(m.Object); receiver != "" {
		if t, ok := builtins.Lookup(receiver, ident.Name); ok {
			return t
		}
	}
	if t, ok := builtins.LookupByKind(objType, ident.Name); ok {
		return t
	}
	if objType.Kind == types.KindObject {
		return types.Any
	}
	a.fail(call.Line(), "no method %q on %s", ident.Name, objType)
	return types.Any
}

func (a *Analyzer) inferAssignTarget(target ast.Expression) *types.Type {
	switch t := target.(type) {
	case *ast.Identifier:
		if bound, ok := a.scopes.Resolve(t.Name); ok {
			return bound
		}
		a.fail(t.Line(), "undefined identifier %q", t.Name)
		return types.Any
	case *ast.Member:
		return a.inferMember(t)
	default:
		a.fail(target.Line(), "internal: invalid assignment target")
		return types.Any
	}
}

func (a *Analyzer) inferAssignment(e *ast.Assignment) *types.Type {
	targetType := a.inferAssignTarget(e.Target)
	valType := a.inferExpression(e.Value)
	if !types.Matches(targetType, valType) {
		a.fail(e.Line(), "cannot assign %s to target of type %s", valType, targetType)
	}
	return targetType
}

var compoundToBinary = map[ast.CompoundAssignOp]ast.BinaryOp{
	ast.CAAdd: ast.OpAdd,
	ast.CASub: ast.OpSub,
	ast.CAMul: ast.OpMul,
	ast.CADiv: ast.OpDiv,
	ast.CAMod: ast.OpMod,
}

// inferCompoundAssignment rewrites target OP= value to the equivalent
// target = target OP value and type-checks that, per §4.3.
func (a *Analyzer) inferCompoundAssignment(e *ast.CompoundAssignment) *types.Type {
	targetType := a.inferAssignTarget(e.Target)
	valType := a.inferExpression(e.Value)

	if e.Op != ast.CAAdd && (targetType.Kind == types.KindString || valType.Kind == types.KindString) {
		a.fail(e.Line(), "operator %s= is not valid with a String operand", e.Op)
	}

	resultType := a.inferBinaryTypes(e.Line(), targetType, compoundToBinary[e.Op], valType)
	if !types.Matches(targetType, resultType) {
		a.fail(e.Line(), "cannot assign %s to target of type %s", resultType, targetType)
	}
	return targetType
}

func (a *Analyzer) inferUnary(e *ast.Unary) *types.Type {
	t := a.inferExpression(e.Value)
	if !types.Matches(types.Boolean, t) {
		a.fail(e.Line(), "operand of ! must be Boolean, got %s", t)
	}
	return types.Boolean
}

func (a *Analyzer) inferAwait(e *ast.Await) *types.Type {
	if !a.inAsync {
		a.fail(e.Line(), "await is only valid inside an async function")
	}
	return a.inferExpression(e.Value)
}

func (a *Analyzer) inferIncrement(e *ast.Increment) *types.Type {
	t := a.inferExpression(e.Target)
	if !types.Matches(types.Number, t) {
		a.fail(e.Line(), "increment operand must be Number, got %s", t)
	}
	return types.Number
}

func (a *Analyzer) inferBinary(e *ast.Binary) *types.Type {
	lt := a.inferExpression(e.Left)
	rt := a.inferExpression(e.Right)
	return a.inferBinaryTypes(e.Line(), lt, e.Op, rt)
}

func (a *Analyzer) inferBinaryTypes(line int, lt *types.Type, op ast.BinaryOp, rt *types.Type) *types.Type {
	switch op {
	case ast.OpAdd:
		if lt.Kind == types.KindNumber && rt.Kind == types.KindNumber {
			return types.Number
		}
		if lt.Kind == types.KindString || rt.Kind == types.KindString {
			return types.String
		}
		if lt.Kind == types.KindAny || rt.Kind == types.KindAny {
			return types.Any
		}
		a.fail(line, "operator + requires Number or String operands, got %s and %s", lt, rt)
		return types.Any
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		if lt.Kind == types.KindAny || rt.Kind == types.KindAny {
			return types.Number
		}
		if lt.Kind != types.KindNumber || rt.Kind != types.KindNumber {
			a.fail(line, "operator %s requires Number operands, got %s and %s", op, lt, rt)
		}
		return types.Number
	case ast.OpLt, ast.OpGt, ast.OpLe, ast.OpGe, ast.OpEq, ast.OpNe, ast.OpAnd, ast.OpOr:
		return types.Boolean
	default:
		return types.Any
	}
}
