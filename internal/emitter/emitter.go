// Package emitter pretty-prints a typed AST into JavaScript source
// (§4.4): the final pipeline stage, consuming the type checker's output
// read-only and producing a fresh string. No type annotation, async
// flag, or parameter/return type ever reaches the output — they are
// erased, matching original_source/compiler.rs's emission exactly.
package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Lenni808090/lenniscript/internal/ast"
)

const indentWidth = 4

// Emitter accumulates output in a strings.Builder with a running
// indentation counter, one level per nested block.
type Emitter struct {
	out    strings.Builder
	indent int
}

// New creates an empty Emitter.
func New() *Emitter { return &Emitter{} }

// Emit lowers prog into a complete JavaScript source string.
func Emit(prog *ast.Program) string {
	e := New()
	for _, stmt := range prog.Body {
		e.writeStatement(stmt)
	}
	return e.out.String()
}

func (e *Emitter) writeIndent() {
	e.out.WriteString(strings.Repeat(" ", e.indent*indentWidth))
}

func (e *Emitter) line(format string, args ...any) {
	e.writeIndent()
	fmt.Fprintf(&e.out, format, args...)
	e.out.WriteString("\n")
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (e *Emitter) writeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		e.writeVarDeclaration(s)
	case *ast.FunctionDeclaration:
		e.writeFunctionDeclaration(s)
	case *ast.If:
		e.writeIf(s)
	case *ast.While:
		e.writeWhile(s)
	case *ast.ForC:
		e.writeForC(s)
	case *ast.ForIn:
		e.writeForIn(s)
	case *ast.ForRange:
		e.writeForRange(s)
	case *ast.Switch:
		e.writeSwitch(s)
	case *ast.TryCatchFinally:
		e.writeTry(s)
	case *ast.Return:
		e.writeReturn(s)
	case *ast.Break:
		e.line("break;")
	case *ast.Continue:
		e.line("continue;")
	case *ast.ExpressionStmt:
		e.line("%s;", e.expr(s.Expr))
	default:
		e.line("/* unhandled statement %T */", stmt)
	}
}

func (e *Emitter) writeBlock(body []ast.Statement) {
	e.out.WriteString("{\n")
	e.indent++
	for _, stmt := range body {
		e.writeStatement(stmt)
	}
	e.indent--
	e.writeIndent()
	e.out.WriteString("}")
}

func (e *Emitter) writeVarDeclaration(v *ast.VarDeclaration) {
	keyword := "let"
	if v.IsConst {
		keyword = "const"
	}
	if v.Initializer == nil {
		e.line("%s %s;", keyword, v.Name)
		return
	}
	e.line("%s %s = %s;", keyword, v.Name, e.expr(v.Initializer))
}

func (e *Emitter) writeFunctionDeclaration(f *ast.FunctionDeclaration) {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name
	}
	e.writeIndent()
	fmt.Fprintf(&e.out, "function %s(%s) ", f.Name, strings.Join(names, ", "))
	e.writeBlock(f.Body)
	e.out.WriteString("\n")
}

func (e *Emitter) writeIf(n *ast.If) {
	e.writeIndent()
	fmt.Fprintf(&e.out, "if (%s) ", e.expr(n.Cond))
	e.writeBlock(n.Then)
	for _, ei := range n.ElseIfs {
		fmt.Fprintf(&e.out, " else if (%s) ", e.expr(ei.Cond))
		e.writeBlock(ei.Body)
	}
	if n.Else != nil {
		e.out.WriteString(" else ")
		e.writeBlock(n.Else)
	}
	e.out.WriteString("\n")
}

func (e *Emitter) writeWhile(n *ast.While) {
	e.writeIndent()
	fmt.Fprintf(&e.out, "while (%s) ", e.expr(n.Cond))
	e.writeBlock(n.Body)
	e.out.WriteString("\n")
}

func (e *Emitter) writeForC(n *ast.ForC) {
	init, cond, update := "", "", ""
	if n.Init != nil {
		init = e.forClause(n.Init)
	}
	if n.Cond != nil {
		cond = e.expr(n.Cond)
	}
	if n.Update != nil {
		update = e.expr(n.Update)
	}
	e.writeIndent()
	fmt.Fprintf(&e.out, "for (%s; %s; %s) ", init, cond, update)
	e.writeBlock(n.Body)
	e.out.WriteString("\n")
}

// forClause emits a ForC initializer with no trailing ';' or newline,
// since the for-loop's own "; ; " punctuation supplies that.
func (e *Emitter) forClause(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case *ast.VarDeclaration:
		keyword := "let"
		if s.IsConst {
			keyword = "const"
		}
		if s.Initializer == nil {
			return fmt.Sprintf("%s %s", keyword, s.Name)
		}
		return fmt.Sprintf("%s %s = %s", keyword, s.Name, e.expr(s.Initializer))
	case *ast.ExpressionStmt:
		return e.expr(s.Expr)
	default:
		return ""
	}
}

func (e *Emitter) writeForIn(n *ast.ForIn) {
	keyword := "let"
	if n.IsConst {
		keyword = "const"
	}
	e.writeIndent()
	fmt.Fprintf(&e.out, "for (%s %s of %s) ", keyword, n.IteratorName, e.expr(n.Iterable))
	e.writeBlock(n.Body)
	e.out.WriteString("\n")
}

// writeForRange lowers to a conventional three-clause loop per the
// Open Question resolution (no range bounds emitted in the source
// examples): for (let i = start; i <= end; i = i + 1) { ... }
func (e *Emitter) writeForRange(n *ast.ForRange) {
	name := n.IteratorName
	if name == "" {
		name = "_i"
	}
	startExpr := e.expr(n.Start)
	endExpr := e.expr(n.End)
	e.writeIndent()
	fmt.Fprintf(&e.out, "for (let %s = %s; %s <= %s; %s = %s + 1) ", name, startExpr, name, endExpr, name, name)
	e.writeBlock(n.Body)
	e.out.WriteString("\n")
}

func (e *Emitter) writeSwitch(n *ast.Switch) {
	e.writeIndent()
	fmt.Fprintf(&e.out, "switch (%s) {\n", e.expr(n.Cond))
	e.indent++
	for _, c := range n.Cases {
		e.line("case %s:", e.expr(c.Value))
		e.indent++
		for _, stmt := range c.Body {
			e.writeStatement(stmt)
		}
		e.indent--
	}
	if n.Default != nil {
		e.line("default:")
		e.indent++
		for _, stmt := range n.Default {
			e.writeStatement(stmt)
		}
		e.indent--
	}
	e.indent--
	e.line("}")
}

func (e *Emitter) writeTry(n *ast.TryCatchFinally) {
	e.writeIndent()
	e.out.WriteString("try ")
	e.writeBlock(n.Try)
	catchName := n.CatchName
	if catchName == "" {
		e.out.WriteString(" catch ")
	} else {
		fmt.Fprintf(&e.out, " catch (%s) ", catchName)
	}
	e.writeBlock(n.Catch)
	if n.Finally != nil {
		e.out.WriteString(" finally ")
		e.writeBlock(n.Finally)
	}
	e.out.WriteString("\n")
}

func (e *Emitter) writeReturn(n *ast.Return) {
	if n.Value == nil {
		e.line("return;")
		return
	}
	e.line("return %s;", e.expr(n.Value))
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

func (e *Emitter) expr(expr ast.Expression) string {
	switch x := expr.(type) {
	case *ast.NumericLiteral:
		return formatNumber(x.Value)
	case *ast.StringLiteral:
		// Written verbatim between double quotes: no escaping here, just
		// as the lexer performs no escape processing.
		return "\"" + x.Value + "\""
	case *ast.BooleanLiteral:
		if x.Value {
			return "true"
		}
		return "false"
	case *ast.NullLiteral:
		return "null"
	case *ast.Identifier:
		return x.Name
	case *ast.ArrayLiteral:
		parts := make([]string, len(x.Elements))
		for i, el := range x.Elements {
			parts[i] = e.expr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.ObjectLiteral:
		parts := make([]string, len(x.Properties))
		for i, p := range x.Properties {
			if p.Value == nil {
				parts[i] = fmt.Sprintf("%s: null", p.Key)
			} else {
				parts[i] = fmt.Sprintf("%s: %s", p.Key, e.expr(p.Value))
			}
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", e.expr(x.Left), x.Op, e.expr(x.Right))
	case *ast.Unary:
		return fmt.Sprintf("!%s", e.expr(x.Value))
	case *ast.Assignment:
		return fmt.Sprintf("%s = %s", e.expr(x.Target), e.expr(x.Value))
	case *ast.CompoundAssignment:
		return fmt.Sprintf("%s %s= %s", e.expr(x.Target), x.Op, e.expr(x.Value))
	case *ast.Increment:
		if x.IsPrefix {
			return fmt.Sprintf("++%s", e.expr(x.Target))
		}
		return fmt.Sprintf("%s++", e.expr(x.Target))
	case *ast.Member:
		if x.IsComputed {
			return fmt.Sprintf("%s[%s]", e.expr(x.Object), e.expr(x.Property))
		}
		return fmt.Sprintf("%s.%s", e.expr(x.Object), e.expr(x.Property))
	case *ast.Call:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = e.expr(a)
		}
		return fmt.Sprintf("%s(%s)", e.expr(x.Callee), strings.Join(args, ", "))
	case *ast.Await:
		return fmt.Sprintf("await %s", e.expr(x.Value))
	default:
		return fmt.Sprintf("/* unhandled expression %T */", expr)
	}
}

// formatNumber renders a float64 the way a decimal NumericLiteral
// should look in emitted source: integral values with no trailing
// ".0", fractional values in their shortest round-tripping form.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
