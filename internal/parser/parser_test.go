package parser

import (
	"testing"

	"github.com/Lenni808090/lenniscript/internal/ast"
	"github.com/Lenni808090/lenniscript/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	return prog
}

func TestParseVarDeclaration(t *testing.T) {
	prog := parseProgram(t, `let x: num = 2 + 3;`)
	if len(prog.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Body))
	}
	v, ok := prog.Body[0].(*ast.VarDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.VarDeclaration", prog.Body[0])
	}
	if v.IsConst || v.Name != "x" || v.DeclaredType == nil || v.DeclaredType.Name != "num" {
		t.Fatalf("unexpected VarDeclaration: %+v", v)
	}
	bin, ok := v.Initializer.(*ast.Binary)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("initializer = %+v, want Binary(+)", v.Initializer)
	}
}

func TestConstWithoutInitializerIsParseError(t *testing.T) {
	p := New(lexer.New(`const x;`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for const without initializer")
	}
}

func TestParseOptionalArrayType(t *testing.T) {
	prog := parseProgram(t, `let a: array<num>? = null;`)
	v := prog.Body[0].(*ast.VarDeclaration)
	ty := v.DeclaredType
	if ty.Name != "array" || !ty.Optional || ty.Elem == nil || ty.Elem.Name != "num" {
		t.Fatalf("unexpected type annotation: %+v", ty)
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := parseProgram(t, `async fn add(a: num, b: num) -> num { return a + b; }`)
	fn, ok := prog.Body[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionDeclaration", prog.Body[0])
	}
	if !fn.IsAsync || fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected FunctionDeclaration: %+v", fn)
	}
	if fn.ReturnType == nil || fn.ReturnType.Name != "num" {
		t.Fatalf("return type = %+v", fn.ReturnType)
	}
}

func TestForRangeDisambiguation(t *testing.T) {
	prog := parseProgram(t, `for(0..3 as i){ console.log(i); }`)
	fr, ok := prog.Body[0].(*ast.ForRange)
	if !ok {
		t.Fatalf("got %T, want *ast.ForRange", prog.Body[0])
	}
	if fr.IteratorName != "i" {
		t.Fatalf("iterator name = %q", fr.IteratorName)
	}
}

func TestForInDisambiguation(t *testing.T) {
	prog := parseProgram(t, `for(let x in items){ console.log(x); }`)
	fi, ok := prog.Body[0].(*ast.ForIn)
	if !ok {
		t.Fatalf("got %T, want *ast.ForIn", prog.Body[0])
	}
	if fi.IteratorName != "x" || fi.IsConst {
		t.Fatalf("unexpected ForIn: %+v", fi)
	}
}

func TestForCDisambiguation(t *testing.T) {
	prog := parseProgram(t, `for(let i = 0; i < 10; i = i + 1){ console.log(i); }`)
	fc, ok := prog.Body[0].(*ast.ForC)
	if !ok {
		t.Fatalf("got %T, want *ast.ForC", prog.Body[0])
	}
	if fc.Init == nil || fc.Cond == nil || fc.Update == nil {
		t.Fatalf("unexpected ForC: %+v", fc)
	}
}

func TestInvalidAssignmentTargetIsParseError(t *testing.T) {
	p := New(lexer.New(`1 + 1 = 2;`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for an invalid assignment target")
	}
}

func TestCompoundAssignment(t *testing.T) {
	prog := parseProgram(t, `x += 1;`)
	stmt := prog.Body[0].(*ast.ExpressionStmt)
	ca, ok := stmt.Expr.(*ast.CompoundAssignment)
	if !ok || ca.Op != ast.CAAdd {
		t.Fatalf("got %+v, want CompoundAssignment(+)", stmt.Expr)
	}
}

func TestMemberAndCallChaining(t *testing.T) {
	prog := parseProgram(t, `console.log("hi");`)
	stmt := prog.Body[0].(*ast.ExpressionStmt)
	call, ok := stmt.Expr.(*ast.Call)
	if !ok {
		t.Fatalf("got %T, want *ast.Call", stmt.Expr)
	}
	member, ok := call.Callee.(*ast.Member)
	if !ok || member.IsComputed {
		t.Fatalf("callee = %+v, want non-computed Member", call.Callee)
	}
}

func TestArrayLiteralAndIndex(t *testing.T) {
	prog := parseProgram(t, `let a: array<num> = [1,2,3]; a[0] = 5;`)
	if len(prog.Body) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.Body))
	}
	assignStmt := prog.Body[1].(*ast.ExpressionStmt)
	assign, ok := assignStmt.Expr.(*ast.Assignment)
	if !ok {
		t.Fatalf("got %T, want *ast.Assignment", assignStmt.Expr)
	}
	member, ok := assign.Target.(*ast.Member)
	if !ok || !member.IsComputed {
		t.Fatalf("target = %+v, want computed Member", assign.Target)
	}
}

func TestSwitchRequiresAtLeastOneCase(t *testing.T) {
	p := New(lexer.New(`switch(x) { }`))
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for an empty switch")
	}
}

func TestPrefixAndPostfixIncrement(t *testing.T) {
	prog := parseProgram(t, `++x; x++;`)
	prefix := prog.Body[0].(*ast.ExpressionStmt).Expr.(*ast.Increment)
	if !prefix.IsPrefix {
		t.Fatalf("expected prefix increment, got %+v", prefix)
	}
	postfix := prog.Body[1].(*ast.ExpressionStmt).Expr.(*ast.Increment)
	if postfix.IsPrefix {
		t.Fatalf("expected postfix increment, got %+v", postfix)
	}
}

func TestAwaitInsideAsyncFunction(t *testing.T) {
	prog := parseProgram(t, `async fn f() -> num { return await 1; }`)
	fn := prog.Body[0].(*ast.FunctionDeclaration)
	ret := fn.Body[0].(*ast.Return)
	if _, ok := ret.Value.(*ast.Await); !ok {
		t.Fatalf("return value = %+v, want *ast.Await", ret.Value)
	}
}
