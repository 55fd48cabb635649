package semantic

import (
	"testing"

	"github.com/Lenni808090/lenniscript/internal/lexer"
	"github.com/Lenni808090/lenniscript/internal/parser"
)

func check(t *testing.T, src string) []string {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	errs := New(src, "<test>").Check(prog)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return msgs
}

func requireClean(t *testing.T, src string) {
	t.Helper()
	if errs := check(t, src); len(errs) != 0 {
		t.Fatalf("expected %q to type-check cleanly, got errors: %v", src, errs)
	}
}

func requireError(t *testing.T, src string) {
	t.Helper()
	if errs := check(t, src); len(errs) == 0 {
		t.Fatalf("expected %q to fail type checking", src)
	}
}

func TestTypedAddition(t *testing.T) {
	requireClean(t, `let x: num = 2 + 3;`)
}

func TestTypeMismatch(t *testing.T) {
	requireError(t, `let x: num = "hi";`)
}

func TestOptionalAssignment(t *testing.T) {
	requireClean(t, `let t: string? = "a"; t = null; t = "b";`)
}

func TestArrayElementTyping(t *testing.T) {
	requireClean(t, `let a: array<num> = [1,2,3]; a[0] = 5;`)
	requireError(t, `let a: array<num> = [1,2,3]; a[0] = "x";`)
}

func TestBuiltinMemberMethodCall(t *testing.T) {
	requireClean(t, `console.log("hi");`)
}

func TestRangeLoopBindsIteratorToNumber(t *testing.T) {
	requireClean(t, `for(0..3 as i){ console.log(i); }`)
}

func TestAwaitOutsideAsyncIsError(t *testing.T) {
	requireError(t, `let x = await 1;`)
}

func TestAwaitInsideAsyncIsClean(t *testing.T) {
	requireClean(t, `async fn f() -> num { return await 1; }`)
}

func TestReturnOutsideFunctionIsError(t *testing.T) {
	requireError(t, `return 1;`)
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	requireError(t, `break;`)
}

func TestContinueOutsideLoopIsError(t *testing.T) {
	requireError(t, `continue;`)
}

func TestBreakInsideLoopIsClean(t *testing.T) {
	requireClean(t, `while (true) { break; }`)
}

func TestSecondBreakInSameLoopIsClean(t *testing.T) {
	// Loop-control flag must be saved/restored, not cleared, so a second
	// break in the same loop body is not incorrectly rejected.
	requireClean(t, `while (true) { if (true) { break; } break; }`)
}

func TestEmptyArrayLiteralTypesAsArrayAny(t *testing.T) {
	requireClean(t, `let a = []; let b: array<num> = a;`)
}

func TestEmptyObjectLiteralRejectsFieldRead(t *testing.T) {
	requireError(t, `let o = {}; let x = o.missing;`)
}

func TestUndefinedIdentifierIsError(t *testing.T) {
	requireError(t, `let x = y;`)
}

func TestScopeHygieneLoopVariableNotVisibleOutside(t *testing.T) {
	requireError(t, `while (true) { let localOnly: num = 1; } let y = localOnly;`)
}

func TestFunctionCallArityAndTypes(t *testing.T) {
	requireClean(t, `
fn add(a: num, b: num) -> num { return a + b; }
let x: num = add(1, 2);
`)
	requireError(t, `
fn add(a: num, b: num) -> num { return a + b; }
let x: num = add(1);
`)
	requireError(t, `
fn add(a: num, b: num) -> num { return a + b; }
let x: num = add(1, "two");
`)
}

func TestCompoundAssignmentRejectsStringWithNonPlus(t *testing.T) {
	requireClean(t, `let s: string = "a"; s += "b";`)
	requireError(t, `let s: string = "a"; s -= "b";`)
}

func TestUnaryRequiresBoolean(t *testing.T) {
	requireClean(t, `let b: bool = !true;`)
	requireError(t, `let b = !1;`)
}

func TestIncrementRequiresNumber(t *testing.T) {
	requireClean(t, `let n: num = 1; n++;`)
	requireError(t, `let s: string = "a"; s++;`)
}

func TestObjectLiteralShorthandNullField(t *testing.T) {
	requireClean(t, `let o = { a: 1, b };`)
}

func TestForInOverArray(t *testing.T) {
	requireClean(t, `let xs: array<num> = [1,2,3]; for (let x in xs) { console.log(x); }`)
}

func TestVoidFunctionMustNotReturnValue(t *testing.T) {
	requireError(t, `fn f() { return 1; }`)
	requireClean(t, `fn f() { return; }`)
}
