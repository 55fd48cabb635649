package lexer

import (
	"testing"

	"github.com/Lenni808090/lenniscript/internal/token"
)

func TestSingleTokens(t *testing.T) {
	cases := []struct {
		input string
		want  token.Type
	}{
		{"(", token.LPAREN},
		{")", token.RPAREN},
		{"{", token.LBRACE},
		{"}", token.RBRACE},
		{"[", token.LBRACK},
		{"]", token.RBRACK},
		{",", token.COMMA},
		{":", token.COLON},
		{";", token.SEMICOLON},
		{"?", token.QUESTION},
		{".", token.DOT},
		{"..", token.DOTDOT},
		{"+", token.PLUS},
		{"++", token.INC},
		{"+=", token.PLUS_ASSIGN},
		{"-", token.MINUS},
		{"->", token.ARROW},
		{"-=", token.MINUS_ASSIGN},
		{"*", token.STAR},
		{"*=", token.STAR_ASSIGN},
		{"/", token.SLASH},
		{"/=", token.SLASH_ASSIGN},
		{"%", token.PERCENT},
		{"%=", token.PERCENT_ASSIGN},
		{"=", token.ASSIGN},
		{"==", token.EQ_EQ},
		{"=>", token.FAT_ARROW},
		{"!", token.BANG},
		{"!=", token.NOT_EQ},
		{"<", token.LT},
		{"<=", token.LT_EQ},
		{">", token.GT},
		{">=", token.GT_EQ},
		{"&&", token.AND_AND},
		{"||", token.OR_OR},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			l := New(c.input)
			tok := l.NextToken()
			if tok.Type != c.want {
				t.Fatalf("input %q: got %s, want %s", c.input, tok.Type, c.want)
			}
			eof := l.NextToken()
			if eof.Type != token.EOF {
				t.Fatalf("input %q: expected EOF after one token, got %s", c.input, eof.Type)
			}
		})
	}
}

func TestKeywordsAndTypeKeywords(t *testing.T) {
	cases := []struct {
		input string
		want  token.Type
	}{
		{"let", token.LET},
		{"const", token.CONST},
		{"fn", token.FN},
		{"async", token.ASYNC},
		{"await", token.AWAIT},
		{"return", token.RETURN},
		{"if", token.IF},
		{"else", token.ELSE},
		{"while", token.WHILE},
		{"for", token.FOR},
		{"in", token.IN},
		{"try", token.TRY},
		{"catch", token.CATCH},
		{"finally", token.FINALLY},
		{"switch", token.SWITCH},
		{"case", token.CASE},
		{"default", token.DEFAULT},
		{"break", token.BREAK},
		{"continue", token.CONTINUE},
		{"true", token.TRUE},
		{"false", token.FALSE},
		{"null", token.NULL},
		{"as", token.AS},
		{"string", token.TYPE_KEYWORD},
		{"num", token.TYPE_KEYWORD},
		{"array", token.TYPE_KEYWORD},
		{"bool", token.TYPE_KEYWORD},
		{"myVar", token.IDENT},
		{"_private", token.IDENT},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			l := New(c.input)
			tok := l.NextToken()
			if tok.Type != c.want {
				t.Fatalf("input %q: got %s, want %s", c.input, tok.Type, c.want)
			}
			if tok.Literal != c.input {
				t.Fatalf("input %q: literal = %q", c.input, tok.Literal)
			}
		})
	}
}

func TestNumberLiterals(t *testing.T) {
	l := New("42 3.14")
	first := l.NextToken()
	if first.Type != token.NUMBER || first.Literal != "42" {
		t.Fatalf("got %s %q", first.Type, first.Literal)
	}
	second := l.NextToken()
	if second.Type != token.NUMBER || second.Literal != "3.14" {
		t.Fatalf("got %s %q", second.Type, second.Literal)
	}
}

func TestRangeDotsNeverEnterNumber(t *testing.T) {
	l := New("1..5")
	want := []token.Type{token.NUMBER, token.DOTDOT, token.NUMBER, token.EOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, w)
		}
	}
}

func TestTrailingDotIsLexError(t *testing.T) {
	l := New("1.")
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1", len(l.Errors()))
	}
}

func TestStringLiteralVerbatim(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	if tok.Type != token.STRING || tok.Literal != "hello world" {
		t.Fatalf("got %s %q", tok.Type, tok.Literal)
	}
}

func TestUnterminatedStringIsLexError(t *testing.T) {
	l := New(`"unterminated`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1", len(l.Errors()))
	}
}

func TestLoneAmpersandAndPipeAreErrors(t *testing.T) {
	for _, input := range []string{"&", "|"} {
		l := New(input)
		l.NextToken()
		if len(l.Errors()) != 1 {
			t.Fatalf("input %q: got %d errors, want 1", input, len(l.Errors()))
		}
	}
}

func TestLineTracking(t *testing.T) {
	l := New("let a = 1;\nlet b = 2;\n")
	var lines []int
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		if tok.Type == token.LET {
			lines = append(lines, tok.Line)
		}
	}
	if len(lines) != 2 || lines[0] != 1 || lines[1] != 2 {
		t.Fatalf("got lines %v, want [1 2]", lines)
	}
}

func TestTokenizeTerminatesWithEOF(t *testing.T) {
	toks := New("let x = 1;").Tokenize()
	if toks[len(toks)-1].Type != token.EOF {
		t.Fatalf("last token is %s, want EOF", toks[len(toks)-1].Type)
	}
}

func TestUnknownCharactersAreSkipped(t *testing.T) {
	toks := New("let@x=1").Tokenize()
	var types []token.Type
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	want := []token.Type{token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.EOF}
	if len(types) != len(want) {
		t.Fatalf("got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s", i, types[i], want[i])
		}
	}
}
