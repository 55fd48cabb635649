// Package parser implements lenniscript's recursive-descent parser
// (§4.2): one function per grammar rule, following the grammar's
// explicit precedence ladder directly rather than a Pratt precedence
// table — the grammar already encodes precedence as nesting order.
package parser

import (
	"fmt"

	"github.com/Lenni808090/lenniscript/internal/ast"
	"github.com/Lenni808090/lenniscript/internal/lexer"
	"github.com/Lenni808090/lenniscript/internal/token"
)

// ParseError is a fatal parse error: a token-kind mismatch, an invalid
// assignment target, or an unexpected token in primary position.
type ParseError struct {
	Message string
	Line    int
}

func (e *ParseError) Error() string { return e.Message }

// Parser consumes a pre-scanned token stream and builds a Program.
type Parser struct {
	tokens []token.Token
	pos    int
	errors []*ParseError
}

// New creates a Parser over the tokens produced by l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{tokens: l.Tokenize()}
}

// Errors returns the parse errors accumulated so far.
func (p *Parser) Errors() []*ParseError { return p.errors }

func (p *Parser) cur() token.Token  { return p.at(p.pos) }
func (p *Parser) peek() token.Token { return p.at(p.pos + 1) }

func (p *Parser) at(i int) token.Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[i]
}

func (p *Parser) advance() token.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur().Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek().Type == t }

func (p *Parser) fail(format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Message: fmt.Sprintf(format, args...), Line: p.cur().Line})
}

// expect consumes the current token if it matches t, else records a
// fatal error naming the expected and actual kinds.
func (p *Parser) expect(t token.Type) token.Token {
	if p.cur().Type != t {
		p.fail("expected %s but got %s %q at line %d", t, p.cur().Type, p.cur().Literal, p.cur().Line)
		return p.cur()
	}
	return p.advance()
}

// ParseProgram parses the whole token stream into a Program. On any
// fatal error, parsing stops and Errors() is non-empty.
func (p *Parser) ParseProgram() *ast.Program {
	var body []ast.Statement
	for !p.curIs(token.EOF) && len(p.errors) == 0 {
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		body = append(body, stmt)
	}
	return ast.NewProgram(body)
}

// ---------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.LET, token.CONST:
		return p.parseVarDeclaration()
	case token.ASYNC, token.FN:
		return p.parseFunctionDeclaration()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	case token.SWITCH:
		return p.parseSwitch()
	case token.TRY:
		return p.parseTry()
	case token.RETURN:
		return p.parseReturn()
	case token.BREAK:
		line := p.advance().Line
		p.consumeOptionalSemicolon()
		return ast.NewBreak(line)
	case token.CONTINUE:
		line := p.advance().Line
		p.consumeOptionalSemicolon()
		return ast.NewContinue(line)
	default:
		line := p.cur().Line
		expr := p.parseExpression()
		p.expect(token.SEMICOLON)
		return ast.NewExpressionStmt(line, expr)
	}
}

// consumeOptionalSemicolon accepts a trailing ';' if present; break and
// continue are terminated by ';' like every other statement, but we are
// lenient at EOF/'}' to keep error messages about the actual mistake.
func (p *Parser) consumeOptionalSemicolon() {
	if p.curIs(token.SEMICOLON) {
		p.advance()
		return
	}
	if p.curIs(token.RBRACE) || p.curIs(token.EOF) {
		return
	}
	p.expect(token.SEMICOLON)
}

func (p *Parser) parseBlock() []ast.Statement {
	p.expect(token.LBRACE)
	var stmts []ast.Statement
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) && len(p.errors) == 0 {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBRACE)
	return stmts
}

// parseTypeAnnotation parses the type-annotation sub-grammar (§4.2):
// one of {bool, num, string} or array<BASE>, with an optional trailing
// '?' turning the result into Option(T).
func (p *Parser) parseTypeAnnotation() *ast.TypeAnnotation {
	line := p.cur().Line
	tok := p.expect(token.TYPE_KEYWORD)

	var ann *ast.TypeAnnotation
	if tok.Literal == "array" {
		p.expect(token.LT)
		elem := p.parseTypeAnnotation()
		p.expect(token.GT)
		ann = ast.NewTypeAnnotation(line, "array", elem, false)
	} else {
		ann = ast.NewTypeAnnotation(line, tok.Literal, nil, false)
	}

	if p.curIs(token.QUESTION) {
		p.advance()
		ann = ast.NewTypeAnnotation(line, ann.Name, ann.Elem, true)
	}
	return ann
}

func (p *Parser) parseVarDeclaration() ast.Statement {
	line := p.cur().Line
	isConst := p.advance().Type == token.CONST

	name := p.expect(token.IDENT).Literal

	var declared *ast.TypeAnnotation
	if p.curIs(token.COLON) {
		p.advance()
		declared = p.parseTypeAnnotation()
	}

	var init ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		init = p.parseExpression()
	} else if isConst {
		p.fail("const declaration %q requires an initializer at line %d", name, line)
	}

	p.expect(token.SEMICOLON)
	return ast.NewVarDeclaration(line, isConst, name, declared, init)
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	line := p.cur().Line
	isAsync := false
	if p.curIs(token.ASYNC) {
		isAsync = true
		p.advance()
	}
	p.expect(token.FN)
	name := p.expect(token.IDENT).Literal

	p.expect(token.LPAREN)
	var params []ast.Param
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		pname := p.expect(token.IDENT).Literal
		var ptype *ast.TypeAnnotation
		if p.curIs(token.COLON) {
			p.advance()
			ptype = p.parseTypeAnnotation()
		}
		params = append(params, ast.Param{Name: pname, Type: ptype})
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RPAREN)

	var ret *ast.TypeAnnotation
	if p.curIs(token.ARROW) {
		p.advance()
		ret = p.parseTypeAnnotation()
	}

	body := p.parseBlock()
	return ast.NewFunctionDeclaration(line, name, params, ret, isAsync, body)
}

func (p *Parser) parseIf() ast.Statement {
	line := p.advance().Line // consume 'if'
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseBlock()

	var elseIfs []ast.ElseIf
	var elseBody []ast.Statement

	for p.curIs(token.ELSE) {
		p.advance()
		if p.curIs(token.IF) {
			p.advance()
			p.expect(token.LPAREN)
			c := p.parseExpression()
			p.expect(token.RPAREN)
			b := p.parseBlock()
			elseIfs = append(elseIfs, ast.ElseIf{Cond: c, Body: b})
			continue
		}
		elseBody = p.parseBlock()
		break
	}

	return ast.NewIf(line, cond, then, elseIfs, elseBody)
}

func (p *Parser) parseWhile() ast.Statement {
	line := p.advance().Line
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return ast.NewWhile(line, cond, body)
}

// parseFor disambiguates ForRange / ForIn / ForC by inspecting the
// tokens immediately after '(' (§4.2).
func (p *Parser) parseFor() ast.Statement {
	line := p.advance().Line // consume 'for'
	p.expect(token.LPAREN)

	if p.curIs(token.NUMBER) && p.peekIs(token.DOTDOT) {
		return p.parseForRange(line)
	}

	if (p.curIs(token.LET) || p.curIs(token.CONST)) && p.at(p.pos+2).Type == token.IN {
		return p.parseForIn(line)
	}

	return p.parseForC(line)
}

func (p *Parser) parseForRange(line int) ast.Statement {
	start := p.parseExpression()
	p.expect(token.DOTDOT)
	end := p.parseExpression()

	iterName := ""
	if p.curIs(token.AS) {
		p.advance()
		iterName = p.expect(token.IDENT).Literal
	}
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return ast.NewForRange(line, start, end, iterName, body)
}

func (p *Parser) parseForIn(line int) ast.Statement {
	isConst := p.advance().Type == token.CONST // consume let/const
	name := p.expect(token.IDENT).Literal
	p.expect(token.IN)
	iterable := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseBlock()
	return ast.NewForIn(line, isConst, name, iterable, body)
}

func (p *Parser) parseForC(line int) ast.Statement {
	var init ast.Statement
	if p.curIs(token.LET) || p.curIs(token.CONST) {
		init = p.parseVarDeclarationNoTrailingConsume()
	} else if !p.curIs(token.SEMICOLON) {
		iline := p.cur().Line
		expr := p.parseExpression()
		init = ast.NewExpressionStmt(iline, expr)
	}
	p.expect(token.SEMICOLON)

	var cond ast.Expression
	if !p.curIs(token.SEMICOLON) {
		cond = p.parseExpression()
	}
	p.expect(token.SEMICOLON)

	var update ast.Expression
	if !p.curIs(token.RPAREN) {
		update = p.parseExpression()
	}
	p.expect(token.RPAREN)

	body := p.parseBlock()
	return ast.NewForC(line, init, cond, update, body)
}

// parseVarDeclarationNoTrailingConsume parses a var declaration for use
// as a ForC initializer, where the trailing ';' is consumed by the
// caller (the for-loop's own clause separator), not here.
func (p *Parser) parseVarDeclarationNoTrailingConsume() ast.Statement {
	line := p.cur().Line
	isConst := p.advance().Type == token.CONST
	name := p.expect(token.IDENT).Literal

	var declared *ast.TypeAnnotation
	if p.curIs(token.COLON) {
		p.advance()
		declared = p.parseTypeAnnotation()
	}

	var init ast.Expression
	if p.curIs(token.ASSIGN) {
		p.advance()
		init = p.parseExpression()
	} else if isConst {
		p.fail("const declaration %q requires an initializer at line %d", name, line)
	}

	return ast.NewVarDeclaration(line, isConst, name, declared, init)
}

func (p *Parser) parseSwitch() ast.Statement {
	line := p.advance().Line
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)

	var cases []ast.SwitchCase
	var def []ast.Statement
	haveDefault := false

	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		switch p.cur().Type {
		case token.CASE:
			p.advance()
			val := p.parseExpression()
			p.expect(token.COLON)
			var body []ast.Statement
			for !p.curIs(token.CASE) && !p.curIs(token.DEFAULT) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) && len(p.errors) == 0 {
				body = append(body, p.parseStatement())
			}
			cases = append(cases, ast.SwitchCase{Value: val, Body: body})
		case token.DEFAULT:
			p.advance()
			p.expect(token.COLON)
			var body []ast.Statement
			for !p.curIs(token.CASE) && !p.curIs(token.DEFAULT) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) && len(p.errors) == 0 {
				body = append(body, p.parseStatement())
			}
			def = body
			haveDefault = true
		default:
			p.fail("expected case or default in switch at line %d, got %s", p.cur().Line, p.cur().Type)
			return nil
		}
	}
	p.expect(token.RBRACE)

	if len(cases) == 0 {
		p.fail("switch must have at least one case branch at line %d", line)
		return nil
	}
	_ = haveDefault
	return ast.NewSwitch(line, cond, cases, def)
}

func (p *Parser) parseTry() ast.Statement {
	line := p.advance().Line
	tryBody := p.parseBlock()

	p.expect(token.CATCH)
	catchName := ""
	if p.curIs(token.LPAREN) {
		p.advance()
		catchName = p.expect(token.IDENT).Literal
		p.expect(token.RPAREN)
	}
	catchBody := p.parseBlock()

	var finallyBody []ast.Statement
	if p.curIs(token.FINALLY) {
		p.advance()
		finallyBody = p.parseBlock()
	}

	return ast.NewTryCatchFinally(line, tryBody, catchName, catchBody, finallyBody)
}

func (p *Parser) parseReturn() ast.Statement {
	line := p.advance().Line
	var value ast.Expression
	if !p.curIs(token.SEMICOLON) {
		value = p.parseExpression()
	}
	p.expect(token.SEMICOLON)
	return ast.NewReturn(line, value)
}

// ---------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

var compoundOps = map[token.Type]ast.CompoundAssignOp{
	token.PLUS_ASSIGN:    ast.CAAdd,
	token.MINUS_ASSIGN:   ast.CASub,
	token.STAR_ASSIGN:    ast.CAMul,
	token.SLASH_ASSIGN:   ast.CADiv,
	token.PERCENT_ASSIGN: ast.CAMod,
}

func isAssignTarget(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.Member:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseObjectOrLogic()

	if p.curIs(token.ASSIGN) {
		line := p.cur().Line
		if !isAssignTarget(left) {
			p.fail("invalid assignment target at line %d", line)
			return left
		}
		p.advance()
		value := p.parseAssignment()
		return ast.NewAssignment(line, left, value)
	}

	if op, ok := compoundOps[p.cur().Type]; ok {
		if !isAssignTarget(left) {
			// Not an admissible target: leave the compound-assign
			// lexeme unconsumed (§4.2).
			return left
		}
		line := p.cur().Line
		p.advance()
		value := p.parseAssignment()
		return ast.NewCompoundAssignment(line, left, op, value)
	}

	return left
}

func (p *Parser) parseObjectOrLogic() ast.Expression {
	if p.curIs(token.LBRACE) {
		return p.parseObjectLiteral()
	}
	return p.parseLogic()
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	line := p.advance().Line // consume '{'
	var props []ast.ObjectProperty
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		var key string
		switch p.cur().Type {
		case token.IDENT:
			key = p.advance().Literal
		case token.STRING:
			key = p.advance().Literal
		default:
			p.fail("expected property key at line %d, got %s", p.cur().Line, p.cur().Type)
			return ast.NewObjectLiteral(line, props)
		}
		var value ast.Expression
		if p.curIs(token.COLON) {
			p.advance()
			value = p.parseExpression()
		}
		props = append(props, ast.ObjectProperty{Key: key, Value: value})
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return ast.NewObjectLiteral(line, props)
}

func (p *Parser) parseLogic() ast.Expression {
	left := p.parseComparison()
	for p.curIs(token.AND_AND) || p.curIs(token.OR_OR) {
		line := p.cur().Line
		op := ast.OpAnd
		if p.cur().Type == token.OR_OR {
			op = ast.OpOr
		}
		p.advance()
		right := p.parseComparison()
		left = ast.NewBinary(line, left, op, right)
	}
	return left
}

var comparisonOps = map[token.Type]ast.BinaryOp{
	token.EQ_EQ:  ast.OpEq,
	token.NOT_EQ: ast.OpNe,
	token.LT:     ast.OpLt,
	token.LT_EQ:  ast.OpLe,
	token.GT:     ast.OpGt,
	token.GT_EQ:  ast.OpGe,
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for {
		op, ok := comparisonOps[p.cur().Type]
		if !ok {
			return left
		}
		line := p.cur().Line
		p.advance()
		right := p.parseAdditive()
		left = ast.NewBinary(line, left, op, right)
	}
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.curIs(token.PLUS) || p.curIs(token.MINUS) {
		line := p.cur().Line
		op := ast.OpAdd
		if p.cur().Type == token.MINUS {
			op = ast.OpSub
		}
		p.advance()
		right := p.parseMultiplicative()
		left = ast.NewBinary(line, left, op, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseCallMember()
	for p.curIs(token.STAR) || p.curIs(token.SLASH) || p.curIs(token.PERCENT) {
		line := p.cur().Line
		var op ast.BinaryOp
		switch p.cur().Type {
		case token.STAR:
			op = ast.OpMul
		case token.SLASH:
			op = ast.OpDiv
		default:
			op = ast.OpMod
		}
		p.advance()
		right := p.parseCallMember()
		left = ast.NewBinary(line, left, op, right)
	}
	return left
}

func (p *Parser) parseCallMember() ast.Expression {
	expr := p.parseMember()
	for p.curIs(token.LPAREN) {
		line := p.advance().Line
		args := p.parseArgs()
		p.expect(token.RPAREN)
		expr = ast.NewCall(line, expr, args)
	}
	return expr
}

func (p *Parser) parseArgs() []ast.Expression {
	var args []ast.Expression
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		args = append(args, p.parseExpression())
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	return args
}

func (p *Parser) parseMember() ast.Expression {
	expr := p.parseUnary()
	for {
		switch p.cur().Type {
		case token.DOT:
			line := p.advance().Line
			name := p.expect(token.IDENT).Literal
			prop := ast.NewIdentifier(line, name)
			expr = ast.NewMember(line, expr, prop, false)
		case token.LBRACK:
			line := p.advance().Line
			idx := p.parseExpression()
			p.expect(token.RBRACK)
			expr = ast.NewMember(line, expr, idx, true)
		default:
			return expr
		}
	}
}

func (p *Parser) parseUnary() ast.Expression {
	if p.curIs(token.BANG) {
		line := p.advance().Line
		value := p.parseUnary()
		return ast.NewUnary(line, value)
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return ast.NewNumericLiteral(tok.Line, parseFloatLiteral(tok.Literal))
	case token.STRING:
		p.advance()
		return ast.NewStringLiteral(tok.Line, tok.Literal)
	case token.TRUE:
		p.advance()
		return ast.NewBooleanLiteral(tok.Line, true)
	case token.FALSE:
		p.advance()
		return ast.NewBooleanLiteral(tok.Line, false)
	case token.NULL:
		p.advance()
		return ast.NewNullLiteral(tok.Line)
	case token.INC:
		// prefix increment: "++" IDENT
		p.advance()
		name := p.expect(token.IDENT)
		target := ast.NewIdentifier(name.Line, name.Literal)
		return ast.NewIncrement(tok.Line, target, true)
	case token.IDENT:
		p.advance()
		ident := ast.NewIdentifier(tok.Line, tok.Literal)
		if p.curIs(token.INC) {
			p.advance()
			return ast.NewIncrement(tok.Line, ident, false)
		}
		return ident
	case token.LBRACK:
		return p.parseArrayLiteral()
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	case token.AWAIT:
		p.advance()
		value := p.parseExpression()
		return ast.NewAwait(tok.Line, value)
	default:
		p.fail("unexpected token %s %q at line %d", tok.Type, tok.Literal, tok.Line)
		p.advance()
		return ast.NewNullLiteral(tok.Line)
	}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	line := p.advance().Line // consume '['
	var elems []ast.Expression
	for !p.curIs(token.RBRACK) && !p.curIs(token.EOF) {
		elems = append(elems, p.parseExpression())
		if p.curIs(token.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(token.RBRACK)
	return ast.NewArrayLiteral(line, elems)
}

// parseFloatLiteral converts a scanned number lexeme to float64. The
// lexer already guarantees the lexeme is well-formed (digits with at
// most one internal '.'), so this never fails in practice.
func parseFloatLiteral(lit string) float64 {
	var intPart, fracPart float64
	var fracDiv float64 = 1
	seenDot := false
	for _, r := range lit {
		if r == '.' {
			seenDot = true
			continue
		}
		d := float64(r - '0')
		if !seenDot {
			intPart = intPart*10 + d
		} else {
			fracDiv *= 10
			fracPart = fracPart*10 + d
		}
	}
	return intPart + fracPart/fracDiv
}
