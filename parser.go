// parser.go — recursive-descent parser for Kotoba.
//
// The grammar is LL(1) except for one spot: distinguishing an assignment
// from a bare expression statement needs a second token of lookahead
// (identifier followed by '='). Everything else is driven by the current
// token alone.
//
// Scope delimiters are structural, not mere separators:
//
//   - ','  continues the current scope with another statement
//   - ':'  after a block header (if cond:, while cond:, fn name(params):)
//     opens a child scope
//   - ';'  closes exactly one open scope; 'else' closes an if's then-scope
//     and opens its own ':'-delimited scope
//   - the outermost scope is closed by end of input; end of input inside
//     any other scope is a syntax error
//
// One asymmetry is deliberate and load-bearing: an inline statement must be
// followed by ',' before another statement may begin, but after a block
// statement the ',' is optional. A ',' never appears after the last
// statement of a scope.
//
// The whole delimiter discipline lives in two helpers, scopeBody (the
// statement-accumulation loop) and blockScope (':' + body + closing
// ';'/'else'), shared by if, while and fn.
//
// Operator precedence, loosest to tightest, each level left-associative:
// disjunction, conjunction, equality, comparison, modulo, addition,
// multiplication, unary, call/primary.
package kotoba

import "fmt"

// Parse tokenizes and parses a complete source text. It returns the root
// Program or the first *SyntaxError encountered.
func Parse(src string) (*Program, error) {
	p := &parser{toks: NewLexer(src).Scan()}
	prog, err := p.scopeBody(p.peek())
	if err != nil {
		return nil, err
	}
	switch tok := p.peek(); tok.Type {
	case EOF:
		return prog, nil
	case SEMICOLON:
		return nil, p.errAt(tok, "';' closes no open scope")
	default: // ELSE; scopeBody stops on nothing else
		return nil, p.errAt(tok, "'else' without a matching 'if'")
	}
}

type parser struct {
	toks []Token
	i    int
}

// ───────────────────────── token cursor helpers ─────────────────────────

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // the EOF token
	}
	return p.toks[p.i]
}

func (p *parser) peek2() Token {
	if p.i+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+1]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) advance() Token {
	tok := p.peek()
	if tok.Type != EOF {
		p.i++
	}
	return tok
}

func (p *parser) match(tt ...TokenType) bool {
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

// need consumes a token of type t or fails with "expected <t> <ctx>".
func (p *parser) need(t TokenType, ctx string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	found := p.peek()
	return Token{}, &SyntaxError{
		Msg:      fmt.Sprintf("expected %s %s, found %s", t, ctx, describe(found)),
		Expected: t.String(),
		Found:    describe(found),
		Line:     found.Line,
		Col:      found.Col,
	}
}

func (p *parser) errAt(tok Token, msg string) error {
	return &SyntaxError{Msg: msg, Found: describe(tok), Line: tok.Line, Col: tok.Col}
}

func describe(tok Token) string {
	switch tok.Type {
	case ID:
		return fmt.Sprintf("identifier '%s'", tok.Lexeme)
	case NUMBER, STRING, BOOLEAN:
		return fmt.Sprintf("%s %s", tok.Type, tok.Lexeme)
	case INVALID:
		return fmt.Sprintf("unrecognized input %q", tok.Lexeme)
	default:
		return tok.Type.String()
	}
}

// ─────────────────────── scopes & statements ────────────────────────────

// scopeBody accumulates statements for one scope level. It stops, without
// consuming, at ';', 'else' or end of input; the caller decides which of
// those legally closes the scope. open is the token that opened the scope,
// recorded on the Program for positions.
func (p *parser) scopeBody(open Token) (*Program, error) {
	prog := &Program{Tok: open}
	needStmt := false // a consumed ',' promises another statement
	for {
		switch tok := p.peek(); tok.Type {
		case SEMICOLON, ELSE, EOF:
			if needStmt {
				return nil, p.errAt(tok, fmt.Sprintf("expected a statement after ',', found %s", describe(tok)))
			}
			return prog, nil
		}
		needStmt = false
		st, isBlock, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, st)
		if p.match(COMMA) {
			needStmt = true
			continue
		}
		if !isBlock {
			// inline statements may only omit the ',' at end of scope
			switch tok := p.peek(); tok.Type {
			case SEMICOLON, ELSE, EOF:
			default:
				return nil, p.errAt(tok, fmt.Sprintf("expected ',' or end of scope after statement, found %s", describe(tok)))
			}
		}
	}
}

// blockScope parses ":" body and its closing token. With allowElse set, an
// 'else' may close the scope instead of ';'; the returned flag reports
// which one did. The closer is consumed either way.
func (p *parser) blockScope(what string, allowElse bool) (*Program, bool, error) {
	colon, err := p.need(COLON, "to open "+what+" body")
	if err != nil {
		return nil, false, err
	}
	body, err := p.scopeBody(colon)
	if err != nil {
		return nil, false, err
	}
	switch tok := p.peek(); tok.Type {
	case SEMICOLON:
		p.advance()
		return body, false, nil
	case ELSE:
		if allowElse {
			p.advance()
			return body, true, nil
		}
		return nil, false, p.errAt(tok, fmt.Sprintf("expected ';' to close %s body, found 'else'", what))
	default: // EOF
		return nil, false, p.errAt(tok, fmt.Sprintf("unterminated %s body: expected ';' before end of input", what))
	}
}

// statement parses one statement and reports whether it was a block
// statement (those make the trailing ',' optional).
func (p *parser) statement() (Stmt, bool, error) {
	switch p.peek().Type {
	case IF:
		st, err := p.ifStmt()
		return st, true, err
	case WHILE:
		st, err := p.whileStmt()
		return st, true, err
	case FN:
		st, err := p.fnStmt()
		return st, true, err
	case RET:
		tok := p.advance()
		x, err := p.expression()
		if err != nil {
			return nil, false, err
		}
		return &RetStmt{X: x, Tok: tok}, false, nil
	case NONLOCAL:
		p.advance()
		return p.assignStmt(true)
	case ID:
		if p.peek2().Type == ASSIGN {
			return p.assignStmt(false)
		}
	}
	x, err := p.expression()
	if err != nil {
		return nil, false, err
	}
	return &ExprStmt{X: x}, false, nil
}

func (p *parser) assignStmt(nonlocal bool) (Stmt, bool, error) {
	name, err := p.need(ID, "as assignment target")
	if err != nil {
		return nil, false, err
	}
	if _, err := p.need(ASSIGN, "in assignment"); err != nil {
		return nil, false, err
	}
	x, err := p.expression()
	if err != nil {
		return nil, false, err
	}
	return &AssignStmt{Nonlocal: nonlocal, Name: name.Lexeme, X: x, Tok: name}, false, nil
}

func (p *parser) ifStmt() (Stmt, error) {
	tok := p.advance() // 'if'
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, hasElse, err := p.blockScope("if", true)
	if err != nil {
		return nil, err
	}
	var els *Program
	if hasElse {
		els, _, err = p.blockScope("else", false)
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Cond: cond, Then: then, Else: els, Tok: tok}, nil
}

func (p *parser) whileStmt() (Stmt, error) {
	tok := p.advance() // 'while'
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, _, err := p.blockScope("while", false)
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body, Tok: tok}, nil
}

func (p *parser) fnStmt() (Stmt, error) {
	tok := p.advance() // 'fn'
	name, err := p.need(ID, "as function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LROUND, "to open parameter list"); err != nil {
		return nil, err
	}
	var params []string
	if p.peek().Type != RROUND {
		for {
			param, err := p.need(ID, "in parameter list")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Lexeme)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RROUND, "to close parameter list"); err != nil {
		return nil, err
	}
	body, _, err := p.blockScope("fn", false)
	if err != nil {
		return nil, err
	}
	return &FnStmt{Name: name.Lexeme, Params: params, Body: body, Tok: tok}, nil
}

// ─────────────────────────── expressions ────────────────────────────────

func (p *parser) expression() (Expr, error) { return p.disjunction() }

// binaryLevel parses one left-associative precedence level whose operands
// come from next.
func (p *parser) binaryLevel(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	lhs, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.prev()
		rhs, err := next()
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: op.Lexeme, Lhs: lhs, Rhs: rhs, Tok: op}
	}
	return lhs, nil
}

func (p *parser) disjunction() (Expr, error) {
	return p.binaryLevel(p.conjunction, OR)
}

func (p *parser) conjunction() (Expr, error) {
	return p.binaryLevel(p.equality, AND)
}

func (p *parser) equality() (Expr, error) {
	return p.binaryLevel(p.comparison, EQ, NEQ)
}

func (p *parser) comparison() (Expr, error) {
	return p.binaryLevel(p.modulo, GREATER, GREATER_EQ, LESS, LESS_EQ)
}

// modulo binds tighter than comparison but looser than addition; this is a
// quirk of the precedence cascade ("n % q == 0" means "(n % q) == 0" while
// "a + b % c" means "(a + b) % c").
func (p *parser) modulo() (Expr, error) {
	return p.binaryLevel(p.addition, MOD)
}

func (p *parser) addition() (Expr, error) {
	return p.binaryLevel(p.multiplication, PLUS, MINUS)
}

func (p *parser) multiplication() (Expr, error) {
	return p.binaryLevel(p.unary, MULT, DIV)
}

func (p *parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.prev()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op.Lexeme, X: x, Tok: op}, nil
	}
	return p.call()
}

// call parses a primary followed by any number of argument lists, so a
// call returning a function can be invoked immediately: f(x)(y).
func (p *parser) call() (Expr, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == LROUND {
		lparen := p.advance()
		var args []Expr
		if p.peek().Type != RROUND {
			for {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !p.match(COMMA) {
					break
				}
			}
		}
		if _, err := p.need(RROUND, "to close argument list"); err != nil {
			return nil, err
		}
		x = &CallExpr{Callee: x, Args: args, Tok: lparen}
	}
	return x, nil
}

func (p *parser) primary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.advance()
		return &NumberLit{Value: tok.Literal.(float64), Tok: tok}, nil
	case STRING:
		p.advance()
		return &StringLit{Value: tok.Literal.(string), Tok: tok}, nil
	case BOOLEAN:
		p.advance()
		return &BoolLit{Value: tok.Literal.(bool), Tok: tok}, nil
	case NIL:
		p.advance()
		return &NilLit{Tok: tok}, nil
	case ID:
		p.advance()
		return &Ident{Name: tok.Lexeme, Tok: tok}, nil
	case LROUND:
		p.advance()
		x, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, "to close grouping"); err != nil {
			return nil, err
		}
		return x, nil
	case INVALID:
		return nil, p.errAt(tok, fmt.Sprintf("unrecognized input %q", tok.Lexeme))
	default:
		return nil, p.errAt(tok, fmt.Sprintf("expected an expression, found %s", describe(tok)))
	}
}
