// lexer.go — tokenizer for Kotoba source text.
//
// The lexer is a total function over its input: it never fails. Characters
// that cannot begin a token are emitted as INVALID tokens carrying the
// offending text; the parser turns those into syntax errors with positions.
//
// Scanning rules:
//   - whitespace and line comments ("//" to end of line) are skipped
//   - numbers are decimal with an optional fractional part
//   - strings are double-quoted with \n \t \r \" \\ escapes
//   - true/false/nil lex as BOOLEAN/NIL literals, not identifiers
//   - if else while fn ret nonlocal and or are reserved keywords
//   - == != >= <= are matched greedily before = ! > <
package kotoba

import "strconv"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	INVALID

	// Scope delimiters & grouping
	COMMA     // "," continues the current scope
	COLON     // ":" opens a child scope
	SEMICOLON // ";" closes the current scope
	LROUND    // "("
	RROUND    // ")"

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	MOD
	ASSIGN // "="
	EQ     // "=="
	NEQ    // "!="
	LESS
	LESS_EQ
	GREATER
	GREATER_EQ
	BANG // "!"

	// Literals & identifiers
	ID
	NUMBER
	STRING
	BOOLEAN
	NIL

	// Keywords
	AND
	OR
	IF
	ELSE
	WHILE
	FN
	RET
	NONLOCAL
)

var tokenNames = map[TokenType]string{
	EOF: "end of input", INVALID: "invalid token",
	COMMA: "','", COLON: "':'", SEMICOLON: "';'",
	LROUND: "'('", RROUND: "')'",
	PLUS: "'+'", MINUS: "'-'", MULT: "'*'", DIV: "'/'", MOD: "'%'",
	ASSIGN: "'='", EQ: "'=='", NEQ: "'!='",
	LESS: "'<'", LESS_EQ: "'<='", GREATER: "'>'", GREATER_EQ: "'>='",
	BANG: "'!'",
	ID:   "identifier", NUMBER: "number", STRING: "string",
	BOOLEAN: "boolean", NIL: "'nil'",
	AND: "'and'", OR: "'or'", IF: "'if'", ELSE: "'else'", WHILE: "'while'",
	FN: "'fn'", RET: "'ret'", NONLOCAL: "'nonlocal'",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return "token(" + strconv.Itoa(int(tt)) + ")"
}

// Token is a lexical token with an optional literal value.
// Line is 1-based; Col is the 0-based column of the token's first byte.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // float64 for NUMBER, string for STRING, bool for BOOLEAN
	Line    int
	Col     int
}

var keywords = map[string]TokenType{
	"true":     BOOLEAN,
	"false":    BOOLEAN,
	"nil":      NIL,
	"and":      AND,
	"or":       OR,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"fn":       FN,
	"ret":      RET,
	"nonlocal": NONLOCAL,
}

// Lexer scans a Kotoba source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Tokenize is shorthand for NewLexer(src).Scan().
func Tokenize(src string) []Token {
	return NewLexer(src).Scan()
}

// Scan tokenizes the whole source. It is total: malformed input yields
// INVALID tokens rather than an error. The returned slice always ends with
// a single EOF token.
func (l *Lexer) Scan() []Token {
	for {
		l.skipBlanks()
		l.tokStartLine, l.tokStartCol = l.line, l.col
		ch, ok := l.advance()
		if !ok {
			break
		}
		switch ch {
		case ',':
			l.addToken(COMMA, nil)
		case ':':
			l.addToken(COLON, nil)
		case ';':
			l.addToken(SEMICOLON, nil)
		case '(':
			l.addToken(LROUND, nil)
		case ')':
			l.addToken(RROUND, nil)
		case '+':
			l.addToken(PLUS, nil)
		case '-':
			l.addToken(MINUS, nil)
		case '*':
			l.addToken(MULT, nil)
		case '/':
			l.addToken(DIV, nil) // "//" never reaches here; see skipBlanks
		case '%':
			l.addToken(MOD, nil)
		case '=':
			if l.matchByte('=') {
				l.addToken(EQ, nil)
			} else {
				l.addToken(ASSIGN, nil)
			}
		case '!':
			if l.matchByte('=') {
				l.addToken(NEQ, nil)
			} else {
				l.addToken(BANG, nil)
			}
		case '<':
			if l.matchByte('=') {
				l.addToken(LESS_EQ, nil)
			} else {
				l.addToken(LESS, nil)
			}
		case '>':
			if l.matchByte('=') {
				l.addToken(GREATER_EQ, nil)
			} else {
				l.addToken(GREATER, nil)
			}
		case '"':
			l.scanString()
		default:
			switch {
			case isDigit(ch):
				l.scanNumber()
			case isAlpha(ch):
				l.scanIdent()
			default:
				l.addToken(INVALID, nil)
			}
		}
	}
	l.tokStartLine, l.tokStartCol = l.line, l.col
	l.addToken(EOF, nil)
	return l.tokens
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

// matchByte consumes the next byte iff it equals want.
func (l *Lexer) matchByte(want byte) bool {
	if b, ok := l.peek(); ok && b == want {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	})
	l.start = l.cur
}

// skipBlanks consumes whitespace and line comments.
func (l *Lexer) skipBlanks() {
	for {
		ch, ok := l.peek()
		if !ok {
			break
		}
		switch ch {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.cur+1 < len(l.src) && l.src[l.cur+1] == '/' {
				for {
					b, ok := l.peek()
					if !ok || b == '\n' {
						break
					}
					l.advance()
				}
			} else {
				l.start = l.cur
				return
			}
		default:
			l.start = l.cur
			return
		}
	}
	l.start = l.cur
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// scanString decodes a double-quoted string literal. An unterminated string
// or unknown escape sequence produces an INVALID token spanning the raw text.
func (l *Lexer) scanString() {
	var out []byte
	for {
		ch, ok := l.advance()
		if !ok || ch == '\n' {
			l.addToken(INVALID, nil) // unterminated string literal
			return
		}
		if ch == '"' {
			l.addToken(STRING, string(out))
			return
		}
		if ch != '\\' {
			out = append(out, ch)
			continue
		}
		esc, ok := l.advance()
		if !ok {
			l.addToken(INVALID, nil)
			return
		}
		switch esc {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		default:
			// bound the INVALID token at the closing quote or line end
			for {
				b, ok := l.peek()
				if !ok || b == '"' || b == '\n' {
					break
				}
				l.advance()
			}
			l.matchByte('"')
			l.addToken(INVALID, nil)
			return
		}
	}
}

// scanNumber matches digits with an optional fractional part. The leading
// digit has already been consumed. A trailing '.' without a following digit
// is left for the next token (it will surface as an INVALID token).
func (l *Lexer) scanNumber() {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
	if b, ok := l.peek(); ok && b == '.' {
		if l.cur+1 < len(l.src) && isDigit(l.src[l.cur+1]) {
			l.advance() // '.'
			for {
				b, ok := l.peek()
				if !ok || !isDigit(b) {
					break
				}
				l.advance()
			}
		}
	}
	f, err := strconv.ParseFloat(l.src[l.start:l.cur], 64)
	if err != nil {
		l.addToken(INVALID, nil)
		return
	}
	l.addToken(NUMBER, f)
}

// scanIdent matches an identifier or keyword. The leading byte has already
// been consumed.
func (l *Lexer) scanIdent() {
	for {
		b, ok := l.peek()
		if !ok || !isAlphaNum(b) {
			break
		}
		l.advance()
	}
	word := l.src[l.start:l.cur]
	if kw, ok := keywords[word]; ok {
		if kw == BOOLEAN {
			l.addToken(BOOLEAN, word == "true")
		} else {
			l.addToken(kw, nil)
		}
		return
	}
	l.addToken(ID, nil)
}
