// lexer_test.go
package kotoba

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// --- helpers ---------------------------------------------------------------

func scanTypes(src string) []TokenType {
	toks := Tokenize(src)
	out := make([]TokenType, 0, len(toks))
	for _, tok := range toks {
		if tok.Type == EOF {
			break
		}
		out = append(out, tok.Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) {
	t.Helper()
	if diff := cmp.Diff(want, scanTypes(src)); diff != "" {
		t.Fatalf("token types mismatch for %q (-want +got):\n%s", src, diff)
	}
}

// --- tests -----------------------------------------------------------------

func Test_Lexer_ScopeDelimiters_And_Operators(t *testing.T) {
	wantTypes(t, `x = 1, if x > 0: print(x); ret x`, []TokenType{
		ID, ASSIGN, NUMBER, COMMA,
		IF, ID, GREATER, NUMBER, COLON,
		ID, LROUND, ID, RROUND, SEMICOLON,
		RET, ID,
	})
}

func Test_Lexer_GreedyMultiCharOperators(t *testing.T) {
	wantTypes(t, `== != >= <= = ! > <`, []TokenType{
		EQ, NEQ, GREATER_EQ, LESS_EQ, ASSIGN, BANG, GREATER, LESS,
	})
	// no space: still four two-char tokens
	wantTypes(t, `a==b!=c>=d<=e`, []TokenType{
		ID, EQ, ID, NEQ, ID, GREATER_EQ, ID, LESS_EQ, ID,
	})
}

func Test_Lexer_Keywords_Are_Reserved(t *testing.T) {
	wantTypes(t, `if else while fn ret nonlocal and or`, []TokenType{
		IF, ELSE, WHILE, FN, RET, NONLOCAL, AND, OR,
	})
	// identifiers that merely contain keyword text stay identifiers
	wantTypes(t, `iffy gift retro android`, []TokenType{ID, ID, ID, ID})
}

func Test_Lexer_Literals(t *testing.T) {
	toks := Tokenize(`42 123.125 true false nil "hi"`)
	want := []Token{
		{Type: NUMBER, Lexeme: "42", Literal: 42.0, Line: 1, Col: 0},
		{Type: NUMBER, Lexeme: "123.125", Literal: 123.125, Line: 1, Col: 3},
		{Type: BOOLEAN, Lexeme: "true", Literal: true, Line: 1, Col: 11},
		{Type: BOOLEAN, Lexeme: "false", Literal: false, Line: 1, Col: 16},
		{Type: NIL, Lexeme: "nil", Line: 1, Col: 22},
		{Type: STRING, Lexeme: `"hi"`, Literal: "hi", Line: 1, Col: 26},
		{Type: EOF, Line: 1, Col: 30},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func Test_Lexer_Number_TrailingDot_Stays_Separate(t *testing.T) {
	// "1." is a number followed by a stray dot, matching the grammar's
	// "optional fractional part requires a digit" rule
	wantTypes(t, `1. 2`, []TokenType{NUMBER, INVALID, NUMBER})
}

func Test_Lexer_String_Escapes(t *testing.T) {
	toks := Tokenize(`"a\nb\t\"c\"\\"`)
	if toks[0].Type != STRING {
		t.Fatalf("want STRING, got %v", toks[0].Type)
	}
	if got, want := toks[0].Literal.(string), "a\nb\t\"c\"\\"; got != want {
		t.Fatalf("decoded literal mismatch: want %q, got %q", want, got)
	}
}

func Test_Lexer_String_Unterminated_Is_Invalid(t *testing.T) {
	wantTypes(t, `"abc`, []TokenType{INVALID})
	wantTypes(t, "\"abc\nx", []TokenType{INVALID, ID})
}

func Test_Lexer_String_UnknownEscape_Is_Invalid(t *testing.T) {
	wantTypes(t, `"a\qb" 1`, []TokenType{INVALID, NUMBER})
}

func Test_Lexer_Comments_Skipped(t *testing.T) {
	wantTypes(t, "x = 1 // trailing comment\n// whole line\ny = 2", []TokenType{
		ID, ASSIGN, NUMBER, ID, ASSIGN, NUMBER,
	})
	// a single slash is still the division operator
	wantTypes(t, `6 / 2`, []TokenType{NUMBER, DIV, NUMBER})
}

func Test_Lexer_Unrecognized_Char_Is_Invalid_Not_Fatal(t *testing.T) {
	toks := Tokenize("x @ y")
	want := []TokenType{ID, INVALID, ID}
	if diff := cmp.Diff(want, scanTypes("x @ y")); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if toks[1].Lexeme != "@" {
		t.Fatalf("INVALID token should carry the offending text, got %q", toks[1].Lexeme)
	}
}

func Test_Lexer_Positions(t *testing.T) {
	toks := Tokenize("x = 1,\n  ret x")
	// line is 1-based, col is 0-based
	checks := []struct {
		i         int
		line, col int
	}{
		{0, 1, 0}, // x
		{1, 1, 2}, // =
		{2, 1, 4}, // 1
		{3, 1, 5}, // ,
		{4, 2, 2}, // ret
		{5, 2, 6}, // x
	}
	for _, c := range checks {
		if toks[c.i].Line != c.line || toks[c.i].Col != c.col {
			t.Fatalf("token %d (%s): want %d:%d, got %d:%d",
				c.i, toks[c.i].Lexeme, c.line, c.col, toks[c.i].Line, toks[c.i].Col)
		}
	}
}

func Test_Lexer_Always_Ends_With_EOF(t *testing.T) {
	for _, src := range []string{"", "   ", "// only a comment", "x"} {
		toks := Tokenize(src)
		if len(toks) == 0 || toks[len(toks)-1].Type != EOF {
			t.Fatalf("source %q: token stream must end with EOF, got %v", src, toks)
		}
	}
}
