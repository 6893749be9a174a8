// errors_test.go
package kotoba

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_Errors_SyntaxSnippet_With_Context(t *testing.T) {
	ip := NewInterpreter()
	_, err := ip.EvalSource("a = 1,\nb = @,\nc = 2")
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	want := "SYNTAX ERROR in <main> at 2:5: unrecognized input \"@\"\n" +
		"\n" +
		"   1 | a = 1,\n" +
		"   2 | b = @,\n" +
		"     |     ^\n" +
		"   3 | c = 2\n"
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Fatalf("snippet mismatch (-want +got):\n%s", diff)
	}
}

func Test_Errors_RuntimeSnippet_Single_Line(t *testing.T) {
	ip := NewInterpreter()
	_, err := ip.EvalSource(`1 + true`)
	if err == nil {
		t.Fatal("expected a runtime error")
	}
	want := "RUNTIME ERROR in <main> at 1:3: operator '+' requires number operands, got number and boolean\n" +
		"\n" +
		"   1 | 1 + true\n" +
		"     |   ^\n"
	if diff := cmp.Diff(want, err.Error()); diff != "" {
		t.Fatalf("snippet mismatch (-want +got):\n%s", diff)
	}
}

func Test_Errors_Wrapped_Errors_Stay_Structured(t *testing.T) {
	ip := NewInterpreter()

	_, err := ip.EvalSource(`x = 1 y`)
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("caret wrapping must unwrap to *SyntaxError, got %T", err)
	}
	if se.Line != 1 || se.Col != 6 {
		t.Fatalf("want position 1:6, got %d:%d", se.Line, se.Col)
	}

	_, err = ip.EvalSource(`missing`)
	var rte *RuntimeError
	if !errors.As(err, &rte) {
		t.Fatalf("caret wrapping must unwrap to *RuntimeError, got %T", err)
	}
	if rte.Kind != ErrUndefinedVariable {
		t.Fatalf("want %s, got %s", ErrUndefinedVariable, rte.Kind)
	}
}

func Test_Errors_WrapErrorWithSource_Passes_Foreign_Errors_Through(t *testing.T) {
	plain := errors.New("not one of ours")
	if got := WrapErrorWithSource(plain, "x = 1"); got != plain {
		t.Fatalf("foreign errors must pass through unchanged, got %v", got)
	}
}

func Test_Errors_Snippet_Clamps_Out_Of_Range_Positions(t *testing.T) {
	err := &RuntimeError{Kind: ErrType, Msg: "boom", Line: 99, Col: 99}
	wrapped := WrapErrorWithSource(err, "only line")
	// rendering must not panic and must still carry the message
	if msg := wrapped.Error(); msg == "" {
		t.Fatal("empty rendering")
	}
}

func Test_Errors_Kind_Strings(t *testing.T) {
	cases := map[RuntimeErrorKind]string{
		ErrType:              "type error",
		ErrUndefinedVariable: "undefined variable",
		ErrArity:             "arity error",
		ErrNotCallable:       "not callable",
		ErrTopLevelReturn:    "top-level return",
		ErrHostAbort:         "host abort",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("kind %d: want %q, got %q", kind, want, got)
		}
	}
}
