// errors.go — structured errors and caret-snippet rendering.
//
// Two error tiers cross the host boundary:
//
//   - *SyntaxError from parsing (the lexer itself never fails; it emits
//     INVALID tokens that the parser reports here), carrying what was
//     expected, what was found, and the offending token's position.
//   - *RuntimeError from evaluation, carrying a Kind that classifies the
//     failure (type error, undefined variable, arity mismatch, ...).
//
// WrapErrorWithName turns either of them into a readable, Python-style
// snippet with a caret pointing at the offending column:
//
//	SYNTAX ERROR in <main> at 3:12: expected ';' to close while body, found end of input
//
//	   2 | while x < 10:
//	   3 |     x = x + 1
//	     |            ^
//
// Positions are 1-based lines and 0-based columns internally; rendering is
// 1-based for both. Other error values pass through unchanged.
package kotoba

import (
	"fmt"
	"strings"
)

// SyntaxError reports the first point at which parsing failed. Parsing
// stops at the first error; there is no recovery or resynchronization.
type SyntaxError struct {
	Msg      string
	Expected string // description of the wanted construct ("';'", "an expression")
	Found    string // description of the offending token
	Line     int    // 1-based
	Col      int    // 0-based
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("SYNTAX ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// RuntimeErrorKind classifies evaluation failures.
type RuntimeErrorKind int

const (
	ErrType RuntimeErrorKind = iota
	ErrUndefinedVariable
	ErrArity
	ErrNotCallable
	ErrTopLevelReturn
	ErrHostAbort
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case ErrType:
		return "type error"
	case ErrUndefinedVariable:
		return "undefined variable"
	case ErrArity:
		return "arity error"
	case ErrNotCallable:
		return "not callable"
	case ErrTopLevelReturn:
		return "top-level return"
	case ErrHostAbort:
		return "host abort"
	default:
		return "runtime error"
	}
}

// RuntimeError is the single evaluation-failure type. Evaluation stops at
// the first one and unwinds to the host boundary; the language has no
// try/catch construct.
type RuntimeError struct {
	Kind RuntimeErrorKind
	Msg  string
	Line int // 1-based
	Col  int // 0-based
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// WrapErrorWithSource augments err with a caret-annotated snippet of src.
// It recognizes *SyntaxError and *RuntimeError; anything else is returned
// unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source label (such as
// "<main>" or a file name) included in the header. The returned error
// unwraps to the original *SyntaxError or *RuntimeError, so hosts keep
// structured access via errors.As.
func WrapErrorWithName(err error, srcName, src string) error {
	switch e := err.(type) {
	case *SyntaxError:
		return &snippetError{msg: snippet(src, "SYNTAX ERROR", srcName, e.Line, e.Col+1, e.Msg), err: err}
	case *RuntimeError:
		return &snippetError{msg: snippet(src, "RUNTIME ERROR", srcName, e.Line, e.Col+1, e.Msg), err: err}
	default:
		return err
	}
}

type snippetError struct {
	msg string
	err error
}

func (e *snippetError) Error() string { return e.msg }
func (e *snippetError) Unwrap() error { return e.err }

// snippet builds the caret rendering: a header, up to one line of context
// on either side, and a caret under the 1-based column. Out-of-range
// coordinates are clamped so rendering never fails.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
