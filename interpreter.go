// interpreter.go — public API surface for the Kotoba interpreter.
//
// This file holds everything an embedding host touches:
//
//   - the runtime value model (Value, ValueTag, constructors, Fun)
//   - environments (Env) forming the lexical scope chain
//   - the Interpreter with its entry points (EvalSource ephemeral,
//     EvalPersistentSource persistent, RegisterNative, SetOutput,
//     SetStepHook)
//
// EXECUTION & SCOPING
// -------------------
// Programs evaluate in environments that form a lexical chain via parent
// links. The Interpreter owns two well-known frames:
//
//   - Core:   host natives (print and friends), parent of Global
//   - Global: persistent program state
//
// EvalSource runs in a fresh child of Global, so bindings made by the
// program are discarded afterwards; EvalPersistentSource runs in Global
// itself, so bindings survive across calls (REPL-style hosts want this).
//
// Evaluation is single-threaded and synchronous. A single Interpreter must
// not be shared across goroutines; independent evaluations need independent
// Interpreter instances so frame chains are never shared.
//
// ERRORS
// ------
// Eval* methods return (Value, error). Failures are *SyntaxError or
// *RuntimeError wrapped with a caret-style source snippet (errors.go). The
// host abort hook (SetStepHook) surfaces as a RuntimeError of kind
// ErrHostAbort, checked between statement evaluations.
package kotoba

import (
	"io"
	"os"
	"strconv"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTNil    ValueTag = iota // nil (no payload)
	VTBool                   // bool
	VTNumber                 // float64
	VTString                 // string
	VTFun                    // *Fun (closure; native or user-defined)
)

func (t ValueTag) String() string {
	switch t {
	case VTNil:
		return "nil"
	case VTBool:
		return "boolean"
	case VTNumber:
		return "number"
	case VTString:
		return "string"
	case VTFun:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the universal runtime carrier. Tag determines which Go type
// Data holds (see ValueTag). Values are immutable; variables change only
// by re-binding a name in an environment frame.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Nil is the singleton nil Value.
var Nil = Value{Tag: VTNil}

// Primitive constructors.
func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value { return Value{Tag: VTNumber, Data: f} }
func Str(s string) Value  { return Value{Tag: VTString, Data: s} }

// FunVal wraps *Fun into a Value.
func FunVal(f *Fun) Value { return Value{Tag: VTFun, Data: f} }

// String renders a debug representation (strings are quoted; the print
// builtin renders strings verbatim instead).
func (v Value) String() string {
	switch v.Tag {
	case VTNil:
		return "nil"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTNumber:
		return strconv.FormatFloat(v.Data.(float64), 'f', -1, 64)
	case VTString:
		return strconv.Quote(v.Data.(string))
	case VTFun:
		return "<fn " + v.Data.(*Fun).Name + ">"
	default:
		return "<unknown>"
	}
}

// Equal compares two values by kind, then by payload. Cross-kind
// comparisons are always unequal, never an error. Functions compare by
// identity.
func (v Value) Equal(w Value) bool {
	if v.Tag != w.Tag {
		return false
	}
	switch v.Tag {
	case VTNil:
		return true
	case VTBool:
		return v.Data.(bool) == w.Data.(bool)
	case VTNumber:
		return v.Data.(float64) == w.Data.(float64)
	case VTString:
		return v.Data.(string) == w.Data.(string)
	case VTFun:
		return v.Data.(*Fun) == w.Data.(*Fun)
	default:
		return false
	}
}

// Fun is a function value: a closure over the frame that was current at
// its declaration, or a registered host native (NativeName non-empty, Body
// nil). The body AST is shared and read-only.
type Fun struct {
	Name       string
	Params     []string
	Body       *Program
	Env        *Env   // captured frame; nil for natives (they close over Core)
	NativeName string // non-empty for registered natives
}

// NativeImpl is the implementation signature for host natives. Arguments
// arrive fully evaluated; the returned error, if any, should be a
// *RuntimeError (the call site fills in the source position).
type NativeImpl func(ip *Interpreter, args []Value) (Value, error)

// Env is one frame of the scope chain: bindings plus a link to the
// lexically enclosing frame. Frames are created on entry to any block body
// (if branch, while iteration, fn call) and dropped when it completes,
// unless a closure captured them.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name in this frame, shadowing any enclosing binding. Plain
// (non-nonlocal) assignment and parameter binding both land here.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// SetNonlocal walks outward from this frame and re-binds name in the
// nearest frame that already defines it. It reports false when no frame
// does; nonlocal assignment never creates a binding.
func (e *Env) SetNonlocal(name string, v Value) bool {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.table[name]; ok {
			f.table[name] = v
			return true
		}
	}
	return false
}

// Get retrieves the nearest visible binding for name.
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Interpreter evaluates Kotoba programs.
type Interpreter struct {
	Global *Env // persistent program environment
	Core   *Env // host natives; parent of Global

	native   map[string]NativeImpl
	out      io.Writer
	stepHook func() error
}

// NewInterpreter builds a ready-to-use engine: Core populated with the
// standard natives (runtime.go), Global an empty child of Core, output on
// stdout.
func NewInterpreter() *Interpreter {
	ip := &Interpreter{
		native: make(map[string]NativeImpl),
		out:    os.Stdout,
	}
	ip.Core = NewEnv(nil)
	ip.Global = NewEnv(ip.Core)
	ip.initCore()
	return ip
}

// SetOutput redirects the print builtin. Tests and embedding hosts use
// this to capture program output.
func (ip *Interpreter) SetOutput(w io.Writer) { ip.out = w }

// SetStepHook installs a host budget check, consulted between statement
// evaluations. A non-nil return aborts the run with a RuntimeError of kind
// ErrHostAbort carrying the hook's message.
func (ip *Interpreter) SetStepHook(h func() error) { ip.stepHook = h }

// RegisterNative installs a host primitive into Core as a first-class
// function value. Natives obey the same NotCallable/ArityError discipline
// as user functions.
func (ip *Interpreter) RegisterNative(name string, params []string, impl NativeImpl) {
	ip.native[name] = impl
	ip.Core.Define(name, FunVal(&Fun{
		Name:       name,
		Params:     params,
		NativeName: name,
	}))
}

// EvalSource parses and evaluates source in a fresh child of Global.
// Bindings made by the program land in that throwaway child; Global is
// only changed if the program mutates it via nonlocal assignment. The
// result is the value of the last top-level statement.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	return ip.run(src, "<main>", NewEnv(ip.Global))
}

// EvalPersistentSource parses and evaluates source in Global itself, so
// top-level bindings persist across calls.
func (ip *Interpreter) EvalPersistentSource(src string) (Value, error) {
	return ip.run(src, "<repl>", ip.Global)
}

func (ip *Interpreter) run(src, name string, env *Env) (Value, error) {
	prog, err := Parse(src)
	if err != nil {
		return Nil, WrapErrorWithName(err, name, src)
	}
	ev := &evaluator{ip: ip}
	v, fl, err := ev.program(prog, env)
	if err != nil {
		return Nil, WrapErrorWithName(err, name, src)
	}
	if fl == flowReturn {
		rte := &RuntimeError{
			Kind: ErrTopLevelReturn,
			Msg:  "'ret' outside of a function",
			Line: ev.retLine,
			Col:  ev.retCol,
		}
		return Nil, WrapErrorWithName(rte, name, src)
	}
	return v, nil
}
