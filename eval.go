// eval.go — tree-walking evaluator.
//
// 'ret' is modeled as an explicit flow flag threaded through every
// statement evaluation, never as a panic: program/stmt return (Value,
// flow, error) and a flowReturn result propagates outward until the
// nearest enclosing function call consumes it. A flowReturn that reaches
// the top level is a TopLevelReturn runtime error (interpreter.go).
//
// Expressions cannot produce a ret themselves — calls swallow returns from
// the called body — so expr returns plain (Value, error).
package kotoba

import (
	"fmt"
	"math"
)

// flow describes how a statement finished: normally or via ret.
type flow int

const (
	flowNormal flow = iota
	flowReturn
)

type evaluator struct {
	ip *Interpreter

	// position of the pending ret while a flowReturn unwinds
	retLine, retCol int
}

// program evaluates statements in order in the given frame. Its value is
// the last statement's value, or the ret value if one fires. Callers own
// frame creation: if branches, while iterations and fn calls pass a fresh
// child; the top level passes its root frame directly.
func (ev *evaluator) program(prog *Program, env *Env) (Value, flow, error) {
	last := Nil
	for _, st := range prog.Stmts {
		if ev.ip.stepHook != nil {
			if err := ev.ip.stepHook(); err != nil {
				line, col := st.Pos()
				return Nil, flowNormal, &RuntimeError{Kind: ErrHostAbort, Msg: err.Error(), Line: line, Col: col}
			}
		}
		v, fl, err := ev.stmt(st, env)
		if err != nil {
			return Nil, flowNormal, err
		}
		if fl == flowReturn {
			return v, flowReturn, nil
		}
		last = v
	}
	return last, flowNormal, nil
}

func (ev *evaluator) stmt(st Stmt, env *Env) (Value, flow, error) {
	switch s := st.(type) {
	case *ExprStmt:
		v, err := ev.expr(s.X, env)
		return v, flowNormal, err

	case *AssignStmt:
		v, err := ev.expr(s.X, env)
		if err != nil {
			return Nil, flowNormal, err
		}
		if s.Nonlocal {
			if !env.SetNonlocal(s.Name, v) {
				return Nil, flowNormal, ev.errAt(st, ErrUndefinedVariable,
					"nonlocal assignment to undefined variable '%s'", s.Name)
			}
		} else {
			env.Define(s.Name, v)
		}
		return Nil, flowNormal, nil

	case *RetStmt:
		v, err := ev.expr(s.X, env)
		if err != nil {
			return Nil, flowNormal, err
		}
		ev.retLine, ev.retCol = s.Tok.Line, s.Tok.Col
		return v, flowReturn, nil

	case *IfStmt:
		c, err := ev.condition(s.Cond, env, "if")
		if err != nil {
			return Nil, flowNormal, err
		}
		if c {
			return ev.program(s.Then, NewEnv(env))
		}
		if s.Else != nil {
			return ev.program(s.Else, NewEnv(env))
		}
		return Nil, flowNormal, nil

	case *WhileStmt:
		for {
			c, err := ev.condition(s.Cond, env, "while")
			if err != nil {
				return Nil, flowNormal, err
			}
			if !c {
				return Nil, flowNormal, nil
			}
			// fresh frame per iteration: body-locals never persist
			v, fl, err := ev.program(s.Body, NewEnv(env))
			if err != nil {
				return Nil, flowNormal, err
			}
			if fl == flowReturn {
				return v, flowReturn, nil
			}
		}

	case *FnStmt:
		env.Define(s.Name, FunVal(&Fun{
			Name:   s.Name,
			Params: s.Params,
			Body:   s.Body,
			Env:    env, // capture the declaring frame; enables recursion
		}))
		return Nil, flowNormal, nil

	default:
		return Nil, flowNormal, ev.errAt(st, ErrType, "unknown statement node %T", st)
	}
}

// condition evaluates an if/while condition, which must be a boolean.
func (ev *evaluator) condition(x Expr, env *Env, what string) (bool, error) {
	v, err := ev.expr(x, env)
	if err != nil {
		return false, err
	}
	if v.Tag != VTBool {
		return false, ev.errAt(x, ErrType, "%s condition must be a boolean, got %s", what, v.Tag)
	}
	return v.Data.(bool), nil
}

func (ev *evaluator) expr(x Expr, env *Env) (Value, error) {
	switch e := x.(type) {
	case *NumberLit:
		return Num(e.Value), nil
	case *StringLit:
		return Str(e.Value), nil
	case *BoolLit:
		return Bool(e.Value), nil
	case *NilLit:
		return Nil, nil

	case *Ident:
		v, ok := env.Get(e.Name)
		if !ok {
			return Nil, ev.errAt(e, ErrUndefinedVariable, "undefined variable '%s'", e.Name)
		}
		return v, nil

	case *UnaryExpr:
		return ev.unary(e, env)

	case *BinaryExpr:
		return ev.binary(e, env)

	case *CallExpr:
		return ev.call(e, env)

	default:
		return Nil, ev.errAt(x, ErrType, "unknown expression node %T", x)
	}
}

func (ev *evaluator) unary(e *UnaryExpr, env *Env) (Value, error) {
	v, err := ev.expr(e.X, env)
	if err != nil {
		return Nil, err
	}
	switch e.Op {
	case "-":
		if v.Tag != VTNumber {
			return Nil, ev.errAt(e, ErrType, "unary '-' requires a number operand, got %s", v.Tag)
		}
		return Num(-v.Data.(float64)), nil
	case "!":
		if v.Tag != VTBool {
			return Nil, ev.errAt(e, ErrType, "unary '!' requires a boolean operand, got %s", v.Tag)
		}
		return Bool(!v.Data.(bool)), nil
	default:
		return Nil, ev.errAt(e, ErrType, "unknown unary operator '%s'", e.Op)
	}
}

func (ev *evaluator) binary(e *BinaryExpr, env *Env) (Value, error) {
	// and/or short-circuit: the right operand may never be evaluated
	if e.Op == "and" || e.Op == "or" {
		return ev.logical(e, env)
	}

	lhs, err := ev.expr(e.Lhs, env)
	if err != nil {
		return Nil, err
	}
	rhs, err := ev.expr(e.Rhs, env)
	if err != nil {
		return Nil, err
	}

	switch e.Op {
	case "==":
		return Bool(lhs.Equal(rhs)), nil
	case "!=":
		return Bool(!lhs.Equal(rhs)), nil
	}

	// the remaining operators are defined on numbers only
	if lhs.Tag != VTNumber || rhs.Tag != VTNumber {
		return Nil, ev.errAt(e, ErrType, "operator '%s' requires number operands, got %s and %s",
			e.Op, lhs.Tag, rhs.Tag)
	}
	a, b := lhs.Data.(float64), rhs.Data.(float64)
	switch e.Op {
	case "+":
		return Num(a + b), nil
	case "-":
		return Num(a - b), nil
	case "*":
		return Num(a * b), nil
	case "/":
		return Num(a / b), nil
	case "%":
		return Num(math.Mod(a, b)), nil
	case ">":
		return Bool(a > b), nil
	case ">=":
		return Bool(a >= b), nil
	case "<":
		return Bool(a < b), nil
	case "<=":
		return Bool(a <= b), nil
	default:
		return Nil, ev.errAt(e, ErrType, "unknown operator '%s'", e.Op)
	}
}

func (ev *evaluator) logical(e *BinaryExpr, env *Env) (Value, error) {
	lhs, err := ev.expr(e.Lhs, env)
	if err != nil {
		return Nil, err
	}
	if lhs.Tag != VTBool {
		return Nil, ev.errAt(e, ErrType, "operator '%s' requires a boolean left operand, got %s",
			e.Op, lhs.Tag)
	}
	l := lhs.Data.(bool)
	if e.Op == "and" && !l {
		return Bool(false), nil
	}
	if e.Op == "or" && l {
		return Bool(true), nil
	}
	rhs, err := ev.expr(e.Rhs, env)
	if err != nil {
		return Nil, err
	}
	if rhs.Tag != VTBool {
		return Nil, ev.errAt(e, ErrType, "operator '%s' requires a boolean right operand, got %s",
			e.Op, rhs.Tag)
	}
	return rhs, nil
}

func (ev *evaluator) call(e *CallExpr, env *Env) (Value, error) {
	callee, err := ev.expr(e.Callee, env)
	if err != nil {
		return Nil, err
	}
	if callee.Tag != VTFun {
		return Nil, ev.errAt(e.Callee, ErrNotCallable, "%s is not callable", callee.Tag)
	}
	f := callee.Data.(*Fun)

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := ev.expr(a, env)
		if err != nil {
			return Nil, err
		}
		args = append(args, v)
	}
	if len(args) != len(f.Params) {
		return Nil, &RuntimeError{
			Kind: ErrArity,
			Msg: fmt.Sprintf("function '%s' expects %d arguments, got %d",
				f.Name, len(f.Params), len(args)),
			Line: e.Tok.Line,
			Col:  e.Tok.Col,
		}
	}

	if f.NativeName != "" {
		v, err := ev.ip.native[f.NativeName](ev.ip, args)
		if err != nil {
			if rte, ok := err.(*RuntimeError); ok && rte.Line == 0 {
				rte.Line, rte.Col = e.Tok.Line, e.Tok.Col
			}
			return Nil, err
		}
		return v, nil
	}

	frame := NewEnv(f.Env)
	for i, p := range f.Params {
		frame.Define(p, args[i])
	}
	v, fl, err := ev.program(f.Body, frame)
	if err != nil {
		return Nil, err
	}
	if fl == flowReturn {
		return v, nil
	}
	// without an explicit ret a call yields nil, never the body's
	// trailing expression value
	return Nil, nil
}

func (ev *evaluator) errAt(n Node, kind RuntimeErrorKind, format string, args ...interface{}) error {
	line, col := n.Pos()
	return &RuntimeError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Line: line,
		Col:  col,
	}
}
