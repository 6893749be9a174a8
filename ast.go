// ast.go — typed AST for Kotoba.
//
// The tree is the stable surface between the parser and any consumer: the
// evaluator walks it, the formatter in printer.go renders it, and later
// analysis passes can traverse it without touching parser internals. Every
// node keeps the token that introduced it, so diagnostics can always point
// at a source position.
package kotoba

// Node is implemented by every AST node.
type Node interface {
	// Pos reports the 1-based line and 0-based column of the token that
	// introduced the node.
	Pos() (line, col int)
}

// Stmt is a statement node. Inline statements (assignment, ret, bare
// expression) and block statements (if, while, fn) both satisfy it.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is an ordered sequence of statements belonging to one scope
// level. Block statements carry a nested Program as their body; the
// outermost Program is the whole translation unit.
type Program struct {
	Stmts []Stmt
	Tok   Token // token that opened the scope (':' or the first token of input)
}

func (p *Program) Pos() (int, int) { return p.Tok.Line, p.Tok.Col }

// ExprStmt is a bare expression in statement position.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) Pos() (int, int) { return s.X.Pos() }
func (s *ExprStmt) stmtNode()       {}

// AssignStmt binds Name to the value of X. With Nonlocal set it mutates the
// nearest enclosing binding instead of declaring a local one.
type AssignStmt struct {
	Nonlocal bool
	Name     string
	X        Expr
	Tok      Token // the identifier token
}

func (s *AssignStmt) Pos() (int, int) { return s.Tok.Line, s.Tok.Col }
func (s *AssignStmt) stmtNode()       {}

// RetStmt transfers control (and X's value) to the nearest enclosing call.
type RetStmt struct {
	X   Expr
	Tok Token // the 'ret' keyword
}

func (s *RetStmt) Pos() (int, int) { return s.Tok.Line, s.Tok.Col }
func (s *RetStmt) stmtNode()       {}

// IfStmt evaluates exactly one branch. Else is nil when absent.
type IfStmt struct {
	Cond Expr
	Then *Program
	Else *Program
	Tok  Token // the 'if' keyword
}

func (s *IfStmt) Pos() (int, int) { return s.Tok.Line, s.Tok.Col }
func (s *IfStmt) stmtNode()       {}

// WhileStmt evaluates Body while Cond holds.
type WhileStmt struct {
	Cond Expr
	Body *Program
	Tok  Token // the 'while' keyword
}

func (s *WhileStmt) Pos() (int, int) { return s.Tok.Line, s.Tok.Col }
func (s *WhileStmt) stmtNode()       {}

// FnStmt declares a named function closing over the scope it appears in.
type FnStmt struct {
	Name   string
	Params []string
	Body   *Program
	Tok    Token // the 'fn' keyword
}

func (s *FnStmt) Pos() (int, int) { return s.Tok.Line, s.Tok.Col }
func (s *FnStmt) stmtNode()       {}

// BinaryExpr applies Op ("+", "==", "and", ...) to Lhs and Rhs.
type BinaryExpr struct {
	Op  string
	Lhs Expr
	Rhs Expr
	Tok Token // the operator token
}

func (e *BinaryExpr) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *BinaryExpr) exprNode()       {}

// UnaryExpr applies Op ("-" or "!") to X.
type UnaryExpr struct {
	Op  string
	X   Expr
	Tok Token // the operator token
}

func (e *UnaryExpr) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *UnaryExpr) exprNode()       {}

// CallExpr invokes Callee with Args, evaluated left to right.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Tok    Token // the '(' token of the argument list
}

func (e *CallExpr) Pos() (int, int) { return e.Callee.Pos() }
func (e *CallExpr) exprNode()       {}

// Ident references a variable by name; resolution happens at evaluation
// time (the language has no static binding pass).
type Ident struct {
	Name string
	Tok  Token
}

func (e *Ident) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *Ident) exprNode()       {}

// NumberLit is a number literal.
type NumberLit struct {
	Value float64
	Tok   Token
}

func (e *NumberLit) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *NumberLit) exprNode()       {}

// StringLit is a string literal (escape sequences already decoded).
type StringLit struct {
	Value string
	Tok   Token
}

func (e *StringLit) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *StringLit) exprNode()       {}

// BoolLit is a true/false literal.
type BoolLit struct {
	Value bool
	Tok   Token
}

func (e *BoolLit) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *BoolLit) exprNode()       {}

// NilLit is the nil literal.
type NilLit struct {
	Tok Token
}

func (e *NilLit) Pos() (int, int) { return e.Tok.Line, e.Tok.Col }
func (e *NilLit) exprNode()       {}
