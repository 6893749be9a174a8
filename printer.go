// printer.go — compact S-expression rendering of the AST.
//
// FormatProgram gives the tree a stable, diffable text form:
//
//	(block (assign x (num 1)) (fn f (a b) (block (ret (id a)))))
//
// Parser tests assert against this instead of raw node structs, and it
// doubles as a debugging aid for anything that walks the AST.
package kotoba

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatProgram renders the program as a single-line S-expression.
func FormatProgram(p *Program) string {
	var b strings.Builder
	writeProgram(&b, p)
	return b.String()
}

// FormatNode renders one node as a single-line S-expression.
func FormatNode(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeProgram(b *strings.Builder, p *Program) {
	b.WriteString("(block")
	for _, st := range p.Stmts {
		b.WriteByte(' ')
		writeNode(b, st)
	}
	b.WriteByte(')')
}

func writeNode(b *strings.Builder, n Node) {
	switch x := n.(type) {
	case *Program:
		writeProgram(b, x)
	case *ExprStmt:
		writeNode(b, x.X)
	case *AssignStmt:
		tag := "assign"
		if x.Nonlocal {
			tag = "nonlocal"
		}
		fmt.Fprintf(b, "(%s %s ", tag, x.Name)
		writeNode(b, x.X)
		b.WriteByte(')')
	case *RetStmt:
		b.WriteString("(ret ")
		writeNode(b, x.X)
		b.WriteByte(')')
	case *IfStmt:
		b.WriteString("(if ")
		writeNode(b, x.Cond)
		b.WriteByte(' ')
		writeProgram(b, x.Then)
		if x.Else != nil {
			b.WriteByte(' ')
			writeProgram(b, x.Else)
		}
		b.WriteByte(')')
	case *WhileStmt:
		b.WriteString("(while ")
		writeNode(b, x.Cond)
		b.WriteByte(' ')
		writeProgram(b, x.Body)
		b.WriteByte(')')
	case *FnStmt:
		fmt.Fprintf(b, "(fn %s (%s) ", x.Name, strings.Join(x.Params, " "))
		writeProgram(b, x.Body)
		b.WriteByte(')')
	case *BinaryExpr:
		fmt.Fprintf(b, "(binop %s ", x.Op)
		writeNode(b, x.Lhs)
		b.WriteByte(' ')
		writeNode(b, x.Rhs)
		b.WriteByte(')')
	case *UnaryExpr:
		fmt.Fprintf(b, "(unop %s ", x.Op)
		writeNode(b, x.X)
		b.WriteByte(')')
	case *CallExpr:
		b.WriteString("(call ")
		writeNode(b, x.Callee)
		for _, a := range x.Args {
			b.WriteByte(' ')
			writeNode(b, a)
		}
		b.WriteByte(')')
	case *Ident:
		fmt.Fprintf(b, "(id %s)", x.Name)
	case *NumberLit:
		fmt.Fprintf(b, "(num %s)", strconv.FormatFloat(x.Value, 'f', -1, 64))
	case *StringLit:
		fmt.Fprintf(b, "(str %q)", x.Value)
	case *BoolLit:
		fmt.Fprintf(b, "(bool %t)", x.Value)
	case *NilLit:
		b.WriteString("(nil)")
	default:
		fmt.Fprintf(b, "(unknown %T)", n)
	}
}
