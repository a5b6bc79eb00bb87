package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kievzenit/snuplc/internal/lexer"
	"github.com/kievzenit/snuplc/internal/types"
)

// FormatExpr renders an expression as a fully parenthesized prefix form,
// e.g. "(+ 1 (* 2 3))".
func FormatExpr(e Expr) string {
	switch n := e.(type) {
	case *BinaryOp:
		return fmt.Sprintf("(%s %s %s)", n.Op, FormatExpr(n.Left), FormatExpr(n.Right))
	case *UnaryOp:
		return fmt.Sprintf("(%s %s)", n.Op, FormatExpr(n.Operand))
	case *Designator:
		return n.Symbol.Name
	case *ArrayDesignator:
		var sb strings.Builder
		sb.WriteString(n.Symbol.Name)
		for _, idx := range n.Indices {
			sb.WriteString("[" + FormatExpr(idx) + "]")
		}
		return sb.String()
	case *FunctionCall:
		args := make([]string, len(n.Args))
		for i, arg := range n.Args {
			args[i] = FormatExpr(arg)
		}
		return n.Symbol.Name + "(" + strings.Join(args, ", ") + ")"
	case *Constant:
		return formatConstant(n)
	case *StringConstant:
		return "\"" + lexer.Escape(lexer.STRING, n.Value) + "\""
	case nil:
		return "<nil>"
	}

	panic(fmt.Sprintf("ast.FormatExpr: unexpected node type %T", e))
}

func formatConstant(c *Constant) string {
	switch c.Type.Kind() {
	case types.KindBool:
		return strconv.FormatBool(c.Value != 0)
	case types.KindChar:
		return "'" + lexer.Escape(lexer.CHAR, string([]byte{byte(c.Value)})) + "'"
	case types.KindLongint:
		return strconv.FormatInt(c.Value, 10) + "L"
	}

	return strconv.FormatInt(c.Value, 10)
}

// FormatStmts renders a statement sequence one statement per line.
func FormatStmts(stmts []Stmt, indent int) string {
	var sb strings.Builder
	for _, s := range stmts {
		formatStmt(&sb, s, indent)
	}

	return sb.String()
}

func formatStmt(sb *strings.Builder, s Stmt, indent int) {
	ind := strings.Repeat("  ", indent)

	switch n := s.(type) {
	case *AssignStmt:
		fmt.Fprintf(sb, "%s%s := %s\n", ind, FormatExpr(n.Left), FormatExpr(n.Right))
	case *CallStmt:
		fmt.Fprintf(sb, "%s%s\n", ind, FormatExpr(n.Call))
	case *IfStmt:
		fmt.Fprintf(sb, "%sif %s then\n", ind, FormatExpr(n.Cond))
		sb.WriteString(FormatStmts(n.Then, indent+1))
		if len(n.Else) > 0 {
			fmt.Fprintf(sb, "%selse\n", ind)
			sb.WriteString(FormatStmts(n.Else, indent+1))
		}
		fmt.Fprintf(sb, "%send\n", ind)
	case *WhileStmt:
		fmt.Fprintf(sb, "%swhile %s do\n", ind, FormatExpr(n.Cond))
		sb.WriteString(FormatStmts(n.Body, indent+1))
		fmt.Fprintf(sb, "%send\n", ind)
	case *ReturnStmt:
		if n.Value == nil {
			fmt.Fprintf(sb, "%sreturn\n", ind)
		} else {
			fmt.Fprintf(sb, "%sreturn %s\n", ind, FormatExpr(n.Value))
		}
	default:
		panic(fmt.Sprintf("ast.FormatStmts: unexpected node type %T", s))
	}
}
