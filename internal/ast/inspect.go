package ast

import "fmt"

// Inspect traverses the tree rooted at node in depth-first order. It calls
// f for every node; children are visited only if f returns true.
func Inspect(node AstNode, f func(AstNode) bool) {
	if node == nil || !f(node) {
		return
	}

	switch n := node.(type) {
	case *Module:
		for _, p := range n.Procedures {
			Inspect(p, f)
		}
		inspectStmts(n.Body, f)
	case *Procedure:
		inspectStmts(n.Body, f)
	case *AssignStmt:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *CallStmt:
		Inspect(n.Call, f)
	case *IfStmt:
		Inspect(n.Cond, f)
		inspectStmts(n.Then, f)
		inspectStmts(n.Else, f)
	case *WhileStmt:
		Inspect(n.Cond, f)
		inspectStmts(n.Body, f)
	case *ReturnStmt:
		if n.Value != nil {
			Inspect(n.Value, f)
		}
	case *BinaryOp:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *UnaryOp:
		Inspect(n.Operand, f)
	case *ArrayDesignator:
		inspectExprs(n.Indices, f)
	case *FunctionCall:
		inspectExprs(n.Args, f)
	case *Designator, *Constant, *StringConstant:
	default:
		panic(fmt.Sprintf("ast.Inspect: unexpected node type %T", n))
	}
}

func inspectStmts(stmts []Stmt, f func(AstNode) bool) {
	for _, s := range stmts {
		Inspect(s, f)
	}
}

func inspectExprs(exprs []Expr, f func(AstNode) bool) {
	for _, e := range exprs {
		Inspect(e, f)
	}
}
