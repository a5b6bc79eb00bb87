package ast

import (
	"github.com/kievzenit/snuplc/internal/lexer"
	"github.com/kievzenit/snuplc/internal/symtab"
)

type AssignStmt struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Left  LValue
	Right Expr
}

type CallStmt struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Call *FunctionCall
}

type IfStmt struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Cond Expr
	Then []Stmt
	Else []Stmt
}

type WhileStmt struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Cond Expr
	Body []Stmt
}

type ReturnStmt struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	// Value is nil in procedures.
	Value Expr
}

func (*AssignStmt) AstNode() {}
func (*CallStmt) AstNode()   {}
func (*IfStmt) AstNode()     {}
func (*WhileStmt) AstNode()  {}
func (*ReturnStmt) AstNode() {}

func (s *AssignStmt) FirstToken() *lexer.Token { return s.StartToken }
func (s *CallStmt) FirstToken() *lexer.Token   { return s.StartToken }
func (s *IfStmt) FirstToken() *lexer.Token     { return s.StartToken }
func (s *WhileStmt) FirstToken() *lexer.Token  { return s.StartToken }
func (s *ReturnStmt) FirstToken() *lexer.Token { return s.StartToken }

func (s *AssignStmt) EnclosingScope() symtab.ScopeID { return s.Scope }
func (s *CallStmt) EnclosingScope() symtab.ScopeID   { return s.Scope }
func (s *IfStmt) EnclosingScope() symtab.ScopeID     { return s.Scope }
func (s *WhileStmt) EnclosingScope() symtab.ScopeID  { return s.Scope }
func (s *ReturnStmt) EnclosingScope() symtab.ScopeID { return s.Scope }

func (*AssignStmt) StmtNode() {}
func (*CallStmt) StmtNode()   {}
func (*IfStmt) StmtNode()     {}
func (*WhileStmt) StmtNode()  {}
func (*ReturnStmt) StmtNode() {}
