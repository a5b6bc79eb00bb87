package ast

import (
	"github.com/kievzenit/snuplc/internal/lexer"
	"github.com/kievzenit/snuplc/internal/symtab"
)

type AstNode interface {
	AstNode()
	FirstToken() *lexer.Token
	// EnclosingScope is the scope names inside the node resolve in.
	EnclosingScope() symtab.ScopeID
}

type Stmt interface {
	AstNode
	StmtNode()
}

type Expr interface {
	AstNode
	ExprNode()
}

// Module is the root of the tree. It owns the symbol table holding the
// scopes of the module and all of its subroutines.
type Module struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Name       string
	Symtab     *symtab.Table
	Procedures []*Procedure
	Body       []Stmt
}

// Procedure is a procedure or function with a body. External subroutines
// only have a symbol.
type Procedure struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Symbol *symtab.Symbol
	Body   []Stmt
}

func (*Module) AstNode()    {}
func (*Procedure) AstNode() {}

func (m *Module) FirstToken() *lexer.Token    { return m.StartToken }
func (p *Procedure) FirstToken() *lexer.Token { return p.StartToken }

func (m *Module) EnclosingScope() symtab.ScopeID    { return m.Scope }
func (p *Procedure) EnclosingScope() symtab.ScopeID { return p.Scope }

func (p *Procedure) Name() string {
	return p.Symbol.Name
}
