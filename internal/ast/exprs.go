package ast

import (
	"github.com/kievzenit/snuplc/internal/lexer"
	"github.com/kievzenit/snuplc/internal/symtab"
	"github.com/kievzenit/snuplc/internal/types"
)

// LValue is an expression that names a storage location.
type LValue interface {
	Expr
	Target() *symtab.Symbol
}

type BinaryOp struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Op    Operation
	Left  Expr
	Right Expr
}

type UnaryOp struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Op      Operation
	Operand Expr
}

type Designator struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Symbol *symtab.Symbol
}

type ArrayDesignator struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Symbol  *symtab.Symbol
	Indices []Expr
}

type FunctionCall struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Symbol *symtab.Symbol
	Args   []Expr
}

// Constant is an integer, longint, boolean or character literal. Booleans
// are stored as 0 and 1, characters as their byte value.
type Constant struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Type  types.Type
	Value int64
}

// StringConstant refers to the global data symbol a string literal was
// stored in.
type StringConstant struct {
	StartToken *lexer.Token
	Scope      symtab.ScopeID

	Symbol *symtab.Symbol
	Value  string
}

func (*BinaryOp) AstNode()        {}
func (*UnaryOp) AstNode()         {}
func (*Designator) AstNode()      {}
func (*ArrayDesignator) AstNode() {}
func (*FunctionCall) AstNode()    {}
func (*Constant) AstNode()        {}
func (*StringConstant) AstNode()  {}

func (e *BinaryOp) FirstToken() *lexer.Token        { return e.StartToken }
func (e *UnaryOp) FirstToken() *lexer.Token         { return e.StartToken }
func (e *Designator) FirstToken() *lexer.Token      { return e.StartToken }
func (e *ArrayDesignator) FirstToken() *lexer.Token { return e.StartToken }
func (e *FunctionCall) FirstToken() *lexer.Token    { return e.StartToken }
func (e *Constant) FirstToken() *lexer.Token        { return e.StartToken }
func (e *StringConstant) FirstToken() *lexer.Token  { return e.StartToken }

func (e *BinaryOp) EnclosingScope() symtab.ScopeID        { return e.Scope }
func (e *UnaryOp) EnclosingScope() symtab.ScopeID         { return e.Scope }
func (e *Designator) EnclosingScope() symtab.ScopeID      { return e.Scope }
func (e *ArrayDesignator) EnclosingScope() symtab.ScopeID { return e.Scope }
func (e *FunctionCall) EnclosingScope() symtab.ScopeID    { return e.Scope }
func (e *Constant) EnclosingScope() symtab.ScopeID        { return e.Scope }
func (e *StringConstant) EnclosingScope() symtab.ScopeID  { return e.Scope }

func (*BinaryOp) ExprNode()        {}
func (*UnaryOp) ExprNode()         {}
func (*Designator) ExprNode()      {}
func (*ArrayDesignator) ExprNode() {}
func (*FunctionCall) ExprNode()    {}
func (*Constant) ExprNode()        {}
func (*StringConstant) ExprNode()  {}

func (e *Designator) Target() *symtab.Symbol      { return e.Symbol }
func (e *ArrayDesignator) Target() *symtab.Symbol { return e.Symbol }
