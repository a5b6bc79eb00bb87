package parser

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/kievzenit/snuplc/internal/ast"
	"github.com/kievzenit/snuplc/internal/compiler_errors"
	"github.com/kievzenit/snuplc/internal/lexer"
	"github.com/kievzenit/snuplc/internal/symtab"
	"github.com/kievzenit/snuplc/internal/types"
)

// bailout unwinds the parser to Parse after the first error.
type bailout struct{}

type Option func(*Parser)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithImplicitDeclarations makes Parse declare unknown identifiers as
// integer variables instead of failing.
func WithImplicitDeclarations(enabled bool) Option {
	return func(p *Parser) {
		p.implicitDeclarations = enabled
	}
}

type Parser struct {
	scanner lexer.TokenScanner
	types   *types.Manager
	logger  *slog.Logger

	implicitDeclarations bool
	implicit             bool

	symtab *symtab.Table
	// proc is the subroutine whose body is being parsed, nil in the
	// module body.
	proc    *symtab.Symbol
	strings int

	err *ParseError
}

var relOps = map[lexer.TokenKind]ast.Operation{
	lexer.EQ:  ast.OpEqual,
	lexer.NEQ: ast.OpNotEqual,
	lexer.LT:  ast.OpLessThan,
	lexer.LEQ: ast.OpLessEqual,
	lexer.GT:  ast.OpBiggerThan,
	lexer.GEQ: ast.OpBiggerEqual,
}

var termOps = map[lexer.TokenKind]ast.Operation{
	lexer.PLUS:  ast.OpAdd,
	lexer.MINUS: ast.OpSub,
	lexer.LOR:   ast.OpOr,
}

var factorOps = map[lexer.TokenKind]ast.Operation{
	lexer.ASTERISK: ast.OpMul,
	lexer.SLASH:    ast.OpDiv,
	lexer.LAND:     ast.OpAnd,
}

var unaryOps = map[lexer.TokenKind]ast.Operation{
	lexer.PLUS:  ast.OpPos,
	lexer.MINUS: ast.OpNeg,
	lexer.XMARK: ast.OpNot,
}

func NewParser(scanner lexer.TokenScanner, tm *types.Manager, opts ...Option) *Parser {
	p := &Parser{
		scanner: scanner,
		types:   tm,
		logger:  slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse parses a complete module. On failure the module is nil and the
// error is a *ParseError for the first offending token.
func (p *Parser) Parse() (module *ast.Module, err error) {
	defer p.recover(&module, &err)

	p.reset(p.implicitDeclarations)
	module = p.parseModule()

	return module, nil
}

// ParseStatements parses a bare statement sequence terminated by ".".
// Unknown identifiers are declared as integer variables of the module.
func (p *Parser) ParseStatements() (module *ast.Module, err error) {
	defer p.recover(&module, &err)

	p.reset(true)
	module = p.parseStatementsModule()

	return module, nil
}

func (p *Parser) HasError() bool {
	return p.err != nil
}

func (p *Parser) ErrorToken() *lexer.Token {
	if p.err == nil {
		return nil
	}

	token := p.err.Token
	return &token
}

func (p *Parser) ErrorMessage() string {
	if p.err == nil {
		return ""
	}

	return p.err.Message
}

func (p *Parser) reset(implicit bool) {
	p.implicit = implicit
	p.symtab = nil
	p.proc = nil
	p.strings = 0
	p.err = nil
}

func (p *Parser) recover(module **ast.Module, err *error) {
	r := recover()
	if r == nil {
		return
	}

	if _, ok := r.(bailout); !ok {
		panic(r)
	}

	*module = nil
	*err = p.err
	p.symtab = nil
}

func (p *Parser) newModule(startToken *lexer.Token, name string) *ast.Module {
	p.symtab = symtab.NewTable(name)
	root := p.symtab.Root()
	p.declarePredefined(root)

	return &ast.Module{
		StartToken: startToken,
		Scope:      root,

		Name:   name,
		Symtab: p.symtab,
	}
}

func (p *Parser) parseModule() *ast.Module {
	startToken := p.expect(lexer.MODULE)
	nameToken := p.expect(lexer.IDENT)
	p.expect(lexer.SEMICOLON)

	module := p.newModule(&startToken, nameToken.Value)
	scope := module.Scope

	for declarations := true; declarations; {
		switch p.peek().Kind {
		case lexer.CONST:
			p.parseConstDeclaration(scope)
		case lexer.VAR:
			p.parseVarDeclaration(scope, symtab.GlobalVar)
		case lexer.PROCEDURE, lexer.FUNCTION:
			if proc := p.parseSubroutineDecl(scope); proc != nil {
				module.Procedures = append(module.Procedures, proc)
			}
		default:
			declarations = false
		}
	}

	switch p.peek().Kind {
	case lexer.BEGIN:
		p.read()
		module.Body = p.parseStatSequence(scope)
	case lexer.END:
	default:
		p.unexpected(lexer.CONST, lexer.VAR, lexer.PROCEDURE, lexer.FUNCTION, lexer.BEGIN, lexer.END)
	}
	p.expect(lexer.END)

	p.expectClosingName(module.Name)
	p.expect(lexer.DOT)

	p.logger.Debug("module parsed",
		slog.String("module", module.Name),
		slog.Int("procedures", len(module.Procedures)),
		slog.Int("statements", len(module.Body)),
	)

	return module
}

func (p *Parser) parseStatementsModule() *ast.Module {
	startToken := p.peek()

	module := p.newModule(&startToken, "main")
	module.Body = p.parseStatSequence(module.Scope)
	p.expect(lexer.DOT)

	p.logger.Debug("statements parsed", slog.Int("statements", len(module.Body)))

	return module
}

func (p *Parser) expectClosingName(name string) {
	token := p.expect(lexer.IDENT)
	if token.Value != name {
		p.semanticError(&token, fmt.Sprintf("name mismatch: expected '%s', got '%s'", name, token.Value))
	}
}

func (p *Parser) parseConstDeclaration(scope symtab.ScopeID) {
	p.expect(lexer.CONST)

	for {
		p.parseConstDecl(scope)
		p.expect(lexer.SEMICOLON)

		if p.peek().Kind != lexer.IDENT {
			return
		}
	}
}

func (p *Parser) parseConstDecl(scope symtab.ScopeID) {
	names := p.parseIdentList()
	p.expect(lexer.COLON)
	declared := p.parseType(scope, true)
	p.expect(lexer.EQ)

	initToken := p.peek()
	var value constValue
	if initToken.Kind == lexer.STRING {
		p.read()
		value = constValue{str: initToken.Value, isString: true}
	} else {
		value = p.evaluate(p.parseExpression(scope))
	}

	typ, data := p.constantData(&initToken, declared, value)
	for _, name := range names {
		p.declare(scope, symtab.NewConstant(name.Value, typ, data), &name)
	}

	p.logDeclared(scope, symtab.Constant, names)
}

func (p *Parser) parseVarDeclaration(scope symtab.ScopeID, kind symtab.SymbolKind) {
	p.expect(lexer.VAR)

	for {
		p.parseVarDecl(scope, kind)
		p.expect(lexer.SEMICOLON)

		if p.peek().Kind != lexer.IDENT {
			return
		}
	}
}

func (p *Parser) parseVarDecl(scope symtab.ScopeID, kind symtab.SymbolKind) {
	names := p.parseIdentList()
	p.expect(lexer.COLON)
	typ := p.parseType(scope, false)

	for _, name := range names {
		var sym *symtab.Symbol
		if kind == symtab.GlobalVar {
			sym = symtab.NewGlobal(name.Value, typ)
		} else {
			sym = symtab.NewLocal(name.Value, typ)
		}
		p.declare(scope, sym, &name)
	}

	p.logDeclared(scope, kind, names)
}

func (p *Parser) parseIdentList() []lexer.Token {
	names := []lexer.Token{p.expect(lexer.IDENT)}

	for p.peek().Kind == lexer.COMMA {
		p.read()
		names = append(names, p.expect(lexer.IDENT))
	}

	return names
}

// parseType parses a base type followed by array dimensions. integer[2][3]
// is an array of 2 arrays of 3 integers.
func (p *Parser) parseType(scope symtab.ScopeID, allowOpen bool) types.Type {
	typeToken := p.expectAny(lexer.TYPE_BOOLEAN, lexer.TYPE_CHAR, lexer.TYPE_INTEGER, lexer.TYPE_LONGINT)

	var typ types.Type
	switch typeToken.Kind {
	case lexer.TYPE_BOOLEAN:
		typ = p.types.Bool()
	case lexer.TYPE_CHAR:
		typ = p.types.Char()
	case lexer.TYPE_INTEGER:
		typ = p.types.Integer()
	case lexer.TYPE_LONGINT:
		typ = p.types.Longint()
	}

	dims := make([]int, 0)
	for p.peek().Kind == lexer.LBRACKET {
		bracket := p.read()

		if p.peek().Kind == lexer.RBRACKET {
			if !allowOpen {
				p.semanticError(&bracket, "open arrays are only allowed for parameters and constants")
			}
			dims = append(dims, types.Open)
		} else {
			dims = append(dims, p.parseDimension(scope))
		}

		p.expect(lexer.RBRACKET)
	}

	for i := len(dims) - 1; i >= 0; i-- {
		array, ok := p.types.ArrayOf(dims[i], typ)
		if !ok {
			p.semanticError(&typeToken, "array type too large")
		}
		typ = array
	}

	return typ
}

func (p *Parser) parseDimension(scope symtab.ScopeID) int {
	dimToken := p.peek()

	value := p.evaluate(p.parseSimpleExpr(scope))
	if !types.IsIntegral(value.typ) || value.value <= 0 {
		p.semanticError(&dimToken, "positive constant array dimension expected")
	}
	if value.value > types.MaxArraySize {
		p.semanticError(&dimToken, "array type too large")
	}

	return int(value.value)
}

// parseSubroutineDecl returns nil for external subroutines. The symbol and
// scope of the subroutine exist before its parameters and body are parsed
// so that it can call itself.
func (p *Parser) parseSubroutineDecl(parent symtab.ScopeID) *ast.Procedure {
	startToken := p.expectAny(lexer.PROCEDURE, lexer.FUNCTION)
	nameToken := p.expect(lexer.IDENT)

	symbol := symtab.NewProcedure(nameToken.Value, p.types.Null())
	p.declare(parent, symbol, &nameToken)
	scope := p.symtab.NewScope(parent, symbol.Name)

	if p.peek().Kind == lexer.LPAREN {
		p.parseFormalParams(scope, symbol)
	}

	if startToken.Kind == lexer.FUNCTION {
		p.expect(lexer.COLON)
		typeToken := p.peek()
		returnType := p.parseType(scope, false)
		if !types.IsScalar(returnType) {
			p.semanticError(&typeToken, fmt.Sprintf("invalid return type %s", returnType))
		}
		symbol.Type = returnType
	}
	p.expect(lexer.SEMICOLON)

	if p.peek().Kind == lexer.EXTERN {
		p.read()
		p.expect(lexer.SEMICOLON)
		symbol.External = true

		p.logSubroutine(symbol)
		return nil
	}

	outer := p.proc
	p.proc = symbol

	proc := &ast.Procedure{
		StartToken: &startToken,
		Scope:      scope,

		Symbol: symbol,
	}

	if p.peek().Kind == lexer.CONST {
		p.parseConstDeclaration(scope)
	}
	if p.peek().Kind == lexer.VAR {
		p.parseVarDeclaration(scope, symtab.LocalVar)
	}

	p.expect(lexer.BEGIN)
	proc.Body = p.parseStatSequence(scope)
	p.expect(lexer.END)

	p.expectClosingName(symbol.Name)
	p.expect(lexer.SEMICOLON)

	p.proc = outer
	p.logSubroutine(symbol)

	return proc
}

// parseFormalParams declares the parameters in the subroutine scope. Array
// parameters are passed by reference.
func (p *Parser) parseFormalParams(scope symtab.ScopeID, symbol *symtab.Symbol) {
	p.expect(lexer.LPAREN)

	if p.peek().Kind != lexer.RPAREN {
		for {
			names := p.parseIdentList()
			p.expect(lexer.COLON)

			typ := p.parseType(scope, true)
			if types.IsArray(typ) {
				typ = p.types.PointerTo(typ)
			}

			for _, name := range names {
				param := symtab.NewParam(symbol.NParams(), name.Value, typ)
				p.declare(scope, param, &name)
				symbol.AddParam(param)
			}

			if p.peek().Kind != lexer.SEMICOLON {
				break
			}
			p.read()
		}
	}

	p.expect(lexer.RPAREN)
}

func (p *Parser) parseStatSequence(scope symtab.ScopeID) []ast.Stmt {
	stmts := make([]ast.Stmt, 0)

	if !isStatementStart(p.peek().Kind) {
		return stmts
	}

	for {
		stmts = append(stmts, p.parseStatement(scope))

		if p.peek().Kind != lexer.SEMICOLON {
			return stmts
		}
		p.read()
	}
}

func (p *Parser) parseStatement(scope symtab.ScopeID) ast.Stmt {
	switch p.peek().Kind {
	case lexer.IDENT:
		return p.parseAssignmentOrCall(scope)
	case lexer.IF:
		return p.parseIfStmt(scope)
	case lexer.WHILE:
		return p.parseWhileStmt(scope)
	case lexer.RETURN:
		return p.parseReturnStmt(scope)
	}

	p.unexpected(lexer.IDENT, lexer.IF, lexer.WHILE, lexer.RETURN)
	return nil
}

func (p *Parser) parseAssignmentOrCall(scope symtab.ScopeID) ast.Stmt {
	identToken := p.expect(lexer.IDENT)

	if p.peek().Kind == lexer.LPAREN {
		return &ast.CallStmt{
			StartToken: &identToken,
			Scope:      scope,

			Call: p.parseCall(scope, &identToken),
		}
	}

	left := p.parseQualident(scope, &identToken)
	if left.Target().Kind == symtab.Constant {
		p.semanticError(&identToken, fmt.Sprintf("cannot assign to constant '%s'", identToken.Value))
	}

	p.expect(lexer.ASSIGN)
	right := p.parseExpression(scope)

	return &ast.AssignStmt{
		StartToken: &identToken,
		Scope:      scope,

		Left:  left,
		Right: right,
	}
}

func (p *Parser) parseIfStmt(scope symtab.ScopeID) *ast.IfStmt {
	startToken := p.expect(lexer.IF)

	p.expect(lexer.LPAREN)
	cond := p.parseExpression(scope)
	p.expect(lexer.RPAREN)

	p.expect(lexer.THEN)
	thenBody := p.parseStatSequence(scope)

	var elseBody []ast.Stmt
	if p.peek().Kind == lexer.ELSE {
		p.read()
		elseBody = p.parseStatSequence(scope)
	}

	p.expect(lexer.END)

	return &ast.IfStmt{
		StartToken: &startToken,
		Scope:      scope,

		Cond: cond,
		Then: thenBody,
		Else: elseBody,
	}
}

func (p *Parser) parseWhileStmt(scope symtab.ScopeID) *ast.WhileStmt {
	startToken := p.expect(lexer.WHILE)

	p.expect(lexer.LPAREN)
	cond := p.parseExpression(scope)
	p.expect(lexer.RPAREN)

	p.expect(lexer.DO)
	body := p.parseStatSequence(scope)
	p.expect(lexer.END)

	return &ast.WhileStmt{
		StartToken: &startToken,
		Scope:      scope,

		Cond: cond,
		Body: body,
	}
}

func (p *Parser) parseReturnStmt(scope symtab.ScopeID) *ast.ReturnStmt {
	startToken := p.expect(lexer.RETURN)

	stmt := &ast.ReturnStmt{
		StartToken: &startToken,
		Scope:      scope,
	}

	if isExpressionStart(p.peek().Kind) {
		stmt.Value = p.parseExpression(scope)
	}

	returnsValue := p.proc != nil && p.proc.Type.Kind() != types.KindNull
	switch {
	case returnsValue && stmt.Value == nil:
		p.semanticError(&startToken, fmt.Sprintf("function '%s' must return a value", p.proc.Name))
	case p.proc == nil && stmt.Value != nil:
		p.semanticError(stmt.Value.FirstToken(), "the module body cannot return a value")
	case !returnsValue && stmt.Value != nil:
		p.semanticError(stmt.Value.FirstToken(), "procedures cannot return a value")
	}

	return stmt
}

func (p *Parser) parseExpression(scope symtab.ScopeID) ast.Expr {
	left := p.parseSimpleExpr(scope)

	op, ok := relOps[p.peek().Kind]
	if !ok {
		return left
	}

	opToken := p.read()
	right := p.parseSimpleExpr(scope)

	return &ast.BinaryOp{
		StartToken: &opToken,
		Scope:      scope,

		Op:    op,
		Left:  left,
		Right: right,
	}
}

func (p *Parser) parseSimpleExpr(scope symtab.ScopeID) ast.Expr {
	left := p.parseTerm(scope)

	for {
		op, ok := termOps[p.peek().Kind]
		if !ok {
			return left
		}

		opToken := p.read()
		left = &ast.BinaryOp{
			StartToken: &opToken,
			Scope:      scope,

			Op:    op,
			Left:  left,
			Right: p.parseTerm(scope),
		}
	}
}

func (p *Parser) parseTerm(scope symtab.ScopeID) ast.Expr {
	left := p.parseFactor(scope)

	for {
		op, ok := factorOps[p.peek().Kind]
		if !ok {
			return left
		}

		opToken := p.read()
		left = &ast.BinaryOp{
			StartToken: &opToken,
			Scope:      scope,

			Op:    op,
			Left:  left,
			Right: p.parseFactor(scope),
		}
	}
}

// parseFactor folds a minus directly in front of a number literal into the
// literal, so the most negative value of a type can be written.
func (p *Parser) parseFactor(scope symtab.ScopeID) ast.Expr {
	op, ok := unaryOps[p.peek().Kind]
	if !ok {
		return p.parsePrimary(scope)
	}

	opToken := p.read()
	if op == ast.OpNeg && (p.peek().Kind == lexer.INT || p.peek().Kind == lexer.LONG) {
		return p.parseNumber(scope, &opToken, true)
	}

	return &ast.UnaryOp{
		StartToken: &opToken,
		Scope:      scope,

		Op:      op,
		Operand: p.parseFactor(scope),
	}
}

func (p *Parser) parsePrimary(scope symtab.ScopeID) ast.Expr {
	token := p.peek()

	switch token.Kind {
	case lexer.IDENT:
		p.read()
		if p.peek().Kind == lexer.LPAREN {
			call := p.parseCall(scope, &token)
			if call.Symbol.Type.Kind() == types.KindNull {
				p.semanticError(&token, fmt.Sprintf("procedure '%s' does not return a value", token.Value))
			}
			return call
		}
		return p.parseQualident(scope, &token)

	case lexer.INT, lexer.LONG:
		return p.parseNumber(scope, nil, false)

	case lexer.TRUE, lexer.FALSE:
		p.read()
		return &ast.Constant{
			StartToken: &token,
			Scope:      scope,

			Type:  p.types.Bool(),
			Value: boolValue(token.Kind == lexer.TRUE),
		}

	case lexer.CHAR:
		p.read()
		return &ast.Constant{
			StartToken: &token,
			Scope:      scope,

			Type:  p.types.Char(),
			Value: int64(token.Value[0]),
		}

	case lexer.STRING:
		p.read()
		return p.newStringConstant(scope, &token)

	case lexer.LPAREN:
		p.read()
		expr := p.parseExpression(scope)
		p.expect(lexer.RPAREN)
		return expr
	}

	p.unexpected(lexer.IDENT, lexer.INT, lexer.LONG, lexer.TRUE, lexer.FALSE, lexer.CHAR, lexer.STRING, lexer.LPAREN)
	return nil
}

func (p *Parser) parseNumber(scope symtab.ScopeID, startToken *lexer.Token, negate bool) *ast.Constant {
	token := p.expectAny(lexer.INT, lexer.LONG)
	if startToken == nil {
		startToken = &token
	}

	var typ types.Type = p.types.Integer()
	if token.Kind == lexer.LONG {
		typ = p.types.Longint()
	}

	limit := uint64(typ.(valueRange).MaxValue())
	if negate {
		limit++
	}

	magnitude, err := strconv.ParseUint(strings.TrimSuffix(token.Value, "L"), 10, 64)
	if err != nil || magnitude > limit {
		p.semanticError(&token, fmt.Sprintf("%s constant out of range", typ.Name()))
	}

	value := int64(magnitude)
	if negate {
		value = -value
	}

	return &ast.Constant{
		StartToken: startToken,
		Scope:      scope,

		Type:  typ,
		Value: value,
	}
}

func (p *Parser) parseQualident(scope symtab.ScopeID, identToken *lexer.Token) ast.LValue {
	symbol := p.resolveVariable(scope, identToken)

	if p.peek().Kind != lexer.LBRACKET {
		return &ast.Designator{
			StartToken: identToken,
			Scope:      scope,

			Symbol: symbol,
		}
	}

	indices := make([]ast.Expr, 0)
	for p.peek().Kind == lexer.LBRACKET {
		p.read()
		indices = append(indices, p.parseSimpleExpr(scope))
		p.expect(lexer.RBRACKET)
	}

	return &ast.ArrayDesignator{
		StartToken: identToken,
		Scope:      scope,

		Symbol:  symbol,
		Indices: indices,
	}
}

func (p *Parser) parseCall(scope symtab.ScopeID, identToken *lexer.Token) *ast.FunctionCall {
	symbol, ok := p.symtab.FindSymbol(scope, identToken.Value, symtab.Global)
	if !ok {
		p.semanticError(identToken, fmt.Sprintf("undeclared subroutine '%s'", identToken.Value))
	}
	if symbol.Kind != symtab.Procedure {
		p.semanticError(identToken, fmt.Sprintf("'%s' is not a subroutine", identToken.Value))
	}

	p.expect(lexer.LPAREN)

	args := make([]ast.Expr, 0)
	if p.peek().Kind != lexer.RPAREN {
		for {
			args = append(args, p.parseExpression(scope))

			if p.peek().Kind != lexer.COMMA {
				break
			}
			p.read()
		}
	}

	p.expect(lexer.RPAREN)

	if len(args) != symbol.NParams() {
		p.semanticError(identToken, fmt.Sprintf(
			"wrong number of arguments for '%s': expected %d, got %d", symbol.Name, symbol.NParams(), len(args)))
	}

	return &ast.FunctionCall{
		StartToken: identToken,
		Scope:      scope,

		Symbol: symbol,
		Args:   args,
	}
}

func (p *Parser) resolveVariable(scope symtab.ScopeID, identToken *lexer.Token) *symtab.Symbol {
	symbol, ok := p.symtab.FindSymbol(scope, identToken.Value, symtab.Global)
	if !ok {
		if !p.implicit {
			p.semanticError(identToken, fmt.Sprintf("undeclared identifier '%s'", identToken.Value))
		}
		symbol = p.declareImplicit(scope, identToken)
	}

	if symbol.Kind == symtab.Procedure {
		p.semanticError(identToken, fmt.Sprintf("subroutine '%s' used as a value", identToken.Value))
	}

	return symbol
}

func (p *Parser) declareImplicit(scope symtab.ScopeID, identToken *lexer.Token) *symtab.Symbol {
	var symbol *symtab.Symbol
	if scope == p.symtab.Root() {
		symbol = symtab.NewGlobal(identToken.Value, p.types.Integer())
	} else {
		symbol = symtab.NewLocal(identToken.Value, p.types.Integer())
	}

	p.declare(scope, symbol, identToken)
	p.logger.Debug("implicit declaration",
		slog.String("name", symbol.Name),
		slog.String("scope", p.symtab.Name(scope)),
	)

	return symbol
}

// newStringConstant stores a string literal in a global data symbol named
// _str_<n>.
func (p *Parser) newStringConstant(scope symtab.ScopeID, token *lexer.Token) *ast.StringConstant {
	typ, ok := p.types.ArrayOf(len(token.Value)+1, p.types.Char())
	if !ok {
		p.semanticError(token, "string constant too long")
	}

	var symbol *symtab.Symbol
	for {
		p.strings++
		symbol = symtab.NewGlobal("_str_"+strconv.Itoa(p.strings), typ)
		symbol.Data = &symtab.StringData{Value: token.Value}

		if p.symtab.AddSymbol(scope, symbol) {
			break
		}
	}

	return &ast.StringConstant{
		StartToken: token,
		Scope:      scope,

		Symbol: symbol,
		Value:  token.Value,
	}
}

func (p *Parser) declare(scope symtab.ScopeID, symbol *symtab.Symbol, token *lexer.Token) {
	if !p.symtab.AddSymbol(scope, symbol) {
		p.semanticError(token, fmt.Sprintf("duplicate declaration '%s'", symbol.Name))
	}
}

func (p *Parser) logDeclared(scope symtab.ScopeID, kind symtab.SymbolKind, names []lexer.Token) {
	if !p.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	values := make([]string, len(names))
	for i, name := range names {
		values[i] = name.Value
	}

	p.logger.Debug("symbols declared",
		slog.String("scope", p.symtab.Name(scope)),
		slog.String("kind", kind.String()),
		slog.Any("names", values),
	)
}

func (p *Parser) logSubroutine(symbol *symtab.Symbol) {
	p.logger.Debug("subroutine declared",
		slog.String("name", symbol.Name),
		slog.Int("params", symbol.NParams()),
		slog.String("returns", symbol.Type.String()),
		slog.Bool("external", symbol.External),
	)
}

// peek returns the lookahead token. Error tokens from the scanner end the
// parse right away.
func (p *Parser) peek() lexer.Token {
	token := p.scanner.Peek()
	if token.Kind.IsError() {
		p.fail(token, &LexicalError{
			Kind:    token.Kind,
			Message: token.Value,

			Line:   token.Line,
			Column: token.Column,
		})
	}

	return token
}

func (p *Parser) read() lexer.Token {
	token := p.peek()
	p.scanner.Next()

	return token
}

func (p *Parser) expect(kind lexer.TokenKind) lexer.Token {
	token := p.peek()
	if token.Kind != kind {
		p.fail(token, &UnexpectedExpectedError{
			Unexpected: token.Kind,
			Expected:   kind,

			Line:   token.Line,
			Column: token.Column,
		})
	}
	p.scanner.Next()

	return token
}

func (p *Parser) expectAny(kinds ...lexer.TokenKind) lexer.Token {
	token := p.peek()
	if !slices.Contains(kinds, token.Kind) {
		p.unexpected(kinds...)
	}
	p.scanner.Next()

	return token
}

func (p *Parser) unexpected(expected ...lexer.TokenKind) {
	token := p.peek()
	p.fail(token, &UnexpectedExpectedManyError{
		Unexpected: token.Kind,
		Expected:   expected,

		Line:   token.Line,
		Column: token.Column,
	})
}

func (p *Parser) semanticError(token *lexer.Token, message string) {
	p.fail(*token, &SemanticError{
		Message: message,

		Line:   token.Line,
		Column: token.Column,
	})
}

func (p *Parser) fail(token lexer.Token, cause compiler_errors.CompilerError) {
	p.err = &ParseError{
		Token:   token,
		Message: cause.GetMessage(),

		Cause: cause,
	}

	p.logger.Debug("parse failed",
		slog.Int("line", token.Line),
		slog.Int("column", token.Column),
		slog.String("error", p.err.Message),
	)

	panic(bailout{})
}

func isStatementStart(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.IDENT, lexer.IF, lexer.WHILE, lexer.RETURN:
		return true
	}

	return false
}

func isExpressionStart(kind lexer.TokenKind) bool {
	switch kind {
	case lexer.IDENT, lexer.INT, lexer.LONG, lexer.CHAR, lexer.STRING, lexer.TRUE, lexer.FALSE,
		lexer.LPAREN, lexer.PLUS, lexer.MINUS, lexer.XMARK:
		return true
	}

	return false
}
