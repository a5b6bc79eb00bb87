package parser

import (
	"fmt"
	"strings"

	"github.com/kievzenit/snuplc/internal/compiler_errors"
	"github.com/kievzenit/snuplc/internal/lexer"
)

type UnexpectedExpectedError struct {
	Unexpected lexer.TokenKind
	Expected   lexer.TokenKind

	Line   int
	Column int
}

func (e *UnexpectedExpectedError) GetMessage() string {
	return fmt.Sprintf("unexpected token: '%s', expected: '%s'", e.Unexpected.String(), e.Expected.String())
}

func (e *UnexpectedExpectedError) GetLine() int {
	return e.Line
}

func (e *UnexpectedExpectedError) GetColumn() int {
	return e.Column
}

func (e *UnexpectedExpectedError) Error() string {
	return e.GetMessage()
}

type UnexpectedExpectedManyError struct {
	Unexpected lexer.TokenKind
	Expected   []lexer.TokenKind

	Line   int
	Column int
}

func (e *UnexpectedExpectedManyError) GetMessage() string {
	expectedKinds := make([]string, len(e.Expected))
	for i, kind := range e.Expected {
		expectedKinds[i] = "'" + kind.String() + "'"
	}
	return fmt.Sprintf("unexpected token: '%s', expected one of: %s", e.Unexpected.String(), strings.Join(expectedKinds, ", "))
}

func (e *UnexpectedExpectedManyError) GetLine() int {
	return e.Line
}

func (e *UnexpectedExpectedManyError) GetColumn() int {
	return e.Column
}

func (e *UnexpectedExpectedManyError) Error() string {
	return e.GetMessage()
}

// LexicalError is raised when the parser runs into an error token.
type LexicalError struct {
	Kind    lexer.TokenKind
	Message string

	Line   int
	Column int
}

func (e *LexicalError) GetMessage() string {
	return e.Message
}

func (e *LexicalError) GetLine() int {
	return e.Line
}

func (e *LexicalError) GetColumn() int {
	return e.Column
}

func (e *LexicalError) Error() string {
	return e.GetMessage()
}

// SemanticError covers the checks done while parsing: declarations,
// name resolution and constant evaluation.
type SemanticError struct {
	Message string

	Line   int
	Column int
}

func (e *SemanticError) GetMessage() string {
	return e.Message
}

func (e *SemanticError) GetLine() int {
	return e.Line
}

func (e *SemanticError) GetColumn() int {
	return e.Column
}

func (e *SemanticError) Error() string {
	return e.GetMessage()
}

// ParseError is the result of a failed parse: the offending token and the
// diagnostic produced for it.
type ParseError struct {
	Token   lexer.Token
	Message string

	Cause compiler_errors.CompilerError
}

func (e *ParseError) GetMessage() string {
	return e.Message
}

func (e *ParseError) GetLine() int {
	return e.Token.Line
}

func (e *ParseError) GetColumn() int {
	return e.Token.Column
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Token.Line, e.Token.Column, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
