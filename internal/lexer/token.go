package lexer

import (
	"fmt"
)

type TokenKind int

const (
	EOF TokenKind = iota

	INT    // 42
	LONG   // 42L
	CHAR   // 'a'
	STRING // "abc"

	IDENT

	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /

	LAND // &&
	LOR  // ||

	EQ  // =
	NEQ // #
	LT  // <
	LEQ // <=
	GT  // >
	GEQ // >=

	ASSIGN // :=

	LPAREN   // (
	LBRACKET // [

	RPAREN   // )
	RBRACKET // ]

	COLON     // :
	SEMICOLON // ;
	DOT       // .
	COMMA     // ,
	XMARK     // !

	MODULE
	BEGIN
	END
	CONST
	VAR
	PROCEDURE
	FUNCTION
	EXTERN
	IF
	THEN
	ELSE
	WHILE
	DO
	RETURN
	TRUE
	FALSE

	TYPE_BOOLEAN
	TYPE_CHAR
	TYPE_INTEGER
	TYPE_LONGINT

	IO_ERROR
	ILLEGAL
	INVALID_CHAR
	INVALID_STRING
)

func (tk TokenKind) String() string {
	switch tk {
	case EOF:
		return "EOF"
	case INT:
		return "INT"
	case LONG:
		return "LONG"
	case CHAR:
		return "CHAR"
	case STRING:
		return "STRING"
	case IDENT:
		return "IDENT"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case ASTERISK:
		return "ASTERISK"
	case SLASH:
		return "SLASH"
	case LAND:
		return "LAND"
	case LOR:
		return "LOR"
	case EQ:
		return "EQ"
	case NEQ:
		return "NEQ"
	case LT:
		return "LT"
	case LEQ:
		return "LEQ"
	case GT:
		return "GT"
	case GEQ:
		return "GEQ"
	case ASSIGN:
		return "ASSIGN"
	case LPAREN:
		return "LPAREN"
	case LBRACKET:
		return "LBRACKET"
	case RPAREN:
		return "RPAREN"
	case RBRACKET:
		return "RBRACKET"
	case COLON:
		return "COLON"
	case SEMICOLON:
		return "SEMICOLON"
	case DOT:
		return "DOT"
	case COMMA:
		return "COMMA"
	case XMARK:
		return "XMARK"
	case MODULE:
		return "MODULE"
	case BEGIN:
		return "BEGIN"
	case END:
		return "END"
	case CONST:
		return "CONST"
	case VAR:
		return "VAR"
	case PROCEDURE:
		return "PROCEDURE"
	case FUNCTION:
		return "FUNCTION"
	case EXTERN:
		return "EXTERN"
	case IF:
		return "IF"
	case THEN:
		return "THEN"
	case ELSE:
		return "ELSE"
	case WHILE:
		return "WHILE"
	case DO:
		return "DO"
	case RETURN:
		return "RETURN"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case TYPE_BOOLEAN:
		return "TYPE_BOOLEAN"
	case TYPE_CHAR:
		return "TYPE_CHAR"
	case TYPE_INTEGER:
		return "TYPE_INTEGER"
	case TYPE_LONGINT:
		return "TYPE_LONGINT"
	case IO_ERROR:
		return "IO_ERROR"
	case ILLEGAL:
		return "ILLEGAL"
	case INVALID_CHAR:
		return "INVALID_CHAR"
	case INVALID_STRING:
		return "INVALID_STRING"
	default:
		panic(fmt.Sprintf("TokenKind.String(): received illegal token kind: %d", tk))
	}
}

// IsError reports whether tokens of this kind signal a lexical failure.
func (tk TokenKind) IsError() bool {
	switch tk {
	case IO_ERROR, ILLEGAL, INVALID_CHAR, INVALID_STRING:
		return true
	}

	return false
}

// IsTerminal reports whether the scanner keeps returning tokens of this kind
// once it has produced one.
func (tk TokenKind) IsTerminal() bool {
	return tk == EOF || tk == IO_ERROR
}

type Token struct {
	Kind  TokenKind
	Value string

	Line   int
	Column int
}

func (t *Token) hasActualValue() bool {
	switch t.Kind {
	case INT, LONG, CHAR, STRING, IDENT, ILLEGAL, INVALID_CHAR, INVALID_STRING:
		return true
	}

	return false
}

// Text returns the token value the way it is written in source: character
// and string literals are escaped again, everything else is returned as is.
func (t *Token) Text() string {
	if t.Kind == CHAR || t.Kind == STRING {
		return Escape(t.Kind, t.Value)
	}

	return t.Value
}

// String renders the token as "<line>:<column>: <KIND> [(<text>)]".
func (t *Token) String() string {
	if !t.hasActualValue() {
		return fmt.Sprintf("%d:%d: %s", t.Line, t.Column, t.Kind)
	}

	return fmt.Sprintf("%d:%d: %s (%s)", t.Line, t.Column, t.Kind, t.Text())
}
