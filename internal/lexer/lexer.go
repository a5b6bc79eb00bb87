package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type charResult int

const (
	charOkay charResult = iota
	charInvalidChar
	charInvalidEncoding
	charUnexpectedEnd
)

// Scanner turns a byte stream into tokens on demand. It keeps exactly one
// token of lookahead.
type Scanner struct {
	in  *bufio.Reader
	err error

	line, col int

	startLine, startCol int

	token Token
}

func NewScanner(r io.Reader) *Scanner {
	s := &Scanner{
		in: bufio.NewReader(r),

		line: 1,
		col:  1,
	}
	s.token = s.scan()

	return s
}

func NewStringScanner(src string) *Scanner {
	return NewScanner(strings.NewReader(src))
}

// Peek returns the lookahead token without consuming it.
func (s *Scanner) Peek() Token {
	return s.token
}

// Next consumes and returns the lookahead token. After EOF or IO_ERROR the
// same token is returned forever.
func (s *Scanner) Next() Token {
	token := s.token
	if !token.Kind.IsTerminal() {
		s.token = s.scan()
	}

	return token
}

// Tokenize consumes the remaining input and returns every token up to and
// including the terminal one.
func (s *Scanner) Tokenize() []Token {
	tokens := make([]Token, 0)

	for {
		token := s.Next()
		tokens = append(tokens, token)

		if token.Kind.IsTerminal() {
			return tokens
		}
	}
}

func (s *Scanner) scan() Token {
	for {
		s.skipWhitespace()
		s.recordPosition()

		c, ok := s.peekChar()
		if !ok {
			if s.err != nil {
				return s.newToken(IO_ERROR, s.err.Error())
			}

			return s.newToken(EOF, "")
		}

		if c == '/' && s.isCommentStart() {
			s.skipComment()
			continue
		}

		switch {
		case isDigit(c):
			return s.processNumber()
		case isLetter(c):
			return s.processIdentifier()
		case c == '\'':
			return s.processCharLiteral()
		case c == '"':
			return s.processStringLiteral()
		}

		return s.processPunctuation()
	}
}

func (s *Scanner) skipWhitespace() {
	for {
		c, ok := s.peekChar()
		if !ok || !isWhite(c) {
			return
		}

		s.getChar()
	}
}

func (s *Scanner) isCommentStart() bool {
	b, err := s.in.Peek(2)
	if err != nil {
		return false
	}

	return b[0] == '/' && b[1] == '/'
}

func (s *Scanner) skipComment() {
	for {
		c, ok := s.peekChar()
		if !ok || c == '\n' {
			return
		}

		s.getChar()
	}
}

func (s *Scanner) processNumber() Token {
	numberBuf := make([]byte, 0)

	for {
		c, ok := s.peekChar()
		if !ok || !isDigit(c) {
			break
		}

		numberBuf = append(numberBuf, s.getChar())
	}

	if c, ok := s.peekChar(); ok && c == 'L' {
		numberBuf = append(numberBuf, s.getChar())
		return s.newToken(LONG, string(numberBuf))
	}

	return s.newToken(INT, string(numberBuf))
}

func (s *Scanner) processIdentifier() Token {
	identifierBuf := make([]byte, 0)

	for {
		c, ok := s.peekChar()
		if !ok || !(isLetter(c) || isDigit(c)) {
			break
		}

		identifierBuf = append(identifierBuf, s.getChar())
	}
	identifier := string(identifierBuf)

	return s.newToken(LookupIdent(identifier), identifier)
}

func (s *Scanner) processCharLiteral() Token {
	s.getChar()

	c, res := s.getCharacter(CHAR)
	switch res {
	case charInvalidChar:
		return s.newToken(INVALID_CHAR, "invalid character in character constant")
	case charInvalidEncoding:
		return s.newToken(INVALID_CHAR, "invalid escape sequence in character constant")
	case charUnexpectedEnd:
		return s.newToken(INVALID_CHAR, "unexpected end of character constant")
	}

	if next, ok := s.peekChar(); !ok || next != '\'' {
		return s.newToken(
			INVALID_CHAR,
			fmt.Sprintf("character constant without closing quote: '%s", Escape(CHAR, string([]byte{c}))))
	}
	s.getChar()

	return s.newToken(CHAR, string([]byte{c}))
}

func (s *Scanner) processStringLiteral() Token {
	s.getChar()

	stringBuf := make([]byte, 0)
	for {
		c, ok := s.peekChar()
		if !ok || c == '\n' {
			return s.newToken(
				INVALID_STRING,
				fmt.Sprintf("unterminated string constant: \"%s", Escape(STRING, string(stringBuf))))
		}

		if c == '"' {
			s.getChar()
			return s.newToken(STRING, string(stringBuf))
		}

		c, res := s.getCharacter(STRING)
		switch res {
		case charInvalidChar:
			return s.newToken(INVALID_STRING, "invalid character in string constant")
		case charInvalidEncoding:
			return s.newToken(INVALID_STRING, "invalid escape sequence in string constant")
		case charUnexpectedEnd:
			return s.newToken(INVALID_STRING, "unexpected end of string constant")
		}

		stringBuf = append(stringBuf, c)
	}
}

// getCharacter reads one, possibly escaped, character of a character or
// string literal. On encoding errors the token position is moved to the
// offending character.
func (s *Scanner) getCharacter(mode TokenKind) (byte, charResult) {
	c, ok := s.peekChar()
	if !ok {
		return 0, charUnexpectedEnd
	}

	if c != '\\' {
		if c == '\n' {
			return 0, charUnexpectedEnd
		}

		if c < ' ' || c == 0x7f {
			s.recordPosition()
			s.getChar()
			return 0, charInvalidChar
		}

		s.getChar()
		return c, charOkay
	}

	s.getChar()
	e, ok := s.peekChar()
	if !ok {
		return 0, charUnexpectedEnd
	}

	switch e {
	case 'n':
		c = '\n'
	case 't':
		c = '\t'
	case '\'':
		c = '\''
	case '"':
		c = '"'
	case '\\':
		c = '\\'
	case '0':
		if mode != CHAR {
			s.recordPosition()
			s.getChar()
			return 0, charInvalidEncoding
		}
		c = 0
	case 'x':
		s.getChar()
		return s.getHexCharacter(mode)
	default:
		s.recordPosition()
		s.getChar()
		return 0, charInvalidEncoding
	}

	s.getChar()
	return c, charOkay
}

func (s *Scanner) getHexCharacter(mode TokenKind) (byte, charResult) {
	line, col := s.line, s.col
	value := 0

	for i := 0; i < 2; i++ {
		h, ok := s.peekChar()
		if !ok {
			return 0, charUnexpectedEnd
		}

		digit := hexValue(h)
		if digit < 0 {
			s.recordPosition()
			return 0, charInvalidEncoding
		}

		s.getChar()
		value = value<<4 | digit
	}

	if value == 0 && mode != CHAR {
		s.startLine, s.startCol = line, col
		return 0, charInvalidEncoding
	}

	return byte(value), charOkay
}

func (s *Scanner) processPunctuation() Token {
	c := s.getChar()

	switch c {
	case ':':
		if s.accept('=') {
			return s.newToken(ASSIGN, ":=")
		}
		return s.newToken(COLON, ":")
	case '+':
		return s.newToken(PLUS, "+")
	case '-':
		return s.newToken(MINUS, "-")
	case '*':
		return s.newToken(ASTERISK, "*")
	case '/':
		return s.newToken(SLASH, "/")
	case '&':
		if s.accept('&') {
			return s.newToken(LAND, "&&")
		}
		return s.newToken(ILLEGAL, "'&' not followed by '&'")
	case '|':
		if s.accept('|') {
			return s.newToken(LOR, "||")
		}
		return s.newToken(ILLEGAL, "'|' not followed by '|'")
	case '=':
		return s.newToken(EQ, "=")
	case '#':
		return s.newToken(NEQ, "#")
	case '<':
		if s.accept('=') {
			return s.newToken(LEQ, "<=")
		}
		return s.newToken(LT, "<")
	case '>':
		if s.accept('=') {
			return s.newToken(GEQ, ">=")
		}
		return s.newToken(GT, ">")
	case ';':
		return s.newToken(SEMICOLON, ";")
	case '.':
		return s.newToken(DOT, ".")
	case ',':
		return s.newToken(COMMA, ",")
	case '!':
		return s.newToken(XMARK, "!")
	case '(':
		return s.newToken(LPAREN, "(")
	case ')':
		return s.newToken(RPAREN, ")")
	case '[':
		return s.newToken(LBRACKET, "[")
	case ']':
		return s.newToken(RBRACKET, "]")
	}

	return s.newToken(ILLEGAL, fmt.Sprintf("invalid character '%s'", Escape(CHAR, string([]byte{c}))))
}

func (s *Scanner) accept(expected byte) bool {
	c, ok := s.peekChar()
	if !ok || c != expected {
		return false
	}

	s.getChar()
	return true
}

func (s *Scanner) newToken(kind TokenKind, value string) Token {
	return Token{
		Kind:  kind,
		Value: value,

		Line:   s.startLine,
		Column: s.startCol,
	}
}

func (s *Scanner) recordPosition() {
	s.startLine = s.line
	s.startCol = s.col
}

// peekChar returns the next input byte without consuming it. ok is false at
// the end of the input and after a read failure, in which case s.err is set.
func (s *Scanner) peekChar() (byte, bool) {
	if s.err != nil {
		return 0, false
	}

	b, err := s.in.Peek(1)
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		return 0, false
	}

	return b[0], true
}

func (s *Scanner) getChar() byte {
	c, err := s.in.ReadByte()
	if err != nil {
		return 0
	}

	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	return c
}

func isWhite(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
