package lexer

// TokenScanner is the pull interface the parser consumes tokens through.
type TokenScanner interface {
	Next() Token
	Peek() Token
}

// SimpleTokenScanner replays an already tokenized stream. Once the last
// token is reached it is returned forever.
type SimpleTokenScanner struct {
	tokens []Token

	pos int
}

func NewTokenScanner(tokens []Token) TokenScanner {
	if len(tokens) == 0 {
		tokens = []Token{{Kind: EOF, Line: 1, Column: 1}}
	}

	return &SimpleTokenScanner{
		tokens: tokens,
	}
}

func (s *SimpleTokenScanner) Peek() Token {
	return s.tokens[s.pos]
}

func (s *SimpleTokenScanner) Next() Token {
	token := s.tokens[s.pos]
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}

	return token
}
