package lexer

var keywords = map[string]TokenKind{
	"module":    MODULE,
	"begin":     BEGIN,
	"end":       END,
	"const":     CONST,
	"var":       VAR,
	"procedure": PROCEDURE,
	"function":  FUNCTION,
	"extern":    EXTERN,
	"if":        IF,
	"then":      THEN,
	"else":      ELSE,
	"while":     WHILE,
	"do":        DO,
	"return":    RETURN,
	"true":      TRUE,
	"false":     FALSE,
	"boolean":   TYPE_BOOLEAN,
	"char":      TYPE_CHAR,
	"integer":   TYPE_INTEGER,
	"longint":   TYPE_LONGINT,
}

// LookupIdent maps an identifier to its keyword kind, or IDENT when the
// identifier is not reserved. Matching is case-sensitive.
func LookupIdent(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}

	return IDENT
}
