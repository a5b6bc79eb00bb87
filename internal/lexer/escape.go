package lexer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidEncoding = errors.New("invalid escape sequence")
	ErrUnexpectedEnd   = errors.New("unexpected end of escape sequence")
)

// Escape renders a decoded character or string literal value as it would be
// written in source. For CHAR only the first byte is rendered. It is the
// inverse of Unescape.
func Escape(kind TokenKind, text string) string {
	var sb strings.Builder

	for i := 0; i < len(text); i++ {
		c := text[i]

		switch {
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == 0:
			sb.WriteString(`\0`)
		case c == '\'' && kind == CHAR:
			sb.WriteString(`\'`)
		case c == '"' && kind == STRING:
			sb.WriteString(`\"`)
		case c == '\\':
			sb.WriteString(`\\`)
		case c < ' ' || c >= 0x7f:
			fmt.Fprintf(&sb, `\x%02x`, c)
		default:
			sb.WriteByte(c)
		}

		if kind == CHAR {
			break
		}
	}

	return sb.String()
}

// Unescape decodes the escape sequences of a literal body. It is the inverse
// of Escape.
func Unescape(text string) (string, error) {
	var sb strings.Builder

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}

		i++
		if i >= len(text) {
			return sb.String(), ErrUnexpectedEnd
		}

		switch text[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case '0':
			sb.WriteByte(0)
		case '\'':
			sb.WriteByte('\'')
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case 'x':
			if i+2 >= len(text) {
				return sb.String(), ErrUnexpectedEnd
			}
			hi, lo := hexValue(text[i+1]), hexValue(text[i+2])
			if hi < 0 || lo < 0 {
				return sb.String(), ErrInvalidEncoding
			}
			sb.WriteByte(byte(hi<<4 | lo))
			i += 2
		default:
			return sb.String(), ErrInvalidEncoding
		}
	}

	return sb.String(), nil
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}

	return -1
}
