package lexer

import (
	"fmt"

	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/token"
)

// scanString сканирует "..." с escape \n \t \r \" \\. Text включает кавычки,
// escape-последовательности раскрывает кодогенератор.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		case '\\':
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
			esc := lx.cursor.Bump()
			switch esc {
			case 'n', 't', 'r', '"', '\\':
			default:
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), fmt.Sprintf("unknown escape sequence '\\%c'", esc))
			}
		case '\n':
			tok := lx.emit(token.Invalid, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "newline in string literal")
			return tok
		default:
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}
