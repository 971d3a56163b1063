package lexer

import (
	"github.com/maciek-pioro/compiler/internal/diag"
)

// skipTrivia пропускает пробелы, переводы строк и комментарии (// и /* */).
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			lx.cursor.Bump()
		case '/':
			if !lx.skipComment() {
				return
			}
		default:
			return
		}
	}
}

func (lx *Lexer) skipComment() bool {
	start := lx.cursor.Mark()
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != '/' {
		return false
	}
	switch b1 {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return true
	case '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			if lx.try2('*', '/') {
				return true
			}
			lx.cursor.Bump()
		}
		lx.errLex(diag.LexUnterminatedComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		return true
	default:
		return false
	}
}
