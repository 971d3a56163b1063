package lexer

import (
	"fmt"

	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/token"
)

// Жадность: сначала 2-символьные (&&, ||, ==, !=, <=, >=), затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try2('&', '&'):
		return lx.emit(token.AndAnd, start)
	case lx.try2('|', '|'):
		return lx.emit(token.OrOr, start)
	case lx.try2('=', '='):
		return lx.emit(token.EqEq, start)
	case lx.try2('!', '='):
		return lx.emit(token.BangEq, start)
	case lx.try2('<', '='):
		return lx.emit(token.LtEq, start)
	case lx.try2('>', '='):
		return lx.emit(token.GtEq, start)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return lx.emit(token.Plus, start)
	case '-':
		return lx.emit(token.Minus, start)
	case '*':
		return lx.emit(token.Star, start)
	case '/':
		return lx.emit(token.Slash, start)
	case '=':
		return lx.emit(token.Assign, start)
	case '!':
		return lx.emit(token.Bang, start)
	case '~':
		return lx.emit(token.Tilde, start)
	case '<':
		return lx.emit(token.Lt, start)
	case '>':
		return lx.emit(token.Gt, start)
	case '&':
		return lx.emit(token.Amp, start)
	case '|':
		return lx.emit(token.Pipe, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case ',':
		return lx.emit(token.Comma, start)
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '{':
		return lx.emit(token.LBrace, start)
	case '}':
		return lx.emit(token.RBrace, start)
	default:
		// неизвестный символ; многобайтовую руну съедаем целиком
		for !lx.cursor.EOF() && lx.cursor.Peek()&0xC0 == 0x80 {
			lx.cursor.Bump()
		}
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", tok.Text))
		return tok
	}
}
