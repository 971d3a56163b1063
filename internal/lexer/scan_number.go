package lexer

import (
	"github.com/maciek-pioro/compiler/internal/diag"
	"github.com/maciek-pioro/compiler/internal/token"
)

// Поддержка: 0, 123, 0x1F, 1.25. Экспоненты и суффиксов в языке нет.
// Неверные формы: репорт в opts.Reporter и токен Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		digits := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			digits++
		}
		if digits == 0 {
			return lx.badNumber(start, "expected hex digit after '0x'")
		}
		return lx.finishNumber(token.IntLit, start)
	}

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() != '.' {
		return lx.finishNumber(token.IntLit, start)
	}

	lx.cursor.Bump() // '.'
	if !isDec(lx.cursor.Peek()) {
		return lx.badNumber(start, "expected digit after '.'")
	}
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.finishNumber(token.DoubleLit, start)
}

// finishNumber отклоняет числа, к которым прилип идентификатор ("12ab", "0x1g").
func (lx *Lexer) finishNumber(kind token.Kind, start Mark) token.Token {
	if isIdentStartByte(lx.cursor.Peek()) || lx.cursor.Peek() == '.' {
		for isIdentContinueByte(lx.cursor.Peek()) || lx.cursor.Peek() == '.' {
			lx.cursor.Bump()
		}
		return lx.badNumber(start, "malformed number literal")
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexBadNumber, tok.Span, msg)
	return tok
}
