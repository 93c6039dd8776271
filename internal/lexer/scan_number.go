package lexer

import (
	"rbfmt/internal/diag"
	"rbfmt/internal/token"
)

// scanNumber: 42, 1_000, 0x2A, 0b1010, 0o17, 017, 1.5, 1e-3, 2r, 3i.
// Текст сохраняется как есть - форматтер не нормализует литералы.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.Int

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X', 'b', 'B', 'o', 'O', 'd', 'D':
			lx.cursor.Bump()
			lx.cursor.Bump()
			n := lx.digits(isHexOrUnderscore)
			if n == 0 {
				tok := lx.emit(token.Int, start)
				lx.errLex(diag.LexBadNumber, tok.Span, "number prefix without digits")
				return tok
			}
			return lx.emit(token.Int, start)
		}
	}

	lx.digits(isDecOrUnderscore)
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.Float
		lx.cursor.Bump()
		lx.digits(isDecOrUnderscore)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			kind = token.Float
			lx.cursor.Bump()
			if next == '+' || next == '-' {
				lx.cursor.Bump()
			}
			lx.digits(isDecOrUnderscore)
		}
	}
	// rational / imaginary
	for _, suffix := range []byte{'r', 'i'} {
		if lx.cursor.Peek() == suffix && !isIdentContinueByte(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(kind, start)
	if isIdentStartByte(lx.cursor.Peek()) {
		lx.errLex(diag.LexBadNumber, tok.Span, "identifier directly after number")
	}
	return tok
}

func (lx *Lexer) digits(accept func(byte) bool) int {
	n := 0
	for accept(lx.cursor.Peek()) {
		lx.cursor.Bump()
		n++
	}
	return n
}

func isDecOrUnderscore(b byte) bool { return isDec(b) || b == '_' }

func isHexOrUnderscore(b byte) bool {
	return isDec(b) || b == '_' || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
