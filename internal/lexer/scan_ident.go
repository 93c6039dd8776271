package lexer

import (
	"rbfmt/internal/diag"
	"rbfmt/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	first := lx.cursor.Peek()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	// foo? foo! - но не foo!= и не foo?: (тернарный оператор)
	if b := lx.cursor.Peek(); (b == '?' || b == '!') && !isUpper(first) {
		next := lx.cursor.PeekAt(1)
		if next != '=' || lx.cursor.PeekAt(2) == '=' || lx.cursor.PeekAt(2) == '~' {
			if b == '!' || next != ':' || lx.cursor.PeekAt(2) == ':' {
				lx.cursor.Bump()
			}
		}
	}
	text := string(lx.file.Content[start:lx.cursor.Off])

	// label: `foo: 1` - но не `Foo::Bar` и не `a ? b : c`
	if lx.cursor.Peek() == ':' && lx.cursor.PeekAt(1) != ':' && lx.ternary == 0 {
		lx.cursor.Bump()
		return lx.emit(token.Label, start)
	}

	kind := token.Ident
	if isUpper(first) {
		kind = token.Const
	}
	afterDot := lx.prev.Kind == token.Dot || lx.prev.Kind == token.AndDot
	if kw, ok := token.LookupKeyword(text); ok && !afterDot && !(lx.prev.Kind == token.KwDef && kw != token.KwSelf) {
		kind = kw
	}
	return lx.emit(kind, start)
}

// @foo, @@foo
func (lx *Lexer) scanVariable() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	kind := token.IVar
	if lx.cursor.Eat('@') {
		kind = token.CVar
	}
	if !isIdentStartByte(lx.cursor.Peek()) {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, "'@' must be followed by a name")
		return tok
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(kind, start)
}

// $foo, $0, $!, $~ ...
func (lx *Lexer) scanGlobal() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	b := lx.cursor.Peek()
	switch {
	case isIdentStartByte(b):
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	case isDec(b):
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	case b == '-':
		lx.cursor.Bump()
		if isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	case b != 0 && b != '\n' && !isSpace(b):
		lx.cursor.Bump()
	default:
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, "'$' must be followed by a name")
		return tok
	}
	return lx.emit(token.GVar, start)
}
