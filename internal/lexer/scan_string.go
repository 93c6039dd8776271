package lexer

import (
	"rbfmt/internal/diag"
	"rbfmt/internal/token"
)

// scanQuoted: "..." '...' `...`. Интерполяция #{...} пропускается целиком,
// вложенные строки внутри неё тоже.
func (lx *Lexer) scanQuoted() token.Token {
	start := lx.cursor.Mark()
	q := lx.cursor.Bump()
	kind := token.String
	if q == '`' {
		kind = token.XString
	}
	if !lx.skipDelimited(q, q, q != '\'') {
		tok := lx.emit(kind, start)
		lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
		return tok
	}
	// "foo": 1 - строковый ключ хеша
	if kind == token.String && lx.cursor.Peek() == ':' && lx.cursor.PeekAt(1) != ':' && lx.ternary == 0 &&
		lx.prev.Kind != token.Question {
		lx.cursor.Bump()
		return lx.markMultiline(lx.emit(token.Label, start))
	}
	return lx.markMultiline(lx.emit(kind, start))
}

// markMultiline сообщает строки-продолжения литерала как verbatim.
func (lx *Lexer) markMultiline(tok token.Token) token.Token {
	first := lx.file.Line(tok.Span.Start)
	last := lx.file.Line(tok.Span.End - 1)
	lx.verbatim(first+1, last)
	return tok
}

// skipDelimited потребляет тело литерала до закрывающего close (открывающий
// уже съеден). open != close означает вложенные скобки: %w(a (b) c).
func (lx *Lexer) skipDelimited(open, close byte, interp bool) bool {
	depth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch {
		case b == '\\':
			lx.cursor.Bump()
		case interp && b == '#' && lx.cursor.Peek() == '{':
			lx.cursor.Bump()
			if !lx.skipInterpolation() {
				return false
			}
		case open != close && b == open:
			depth++
		case b == close:
			if depth == 0 {
				return true
			}
			depth--
		}
	}
	return false
}

// skipInterpolation пропускает #{ ... } с учётом вложенных скобок и строк.
func (lx *Lexer) skipInterpolation() bool {
	depth := 0
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch b {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return true
			}
			depth--
		case '"', '\'', '`':
			if !lx.skipDelimited(b, b, b != '\'') {
				return false
			}
		case '#':
			// комментарий внутри интерполяции - до конца строки
			if lx.cursor.Peek() != '{' {
				lx.cursor.SkipToEOL()
			}
		}
	}
	return false
}

// symbolAhead: ':' начинает символ, а не оператор.
func (lx *Lexer) symbolAhead() bool {
	next := lx.cursor.PeekAt(1)
	if next == ':' || next == 0 || isSpace(next) || next == '\n' {
		return false
	}
	if lx.ternary > 0 && !lx.exprBeg() {
		return false
	}
	if next == '"' || next == '\'' || isIdentStartByte(next) || next == '@' || next == '$' {
		return true
	}
	_, ok := operatorSymbol(lx.cursor, 1)
	return ok
}

var symbolOperators = []string{
	"[]=", "[]", "<=>", "===", "==", "=~", "!=", "!~", "**", "+@", "-@", "<<", ">>", "<=", ">=",
	"+", "-", "*", "/", "%", "<", ">", "!", "&", "|", "^", "~",
}

func operatorSymbol(c Cursor, at uint32) (int, bool) {
	c.Off += at
	for _, op := range symbolOperators {
		if c.HasPrefix(op) {
			return len(op), true
		}
	}
	return 0, false
}

func (lx *Lexer) scanSymbol() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // ':'
	b := lx.cursor.Peek()
	switch {
	case b == '"' || b == '\'':
		lx.cursor.Bump()
		if !lx.skipDelimited(b, b, b == '"') {
			tok := lx.emit(token.Symbol, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated quoted symbol")
			return tok
		}
	case b == '@' || b == '$':
		lx.cursor.Bump()
		lx.cursor.Eat('@')
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	case isIdentStartByte(b):
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		switch lx.cursor.Peek() {
		case '?', '!':
			if lx.cursor.PeekAt(1) != '=' {
				lx.cursor.Bump()
			}
		case '=':
			// :name= - сеттер, но не :a=>1 и не :a==b
			if n := lx.cursor.PeekAt(1); n != '>' && n != '=' && n != '~' {
				lx.cursor.Bump()
			}
		}
	default:
		n, _ := operatorSymbol(lx.cursor, 0)
		for range n {
			lx.cursor.Bump()
		}
	}
	return lx.emit(token.Symbol, start)
}

// percentLiteralAhead: %w[..] %i(..) %q{..} %Q|..| %r{..} %(..) и т.д.
func (lx *Lexer) percentLiteralAhead() bool {
	if !lx.exprBeg() && !lx.commandArgStart() {
		return false
	}
	next := lx.cursor.PeekAt(1)
	switch next {
	case 'w', 'W', 'i', 'I', 'q', 'Q', 'r', 's', 'x':
		d := lx.cursor.PeekAt(2)
		return d != 0 && !isIdentContinueByte(d) && !isSpace(d) && d != '\n'
	case '(', '[', '{', '<', '|', '!', '/':
		return true
	}
	return false
}

func (lx *Lexer) scanPercent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '%'
	kind := token.String
	interp := true
	switch lx.cursor.Peek() {
	case 'w', 'i':
		kind, interp = token.Words, false
		lx.cursor.Bump()
	case 'W', 'I':
		kind = token.Words
		lx.cursor.Bump()
	case 'q':
		interp = false
		lx.cursor.Bump()
	case 'Q':
		lx.cursor.Bump()
	case 'r':
		kind = token.Regexp
		lx.cursor.Bump()
	case 's':
		kind, interp = token.Symbol, false
		lx.cursor.Bump()
	case 'x':
		kind = token.XString
		lx.cursor.Bump()
	}
	open := lx.cursor.Bump()
	if !lx.skipDelimited(open, closingDelimiter(open), interp) {
		tok := lx.emit(kind, start)
		lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated percent literal")
		return tok
	}
	if kind == token.Regexp {
		lx.regexpFlags()
	}
	return lx.markMultiline(lx.emit(kind, start))
}

func (lx *Lexer) regexpAllowed() bool {
	if lx.exprBeg() {
		return true
	}
	return lx.commandArgStart()
}

func (lx *Lexer) scanRegexp() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	inClass := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch {
		case b == '\\':
			lx.cursor.Bump()
		case b == '#' && lx.cursor.Peek() == '{':
			lx.cursor.Bump()
			lx.skipInterpolation()
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			lx.regexpFlags()
			return lx.markMultiline(lx.emit(token.Regexp, start))
		}
	}
	tok := lx.emit(token.Regexp, start)
	lx.errLex(diag.LexUnterminatedRegexp, tok.Span, "unterminated regexp literal")
	return tok
}

func (lx *Lexer) regexpFlags() {
	for {
		switch lx.cursor.Peek() {
		case 'i', 'm', 'x', 'o', 'u', 'e', 's', 'n':
			lx.cursor.Bump()
		default:
			return
		}
	}
}

// charLiteralAhead: ?a, ?\n - только в позиции начала выражения.
func (lx *Lexer) charLiteralAhead() bool {
	if !lx.exprBeg() && !lx.commandArgStart() {
		return false
	}
	next := lx.cursor.PeekAt(1)
	if next == 0 || isSpace(next) || next == '\n' {
		return false
	}
	if next == '\\' {
		return true
	}
	return !isIdentContinueByte(lx.cursor.PeekAt(2))
}

func (lx *Lexer) scanCharLiteral() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	if lx.cursor.Bump() == '\\' {
		// `?\` перед переводом строки не поддерживаем: перевод строки
		// стал бы частью литерала
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			tok := lx.emit(token.String, start)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "character literal escapes a line break")
			return tok
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.String, start)
}
