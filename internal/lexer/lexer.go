package lexer

import (
	"rbfmt/internal/source"
	"rbfmt/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia

	prev        token.Token // последний значимый токен
	lineHasCode bool        // на текущей строке уже был значимый токен
	spaceBefore bool
	ternary     int // незакрытые '?' тернарного оператора
	// heredocResume - смещение, с которого продолжается чтение после
	// конца текущей строки (тела heredoc'ов уже прочитаны); 0 - нет heredoc'ов.
	heredocResume uint32
	done          bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		spaceBefore: true,
		prev:        token.Token{Kind: token.Newline},
	}
}

// Next возвращает следующий значимый токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	for {
		tok, ok := lx.next()
		if ok {
			lx.prev = tok
			return tok
		}
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// next returns ok=false when it consumed something that yields no token
// (an insignificant newline), so the caller loops.
func (lx *Lexer) next() (token.Token, bool) {
	if lx.done {
		return lx.eof(), true
	}
	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		lx.done = true
		return lx.eof(), true
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case ch == '\n':
		return lx.scanNewline()
	case ch == ';':
		tok = lx.single(token.Semicolon)
	case ch == '_' && lx.atDataSection():
		tok = lx.scanDataSection()
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'' || ch == '`':
		tok = lx.scanQuoted()
	case ch == '@':
		tok = lx.scanVariable()
	case ch == '$':
		tok = lx.scanGlobal()
	case ch == ':' && lx.symbolAhead():
		tok = lx.scanSymbol()
	case ch == '%' && lx.percentLiteralAhead():
		tok = lx.scanPercent()
	case ch == '/' && lx.regexpAllowed():
		tok = lx.scanRegexp()
	case ch == '?' && lx.charLiteralAhead():
		tok = lx.scanCharLiteral()
	case ch == '<' && lx.heredocAhead():
		tok = lx.scanHeredoc()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	return lx.finish(tok), true
}

// finish заполняет позиционные поля и trivia.
func (lx *Lexer) finish(tok token.Token) token.Token {
	tok.Line = lx.file.Line(tok.Span.Start)
	tok.EndLine = tok.Line
	if tok.Span.End > tok.Span.Start {
		tok.EndLine = lx.file.Line(tok.Span.End - 1)
	}
	if tok.Heredoc != nil {
		tok.EndLine = tok.Line
	}
	tok.SpaceBefore = lx.spaceBefore
	if b := lx.cursor.Peek(); lx.cursor.EOF() || isSpace(b) || b == '\n' || b == '\\' {
		tok.SpaceAfter = true
	}
	tok.Leading = lx.hold
	lx.hold = nil
	lx.lineHasCode = true
	lx.spaceBefore = false
	return tok
}

func (lx *Lexer) single(k token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return lx.emit(k, start)
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) eof() token.Token {
	sp := source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
	return token.Token{Kind: token.EOF, Span: sp, Line: lx.file.Line(sp.Start), Leading: lx.takeHold()}
}

func (lx *Lexer) takeHold() []token.Trivia {
	h := lx.hold
	lx.hold = nil
	return h
}

// scanNewline потребляет '\n', перепрыгивает через тела heredoc'ов и
// решает, значим ли перевод строки.
func (lx *Lexer) scanNewline() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	nl := lx.finish(lx.emit(token.Newline, start))
	if lx.heredocResume != 0 {
		lx.cursor.Off = lx.heredocResume
		lx.heredocResume = 0
	}
	lx.lineHasCode = false
	lx.spaceBefore = true

	switch {
	case lx.prev.Kind == token.Newline || lx.prev.Kind == token.Semicolon,
		lx.prev.Kind.BeginsExpression(),
		lx.leadingDotAhead():
		// незначимый перевод строки: trivia переходят к следующему токену
		lx.hold = nl.Leading
		return token.Token{}, false
	}
	return nl, true
}

// leadingDotAhead смотрит вперёд через пустые строки и комментарии:
// строка, начинающаяся с '.' или '&.', продолжает предыдущее выражение.
func (lx *Lexer) leadingDotAhead() bool {
	c := lx.cursor
	for !c.EOF() {
		b := c.Peek()
		switch {
		case isSpace(b) || b == '\n':
			c.Bump()
		case b == '#':
			c.SkipToEOL()
		case b == '.':
			return c.PeekAt(1) != '.'
		case b == '&':
			return c.PeekAt(1) == '.'
		default:
			return false
		}
	}
	return false
}

// exprBeg сообщает, ожидается ли сейчас начало выражения (а не оператор).
func (lx *Lexer) exprBeg() bool {
	k := lx.prev.Kind
	if k == token.Newline || k == token.Semicolon || k == token.Invalid {
		return true
	}
	if k.BeginsExpression() {
		return true
	}
	switch k {
	case token.KwIf, token.KwUnless, token.KwWhile, token.KwUntil, token.KwWhen, token.KwIn,
		token.KwReturn, token.KwBreak, token.KwNext, token.KwThen, token.KwElse, token.KwElsif,
		token.KwDo, token.KwCase, token.KwYield, token.KwAnd, token.KwOr, token.KwNot,
		token.KwBegin, token.KwEnsure, token.KwRescue, token.Label:
		return true
	}
	return false
}

// commandArgStart - эвристика Ruby для `foo -1`, `puts /re/`, `p :sym`:
// идентификатор, затем пробел, затем оператор вплотную к операнду.
func (lx *Lexer) commandArgStart() bool {
	if lx.prev.Kind != token.Ident || !lx.spaceBefore {
		return false
	}
	next := lx.cursor.PeekAt(1)
	return next != ' ' && next != '\n' && next != '=' && next != 0
}

func (lx *Lexer) atDataSection() bool {
	if lx.lineHasCode || (lx.cursor.Off > 0 && lx.cursor.Prev() != '\n') {
		return false
	}
	if !lx.cursor.HasPrefix("__END__") {
		return false
	}
	after := lx.cursor.PeekAt(7)
	return after == '\n' || after == 0
}

func (lx *Lexer) scanDataSection() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.DataSection, start)
	first := lx.file.Line(tok.Span.Start)
	last := lx.file.Line(tok.Span.End - 1)
	lx.verbatim(first+1, last)
	return tok
}
