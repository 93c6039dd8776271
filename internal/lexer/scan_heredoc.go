package lexer

import (
	"strings"

	"rbfmt/internal/diag"
	"rbfmt/internal/source"
	"rbfmt/internal/token"
)

// heredocAhead: <<ID, <<-ID, <<~ID, <<~'ID', <<"ID".
// `x << y` и `x<<y` остаются сдвигом.
func (lx *Lexer) heredocAhead() bool {
	if lx.cursor.PeekAt(1) != '<' {
		return false
	}
	at := uint32(2)
	if b := lx.cursor.PeekAt(at); b == '~' || b == '-' {
		at++
	}
	b := lx.cursor.PeekAt(at)
	quoted := b == '"' || b == '\'' || b == '`'
	if !quoted && !isIdentStartByte(b) {
		return false
	}
	if lx.exprBeg() {
		return true
	}
	// `foo <<~EOS` - аргумент команды
	return lx.prev.Kind == token.Ident && lx.spaceBefore && (quoted || at == 3 || isUpper(b))
}

func (lx *Lexer) scanHeredoc() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()

	body := &token.HeredocBody{Kind: token.HeredocPlain}
	switch {
	case lx.cursor.Eat('~'):
		body.Kind = token.HeredocSquiggly
	case lx.cursor.Eat('-'):
		body.Kind = token.HeredocDash
	}

	if q := lx.cursor.Peek(); q == '"' || q == '\'' || q == '`' {
		lx.cursor.Bump()
		idStart := lx.cursor.Off
		for !lx.cursor.EOF() && lx.cursor.Peek() != q && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		body.ID = string(lx.file.Content[idStart:lx.cursor.Off])
		lx.cursor.Eat(q)
	} else {
		idStart := lx.cursor.Off
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		body.ID = string(lx.file.Content[idStart:lx.cursor.Off])
	}

	tok := lx.emit(token.Heredoc, start)
	tok.Heredoc = body
	lx.readHeredocBody(tok.Span, body)
	return tok
}

// readHeredocBody читает тело, не двигая основной курсор: тело начинается
// после конца текущей строки (или после тела предыдущего heredoc'а на этой строке).
func (lx *Lexer) readHeredocBody(opener source.Span, body *token.HeredocBody) {
	c := lx.cursor
	if lx.heredocResume != 0 {
		c.Off = lx.heredocResume
	} else {
		c.SkipToEOL()
		c.Eat('\n')
	}
	bodyStart := c.Off
	firstLine := lx.file.Line(bodyStart)

	var b strings.Builder
	for !c.EOF() {
		ls := c.Off
		c.SkipToEOL()
		line := string(lx.file.Content[ls:c.Off])
		c.Eat('\n')

		candidate := line
		if body.Kind != token.HeredocPlain {
			candidate = strings.TrimLeft(line, " \t")
		}
		if strings.TrimRight(candidate, " \t") == body.ID {
			body.Body = b.String()
			body.EndLine = lx.file.Line(uint32(ls))
			lx.heredocResume = c.Off
			lx.verbatim(firstLine, body.EndLine)
			return
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	body.Body = b.String()
	body.EndLine = lx.file.LineCount()
	lx.heredocResume = c.Off
	lx.verbatim(firstLine, body.EndLine)
	lx.errLex(diag.LexUnterminatedHeredoc, opener, "heredoc terminator "+body.ID+" not found")
}
