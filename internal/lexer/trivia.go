package lexer

import (
	"strings"

	"rbfmt/internal/diag"
	"rbfmt/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ' и '\t' коалесцируются в один TriviaSpace
// - '#...' до \n -> TriviaComment (отчитывается в CommentSink, если он хвостовой)
// - '\' + '\n' -> TriviaContinuation
// - =begin ... =end в начале строки -> TriviaEmbdoc
// Перевод строки сюда не входит: он значимый токен или поглощается в scanNewline.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case isSpace(b):
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)
			lx.spaceBefore = true

		case b == '#':
			lx.cursor.SkipToEOL()
			tr := lx.pushTrivia(token.TriviaComment, start)
			if lx.lineHasCode && lx.opts.Comments != nil {
				lx.opts.Comments.Trailing(lx.file.Line(tr.Span.Start), strings.TrimRight(tr.Text, " \t"))
			}

		case b == '\\' && lx.cursor.PeekAt(1) == '\n':
			lx.cursor.Bump()
			lx.cursor.Bump()
			lx.pushTrivia(token.TriviaContinuation, start)
			lx.spaceBefore = true
			if lx.heredocResume != 0 {
				lx.cursor.Off = lx.heredocResume
				lx.heredocResume = 0
			}

		case b == '=' && !lx.lineHasCode && lx.cursor.HasPrefix("=begin") && lx.lineStart():
			lx.scanEmbdoc()

		default:
			return
		}
	}
}

func (lx *Lexer) lineStart() bool {
	return lx.cursor.Off == 0 || lx.cursor.Prev() == '\n'
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) token.Trivia {
	sp := lx.cursor.SpanFrom(start)
	tr := token.Trivia{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	lx.hold = append(lx.hold, tr)
	return tr
}

// scanEmbdoc читает =begin ... =end целиком, вместе с переводом строки после =end.
func (lx *Lexer) scanEmbdoc() {
	start := lx.cursor.Mark()
	firstLine := lx.file.Line(uint32(start))
	var lines []string
	closed := false
	for !lx.cursor.EOF() {
		ls := lx.cursor.Off
		lx.cursor.SkipToEOL()
		line := string(lx.file.Content[ls:lx.cursor.Off])
		lines = append(lines, strings.TrimRight(line, " \t"))
		lx.cursor.Eat('\n')
		if len(lines) > 1 && strings.HasPrefix(line, "=end") {
			closed = true
			break
		}
	}
	tr := lx.pushTrivia(token.TriviaEmbdoc, start)
	if !closed {
		lx.errLex(diag.LexUnterminatedEmbdoc, tr.Span, "unterminated =begin block")
	}
	if lx.opts.Comments != nil {
		lx.opts.Comments.Embdoc(firstLine, lines)
	}
}
