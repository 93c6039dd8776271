package lexer

import (
	"rbfmt/internal/diag"
	"rbfmt/internal/source"
)

// CommentSink receives the lexical facts the formatter needs about comments.
// The lexer is the only place that knows whether a '#' starts a comment or
// sits inside a literal.
type CommentSink interface {
	// Trailing reports a comment that follows code on the same line.
	Trailing(line int, text string)
	// Embdoc reports a =begin/=end block starting at line.
	Embdoc(line int, lines []string)
	// Verbatim reports lines that belong to a literal body (heredoc, multi-line string).
	Verbatim(start, end int)
}

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
	Comments CommentSink   // может быть nil
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}

func (lx *Lexer) verbatim(start, end int) {
	if lx.opts.Comments != nil && end >= start {
		lx.opts.Comments.Verbatim(start, end)
	}
}
