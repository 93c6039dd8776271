package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// lineSink receives concrete tokens with resolved text.
type lineSink interface {
	write(t Token)
}

type stringSink struct {
	b strings.Builder
}

func (s *stringSink) write(t Token) {
	if t.Kind == HardNewline {
		s.b.WriteByte('\n')
		return
	}
	s.b.WriteString(t.Text)
}

// writer is the resolution pass: it decides every breakable from the
// current column and turns abstract tokens into concrete ones.
type writer struct {
	width         int
	col           int
	lineDepth     int
	prevLineDepth int
	pending       []*HeredocString // тела из свёрнутых мягких переводов строк
	commented     bool             // строка уже закончилась комментарием
	out           lineSink
}

func newWriter(width int, out lineSink) *writer {
	return &writer{width: width, out: out}
}

func (w *writer) writeTokens(toks []Token, multi bool) {
	for _, t := range toks {
		w.writeToken(t, multi)
	}
}

func (w *writer) writeToken(t Token, multi bool) {
	switch t.Kind {
	case Breakable:
		w.writeEntry(t.Entry, multi)
	case HardNewline:
		w.newline(nil)
	case SoftNewline, BreakSpace:
		if multi {
			w.newline(t.Heredocs)
			return
		}
		w.pending = append(w.pending, t.Heredocs...)
		w.text(Token{Kind: Space, Text: t.text(false)})
	case Heredoc:
		w.heredoc(t.Heredoc, t.Bare)
	case Verbatim:
		w.out.write(Token{Kind: Verbatim, Text: t.Text})
		w.col = 0
		w.commented = false
	case Indent, SoftIndent:
		if t.Kind == SoftIndent && !multi {
			return
		}
		if w.col == 0 {
			w.lineDepth = t.Depth
		}
		w.text(Token{Kind: Indent, Text: indentString(t.Depth)})
	case CommaSpace:
		w.text(Token{Kind: Comma, Text: t.text(multi)})
	default:
		t.Text = t.text(multi)
		w.text(t)
	}
}

func (w *writer) writeEntry(e *BreakableEntry, parentMulti bool) {
	multi := parentMulti && e.multiAt(w.col, w.width)
	d := e.delims
	end := singleTail(e.tokens)
	if multi {
		end = multiTail(e)
	}
	if open := d.open(multi); open != "" {
		role := RoleNone
		if multi {
			role = RoleOpenDelim
		}
		w.text(Token{Kind: Delim, Text: open, Role: role})
	}
	w.writeTokens(e.tokens[:end], multi)
	for _, t := range e.tokens[end:] {
		w.pending = append(w.pending, t.Heredocs...)
	}
	if cl := d.close(multi); cl != "" {
		role := RoleNone
		if multi {
			role = RoleCloseDelim
		}
		w.text(Token{Kind: Delim, Text: cl, Role: role})
	}
}

func (w *writer) text(t Token) {
	if t.Text == "" && t.Kind != Comment {
		return
	}
	if w.commented && strings.TrimSpace(t.Text) != "" {
		// code after a comment moves to a continuation line
		w.newline(nil)
		w.lineDepth = w.prevLineDepth + 1
		w.text(Token{Kind: Indent, Text: indentString(w.lineDepth)})
	}
	w.out.write(t)
	if t.Kind == Comment || t.Kind == TrailingComment {
		w.commented = true
	}
	if i := strings.LastIndexByte(t.Text, '\n'); i >= 0 {
		w.col = runewidth.StringWidth(t.Text[i+1:])
		return
	}
	w.col += runewidth.StringWidth(t.Text)
}

// newline ends the line and flushes heredoc bodies opened on it.
func (w *writer) newline(own []*HeredocString) {
	w.out.write(Token{Kind: HardNewline})
	w.col = 0
	w.commented = false
	w.prevLineDepth, w.lineDepth = w.lineDepth, 0
	hs := append(w.pending, own...)
	w.pending = nil
	for _, h := range hs {
		w.heredoc(h, false)
	}
}

func (w *writer) heredoc(h *HeredocString, bare bool) {
	s := h.render(w.prevLineDepth, bare)
	w.out.write(Token{Kind: Heredoc, Text: s, Bare: bare})
	w.col = 0
	w.commented = false
	if bare {
		w.col = runewidth.StringWidth(s[strings.LastIndexByte(s, '\n')+1:])
	}
}

// flush emits bodies still waiting when the stream ends without a newline.
func (w *writer) flush() {
	if len(w.pending) > 0 {
		w.newline(nil)
	}
}
