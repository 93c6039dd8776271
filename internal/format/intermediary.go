package format

import (
	"bytes"
	"strings"
)

// intermediary assembles lines and normalizes blank lines:
//   - no blank lines at the start of the file or before end/else/closers;
//   - none right after a line that opens a block;
//   - exactly one after a line ending in `end`, unless a closer follows;
//   - at most one anywhere else.
//
// Heredoc bodies and the __END__ section are written untouched.
type intermediary struct {
	buf bytes.Buffer

	line       strings.Builder
	hasContent bool
	firstRole  Role
	lineOpens  bool
	lineEnd    bool // последний не-комментарий строки - `end`

	prevOpens bool
	prevEnd   bool
	blanks    int
	started   bool
}

func newIntermediary() *intermediary { return &intermediary{} }

func (im *intermediary) write(t Token) {
	switch t.Kind {
	case HardNewline:
		im.endLine()
	case Heredoc:
		im.flushPartial()
		// тело идёт сразу за строкой-открывателем
		im.blanks = 0
		text := t.Text
		if t.Bare {
			i := strings.LastIndexByte(text, '\n') + 1
			im.buf.WriteString(text[:i])
			im.line.WriteString(text[i:])
			im.hasContent = true
			im.firstRole = RoleNone
		} else {
			im.buf.WriteString(text)
		}
		im.started = true
		im.prevOpens, im.prevEnd = false, false
	case Verbatim:
		im.flushPartial()
		im.writeBlanks(RoleNone)
		im.buf.WriteString(t.Text)
		if !strings.HasSuffix(t.Text, "\n") {
			im.buf.WriteByte('\n')
		}
		im.started = true
		im.prevOpens, im.prevEnd = false, false
	default:
		im.line.WriteString(t.Text)
		if t.Kind != Comment && strings.TrimSpace(t.Text) == "" {
			return
		}
		if !im.hasContent {
			im.hasContent = true
			im.firstRole = t.Role
		}
		switch t.Role {
		case RoleOpener, RoleContinuation, RoleOpenDelim:
			im.lineOpens = true
		}
		if t.Kind != Comment && t.Kind != TrailingComment {
			im.lineEnd = t.Role == RoleEnd
		}
	}
}

func (im *intermediary) endLine() {
	if !im.hasContent {
		im.blanks++
		im.resetLine()
		return
	}
	im.writeBlanks(im.firstRole)
	im.buf.WriteString(strings.TrimRight(im.line.String(), " \t"))
	im.buf.WriteByte('\n')
	im.prevOpens, im.prevEnd = im.lineOpens, im.lineEnd
	im.started = true
	im.resetLine()
}

func (im *intermediary) writeBlanks(first Role) {
	n := min(im.blanks, 1)
	switch {
	case !im.started:
		n = 0
	case first == RoleEnd || first == RoleContinuation || first == RoleCloseDelim || first == RoleLeadingDot:
		n = 0
	case im.prevOpens:
		n = 0
	case im.prevEnd:
		n = 1
	}
	im.blanks = 0
	for range n {
		im.buf.WriteByte('\n')
	}
}

// flushPartial ends a line that has content; a whitespace-only remainder
// is dropped.
func (im *intermediary) flushPartial() {
	if im.hasContent {
		im.endLine()
		return
	}
	im.resetLine()
}

func (im *intermediary) resetLine() {
	im.line.Reset()
	im.hasContent = false
	im.firstRole = RoleNone
	im.lineOpens = false
	im.lineEnd = false
}

// bytes finishes the output: exactly one trailing newline, "\n" for an
// empty file.
func (im *intermediary) bytes() []byte {
	im.flushPartial()
	if im.buf.Len() == 0 {
		return []byte("\n")
	}
	return im.buf.Bytes()
}
