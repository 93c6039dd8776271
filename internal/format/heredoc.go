package format

import "strings"

// HeredocKind distinguishes <<ID, <<-ID and <<~ID.
type HeredocKind uint8

const (
	HeredocPlain HeredocKind = iota
	HeredocDash
	HeredocSquiggly
)

// HeredocString is a heredoc body waiting for the end of its opener line.
type HeredocString struct {
	Symbol string
	Kind   HeredocKind
	// Body - строки тела, каждая с '\n'. Для <<~ уже без общего отступа.
	Body string

	reindent bool
}

// squigglyDedent strips the common indentation the way Ruby does for <<~:
// whitespace-only lines do not take part in the minimum. Bodies indented
// with tabs are left alone.
func squigglyDedent(body string) (string, bool) {
	lines := splitLines(body)
	indent := -1
	for _, l := range lines {
		if strings.TrimLeft(l, " \t") == "" {
			continue
		}
		ws := len(l) - len(strings.TrimLeft(l, " \t"))
		if strings.ContainsRune(l[:ws], '\t') {
			return body, false
		}
		if indent < 0 || ws < indent {
			indent = ws
		}
	}
	if indent < 0 {
		indent = 0
	}
	var b strings.Builder
	for _, l := range lines {
		switch {
		case len(l) >= indent:
			b.WriteString(l[indent:])
		default:
			b.WriteString(strings.TrimLeft(l, " \t"))
		}
		b.WriteByte('\n')
	}
	return b.String(), true
}

// splitLines splits a body whose lines all end in '\n'.
func splitLines(body string) []string {
	if body == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(body, "\n"), "\n")
}

// render returns the body and the closing line. depth is the depth of the
// line that holds the opener.
func (h *HeredocString) render(depth int, bare bool) string {
	var b strings.Builder
	if h.Kind == HeredocSquiggly && h.reindent {
		pad := indentString(depth + 1)
		for _, l := range splitLines(h.Body) {
			if l != "" {
				b.WriteString(pad)
				b.WriteString(l)
			}
			b.WriteByte('\n')
		}
	} else {
		b.WriteString(h.Body)
	}
	if h.Kind != HeredocPlain {
		b.WriteString(indentString(depth))
	}
	b.WriteString(h.Symbol)
	if !bare {
		b.WriteByte('\n')
	}
	return b.String()
}

// rawText concatenates concrete tokens without resolution; used for heredoc
// bodies, which must not go through the line normalizer.
func rawText(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.text(true))
	}
	return b.String()
}
