package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes the unresolved token tree, one token per line. Used by
// `rbfmt tokens` and in tests.
func Dump(w io.Writer, toks []Token) error {
	var b strings.Builder
	dumpTokens(&b, toks, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func dumpTokens(b *strings.Builder, toks []Token, level int) {
	pad := strings.Repeat("  ", level)
	for _, t := range toks {
		b.WriteString(pad)
		b.WriteString(t.Kind.String())
		switch t.Kind {
		case Breakable:
			fmt.Fprintf(b, " %s depth=%d lines=%v\n", t.Entry.delims.Name, t.Entry.depth, t.Entry.Lines())
			dumpTokens(b, t.Entry.tokens, level+1)
			continue
		case Indent, SoftIndent:
			fmt.Fprintf(b, " %d", t.Depth)
		case Heredoc:
			b.WriteString(" " + t.Heredoc.Symbol)
		case SoftNewline, BreakSpace:
			for _, h := range t.Heredocs {
				b.WriteString(" <<" + h.Symbol)
			}
		default:
			if t.Text != "" {
				b.WriteString(" " + strconv.Quote(t.Text))
			}
		}
		b.WriteByte('\n')
	}
}
