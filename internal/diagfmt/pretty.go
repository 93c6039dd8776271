package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rbfmt/internal/diag"
	"rbfmt/internal/source"
)

const tabWidth = 4

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	PrettyItems(w, bag.Items(), fs, opts)
}

// PrettyItems is Pretty for diagnostics outside a Bag (printer.ParseError).
func PrettyItems(w io.Writer, items []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range items {
		f := fs.Get(d.Primary.File)
		start, end := fs.Resolve(d.Primary)
		path := formatPath(f.Path, opts.PathMode, opts.BaseDir)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			p.path.Sprint(path), start.Line, start.Col,
			p.severity(d.Severity).Sprint(d.Severity.String()), d.Code.ID(), d.Message)
		writeContext(w, f, start, end, int(opts.Context), p)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "%s: %s:%d:%d: %s\n", p.note.Sprint("note"),
				formatPath(nf.Path, opts.PathMode, opts.BaseDir), ns.Line, ns.Col, n.Msg)
		}
	}
}

func writeContext(w io.Writer, f *source.File, start, end source.LineCol, context int, p palette) {
	if len(f.Content) == 0 {
		return
	}
	first := int(start.Line) - context
	if first < 1 {
		first = 1
	}
	last := int(start.Line) + context
	if n := f.LineCount(); last > n {
		last = n
	}
	gutter := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln)) // #nosec G115 -- bounded by LineCount
		fmt.Fprintf(w, " %*d | %s\n", gutter, ln, expandTabs(text))
		if ln != int(start.Line) {
			continue
		}
		pad, width := caretRange(text, start, end)
		fmt.Fprintf(w, " %*s | %s%s\n", gutter, "", strings.Repeat(" ", pad),
			p.caret.Sprint("^"+strings.Repeat("~", width-1)))
	}
}

// caretRange returns the display offset and width of the span on the
// first line; a span that continues below is underlined to the line end.
func caretRange(text string, start, end source.LineCol) (pad, width int) {
	from := clampCol(text, start.Col)
	to := len(text)
	if end.Line == start.Line {
		to = clampCol(text, end.Col)
	}
	pad = runewidth.StringWidth(expandTabs(text[:from]))
	width = runewidth.StringWidth(expandTabs(text[from:max(from, to)]))
	if width < 1 {
		width = 1
	}
	return pad, width
}

func clampCol(text string, col uint32) int {
	i := int(col) - 1
	if i < 0 {
		return 0
	}
	if i > len(text) {
		return len(text)
	}
	return i
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

type palette struct {
	path, note, caret  *color.Color
	err, warning, info *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:    color.New(color.Bold),
		note:    color.New(color.FgCyan),
		caret:   color.New(color.FgGreen, color.Bold),
		err:     color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgBlue),
	}
	for _, c := range []*color.Color{p.path, p.note, p.caret, p.err, p.warning, p.info} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warning
	}
	return p.info
}
