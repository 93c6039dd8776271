package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Fragment is a detached piece of the stream, built once by Speculate so
// the visitor can measure it before deciding the layout around it. Every
// fragment must be spliced exactly once: it already owns the comments
// placed while it was built.
type Fragment struct {
	tokens   []Token
	startCol int
	width    int
	origin   *fragmentOrigin
}

type fragmentOrigin struct {
	spliced bool
}

// Speculate runs f against a detached target.
func (ps *ParserState) Speculate(f func()) *Fragment {
	fr := &Fragment{startCol: ps.ColumnEstimate(), width: ps.width, origin: &fragmentOrigin{}}
	e := newBreakableEntry(Delims{Name: "fragment"}, ps.depth)
	ps.entries = append(ps.entries, e)
	func() {
		defer func() {
			if n := len(ps.entries); n > 0 && ps.entries[n-1] == e {
				ps.entries = ps.entries[:n-1]
			}
		}()
		f()
	}()
	fr.tokens = e.tokens
	ps.fragments++
	return fr
}

// Splice appends the fragment to the current target.
func (ps *ParserState) Splice(fr *Fragment) {
	if fr.origin.spliced {
		fault("splice", "fragment spliced twice")
	}
	fr.origin.spliced = true
	ps.fragments--
	ps.push(fr.tokens...)
}

// Tokens exposes the fragment content.
func (fr *Fragment) Tokens() []Token { return fr.tokens }

func (fr *Fragment) render(startCol int) string {
	var sb stringSink
	wr := newWriter(fr.width, &sb)
	wr.col = startCol
	wr.writeTokens(fr.tokens, true)
	return sb.b.String()
}

// RendersMultiline reports whether the fragment, placed where it was built,
// takes more than one line.
func (fr *Fragment) RendersMultiline() bool {
	return strings.Contains(fr.render(fr.startCol), "\n")
}

// RendersBeyond reports whether any line of the fragment placed at startCol
// ends past width.
func (fr *Fragment) RendersBeyond(startCol, width int) bool {
	out := fr.render(startCol)
	for i, l := range strings.Split(out, "\n") {
		w := runewidth.StringWidth(l)
		if i == 0 {
			w += startCol
		}
		if w > width {
			return true
		}
	}
	return false
}

// Shifted returns the same fragment with every indentation moved by delta.
// Splicing either copy consumes both.
func (fr *Fragment) Shifted(delta int) *Fragment {
	return &Fragment{tokens: shiftTokens(fr.tokens, delta), startCol: fr.startCol, width: fr.width, origin: fr.origin}
}

// ColumnEstimate is the single-line width of everything emitted since the
// last hard line break, across the open groups.
func (ps *ParserState) ColumnEstimate() int {
	col := 0
	for i := len(ps.entries) - 1; i >= -1; i-- {
		toks := ps.tokens
		if i >= 0 {
			toks = ps.entries[i].tokens
		}
		j := len(toks)
		for j > 0 && toks[j-1].Kind != HardNewline && toks[j-1].Kind != Heredoc {
			j--
		}
		for _, t := range toks[j:] {
			col += t.singleWidth()
		}
		if j > 0 {
			return col
		}
		if i >= 0 {
			col += runewidth.StringWidth(ps.entries[i].delims.SingleOpen)
		}
	}
	return col
}
