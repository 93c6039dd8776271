package format

import (
	"sort"

	"github.com/mattn/go-runewidth"
)

// BreakableEntry is a group that renders either on one line or with each
// element on its own line. The choice is made once, at resolution time.
type BreakableEntry struct {
	delims Delims
	depth  int
	tokens []Token
	lines  map[int]struct{}

	// закрытая группа больше не меняется, поэтому измерения кешируются
	measured bool
	width    int
	forced   bool
}

func newBreakableEntry(d Delims, depth int) *BreakableEntry {
	return &BreakableEntry{delims: d, depth: depth, lines: make(map[int]struct{})}
}

func (e *BreakableEntry) Delims() Delims  { return e.delims }
func (e *BreakableEntry) Depth() int      { return e.depth }
func (e *BreakableEntry) Tokens() []Token { return e.tokens }

// Lines returns the source lines observed while the group was open, sorted.
func (e *BreakableEntry) Lines() []int {
	out := make([]int, 0, len(e.lines))
	for l := range e.lines {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}

func (e *BreakableEntry) recordLine(n int) {
	if n > 0 {
		e.lines[n] = struct{}{}
	}
}

func (e *BreakableEntry) measure() {
	if e.measured {
		return
	}
	w := runewidth.StringWidth(e.delims.SingleOpen) + runewidth.StringWidth(e.delims.SingleClose)
	forced := false
	for _, t := range e.tokens {
		w += t.singleWidth()
		if !forced && t.forcesBreak() {
			forced = true
		}
	}
	e.width, e.forced, e.measured = w, forced, true
}

func (e *BreakableEntry) singleWidth() int {
	e.measure()
	return e.width
}

func (e *BreakableEntry) forcedBreak() bool {
	e.measure()
	return e.forced
}

// multiAt decides the layout for a group starting at column col.
func (e *BreakableEntry) multiAt(col, width int) bool {
	if len(e.lines) > 1 || e.forcedBreak() {
		return true
	}
	return col+e.singleWidth() > width
}

// shifted deep-copies the group with every depth moved by delta.
func (e *BreakableEntry) shifted(delta int) *BreakableEntry {
	c := &BreakableEntry{delims: e.delims, depth: e.depth + delta, lines: make(map[int]struct{}, len(e.lines))}
	for l := range e.lines {
		c.lines[l] = struct{}{}
	}
	c.tokens = shiftTokens(e.tokens, delta)
	return c
}

func shiftTokens(toks []Token, delta int) []Token {
	out := make([]Token, len(toks))
	for i, t := range toks {
		switch t.Kind {
		case Indent, SoftIndent:
			t.Depth += delta
		case Breakable:
			t.Entry = t.Entry.shifted(delta)
		}
		out[i] = t
	}
	return out
}

// singleTail - индекс, после которого в однострочном виде идёт только мусор
// (разделители и мягкие переводы строк перед закрывающей скобкой).
func singleTail(toks []Token) int {
	end := len(toks)
	for end > 0 {
		switch t := toks[end-1]; t.Kind {
		case SoftNewline, SoftIndent, CommaSpace, Comma, Space, BreakSpace:
			end--
			continue
		case DirectPart:
			if t.Text == "" {
				end--
				continue
			}
		}
		break
	}
	return end
}

// multiTail cuts the closing soft newline when the multi close is empty,
// otherwise the line after the group would start with a blank.
func multiTail(e *BreakableEntry) int {
	end := len(e.tokens)
	if e.delims.MultiClose != "" {
		return end
	}
	for end > 0 {
		k := e.tokens[end-1].Kind
		if k != SoftNewline && k != SoftIndent {
			break
		}
		end--
	}
	return end
}
