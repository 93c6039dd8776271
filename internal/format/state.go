package format

import (
	"io"
	"slices"
)

// ParserState collects the token stream for one file. The visitor drives it
// through the Emit* methods and the scoped combinators; Write resolves the
// stream into text.
type ParserState struct {
	comments *FileComments
	width    int

	tokens  []Token
	entries []*BreakableEntry // открытые группы и фрагменты, вершина - текущая цель

	depth        int
	startOfLine  bool
	contexts     []FormattingContext
	suppress     bool
	absorbing    int
	userNewlines bool

	cursor    int // последняя синхронизированная строка исходника
	heredocs  []*HeredocString
	pending   *CommentBlock
	fragments int
	finished  bool
}

// NewParserState starts a stream; the leading comment run of the file is
// emitted right away.
func NewParserState(fc *FileComments, width int) *ParserState {
	if fc == nil {
		fc = NewFileComments(nil)
	}
	if width <= 0 {
		width = DefaultLineWidth
	}
	ps := &ParserState{
		comments:     fc,
		width:        width,
		startOfLine:  true,
		contexts:     []FormattingContext{CtxMain},
		userNewlines: true,
	}
	if b := fc.TakeLeading(); b != nil {
		ps.tokens = append(ps.tokens, b.tokens(0)...)
		ps.cursor = b.End
	}
	return ps
}

// child is a throwaway state for pre-rendering heredoc bodies.
func (ps *ParserState) child() *ParserState {
	return &ParserState{
		comments:    NewFileComments(nil),
		width:       ps.width,
		depth:       ps.depth,
		startOfLine: true,
		contexts:    []FormattingContext{CtxStringEmbexpr},
		suppress:    true,
	}
}

// Tokens returns the top-level stream.
func (ps *ParserState) Tokens() []Token { return ps.tokens }

// Width is the target line width.
func (ps *ParserState) Width() int { return ps.width }

// CurrentLine is the last source line the stream was synced to.
func (ps *ParserState) CurrentLine() int { return ps.cursor }

func (ps *ParserState) target() *[]Token {
	if n := len(ps.entries); n > 0 {
		return &ps.entries[n-1].tokens
	}
	return &ps.tokens
}

func (ps *ParserState) push(toks ...Token) {
	if ps.finished {
		fault("emit", "emission after Finish")
	}
	t := ps.target()
	*t = append(*t, toks...)
}

func (ps *ParserState) EmitDirectPart(text string) {
	ps.push(Token{Kind: DirectPart, Text: text})
}

// EmitKeyword emits a keyword with its block role (def, do, else, end...).
func (ps *ParserState) EmitKeyword(kw string) {
	ps.push(Token{Kind: Keyword, Text: kw, Role: keywordRoles[kw]})
}

// EmitModifierKeyword emits `if`/`while`/`rescue` in modifier position:
// they open no block.
func (ps *ParserState) EmitModifierKeyword(kw string) {
	ps.push(Token{Kind: Keyword, Text: kw})
}

// EmitLeadingDot emits `.`/`&.` at the start of a continuation line.
func (ps *ParserState) EmitLeadingDot(op string) {
	ps.push(Token{Kind: DirectPart, Text: op, Role: RoleLeadingDot})
}

func (ps *ParserState) EmitDelim(text string) { ps.push(Token{Kind: Delim, Text: text}) }
func (ps *ParserState) EmitSpace()            { ps.push(Token{Kind: Space}) }
func (ps *ParserState) EmitComma()            { ps.push(Token{Kind: Comma}) }
func (ps *ParserState) EmitCommaSpace()       { ps.push(Token{Kind: CommaSpace}) }
func (ps *ParserState) EmitIndent()           { ps.push(Token{Kind: Indent, Depth: ps.depth}) }
func (ps *ParserState) EmitSoftIndent()       { ps.push(Token{Kind: SoftIndent, Depth: ps.depth}) }

// EmitSoftNewline emits a newline that exists only in the multi-line layout.
// Heredocs opened before it are attached to it.
func (ps *ParserState) EmitSoftNewline() {
	ps.push(Token{Kind: SoftNewline, Heredocs: ps.takeHeredocs()})
}

// EmitBreakSpace is a space in one line and a newline otherwise.
func (ps *ParserState) EmitBreakSpace() {
	ps.push(Token{Kind: BreakSpace, Heredocs: ps.takeHeredocs()})
}

// EmitListSeparator separates elements of a breakable.
func (ps *ParserState) EmitListSeparator() {
	ps.EmitCommaSpace()
	ps.EmitSoftNewline()
	ps.EmitSoftIndent()
}

// EmitNewline ends the current line: trailing comments of lines before the
// cursor, the newline itself, then pending heredoc bodies. The comment of
// the cursor line waits for the next OnLine: another statement after `;`
// may still follow on it.
func (ps *ParserState) EmitNewline() {
	if !ps.suppress {
		if cs := ps.comments.TrailingUpTo(ps.cursor - 1); len(cs) > 0 {
			ps.insertTrailing(cs)
		}
	}
	ps.push(Token{Kind: HardNewline})
	ps.RenderHeredocs(false)
}

// EmitVerbatim appends text that bypasses every rule (the __END__ section).
func (ps *ParserState) EmitVerbatim(text string) {
	ps.push(Token{Kind: Verbatim, Text: text})
}

func (ps *ParserState) takeHeredocs() []*HeredocString {
	h := ps.heredocs
	ps.heredocs = nil
	return h
}

// PushHeredoc queues a heredoc body for the end of the current line. The
// body is pre-rendered in a child state; the cursor moves past the
// terminator without marking open breakables.
func (ps *ParserState) PushHeredoc(kind HeredocKind, symbol, body string, endLine int) *HeredocString {
	h := &HeredocString{Symbol: symbol, Kind: kind}
	if kind == HeredocSquiggly {
		body, h.reindent = squigglyDedent(body)
	}
	c := ps.child()
	for _, l := range splitLines(body) {
		if l != "" {
			c.EmitDirectPart(l)
		}
		c.EmitNewline()
	}
	h.Body = rawText(c.tokens)
	ps.heredocs = append(ps.heredocs, h)
	if endLine > ps.cursor {
		ps.cursor = endLine
	}
	return h
}

// RenderHeredocs appends the queued bodies in opening order. With
// skipTrailingNewline the last terminator is left unterminated for the
// caller's own newline.
func (ps *ParserState) RenderHeredocs(skipTrailingNewline bool) {
	hs := ps.takeHeredocs()
	for i, h := range hs {
		ps.push(Token{Kind: Heredoc, Heredoc: h, Bare: skipTrailingNewline && i == len(hs)-1})
	}
}

// OnLine syncs the stream to source line n: open breakables learn about
// the line, trailing comments of earlier lines are placed, full-line
// comments up to n are moved in front of the current line and a single
// user blank line is kept.
func (ps *ParserState) OnLine(n int) {
	if n < ps.cursor {
		return
	}
	for _, e := range ps.entries {
		e.recordLine(n)
	}
	if ps.suppress {
		ps.cursor = n
		return
	}
	ps.flushTrailingBefore(n)

	if b := ps.comments.ExtractCommentsToLine(n); b != nil {
		if ps.comments.BlankBetween(ps.cursor, b.Start) {
			b.prependBlank()
		}
		if ps.comments.BlankBetween(b.End, n) {
			b.appendBlank()
		}
		ps.queueComments(b)
		ps.ShiftComments()
	} else if n-ps.cursor >= 2 && ps.userNewlines && ps.comments.BlankBetween(ps.cursor, n) {
		ps.insertAfterNewline(Token{Kind: HardNewline})
	}
	ps.cursor = n
}

func (ps *ParserState) queueComments(b *CommentBlock) {
	if ps.pending == nil {
		ps.pending = b
		return
	}
	ps.pending.Lines = append(ps.pending.Lines, b.Lines...)
	ps.pending.End = b.End
}

// ShiftComments inserts queued comment lines at the start of the current
// line, at the current depth.
func (ps *ParserState) ShiftComments() {
	b := ps.pending
	if b == nil {
		return
	}
	ps.pending = nil
	ps.insertAfterNewline(b.tokens(ps.depth)...)
}

func (ps *ParserState) insertAfterNewline(toks ...Token) {
	t := ps.target()
	i := len(*t)
	for i > 0 && !(*t)[i-1].newlineLike() {
		i--
	}
	*t = slices.Insert(*t, i, toks...)
}

// flushTrailingBefore places trailing comments of lines before n right after
// the last real token of the current target.
func (ps *ParserState) flushTrailingBefore(n int) {
	if cs := ps.comments.TrailingUpTo(n - 1); len(cs) > 0 {
		ps.insertTrailing(cs)
	}
}

// insertTrailing puts the first comment after the last code token. A line
// holds one trailing comment at most: the others, and all of them when
// there is no code to follow, get lines of their own.
func (ps *ParserState) insertTrailing(cs []string) {
	t := ps.target()
	i := len(*t)
	for i > 0 {
		prev := (*t)[i-1]
		if prev.content() && prev.Kind != Heredoc {
			break
		}
		i--
	}
	if i > 0 && !(*t)[i-1].commentLike() {
		toks := []Token{{Kind: TrailingComment, Text: cs[0]}}
		for _, c := range cs[1:] {
			toks = append(toks, Token{Kind: HardNewline}, Token{Kind: Indent, Depth: ps.depth}, Token{Kind: Comment, Text: c})
		}
		*t = slices.Insert(*t, i, toks...)
		return
	}
	// без кода: после ближайшего перевода строки, иначе следом за комментарием
	j := i
	for j < len(*t) && !(*t)[j].newlineLike() {
		j++
	}
	var toks []Token
	switch {
	case j < len(*t) || i == 0:
		if j < len(*t) {
			j++
		} else {
			j = 0
		}
		for _, c := range cs {
			toks = append(toks, Token{Kind: Indent, Depth: ps.depth}, Token{Kind: Comment, Text: c}, Token{Kind: HardNewline})
		}
	default:
		j = i
		for _, c := range cs {
			toks = append(toks, Token{Kind: HardNewline}, Token{Kind: Indent, Depth: ps.depth}, Token{Kind: Comment, Text: c})
		}
	}
	*t = slices.Insert(*t, j, toks...)
}

// Finish flushes what is left: queued heredocs, comments after the last
// statement and trailing comments nobody synced to.
func (ps *ParserState) Finish() {
	if n := len(ps.entries); n != 0 {
		fault("finish", "%d breakable(s) left open", n)
	}
	if ps.fragments != 0 {
		fault("finish", "%d speculated fragment(s) never spliced", ps.fragments)
	}
	if len(ps.heredocs) > 0 {
		ps.push(Token{Kind: HardNewline})
		ps.RenderHeredocs(false)
	}
	ps.ShiftComments()
	last := ps.comments.LastLine()
	if cs := ps.comments.TrailingUpTo(last); len(cs) > 0 {
		ps.insertTrailing(cs)
	}
	if b := ps.comments.ExtractCommentsToLine(last); b != nil {
		if ps.comments.BlankBetween(ps.cursor, b.Start) {
			b.prependBlank()
		}
		ps.push(b.tokens(0)...)
	}
	ps.finished = true
}

// Write resolves the stream and writes the text.
func (ps *ParserState) Write(w io.Writer) error {
	if !ps.finished {
		fault("write", "Write before Finish")
	}
	im := newIntermediary()
	wr := newWriter(ps.width, im)
	wr.writeTokens(ps.tokens, true)
	wr.flush()
	_, err := w.Write(im.bytes())
	return err
}
