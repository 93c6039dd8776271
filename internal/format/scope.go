package format

// FormattingContext tells the visitor what construct it is inside.
type FormattingContext uint8

const (
	CtxMain FormattingContext = iota
	CtxAssign
	CtxBinary
	CtxDef
	CtxClassOrModule
	CtxArgsList
	CtxIfOp
	CtxStringEmbexpr
)

var contextNames = [...]string{
	CtxMain:          "main",
	CtxAssign:        "assign",
	CtxBinary:        "binary",
	CtxDef:           "def",
	CtxClassOrModule: "class-or-module",
	CtxArgsList:      "args-list",
	CtxIfOp:          "if-op",
	CtxStringEmbexpr: "string-embexpr",
}

func (c FormattingContext) String() string {
	if int(c) < len(contextNames) {
		return contextNames[c]
	}
	return "ctx?"
}

// Все комбинаторы восстанавливают состояние через defer, в том числе при панике.

func (ps *ParserState) Depth() int { return ps.depth }

// NewBlock runs f one level deeper.
func (ps *ParserState) NewBlock(f func()) {
	ps.depth++
	defer func() { ps.depth-- }()
	f()
}

// Dedent runs f one level shallower.
func (ps *ParserState) Dedent(f func()) {
	if ps.depth == 0 {
		fault("dedent", "depth is already 0")
	}
	ps.depth--
	defer func() { ps.depth++ }()
	f()
}

func (ps *ParserState) StartOfLine() bool { return ps.startOfLine }

func (ps *ParserState) WithStartOfLine(v bool, f func()) {
	old := ps.startOfLine
	ps.startOfLine = v
	defer func() { ps.startOfLine = old }()
	f()
}

func (ps *ParserState) CurrentContext() FormattingContext {
	return ps.contexts[len(ps.contexts)-1]
}

// InContext reports whether ctx is anywhere on the context stack.
func (ps *ParserState) InContext(ctx FormattingContext) bool {
	for _, c := range ps.contexts {
		if c == ctx {
			return true
		}
	}
	return false
}

func (ps *ParserState) WithFormattingContext(ctx FormattingContext, f func()) {
	ps.contexts = append(ps.contexts, ctx)
	n := len(ps.contexts)
	defer func() { ps.contexts = ps.contexts[:n-1] }()
	f()
}

// WithSuppressComments turns comment placement off (or back on) inside f.
func (ps *ParserState) WithSuppressComments(v bool, f func()) {
	old := ps.suppress
	ps.suppress = v
	defer func() { ps.suppress = old }()
	f()
}

// WithInsertUserNewlines controls whether OnLine keeps user blank lines.
func (ps *ParserState) WithInsertUserNewlines(v bool, f func()) {
	old := ps.userNewlines
	ps.userNewlines = v
	defer func() { ps.userNewlines = old }()
	f()
}

// WithAbsorbingIndentBlock indents continuation lines once: nested calls
// inside the outermost one do not add depth.
func (ps *ParserState) WithAbsorbingIndentBlock(f func()) {
	ps.absorbing++
	defer func() { ps.absorbing-- }()
	if ps.absorbing == 1 {
		ps.NewBlock(f)
		return
	}
	f()
}

// BreakableOf wraps the tokens emitted by f in a group. closeLine is the
// source line of the closing delimiter (0 if none); comments before it end
// up inside the group.
func (ps *ParserState) BreakableOf(d Delims, closeLine int, f func()) {
	ps.breakable(d, closeLine, f)
}

// InlineBreakableOf is BreakableOf without the leading soft newline: the
// first element stays on the opener line.
func (ps *ParserState) InlineBreakableOf(d Delims, closeLine int, f func()) {
	d.Inline = true
	ps.breakable(d, closeLine, f)
}

func (ps *ParserState) breakable(d Delims, closeLine int, f func()) {
	e := newBreakableEntry(d, ps.depth)
	e.recordLine(ps.cursor)
	ps.entries = append(ps.entries, e)
	closed := false
	defer func() {
		if !closed && len(ps.entries) > 0 && ps.entries[len(ps.entries)-1] == e {
			ps.entries = ps.entries[:len(ps.entries)-1]
		}
	}()

	ps.NewBlock(func() {
		if !d.Inline {
			ps.EmitSoftNewline()
			ps.EmitSoftIndent()
		}
		f()
		ps.EmitSoftNewline()
		if closeLine > 0 {
			ps.OnLine(closeLine)
		}
	})
	ps.EmitSoftIndent()

	ps.popEntry(e)
	closed = true
	ps.push(Token{Kind: Breakable, Entry: e})
}

func (ps *ParserState) popEntry(e *BreakableEntry) {
	n := len(ps.entries)
	if n == 0 || ps.entries[n-1] != e {
		fault("breakable", "entry stack mismatch closing %s", e.delims.Name)
	}
	ps.entries = ps.entries[:n-1]
}
