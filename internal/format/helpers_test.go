package format

import (
	"bytes"
	"testing"
)

func renderStream(t *testing.T, fc *FileComments, width int, walk func(ps *ParserState)) string {
	t.Helper()
	ps := NewParserState(fc, width)
	walk(ps)
	ps.Finish()
	var buf bytes.Buffer
	if err := ps.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	return buf.String()
}

func comments(src string) *FileComments {
	return NewFileComments([]byte(src))
}

func stmt(ps *ParserState, line int, text string) {
	ps.OnLine(line)
	ps.EmitIndent()
	ps.EmitDirectPart(text)
	ps.EmitNewline()
}

type elem struct {
	line int
	text string
}

func elems(ps *ParserState, list []elem) {
	for i, e := range list {
		if i > 0 {
			ps.EmitListSeparator()
		}
		ps.OnLine(e.line)
		ps.EmitDirectPart(e.text)
	}
}

// callStmt emits `name(args)` as one statement.
func callStmt(ps *ParserState, line int, name string, closeLine int, args ...elem) {
	ps.OnLine(line)
	ps.EmitIndent()
	ps.EmitDirectPart(name)
	ps.BreakableOf(MethodCallDelims, closeLine, func() { elems(ps, args) })
	ps.EmitNewline()
}

func defBlock(ps *ParserState, line int, name string, endLine int, body func()) {
	ps.OnLine(line)
	ps.EmitIndent()
	ps.EmitKeyword("def")
	ps.EmitSpace()
	ps.EmitDirectPart(name)
	ps.EmitNewline()
	ps.NewBlock(func() {
		if body != nil {
			body()
		}
		ps.OnLine(endLine)
	})
	ps.EmitIndent()
	ps.EmitKeyword("end")
	ps.EmitNewline()
}

func expectFault(t *testing.T, op string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		ie, ok := r.(*InvariantError)
		if !ok {
			t.Fatalf("want *InvariantError panic, got %#v", r)
		}
		if ie.Op != op {
			t.Fatalf("fault op: want %q, got %q (%v)", op, ie.Op, ie)
		}
	}()
	f()
}
