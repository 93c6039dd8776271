package format

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBreakableFitsOnOneLine(t *testing.T) {
	got := renderStream(t, comments("foo(1,2,3)\n"), 120, func(ps *ParserState) {
		callStmt(ps, 1, "foo", 1, elem{1, "1"}, elem{1, "2"}, elem{1, "3"})
	})
	if want := "foo(1, 2, 3)\n"; got != want {
		t.Fatalf("single line call\nwant %q\ngot  %q", want, got)
	}
}

func TestBreakableKeepsAuthorLayout(t *testing.T) {
	src := "foo(\n  1,\n  2,\n  3\n)\n"
	got := renderStream(t, comments(src), 120, func(ps *ParserState) {
		callStmt(ps, 1, "foo", 5, elem{2, "1"}, elem{3, "2"}, elem{4, "3"})
	})
	if got != src {
		t.Fatalf("sticky layout\nwant %q\ngot  %q", src, got)
	}
}

func TestBreakableWidthLaw(t *testing.T) {
	// foo(aaaaaaa, bbbbbbb) is 21 columns wide
	cases := []struct {
		width int
		want  string
	}{
		{21, "foo(aaaaaaa, bbbbbbb)\n"},
		{20, "foo(\n  aaaaaaa,\n  bbbbbbb\n)\n"},
	}
	for _, tc := range cases {
		got := renderStream(t, comments("foo(aaaaaaa, bbbbbbb)\n"), tc.width, func(ps *ParserState) {
			callStmt(ps, 1, "foo", 1, elem{1, "aaaaaaa"}, elem{1, "bbbbbbb"})
		})
		if got != tc.want {
			t.Fatalf("width %d\nwant %q\ngot  %q", tc.width, tc.want, got)
		}
	}
}

func TestBreakableNestedDecidesIndependently(t *testing.T) {
	got := renderStream(t, comments("foo(bar(1, 2), 3)\n"), 12, func(ps *ParserState) {
		ps.OnLine(1)
		ps.EmitIndent()
		ps.EmitDirectPart("foo")
		ps.BreakableOf(MethodCallDelims, 1, func() {
			ps.EmitDirectPart("bar")
			ps.BreakableOf(MethodCallDelims, 1, func() {
				elems(ps, []elem{{1, "1"}, {1, "2"}})
			})
			ps.EmitListSeparator()
			ps.EmitDirectPart("3")
		})
		ps.EmitNewline()
	})
	want := "foo(\n  bar(1, 2),\n  3\n)\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("nested groups (-want +got):\n%s", diff)
	}
}

func TestBreakableDelimsPerLayout(t *testing.T) {
	cases := []struct {
		name  string
		d     Delims
		width int
		want  string
	}{
		{"hash single", HashDelims, 120, "x{ a: 1, b: 2 }\n"},
		{"hash multi", HashDelims, 8, "x{\n  a: 1,\n  b: 2\n}\n"},
		{"command single", CommandArgsDelims, 120, "x a: 1, b: 2\n"},
		{"command multi", CommandArgsDelims, 8, "x(\n  a: 1,\n  b: 2\n)\n"},
		{"return multi", ReturnDelims, 8, "x [\n  a: 1,\n  b: 2\n]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := renderStream(t, comments("x\n"), tc.width, func(ps *ParserState) {
				ps.OnLine(1)
				ps.EmitIndent()
				ps.EmitDirectPart("x")
				ps.BreakableOf(tc.d, 1, func() { elems(ps, []elem{{1, "a: 1"}, {1, "b: 2"}}) })
				ps.EmitNewline()
			})
			if got != tc.want {
				t.Fatalf("want %q\ngot  %q", tc.want, got)
			}
		})
	}
}

func TestInlineBreakableWithEmptyClose(t *testing.T) {
	got := renderStream(t, comments("when a,\n  b\n"), 120, func(ps *ParserState) {
		ps.OnLine(1)
		ps.EmitIndent()
		ps.EmitKeyword("when")
		ps.EmitSpace()
		ps.InlineBreakableOf(WhenDelims, 0, func() { elems(ps, []elem{{1, "a"}, {2, "b"}}) })
		ps.EmitNewline()
	})
	if want := "when a,\n  b\n"; got != want {
		t.Fatalf("inline group\nwant %q\ngot  %q", want, got)
	}
}

func TestBraceBlockLayouts(t *testing.T) {
	block := func(ps *ParserState, bodyLine, closeLine int) {
		ps.OnLine(1)
		ps.EmitIndent()
		ps.EmitDirectPart("each ")
		ps.InlineBreakableOf(BraceBlockDelims, closeLine, func() {
			ps.EmitSpace()
			ps.EmitDirectPart("|x|")
			ps.EmitBreakSpace()
			ps.EmitSoftIndent()
			ps.OnLine(bodyLine)
			ps.EmitDirectPart("x")
		})
		ps.EmitNewline()
	}
	got := renderStream(t, comments("each { |x| x }\n"), 120, func(ps *ParserState) { block(ps, 1, 1) })
	if want := "each { |x| x }\n"; got != want {
		t.Fatalf("single brace block\nwant %q\ngot  %q", want, got)
	}
	got = renderStream(t, comments("each { |x|\n  x\n}\n"), 120, func(ps *ParserState) { block(ps, 2, 3) })
	if want := "each { |x|\n  x\n}\n"; got != want {
		t.Fatalf("multi brace block\nwant %q\ngot  %q", want, got)
	}
}

func TestBreakableStackMismatchFaults(t *testing.T) {
	ps := NewParserState(nil, 120)
	e := newBreakableEntry(ArrayDelims, 0)
	expectFault(t, "breakable", func() { ps.popEntry(e) })
}

func TestFinishWithOpenBreakableFaults(t *testing.T) {
	ps := NewParserState(nil, 120)
	expectFault(t, "finish", func() {
		ps.BreakableOf(ArrayDelims, 0, func() { ps.Finish() })
	})
}

func TestSingleTailStripsGarbage(t *testing.T) {
	toks := []Token{
		{Kind: DirectPart, Text: "a"},
		{Kind: CommaSpace},
		{Kind: SoftNewline},
		{Kind: SoftIndent, Depth: 1},
		{Kind: DirectPart},
	}
	if got := singleTail(toks); got != 1 {
		t.Fatalf("singleTail: want 1, got %d", got)
	}
}
