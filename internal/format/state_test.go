package format

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestBlankLineNormalization(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
		walk func(ps *ParserState)
	}{
		{
			name: "blank forced after end",
			src:  "def a\nend\ndef b\nend\n",
			want: "def a\nend\n\ndef b\nend\n",
			walk: func(ps *ParserState) {
				defBlock(ps, 1, "a", 2, nil)
				defBlock(ps, 3, "b", 4, nil)
			},
		},
		{
			name: "no blank before end",
			src:  "def a\n  x\n\nend\n",
			want: "def a\n  x\nend\n",
			walk: func(ps *ParserState) {
				defBlock(ps, 1, "a", 4, func() { stmt(ps, 2, "x") })
			},
		},
		{
			name: "no blank after opener",
			src:  "def a\n\n  x\nend\n",
			want: "def a\n  x\nend\n",
			walk: func(ps *ParserState) {
				defBlock(ps, 1, "a", 4, func() { stmt(ps, 3, "x") })
			},
		},
		{
			name: "no blank at file start",
			src:  "\n\nfoo\n",
			want: "foo\n",
			walk: func(ps *ParserState) { stmt(ps, 3, "foo") },
		},
		{
			name: "runs collapse to one",
			src:  "a\n\n\n\nb\n",
			want: "a\n\nb\n",
			walk: func(ps *ParserState) {
				stmt(ps, 1, "a")
				stmt(ps, 5, "b")
			},
		},
		{
			name: "no blank without a blank source line",
			src:  "a\nb\n",
			want: "a\nb\n",
			walk: func(ps *ParserState) {
				stmt(ps, 1, "a")
				stmt(ps, 2, "b")
			},
		},
		{
			name: "empty file",
			src:  "",
			want: "\n",
			walk: func(*ParserState) {},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := renderStream(t, comments(tc.src), 120, tc.walk)
			if got != tc.want {
				t.Fatalf("want %q\ngot  %q", tc.want, got)
			}
		})
	}
}

func TestIntermediaryTrimsTrailingWhitespace(t *testing.T) {
	im := newIntermediary()
	for _, tok := range []Token{
		{Kind: DirectPart, Text: "x   "},
		{Kind: HardNewline},
		{Kind: Indent, Text: "    "},
		{Kind: HardNewline},
		{Kind: DirectPart, Text: "y"},
	} {
		im.write(tok)
	}
	if got, want := string(im.bytes()), "x\n\ny\n"; got != want {
		t.Fatalf("want %q\ngot  %q", want, got)
	}
}

func TestIntermediaryNoBlankBeforeLeadingDot(t *testing.T) {
	im := newIntermediary()
	for _, tok := range []Token{
		{Kind: Keyword, Text: "end", Role: RoleEnd},
		{Kind: HardNewline},
		{Kind: Indent, Text: "  "},
		{Kind: DirectPart, Text: ".map", Role: RoleLeadingDot},
		{Kind: HardNewline},
	} {
		im.write(tok)
	}
	if got, want := string(im.bytes()), "end\n  .map\n"; got != want {
		t.Fatalf("want %q\ngot  %q", want, got)
	}
}

func TestDataSectionIsVerbatim(t *testing.T) {
	src := "foo\n__END__\nraw  \n\n"
	got := renderStream(t, comments(src), 120, func(ps *ParserState) {
		stmt(ps, 1, "foo")
		ps.OnLine(2)
		ps.EmitVerbatim("__END__\nraw  \n\n")
	})
	if got != src {
		t.Fatalf("want %q\ngot  %q", src, got)
	}
}

func TestScopedCombinatorsRestore(t *testing.T) {
	ps := NewParserState(nil, 120)
	func() {
		defer func() { _ = recover() }()
		ps.NewBlock(func() {
			ps.WithFormattingContext(CtxArgsList, func() {
				ps.WithStartOfLine(false, func() {
					if ps.Depth() != 1 || ps.CurrentContext() != CtxArgsList || ps.StartOfLine() {
						t.Fatalf("scope not applied")
					}
					panic("boom")
				})
			})
		})
	}()
	if ps.Depth() != 0 || ps.CurrentContext() != CtxMain || !ps.StartOfLine() {
		t.Fatalf("scope leaked: depth=%d ctx=%s sol=%v", ps.Depth(), ps.CurrentContext(), ps.StartOfLine())
	}
}

func TestAbsorbingIndentOnlyOnce(t *testing.T) {
	ps := NewParserState(nil, 120)
	ps.WithAbsorbingIndentBlock(func() {
		ps.WithAbsorbingIndentBlock(func() {
			if ps.Depth() != 1 {
				t.Fatalf("nested absorbing block: want depth 1, got %d", ps.Depth())
			}
		})
	})
	if ps.Depth() != 0 {
		t.Fatalf("depth not restored: %d", ps.Depth())
	}
}

func TestDedentAtZeroFaults(t *testing.T) {
	ps := NewParserState(nil, 120)
	expectFault(t, "dedent", func() { ps.Dedent(func() {}) })
}

func TestSpeculateShiftedSplice(t *testing.T) {
	got := renderStream(t, nil, 10, func(ps *ParserState) {
		ps.EmitIndent()
		ps.EmitDirectPart("x =")
		fr := ps.Speculate(func() {
			ps.EmitDirectPart("foo")
			ps.BreakableOf(MethodCallDelims, 0, func() {
				ps.EmitDirectPart("aaaa")
				ps.EmitListSeparator()
				ps.EmitDirectPart("bbbb")
			})
		})
		if !fr.RendersMultiline() {
			t.Fatalf("fragment should not fit in 10 columns")
		}
		ps.EmitNewline()
		ps.NewBlock(func() {
			ps.EmitIndent()
			ps.Splice(fr.Shifted(1))
		})
		ps.EmitNewline()
	})
	if want := "x =\n  foo(\n    aaaa,\n    bbbb\n  )\n"; got != want {
		t.Fatalf("want %q\ngot  %q", want, got)
	}
}

func TestFragmentProbes(t *testing.T) {
	ps := NewParserState(nil, 20)
	fr := ps.Speculate(func() { ps.EmitDirectPart(strings.Repeat("a", 20)) })
	if fr.RendersMultiline() {
		t.Fatalf("plain text reported as multiline")
	}
	if fr.RendersBeyond(0, 20) {
		t.Fatalf("20 columns at column 0 fit in 20")
	}
	if !fr.RendersBeyond(4, 20) {
		t.Fatalf("20 columns at column 4 do not fit in 20")
	}
	ps.Splice(fr)
	expectFault(t, "splice", func() { ps.Splice(fr.Shifted(1)) })
}

func TestUnsplicedFragmentFaults(t *testing.T) {
	ps := NewParserState(nil, 120)
	ps.Speculate(func() { ps.EmitDirectPart("x") })
	expectFault(t, "finish", ps.Finish)
}

func TestColumnEstimate(t *testing.T) {
	ps := NewParserState(nil, 120)
	ps.EmitDirectPart("before")
	ps.EmitNewline()
	ps.NewBlock(func() {
		ps.EmitIndent()
		ps.EmitDirectPart("foo")
		ps.BreakableOf(MethodCallDelims, 0, func() {
			ps.EmitDirectPart("a")
			if got := ps.ColumnEstimate(); got != 7 {
				t.Fatalf("column: want 7, got %d", got)
			}
		})
	})
}

func TestDump(t *testing.T) {
	ps := NewParserState(nil, 120)
	ps.EmitDirectPart("foo")
	ps.BreakableOf(ArrayDelims, 0, func() { ps.EmitDirectPart("1") })
	var buf bytes.Buffer
	if err := Dump(&buf, ps.Tokens()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`direct "foo"`, "breakable array depth=0", `  direct "1"`, "  softindent 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump lacks %q:\n%s", want, out)
		}
	}
}

type stubProgram struct {
	annotate func(fc *FileComments)
	walk     func(ps *ParserState)
}

func (p stubProgram) Annotate(fc *FileComments) {
	if p.annotate != nil {
		p.annotate(fc)
	}
}

func (p stubProgram) Walk(ps *ParserState) { p.walk(ps) }

type stubFrontend struct {
	prog Program
	err  error
}

func (f stubFrontend) Parse(string, []byte) (Program, error) { return f.prog, f.err }

func TestFormatterFormats(t *testing.T) {
	prog := stubProgram{
		annotate: func(fc *FileComments) { fc.AddTrailing(1, "# note") },
		walk: func(ps *ParserState) {
			callStmt(ps, 1, "foo", 1, elem{1, "1"}, elem{1, "2"})
		},
	}
	f := New(stubFrontend{prog: prog}, Options{})
	got, err := f.Format(context.Background(), "a.rb", []byte("foo(1,2) # note\n"))
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if want := "foo(1, 2) # note\n"; string(got) != want {
		t.Fatalf("want %q\ngot  %q", want, got)
	}
}

func TestFormatterErrors(t *testing.T) {
	parseErr := errors.New("parse failed")
	cases := []struct {
		name string
		fe   stubFrontend
		want error
	}{
		{"parse error", stubFrontend{err: parseErr}, parseErr},
		{"invariant", stubFrontend{prog: stubProgram{walk: func(ps *ParserState) { ps.Dedent(func() {}) }}}, ErrInvariant},
		{"lost comment", stubFrontend{prog: stubProgram{
			annotate: func(fc *FileComments) { fc.AddTrailing(9, "# far away") },
			walk:     func(ps *ParserState) { stmt(ps, 1, "x") },
		}}, ErrCommentsLost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := New(tc.fe, Options{}).FormatTo(context.Background(), &out, "a.rb", []byte("x\n"))
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			if out.Len() != 0 {
				t.Fatalf("partial output written: %q", out.String())
			}
		})
	}
}
