package format

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFileCommentsClassification(t *testing.T) {
	src := "# a\n# b\n\nx = 1 # t\n  # c\n<<~X\n# not a comment\nX\n"
	fc := comments(src)
	fc.Exclude(7, 8)
	fc.AddTrailing(4, "# t")

	lead := fc.TakeLeading()
	if lead == nil || lead.Start != 1 || lead.End != 2 {
		t.Fatalf("leading block: got %+v", lead)
	}
	if fc.TakeLeading() != nil {
		t.Fatalf("leading block handed out twice")
	}
	if got := fc.Remaining(); got != 2 {
		t.Fatalf("remaining: want 2, got %d", got)
	}
	b := fc.ExtractCommentsToLine(8)
	if b == nil || len(b.Lines) != 1 || b.Lines[0].Text != "# c" {
		t.Fatalf("extract: got %+v", b)
	}
	if got := fc.TrailingUpTo(3); got != nil {
		t.Fatalf("trailing before line 4: got %v", got)
	}
	if got := fc.TrailingUpTo(4); !cmp.Equal(got, []string{"# t"}) {
		t.Fatalf("trailing: got %v", got)
	}
	if got := fc.Remaining(); got != 0 {
		t.Fatalf("remaining after extraction: want 0, got %d", got)
	}
}

func TestExtractSeparatesGroupsByBlankLine(t *testing.T) {
	fc := comments("x\n# a\n# b\n\n# c\ny\n")
	b := fc.ExtractCommentsToLine(6)
	want := []CommentLine{
		{Line: 2, Text: "# a"},
		{Line: 3, Text: "# b"},
		{Blank: true},
		{Line: 5, Text: "# c"},
	}
	if diff := cmp.Diff(want, b.Lines); diff != "" {
		t.Fatalf("comment block (-want +got):\n%s", diff)
	}
	if b.Comments() != 3 {
		t.Fatalf("comments: want 3, got %d", b.Comments())
	}
}

func TestBlankBetweenIgnoresLiteralLines(t *testing.T) {
	fc := comments("x = <<~A\n\nA\ny\n")
	if !fc.BlankBetween(1, 3) {
		t.Fatalf("line 2 is blank before Exclude")
	}
	fc.Exclude(2, 3)
	if fc.BlankBetween(1, 4) {
		t.Fatalf("heredoc body counted as a blank line")
	}
}

func TestCommentsInsideBlock(t *testing.T) {
	cases := []struct {
		name string
		src  string
		body func(ps *ParserState)
	}{
		{
			name: "before statement",
			src:  "def foo\n  # leading\n  bar\nend\n",
			body: func(ps *ParserState) { stmt(ps, 3, "bar") },
		},
		{
			name: "before end",
			src:  "def foo\n  bar\n  # trailing note\nend\n",
			body: func(ps *ParserState) { stmt(ps, 2, "bar") },
		},
		{
			name: "blank line kept between comment groups",
			src:  "def foo\n  bar\n\n  # one\n\n  # two\n  baz\nend\n",
			body: func(ps *ParserState) {
				stmt(ps, 2, "bar")
				stmt(ps, 7, "baz")
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lines := len(splitLines(tc.src))
			got := renderStream(t, comments(tc.src), 120, func(ps *ParserState) {
				defBlock(ps, 1, "foo", lines, func() { tc.body(ps) })
			})
			if diff := cmp.Diff(tc.src, got); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestTrailingCommentStaysOnItsLine(t *testing.T) {
	// x = 1 # c, две пустые строки, y = 2
	src := "x = 1 # c\n\n\ny = 2\n"
	fc := comments(src)
	fc.AddTrailing(1, "# c")
	got := renderStream(t, fc, 120, func(ps *ParserState) {
		stmt(ps, 1, "x = 1")
		stmt(ps, 4, "y = 2")
	})
	if want := "x = 1 # c\n\ny = 2\n"; got != want {
		t.Fatalf("want %q\ngot  %q", want, got)
	}
}

func TestTrailingCommentInsideBreakable(t *testing.T) {
	src := "foo(\n  a, # first\n  b\n)\n"
	fc := comments(src)
	fc.AddTrailing(2, "# first")
	got := renderStream(t, fc, 120, func(ps *ParserState) {
		callStmt(ps, 1, "foo", 4, elem{2, "a"}, elem{3, "b"})
	})
	if got != src {
		t.Fatalf("want %q\ngot  %q", src, got)
	}
}

func TestTrailingCommentForcesMultiline(t *testing.T) {
	fc := comments("foo(a, # c\nb)\n")
	fc.AddTrailing(1, "# c")
	got := renderStream(t, fc, 120, func(ps *ParserState) {
		callStmt(ps, 1, "foo", 2, elem{1, "a"}, elem{2, "b"})
	})
	if want := "foo(\n  a, # c\n  b\n)\n"; got != want {
		t.Fatalf("want %q\ngot  %q", want, got)
	}
}

func TestCommentBeforeClosingDelimiter(t *testing.T) {
	src := "foo(\n  a\n  # last\n)\n"
	got := renderStream(t, comments(src), 120, func(ps *ParserState) {
		callStmt(ps, 1, "foo", 4, elem{2, "a"})
	})
	if got != src {
		t.Fatalf("want %q\ngot  %q", src, got)
	}
}

func TestCommentBeforeFirstElement(t *testing.T) {
	src := "foo(\n  # about a\n  a\n)\n"
	got := renderStream(t, comments(src), 120, func(ps *ParserState) {
		callStmt(ps, 1, "foo", 4, elem{3, "a"})
	})
	if got != src {
		t.Fatalf("want %q\ngot  %q", src, got)
	}
}

func TestLeadingAndFinalComments(t *testing.T) {
	src := "# frozen_string_literal: true\n\nrequire \"x\"\n\n# bye\n"
	got := renderStream(t, comments(src), 120, func(ps *ParserState) {
		stmt(ps, 3, "require \"x\"")
	})
	if got != src {
		t.Fatalf("want %q\ngot  %q", src, got)
	}
}

func TestEmbdocLinesAreRaw(t *testing.T) {
	src := "=begin\n  doc\n=end\nfoo\n"
	fc := comments(src)
	fc.AddEmbdoc(1, []string{"=begin", "  doc", "=end"})
	got := renderStream(t, fc, 120, func(ps *ParserState) { stmt(ps, 4, "foo") })
	if got != src {
		t.Fatalf("want %q\ngot  %q", src, got)
	}
}

func TestCommentsSuppressed(t *testing.T) {
	src := "a\n# c\nb\n"
	got := renderStream(t, comments(src), 120, func(ps *ParserState) {
		stmt(ps, 1, "a")
		ps.WithSuppressComments(true, func() { stmt(ps, 3, "b") })
	})
	// подавленный комментарий не теряется, а уходит в конец файла
	if want := "a\nb\n# c\n"; got != want {
		t.Fatalf("want %q\ngot  %q", want, got)
	}
}

func TestCommentTextKeepsFormFeed(t *testing.T) {
	fc := comments("#\f\n  # x \v\t\nfoo\n")
	b := fc.ExtractCommentsToLine(2)
	if b == nil || len(b.Lines) != 2 {
		t.Fatalf("extract: got %+v", b)
	}
	if b.Lines[0].Text != "#\f" || b.Lines[1].Text != "# x \v" {
		t.Fatalf("texts: got %q, %q", b.Lines[0].Text, b.Lines[1].Text)
	}
}

func TestTrailingCommentsOfOneLineDoNotMerge(t *testing.T) {
	// x = # a / 5 # b: оба комментария достаются одной строке
	fc := comments("x = # a\n  5 # b\n")
	fc.AddTrailing(1, "# a")
	fc.AddTrailing(2, "# b")
	got := renderStream(t, fc, 120, func(ps *ParserState) {
		ps.OnLine(1)
		ps.EmitIndent()
		ps.EmitDirectPart("x = 5")
		ps.OnLine(2)
		ps.EmitNewline()
	})
	if want := "x = 5 # a\n# b\n"; got != want {
		t.Fatalf("want %q\ngot  %q", want, got)
	}
}

func TestTrailingCommentWithoutCodeGetsOwnLine(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"file start", "; # c\nx = 1\n", "# c\nx = 1\n"},
		{"after leading comment", "# lead\n; # c\nx = 1\n", "# lead\n# c\nx = 1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fc := comments(tc.src)
			line := strings.Count(tc.src, "\n")
			fc.AddTrailing(line-1, "# c")
			got := renderStream(t, fc, 120, func(ps *ParserState) { stmt(ps, line, "x = 1") })
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestTrailingCommentOnlyFile(t *testing.T) {
	fc := comments(";#")
	fc.AddTrailing(1, "#")
	if got := renderStream(t, fc, 120, func(*ParserState) {}); got != "#\n" {
		t.Fatalf("want %q, got %q", "#\n", got)
	}
}

func TestTrailingCommentWaitsForLastStatementOnLine(t *testing.T) {
	fc := comments("a; b # t\nc\n")
	fc.AddTrailing(1, "# t")
	got := renderStream(t, fc, 120, func(ps *ParserState) {
		stmt(ps, 1, "a")
		stmt(ps, 1, "b")
		stmt(ps, 2, "c")
	})
	if want := "a\nb # t\nc\n"; got != want {
		t.Fatalf("want %q\ngot  %q", want, got)
	}
}

func TestCodeAfterTrailingCommentMovesDown(t *testing.T) {
	fc := comments("x = # a\n5\n")
	fc.AddTrailing(1, "# a")
	got := renderStream(t, fc, 120, func(ps *ParserState) {
		ps.OnLine(1)
		ps.EmitIndent()
		ps.EmitDirectPart("x =")
		ps.OnLine(2)
		ps.EmitSpace()
		ps.EmitDirectPart("5")
		ps.EmitNewline()
	})
	if want := "x = # a\n  5\n"; got != want {
		t.Fatalf("want %q\ngot  %q", want, got)
	}
}
