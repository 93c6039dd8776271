package format

import "testing"

func TestSquigglyDedent(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"    a\n      b\n", "a\n  b\n", true},
		{"  a\n\n    b\n", "a\n\n  b\n", true},
		{"    a\n  \n    b\n", "a\n\nb\n", true},
		{"\ta\n\tb\n", "\ta\n\tb\n", false},
		{"", "", true},
	}
	for _, tc := range cases {
		got, ok := squigglyDedent(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("squigglyDedent(%q)\nwant %q %v\ngot  %q %v", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}

func TestHeredocRender(t *testing.T) {
	cases := []struct {
		name  string
		h     HeredocString
		depth int
		bare  bool
		want  string
	}{
		{"squiggly", HeredocString{Symbol: "TXT", Kind: HeredocSquiggly, Body: "a\n\n  b\n", reindent: true}, 1, false, "    a\n\n      b\n  TXT\n"},
		{"squiggly with tabs", HeredocString{Symbol: "TXT", Kind: HeredocSquiggly, Body: "\ta\n"}, 1, false, "\ta\n  TXT\n"},
		{"dash", HeredocString{Symbol: "SQL", Kind: HeredocDash, Body: "x\n"}, 2, false, "x\n    SQL\n"},
		{"plain", HeredocString{Symbol: "EOS", Kind: HeredocPlain, Body: "  x\n"}, 3, false, "  x\nEOS\n"},
		{"bare", HeredocString{Symbol: "EOS", Kind: HeredocPlain, Body: "x\n"}, 0, true, "x\nEOS"},
	}
	for _, tc := range cases {
		if got := tc.h.render(tc.depth, tc.bare); got != tc.want {
			t.Fatalf("%s\nwant %q\ngot  %q", tc.name, tc.want, got)
		}
	}
}

func TestHeredocAfterSingleLineCall(t *testing.T) {
	src := "foo(<<~TXT)\n  hi\nTXT\n"
	fc := comments(src)
	fc.Exclude(2, 3)
	got := renderStream(t, fc, 120, func(ps *ParserState) {
		ps.OnLine(1)
		ps.EmitIndent()
		ps.EmitDirectPart("foo")
		ps.BreakableOf(MethodCallDelims, 1, func() {
			ps.OnLine(1)
			ps.EmitDirectPart("<<~TXT")
			ps.PushHeredoc(HeredocSquiggly, "TXT", "  hi\n", 3)
		})
		ps.EmitNewline()
	})
	if got != src {
		t.Fatalf("want %q\ngot  %q", src, got)
	}
}

func TestHeredocInsideMultilineCall(t *testing.T) {
	src := "foo(\n  <<~A,\n    body\n  A\n  1\n)\n"
	fc := comments(src)
	fc.Exclude(3, 4)
	got := renderStream(t, fc, 120, func(ps *ParserState) {
		ps.OnLine(1)
		ps.EmitIndent()
		ps.EmitDirectPart("foo")
		ps.BreakableOf(MethodCallDelims, 6, func() {
			ps.OnLine(2)
			ps.EmitDirectPart("<<~A")
			ps.PushHeredoc(HeredocSquiggly, "A", "    body\n", 4)
			ps.EmitListSeparator()
			ps.OnLine(5)
			ps.EmitDirectPart("1")
		})
		ps.EmitNewline()
	})
	if got != src {
		t.Fatalf("want %q\ngot  %q", src, got)
	}
}

func TestHeredocsDrainInOpeningOrder(t *testing.T) {
	src := "foo(<<~A, <<~B)\n  a\nA\n  b\nB\n"
	fc := comments(src)
	fc.Exclude(2, 5)
	got := renderStream(t, fc, 120, func(ps *ParserState) {
		ps.OnLine(1)
		ps.EmitIndent()
		ps.EmitDirectPart("foo")
		ps.BreakableOf(MethodCallDelims, 1, func() {
			ps.EmitDirectPart("<<~A")
			ps.PushHeredoc(HeredocSquiggly, "A", "  a\n", 3)
			ps.EmitListSeparator()
			ps.OnLine(1)
			ps.EmitDirectPart("<<~B")
			ps.PushHeredoc(HeredocSquiggly, "B", "  b\n", 5)
		})
		ps.EmitNewline()
	})
	if got != src {
		t.Fatalf("want %q\ngot  %q", src, got)
	}
}

func TestHeredocOutsideBreakableThenComment(t *testing.T) {
	src := "x = <<-EOS\n  raw  \n  EOS\n# after\ny\n"
	fc := comments(src)
	fc.Exclude(2, 3)
	got := renderStream(t, fc, 120, func(ps *ParserState) {
		ps.OnLine(1)
		ps.EmitIndent()
		ps.EmitDirectPart("x = <<-EOS")
		ps.PushHeredoc(HeredocDash, "EOS", "  raw  \n", 3)
		ps.EmitNewline()
		stmt(ps, 5, "y")
	})
	// тело <<- не трогается, терминатор встаёт на отступ строки
	if want := "x = <<-EOS\n  raw  \nEOS\n# after\ny\n"; got != want {
		t.Fatalf("want %q\ngot  %q", want, got)
	}
}
