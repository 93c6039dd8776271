package parser

import (
	"strings"
	"testing"

	"rbfmt/internal/ast"
	"rbfmt/internal/diag"
)

func TestParseStatements(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"paren call", "foo(1, 2, 3)\n", []string{"(call foo() 1 2 3)"}},
		{"command call", "puts \"hi\"\n", []string{`(call puts "hi")`}},
		{"local minus is binary", "x = 1\nx -1\n", []string{"(= x 1)", "(- x 1)"}},
		{"method minus is argument", "foo -1\n", []string{"(call foo -1)"}},
		{"spaced minus is binary", "a - 1\n", []string{"(- a 1)"}},
		{"command with array", "puts [1]\n", []string{"(call puts [1])"}},
		{"local index with space", "x = [1]\nx [0]\n", []string{"(= x [1])", "(index x 0)"}},
		{"chain with brace block", "a.b.c(1) { |x| x + 1 }\n",
			[]string{"(call (call a.b).c() 1 (block {} |x| ((+ x 1))))"}},
		{"do block binds to command", "foo a do |x|\n  bar\nend\n",
			[]string{"(call foo a (block do |x| (bar)))"}},
		{"precedence", "a = b || c && d == e + f * g ** h\n",
			[]string{"(= a (|| b (&& c (== d (+ e (* f (** g h)))))))"}},
		{"ternary", "x = y ? 1 : 2\n", []string{"(= x (? y 1 2))"}},
		{"call args", "foo(a: 1, \"b\" => 2, **opts, &blk)\n",
			[]string{`(call foo() (a: 1) (=> "b" 2) **opts &blk)`}},
		{"literals", "x = [1, [2, 3], { a: 1 }]\n", []string{"(= x [1 [2 3] {(a: 1)}])"}},
		{"multiple assignment", "a, *b = 1, 2, 3\n", []string{"(masgn a *b [1 2 3])"}},
		{"op assign", "self.count += 1\n@h[:k] ||= []\n",
			[]string{"(+= (call self.count) 1)", "(||= (index @h :k) [])"}},
		{"rescue modifier on assignment", "x = y rescue nil\n", []string{"(= x (rescue-mod y nil))"}},
		{"statement modifier", "return x if y\n", []string{"(if-mod (return x) y)"}},
		{"string concat", "x = \"a\" \\\n  \"b\"\n", []string{`(= x (concat "a" "b"))`}},
		{"leading dot chain", "foo\n  .bar\n  .baz\n", []string{"(call (call foo.bar).baz)"}},
		{"private def", "private def foo\nend\n", []string{"(call private (def foo ()))"}},
		{"alias", "alias new_name old_name\n", []string{"(alias new_name old_name)"}},
		{"lambda", "f = ->(x) { x * 2 }\n", []string{"(= f (lambda |x| ((* x 2))))"}},
		{"destructuring block params", "foo.each do |a, (b, c)|\nend\n",
			[]string{"(call foo.each (block do |a (b c)| ()))"}},
		{"heredoc argument", "foo(<<~TXT)\n  hi\nTXT\n",
			[]string{`(call foo() (heredoc <<~TXT "  hi\n"))`}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mustParse(t, tc.src)
			if strings.Join(got, "\n") != strings.Join(tc.want, "\n") {
				t.Fatalf("parse %q:\nwant %q\ngot  %q", tc.src, tc.want, got)
			}
		})
	}
}

func TestParseDefinitions(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"def self.foo(a, b = 1, *rest, k:, opt: 2, **kw, &blk)\n  a\nend\n",
			"(def self.foo |a b=1 *rest k: opt:2 **kw &blk| (a))"},
		{"def ==(other)\nend\n", "(def == |other| ())"},
		{"def value=(v)\nend\n", "(def value= |v| ())"},
		{"def [](k)\nend\n", "(def [] |k| ())"},
		{"class Foo < Bar::Baz\n  def x; end\nend\n", "(class Foo (:: Bar Baz) ((def x ())))"},
		{"class << self\n  attr_reader :x\nend\n", "(sclass self ((call attr_reader :x)))"},
		{"module A::B\nend\n", "(module (:: A B) ())"},
	}
	for _, tc := range cases {
		got := mustParse(t, tc.src)
		if len(got) != 1 || got[0] != tc.want {
			t.Fatalf("parse %q:\nwant %q\ngot  %q", tc.src, tc.want, got)
		}
	}
}

func TestParseControlFlow(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"if a\n  1\nelsif b\n  2\nelse\n  3\nend\n", "(if a (1) (elsif b (2) (else (3))))"},
		{"unless a\n  b\nend\n", "(unless a (b))"},
		{"while x do\n  y\nend\n", "(while x (y))"},
		{"until done?\n  step\nend\n", "(until done? (step))"},
		{"for a, b in pairs\n  use a\nend\n", "(for a b pairs ((call use a)))"},
		{"case x\nwhen 1, 2 then :a\nelse :b\nend\n", "(case x (when 1 2 (:a)) (else (:b)))"},
		{"begin\n  foo\nrescue A, B => e\n  bar\nensure\n  baz\nend\n",
			"(begin (foo) (rescue A B => e (bar)) (ensure (baz)))"},
	}
	for _, tc := range cases {
		got := mustParse(t, tc.src)
		if len(got) != 1 || got[0] != tc.want {
			t.Fatalf("parse %q:\nwant %q\ngot  %q", tc.src, tc.want, got)
		}
	}
}

func TestParseLines(t *testing.T) {
	prog, bag := parseSource(t, "foo(\n  1,\n  2\n)\n\nbar\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	call, ok := prog.Body.Stmts[0].(*ast.Call)
	if !ok {
		t.Fatalf("first statement is %T", prog.Body.Stmts[0])
	}
	if call.Line != 1 || call.EndLine != 4 {
		t.Fatalf("call lines: want 1..4, got %d..%d", call.Line, call.EndLine)
	}
	if got := prog.Body.Stmts[1].Lines().Line; got != 6 {
		t.Fatalf("bar line: want 6, got %d", got)
	}
}

func TestParseDataSection(t *testing.T) {
	prog, bag := parseSource(t, "puts 1\n__END__\nraw\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	if prog.Data != "__END__\nraw\n" || prog.DataLine != 2 {
		t.Fatalf("data section: got %q at line %d", prog.Data, prog.DataLine)
	}
	if len(prog.Body.Stmts) != 1 {
		t.Fatalf("want 1 statement, got %d", len(prog.Body.Stmts))
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{"foo(1\n", diag.SynUnclosedParen},
		{"def foo\n", diag.SynExpectEnd},
		{"x = [1, 2\n", diag.SynUnclosedBracket},
		{"case x\nin Integer\nend\n", diag.SynUnsupported},
		{"def foo = 1\n", diag.SynUnsupported},
	}
	for _, tc := range cases {
		_, bag := parseSource(t, tc.src)
		if !bag.HasErrors() {
			t.Fatalf("parse %q: expected an error", tc.src)
		}
		found := false
		for _, d := range bag.Items() {
			if d.Code == tc.code {
				found = true
			}
		}
		if !found {
			t.Fatalf("parse %q: want %s, got %s", tc.src, tc.code.ID(), diagnosticsSummary(bag))
		}
	}
}
