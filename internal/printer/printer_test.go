package printer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rbfmt/internal/format"
	"rbfmt/internal/testkit"
)

func formatSource(t *testing.T, src string, width int) string {
	t.Helper()
	f := format.New(Frontend{}, format.Options{LineWidth: width})
	out, err := f.Format(context.Background(), "test.rb", []byte(src))
	if err != nil {
		t.Fatalf("format %q: %v", src, err)
	}
	return string(out)
}

type formatCase struct {
	name  string
	src   string
	want  string
	width int
}

func runCases(t *testing.T, cases []formatCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := formatSource(t, tc.src, tc.width)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("format mismatch (-want +got):\n%s", diff)
			}
			reformat := func(b []byte) ([]byte, error) { return []byte(formatSource(t, string(b), tc.width)), nil }
			if err := testkit.CheckOutput(reformat, []byte(tc.src), []byte(got)); err != nil {
				t.Fatalf("output check: %v", err)
			}
		})
	}
}

func TestFormatScenarios(t *testing.T) {
	runCases(t, []formatCase{
		{
			name: "call args spaced",
			src:  "foo(1,2,3)\n",
			want: "foo(1, 2, 3)\n",
		},
		{
			name: "one per line stays",
			src:  "foo(\n  1,\n  2,\n  3\n)\n",
			want: "foo(\n  1,\n  2,\n  3\n)\n",
		},
		{
			name: "trailing comment and blank lines",
			src:  "x = 1 # c\n\n\ny = 2\n",
			want: "x = 1 # c\n\ny = 2\n",
		},
		{
			name: "heredoc argument",
			src:  "foo(<<~TXT)\n  hi\nTXT\n",
			want: "foo(<<~TXT)\n  hi\nTXT\n",
		},
		{
			name: "empty file",
			src:  "",
			want: "\n",
		},
	})
}

func TestFormatClass(t *testing.T) {
	src := `class Foo < Bar
  # doc
  def initialize(a, b = 2)
    @a = a
    @b = b
  end
  def call
    items.map { |x| x * 2 }
  end
end
`
	want := `class Foo < Bar
  # doc
  def initialize(a, b = 2)
    @a = a
    @b = b
  end

  def call
    items.map { |x| x * 2 }
  end
end
`
	runCases(t, []formatCase{{name: "class", src: src, want: want}})
}

func TestFormatCalls(t *testing.T) {
	runCases(t, []formatCase{
		{
			name: "command and hash",
			src:  "puts 'hello'\nconfig = { name: 'x', size: 3 }\nrender :show,\n  status: 200\n",
			want: "puts \"hello\"\nconfig = { name: \"x\", size: 3 }\nrender(\n  :show,\n  status: 200\n)\n",
		},
		{
			name: "nested command gets parens",
			src:  "puts foo 1\n",
			want: "puts foo(1)\n",
		},
		{
			name: "quote normalization",
			src:  "x = 'a' + 'b\"c' + 'd#e'\n",
			want: "x = \"a\" + 'b\"c' + 'd#e'\n",
		},
		{
			name: "leading dot chain",
			src:  "result = items\n  .select { |i| i.ok? }\n  .map(&:name)\n",
			want: "result = items\n  .select { |i| i.ok? }\n  .map(&:name)\n",
		},
		{
			name: "binary break kept",
			src:  "ok = alpha &&\n  beta\n",
			want: "ok = alpha &&\n  beta\n",
		},
		{
			name: "brace block with statements",
			src:  "foo { a; b }\n",
			want: "foo {\n  a\n  b\n}\n",
		},
		{
			name: "lambda",
			src:  "f = ->(x) { x + 1 }\n",
			want: "f = ->(x) { x + 1 }\n",
		},
		{
			name: "do block drops leading blank",
			src:  "foo.each do |x|\n\n  # note\n  bar x\nend\n",
			want: "foo.each do |x|\n  # note\n  bar x\nend\n",
		},
	})
}

func TestFormatAssignBreaksAfterEquals(t *testing.T) {
	runCases(t, []formatCase{
		{
			name:  "too wide",
			src:   "total = first_value + second_value\n",
			want:  "total =\n  first_value + second_value\n",
			width: 20,
		},
		{
			name:  "fits",
			src:   "total = first_value + second_value\n",
			want:  "total = first_value + second_value\n",
			width: 40,
		},
	})
}

func TestFormatComments(t *testing.T) {
	runCases(t, []formatCase{
		{
			name: "comments inside array",
			src:  "list = [\n  1, # one\n  # between\n  2,\n]\n",
			want: "list = [\n  1, # one\n  # between\n  2\n]\n",
		},
		{
			name: "embdoc",
			src:  "=begin\ndocs here\n=end\nx = 1\n",
			want: "=begin\ndocs here\n=end\nx = 1\n",
		},
		{
			name: "data section",
			src:  "puts DATA.read\n__END__\nraw   text\n# not a comment\n",
			want: "puts DATA.read\n__END__\nraw   text\n# not a comment\n",
		},
	})
}

func TestFormatTrailingCommentPlacement(t *testing.T) {
	runCases(t, []formatCase{
		{
			name: "two trailing comments on one line",
			src:  "x = # a\n  5 # b\n",
			want: "x = 5 # a\n# b\n",
		},
		{
			name: "no code before the comment",
			src:  "; # c\nx = 1\n",
			want: "# c\nx = 1\n",
		},
		{
			name: "after a leading comment",
			src:  "# lead\n; # c\nx = 1\n",
			want: "# lead\n# c\nx = 1\n",
		},
		{
			name: "comment only",
			src:  ";#",
			want: "#\n",
		},
		{
			name: "after the last statement of the line",
			src:  "call_a; call_b # t\n",
			want: "call_a\ncall_b # t\n",
		},
		{
			name: "one-line def",
			src:  "def a; b; end # c\n",
			want: "def a\n  b\nend # c\n",
		},
	})
}

func TestFormatBlockParams(t *testing.T) {
	runCases(t, []formatCase{
		{
			name: "fits",
			src:  "foo do |a,b|\n  a\nend\n",
			want: "foo do |a, b|\n  a\nend\n",
		},
		{
			name: "author split stays split",
			src:  "foo do |a,\n  b|\n  a\nend\n",
			want: "foo do |a,\n  b\n|\n  a\nend\n",
		},
	})
}

func TestFormatBlockParamsWidth(t *testing.T) {
	src := "list.each { |first_parameter_name, second_parameter_name| first_parameter_name }\n"
	got := formatSource(t, src, 40)
	for i, line := range strings.Split(got, "\n") {
		if w := len(line); w > 40 {
			t.Fatalf("line %d is %d columns: %q\nin %q", i+1, w, line, got)
		}
	}
	if again := formatSource(t, got, 40); again != got {
		t.Fatalf("not stable:\nfirst  %q\nsecond %q", got, again)
	}
}

func TestFormatEmptyHash(t *testing.T) {
	runCases(t, []formatCase{
		{name: "split", src: "x = {\n}\n", want: "x = {}\n"},
		{name: "argument", src: "foo({ })\n", want: "foo({})\n"},
	})
}

func TestFormatControlFlow(t *testing.T) {
	runCases(t, []formatCase{
		{
			name: "if chain blank lines",
			src:  "if a\n\n\n  b\nelsif c\n  d\n\nelse\n  e\nend\nx\n",
			want: "if a\n  b\nelsif c\n  d\nelse\n  e\nend\n\nx\n",
		},
		{
			name: "begin rescue",
			src:  "begin\n  risky\nrescue ArgumentError, TypeError => e\n  handle(e)\nelse\n  ok\nensure\n  cleanup\nend\n",
			want: "begin\n  risky\nrescue ArgumentError, TypeError => e\n  handle(e)\nelse\n  ok\nensure\n  cleanup\nend\n",
		},
		{
			name: "case when",
			src:  "case x\nwhen 1, 2 then :low\nelse :high\nend\n",
			want: "case x\nwhen 1, 2\n  :low\nelse\n  :high\nend\n",
		},
	})
}

func TestFormatHeredocInMethod(t *testing.T) {
	src := `def foo
  bar(<<~SQL, 1)
    SELECT *
      FROM t
  SQL
end
`
	runCases(t, []formatCase{{name: "squiggly", src: src, want: src}})
}

func TestFormatParseError(t *testing.T) {
	f := format.New(Frontend{}, format.Options{})
	_, err := f.Format(context.Background(), "bad.rb", []byte("foo(\n"))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("want ErrParse, got %v", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || len(pe.Diagnostics) == 0 {
		t.Fatalf("want diagnostics in %v", err)
	}
}

func TestStreamDump(t *testing.T) {
	f := format.New(Frontend{}, format.Options{})
	toks, err := f.Stream(context.Background(), "t.rb", []byte("foo(1, 2)\n"))
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	var found bool
	for _, tok := range toks {
		if tok.Kind == format.Breakable && tok.Entry.Delims().Name == "call" {
			found = true
		}
	}
	if !found {
		t.Fatalf("no call breakable in %v", toks)
	}
}
