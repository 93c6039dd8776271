package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"rbfmt/internal/diag"
	"rbfmt/internal/source"
)

func unterminatedString(t *testing.T, path string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("x = 1\ny = \"open\nz = 2\n")
	id := fs.AddVirtual(path, content)
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: id, Start: 10, End: 15}, "unterminated string literal"))
	return bag, fs
}

func TestPrettyLayout(t *testing.T) {
	bag, fs := unterminatedString(t, "app.rb")
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	want := `app.rb:2:5: ERROR LEX1002: unterminated string literal
 1 | x = 1
 2 | y = "open
   |     ^~~~~
 3 | z = 2
`
	if got := buf.String(); got != want {
		t.Fatalf("pretty output\nwant %q\ngot  %q", want, got)
	}
}

func TestPathModes(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		mode     PathMode
		base     string
		contains string
	}{
		{"basename", "/home/user/project/lib/app.rb", PathModeBasename, "", "app.rb:2:5"},
		{"relative", "/home/user/project/lib/app.rb", PathModeRelative, "/home/user/project", "lib/app.rb:2:5"},
		{"auto short", "lib/app.rb", PathModeAuto, "", "lib/app.rb:2:5"},
		{"auto long", "/very/long/absolute/path/to/some/nested/directory/app.rb", PathModeAuto, "", "\napp.rb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag, fs := unterminatedString(t, tt.path)
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, BaseDir: tt.base})
			out := "\n" + buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Fatalf("want %q in:\n%s", tt.contains, out)
			}
		})
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.rb", []byte("foo(1,\n"))
	d := diag.NewError(diag.SynUnclosedParen, source.Span{File: id, Start: 3, End: 4}, "unclosed parenthesis").
		WithNote(source.Span{File: id, Start: 7, End: 7}, "file ends here")
	var buf bytes.Buffer
	PrettyItems(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(buf.String(), "note: a.rb:2:1: file ends here") {
		t.Fatalf("note missing:\n%s", buf.String())
	}
}

func TestCaretRangeWideRunes(t *testing.T) {
	text := "s = \"日本\" + x"
	// x стоит после двух широких символов
	col := uint32(strings.Index(text, "x") + 1)
	pad, width := caretRange(text, source.LineCol{Line: 1, Col: col}, source.LineCol{Line: 1, Col: col + 1})
	if pad != 13 || width != 1 {
		t.Fatalf("caret: want pad 13 width 1, got %d %d", pad, width)
	}
}
