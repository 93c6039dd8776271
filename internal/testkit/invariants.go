package testkit

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"rbfmt/internal/lexer"
	"rbfmt/internal/source"
	"rbfmt/internal/token"
)

// ErrNotIdempotent is returned by CheckIdempotent.
var ErrNotIdempotent = errors.New("formatting is not idempotent")

// FormatFunc formats one file.
type FormatFunc func(src []byte) ([]byte, error)

// scan lexes src and returns its comments (embdoc blocks split per line)
// and the lines that belong to literal bodies.
func scan(src []byte) (comments []string, verbatim map[int]bool) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("check.rb", src)
	sink := &verbatimSink{lines: map[int]bool{}}
	lx := lexer.New(fs.Get(id), lexer.Options{Comments: sink})
	for {
		tok := lx.Next()
		for _, tr := range tok.Leading {
			switch tr.Kind {
			case token.TriviaComment:
				comments = append(comments, strings.TrimRight(tr.Text, " \t"))
			case token.TriviaEmbdoc:
				for _, l := range strings.Split(strings.TrimRight(tr.Text, "\n"), "\n") {
					comments = append(comments, strings.TrimRight(l, " \t"))
				}
			}
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return comments, sink.lines
}

type verbatimSink struct {
	lines map[int]bool
}

func (s *verbatimSink) Trailing(int, string) {}
func (s *verbatimSink) Embdoc(int, []string) {}
func (s *verbatimSink) Verbatim(start, end int) {
	for l := start; l <= end; l++ {
		s.lines[l] = true
	}
}

// CheckComments verifies that every comment of src appears in out the
// same number of times.
func CheckComments(src, out []byte) error {
	want, _ := scan(src)
	got, _ := scan(out)
	sort.Strings(want)
	sort.Strings(got)
	if len(want) != len(got) {
		return fmt.Errorf("comment count changed: %d -> %d", len(want), len(got))
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("comment %q replaced by %q", want[i], got[i])
		}
	}
	return nil
}

// CheckLayout verifies the line-level shape of formatted output: a single
// trailing newline, no run of blank lines, no trailing whitespace. Lines
// inside heredocs and other literal bodies are not checked.
func CheckLayout(out []byte) error {
	if len(out) == 0 || out[len(out)-1] != '\n' {
		return errors.New("output does not end with a newline")
	}
	if bytes.Equal(out, []byte("\n")) {
		return nil
	}
	if bytes.HasSuffix(out, []byte("\n\n")) {
		return errors.New("output ends with a blank line")
	}
	_, verbatim := scan(out)
	lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	prevBlank := false
	for i, l := range lines {
		n := i + 1
		if verbatim[n] {
			prevBlank = false
			continue
		}
		blank := l == ""
		switch {
		case blank && n == 1:
			return errors.New("output starts with a blank line")
		case blank && prevBlank:
			return fmt.Errorf("line %d: two blank lines in a row", n)
		case strings.TrimRight(l, " \t") != l:
			return fmt.Errorf("line %d: trailing whitespace", n)
		}
		prevBlank = blank
	}
	return nil
}

// CheckIdempotent formats out once more and compares.
func CheckIdempotent(format FormatFunc, out []byte) error {
	again, err := format(out)
	if err != nil {
		return fmt.Errorf("reformat: %w", err)
	}
	if !bytes.Equal(again, out) {
		return fmt.Errorf("%w: first %q, second %q", ErrNotIdempotent, out, again)
	}
	return nil
}

// CheckOutput runs every check on one formatting result.
func CheckOutput(format FormatFunc, src, out []byte) error {
	return errors.Join(
		CheckLayout(out),
		CheckComments(src, out),
		CheckIdempotent(format, out),
	)
}
