package token

import (
	"rbfmt/internal/source"
)

// HeredocKind distinguishes <<ID, <<-ID and <<~ID.
type HeredocKind uint8

const (
	HeredocPlain HeredocKind = iota
	HeredocDash
	HeredocSquiggly
)

// HeredocBody is the deferred part of a heredoc literal.
type HeredocBody struct {
	Kind    HeredocKind
	ID      string // terminator without quotes
	Body    string // raw lines between opener and terminator, each ending in '\n'
	EndLine int    // line of the terminator
}

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Line int // 1-based line of the first byte
	// SpaceBefore is set when whitespace or a line start precedes the token.
	// Ruby uses it to tell `foo -1` from `foo - 1` and `foo [1]` from `foo[1]`.
	SpaceBefore bool
	// SpaceAfter is set when whitespace, a newline or EOF follows the token.
	SpaceAfter bool
	EndLine    int // last line covered, differs from Line for multi-line literals
	Heredoc    *HeredocBody
	Leading    []Trivia
}

// Is reports whether the token has one of the kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}
