package format

import (
	"sort"
	"strings"
)

type lineKind uint8

const (
	lineCode lineKind = iota
	lineBlank
	lineComment
	lineTaken    // комментарий уже выдан
	lineVerbatim // тело heredoc'а или многострочного литерала
)

// CommentLine is one line of a comment block. Blank lines are placeholders
// that turn into an empty output line.
type CommentLine struct {
	Line  int
	Text  string
	Raw   bool
	Blank bool
}

// CommentBlock is a run of full-line comments extracted together.
type CommentBlock struct {
	Start, End int
	Lines      []CommentLine
}

func (b *CommentBlock) prependBlank() {
	b.Lines = append([]CommentLine{{Blank: true}}, b.Lines...)
}

func (b *CommentBlock) appendBlank() {
	b.Lines = append(b.Lines, CommentLine{Blank: true})
}

// Comments returns the number of real comment lines.
func (b *CommentBlock) Comments() int {
	n := 0
	for _, l := range b.Lines {
		if !l.Blank {
			n++
		}
	}
	return n
}

func (b *CommentBlock) tokens(depth int) []Token {
	toks := make([]Token, 0, len(b.Lines)*3)
	for _, l := range b.Lines {
		switch {
		case l.Blank:
		case l.Raw:
			toks = append(toks, Token{Kind: Comment, Text: l.Text, Raw: true})
		default:
			toks = append(toks, Token{Kind: Indent, Depth: depth}, Token{Kind: Comment, Text: l.Text})
		}
		toks = append(toks, Token{Kind: HardNewline})
	}
	return toks
}

type trailingComment struct {
	line int
	text string
}

// FileComments indexes the comments of one source file. Full-line comments
// are found by scanning the text; trailing comments, =begin blocks and
// literal bodies are reported by the front end. Every comment is handed out
// exactly once.
type FileComments struct {
	kinds    []lineKind // kinds[i] - строка i+1
	text     []string
	raw      map[int]bool
	trailing []trailingComment
	next     int // первая строка, где ещё может быть невыданный комментарий

	blanks []int // blanks[i] - число пустых строк среди 1..i
	dirty  bool
}

// NewFileComments classifies the lines of src.
func NewFileComments(src []byte) *FileComments {
	lines := strings.Split(string(src), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	fc := &FileComments{
		kinds: make([]lineKind, len(lines)),
		text:  make([]string, len(lines)),
		raw:   make(map[int]bool),
		next:  1,
		dirty: true,
	}
	for i, l := range lines {
		t := strings.TrimLeft(l, " \t\f\v\r")
		switch {
		case strings.TrimSpace(t) == "":
			fc.kinds[i] = lineBlank
		case t[0] == '#':
			// \f и \v в конце - часть текста комментария
			fc.kinds[i] = lineComment
			fc.text[i] = strings.TrimRight(t, " \t")
		}
	}
	return fc
}

// LastLine is the number of lines in the file.
func (fc *FileComments) LastLine() int { return len(fc.kinds) }

func (fc *FileComments) kind(line int) lineKind {
	if line < 1 || line > len(fc.kinds) {
		return lineCode
	}
	return fc.kinds[line-1]
}

// Exclude marks lines start..end as literal content: they are neither
// comments nor blank lines.
func (fc *FileComments) Exclude(start, end int) {
	for l := max(start, 1); l <= end && l <= len(fc.kinds); l++ {
		fc.kinds[l-1] = lineVerbatim
	}
	fc.dirty = true
}

// AddTrailing registers a comment that follows code on line.
func (fc *FileComments) AddTrailing(line int, text string) {
	fc.trailing = append(fc.trailing, trailingComment{line: line, text: text})
	if n := len(fc.trailing); n > 1 && fc.trailing[n-2].line > line {
		sort.SliceStable(fc.trailing, func(i, j int) bool { return fc.trailing[i].line < fc.trailing[j].line })
	}
}

// AddEmbdoc registers a =begin/=end block; its lines are emitted unindented.
func (fc *FileComments) AddEmbdoc(line int, lines []string) {
	for i, text := range lines {
		l := line + i
		if l < 1 || l > len(fc.kinds) {
			continue
		}
		fc.kinds[l-1] = lineComment
		fc.text[l-1] = text
		fc.raw[l] = true
	}
	fc.dirty = true
}

func (fc *FileComments) commentLine(l int) CommentLine {
	return CommentLine{Line: l, Text: fc.text[l-1], Raw: fc.raw[l]}
}

// TakeLeading removes the comment run starting at line 1, if any.
func (fc *FileComments) TakeLeading() *CommentBlock {
	if fc.kind(1) != lineComment {
		return nil
	}
	b := &CommentBlock{Start: 1}
	for l := 1; fc.kind(l) == lineComment; l++ {
		b.Lines = append(b.Lines, fc.commentLine(l))
		fc.kinds[l-1] = lineTaken
		b.End = l
	}
	return b
}

// ExtractCommentsToLine removes every pending full-line comment up to and
// including line n. Groups separated by a blank line get a placeholder
// between them. Returns nil when nothing is pending.
func (fc *FileComments) ExtractCommentsToLine(n int) *CommentBlock {
	var b *CommentBlock
	last := 0
	for l := fc.next; l <= n && l <= len(fc.kinds); l++ {
		if fc.kinds[l-1] != lineComment {
			continue
		}
		if b == nil {
			b = &CommentBlock{Start: l}
		} else if l > last+1 && fc.BlankBetween(last, l) {
			b.appendBlank()
		}
		b.Lines = append(b.Lines, fc.commentLine(l))
		fc.kinds[l-1] = lineTaken
		b.End, last = l, l
	}
	if n >= fc.next {
		fc.next = n + 1
	}
	return b
}

// TrailingUpTo removes trailing comments on lines <= n, in line order.
func (fc *FileComments) TrailingUpTo(n int) []string {
	i := 0
	for i < len(fc.trailing) && fc.trailing[i].line <= n {
		i++
	}
	if i == 0 {
		return nil
	}
	out := make([]string, i)
	for j := range i {
		out[j] = fc.trailing[j].text
	}
	fc.trailing = fc.trailing[i:]
	return out
}

// BlankBetween reports a blank line strictly between a and b.
func (fc *FileComments) BlankBetween(a, b int) bool {
	if b-a < 2 {
		return false
	}
	if fc.dirty {
		fc.blanks = make([]int, len(fc.kinds)+1)
		for i, k := range fc.kinds {
			fc.blanks[i+1] = fc.blanks[i]
			if k == lineBlank {
				fc.blanks[i+1]++
			}
		}
		fc.dirty = false
	}
	lo := min(max(a, 0), len(fc.kinds))
	hi := min(max(b-1, 0), len(fc.kinds))
	return hi > lo && fc.blanks[hi]-fc.blanks[lo] > 0
}

// Remaining counts comments not handed out yet.
func (fc *FileComments) Remaining() int {
	n := len(fc.trailing)
	for _, k := range fc.kinds {
		if k == lineComment {
			n++
		}
	}
	return n
}
