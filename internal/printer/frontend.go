package printer

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"rbfmt/internal/ast"
	"rbfmt/internal/diag"
	"rbfmt/internal/format"
	"rbfmt/internal/lexer"
	"rbfmt/internal/parser"
	"rbfmt/internal/source"
	"rbfmt/internal/token"
)

// ErrParse is wrapped by every *ParseError.
var ErrParse = errors.New("parse error")

// ParseError carries the diagnostics of a file that could not be parsed.
type ParseError struct {
	Path        string
	FileSet     *source.FileSet
	Diagnostics []diag.Diagnostic
}

func (e *ParseError) Error() string {
	for _, d := range e.Diagnostics {
		if d.Severity < diag.SevError {
			continue
		}
		start, _ := e.FileSet.Resolve(d.Primary)
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, start.Line, start.Col, d.Message)
	}
	return e.Path + ": parse error"
}

func (e *ParseError) Unwrap() error { return ErrParse }

// Frontend lexes and parses Ruby source for format.Formatter.
type Frontend struct {
	// MaxErrors limits collected diagnostics; 0 means no limit.
	MaxErrors int
}

func (fe Frontend) Parse(path string, src []byte) (format.Program, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, src)
	limit, err := safecast.Conv[uint](fe.MaxErrors)
	if err != nil {
		limit = 0
	}
	bag := diag.NewBag(fe.MaxErrors)
	rep := diag.BagReporter{Bag: bag}
	rec := &recorder{}
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: rep, Comments: rec})
	res := parser.ParseFile(lx, parser.Options{Reporter: rep, MaxErrors: limit})
	if bag.HasErrors() {
		bag.Sort()
		return nil, &ParseError{Path: path, FileSet: fs, Diagnostics: bag.Items()}
	}
	return &Program{file: res.Program, comments: rec}, nil
}

// recorder keeps what the lexer reports about comments until the core asks.
type recorder struct {
	trailing []trailing
	embdocs  []embdoc
	verbatim [][2]int
}

type trailing struct {
	line int
	text string
}

type embdoc struct {
	line  int
	lines []string
}

func (r *recorder) Trailing(line int, text string) {
	r.trailing = append(r.trailing, trailing{line: line, text: text})
}

func (r *recorder) Embdoc(line int, lines []string) {
	r.embdocs = append(r.embdocs, embdoc{line: line, lines: lines})
}

func (r *recorder) Verbatim(start, end int) {
	r.verbatim = append(r.verbatim, [2]int{start, end})
}

// Program is a parsed Ruby file.
type Program struct {
	file     *ast.Program
	comments *recorder
}

// AST exposes the tree (rbfmt parse).
func (p *Program) AST() *ast.Program { return p.file }

func (p *Program) Annotate(fc *format.FileComments) {
	for _, v := range p.comments.verbatim {
		fc.Exclude(v[0], v[1])
	}
	for _, e := range p.comments.embdocs {
		fc.AddEmbdoc(e.line, e.lines)
	}
	for _, t := range p.comments.trailing {
		fc.AddTrailing(t.line, t.text)
	}
}

func (p *Program) Walk(ps *format.ParserState) {
	pr := &printer{ps: ps}
	pr.printBody(p.file.Body)
	if p.file.DataLine > 0 {
		ps.OnLine(p.file.DataLine)
		ps.EmitVerbatim(p.file.Data)
	}
}

func heredocKind(k token.HeredocKind) format.HeredocKind {
	switch k {
	case token.HeredocDash:
		return format.HeredocDash
	case token.HeredocSquiggly:
		return format.HeredocSquiggly
	}
	return format.HeredocPlain
}
