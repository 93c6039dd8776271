package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"rbfmt/internal/trace"
)

// DefaultLineWidth is used when Options.LineWidth is not set.
const DefaultLineWidth = 120

// ErrCommentsLost is returned when the stream ends with comments that were
// never placed.
var ErrCommentsLost = errors.New("format: comments were not emitted")

type Options struct {
	LineWidth int
}

func (o Options) width() int {
	if o.LineWidth <= 0 {
		return DefaultLineWidth
	}
	return o.LineWidth
}

// Frontend parses a source file into something the core can walk.
type Frontend interface {
	Parse(path string, src []byte) (Program, error)
}

// Program is a parsed file.
type Program interface {
	// Annotate reports trailing comments, =begin blocks and literal line
	// ranges collected while parsing.
	Annotate(fc *FileComments)
	// Walk emits the whole file into ps.
	Walk(ps *ParserState)
}

// Formatter formats whole files. It is safe for concurrent use as long as
// the Frontend is.
type Formatter struct {
	fe   Frontend
	opts Options
}

func New(fe Frontend, opts Options) *Formatter {
	return &Formatter{fe: fe, opts: opts}
}

// Format returns the formatted src. Parse errors come from the Frontend
// unchanged; broken core contracts surface as *InvariantError.
func (f *Formatter) Format(ctx context.Context, path string, src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.FormatTo(ctx, &buf, path, src); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatTo writes the formatted src to w. Nothing is written on error.
func (f *Formatter) FormatTo(ctx context.Context, w io.Writer, path string, src []byte) error {
	ctx, span := trace.Start(ctx, trace.ScopeNode, "format")
	span.WithExtra("path", path)
	defer span.End("")

	ps, err := f.build(ctx, path, src)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	_, resolve := trace.Start(ctx, trace.ScopeNode, "resolve")
	err = f.write(ps, &buf)
	resolve.EndErr(err)
	if err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

// Stream returns the finished, unresolved token stream of src. Breakables
// are still undecided; Dump prints them.
func (f *Formatter) Stream(ctx context.Context, path string, src []byte) ([]Token, error) {
	ctx, span := trace.Start(ctx, trace.ScopeNode, "stream")
	span.WithExtra("path", path)
	defer span.End("")
	ps, err := f.build(ctx, path, src)
	if err != nil {
		return nil, err
	}
	return ps.Tokens(), nil
}

func (f *Formatter) build(ctx context.Context, path string, src []byte) (ps *ParserState, err error) {
	_, parse := trace.Start(ctx, trace.ScopeNode, "parse")
	prog, err := f.fe.Parse(path, src)
	parse.EndErr(err)
	if err != nil {
		return nil, err
	}
	fc := NewFileComments(src)
	prog.Annotate(fc)

	defer recoverInvariant(&err)
	_, walk := trace.Start(ctx, trace.ScopeNode, "walk")
	defer walk.End("")
	ps = NewParserState(fc, f.opts.width())
	prog.Walk(ps)
	ps.Finish()
	if n := fc.Remaining(); n > 0 {
		return nil, fmt.Errorf("%w: %d left", ErrCommentsLost, n)
	}
	return ps, nil
}

func (f *Formatter) write(ps *ParserState, out io.Writer) (err error) {
	defer recoverInvariant(&err)
	return ps.Write(out)
}

// recoverInvariant turns a fault into an error; any other panic goes on.
func recoverInvariant(err *error) {
	r := recover()
	if r == nil {
		return
	}
	ie, ok := r.(*InvariantError)
	if !ok {
		panic(r)
	}
	*err = ie
}
