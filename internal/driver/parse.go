package driver

import (
	"context"
	"os"

	"rbfmt/internal/format"
	"rbfmt/internal/source"
)

// StreamResult is the unresolved token stream of one file.
type StreamResult struct {
	Path   string
	Tokens []format.Token
}

// Stream parses path and returns what the core built before choosing
// layouts. Parse errors come back as *printer.ParseError.
func Stream(ctx context.Context, path string, opts FormatOptions) (*StreamResult, error) {
	// #nosec G304 -- path is provided by the caller
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return StreamBytes(ctx, path, src, opts)
}

// StreamBytes is Stream for in-memory input.
func StreamBytes(ctx context.Context, path string, src []byte, opts FormatOptions) (*StreamResult, error) {
	toks, err := opts.formatter().Stream(ctx, path, source.Normalize(src))
	if err != nil {
		return nil, err
	}
	return &StreamResult{Path: path, Tokens: toks}, nil
}
