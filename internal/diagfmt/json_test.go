package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"rbfmt/internal/diag"
	"rbfmt/internal/source"
)

func TestJSONBasic(t *testing.T) {
	bag, fs := unterminatedString(t, "/tmp/project/app.rb")
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if d.Location.File != "app.rb" || d.Location.StartLine != 2 || d.Location.StartCol != 5 {
		t.Fatalf("unexpected location: %+v", d.Location)
	}
}

func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.rb", []byte("a\nb\nc\n"))
	var items []diag.Diagnostic
	for i := range 3 {
		off := uint32(i * 2) // #nosec G115
		items = append(items, diag.NewError(diag.SynUnexpectedToken, source.Span{File: id, Start: off, End: off + 1}, "unexpected"))
	}
	out := BuildDiagnostics(items, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("want 2 diagnostics, got %d", out.Count)
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Fatalf("positions must be omitted without IncludePositions")
	}
}
