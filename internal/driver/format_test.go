package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rbfmt/internal/observ"
	"rbfmt/internal/pipeline"
	"rbfmt/internal/printer"
	"rbfmt/internal/project"
)

const (
	messy = "foo(1,2,3)\n"
	clean = "foo(1, 2, 3)\n"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestFormatPathsRewritesFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.rb")
	b := filepath.Join(dir, "lib", "b.rb")
	writeFile(t, a, messy)
	writeFile(t, b, clean)
	writeFile(t, filepath.Join(dir, "README.md"), "foo(1,2,3)\n")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Config: project.Default()})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d", len(results))
	}
	if results[0].Path != a || !results[0].Changed || results[0].Err != nil {
		t.Fatalf("a.rb: %+v", results[0])
	}
	if results[1].Path != b || results[1].Changed {
		t.Fatalf("b.rb: %+v", results[1])
	}
	if got := readFile(t, a); got != clean {
		t.Fatalf("a.rb on disk\nwant %q\ngot  %q", clean, got)
	}
	info, err := os.Stat(a)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode not preserved: %v", info.Mode())
	}
}

func TestFormatPathsCheckLeavesFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.rb")
	writeFile(t, a, messy)

	results, err := FormatPaths(context.Background(), []string{a}, FormatOptions{Check: true, Diff: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if !results[0].Changed {
		t.Fatalf("expected change to be reported")
	}
	if got := readFile(t, a); got != messy {
		t.Fatalf("check mode modified the file: %q", got)
	}
	if !strings.Contains(results[0].Diff, "-foo(1,2,3)\n+foo(1, 2, 3)\n") {
		t.Fatalf("diff:\n%s", results[0].Diff)
	}
}

func TestFormatPathsStdout(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "script") // явный файл берётся без учёта шаблонов
	writeFile(t, a, messy)

	results, err := FormatPaths(context.Background(), []string{a}, FormatOptions{Stdout: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if got := string(results[0].Formatted); got != clean {
		t.Fatalf("stdout\nwant %q\ngot  %q", clean, got)
	}
	if got := readFile(t, a); got != messy {
		t.Fatalf("stdout mode modified the file: %q", got)
	}
}

func TestFormatPathsParseErrorIsPerFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.rb")
	good := filepath.Join(dir, "good.rb")
	writeFile(t, bad, "foo(1,\n")
	writeFile(t, good, messy)

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Jobs: 2})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if !errors.Is(results[0].Err, printer.ErrParse) {
		t.Fatalf("bad.rb: want ErrParse, got %v", results[0].Err)
	}
	var pe *printer.ParseError
	if !errors.As(results[0].Err, &pe) || len(pe.Diagnostics) == 0 {
		t.Fatalf("bad.rb: want diagnostics, got %v", results[0].Err)
	}
	if results[1].Err != nil || readFile(t, good) != clean {
		t.Fatalf("good.rb was not formatted: %+v", results[1])
	}
	if got := readFile(t, bad); got != "foo(1,\n" {
		t.Fatalf("bad.rb modified: %q", got)
	}
}

func TestFormatPathsNoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	_, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Config: project.Default()})
	if !errors.Is(err, ErrNoSourceFiles) {
		t.Fatalf("want ErrNoSourceFiles, got %v", err)
	}
}

func TestFormatPathsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FormatPaths(ctx, []string{t.TempDir()}, FormatOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestFormatPathsCache(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.rb")
	writeFile(t, a, messy)
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := FormatOptions{Check: true, Cache: cache}

	first, err := FormatPaths(context.Background(), []string{a}, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := FormatPaths(context.Background(), []string{a}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Cached || !second[0].Cached {
		t.Fatalf("cached flags: first=%v second=%v", first[0].Cached, second[0].Cached)
	}
	if !second[0].Changed {
		t.Fatalf("cached result lost the change")
	}

	opts.Check = false
	opts.Stdout = true
	third, err := FormatPaths(context.Background(), []string{a}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(third[0].Formatted); got != clean {
		t.Fatalf("cached output\nwant %q\ngot  %q", clean, got)
	}
}

func TestFormatPathsVerify(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.rb")
	writeFile(t, a, "x = 1 # c\n\n\ny = 2\n")
	results, err := FormatPaths(context.Background(), []string{a}, FormatOptions{Verify: true, Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err != nil {
		t.Fatalf("verify failed: %v", results[0].Err)
	}
	if !results[0].Timings.Has(pipeline.StageVerify) {
		t.Fatalf("verify stage not timed")
	}
}

func TestFormatBytesNormalizes(t *testing.T) {
	out, err := FormatBytes(context.Background(), "-", []byte("\xEF\xBB\xBFfoo(1,2,3)\r\n"), FormatOptions{Verify: true})
	if err != nil {
		t.Fatalf("FormatBytes: %v", err)
	}
	if string(out) != clean {
		t.Fatalf("want %q, got %q", clean, out)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []pipeline.Event
}

func (s *recordingSink) OnEvent(ev pipeline.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestFormatPathsProgressAndTimer(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.rb")
	writeFile(t, a, messy)
	sink := &recordingSink{}
	timer := observ.NewTimer()

	if _, err := FormatPaths(context.Background(), []string{a}, FormatOptions{Check: true, Progress: sink, Timer: timer}); err != nil {
		t.Fatal(err)
	}

	var last pipeline.Event
	for _, ev := range sink.events {
		if ev.File == a {
			last = ev
		}
	}
	if last.Status != pipeline.StatusDone || last.Outcome != pipeline.OutcomeChanged {
		t.Fatalf("last event for a.rb: %+v", last)
	}
	names := make([]string, 0)
	for _, p := range timer.Report().Phases {
		names = append(names, p.Name)
	}
	want := []string{"discover", "read", "format"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("timer phases (-want +got):\n%s", diff)
	}
}
