package driver

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rbfmt/internal/project"
)

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{
		"app.rb",
		"Gemfile",
		"lib/tasks/build.rake",
		"vendor/bundle/gem.rb",
		"node_modules/x/y.rb",
		"docs/readme.md",
	} {
		writeFile(t, filepath.Join(dir, rel), "x\n")
	}

	got, err := CollectFiles(context.Background(), []string{dir, filepath.Join(dir, "app.rb")}, project.Default())
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "Gemfile"),
		filepath.Join(dir, "app.rb"),
		filepath.Join(dir, "lib/tasks/build.rake"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
}

func TestCollectFilesExplicitExcludedFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "vendor", "keep.rb")
	writeFile(t, p, "x\n")
	got, err := CollectFiles(context.Background(), []string{p}, project.Default())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != p {
		t.Fatalf("explicit file dropped: %v", got)
	}
}

func TestCollectFilesPatternsRelativeToRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, project.ConfigFileName), "[files]\nexclude = [\"lib/gen/**\"]\n")
	writeFile(t, filepath.Join(root, "lib/gen/out.rb"), "x\n")
	writeFile(t, filepath.Join(root, "lib/real.rb"), "x\n")

	cfg, err := project.Discover(root)
	if err != nil {
		t.Fatal(err)
	}
	// обходим подкаталог: шаблон всё равно считается от корня проекта
	got, err := CollectFiles(context.Background(), []string{filepath.Join(root, "lib")}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(root, "lib/real.rb")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
}

func TestCollectFilesMissingPath(t *testing.T) {
	if _, err := CollectFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.rb")}, project.Default()); err == nil {
		t.Fatalf("expected error for missing path")
	}
}
