package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rbfmt/internal/project"
)

// CollectFiles expands paths into the files to format. Directories are
// walked with cfg's [files] patterns; files named explicitly are always
// taken. The result is sorted and has no duplicates.
func CollectFiles(ctx context.Context, paths []string, cfg project.Config) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}
	m := cfg.Matcher()

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(filepath.Clean(p))
			continue
		}

		base := patternBase(cfg, p)
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			rel := relTo(base, path)
			if d.IsDir() {
				if path != p && m.Excludes(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type()&fs.ModeSymlink != 0 {
				return nil
			}
			if m.Includes(rel) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// patternBase: patterns are relative to the project root when dir lies
// inside it, otherwise to dir itself.
func patternBase(cfg project.Config, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	root := cfg.Root()
	if root == "" {
		return abs
	}
	if rootAbs, err := filepath.Abs(root); err == nil {
		if rel, err := filepath.Rel(rootAbs, abs); err == nil && !strings.HasPrefix(rel, "..") {
			return rootAbs
		}
	}
	return abs
}

func relTo(base, path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
