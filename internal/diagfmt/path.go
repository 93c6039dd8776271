package diagfmt

import (
	"path/filepath"
)

const autoPathLimit = 40

func formatPath(p string, mode PathMode, base string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if base == "" {
			return p
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return p
		}
		if rel, err := filepath.Rel(base, abs); err == nil {
			return filepath.ToSlash(rel)
		}
	case PathModeBasename:
		return filepath.Base(p)
	case PathModeAuto:
		if filepath.IsAbs(p) && len(p) > autoPathLimit {
			return filepath.Base(p)
		}
	}
	return p
}
