package project

import (
	"path"
	"strings"
)

// Matcher applies [files] patterns to slash-separated relative paths.
type Matcher struct {
	include []string
	exclude []string
}

func (c Config) Matcher() Matcher {
	return Matcher{include: c.Files.Include, exclude: c.Files.Exclude}
}

// Includes reports whether a file found while walking a directory is formatted.
func (m Matcher) Includes(rel string) bool {
	if m.Excludes(rel) {
		return false
	}
	for _, p := range m.include {
		if matchPattern(p, rel) {
			return true
		}
	}
	return false
}

// Excludes reports whether rel (a file or a directory) is excluded.
func (m Matcher) Excludes(rel string) bool {
	for _, p := range m.exclude {
		if matchPattern(p, rel) {
			return true
		}
	}
	return false
}

// matchPattern:
//
//	*.rb        base name of any file
//	lib/*.rb    whole relative path
//	vendor/**   the directory and everything under it; a single-segment
//	            prefix matches at any depth
func matchPattern(pattern, rel string) bool {
	rel = strings.TrimPrefix(rel, "./")
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
			return true
		}
		if strings.Contains(prefix, "/") {
			return false
		}
		for _, seg := range strings.Split(rel, "/") {
			if ok, _ := path.Match(prefix, seg); ok {
				return true
			}
		}
		return false
	}
	if !strings.Contains(pattern, "/") {
		ok, _ := path.Match(pattern, path.Base(rel))
		return ok
	}
	ok, _ := path.Match(pattern, rel)
	return ok
}
