// Package scan classifies candidate files against resolved settings
// and walks directory trees, folding in the configuration fragments it
// finds on the way down.
package scan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/restyle-clj/restyle/internal/config"
)

// Classifier answers whether paths are formattable sources or ignored,
// for one resolved settings value plus optional external globs. Build
// it once per directory scope; matching is then cheap per file.
type Classifier struct {
	pattern    config.Pattern
	hasPattern bool
	extensions map[string]bool
	names      map[string]bool
	patterns   []config.Pattern
	globs      []string
}

// NewClassifier builds a classifier from settings and external globs.
func NewClassifier(s config.Settings, globs []string) *Classifier {
	c := &Classifier{
		extensions: make(map[string]bool),
		names:      make(map[string]bool),
		globs:      globs,
	}
	if p, ok := s.FilePattern(); ok {
		c.pattern, c.hasPattern = p, true
	}
	if exts, ok := s.FileExtensions(); ok {
		for _, e := range exts {
			if str, isStr := e.(string); isStr {
				c.extensions[strings.TrimPrefix(str, ".")] = true
			}
		}
	}
	if rules, ok := s.IgnoreRules(); ok {
		for _, r := range rules {
			switch rv := r.(type) {
			case string:
				c.names[rv] = true
			case config.Pattern:
				c.patterns = append(c.patterns, rv)
			}
		}
	}
	return c
}

// SourceFile reports whether path names a regular, readable file whose
// name matches files.pattern, falling back to files.extensions when no
// pattern is configured.
func (c *Classifier) SourceFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if !readable(path) {
		return false
	}
	return c.MatchesName(filepath.Base(path))
}

// MatchesName checks just the name rule, for callers that already know
// the path is a regular readable file.
func (c *Classifier) MatchesName(name string) bool {
	if c.hasPattern {
		return c.pattern.MatchString(name)
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return ext != "" && c.extensions[ext]
}

// Ignored reports whether path is excluded: an ignore name equals the
// base name, an ignore pattern matches the canonical absolute path, or
// an external glob matches. First match wins; with no rules and no
// globs nothing is ignored.
func (c *Classifier) Ignored(path string) bool {
	if len(c.names) == 0 && len(c.patterns) == 0 && len(c.globs) == 0 {
		return false
	}
	base := filepath.Base(path)
	if c.names[base] {
		return true
	}
	canonical := canonicalPath(path)
	for _, p := range c.patterns {
		if p.MatchString(canonical) {
			return true
		}
	}
	for _, g := range c.globs {
		if matchGlob(g, canonical, base) {
			return true
		}
	}
	return false
}

func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// canonicalPath resolves path to an absolute, symlink-free form; on
// resolution failure the absolute path stands in.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, symErr := filepath.EvalSymlinks(abs); symErr == nil {
		return resolved
	}
	return abs
}

// matchGlob matches one doublestar glob against the canonical path,
// and against the bare name too when the glob has no separator.
// Malformed globs match nothing.
func matchGlob(glob, canonical, base string) bool {
	if ok, err := doublestar.Match(glob, canonical); err == nil && ok {
		return true
	}
	if !strings.Contains(glob, "/") {
		if ok, err := doublestar.Match(glob, base); err == nil && ok {
			return true
		}
	}
	return false
}

// SourceFile reports whether path is a formattable source under s.
func SourceFile(s config.Settings, path string) bool {
	return NewClassifier(s, nil).SourceFile(path)
}

// Ignored reports whether path is excluded under s and globs.
func Ignored(s config.Settings, globs []string, path string) bool {
	return NewClassifier(s, globs).Ignored(path)
}
