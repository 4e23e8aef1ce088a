package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/restyle-clj/restyle/internal/logging"
)

// ErrSearchLimit is returned by FindUp when the recursion limit is not
// positive.
var ErrSearchLimit = errors.New("config search limit must be positive")

// FindUp searches for .restyle files from start toward the filesystem
// root, visiting at most limit directories. start may name a file or a
// directory; the search begins in the nearest enclosing directory,
// resolved once to an absolute, symlink-free path. Fragments return
// shallowest first, ready to fold so that deeper directories override.
//
// A missing or unreadable .restyle is simply no configuration at that
// level. A .restyle that exists but fails to parse or validate aborts
// the search with a *ParseError or *SchemaError naming the file.
func FindUp(start string, limit int) ([]Fragment, error) {
	if limit < 1 {
		return nil, ErrSearchLimit
	}
	dir, err := startDir(start)
	if err != nil {
		return nil, err
	}
	var frags []Fragment
	for remaining := limit; remaining > 0; remaining-- {
		frag, err := LoadFragment(filepath.Join(dir, FileName))
		if err != nil {
			return nil, err
		}
		if frag != nil {
			frags = append(frags, *frag)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	// Collected deepest first; callers fold shallowest first.
	for i, j := 0, len(frags)-1; i < j; i, j = i+1, j-1 {
		frags[i], frags[j] = frags[j], frags[i]
	}
	return frags, nil
}

// startDir resolves start to the directory the search begins in.
func startDir(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving start path %q: %w", start, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("resolving start path %q: %w", start, err)
	}
	if !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	if resolved, symErr := filepath.EvalSymlinks(abs); symErr == nil {
		return resolved, nil
	}
	return abs, nil
}

// LoadFragment reads, translates, and validates one configuration
// file. It returns (nil, nil) when the file does not exist or cannot
// be read due to permissions; both mean "no configuration here". A
// directory named .restyle counts as absent too. Parse and schema
// errors carry the file path.
func LoadFragment(path string) (*Fragment, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case errors.Is(err, fs.ErrPermission):
		logging.Debug().Str("path", path).Msg("skipping unreadable config file")
		return nil, nil
	case err != nil:
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			return nil, nil
		}
		return nil, &ParseError{Path: path, Message: err.Error()}
	}
	s, err := Decode(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	if IsLegacy(s) {
		logging.Debug().Str("path", path).Msg("translating legacy configuration")
		s = TranslateLegacy(s)
	}
	s, err = Validate(s)
	if err != nil {
		var se *SchemaError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, err
	}
	logging.Debug().Str("path", path).Msg("loaded config fragment")
	return &Fragment{Path: path, Settings: s}, nil
}
