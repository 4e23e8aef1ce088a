package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/restyle-clj/restyle/internal/config"
	"github.com/restyle-clj/restyle/internal/logging"
)

// WalkFunc receives each source file found during a walk along with
// the effective configuration governing it.
type WalkFunc func(path string, eff config.Effective) error

// Walk descends from root, whose effective configuration the caller
// already resolved, and calls fn for every source file in lexical
// order. A subdirectory containing its own .restyle folds it onto the
// inherited configuration for that subtree; a fragment that fails to
// parse or validate aborts the walk. Ignored directories are pruned,
// ignored and non-source files skipped, and unreadable entries below
// the root are treated like ignored ones.
func Walk(root string, eff config.Effective, globs []string, fn WalkFunc) error {
	root = filepath.Clean(root)
	type scope struct {
		dir string
		eff config.Effective
		cls *Classifier
	}
	stack := []scope{{dir: root, eff: eff, cls: NewClassifier(eff.Settings, globs)}}
	top := func() *scope { return &stack[len(stack)-1] }

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logging.Debug().Str("path", path).Err(err).Msg("skipping unreadable entry")
			return nil
		}
		for len(stack) > 1 && !within(top().dir, path) {
			stack = stack[:len(stack)-1]
		}
		sc := top()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if sc.cls.Ignored(path) {
				logging.Debug().Str("dir", path).Msg("pruning ignored directory")
				return fs.SkipDir
			}
			frag, err := config.LoadFragment(filepath.Join(path, config.FileName))
			if err != nil {
				return err
			}
			if frag != nil {
				child := sc.eff.Extend(*frag)
				stack = append(stack, scope{
					dir: path,
					eff: child,
					cls: NewClassifier(child.Settings, globs),
				})
			}
			return nil
		}
		if d.Name() == config.FileName {
			return nil
		}
		if sc.cls.Ignored(path) || !sc.cls.SourceFile(path) {
			return nil
		}
		return fn(path, sc.eff)
	})
}

// within reports whether path is dir or lies inside it.
func within(dir, path string) bool {
	if dir == path {
		return true
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
