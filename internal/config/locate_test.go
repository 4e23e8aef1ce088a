// Package config_test tests upward discovery and loading of configuration fragments.
// Related: internal/config/locate.go
// Tags: config, locator, search, fragments, filesystem
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restyle-clj/restyle/internal/testutil"
)

// tempRoot returns a symlink-resolved temp directory so discovered
// fragment paths compare cleanly against expectations.
func tempRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		return resolved
	}
	return root
}

func TestFindUpCollectsShallowestFirst(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	deep := filepath.Join(root, "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0755))

	topCfg := testutil.WriteConfig(t, root, "rules:\n  blank-lines:\n    max-consecutive: 1\n")
	deepCfg := testutil.WriteConfig(t, deep, "rules:\n  blank-lines:\n    max-consecutive: 0\n")

	frags, err := FindUp(deep, 3)
	require.NoError(t, err)
	require.Len(t, frags, 2)
	assert.Equal(t, topCfg, frags[0].Path)
	assert.Equal(t, deepCfg, frags[1].Path)
}

func TestFindUpFromFilePath(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	cfg := testutil.WriteConfig(t, root, "rules:\n  eof-newline:\n    enabled: false\n")
	src := filepath.Join(root, "core.clj")
	testutil.WriteFile(t, src, "(ns core)")

	frags, err := FindUp(src, 1)
	require.NoError(t, err)
	require.Len(t, frags, 1)
	assert.Equal(t, cfg, frags[0].Path)
}

func TestFindUpHonorsLimit(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	deep := filepath.Join(root, "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0755))
	testutil.WriteConfig(t, root, "rules:\n  eof-newline:\n    enabled: false\n")

	frags, err := FindUp(deep, 2)
	require.NoError(t, err)
	assert.Empty(t, frags, "the limit stops the search before the configured directory")

	frags, err = FindUp(deep, 3)
	require.NoError(t, err)
	assert.Len(t, frags, 1)
}

func TestFindUpRejectsBadLimit(t *testing.T) {
	t.Parallel()

	_, err := FindUp(".", 0)
	assert.True(t, errors.Is(err, ErrSearchLimit))

	_, err = FindUp(".", -5)
	assert.True(t, errors.Is(err, ErrSearchLimit))
}

func TestFindUpMissingStart(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	_, err := FindUp(filepath.Join(root, "no", "such", "dir"), 5)
	assert.Error(t, err)
}

func TestFindUpParseErrorAborts(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	deep := filepath.Join(root, "b")
	require.NoError(t, os.MkdirAll(deep, 0755))
	broken := testutil.WriteConfig(t, root, "files: [clj\n")

	_, err := FindUp(deep, 2)
	require.Error(t, err)

	var pe *ParseError
	require.True(t, errors.As(err, &pe), "expected a parse error, got %T", err)
	assert.Equal(t, broken, pe.Path)
}

func TestFindUpSchemaErrorAborts(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	bad := testutil.WriteConfig(t, root, "colors: true\n")

	_, err := FindUp(root, 1)
	require.Error(t, err)

	var se *SchemaError
	require.True(t, errors.As(err, &se), "expected a schema error, got %T", err)
	assert.Equal(t, bad, se.Path)
	assert.Equal(t, "colors", se.Field)
}

func TestFindUpLegacyInvalidValueAborts(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	bad := testutil.WriteConfig(t, root, "max-consecutive-blank-lines: -1\n")

	_, err := FindUp(root, 1)
	require.Error(t, err, "a legacy value still has to satisfy the schema")

	var se *SchemaError
	require.True(t, errors.As(err, &se), "expected a schema error, got %T", err)
	assert.Equal(t, bad, se.Path)
	assert.Equal(t, "rules.blank-lines.max-consecutive", se.Field)
	assert.Contains(t, se.Message, "-1")
}

func TestFindUpUnreadableFileIsAbsent(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("file permissions do not bind root")
	}

	root := tempRoot(t)
	sub := filepath.Join(root, "sub")
	outer := testutil.WriteConfig(t, root, "rules:\n  eof-newline:\n    enabled: true\n")
	locked := testutil.WriteConfig(t, sub, "rules:\n  eof-newline:\n    enabled: false\n")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { os.Chmod(locked, 0644) })

	frags, err := FindUp(sub, 2)
	require.NoError(t, err, "an unreadable file means no configuration here")
	require.Len(t, frags, 1)
	assert.Equal(t, outer, frags[0].Path)
}

func TestLoadFragmentMissing(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	frag, err := LoadFragment(filepath.Join(root, FileName))
	require.NoError(t, err)
	assert.Nil(t, frag, "a missing file is no configuration, not an error")
}

func TestLoadFragmentDirectoryNamedLikeConfig(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, FileName), 0755))

	frag, err := LoadFragment(filepath.Join(root, FileName))
	require.NoError(t, err)
	assert.Nil(t, frag)

	frags, err := FindUp(root, 1)
	require.NoError(t, err)
	assert.Empty(t, frags)
}

func TestLoadFragmentTranslatesLegacy(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	path := testutil.WriteConfig(t, root, "max-consecutive-blank-lines: 5\nrequire-eof-newline: true\n")

	frag, err := LoadFragment(path)
	require.NoError(t, err)
	require.NotNil(t, frag)

	assert.False(t, IsLegacy(frag.Settings))
	v, ok := frag.Settings.lookup("rules", "blank-lines", "max-consecutive")
	require.True(t, ok)
	assert.Equal(t, 5, v)
	assert.True(t, frag.Settings.RuleEnabled("eof-newline"))
}

func TestLoadFragmentCanonicalizes(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	path := testutil.WriteConfig(t, root, "files:\n  extensions: [clj, clj, cljs]\n")

	frag, err := LoadFragment(path)
	require.NoError(t, err)
	require.NotNil(t, frag)

	exts, ok := frag.Settings.FileExtensions()
	require.True(t, ok)
	assert.Equal(t, NewSet("clj", "cljs"), exts)
}

func TestLoadFragmentEmptyFile(t *testing.T) {
	t.Parallel()

	root := tempRoot(t)
	path := testutil.WriteConfig(t, root, "")

	frag, err := LoadFragment(path)
	require.NoError(t, err)
	require.NotNil(t, frag, "an empty file is an empty fragment, not an absent one")
	assert.Empty(t, frag.Settings)
}
