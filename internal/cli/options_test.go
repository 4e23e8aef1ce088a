// Package cli_test tests tool option loading from file, environment, and defaults.
// Related: internal/cli/options.go
// Tags: cli, options, koanf, environment, validation
package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptionsDefaults(t *testing.T) {
	// No t.Parallel() - reads HOME and RESTYLE_* environment
	t.Setenv("HOME", t.TempDir())

	opts, err := LoadOptions("")
	require.NoError(t, err)

	assert.Equal(t, 25, opts.SearchLimit)
	assert.Equal(t, "warn", opts.LogLevel)
	assert.Equal(t, "auto", opts.Color)
	assert.Empty(t, opts.Globs)
}

func TestLoadOptionsFromFile(t *testing.T) {
	// No t.Parallel() - reads RESTYLE_* environment
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{
  "search_limit": 10,
  "log_level": "debug",
  "color": "never",
  "globs": ["**/*.tmp", "*~"]
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)

	assert.Equal(t, 10, opts.SearchLimit)
	assert.Equal(t, "debug", opts.LogLevel)
	assert.Equal(t, "never", opts.Color)
	assert.Equal(t, []string{"**/*.tmp", "*~"}, opts.Globs)
}

func TestLoadOptionsDefaultFileInHome(t *testing.T) {
	// No t.Parallel() - overrides HOME
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfgDir := filepath.Join(home, ".config", "restyle")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(cfgDir, "config.json"),
		[]byte(`{"search_limit": 7}`), 0644))

	opts, err := LoadOptions("")
	require.NoError(t, err)
	assert.Equal(t, 7, opts.SearchLimit)
	assert.Equal(t, "warn", opts.LogLevel, "unset keys keep their defaults")
}

func TestLoadOptionsExplicitMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadOptions(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err, "a config path given explicitly must exist")
}

func TestLoadOptionsEnvOverrides(t *testing.T) {
	// No t.Parallel() - t.Setenv
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RESTYLE_SEARCH_LIMIT", "50")
	t.Setenv("RESTYLE_LOG_LEVEL", "error")

	opts, err := LoadOptions("")
	require.NoError(t, err)
	assert.Equal(t, 50, opts.SearchLimit)
	assert.Equal(t, "error", opts.LogLevel)
}

func TestLoadOptionsEnvBeatsFile(t *testing.T) {
	// No t.Parallel() - t.Setenv
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"search_limit": 10}`), 0644))
	t.Setenv("RESTYLE_SEARCH_LIMIT", "99")

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 99, opts.SearchLimit)
}

func TestLoadOptionsValidation(t *testing.T) {
	// No t.Parallel() - t.Setenv
	t.Setenv("HOME", t.TempDir())

	tests := map[string]struct {
		content string
	}{
		"zero search limit":     {content: `{"search_limit": 0}`},
		"negative search limit": {content: `{"search_limit": -3}`},
		"huge search limit":     {content: `{"search_limit": 10000}`},
		"unknown log level":     {content: `{"log_level": "loud"}`},
		"unknown color mode":    {content: `{"color": "sometimes"}`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))

			_, err := LoadOptions(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid options")
		})
	}
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in   string
		want string
	}{
		"search limit": {in: "RESTYLE_SEARCH_LIMIT", want: "search_limit"},
		"log level":    {in: "RESTYLE_LOG_LEVEL", want: "log_level"},
		"no prefix":    {in: "OTHER_VALUE", want: "other_value"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, envTransform(tc.in))
		})
	}
}
