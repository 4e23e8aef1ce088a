// Package cli_test tests the migrate command for upgrading legacy configuration files.
// Related: internal/cli/migrate.go
// Tags: cli, migrate, legacy, dry-run

package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restyle-clj/restyle/internal/testutil"
)

func TestMigrateCommandRewritesLegacyFile(t *testing.T) {
	// No t.Parallel() - tests share global command instances
	dir := resolvedTempDir(t)
	path := testutil.WriteConfig(t, dir, "max-consecutive-blank-lines: 5\n")

	var buf bytes.Buffer
	migrateCmd.SetOut(&buf)
	err := runMigrate(migrateCmd, []string{path})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "✓ migrated "+path)
	assert.Contains(t, out, "Migrated 1 config file(s), 0 already current")

	content := testutil.ReadFile(t, path)
	assert.Contains(t, content, "max-consecutive: 5")
	assert.NotContains(t, content, "max-consecutive-blank-lines")
}

func TestMigrateCommandDirectoryArgument(t *testing.T) {
	// No t.Parallel() - tests share global command instances
	dir := resolvedTempDir(t)
	path := testutil.WriteConfig(t, dir, "require-eof-newline: true\n")

	var buf bytes.Buffer
	migrateCmd.SetOut(&buf)
	err := runMigrate(migrateCmd, []string{dir})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "✓ migrated "+path)
}

func TestMigrateCommandDryRun(t *testing.T) {
	// No t.Parallel() - tests share global command instances
	dir := resolvedTempDir(t)
	original := "max-consecutive-blank-lines: 5\n"
	path := testutil.WriteConfig(t, dir, original)

	var buf bytes.Buffer
	migrateCmd.SetOut(&buf)
	require.NoError(t, migrateCmd.Flags().Set("dry-run", "true"))
	t.Cleanup(func() { migrateCmd.Flags().Set("dry-run", "false") })

	err := runMigrate(migrateCmd, []string{path})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Dry run mode")
	assert.Contains(t, out, "✓ would migrate "+path)
	assert.Contains(t, out, "Would migrate 1 config file(s)")

	assert.Equal(t, original, testutil.ReadFile(t, path), "dry run must not write")
}

func TestMigrateCommandAlreadyCurrent(t *testing.T) {
	// No t.Parallel() - tests share global command instances
	dir := resolvedTempDir(t)
	path := testutil.WriteConfig(t, dir, "rules:\n  eof-newline:\n    enabled: false\n")

	var buf bytes.Buffer
	migrateCmd.SetOut(&buf)
	err := runMigrate(migrateCmd, []string{path})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "- "+path+" already uses the current schema")
	assert.Contains(t, out, "Migrated 0 config file(s), 1 already current")
}

func TestMigrateCommandMissingTarget(t *testing.T) {
	// No t.Parallel() - tests share global command instances
	dir := resolvedTempDir(t)

	var buf bytes.Buffer
	migrateCmd.SetOut(&buf)
	err := runMigrate(migrateCmd, []string{filepath.Join(dir, "absent", ".restyle")})
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, ExitCode(err))
}

func TestMigrateCommandStopsOnBrokenFile(t *testing.T) {
	// No t.Parallel() - tests share global command instances
	dir := resolvedTempDir(t)
	path := testutil.WriteConfig(t, dir, "files: [clj\n")

	var buf bytes.Buffer
	migrateCmd.SetOut(&buf)
	err := runMigrate(migrateCmd, []string{path})
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, ExitCode(err))
}
