// Package testutil provides test utilities and helpers for restyle tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteConfig writes a .restyle file with the given content into dir,
// creating dir if needed. Returns the config file path.
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ".restyle")
	WriteFile(t, path, content)
	return path
}

// WriteTree creates the given files under root. Keys are slash-separated
// relative paths, values are file contents. Parent directories are
// created as needed. Returns root for convenience.
func WriteTree(t *testing.T, root string, files map[string]string) string {
	t.Helper()

	for rel, content := range files {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(rel)), content)
	}
	return root
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}
