package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// MigrationResult describes what MigrateFile did, or would do, to one
// configuration file.
type MigrationResult struct {
	Path     string
	Migrated bool   // file used the legacy schema
	Output   []byte // canonical rendering of the translated settings
}

// MigrateFile upgrades one legacy .restyle file to the current schema,
// rewriting it in place with an atomic rename. Already-current files
// are validated but left untouched, reported with Migrated=false. With
// dryRun the rewrite is computed and returned but nothing is written.
func MigrateFile(path string, dryRun bool) (*MigrationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
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
	res := &MigrationResult{Path: path}
	if !IsLegacy(s) {
		if _, err := Validate(s); err != nil {
			var se *SchemaError
			if errors.As(err, &se) {
				se.Path = path
			}
			return nil, err
		}
		return res, nil
	}
	canonical, err := Validate(TranslateLegacy(s))
	if err != nil {
		var se *SchemaError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, err
	}
	out, err := Encode(canonical)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", path, err)
	}
	res.Migrated = true
	res.Output = out
	if dryRun {
		return res, nil
	}
	if err := writeAtomically(path, out); err != nil {
		return nil, err
	}
	return res, nil
}

// writeAtomically writes content to path via a temp file and rename so
// readers never observe a half-written configuration.
func writeAtomically(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".restyle-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		// Clean up temp file on error
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	tmpPath = "" // Prevent cleanup since rename succeeded
	return nil
}
