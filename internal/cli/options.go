package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Options holds tool-level preferences, distinct from the .restyle
// settings that govern formatting: how far to search for configuration,
// how to log, how to paint the terminal. Formatting settings never come
// from the environment; these do.
type Options struct {
	SearchLimit int      `koanf:"search_limit" validate:"min=1,max=256"`
	LogLevel    string   `koanf:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Color       string   `koanf:"color" validate:"omitempty,oneof=auto always never"`
	Globs       []string `koanf:"globs"`
}

// optionDefaults returns the built-in tool option values.
func optionDefaults() map[string]interface{} {
	return map[string]interface{}{
		"search_limit": 25,
		"log_level":    "warn",
		"color":        "auto",
	}
}

// LoadOptions loads tool options from the global options file and the
// environment.
// Priority: Environment variables > Options file > Defaults.
// configPath overrides the default ~/.config/restyle/config.json; when
// given explicitly it must exist.
func LoadOptions(configPath string) (*Options, error) {
	k := koanf.New(".")

	// Apply defaults first
	for key, value := range optionDefaults() {
		k.Set(key, value)
	}

	path := configPath
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".config", "restyle", "config.json")
		}
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load options file: %w", err)
			}
		} else if configPath != "" {
			return nil, fmt.Errorf("failed to read options file %s: %w", configPath, err)
		}
	}

	// Override with environment variables (highest priority)
	k.Load(env.Provider("RESTYLE_", ".", envTransform), nil)

	var opts Options
	if err := k.Unmarshal("", &opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(opts); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	return &opts, nil
}

// envTransform converts environment variable names to option keys
// Example: RESTYLE_SEARCH_LIMIT -> search_limit
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RESTYLE_"))
}
