// restyle - Clojure source code style tool
// Source: https://github.com/restyle-clj/restyle

// Package cli provides the Cobra-based commands for the restyle tool.
// It defines configuration inspection (config show, config explain,
// config keys), legacy configuration migration (migrate), source file
// discovery (find), and version information.
package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/restyle-clj/restyle/internal/logging"
	"github.com/restyle-clj/restyle/internal/progress"
)

var rootCmd = &cobra.Command{
	Use:   "restyle",
	Short: "restyle Clojure source formatting",
	Long: `restyle keeps Clojure source formatted one way.

Formatting is governed by .restyle files discovered from each source
file upward to the filesystem root and merged so that deeper
directories override shallower ones, on top of built-in defaults.

Source: https://github.com/restyle-clj/restyle`,
	Example: `  # Show the configuration governing the current directory
  restyle config show

  # Explain where each setting came from
  restyle config explain src/myapp/core.clj

  # Upgrade a legacy configuration file in place
  restyle migrate

  # List the files restyle would format
  restyle find src/ test/`,
}

// rootOptions holds the tool options loaded before any command runs.
var rootOptions *Options

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to tool options file (default ~/.config/restyle/config.json)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.PersistentPreRunE = setup
}

// setup loads tool options and configures logging and color before the
// selected command runs.
func setup(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	opts, err := LoadOptions(configPath)
	if err != nil {
		return err
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		opts.LogLevel = "debug"
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		opts.Color = "never"
	}

	applyColorMode(opts.Color)
	logging.Init(logging.Config{
		Level:  logging.ParseLevel(opts.LogLevel),
		Output: os.Stderr,
		Pretty: progress.DetectTerminalCapabilities().IsTTY,
	})

	rootOptions = opts
	return nil
}

// applyColorMode maps the color option onto the global color switch.
// "auto" defers to terminal detection and NO_COLOR.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		color.NoColor = !progress.DetectTerminalCapabilities().SupportsColor
	}
}
