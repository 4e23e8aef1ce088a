package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/restyle-clj/restyle/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect restyle configuration",
	Long: `Inspect the configuration governing a path.

Configuration is resolved with the following priority (highest to lowest):
  1. .restyle in the deepest directory on the way up from PATH
  2. .restyle files in shallower directories
  3. Built-in defaults

Legacy flat-schema files are translated on the fly; use 'restyle
migrate' to rewrite them permanently.`,
	Example: `  # Show the effective configuration for the current directory
  restyle config show

  # Show the configuration governing one file, as JSON
  restyle config show src/myapp/core.clj --json

  # List contributing files and the settings each one pinned
  restyle config explain src/

  # List every known setting
  restyle config keys`,
}

var configShowCmd = &cobra.Command{
	Use:   "show [PATH]",
	Short: "Show the effective configuration for a path",
	Long: `Display the effective configuration governing PATH (default ".").

Shows the merged result of built-in defaults and every .restyle file
found walking upward from PATH. Merge directives have already been
applied and are not shown.`,
	Example: `  # Show configuration in YAML format (default)
  restyle config show

  # Show configuration in JSON format
  restyle config show --json

  # Include the list of contributing files
  restyle config show --sources`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigShow,
}

var configExplainCmd = &cobra.Command{
	Use:   "explain [PATH]",
	Short: "Show which files the configuration came from",
	Long: `List every configuration source contributing to PATH (default "."),
shallowest first, along with the settings each one pinned.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigExplain,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all known settings",
	RunE:  runConfigKeys,
}

func init() {
	rootCmd.AddCommand(configCmd)

	// Add subcommands
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configExplainCmd)
	configCmd.AddCommand(configKeysCmd)

	// Show command flags
	configShowCmd.Flags().Bool("json", false, "Output in JSON format")
	configShowCmd.Flags().Bool("sources", false, "List contributing files before the settings")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	useJSON, _ := cmd.Flags().GetBool("json")
	withSources, _ := cmd.Flags().GetBool("sources")

	start := "."
	if len(args) == 1 {
		start = args[0]
	}

	eff, err := config.Resolve(start, rootOptions.SearchLimit)
	if err != nil {
		return err
	}

	if withSources {
		fmt.Fprintln(out, "# Configuration sources (shallowest first):")
		if len(eff.Sources) == 0 {
			fmt.Fprintln(out, "#   built-in defaults only")
		}
		for _, src := range eff.Sources {
			fmt.Fprintf(out, "#   %s\n", src)
		}
		fmt.Fprintln(out)
	}

	settings := config.StripDirectives(eff.Settings)
	if useJSON {
		data, err := config.EncodeJSON(settings)
		if err != nil {
			return fmt.Errorf("failed to render configuration: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	data, err := config.Encode(settings)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigExplain(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	start := "."
	if len(args) == 1 {
		start = args[0]
	}

	frags, err := config.FindUp(start, rootOptions.SearchLimit)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	bold.Fprintln(out, "built-in defaults")
	fmt.Fprintln(out, "  every setting starts here")
	for _, frag := range frags {
		fmt.Fprintln(out)
		cyan.Fprintln(out, frag.Path)
		for _, p := range frag.Settings.Paths() {
			fmt.Fprintf(out, "  %s\n", p)
		}
	}
	return nil
}

func runConfigKeys(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cyan := color.New(color.FgCyan)

	for _, path := range config.FieldPaths() {
		f, _ := config.LookupField(path)
		cyan.Fprint(out, path)
		fmt.Fprintf(out, "  (%s)\n    %s\n", f.Type, f.Description)
	}
	return nil
}
