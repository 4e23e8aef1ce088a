package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/restyle-clj/restyle/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [PATH...]",
	Short: "Upgrade legacy configuration files to the current schema",
	Long: `Rewrite legacy flat-schema .restyle files in place using the current
nested schema. Files already in the current schema are left untouched.

PATH arguments may name .restyle files or directories containing one;
with no arguments the current directory's .restyle is migrated. The
rewrite is atomic, so readers never see a half-written file.

Values equal to the legacy defaults are dropped during translation,
leaving migrated files pinning only what they changed.`,
	Example: `  # Migrate ./.restyle
  restyle migrate

  # Preview without writing
  restyle migrate --dry-run

  # Migrate specific files
  restyle migrate services/api/.restyle services/worker`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().Bool("dry-run", false, "Preview migration without making changes")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		fmt.Fprintln(out)
	}

	var migrated, current int
	for _, p := range paths {
		target, err := migrationTarget(p)
		if err != nil {
			return NewExitError(ExitUsageError, err)
		}

		result, err := config.MigrateFile(target, dryRun)
		if err != nil {
			return err
		}

		if result.Migrated {
			migrated++
			if dryRun {
				fmt.Fprintf(out, "✓ would migrate %s\n", result.Path)
			} else {
				fmt.Fprintf(out, "✓ migrated %s\n", result.Path)
			}
		} else {
			current++
			fmt.Fprintf(out, "- %s already uses the current schema\n", result.Path)
		}
	}

	fmt.Fprintln(out)
	if dryRun {
		fmt.Fprintf(out, "Would migrate %d config file(s), %d already current\n", migrated, current)
	} else {
		fmt.Fprintf(out, "Migrated %d config file(s), %d already current\n", migrated, current)
	}
	return nil
}

// migrationTarget maps an argument to the config file it names: a
// directory argument means the .restyle file inside it.
func migrationTarget(arg string) (string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", arg, err)
	}
	if info.IsDir() {
		return filepath.Join(arg, config.FileName), nil
	}
	return arg, nil
}
