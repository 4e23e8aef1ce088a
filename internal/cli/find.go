package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restyle-clj/restyle/internal/config"
	"github.com/restyle-clj/restyle/internal/progress"
	"github.com/restyle-clj/restyle/internal/scan"
)

var findCmd = &cobra.Command{
	Use:   "find [PATH...]",
	Short: "List the source files restyle would process",
	Long: `Walk each PATH (default ".") and print every file the configuration
classifies as a formattable source, one per line.

Each directory's own .restyle file applies to its subtree during the
walk, so nested projects behave the same as when scanned directly.`,
	Example: `  # List sources under the current directory
  restyle find

  # Scan several trees, excluding editor backups
  restyle find src/ test/ --glob '**/*~'`,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().StringArray("glob", nil, "Additional ignore glob (repeatable)")
}

func runFind(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	globFlags, _ := cmd.Flags().GetStringArray("glob")

	globs := append([]string{}, rootOptions.Globs...)
	globs = append(globs, globFlags...)

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	display := progress.NewScanDisplay(progress.DetectTerminalCapabilities())
	display.Start("scanning")

	var files []string
	for _, root := range roots {
		eff, err := config.Resolve(root, rootOptions.SearchLimit)
		if err != nil {
			display.Fail("scan failed", err)
			return err
		}

		err = scan.Walk(root, eff, globs, func(path string, _ config.Effective) error {
			files = append(files, path)
			display.Found("scanning")
			return nil
		})
		if err != nil {
			display.Fail("scan failed", err)
			return NewExitError(ExitIOError, err)
		}
	}

	display.Summary("scan complete")
	for _, f := range files {
		fmt.Fprintln(out, f)
	}
	return nil
}
