package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/restyle-clj/restyle/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  "Display version, commit, build date, and Go version information for restyle",
	Run: func(cmd *cobra.Command, args []string) {
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			fmt.Fprintln(cmd.OutOrStdout(), build.Version)
			return
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "restyle version %s\n", build.Version)
		fmt.Fprintf(out, "Built from commit: %s\n", build.Commit)
		fmt.Fprintf(out, "Build date: %s\n", build.BuildDate)
		fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("plain", false, "Print only the version number")
}
