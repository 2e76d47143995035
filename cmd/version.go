package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Set with -ldflags at build time
var (
	// Release is the current release version
	Release = "dev"
	// GitCommit is the git commit hash
	GitCommit = "none"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var versionShort bool

//nolint:gochecknoglobals // Cobra commands are typically global
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rfv build information",
	Run: func(cmd *cobra.Command, _ []string) {
		printVersion(cmd.OutOrStdout(), versionShort)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print the release only")
}

func printVersion(out io.Writer, short bool) {
	if short {
		_, _ = fmt.Fprintln(out, Release)
		return
	}

	_, _ = fmt.Fprintf(out, "rfv %s (commit %s, %s, %s/%s)\n",
		Release, GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
