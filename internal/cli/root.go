package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "csfix",
	Short: "csfix — run php-cs-fixer on files changed between two revisions",
	Long: `csfix resolves the files changed between two git revisions, filters them
to PHP sources that still exist in the working tree, and runs php-cs-fixer
on each one in order. The run stops at the first file the fixer rejects.

Revisions default from the CI environment (GIT_COMMIT,
GIT_PREVIOUS_SUCCESSFUL_COMMIT, GIT_PREVIOUS_COMMIT). Run history is kept
in ~/.csfix/csfix.db.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
