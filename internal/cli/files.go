package cli

import (
	"fmt"

	"github.com/happyr/csfix/internal/gitdiff"
	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List the changed files a run would process, without running the fixer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, cfg, err := runOptsFromFlags(cmd)
		if err != nil {
			return err
		}

		resolver := gitdiff.NewResolver(&gitdiff.ExecGit{})
		files, err := resolver.ChangedFiles(opts.pair, opts.dir, cfg.Extensions)
		if err != nil {
			return err
		}

		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}

func init() {
	addRevisionFlags(filesCmd)
	filesCmd.Flags().String("config", "", "path to a csfix config file")
}
