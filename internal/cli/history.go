package cli

import (
	"fmt"
	"strconv"

	"github.com/happyr/csfix/internal/db"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [count]",
	Short: "Show recent recorded runs",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := 10
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid count %q", args[0])
			}
			limit = n
		}

		path, _ := cmd.Flags().GetString("db")
		if path == "" {
			p, err := db.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}

		d, err := db.Open(path)
		if err != nil {
			return err
		}
		defer d.Close()
		if err := d.Migrate(); err != nil {
			return err
		}

		runs, err := d.RecentRuns(limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
			return nil
		}

		for _, r := range runs {
			status := "ok"
			if !r.Success {
				status = "FAIL"
				if r.FailedFile != "" {
					status = fmt.Sprintf("FAIL %s", r.FailedFile)
					if r.FailedExitCode != nil {
						status = fmt.Sprintf("FAIL %s (exit %d)", r.FailedFile, *r.FailedExitCode)
					}
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s..%s  %d files  %dms  %s\n",
				r.Timestamp, short(r.PreviousRev), short(r.CurrentRev), r.FilesProcessed, r.DurationMs, status)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("db", "", "path to the history database")
}

// short abbreviates a revision to 8 characters for display.
func short(rev string) string {
	if len(rev) > 8 {
		return rev[:8]
	}
	return rev
}
