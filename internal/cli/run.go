package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/happyr/csfix/internal/config"
	"github.com/happyr/csfix/internal/console"
	"github.com/happyr/csfix/internal/db"
	"github.com/happyr/csfix/internal/fixer"
	"github.com/happyr/csfix/internal/gitdiff"
	"github.com/happyr/csfix/internal/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fix the files changed between two revisions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, cfg, err := runOptsFromFlags(cmd)
		if err != nil {
			return err
		}

		deps := runDeps{
			git:     &gitdiff.ExecGit{},
			cmd:     &runner.ExecRunner{},
			acquire: fixer.Acquire,
			env:     os.Environ(),
			out:     cmd.OutOrStdout(),
			decorate: func(out io.Writer) console.Decorator {
				return console.NewWriter(out, opts.noColor)
			},
			history: historyRecorder(cfg, cmd.ErrOrStderr()),
		}

		return executeRun(cmd.Context(), opts, cfg, deps)
	},
}

func init() {
	addRevisionFlags(runCmd)
	runCmd.Flags().String("config", "", "path to a csfix config file")
	runCmd.Flags().String("params", "", "project parameter string, fully replacing the configured parameters")
	runCmd.Flags().String("fixer", "", "path to the fixer executable (skips the phar download)")
	runCmd.Flags().Bool("no-color", false, "disable output coloring")
}

// addRevisionFlags registers the revision and working-dir flags shared by
// run and files.
func addRevisionFlags(cmd *cobra.Command) {
	cmd.Flags().String("current", os.Getenv("GIT_COMMIT"), "revision being built (defaults from GIT_COMMIT)")
	cmd.Flags().String("prev-ok", os.Getenv("GIT_PREVIOUS_SUCCESSFUL_COMMIT"), "last successful build's revision (defaults from GIT_PREVIOUS_SUCCESSFUL_COMMIT)")
	cmd.Flags().String("prev", os.Getenv("GIT_PREVIOUS_COMMIT"), "fallback previous revision (defaults from GIT_PREVIOUS_COMMIT)")
	cmd.Flags().String("dir", ".", "working tree root")
}

// runOpts holds the resolved inputs for one run.
type runOpts struct {
	pair    gitdiff.RevisionPair
	dir     string
	noColor bool
}

// runDeps holds the collaborators executeRun drives. Interfaces and function
// values so tests can substitute fakes.
type runDeps struct {
	git      gitdiff.GitRunner
	cmd      runner.CommandRunner
	acquire  func(ctx context.Context, destDir string) (string, error)
	env      []string
	out      io.Writer
	decorate func(out io.Writer) console.Decorator
	history  func(rec db.RunRecord, files []string)
}

func runOptsFromFlags(cmd *cobra.Command) (runOpts, *config.Config, error) {
	current, _ := cmd.Flags().GetString("current")
	prevOK, _ := cmd.Flags().GetString("prev-ok")
	prev, _ := cmd.Flags().GetString("prev")
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	params, _ := cmd.Flags().GetString("params")
	fixerPath, _ := cmd.Flags().GetString("fixer")
	noColor, _ := cmd.Flags().GetBool("no-color")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return runOpts{}, nil, err
	}
	if params != "" {
		cfg.ProjectParameters = params
	}
	if fixerPath != "" {
		cfg.FixerPath = fixerPath
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return runOpts{}, nil, fmt.Errorf("invalid config: %s", errs[0])
	}

	if current == "" {
		return runOpts{}, nil, fmt.Errorf("no current revision: set --current or GIT_COMMIT")
	}

	previous := prevOK
	if previous == "" {
		previous = prev
	}

	opts := runOpts{
		pair:    gitdiff.RevisionPair{Previous: previous, Current: current},
		dir:     dir,
		noColor: noColor,
	}
	return opts, cfg, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// executeRun is the full pipeline: resolve changed files, resolve the fixer,
// run it per file. The decorator is flushed and the elapsed-time summary
// printed on every exit path.
func executeRun(ctx context.Context, opts runOpts, cfg *config.Config, deps runDeps) error {
	fmt.Fprintln(deps.out, "Starting to run php-cs-fixer")

	dec := deps.decorate(deps.out)
	run := runner.New(deps.cmd)

	start := time.Now()
	defer func() {
		dec.Flush()
		fmt.Fprintf(deps.out, "Finished php-cs-fixer in %.2f seconds\n", time.Since(start).Seconds())
	}()

	files, err := gitdiff.NewResolver(deps.git).ChangedFiles(opts.pair, opts.dir, cfg.Extensions)
	if err != nil {
		return err
	}

	fcfg := fixer.Config{
		FixerPath:         cfg.FixerPath,
		Parameters:        cfg.Parameters,
		ProjectParameters: cfg.ProjectParameters,
	}
	if fcfg.FixerPath == "" && len(files) > 0 {
		if _, err := deps.acquire(ctx, opts.dir); err != nil {
			return err
		}
	}

	res, err := run.Run(ctx, files, func(target string) []string {
		return fixer.Compose(fcfg, target)
	}, opts.dir, deps.env, dec)

	if deps.history != nil {
		deps.history(runRecord(opts, res, err), res.Files)
	}

	if err != nil {
		return err
	}
	if f := res.FirstFailure; f != nil {
		return fmt.Errorf("style violations in %s (exit code %d)", f.File, f.ExitCode)
	}
	return nil
}

// runRecord maps a run outcome onto a history row.
func runRecord(opts runOpts, res *runner.Result, runErr error) db.RunRecord {
	rec := db.RunRecord{
		PreviousRev:    opts.pair.Previous,
		CurrentRev:     opts.pair.Current,
		WorkingDir:     opts.dir,
		FilesProcessed: len(res.Files),
		Success:        runErr == nil && res.Success(),
		DurationMs:     int(res.Elapsed.Milliseconds()),
	}
	if f := res.FirstFailure; f != nil {
		rec.FailedFile = f.File
		code := f.ExitCode
		rec.FailedExitCode = &code
	} else if perr, ok := runErr.(*runner.ProcessError); ok {
		rec.FailedFile = perr.File
	}
	return rec
}

// historyRecorder returns a best-effort run recorder, or nil when history is
// disabled. A store failure is reported but never changes the run's outcome.
func historyRecorder(cfg *config.Config, errOut io.Writer) func(rec db.RunRecord, files []string) {
	if cfg.History.Disabled {
		return nil
	}
	return func(rec db.RunRecord, files []string) {
		path := cfg.History.Path
		if path == "" {
			p, err := db.DefaultPath()
			if err != nil {
				fmt.Fprintf(errOut, "history: %v\n", err)
				return
			}
			path = p
		}
		d, err := db.Open(path)
		if err != nil {
			fmt.Fprintf(errOut, "history: %v\n", err)
			return
		}
		defer d.Close()
		if err := d.Migrate(); err != nil {
			fmt.Fprintf(errOut, "history: %v\n", err)
			return
		}
		if err := d.RecordRun(rec, files); err != nil {
			fmt.Fprintf(errOut, "history: %v\n", err)
		}
	}
}
