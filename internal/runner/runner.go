// Package runner drives the fixer over an ordered list of changed files,
// stopping at the first dirty file.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// CommandRunner abstracts subprocess execution for testability. The command's
// stdout and stderr are streamed to out; the exit code is returned when the
// process ran to completion, err when it could not be started or was
// interrupted mid-execution.
type CommandRunner interface {
	Run(ctx context.Context, dir string, env []string, out io.Writer, args []string) (int, error)
}

// ExecRunner implements CommandRunner by shelling out.
type ExecRunner struct{}

func (e *ExecRunner) Run(ctx context.Context, dir string, env []string, out io.Writer, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return -1, fmt.Errorf("interrupted: %w", ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("exec %s: %w", args[0], err)
	}
	return 0, nil
}

// Composer builds the fixer argument list for one target file.
type Composer func(target string) []string

// Failure identifies the file that terminated a run and the fixer's exit code.
type Failure struct {
	File     string
	ExitCode int
}

// Result is the outcome of one run. Immutable once the run completes.
type Result struct {
	// Files lists the files the fixer was actually invoked on, in order.
	Files []string
	// FirstFailure is set when a fixer invocation exited non-zero. Files
	// after it were never processed.
	FirstFailure *Failure
	// Elapsed is the wall-clock duration of the run, set on every exit
	// path.
	Elapsed time.Duration
}

// Success reports whether every file came back clean.
func (r *Result) Success() bool {
	return r.FirstFailure == nil
}

// ProcessError signals that a fixer invocation could not be started or was
// interrupted. Distinct from a style violation, which is an ordinary
// non-zero exit.
type ProcessError struct {
	File string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("run fixer on %s: %v", e.File, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Runner executes the fixer per file.
type Runner struct {
	cmd CommandRunner
}

// New creates a Runner with the given command runner.
func New(cmd CommandRunner) *Runner {
	return &Runner{cmd: cmd}
}

// Run invokes the fixer on each file in order, strictly sequentially,
// streaming output to out. The first non-zero exit stops the run and is
// recorded in Result.FirstFailure; remaining files are not processed. A
// process that cannot start fails the run with a ProcessError. The returned
// Result is valid on every path, error included, so the caller can always
// report elapsed time and which files ran.
func (r *Runner) Run(ctx context.Context, files []string, compose Composer, dir string, env []string, out io.Writer) (res *Result, err error) {
	start := time.Now()
	res = &Result{}
	defer func() {
		res.Elapsed = time.Since(start)
	}()

	for _, file := range files {
		args := compose(file)
		res.Files = append(res.Files, file)

		code, runErr := r.cmd.Run(ctx, dir, env, out, args)
		if runErr != nil {
			return res, &ProcessError{File: file, Err: runErr}
		}
		if code != 0 {
			res.FirstFailure = &Failure{File: file, ExitCode: code}
			return res, nil
		}
	}

	return res, nil
}
