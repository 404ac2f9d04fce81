package gitdiff

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrDiffUnavailable signals that the change list could not be computed.
// Fatal to the whole run; callers must not proceed without a change list.
var ErrDiffUnavailable = errors.New("diff unavailable")

// RevisionPair identifies the two revisions a run compares.
type RevisionPair struct {
	// Previous is the baseline revision, typically the last successful
	// build's commit. Empty means no prior baseline exists.
	Previous string
	// Current is the revision being built.
	Current string
}

// GitRunner provides the git diff command. Interface for testing.
type GitRunner interface {
	DiffStat(dir string, from string, to string) (string, error)
}

// ExecGit implements GitRunner using exec.Command.
type ExecGit struct{}

// DiffStat runs git diff between two revisions with a stat summary.
// --stat=1000 keeps git from truncating long paths.
func (g *ExecGit) DiffStat(dir string, from string, to string) (string, error) {
	cmd := exec.Command("git", "diff", "--stat=1000", from, to)
	if dir != "" {
		cmd.Dir = dir
	}
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git diff %s %s: %s: %w", from, to, strings.TrimSpace(string(exitErr.Stderr)), err)
		}
		return "", fmt.Errorf("git diff %s %s: %w", from, to, err)
	}
	return string(out), nil
}

// Resolver computes the set of changed files between two revisions.
type Resolver struct {
	git GitRunner
}

// NewResolver creates a Resolver with the given git runner.
func NewResolver(git GitRunner) *Resolver {
	return &Resolver{git: git}
}

// ChangedFiles returns the paths changed between pair.Previous and
// pair.Current, in diff output order, keeping only paths that match one of
// the extension suffixes and still exist as regular files under workDir.
// Equal revisions (and a missing baseline) short-circuit to an empty list
// without invoking git. A failed git invocation yields ErrDiffUnavailable.
func (r *Resolver) ChangedFiles(pair RevisionPair, workDir string, extensions []string) ([]string, error) {
	if pair.Previous == "" || pair.Previous == pair.Current {
		return nil, nil
	}

	out, err := r.git.DiffStat(workDir, pair.Previous, pair.Current)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiffUnavailable, err)
	}

	var files []string
	lines := splitLines(out)

	// The last line of stat output is the "N files changed" summary.
	for i := 0; i < len(lines)-1; i++ {
		path := statPath(lines[i])
		if path == "" {
			continue
		}
		if !matchesExtension(path, extensions) {
			continue
		}
		info, err := os.Stat(filepath.Join(workDir, path))
		if err != nil || !info.Mode().IsRegular() {
			// Deleted between the diff and the check. Skip, not an error.
			continue
		}
		files = append(files, path)
	}

	return files, nil
}

var statColumn = regexp.MustCompile(`\|.*$`)

// statPath extracts the file path from a single stat line by stripping the
// pipe-delimited change column and trimming whitespace.
func statPath(line string) string {
	return strings.TrimSpace(statColumn.ReplaceAllString(line, ""))
}

// matchesExtension reports whether path ends in one of the suffixes.
// Case-sensitive.
func matchesExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) && len(path) > len(ext) {
			return true
		}
	}
	return false
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
