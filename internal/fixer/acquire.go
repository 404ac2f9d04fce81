package fixer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// ErrFixerUnavailable signals that the fixer executable could not be resolved
// or fetched. Fatal to the run; not retried.
var ErrFixerUnavailable = errors.New("fixer unavailable")

// PharURL is the well-known location of the pinned fixer artifact.
const PharURL = "http://get.sensiolabs.org/php-cs-fixer.phar"

// Acquire fetches the fixer phar into destDir and returns its path. The phar
// is re-fetched on every run; there is no caching or integrity check.
func Acquire(ctx context.Context, destDir string) (string, error) {
	return AcquireFrom(ctx, PharURL, destDir)
}

// AcquireFrom fetches the fixer artifact from url into destDir.
func AcquireFrom(ctx context.Context, url string, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrFixerUnavailable, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %s: %v", ErrFixerUnavailable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: fetch %s: status %s", ErrFixerUnavailable, url, resp.Status)
	}

	dest := filepath.Join(destDir, PharName)
	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrFixerUnavailable, dest, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("%w: write %s: %v", ErrFixerUnavailable, dest, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: close %s: %v", ErrFixerUnavailable, dest, err)
	}

	return dest, nil
}
