package fixer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireFrom_WritesPhar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("phar-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path, err := AcquireFrom(context.Background(), srv.URL, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, PharName) {
		t.Errorf("expected phar at %s, got %s", filepath.Join(dir, PharName), path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read phar: %v", err)
	}
	if string(data) != "phar-bytes" {
		t.Errorf("expected phar-bytes, got %q", data)
	}
}

func TestAcquireFrom_RefetchesEveryTime(t *testing.T) {
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		w.Write([]byte("v2"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, PharName), []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed stale phar: %v", err)
	}

	path, err := AcquireFrom(context.Background(), srv.URL, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetches != 1 {
		t.Errorf("expected 1 fetch, got %d", fetches)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "v2" {
		t.Errorf("expected stale phar overwritten, got %q", data)
	}
}

func TestAcquireFrom_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := AcquireFrom(context.Background(), srv.URL, t.TempDir())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrFixerUnavailable) {
		t.Errorf("expected ErrFixerUnavailable, got %v", err)
	}
}

func TestAcquireFrom_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := AcquireFrom(context.Background(), srv.URL, t.TempDir())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrFixerUnavailable) {
		t.Errorf("expected ErrFixerUnavailable, got %v", err)
	}
}
