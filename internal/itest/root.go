//go:build integration

package itest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// mustRepoRoot walks up from the working directory to the nearest go.mod.
func mustRepoRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		} else if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("stat go.mod: %v", err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("repo root: could not locate go.mod")
		}
		dir = parent
	}
}
